package stream

import (
	"context"
)

// Consumer pulls retrieval jobs off a stream and runs them through the
// orchestrator.
type Consumer interface {
	Setup(ctx context.Context) error
	Start(ctx context.Context) error
	Stop() error
}
