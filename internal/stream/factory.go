package stream

import (
	"context"
	"fmt"

	"github.com/docqa-labs/retrieval-agent/internal/orchestrator"
	internalredis "github.com/docqa-labs/retrieval-agent/internal/redis"
	redisstream "github.com/docqa-labs/retrieval-agent/internal/stream/redis"
	"github.com/rs/zerolog"
)

func NewStreamConsumer(ctx context.Context, cfg *StreamConfig, orch *orchestrator.Orchestrator, logger *zerolog.Logger) (Consumer, error) {
	switch cfg.Provider {
	case "", "redis":
		if cfg.RedisConfig == nil {
			return nil, fmt.Errorf("redis stream config is nil")
		}
		client, err := internalredis.Connect(ctx, cfg.RedisConfig.Addr, cfg.RedisConfig.Password, 3)
		if err != nil {
			return nil, err
		}
		return redisstream.NewConsumer(client, cfg.RedisConfig, orch, logger), nil
	default:
		return nil, fmt.Errorf("unknown stream provider %q", cfg.Provider)
	}
}
