package stream

import (
	"github.com/docqa-labs/retrieval-agent/internal/stream/redis"
)

type StreamConfig struct {
	Provider    string
	RedisConfig *redis.StreamConfig
}
