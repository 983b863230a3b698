package redis

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/docqa-labs/retrieval-agent/internal/models"
	"github.com/docqa-labs/retrieval-agent/internal/orchestrator"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

type Consumer struct {
	client       *redis.Client
	stream       string
	groupID      string
	consumerName string
	orchestrator *orchestrator.Orchestrator
	logger       *zerolog.Logger
}

func NewConsumer(client *redis.Client, cfg *StreamConfig, orch *orchestrator.Orchestrator, logger *zerolog.Logger) *Consumer {
	return &Consumer{
		client:       client,
		stream:       cfg.Stream,
		groupID:      cfg.GroupID,
		consumerName: cfg.ConsumerName,
		orchestrator: orch,
		logger:       logger,
	}
}

func (c *Consumer) Setup(ctx context.Context) error {
	err := c.client.XGroupCreateMkStream(ctx, c.stream, c.groupID, "0").Err()
	if err != nil && err.Error() != "BUSYGROUP Consumer Group name already exists" {
		return err
	}
	return nil
}

func (c *Consumer) Start(ctx context.Context) error {
	c.logger.Info().
		Str("stream", c.stream).
		Str("group", c.groupID).
		Str("consumer", c.consumerName).
		Msg("consumer started")

	for {
		if ctx.Err() != nil {
			return ctx.Err()
		}

		msgs, err := c.client.XReadGroup(ctx, &redis.XReadGroupArgs{
			Group:    c.groupID,
			Consumer: c.consumerName,
			Streams:  []string{c.stream, ">"},
			Count:    1,
			Block:    2 * time.Second,
		}).Result()

		if err != nil {
			if errors.Is(err, redis.Nil) {
				// timeout, no message -> loop again
				continue
			}

			if ctx.Err() != nil {
				return ctx.Err() // context cancelled during block
			}

			c.logger.Error().Err(err).Msg("failed to read from stream")
			continue
		}

		for _, msg := range msgs[0].Messages {
			c.process(ctx, msg)
		}
	}
}

func (c *Consumer) Stop() error {
	// No-op
	return nil
}

func (c *Consumer) process(ctx context.Context, msg redis.XMessage) {
	c.logger.Info().Str("id", msg.ID).Msg("job received")

	payload, ok := msg.Values["payload"].(string)
	if !ok {
		c.logger.Error().Str("id", msg.ID).Msg("missing payload field")
		c.ack(ctx, msg.ID)
		return
	}

	var request models.RetrievalRequest
	if err := json.Unmarshal([]byte(payload), &request); err != nil {
		c.logger.Error().Err(err).Str("id", msg.ID).Msg("failed to decode job")
		c.ack(ctx, msg.ID) // bad message, ACK to skip it
		return
	}

	result, err := c.orchestrator.Run(ctx, request.Documents, request.Questions)
	if err != nil {
		// Document-level failure. Nothing to retry, the reference
		// itself is broken; ack and move on.
		c.logger.Error().Err(err).Str("id", msg.ID).Str("document", request.Documents).Msg("retrieval failed")
		c.ack(ctx, msg.ID)
		return
	}

	c.logger.Info().
		Str("id", msg.ID).
		Str("request_id", result.RequestID).
		Int("answers", len(result.Answers)).
		Dur("duration", result.Duration).
		Msg("retrieval complete")

	c.ack(ctx, msg.ID)
}

func (c *Consumer) ack(ctx context.Context, msgID string) {
	if err := c.client.XAck(ctx, c.stream, c.groupID, msgID).Err(); err != nil {
		c.logger.Error().Err(err).Str("id", msgID).Msg("failed to ACK job")
	}
}
