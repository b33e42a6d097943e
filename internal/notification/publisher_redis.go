// Copyright (c) 2026 Inkwell. All rights reserved.
// Author: dev@inkwell.pub

package notification

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/inkwellhq/inkwell/internal/platform/constants"
)

// RedisPublisher implements the Publisher interface over Redis pub/sub.
//
// Each recipient has a dedicated channel so a connected UI only receives its
// own events. Messages are fire-and-forget: Redis pub/sub has no persistence,
// which is fine because the durable row already exists when Publish is called.
type RedisPublisher struct {
	client *redis.Client
}

// NewRedisPublisher creates a new Redis-backed live push publisher.
func NewRedisPublisher(client *redis.Client) *RedisPublisher {
	return &RedisPublisher{client: client}
}

/*
Publish pushes a serialized notification onto the recipient's channel.

Parameters:
  - context: context.Context
  - recipientID: string
  - payload: []byte (JSON-encoded Notification)

Returns:
  - error: Connectivity failures; callers treat these as non-fatal
*/
func (publisher *RedisPublisher) Publish(context context.Context, recipientID string, payload []byte) error {
	channel := constants.RedisChannelNotify + recipientID

	if err := publisher.client.Publish(context, channel, payload).Err(); err != nil {
		return fmt.Errorf("redis_publish_failed: %w", err)
	}

	return nil
}
