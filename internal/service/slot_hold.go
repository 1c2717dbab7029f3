package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	slotHoldKeyPrefix = "availability:hold:"
	slotHoldTTL       = 30 * time.Second
)

// SlotHolder takes short-lived exclusive holds on slots while a booking is
// in flight, so two sessions racing for the same slot fail fast instead of
// both reaching the database.
type SlotHolder interface {
	Acquire(ctx context.Context, slotID, userID uuid.UUID) (bool, error)
	Release(ctx context.Context, slotID uuid.UUID) error
}

type redisSlotHolder struct {
	client *redis.Client
}

func NewRedisSlotHolder(client *redis.Client) SlotHolder {
	return &redisSlotHolder{client: client}
}

func (h *redisSlotHolder) Acquire(ctx context.Context, slotID, userID uuid.UUID) (bool, error) {
	key := fmt.Sprintf("%s%s", slotHoldKeyPrefix, slotID)
	return h.client.SetNX(ctx, key, userID.String(), slotHoldTTL).Result()
}

func (h *redisSlotHolder) Release(ctx context.Context, slotID uuid.UUID) error {
	key := fmt.Sprintf("%s%s", slotHoldKeyPrefix, slotID)
	return h.client.Del(ctx, key).Err()
}
