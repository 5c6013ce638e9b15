package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/redis/go-redis/v9"
	"github.com/safatanc/jewelry-backoffice/internal/app/models"
	"github.com/safatanc/jewelry-backoffice/internal/infrastructures"
)

// CouponCache keeps the last known coupon records keyed by id.
type CouponCache interface {
	// ReplaceAll drops every cached record and stores coupons in its place
	ReplaceAll(ctx context.Context, coupons []models.Coupon) error
	Put(ctx context.Context, coupon *models.Coupon) error
	// Get returns nil without error on a miss
	Get(ctx context.Context, id int64) (*models.Coupon, error)
	Evict(ctx context.Context, id int64) error
}

// RedisCouponCache stores each coupon as a JSON field of one redis hash
type RedisCouponCache struct {
	redis *redis.Client
	key   string
}

func NewRedisCouponCache(redis *redis.Client, keyPrefix infrastructures.KeyPrefix) *RedisCouponCache {
	return &RedisCouponCache{
		redis: redis,
		key:   fmt.Sprintf("%s:coupons", keyPrefix),
	}
}

func (c *RedisCouponCache) ReplaceAll(ctx context.Context, coupons []models.Coupon) error {
	values := make([]interface{}, 0, len(coupons)*2)
	for i := range coupons {
		data, err := json.Marshal(&coupons[i])
		if err != nil {
			return fmt.Errorf("marshal coupon %d: %w", coupons[i].ID, err)
		}
		values = append(values, strconv.FormatInt(coupons[i].ID, 10), data)
	}

	_, err := c.redis.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, c.key)
		if len(values) > 0 {
			pipe.HSet(ctx, c.key, values...)
		}
		return nil
	})
	return err
}

func (c *RedisCouponCache) Put(ctx context.Context, coupon *models.Coupon) error {
	data, err := json.Marshal(coupon)
	if err != nil {
		return fmt.Errorf("marshal coupon %d: %w", coupon.ID, err)
	}
	return c.redis.HSet(ctx, c.key, strconv.FormatInt(coupon.ID, 10), data).Err()
}

func (c *RedisCouponCache) Get(ctx context.Context, id int64) (*models.Coupon, error) {
	data, err := c.redis.HGet(ctx, c.key, strconv.FormatInt(id, 10)).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var coupon models.Coupon
	if err := json.Unmarshal(data, &coupon); err != nil {
		return nil, fmt.Errorf("unmarshal coupon %d: %w", id, err)
	}
	return &coupon, nil
}

func (c *RedisCouponCache) Evict(ctx context.Context, id int64) error {
	return c.redis.HDel(ctx, c.key, strconv.FormatInt(id, 10)).Err()
}
