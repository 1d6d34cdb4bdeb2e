package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/mealforge/v1/internal/domain/dish"
	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// bufferTTL expires stale pre-warm buffers; a user who never returns should
// not hold memory forever.
const bufferTTL = 48 * time.Hour

// DishBufferStore implements the pre-warm buffer port on a Redis list per
// user. Take pops from the head, so consumption is destructive across
// processes too.
type DishBufferStore struct {
	client *goredis.Client
	logger *zap.Logger
}

// NewDishBufferStore creates the adapter.
func NewDishBufferStore(client *goredis.Client, logger *zap.Logger) *DishBufferStore {
	return &DishBufferStore{
		client: client,
		logger: logger.Named("redis-dish-buffer"),
	}
}

func bufferKey(userID string) string {
	return fmt.Sprintf("prewarm:%s", userID)
}

// Put replaces the user's buffer.
func (s *DishBufferStore) Put(ctx context.Context, userID string, dishes []*dish.Dish) error {
	key := bufferKey(userID)

	pipe := s.client.TxPipeline()
	pipe.Del(ctx, key)
	for _, d := range dishes {
		data, err := json.Marshal(d)
		if err != nil {
			return err
		}
		pipe.RPush(ctx, key, data)
	}
	pipe.Expire(ctx, key, bufferTTL)
	if _, err := pipe.Exec(ctx); err != nil {
		s.logger.Error("Buffer put failed", zap.String("user_id", userID), zap.Error(err))
		return err
	}
	return nil
}

// Take pops up to limit dishes from the user's buffer.
func (s *DishBufferStore) Take(ctx context.Context, userID string, limit int) ([]*dish.Dish, error) {
	if limit <= 0 {
		return nil, nil
	}

	raw, err := s.client.LPopCount(ctx, bufferKey(userID), limit).Result()
	if err == goredis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	out := make([]*dish.Dish, 0, len(raw))
	for _, item := range raw {
		var d dish.Dish
		if err := json.Unmarshal([]byte(item), &d); err != nil {
			s.logger.Warn("Dropping malformed buffered dish", zap.String("user_id", userID), zap.Error(err))
			continue
		}
		out = append(out, &d)
	}
	return out, nil
}

// Size reports how many dishes remain buffered.
func (s *DishBufferStore) Size(ctx context.Context, userID string) (int, error) {
	n, err := s.client.LLen(ctx, bufferKey(userID)).Result()
	if err != nil {
		return 0, err
	}
	return int(n), nil
}
