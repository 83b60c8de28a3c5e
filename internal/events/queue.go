package events

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisQueue implements storage.Queue on a redis list. LPUSH/BRPOP keeps
// messages durable across consumer restarts, unlike pub/sub.
type RedisQueue struct {
	client *redis.Client
}

func NewRedisQueue(client *redis.Client) *RedisQueue {
	return &RedisQueue{client: client}
}

func (q *RedisQueue) Enqueue(ctx context.Context, queue string, payload any) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	return q.client.LPush(ctx, queue, data).Err()
}

func (q *RedisQueue) Dequeue(ctx context.Context, queue string) ([]byte, error) {
	res, err := q.client.BRPop(ctx, time.Second, queue).Result()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	// BRPOP returns [key, value].
	if len(res) < 2 {
		return nil, nil
	}
	return []byte(res[1]), nil
}
