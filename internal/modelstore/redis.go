package modelstore

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/redis/go-redis/v9"

	"hindispell/internal/frequency"
)

const (
	redisScanCount  = 1000 // HSCAN page size hint
	redisFieldBatch = 1000 // fields per HSET
	redisPipeBatch  = 16   // HSETs per pipeline round trip
)

// RedisStore keeps a model in one Redis hash, field = word, value = count.
type RedisStore struct {
	client redis.UniversalClient
	key    string
	owned  bool
}

func NewRedisStore(client redis.UniversalClient, key string) *RedisStore {
	if key == "" {
		key = DefaultRedisKey
	}
	return &RedisStore{client: client, key: key}
}

func (s *RedisStore) Key() string { return s.key }

// Load walks the hash with HSCAN so that large models never need a single
// huge reply.
func (s *RedisStore) Load(ctx context.Context) (*frequency.Index, error) {
	op := "load model from redis key " + s.key
	counts := make(map[string]int64)
	var cursor uint64
	for {
		kv, next, err := s.client.HScan(ctx, s.key, cursor, "", redisScanCount).Result()
		if err != nil {
			return nil, unavailable(op, err)
		}
		for i := 0; i+1 < len(kv); i += 2 {
			c, err := strconv.ParseInt(kv[i+1], 10, 64)
			if err != nil {
				return nil, unavailable(op, fmt.Errorf("count for %q: %w", kv[i], err))
			}
			counts[kv[i]] = c
		}
		if next == 0 {
			break
		}
		cursor = next
	}
	idx, err := frequency.NewIndex(counts)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return idx, nil
}

// Save fills a scratch hash and renames it over the live key, so readers
// never see a half-written model.
func (s *RedisStore) Save(ctx context.Context, counts map[string]int64) error {
	if len(counts) == 0 {
		return errors.New("save model to redis: no words")
	}
	tmp := s.key + ":building"
	if err := s.client.Del(ctx, tmp).Err(); err != nil {
		return fmt.Errorf("save model to redis: %w", err)
	}

	var batches [][]interface{}
	fields := make([]interface{}, 0, 2*redisFieldBatch)
	for w, c := range counts {
		fields = append(fields, w, c)
		if len(fields) == cap(fields) {
			batches = append(batches, fields)
			fields = make([]interface{}, 0, 2*redisFieldBatch)
		}
	}
	if len(fields) > 0 {
		batches = append(batches, fields)
	}

	for start := 0; start < len(batches); start += redisPipeBatch {
		end := start + redisPipeBatch
		if end > len(batches) {
			end = len(batches)
		}
		_, err := s.client.Pipelined(ctx, func(pipe redis.Pipeliner) error {
			for _, b := range batches[start:end] {
				pipe.HSet(ctx, tmp, b...)
			}
			return nil
		})
		if err != nil {
			return fmt.Errorf("save model to redis: %w", err)
		}
	}

	if err := s.client.Rename(ctx, tmp, s.key).Err(); err != nil {
		return fmt.Errorf("save model to redis: %w", err)
	}
	return nil
}

// Close closes the client when the store created it.
func (s *RedisStore) Close() error {
	if s.owned {
		return s.client.Close()
	}
	return nil
}
