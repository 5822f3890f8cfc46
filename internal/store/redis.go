package store

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	"karak-pos/internal/logger"
)

const (
	keyPrefix    = "kv:"
	eventChannel = "kv:events"

	// Optimistic transactions lose the WATCH race under contention; the
	// stall has a handful of devices so a couple of retries is plenty.
	maxTxRetries = 16
)

type redisStore struct {
	rdb *redis.Client
}

// NewRedis wraps a Redis client in the Store interface. Every path becomes
// a "kv:"-prefixed key holding a JSON document; change notifications ride a
// single pub/sub channel and subscribers filter by prefix.
func NewRedis(rdb *redis.Client) Store {
	return &redisStore{rdb: rdb}
}

func (s *redisStore) Get(ctx context.Context, path string) (json.RawMessage, error) {
	val, err := s.rdb.Get(ctx, keyPrefix+path).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return json.RawMessage(val), nil
}

func (s *redisStore) List(ctx context.Context, prefix string) (Snapshot, error) {
	pattern := keyPrefix + "*"
	if prefix != "" {
		pattern = keyPrefix + prefix + "/*"
	}
	snap := Snapshot{}

	var cursor uint64
	for {
		keys, next, err := s.rdb.Scan(ctx, cursor, pattern, 200).Result()
		if err != nil {
			return nil, err
		}
		if len(keys) > 0 {
			vals, err := s.rdb.MGet(ctx, keys...).Result()
			if err != nil {
				return nil, err
			}
			for i, k := range keys {
				str, ok := vals[i].(string)
				if !ok {
					continue // expired between SCAN and MGET
				}
				snap[strings.TrimPrefix(k, keyPrefix)] = json.RawMessage(str)
			}
		}
		cursor = next
		if cursor == 0 {
			break
		}
	}
	return snap, nil
}

func (s *redisStore) Write(ctx context.Context, path string, value any) error {
	return s.WriteTTL(ctx, path, value, 0)
}

func (s *redisStore) WriteTTL(ctx context.Context, path string, value any, ttl time.Duration) error {
	buf, err := json.Marshal(value)
	if err != nil {
		return err
	}
	if err := s.rdb.Set(ctx, keyPrefix+path, buf, ttl).Err(); err != nil {
		return err
	}
	s.publish(ctx, Event{Path: path, Value: buf})
	return nil
}

func (s *redisStore) Update(ctx context.Context, values map[string]any) error {
	events := make([]Event, 0, len(values))

	pipe := s.rdb.Pipeline()
	for path, value := range values {
		if value == nil {
			pipe.Del(ctx, keyPrefix+path)
			events = append(events, Event{Path: path})
			continue
		}
		buf, err := json.Marshal(value)
		if err != nil {
			return err
		}
		pipe.Set(ctx, keyPrefix+path, buf, 0)
		events = append(events, Event{Path: path, Value: buf})
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return err
	}

	for _, ev := range events {
		s.publish(ctx, ev)
	}
	return nil
}

func (s *redisStore) AtomicUpdate(ctx context.Context, path string, fn func(current json.RawMessage) (any, error)) error {
	key := keyPrefix + path

	for i := 0; i < maxTxRetries; i++ {
		var written json.RawMessage

		err := s.rdb.Watch(ctx, func(tx *redis.Tx) error {
			cur, err := tx.Get(ctx, key).Bytes()
			if errors.Is(err, redis.Nil) {
				cur = nil
			} else if err != nil {
				return err
			}

			next, err := fn(json.RawMessage(cur))
			if err != nil {
				return err
			}
			buf, err := json.Marshal(next)
			if err != nil {
				return err
			}

			_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
				pipe.Set(ctx, key, buf, redis.KeepTTL)
				return nil
			})
			if err == nil {
				written = buf
			}
			return err
		}, key)

		switch {
		case errors.Is(err, redis.TxFailedErr):
			continue // lost the race, re-read and retry
		case errors.Is(err, ErrAbort):
			return nil
		case err != nil:
			return err
		default:
			s.publish(ctx, Event{Path: path, Value: written})
			return nil
		}
	}
	return ErrConflict
}

func (s *redisStore) Subscribe(ctx context.Context, prefix string) (<-chan Event, error) {
	sub := s.rdb.Subscribe(ctx, eventChannel)
	if _, err := sub.Receive(ctx); err != nil {
		return nil, err
	}

	out := make(chan Event, 64)
	go func() {
		defer close(out)
		defer sub.Close()

		in := sub.Channel()
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-in:
				if !ok {
					return
				}
				var ev Event
				if err := json.Unmarshal([]byte(msg.Payload), &ev); err != nil {
					logger.L().Warn("store: bad event payload", zap.Error(err))
					continue
				}
				if !matchesPrefix(ev.Path, prefix) {
					continue
				}
				select {
				case out <- ev:
				case <-ctx.Done():
					return
				}
			}
		}
	}()
	return out, nil
}

func (s *redisStore) ServerTime(ctx context.Context) (int64, error) {
	t, err := s.rdb.Time(ctx).Result()
	if err != nil {
		return 0, err
	}
	return t.UnixMilli(), nil
}

func (s *redisStore) publish(ctx context.Context, ev Event) {
	buf, err := json.Marshal(ev)
	if err != nil {
		return
	}
	if err := s.rdb.Publish(ctx, eventChannel, buf).Err(); err != nil {
		logger.L().Warn("store: publish failed", zap.String("path", ev.Path), zap.Error(err))
	}
}
