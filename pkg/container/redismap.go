package container

import (
	"context"
	"encoding/json"
	"fmt"
	"sync/atomic"

	"github.com/redis/go-redis/v9"
)

// redisKeySeq distinguishes hash keys derived by Empty.
var redisKeySeq int64

// RedisMap backs Map with a Redis hash. Keys are strings; values are
// JSON-encoded. It is intended for durable result aggregation (e.g. the
// output container of ToContainer), not for in-progress fold state, which
// is not serializable.
//
// Redis operations cannot fail through the Map interface, so the first
// failure is recorded and all subsequent operations become no-ops; check
// Err after use, the way a bufio.Scanner is checked.
type RedisMap[V any] struct {
	ctx    context.Context
	client redis.UniversalClient
	key    string
	err    error
}

// NewRedis creates a map stored in the Redis hash named key.
func NewRedis[V any](ctx context.Context, client redis.UniversalClient, key string) *RedisMap[V] {
	return &RedisMap[V]{ctx: ctx, client: client, key: key}
}

// Err returns the first Redis or encoding failure encountered, if any.
func (r *RedisMap[V]) Err() error {
	return r.err
}

// Key returns the Redis hash key backing this map.
func (r *RedisMap[V]) Key() string {
	return r.key
}

func (r *RedisMap[V]) fail(op string, err error) {
	if r.err == nil {
		r.err = fmt.Errorf("redis container %s %q: %w", op, r.key, err)
	}
}

func (r *RedisMap[V]) Empty() Map[string, V] {
	n := atomic.AddInt64(&redisKeySeq, 1)
	return NewRedis[V](r.ctx, r.client, fmt.Sprintf("%s:%d", r.key, n))
}

func (r *RedisMap[V]) Insert(key string, value V) {
	if r.err != nil {
		return
	}
	data, err := json.Marshal(value)
	if err != nil {
		r.fail("encode", err)
		return
	}
	if err := r.client.HSet(r.ctx, r.key, key, data).Err(); err != nil {
		r.fail("insert", err)
	}
}

func (r *RedisMap[V]) Lookup(key string) (V, bool) {
	var zero V
	if r.err != nil {
		return zero, false
	}
	data, err := r.client.HGet(r.ctx, r.key, key).Bytes()
	if err == redis.Nil {
		return zero, false
	}
	if err != nil {
		r.fail("lookup", err)
		return zero, false
	}
	var v V
	if err := json.Unmarshal(data, &v); err != nil {
		r.fail("decode", err)
		return zero, false
	}
	return v, true
}

func (r *RedisMap[V]) Delete(key string) {
	if r.err != nil {
		return
	}
	if err := r.client.HDel(r.ctx, r.key, key).Err(); err != nil {
		r.fail("delete", err)
	}
}

func (r *RedisMap[V]) Union(other Map[string, V]) {
	if r.err != nil {
		return
	}
	err := other.TraverseWithKey(func(k string, v V) error {
		r.Insert(k, v)
		return r.err
	})
	if err != nil && r.err == nil {
		r.fail("union", err)
	}
}

func (r *RedisMap[V]) TraverseWithKey(fn func(string, V) error) error {
	if r.err != nil {
		return r.err
	}
	all, err := r.client.HGetAll(r.ctx, r.key).Result()
	if err != nil {
		r.fail("traverse", err)
		return r.err
	}
	for k, data := range all {
		var v V
		if err := json.Unmarshal([]byte(data), &v); err != nil {
			r.fail("decode", err)
			return r.err
		}
		if err := fn(k, v); err != nil {
			return err
		}
	}
	return nil
}

func (r *RedisMap[V]) Len() int {
	if r.err != nil {
		return 0
	}
	n, err := r.client.HLen(r.ctx, r.key).Result()
	if err != nil {
		r.fail("len", err)
		return 0
	}
	return int(n)
}
