package state

import (
	"context"
	"encoding/json"

	"github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"
)

var ctx = context.Background()

const stateKey = "badminton:notification-state"

// RedisStore keeps the state under a single key, same JSON shape as the
// file backend. No TTL: the state must survive quiet weeks.
type RedisStore struct {
	client *redis.Client
}

func NewRedisStore(addr, password string, db int) *RedisStore {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	return &RedisStore{client: rdb}
}

func (r *RedisStore) Ping() error {
	return r.client.Ping(ctx).Err()
}

func (r *RedisStore) Load() (State, error) {
	val, err := r.client.Get(ctx, stateKey).Result()
	if err == redis.Nil {
		return State{}, nil
	}
	if err != nil {
		return State{}, err
	}

	var s State
	if err := json.Unmarshal([]byte(val), &s); err != nil {
		log.Printf("⚠️ Stored state is invalid JSON, starting fresh: %v", err)
		return State{}, nil
	}
	return s, nil
}

func (r *RedisStore) Save(s State) error {
	data, err := json.Marshal(Normalize(s))
	if err != nil {
		return err
	}
	return r.client.Set(ctx, stateKey, data, 0).Err()
}
