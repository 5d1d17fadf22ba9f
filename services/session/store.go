package session

import (
	"context"
	"encoding/json"
	"time"

	"vcarpool/utils"

	"github.com/go-redis/redis/v8"
)

// Store persists session contexts between requests.
type Store interface {
	Load(ctx context.Context, id string) (*Context, error)
	Save(ctx context.Context, sess *Context) error
	Delete(ctx context.Context, id string) error
}

type RedisStore struct {
	client *redis.Client
	now    func() time.Time
}

func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client, now: time.Now}
}

func sessionKey(id string) string {
	return utils.SessionPrefix + id
}

// Load fetches a session. A missing key is ErrNotFound; a stored session past its expiry is
// removed and reported as ErrExpired.
func (s *RedisStore) Load(ctx context.Context, id string) (*Context, error) {
	if id == "" {
		return nil, ErrNotFound
	}
	data, err := s.client.Get(ctx, sessionKey(id)).Bytes()
	if err == redis.Nil {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	var sess Context
	if err := json.Unmarshal(data, &sess); err != nil {
		return nil, err
	}
	if sess.Expired(s.now()) {
		_ = s.client.Del(ctx, sessionKey(id)).Err()
		return nil, ErrExpired
	}
	return &sess, nil
}

// Save writes the session with a TTL matching its remaining lifetime.
func (s *RedisStore) Save(ctx context.Context, sess *Context) error {
	ttl := sess.TTL(s.now())
	if ttl <= 0 {
		return ErrExpired
	}
	data, err := json.Marshal(sess)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, sessionKey(sess.ID), data, ttl).Err()
}

func (s *RedisStore) Delete(ctx context.Context, id string) error {
	return s.client.Del(ctx, sessionKey(id)).Err()
}

var _ Store = (*RedisStore)(nil)
