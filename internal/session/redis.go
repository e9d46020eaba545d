package session

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"islandproperties-backend/internal/models"
)

// DefaultKeyPrefix namespaces session keys in a shared Redis.
const DefaultKeyPrefix = "island:session:"

// RedisStore keeps sessions in Redis. Each session is a JSON value under
// prefix+tokenHash with a TTL matching its expiry.
type RedisStore struct {
	client *redis.Client
	prefix string
	now    func() time.Time
}

// NewRedisStore wraps an existing client.
func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client, prefix: DefaultKeyPrefix, now: time.Now}
}

// WithClock sets the time source used for issue and expiry checks.
func (s *RedisStore) WithClock(now func() time.Time) *RedisStore {
	s.now = now
	return s
}

func (s *RedisStore) key(hash string) string {
	return s.prefix + hash
}

// Issue creates a session for the admin and returns its token
func (s *RedisStore) Issue(ctx context.Context, adminUserID string, ttl time.Duration) (string, *models.Session, error) {
	token, sess, err := NewSession(adminUserID, ttl, s.now())
	if err != nil {
		return "", nil, err
	}

	data, err := json.Marshal(sess)
	if err != nil {
		return "", nil, err
	}
	if err := s.client.Set(ctx, s.key(sess.TokenHash), data, ttl).Err(); err != nil {
		return "", nil, err
	}

	return token, sess, nil
}

// Validate returns the live session for token. Expiry is checked against
// the store clock as well as the key TTL.
func (s *RedisStore) Validate(ctx context.Context, token string) (*models.Session, error) {
	hash := HashToken(token)

	data, err := s.client.Get(ctx, s.key(hash)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	sess := &models.Session{}
	if err := json.Unmarshal(data, sess); err != nil {
		return nil, err
	}
	sess.TokenHash = hash

	if sess.Expired(s.now()) {
		s.client.Del(ctx, s.key(hash))
		return nil, ErrExpired
	}
	return sess, nil
}

// Revoke removes the session for token, if any
func (s *RedisStore) Revoke(ctx context.Context, token string) error {
	return s.client.Del(ctx, s.key(HashToken(token))).Err()
}

// Close closes the underlying client
func (s *RedisStore) Close() error {
	return s.client.Close()
}
