package tokenstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/jhoicas/academia-admin/internal/application/ports"
	"github.com/jhoicas/academia-admin/internal/domain/entity"
)

var _ ports.TokenStore = (*RedisStore)(nil)

// RedisClient subconjunto de *redis.Client que usa el almacén.
type RedisClient interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
}

// RedisStore almacén durable compartido entre máquinas del operador.
type RedisStore struct {
	client RedisClient
	key    string
	ttl    time.Duration
}

// RedisOption configura un RedisStore.
type RedisOption func(*RedisStore)

// WithKey cambia la clave de Redis.
func WithKey(key string) RedisOption {
	return func(s *RedisStore) { s.key = key }
}

// WithTTL fija la expiración de la sesión (0 = sin expiración).
func WithTTL(ttl time.Duration) RedisOption {
	return func(s *RedisStore) { s.ttl = ttl }
}

// NewRedisStore construye el almacén.
func NewRedisStore(client RedisClient, opts ...RedisOption) *RedisStore {
	s := &RedisStore{
		client: client,
		key:    "academia-admin:session",
		ttl:    7 * 24 * time.Hour,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Get lee la sesión; redis.Nil = sin sesión.
func (s *RedisStore) Get(ctx context.Context) (*entity.Session, error) {
	value, err := s.client.Get(ctx, s.key).Result()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("tokenstore: redis get: %w", err)
	}
	var sess entity.Session
	if err := json.Unmarshal([]byte(value), &sess); err != nil {
		return nil, fmt.Errorf("tokenstore: decodificar sesión: %w", err)
	}
	if sess.Token == "" {
		return nil, nil
	}
	return &sess, nil
}

// Set guarda la sesión con TTL.
func (s *RedisStore) Set(ctx context.Context, sess entity.Session) error {
	data, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("tokenstore: serializar sesión: %w", err)
	}
	if err := s.client.Set(ctx, s.key, data, s.ttl).Err(); err != nil {
		return fmt.Errorf("tokenstore: redis set: %w", err)
	}
	return nil
}

// Clear borra la clave.
func (s *RedisStore) Clear(ctx context.Context) error {
	if err := s.client.Del(ctx, s.key).Err(); err != nil {
		return fmt.Errorf("tokenstore: redis del: %w", err)
	}
	return nil
}
