package session

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/redis/go-redis/v9"
)

const (
	tokenKey = "auth:token"
	adminKey = "auth:admin"
)

// RedisStore is the durable side of the session. Keys are fixed: the console
// has one operator session at a time, so concurrent logins are last-write-
// wins, the same behavior the original had across browser tabs.
type RedisStore struct {
	client *redis.Client
	cookie CookieOptions
}

// NewRedisStore creates a Redis-backed session store.
func NewRedisStore(client *redis.Client, cookie CookieOptions) *RedisStore {
	return &RedisStore{
		client: client,
		cookie: cookie,
	}
}

func (r *RedisStore) Commit(ctx context.Context, w http.ResponseWriter, token string, admin *Admin, remember bool) error {
	if token == "" || admin == nil {
		return ErrEmptySession
	}

	data, err := json.Marshal(admin)
	if err != nil {
		return fmt.Errorf("session: failed to marshal admin: %w", err)
	}

	// Durable writes first, cookie second. No TTL on the durable side: only
	// the cookie expires, the store is cleared explicitly on logout.
	if err := r.client.Set(ctx, tokenKey, token, 0).Err(); err != nil {
		return fmt.Errorf("session: failed to store token: %w", err)
	}
	if err := r.client.Set(ctx, adminKey, data, 0).Err(); err != nil {
		return fmt.Errorf("session: failed to store admin: %w", err)
	}

	SetCookie(w, token, remember, r.cookie)
	return nil
}

func (r *RedisStore) Token(ctx context.Context) (string, error) {
	val, err := r.client.Get(ctx, tokenKey).Result()
	if err == redis.Nil {
		return "", nil // not logged in
	}
	if err != nil {
		return "", err
	}
	return val, nil
}

func (r *RedisStore) Admin(ctx context.Context) (*Admin, error) {
	val, err := r.client.Get(ctx, adminKey).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var a Admin
	if err := json.Unmarshal([]byte(val), &a); err != nil {
		return nil, fmt.Errorf("session: failed to unmarshal admin: %w", err)
	}
	return &a, nil
}

func (r *RedisStore) Clear(ctx context.Context, w http.ResponseWriter) error {
	if err := r.client.Del(ctx, tokenKey, adminKey).Err(); err != nil {
		return err
	}
	ClearCookie(w, r.cookie)
	return nil
}

func (r *RedisStore) Has(ctx context.Context) (bool, error) {
	n, err := r.client.Exists(ctx, tokenKey).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
