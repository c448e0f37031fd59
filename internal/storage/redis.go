package storage

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	"grab-atreat/internal/service"

	"github.com/redis/go-redis/v9"
)

// RedisSessionCache stores login sessions under a TTL and mirrors loyalty
// balances for display surfaces.
type RedisSessionCache struct {
	Client *redis.Client
	TTL    time.Duration
}

func NewRedisSessionCache(client *redis.Client, ttl time.Duration) *RedisSessionCache {
	return &RedisSessionCache{Client: client, TTL: ttl}
}

func sessionKey(token string) string { return "session:" + token }

func balanceKey(customerID string) string { return "loyalty:" + customerID }

func (c *RedisSessionCache) StoreSession(ctx context.Context, session service.Session) error {
	payload, err := json.Marshal(session)
	if err != nil {
		return err
	}
	return c.Client.Set(ctx, sessionKey(session.Token), payload, c.TTL).Err()
}

func (c *RedisSessionCache) LookupSession(ctx context.Context, token string) (service.Session, error) {
	payload, err := c.Client.Get(ctx, sessionKey(token)).Bytes()
	if err != nil {
		return service.Session{}, err
	}
	var session service.Session
	if err := json.Unmarshal(payload, &session); err != nil {
		return service.Session{}, err
	}
	return session, nil
}

func (c *RedisSessionCache) DeleteSession(ctx context.Context, token string) error {
	return c.Client.Del(ctx, sessionKey(token)).Err()
}

func (c *RedisSessionCache) SetBalance(ctx context.Context, customerID string, points int64) error {
	return c.Client.Set(ctx, balanceKey(customerID), strconv.FormatInt(points, 10), 0).Err()
}

var _ service.SessionCache = (*RedisSessionCache)(nil)
