package redis

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/donorhub/donorhub-api/internal/core/ports"
)

const defaultTokenTTL = 5 * time.Minute

// TokenCache stores verified token identities for a short TTL so repeated
// requests with the same credential skip the identity provider. Keys are a
// digest of the token, never the token itself.
type TokenCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewTokenCache creates a TokenCache. ttl <= 0 selects the default.
func NewTokenCache(client *redis.Client, ttl time.Duration) *TokenCache {
	if ttl <= 0 {
		ttl = defaultTokenTTL
	}
	return &TokenCache{client: client, ttl: ttl}
}

type cachedIdentity struct {
	Email string `json:"email"`
	Name  string `json:"name"`
}

// Get returns the cached identity for token, reporting whether it was found.
func (c *TokenCache) Get(ctx context.Context, token string) (ports.Identity, bool, error) {
	raw, err := c.client.Get(ctx, c.key(token)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return ports.Identity{}, false, nil
		}
		return ports.Identity{}, false, fmt.Errorf("token cache get: %w", err)
	}

	var ci cachedIdentity
	if err := json.Unmarshal([]byte(raw), &ci); err != nil {
		return ports.Identity{}, false, fmt.Errorf("token cache decode: %w", err)
	}
	return ports.Identity{Email: ci.Email, Name: ci.Name}, true, nil
}

// Set caches the verified identity for the configured TTL.
func (c *TokenCache) Set(ctx context.Context, token string, identity ports.Identity) error {
	raw, err := json.Marshal(cachedIdentity{Email: identity.Email, Name: identity.Name})
	if err != nil {
		return fmt.Errorf("token cache encode: %w", err)
	}
	return c.client.Set(ctx, c.key(token), raw, c.ttl).Err()
}

func (c *TokenCache) key(token string) string {
	sum := sha256.Sum256([]byte(token))
	return "token:" + hex.EncodeToString(sum[:])
}
