package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const listingTTL = 5 * time.Minute

// ApplicationListingCache caches a job seeker's rendered application list.
// Key format: applications:<account_id>
type ApplicationListingCache struct {
	client *redis.Client
}

// NewApplicationListingCache wraps the given Redis client.
func NewApplicationListingCache(client *redis.Client) *ApplicationListingCache {
	return &ApplicationListingCache{client: client}
}

// GetListing returns the cached listing, or nil on a miss.
func (c *ApplicationListingCache) GetListing(ctx context.Context, accountID string) ([]byte, error) {
	b, err := c.client.Get(ctx, c.key(accountID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("listing cache get: %w", err)
	}
	return b, nil
}

// SetListing stores the rendered listing (expires after listingTTL).
func (c *ApplicationListingCache) SetListing(ctx context.Context, accountID string, payload []byte) error {
	return c.client.Set(ctx, c.key(accountID), payload, listingTTL).Err()
}

// Invalidate drops the cached listing after an apply or withdraw, so the
// next read reflects the write.
func (c *ApplicationListingCache) Invalidate(ctx context.Context, accountID string) error {
	return c.client.Del(ctx, c.key(accountID)).Err()
}

func (c *ApplicationListingCache) key(accountID string) string {
	return fmt.Sprintf("applications:%s", accountID)
}
