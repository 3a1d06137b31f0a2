package pricing

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// ResolutionCache is a read-through cache for resolved price lookups.
// Entries expire after the configured TTL; price mutations additionally
// invalidate every entry for the touched product. A miss or a Redis
// failure just falls through to the repository.
type ResolutionCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewResolutionCache(client *redis.Client, ttl time.Duration) *ResolutionCache {
	return &ResolutionCache{client: client, ttl: ttl}
}

func (c *ResolutionCache) key(req ResolveRequest) string {
	variant := "-"
	if req.VariantID != nil {
		variant = fmt.Sprintf("%d", *req.VariantID)
	}
	style := "-"
	if req.HeadingStyleID != nil {
		style = fmt.Sprintf("%d", *req.HeadingStyleID)
	}
	width := "-"
	if req.Width != nil {
		width = fmt.Sprintf("%.2f", *req.Width)
	}
	height := "-"
	if req.Height != nil {
		height = fmt.Sprintf("%.2f", *req.Height)
	}
	return fmt.Sprintf("price:%d:%d:%s:%s:%s:%s", req.ProductID, req.StoreID, variant, style, width, height)
}

func (c *ResolutionCache) Get(ctx context.Context, req ResolveRequest) (Resolution, bool) {
	if c == nil || c.client == nil {
		return Resolution{}, false
	}
	payload, err := c.client.Get(ctx, c.key(req)).Bytes()
	if err != nil {
		return Resolution{}, false
	}
	var res Resolution
	if err := json.Unmarshal(payload, &res); err != nil {
		return Resolution{}, false
	}
	return res, true
}

// Set stores the resolution for the configured TTL.
func (c *ResolutionCache) Set(ctx context.Context, req ResolveRequest, res Resolution) {
	if c == nil || c.client == nil {
		return
	}
	c.SetFor(ctx, req, res, c.ttl)
}

// SetFor stores the resolution with an explicit TTL. The resolver passes
// a shortened TTL when a discount window edge falls before the default
// expiry, so a cached discounted price cannot outlive its window.
func (c *ResolutionCache) SetFor(ctx context.Context, req ResolveRequest, res Resolution, ttl time.Duration) {
	if c == nil || c.client == nil || ttl <= 0 {
		return
	}
	payload, err := json.Marshal(res)
	if err != nil {
		return
	}
	_ = c.client.Set(ctx, c.key(req), payload, ttl).Err()
}

// InvalidateProduct drops every cached resolution for the product.
func (c *ResolutionCache) InvalidateProduct(ctx context.Context, productID int64) error {
	if c == nil || c.client == nil {
		return nil
	}
	pattern := fmt.Sprintf("price:%d:*", productID)
	iter := c.client.Scan(ctx, 0, pattern, 100).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return fmt.Errorf("pricing: scan cache keys: %w", err)
	}
	if len(keys) == 0 {
		return nil
	}
	return c.client.Del(ctx, keys...).Err()
}
