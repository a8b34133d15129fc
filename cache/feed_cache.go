// Package cache provides a Redis cache-aside layer for the feed read
// paths. It only ever serves the persistent store; a miss or a Redis error
// falls through to the backing query.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	models "github.com/efad07/lumina/model"
)

const (
	KeyFeed     = "feed:recent"
	KeyTrending = "feed:trending"
)

type FeedCache struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewFeedCache(rdb *redis.Client, ttl time.Duration) *FeedCache {
	return &FeedCache{rdb: rdb, ttl: ttl}
}

// GetPosts returns the cached post list for key, or an error on miss.
func (c *FeedCache) GetPosts(ctx context.Context, key string) ([]*models.Post, error) {
	data, err := c.rdb.Get(ctx, key).Bytes()
	if err != nil {
		return nil, fmt.Errorf("cache miss for %s: %w", key, err)
	}

	var posts []*models.Post
	if err := json.Unmarshal(data, &posts); err != nil {
		return nil, fmt.Errorf("failed to decode cached posts: %w", err)
	}
	return posts, nil
}

func (c *FeedCache) SetPosts(ctx context.Context, key string, posts []*models.Post) error {
	data, err := json.Marshal(posts)
	if err != nil {
		return fmt.Errorf("failed to encode posts: %w", err)
	}

	if err := c.rdb.Set(ctx, key, data, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to cache posts: %w", err)
	}
	return nil
}

// Invalidate drops both feed keys. Called after any write that changes
// feed or trending order.
func (c *FeedCache) Invalidate(ctx context.Context) error {
	if err := c.rdb.Del(ctx, KeyFeed, KeyTrending).Err(); err != nil {
		return fmt.Errorf("failed to invalidate feed cache: %w", err)
	}
	return nil
}
