// Package service implements the data-access facade consumed by the
// application surface. It is composed against one of the two backing
// stores and stays agnostic to which is active; the optional feed cache
// and event publisher are wired in only on the persistent path.
package service

import (
	"context"
	"log"

	"github.com/efad07/lumina/cache"
	"github.com/efad07/lumina/publisher"
	"github.com/efad07/lumina/repository"
)

const (
	// feedLimit bounds getFeed and getTrendingPosts uniformly across both
	// backing stores.
	feedLimit = 20

	suggestedLimit     = 5
	suggestedAnonLimit = 3

	minPasswordLength = 6
)

type Service struct {
	store repository.Store
	cache *cache.FeedCache
	pub   *publisher.EventPublisher
}

type Option func(*Service)

// WithFeedCache enables the Redis cache-aside layer for the feed reads.
func WithFeedCache(c *cache.FeedCache) Option {
	return func(s *Service) { s.cache = c }
}

// WithPublisher enables best-effort event publishing after writes.
func WithPublisher(p *publisher.EventPublisher) Option {
	return func(s *Service) { s.pub = p }
}

func New(store repository.Store, opts ...Option) *Service {
	s := &Service{store: store}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Service) invalidateFeeds(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx); err != nil {
		log.Printf("Failed to invalidate feed cache: %v", err)
	}
}
