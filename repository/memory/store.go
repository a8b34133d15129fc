// Package memory implements the repositories over process-local slices.
// The store is transient: seeded at construction, lost on shutdown. A single
// mutex guards every compound mutation, so counter/set pairs (likes/likedBy,
// following/followingIds) are updated atomically even under concurrent
// callers.
package memory

import (
	"sync"

	models "github.com/efad07/lumina/model"
	"github.com/efad07/lumina/repository"
)

type store struct {
	mu       sync.RWMutex
	users    []*models.User
	posts    []*models.Post
	comments []*models.Comment
	messages []*models.Message
}

// New returns an empty transient store.
func New() repository.Store {
	return wrap(&store{})
}

// NewSeeded returns a transient store preloaded with the demo fixtures.
func NewSeeded() repository.Store {
	s := &store{}
	seed(s)
	return wrap(s)
}

func wrap(s *store) repository.Store {
	return repository.Store{
		Users:    &userRepository{s},
		Posts:    &postRepository{s},
		Comments: &commentRepository{s},
		Messages: &messageRepository{s},
	}
}

func (s *store) findUser(id string) *models.User {
	for _, u := range s.users {
		if u.ID == id {
			return u
		}
	}
	return nil
}

func (s *store) findPost(id string) *models.Post {
	for _, p := range s.posts {
		if p.ID == id {
			return p
		}
	}
	return nil
}

// Records handed back to callers are copies; the slices backing the live
// records never escape the lock.

func cloneUser(u *models.User) *models.User {
	c := *u
	c.FollowingIDs = append([]string(nil), u.FollowingIDs...)
	return &c
}

func clonePost(p *models.Post) *models.Post {
	c := *p
	c.LikedBy = append([]string(nil), p.LikedBy...)
	c.SavedBy = append([]string(nil), p.SavedBy...)
	return &c
}

func cloneComment(c *models.Comment) *models.Comment {
	cp := *c
	return &cp
}

func cloneMessage(m *models.Message) *models.Message {
	cp := *m
	return &cp
}

func remove(ids []string, id string) []string {
	out := ids[:0]
	for _, v := range ids {
		if v != id {
			out = append(out, v)
		}
	}
	return out
}

func contains(ids []string, id string) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}
