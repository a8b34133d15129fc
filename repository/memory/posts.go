package memory

import (
	"context"
	"fmt"
	"sort"

	models "github.com/efad07/lumina/model"
)

type postRepository struct {
	s *store
}

func (r *postRepository) Create(ctx context.Context, post *models.Post) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	// Newest first, matching feed order for equal timestamps.
	r.s.posts = append([]*models.Post{clonePost(post)}, r.s.posts...)
	return nil
}

func (r *postRepository) GetByID(ctx context.Context, id string) (*models.Post, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	if p := r.s.findPost(id); p != nil {
		return clonePost(p), nil
	}
	return nil, fmt.Errorf("post %s: %w", id, models.ErrNotFound)
}

func (r *postRepository) Delete(ctx context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for i, p := range r.s.posts {
		if p.ID == id {
			r.s.posts = append(r.s.posts[:i], r.s.posts[i+1:]...)
			return nil
		}
	}
	// Already absent; deletion is idempotent.
	return nil
}

func (r *postRepository) ListRecent(ctx context.Context, limit int) ([]*models.Post, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	posts := make([]*models.Post, 0, len(r.s.posts))
	for _, p := range r.s.posts {
		posts = append(posts, clonePost(p))
	}
	sort.SliceStable(posts, func(i, j int) bool {
		return posts[i].CreatedAt.After(posts[j].CreatedAt)
	})
	return truncate(posts, limit), nil
}

func (r *postRepository) ListTrending(ctx context.Context, limit int) ([]*models.Post, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	posts := make([]*models.Post, 0, len(r.s.posts))
	for _, p := range r.s.posts {
		posts = append(posts, clonePost(p))
	}
	// Ties keep scan order.
	sort.SliceStable(posts, func(i, j int) bool {
		return posts[i].Likes > posts[j].Likes
	})
	return truncate(posts, limit), nil
}

func (r *postRepository) ListByAuthor(ctx context.Context, authorID string) ([]*models.Post, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var posts []*models.Post
	for _, p := range r.s.posts {
		if p.AuthorID == authorID {
			posts = append(posts, clonePost(p))
		}
	}
	sort.SliceStable(posts, func(i, j int) bool {
		return posts[i].CreatedAt.After(posts[j].CreatedAt)
	})
	return posts, nil
}

func (r *postRepository) ToggleLike(ctx context.Context, postID, userID string) (*models.Post, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	p := r.s.findPost(postID)
	if p == nil {
		return nil, fmt.Errorf("post %s: %w", postID, models.ErrNotFound)
	}

	// Membership and counter flip under the same lock; likes can never
	// diverge from len(likedBy).
	if contains(p.LikedBy, userID) {
		p.LikedBy = remove(p.LikedBy, userID)
		p.Likes--
	} else {
		p.LikedBy = append(p.LikedBy, userID)
		p.Likes++
	}

	return clonePost(p), nil
}

func (r *postRepository) UpdateAuthorSnapshot(ctx context.Context, authorID, name, avatar string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, p := range r.s.posts {
		if p.AuthorID != authorID {
			continue
		}
		if name != "" {
			p.AuthorName = name
		}
		if avatar != "" {
			p.AuthorAvatar = avatar
		}
	}
	return nil
}

func truncate(posts []*models.Post, limit int) []*models.Post {
	if limit > 0 && len(posts) > limit {
		return posts[:limit]
	}
	return posts
}
