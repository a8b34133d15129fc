package memory

import (
	"context"
	"fmt"
	"sort"

	models "github.com/efad07/lumina/model"
)

type commentRepository struct {
	s *store
}

func (r *commentRepository) Add(ctx context.Context, comment *models.Comment) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	p := r.s.findPost(comment.PostID)
	if p == nil {
		return fmt.Errorf("post %s: %w", comment.PostID, models.ErrNotFound)
	}

	// Append and bump the parent counter under the same lock so the
	// counter tracks the actual comment count.
	r.s.comments = append(r.s.comments, cloneComment(comment))
	p.Comments++
	return nil
}

func (r *commentRepository) ListByPost(ctx context.Context, postID string) ([]*models.Comment, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var comments []*models.Comment
	for _, c := range r.s.comments {
		if c.PostID == postID {
			comments = append(comments, cloneComment(c))
		}
	}
	sort.SliceStable(comments, func(i, j int) bool {
		return comments[i].CreatedAt.Before(comments[j].CreatedAt)
	})
	return comments, nil
}

func (r *commentRepository) DeleteByPost(ctx context.Context, postID string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	kept := r.s.comments[:0]
	for _, c := range r.s.comments {
		if c.PostID != postID {
			kept = append(kept, c)
		}
	}
	r.s.comments = kept
	return nil
}
