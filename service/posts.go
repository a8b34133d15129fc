package service

import (
	"context"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/efad07/lumina/cache"
	"github.com/efad07/lumina/events"
	models "github.com/efad07/lumina/model"
)

// GetFeed returns the most recent posts, newest first.
func (s *Service) GetFeed(ctx context.Context) ([]*models.Post, error) {
	return s.cachedList(ctx, cache.KeyFeed, func() ([]*models.Post, error) {
		return s.store.Posts.ListRecent(ctx, feedLimit)
	})
}

// GetTrendingPosts returns posts ordered by like count.
func (s *Service) GetTrendingPosts(ctx context.Context) ([]*models.Post, error) {
	return s.cachedList(ctx, cache.KeyTrending, func() ([]*models.Post, error) {
		return s.store.Posts.ListTrending(ctx, feedLimit)
	})
}

func (s *Service) cachedList(ctx context.Context, key string, load func() ([]*models.Post, error)) ([]*models.Post, error) {
	if s.cache != nil {
		if posts, err := s.cache.GetPosts(ctx, key); err == nil {
			return posts, nil
		}
	}

	posts, err := load()
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		go func() {
			if err := s.cache.SetPosts(context.Background(), key, posts); err != nil {
				log.Printf("Failed to cache %s: %v", key, err)
			}
		}()
	}

	return posts, nil
}

// GetUserPosts returns the author's posts, newest first.
func (s *Service) GetUserPosts(ctx context.Context, userID string) ([]*models.Post, error) {
	return s.store.Posts.ListByAuthor(ctx, userID)
}

// CreatePost publishes a draft. The author snapshot is taken at publish
// time; the post is assigned its id, zero counters and a server-side
// timestamp.
func (s *Service) CreatePost(ctx context.Context, draft *models.PostDraft) (*models.Post, error) {
	if strings.TrimSpace(draft.Caption) == "" {
		return nil, &models.ValidationError{Field: "caption", Reason: "must not be empty"}
	}

	author, err := s.store.Users.GetByID(ctx, draft.AuthorID)
	if err != nil {
		return nil, err
	}

	post := &models.Post{
		ID:           uuid.NewString(),
		AuthorID:     author.ID,
		AuthorName:   author.FullName,
		AuthorAvatar: author.AvatarURL,
		Caption:      draft.Caption,
		ImageURL:     draft.ImageURL,
		VideoURL:     draft.VideoURL,
		Likes:        0,
		Comments:     0,
		CreatedAt:    time.Now(),
		LikedBy:      []string{},
		SavedBy:      []string{},
	}

	if err := s.store.Posts.Create(ctx, post); err != nil {
		return nil, err
	}

	s.invalidateFeeds(ctx)

	if s.pub != nil {
		err := s.pub.PublishPostCreated(events.PostCreatedEvent{
			PostID:    post.ID,
			AuthorID:  post.AuthorID,
			Caption:   post.Caption,
			Timestamp: post.CreatedAt,
		})
		if err != nil {
			log.Printf("Failed to publish post created event: %v", err)
		}
	}

	return post, nil
}

// DeletePost removes the post and its comments. Deleting an absent post is
// a no-op.
func (s *Service) DeletePost(ctx context.Context, postID string) error {
	if err := s.store.Posts.Delete(ctx, postID); err != nil {
		return err
	}
	if err := s.store.Comments.DeleteByPost(ctx, postID); err != nil {
		return err
	}

	s.invalidateFeeds(ctx)
	return nil
}

// ToggleLike flips the caller's like on the post and returns the updated
// record. The membership/counter pair changes atomically in the store.
func (s *Service) ToggleLike(ctx context.Context, postID, userID string) (*models.Post, error) {
	post, err := s.store.Posts.ToggleLike(ctx, postID, userID)
	if err != nil {
		return nil, err
	}

	s.invalidateFeeds(ctx)

	if s.pub != nil && post.IsLikedBy(userID) {
		err := s.pub.PublishPostLiked(events.PostLikedEvent{
			PostID:    post.ID,
			PostOwner: post.AuthorID,
			LikedBy:   userID,
			Timestamp: time.Now(),
		})
		if err != nil {
			log.Printf("Failed to publish post liked event: %v", err)
		}
	}

	return post, nil
}

// GetPost returns a single post by id.
func (s *Service) GetPost(ctx context.Context, postID string) (*models.Post, error) {
	return s.store.Posts.GetByID(ctx, postID)
}

// GetComments returns the post's comments, oldest first.
func (s *Service) GetComments(ctx context.Context, postID string) ([]*models.Comment, error) {
	return s.store.Comments.ListByPost(ctx, postID)
}

// AddComment appends a comment; the parent post's counter moves with it.
func (s *Service) AddComment(ctx context.Context, postID, userID, content string) (*models.Comment, error) {
	if strings.TrimSpace(content) == "" {
		return nil, &models.ValidationError{Field: "content", Reason: "must not be empty"}
	}

	author, err := s.store.Users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	post, err := s.store.Posts.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}

	comment := &models.Comment{
		ID:           uuid.NewString(),
		PostID:       postID,
		AuthorID:     author.ID,
		AuthorName:   author.FullName,
		AuthorAvatar: author.AvatarURL,
		Content:      content,
		CreatedAt:    time.Now(),
	}

	if err := s.store.Comments.Add(ctx, comment); err != nil {
		return nil, err
	}

	if s.pub != nil {
		err := s.pub.PublishPostCommented(events.PostCommentedEvent{
			PostID:      postID,
			PostOwner:   post.AuthorID,
			CommentID:   comment.ID,
			CommentedBy: author.ID,
			Timestamp:   comment.CreatedAt,
		})
		if err != nil {
			log.Printf("Failed to publish post commented event: %v", err)
		}
	}

	return comment, nil
}
