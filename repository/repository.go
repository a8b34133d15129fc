package repository

import (
	"context"

	models "github.com/efad07/lumina/model"
)

// UserRepository persists account records and the follow graph. Follow and
// Unfollow mutate the follower's followingIds together with the paired
// counters on both sides; implementations must apply the set/counter pair
// atomically so the two can never diverge.
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	GetByIDs(ctx context.Context, ids []string) ([]*models.User, error)

	// Suggested returns users not in excludeIDs, capped at limit.
	Suggested(ctx context.Context, excludeIDs []string, limit int) ([]*models.User, error)

	// Followers returns every user whose followingIds contains userID.
	Followers(ctx context.Context, userID string) ([]*models.User, error)

	// UpdateProfile merges the non-nil fields and returns the updated record.
	UpdateProfile(ctx context.Context, userID string, update *models.ProfileUpdate) (*models.User, error)

	// Follow adds targetID to the follower's set and bumps both counters.
	// It reports false without error when the relationship already exists.
	Follow(ctx context.Context, followerID, targetID string) (bool, error)

	// Unfollow is the exact inverse of Follow; false when not following.
	Unfollow(ctx context.Context, followerID, targetID string) (bool, error)
}

// PostRepository persists posts. ToggleLike must flip likedBy membership and
// adjust the likes counter in one atomic step, even under concurrent calls
// on the same post.
type PostRepository interface {
	Create(ctx context.Context, post *models.Post) error
	GetByID(ctx context.Context, id string) (*models.Post, error)

	// Delete is idempotent; deleting an absent post is not an error.
	Delete(ctx context.Context, id string) error

	// ListRecent returns up to limit posts ordered by createdAt descending.
	ListRecent(ctx context.Context, limit int) ([]*models.Post, error)

	// ListTrending returns up to limit posts ordered by likes descending.
	ListTrending(ctx context.Context, limit int) ([]*models.Post, error)

	// ListByAuthor returns the author's posts ordered by createdAt descending.
	ListByAuthor(ctx context.Context, authorID string) ([]*models.Post, error)

	ToggleLike(ctx context.Context, postID, userID string) (*models.Post, error)

	// UpdateAuthorSnapshot propagates a profile change to the denormalized
	// author fields on every post by authorID. Empty arguments are skipped.
	UpdateAuthorSnapshot(ctx context.Context, authorID, name, avatar string) error
}

// CommentRepository persists comments. Add appends the comment and
// increments the parent post's comment counter in the same logical
// operation.
type CommentRepository interface {
	Add(ctx context.Context, comment *models.Comment) error
	ListByPost(ctx context.Context, postID string) ([]*models.Comment, error)
	DeleteByPost(ctx context.Context, postID string) error
}

// MessageRepository persists the append-only message log. Only the isRead
// flag ever mutates, via MarkRead.
type MessageRepository interface {
	Append(ctx context.Context, msg *models.Message) error

	// ListBetween returns all messages between the two users, createdAt
	// ascending.
	ListBetween(ctx context.Context, userID, otherID string) ([]*models.Message, error)

	// ListForUser returns every message sent or received by userID.
	ListForUser(ctx context.Context, userID string) ([]*models.Message, error)

	// MarkRead flags all unread messages from senderID to receiverID.
	MarkRead(ctx context.Context, receiverID, senderID string) error
}

// Store bundles the four repositories of one backing implementation. The
// service is composed against a Store and stays agnostic to which backend
// is active.
type Store struct {
	Users    UserRepository
	Posts    PostRepository
	Comments CommentRepository
	Messages MessageRepository
}
