package events

import "time"

// Event subjects (topics)
const (
	SubjectPostCreated   = "post.created"
	SubjectPostLiked     = "post.liked"
	SubjectPostCommented = "post.commented"
	SubjectUserFollowed  = "user.followed"
	SubjectMessageSent   = "message.sent"
)

// PostCreatedEvent is published when a user publishes a post.
type PostCreatedEvent struct {
	PostID    string    `json:"post_id"`
	AuthorID  string    `json:"author_id"`
	Caption   string    `json:"caption"`
	Timestamp time.Time `json:"timestamp"`
}

// PostLikedEvent is published when a like toggle lands in the liked state.
type PostLikedEvent struct {
	PostID    string    `json:"post_id"`
	PostOwner string    `json:"post_owner"`
	LikedBy   string    `json:"liked_by"`
	Timestamp time.Time `json:"timestamp"`
}

// PostCommentedEvent is published when a user comments on a post.
type PostCommentedEvent struct {
	PostID      string    `json:"post_id"`
	PostOwner   string    `json:"post_owner"`
	CommentID   string    `json:"comment_id"`
	CommentedBy string    `json:"commented_by"`
	Timestamp   time.Time `json:"timestamp"`
}

// UserFollowedEvent is published when a new follow edge is created.
// Idempotent re-follows publish nothing.
type UserFollowedEvent struct {
	FollowerID string    `json:"follower_id"`
	TargetID   string    `json:"target_id"`
	Timestamp  time.Time `json:"timestamp"`
}

// MessageSentEvent is published when a direct message is persisted.
type MessageSentEvent struct {
	MessageID  string    `json:"message_id"`
	SenderID   string    `json:"sender_id"`
	ReceiverID string    `json:"receiver_id"`
	Timestamp  time.Time `json:"timestamp"`
}
