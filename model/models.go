package models

import "time"

// User is an account record. Followers and Following are denormalized
// counters; FollowingIDs is the authoritative relationship source, so
// Following must always equal len(FollowingIDs).
type User struct {
	ID           string    `json:"id" bson:"_id"`
	Username     string    `json:"username" bson:"username"`
	Email        string    `json:"email" bson:"email"`
	PasswordHash string    `json:"-" bson:"passwordHash"`
	FullName     string    `json:"fullName" bson:"fullName"`
	AvatarURL    string    `json:"avatarUrl" bson:"avatarUrl"`
	CoverURL     string    `json:"coverUrl" bson:"coverUrl"`
	Bio          string    `json:"bio" bson:"bio"`
	Location     string    `json:"location,omitempty" bson:"location,omitempty"`
	Website      string    `json:"website,omitempty" bson:"website,omitempty"`
	Followers    int       `json:"followers" bson:"followers"`
	Following    int       `json:"following" bson:"following"`
	FollowingIDs []string  `json:"followingIds" bson:"followingIds"`
	JoinedDate   time.Time `json:"joinedDate" bson:"joinedDate"`
}

// IsFollowing reports whether targetID is in the user's following set.
func (u *User) IsFollowing(targetID string) bool {
	for _, id := range u.FollowingIDs {
		if id == targetID {
			return true
		}
	}
	return false
}

// Post carries a denormalized author snapshot (AuthorName, AuthorAvatar)
// that is fanned out on profile updates. LikedBy is authoritative for the
// Likes counter.
type Post struct {
	ID           string    `json:"id" bson:"_id"`
	AuthorID     string    `json:"authorId" bson:"authorId"`
	AuthorName   string    `json:"authorName" bson:"authorName"`
	AuthorAvatar string    `json:"authorAvatar" bson:"authorAvatar"`
	Caption      string    `json:"caption" bson:"caption"`
	ImageURL     string    `json:"imageUrl,omitempty" bson:"imageUrl,omitempty"`
	VideoURL     string    `json:"videoUrl,omitempty" bson:"videoUrl,omitempty"`
	Likes        int       `json:"likes" bson:"likes"`
	Comments     int       `json:"comments" bson:"comments"`
	CreatedAt    time.Time `json:"createdAt" bson:"createdAt"`
	LikedBy      []string  `json:"likedBy" bson:"likedBy"`
	SavedBy      []string  `json:"savedBy" bson:"savedBy"`
}

// LikedBy membership check.
func (p *Post) IsLikedBy(userID string) bool {
	for _, id := range p.LikedBy {
		if id == userID {
			return true
		}
	}
	return false
}

type Comment struct {
	ID           string    `json:"id" bson:"_id"`
	PostID       string    `json:"postId" bson:"postId"`
	AuthorID     string    `json:"authorId" bson:"authorId"`
	AuthorName   string    `json:"authorName" bson:"authorName"`
	AuthorAvatar string    `json:"authorAvatar" bson:"authorAvatar"`
	Content      string    `json:"content" bson:"content"`
	CreatedAt    time.Time `json:"createdAt" bson:"createdAt"`
}

// Message is directed sender -> receiver. Only IsRead ever mutates, flipped
// when the receiver loads the thread.
type Message struct {
	ID         string    `json:"id" bson:"_id"`
	SenderID   string    `json:"senderId" bson:"senderId"`
	ReceiverID string    `json:"receiverId" bson:"receiverId"`
	Content    string    `json:"content" bson:"content"`
	CreatedAt  time.Time `json:"createdAt" bson:"createdAt"`
	IsRead     bool      `json:"isRead" bson:"isRead"`
}

// Conversation is a derived view keyed by the counterpart user. It is never
// persisted; it is recomputed from the message log on every fetch.
type Conversation struct {
	UserID      string   `json:"userId"`
	User        *User    `json:"user"`
	LastMessage *Message `json:"lastMessage"`
	UnreadCount int      `json:"unreadCount"`
}

// RegisterInput is the signup payload.
type RegisterInput struct {
	FullName string `json:"fullName"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// PostDraft is the caller-supplied part of a new post. IDs, counters and
// timestamps are assigned by the service.
type PostDraft struct {
	AuthorID string `json:"authorId"`
	Caption  string `json:"caption"`
	ImageURL string `json:"imageUrl,omitempty"`
	VideoURL string `json:"videoUrl,omitempty"`
}

// ProfileUpdate is a partial update; nil fields are left untouched.
type ProfileUpdate struct {
	FullName  *string `json:"fullName,omitempty"`
	Bio       *string `json:"bio,omitempty"`
	Location  *string `json:"location,omitempty"`
	Website   *string `json:"website,omitempty"`
	AvatarURL *string `json:"avatarUrl,omitempty"`
	CoverURL  *string `json:"coverUrl,omitempty"`
}
