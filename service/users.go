package service

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/efad07/lumina/events"
	models "github.com/efad07/lumina/model"
)

// GetUserProfile looks a user up by username.
func (s *Service) GetUserProfile(ctx context.Context, username string) (*models.User, error) {
	return s.store.Users.GetByUsername(ctx, username)
}

// GetUserByID looks a user up by id.
func (s *Service) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	return s.store.Users.GetByID(ctx, id)
}

// GetSuggestedUsers returns users the caller does not already follow,
// excluding the caller. Anonymous callers get a smaller, unfiltered list.
func (s *Service) GetSuggestedUsers(ctx context.Context, currentUserID string) ([]*models.User, error) {
	if currentUserID == "" {
		return s.store.Users.Suggested(ctx, nil, suggestedAnonLimit)
	}

	current, err := s.store.Users.GetByID(ctx, currentUserID)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return s.store.Users.Suggested(ctx, nil, suggestedAnonLimit)
		}
		return nil, err
	}

	exclude := append([]string{current.ID}, current.FollowingIDs...)
	return s.store.Users.Suggested(ctx, exclude, suggestedLimit)
}

// GetFollowers returns every user following userID.
func (s *Service) GetFollowers(ctx context.Context, userID string) ([]*models.User, error) {
	return s.store.Users.Followers(ctx, userID)
}

// GetFollowing resolves the user's followingIds to full records.
func (s *Service) GetFollowing(ctx context.Context, userID string) ([]*models.User, error) {
	user, err := s.store.Users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.store.Users.GetByIDs(ctx, user.FollowingIDs)
}

// UpdateProfile merges the update into the user record. A changed name or
// avatar is fanned out to the denormalized author snapshot on every post by
// this user.
func (s *Service) UpdateProfile(ctx context.Context, userID string, update *models.ProfileUpdate) (*models.User, error) {
	user, err := s.store.Users.UpdateProfile(ctx, userID, update)
	if err != nil {
		return nil, err
	}

	var name, avatar string
	if update.FullName != nil {
		name = *update.FullName
	}
	if update.AvatarURL != nil {
		avatar = *update.AvatarURL
	}
	if name != "" || avatar != "" {
		if err := s.store.Posts.UpdateAuthorSnapshot(ctx, userID, name, avatar); err != nil {
			return nil, err
		}
		s.invalidateFeeds(ctx)
	}

	return user, nil
}

// FollowUser adds target to the caller's following set and moves the paired
// counters on both sides. Following an already-followed user is a no-op.
func (s *Service) FollowUser(ctx context.Context, followerID, targetID string) error {
	if followerID == targetID {
		return &models.ValidationError{Field: "targetId", Reason: "users cannot follow themselves"}
	}

	created, err := s.store.Users.Follow(ctx, followerID, targetID)
	if err != nil {
		return err
	}

	if created && s.pub != nil {
		err := s.pub.PublishUserFollowed(events.UserFollowedEvent{
			FollowerID: followerID,
			TargetID:   targetID,
			Timestamp:  time.Now(),
		})
		if err != nil {
			log.Printf("Failed to publish user followed event: %v", err)
		}
	}

	return nil
}

// UnfollowUser is the exact inverse of FollowUser. Unfollowing a user who
// is not followed is a no-op.
func (s *Service) UnfollowUser(ctx context.Context, followerID, targetID string) error {
	if followerID == targetID {
		return &models.ValidationError{Field: "targetId", Reason: "users cannot unfollow themselves"}
	}

	_, err := s.store.Users.Unfollow(ctx, followerID, targetID)
	return err
}
