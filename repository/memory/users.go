package memory

import (
	"context"
	"fmt"
	"strings"

	models "github.com/efad07/lumina/model"
)

type userRepository struct {
	s *store
}

func (r *userRepository) Create(ctx context.Context, user *models.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, u := range r.s.users {
		if strings.EqualFold(u.Email, user.Email) {
			return fmt.Errorf("email %s: %w", user.Email, models.ErrConflict)
		}
		if strings.EqualFold(u.Username, user.Username) {
			return fmt.Errorf("username %s: %w", user.Username, models.ErrConflict)
		}
	}

	r.s.users = append(r.s.users, cloneUser(user))
	return nil
}

func (r *userRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	if u := r.s.findUser(id); u != nil {
		return cloneUser(u), nil
	}
	return nil, fmt.Errorf("user %s: %w", id, models.ErrNotFound)
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for _, u := range r.s.users {
		if strings.EqualFold(u.Email, email) {
			return cloneUser(u), nil
		}
	}
	return nil, fmt.Errorf("user with email %s: %w", email, models.ErrNotFound)
}

func (r *userRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for _, u := range r.s.users {
		if strings.EqualFold(u.Username, username) {
			return cloneUser(u), nil
		}
	}
	return nil, fmt.Errorf("user %s: %w", username, models.ErrNotFound)
}

func (r *userRepository) GetByIDs(ctx context.Context, ids []string) ([]*models.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	users := make([]*models.User, 0, len(ids))
	for _, id := range ids {
		if u := r.s.findUser(id); u != nil {
			users = append(users, cloneUser(u))
		}
	}
	return users, nil
}

func (r *userRepository) Suggested(ctx context.Context, excludeIDs []string, limit int) ([]*models.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var users []*models.User
	for _, u := range r.s.users {
		if contains(excludeIDs, u.ID) {
			continue
		}
		users = append(users, cloneUser(u))
		if len(users) == limit {
			break
		}
	}
	return users, nil
}

func (r *userRepository) Followers(ctx context.Context, userID string) ([]*models.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var users []*models.User
	for _, u := range r.s.users {
		if contains(u.FollowingIDs, userID) {
			users = append(users, cloneUser(u))
		}
	}
	return users, nil
}

func (r *userRepository) UpdateProfile(ctx context.Context, userID string, update *models.ProfileUpdate) (*models.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	u := r.s.findUser(userID)
	if u == nil {
		return nil, fmt.Errorf("user %s: %w", userID, models.ErrNotFound)
	}

	if update.FullName != nil {
		u.FullName = *update.FullName
	}
	if update.Bio != nil {
		u.Bio = *update.Bio
	}
	if update.Location != nil {
		u.Location = *update.Location
	}
	if update.Website != nil {
		u.Website = *update.Website
	}
	if update.AvatarURL != nil {
		u.AvatarURL = *update.AvatarURL
	}
	if update.CoverURL != nil {
		u.CoverURL = *update.CoverURL
	}

	return cloneUser(u), nil
}

func (r *userRepository) Follow(ctx context.Context, followerID, targetID string) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	follower := r.s.findUser(followerID)
	target := r.s.findUser(targetID)
	if follower == nil || target == nil {
		return false, fmt.Errorf("user: %w", models.ErrNotFound)
	}

	if contains(follower.FollowingIDs, targetID) {
		return false, nil
	}

	follower.FollowingIDs = append(follower.FollowingIDs, targetID)
	follower.Following++
	target.Followers++
	return true, nil
}

func (r *userRepository) Unfollow(ctx context.Context, followerID, targetID string) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	follower := r.s.findUser(followerID)
	target := r.s.findUser(targetID)
	if follower == nil || target == nil {
		return false, fmt.Errorf("user: %w", models.ErrNotFound)
	}

	if !contains(follower.FollowingIDs, targetID) {
		return false, nil
	}

	follower.FollowingIDs = remove(follower.FollowingIDs, targetID)
	follower.Following--
	target.Followers--
	return true, nil
}
