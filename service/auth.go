package service

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	models "github.com/efad07/lumina/model"
)

const defaultCoverURL = "https://images.unsplash.com/photo-1579546929518-9e396f3cc809?w=1200&q=80"

// Authenticate verifies the email/password pair and returns the account.
// A wrong password reports the same not-found failure as an unknown email,
// so callers cannot probe which addresses have accounts.
func (s *Service) Authenticate(ctx context.Context, email, password string) (*models.User, error) {
	if email == "" {
		return nil, &models.ValidationError{Field: "email", Reason: "must not be empty"}
	}

	user, err := s.store.Users.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, fmt.Errorf("account with email %s: %w", email, models.ErrNotFound)
	}

	return user, nil
}

// Register creates an account with zero counters, an empty relationship set
// and a generated avatar/cover. Duplicate email or username fails with
// ErrConflict.
func (s *Service) Register(ctx context.Context, input *models.RegisterInput) (*models.User, error) {
	if err := validateRegisterInput(input); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		ID:           uuid.NewString(),
		Username:     input.Username,
		Email:        input.Email,
		PasswordHash: string(hash),
		FullName:     input.FullName,
		AvatarURL:    defaultAvatarURL(input.FullName),
		CoverURL:     defaultCoverURL,
		Bio:          "Just joined Lumina! Writing my story...",
		Followers:    0,
		Following:    0,
		FollowingIDs: []string{},
		JoinedDate:   time.Now(),
	}

	if err := s.store.Users.Create(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

func validateRegisterInput(input *models.RegisterInput) error {
	switch {
	case strings.TrimSpace(input.FullName) == "":
		return &models.ValidationError{Field: "fullName", Reason: "must not be empty"}
	case strings.TrimSpace(input.Username) == "":
		return &models.ValidationError{Field: "username", Reason: "must not be empty"}
	case !strings.Contains(input.Email, "@"):
		return &models.ValidationError{Field: "email", Reason: "must be a valid address"}
	case len(input.Password) < minPasswordLength:
		return &models.ValidationError{Field: "password", Reason: fmt.Sprintf("must be at least %d characters", minPasswordLength)}
	}
	return nil
}

func defaultAvatarURL(fullName string) string {
	return "https://ui-avatars.com/api/?name=" + url.QueryEscape(fullName) + "&background=random&color=fff"
}
