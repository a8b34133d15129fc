package service_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	models "github.com/efad07/lumina/model"
	"github.com/efad07/lumina/repository/memory"
	"github.com/efad07/lumina/service"
)

func newService() *service.Service {
	return service.New(memory.New())
}

func register(t *testing.T, svc *service.Service, username string) *models.User {
	t.Helper()

	user, err := svc.Register(context.Background(), &models.RegisterInput{
		FullName: username + " Example",
		Username: username,
		Email:    username + "@example.com",
		Password: "secret123",
	})
	if err != nil {
		t.Fatalf("register %s: %v", username, err)
	}
	return user
}

func TestRegister(t *testing.T) {
	svc := newService()
	ctx := context.Background()

	user, err := svc.Register(ctx, &models.RegisterInput{
		FullName: "Jane Doe",
		Username: "janedoe",
		Email:    "jane@x.io",
		Password: "secret1",
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	if user.ID == "" {
		t.Error("expected generated id")
	}
	if user.Followers != 0 || user.Following != 0 {
		t.Errorf("expected zero counters, got followers=%d following=%d", user.Followers, user.Following)
	}
	if len(user.FollowingIDs) != 0 {
		t.Errorf("expected empty following set, got %v", user.FollowingIDs)
	}
	if user.AvatarURL == "" || user.CoverURL == "" {
		t.Error("expected generated avatar and cover")
	}

	_, err = svc.Register(ctx, &models.RegisterInput{
		FullName: "Jane Clone",
		Username: "janedoe2",
		Email:    "jane@x.io",
		Password: "secret1",
	})
	if !errors.Is(err, models.ErrConflict) {
		t.Errorf("duplicate email: expected ErrConflict, got %v", err)
	}

	_, err = svc.Register(ctx, &models.RegisterInput{
		FullName: "Jane Clone",
		Username: "janedoe",
		Email:    "jane2@x.io",
		Password: "secret1",
	})
	if !errors.Is(err, models.ErrConflict) {
		t.Errorf("duplicate username: expected ErrConflict, got %v", err)
	}
}

func TestRegisterValidation(t *testing.T) {
	svc := newService()
	ctx := context.Background()

	tests := []struct {
		name  string
		input models.RegisterInput
	}{
		{"empty full name", models.RegisterInput{Username: "a", Email: "a@x.io", Password: "secret1"}},
		{"empty username", models.RegisterInput{FullName: "A", Email: "a@x.io", Password: "secret1"}},
		{"bad email", models.RegisterInput{FullName: "A", Username: "a", Email: "nope", Password: "secret1"}},
		{"short password", models.RegisterInput{FullName: "A", Username: "a", Email: "a@x.io", Password: "short"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := svc.Register(ctx, &tt.input); !models.IsValidation(err) {
				t.Errorf("expected ValidationError, got %v", err)
			}
		})
	}
}

func TestAuthenticate(t *testing.T) {
	svc := newService()
	ctx := context.Background()
	register(t, svc, "alice")

	user, err := svc.Authenticate(ctx, "alice@example.com", "secret123")
	if err != nil {
		t.Fatalf("authenticate: %v", err)
	}
	if user.Username != "alice" {
		t.Errorf("expected alice, got %s", user.Username)
	}

	// Email lookup is case-insensitive.
	if _, err := svc.Authenticate(ctx, "ALICE@example.com", "secret123"); err != nil {
		t.Errorf("case-insensitive email: %v", err)
	}

	if _, err := svc.Authenticate(ctx, "alice@example.com", "wrong-password"); !errors.Is(err, models.ErrNotFound) {
		t.Errorf("wrong password: expected ErrNotFound, got %v", err)
	}

	if _, err := svc.Authenticate(ctx, "nobody@example.com", "secret123"); !errors.Is(err, models.ErrNotFound) {
		t.Errorf("unknown email: expected ErrNotFound, got %v", err)
	}
}

func TestFeedOrdering(t *testing.T) {
	svc := newService()
	ctx := context.Background()
	author := register(t, svc, "bob")

	captions := []string{"first", "second", "third"}
	for _, caption := range captions {
		if _, err := svc.CreatePost(ctx, &models.PostDraft{AuthorID: author.ID, Caption: caption}); err != nil {
			t.Fatalf("create post: %v", err)
		}
	}

	feed, err := svc.GetFeed(ctx)
	if err != nil {
		t.Fatalf("get feed: %v", err)
	}
	if len(feed) != 3 {
		t.Fatalf("expected 3 posts, got %d", len(feed))
	}
	if feed[0].Caption != "third" || feed[2].Caption != "first" {
		t.Errorf("expected newest first, got [%s %s %s]", feed[0].Caption, feed[1].Caption, feed[2].Caption)
	}

	for i := 1; i < len(feed); i++ {
		if feed[i].CreatedAt.After(feed[i-1].CreatedAt) {
			t.Errorf("feed not in descending createdAt order at index %d", i)
		}
	}
}

func TestFeedLimit(t *testing.T) {
	svc := newService()
	ctx := context.Background()
	author := register(t, svc, "prolific")

	for i := 0; i < 25; i++ {
		if _, err := svc.CreatePost(ctx, &models.PostDraft{AuthorID: author.ID, Caption: "post"}); err != nil {
			t.Fatalf("create post: %v", err)
		}
	}

	feed, err := svc.GetFeed(ctx)
	if err != nil {
		t.Fatalf("get feed: %v", err)
	}
	if len(feed) != 20 {
		t.Errorf("expected feed capped at 20 posts, got %d", len(feed))
	}
}

func TestTrendingOrdering(t *testing.T) {
	svc := newService()
	ctx := context.Background()
	author := register(t, svc, "carol")
	fans := []*models.User{register(t, svc, "dan"), register(t, svc, "erin")}

	quiet, err := svc.CreatePost(ctx, &models.PostDraft{AuthorID: author.ID, Caption: "quiet"})
	if err != nil {
		t.Fatalf("create post: %v", err)
	}
	popular, err := svc.CreatePost(ctx, &models.PostDraft{AuthorID: author.ID, Caption: "popular"})
	if err != nil {
		t.Fatalf("create post: %v", err)
	}

	for _, fan := range fans {
		if _, err := svc.ToggleLike(ctx, popular.ID, fan.ID); err != nil {
			t.Fatalf("toggle like: %v", err)
		}
	}

	trending, err := svc.GetTrendingPosts(ctx)
	if err != nil {
		t.Fatalf("get trending: %v", err)
	}
	if trending[0].ID != popular.ID {
		t.Errorf("expected %s first, got %s", popular.ID, trending[0].ID)
	}
	if trending[1].ID != quiet.ID {
		t.Errorf("expected %s second, got %s", quiet.ID, trending[1].ID)
	}
}

func TestCreatePostSnapshot(t *testing.T) {
	svc := newService()
	ctx := context.Background()
	author := register(t, svc, "frank")

	post, err := svc.CreatePost(ctx, &models.PostDraft{AuthorID: author.ID, Caption: "hello"})
	if err != nil {
		t.Fatalf("create post: %v", err)
	}

	if post.AuthorName != author.FullName || post.AuthorAvatar != author.AvatarURL {
		t.Errorf("author snapshot not taken: %q / %q", post.AuthorName, post.AuthorAvatar)
	}
	if post.Likes != 0 || post.Comments != 0 || len(post.LikedBy) != 0 {
		t.Error("expected zero counters on a new post")
	}

	if _, err := svc.CreatePost(ctx, &models.PostDraft{AuthorID: author.ID, Caption: "  "}); !models.IsValidation(err) {
		t.Errorf("blank caption: expected ValidationError, got %v", err)
	}
	if _, err := svc.CreatePost(ctx, &models.PostDraft{AuthorID: "missing", Caption: "x"}); !errors.Is(err, models.ErrNotFound) {
		t.Errorf("missing author: expected ErrNotFound, got %v", err)
	}
}

func TestDeletePost(t *testing.T) {
	svc := newService()
	ctx := context.Background()
	author := register(t, svc, "grace")

	post, err := svc.CreatePost(ctx, &models.PostDraft{AuthorID: author.ID, Caption: "to delete"})
	if err != nil {
		t.Fatalf("create post: %v", err)
	}
	if _, err := svc.AddComment(ctx, post.ID, author.ID, "a comment"); err != nil {
		t.Fatalf("add comment: %v", err)
	}

	if err := svc.DeletePost(ctx, post.ID); err != nil {
		t.Fatalf("delete post: %v", err)
	}
	// Idempotent: deleting again is not an error.
	if err := svc.DeletePost(ctx, post.ID); err != nil {
		t.Fatalf("second delete: %v", err)
	}

	if _, err := svc.GetPost(ctx, post.ID); !errors.Is(err, models.ErrNotFound) {
		t.Errorf("expected ErrNotFound after delete, got %v", err)
	}

	comments, err := svc.GetComments(ctx, post.ID)
	if err != nil {
		t.Fatalf("get comments: %v", err)
	}
	if len(comments) != 0 {
		t.Errorf("expected comments removed with the post, got %d", len(comments))
	}
}

func TestToggleLikePairing(t *testing.T) {
	svc := newService()
	ctx := context.Background()
	author := register(t, svc, "heidi")
	liker := register(t, svc, "ivan")

	post, err := svc.CreatePost(ctx, &models.PostDraft{AuthorID: author.ID, Caption: "like me"})
	if err != nil {
		t.Fatalf("create post: %v", err)
	}

	liked, err := svc.ToggleLike(ctx, post.ID, liker.ID)
	if err != nil {
		t.Fatalf("toggle like: %v", err)
	}
	if liked.Likes != 1 || !liked.IsLikedBy(liker.ID) {
		t.Errorf("expected liked state, got likes=%d likedBy=%v", liked.Likes, liked.LikedBy)
	}

	unliked, err := svc.ToggleLike(ctx, post.ID, liker.ID)
	if err != nil {
		t.Fatalf("toggle like: %v", err)
	}
	if unliked.Likes != 0 || unliked.IsLikedBy(liker.ID) {
		t.Errorf("even number of toggles must restore the original state, got likes=%d likedBy=%v", unliked.Likes, unliked.LikedBy)
	}

	if _, err := svc.ToggleLike(ctx, "missing", liker.ID); !errors.Is(err, models.ErrNotFound) {
		t.Errorf("missing post: expected ErrNotFound, got %v", err)
	}
}

func TestToggleLikeConcurrent(t *testing.T) {
	svc := newService()
	ctx := context.Background()
	author := register(t, svc, "judy")

	post, err := svc.CreatePost(ctx, &models.PostDraft{AuthorID: author.ID, Caption: "contended"})
	if err != nil {
		t.Fatalf("create post: %v", err)
	}

	users := make([]*models.User, 4)
	for i, name := range []string{"w1", "w2", "w3", "w4"} {
		users[i] = register(t, svc, name)
	}

	const togglesPerUser = 20 // even, so every user ends unliked

	var wg sync.WaitGroup
	for _, u := range users {
		wg.Add(1)
		go func(userID string) {
			defer wg.Done()
			for i := 0; i < togglesPerUser; i++ {
				if _, err := svc.ToggleLike(ctx, post.ID, userID); err != nil {
					t.Errorf("toggle like: %v", err)
					return
				}
			}
		}(u.ID)
	}
	wg.Wait()

	got, err := svc.GetPost(ctx, post.ID)
	if err != nil {
		t.Fatalf("get post: %v", err)
	}
	if got.Likes != len(got.LikedBy) {
		t.Errorf("likes counter diverged from likedBy: %d != %d", got.Likes, len(got.LikedBy))
	}
	if got.Likes != 0 {
		t.Errorf("expected all likes paired off, got %d", got.Likes)
	}
}

func TestComments(t *testing.T) {
	svc := newService()
	ctx := context.Background()
	author := register(t, svc, "kim")
	commenter := register(t, svc, "leo")

	post, err := svc.CreatePost(ctx, &models.PostDraft{AuthorID: author.ID, Caption: "discuss"})
	if err != nil {
		t.Fatalf("create post: %v", err)
	}

	for _, content := range []string{"first!", "second"} {
		if _, err := svc.AddComment(ctx, post.ID, commenter.ID, content); err != nil {
			t.Fatalf("add comment: %v", err)
		}
	}

	got, err := svc.GetPost(ctx, post.ID)
	if err != nil {
		t.Fatalf("get post: %v", err)
	}
	if got.Comments != 2 {
		t.Errorf("expected comment counter 2, got %d", got.Comments)
	}

	comments, err := svc.GetComments(ctx, post.ID)
	if err != nil {
		t.Fatalf("get comments: %v", err)
	}
	if len(comments) != 2 {
		t.Fatalf("expected 2 comments, got %d", len(comments))
	}
	if comments[0].Content != "first!" {
		t.Errorf("expected oldest first, got %q", comments[0].Content)
	}
	if comments[0].AuthorName != commenter.FullName {
		t.Errorf("author snapshot missing on comment: %q", comments[0].AuthorName)
	}

	if _, err := svc.AddComment(ctx, "missing", commenter.ID, "hi"); !errors.Is(err, models.ErrNotFound) {
		t.Errorf("missing post: expected ErrNotFound, got %v", err)
	}
	if _, err := svc.AddComment(ctx, post.ID, commenter.ID, "   "); !models.IsValidation(err) {
		t.Errorf("blank content: expected ValidationError, got %v", err)
	}
}

func TestFollowUnfollow(t *testing.T) {
	svc := newService()
	ctx := context.Background()
	a := register(t, svc, "maya")
	b := register(t, svc, "noah")

	if err := svc.FollowUser(ctx, a.ID, b.ID); err != nil {
		t.Fatalf("follow: %v", err)
	}

	gotA, _ := svc.GetUserByID(ctx, a.ID)
	gotB, _ := svc.GetUserByID(ctx, b.ID)
	if !gotA.IsFollowing(b.ID) {
		t.Error("expected target in follower's followingIds")
	}
	if gotA.Following != 1 || gotB.Followers != 1 {
		t.Errorf("counters not paired: following=%d followers=%d", gotA.Following, gotB.Followers)
	}
	if gotA.Following != len(gotA.FollowingIDs) {
		t.Errorf("following counter diverged from set: %d != %d", gotA.Following, len(gotA.FollowingIDs))
	}

	// Re-following is a no-op.
	if err := svc.FollowUser(ctx, a.ID, b.ID); err != nil {
		t.Fatalf("second follow: %v", err)
	}
	gotA, _ = svc.GetUserByID(ctx, a.ID)
	gotB, _ = svc.GetUserByID(ctx, b.ID)
	if gotA.Following != 1 || gotB.Followers != 1 {
		t.Errorf("idempotent follow changed counters: following=%d followers=%d", gotA.Following, gotB.Followers)
	}

	// Unfollow restores the pre-follow state exactly.
	if err := svc.UnfollowUser(ctx, a.ID, b.ID); err != nil {
		t.Fatalf("unfollow: %v", err)
	}
	gotA, _ = svc.GetUserByID(ctx, a.ID)
	gotB, _ = svc.GetUserByID(ctx, b.ID)
	if gotA.Following != 0 || gotB.Followers != 0 || len(gotA.FollowingIDs) != 0 {
		t.Errorf("unfollow did not restore state: following=%d followers=%d set=%v", gotA.Following, gotB.Followers, gotA.FollowingIDs)
	}

	// Unfollowing a non-followed user is a no-op, not an error.
	if err := svc.UnfollowUser(ctx, a.ID, b.ID); err != nil {
		t.Fatalf("unfollow non-followed: %v", err)
	}

	if err := svc.FollowUser(ctx, a.ID, a.ID); !models.IsValidation(err) {
		t.Errorf("self follow: expected ValidationError, got %v", err)
	}
	if err := svc.FollowUser(ctx, a.ID, "missing"); !errors.Is(err, models.ErrNotFound) {
		t.Errorf("missing target: expected ErrNotFound, got %v", err)
	}
}

func TestFollowersAndFollowing(t *testing.T) {
	svc := newService()
	ctx := context.Background()
	a := register(t, svc, "olga")
	b := register(t, svc, "pete")
	c := register(t, svc, "quinn")

	if err := svc.FollowUser(ctx, a.ID, c.ID); err != nil {
		t.Fatalf("follow: %v", err)
	}
	if err := svc.FollowUser(ctx, b.ID, c.ID); err != nil {
		t.Fatalf("follow: %v", err)
	}

	followers, err := svc.GetFollowers(ctx, c.ID)
	if err != nil {
		t.Fatalf("get followers: %v", err)
	}
	if len(followers) != 2 {
		t.Fatalf("expected 2 followers, got %d", len(followers))
	}

	following, err := svc.GetFollowing(ctx, a.ID)
	if err != nil {
		t.Fatalf("get following: %v", err)
	}
	if len(following) != 1 || following[0].ID != c.ID {
		t.Errorf("expected following [%s], got %v", c.ID, following)
	}
}

func TestSuggestedUsers(t *testing.T) {
	svc := newService()
	ctx := context.Background()
	current := register(t, svc, "rita")
	followed := register(t, svc, "sam")
	register(t, svc, "tina")
	register(t, svc, "uma")

	if err := svc.FollowUser(ctx, current.ID, followed.ID); err != nil {
		t.Fatalf("follow: %v", err)
	}

	suggested, err := svc.GetSuggestedUsers(ctx, current.ID)
	if err != nil {
		t.Fatalf("get suggested: %v", err)
	}
	for _, u := range suggested {
		if u.ID == current.ID {
			t.Error("suggested list contains the caller")
		}
		if u.ID == followed.ID {
			t.Error("suggested list contains an already-followed user")
		}
	}
	if len(suggested) != 2 {
		t.Errorf("expected 2 suggestions, got %d", len(suggested))
	}

	// Anonymous callers get the smaller unfiltered list.
	anon, err := svc.GetSuggestedUsers(ctx, "")
	if err != nil {
		t.Fatalf("get suggested anonymous: %v", err)
	}
	if len(anon) != 3 {
		t.Errorf("expected 3 anonymous suggestions, got %d", len(anon))
	}
}

func TestUpdateProfileFanOut(t *testing.T) {
	svc := newService()
	ctx := context.Background()
	author := register(t, svc, "vera")
	other := register(t, svc, "walt")

	for _, caption := range []string{"one", "two"} {
		if _, err := svc.CreatePost(ctx, &models.PostDraft{AuthorID: author.ID, Caption: caption}); err != nil {
			t.Fatalf("create post: %v", err)
		}
	}
	otherPost, err := svc.CreatePost(ctx, &models.PostDraft{AuthorID: other.ID, Caption: "not mine"})
	if err != nil {
		t.Fatalf("create post: %v", err)
	}

	newName := "Vera Renamed"
	newAvatar := "https://cdn.example.com/avatars/vera.png"
	updated, err := svc.UpdateProfile(ctx, author.ID, &models.ProfileUpdate{
		FullName:  &newName,
		AvatarURL: &newAvatar,
	})
	if err != nil {
		t.Fatalf("update profile: %v", err)
	}
	if updated.FullName != newName || updated.AvatarURL != newAvatar {
		t.Errorf("profile not merged: %q / %q", updated.FullName, updated.AvatarURL)
	}

	posts, err := svc.GetUserPosts(ctx, author.ID)
	if err != nil {
		t.Fatalf("get user posts: %v", err)
	}
	for _, p := range posts {
		if p.AuthorName != newName || p.AuthorAvatar != newAvatar {
			t.Errorf("snapshot not propagated on post %s: %q / %q", p.ID, p.AuthorName, p.AuthorAvatar)
		}
	}

	// Unrelated authors are untouched.
	got, _ := svc.GetPost(ctx, otherPost.ID)
	if got.AuthorName != other.FullName {
		t.Errorf("fan-out leaked to another author: %q", got.AuthorName)
	}

	// A bio-only update leaves snapshots alone.
	bio := "new bio"
	if _, err := svc.UpdateProfile(ctx, author.ID, &models.ProfileUpdate{Bio: &bio}); err != nil {
		t.Fatalf("update bio: %v", err)
	}
}

func TestUserLookups(t *testing.T) {
	svc := newService()
	ctx := context.Background()
	user := register(t, svc, "xena")

	byName, err := svc.GetUserProfile(ctx, "XENA")
	if err != nil {
		t.Fatalf("profile lookup should be case-insensitive: %v", err)
	}
	if byName.ID != user.ID {
		t.Errorf("expected %s, got %s", user.ID, byName.ID)
	}

	if _, err := svc.GetUserProfile(ctx, "nobody"); !errors.Is(err, models.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
	if _, err := svc.GetUserByID(ctx, "missing"); !errors.Is(err, models.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}
