package mongodb

import (
	"context"
	"errors"
	"fmt"
	"regexp"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	models "github.com/efad07/lumina/model"
)

type userRepository struct {
	col *mongo.Collection
}

func (r *userRepository) Create(ctx context.Context, user *models.User) error {
	if _, err := r.col.InsertOne(ctx, user); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return fmt.Errorf("email or username taken: %w", models.ErrConflict)
		}
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

func (r *userRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	var user models.User
	err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("user %s: %w", id, models.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return &user, nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.findOneFold(ctx, "email", email)
}

func (r *userRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	return r.findOneFold(ctx, "username", username)
}

// findOneFold matches field case-insensitively, mirroring the transient
// store's lookups.
func (r *userRepository) findOneFold(ctx context.Context, field, value string) (*models.User, error) {
	filter := bson.M{field: bson.M{
		"$regex":   "^" + regexp.QuoteMeta(value) + "$",
		"$options": "i",
	}}

	var user models.User
	err := r.col.FindOne(ctx, filter).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("user with %s %s: %w", field, value, models.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get user by %s: %w", field, err)
	}
	return &user, nil
}

func (r *userRepository) GetByIDs(ctx context.Context, ids []string) ([]*models.User, error) {
	if len(ids) == 0 {
		return []*models.User{}, nil
	}

	cursor, err := r.col.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, fmt.Errorf("failed to get users by ids: %w", err)
	}
	return decodeUsers(ctx, cursor)
}

func (r *userRepository) Suggested(ctx context.Context, excludeIDs []string, limit int) ([]*models.User, error) {
	filter := bson.M{}
	if len(excludeIDs) > 0 {
		filter["_id"] = bson.M{"$nin": excludeIDs}
	}

	opts := options.Find().SetLimit(int64(limit))
	cursor, err := r.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query suggested users: %w", err)
	}
	return decodeUsers(ctx, cursor)
}

func (r *userRepository) Followers(ctx context.Context, userID string) ([]*models.User, error) {
	// Array-membership filter over the authoritative relationship source.
	cursor, err := r.col.Find(ctx, bson.M{"followingIds": userID})
	if err != nil {
		return nil, fmt.Errorf("failed to query followers: %w", err)
	}
	return decodeUsers(ctx, cursor)
}

func (r *userRepository) UpdateProfile(ctx context.Context, userID string, update *models.ProfileUpdate) (*models.User, error) {
	set := bson.M{}
	if update.FullName != nil {
		set["fullName"] = *update.FullName
	}
	if update.Bio != nil {
		set["bio"] = *update.Bio
	}
	if update.Location != nil {
		set["location"] = *update.Location
	}
	if update.Website != nil {
		set["website"] = *update.Website
	}
	if update.AvatarURL != nil {
		set["avatarUrl"] = *update.AvatarURL
	}
	if update.CoverURL != nil {
		set["coverUrl"] = *update.CoverURL
	}

	if len(set) == 0 {
		return r.GetByID(ctx, userID)
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var user models.User
	err := r.col.FindOneAndUpdate(ctx, bson.M{"_id": userID}, bson.M{"$set": set}, opts).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("user %s: %w", userID, models.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}
	return &user, nil
}

func (r *userRepository) Follow(ctx context.Context, followerID, targetID string) (bool, error) {
	if err := r.exists(ctx, targetID); err != nil {
		return false, err
	}

	// The follower's set and counter live on one document; the conditional
	// filter makes the pair change exactly once per relationship.
	res, err := r.col.UpdateOne(ctx,
		bson.M{"_id": followerID, "followingIds": bson.M{"$ne": targetID}},
		bson.M{"$push": bson.M{"followingIds": targetID}, "$inc": bson.M{"following": 1}},
	)
	if err != nil {
		return false, fmt.Errorf("failed to follow user: %w", err)
	}
	if res.MatchedCount == 0 {
		// Either the follower is missing or the edge already exists.
		if err := r.exists(ctx, followerID); err != nil {
			return false, err
		}
		return false, nil
	}

	if _, err := r.col.UpdateOne(ctx, bson.M{"_id": targetID}, bson.M{"$inc": bson.M{"followers": 1}}); err != nil {
		// Keep the two sides paired: undo the follower-side change.
		_, _ = r.col.UpdateOne(ctx,
			bson.M{"_id": followerID},
			bson.M{"$pull": bson.M{"followingIds": targetID}, "$inc": bson.M{"following": -1}},
		)
		return false, fmt.Errorf("failed to bump follower count: %w", err)
	}

	return true, nil
}

func (r *userRepository) Unfollow(ctx context.Context, followerID, targetID string) (bool, error) {
	if err := r.exists(ctx, targetID); err != nil {
		return false, err
	}

	res, err := r.col.UpdateOne(ctx,
		bson.M{"_id": followerID, "followingIds": targetID},
		bson.M{"$pull": bson.M{"followingIds": targetID}, "$inc": bson.M{"following": -1}},
	)
	if err != nil {
		return false, fmt.Errorf("failed to unfollow user: %w", err)
	}
	if res.MatchedCount == 0 {
		if err := r.exists(ctx, followerID); err != nil {
			return false, err
		}
		return false, nil
	}

	if _, err := r.col.UpdateOne(ctx, bson.M{"_id": targetID}, bson.M{"$inc": bson.M{"followers": -1}}); err != nil {
		_, _ = r.col.UpdateOne(ctx,
			bson.M{"_id": followerID},
			bson.M{"$push": bson.M{"followingIds": targetID}, "$inc": bson.M{"following": 1}},
		)
		return false, fmt.Errorf("failed to drop follower count: %w", err)
	}

	return true, nil
}

func (r *userRepository) exists(ctx context.Context, id string) error {
	count, err := r.col.CountDocuments(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to check user: %w", err)
	}
	if count == 0 {
		return fmt.Errorf("user %s: %w", id, models.ErrNotFound)
	}
	return nil
}

func decodeUsers(ctx context.Context, cursor *mongo.Cursor) ([]*models.User, error) {
	defer cursor.Close(ctx)

	var users []*models.User
	if err := cursor.All(ctx, &users); err != nil {
		return nil, fmt.Errorf("failed to decode users: %w", err)
	}
	return users, nil
}
