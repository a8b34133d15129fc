package mongodb

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	models "github.com/efad07/lumina/model"
)

type postRepository struct {
	col *mongo.Collection
}

func (r *postRepository) Create(ctx context.Context, post *models.Post) error {
	if _, err := r.col.InsertOne(ctx, post); err != nil {
		return fmt.Errorf("failed to create post: %w", err)
	}
	return nil
}

func (r *postRepository) GetByID(ctx context.Context, id string) (*models.Post, error) {
	var post models.Post
	err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&post)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("post %s: %w", id, models.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get post: %w", err)
	}
	return &post, nil
}

func (r *postRepository) Delete(ctx context.Context, id string) error {
	// DeleteOne on an absent id matches zero documents; idempotent.
	if _, err := r.col.DeleteOne(ctx, bson.M{"_id": id}); err != nil {
		return fmt.Errorf("failed to delete post: %w", err)
	}
	return nil
}

func (r *postRepository) ListRecent(ctx context.Context, limit int) ([]*models.Post, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetLimit(int64(limit))

	cursor, err := r.col.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query feed: %w", err)
	}
	return decodePosts(ctx, cursor)
}

func (r *postRepository) ListTrending(ctx context.Context, limit int) ([]*models.Post, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "likes", Value: -1}}).
		SetLimit(int64(limit))

	cursor, err := r.col.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query trending posts: %w", err)
	}
	return decodePosts(ctx, cursor)
}

func (r *postRepository) ListByAuthor(ctx context.Context, authorID string) ([]*models.Post, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})

	cursor, err := r.col.Find(ctx, bson.M{"authorId": authorID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query posts by author: %w", err)
	}
	return decodePosts(ctx, cursor)
}

func (r *postRepository) ToggleLike(ctx context.Context, postID, userID string) (*models.Post, error) {
	// Membership and counter flip in a single conditional document update;
	// at most one of the two branches can match any given state. Retried a
	// few times in case a concurrent toggle flips the state between the
	// two attempts.
	for attempt := 0; attempt < 3; attempt++ {
		res, err := r.col.UpdateOne(ctx,
			bson.M{"_id": postID, "likedBy": userID},
			bson.M{"$pull": bson.M{"likedBy": userID}, "$inc": bson.M{"likes": -1}},
		)
		if err != nil {
			return nil, fmt.Errorf("failed to unlike post: %w", err)
		}
		if res.ModifiedCount == 1 {
			return r.GetByID(ctx, postID)
		}

		res, err = r.col.UpdateOne(ctx,
			bson.M{"_id": postID, "likedBy": bson.M{"$ne": userID}},
			bson.M{"$addToSet": bson.M{"likedBy": userID}, "$inc": bson.M{"likes": 1}},
		)
		if err != nil {
			return nil, fmt.Errorf("failed to like post: %w", err)
		}
		if res.ModifiedCount == 1 {
			return r.GetByID(ctx, postID)
		}

		if _, err := r.GetByID(ctx, postID); err != nil {
			return nil, err
		}
	}
	return nil, fmt.Errorf("failed to toggle like on post %s: too much contention", postID)
}

func (r *postRepository) UpdateAuthorSnapshot(ctx context.Context, authorID, name, avatar string) error {
	set := bson.M{}
	if name != "" {
		set["authorName"] = name
	}
	if avatar != "" {
		set["authorAvatar"] = avatar
	}
	if len(set) == 0 {
		return nil
	}

	if _, err := r.col.UpdateMany(ctx, bson.M{"authorId": authorID}, bson.M{"$set": set}); err != nil {
		return fmt.Errorf("failed to update author snapshot: %w", err)
	}
	return nil
}

func decodePosts(ctx context.Context, cursor *mongo.Cursor) ([]*models.Post, error) {
	defer cursor.Close(ctx)

	var posts []*models.Post
	if err := cursor.All(ctx, &posts); err != nil {
		return nil, fmt.Errorf("failed to decode posts: %w", err)
	}
	return posts, nil
}
