package mongodb

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	models "github.com/efad07/lumina/model"
)

type commentRepository struct {
	comments *mongo.Collection
	posts    *mongo.Collection
}

func (r *commentRepository) Add(ctx context.Context, comment *models.Comment) error {
	// Bump the parent counter first; a zero match means the post is gone
	// and nothing has been written yet.
	res, err := r.posts.UpdateOne(ctx,
		bson.M{"_id": comment.PostID},
		bson.M{"$inc": bson.M{"comments": 1}},
	)
	if err != nil {
		return fmt.Errorf("failed to bump comment count: %w", err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("post %s: %w", comment.PostID, models.ErrNotFound)
	}

	if _, err := r.comments.InsertOne(ctx, comment); err != nil {
		_, _ = r.posts.UpdateOne(ctx,
			bson.M{"_id": comment.PostID},
			bson.M{"$inc": bson.M{"comments": -1}},
		)
		return fmt.Errorf("failed to add comment: %w", err)
	}
	return nil
}

func (r *commentRepository) ListByPost(ctx context.Context, postID string) ([]*models.Comment, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}})

	cursor, err := r.comments.Find(ctx, bson.M{"postId": postID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query comments: %w", err)
	}
	defer cursor.Close(ctx)

	var comments []*models.Comment
	if err := cursor.All(ctx, &comments); err != nil {
		return nil, fmt.Errorf("failed to decode comments: %w", err)
	}
	return comments, nil
}

func (r *commentRepository) DeleteByPost(ctx context.Context, postID string) error {
	if _, err := r.comments.DeleteMany(ctx, bson.M{"postId": postID}); err != nil {
		return fmt.Errorf("failed to delete comments: %w", err)
	}
	return nil
}
