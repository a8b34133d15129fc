package mongodb

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	models "github.com/efad07/lumina/model"
)

type messageRepository struct {
	col *mongo.Collection
}

func (r *messageRepository) Append(ctx context.Context, msg *models.Message) error {
	if _, err := r.col.InsertOne(ctx, msg); err != nil {
		return fmt.Errorf("failed to send message: %w", err)
	}
	return nil
}

func (r *messageRepository) ListBetween(ctx context.Context, userID, otherID string) ([]*models.Message, error) {
	filter := bson.M{"$or": []bson.M{
		{"senderId": userID, "receiverId": otherID},
		{"senderId": otherID, "receiverId": userID},
	}}
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}})

	cursor, err := r.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query messages: %w", err)
	}
	return decodeMessages(ctx, cursor)
}

func (r *messageRepository) ListForUser(ctx context.Context, userID string) ([]*models.Message, error) {
	filter := bson.M{"$or": []bson.M{
		{"senderId": userID},
		{"receiverId": userID},
	}}

	cursor, err := r.col.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to query user messages: %w", err)
	}
	return decodeMessages(ctx, cursor)
}

func (r *messageRepository) MarkRead(ctx context.Context, receiverID, senderID string) error {
	_, err := r.col.UpdateMany(ctx,
		bson.M{"receiverId": receiverID, "senderId": senderID, "isRead": false},
		bson.M{"$set": bson.M{"isRead": true}},
	)
	if err != nil {
		return fmt.Errorf("failed to mark messages read: %w", err)
	}
	return nil
}

func decodeMessages(ctx context.Context, cursor *mongo.Cursor) ([]*models.Message, error) {
	defer cursor.Close(ctx)

	var msgs []*models.Message
	if err := cursor.All(ctx, &msgs); err != nil {
		return nil, fmt.Errorf("failed to decode messages: %w", err)
	}
	return msgs, nil
}
