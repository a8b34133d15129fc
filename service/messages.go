package service

import (
	"context"
	"log"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/efad07/lumina/events"
	models "github.com/efad07/lumina/model"
)

// GetConversations assembles one summary per counterpart from the raw
// message log: the latest message between the two parties plus the count of
// messages still unread by userID. The view is recomputed on every call and
// never persisted.
func (s *Service) GetConversations(ctx context.Context, userID string) ([]*models.Conversation, error) {
	msgs, err := s.store.Messages.ListForUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	latest := make(map[string]*models.Message)
	unread := make(map[string]int)
	for _, m := range msgs {
		otherID := m.SenderID
		if otherID == userID {
			otherID = m.ReceiverID
		}

		if last, ok := latest[otherID]; !ok || m.CreatedAt.After(last.CreatedAt) {
			latest[otherID] = m
		}
		if m.ReceiverID == userID && !m.IsRead {
			unread[otherID]++
		}
	}

	counterpartIDs := make([]string, 0, len(latest))
	for id := range latest {
		counterpartIDs = append(counterpartIDs, id)
	}

	users, err := s.store.Users.GetByIDs(ctx, counterpartIDs)
	if err != nil {
		return nil, err
	}

	// Counterparts with no surviving user record are dropped from the view.
	conversations := make([]*models.Conversation, 0, len(users))
	for _, u := range users {
		conversations = append(conversations, &models.Conversation{
			UserID:      u.ID,
			User:        u,
			LastMessage: latest[u.ID],
			UnreadCount: unread[u.ID],
		})
	}

	sort.SliceStable(conversations, func(i, j int) bool {
		return conversations[i].LastMessage.CreatedAt.After(conversations[j].LastMessage.CreatedAt)
	})

	return conversations, nil
}

// GetMessages returns the thread between the caller and otherID, oldest
// first. Loading the thread marks the counterpart's messages to the caller
// as read; the caller's own sent messages are untouched.
func (s *Service) GetMessages(ctx context.Context, userID, otherID string) ([]*models.Message, error) {
	if err := s.store.Messages.MarkRead(ctx, userID, otherID); err != nil {
		return nil, err
	}
	return s.store.Messages.ListBetween(ctx, userID, otherID)
}

// SendMessage appends a message to the thread. The receiver must exist.
func (s *Service) SendMessage(ctx context.Context, senderID, receiverID, content string) (*models.Message, error) {
	if strings.TrimSpace(content) == "" {
		return nil, &models.ValidationError{Field: "content", Reason: "must not be empty"}
	}

	if _, err := s.store.Users.GetByID(ctx, receiverID); err != nil {
		return nil, err
	}

	msg := &models.Message{
		ID:         uuid.NewString(),
		SenderID:   senderID,
		ReceiverID: receiverID,
		Content:    content,
		CreatedAt:  time.Now(),
		IsRead:     false,
	}

	if err := s.store.Messages.Append(ctx, msg); err != nil {
		return nil, err
	}

	if s.pub != nil {
		err := s.pub.PublishMessageSent(events.MessageSentEvent{
			MessageID:  msg.ID,
			SenderID:   senderID,
			ReceiverID: receiverID,
			Timestamp:  msg.CreatedAt,
		})
		if err != nil {
			log.Printf("Failed to publish message sent event: %v", err)
		}
	}

	return msg, nil
}
