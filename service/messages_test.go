package service_test

import (
	"context"
	"errors"
	"testing"

	models "github.com/efad07/lumina/model"
	"github.com/efad07/lumina/repository/memory"
	"github.com/efad07/lumina/service"
)

func TestSendMessage(t *testing.T) {
	svc := newService()
	ctx := context.Background()
	sender := register(t, svc, "amy")
	receiver := register(t, svc, "ben")

	msg, err := svc.SendMessage(ctx, sender.ID, receiver.ID, "hello")
	if err != nil {
		t.Fatalf("send message: %v", err)
	}
	if msg.IsRead {
		t.Error("new messages start unread")
	}
	if msg.SenderID != sender.ID || msg.ReceiverID != receiver.ID {
		t.Errorf("direction wrong: %s -> %s", msg.SenderID, msg.ReceiverID)
	}

	if _, err := svc.SendMessage(ctx, sender.ID, "missing", "hello"); !errors.Is(err, models.ErrNotFound) {
		t.Errorf("missing receiver: expected ErrNotFound, got %v", err)
	}
	if _, err := svc.SendMessage(ctx, sender.ID, receiver.ID, "  "); !models.IsValidation(err) {
		t.Errorf("blank content: expected ValidationError, got %v", err)
	}
}

func TestConversationAssembly(t *testing.T) {
	svc := newService()
	ctx := context.Background()
	u1 := register(t, svc, "cleo")
	u2 := register(t, svc, "drew")
	u3 := register(t, svc, "elsa")

	if _, err := svc.SendMessage(ctx, u1.ID, u2.ID, "hello"); err != nil {
		t.Fatalf("send: %v", err)
	}
	if _, err := svc.SendMessage(ctx, u3.ID, u1.ID, "hey there"); err != nil {
		t.Fatalf("send: %v", err)
	}

	conversations, err := svc.GetConversations(ctx, u1.ID)
	if err != nil {
		t.Fatalf("get conversations: %v", err)
	}
	if len(conversations) != 2 {
		t.Fatalf("expected 2 conversations, got %d", len(conversations))
	}

	// Sorted by last message, newest thread first.
	if conversations[0].UserID != u3.ID || conversations[1].UserID != u2.ID {
		t.Errorf("expected order [%s %s], got [%s %s]", u3.ID, u2.ID, conversations[0].UserID, conversations[1].UserID)
	}

	withU2 := conversations[1]
	if withU2.LastMessage.Content != "hello" {
		t.Errorf("expected last message %q, got %q", "hello", withU2.LastMessage.Content)
	}
	if withU2.User == nil || withU2.User.Username != "drew" {
		t.Error("conversation missing counterpart user record")
	}
	if withU2.UnreadCount != 0 {
		t.Errorf("u1 sent that message; expected 0 unread, got %d", withU2.UnreadCount)
	}

	withU3 := conversations[0]
	if withU3.UnreadCount != 1 {
		t.Errorf("expected 1 unread from u3, got %d", withU3.UnreadCount)
	}
}

func TestGetMessagesMarksRead(t *testing.T) {
	svc := newService()
	ctx := context.Background()
	u1 := register(t, svc, "finn")
	u2 := register(t, svc, "gwen")

	// u1 sends two, u2 replies once.
	if _, err := svc.SendMessage(ctx, u1.ID, u2.ID, "one"); err != nil {
		t.Fatalf("send: %v", err)
	}
	if _, err := svc.SendMessage(ctx, u1.ID, u2.ID, "two"); err != nil {
		t.Fatalf("send: %v", err)
	}
	if _, err := svc.SendMessage(ctx, u2.ID, u1.ID, "reply"); err != nil {
		t.Fatalf("send: %v", err)
	}

	// u1 loads the thread: u2's reply becomes read, oldest first.
	msgs, err := svc.GetMessages(ctx, u1.ID, u2.ID)
	if err != nil {
		t.Fatalf("get messages: %v", err)
	}
	if len(msgs) != 3 {
		t.Fatalf("expected 3 messages, got %d", len(msgs))
	}
	if msgs[0].Content != "one" || msgs[2].Content != "reply" {
		t.Errorf("expected ascending order, got [%s %s %s]", msgs[0].Content, msgs[1].Content, msgs[2].Content)
	}
	for _, m := range msgs {
		if m.ReceiverID == u1.ID && !m.IsRead {
			t.Errorf("message %s to the reader should be marked read", m.ID)
		}
	}

	// Only the receiver's read state changed: u2 still has two unread.
	conversations, err := svc.GetConversations(ctx, u2.ID)
	if err != nil {
		t.Fatalf("get conversations: %v", err)
	}
	if len(conversations) != 1 {
		t.Fatalf("expected 1 conversation, got %d", len(conversations))
	}
	if conversations[0].UnreadCount != 2 {
		t.Errorf("sender's view must be unaffected; expected 2 unread for u2, got %d", conversations[0].UnreadCount)
	}

	// u2 reads the thread; their unread count drains.
	if _, err := svc.GetMessages(ctx, u2.ID, u1.ID); err != nil {
		t.Fatalf("get messages: %v", err)
	}
	conversations, err = svc.GetConversations(ctx, u2.ID)
	if err != nil {
		t.Fatalf("get conversations: %v", err)
	}
	if conversations[0].UnreadCount != 0 {
		t.Errorf("expected 0 unread after reading, got %d", conversations[0].UnreadCount)
	}
}

func TestSeededStore(t *testing.T) {
	svc := service.New(memory.NewSeeded())
	ctx := context.Background()

	user, err := svc.Authenticate(ctx, "alex@lumina.io", memory.SeedPassword)
	if err != nil {
		t.Fatalf("authenticate seeded user: %v", err)
	}
	if user.Username != "alex_creator" {
		t.Errorf("expected alex_creator, got %s", user.Username)
	}

	feed, err := svc.GetFeed(ctx)
	if err != nil {
		t.Fatalf("get feed: %v", err)
	}
	if len(feed) != 5 {
		t.Fatalf("expected 5 seeded posts, got %d", len(feed))
	}
	for _, p := range feed {
		if p.Likes != len(p.LikedBy) {
			t.Errorf("seeded post %s: likes %d != len(likedBy) %d", p.ID, p.Likes, len(p.LikedBy))
		}
	}

	conversations, err := svc.GetConversations(ctx, user.ID)
	if err != nil {
		t.Fatalf("get conversations: %v", err)
	}
	if len(conversations) != 2 {
		t.Fatalf("expected 2 seeded conversations, got %d", len(conversations))
	}
	// The unread thread from marcus sorts first.
	if conversations[0].UnreadCount != 1 {
		t.Errorf("expected 1 unread from marcus, got %d", conversations[0].UnreadCount)
	}
}
