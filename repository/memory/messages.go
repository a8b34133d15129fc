package memory

import (
	"context"
	"sort"

	models "github.com/efad07/lumina/model"
)

type messageRepository struct {
	s *store
}

func (r *messageRepository) Append(ctx context.Context, msg *models.Message) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	r.s.messages = append(r.s.messages, cloneMessage(msg))
	return nil
}

func (r *messageRepository) ListBetween(ctx context.Context, userID, otherID string) ([]*models.Message, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var msgs []*models.Message
	for _, m := range r.s.messages {
		if (m.SenderID == userID && m.ReceiverID == otherID) ||
			(m.SenderID == otherID && m.ReceiverID == userID) {
			msgs = append(msgs, cloneMessage(m))
		}
	}
	sort.SliceStable(msgs, func(i, j int) bool {
		return msgs[i].CreatedAt.Before(msgs[j].CreatedAt)
	})
	return msgs, nil
}

func (r *messageRepository) ListForUser(ctx context.Context, userID string) ([]*models.Message, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var msgs []*models.Message
	for _, m := range r.s.messages {
		if m.SenderID == userID || m.ReceiverID == userID {
			msgs = append(msgs, cloneMessage(m))
		}
	}
	return msgs, nil
}

func (r *messageRepository) MarkRead(ctx context.Context, receiverID, senderID string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, m := range r.s.messages {
		if m.ReceiverID == receiverID && m.SenderID == senderID && !m.IsRead {
			m.IsRead = true
		}
	}
	return nil
}
