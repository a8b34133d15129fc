package publisher

import (
	"encoding/json"
	"log"

	"github.com/efad07/lumina/events"
	natsclient "github.com/efad07/lumina/nats"
)

// EventPublisher fans service-side writes out to NATS subjects. Publishing
// is best-effort: a failed publish never fails the write that triggered it.
type EventPublisher struct {
	nats *natsclient.Client
}

func NewEventPublisher(nats *natsclient.Client) *EventPublisher {
	return &EventPublisher{nats: nats}
}

func (p *EventPublisher) PublishPostCreated(event events.PostCreatedEvent) error {
	return p.publish(events.SubjectPostCreated, event)
}

func (p *EventPublisher) PublishPostLiked(event events.PostLikedEvent) error {
	return p.publish(events.SubjectPostLiked, event)
}

func (p *EventPublisher) PublishPostCommented(event events.PostCommentedEvent) error {
	return p.publish(events.SubjectPostCommented, event)
}

func (p *EventPublisher) PublishUserFollowed(event events.UserFollowedEvent) error {
	return p.publish(events.SubjectUserFollowed, event)
}

func (p *EventPublisher) PublishMessageSent(event events.MessageSentEvent) error {
	return p.publish(events.SubjectMessageSent, event)
}

func (p *EventPublisher) publish(subject string, event any) error {
	data, err := json.Marshal(event)
	if err != nil {
		return err
	}

	if err := p.nats.Publish(subject, data); err != nil {
		return err
	}

	log.Printf("Published event: %s", subject)
	return nil
}
