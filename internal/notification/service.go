package notification

import (
	"context"

	"github.com/Marga-Ghale/ora-member-service/internal/models"
)

// Event types
const (
	TypeMemberCreated = "MEMBER_CREATED"
)

// Event is the envelope delivered to the external system.
type Event struct {
	Type string         `json:"event"`
	Data *models.Member `json:"data"`
}

func MemberCreated(member *models.Member) Event {
	return Event{Type: TypeMemberCreated, Data: member}
}

// Notifier delivers a single event. Implementations make one attempt.
type Notifier interface {
	Notify(ctx context.Context, event Event) error
}

// Publisher accepts events for delivery without waiting on the outcome.
type Publisher interface {
	Publish(event Event)
}

// NoopNotifier drops every event. Used when no strategy is configured.
type NoopNotifier struct{}

func (NoopNotifier) Notify(context.Context, Event) error { return nil }
