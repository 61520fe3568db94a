package notification

import (
	"context"
	"errors"
)

// WelcomeMailer sends the welcome message to a new member.
type WelcomeMailer interface {
	SendWelcome(ctx context.Context, to, name string) error
}

// EmailNotifier turns MEMBER_CREATED events into welcome emails.
type EmailNotifier struct {
	mailer WelcomeMailer
}

func NewEmailNotifier(mailer WelcomeMailer) *EmailNotifier {
	return &EmailNotifier{mailer: mailer}
}

func (n *EmailNotifier) Notify(ctx context.Context, event Event) error {
	if event.Type != TypeMemberCreated {
		return nil
	}
	if event.Data == nil || event.Data.Email == "" {
		return errors.New("event has no recipient email")
	}
	return n.mailer.SendWelcome(ctx, event.Data.Email, event.Data.Name)
}
