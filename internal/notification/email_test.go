package notification

import (
	"context"
	"errors"
	"testing"

	"github.com/Marga-Ghale/ora-member-service/internal/models"
	"github.com/stretchr/testify/assert"
)

type recordingMailer struct {
	to, name string
	err      error
}

func (m *recordingMailer) SendWelcome(ctx context.Context, to, name string) error {
	m.to, m.name = to, name
	return m.err
}

func TestEmailNotifier(t *testing.T) {
	t.Run("SendsWelcome", func(t *testing.T) {
		mailer := &recordingMailer{}
		n := NewEmailNotifier(mailer)

		err := n.Notify(context.Background(), MemberCreated(&models.Member{Name: "Alice", Email: "a@x.com"}))
		assert.NoError(t, err)
		assert.Equal(t, "a@x.com", mailer.to)
		assert.Equal(t, "Alice", mailer.name)
	})

	t.Run("PropagatesTransportError", func(t *testing.T) {
		mailer := &recordingMailer{err: errors.New("smtp down")}
		n := NewEmailNotifier(mailer)

		err := n.Notify(context.Background(), MemberCreated(&models.Member{Name: "Alice", Email: "a@x.com"}))
		assert.EqualError(t, err, "smtp down")
	})

	t.Run("MissingRecipient", func(t *testing.T) {
		n := NewEmailNotifier(&recordingMailer{})
		assert.Error(t, n.Notify(context.Background(), Event{Type: TypeMemberCreated}))
	})

	t.Run("IgnoresOtherEvents", func(t *testing.T) {
		mailer := &recordingMailer{}
		n := NewEmailNotifier(mailer)
		assert.NoError(t, n.Notify(context.Background(), Event{Type: "OTHER"}))
		assert.Empty(t, mailer.to)
	})
}
