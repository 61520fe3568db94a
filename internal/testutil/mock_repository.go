// Package testutil holds in-memory fakes shared by package tests.
package testutil

import (
	"context"
	"sync"
	"time"

	"github.com/Marga-Ghale/ora-member-service/internal/models"
	"github.com/Marga-Ghale/ora-member-service/internal/notification"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MemberRepository is an in-memory repository.MemberRepository. Setting Err
// makes every call fail with it.
type MemberRepository struct {
	mu      sync.Mutex
	members []*models.Member
	Err     error
}

func NewMemberRepository() *MemberRepository {
	return &MemberRepository{}
}

func (r *MemberRepository) Create(ctx context.Context, member *models.Member) error {
	if r.Err != nil {
		return r.Err
	}
	if err := member.Validate(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	member.ID = primitive.NewObjectID()
	if member.CreatedAt.IsZero() {
		member.CreatedAt = time.Now()
	}
	member.CreatedAt = member.CreatedAt.UTC().Truncate(time.Millisecond)

	stored := *member
	r.members = append(r.members, &stored)
	return nil
}

func (r *MemberRepository) FindByID(ctx context.Context, id string) (*models.Member, error) {
	if r.Err != nil {
		return nil, r.Err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	if i := r.indexOf(id); i >= 0 {
		m := *r.members[i]
		return &m, nil
	}
	return nil, nil
}

func (r *MemberRepository) FindAll(ctx context.Context) ([]*models.Member, error) {
	if r.Err != nil {
		return nil, r.Err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]*models.Member, 0, len(r.members))
	for _, m := range r.members {
		c := *m
		out = append(out, &c)
	}
	return out, nil
}

func (r *MemberRepository) Update(ctx context.Context, id string, update *models.UpdateMemberRequest) (*models.Member, error) {
	if r.Err != nil {
		return nil, r.Err
	}
	if err := update.Validate(); err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.indexOf(id)
	if i < 0 {
		return nil, nil
	}
	m := r.members[i]
	if update.Name != nil {
		m.Name = *update.Name
	}
	if update.Email != nil {
		m.Email = *update.Email
	}
	if update.Phone != nil {
		m.Phone = *update.Phone
	}
	c := *m
	return &c, nil
}

func (r *MemberRepository) Delete(ctx context.Context, id string) (bool, error) {
	if r.Err != nil {
		return false, r.Err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.indexOf(id)
	if i < 0 {
		return false, nil
	}
	r.members = append(r.members[:i], r.members[i+1:]...)
	return true, nil
}

// Len returns the number of stored members.
func (r *MemberRepository) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.members)
}

func (r *MemberRepository) indexOf(id string) int {
	for i, m := range r.members {
		if m.ID.Hex() == id {
			return i
		}
	}
	return -1
}

// RecordingPublisher collects published events.
type RecordingPublisher struct {
	mu     sync.Mutex
	events []notification.Event
}

func (p *RecordingPublisher) Publish(event notification.Event) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
}

func (p *RecordingPublisher) Events() []notification.Event {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]notification.Event(nil), p.events...)
}
