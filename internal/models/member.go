package models

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ErrValidation is returned when a member is missing a required field.
var ErrValidation = errors.New("member validation failed")

// ============================================
// Member
// ============================================

type Member struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name      string             `bson:"name" json:"name"`
	Email     string             `bson:"email" json:"email"`
	Phone     string             `bson:"phone,omitempty" json:"phone,omitempty"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
}

// Validate reports every required field that is blank.
func (m *Member) Validate() error {
	var missing []string
	if strings.TrimSpace(m.Name) == "" {
		missing = append(missing, "name is required")
	}
	if strings.TrimSpace(m.Email) == "" {
		missing = append(missing, "email is required")
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: %s", ErrValidation, strings.Join(missing, ", "))
	}
	return nil
}

// ============================================
// Requests
// ============================================

type CreateMemberRequest struct {
	Name      string     `json:"name"`
	Email     string     `json:"email"`
	Phone     string     `json:"phone"`
	CreatedAt *time.Time `json:"createdAt"`
}

// UpdateMemberRequest carries a partial update; nil fields are left untouched.
// id and createdAt are not updatable and are not bound.
type UpdateMemberRequest struct {
	Name  *string `json:"name"`
	Email *string `json:"email"`
	Phone *string `json:"phone"`
}

func (r *UpdateMemberRequest) IsEmpty() bool {
	return r.Name == nil && r.Email == nil && r.Phone == nil
}

// Validate rejects updates that would blank a required field.
func (r *UpdateMemberRequest) Validate() error {
	var missing []string
	if r.Name != nil && strings.TrimSpace(*r.Name) == "" {
		missing = append(missing, "name is required")
	}
	if r.Email != nil && strings.TrimSpace(*r.Email) == "" {
		missing = append(missing, "email is required")
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: %s", ErrValidation, strings.Join(missing, ", "))
	}
	return nil
}

// ============================================
// Responses
// ============================================

type MessageResponse struct {
	Message string `json:"message"`
}

type CreateMemberResponse struct {
	Message string  `json:"message"`
	Member  *Member `json:"member"`
}
