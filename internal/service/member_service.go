package service

import (
	"context"

	"github.com/Marga-Ghale/ora-member-service/internal/models"
	"github.com/Marga-Ghale/ora-member-service/internal/notification"
	"github.com/Marga-Ghale/ora-member-service/internal/repository"
)

// ============================================
// Member Service
// ============================================

type MemberService interface {
	Create(ctx context.Context, req *models.CreateMemberRequest) (*models.Member, error)
	List(ctx context.Context) ([]*models.Member, error)
	Update(ctx context.Context, id string, req *models.UpdateMemberRequest) (*models.Member, error)
	Delete(ctx context.Context, id string) error
}

type memberService struct {
	memberRepo repository.MemberRepository
	publisher  notification.Publisher
}

func NewMemberService(memberRepo repository.MemberRepository, publisher notification.Publisher) MemberService {
	return &memberService{memberRepo: memberRepo, publisher: publisher}
}

// Create stores the member and hands MEMBER_CREATED to the publisher. The
// result of the notification never affects the returned member or error.
func (s *memberService) Create(ctx context.Context, req *models.CreateMemberRequest) (*models.Member, error) {
	member := &models.Member{
		Name:  req.Name,
		Email: req.Email,
		Phone: req.Phone,
	}
	if req.CreatedAt != nil {
		member.CreatedAt = *req.CreatedAt
	}

	if err := s.memberRepo.Create(ctx, member); err != nil {
		return nil, err
	}

	if s.publisher != nil {
		snapshot := *member
		s.publisher.Publish(notification.MemberCreated(&snapshot))
	}
	return member, nil
}

func (s *memberService) List(ctx context.Context) ([]*models.Member, error) {
	return s.memberRepo.FindAll(ctx)
}

func (s *memberService) Update(ctx context.Context, id string, req *models.UpdateMemberRequest) (*models.Member, error) {
	member, err := s.memberRepo.Update(ctx, id, req)
	if err != nil {
		return nil, err
	}
	if member == nil {
		return nil, ErrNotFound
	}
	return member, nil
}

func (s *memberService) Delete(ctx context.Context, id string) error {
	deleted, err := s.memberRepo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrNotFound
	}
	return nil
}
