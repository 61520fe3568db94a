package service

import (
	"errors"

	"github.com/Marga-Ghale/ora-member-service/internal/config"
	"github.com/Marga-Ghale/ora-member-service/internal/notification"
	"github.com/Marga-Ghale/ora-member-service/internal/repository"
)

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrNotFound     = errors.New("resource not found")
)

// ============================================
// Services Container
// ============================================

type Services struct {
	Auth   AuthService
	Member MemberService
}

// ServiceDeps contains all dependencies needed to create services
type ServiceDeps struct {
	Config    *config.Config
	Repos     *repository.Repositories
	Publisher notification.Publisher
}

func NewServices(deps *ServiceDeps) *Services {
	return &Services{
		Auth:   NewAuthService(deps.Config.JWTSecret),
		Member: NewMemberService(deps.Repos.MemberRepo, deps.Publisher),
	}
}
