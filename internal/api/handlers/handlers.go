package handlers

import (
	"github.com/Marga-Ghale/ora-member-service/internal/service"
)

// Handlers contains all HTTP handlers
type Handlers struct {
	Member *MemberHandler
	Health *HealthHandler
}

// NewHandlers creates all handlers
func NewHandlers(services *service.Services, db Pinger, notifier string) *Handlers {
	return &Handlers{
		Member: NewMemberHandler(services.Member),
		Health: NewHealthHandler(db, notifier),
	}
}
