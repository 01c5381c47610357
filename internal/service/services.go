package service

import (
	"github.com/medkit-lab/labauth/internal/config"
	"github.com/medkit-lab/labauth/internal/logger"
	"github.com/medkit-lab/labauth/internal/store"
)

// Services bundles every service the HTTP layer depends on.
type Services struct {
	AuthService       AuthService
	TokenService      TokenService
	PermissionService PermissionService
	AuditService      AuditService
}

// NewServices wires the service graph over the given repositories.
func NewServices(repositories *store.Repositories, cfg config.StructuredConfig, logger *logger.Logger) *Services {
	tokens := NewTokenService(repositories.Denylist, cfg.App, cfg.Security, logger)
	permissions := NewPermissionService(repositories.Permissions, cfg.Security, logger)
	audit := NewAuditService(repositories.Audit, logger)

	return &Services{
		AuthService:       NewAuthService(repositories.Users, tokens, permissions, audit, cfg.Security, logger),
		TokenService:      tokens,
		PermissionService: permissions,
		AuditService:      audit,
	}
}
