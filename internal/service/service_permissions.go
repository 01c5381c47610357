package service

import (
	"context"
	"fmt"

	"github.com/medkit-lab/labauth/internal/config"
	"github.com/medkit-lab/labauth/internal/logger"
	"github.com/medkit-lab/labauth/internal/store"
	"github.com/medkit-lab/labauth/models"
)

// permissionService is the concrete implementation of PermissionService.
// Role assignments are read through a TTL cache; the superadmin role
// bypasses the catalog entirely.
type permissionService struct {
	permissionRepository store.PermissionRepository
	cache                *permissionCache
	logger               *logger.Logger
}

// NewPermissionService constructs a PermissionService backed by the given
// repository with cache staleness bounded by cfg.PermissionCacheTTL.
func NewPermissionService(permissionRepository store.PermissionRepository, cfg config.Security, logger *logger.Logger) PermissionService {
	return &permissionService{
		permissionRepository: permissionRepository,
		cache:                newPermissionCache(cfg.PermissionCacheTTL),
		logger:               logger,
	}
}

// HasPermission reports whether role holds code. Superadmin holds every
// permission including codes that are not in the catalog yet.
func (p *permissionService) HasPermission(ctx context.Context, role models.Role, code models.PermissionCode) (bool, error) {
	if role.IsSuperadmin() {
		return true, nil
	}

	entry, err := p.load(ctx, role)
	if err != nil {
		return false, err
	}

	_, ok := entry.codes[code]

	return ok, nil
}

// RolePermissions returns the assignment set for role in stable catalog
// order. For superadmin this is the full catalog.
func (p *permissionService) RolePermissions(ctx context.Context, role models.Role) ([]models.PermissionCode, error) {
	if role.IsSuperadmin() {
		catalog, err := p.permissionRepository.ListCatalog(ctx)
		if err != nil {
			return nil, fmt.Errorf("permission catalog listing failed: %w", err)
		}

		codes := make([]models.PermissionCode, 0, len(catalog))
		for _, permission := range catalog {
			codes = append(codes, permission.Code)
		}

		return codes, nil
	}

	entry, err := p.load(ctx, role)
	if err != nil {
		return nil, err
	}

	return entry.ordered, nil
}

// CanAccessBranch applies the branch scoping rule: superadmin reaches
// every branch, everyone else only their own. A user without a branch
// assignment is branch-less and denied.
func (p *permissionService) CanAccessBranch(role models.Role, userBranchID *int64, targetBranchID int64) bool {
	if role.IsSuperadmin() {
		return true
	}
	if userBranchID == nil {
		return false
	}

	return *userBranchID == targetBranchID
}

// InvalidateCache drops every cached role set. Called after the catalog
// or the role assignments change.
func (p *permissionService) InvalidateCache() {
	p.cache.invalidate()
}

func (p *permissionService) load(ctx context.Context, role models.Role) (permissionCacheEntry, error) {
	if entry, ok := p.cache.get(role); ok {
		return entry, nil
	}

	codes, err := p.permissionRepository.ListRoleCodes(ctx, role)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("role", role.String()).Msg("role permission lookup failed")
		return permissionCacheEntry{}, fmt.Errorf("role permission lookup failed: %w", err)
	}

	return p.cache.put(role, codes), nil
}
