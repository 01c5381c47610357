package seed

import (
	"context"
	"fmt"

	"github.com/medkit-lab/labauth/internal/logger"
	"github.com/medkit-lab/labauth/internal/service"
	"github.com/medkit-lab/labauth/internal/store"
)

// Run upserts the permission catalog, replaces every role's assignment
// set and drops the resolver cache so the new assignments take effect
// immediately.
func Run(ctx context.Context, permissionRepository store.PermissionRepository, permissions service.PermissionService, log *logger.Logger) error {
	for _, permission := range Catalog {
		if err := permissionRepository.UpsertPermission(ctx, permission); err != nil {
			return fmt.Errorf("seeding permission %s failed: %w", permission.Code, err)
		}
	}
	log.Info().Int("permissions", len(Catalog)).Msg("permission catalog seeded")

	for role, codes := range RoleAssignments {
		if err := permissionRepository.ReplaceRolePermissions(ctx, role, codes); err != nil {
			return fmt.Errorf("seeding role %s failed: %w", role, err)
		}
		log.Info().Str("role", role.String()).Int("permissions", len(codes)).Msg("role assignments seeded")
	}

	permissions.InvalidateCache()

	return nil
}
