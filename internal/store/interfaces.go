package store

import (
	"context"
	"time"

	"github.com/medkit-lab/labauth/models"
)

// UserRepository persists user accounts and their profiles.
type UserRepository interface {
	CreateUser(ctx context.Context, user models.User, profile models.UserProfile) (models.User, error)
	FindUserByEmail(ctx context.Context, email string) (models.User, error)
	FindUserByID(ctx context.Context, userID int64) (models.User, error)
	FindProfileByUserID(ctx context.Context, userID int64) (models.UserProfile, error)
	RecordFailedLogin(ctx context.Context, userID int64, ip string, threshold int, lockFor time.Duration) (int, *time.Time, error)
	RecordSuccessfulLogin(ctx context.Context, userID int64, ip string) error
	LockUser(ctx context.Context, userID int64, until time.Time) error
	UnlockUser(ctx context.Context, userID int64) error
	UpdatePassword(ctx context.Context, userID int64, passwordHash string) error
}

// PermissionRepository persists the permission catalog and the role to
// permission assignments.
type PermissionRepository interface {
	ListCatalog(ctx context.Context) ([]models.Permission, error)
	ListRoleCodes(ctx context.Context, role models.Role) ([]models.PermissionCode, error)
	UpsertPermission(ctx context.Context, permission models.Permission) error
	ReplaceRolePermissions(ctx context.Context, role models.Role, codes []models.PermissionCode) error
}

// AuditRepository persists the append only audit trail.
type AuditRepository interface {
	Insert(ctx context.Context, entry models.AuditEntry) (models.AuditEntry, error)
	List(ctx context.Context, filter models.AuditFilter) ([]models.AuditEntry, error)
	DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}

// TokenDenylist tracks revoked token identifiers until their natural
// expiry.
type TokenDenylist interface {
	Add(ctx context.Context, jti string, ttl time.Duration) error
	Contains(ctx context.Context, jti string) (bool, error)
}
