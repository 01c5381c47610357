package service

import (
	"context"

	"github.com/medkit-lab/labauth/models"
)

// AuthService orchestrates the authentication flows exposed over HTTP:
// login with lockout handling, logout, token refresh, password change and
// the per-user permission listing.
type AuthService interface {
	Login(ctx context.Context, request models.LoginRequest, ip, userAgent string) (models.LoginResponse, error)
	Logout(ctx context.Context, refreshToken string, userID int64, ip, userAgent string) error
	Refresh(ctx context.Context, refreshToken, ip, userAgent string) (models.RefreshResponse, error)
	CurrentUser(ctx context.Context, userID int64) (models.UserWithProfile, error)
	ChangePassword(ctx context.Context, userID int64, request models.ChangePasswordRequest, ip, userAgent string) error
	Permissions(ctx context.Context, userID int64) (models.PermissionsResponse, error)

	// Authorize checks that userID holds the permission and records an
	// audited denial when it does not.
	Authorize(ctx context.Context, userID int64, code models.PermissionCode, ip, userAgent, path, method string) error

	// AuthorizeBranch checks that userID may act on targetBranchID and
	// records an audited denial when it may not.
	AuthorizeBranch(ctx context.Context, userID, targetBranchID int64, ip, userAgent, path, method string) error

	// LockAccount and UnlockAccount are the administrative lock
	// operations. ResetPassword is the administrative counterpart of
	// ChangePassword: it sets a new password without knowing the old one.
	LockAccount(ctx context.Context, userID int64, ip, userAgent string) error
	UnlockAccount(ctx context.Context, userID int64, ip, userAgent string) error
	ResetPassword(ctx context.Context, userID int64, newPassword, ip, userAgent string) error
}

// TokenService owns the session token lifecycle: issuance, verification
// against the denylist and revocation.
type TokenService interface {
	IssuePair(ctx context.Context, userID int64, rememberMe bool) (models.TokenPair, error)
	VerifyAccess(ctx context.Context, tokenString string) (*models.SessionClaims, error)
	VerifyRefresh(ctx context.Context, tokenString string) (*models.SessionClaims, error)
	Rotate(ctx context.Context, claims *models.SessionClaims) (models.RefreshResponse, error)
	Revoke(ctx context.Context, claims *models.SessionClaims) error
}

// PermissionService resolves role to permission assignments with a
// read-through cache and applies the super-role and branch rules.
type PermissionService interface {
	HasPermission(ctx context.Context, role models.Role, code models.PermissionCode) (bool, error)
	RolePermissions(ctx context.Context, role models.Role) ([]models.PermissionCode, error)
	CanAccessBranch(role models.Role, userBranchID *int64, targetBranchID int64) bool
	InvalidateCache()
}

// AuditService records security events and serves the audit listing.
type AuditService interface {
	Record(ctx context.Context, entry models.AuditEntry) error

	// RecordBestEffort logs and swallows persistence failures. Only the
	// non-critical call sites use it; denials and refusals that must not
	// proceed unrecorded go through Record.
	RecordBestEffort(ctx context.Context, entry models.AuditEntry)

	List(ctx context.Context, filter models.AuditFilter) ([]models.AuditEntry, error)
}
