package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/medkit-lab/labauth/internal/config"
	"github.com/medkit-lab/labauth/internal/logger"
	"github.com/medkit-lab/labauth/internal/store"
	"github.com/medkit-lab/labauth/models"
)

// authService is the concrete implementation of AuthService. It drives
// the credential ladder on login, delegates token work to the
// TokenService and permission checks to the PermissionService, and is
// the only place that decides which audit entries a flow produces.
type authService struct {
	userRepository store.UserRepository
	tokens         TokenService
	permissions    PermissionService
	audit          AuditService

	lockoutThreshold  int
	lockoutDuration   time.Duration
	adminLockDuration time.Duration
	minPasswordLength int

	logger *logger.Logger
}

// NewAuthService constructs an AuthService wired to the given
// repositories and sibling services, with lockout policy from cfg.
//
// The returned service is safe for concurrent use; all state is
// read-only after construction.
func NewAuthService(userRepository store.UserRepository, tokens TokenService, permissions PermissionService, audit AuditService, cfg config.Security, logger *logger.Logger) AuthService {
	return &authService{
		userRepository:    userRepository,
		tokens:            tokens,
		permissions:       permissions,
		audit:             audit,
		lockoutThreshold:  cfg.LockoutThreshold,
		lockoutDuration:   cfg.LockoutDuration,
		adminLockDuration: cfg.AdminLockDuration,
		minPasswordLength: cfg.MinPasswordLength,
		logger:            logger,
	}
}

// Login runs the full credential ladder: account lookup, lock and
// active-flag checks, password verification with lockout accounting, and
// finally token issuance.
//
// The lock check runs before password verification, so a locked account
// reports ErrAccountLocked even when the password is correct. Unknown
// email and wrong password both come back as ErrInvalidCredentials.
func (a *authService) Login(ctx context.Context, request models.LoginRequest, ip, userAgent string) (models.LoginResponse, error) {
	log := logger.FromContext(ctx)

	if request.Email == "" || request.Password == "" {
		return models.LoginResponse{}, ErrInvalidDataProvided
	}

	user, err := a.userRepository.FindUserByEmail(ctx, request.Email)
	if errors.Is(err, store.ErrNoUserWasFound) {
		a.audit.RecordBestEffort(ctx, models.AuditEntry{
			Action:    models.AuditLoginFailed,
			IPAddress: ip,
			UserAgent: userAgent,
			Details:   map[string]any{"email": request.Email, "reason": "unknown_email"},
		})
		return models.LoginResponse{}, ErrInvalidCredentials
	}
	if err != nil {
		log.Err(err).Msg("user search by email failed")
		return models.LoginResponse{}, fmt.Errorf("user search by email failed: %w", err)
	}

	if user.Locked(time.Now()) {
		a.audit.RecordBestEffort(ctx, a.loginFailedEntry(user.UserID, ip, userAgent, "account_locked"))
		return models.LoginResponse{}, ErrAccountLocked
	}

	if !user.IsActive {
		a.audit.RecordBestEffort(ctx, a.loginFailedEntry(user.UserID, ip, userAgent, "account_disabled"))
		return models.LoginResponse{}, ErrAccountDisabled
	}

	ok, err := VerifyPassword(request.Password, user.PasswordHash)
	if err != nil {
		log.Err(err).Int64("user_id", user.UserID).Msg("password verification failed")
		return models.LoginResponse{}, fmt.Errorf("password verification failed: %w", err)
	}
	if !ok {
		return models.LoginResponse{}, a.handleFailedPassword(ctx, user.UserID, ip, userAgent)
	}

	if err = a.userRepository.RecordSuccessfulLogin(ctx, user.UserID, ip); err != nil {
		log.Err(err).Int64("user_id", user.UserID).Msg("recording successful login failed")
		return models.LoginResponse{}, fmt.Errorf("recording successful login failed: %w", err)
	}

	pair, err := a.tokens.IssuePair(ctx, user.UserID, request.RememberMe)
	if err != nil {
		return models.LoginResponse{}, err
	}

	profile := a.findProfile(ctx, user.UserID)

	a.audit.RecordBestEffort(ctx, models.AuditEntry{
		UserID:    &user.UserID,
		Action:    models.AuditLogin,
		IPAddress: ip,
		UserAgent: userAgent,
		Details:   map[string]any{"remember_me": request.RememberMe},
	})

	return models.LoginResponse{
		User:              models.UserWithProfile{User: user, Profile: profile},
		Access:            pair.Access,
		Refresh:           pair.Refresh,
		AccessExpiration:  pair.AccessExpiresAt,
		RefreshExpiration: pair.RefreshExpiresAt,
	}, nil
}

// Logout revokes the presented refresh token. The short-lived access
// token is left to expire on its own.
func (a *authService) Logout(ctx context.Context, refreshToken string, userID int64, ip, userAgent string) error {
	claims, err := a.tokens.VerifyRefresh(ctx, refreshToken)
	if err != nil {
		return err
	}

	// A refresh token may only be revoked by its owner.
	if claims.UserID != userID {
		return ErrPermissionDenied
	}

	if err = a.tokens.Revoke(ctx, claims); err != nil {
		return err
	}

	a.audit.RecordBestEffort(ctx, models.AuditEntry{
		UserID:    &userID,
		Action:    models.AuditLogout,
		IPAddress: ip,
		UserAgent: userAgent,
	})

	return nil
}

// Refresh exchanges a valid refresh token for a new access token and,
// under the rotation policy, a replacement refresh token. A revoked
// token presented here counts as reuse and is recorded.
func (a *authService) Refresh(ctx context.Context, refreshToken, ip, userAgent string) (models.RefreshResponse, error) {
	claims, err := a.tokens.VerifyRefresh(ctx, refreshToken)
	if errors.Is(err, ErrTokenRevoked) {
		a.audit.RecordBestEffort(ctx, models.AuditEntry{
			Action:    models.AuditTokenRevoked,
			IPAddress: ip,
			UserAgent: userAgent,
			Details:   map[string]any{"reason": "reuse_detected"},
		})
		return models.RefreshResponse{}, err
	}
	if err != nil {
		return models.RefreshResponse{}, err
	}

	user, err := a.userRepository.FindUserByID(ctx, claims.UserID)
	if errors.Is(err, store.ErrNoUserWasFound) {
		return models.RefreshResponse{}, ErrUserNotFound
	}
	if err != nil {
		return models.RefreshResponse{}, fmt.Errorf("user search by id failed: %w", err)
	}

	// Account state is re-checked on refresh so a lock or deactivation
	// cuts the session short instead of riding out the refresh window.
	if user.Locked(time.Now()) {
		return models.RefreshResponse{}, ErrAccountLocked
	}
	if !user.IsActive {
		return models.RefreshResponse{}, ErrAccountDisabled
	}

	response, err := a.tokens.Rotate(ctx, claims)
	if err != nil {
		return models.RefreshResponse{}, err
	}

	a.audit.RecordBestEffort(ctx, models.AuditEntry{
		UserID:    &user.UserID,
		Action:    models.AuditTokenRefresh,
		IPAddress: ip,
		UserAgent: userAgent,
	})

	return response, nil
}

// CurrentUser returns the account and profile projection for userID.
func (a *authService) CurrentUser(ctx context.Context, userID int64) (models.UserWithProfile, error) {
	user, err := a.userRepository.FindUserByID(ctx, userID)
	if errors.Is(err, store.ErrNoUserWasFound) {
		return models.UserWithProfile{}, ErrUserNotFound
	}
	if err != nil {
		return models.UserWithProfile{}, fmt.Errorf("user search by id failed: %w", err)
	}

	return models.UserWithProfile{User: user, Profile: a.findProfile(ctx, userID)}, nil
}

// ChangePassword validates the password-change request and swaps the
// stored hash. Every validation failure leaves the account untouched.
func (a *authService) ChangePassword(ctx context.Context, userID int64, request models.ChangePasswordRequest, ip, userAgent string) error {
	log := logger.FromContext(ctx)

	if request.OldPassword == "" || request.NewPassword == "" || request.ConfirmPassword == "" {
		return ErrInvalidDataProvided
	}
	if request.NewPassword != request.ConfirmPassword {
		return ErrPasswordMismatch
	}
	if len(request.NewPassword) < a.minPasswordLength {
		return ErrPasswordTooShort
	}

	user, err := a.userRepository.FindUserByID(ctx, userID)
	if errors.Is(err, store.ErrNoUserWasFound) {
		return ErrUserNotFound
	}
	if err != nil {
		return fmt.Errorf("user search by id failed: %w", err)
	}

	ok, err := VerifyPassword(request.OldPassword, user.PasswordHash)
	if err != nil {
		log.Err(err).Int64("user_id", userID).Msg("password verification failed")
		return fmt.Errorf("password verification failed: %w", err)
	}
	if !ok {
		return ErrInvalidOldPassword
	}

	if request.NewPassword == request.OldPassword {
		return ErrPasswordUnchanged
	}

	hash, err := HashPassword(request.NewPassword)
	if err != nil {
		return fmt.Errorf("password hashing failed: %w", err)
	}

	if err = a.userRepository.UpdatePassword(ctx, userID, hash); err != nil {
		log.Err(err).Int64("user_id", userID).Msg("password update failed")
		return fmt.Errorf("password update failed: %w", err)
	}

	a.audit.RecordBestEffort(ctx, models.AuditEntry{
		UserID:    &userID,
		Action:    models.AuditPasswordChange,
		IPAddress: ip,
		UserAgent: userAgent,
	})

	return nil
}

// Permissions returns the caller's role, its resolved permission set and
// the super-role marker.
func (a *authService) Permissions(ctx context.Context, userID int64) (models.PermissionsResponse, error) {
	profile, err := a.userRepository.FindProfileByUserID(ctx, userID)
	if errors.Is(err, store.ErrProfileNotFound) {
		return models.PermissionsResponse{}, ErrProfileMissing
	}
	if err != nil {
		return models.PermissionsResponse{}, fmt.Errorf("profile search failed: %w", err)
	}

	codes, err := a.permissions.RolePermissions(ctx, profile.Role)
	if err != nil {
		return models.PermissionsResponse{}, err
	}

	return models.PermissionsResponse{
		Role:         profile.Role,
		Permissions:  codes,
		IsSuperadmin: profile.Role.IsSuperadmin(),
	}, nil
}

// Authorize checks that userID holds code and records every denial in
// the audit trail. The denial is recorded even when persisting it fails;
// the caller is refused either way.
func (a *authService) Authorize(ctx context.Context, userID int64, code models.PermissionCode, ip, userAgent, path, method string) error {
	profile, err := a.userRepository.FindProfileByUserID(ctx, userID)
	if errors.Is(err, store.ErrProfileNotFound) {
		a.audit.RecordBestEffort(ctx, a.deniedEntry(userID, code, ip, userAgent, path, method, "no_profile"))
		return ErrProfileMissing
	}
	if err != nil {
		return fmt.Errorf("profile search failed: %w", err)
	}

	allowed, err := a.permissions.HasPermission(ctx, profile.Role, code)
	if err != nil {
		return err
	}
	if !allowed {
		a.audit.RecordBestEffort(ctx, a.deniedEntry(userID, code, ip, userAgent, path, method, "missing_permission"))
		return ErrPermissionDenied
	}

	return nil
}

// AuthorizeBranch applies the branch scoping rule for userID against
// targetBranchID. Denials are audited with the branch pair so a mismatch
// is distinguishable from a missing permission.
func (a *authService) AuthorizeBranch(ctx context.Context, userID, targetBranchID int64, ip, userAgent, path, method string) error {
	profile, err := a.userRepository.FindProfileByUserID(ctx, userID)
	if errors.Is(err, store.ErrProfileNotFound) {
		a.audit.RecordBestEffort(ctx, a.branchDeniedEntry(userID, nil, targetBranchID, ip, userAgent, path, method, "no_profile"))
		return ErrProfileMissing
	}
	if err != nil {
		return fmt.Errorf("profile search failed: %w", err)
	}

	if !a.permissions.CanAccessBranch(profile.Role, profile.BranchID, targetBranchID) {
		a.audit.RecordBestEffort(ctx, a.branchDeniedEntry(userID, profile.BranchID, targetBranchID, ip, userAgent, path, method, "branch_mismatch"))
		return ErrBranchMismatch
	}

	return nil
}

// LockAccount applies an administrative lock for the configured default
// duration.
func (a *authService) LockAccount(ctx context.Context, userID int64, ip, userAgent string) error {
	until := time.Now().Add(a.adminLockDuration)

	if err := a.userRepository.LockUser(ctx, userID, until); err != nil {
		if errors.Is(err, store.ErrNoUserWasFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("account lock failed: %w", err)
	}

	a.audit.RecordBestEffort(ctx, models.AuditEntry{
		UserID:    &userID,
		Action:    models.AuditAccountLocked,
		IPAddress: ip,
		UserAgent: userAgent,
		Details:   map[string]any{"locked_until": until, "admin_lock": true},
	})

	return nil
}

// ResetPassword sets a new password without checking the old one. It is
// the administrative recovery path and is audited as a password reset,
// not a password change.
func (a *authService) ResetPassword(ctx context.Context, userID int64, newPassword, ip, userAgent string) error {
	if newPassword == "" {
		return ErrInvalidDataProvided
	}
	if len(newPassword) < a.minPasswordLength {
		return ErrPasswordTooShort
	}

	hash, err := HashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("password hashing failed: %w", err)
	}

	if err = a.userRepository.UpdatePassword(ctx, userID, hash); err != nil {
		if errors.Is(err, store.ErrNoUserWasFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("password update failed: %w", err)
	}

	a.audit.RecordBestEffort(ctx, models.AuditEntry{
		UserID:    &userID,
		Action:    models.AuditPasswordReset,
		IPAddress: ip,
		UserAgent: userAgent,
	})

	return nil
}

// UnlockAccount clears a lock and resets the failure counter.
func (a *authService) UnlockAccount(ctx context.Context, userID int64, ip, userAgent string) error {
	if err := a.userRepository.UnlockUser(ctx, userID); err != nil {
		if errors.Is(err, store.ErrNoUserWasFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("account unlock failed: %w", err)
	}

	a.audit.RecordBestEffort(ctx, models.AuditEntry{
		UserID:    &userID,
		Action:    models.AuditAccountUnlocked,
		IPAddress: ip,
		UserAgent: userAgent,
	})

	return nil
}

// handleFailedPassword bumps the failure counter and reports the outcome
// as ErrInvalidCredentials or, when this attempt tripped the threshold,
// ErrAccountLocked.
func (a *authService) handleFailedPassword(ctx context.Context, userID int64, ip, userAgent string) error {
	attempts, lockedUntil, err := a.userRepository.RecordFailedLogin(ctx, userID, ip, a.lockoutThreshold, a.lockoutDuration)
	if err != nil {
		logger.FromContext(ctx).Err(err).Int64("user_id", userID).Msg("recording failed login failed")
		return fmt.Errorf("recording failed login failed: %w", err)
	}

	entry := a.loginFailedEntry(userID, ip, userAgent, "bad_password")
	entry.Details["failed_attempts"] = attempts
	if lockedUntil != nil {
		entry.Details["locked_until"] = *lockedUntil
	}
	a.audit.RecordBestEffort(ctx, entry)

	if lockedUntil != nil {
		return ErrAccountLocked
	}

	return ErrInvalidCredentials
}

func (a *authService) findProfile(ctx context.Context, userID int64) *models.UserProfile {
	profile, err := a.userRepository.FindProfileByUserID(ctx, userID)
	if err != nil {
		if !errors.Is(err, store.ErrProfileNotFound) {
			logger.FromContext(ctx).Err(err).Int64("user_id", userID).Msg("profile search failed")
		}
		return nil
	}

	return &profile
}

func (a *authService) loginFailedEntry(userID int64, ip, userAgent, reason string) models.AuditEntry {
	return models.AuditEntry{
		UserID:    &userID,
		Action:    models.AuditLoginFailed,
		IPAddress: ip,
		UserAgent: userAgent,
		Details:   map[string]any{"reason": reason},
	}
}

func (a *authService) branchDeniedEntry(userID int64, userBranchID *int64, targetBranchID int64, ip, userAgent, path, method, reason string) models.AuditEntry {
	details := map[string]any{
		"target_branch": targetBranchID,
		"path":          path,
		"method":        method,
		"reason":        reason,
	}
	if userBranchID != nil {
		details["user_branch"] = *userBranchID
	}

	return models.AuditEntry{
		UserID:    &userID,
		Action:    models.AuditPermissionDenied,
		IPAddress: ip,
		UserAgent: userAgent,
		Details:   details,
	}
}

func (a *authService) deniedEntry(userID int64, code models.PermissionCode, ip, userAgent, path, method, reason string) models.AuditEntry {
	return models.AuditEntry{
		UserID:    &userID,
		Action:    models.AuditPermissionDenied,
		IPAddress: ip,
		UserAgent: userAgent,
		Details: map[string]any{
			"permission": code.String(),
			"path":       path,
			"method":     method,
			"reason":     reason,
		},
	}
}
