package http

import (
	"context"

	"github.com/medkit-lab/labauth/internal/logger"
	"github.com/medkit-lab/labauth/internal/service"
	"github.com/medkit-lab/labauth/models"
)

// Hand-written mocks for the service interfaces. Each method delegates
// to an optional function field so tests override only what they use.

type mockAuthService struct {
	loginFn           func(ctx context.Context, request models.LoginRequest, ip, userAgent string) (models.LoginResponse, error)
	logoutFn          func(ctx context.Context, refreshToken string, userID int64, ip, userAgent string) error
	refreshFn         func(ctx context.Context, refreshToken, ip, userAgent string) (models.RefreshResponse, error)
	currentUserFn     func(ctx context.Context, userID int64) (models.UserWithProfile, error)
	changePasswordFn  func(ctx context.Context, userID int64, request models.ChangePasswordRequest, ip, userAgent string) error
	permissionsFn     func(ctx context.Context, userID int64) (models.PermissionsResponse, error)
	authorizeFn       func(ctx context.Context, userID int64, code models.PermissionCode, ip, userAgent, path, method string) error
	authorizeBranchFn func(ctx context.Context, userID, targetBranchID int64, ip, userAgent, path, method string) error
	lockAccountFn     func(ctx context.Context, userID int64, ip, userAgent string) error
	unlockAccountFn   func(ctx context.Context, userID int64, ip, userAgent string) error
	resetPasswordFn   func(ctx context.Context, userID int64, newPassword, ip, userAgent string) error
}

func (m *mockAuthService) Login(ctx context.Context, request models.LoginRequest, ip, userAgent string) (models.LoginResponse, error) {
	return m.loginFn(ctx, request, ip, userAgent)
}

func (m *mockAuthService) Logout(ctx context.Context, refreshToken string, userID int64, ip, userAgent string) error {
	return m.logoutFn(ctx, refreshToken, userID, ip, userAgent)
}

func (m *mockAuthService) Refresh(ctx context.Context, refreshToken, ip, userAgent string) (models.RefreshResponse, error) {
	return m.refreshFn(ctx, refreshToken, ip, userAgent)
}

func (m *mockAuthService) CurrentUser(ctx context.Context, userID int64) (models.UserWithProfile, error) {
	return m.currentUserFn(ctx, userID)
}

func (m *mockAuthService) ChangePassword(ctx context.Context, userID int64, request models.ChangePasswordRequest, ip, userAgent string) error {
	return m.changePasswordFn(ctx, userID, request, ip, userAgent)
}

func (m *mockAuthService) Permissions(ctx context.Context, userID int64) (models.PermissionsResponse, error) {
	return m.permissionsFn(ctx, userID)
}

func (m *mockAuthService) Authorize(ctx context.Context, userID int64, code models.PermissionCode, ip, userAgent, path, method string) error {
	return m.authorizeFn(ctx, userID, code, ip, userAgent, path, method)
}

func (m *mockAuthService) AuthorizeBranch(ctx context.Context, userID, targetBranchID int64, ip, userAgent, path, method string) error {
	return m.authorizeBranchFn(ctx, userID, targetBranchID, ip, userAgent, path, method)
}

func (m *mockAuthService) LockAccount(ctx context.Context, userID int64, ip, userAgent string) error {
	return m.lockAccountFn(ctx, userID, ip, userAgent)
}

func (m *mockAuthService) UnlockAccount(ctx context.Context, userID int64, ip, userAgent string) error {
	return m.unlockAccountFn(ctx, userID, ip, userAgent)
}

func (m *mockAuthService) ResetPassword(ctx context.Context, userID int64, newPassword, ip, userAgent string) error {
	return m.resetPasswordFn(ctx, userID, newPassword, ip, userAgent)
}

type mockTokenService struct {
	issuePairFn     func(ctx context.Context, userID int64, rememberMe bool) (models.TokenPair, error)
	verifyAccessFn  func(ctx context.Context, tokenString string) (*models.SessionClaims, error)
	verifyRefreshFn func(ctx context.Context, tokenString string) (*models.SessionClaims, error)
	rotateFn        func(ctx context.Context, claims *models.SessionClaims) (models.RefreshResponse, error)
	revokeFn        func(ctx context.Context, claims *models.SessionClaims) error
}

func (m *mockTokenService) IssuePair(ctx context.Context, userID int64, rememberMe bool) (models.TokenPair, error) {
	return m.issuePairFn(ctx, userID, rememberMe)
}

func (m *mockTokenService) VerifyAccess(ctx context.Context, tokenString string) (*models.SessionClaims, error) {
	return m.verifyAccessFn(ctx, tokenString)
}

func (m *mockTokenService) VerifyRefresh(ctx context.Context, tokenString string) (*models.SessionClaims, error) {
	return m.verifyRefreshFn(ctx, tokenString)
}

func (m *mockTokenService) Rotate(ctx context.Context, claims *models.SessionClaims) (models.RefreshResponse, error) {
	return m.rotateFn(ctx, claims)
}

func (m *mockTokenService) Revoke(ctx context.Context, claims *models.SessionClaims) error {
	return m.revokeFn(ctx, claims)
}

type mockAuditService struct {
	recordFn func(ctx context.Context, entry models.AuditEntry) error
	listFn   func(ctx context.Context, filter models.AuditFilter) ([]models.AuditEntry, error)
}

func (m *mockAuditService) Record(ctx context.Context, entry models.AuditEntry) error {
	return m.recordFn(ctx, entry)
}

func (m *mockAuditService) RecordBestEffort(ctx context.Context, entry models.AuditEntry) {
	if m.recordFn != nil {
		_ = m.recordFn(ctx, entry)
	}
}

func (m *mockAuditService) List(ctx context.Context, filter models.AuditFilter) ([]models.AuditEntry, error) {
	return m.listFn(ctx, filter)
}

func newTestHandler(auth service.AuthService, tokens service.TokenService, audit service.AuditService) *Handler {
	return NewHandler(&service.Services{
		AuthService:  auth,
		TokenService: tokens,
		AuditService: audit,
	}, logger.Nop())
}
