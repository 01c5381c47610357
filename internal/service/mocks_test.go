package service

import (
	"context"
	"time"

	"github.com/medkit-lab/labauth/models"
)

// Hand-written fakes for the store interfaces. Each method delegates to
// an optional function field so tests override only what they exercise.

type fakeUserRepository struct {
	createUserFn            func(ctx context.Context, user models.User, profile models.UserProfile) (models.User, error)
	findUserByEmailFn       func(ctx context.Context, email string) (models.User, error)
	findUserByIDFn          func(ctx context.Context, userID int64) (models.User, error)
	findProfileByUserIDFn   func(ctx context.Context, userID int64) (models.UserProfile, error)
	recordFailedLoginFn     func(ctx context.Context, userID int64, ip string, threshold int, lockFor time.Duration) (int, *time.Time, error)
	recordSuccessfulLoginFn func(ctx context.Context, userID int64, ip string) error
	lockUserFn              func(ctx context.Context, userID int64, until time.Time) error
	unlockUserFn            func(ctx context.Context, userID int64) error
	updatePasswordFn        func(ctx context.Context, userID int64, passwordHash string) error
}

func (f *fakeUserRepository) CreateUser(ctx context.Context, user models.User, profile models.UserProfile) (models.User, error) {
	return f.createUserFn(ctx, user, profile)
}

func (f *fakeUserRepository) FindUserByEmail(ctx context.Context, email string) (models.User, error) {
	return f.findUserByEmailFn(ctx, email)
}

func (f *fakeUserRepository) FindUserByID(ctx context.Context, userID int64) (models.User, error) {
	return f.findUserByIDFn(ctx, userID)
}

func (f *fakeUserRepository) FindProfileByUserID(ctx context.Context, userID int64) (models.UserProfile, error) {
	return f.findProfileByUserIDFn(ctx, userID)
}

func (f *fakeUserRepository) RecordFailedLogin(ctx context.Context, userID int64, ip string, threshold int, lockFor time.Duration) (int, *time.Time, error) {
	return f.recordFailedLoginFn(ctx, userID, ip, threshold, lockFor)
}

func (f *fakeUserRepository) RecordSuccessfulLogin(ctx context.Context, userID int64, ip string) error {
	if f.recordSuccessfulLoginFn == nil {
		return nil
	}
	return f.recordSuccessfulLoginFn(ctx, userID, ip)
}

func (f *fakeUserRepository) LockUser(ctx context.Context, userID int64, until time.Time) error {
	return f.lockUserFn(ctx, userID, until)
}

func (f *fakeUserRepository) UnlockUser(ctx context.Context, userID int64) error {
	return f.unlockUserFn(ctx, userID)
}

func (f *fakeUserRepository) UpdatePassword(ctx context.Context, userID int64, passwordHash string) error {
	return f.updatePasswordFn(ctx, userID, passwordHash)
}

type fakePermissionRepository struct {
	listCatalogFn            func(ctx context.Context) ([]models.Permission, error)
	listRoleCodesFn          func(ctx context.Context, role models.Role) ([]models.PermissionCode, error)
	upsertPermissionFn       func(ctx context.Context, permission models.Permission) error
	replaceRolePermissionsFn func(ctx context.Context, role models.Role, codes []models.PermissionCode) error
}

func (f *fakePermissionRepository) ListCatalog(ctx context.Context) ([]models.Permission, error) {
	return f.listCatalogFn(ctx)
}

func (f *fakePermissionRepository) ListRoleCodes(ctx context.Context, role models.Role) ([]models.PermissionCode, error) {
	return f.listRoleCodesFn(ctx, role)
}

func (f *fakePermissionRepository) UpsertPermission(ctx context.Context, permission models.Permission) error {
	return f.upsertPermissionFn(ctx, permission)
}

func (f *fakePermissionRepository) ReplaceRolePermissions(ctx context.Context, role models.Role, codes []models.PermissionCode) error {
	return f.replaceRolePermissionsFn(ctx, role, codes)
}

// recordingAuditRepository captures inserted entries for assertions.
type recordingAuditRepository struct {
	entries   []models.AuditEntry
	insertErr error
}

func (r *recordingAuditRepository) Insert(_ context.Context, entry models.AuditEntry) (models.AuditEntry, error) {
	if r.insertErr != nil {
		return models.AuditEntry{}, r.insertErr
	}
	entry.EntryID = int64(len(r.entries) + 1)
	entry.CreatedAt = time.Now()
	r.entries = append(r.entries, entry)
	return entry, nil
}

func (r *recordingAuditRepository) List(_ context.Context, _ models.AuditFilter) ([]models.AuditEntry, error) {
	return r.entries, nil
}

func (r *recordingAuditRepository) DeleteOlderThan(_ context.Context, _ time.Time) (int64, error) {
	return 0, nil
}

func (r *recordingAuditRepository) lastAction() models.AuditAction {
	if len(r.entries) == 0 {
		return ""
	}
	return r.entries[len(r.entries)-1].Action
}

func (r *recordingAuditRepository) actions() []models.AuditAction {
	actions := make([]models.AuditAction, 0, len(r.entries))
	for _, entry := range r.entries {
		actions = append(actions, entry.Action)
	}
	return actions
}
