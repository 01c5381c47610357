package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/medkit-lab/labauth/internal/service"
	"github.com/medkit-lab/labauth/models"
)

func authenticatedTokens(userID int64) *mockTokenService {
	return &mockTokenService{
		verifyAccessFn: func(ctx context.Context, tokenString string) (*models.SessionClaims, error) {
			return &models.SessionClaims{UserID: userID, TokenType: models.TokenTypeAccess}, nil
		},
	}
}

func TestMe_Success(t *testing.T) {
	branchID := int64(3)
	auth := &mockAuthService{
		currentUserFn: func(ctx context.Context, userID int64) (models.UserWithProfile, error) {
			require.Equal(t, int64(7), userID)
			return models.UserWithProfile{
				User: models.User{UserID: 7, Email: "doctor@lab.example", Username: "doctor", IsActive: true},
				Profile: &models.UserProfile{
					UserID:   7,
					Role:     models.RoleDoctor,
					BranchID: &branchID,
				},
			}, nil
		},
	}
	handler := newTestHandler(auth, authenticatedTokens(7), &mockAuditService{})
	router := handler.Init()

	request := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	request.Header.Set("Authorization", "Bearer token")
	recorder := httptest.NewRecorder()

	router.ServeHTTP(recorder, request)

	require.Equal(t, http.StatusOK, recorder.Code)

	var response models.UserWithProfile
	require.NoError(t, json.NewDecoder(recorder.Body).Decode(&response))
	assert.Equal(t, "doctor@lab.example", response.Email)
	require.NotNil(t, response.Profile)
	assert.Equal(t, models.RoleDoctor, response.Profile.Role)
}

func TestMe_PasswordHashNeverSerialized(t *testing.T) {
	auth := &mockAuthService{
		currentUserFn: func(ctx context.Context, userID int64) (models.UserWithProfile, error) {
			return models.UserWithProfile{
				User: models.User{UserID: 7, Email: "doctor@lab.example", PasswordHash: "$argon2id$super-secret"},
			}, nil
		},
	}
	handler := newTestHandler(auth, authenticatedTokens(7), &mockAuditService{})
	router := handler.Init()

	request := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	request.Header.Set("Authorization", "Bearer token")
	recorder := httptest.NewRecorder()

	router.ServeHTTP(recorder, request)

	require.Equal(t, http.StatusOK, recorder.Code)
	assert.NotContains(t, recorder.Body.String(), "super-secret")
}

func TestChangePassword_Success(t *testing.T) {
	auth := &mockAuthService{
		changePasswordFn: func(ctx context.Context, userID int64, request models.ChangePasswordRequest, ip, userAgent string) error {
			assert.Equal(t, int64(7), userID)
			assert.Equal(t, "new-password-2", request.NewPassword)
			return nil
		},
	}
	handler := newTestHandler(auth, authenticatedTokens(7), &mockAuditService{})
	router := handler.Init()

	body := `{"old_password":"old-password-1","new_password":"new-password-2","confirm_password":"new-password-2"}`
	request := httptest.NewRequest(http.MethodPost, "/api/auth/change-password", strings.NewReader(body))
	request.Header.Set("Authorization", "Bearer token")
	recorder := httptest.NewRecorder()

	router.ServeHTTP(recorder, request)

	assert.Equal(t, http.StatusOK, recorder.Code)
}

func TestChangePassword_ValidationErrors(t *testing.T) {
	tests := []struct {
		name       string
		serviceErr error
		wantStatus int
	}{
		{"mismatch", service.ErrPasswordMismatch, http.StatusBadRequest},
		{"too short", service.ErrPasswordTooShort, http.StatusBadRequest},
		{"wrong old password", service.ErrInvalidOldPassword, http.StatusBadRequest},
		{"unchanged", service.ErrPasswordUnchanged, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			auth := &mockAuthService{
				changePasswordFn: func(ctx context.Context, userID int64, request models.ChangePasswordRequest, ip, userAgent string) error {
					return tt.serviceErr
				},
			}
			handler := newTestHandler(auth, authenticatedTokens(7), &mockAuditService{})
			router := handler.Init()

			body := `{"old_password":"a","new_password":"b","confirm_password":"c"}`
			request := httptest.NewRequest(http.MethodPost, "/api/auth/change-password", strings.NewReader(body))
			request.Header.Set("Authorization", "Bearer token")
			recorder := httptest.NewRecorder()

			router.ServeHTTP(recorder, request)

			assert.Equal(t, tt.wantStatus, recorder.Code)
		})
	}
}

func TestPermissions_Success(t *testing.T) {
	auth := &mockAuthService{
		permissionsFn: func(ctx context.Context, userID int64) (models.PermissionsResponse, error) {
			return models.PermissionsResponse{
				Role:        models.RoleDoctor,
				Permissions: []models.PermissionCode{"patients.view", "results.view"},
			}, nil
		},
	}
	handler := newTestHandler(auth, authenticatedTokens(7), &mockAuditService{})
	router := handler.Init()

	request := httptest.NewRequest(http.MethodGet, "/api/auth/permissions", nil)
	request.Header.Set("Authorization", "Bearer token")
	recorder := httptest.NewRecorder()

	router.ServeHTTP(recorder, request)

	require.Equal(t, http.StatusOK, recorder.Code)

	var response models.PermissionsResponse
	require.NoError(t, json.NewDecoder(recorder.Body).Decode(&response))
	assert.Equal(t, models.RoleDoctor, response.Role)
	assert.Len(t, response.Permissions, 2)
	assert.False(t, response.IsSuperadmin)
}

func TestPermissions_NoProfile(t *testing.T) {
	auth := &mockAuthService{
		permissionsFn: func(ctx context.Context, userID int64) (models.PermissionsResponse, error) {
			return models.PermissionsResponse{}, service.ErrProfileMissing
		},
	}
	handler := newTestHandler(auth, authenticatedTokens(7), &mockAuditService{})
	router := handler.Init()

	request := httptest.NewRequest(http.MethodGet, "/api/auth/permissions", nil)
	request.Header.Set("Authorization", "Bearer token")
	recorder := httptest.NewRecorder()

	router.ServeHTTP(recorder, request)

	assert.Equal(t, http.StatusForbidden, recorder.Code)
}
