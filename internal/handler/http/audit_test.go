package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/medkit-lab/labauth/internal/service"
	"github.com/medkit-lab/labauth/models"
)

func TestListAuditLogs_Success(t *testing.T) {
	userID := int64(7)
	auth := &mockAuthService{
		authorizeFn: func(ctx context.Context, gotUserID int64, code models.PermissionCode, ip, userAgent, path, method string) error {
			assert.Equal(t, userID, gotUserID)
			assert.Equal(t, models.PermissionCode("audit.view_logs"), code)
			assert.Equal(t, "/api/audit/logs", path)
			assert.Equal(t, http.MethodGet, method)
			return nil
		},
	}
	audit := &mockAuditService{
		listFn: func(ctx context.Context, filter models.AuditFilter) ([]models.AuditEntry, error) {
			return []models.AuditEntry{
				{EntryID: 2, UserID: &userID, Action: models.AuditLogin, IPAddress: "10.0.0.1"},
				{EntryID: 1, Action: models.AuditLoginFailed, IPAddress: "10.0.0.1"},
			}, nil
		},
	}
	handler := newTestHandler(auth, authenticatedTokens(userID), audit)
	router := handler.Init()

	request := httptest.NewRequest(http.MethodGet, "/api/audit/logs", nil)
	request.Header.Set("Authorization", "Bearer token")
	recorder := httptest.NewRecorder()

	router.ServeHTTP(recorder, request)

	require.Equal(t, http.StatusOK, recorder.Code)

	var entries []models.AuditEntry
	require.NoError(t, json.NewDecoder(recorder.Body).Decode(&entries))
	require.Len(t, entries, 2)
	assert.Equal(t, models.AuditLogin, entries[0].Action)
	assert.Nil(t, entries[1].UserID)
}

func TestListAuditLogs_PermissionDenied(t *testing.T) {
	auth := &mockAuthService{
		authorizeFn: func(ctx context.Context, userID int64, code models.PermissionCode, ip, userAgent, path, method string) error {
			return service.ErrPermissionDenied
		},
	}
	audit := &mockAuditService{
		listFn: func(ctx context.Context, filter models.AuditFilter) ([]models.AuditEntry, error) {
			t.Fatal("listing must not run when the permission check refuses")
			return nil, nil
		},
	}
	handler := newTestHandler(auth, authenticatedTokens(7), audit)
	router := handler.Init()

	request := httptest.NewRequest(http.MethodGet, "/api/audit/logs", nil)
	request.Header.Set("Authorization", "Bearer token")
	recorder := httptest.NewRecorder()

	router.ServeHTTP(recorder, request)

	assert.Equal(t, http.StatusForbidden, recorder.Code)
}

func TestListAuditLogs_EmptyResultIsJSONArray(t *testing.T) {
	auth := &mockAuthService{
		authorizeFn: func(ctx context.Context, userID int64, code models.PermissionCode, ip, userAgent, path, method string) error {
			return nil
		},
	}
	audit := &mockAuditService{
		listFn: func(ctx context.Context, filter models.AuditFilter) ([]models.AuditEntry, error) {
			return nil, nil
		},
	}
	handler := newTestHandler(auth, authenticatedTokens(7), audit)
	router := handler.Init()

	request := httptest.NewRequest(http.MethodGet, "/api/audit/logs", nil)
	request.Header.Set("Authorization", "Bearer token")
	recorder := httptest.NewRecorder()

	router.ServeHTTP(recorder, request)

	require.Equal(t, http.StatusOK, recorder.Code)
	assert.JSONEq(t, "[]", recorder.Body.String())
}

func TestAuditFilterFromQuery(t *testing.T) {
	before := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		query   string
		want    models.AuditFilter
		wantErr bool
	}{
		{
			name:  "defaults",
			query: "",
			want:  models.AuditFilter{Limit: defaultAuditPageSize},
		},
		{
			name:  "all filters",
			query: "user_id=7&action=login_failed&before=2025-06-01T12:00:00Z&limit=20",
			want: models.AuditFilter{
				UserID: ptrInt64(7),
				Action: models.AuditLoginFailed,
				Before: before,
				Limit:  20,
			},
		},
		{
			name:  "limit above page size is capped",
			query: "limit=5000",
			want:  models.AuditFilter{Limit: defaultAuditPageSize},
		},
		{
			name:    "non-numeric user id",
			query:   "user_id=abc",
			wantErr: true,
		},
		{
			name:    "malformed before timestamp",
			query:   "before=yesterday",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			request := httptest.NewRequest(http.MethodGet, "/api/audit/logs?"+tt.query, nil)

			filter, err := auditFilterFromQuery(request)

			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, filter)
		})
	}
}

func TestListAuditLogs_BadFilterIsRejected(t *testing.T) {
	auth := &mockAuthService{
		authorizeFn: func(ctx context.Context, userID int64, code models.PermissionCode, ip, userAgent, path, method string) error {
			return nil
		},
	}
	handler := newTestHandler(auth, authenticatedTokens(7), &mockAuditService{})
	router := handler.Init()

	request := httptest.NewRequest(http.MethodGet, "/api/audit/logs?user_id=abc", nil)
	request.Header.Set("Authorization", "Bearer token")
	recorder := httptest.NewRecorder()

	router.ServeHTTP(recorder, request)

	assert.Equal(t, http.StatusBadRequest, recorder.Code)
}

func ptrInt64(v int64) *int64 { return &v }
