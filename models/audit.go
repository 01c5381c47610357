package models

import "time"

// AuditAction is the closed enumeration of security events recorded in the
// audit trail.
type AuditAction string

const (
	AuditLogin            AuditAction = "login"
	AuditLogout           AuditAction = "logout"
	AuditLoginFailed      AuditAction = "login_failed"
	AuditPasswordChange   AuditAction = "password_change"
	AuditPasswordReset    AuditAction = "password_reset"
	AuditAccountLocked    AuditAction = "account_locked"
	AuditAccountUnlocked  AuditAction = "account_unlocked"
	AuditPermissionDenied AuditAction = "permission_denied"
	AuditTokenRefresh     AuditAction = "token_refresh"
	AuditTokenRevoked     AuditAction = "token_revoked"
)

// Valid reports whether a is one of the recognized audit actions.
func (a AuditAction) Valid() bool {
	switch a {
	case AuditLogin, AuditLogout, AuditLoginFailed, AuditPasswordChange,
		AuditPasswordReset, AuditAccountLocked, AuditAccountUnlocked,
		AuditPermissionDenied, AuditTokenRefresh, AuditTokenRevoked:
		return true
	}
	return false
}

// AuditEntry is an append-only record of one security-relevant event.
// Entries are never mutated after creation; deletion is reserved for the
// administrative retention purge.
type AuditEntry struct {
	EntryID int64 `json:"id"`

	// UserID references the acting user. Nil is permitted: a failed login
	// with an unknown email has no user to reference.
	UserID *int64 `json:"user_id,omitempty"`

	Action    AuditAction `json:"action"`
	IPAddress string      `json:"ip_address"`
	UserAgent string      `json:"user_agent"`

	// Details carries free-form structured context (permission code,
	// request path, lockout reason, ...) persisted as JSONB.
	Details map[string]any `json:"details,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}

// TableName returns the name of the database table backing the audit trail.
func (e AuditEntry) TableName() string {
	return "audit_logs"
}

// AuditFilter narrows an audit-trail listing. Zero-valued fields are ignored.
type AuditFilter struct {
	UserID *int64
	Action AuditAction
	Before time.Time
	Limit  uint64
}
