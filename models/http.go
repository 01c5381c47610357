package models

import "time"

// Request and response bodies for the HTTP API. Error responses are always
// single-field objects; validation failures may be field-keyed maps built by
// the handlers.

// LoginRequest is the body of POST /api/auth/login.
type LoginRequest struct {
	Email      string `json:"email"`
	Password   string `json:"password"`
	RememberMe bool   `json:"remember_me"`
}

// LoginResponse returns the authenticated user together with the session
// token pair and both expirations.
type LoginResponse struct {
	User              UserWithProfile `json:"user"`
	Access            string          `json:"access"`
	Refresh           string          `json:"refresh"`
	AccessExpiration  time.Time       `json:"access_expiration"`
	RefreshExpiration time.Time       `json:"refresh_expiration"`
}

// UserWithProfile is the public projection of a user and its profile.
type UserWithProfile struct {
	User
	Profile *UserProfile `json:"profile,omitempty"`
}

// RefreshRequest is the body of POST /api/auth/refresh and POST
// /api/auth/logout; both carry the refresh token explicitly.
type RefreshRequest struct {
	Refresh string `json:"refresh"`
}

// RefreshResponse returns the new access token. When rotation is enabled the
// replacement refresh token is included as well.
type RefreshResponse struct {
	Access            string     `json:"access"`
	AccessExpiration  time.Time  `json:"access_expiration"`
	Refresh           string     `json:"refresh,omitempty"`
	RefreshExpiration *time.Time `json:"refresh_expiration,omitempty"`
}

// ChangePasswordRequest is the body of POST /api/auth/change-password.
type ChangePasswordRequest struct {
	OldPassword     string `json:"old_password"`
	NewPassword     string `json:"new_password"`
	ConfirmPassword string `json:"confirm_password"`
}

// PermissionsResponse is the body of GET /api/auth/permissions.
type PermissionsResponse struct {
	Role         Role             `json:"role"`
	Permissions  []PermissionCode `json:"permissions"`
	IsSuperadmin bool             `json:"is_superadmin"`
}

// MessageResponse is the generic confirmation body.
type MessageResponse struct {
	Message string `json:"message"`
}

// ErrorResponse is the generic error body. No internal detail or stack
// information is ever surfaced through it.
type ErrorResponse struct {
	Error string `json:"error"`
}
