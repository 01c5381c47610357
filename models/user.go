package models

import "time"

// User represents an account entity used for authentication and authorization.
// It carries the credential material and the brute-force lockout state.
// Sensitive fields must never be exposed outside trusted boundaries.
type User struct {
	// UserID is the internal unique identifier of the user.
	UserID int64 `json:"id"`

	// Email is the unique login identifier, stored lower-cased.
	Email string `json:"email"`

	// Username is the unique display name, distinct from the email.
	Username string `json:"username"`

	// PasswordHash is the encoded argon2id hash of the user's password.
	// Never serialized.
	PasswordHash string `json:"-"`

	// IsActive marks whether the account may authenticate. Accounts are
	// soft-disabled through this flag rather than deleted, so the audit
	// trail keeps a valid user reference.
	IsActive bool `json:"is_active"`

	// FailedLoginAttempts counts consecutive failed logins. Reset to zero
	// on any successful authentication or explicit unlock.
	FailedLoginAttempts int `json:"-"`

	// LockedUntil is set when the account is locked, either automatically
	// after repeated failures or by an administrator. Authentication is
	// refused while it lies in the future, regardless of credentials.
	LockedUntil *time.Time `json:"-"`

	// LastLoginIP is the source address of the last successful login.
	LastLoginIP *string `json:"-"`

	// LastFailedLoginIP is the source address of the last failed attempt.
	LastFailedLoginIP *string `json:"-"`

	// LastLoginAt is the time of the last successful login.
	LastLoginAt *time.Time `json:"last_login,omitempty"`

	// PasswordChangedAt is stamped on every password change.
	PasswordChangedAt *time.Time `json:"-"`

	CreatedAt time.Time `json:"date_joined"`
	UpdatedAt time.Time `json:"-"`
}

// Locked reports whether the account is locked as of now.
func (u User) Locked(now time.Time) bool {
	return u.LockedUntil != nil && now.Before(*u.LockedUntil)
}

// TableName returns the name of the database table backing the User model.
func (u User) TableName() string {
	return "users"
}

// UserProfile extends a User with its role and branch assignment. Exactly one
// profile exists per user and shares the user's lifetime. BranchID is nil only
// for the superadmin role.
type UserProfile struct {
	UserID int64 `json:"-"`

	// Role determines the permission set resolved for this user.
	Role Role `json:"role"`

	// BranchID scopes the user to a physical laboratory branch.
	// Required for every role except superadmin.
	BranchID *int64 `json:"branch,omitempty"`

	// BranchName and BranchCode are joined from the branches table for
	// presentation; they are not updatable through the profile.
	BranchName string `json:"branch_name,omitempty"`
	BranchCode string `json:"branch_code,omitempty"`

	Phone  string `json:"phone,omitempty"`
	Avatar string `json:"avatar,omitempty"`

	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}

// TableName returns the name of the database table backing the profile.
func (p UserProfile) TableName() string {
	return "user_profiles"
}

// Branch is a physical laboratory location. Users and some clinical resources
// are scoped to a branch; the core only needs the identity and display fields.
type Branch struct {
	BranchID int64  `json:"id"`
	Name     string `json:"name"`
	Code     string `json:"code"`
	IsActive bool   `json:"is_active"`

	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}

// TableName returns the name of the database table backing the Branch model.
func (b Branch) TableName() string {
	return "branches"
}
