package service

import "errors"

var (
	ErrInvalidDataProvided = errors.New("invalid data provided")

	// Credential verification. ErrInvalidCredentials deliberately covers
	// both the unknown-email and wrong-password cases so responses never
	// disclose which one happened.
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserNotFound       = errors.New("user not found")
	ErrAccountLocked      = errors.New("account is locked")
	ErrAccountDisabled    = errors.New("account is disabled")

	// Token lifecycle.
	ErrTokenMalformed  = errors.New("token is malformed or has invalid signature")
	ErrTokenExpired    = errors.New("token is expired")
	ErrTokenRevoked    = errors.New("token has been revoked")
	ErrWrongTokenType  = errors.New("wrong token type presented")
	ErrTokenIssueFault = errors.New("token issuance failed")

	// Authorization.
	ErrPermissionDenied = errors.New("permission denied")
	ErrProfileMissing   = errors.New("user has no profile")
	ErrBranchMismatch   = errors.New("branch access denied")

	// Password change.
	ErrInvalidOldPassword = errors.New("old password is incorrect")
	ErrPasswordMismatch   = errors.New("password confirmation does not match")
	ErrPasswordTooShort   = errors.New("password does not meet the length policy")
	ErrPasswordUnchanged  = errors.New("new password must differ from the old one")
)
