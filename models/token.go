package models

import (
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Token kinds carried in the "typ" claim. Access tokens authenticate API
// requests; refresh tokens mint new access tokens and are the unit of
// revocation.
const (
	TokenTypeAccess  = "access"
	TokenTypeRefresh = "refresh"
)

// SessionClaims is the claim set carried by both session token kinds.
//
// It embeds [jwt.RegisteredClaims] for the standard fields (sub, exp, iat,
// iss, jti) and adds the token kind. UserID is a cached, parsed copy of the
// "sub" claim populated during verification so callers do not re-parse it.
type SessionClaims struct {
	jwt.RegisteredClaims

	// TokenType distinguishes access from refresh tokens so one kind can
	// never be presented where the other is expected.
	TokenType string `json:"typ"`

	// UserID is the owner identifier extracted from the "sub" claim.
	// Server-side cache only, never serialized into the token.
	UserID int64 `json:"-"`
}

// GetUserID extracts the user identifier from the "sub" claim and parses it
// as a base-10 int64. Returns an error if the claim is missing, empty, or
// not numeric.
func (c *SessionClaims) GetUserID() (int64, error) {
	sub, err := c.GetSubject()
	if err != nil {
		return 0, fmt.Errorf("error extracting user id from token: %w", err)
	}
	if sub == "" {
		return 0, fmt.Errorf("empty subject claim in token")
	}

	userID, err := strconv.ParseInt(sub, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("error converting token subject to int64: %w", err)
	}

	return userID, nil
}

// TokenPair is the credential pair issued at login: a short-lived access
// token and a longer-lived refresh token, each with its expiry.
type TokenPair struct {
	Access           string    `json:"access"`
	Refresh          string    `json:"refresh"`
	AccessExpiresAt  time.Time `json:"access_expiration"`
	RefreshExpiresAt time.Time `json:"refresh_expiration"`
}
