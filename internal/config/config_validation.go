package config

import (
	"errors"
	"fmt"
)

// Validation errors returned by [StructuredConfig.validate] when required
// configuration groups are incomplete or invalid.
var (
	// ErrInvalidAppConfigs indicates missing application-level settings
	// (for example, an empty token signing key).
	ErrInvalidAppConfigs = errors.New("invalid app configuration")

	// ErrInvalidSecurityConfigs indicates an out-of-range security
	// parameter (for example, a non-positive lockout threshold).
	ErrInvalidSecurityConfigs = errors.New("invalid security configuration")

	// ErrInvalidStorageConfigs indicates incomplete storage settings
	// (for example, an empty database DSN).
	ErrInvalidStorageConfigs = errors.New("invalid storage configuration")
)

// validate checks that the final merged [StructuredConfig] satisfies the
// invariants the service relies on at startup. Every violation is reported;
// the caller treats any error as fatal.
func (c *StructuredConfig) validate() error {
	var errs []error

	if c.App.TokenSignKey == "" {
		errs = append(errs, fmt.Errorf("%w: token sign key is required", ErrInvalidAppConfigs))
	}
	if c.App.TokenIssuer == "" {
		errs = append(errs, fmt.Errorf("%w: token issuer is required", ErrInvalidAppConfigs))
	}

	if c.Security.LockoutThreshold < 1 {
		errs = append(errs, fmt.Errorf("%w: lockout threshold must be positive", ErrInvalidSecurityConfigs))
	}
	if c.Security.AccessTokenTTL <= 0 || c.Security.RefreshTokenTTL <= 0 {
		errs = append(errs, fmt.Errorf("%w: token lifetimes must be positive", ErrInvalidSecurityConfigs))
	}
	if c.Security.RefreshPolicy != RefreshPolicyRotateAndBlacklist && c.Security.RefreshPolicy != RefreshPolicyReuse {
		errs = append(errs, fmt.Errorf("%w: unknown refresh policy %q", ErrInvalidSecurityConfigs, c.Security.RefreshPolicy))
	}
	if c.Security.MinPasswordLength < 1 {
		errs = append(errs, fmt.Errorf("%w: minimum password length must be positive", ErrInvalidSecurityConfigs))
	}

	if c.Storage.DB.DSN == "" {
		errs = append(errs, fmt.Errorf("%w: database DSN is required", ErrInvalidStorageConfigs))
	}

	return errors.Join(errs...)
}
