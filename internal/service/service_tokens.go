package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/medkit-lab/labauth/internal/config"
	"github.com/medkit-lab/labauth/internal/logger"
	"github.com/medkit-lab/labauth/internal/store"
	"github.com/medkit-lab/labauth/internal/utils"
	"github.com/medkit-lab/labauth/models"
)

// tokenService is the concrete implementation of TokenService.
// Tokens are stateless HMAC-SHA256 JWTs; revocation is tracked in the
// denylist keyed by the jti claim until the token's natural expiry.
type tokenService struct {
	denylist store.TokenDenylist
	uuids    *utils.UUIDGenerator

	tokenSignKey string
	tokenIssuer  string

	accessTTL     time.Duration
	refreshTTL    time.Duration
	rememberTTL   time.Duration
	refreshPolicy string

	logger *logger.Logger
}

// NewTokenService constructs a TokenService with signing material from
// appCfg and lifetime policy from securityCfg.
func NewTokenService(denylist store.TokenDenylist, appCfg config.App, securityCfg config.Security, logger *logger.Logger) TokenService {
	return &tokenService{
		denylist:      denylist,
		uuids:         utils.NewUUIDGenerator(),
		tokenSignKey:  appCfg.TokenSignKey,
		tokenIssuer:   appCfg.TokenIssuer,
		accessTTL:     securityCfg.AccessTokenTTL,
		refreshTTL:    securityCfg.RefreshTokenTTL,
		rememberTTL:   securityCfg.RememberMeTTL,
		refreshPolicy: securityCfg.RefreshPolicy,
		logger:        logger,
	}
}

// IssuePair mints a fresh access and refresh token pair for userID. With
// rememberMe the refresh token gets the extended lifetime.
func (t *tokenService) IssuePair(ctx context.Context, userID int64, rememberMe bool) (models.TokenPair, error) {
	now := time.Now()

	refreshTTL := t.refreshTTL
	if rememberMe {
		refreshTTL = t.rememberTTL
	}

	access, err := utils.GenerateSessionToken(t.tokenIssuer, userID, models.TokenTypeAccess, t.uuids.Generate(), t.accessTTL, t.tokenSignKey)
	if err != nil {
		return models.TokenPair{}, fmt.Errorf("%w: %w", ErrTokenIssueFault, err)
	}

	refresh, err := utils.GenerateSessionToken(t.tokenIssuer, userID, models.TokenTypeRefresh, t.uuids.Generate(), refreshTTL, t.tokenSignKey)
	if err != nil {
		return models.TokenPair{}, fmt.Errorf("%w: %w", ErrTokenIssueFault, err)
	}

	return models.TokenPair{
		Access:           access,
		Refresh:          refresh,
		AccessExpiresAt:  now.Add(t.accessTTL),
		RefreshExpiresAt: now.Add(refreshTTL),
	}, nil
}

// VerifyAccess validates an access token and checks it against the
// denylist. Returns the parsed claims with UserID populated.
func (t *tokenService) VerifyAccess(ctx context.Context, tokenString string) (*models.SessionClaims, error) {
	return t.verify(ctx, tokenString, models.TokenTypeAccess)
}

// VerifyRefresh validates a refresh token and checks it against the
// denylist.
func (t *tokenService) VerifyRefresh(ctx context.Context, tokenString string) (*models.SessionClaims, error) {
	return t.verify(ctx, tokenString, models.TokenTypeRefresh)
}

// Rotate exchanges a verified refresh token for a new access token.
// Under the rotate-and-blacklist policy the presented refresh token is
// denylisted and a replacement refresh token is issued alongside.
func (t *tokenService) Rotate(ctx context.Context, claims *models.SessionClaims) (models.RefreshResponse, error) {
	now := time.Now()

	access, err := utils.GenerateSessionToken(t.tokenIssuer, claims.UserID, models.TokenTypeAccess, t.uuids.Generate(), t.accessTTL, t.tokenSignKey)
	if err != nil {
		return models.RefreshResponse{}, fmt.Errorf("%w: %w", ErrTokenIssueFault, err)
	}

	response := models.RefreshResponse{
		Access:           access,
		AccessExpiration: now.Add(t.accessTTL),
	}

	if t.refreshPolicy != config.RefreshPolicyRotateAndBlacklist {
		return response, nil
	}

	if err = t.Revoke(ctx, claims); err != nil {
		return models.RefreshResponse{}, err
	}

	refresh, err := utils.GenerateSessionToken(t.tokenIssuer, claims.UserID, models.TokenTypeRefresh, t.uuids.Generate(), t.refreshTTL, t.tokenSignKey)
	if err != nil {
		return models.RefreshResponse{}, fmt.Errorf("%w: %w", ErrTokenIssueFault, err)
	}

	refreshExpiration := now.Add(t.refreshTTL)
	response.Refresh = refresh
	response.RefreshExpiration = &refreshExpiration

	return response, nil
}

// Revoke denylists the token behind claims for the remainder of its
// lifetime.
func (t *tokenService) Revoke(ctx context.Context, claims *models.SessionClaims) error {
	if claims == nil || claims.ID == "" || claims.ExpiresAt == nil {
		return ErrInvalidDataProvided
	}

	ttl := time.Until(claims.ExpiresAt.Time)
	if err := t.denylist.Add(ctx, claims.ID, ttl); err != nil {
		logger.FromContext(ctx).Err(err).Str("jti", claims.ID).Msg("token revocation failed")
		return fmt.Errorf("token revocation failed: %w", err)
	}

	return nil
}

func (t *tokenService) verify(ctx context.Context, tokenString, wantType string) (*models.SessionClaims, error) {
	claims, err := utils.ValidateAndParseSessionToken(tokenString, t.tokenSignKey, t.tokenIssuer)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrTokenMalformed
	}

	if claims.TokenType != wantType {
		return nil, ErrWrongTokenType
	}

	revoked, err := t.denylist.Contains(ctx, claims.ID)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("jti", claims.ID).Msg("denylist lookup failed")
		return nil, fmt.Errorf("denylist lookup failed: %w", err)
	}
	if revoked {
		return nil, ErrTokenRevoked
	}

	return claims, nil
}
