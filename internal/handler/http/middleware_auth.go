package http

import (
	"context"
	"errors"
	"net/http"

	"github.com/medkit-lab/labauth/internal/logger"
	"github.com/medkit-lab/labauth/internal/service"
	"github.com/medkit-lab/labauth/internal/utils"
)

// auth is an HTTP middleware that enforces JWT-based authentication.
//
// It inspects the incoming "Authorization" header, extracts the bearer token,
// verifies it via [service.TokenService.VerifyAccess], and — on success —
// stores the authenticated user's ID and the verified claims in the request
// context before delegating to the next handler.
//
// The middleware rejects requests with HTTP 401 Unauthorized in the
// following cases:
//   - The "Authorization" header is absent or cannot be parsed as a
//     bearer token.
//   - The token has expired, has been revoked, is a refresh token, or is
//     otherwise invalid.
func (h *Handler) auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromRequest(r)

		tokenString, err := utils.ParseBearerToken(r.Header.Get("Authorization"))
		if err != nil {
			log.Err(err).Send()
			writeError(w, service.ErrTokenMalformed)
			return
		}

		ctx := r.Context()
		claims, err := h.services.TokenService.VerifyAccess(ctx, tokenString)
		if err != nil {
			switch {
			case errors.Is(err, service.ErrTokenExpired):
				log.Err(err).Msg("access token expired")
			case errors.Is(err, service.ErrTokenRevoked):
				log.Err(err).Msg("revoked access token presented")
			default:
				log.Err(err).Msg("access token verification failed")
			}
			writeError(w, err)
			return
		}

		// Store the authenticated user's ID and claims in the context so
		// downstream handlers can use them without re-parsing the token.
		ctx = context.WithValue(ctx, utils.UserIDCtxKey, claims.UserID)
		ctx = context.WithValue(ctx, utils.SessionClaimsCtxKey, claims)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
