package http

import (
	"net/http"

	"github.com/medkit-lab/labauth/internal/logger"
	"github.com/medkit-lab/labauth/internal/service"
	"github.com/medkit-lab/labauth/internal/utils"
	"github.com/medkit-lab/labauth/models"
)

// requirePermission guards a route behind a permission code. It must run
// inside the auth middleware: the authenticated user is taken from the
// request context and checked via [service.AuthService.Authorize], which
// also records the audited denial.
func (h *Handler) requirePermission(code models.PermissionCode) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			log := logger.FromRequest(r)

			userID, ok := utils.GetUserIDFromContext(r.Context())
			if !ok {
				log.Error().Msg("no authenticated user in context")
				writeError(w, service.ErrTokenMalformed)
				return
			}

			err := h.services.AuthService.Authorize(r.Context(), userID, code,
				utils.ClientIP(r), r.UserAgent(), r.URL.Path, r.Method)
			if err != nil {
				log.Err(err).
					Int64("user_id", userID).
					Str("permission", code.String()).
					Msg("permission check refused request")
				writeError(w, err)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
