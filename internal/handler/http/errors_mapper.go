package http

import (
	"errors"
	"net/http"

	"github.com/medkit-lab/labauth/internal/service"
	"github.com/medkit-lab/labauth/internal/store"
	"github.com/medkit-lab/labauth/internal/utils"
	"github.com/medkit-lab/labauth/models"
)

var errorStatusMap = map[error]int{
	service.ErrInvalidDataProvided: http.StatusBadRequest,

	// Login failures share a 400 so the response status alone does not
	// reveal whether the account exists, is locked, or is disabled.
	service.ErrInvalidCredentials: http.StatusBadRequest,
	service.ErrAccountLocked:      http.StatusBadRequest,
	service.ErrAccountDisabled:    http.StatusBadRequest,

	service.ErrTokenMalformed: http.StatusUnauthorized,
	service.ErrTokenExpired:   http.StatusUnauthorized,
	service.ErrTokenRevoked:   http.StatusUnauthorized,
	service.ErrWrongTokenType: http.StatusUnauthorized,

	service.ErrPermissionDenied: http.StatusForbidden,
	service.ErrProfileMissing:   http.StatusForbidden,
	service.ErrBranchMismatch:   http.StatusForbidden,

	service.ErrInvalidOldPassword: http.StatusBadRequest,
	service.ErrPasswordMismatch:   http.StatusBadRequest,
	service.ErrPasswordTooShort:   http.StatusBadRequest,
	service.ErrPasswordUnchanged:  http.StatusBadRequest,

	service.ErrUserNotFound: http.StatusNotFound,

	store.ErrNoUserWasFound:        http.StatusNotFound,
	store.ErrProfileNotFound:       http.StatusNotFound,
	store.ErrBranchNotFound:        http.StatusNotFound,
	store.ErrEmailAlreadyExists:    http.StatusConflict,
	store.ErrUsernameAlreadyExists: http.StatusConflict,

	store.ErrBuildingQuery:        http.StatusInternalServerError,
	store.ErrExecutingQuery:       http.StatusInternalServerError,
	store.ErrScanningRows:         http.StatusInternalServerError,
	store.ErrBeginningTransaction: http.StatusInternalServerError,
	store.ErrCommitTransaction:    http.StatusInternalServerError,
}

// genericTokenMessage is the single client-facing body for every token
// verification failure. Malformed, expired and revoked stay distinguishable
// as sentinels for logging and status mapping, but the response must not
// reveal which check refused the token.
const genericTokenMessage = "invalid or expired token"

func statusFromError(err error) int {
	for target, status := range errorStatusMap {
		if errors.Is(err, target) {
			return status
		}
	}
	return http.StatusInternalServerError
}

func isTokenError(err error) bool {
	return errors.Is(err, service.ErrTokenMalformed) ||
		errors.Is(err, service.ErrTokenExpired) ||
		errors.Is(err, service.ErrTokenRevoked) ||
		errors.Is(err, service.ErrWrongTokenType)
}

// writeError maps err onto its HTTP status and writes the generic error
// body. Internal detail never leaks: a 5xx always carries the bare status
// text instead of the wrapped error chain, and token failures collapse to
// one shared message.
func writeError(w http.ResponseWriter, err error) {
	writeErrorStatus(w, err, statusFromError(err))
}

// writeErrorStatus is writeError with the status forced by the caller, for
// routes whose contract maps an error class onto a different status than
// the global table (logout reports token failures as a 400).
func writeErrorStatus(w http.ResponseWriter, err error, status int) {
	message := err.Error()
	switch {
	case status >= http.StatusInternalServerError:
		message = http.StatusText(status)
	case isTokenError(err):
		message = genericTokenMessage
	}

	utils.WriteJSON(w, models.ErrorResponse{Error: message}, status)
}
