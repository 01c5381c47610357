package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/medkit-lab/labauth/internal/logger"
	"github.com/medkit-lab/labauth/internal/service"
	"github.com/medkit-lab/labauth/internal/utils"
	"github.com/medkit-lab/labauth/models"
)

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var request models.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		log.Err(err).Msg("invalid JSON was passed")
		writeError(w, service.ErrInvalidDataProvided)
		return
	}

	response, err := h.services.AuthService.Login(ctx, request, utils.ClientIP(r), r.UserAgent())
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidDataProvided):
			log.Err(err).Msg("invalid data provided")
		case errors.Is(err, service.ErrInvalidCredentials):
			log.Err(err).Msg("invalid credentials")
		case errors.Is(err, service.ErrAccountLocked):
			log.Err(err).Msg("login attempt on locked account")
		case errors.Is(err, service.ErrAccountDisabled):
			log.Err(err).Msg("login attempt on disabled account")
		default:
			log.Err(err).Msg("unexpected error occurred during login")
		}
		writeError(w, err)
		return
	}

	log.Debug().Int64("id", response.User.UserID).Msg("user successfully logged in")

	utils.WriteJSON(w, response, http.StatusOK)
}

func (h *Handler) refresh(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var request models.RefreshRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		log.Err(err).Msg("invalid JSON was passed")
		writeError(w, service.ErrInvalidDataProvided)
		return
	}
	if request.Refresh == "" {
		writeError(w, service.ErrInvalidDataProvided)
		return
	}

	response, err := h.services.AuthService.Refresh(ctx, request.Refresh, utils.ClientIP(r), r.UserAgent())
	if err != nil {
		log.Err(err).Msg("token refresh refused")
		writeError(w, err)
		return
	}

	utils.WriteJSON(w, response, http.StatusOK)
}

func (h *Handler) logout(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	claims, ok := utils.GetSessionClaimsFromContext(ctx)
	if !ok {
		log.Error().Msg("no verified session claims in context")
		writeError(w, service.ErrTokenMalformed)
		return
	}

	var request models.RefreshRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		log.Err(err).Msg("invalid JSON was passed")
		writeError(w, service.ErrInvalidDataProvided)
		return
	}
	if request.Refresh == "" {
		writeError(w, service.ErrInvalidDataProvided)
		return
	}

	if err := h.services.AuthService.Logout(ctx, request.Refresh, claims.UserID, utils.ClientIP(r), r.UserAgent()); err != nil {
		log.Err(err).Int64("user_id", claims.UserID).Msg("logout refused")

		// The caller is already authenticated here, so a bad refresh
		// token is a request problem, not an authentication one.
		if isTokenError(err) {
			writeErrorStatus(w, err, http.StatusBadRequest)
			return
		}

		writeError(w, err)
		return
	}

	utils.WriteJSON(w, models.MessageResponse{Message: "logged out"}, http.StatusOK)
}
