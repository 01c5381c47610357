package http

import (
	"encoding/json"
	"net/http"

	"github.com/medkit-lab/labauth/internal/logger"
	"github.com/medkit-lab/labauth/internal/service"
	"github.com/medkit-lab/labauth/internal/utils"
	"github.com/medkit-lab/labauth/models"
)

func (h *Handler) me(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		log.Error().Msg("no authenticated user in context")
		writeError(w, service.ErrTokenMalformed)
		return
	}

	user, err := h.services.AuthService.CurrentUser(ctx, userID)
	if err != nil {
		log.Err(err).Int64("user_id", userID).Msg("current user lookup failed")
		writeError(w, err)
		return
	}

	utils.WriteJSON(w, user, http.StatusOK)
}

func (h *Handler) changePassword(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		log.Error().Msg("no authenticated user in context")
		writeError(w, service.ErrTokenMalformed)
		return
	}

	var request models.ChangePasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		log.Err(err).Msg("invalid JSON was passed")
		writeError(w, service.ErrInvalidDataProvided)
		return
	}

	if err := h.services.AuthService.ChangePassword(ctx, userID, request, utils.ClientIP(r), r.UserAgent()); err != nil {
		log.Err(err).Int64("user_id", userID).Msg("password change refused")
		writeError(w, err)
		return
	}

	utils.WriteJSON(w, models.MessageResponse{Message: "password changed"}, http.StatusOK)
}

func (h *Handler) permissions(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		log.Error().Msg("no authenticated user in context")
		writeError(w, service.ErrTokenMalformed)
		return
	}

	response, err := h.services.AuthService.Permissions(ctx, userID)
	if err != nil {
		log.Err(err).Int64("user_id", userID).Msg("permission listing failed")
		writeError(w, err)
		return
	}

	utils.WriteJSON(w, response, http.StatusOK)
}
