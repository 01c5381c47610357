package http

import (
	"net/http"
	"strconv"
	"time"

	"github.com/medkit-lab/labauth/internal/logger"
	"github.com/medkit-lab/labauth/internal/service"
	"github.com/medkit-lab/labauth/internal/utils"
	"github.com/medkit-lab/labauth/models"
)

// defaultAuditPageSize caps unfiltered audit listings.
const defaultAuditPageSize = 100

func (h *Handler) listAuditLogs(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	filter, err := auditFilterFromQuery(r)
	if err != nil {
		log.Err(err).Msg("invalid audit filter")
		writeError(w, service.ErrInvalidDataProvided)
		return
	}

	entries, err := h.services.AuditService.List(ctx, filter)
	if err != nil {
		log.Err(err).Msg("audit listing failed")
		writeError(w, err)
		return
	}

	if entries == nil {
		entries = []models.AuditEntry{}
	}

	utils.WriteJSON(w, entries, http.StatusOK)
}

func auditFilterFromQuery(r *http.Request) (models.AuditFilter, error) {
	filter := models.AuditFilter{Limit: defaultAuditPageSize}
	query := r.URL.Query()

	if raw := query.Get("user_id"); raw != "" {
		userID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return models.AuditFilter{}, err
		}
		filter.UserID = &userID
	}

	if raw := query.Get("action"); raw != "" {
		filter.Action = models.AuditAction(raw)
	}

	if raw := query.Get("before"); raw != "" {
		before, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return models.AuditFilter{}, err
		}
		filter.Before = before
	}

	if raw := query.Get("limit"); raw != "" {
		limit, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			return models.AuditFilter{}, err
		}
		if limit > 0 && limit < defaultAuditPageSize {
			filter.Limit = limit
		}
	}

	return filter, nil
}
