package handler

import (
	"errors"

	"github.com/medkit-lab/labauth/internal/config"
	"github.com/medkit-lab/labauth/internal/handler/http"
	"github.com/medkit-lab/labauth/internal/logger"
	"github.com/medkit-lab/labauth/internal/service"
)

var errNoHandlersAreCreated = errors.New("no transport handlers were created: empty server address")

type Handlers struct {
	HTTP *http.Handler
}

func NewHandlers(services *service.Services, cfg config.Server, logger *logger.Logger) (*Handlers, error) {
	logger.Info().Msg("creating new handlers...")

	handlers := &Handlers{}

	if cfg.HTTPAddress != "" {
		handlers.HTTP = http.NewHandler(services, logger)
	}

	if handlers.HTTP == nil {
		return nil, errNoHandlersAreCreated
	}

	return handlers, nil
}
