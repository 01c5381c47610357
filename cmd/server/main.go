package main

import (
	"context"
	"fmt"

	"github.com/medkit-lab/labauth/internal/config"
	"github.com/medkit-lab/labauth/internal/handler"
	"github.com/medkit-lab/labauth/internal/logger"
	"github.com/medkit-lab/labauth/internal/seed"
	"github.com/medkit-lab/labauth/internal/server"
	"github.com/medkit-lab/labauth/internal/service"
	"github.com/medkit-lab/labauth/internal/store"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	printBuildInfo()

	log := logger.NewLogger("labauth-server")
	cfg, err := config.GetStructuredConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}

	ctx := context.Background()

	db, err := store.NewConnectPostgres(cfg.Storage.DB, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error connecting to database")
	}
	defer db.Close()

	if err := db.Migrate(); err != nil {
		log.Fatal().Err(err).Msg("error applying migrations")
	}

	denylist, closeDenylist, err := newDenylist(ctx, cfg.Storage.Redis, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error connecting to denylist store")
	}
	defer closeDenylist()

	repositories := store.NewRepositories(db, denylist)
	services := service.NewServices(repositories, *cfg, log)

	if cfg.App.SeedOnStart {
		if err := seed.Run(ctx, repositories.Permissions, services.PermissionService, log); err != nil {
			log.Fatal().Err(err).Msg("error seeding permission catalog")
		}
	}

	handlers, err := handler.NewHandlers(services, cfg.Server, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating handlers")
	}

	srv, err := server.NewServer(handlers, cfg.Server, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating server")
	}

	srv.RunServer()
}

// newDenylist picks the token denylist backend. Redis is used when an
// address is configured; the in-process store is a single-instance fallback.
func newDenylist(ctx context.Context, cfg config.Redis, log *logger.Logger) (store.TokenDenylist, func(), error) {
	if cfg.Addr == "" {
		log.Warn().Msg("no redis address configured, using in-process token denylist")
		return store.NewMemoryDenylist(), func() {}, nil
	}

	denylist, err := store.NewRedisDenylist(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}

	return denylist, func() {
		if err := denylist.Close(); err != nil {
			log.Err(err).Msg("error closing redis denylist")
		}
	}, nil
}

func printBuildInfo() {
	if buildVersion == "" {
		buildVersion = "N/A"
	}

	if buildDate == "" {
		buildDate = "N/A"
	}

	if buildCommit == "" {
		buildCommit = "N/A"
	}

	fmt.Printf("Build version: %s\n", buildVersion)
	fmt.Printf("Build date: %s\n", buildDate)
	fmt.Printf("Build commit: %s\n", buildCommit)
}
