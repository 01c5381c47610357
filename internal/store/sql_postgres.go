package store

import (
	"database/sql"
	"errors"

	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/medkit-lab/labauth/internal/config"
	"github.com/medkit-lab/labauth/internal/logger"
	"github.com/medkit-lab/labauth/migrations"
)

// DB wraps the pgx driven sql.DB handle together with the error
// classifier used by repositories to translate driver errors.
type DB struct {
	*sql.DB
	classifier PostgresErrorClassifier
	logger     *logger.Logger
}

// NewConnectPostgres opens a connection pool against the configured DSN
// and verifies it with a ping.
func NewConnectPostgres(cfg config.DB, log *logger.Logger) (*DB, error) {
	conn, err := sql.Open("pgx", cfg.DSN)
	if err != nil {
		return nil, errors.Join(ErrDatabaseConnection, err)
	}

	if err = conn.Ping(); err != nil {
		return nil, errors.Join(ErrDatabaseConnection, err)
	}

	return &DB{DB: conn, classifier: PostgresErrorClassifier{}, logger: log}, nil
}

// Migrate applies the embedded goose migrations.
func (db *DB) Migrate() error {
	return migrations.Migrate(db.DB)
}
