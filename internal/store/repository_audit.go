package store

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/medkit-lab/labauth/models"
)

// PostgresAuditRepository implements AuditRepository on top of Postgres.
// The table is append only: entries are inserted and listed, never
// updated.
type PostgresAuditRepository struct {
	db *DB
}

func NewPostgresAuditRepository(db *DB) *PostgresAuditRepository {
	return &PostgresAuditRepository{db: db}
}

func (r *PostgresAuditRepository) Insert(ctx context.Context, entry models.AuditEntry) (models.AuditEntry, error) {
	details := entry.Details
	if details == nil {
		details = map[string]any{}
	}

	encoded, err := json.Marshal(details)
	if err != nil {
		return models.AuditEntry{}, errors.Join(ErrEncodingDetails, err)
	}

	err = r.db.QueryRowContext(ctx, sqlInsertAuditEntry,
		entry.UserID, entry.Action, entry.IPAddress, entry.UserAgent, encoded,
	).Scan(&entry.EntryID, &entry.CreatedAt)
	if err != nil {
		return models.AuditEntry{}, errors.Join(ErrExecutingQuery, err)
	}

	return entry, nil
}

// List returns entries newest first, narrowed by the optional filter
// fields.
func (r *PostgresAuditRepository) List(ctx context.Context, filter models.AuditFilter) ([]models.AuditEntry, error) {
	builder := psql.Select("entry_id", "user_id", "action", "ip_address", "user_agent", "details", "created_at").
		From("audit_logs").
		OrderBy("entry_id DESC")

	if filter.UserID != nil {
		builder = builder.Where("user_id = ?", *filter.UserID)
	}
	if filter.Action != "" {
		builder = builder.Where("action = ?", filter.Action)
	}
	if !filter.Before.IsZero() {
		builder = builder.Where("created_at < ?", filter.Before)
	}
	if filter.Limit > 0 {
		builder = builder.Limit(filter.Limit)
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, errors.Join(ErrBuildingQuery, err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, errors.Join(ErrExecutingQuery, err)
	}
	defer rows.Close()

	var entries []models.AuditEntry
	for rows.Next() {
		var (
			entry   models.AuditEntry
			details []byte
		)
		err = rows.Scan(&entry.EntryID, &entry.UserID, &entry.Action,
			&entry.IPAddress, &entry.UserAgent, &details, &entry.CreatedAt)
		if err != nil {
			return nil, errors.Join(ErrScanningRows, err)
		}

		if len(details) > 0 {
			if err = json.Unmarshal(details, &entry.Details); err != nil {
				return nil, errors.Join(ErrScanningRows, err)
			}
		}

		entries = append(entries, entry)
	}
	if err = rows.Err(); err != nil {
		return nil, errors.Join(ErrScanningRows, err)
	}

	return entries, nil
}

// DeleteOlderThan removes entries created before cutoff and reports how
// many rows were purged. Retention policy lives with the caller.
func (r *PostgresAuditRepository) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	result, err := r.db.ExecContext(ctx, sqlDeleteAuditOlderThan, cutoff)
	if err != nil {
		return 0, errors.Join(ErrExecutingQuery, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return 0, errors.Join(ErrExecutingQuery, err)
	}

	return affected, nil
}
