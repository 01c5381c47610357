package store

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/medkit-lab/labauth/models"
)

// PostgresUserRepository implements UserRepository on top of Postgres.
type PostgresUserRepository struct {
	db *DB
}

func NewPostgresUserRepository(db *DB) *PostgresUserRepository {
	return &PostgresUserRepository{db: db}
}

// CreateUser inserts the account row and its profile in one transaction.
func (r *PostgresUserRepository) CreateUser(ctx context.Context, user models.User, profile models.UserProfile) (models.User, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return models.User{}, errors.Join(ErrBeginningTransaction, err)
	}
	defer tx.Rollback()

	err = tx.QueryRowContext(ctx, sqlInsertUser,
		user.Email, user.Username, user.PasswordHash, user.IsActive,
	).Scan(&user.UserID, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		if r.db.classifier.IsUniqueViolation(err) {
			if strings.Contains(r.db.classifier.ConstraintName(err), "username") {
				return models.User{}, ErrUsernameAlreadyExists
			}
			return models.User{}, ErrEmailAlreadyExists
		}
		return models.User{}, errors.Join(ErrExecutingQuery, err)
	}

	_, err = tx.ExecContext(ctx, sqlInsertProfile,
		user.UserID, profile.Role, profile.BranchID, profile.Phone, profile.Avatar,
	)
	if err != nil {
		if r.db.classifier.IsForeignKeyViolation(err) {
			return models.User{}, ErrBranchNotFound
		}
		return models.User{}, errors.Join(ErrExecutingQuery, err)
	}

	if err = tx.Commit(); err != nil {
		return models.User{}, errors.Join(ErrCommitTransaction, err)
	}

	return user, nil
}

func (r *PostgresUserRepository) FindUserByEmail(ctx context.Context, email string) (models.User, error) {
	return r.scanUser(r.db.QueryRowContext(ctx, sqlFindUserByEmail, email))
}

func (r *PostgresUserRepository) FindUserByID(ctx context.Context, userID int64) (models.User, error) {
	return r.scanUser(r.db.QueryRowContext(ctx, sqlFindUserByID, userID))
}

func (r *PostgresUserRepository) FindProfileByUserID(ctx context.Context, userID int64) (models.UserProfile, error) {
	var profile models.UserProfile
	err := r.db.QueryRowContext(ctx, sqlFindProfileByUserID, userID).Scan(
		&profile.UserID, &profile.Role, &profile.BranchID,
		&profile.BranchName, &profile.BranchCode, &profile.Phone, &profile.Avatar,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return models.UserProfile{}, ErrProfileNotFound
	}
	if err != nil {
		return models.UserProfile{}, errors.Join(ErrScanningRows, err)
	}

	return profile, nil
}

// RecordFailedLogin bumps the failure counter atomically and sets
// locked_until once the counter reaches threshold. Returns the updated
// counter and lock deadline.
func (r *PostgresUserRepository) RecordFailedLogin(ctx context.Context, userID int64, ip string, threshold int, lockFor time.Duration) (int, *time.Time, error) {
	var (
		attempts    int
		lockedUntil *time.Time
	)
	err := r.db.QueryRowContext(ctx, sqlRecordFailedLogin,
		userID, ip, threshold, lockFor.Seconds(),
	).Scan(&attempts, &lockedUntil)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil, ErrNoUserWasFound
	}
	if err != nil {
		return 0, nil, errors.Join(ErrExecutingQuery, err)
	}

	return attempts, lockedUntil, nil
}

func (r *PostgresUserRepository) RecordSuccessfulLogin(ctx context.Context, userID int64, ip string) error {
	return r.execForUser(ctx, sqlRecordSuccessfulLogin, userID, ip)
}

func (r *PostgresUserRepository) LockUser(ctx context.Context, userID int64, until time.Time) error {
	query, args, err := psql.Update("users").
		Set("locked_until", until).
		Set("updated_at", nowExpr).
		Where("user_id = ?", userID).
		ToSql()
	if err != nil {
		return errors.Join(ErrBuildingQuery, err)
	}

	return r.execForUser(ctx, query, args...)
}

func (r *PostgresUserRepository) UnlockUser(ctx context.Context, userID int64) error {
	query, args, err := psql.Update("users").
		Set("locked_until", nil).
		Set("failed_login_attempts", 0).
		Set("updated_at", nowExpr).
		Where("user_id = ?", userID).
		ToSql()
	if err != nil {
		return errors.Join(ErrBuildingQuery, err)
	}

	return r.execForUser(ctx, query, args...)
}

func (r *PostgresUserRepository) UpdatePassword(ctx context.Context, userID int64, passwordHash string) error {
	query, args, err := psql.Update("users").
		Set("password_hash", passwordHash).
		Set("password_changed_at", nowExpr).
		Set("updated_at", nowExpr).
		Where("user_id = ?", userID).
		ToSql()
	if err != nil {
		return errors.Join(ErrBuildingQuery, err)
	}

	return r.execForUser(ctx, query, args...)
}

// execForUser runs an update keyed by user_id and maps a zero row count
// onto ErrNoUserWasFound.
func (r *PostgresUserRepository) execForUser(ctx context.Context, query string, args ...any) error {
	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return errors.Join(ErrExecutingQuery, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return errors.Join(ErrExecutingQuery, err)
	}
	if affected == 0 {
		return ErrNoUserWasFound
	}

	return nil
}

func (r *PostgresUserRepository) scanUser(row *sql.Row) (models.User, error) {
	var user models.User
	err := row.Scan(
		&user.UserID, &user.Email, &user.Username, &user.PasswordHash,
		&user.IsActive, &user.FailedLoginAttempts, &user.LockedUntil,
		&user.LastLoginIP, &user.LastFailedLoginIP, &user.LastLoginAt,
		&user.PasswordChangedAt, &user.CreatedAt, &user.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return models.User{}, ErrNoUserWasFound
	}
	if err != nil {
		return models.User{}, errors.Join(ErrScanningRows, err)
	}

	return user, nil
}
