package store

import (
	"context"
	"errors"

	"github.com/medkit-lab/labauth/models"
)

// PostgresPermissionRepository implements PermissionRepository on top of
// Postgres.
type PostgresPermissionRepository struct {
	db *DB
}

func NewPostgresPermissionRepository(db *DB) *PostgresPermissionRepository {
	return &PostgresPermissionRepository{db: db}
}

func (r *PostgresPermissionRepository) ListCatalog(ctx context.Context) ([]models.Permission, error) {
	rows, err := r.db.QueryContext(ctx, sqlListPermissions)
	if err != nil {
		return nil, errors.Join(ErrExecutingQuery, err)
	}
	defer rows.Close()

	var catalog []models.Permission
	for rows.Next() {
		var permission models.Permission
		if err = rows.Scan(&permission.Code, &permission.Name, &permission.Description, &permission.Module); err != nil {
			return nil, errors.Join(ErrScanningRows, err)
		}
		catalog = append(catalog, permission)
	}
	if err = rows.Err(); err != nil {
		return nil, errors.Join(ErrScanningRows, err)
	}

	return catalog, nil
}

func (r *PostgresPermissionRepository) ListRoleCodes(ctx context.Context, role models.Role) ([]models.PermissionCode, error) {
	rows, err := r.db.QueryContext(ctx, sqlListRolePermissionCodes, role)
	if err != nil {
		return nil, errors.Join(ErrExecutingQuery, err)
	}
	defer rows.Close()

	var codes []models.PermissionCode
	for rows.Next() {
		var code models.PermissionCode
		if err = rows.Scan(&code); err != nil {
			return nil, errors.Join(ErrScanningRows, err)
		}
		codes = append(codes, code)
	}
	if err = rows.Err(); err != nil {
		return nil, errors.Join(ErrScanningRows, err)
	}

	return codes, nil
}

func (r *PostgresPermissionRepository) UpsertPermission(ctx context.Context, permission models.Permission) error {
	_, err := r.db.ExecContext(ctx, sqlUpsertPermission,
		permission.Code, permission.Name, permission.Description, permission.Module,
	)
	if err != nil {
		return errors.Join(ErrExecutingQuery, err)
	}

	return nil
}

// ReplaceRolePermissions swaps the full assignment set for a role in one
// transaction so readers never observe a partially updated role.
func (r *PostgresPermissionRepository) ReplaceRolePermissions(ctx context.Context, role models.Role, codes []models.PermissionCode) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return errors.Join(ErrBeginningTransaction, err)
	}
	defer tx.Rollback()

	if _, err = tx.ExecContext(ctx, sqlDeleteRolePermissions, role); err != nil {
		return errors.Join(ErrExecutingQuery, err)
	}

	if len(codes) > 0 {
		builder := psql.Insert("role_permissions").Columns("role", "code")
		for _, code := range codes {
			builder = builder.Values(role, code)
		}

		query, args, err := builder.ToSql()
		if err != nil {
			return errors.Join(ErrBuildingQuery, err)
		}

		if _, err = tx.ExecContext(ctx, query, args...); err != nil {
			if r.db.classifier.IsForeignKeyViolation(err) {
				return ErrPermissionNotFound
			}
			return errors.Join(ErrExecutingQuery, err)
		}
	}

	if err = tx.Commit(); err != nil {
		return errors.Join(ErrCommitTransaction, err)
	}

	return nil
}
