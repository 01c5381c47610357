package store

import sq "github.com/Masterminds/squirrel"

var (
	psql    = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)
	nowExpr = sq.Expr("now()")
)

// Repositories bundles every persistence dependency the service layer
// needs.
type Repositories struct {
	Users       UserRepository
	Permissions PermissionRepository
	Audit       AuditRepository
	Denylist    TokenDenylist
}

// NewRepositories wires the Postgres repositories over a shared handle
// with the given token denylist.
func NewRepositories(db *DB, denylist TokenDenylist) *Repositories {
	return &Repositories{
		Users:       NewPostgresUserRepository(db),
		Permissions: NewPostgresPermissionRepository(db),
		Audit:       NewPostgresAuditRepository(db),
		Denylist:    denylist,
	}
}
