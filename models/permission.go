package models

import (
	"strings"
	"time"
)

// PermissionCode identifies a single capability in "module.action" form,
// e.g. "orders.create". Codes are reference data: they originate in the
// seeding process and are validated against the catalog at startup, never
// invented by request handling code.
type PermissionCode string

// Valid reports whether the code is well-formed: a non-empty module part and
// a non-empty action part separated by a single dot. Catalog membership is a
// separate, stronger check performed by the resolver.
func (c PermissionCode) Valid() bool {
	module, action, ok := strings.Cut(string(c), ".")
	return ok && module != "" && action != "" && !strings.Contains(action, ".")
}

// Module returns the module grouping part of the code ("orders" for
// "orders.create"), or the empty string for a malformed code.
func (c PermissionCode) Module() string {
	module, _, ok := strings.Cut(string(c), ".")
	if !ok {
		return ""
	}
	return module
}

func (c PermissionCode) String() string {
	return string(c)
}

// Permission is a catalog entry describing one capability. The catalog is
// immutable at runtime; rows are created and updated only by the seeding
// process.
type Permission struct {
	Code        PermissionCode `json:"code"`
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Module      string         `json:"module"`

	CreatedAt time.Time `json:"-"`
}

// TableName returns the name of the database table backing the catalog.
func (p Permission) TableName() string {
	return "permissions"
}

// RolePermission grants one permission code to one role. The (role, code)
// pair is unique; the whole set for a role is replaced atomically during
// re-seeding rather than patched incrementally.
type RolePermission struct {
	Role Role           `json:"role"`
	Code PermissionCode `json:"code"`

	CreatedAt time.Time `json:"-"`
}

// TableName returns the name of the database table backing role grants.
func (rp RolePermission) TableName() string {
	return "role_permissions"
}
