package models

// Role is the closed set of operational roles in the laboratory back office.
// Roles are fixed at deploy time; they are never created or edited through the
// API. Every role except RoleSuperadmin is scoped to a single branch.
type Role string

const (
	// RoleSuperadmin has every permission in the catalog and no branch
	// restriction.
	RoleSuperadmin Role = "superadmin"

	// RoleDoctor covers clinical operations: patients, orders, results.
	RoleDoctor Role = "doctor"

	// RoleLabTechnician covers sample processing and result submission.
	RoleLabTechnician Role = "lab_technician"

	// RoleFinanceUser covers billing and financial reporting, read-mostly.
	RoleFinanceUser Role = "finance_user"

	// RoleManager covers branch administration on top of the technician set.
	RoleManager Role = "manager"
)

// Roles lists every valid role. The order matches the seeding order.
var Roles = []Role{
	RoleSuperadmin,
	RoleDoctor,
	RoleLabTechnician,
	RoleFinanceUser,
	RoleManager,
}

// Valid reports whether r is one of the deploy-time roles.
func (r Role) Valid() bool {
	switch r {
	case RoleSuperadmin, RoleDoctor, RoleLabTechnician, RoleFinanceUser, RoleManager:
		return true
	}
	return false
}

// IsSuperadmin reports whether r bypasses permission and branch checks.
func (r Role) IsSuperadmin() bool {
	return r == RoleSuperadmin
}

func (r Role) String() string {
	return string(r)
}
