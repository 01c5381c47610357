// Package seed installs the permission catalog and the role assignment
// sets into the database. Seeding is idempotent: permissions are
// upserted by code and each role's assignment set is replaced wholesale.
package seed

import "github.com/medkit-lab/labauth/models"

// Catalog is the full permission catalog, grouped by module.
var Catalog = []models.Permission{
	// Order management
	{Code: "orders.create", Name: "Create Orders", Description: "Can create new exam orders", Module: "orders"},
	{Code: "orders.view", Name: "View Orders", Description: "Can view exam orders", Module: "orders"},
	{Code: "orders.view_all", Name: "View All Orders", Description: "Can view orders across all branches", Module: "orders"},
	{Code: "orders.edit", Name: "Edit Orders", Description: "Can modify existing orders", Module: "orders"},
	{Code: "orders.cancel", Name: "Cancel Orders", Description: "Can cancel orders", Module: "orders"},
	{Code: "orders.transfer", Name: "Transfer Orders", Description: "Can transfer orders between branches", Module: "orders"},
	{Code: "orders.view_pending", Name: "View Pending Orders", Description: "Can view the pending order list", Module: "orders"},

	// Patient management
	{Code: "patients.create", Name: "Create Patients", Description: "Can register new patients", Module: "patients"},
	{Code: "patients.view", Name: "View Patients", Description: "Can view patient information", Module: "patients"},
	{Code: "patients.edit", Name: "Edit Patients", Description: "Can modify patient information", Module: "patients"},
	{Code: "patients.edit_clinical_records", Name: "Edit Clinical Records", Description: "Can edit patient clinical records", Module: "patients"},
	{Code: "patients.view_clinical_records", Name: "View Clinical Records", Description: "Can view full clinical records", Module: "patients"},

	// Results and reports
	{Code: "results.submit", Name: "Submit Results", Description: "Can enter exam results", Module: "results"},
	{Code: "results.view", Name: "View Results", Description: "Can view exam results", Module: "results"},
	{Code: "results.view_readonly", Name: "View Results (Read Only)", Description: "Can view results without editing", Module: "results"},
	{Code: "results.approve", Name: "Approve Results", Description: "Can approve results before release", Module: "results"},
	{Code: "results.download_pdf", Name: "Download PDF", Description: "Can download PDF reports", Module: "results"},

	// Billing and invoices
	{Code: "billing.create_invoice", Name: "Create Invoices", Description: "Can generate invoices", Module: "billing"},
	{Code: "billing.view_invoices", Name: "View Invoices", Description: "Can view invoices", Module: "billing"},
	{Code: "billing.edit_invoices", Name: "Edit Invoices", Description: "Can modify invoices", Module: "billing"},
	{Code: "billing.cancel_invoices", Name: "Cancel Invoices", Description: "Can cancel invoices", Module: "billing"},
	{Code: "billing.process_payment", Name: "Process Payments", Description: "Can record payments", Module: "billing"},
	{Code: "billing.search", Name: "Search Invoices", Description: "Can search the billing system", Module: "billing"},

	// Financial reports
	{Code: "finance.view_dashboard", Name: "View Finance Dashboard", Description: "Can view the financial dashboard", Module: "finance"},
	{Code: "finance.view_reports", Name: "View Finance Reports", Description: "Can view detailed financial reports", Module: "finance"},
	{Code: "finance.export_data", Name: "Export Finance Data", Description: "Can export financial data", Module: "finance"},
	{Code: "finance.view_all_branches", Name: "View All Branch Finances", Description: "Can view finances across all branches", Module: "finance"},

	// User and branch management
	{Code: "users.manage", Name: "Manage Users", Description: "Can create, edit and deactivate users", Module: "users"},
	{Code: "users.view", Name: "View Users", Description: "Can view the user list", Module: "users"},
	{Code: "users.assign_roles", Name: "Assign Roles", Description: "Can assign roles to users", Module: "users"},
	{Code: "users.assign_branch", Name: "Assign Branch", Description: "Can assign users to branches", Module: "users"},
	{Code: "branches.manage", Name: "Manage Branches", Description: "Can create and edit branches", Module: "branches"},
	{Code: "branches.view", Name: "View Branches", Description: "Can view branch information", Module: "branches"},

	// Search and history
	{Code: "search.patients", Name: "Search Patients", Description: "Can search the patient system", Module: "search"},
	{Code: "search.orders", Name: "Search Orders", Description: "Can search orders", Module: "search"},
	{Code: "search.view_history", Name: "View History", Description: "Can view search history", Module: "search"},

	// Audit and logs
	{Code: "audit.view_logs", Name: "View Audit Logs", Description: "Can view audit records", Module: "audit"},
	{Code: "audit.export_logs", Name: "Export Audit Logs", Description: "Can export audit records", Module: "audit"},

	// System settings
	{Code: "settings.manage", Name: "Manage Settings", Description: "Can modify system settings", Module: "settings"},
	{Code: "settings.view", Name: "View Settings", Description: "Can view system settings", Module: "settings"},
}

// RoleAssignments maps each non-super role to its permission set.
// Superadmin is absent on purpose: the resolver short-circuits it to the
// full catalog, so no rows are stored for it.
var RoleAssignments = map[models.Role][]models.PermissionCode{
	models.RoleDoctor: {
		"orders.create",
		"orders.view",
		"orders.edit",
		"patients.create",
		"patients.view",
		"patients.edit",
		"patients.edit_clinical_records",
		"patients.view_clinical_records",
		"results.view",
		"results.download_pdf",
		"billing.create_invoice",
		"billing.view_invoices",
		"search.patients",
		"search.orders",
	},
	models.RoleLabTechnician: {
		"orders.create",
		"orders.view",
		"orders.view_pending",
		"orders.transfer",
		"patients.view",
		"results.submit",
		"results.view",
		"results.download_pdf",
		"billing.create_invoice",
		"billing.view_invoices",
		"billing.search",
		"search.orders",
	},
	models.RoleFinanceUser: {
		"orders.view",
		"results.view_readonly",
		"billing.view_invoices",
		"billing.process_payment",
		"billing.search",
		"finance.view_dashboard",
		"finance.view_reports",
		"finance.export_data",
		"search.orders",
	},
	models.RoleManager: {
		"orders.create",
		"orders.view",
		"orders.view_pending",
		"orders.transfer",
		"orders.cancel",
		"patients.view",
		"results.submit",
		"results.view",
		"results.approve",
		"results.download_pdf",
		"billing.create_invoice",
		"billing.view_invoices",
		"billing.edit_invoices",
		"billing.process_payment",
		"billing.search",
		"users.manage",
		"users.view",
		"users.assign_branch",
		"branches.view",
		"finance.view_dashboard",
		"finance.view_reports",
		"audit.view_logs",
		"search.patients",
		"search.orders",
		"search.view_history",
	},
}
