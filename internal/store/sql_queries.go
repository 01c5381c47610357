package store

const (
	userColumns = `user_id, email, username, password_hash, is_active, failed_login_attempts,
		locked_until, last_login_ip, last_failed_login_ip, last_login_at, password_changed_at,
		created_at, updated_at`

	sqlFindUserByEmail = `SELECT ` + userColumns + ` FROM users WHERE lower(email) = lower($1)`

	sqlFindUserByID = `SELECT ` + userColumns + ` FROM users WHERE user_id = $1`

	sqlInsertUser = `INSERT INTO users (email, username, password_hash, is_active)
		VALUES (lower($1), $2, $3, $4)
		RETURNING user_id, created_at, updated_at`

	sqlInsertProfile = `INSERT INTO user_profiles (user_id, role, branch_id, phone, avatar)
		VALUES ($1, $2, $3, $4, $5)`

	sqlFindProfileByUserID = `SELECT p.user_id, p.role, p.branch_id,
		COALESCE(b.name, ''), COALESCE(b.code, ''), p.phone, p.avatar
		FROM user_profiles p
		LEFT JOIN branches b ON b.branch_id = p.branch_id
		WHERE p.user_id = $1`

	// The counter is incremented in SQL so concurrent failures never lose
	// an attempt, and the lock threshold is evaluated in the same statement.
	sqlRecordFailedLogin = `UPDATE users SET
		failed_login_attempts = failed_login_attempts + 1,
		last_failed_login_ip = $2,
		locked_until = CASE
			WHEN failed_login_attempts + 1 >= $3 THEN now() + make_interval(secs => $4)
			ELSE locked_until
		END,
		updated_at = now()
		WHERE user_id = $1
		RETURNING failed_login_attempts, locked_until`

	sqlRecordSuccessfulLogin = `UPDATE users SET
		failed_login_attempts = 0,
		locked_until = NULL,
		last_login_ip = $2,
		last_login_at = now(),
		updated_at = now()
		WHERE user_id = $1`

	sqlListPermissions = `SELECT code, name, description, module FROM permissions ORDER BY code`

	sqlListRolePermissionCodes = `SELECT code FROM role_permissions WHERE role = $1 ORDER BY code`

	sqlUpsertPermission = `INSERT INTO permissions (code, name, description, module)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (code) DO UPDATE SET
			name = excluded.name,
			description = excluded.description,
			module = excluded.module`

	sqlDeleteRolePermissions = `DELETE FROM role_permissions WHERE role = $1`

	sqlInsertAuditEntry = `INSERT INTO audit_logs (user_id, action, ip_address, user_agent, details)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING entry_id, created_at`

	sqlDeleteAuditOlderThan = `DELETE FROM audit_logs WHERE created_at < $1`
)
