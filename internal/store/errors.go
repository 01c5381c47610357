package store

import "errors"

// Domain level sentinels returned by repositories. Services match on these
// with errors.Is and translate them into their own error space.
var (
	ErrNoUserWasFound        = errors.New("no user was found")
	ErrEmailAlreadyExists    = errors.New("user with given email already exists")
	ErrUsernameAlreadyExists = errors.New("user with given username already exists")
	ErrProfileNotFound       = errors.New("no profile was found for user")
	ErrBranchNotFound        = errors.New("no branch was found")
	ErrPermissionNotFound    = errors.New("no permission was found")
)

// Low level sentinels wrapping database failures.
var (
	ErrDatabaseConnection   = errors.New("error connecting to database")
	ErrBuildingQuery        = errors.New("error building sql query")
	ErrExecutingQuery       = errors.New("error executing sql query")
	ErrScanningRows         = errors.New("error scanning returned rows")
	ErrBeginningTransaction = errors.New("error beginning transaction")
	ErrCommitTransaction    = errors.New("error committing transaction")
	ErrEncodingDetails      = errors.New("error encoding audit details")
)
