package database

import "errors"

var (
	// ErrDatabaseURLMissing is returned when the API environment file has no DATABASE_URL.
	ErrDatabaseURLMissing = errors.New("DATABASE_URL is not set")
	// ErrNotContainerized is returned when a container operation is asked of a database
	// that sf does not run.
	ErrNotContainerized = errors.New("database is not run by docker")
	// ErrInitFailed wraps a failed initialization script.
	ErrInitFailed = errors.New("database initialization failed")
)
