package cmd

import "errors"

// ErrNoDatabaseService is returned by the db commands for projects without a
// containerized database.
var ErrNoDatabaseService = errors.New("project has no containerized database")
