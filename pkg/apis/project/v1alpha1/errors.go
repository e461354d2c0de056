package v1alpha1

import "errors"

// ErrInvalidTopology is returned when an invalid repository topology is specified.
var ErrInvalidTopology = errors.New("invalid topology")

// ErrInvalidRepoSetup is returned when an invalid repository setup is specified.
var ErrInvalidRepoSetup = errors.New("invalid repository setup")

// ErrInvalidBranch is returned when an invalid default branch is specified.
var ErrInvalidBranch = errors.New("invalid branch")

// ErrInvalidDatabaseMode is returned when an invalid database provisioning mode is specified.
var ErrInvalidDatabaseMode = errors.New("invalid database mode")

// ErrInvalidDatabaseEngine is returned when an invalid database engine is specified.
var ErrInvalidDatabaseEngine = errors.New("invalid database engine")

// ErrInvalidEmailProvider is returned when an invalid email provider is specified.
var ErrInvalidEmailProvider = errors.New("invalid email provider")

// ErrProjectNameRequired is returned when the project name is empty.
var ErrProjectNameRequired = errors.New("project name is required")

// ErrProjectNameInvalid is returned when the project name contains forbidden characters.
var ErrProjectNameInvalid = errors.New(
	"project name can only contain lowercase letters, numbers, and hyphens",
)

// ErrEmailAddressInvalid is returned when a sender address is not shaped like an email address.
var ErrEmailAddressInvalid = errors.New("please enter a valid email address")

// ErrMonorepoUnsupported is returned when a monorepo topology reaches generation.
var ErrMonorepoUnsupported = errors.New("monorepo topology is not supported yet")

// ErrRepositoryURLRequired is returned when an existing repository is declared without its URL.
var ErrRepositoryURLRequired = errors.New("repository URL is required")

// ErrCredentialsMissing is returned when the database mode requires credentials that were not collected.
var ErrCredentialsMissing = errors.New("database credentials are missing")

// ErrEmailNotConfigured is returned when a configured email provider lacks its credentials.
var ErrEmailNotConfigured = errors.New("email provider credentials are incomplete")

// ErrNotFinalized is returned when a project is frozen before its defaults were applied.
var ErrNotFinalized = errors.New("project configuration is not finalized")
