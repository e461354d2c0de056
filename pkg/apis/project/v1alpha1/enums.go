package v1alpha1

import (
	"fmt"
	"strings"
)

// setEnum assigns value to target when it case-insensitively matches one of valid.
func setEnum[T ~string](target *T, value string, valid []T, sentinel error) error {
	for _, candidate := range valid {
		if strings.EqualFold(value, string(candidate)) {
			*target = candidate

			return nil
		}
	}

	names := make([]string, 0, len(valid))
	for _, candidate := range valid {
		names = append(names, string(candidate))
	}

	return fmt.Errorf("%w: %s (valid options: %s)", sentinel, value, strings.Join(names, ", "))
}

func enumStrings[T ~string](valid []T) []string {
	out := make([]string, 0, len(valid))
	for _, v := range valid {
		out = append(out, string(v))
	}

	return out
}

// --- Topology ---

// Topology defines whether the generated services share one repository or live in their own.
type Topology string

const (
	// TopologyMultirepo generates one independent git repository per service.
	TopologyMultirepo Topology = "multirepo"
	// TopologyMonorepo generates all services inside one shared repository.
	TopologyMonorepo Topology = "monorepo"
)

// ValidTopologies returns the supported topologies.
func ValidTopologies() []Topology {
	return []Topology{TopologyMultirepo, TopologyMonorepo}
}

// Set for Topology (pflag.Value interface).
func (t *Topology) Set(value string) error {
	return setEnum(t, value, ValidTopologies(), ErrInvalidTopology)
}

// String returns the string representation of the Topology.
func (t *Topology) String() string { return string(*t) }

// Type returns the type of the Topology.
func (t *Topology) Type() string { return "Topology" }

// Default returns the default value for Topology (multirepo).
func (t *Topology) Default() any { return TopologyMultirepo }

// ValidValues returns all valid Topology values as strings.
func (t *Topology) ValidValues() []string { return enumStrings(ValidTopologies()) }

// --- Repository setup ---

// RepoSetup defines how the generated repositories are linked to a remote.
type RepoSetup string

const (
	// RepoSetupLocal keeps the repositories local only.
	RepoSetupLocal RepoSetup = "local"
	// RepoSetupExisting links the repositories to remotes supplied by the user.
	RepoSetupExisting RepoSetup = "existing"
)

// ValidRepoSetups returns the supported repository setups.
func ValidRepoSetups() []RepoSetup {
	return []RepoSetup{RepoSetupLocal, RepoSetupExisting}
}

// Set for RepoSetup (pflag.Value interface).
func (r *RepoSetup) Set(value string) error {
	return setEnum(r, value, ValidRepoSetups(), ErrInvalidRepoSetup)
}

// String returns the string representation of the RepoSetup.
func (r *RepoSetup) String() string { return string(*r) }

// Type returns the type of the RepoSetup.
func (r *RepoSetup) Type() string { return "RepoSetup" }

// Default returns the default value for RepoSetup (local).
func (r *RepoSetup) Default() any { return RepoSetupLocal }

// ValidValues returns all valid RepoSetup values as strings.
func (r *RepoSetup) ValidValues() []string { return enumStrings(ValidRepoSetups()) }

// --- Branch ---

// Branch is the default branch created in each generated repository.
type Branch string

const (
	// BranchMain names the default branch "main".
	BranchMain Branch = "main"
	// BranchMaster names the default branch "master".
	BranchMaster Branch = "master"
)

// ValidBranches returns the supported default branch names.
func ValidBranches() []Branch {
	return []Branch{BranchMain, BranchMaster}
}

// Set for Branch (pflag.Value interface).
func (b *Branch) Set(value string) error {
	return setEnum(b, value, ValidBranches(), ErrInvalidBranch)
}

// String returns the string representation of the Branch.
func (b *Branch) String() string { return string(*b) }

// Type returns the type of the Branch.
func (b *Branch) Type() string { return "Branch" }

// Default returns the default value for Branch (main).
func (b *Branch) Default() any { return BranchMain }

// ValidValues returns all valid Branch values as strings.
func (b *Branch) ValidValues() []string { return enumStrings(ValidBranches()) }

// --- Database mode ---

// DatabaseMode defines how the development database is provisioned.
type DatabaseMode string

const (
	// DatabaseModeDocker provisions a containerized database next to the services.
	DatabaseModeDocker DatabaseMode = "docker"
	// DatabaseModeCredentials connects the API to an externally supplied database.
	DatabaseModeCredentials DatabaseMode = "credentials"
	// DatabaseModeManual leaves the database setup to the user.
	DatabaseModeManual DatabaseMode = "manual"
)

// ValidDatabaseModes returns the supported database provisioning modes.
func ValidDatabaseModes() []DatabaseMode {
	return []DatabaseMode{DatabaseModeDocker, DatabaseModeCredentials, DatabaseModeManual}
}

// Set for DatabaseMode (pflag.Value interface).
func (d *DatabaseMode) Set(value string) error {
	return setEnum(d, value, ValidDatabaseModes(), ErrInvalidDatabaseMode)
}

// String returns the string representation of the DatabaseMode.
func (d *DatabaseMode) String() string { return string(*d) }

// Type returns the type of the DatabaseMode.
func (d *DatabaseMode) Type() string { return "DatabaseMode" }

// Default returns the default value for DatabaseMode (docker).
func (d *DatabaseMode) Default() any { return DatabaseModeDocker }

// ValidValues returns all valid DatabaseMode values as strings.
func (d *DatabaseMode) ValidValues() []string { return enumStrings(ValidDatabaseModes()) }

// RequiresCredentials reports whether the mode collects database credentials.
func (d DatabaseMode) RequiresCredentials() bool {
	return d == DatabaseModeDocker || d == DatabaseModeCredentials
}

// IsContainerized reports whether the mode provisions a local database container.
func (d DatabaseMode) IsContainerized() bool {
	return d == DatabaseModeDocker
}

// --- Database engine ---

// DatabaseEngine is the database technology the API connects to.
type DatabaseEngine string

const (
	// DatabaseEnginePostgreSQL selects PostgreSQL.
	DatabaseEnginePostgreSQL DatabaseEngine = "postgresql"
	// DatabaseEngineSQLServer selects Microsoft SQL Server.
	DatabaseEngineSQLServer DatabaseEngine = "sqlserver"
)

// ValidDatabaseEngines returns the supported database engines.
func ValidDatabaseEngines() []DatabaseEngine {
	return []DatabaseEngine{DatabaseEnginePostgreSQL, DatabaseEngineSQLServer}
}

// Set for DatabaseEngine (pflag.Value interface).
func (e *DatabaseEngine) Set(value string) error {
	return setEnum(e, value, ValidDatabaseEngines(), ErrInvalidDatabaseEngine)
}

// String returns the string representation of the DatabaseEngine.
func (e *DatabaseEngine) String() string { return string(*e) }

// Type returns the type of the DatabaseEngine.
func (e *DatabaseEngine) Type() string { return "DatabaseEngine" }

// Default returns the default value for DatabaseEngine (postgresql).
func (e *DatabaseEngine) Default() any { return DatabaseEnginePostgreSQL }

// ValidValues returns all valid DatabaseEngine values as strings.
func (e *DatabaseEngine) ValidValues() []string { return enumStrings(ValidDatabaseEngines()) }

// DefaultPort returns the engine's conventional development port.
func (e DatabaseEngine) DefaultPort() string {
	if e == DatabaseEngineSQLServer {
		return DefaultSQLServerPort
	}

	return DefaultPostgreSQLPort
}

// --- Email provider ---

// EmailProvider is the transactional email service wired into the API.
type EmailProvider string

const (
	// EmailProviderNone sets up the email logic without a sending service.
	EmailProviderNone EmailProvider = "none"
	// EmailProviderMailerSend wires the MailerSend service.
	EmailProviderMailerSend EmailProvider = "mailersend"
)

// ValidEmailProviders returns the supported email providers.
func ValidEmailProviders() []EmailProvider {
	return []EmailProvider{EmailProviderNone, EmailProviderMailerSend}
}

// Set for EmailProvider (pflag.Value interface).
func (p *EmailProvider) Set(value string) error {
	return setEnum(p, value, ValidEmailProviders(), ErrInvalidEmailProvider)
}

// String returns the string representation of the EmailProvider.
func (p *EmailProvider) String() string { return string(*p) }

// Type returns the type of the EmailProvider.
func (p *EmailProvider) Type() string { return "EmailProvider" }

// Default returns the default value for EmailProvider (mailersend).
func (p *EmailProvider) Default() any { return EmailProviderMailerSend }

// ValidValues returns all valid EmailProvider values as strings.
func (p *EmailProvider) ValidValues() []string { return enumStrings(ValidEmailProviders()) }

// --- Email status ---

// EmailStatus records how far the email provider setup went.
type EmailStatus string

const (
	// EmailStatusNone means no provider was selected.
	EmailStatusNone EmailStatus = "none"
	// EmailStatusSelectedUnconfigured means a provider was selected but its credentials were declined.
	EmailStatusSelectedUnconfigured EmailStatus = "selected-unconfigured"
	// EmailStatusConfigured means a provider was selected and its credentials were collected.
	EmailStatusConfigured EmailStatus = "configured"
)

// --- Service kind ---

// ServiceKind identifies one generated service.
type ServiceKind string

const (
	// ServiceAPI is the backend service.
	ServiceAPI ServiceKind = "api"
	// ServiceDB is the containerized database service.
	ServiceDB ServiceKind = "db"
	// ServiceWeb is the web client.
	ServiceWeb ServiceKind = "web"
)
