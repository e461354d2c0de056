package v1alpha1

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/jinzhu/copier"
)

// Default values applied by Finalize.
const (
	DefaultDatabaseHost     = "localhost"
	DefaultPostgreSQLPort   = "5435"
	DefaultSQLServerPort    = "1433"
	DefaultDatabaseUser     = "db_dev_user"
	DefaultDatabasePassword = "db_dev_password"
	DefaultDatabaseName     = "db_dev"
)

// DefaultDescription returns the description offered when the user gives none.
func DefaultDescription(name string) string {
	return name + " is just an amazing SaaSFoundry project"
}

// DefaultSenderEmail returns the sender address offered for a project.
func DefaultSenderEmail(name string) string {
	return "noreply@" + strings.Join(strings.Fields(strings.ToLower(name)), "") + ".com"
}

// DefaultSenderName returns the project name with its first letter capitalized.
func DefaultSenderName(name string) string {
	r, size := utf8.DecodeRuneInString(name)
	if r == utf8.RuneError {
		return name
	}

	return string(unicode.ToUpper(r)) + name[size:]
}

// NewProject returns an empty project ready to be filled by the decision flow.
func NewProject() *Project {
	return &Project{}
}

// Finalized reports whether Finalize already ran.
func (p *Project) Finalized() bool {
	return p.finalized
}

// Finalize validates the collected answers and applies the defaults exactly once.
// Calling it again is a no-op.
func (p *Project) Finalize() error {
	if p.finalized {
		return nil
	}

	err := ValidateProjectName(p.Name)
	if err != nil {
		return err
	}

	if p.Description == "" {
		p.Description = DefaultDescription(p.Name)
	}

	if p.Branch == "" {
		p.Branch = BranchMain
	}

	if p.Topology == "" {
		p.Topology = TopologyMultirepo
	}

	if p.Repository.Setup == "" {
		p.Repository.Setup = RepoSetupLocal
	}

	err = p.Repository.validate(p.Topology)
	if err != nil {
		return err
	}

	if p.Database.Mode == "" {
		p.Database.Mode = DatabaseModeManual
	}

	p.Database.applyDefaults()
	p.Email.normalize()

	err = p.Email.validate()
	if err != nil {
		return err
	}

	p.finalized = true

	return nil
}

// Freeze returns a deep copy of a finalized project.
// The copy is what the pipeline works on; later edits to p do not reach it.
func (p *Project) Freeze() (*Project, error) {
	if !p.finalized {
		return nil, ErrNotFinalized
	}

	frozen := &Project{}

	err := copier.CopyWithOption(frozen, p, copier.Option{DeepCopy: true})
	if err != nil {
		return nil, fmt.Errorf("failed to copy project: %w", err)
	}

	frozen.finalized = true

	return frozen, nil
}

func (d *Database) applyDefaults() {
	if !d.Mode.RequiresCredentials() {
		d.Credentials = nil

		return
	}

	if d.Credentials == nil {
		d.Credentials = &Credentials{}
	}

	creds := d.Credentials
	if creds.Engine == "" {
		creds.Engine = DatabaseEnginePostgreSQL
	}

	if creds.Host == "" {
		creds.Host = DefaultDatabaseHost
	}

	if creds.Port == "" {
		creds.Port = creds.Engine.DefaultPort()
	}

	if creds.User == "" {
		creds.User = DefaultDatabaseUser
	}

	if creds.Password == "" {
		creds.Password = DefaultDatabasePassword
	}

	if creds.Name == "" {
		creds.Name = DefaultDatabaseName
	}
}

func (e *Email) normalize() {
	if e.Provider == "" {
		e.Provider = EmailProviderNone
	}

	if e.Provider == EmailProviderNone {
		*e = Email{Provider: EmailProviderNone, Status: EmailStatusNone}

		return
	}

	if e.Status == "" || e.Status == EmailStatusNone {
		e.Status = EmailStatusSelectedUnconfigured
	}

	if e.Status == EmailStatusSelectedUnconfigured {
		e.APIKey = ""
		e.SenderEmail = ""
		e.SenderName = ""
	}
}
