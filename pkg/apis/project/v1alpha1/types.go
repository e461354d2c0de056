package v1alpha1

import (
	"fmt"
	"net/url"
)

// Project is the full set of decisions collected for one generated project.
type Project struct {
	Name        string     `json:"name"                  mapstructure:"name"`
	Description string     `json:"description,omitempty" mapstructure:"description"`
	Branch      Branch     `json:"branch"                mapstructure:"branch"`
	Topology    Topology   `json:"topology"              mapstructure:"topology"`
	Repository  Repository `json:"repository"            mapstructure:"repository"`
	Database    Database   `json:"database"              mapstructure:"database"`
	Email       Email      `json:"email"                 mapstructure:"email"`

	finalized bool
}

// Repository describes how the generated repositories are linked to remotes.
type Repository struct {
	Setup       RepoSetup `json:"setup"                 mapstructure:"setup"`
	MonorepoURL string    `json:"monorepoUrl,omitempty" mapstructure:"monorepoUrl"`
	BackendURL  string    `json:"backendUrl,omitempty"  mapstructure:"backendUrl"`
	FrontendURL string    `json:"frontendUrl,omitempty" mapstructure:"frontendUrl"`
}

// Database describes how the development database is provisioned.
type Database struct {
	Mode        DatabaseMode `json:"mode"                  mapstructure:"mode"`
	Credentials *Credentials `json:"credentials,omitempty" mapstructure:"credentials"`
}

// Credentials holds the connection settings of the development database.
type Credentials struct {
	Engine   DatabaseEngine `json:"engine"   mapstructure:"engine"`
	Host     string         `json:"host"     mapstructure:"host"`
	Port     string         `json:"port"     mapstructure:"port"`
	User     string         `json:"user"     mapstructure:"user"`
	Password string         `json:"-"        mapstructure:"password"`
	Name     string         `json:"database" mapstructure:"name"`
}

// Email describes the transactional email provider setup.
type Email struct {
	Provider    EmailProvider `json:"provider"              mapstructure:"provider"`
	Status      EmailStatus   `json:"status"                mapstructure:"status"`
	APIKey      string        `json:"-"                     mapstructure:"apiKey"`
	SenderEmail string        `json:"senderEmail,omitempty" mapstructure:"senderEmail"`
	SenderName  string        `json:"senderName,omitempty"  mapstructure:"senderName"`
}

// IsConfigured reports whether the email provider is selected and has credentials.
func (e Email) IsConfigured() bool {
	return e.Provider != EmailProviderNone && e.Status == EmailStatusConfigured
}

// URL renders the credentials as a connection string understood by the generated API.
func (c Credentials) URL() string {
	u := url.URL{
		Scheme: string(c.Engine),
		User:   url.UserPassword(c.User, c.Password),
		Host:   c.Host + ":" + c.Port,
		Path:   "/" + c.Name,
	}

	return u.String()
}

// String hides the password.
func (c Credentials) String() string {
	return fmt.Sprintf("%s://%s@%s:%s/%s", c.Engine, c.User, c.Host, c.Port, c.Name)
}
