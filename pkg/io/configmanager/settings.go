package configmanager

import (
	"fmt"
	"time"

	"github.com/saasfoundry/sf/pkg/fsutil/mutate"
	"github.com/saasfoundry/sf/pkg/svc/bringup"
	"github.com/saasfoundry/sf/pkg/svc/database"
	"github.com/saasfoundry/sf/pkg/svc/readiness"
)

// Settings tune the sf command line. None of them changes what a project contains.
type Settings struct {
	// Quiet limits diagnostics to errors.
	Quiet bool `mapstructure:"quiet"`
	// Blueprints replaces the embedded blueprint tree with a directory.
	Blueprints string            `mapstructure:"blueprints"`
	Secrets    SecretSettings    `mapstructure:"secrets"`
	Readiness  ReadinessSettings `mapstructure:"readiness"`
	Database   DatabaseSettings  `mapstructure:"database"`
	Backend    ServerSettings    `mapstructure:"backend"`
	Frontend   ServerSettings    `mapstructure:"frontend"`
}

// SecretSettings size the generated JWT secrets.
type SecretSettings struct {
	// Length is the number of random bytes per secret.
	Length int `mapstructure:"length"`
}

// ReadinessSettings bound the HTTP probes of started services.
type ReadinessSettings struct {
	Timeout  time.Duration `mapstructure:"timeout"`
	Interval time.Duration `mapstructure:"interval"`
}

// DatabaseSettings bound the database bring-up.
type DatabaseSettings struct {
	Timeout time.Duration `mapstructure:"timeout"`
}

// ServerSettings locate a development server.
type ServerSettings struct {
	Port int `mapstructure:"port"`
}

// Defaults returns the settings used when nothing overrides them.
func Defaults() Settings {
	return Settings{
		Quiet:     true,
		Secrets:   SecretSettings{Length: mutate.DefaultSecretLength},
		Readiness: ReadinessSettings{Timeout: readiness.DefaultTimeout, Interval: readiness.DefaultInterval},
		Database:  DatabaseSettings{Timeout: database.DefaultTimeout},
		Backend:   ServerSettings{Port: bringup.DefaultBackendPort},
		Frontend:  ServerSettings{Port: bringup.DefaultFrontendPort},
	}
}

// Validate rejects settings no command can run with.
func (s Settings) Validate() error {
	if s.Secrets.Length <= 0 {
		return fmt.Errorf("%w: secrets.length must be positive, got %d", ErrInvalidSettings, s.Secrets.Length)
	}

	if s.Readiness.Timeout <= 0 || s.Readiness.Interval <= 0 {
		return fmt.Errorf("%w: readiness timeout and interval must be positive", ErrInvalidSettings)
	}

	if s.Database.Timeout <= 0 {
		return fmt.Errorf("%w: database.timeout must be positive", ErrInvalidSettings)
	}

	for key, port := range map[string]int{"backend.port": s.Backend.Port, "frontend.port": s.Frontend.Port} {
		if port < 1 || port > 65535 {
			return fmt.Errorf("%w: %s must be between 1 and 65535, got %d", ErrInvalidSettings, key, port)
		}
	}

	return nil
}
