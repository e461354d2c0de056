package configmanager

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	mapstructure "github.com/go-viper/mapstructure/v2"
	"github.com/saasfoundry/sf/pkg/utils/envvar"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	// EnvPrefix prefixes every environment variable read as a setting.
	EnvPrefix = "SF"
	// ConfigName is the base name of the settings file.
	ConfigName = "sf"
	// ConfigType is the format of the settings file.
	ConfigType = "yaml"

	// FlagVerbose disables quiet diagnostics.
	FlagVerbose = "verbose"
	// FlagConfig names an explicit settings file.
	FlagConfig = "config"
	// FlagBlueprints overrides the blueprint directory.
	FlagBlueprints = "blueprints"
)

// Manager loads Settings with viper.
type Manager struct {
	Viper *viper.Viper
	flags *pflag.FlagSet
	// ConfigFileUsed is the settings file read by the last Load, if any.
	ConfigFileUsed string
}

// NewManager creates a Manager searching sf.yaml in the working directory, then in
// $HOME/.config/sf.
func NewManager() *Manager {
	return &Manager{Viper: InitializeViper()}
}

// InitializeViper returns a viper instance with the search paths, environment binding
// and defaults of the sf settings.
func InitializeViper() *viper.Viper {
	viperInstance := viper.New()

	viperInstance.SetConfigName(ConfigName)
	viperInstance.SetConfigType(ConfigType)
	viperInstance.AddConfigPath(".")

	home, err := os.UserHomeDir()
	if err == nil {
		viperInstance.AddConfigPath(filepath.Join(home, ".config", ConfigName))
	}

	viperInstance.SetEnvPrefix(EnvPrefix)
	viperInstance.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viperInstance.AutomaticEnv()

	setDefaults(viperInstance, Defaults())

	return viperInstance
}

func setDefaults(viperInstance *viper.Viper, defaults Settings) {
	viperInstance.SetDefault("quiet", defaults.Quiet)
	viperInstance.SetDefault("blueprints", defaults.Blueprints)
	viperInstance.SetDefault("secrets.length", defaults.Secrets.Length)
	viperInstance.SetDefault("readiness.timeout", defaults.Readiness.Timeout)
	viperInstance.SetDefault("readiness.interval", defaults.Readiness.Interval)
	viperInstance.SetDefault("database.timeout", defaults.Database.Timeout)
	viperInstance.SetDefault("backend.port", defaults.Backend.Port)
	viperInstance.SetDefault("frontend.port", defaults.Frontend.Port)
}

// AddFlags registers the persistent flags of the settings on flags and binds them.
func (m *Manager) AddFlags(flags *pflag.FlagSet) {
	flags.BoolP(FlagVerbose, "v", false, "Print diagnostic logs")
	flags.String(FlagConfig, "", "Settings file (default sf.yaml in . or $HOME/.config/sf)")
	flags.String(FlagBlueprints, "", "Directory replacing the embedded blueprints")

	_ = m.Viper.BindPFlag("blueprints", flags.Lookup(FlagBlueprints))

	m.flags = flags
}

// Load reads the settings file, decodes every source and validates the result.
// A missing settings file is not an error.
func (m *Manager) Load() (*Settings, error) {
	if m.flags != nil {
		configFile, _ := m.flags.GetString(FlagConfig)
		if configFile != "" {
			m.Viper.SetConfigFile(configFile)
		}
	}

	err := m.Viper.ReadInConfig()
	if err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read settings file: %w", err)
		}
	} else {
		m.ConfigFileUsed = m.Viper.ConfigFileUsed()
	}

	settings := Defaults()

	err = m.Viper.Unmarshal(&settings, viper.DecodeHook(mapstructure.ComposeDecodeHookFunc(
		mapstructure.StringToTimeDurationHookFunc(),
	)))
	if err != nil {
		return nil, fmt.Errorf("failed to decode settings: %w", err)
	}

	settings.Blueprints = envvar.Expand(settings.Blueprints)

	if m.flags != nil && m.flags.Changed(FlagVerbose) {
		verbose, _ := m.flags.GetBool(FlagVerbose)
		settings.Quiet = !verbose
	}

	err = settings.Validate()
	if err != nil {
		return nil, err
	}

	return &settings, nil
}
