package internal

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/starford/zugzug/internal/apperr"
)

// Log formats.
const (
	LogFormatText = "text"
	LogFormatJSON = "json"
)

// StoreFileName is the registry file name used when no path is configured.
const StoreFileName = ".zz.json"

// Config represents the application configuration.
type Config struct {
	App   ApplicationConfig `yaml:"app"`
	Store StoreConfig       `yaml:"store"`
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if err := c.App.Validate(); err != nil {
		return err
	}
	return c.Store.Validate()
}

// ApplicationConfig holds application-level configuration.
type ApplicationConfig struct {
	LogLevel  slog.Level `yaml:"log_level"`
	LogFormat string     `yaml:"log_format"`
}

// Validate validates the application configuration.
func (c *ApplicationConfig) Validate() error {
	if c.LogFormat == "" {
		c.LogFormat = LogFormatText
	}
	return validation.ValidateStruct(c,
		validation.Field(&c.LogFormat, validation.Required, validation.In(LogFormatText, LogFormatJSON)),
	)
}

// StoreConfig holds the location of the registry file.
//
// An empty Path means StoreFileName in the user's home directory. A leading
// "~/" is expanded to the home directory.
type StoreConfig struct {
	Path string `yaml:"path"`
}

// Validate validates the store configuration.
func (c *StoreConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Path, validation.By(namesFile)),
	)
}

// Location resolves the registry file path.
func (c *StoreConfig) Location() (string, error) {
	switch {
	case c.Path == "":
		home, err := homeDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(home, StoreFileName), nil
	case c.Path == "~" || strings.HasPrefix(c.Path, "~/"):
		home, err := homeDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(home, strings.TrimPrefix(c.Path, "~")), nil
	default:
		return c.Path, nil
	}
}

func homeDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("%w: %w", apperr.ErrStoreUnavailable, err)
	}
	return home, nil
}

func namesFile(value interface{}) error {
	p, _ := value.(string)
	if strings.HasSuffix(p, "/") || strings.HasSuffix(p, string(os.PathSeparator)) {
		return errors.New("must name a file, not a directory")
	}
	return nil
}

// DefaultConfigPath returns the config file consulted when none is given,
// or "" when the user config directory cannot be determined.
func DefaultConfigPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "zz", "config.yaml")
}

// NewDefaultConfig returns a new Config with sensible default values.
func NewDefaultConfig() *Config {
	return &Config{
		App: ApplicationConfig{
			LogLevel:  slog.LevelWarn,
			LogFormat: LogFormatText,
		},
	}
}
