package internal

import (
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/starford/zugzug/internal/apperr"
)

func TestDefaultConfig_Valid(t *testing.T) {
	cfg := NewDefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config should pass: %v", err)
	}
	if cfg.App.LogLevel != slog.LevelWarn {
		t.Errorf("log level = %v, want warn", cfg.App.LogLevel)
	}
}

func TestApplicationConfig_EmptyFormatDefaultsText(t *testing.T) {
	cfg := ApplicationConfig{}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("empty format should default to text: %v", err)
	}
	if cfg.LogFormat != LogFormatText {
		t.Errorf("format = %q, want %q", cfg.LogFormat, LogFormatText)
	}
}

func TestApplicationConfig_InvalidFormat(t *testing.T) {
	cfg := ApplicationConfig{LogFormat: "xml"}
	if err := cfg.Validate(); err == nil {
		t.Fatal("invalid format should fail validation")
	}
}

func TestStoreConfig_DirectoryPathRejected(t *testing.T) {
	cfg := NewDefaultConfig()
	cfg.Store.Path = "/tmp/"
	if err := cfg.Validate(); err == nil {
		t.Fatal("directory path should fail validation")
	}
}

func TestStoreConfig_Location(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	cases := []struct {
		path string
		want string
	}{
		{"", filepath.Join(home, StoreFileName)},
		{"~/reg.json", filepath.Join(home, "reg.json")},
		{"/etc/zz.json", "/etc/zz.json"},
		{"rel/zz.json", "rel/zz.json"},
	}
	for _, tc := range cases {
		cfg := StoreConfig{Path: tc.path}
		got, err := cfg.Location()
		if err != nil {
			t.Fatalf("Location(%q): %v", tc.path, err)
		}
		if got != tc.want {
			t.Errorf("Location(%q) = %q, want %q", tc.path, got, tc.want)
		}
	}
}

func TestStoreConfig_LocationWithoutHome(t *testing.T) {
	t.Setenv("HOME", "")
	if _, err := os.UserHomeDir(); err == nil {
		t.Skip("home directory still resolvable on this platform")
	}
	cfg := StoreConfig{}
	_, err := cfg.Location()
	if !errors.Is(err, apperr.ErrStoreUnavailable) {
		t.Fatalf("err = %v, want ErrStoreUnavailable", err)
	}
}
