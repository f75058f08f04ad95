package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

type sample struct {
	Name  string `yaml:"name"`
	Level int    `yaml:"level"`
}

type checked struct {
	Name string `yaml:"name"`
}

func (c *checked) Validate() error {
	if c.Name == "" {
		return errors.New("name is required")
	}
	return nil
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad_ExpandsEnv(t *testing.T) {
	t.Setenv("ZZ_TEST_NAME", "from-env")
	path := writeConfig(t, "name: ${ZZ_TEST_NAME}\nlevel: 3\n")

	var got sample
	if err := Load(path, &got); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got.Name != "from-env" || got.Level != 3 {
		t.Errorf("got %+v", got)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	var got sample
	if err := Load(filepath.Join(t.TempDir(), "nope.yaml"), &got); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestLoad_RunsValidator(t *testing.T) {
	path := writeConfig(t, "name: \"\"\n")
	var got checked
	err := Load(path, &got)
	if err == nil || !strings.Contains(err.Error(), "name is required") {
		t.Fatalf("err = %v, want validation failure", err)
	}
}

func TestLoadOptional_MissingKeepsDefaults(t *testing.T) {
	got := sample{Name: "default", Level: 1}
	read, err := LoadOptional(filepath.Join(t.TempDir(), "nope.yaml"), &got)
	if err != nil {
		t.Fatalf("LoadOptional: %v", err)
	}
	if read {
		t.Error("read = true for missing file")
	}
	if got.Name != "default" || got.Level != 1 {
		t.Errorf("defaults changed: %+v", got)
	}
}

func TestLoadOptional_OverlaysFile(t *testing.T) {
	path := writeConfig(t, "level: 5\n")
	got := sample{Name: "default", Level: 1}
	read, err := LoadOptional(path, &got)
	if err != nil {
		t.Fatalf("LoadOptional: %v", err)
	}
	if !read {
		t.Error("read = false for existing file")
	}
	if got.Name != "default" || got.Level != 5 {
		t.Errorf("got %+v", got)
	}
}

func TestLoadOptional_ValidatesDefaults(t *testing.T) {
	var got checked
	if _, err := LoadOptional("", &got); err == nil {
		t.Fatal("defaults should still be validated")
	}
}
