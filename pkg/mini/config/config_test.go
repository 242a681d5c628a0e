package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultsAreValid(t *testing.T) {
	if err := validate(Defaults()); err != nil {
		t.Errorf("Defaults() should validate, got %v", err)
	}
}

func TestLoadMissingPathFallsBackToDefaults(t *testing.T) {
	cfg, err := Load("", func(string) string { return "" })
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("got level %q, want info", cfg.Logging.Level)
	}
}

func TestLoadInterpolatesEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "mini.yaml")
	os.WriteFile(path, []byte("prelude:\n  path: ${PRELUDE_PATH}\n"), 0o644)

	cfg, err := Load(path, func(name string) string {
		if name == "PRELUDE_PATH" {
			return "custom.mini"
		}
		return ""
	})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	want := filepath.Join(dir, "custom.mini")
	if cfg.Prelude.Path != want {
		t.Errorf("got %q, want %q", cfg.Prelude.Path, want)
	}
}

func TestLoadRejectsBadLevel(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "mini.yaml")
	os.WriteFile(path, []byte("logging:\n  level: loud\n"), 0o644)

	if _, err := Load(path, func(string) string { return "" }); err == nil {
		t.Error("expected an error for an invalid log level")
	}
}
