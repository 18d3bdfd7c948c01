package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/nmrtools/bbsbbu/pkg/config"
)

func TestLoad_parsesValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bbsbbu.toml")
	body := "tmax = 30.5\nclean_log = true\n"
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.TmaxSeconds != 30.5 {
		t.Errorf("TmaxSeconds = %v, want 30.5", cfg.TmaxSeconds)
	}
	if !cfg.CleanLog {
		t.Errorf("CleanLog = false, want true")
	}
}

func TestLoad_missingFileReturnsZeroValue(t *testing.T) {
	path := filepath.Join(t.TempDir(), "absent.toml")
	cfg, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.TmaxSeconds != 0 || cfg.CleanLog {
		t.Errorf("Load(missing) = %+v, want zero value", cfg)
	}
}

func TestLoad_rejectsMalformedTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.toml")
	if err := os.WriteFile(path, []byte("tmax = [not valid"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, err := config.Load(path); err == nil {
		t.Errorf("Load(malformed) = nil error, want error")
	}
}
