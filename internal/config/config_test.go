package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/vango-dev/shadow/internal/errors"
)

func writeConfig(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, ConfigFileName)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestNew(t *testing.T) {
	cfg := New()

	if cfg.Format != DefaultFormat {
		t.Errorf("Format = %q, want %q", cfg.Format, DefaultFormat)
	}
	if cfg.Color != ColorAuto {
		t.Errorf("Color = %q, want %q", cfg.Color, ColorAuto)
	}
	if cfg.MaxFlushPasses != 100 {
		t.Errorf("MaxFlushPasses = %d, want 100", cfg.MaxFlushPasses)
	}
	if cfg.DiffContext != DefaultDiffContext {
		t.Errorf("DiffContext = %d, want %d", cfg.DiffContext, DefaultDiffContext)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults should validate: %v", err)
	}
}

func TestLoad(t *testing.T) {
	tmpDir := t.TempDir()

	// Test loading non-existent config
	_, err := Load(tmpDir)
	if err == nil {
		t.Fatal("Expected error for missing config")
	}
	if !errors.HasCode(err, "S300") {
		t.Errorf("missing config error = %v, want S300", err)
	}

	writeConfig(t, tmpDir, `{
  "schema": "schemas/bank.yaml",
  "format": "yaml",
  "logLevel": "debug",
  "diffContext": 5
}
`)

	cfg, err := Load(tmpDir)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}

	if cfg.Format != "yaml" {
		t.Errorf("Format = %q, want %q", cfg.Format, "yaml")
	}
	if cfg.Level() != slog.LevelDebug {
		t.Errorf("Level() = %v, want %v", cfg.Level(), slog.LevelDebug)
	}
	if cfg.DiffContext != 5 {
		t.Errorf("DiffContext = %d, want 5", cfg.DiffContext)
	}
	// Defaults fill what the file leaves out.
	if cfg.Color != ColorAuto {
		t.Errorf("Color = %q, want %q", cfg.Color, ColorAuto)
	}
	if cfg.MaxFlushPasses != 100 {
		t.Errorf("MaxFlushPasses = %d, want 100", cfg.MaxFlushPasses)
	}
	if want := filepath.Join(tmpDir, "schemas/bank.yaml"); cfg.SchemaPath() != want {
		t.Errorf("SchemaPath() = %q, want %q", cfg.SchemaPath(), want)
	}
	if cfg.Dir() != tmpDir {
		t.Errorf("Dir() = %q, want %q", cfg.Dir(), tmpDir)
	}
}

func TestLoadInvalidJSON(t *testing.T) {
	tmpDir := t.TempDir()
	writeConfig(t, tmpDir, `{"format": `)

	_, err := Load(tmpDir)
	if !errors.HasCode(err, "S301") {
		t.Fatalf("Load error = %v, want S301", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		field  string
	}{
		{"format", func(c *Config) { c.Format = "xml" }, "format"},
		{"color", func(c *Config) { c.Color = "sometimes" }, "color"},
		{"log level", func(c *Config) { c.LogLevel = "loud" }, "logLevel"},
		{"flush passes", func(c *Config) { c.MaxFlushPasses = -1 }, "maxFlushPasses"},
		{"diff context", func(c *Config) { c.DiffContext = -2 }, "diffContext"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := New()
			tt.mutate(cfg)

			err := cfg.Validate()
			if err == nil {
				t.Fatal("expected validation error")
			}
			var se *errors.ShadowError
			if !asShadowError(err, &se) || se.Code != "S302" {
				t.Fatalf("error = %v, want S302", err)
			}
			if se.Path != tt.field {
				t.Errorf("Path = %q, want %q", se.Path, tt.field)
			}
		})
	}
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	tmpDir := t.TempDir()
	writeConfig(t, tmpDir, `{"format": "toml"}`)

	_, err := Load(tmpDir)
	if !errors.HasCode(err, "S302") {
		t.Fatalf("Load error = %v, want S302", err)
	}
}

func TestSaveRoundTrip(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, ConfigFileName)

	cfg := New()
	cfg.Schema = "bank.yaml"
	if err := cfg.SaveTo(path); err != nil {
		t.Fatalf("SaveTo error: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasSuffix(string(data), "\n") {
		t.Error("saved file should end with a newline")
	}

	loaded, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile error: %v", err)
	}
	if loaded.Schema != "bank.yaml" {
		t.Errorf("Schema = %q, want %q", loaded.Schema, "bank.yaml")
	}
	if err := loaded.Save(); err != nil {
		t.Errorf("Save error: %v", err)
	}

	if err := New().Save(); err == nil {
		t.Error("Save without a path should fail")
	}
}

func TestFindProjectRoot(t *testing.T) {
	tmpDir := t.TempDir()
	writeConfig(t, tmpDir, `{}`)

	nested := filepath.Join(tmpDir, "a", "b")
	if err := os.MkdirAll(nested, 0755); err != nil {
		t.Fatal(err)
	}

	root, err := FindProjectRoot(nested)
	if err != nil {
		t.Fatalf("FindProjectRoot error: %v", err)
	}
	if root != tmpDir {
		t.Errorf("root = %q, want %q", root, tmpDir)
	}
}

func TestLoadFromDir(t *testing.T) {
	tmpDir := t.TempDir()
	writeConfig(t, tmpDir, `{"format": "yaml"}`)
	nested := filepath.Join(tmpDir, "sub")
	if err := os.MkdirAll(nested, 0755); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFromDir(nested)
	if err != nil {
		t.Fatalf("LoadFromDir error: %v", err)
	}
	if cfg.Format != "yaml" {
		t.Errorf("Format = %q, want %q", cfg.Format, "yaml")
	}
}

func TestLoadFromDirDefaults(t *testing.T) {
	if Exists(t.TempDir()) {
		t.Fatal("Exists should be false for an empty directory")
	}
	// Parents of a temp dir normally hold no shadowctl.json; if one does,
	// the nearest file wins, which LoadFromDir covers above.
	cfg, err := LoadFromDir(t.TempDir())
	if err != nil {
		t.Fatalf("LoadFromDir error: %v", err)
	}
	if cfg.Path() != "" && !strings.HasSuffix(cfg.Path(), ConfigFileName) {
		t.Errorf("Path() = %q", cfg.Path())
	}
}

func asShadowError(err error, target **errors.ShadowError) bool {
	se, ok := err.(*errors.ShadowError)
	if ok {
		*target = se
	}
	return ok
}
