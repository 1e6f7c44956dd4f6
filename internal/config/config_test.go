package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"gopkg.in/yaml.v3"

	"github.com/Paintersrp/fx/internal/config"
	"github.com/Paintersrp/fx/internal/constants"
)

func writeConfig(t *testing.T, dir string, data map[string]any) {
	t.Helper()
	raw, err := yaml.Marshal(data)
	if err != nil {
		t.Fatalf("failed to marshal config data: %v", err)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("failed to create config directory: %v", err)
	}
	if err := os.WriteFile(config.GetConfigPath(dir), raw, 0o644); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	dir := t.TempDir()

	cfg, warnings, err := config.Load(dir)
	if err != nil {
		t.Fatalf("expected load to succeed: %v", err)
	}
	if len(warnings) != 0 {
		t.Fatalf("unexpected warnings: %v", warnings)
	}
	if !cfg.SyntaxHighlight || cfg.DefaultTheme != "dracula" || cfg.ProgressEvery != constants.DefaultProgressEvery {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
	if cfg.TrashPath() != filepath.Join(dir, "trash") {
		t.Fatalf("unexpected trash path %q", cfg.TrashPath())
	}
}

func TestLoadKeepsDefaultsForMissingKeys(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, map[string]any{
		"default": "nvim",
		"exec": map[string]string{
			"PNG":  "feh",
			".pdf": "zathura {file}",
		},
	})

	cfg, _, err := config.Load(dir)
	if err != nil {
		t.Fatalf("expected load to succeed: %v", err)
	}
	if cfg.Default != "nvim" {
		t.Fatalf("expected default opener nvim, got %q", cfg.Default)
	}
	if !cfg.SyntaxHighlight {
		t.Fatalf("expected syntax_highlight to keep its default")
	}
	if got := cfg.Command("png"); got != "feh" {
		t.Fatalf("Command(png) = %q, want feh", got)
	}
	if got := cfg.Command("pdf"); got != "zathura {file}" {
		t.Fatalf("Command(pdf) = %q, want zathura {file}", got)
	}
	if got := cfg.Command("txt"); got != "nvim" {
		t.Fatalf("Command(txt) = %q, want default opener", got)
	}
}

func TestLoadReplacesInvalidValues(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, map[string]any{
		"colors": map[string]string{
			"dir_fg":  "Chartreuse",
			"file_fg": "#ff00aa",
		},
		"progress_every":   0,
		"syntax_highlight": false,
	})

	cfg, warnings, err := config.Load(dir)
	if err != nil {
		t.Fatalf("expected load to succeed: %v", err)
	}
	if len(warnings) != 2 {
		t.Fatalf("expected two warnings, got %v", warnings)
	}
	if cfg.Colors.DirFg != "LightCyan" {
		t.Fatalf("expected invalid dir color to fall back, got %q", cfg.Colors.DirFg)
	}
	if cfg.Colors.FileFg != "#ff00aa" {
		t.Fatalf("expected hex color to be kept, got %q", cfg.Colors.FileFg)
	}
	if cfg.ProgressEvery != constants.DefaultProgressEvery {
		t.Fatalf("expected progress_every default, got %d", cfg.ProgressEvery)
	}
	if cfg.SyntaxHighlight {
		t.Fatalf("expected syntax_highlight false to be honored")
	}
}

func TestLoadRejectsMalformedYAML(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(config.GetConfigPath(dir), []byte("exec: [unterminated"), 0o644); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}

	if _, _, err := config.Load(dir); err == nil {
		t.Fatalf("expected malformed config to fail")
	}
}

func TestEnsureConfigExistsWritesDefaults(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "fx")

	if err := config.EnsureConfigExists(dir); err != nil {
		t.Fatalf("EnsureConfigExists returned %v", err)
	}

	cfg, err := config.FromFile(config.GetConfigPath(dir))
	if err != nil {
		t.Fatalf("FromFile returned %v", err)
	}
	if cfg.Colors.SymlinkFg != "LightYellow" {
		t.Fatalf("expected default colors in written file, got %+v", cfg.Colors)
	}

	if err := config.EnsureConfigExists(""); err == nil {
		t.Fatalf("expected empty dir to fail")
	}
}

func TestResolveDirPrecedence(t *testing.T) {
	explicit := t.TempDir()
	env := t.TempDir()
	t.Setenv(constants.ConfigDirEnv, env)

	got, err := config.ResolveDir(explicit)
	if err != nil || got != explicit {
		t.Fatalf("ResolveDir(explicit) = %q, %v", got, err)
	}
	got, err = config.ResolveDir("")
	if err != nil || got != env {
		t.Fatalf("ResolveDir(env) = %q, %v", got, err)
	}
}

func TestParseColor(t *testing.T) {
	tests := []struct {
		in string
		ok bool
	}{
		{"LightCyan", true},
		{"lightcyan", true},
		{"#abc", true},
		{"#a1b2c3", true},
		{"#zzzzzz", false},
		{"Mauve", false},
	}
	for _, tt := range tests {
		if _, ok := config.ParseColor(tt.in); ok != tt.ok {
			t.Fatalf("ParseColor(%q) ok = %v, want %v", tt.in, ok, tt.ok)
		}
	}
}
