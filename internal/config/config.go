package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/Paintersrp/fx/internal/constants"
	"github.com/Paintersrp/fx/internal/pathutil"
)

type Colors struct {
	DirFg     string `yaml:"dir_fg"     json:"dir_fg"`
	FileFg    string `yaml:"file_fg"    json:"file_fg"`
	SymlinkFg string `yaml:"symlink_fg" json:"symlink_fg"`
	// DirtyFg is accepted for compatibility and not used.
	DirtyFg string `yaml:"dirty_fg" json:"dirty_fg"`
}

type Config struct {
	Default         string            `yaml:"default"          json:"default"`
	Exec            map[string]string `yaml:"exec"             json:"exec"`
	Colors          Colors            `yaml:"colors"           json:"colors"`
	SyntaxHighlight bool              `yaml:"syntax_highlight" json:"syntax_highlight"`
	DefaultTheme    string            `yaml:"default_theme"    json:"default_theme"`
	TrashDir        string            `yaml:"trash_dir"        json:"trash_dir"`
	ProgressEvery   int               `yaml:"progress_every"   json:"progress_every"`

	dir string `yaml:"-"`
}

const (
	defaultOpener = "xdg-open"
	defaultTheme  = "dracula"
)

var defaultColors = Colors{
	DirFg:     "LightCyan",
	FileFg:    "LightWhite",
	SymlinkFg: "LightYellow",
	DirtyFg:   "Red",
}

// Default returns the configuration used when no file exists.
func Default() *Config {
	return &Config{
		Default:         defaultOpener,
		Exec:            map[string]string{},
		Colors:          defaultColors,
		SyntaxHighlight: true,
		DefaultTheme:    defaultTheme,
		ProgressEvery:   constants.DefaultProgressEvery,
	}
}

// ResolveDir picks the configuration directory: an explicit value, then
// $FX_CONFIG_DIR, then ~/.config/fx.
func ResolveDir(explicit string) (string, error) {
	if explicit != "" {
		return filepath.Abs(explicit)
	}
	if env := os.Getenv(constants.ConfigDirEnv); env != "" {
		return filepath.Abs(env)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to resolve home directory: %w", err)
	}
	return filepath.Join(home, constants.ConfigDir), nil
}

// Load reads config.yaml from dir. Missing keys keep their defaults;
// invalid values are replaced by defaults and reported as warnings.
func Load(dir string) (*Config, []string, error) {
	v := viper.New()
	v.AddConfigPath(dir)
	v.SetConfigName(constants.ConfigFile)
	v.SetConfigType(constants.ConfigFileType)
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			cfg := Default()
			cfg.dir = dir
			return cfg, nil, nil
		}
		return nil, nil, fmt.Errorf("failed to read config: %w", err)
	}

	cfg, err := FromFile(v.ConfigFileUsed())
	if err != nil {
		return nil, nil, err
	}
	cfg.dir = dir
	return cfg, cfg.validate(), nil
}

// FromFile decodes path over the defaults.
func FromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	cfg := Default()
	if len(strings.TrimSpace(string(data))) == 0 {
		return cfg, nil
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	if cfg.Exec == nil {
		cfg.Exec = map[string]string{}
	}
	return cfg, nil
}

func (cfg *Config) validate() []string {
	var warnings []string

	fix := func(field string, value *string, fallback string) {
		if _, ok := ParseColor(*value); !ok {
			warnings = append(warnings, fmt.Sprintf("unknown color %q for %s, using %s", *value, field, fallback))
			*value = fallback
		}
	}
	fix("dir_fg", &cfg.Colors.DirFg, defaultColors.DirFg)
	fix("file_fg", &cfg.Colors.FileFg, defaultColors.FileFg)
	fix("symlink_fg", &cfg.Colors.SymlinkFg, defaultColors.SymlinkFg)
	fix("dirty_fg", &cfg.Colors.DirtyFg, defaultColors.DirtyFg)

	if cfg.ProgressEvery < 1 {
		warnings = append(warnings, fmt.Sprintf("progress_every must be at least 1, using %d", constants.DefaultProgressEvery))
		cfg.ProgressEvery = constants.DefaultProgressEvery
	}
	if strings.TrimSpace(cfg.DefaultTheme) == "" {
		cfg.DefaultTheme = defaultTheme
	}

	normalized := make(map[string]string, len(cfg.Exec))
	for ext, command := range cfg.Exec {
		normalized[strings.ToLower(strings.TrimPrefix(ext, "."))] = command
	}
	cfg.Exec = normalized

	return warnings
}

// Dir is the configuration directory the config was loaded from.
func (cfg *Config) Dir() string {
	return cfg.dir
}

func (cfg *Config) GetConfigPath() string {
	return GetConfigPath(cfg.dir)
}

// TrashPath is the vault directory: trash_dir when set, otherwise
// <config-dir>/trash.
func (cfg *Config) TrashPath() string {
	if cfg.TrashDir != "" {
		return pathutil.NormalizePath(pathutil.ExpandHome(cfg.TrashDir))
	}
	return filepath.Join(cfg.dir, constants.TrashDir)
}

// Command returns the opener configured for ext, or the default opener.
func (cfg *Config) Command(ext string) string {
	if command, ok := cfg.Exec[strings.ToLower(ext)]; ok && strings.TrimSpace(command) != "" {
		return command
	}
	return cfg.Default
}

// Extensions lists the extensions with a dedicated opener, sorted.
func (cfg *Config) Extensions() []string {
	exts := make([]string, 0, len(cfg.Exec))
	for ext := range cfg.Exec {
		exts = append(exts, ext)
	}
	sort.Strings(exts)
	return exts
}

func (cfg *Config) Save() error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}

	configPath := cfg.GetConfigPath()
	if err := os.MkdirAll(filepath.Dir(configPath), 0o755); err != nil {
		return err
	}

	return os.WriteFile(configPath, data, 0o644)
}
