package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/Paintersrp/fx/internal/constants"
)

func GetConfigPath(configDir string) string {
	return filepath.Join(
		configDir,
		constants.ConfigFile+"."+constants.ConfigFileType,
	)
}

// EnsureConfigExists creates the configuration directory and writes a
// default config file when none exists.
func EnsureConfigExists(configDir string) error {
	if configDir == "" {
		return &ConfigInitError{msg: "no configuration directory is set"}
	}

	configPath := GetConfigPath(configDir)
	if err := os.MkdirAll(filepath.Dir(configPath), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if _, err := os.Stat(configPath); errors.Is(err, os.ErrNotExist) {
		cfg := Default()
		cfg.dir = configDir
		if err := cfg.Save(); err != nil {
			return fmt.Errorf("failed to create config file: %w", err)
		}
	} else if err != nil {
		return fmt.Errorf("failed to check config file existence: %w", err)
	}

	return nil
}
