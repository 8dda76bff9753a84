package config

import (
	"fmt"
	"os"
	"path/filepath"
)

// ConfigFileName is the name of the project configuration file
const ConfigFileName = "clickup.toml"

// DiscoverProjectConfig finds and parses the clickup.toml file by traversing
// up the directory tree from the current working directory. It returns
// empty settings when no file is found.
func DiscoverProjectConfig() (*Settings, string, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return nil, "", fmt.Errorf("failed to get current directory: %w", err)
	}

	return DiscoverProjectConfigFrom(cwd)
}

// DiscoverProjectConfigFrom searches for clickup.toml starting from the given
// directory. The returned path is empty when no file was found.
func DiscoverProjectConfigFrom(startDir string) (*Settings, string, error) {
	dir := startDir

	for {
		configPath := filepath.Join(dir, ConfigFileName)
		if _, err := os.Stat(configPath); err == nil {
			s, err := parseFile(configPath)
			if err != nil {
				return nil, "", err
			}
			return s, configPath, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			// Reached filesystem root
			return &Settings{}, "", nil
		}
		dir = parent
	}
}
