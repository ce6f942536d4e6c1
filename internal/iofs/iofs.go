// Package iofs prepares the directories and files the application keeps
// under the user's home directory.
package iofs

import (
	_ "embed"
	"os"

	"github.com/aire-program/aire-impact-dashboard/pkg/config"
	"gopkg.in/yaml.v3"
)

// ConfigYAML is the documented default config.yaml.
//
//go:embed config.yaml
var ConfigYAML string

// EnsureDirs creates config, cache and log directories if needed.
func EnsureDirs(homeDir string) error {
	dirs := []string{
		config.ConfigDir(homeDir),
		config.CacheDir(homeDir),
		config.LogDir(homeDir),
	}
	for _, v := range dirs {
		if err := touchDir(v); err != nil {
			return err
		}
	}
	return nil
}

// TouchDir creates a directory with parents if it does not exist.
func TouchDir(dir string) error {
	return touchDir(dir)
}

func touchDir(dir string) error {
	info, err := os.Stat(dir)
	if err == nil && info.IsDir() {
		return nil
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return CreateDirError(dir, err)
	}

	return nil
}

// EnsureConfigFile writes the default config.yaml unless one exists.
func EnsureConfigFile(homeDir string) error {
	configPath := config.ConfigFilePath(homeDir)

	if _, err := os.Stat(configPath); err == nil {
		return nil
	}

	if err := os.WriteFile(configPath, []byte(ConfigYAML), 0644); err != nil {
		return CopyFileError(configPath, err)
	}

	return nil
}

// ReadConfigFile parses a config.yaml on top of default values.
func ReadConfigFile(path string) (*config.Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, ReadFileError(path, err)
	}

	cfg := config.New()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, ConfigFileError(path, err)
	}
	return cfg, nil
}
