// Copyright (c) 2026 Keymaster Team
// emclient - Enclave Manager API clients
// This source code is licensed under the MIT license found in the LICENSE file.

// Package config loads and persists emctl settings. Values come, in rising
// precedence, from defaults, the emctl.yaml file, EMCTL_* environment
// variables and command line flags.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const (
	fileName  = "emctl"
	envPrefix = "emctl"
)

// GetConfigPath returns the full path of the user or system config file.
func GetConfigPath(system bool) (string, error) {
	var configDir string

	if system {
		switch runtime.GOOS {
		case "windows":
			configDir = filepath.Join(os.Getenv("ProgramData"), "emctl")
		default:
			configDir = "/etc/emctl"
		}
	} else {
		userDir, err := os.UserConfigDir()
		if err != nil {
			return "", fmt.Errorf("could not get user config directory: %w", err)
		}
		configDir = filepath.Join(userDir, "emctl")
	}

	return filepath.Join(configDir, fileName+".yaml"), nil
}

// LoadConfig builds a T from defaults, the first config file found and the
// environment, then applies flags set on cmd. explicitPath, when non-nil,
// replaces the file search. A missing config file is not an error.
func LoadConfig[T any](cmd *cobra.Command, defaults map[string]any, explicitPath *string) (T, error) {
	var c T
	v := viper.New()

	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	v.SetConfigName(fileName)
	v.SetConfigType("yaml")
	if explicitPath != nil {
		v.SetConfigFile(*explicitPath)
	}
	if userPath, err := GetConfigPath(false); err == nil {
		v.AddConfigPath(filepath.Dir(userPath))
	}
	if systemPath, err := GetConfigPath(true); err == nil {
		v.AddConfigPath(filepath.Dir(systemPath))
	}
	v.AddConfigPath(".")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return c, fmt.Errorf("error reading config: %w", err)
		}
	}

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if cmd != nil {
		if err := v.BindPFlags(cmd.Flags()); err != nil {
			return c, err
		}
	}

	if err := v.Unmarshal(&c); err != nil {
		return c, fmt.Errorf("error decoding config: %w", err)
	}
	return c, nil
}

// WriteConfigFile stores c as YAML at the user (or system) config path,
// creating the directory when needed. The file may hold a token, so it is
// only readable by its owner.
func WriteConfigFile[T any](c *T, system bool) (string, error) {
	path, err := GetConfigPath(system)
	if err != nil {
		return "", err
	}
	return path, writeFile(path, c)
}

func writeFile(path string, c any) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}

	configDir := filepath.Dir(path)
	if err := os.MkdirAll(configDir, 0o755); err != nil {
		return fmt.Errorf("could not create config directory %s: %w", configDir, err)
	}
	return os.WriteFile(path, data, 0o600)
}

// WriteConfigFileAt stores c as YAML at path.
func WriteConfigFileAt[T any](c *T, path string) error {
	return writeFile(path, c)
}
