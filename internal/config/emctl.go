// Copyright (c) 2026 Keymaster Team
// emclient - Enclave Manager API clients
// This source code is licensed under the MIT license found in the LICENSE file.

package config

import (
	"time"

	"github.com/toeirei/emclient/client"
)

// Config is the emctl configuration file.
type Config struct {
	Manager   Manager       `mapstructure:"manager" yaml:"manager"`
	NodeAgent NodeAgent     `mapstructure:"node_agent" yaml:"node_agent"`
	Timeout   time.Duration `mapstructure:"timeout" yaml:"timeout"`
	LogLevel  string        `mapstructure:"log_level" yaml:"log_level"`
	// Output is the default rendering: table, json or yaml.
	Output string `mapstructure:"output" yaml:"output"`
}

type Manager struct {
	URL string `mapstructure:"url" yaml:"url"`
	// Token is the bearer token saved by "emctl login".
	Token string `mapstructure:"token" yaml:"token,omitempty"`
}

type NodeAgent struct {
	URL string `mapstructure:"url" yaml:"url"`
}

// Defaults returns the built-in settings keyed the way LoadConfig expects.
func Defaults() map[string]any {
	return map[string]any{
		"manager.url":    "https://em.fortanix.com",
		"manager.token":  "",
		"node_agent.url": "http://localhost:9092",
		"timeout":        "30s",
		"log_level":      "warn",
		"output":         "table",
	}
}

// ManagerClientConfig returns the transport settings for the manager API.
func (c Config) ManagerClientConfig(userAgent string) client.Config {
	return c.clientConfig(c.Manager.URL, c.Manager.Token, userAgent)
}

// NodeAgentClientConfig returns the transport settings for the node agent.
// The agent is unauthenticated, so no token is sent.
func (c Config) NodeAgentClientConfig(userAgent string) client.Config {
	return c.clientConfig(c.NodeAgent.URL, "", userAgent)
}

func (c Config) clientConfig(baseURL, token, userAgent string) client.Config {
	cfg := client.NewDefaultConfig()
	cfg.BaseURL = baseURL
	cfg.Token = token
	if userAgent != "" {
		cfg.UserAgent = userAgent
	}
	if c.Timeout > 0 {
		cfg.Timeout = c.Timeout
	}
	return cfg
}
