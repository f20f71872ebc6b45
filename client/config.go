// Copyright (c) 2026 Keymaster Team
// emclient - Enclave Manager API clients
// This source code is licensed under the MIT license found in the LICENSE file.
package client

import (
	"net/http"
	"time"

	"github.com/toeirei/emclient/buildvars"
)

type Config struct {
	// BaseURL is the scheme and host of the API, e.g. https://em.example.com.
	// The API base path is added by the calling package.
	BaseURL string
	// Token is sent as a bearer token when non-empty.
	Token     string
	UserAgent string

	Timeout      time.Duration
	DialTimeout  time.Duration
	KeepAlive    time.Duration
	MaxIdleConns int

	// HTTPClient replaces the instrumented client built from the fields above.
	HTTPClient *http.Client
}

func NewDefaultConfig() Config {
	return Config{
		UserAgent:    buildvars.UserAgent("emclient"),
		Timeout:      30 * time.Second,
		DialTimeout:  10 * time.Second,
		KeepAlive:    30 * time.Second,
		MaxIdleConns: 10,
	}
}
