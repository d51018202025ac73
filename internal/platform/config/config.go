// Copyright (c) 2026 Homezy. All rights reserved.
// Author: dev@homezy.app

/*
Package config handles application-wide settings and environment parsing.

It leverages 'caarlos0/env' to map OS environment variables into a strongly-typed
Go struct, providing early validation and default values.

Usage:

	cfg, err := config.Load()
	if err != nil {
	    log.Fatal(err)
	}

Architecture:

  - Immutability: Once loaded, configuration is read-only.
  - DI-Friendly: Passed to core components (upstream clients, Redis) via constructors.
  - Zero Hidden State: No global variables are used to store config.

This ensures the application is Twelve-Factor compliant by storing config in the env.
*/
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// # Configuration Schema

// Config holds all runtime configuration for the Homezy API server.
type Config struct {

	// Server settings
	ServerPort  string `env:"SERVER_PORT"  envDefault:"8080"`
	Environment string `env:"ENVIRONMENT"  envDefault:"development"`
	Debug       bool   `env:"DEBUG"        envDefault:"false"`

	// Remote relational data store (REST interface)
	DataStoreURL string `env:"DATASTORE_URL,required"`

	// DataStoreJWTSecret signs the privileged service token presented to the
	// data store. Shared with the store's own JWT verifier.
	DataStoreJWTSecret string `env:"DATASTORE_JWT_SECRET,required"`

	// DataStoreTimeout bounds every single call to the data store.
	DataStoreTimeout time.Duration `env:"DATASTORE_TIMEOUT" envDefault:"5s"`

	// Token-issuing authority (verification endpoint only; issuance is external)
	AuthorityURL string `env:"AUTHORITY_URL,required"`

	// AuthorityTimeout bounds every token verification call.
	AuthorityTimeout time.Duration `env:"AUTHORITY_TIMEOUT" envDefault:"5s"`

	// Volatile queue / cache (Redis)
	RedisURL string `env:"REDIS_URL,required"`

	// Cross-Origin Resource Sharing
	ExtraOrigins string `env:"EXTRA_ORIGINS"`
}

// # Configuration Loading

// Load parses environment variables into a [Config] struct.
func Load() (*Config, error) {

	// Initialize an empty config struct
	cfg := &Config{}

	// Use the 'env' package to map environment variables to struct fields.
	// This will fail if any field marked with 'required' is missing.
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("config: failed to parse environment variables: %w", err)
	}

	return cfg, nil
}

// IsDevelopment reports whether the server is running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// IsProduction reports whether the server is running in production mode.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}
