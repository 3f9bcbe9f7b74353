// Copyright (c) 2026 Todoro. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package config handles per-service settings and environment parsing.

It leverages 'caarlos0/env' to map OS environment variables into strongly-typed
Go structs, providing early validation and default values. Each deployable
service has its own schema because the two services intentionally share
nothing at runtime except the token signing secret and TTL.

Usage:

	cfg, err := config.LoadUserService()
	if err != nil {
	    log.Fatal(err)
	}

Architecture:

  - Immutability: Once loaded, configuration is read-only.
  - DI-Friendly: Passed to core components (DB, Redis, token codec) via constructors.
  - Zero Hidden State: No global variables are used to store config.

JWT_SECRET and JWT_TTL carry no defaults on purpose: both services must be
configured with the same values operationally, and a silent per-service
default would break the trust contract between them.
*/
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// # Configuration Schemas

// UserService holds all runtime configuration for the user (identity) API.
type UserService struct {

	// Server settings
	ServerPort  string `env:"SERVER_PORT"  envDefault:"3001"`
	Environment string `env:"ENVIRONMENT"  envDefault:"development"`
	Debug       bool   `env:"DEBUG"        envDefault:"false"`

	// Relational Database (PostgreSQL)
	DatabaseURL string `env:"DATABASE_URL,required"`

	// MigrationPath is the filesystem path to the SQL migrations directory.
	MigrationPath string `env:"MIGRATION_PATH" envDefault:"./migrations/user"`

	// Key-Value Cache (Redis) — login attempt throttling only.
	RedisURL string `env:"REDIS_URL,required"`

	// Token signing contract, shared out-of-band with the todo service.
	JWTSecret string        `env:"JWT_SECRET,required"`
	JWTTTL    time.Duration `env:"JWT_TTL,required"`

	// Cross-Origin Resource Sharing
	AllowedOrigins []string `env:"ALLOWED_ORIGINS" envSeparator:"," envDefault:"http://localhost:8080"`
}

// TodoService holds all runtime configuration for the todo (resource) API.
type TodoService struct {

	// Server settings
	ServerPort  string `env:"SERVER_PORT"  envDefault:"3002"`
	Environment string `env:"ENVIRONMENT"  envDefault:"development"`
	Debug       bool   `env:"DEBUG"        envDefault:"false"`

	// Relational Database (PostgreSQL)
	DatabaseURL string `env:"DATABASE_URL,required"`

	// MigrationPath is the filesystem path to the SQL migrations directory.
	MigrationPath string `env:"MIGRATION_PATH" envDefault:"./migrations/todo"`

	// Token verification contract, shared out-of-band with the user service.
	JWTSecret string        `env:"JWT_SECRET,required"`
	JWTTTL    time.Duration `env:"JWT_TTL,required"`

	// Cross-Origin Resource Sharing
	AllowedOrigins []string `env:"ALLOWED_ORIGINS" envSeparator:"," envDefault:"http://localhost:8080"`
}

// # Configuration Loading

// LoadUserService parses environment variables into a [UserService] config.
func LoadUserService() (*UserService, error) {
	cfg := &UserService{}

	// This will fail if any field marked with 'required' is missing.
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("config: failed to parse environment variables: %w", err)
	}

	return cfg, nil
}

// LoadTodoService parses environment variables into a [TodoService] config.
func LoadTodoService() (*TodoService, error) {
	cfg := &TodoService{}

	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("config: failed to parse environment variables: %w", err)
	}

	return cfg, nil
}

// # Environment Helpers

// IsDevelopment reports whether the user service runs in development mode.
func (c *UserService) IsDevelopment() bool { return c.Environment == "development" }

// Origins returns the configured CORS origin allow-list.
func (c *UserService) Origins() []string { return c.AllowedOrigins }

// IsDevelopment reports whether the todo service runs in development mode.
func (c *TodoService) IsDevelopment() bool { return c.Environment == "development" }

// Origins returns the configured CORS origin allow-list.
func (c *TodoService) Origins() []string { return c.AllowedOrigins }
