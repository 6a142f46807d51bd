// Package config handles configuration loading with env layering.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Config holds all application configuration.
type Config struct {
	Service   ServiceConfig   `koanf:"service"`
	Log       LogConfig       `koanf:"log"`
	Endpoints EndpointsConfig `koanf:"endpoints"`
}

type ServiceConfig struct {
	URL     string        `koanf:"url"`
	Timeout time.Duration `koanf:"timeout"`
}

type LogConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"` // json, text
}

// EndpointsConfig maps each query to a path template under service.url.
// Templates may reference {name} (URL-escaped person name) and {person}
// (the resolved person resource id).
type EndpointsConfig struct {
	Person        string `koanf:"person"`
	Authored      string `koanf:"authored"`
	Shepherded    string `koanf:"shepherded"`
	ResponsibleAD string `koanf:"responsible_ad"`
	Balloted      string `koanf:"balloted"`
	Acknowledged  string `koanf:"acknowledged"`
}

// Load builds the configuration from defaults, an optional YAML file, and
// RFCSTAT_-prefixed environment variables (RFCSTAT_SERVICE_URL -> service.url),
// in that order of precedence.
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	// Defaults
	k.Set("service.url", "https://datatracker.ietf.org")
	k.Set("service.timeout", "10s")
	k.Set("log.level", "info")
	k.Set("log.format", "text")
	k.Set("endpoints.person", "/api/v1/person/person/?name__icontains={name}")
	k.Set("endpoints.authored", "/api/v1/doc/documentauthor/?person={person}")
	k.Set("endpoints.shepherded", "/api/v1/doc/document/?shepherd__person={person}&type=draft")
	k.Set("endpoints.responsible_ad", "/api/v1/doc/document/?ad={person}&type=draft")
	k.Set("endpoints.balloted", "/api/v1/doc/ballotpositiondocevent/?balloter={person}")
	k.Set("endpoints.acknowledged", "/api/v1/review/reviewassignment/?reviewer__person={person}")

	// 1. Load from file
	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("loading config file %s: %w", path, err)
		}
	}

	// 2. Load from ENV (RFCSTAT_LOG_LEVEL -> log.level)
	if err := k.Load(env.Provider("RFCSTAT_", ".", func(s string) string {
		return strings.Replace(strings.ToLower(
			strings.TrimPrefix(s, "RFCSTAT_")), "_", ".", -1)
	}), nil); err != nil {
		return nil, err
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate rejects configurations the client cannot run with.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Service.URL) == "" {
		return fmt.Errorf("service.url must not be empty")
	}
	if c.Service.Timeout <= 0 {
		return fmt.Errorf("service.timeout must be positive, got %v", c.Service.Timeout)
	}
	endpoints := map[string]string{
		"endpoints.person":         c.Endpoints.Person,
		"endpoints.authored":       c.Endpoints.Authored,
		"endpoints.shepherded":     c.Endpoints.Shepherded,
		"endpoints.responsible_ad": c.Endpoints.ResponsibleAD,
		"endpoints.balloted":       c.Endpoints.Balloted,
		"endpoints.acknowledged":   c.Endpoints.Acknowledged,
	}
	for key, val := range endpoints {
		if strings.TrimSpace(val) == "" {
			return fmt.Errorf("%s must not be empty", key)
		}
	}
	return nil
}
