// Package config loads the voicebridge server configuration.
//
// Resolution order, lowest to highest precedence:
//
//  1. built-in defaults
//  2. optional YAML config file (--config)
//  3. environment variables (AZURE_OPENAI_*, VOICEBRIDGE_*)
//
// A .env file in the working directory is loaded into the environment
// by the serve command before Load runs, so dotenv entries behave like
// regular environment variables.
package config

import (
	"fmt"
	"os"

	"github.com/goccy/go-yaml"
)

// Defaults for optional settings.
const (
	DefaultAddr       = ":8080"
	DefaultDeployment = "gpt-4o-realtime-preview"
	DefaultAPIVersion = "2024-10-01-preview"
	DefaultStaticDir  = "static"
)

// Azure holds the upstream Azure OpenAI connection settings. Endpoint
// and APIKey have no defaults; the server runs without them but
// rejects session starts until they are configured.
type Azure struct {
	Endpoint   string `yaml:"endpoint"`
	APIKey     string `yaml:"api_key"`
	Deployment string `yaml:"deployment"`
	APIVersion string `yaml:"api_version"`
}

// Config is the full server configuration.
type Config struct {
	// Addr is the HTTP listen address.
	Addr string `yaml:"addr"`

	// StaticDir is the directory of static UI files served at /.
	// Serving is skipped when the directory does not exist.
	StaticDir string `yaml:"static_dir"`

	Azure Azure `yaml:"azure"`
}

// Load builds the configuration from defaults, an optional YAML file,
// and the environment. An empty path skips the file layer; a named
// file that cannot be read or parsed is an error.
func Load(path string) (*Config, error) {
	cfg := &Config{
		Addr:      DefaultAddr,
		StaticDir: DefaultStaticDir,
		Azure: Azure{
			Deployment: DefaultDeployment,
			APIVersion: DefaultAPIVersion,
		},
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config file %s: %w", path, err)
		}
	}

	applyEnv(cfg)

	if cfg.Addr == "" {
		cfg.Addr = DefaultAddr
	}
	if cfg.Azure.Deployment == "" {
		cfg.Azure.Deployment = DefaultDeployment
	}
	if cfg.Azure.APIVersion == "" {
		cfg.Azure.APIVersion = DefaultAPIVersion
	}

	return cfg, nil
}

// applyEnv overlays environment variables onto cfg.
func applyEnv(cfg *Config) {
	setIfPresent(&cfg.Azure.Endpoint, "AZURE_OPENAI_ENDPOINT")
	setIfPresent(&cfg.Azure.APIKey, "AZURE_OPENAI_API_KEY")
	setIfPresent(&cfg.Azure.Deployment, "AZURE_OPENAI_DEPLOYMENT")
	setIfPresent(&cfg.Azure.APIVersion, "AZURE_OPENAI_API_VERSION")
	setIfPresent(&cfg.Addr, "VOICEBRIDGE_ADDR")
	setIfPresent(&cfg.StaticDir, "VOICEBRIDGE_STATIC_DIR")
}

func setIfPresent(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

// HasCredentials reports whether the upstream connection is usable.
func (c *Config) HasCredentials() bool {
	return c.Azure.Endpoint != "" && c.Azure.APIKey != ""
}
