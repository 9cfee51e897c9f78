package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/goccy/go-yaml"
	"github.com/k1LoW/expand"
	"github.com/k1LoW/mdshow/version"
)

const (
	defaultListen      = "localhost:8080"
	defaultConcurrency = 4
	defaultRetryMax    = 3
)

var (
	homePath       string
	configHomePath string
	stateHomePath  string
)

type Config struct {
	// Document names tried in order. Each is a local path or an http(s) URL
	Sources []string `yaml:"sources,omitempty" json:"sources,omitempty"`
	// Address the presentation is served on
	Listen string `yaml:"listen,omitempty" json:"listen,omitempty"`
	// Whether to open the presentation in a browser after serving starts
	Open *bool `yaml:"open,omitempty" json:"open,omitempty"`
	// Whether to rebuild the presentation when the local document changes
	Watch *bool `yaml:"watch,omitempty" json:"watch,omitempty"`
	// Number of retries of a failed HTTP fetch
	RetryMax *int `yaml:"retryMax,omitempty" json:"retryMax,omitempty"`
	// Number of slides rendered at the same time
	Concurrency int `yaml:"concurrency,omitempty" json:"concurrency,omitempty"`
	// Whether to expand {{ expr }} in the body with front matter values
	ExpandVariables *bool `yaml:"expandVariables,omitempty" json:"expandVariables,omitempty"`
}

func init() {
	var err error
	homePath, err = os.UserHomeDir()
	if err != nil {
		panic(fmt.Sprintf("failed to get home directory: %v", err))
	}
}

// Load loads the configuration from the config file.
// It searches for config files in the following order:
// 1. $XDG_CONFIG_HOME/mdshow/config-{profile}.yml
// 2. $XDG_CONFIG_HOME/mdshow/config.yml
// Environment variables in the file are expanded before it is parsed.
// If no config file is found, it returns an empty Config struct.
func Load(profile string) (*Config, error) {
	var configBasePaths []string
	if profile != "" {
		configBasePaths = append(configBasePaths, filepath.Join(configPath(), fmt.Sprintf("config-%s", profile)))
	}
	configBasePaths = append(configBasePaths, filepath.Join(configPath(), "config"))
	cfg := &Config{}
	for _, basePath := range configBasePaths {
		for _, ext := range []string{".yml", ".yaml"} {
			configPath := basePath + ext
			if b, err := os.ReadFile(configPath); err == nil {
				if err := yaml.Unmarshal(expand.ExpandenvYAMLBytes(b), cfg); err != nil {
					return nil, fmt.Errorf("failed to unmarshal config %s: %w", configPath, err)
				}
				return cfg, nil
			}
		}
	}
	// If no config file is found, return an empty config
	return cfg, nil
}

// Path returns the config file Load would read for profile, or "" if there is none.
func Path(profile string) string {
	var configBasePaths []string
	if profile != "" {
		configBasePaths = append(configBasePaths, filepath.Join(configPath(), fmt.Sprintf("config-%s", profile)))
	}
	configBasePaths = append(configBasePaths, filepath.Join(configPath(), "config"))
	for _, basePath := range configBasePaths {
		for _, ext := range []string{".yml", ".yaml"} {
			if _, err := os.Stat(basePath + ext); err == nil {
				return basePath + ext
			}
		}
	}
	return ""
}

func (c *Config) DefaultListen() string {
	if c.Listen == "" {
		return defaultListen
	}
	return c.Listen
}

func (c *Config) DefaultOpen() bool {
	return c.Open != nil && *c.Open
}

func (c *Config) DefaultWatch() bool {
	return c.Watch != nil && *c.Watch
}

func (c *Config) DefaultRetryMax() int {
	if c.RetryMax == nil {
		return defaultRetryMax
	}
	return *c.RetryMax
}

func (c *Config) DefaultConcurrency() int {
	if c.Concurrency < 1 {
		return defaultConcurrency
	}
	return c.Concurrency
}

func (c *Config) DefaultExpandVariables() bool {
	return c.ExpandVariables != nil && *c.ExpandVariables
}

// configPath returns the path to the configuration directory.
func configPath() string {
	if configHomePath != "" {
		return configHomePath
	}
	if v := os.Getenv("XDG_CONFIG_HOME"); v != "" {
		configHomePath = filepath.Join(v, version.Name)
	} else {
		configHomePath = filepath.Join(homePath, ".config", version.Name)
	}
	return configHomePath
}

// StateHomePath returns the path to the state home directory, where error.json is written.
func StateHomePath() string {
	if stateHomePath != "" {
		return stateHomePath
	}
	if v := os.Getenv("XDG_STATE_HOME"); v != "" {
		stateHomePath = filepath.Join(v, version.Name)
	} else {
		stateHomePath = filepath.Join(homePath, ".local", "state", version.Name)
	}
	return stateHomePath
}
