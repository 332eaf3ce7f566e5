package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v2"

	"github.com/telekom/gtokenctl/pkg/version"
)

const (
	VersionV1 = "v1"

	StoreEnv      = "env"
	StoreFile     = "file"
	StoreKeychain = "keychain"

	DefaultAuthURL   = "https://accounts.google.com/o/oauth2/auth"
	DefaultTokenURL  = "https://accounts.google.com/o/oauth2/token"
	DefaultRevokeURL = "https://accounts.google.com/o/oauth2/revoke"

	DefaultKeychainService = "gtokenctl"
	DefaultKeychainUser    = "default"
)

type Config struct {
	Version    string     `yaml:"version"`
	Endpoints  Endpoints  `yaml:"endpoints,omitempty"`
	Credential Credential `yaml:"credential,omitempty"`
	HTTP       HTTP       `yaml:"http,omitempty"`
	Settings   Settings   `yaml:"settings,omitempty"`
}

type Endpoints struct {
	AuthURL   string `yaml:"auth-url,omitempty"`
	TokenURL  string `yaml:"token-url,omitempty"`
	RevokeURL string `yaml:"revoke-url,omitempty"`
}

// Credential selects the single source the stored triple is read from.
type Credential struct {
	Store           string `yaml:"store,omitempty"`
	Env             string `yaml:"env,omitempty"`
	File            string `yaml:"file,omitempty"`
	KeychainService string `yaml:"keychain-service,omitempty"`
	KeychainUser    string `yaml:"keychain-user,omitempty"`
}

type HTTP struct {
	CAFile          string `yaml:"ca-file,omitempty"`
	InsecureSkipTLS bool   `yaml:"insecure-skip-tls-verify,omitempty"`
	// Timeout is a Go duration string. Empty means requests never time out.
	Timeout string `yaml:"timeout,omitempty"`
}

type Settings struct {
	OutputFormat string `yaml:"output-format,omitempty"`
}

func DefaultConfig() Config {
	cfg := Config{}
	cfg.ApplyDefaults()
	return cfg
}

func Load(path string) (*Config, error) {
	if path == "" {
		return nil, errors.New("config path is required")
	}
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var cfg Config
	if err := yaml.Unmarshal(content, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	cfg.ApplyDefaults()
	return &cfg, nil
}

// LoadOrDefault behaves like Load but treats a missing file as an empty config.
// gtokenctl is usable without any config file.
func LoadOrDefault(path string) (*Config, error) {
	cfg, err := Load(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			def := DefaultConfig()
			return &def, nil
		}
		return nil, err
	}
	return cfg, nil
}

func (c *Config) ApplyDefaults() {
	if c.Version == "" {
		c.Version = VersionV1
	}
	if c.Endpoints.AuthURL == "" {
		c.Endpoints.AuthURL = DefaultAuthURL
	}
	if c.Endpoints.TokenURL == "" {
		c.Endpoints.TokenURL = DefaultTokenURL
	}
	if c.Endpoints.RevokeURL == "" {
		c.Endpoints.RevokeURL = DefaultRevokeURL
	}
	if c.Credential.Store == "" {
		c.Credential.Store = StoreEnv
	}
	if c.Credential.Env == "" {
		c.Credential.Env = version.CredentialEnv
	}
	if c.Credential.File == "" {
		c.Credential.File = DefaultCredentialPath()
	}
	if c.Credential.KeychainService == "" {
		c.Credential.KeychainService = DefaultKeychainService
	}
	if c.Credential.KeychainUser == "" {
		c.Credential.KeychainUser = DefaultKeychainUser
	}
	if c.Settings.OutputFormat == "" {
		c.Settings.OutputFormat = "text"
	}
}

// RequestTimeout returns the configured HTTP timeout, zero when unset.
func (c *Config) RequestTimeout() (time.Duration, error) {
	if strings.TrimSpace(c.HTTP.Timeout) == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(c.HTTP.Timeout)
	if err != nil {
		return 0, fmt.Errorf("invalid http timeout %q: %w", c.HTTP.Timeout, err)
	}
	if d < 0 {
		return 0, fmt.Errorf("http timeout must not be negative: %s", c.HTTP.Timeout)
	}
	return d, nil
}

func (c *Config) Validate() error {
	if c.Version != VersionV1 {
		return fmt.Errorf("unsupported config version: %s", c.Version)
	}
	endpoints := []struct{ name, raw string }{
		{"auth-url", c.Endpoints.AuthURL},
		{"token-url", c.Endpoints.TokenURL},
		{"revoke-url", c.Endpoints.RevokeURL},
	}
	for _, ep := range endpoints {
		u, err := url.Parse(ep.raw)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return fmt.Errorf("endpoint %s must be an absolute URL: %q", ep.name, ep.raw)
		}
	}
	switch c.Credential.Store {
	case StoreEnv:
		if strings.TrimSpace(c.Credential.Env) == "" {
			return errors.New("credential env name cannot be empty")
		}
	case StoreFile:
		if strings.TrimSpace(c.Credential.File) == "" {
			return errors.New("credential file path cannot be empty")
		}
	case StoreKeychain:
	default:
		return fmt.Errorf("unknown credential store: %s", c.Credential.Store)
	}
	if _, err := c.RequestTimeout(); err != nil {
		return err
	}
	return nil
}
