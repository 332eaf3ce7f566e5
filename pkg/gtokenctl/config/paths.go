package config

import (
	"os"
	"path/filepath"
)

const (
	defaultConfigDirName  = "gtokenctl"
	defaultConfigFile     = "config.yaml"
	defaultCredentialFile = "credential"
)

func DefaultConfigPath() string {
	if env := os.Getenv("GTOKENCTL_CONFIG"); env != "" {
		return env
	}
	base, err := os.UserConfigDir()
	if err == nil {
		return filepath.Join(base, defaultConfigDirName, defaultConfigFile)
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".gtokenctl", defaultConfigFile)
}

// DefaultCredentialPath is where the file store keeps the serialized triple
// when no credential.file is configured.
func DefaultCredentialPath() string {
	base, err := os.UserConfigDir()
	if err == nil {
		return filepath.Join(base, defaultConfigDirName, defaultCredentialFile)
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".gtokenctl", defaultCredentialFile)
}
