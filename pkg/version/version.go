package version

import (
	"runtime"
	"time"
)

var (
	// Version is the semantic version, injected at build time via -ldflags
	Version = "dev"
	// GitCommit is the git commit hash, injected at build time
	GitCommit = "unknown"
	// BuildDate is the build timestamp, injected at build time
	BuildDate = "unknown"
	// CredentialEnv names the environment variable holding the stored credential.
	// Deployments that share a host with other tools override it via
	// -ldflags "-X github.com/telekom/gtokenctl/pkg/version.CredentialEnv=NAME".
	CredentialEnv = "DSAPICRED"
)

// BuildInfo contains metadata about the build
type BuildInfo struct {
	Version       string    `json:"version" yaml:"version"`
	GitCommit     string    `json:"gitCommit" yaml:"gitCommit"`
	BuildDate     string    `json:"buildDate" yaml:"buildDate"`
	GoVersion     string    `json:"goVersion" yaml:"goVersion"`
	Platform      string    `json:"platform" yaml:"platform"`
	CredentialEnv string    `json:"credentialEnv" yaml:"credentialEnv"`
	BuildTime     time.Time `json:"buildTime,omitempty" yaml:"buildTime,omitempty"`
}

// GetBuildInfo returns build metadata
func GetBuildInfo() BuildInfo {
	info := BuildInfo{
		Version:       Version,
		GitCommit:     GitCommit,
		BuildDate:     BuildDate,
		GoVersion:     runtime.Version(),
		Platform:      runtime.GOOS + "/" + runtime.GOARCH,
		CredentialEnv: CredentialEnv,
	}

	if t, err := time.Parse(time.RFC3339, BuildDate); err == nil {
		info.BuildTime = t
	}

	return info
}
