package cmd

import (
	"context"
	"errors"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/telekom/gtokenctl/pkg/gtokenctl/config"
	"github.com/telekom/gtokenctl/pkg/gtokenctl/credential"
	"github.com/telekom/gtokenctl/pkg/gtokenctl/oauth"
	"github.com/telekom/gtokenctl/pkg/gtokenctl/output"
	"github.com/telekom/gtokenctl/pkg/system"
	"github.com/telekom/gtokenctl/pkg/version"
)

type Config struct {
	ConfigPath   string
	OutputWriter io.Writer
	ErrorWriter  io.Writer
	Input        io.Reader
	// HTTPClient replaces the client built from config, mainly for tests.
	HTTPClient oauth.Doer
	// LookupEnv replaces os.LookupEnv for the env credential store.
	LookupEnv func(key string) (string, bool)
}

type runtimeState struct {
	configPath   string
	cfg          *config.Config
	credStore    string
	credEnv      string
	credFile     string
	outputFormat string
	caFile       string
	timeout      string
	insecure     bool
	save         bool
	verbose      bool

	login       bool
	logout      bool
	accessToken bool

	writer     io.Writer
	errWriter  io.Writer
	input      io.Reader
	httpClient oauth.Doer
	lookupEnv  func(key string) (string, bool)
	log        *zap.SugaredLogger
}

type runtimeKey struct{}

func DefaultConfig() Config {
	return Config{
		ConfigPath:   config.DefaultConfigPath(),
		OutputWriter: os.Stdout,
		ErrorWriter:  os.Stderr,
		Input:        os.Stdin,
	}
}

func NewRootCommand(cfg Config) *cobra.Command {
	rt := &runtimeState{
		configPath: cfg.ConfigPath,
		writer:     cfg.OutputWriter,
		errWriter:  cfg.ErrorWriter,
		input:      cfg.Input,
		httpClient: cfg.HTTPClient,
		lookupEnv:  cfg.LookupEnv,
	}

	root := &cobra.Command{
		Use:   "gtokenctl",
		Short: "Obtain, use and revoke a Google OAuth2 refresh token",
		Long: `gtokenctl bootstraps credentials for a Google installed-application OAuth2 client.

--login walks through the browser consent flow and prints the credential as
"client_id,client_secret,refresh_token". Store it in the ` + version.CredentialEnv + ` environment
variable (or a file/keychain store). --access-token exchanges it for a short-lived
access token and --logout revokes the refresh token.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return rt.init(cmd)
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			switch {
			case rt.login:
				return runLogin(cmd.Context(), rt)
			case rt.logout:
				return runLogout(cmd.Context(), rt)
			case rt.accessToken:
				return runAccessToken(cmd.Context(), rt)
			default:
				return cmd.Help()
			}
		},
	}

	root.Flags().BoolVar(&rt.login, "login", false, "Generates a refresh token that does not expire over time.")
	root.Flags().BoolVar(&rt.logout, "logout", false, "Invalidates a refresh token.")
	root.Flags().BoolVar(&rt.accessToken, "access-token", false, "Prints a fresh access token for the stored credential.")
	root.Flags().BoolVar(&rt.save, "save", false, "With --login, also write the credential to the configured store")

	root.PersistentFlags().StringVar(&rt.configPath, "config", rt.configPath, "Path to config file")
	root.PersistentFlags().StringVar(&rt.credStore, "cred-store", "", "Credential store: env, file or keychain")
	root.PersistentFlags().StringVar(&rt.credEnv, "cred-env", "", "Environment variable holding the credential (default "+version.CredentialEnv+")")
	root.PersistentFlags().StringVar(&rt.credFile, "cred-file", "", "Credential file used by the file store")
	root.PersistentFlags().StringVarP(&rt.outputFormat, "output", "o", "", "Output format: text, json, yaml")
	root.PersistentFlags().StringVar(&rt.caFile, "ca-file", "", "PEM bundle to trust for the authorization server")
	root.PersistentFlags().BoolVar(&rt.insecure, "insecure-skip-tls-verify", false, "Skip TLS verification of the authorization server")
	root.PersistentFlags().StringVar(&rt.timeout, "timeout", "", "HTTP request timeout, e.g. 30s (default: none)")
	root.PersistentFlags().BoolVarP(&rt.verbose, "verbose", "v", false, "Enable debug logging on stderr")

	root.SetOut(rt.Writer())
	root.SetErr(rt.ErrWriter())
	root.SetContext(context.WithValue(context.Background(), runtimeKey{}, rt))

	root.AddCommand(
		NewCompletionCommand(),
		NewVersionCommand(),
	)

	return root
}

func (rt *runtimeState) init(cmd *cobra.Command) error {
	if rt.configPath == "" {
		rt.configPath = config.DefaultConfigPath()
	}
	if rt.credStore == "" {
		rt.credStore = os.Getenv("GTOKENCTL_CRED_STORE")
	}
	if rt.outputFormat == "" {
		rt.outputFormat = os.Getenv("GTOKENCTL_OUTPUT")
	}
	if !rt.verbose {
		rt.verbose = strings.EqualFold(os.Getenv("GTOKENCTL_VERBOSE"), "true")
	}

	log, err := system.NewCLILogger(rt.verbose)
	if err != nil {
		return err
	}
	rt.log = log

	// Skip config loading for commands that don't need it
	switch cmd.Name() {
	case "version", "completion", "help", cobra.ShellCompRequestCmd:
		return nil
	}
	if !cmd.HasParent() && !rt.runsOperation() {
		// bare invocation only prints help
		return nil
	}

	cfg, err := config.LoadOrDefault(rt.configPath)
	if err != nil {
		return err
	}
	rt.applyOverrides(cfg)
	if err := cfg.Validate(); err != nil {
		return err
	}
	if _, err := output.ParseFormat(rt.OutputFormat()); err != nil {
		return err
	}
	rt.cfg = cfg
	rt.log.Debugw("Configuration loaded", "path", rt.configPath, "store", cfg.Credential.Store, "tokenURL", cfg.Endpoints.TokenURL)
	return nil
}

func (rt *runtimeState) runsOperation() bool {
	return rt.login || rt.logout || rt.accessToken
}

func (rt *runtimeState) applyOverrides(cfg *config.Config) {
	if rt.credStore != "" {
		cfg.Credential.Store = rt.credStore
	}
	if rt.credEnv != "" {
		cfg.Credential.Env = rt.credEnv
	}
	if rt.credFile != "" {
		cfg.Credential.File = rt.credFile
	}
	if rt.caFile != "" {
		cfg.HTTP.CAFile = rt.caFile
	}
	if rt.insecure {
		cfg.HTTP.InsecureSkipTLS = true
	}
	if rt.timeout != "" {
		cfg.HTTP.Timeout = rt.timeout
	}
}

func getRuntime(cmd *cobra.Command) (*runtimeState, error) {
	rt, ok := cmd.Context().Value(runtimeKey{}).(*runtimeState)
	if !ok || rt == nil {
		return nil, errors.New("runtime not initialized")
	}
	return rt, nil
}

func (rt *runtimeState) OutputFormat() string {
	if rt.outputFormat != "" {
		return rt.outputFormat
	}
	if rt.cfg != nil && rt.cfg.Settings.OutputFormat != "" {
		return rt.cfg.Settings.OutputFormat
	}
	return string(output.FormatText)
}

func (rt *runtimeState) Writer() io.Writer {
	if rt.writer != nil {
		return rt.writer
	}
	return os.Stdout
}

func (rt *runtimeState) ErrWriter() io.Writer {
	if rt.errWriter != nil {
		return rt.errWriter
	}
	return os.Stderr
}

func (rt *runtimeState) Logger() *zap.SugaredLogger {
	if rt.log != nil {
		return rt.log
	}
	return zap.NewNop().Sugar()
}

func (rt *runtimeState) newEngine() (*oauth.Engine, error) {
	if rt.cfg == nil {
		return nil, errors.New("config not loaded")
	}
	client := rt.httpClient
	if client == nil {
		timeout, err := rt.cfg.RequestTimeout()
		if err != nil {
			return nil, err
		}
		httpClient, err := oauth.NewHTTPClient(oauth.HTTPOptions{
			CAFile:          rt.cfg.HTTP.CAFile,
			InsecureSkipTLS: rt.cfg.HTTP.InsecureSkipTLS,
			Timeout:         timeout,
			UserAgent:       "gtokenctl/" + version.Version,
		})
		if err != nil {
			return nil, err
		}
		client = httpClient
	}

	endpoints := oauth.GoogleEndpoints()
	endpoints.AuthURL = rt.cfg.Endpoints.AuthURL
	endpoints.TokenURL = rt.cfg.Endpoints.TokenURL
	endpoints.RevokeURL = rt.cfg.Endpoints.RevokeURL

	input := rt.input
	if input == nil {
		input = os.Stdin
	}
	return oauth.NewEngine(
		oauth.WithHTTPClient(client),
		oauth.WithEndpoints(endpoints),
		oauth.WithLogger(rt.Logger()),
		oauth.WithOutput(rt.Writer()),
		oauth.WithPrompter(oauth.NewConsolePrompter(input, rt.Writer())),
	), nil
}

func (rt *runtimeState) credentialStore() (credential.Store, error) {
	if rt.cfg == nil {
		return nil, errors.New("config not loaded")
	}
	store, err := credential.NewStore(rt.cfg.Credential)
	if err != nil {
		return nil, err
	}
	if env, ok := store.(*credential.EnvResolver); ok && rt.lookupEnv != nil {
		env.Lookup = rt.lookupEnv
	}
	return store, nil
}
