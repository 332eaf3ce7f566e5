package oauth

import (
	"io"
	"net/http"
	"os"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/oauth2"

	"github.com/telekom/gtokenctl/pkg/gtokenctl/config"
)

const (
	// OOBRedirectURI makes the authorization server display the code in the
	// browser instead of redirecting.
	OOBRedirectURI = "urn:ietf:wg:oauth:2.0:oob"
	// ScopePrefix is prepended to the bare scope name the user enters.
	ScopePrefix = "https://www.googleapis.com/auth/"
)

// Doer issues a single HTTP request. *http.Client satisfies it.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Endpoints are the authorization server URLs used by the engine.
type Endpoints struct {
	oauth2.Endpoint
	RevokeURL string
}

// GoogleEndpoints returns the endpoints of the legacy installed-application flow.
func GoogleEndpoints() Endpoints {
	return Endpoints{
		Endpoint: oauth2.Endpoint{
			AuthURL:   config.DefaultAuthURL,
			TokenURL:  config.DefaultTokenURL,
			AuthStyle: oauth2.AuthStyleInParams,
		},
		RevokeURL: config.DefaultRevokeURL,
	}
}

// Engine runs the OAuth flows. It holds no state between calls.
type Engine struct {
	client    Doer
	endpoints Endpoints
	log       *zap.SugaredLogger
	prompter  Prompter
	out       io.Writer
}

type Option func(*Engine)

func WithHTTPClient(client Doer) Option {
	return func(e *Engine) {
		if client != nil {
			e.client = client
		}
	}
}

func WithEndpoints(endpoints Endpoints) Option {
	return func(e *Engine) {
		e.endpoints = endpoints
	}
}

func WithLogger(log *zap.SugaredLogger) Option {
	return func(e *Engine) {
		if log != nil {
			e.log = log
		}
	}
}

func WithPrompter(p Prompter) Option {
	return func(e *Engine) {
		if p != nil {
			e.prompter = p
		}
	}
}

// WithOutput sets where login instructions and the resulting credential are written.
func WithOutput(w io.Writer) Option {
	return func(e *Engine) {
		if w != nil {
			e.out = w
		}
	}
}

func NewEngine(opts ...Option) *Engine {
	e := &Engine{
		client:    &http.Client{},
		endpoints: GoogleEndpoints(),
		log:       zap.NewNop().Sugar(),
		out:       os.Stdout,
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.prompter == nil {
		e.prompter = NewConsolePrompter(os.Stdin, e.out)
	}
	return e
}

func (e *Engine) Endpoints() Endpoints {
	return e.endpoints
}

// withQuery appends a raw query to base, which may already carry one.
func withQuery(base, query string) string {
	if strings.Contains(base, "?") {
		return base + "&" + query
	}
	return base + "?" + query
}
