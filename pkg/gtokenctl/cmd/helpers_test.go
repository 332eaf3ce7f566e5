package cmd

import (
	"bytes"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

type fakeGoogle struct {
	*httptest.Server
	mu       sync.Mutex
	requests []string
	token    string
}

// newFakeGoogle answers the token endpoint with tokenBody and the revoke
// endpoint with an empty object. Requests are recorded as "METHOD path?query body".
func newFakeGoogle(t *testing.T, tokenBody string) *fakeGoogle {
	t.Helper()
	fg := &fakeGoogle{token: tokenBody}
	fg.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		line := r.Method + " " + r.URL.Path
		if r.URL.RawQuery != "" {
			line += "?" + r.URL.RawQuery
		}
		if len(body) > 0 {
			line += " " + string(body)
		}
		fg.mu.Lock()
		fg.requests = append(fg.requests, line)
		tokenBody := fg.token
		fg.mu.Unlock()

		switch r.URL.Path {
		case "/o/oauth2/token":
			w.Header().Set("Content-Type", "application/json")
			_, _ = io.WriteString(w, tokenBody)
		case "/o/oauth2/revoke":
			_, _ = io.WriteString(w, "{}")
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	t.Cleanup(fg.Close)
	return fg
}

func (fg *fakeGoogle) setTokenBody(body string) {
	fg.mu.Lock()
	defer fg.mu.Unlock()
	fg.token = body
}

func (fg *fakeGoogle) recorded() []string {
	fg.mu.Lock()
	defer fg.mu.Unlock()
	return append([]string(nil), fg.requests...)
}

// configFor writes a config file pointing all endpoints at fg.
func configFor(t *testing.T, fg *fakeGoogle, extra string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := "version: v1\nendpoints:\n" +
		"  auth-url: " + fg.URL + "/o/oauth2/auth\n" +
		"  token-url: " + fg.URL + "/o/oauth2/token\n" +
		"  revoke-url: " + fg.URL + "/o/oauth2/revoke\n" + extra
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

type harness struct {
	stdout *bytes.Buffer
	stderr *bytes.Buffer
	env    map[string]string
}

func (h *harness) lookup(key string) (string, bool) {
	v, ok := h.env[key]
	return v, ok
}

// execute runs the root command against fg with the given stdin and args.
func execute(t *testing.T, fg *fakeGoogle, configPath string, env map[string]string, stdin string, args ...string) (*harness, error) {
	t.Helper()
	t.Setenv("GTOKENCTL_CRED_STORE", "")
	t.Setenv("GTOKENCTL_OUTPUT", "")
	t.Setenv("GTOKENCTL_VERBOSE", "")
	h := &harness{stdout: &bytes.Buffer{}, stderr: &bytes.Buffer{}, env: env}
	cfg := Config{
		ConfigPath:   configPath,
		OutputWriter: h.stdout,
		ErrorWriter:  h.stderr,
		Input:        strings.NewReader(stdin),
		LookupEnv:    h.lookup,
	}
	if fg != nil {
		cfg.HTTPClient = fg.Client()
	}
	root := NewRootCommand(cfg)
	root.SetArgs(args)
	return h, root.Execute()
}
