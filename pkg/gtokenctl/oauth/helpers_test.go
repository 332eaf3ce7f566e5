package oauth

import (
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/telekom/gtokenctl/pkg/system/systemtest"
)

type recordedRequest struct {
	Method string
	Path   string
	Query  string
	Body   string
	Header http.Header
}

// tokenServer stands in for the authorization server. Every request is
// recorded and answered with the configured body for its path.
type tokenServer struct {
	*httptest.Server
	mu        sync.Mutex
	requests  []recordedRequest
	responses map[string]string
	status    int
	t         *testing.T
}

func newTokenServer(t *testing.T, responses map[string]string) *tokenServer {
	t.Helper()
	ts := &tokenServer{responses: responses, status: http.StatusOK, t: t}
	ts.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		ts.mu.Lock()
		ts.requests = append(ts.requests, recordedRequest{
			Method: r.Method,
			Path:   r.URL.Path,
			Query:  r.URL.RawQuery,
			Body:   string(body),
			Header: r.Header.Clone(),
		})
		status := ts.status
		ts.mu.Unlock()

		resp, ok := responses[r.URL.Path]
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = io.WriteString(w, resp)
	}))
	t.Cleanup(ts.Close)
	return ts
}

func (ts *tokenServer) endpoints() Endpoints {
	e := GoogleEndpoints()
	e.AuthURL = ts.URL + "/o/oauth2/auth"
	e.TokenURL = ts.URL + "/o/oauth2/token"
	e.RevokeURL = ts.URL + "/o/oauth2/revoke"
	return e
}

func (ts *tokenServer) recorded() []recordedRequest {
	ts.mu.Lock()
	defer ts.mu.Unlock()
	return append([]recordedRequest(nil), ts.requests...)
}

func (ts *tokenServer) engine(out io.Writer, opts ...Option) *Engine {
	base := []Option{
		WithHTTPClient(ts.Client()),
		WithEndpoints(ts.endpoints()),
		WithOutput(out),
		WithLogger(systemtest.NewTestLogger(ts.t)),
	}
	return NewEngine(append(base, opts...)...)
}

// scriptedPrompter answers prompts from a fixed list and remembers the labels.
type scriptedPrompter struct {
	answers []string
	labels  []string
	secrets []string
}

func (p *scriptedPrompter) Prompt(label string) (string, error) {
	p.labels = append(p.labels, label)
	if len(p.answers) == 0 {
		return "", errors.New("unexpected prompt " + label)
	}
	answer := p.answers[0]
	p.answers = p.answers[1:]
	return answer, nil
}

func (p *scriptedPrompter) PromptSecret(label string) (string, error) {
	p.secrets = append(p.secrets, label)
	return p.Prompt(label)
}

// failingDoer fails every request and counts the attempts.
type failingDoer struct {
	calls int
}

func (d *failingDoer) Do(*http.Request) (*http.Response, error) {
	d.calls++
	return nil, errors.New("connection refused")
}
