package oauth

import (
	"bytes"
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/telekom/gtokenctl/pkg/gtokenctl/credential"
)

func TestLogout(t *testing.T) {
	ts := newTokenServer(t, map[string]string{"/o/oauth2/revoke": `{}`})
	out := &bytes.Buffer{}

	require.NoError(t, ts.engine(out).Logout(context.Background(), credential.Static("CID,SEC,R1")))

	reqs := ts.recorded()
	require.Len(t, reqs, 1)
	assert.Equal(t, http.MethodGet, reqs[0].Method)
	assert.Equal(t, "/o/oauth2/revoke", reqs[0].Path)
	assert.Equal(t, "token=R1", reqs[0].Query)
	assert.Empty(t, out.String())
}

func TestLogoutDoesNotEscapeToken(t *testing.T) {
	ts := newTokenServer(t, map[string]string{"/o/oauth2/revoke": `{}`})

	require.NoError(t, ts.engine(&bytes.Buffer{}).Logout(context.Background(), credential.Static("CID,SEC,1//0abc-DEF_g")))

	reqs := ts.recorded()
	require.Len(t, reqs, 1)
	assert.Equal(t, "token=1//0abc-DEF_g", reqs[0].Query)
}

func TestLogoutWithExistingQuery(t *testing.T) {
	ts := newTokenServer(t, map[string]string{"/o/oauth2/revoke": `{}`})
	endpoints := ts.endpoints()
	endpoints.RevokeURL += "?hd=example.com"

	require.NoError(t, ts.engine(&bytes.Buffer{}, WithEndpoints(endpoints)).Logout(context.Background(), credential.Static("CID,SEC,R1")))

	reqs := ts.recorded()
	require.Len(t, reqs, 1)
	assert.Equal(t, "/o/oauth2/revoke", reqs[0].Path)
	assert.Equal(t, "hd=example.com&token=R1", reqs[0].Query)
}

func TestLogoutIgnoresServerRejection(t *testing.T) {
	ts := newTokenServer(t, map[string]string{"/o/oauth2/revoke": `{"error":"invalid_token"}`})
	ts.status = http.StatusBadRequest

	assert.NoError(t, ts.engine(&bytes.Buffer{}).Logout(context.Background(), credential.Static("CID,SEC,R1")))
	assert.Len(t, ts.recorded(), 1)
}

func TestLogoutTransportError(t *testing.T) {
	doer := &failingDoer{}
	e := NewEngine(WithHTTPClient(doer), WithOutput(&bytes.Buffer{}))

	err := e.Logout(context.Background(), credential.Static("CID,SEC,R1"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "revoke request failed")
	assert.Equal(t, 1, doer.calls)
}

func TestLogoutMalformedCredential(t *testing.T) {
	doer := &failingDoer{}
	e := NewEngine(WithHTTPClient(doer), WithOutput(&bytes.Buffer{}))

	err := e.Logout(context.Background(), credential.Static("R1"))
	require.ErrorIs(t, err, credential.ErrMalformed)
	assert.Zero(t, doer.calls)
}
