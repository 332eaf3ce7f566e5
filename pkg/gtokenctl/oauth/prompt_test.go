package oauth

import (
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConsolePrompter(t *testing.T) {
	out := &bytes.Buffer{}
	p := NewConsolePrompter(strings.NewReader("  CID  \nSEC\r\nlast"), out)

	id, err := p.Prompt("Client ID: ")
	require.NoError(t, err)
	assert.Equal(t, "CID", id)

	secret, err := p.PromptSecret("Client secret: ")
	require.NoError(t, err)
	assert.Equal(t, "SEC", secret)

	last, err := p.Prompt("Scope: ")
	require.NoError(t, err)
	assert.Equal(t, "last", last, "a final line without newline is accepted")

	_, err = p.Prompt("Code: ")
	require.Error(t, err)
	assert.ErrorIs(t, err, io.ErrUnexpectedEOF)
	assert.Contains(t, err.Error(), `"Code:"`)

	assert.Equal(t, "Client ID: Client secret: Scope: Code: ", out.String())
}

type brokenReader struct{ err error }

func (r brokenReader) Read([]byte) (int, error) { return 0, r.err }

func TestConsolePrompterKeepsReadError(t *testing.T) {
	boom := errors.New("input closed")
	p := NewConsolePrompter(brokenReader{err: boom}, io.Discard)

	_, err := p.Prompt("Client ID: ")
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
	assert.NotErrorIs(t, err, io.ErrUnexpectedEOF)
}
