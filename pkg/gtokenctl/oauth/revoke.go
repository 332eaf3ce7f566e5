package oauth

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/telekom/gtokenctl/pkg/gtokenctl/credential"
	"github.com/telekom/gtokenctl/pkg/system"
)

// Logout revokes the stored refresh token. The response is discarded, so a
// rejected revocation is indistinguishable from a successful one; only
// transport failures are reported. The stored triple is left in place.
func (e *Engine) Logout(ctx context.Context, r credential.Resolver) error {
	triple, err := credential.ResolveTriple(ctx, r)
	if err != nil {
		return err
	}
	// The token is appended unescaped.
	target := withQuery(e.endpoints.RevokeURL, "token="+triple.RefreshToken)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return fmt.Errorf("failed to build revoke request: %w", err)
	}

	e.log.Debugw("Revoking refresh token", "endpoint", e.endpoints.RevokeURL, "refreshToken", system.Redact(triple.RefreshToken))
	resp, err := e.client.Do(req)
	if err != nil {
		return fmt.Errorf("revoke request failed: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()
	_, _ = io.Copy(io.Discard, resp.Body)
	e.log.Debugw("Revoke endpoint responded", "status", resp.StatusCode)
	return nil
}
