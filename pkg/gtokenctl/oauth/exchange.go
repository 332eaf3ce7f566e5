package oauth

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// postToken sends a form body to the token endpoint and returns the raw
// response body. The status code is not inspected; error responses are
// recognised by their JSON content.
func (e *Engine) postToken(ctx context.Context, form orderedForm) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, e.endpoints.TokenURL, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("failed to build token request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := e.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("token request failed: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read token response: %w", err)
	}
	e.log.Debugw("Token endpoint responded", "endpoint", e.endpoints.TokenURL, "status", resp.StatusCode, "bytes", len(body))
	return body, nil
}
