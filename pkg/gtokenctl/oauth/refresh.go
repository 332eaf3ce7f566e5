package oauth

import (
	"context"
	"time"

	"golang.org/x/oauth2"

	"github.com/telekom/gtokenctl/pkg/gtokenctl/credential"
)

// GetAccessToken exchanges the stored refresh token for a fresh access token.
func (e *Engine) GetAccessToken(ctx context.Context, r credential.Resolver) (string, error) {
	token, err := e.Token(ctx, r)
	if err != nil {
		return "", err
	}
	return token.AccessToken, nil
}

// Token is GetAccessToken returning the full token, with Expiry derived from
// expires_in.
func (e *Engine) Token(ctx context.Context, r credential.Resolver) (*oauth2.Token, error) {
	triple, err := credential.ResolveTriple(ctx, r)
	if err != nil {
		return nil, err
	}
	form := orderedForm{}.
		add("refresh_token", triple.RefreshToken).
		add("client_id", triple.ClientID).
		add("client_secret", triple.ClientSecret).
		addLiteral("grant_type", "refresh_token")

	e.log.Debugw("Refreshing access token", "clientID", triple.ClientID)
	body, err := e.postToken(ctx, form)
	if err != nil {
		return nil, err
	}
	payload, err := decodeToken(body, "access_token")
	if err != nil {
		return nil, err
	}
	return payload.oauth2Token(time.Now()), nil
}

// TokenSource returns an oauth2.TokenSource backed by the stored credential.
// Tokens are cached in memory until they expire.
func (e *Engine) TokenSource(ctx context.Context, r credential.Resolver) oauth2.TokenSource {
	return oauth2.ReuseTokenSource(nil, &resolverTokenSource{ctx: ctx, engine: e, resolver: r})
}

type resolverTokenSource struct {
	ctx      context.Context
	engine   *Engine
	resolver credential.Resolver
}

func (s *resolverTokenSource) Token() (*oauth2.Token, error) {
	return s.engine.Token(s.ctx, s.resolver)
}
