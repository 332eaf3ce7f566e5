package oauth

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"golang.org/x/oauth2"

	"github.com/telekom/gtokenctl/pkg/gtokenctl/credential"
	"github.com/telekom/gtokenctl/pkg/system"
)

// ClientCredential identifies the installed application.
type ClientCredential struct {
	ClientID     string
	ClientSecret string
}

type LoginResult struct {
	Credential credential.Triple
	Token      *oauth2.Token
	// Email is taken from the unverified id_token when the scope granted one.
	Email string
}

const setupBanner = `
This script requires setting up a Google API project.
If you have not done so, follow these instructions:
1. Visit https://console.developers.google.com
2. Create a new project and go to "API & auth -> credentials".
4. Create an OAuth2 client ID.
5. When picking application type, choose "Installed application", type "Other".
6. Enter the cliend id and client secret below:

`

// Login walks the user through the browser consent flow and prints the
// resulting credential triple.
func (e *Engine) Login(ctx context.Context) (*LoginResult, error) {
	e.print(setupBanner)
	clientID, err := e.prompter.Prompt("Client ID: ")
	if err != nil {
		return nil, err
	}
	clientSecret, err := e.prompter.PromptSecret("Client secret: ")
	if err != nil {
		return nil, err
	}
	e.print("Please go to https://developers.google.com/oauthplayground/\n")
	e.print("and type the scope of your application (e.g analytics)\n")
	scope, err := e.prompter.Prompt("Scope: ")
	if err != nil {
		return nil, err
	}

	e.print("\nPlease open the following URL in the browser to authenticate. " +
		"When successful, the browser will display a code. Enter the code below.\n\n")
	e.print(e.AuthorizationURL(clientID, scope) + "\n\n")
	code, err := e.prompter.Prompt("Code: ")
	if err != nil {
		return nil, err
	}
	e.print("\n")

	result, err := e.ExchangeCode(ctx, ClientCredential{ClientID: clientID, ClientSecret: clientSecret}, code)
	if err != nil {
		return nil, err
	}

	e.print("Login successful.\n\n")
	e.print(`# DSAPI credentials: "client_id,client_secret,refresh_token"` + "\n")
	e.print(fmt.Sprintf("%s,\n%s,\n%s\n\n", result.Credential.ClientID, result.Credential.ClientSecret, result.Credential.RefreshToken))
	if result.Email != "" {
		e.print(fmt.Sprintf("Authenticated as %s\n", result.Email))
	}
	return result, nil
}

// AuthorizationURL builds the consent URL. Only the fixed scope prefix is
// escaped; scope and clientID are inserted verbatim.
func (e *Engine) AuthorizationURL(clientID, scope string) string {
	return withQuery(e.endpoints.AuthURL,
		"scope="+url.QueryEscape(ScopePrefix)+scope+
			"&redirect_uri="+OOBRedirectURI+
			"&response_type=code"+
			"&access_type=offline"+
			"&client_id="+clientID)
}

// ExchangeCode trades an authorization code for a refresh token. It fails
// with a *ResponseError when the response has no refresh_token.
func (e *Engine) ExchangeCode(ctx context.Context, client ClientCredential, code string) (*LoginResult, error) {
	form := orderedForm{}.
		add("code", code).
		add("client_id", client.ClientID).
		add("client_secret", client.ClientSecret).
		addLiteral("redirect_uri", OOBRedirectURI).
		addLiteral("grant_type", "authorization_code")

	e.log.Debugw("Exchanging authorization code", "clientID", client.ClientID, "code", system.Redact(code))
	body, err := e.postToken(ctx, form)
	if err != nil {
		return nil, err
	}
	payload, err := decodeToken(body, "refresh_token")
	if err != nil {
		return nil, err
	}

	result := &LoginResult{
		Credential: credential.Triple{
			ClientID:     client.ClientID,
			ClientSecret: client.ClientSecret,
			RefreshToken: payload.RefreshToken,
		},
		Token: payload.oauth2Token(time.Now()),
		Email: emailFromIDToken(payload.IDToken),
	}
	e.log.Debugw("Received refresh token", "refreshToken", system.Redact(payload.RefreshToken))
	return result, nil
}

// emailFromIDToken reads the email claim without verifying the signature;
// the result is only displayed.
func emailFromIDToken(idToken string) string {
	if idToken == "" {
		return ""
	}
	parser := jwt.Parser{}
	claims := jwt.MapClaims{}
	if _, _, err := parser.ParseUnverified(idToken, claims); err != nil {
		return ""
	}
	if email, ok := claims["email"].(string); ok {
		return email
	}
	return ""
}

func (e *Engine) print(s string) {
	_, _ = fmt.Fprint(e.out, s)
}
