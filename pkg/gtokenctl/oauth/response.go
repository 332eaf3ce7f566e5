package oauth

import (
	"encoding/json"
	"fmt"
	"net/url"
	"strings"
	"time"

	"golang.org/x/oauth2"
)

type tokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token,omitempty"`
	TokenType    string `json:"token_type,omitempty"`
	ExpiresIn    int64  `json:"expires_in,omitempty"`
	IDToken      string `json:"id_token,omitempty"`
	Scope        string `json:"scope,omitempty"`
}

// ResponseError is returned when the token endpoint answers without the
// expected field. Body is the raw response, including OAuth error objects
// such as {"error":"invalid_grant"}.
type ResponseError struct {
	Field string
	Body  string
	// Code is the OAuth "error" value when the body carried one.
	Code string
	// Err is set when the body was not a JSON object.
	Err error
}

func (e *ResponseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("failed to parse token response (%v): %s", e.Err, e.Body)
	}
	return fmt.Sprintf("missing %s in response: %s", e.Field, e.Body)
}

func (e *ResponseError) Unwrap() error {
	return e.Err
}

// decodeToken succeeds only when the response object has the field key.
// Presence of the key decides success, not its value.
func decodeToken(body []byte, field string) (*tokenResponse, error) {
	raw := string(body)
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(body, &fields); err != nil {
		return nil, &ResponseError{Field: field, Body: raw, Err: err}
	}
	if _, ok := fields[field]; !ok {
		respErr := &ResponseError{Field: field, Body: raw}
		if code, ok := fields["error"]; ok {
			_ = json.Unmarshal(code, &respErr.Code)
		}
		return nil, respErr
	}
	var payload tokenResponse
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, &ResponseError{Field: field, Body: raw, Err: err}
	}
	return &payload, nil
}

func (p *tokenResponse) oauth2Token(now time.Time) *oauth2.Token {
	token := &oauth2.Token{
		AccessToken:  p.AccessToken,
		RefreshToken: p.RefreshToken,
		TokenType:    p.TokenType,
	}
	if p.ExpiresIn > 0 {
		token.Expiry = now.Add(time.Duration(p.ExpiresIn) * time.Second)
	}
	extra := map[string]interface{}{}
	if p.IDToken != "" {
		extra["id_token"] = p.IDToken
	}
	if p.Scope != "" {
		extra["scope"] = p.Scope
	}
	if len(extra) > 0 {
		token = token.WithExtra(extra)
	}
	return token
}

// formField is one key/value of a form body. Literal values are written as-is.
type formField struct {
	key     string
	value   string
	literal bool
}

// orderedForm encodes a form body keeping insertion order, which
// url.Values.Encode does not.
type orderedForm []formField

func (f orderedForm) add(key, value string) orderedForm {
	return append(f, formField{key: key, value: value})
}

func (f orderedForm) addLiteral(key, value string) orderedForm {
	return append(f, formField{key: key, value: value, literal: true})
}

func (f orderedForm) Encode() string {
	var sb strings.Builder
	for i, field := range f {
		if i > 0 {
			sb.WriteByte('&')
		}
		sb.WriteString(field.key)
		sb.WriteByte('=')
		if field.literal {
			sb.WriteString(field.value)
		} else {
			sb.WriteString(url.QueryEscape(field.value))
		}
	}
	return sb.String()
}
