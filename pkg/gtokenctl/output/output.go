package output

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"golang.org/x/oauth2"
	"gopkg.in/yaml.v3"
)

type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case "", FormatText:
		return FormatText, nil
	case FormatJSON, FormatYAML:
		return f, nil
	default:
		return "", fmt.Errorf("unknown output format: %s", s)
	}
}

func WriteObject(w io.Writer, format Format, obj any) error {
	switch format {
	case FormatJSON:
		data, err := json.MarshalIndent(obj, "", "  ")
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(w, string(data))
		return err
	case FormatYAML:
		data, err := yaml.Marshal(obj)
		if err != nil {
			return err
		}
		_, err = fmt.Fprint(w, string(data))
		return err
	case FormatText:
		return fmt.Errorf("text format requires a specific formatter")
	default:
		return fmt.Errorf("unknown output format: %s", format)
	}
}

// AccessToken is the structured form of a freshly issued token.
type AccessToken struct {
	AccessToken string     `json:"access_token" yaml:"access_token"`
	TokenType   string     `json:"token_type,omitempty" yaml:"token_type,omitempty"`
	Expiry      *time.Time `json:"expiry,omitempty" yaml:"expiry,omitempty"`
}

// WriteAccessToken prints the bare token for text output so it can be used
// in command substitution, e.g. curl -H "Authorization: Bearer $(gtokenctl --access-token)".
func WriteAccessToken(w io.Writer, format Format, token *oauth2.Token) error {
	if token == nil {
		return fmt.Errorf("no token to write")
	}
	if format == FormatText {
		_, err := fmt.Fprintln(w, token.AccessToken)
		return err
	}
	obj := AccessToken{AccessToken: token.AccessToken, TokenType: token.TokenType}
	if !token.Expiry.IsZero() {
		expiry := token.Expiry.UTC()
		obj.Expiry = &expiry
	}
	return WriteObject(w, format, obj)
}
