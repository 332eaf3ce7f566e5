package credential

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNotFound reports that the configured source holds no credential.
	ErrNotFound = errors.New("credential not found")
	// ErrMalformed reports a credential that does not split into exactly three fields.
	ErrMalformed = errors.New("malformed credential")
	// ErrReadOnly is returned when saving to a source that cannot be written.
	ErrReadOnly = errors.New("credential store is read-only")
)

const fieldSeparator = ","

// Triple is the durable artifact produced by login and consumed by every
// other operation.
type Triple struct {
	ClientID     string `json:"client_id" yaml:"client_id"`
	ClientSecret string `json:"client_secret" yaml:"client_secret"`
	RefreshToken string `json:"refresh_token" yaml:"refresh_token"`
}

// Parse splits a serialized credential. Surrounding whitespace of the whole
// value is dropped; fields are taken verbatim. Commas are never escaped, so a
// field containing one cannot round-trip.
func Parse(raw string) (Triple, error) {
	fields := strings.Split(strings.TrimSpace(raw), fieldSeparator)
	if len(fields) != 3 {
		return Triple{}, fmt.Errorf("%w: expected client_id,client_secret,refresh_token but got %d field(s)", ErrMalformed, len(fields))
	}
	return Triple{
		ClientID:     fields[0],
		ClientSecret: fields[1],
		RefreshToken: fields[2],
	}, nil
}

func (t Triple) String() string {
	return strings.Join([]string{t.ClientID, t.ClientSecret, t.RefreshToken}, fieldSeparator)
}

// Validate reports whether the triple survives a String/Parse round trip.
func (t Triple) Validate() error {
	fields := []struct{ name, value string }{
		{"client_id", t.ClientID},
		{"client_secret", t.ClientSecret},
		{"refresh_token", t.RefreshToken},
	}
	for _, f := range fields {
		if strings.Contains(f.value, fieldSeparator) {
			return fmt.Errorf("%w: %s contains a comma", ErrMalformed, f.name)
		}
	}
	return nil
}
