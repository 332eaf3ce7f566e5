package credential

import (
	"context"
	"errors"
	"fmt"

	"github.com/zalando/go-keyring"
)

// KeyringResolver keeps the serialized triple in the OS keychain
// (macOS Keychain, Secret Service, Windows Credential Manager).
type KeyringResolver struct {
	Service string
	User    string
}

func (k *KeyringResolver) Resolve(_ context.Context) (string, error) {
	secret, err := keyring.Get(k.Service, k.User)
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return "", &NotFoundError{Source: k.Source()}
		}
		return "", fmt.Errorf("failed to read keychain: %w", err)
	}
	return secret, nil
}

func (k *KeyringResolver) Save(_ context.Context, t Triple) error {
	if err := t.Validate(); err != nil {
		return err
	}
	if err := keyring.Set(k.Service, k.User, t.String()); err != nil {
		return fmt.Errorf("failed to write keychain: %w", err)
	}
	return nil
}

func (k *KeyringResolver) Writable() bool {
	return true
}

func (k *KeyringResolver) Source() string {
	return fmt.Sprintf("keychain entry %s/%s", k.Service, k.User)
}
