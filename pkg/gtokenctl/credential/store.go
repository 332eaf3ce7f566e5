package credential

import (
	"fmt"

	"github.com/telekom/gtokenctl/pkg/gtokenctl/config"
)

// NewStore returns the one source selected by cfg. There is no fallback
// between stores.
func NewStore(cfg config.Credential) (Store, error) {
	switch cfg.Store {
	case "", config.StoreEnv:
		return &EnvResolver{Name: cfg.Env}, nil
	case config.StoreFile:
		return &FileResolver{Path: cfg.File}, nil
	case config.StoreKeychain:
		return &KeyringResolver{Service: cfg.KeychainService, User: cfg.KeychainUser}, nil
	default:
		return nil, fmt.Errorf("unknown credential store: %s", cfg.Store)
	}
}
