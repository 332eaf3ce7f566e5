package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/telekom/gtokenctl/pkg/gtokenctl/credential"
	"github.com/telekom/gtokenctl/pkg/gtokenctl/output"
)

// ExitCredentialMissing is the status used when no credential can be resolved.
const ExitCredentialMissing = -1

func runLogin(ctx context.Context, rt *runtimeState) error {
	engine, err := rt.newEngine()
	if err != nil {
		return err
	}
	var store credential.Store
	if rt.save {
		// Check the store before prompting: the authorization code is single-use.
		if store, err = rt.credentialStore(); err != nil {
			return err
		}
		if !store.Writable() {
			return fmt.Errorf("cannot save to %s: %w", store.Source(), credential.ErrReadOnly)
		}
	}

	result, err := engine.Login(ctx)
	if err != nil {
		return err
	}
	if store == nil {
		return nil
	}
	if err := store.Save(ctx, result.Credential); err != nil {
		return fmt.Errorf("login succeeded but the credential was not saved: %w", err)
	}
	_, _ = fmt.Fprintf(rt.ErrWriter(), "Credential saved to %s\n", store.Source())
	return nil
}

func runLogout(ctx context.Context, rt *runtimeState) error {
	store, err := rt.credentialStore()
	if err != nil {
		return err
	}
	engine, err := rt.newEngine()
	if err != nil {
		return err
	}
	if err := engine.Logout(ctx, store); err != nil {
		return rt.credentialError(store, err)
	}
	return nil
}

func runAccessToken(ctx context.Context, rt *runtimeState) error {
	store, err := rt.credentialStore()
	if err != nil {
		return err
	}
	engine, err := rt.newEngine()
	if err != nil {
		return err
	}
	token, err := engine.Token(ctx, store)
	if err != nil {
		return rt.credentialError(store, err)
	}
	format, err := output.ParseFormat(rt.OutputFormat())
	if err != nil {
		return err
	}
	return output.WriteAccessToken(rt.Writer(), format, token)
}

// credentialError turns a missing credential into guidance and the dedicated
// exit status. Other errors pass through.
func (rt *runtimeState) credentialError(store credential.Store, err error) error {
	if !errors.Is(err, credential.ErrNotFound) {
		return err
	}
	_, _ = fmt.Fprintf(rt.ErrWriter(),
		"Cannot find credentials. You can pass them: client id, client secret, and refresh token\n"+
			"as \"client_id,client_secret,refresh_token\" via the %s.\n"+
			"Run gtokenctl --login to obtain them.\n", store.Source())
	return &ExitError{Code: ExitCredentialMissing, Err: err, Reported: true}
}
