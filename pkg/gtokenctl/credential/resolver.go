package credential

import (
	"context"
	"fmt"
	"os"
	"strings"
)

// Resolver returns the serialized credential from one configured source.
type Resolver interface {
	Resolve(ctx context.Context) (string, error)
}

// Saver persists a credential to a writable source.
type Saver interface {
	Save(ctx context.Context, t Triple) error
}

// Store is a source that can be both read and written.
type Store interface {
	Resolver
	Saver
	// Source describes where the credential lives, for user-facing messages.
	Source() string
	// Writable reports whether Save can succeed at all.
	Writable() bool
}

// ResolverFunc adapts a plain function to Resolver.
type ResolverFunc func(ctx context.Context) (string, error)

func (f ResolverFunc) Resolve(ctx context.Context) (string, error) {
	return f(ctx)
}

// Static returns a Resolver that always yields raw.
func Static(raw string) Resolver {
	return ResolverFunc(func(context.Context) (string, error) {
		return raw, nil
	})
}

// NotFoundError is the configuration error raised when the source is absent.
type NotFoundError struct {
	Source string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("cannot find credentials in %s", e.Source)
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// ResolveTriple resolves and parses a credential. A malformed value fails
// here, before any request is built from it.
func ResolveTriple(ctx context.Context, r Resolver) (Triple, error) {
	raw, err := r.Resolve(ctx)
	if err != nil {
		return Triple{}, err
	}
	return Parse(raw)
}

// EnvResolver reads the credential from a single environment variable.
type EnvResolver struct {
	Name string
	// Lookup defaults to os.LookupEnv.
	Lookup func(key string) (string, bool)
}

func (e *EnvResolver) Resolve(_ context.Context) (string, error) {
	lookup := e.Lookup
	if lookup == nil {
		lookup = os.LookupEnv
	}
	value, ok := lookup(e.Name)
	if !ok {
		return "", &NotFoundError{Source: e.Source()}
	}
	return strings.TrimSpace(value), nil
}

func (e *EnvResolver) Save(context.Context, Triple) error {
	return fmt.Errorf("%w: export %s yourself", ErrReadOnly, e.Name)
}

func (e *EnvResolver) Writable() bool {
	return false
}

func (e *EnvResolver) Source() string {
	return fmt.Sprintf("environment variable %s", e.Name)
}
