package credential

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// FileResolver keeps the serialized triple in a private file.
type FileResolver struct {
	Path string
}

func (f *FileResolver) Resolve(_ context.Context) (string, error) {
	content, err := os.ReadFile(f.Path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", &NotFoundError{Source: f.Source()}
		}
		return "", fmt.Errorf("failed to read credential file: %w", err)
	}
	return strings.TrimSpace(string(content)), nil
}

func (f *FileResolver) Save(_ context.Context, t Triple) error {
	if err := t.Validate(); err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(f.Path), 0o700); err != nil {
		return fmt.Errorf("failed to create credential dir: %w", err)
	}
	return os.WriteFile(f.Path, []byte(t.String()+"\n"), 0o600)
}

func (f *FileResolver) Writable() bool {
	return true
}

func (f *FileResolver) Source() string {
	return fmt.Sprintf("file %s", f.Path)
}
