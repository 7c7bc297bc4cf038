package slot

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// LocalOpener stores each slot as one JSON file under a base directory.
// This is the default backend for development and single-machine use.
type LocalOpener struct {
	basePath string
}

// NewLocalOpener creates a filesystem slot backend rooted at basePath
// (created if it doesn't exist).
func NewLocalOpener(basePath string) (*LocalOpener, error) {
	if basePath == "" {
		basePath = "."
	}
	if err := os.MkdirAll(basePath, 0755); err != nil {
		return nil, fmt.Errorf("failed to create slot directory: %w", err)
	}

	return &LocalOpener{basePath: basePath}, nil
}

// Open returns a slot backed by <basePath>/<name>.json.
func (o *LocalOpener) Open(name string) (Slot, error) {
	return &localSlot{path: filepath.Join(o.basePath, name+".json")}, nil
}

type localSlot struct {
	path string
}

func (s *localSlot) Read(ctx context.Context) ([]byte, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrEmpty
		}
		return nil, fmt.Errorf("failed to read slot file: %w", err)
	}
	return data, nil
}

// Write replaces the slot file atomically: the new value lands in a temp
// file first, then renames over the old one, so a crash never leaves a
// half-written cart behind.
func (s *localSlot) Write(ctx context.Context, data []byte) error {
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("failed to write slot file: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("failed to replace slot file: %w", err)
	}
	return nil
}

func (s *localSlot) Clear(ctx context.Context) error {
	err := os.Remove(s.path)
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to clear slot file: %w", err)
	}
	return nil
}
