// Package storage provides the durable key-value contract the profile
// store persists through: synchronous Get/Set with string keys and opaque
// byte values. The file adapter keeps one yaml file per key underneath an
// xdg data directory; the memory adapter backs tests.
package storage

import (
	"errors"
	"fmt"
	"os"
	"path"

	c "git.cmcode.dev/cmcode/savings-challenge-tui/constants"

	"github.com/adrg/xdg"
)

// ErrNotFound is returned by Get when no value has ever been stored under
// the key. Callers treat it as "start from empty", not as a failure.
var ErrNotFound = errors.New("no value stored for key")

type Adapter interface {
	Get(key string) ([]byte, error)
	Set(key string, value []byte) error
}

// FileAdapter stores each key as <dir>/<key>.yml.
type FileAdapter struct {
	dir string
}

// NewFileAdapter creates the backing directory if needed. An empty dir
// selects the default location under the xdg data home.
func NewFileAdapter(dir string) (*FileAdapter, error) {
	if dir == "" {
		dir = path.Join(xdg.DataHome, c.DefaultDataParentDir)
	}

	err := os.MkdirAll(dir, 0o755)
	if err != nil {
		return nil, fmt.Errorf("failed to make all directories %v: %w", dir, err)
	}

	return &FileAdapter{dir: dir}, nil
}

// Dir returns the directory backing this adapter.
func (f *FileAdapter) Dir() string {
	return f.dir
}

func (f *FileAdapter) file(key string) string {
	return path.Join(f.dir, fmt.Sprintf("%v.yml", key))
}

func (f *FileAdapter) Get(key string) ([]byte, error) {
	b, err := os.ReadFile(f.file(key))
	if errors.Is(err, os.ErrNotExist) {
		return nil, ErrNotFound
	}

	if err != nil {
		return nil, fmt.Errorf("failed to read %v: %w", f.file(key), err)
	}

	return b, nil
}

func (f *FileAdapter) Set(key string, value []byte) error {
	//nolint:gosec
	err := os.WriteFile(f.file(key), value, 0o644)
	if err != nil {
		return fmt.Errorf("failed to write %v: %w", f.file(key), err)
	}

	return nil
}

// MemAdapter is an in-memory Adapter for tests.
type MemAdapter struct {
	values map[string][]byte

	// FailWrites makes every Set return an error, for exercising the
	// non-fatal persistence failure path.
	FailWrites bool
}

func NewMemAdapter() *MemAdapter {
	return &MemAdapter{values: make(map[string][]byte)}
}

func (m *MemAdapter) Get(key string) ([]byte, error) {
	b, ok := m.values[key]
	if !ok {
		return nil, ErrNotFound
	}

	return b, nil
}

func (m *MemAdapter) Set(key string, value []byte) error {
	if m.FailWrites {
		return fmt.Errorf("writes are disabled")
	}

	m.values[key] = append([]byte{}, value...)

	return nil
}
