// Package snapshot persists named workspace layouts as JSON files.
package snapshot

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"panellayout/internal/jsonutil"
	"panellayout/internal/panel"
)

const (
	// DirEnv is the env var override for the snapshot directory (for testing).
	DirEnv = "PANELLAYOUT_WORKSPACES_DIR"
	// DefaultBase is the default snapshot directory relative to the home dir.
	DefaultBase = ".panellayout/workspaces"

	ext = ".json"
)

// ErrInvalidName is returned for names that normalize to nothing or would
// escape the snapshot directory.
var ErrInvalidName = errors.New("invalid workspace name")

// Store reads and writes workspace snapshots.
// Layout: ~/.panellayout/workspaces/<name>.json
type Store struct {
	baseDir string
}

// NewStore creates a store rooted at the user's home + DefaultBase, or at
// the path in PANELLAYOUT_WORKSPACES_DIR if set.
func NewStore() (*Store, error) {
	base := os.Getenv(DirEnv)
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		base = filepath.Join(home, DefaultBase)
	}
	return &Store{baseDir: base}, nil
}

// NewStoreAt creates a store rooted at dir.
func NewStoreAt(dir string) *Store {
	return &Store{baseDir: dir}
}

// Dir returns the snapshot directory.
func (s *Store) Dir() string {
	return s.baseDir
}

// NormalizeName lowercases name and replaces spaces with hyphens.
func NormalizeName(name string) (string, error) {
	normalized := strings.ToLower(strings.ReplaceAll(strings.TrimSpace(name), " ", "-"))
	if normalized == "" || normalized == "." || normalized == ".." ||
		strings.ContainsAny(normalized, `/\`) {
		return "", fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	return normalized, nil
}

// Path returns the file path for a snapshot name.
func (s *Store) Path(name string) (string, error) {
	normalized, err := NormalizeName(name)
	if err != nil {
		return "", err
	}
	return filepath.Join(s.baseDir, normalized+ext), nil
}

// Save writes state under name, replacing any previous snapshot. The file
// is written next to its destination and renamed into place.
func (s *Store) Save(name string, state panel.State) error {
	path, err := s.Path(name)
	if err != nil {
		return err
	}
	data, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return fmt.Errorf("encode workspace %s: %w", name, err)
	}
	if err := os.MkdirAll(s.baseDir, 0o755); err != nil {
		return fmt.Errorf("create %s: %w", s.baseDir, err)
	}

	tmp, err := os.CreateTemp(s.baseDir, ".tmp-*"+ext)
	if err != nil {
		return fmt.Errorf("save workspace %s: %w", name, err)
	}
	defer os.Remove(tmp.Name()) // no-op after a successful rename

	if _, err := tmp.Write(append(data, '\n')); err != nil {
		tmp.Close()
		return fmt.Errorf("save workspace %s: %w", name, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("save workspace %s: %w", name, err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("save workspace %s: %w", name, err)
	}
	return nil
}

// Load reads the snapshot for name. A missing snapshot yields ok == false
// and no error. Corrupt or invalid snapshots are errors.
func (s *Store) Load(name string) (state panel.State, ok bool, err error) {
	path, err := s.Path(name)
	if err != nil {
		return panel.State{}, false, err
	}
	found, err := jsonutil.ReadFile(path, &state)
	if err != nil {
		return panel.State{}, false, fmt.Errorf("load workspace %s: %w", name, err)
	}
	if !found {
		return panel.State{}, false, nil
	}
	return state, true, nil
}

// List returns the names of all snapshots, sorted. A missing directory is
// an empty list.
func (s *Store) List() ([]string, error) {
	entries, err := os.ReadDir(s.baseDir)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var names []string
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || strings.HasPrefix(name, ".") || !strings.HasSuffix(name, ext) {
			continue
		}
		names = append(names, strings.TrimSuffix(name, ext))
	}
	slices.Sort(names)
	return names, nil
}

// Delete removes the snapshot for name. Deleting a missing snapshot is not
// an error.
func (s *Store) Delete(name string) error {
	path, err := s.Path(name)
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}

// Summary returns a short label for display, e.g. "3 groups, 5 tabs".
func Summary(state panel.State) string {
	groups := panel.LeafCount(state.Tree)
	tabs := state.TabCount()
	return fmt.Sprintf("%d %s, %d %s", groups, plural(groups, "group"), tabs, plural(tabs, "tab"))
}

func plural(n int, word string) string {
	if n == 1 {
		return word
	}
	return word + "s"
}
