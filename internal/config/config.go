// Package config loads the optional panels configuration file.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"panellayout/internal/panel"
)

const (
	// PathEnv overrides the config file location.
	PathEnv = "PANELLAYOUT_CONFIG"
	// DefaultPath is the config file relative to the home dir.
	DefaultPath = ".panellayout/config.yaml"
)

// ErrInvalid wraps every validation failure.
var ErrInvalid = errors.New("invalid config")

// Command is a tab that shows the output of a shell command.
type Command struct {
	Name string `yaml:"name"`
	Run  string `yaml:"run"`
}

// File mirrors config.yaml. Zero values mean "not set"; command-line flags
// take precedence over anything set here.
type File struct {
	Tabs       []string  `yaml:"tabs"`
	Commands   []Command `yaml:"commands"`
	Workspace  string    `yaml:"workspace"`
	History    int       `yaml:"history"`
	Spans      int       `yaml:"spans"`
	Log        string    `yaml:"log"`
	ResizeStep float64   `yaml:"resize_step"`
	MinRatio   float64   `yaml:"min_ratio"`
	MaxRatio   float64   `yaml:"max_ratio"`
}

// DefaultFile returns $PANELLAYOUT_CONFIG, or DefaultPath under the home
// dir.
func DefaultFile() (string, error) {
	if p := os.Getenv(PathEnv); p != "" {
		return p, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, DefaultPath), nil
}

// Load reads and validates path. A missing file yields ok == false and no
// error. Unknown keys are errors.
func Load(path string) (f File, ok bool, err error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return File{}, false, nil
	}
	if err != nil {
		return File{}, false, err
	}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil && !errors.Is(err, io.EOF) {
		return File{}, false, fmt.Errorf("parse %s: %w", path, err)
	}
	if err := f.Validate(); err != nil {
		return File{}, false, fmt.Errorf("%s: %w", path, err)
	}
	return f, true, nil
}

// Validate checks ranges and command names.
func (f File) Validate() error {
	if f.History < 0 {
		return fmt.Errorf("%w: history %d is negative", ErrInvalid, f.History)
	}
	if f.Spans < 0 {
		return fmt.Errorf("%w: spans %d is negative", ErrInvalid, f.Spans)
	}
	if f.ResizeStep < 0 || f.ResizeStep >= 0.5 {
		return fmt.Errorf("%w: resize_step %v not in [0, 0.5)", ErrInvalid, f.ResizeStep)
	}
	if f.MinRatio != 0 || f.MaxRatio != 0 {
		if !(0 < f.MinRatio && f.MinRatio < f.MaxRatio && f.MaxRatio < 1) {
			return fmt.Errorf("%w: need 0 < min_ratio < max_ratio < 1, got %v and %v", ErrInvalid, f.MinRatio, f.MaxRatio)
		}
	}
	seen := make(map[string]bool, len(f.Commands))
	for i, c := range f.Commands {
		if c.Name == "" || c.Run == "" {
			return fmt.Errorf("%w: commands[%d] needs name and run", ErrInvalid, i)
		}
		if seen[c.Name] {
			return fmt.Errorf("%w: duplicate command %q", ErrInvalid, c.Name)
		}
		seen[c.Name] = true
	}
	return nil
}

// Ratio returns the configured ratio bounds, or the zero value when unset.
func (f File) Ratio() panel.RatioBounds {
	if f.MinRatio == 0 && f.MaxRatio == 0 {
		return panel.RatioBounds{}
	}
	return panel.RatioBounds{Min: f.MinRatio, Max: f.MaxRatio}
}
