// Package project locates and reads the functor.json metadata file that
// marks a directory as a functor project.
package project

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// MetadataFile is the name of the project metadata file.
const MetadataFile = "functor.json"

// DefaultTemplate is the template recorded by Init when none is given.
const DefaultTemplate = "default"

// Package errors for project.
var (
	// ErrMissingMetadata is returned when a directory has no functor.json.
	ErrMissingMetadata = errors.New("project: functor.json not found")

	// ErrAlreadyInitialized is returned by Init when functor.json exists.
	ErrAlreadyInitialized = errors.New("project: already initialized")

	// ErrInvalidMetadata is returned when functor.json cannot be parsed.
	ErrInvalidMetadata = errors.New("project: invalid functor.json")
)

// Metadata is the content of functor.json. Every field is optional.
type Metadata struct {
	Name     string `json:"name,omitempty"`
	Version  string `json:"version,omitempty"`
	Template string `json:"template,omitempty"`
	Entry    string `json:"entry,omitempty"`
}

// DisplayName returns Name, or the base name of dir when Name is empty.
func (m *Metadata) DisplayName(dir string) string {
	if m != nil && m.Name != "" {
		return m.Name
	}
	return filepath.Base(dir)
}

// WorkingDirectory resolves the project directory: dir when non-empty,
// otherwise the process working directory. The result is absolute.
func WorkingDirectory(dir string) (string, error) {
	if dir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("project: working directory: %w", err)
		}
		return wd, nil
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("project: resolve %q: %w", dir, err)
	}
	return abs, nil
}

// MetadataPath returns the functor.json path inside dir.
func MetadataPath(dir string) string {
	return filepath.Join(dir, MetadataFile)
}

// Validate checks that dir contains functor.json and returns its path.
// A missing file, or a directory in its place, yields an error wrapping
// ErrMissingMetadata. Validate never exits the process.
func Validate(dir string) (string, error) {
	path := MetadataPath(dir)
	info, err := os.Stat(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return "", fmt.Errorf("%w in %s", ErrMissingMetadata, dir)
	case err != nil:
		return "", fmt.Errorf("project: stat %s: %w", path, err)
	case info.IsDir():
		return "", fmt.Errorf("%w in %s: %s is a directory", ErrMissingMetadata, dir, MetadataFile)
	}
	return path, nil
}

// Load validates dir and parses its functor.json. An empty or
// whitespace-only file yields zero Metadata.
func Load(dir string) (*Metadata, error) {
	path, err := Validate(dir)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("project: read %s: %w", path, err)
	}

	var m Metadata
	if strings.TrimSpace(string(data)) == "" {
		return &m, nil
	}
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrInvalidMetadata, path, err)
	}
	return &m, nil
}

// Init writes a stub functor.json recording template into dir. It returns
// ErrAlreadyInitialized when the file exists and leaves it untouched.
func Init(dir, template string) error {
	if template == "" {
		template = DefaultTemplate
	}
	m := Metadata{
		Name:     filepath.Base(dir),
		Version:  "0.1.0",
		Template: template,
	}
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return fmt.Errorf("project: encode metadata: %w", err)
	}
	data = append(data, '\n')

	path := MetadataPath(dir)
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if errors.Is(err, fs.ErrExist) {
		return fmt.Errorf("%w: %s", ErrAlreadyInitialized, path)
	}
	if err != nil {
		return fmt.Errorf("project: create %s: %w", path, err)
	}
	if _, err := f.Write(data); err != nil {
		_ = f.Close()
		return fmt.Errorf("project: write %s: %w", path, err)
	}
	return f.Close()
}
