package project

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	functor "github.com/functor-dev/functor"
)

// Build output locations, relative to the project directory.
const (
	BuildDir     = "build"
	ManifestFile = "functor-build.yaml"
)

// ShapeSummary describes one built-in shape in a build manifest.
type ShapeSummary struct {
	Name      string `yaml:"name"`
	Vertices  int    `yaml:"vertices"`
	Triangles int    `yaml:"triangles"`
	Bytes     int    `yaml:"bytes"`
}

// Manifest records the result of a build.
type Manifest struct {
	Name     string         `yaml:"name"`
	Version  string         `yaml:"version,omitempty"`
	Template string         `yaml:"template,omitempty"`
	Entry    string         `yaml:"entry,omitempty"`
	Runtime  string         `yaml:"runtime"`
	BuiltAt  time.Time      `yaml:"built_at"`
	Shapes   []ShapeSummary `yaml:"shapes"`
}

// NewManifest starts a manifest from project metadata.
func NewManifest(dir string, m *Metadata) Manifest {
	man := Manifest{
		Name:    m.DisplayName(dir),
		Runtime: functor.Version,
		BuiltAt: time.Now().UTC().Truncate(time.Second),
	}
	if m != nil {
		man.Version = m.Version
		man.Template = m.Template
		man.Entry = m.Entry
	}
	return man
}

// ManifestPath returns the manifest path inside dir.
func ManifestPath(dir string) string {
	return filepath.Join(dir, BuildDir, ManifestFile)
}

// WriteManifest writes man to dir/build/functor-build.yaml, creating the
// build directory when needed, and returns the path written.
func WriteManifest(dir string, man Manifest) (string, error) {
	if err := os.MkdirAll(filepath.Join(dir, BuildDir), 0o755); err != nil {
		return "", fmt.Errorf("project: create build dir: %w", err)
	}

	path := ManifestPath(dir)
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("project: create %s: %w", ManifestFile, err)
	}
	defer f.Close()

	enc := yaml.NewEncoder(f)
	enc.SetIndent(2)
	if err := enc.Encode(&man); err != nil {
		return "", fmt.Errorf("project: encode %s: %w", ManifestFile, err)
	}
	if err := enc.Close(); err != nil {
		return "", fmt.Errorf("project: close %s: %w", ManifestFile, err)
	}
	return path, nil
}

// ReadManifest reads the manifest from dir.
func ReadManifest(dir string) (Manifest, error) {
	data, err := os.ReadFile(ManifestPath(dir))
	if err != nil {
		return Manifest{}, fmt.Errorf("project: read %s: %w", ManifestFile, err)
	}
	var man Manifest
	if err := yaml.Unmarshal(data, &man); err != nil {
		return Manifest{}, fmt.Errorf("project: parse %s: %w", ManifestFile, err)
	}
	return man, nil
}
