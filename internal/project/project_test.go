package project

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func writeMetadata(t *testing.T, dir, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, MetadataFile), []byte(content), 0o644); err != nil {
		t.Fatalf("write functor.json: %v", err)
	}
}

func TestWorkingDirectory(t *testing.T) {
	wd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}

	got, err := WorkingDirectory("")
	if err != nil || got != wd {
		t.Errorf("WorkingDirectory(\"\") = %q, %v; want %q", got, err, wd)
	}

	dir := t.TempDir()
	got, err = WorkingDirectory(dir)
	if err != nil || got != dir {
		t.Errorf("WorkingDirectory(%q) = %q, %v", dir, got, err)
	}

	got, err = WorkingDirectory(".")
	if err != nil || !filepath.IsAbs(got) {
		t.Errorf("WorkingDirectory(\".\") = %q, %v; want absolute path", got, err)
	}
}

func TestValidate(t *testing.T) {
	t.Run("missing", func(t *testing.T) {
		dir := t.TempDir()
		if _, err := Validate(dir); !errors.Is(err, ErrMissingMetadata) {
			t.Errorf("Validate() error = %v, want ErrMissingMetadata", err)
		}
	})

	t.Run("directory in place of file", func(t *testing.T) {
		dir := t.TempDir()
		if err := os.Mkdir(filepath.Join(dir, MetadataFile), 0o755); err != nil {
			t.Fatal(err)
		}
		if _, err := Validate(dir); !errors.Is(err, ErrMissingMetadata) {
			t.Errorf("Validate() error = %v, want ErrMissingMetadata", err)
		}
	})

	t.Run("present", func(t *testing.T) {
		dir := t.TempDir()
		writeMetadata(t, dir, "")
		path, err := Validate(dir)
		if err != nil {
			t.Fatalf("Validate() failed: %v", err)
		}
		if path != filepath.Join(dir, MetadataFile) {
			t.Errorf("Validate() = %q", path)
		}
	})
}

func TestLoad(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    Metadata
		wantErr error
	}{
		{"empty file", "", Metadata{}, nil},
		{"whitespace", "  \n", Metadata{}, nil},
		{"empty object", "{}", Metadata{}, nil},
		{
			name:    "full",
			content: `{"name":"demo","version":"1.2.0","template":"cube","entry":"main.go"}`,
			want:    Metadata{Name: "demo", Version: "1.2.0", Template: "cube", Entry: "main.go"},
		},
		{"unknown fields ignored", `{"name":"x","extra":true}`, Metadata{Name: "x"}, nil},
		{"invalid", `{"name":`, Metadata{}, ErrInvalidMetadata},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			writeMetadata(t, dir, tt.content)
			got, err := Load(dir)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("Load() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Load() failed: %v", err)
			}
			if *got != tt.want {
				t.Errorf("Load() = %+v, want %+v", *got, tt.want)
			}
		})
	}
}

func TestLoadMissing(t *testing.T) {
	if _, err := Load(t.TempDir()); !errors.Is(err, ErrMissingMetadata) {
		t.Errorf("Load() error = %v, want ErrMissingMetadata", err)
	}
}

func TestInit(t *testing.T) {
	dir := t.TempDir()
	if err := Init(dir, "cube"); err != nil {
		t.Fatalf("Init() failed: %v", err)
	}

	m, err := Load(dir)
	if err != nil {
		t.Fatalf("Load() after Init failed: %v", err)
	}
	if m.Template != "cube" || m.Name != filepath.Base(dir) || m.Version == "" {
		t.Errorf("metadata = %+v", *m)
	}

	if err := Init(dir, "plane"); !errors.Is(err, ErrAlreadyInitialized) {
		t.Errorf("second Init() error = %v, want ErrAlreadyInitialized", err)
	}
	m, _ = Load(dir)
	if m.Template != "cube" {
		t.Errorf("Init overwrote existing metadata: template = %q", m.Template)
	}
}

func TestInitDefaultTemplate(t *testing.T) {
	dir := t.TempDir()
	if err := Init(dir, ""); err != nil {
		t.Fatalf("Init() failed: %v", err)
	}
	m, err := Load(dir)
	if err != nil {
		t.Fatal(err)
	}
	if m.Template != DefaultTemplate {
		t.Errorf("Template = %q, want %q", m.Template, DefaultTemplate)
	}
}

func TestDisplayName(t *testing.T) {
	if got := (&Metadata{Name: "demo"}).DisplayName("/tmp/x"); got != "demo" {
		t.Errorf("DisplayName = %q, want demo", got)
	}
	if got := (&Metadata{}).DisplayName("/tmp/x"); got != "x" {
		t.Errorf("DisplayName = %q, want x", got)
	}
	var m *Metadata
	if got := m.DisplayName("/tmp/y"); got != "y" {
		t.Errorf("nil DisplayName = %q, want y", got)
	}
}
