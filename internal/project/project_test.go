package project

import (
	"os"
	"path/filepath"
	"testing"
)

func writeManifest(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestDetectPackageJSON(t *testing.T) {
	dir := t.TempDir()
	writeManifest(t, dir, "package.json", `{"name": "webapp", "version": "3.1.0"}`)

	meta, err := Detect(dir)
	if err != nil {
		t.Fatalf("Detect: %v", err)
	}
	if meta.Name != "webapp" {
		t.Errorf("name = %q, want webapp", meta.Name)
	}
	if meta.Version != "3.1.0" {
		t.Errorf("version = %q, want 3.1.0", meta.Version)
	}
	if meta.Phase != 3 {
		t.Errorf("phase = %d, want 3", meta.Phase)
	}
	if meta.Manifest != "package.json" {
		t.Errorf("manifest = %q, want package.json", meta.Manifest)
	}
}

func TestDetectCargoToml(t *testing.T) {
	dir := t.TempDir()
	writeManifest(t, dir, "Cargo.toml", "[package]\nname = \"engine\"\nversion = \"0.4.2\"\n")

	meta, err := Detect(dir)
	if err != nil {
		t.Fatalf("Detect: %v", err)
	}
	if meta.Name != "engine" || meta.Version != "0.4.2" {
		t.Errorf("got %q %q, want engine 0.4.2", meta.Name, meta.Version)
	}
	if meta.Phase != 0 {
		t.Errorf("phase = %d, want 0 for a 0.x version", meta.Phase)
	}
}

func TestDetectPyprojectToml(t *testing.T) {
	dir := t.TempDir()
	writeManifest(t, dir, "pyproject.toml", "[project]\nname = \"tool\"\nversion = \"2.0.0\"\n")

	meta, err := Detect(dir)
	if err != nil {
		t.Fatalf("Detect: %v", err)
	}
	if meta.Phase != 2 {
		t.Errorf("phase = %d, want 2", meta.Phase)
	}
	if meta.Manifest != "pyproject.toml" {
		t.Errorf("manifest = %q, want pyproject.toml", meta.Manifest)
	}
}

func TestDetectPrefersPackageJSON(t *testing.T) {
	dir := t.TempDir()
	writeManifest(t, dir, "package.json", `{"name": "a", "version": "1.0.0"}`)
	writeManifest(t, dir, "Cargo.toml", "[package]\nname = \"b\"\nversion = \"9.0.0\"\n")

	meta, err := Detect(dir)
	if err != nil {
		t.Fatalf("Detect: %v", err)
	}
	if meta.Manifest != "package.json" {
		t.Errorf("manifest = %q, want package.json", meta.Manifest)
	}
}

func TestDetectNoManifest(t *testing.T) {
	meta, err := Detect(t.TempDir())
	if err != nil {
		t.Fatalf("Detect: %v", err)
	}
	if meta != (Metadata{}) {
		t.Errorf("expected empty metadata, got %+v", meta)
	}
}

func TestDetectMalformedManifest(t *testing.T) {
	dir := t.TempDir()
	writeManifest(t, dir, "package.json", "{not json")

	if _, err := Detect(dir); err == nil {
		t.Error("expected an error for malformed package.json")
	}
}

func TestPhaseFromVersion(t *testing.T) {
	cases := []struct {
		version string
		want    int
	}{
		{"2.1.0", 2},
		{"v3.0.0", 3},
		{"0.9.1", 0},
		{"10.2", 10},
		{"", 0},
		{"next", 0},
	}
	for _, tc := range cases {
		if got := PhaseFromVersion(tc.version); got != tc.want {
			t.Errorf("PhaseFromVersion(%q) = %d, want %d", tc.version, got, tc.want)
		}
	}
}
