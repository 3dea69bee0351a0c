// Package project detects project metadata from manifests at the repo root.
// The interesting output is the current phase, parsed from the project
// version: markers that reference an earlier phase read as likely done.
package project

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
)

// Metadata is what manifest detection yields.
type Metadata struct {
	// Name is the project name from the manifest, if any.
	Name string `json:"name,omitempty"`

	// Version is the raw version string from the manifest.
	Version string `json:"version,omitempty"`

	// Phase is the major version interpreted as the current phase.
	// Zero means no phase could be determined.
	Phase int `json:"phase,omitempty"`

	// Manifest is the repo-relative path the metadata came from.
	Manifest string `json:"manifest,omitempty"`
}

// packageJSON covers the fields we read from package.json.
type packageJSON struct {
	Name    string `json:"name"`
	Version string `json:"version"`
}

// cargoToml covers the [package] table of Cargo.toml.
type cargoToml struct {
	Package struct {
		Name    string `toml:"name"`
		Version string `toml:"version"`
	} `toml:"package"`
}

// pyprojectToml covers the [project] table of pyproject.toml.
type pyprojectToml struct {
	Project struct {
		Name    string `toml:"name"`
		Version string `toml:"version"`
	} `toml:"project"`
}

var versionMajor = regexp.MustCompile(`^v?(\d+)`)

// Detect looks for known manifests at the repo root, first match wins.
// A repo with no manifest is not an error; it yields empty Metadata.
func Detect(repoRoot string) (Metadata, error) {
	type probe struct {
		file  string
		parse func(data []byte) (name, version string, err error)
	}
	probes := []probe{
		{"package.json", parsePackageJSON},
		{"Cargo.toml", parseCargoToml},
		{"pyproject.toml", parsePyprojectToml},
	}

	for _, p := range probes {
		data, err := os.ReadFile(filepath.Join(repoRoot, p.file))
		if os.IsNotExist(err) {
			continue
		}
		if err != nil {
			return Metadata{}, fmt.Errorf("failed to read %s: %w", p.file, err)
		}

		name, version, err := p.parse(data)
		if err != nil {
			return Metadata{}, fmt.Errorf("failed to parse %s: %w", p.file, err)
		}

		return Metadata{
			Name:     name,
			Version:  version,
			Phase:    PhaseFromVersion(version),
			Manifest: p.file,
		}, nil
	}

	return Metadata{}, nil
}

// PhaseFromVersion extracts the major version as a phase number.
// Returns 0 when the version does not start with a number.
func PhaseFromVersion(version string) int {
	m := versionMajor.FindStringSubmatch(strings.TrimSpace(version))
	if m == nil {
		return 0
	}
	major, err := strconv.Atoi(m[1])
	if err != nil {
		return 0
	}
	return major
}

func parsePackageJSON(data []byte) (string, string, error) {
	var pkg packageJSON
	if err := json.Unmarshal(data, &pkg); err != nil {
		return "", "", err
	}
	return pkg.Name, pkg.Version, nil
}

func parseCargoToml(data []byte) (string, string, error) {
	var cargo cargoToml
	if err := toml.Unmarshal(data, &cargo); err != nil {
		return "", "", err
	}
	return cargo.Package.Name, cargo.Package.Version, nil
}

func parsePyprojectToml(data []byte) (string, string, error) {
	var py pyprojectToml
	if err := toml.Unmarshal(data, &py); err != nil {
		return "", "", err
	}
	return py.Project.Name, py.Project.Version, nil
}
