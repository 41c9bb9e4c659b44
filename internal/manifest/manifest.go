package manifest

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/Masterminds/semver/v3"
	"go.yaml.in/yaml/v3"
)

// FileName is the manifest filename inside a template tree. The composer
// treats it as metadata and never copies it into a destination.
const FileName = "template.yaml"

// Template is the parsed content of a template.yaml file.
type Template struct {
	Name        string `yaml:"name,omitempty" json:"name,omitempty"`
	Description string `yaml:"description,omitempty" json:"description,omitempty"`
	Version     string `yaml:"version,omitempty" json:"version,omitempty"`

	// Requires is a semver constraint the CLI version must satisfy
	// before this template may be composed (e.g. ">= 0.3.0").
	Requires string `yaml:"requires,omitempty" json:"requires,omitempty"`

	// Mergeable registers additional filename → strategy-tag entries
	// ("json" or "append") on top of the default merge table.
	Mergeable map[string]string `yaml:"mergeable,omitempty" json:"mergeable,omitempty"`
}

// Load reads and validates the manifest of the template tree at dir.
// A missing manifest is not an error; Load returns (nil, nil).
func Load(dir string) (*Template, error) {
	path := filepath.Join(dir, FileName)

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading manifest %s: %w", path, err)
	}

	result, err := Validate(data)
	if err != nil {
		return nil, fmt.Errorf("validating manifest %s: %w", path, err)
	}
	if !result.Valid {
		var msgs []string
		for _, issue := range result.Issues {
			msg := issue.Message
			if issue.Path != "" {
				msg = issue.Path + ": " + msg
			}
			msgs = append(msgs, msg)
		}
		return nil, fmt.Errorf("invalid manifest %s:\n  %s", path, strings.Join(msgs, "\n  "))
	}

	var m Template
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parsing manifest %s: %w", path, err)
	}

	return &m, nil
}

// CheckRequires verifies the CLI version against the manifest's semver
// constraint. Dev builds (non-semver version strings) always pass so
// locally built binaries are not locked out of constrained templates.
func (m *Template) CheckRequires(cliVersion string) error {
	if m == nil || m.Requires == "" {
		return nil
	}

	c, err := semver.NewConstraint(m.Requires)
	if err != nil {
		return fmt.Errorf("invalid requires constraint %q: %w", m.Requires, err)
	}

	v, err := semver.NewVersion(strings.TrimPrefix(cliVersion, "v"))
	if err != nil {
		return nil
	}

	if !c.Check(v) {
		return fmt.Errorf("template requires CLI version %q, running %s", m.Requires, cliVersion)
	}
	return nil
}
