package templates

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/tsuke-labs/tsuke/internal/branding"
	"github.com/tsuke-labs/tsuke/internal/config"
)

// Directory name constants for the template layout convention.
const (
	// TemplatesDir is the default directory under ~/.tsuke holding templates.
	TemplatesDir = "templates"

	// BaseDir is the template tree composed into every new project.
	BaseDir = "repo-base"

	// OptionPrefix prefixes the per-option template trees (with-eslint, ...).
	OptionPrefix = "with-"

	// OverrideMarker is the reserved subdirectory inside a template tree
	// that holds per-option override trees.
	OverrideMarker = "overrides"
)

// Root returns the template root directory. It checks (in order):
// 1. TSUKE_TEMPLATES env var
// 2. config key "template_root"
// 3. ~/.tsuke/templates
func Root() (string, error) {
	if v := os.Getenv(branding.EnvVar("TEMPLATES")); v != "" {
		return v, nil
	}
	if v := config.Get(config.KeyTemplateRoot); v != "" {
		return v, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolving home directory: %w", err)
	}
	return filepath.Join(home, branding.HomeDir(), TemplatesDir), nil
}

// BasePath returns the repo-base tree path under root.
func BasePath(root string) string {
	return filepath.Join(root, BaseDir)
}

// OptionPath returns the with-<option> tree path under root.
func OptionPath(root, option string) string {
	return filepath.Join(root, OptionPrefix+option)
}
