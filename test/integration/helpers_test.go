//go:build integration

package integration_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// testEnv holds paths to isolated test directories.
type testEnv struct {
	TemplateRoot string // TSUKE_TEMPLATES: contains repo-base/ and with-*/
	WorkDir      string // Where projects get scaffolded
}

// setupTestEnv creates isolated temp directories and points the template
// root env var at a synthetic template set. The env vars are restored
// after the test.
func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()

	env := &testEnv{
		TemplateRoot: t.TempDir(),
		WorkDir:      t.TempDir(),
	}

	t.Setenv("TSUKE_TEMPLATES", env.TemplateRoot)
	chdir(t, env.WorkDir)

	setupTemplates(t, env.TemplateRoot)
	return env
}

// chdir changes the working directory and restores it on cleanup.
// It mirrors testing.T.Chdir, which needs Go 1.24+.
func chdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("chdir %s: %v", dir, err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(old); err != nil {
			t.Fatalf("restoring wd: %v", err)
		}
	})
}

// setupTemplates creates a synthetic template root with a base tree and
// three option trees, including override trees and manifests.
func setupTemplates(t *testing.T, root string) {
	t.Helper()

	// --- Base ---
	writeFile(t, filepath.Join(root, "repo-base", "template.yaml"), `name: repo-base
description: Monorepo baseline
version: "1.0.0"
`)
	writeFile(t, filepath.Join(root, "repo-base", "package.json"), `{
  "private": true,
  "workspaces": ["packages/*"]
}
`)
	writeFile(t, filepath.Join(root, "repo-base", ".gitignore"), "node_modules\ndist\n")
	writeFile(t, filepath.Join(root, "repo-base", "packages", ".gitkeep"), "")

	// --- eslint option ---
	writeFile(t, filepath.Join(root, "with-eslint", "template.yaml"), `name: with-eslint
description: ESLint preset
version: "1.0.0"
`)
	writeFile(t, filepath.Join(root, "with-eslint", ".eslintrc"), `{
  "extends": ["eslint:recommended"]
}
`)
	writeFile(t, filepath.Join(root, "with-eslint", "package.json"), `{
  "devDependencies": {"eslint": "^9.0.0"}
}
`)

	// --- prettier option, with an override for eslint ---
	writeFile(t, filepath.Join(root, "with-prettier", "template.yaml"), `name: with-prettier
description: Prettier preset
version: "1.0.0"
`)
	writeFile(t, filepath.Join(root, "with-prettier", ".prettierignore"), "dist\ncoverage\n")
	writeFile(t, filepath.Join(root, "with-prettier", "package.json"), `{
  "devDependencies": {"prettier": "^3.0.0"}
}
`)
	writeFile(t, filepath.Join(root, "with-prettier", "overrides", "with-eslint", ".eslintrc"), `{
  "extends": ["prettier"]
}
`)

	// --- commitlint option ---
	writeFile(t, filepath.Join(root, "with-commitlint", "template.yaml"), `name: with-commitlint
description: Commitlint preset
version: "1.0.0"
`)
	writeFile(t, filepath.Join(root, "with-commitlint", "commitlint.config.js"), "module.exports = {extends: ['@commitlint/config-conventional']};\n")
}

// writeFile creates a file at the given path with the given content.
func writeFile(t *testing.T, path, content string) {
	t.Helper()
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatalf("creating dir %s: %v", dir, err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("writing %s: %v", path, err)
	}
}

// assertFileExists fails the test if the file does not exist.
func assertFileExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); err != nil {
		t.Errorf("expected file to exist: %s (error: %v)", path, err)
	}
}

// assertFileNotExists fails the test if the file exists.
func assertFileNotExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); err == nil {
		t.Errorf("expected file NOT to exist: %s", path)
	}
}

// assertFileContains fails if the file doesn't exist or doesn't contain substr.
func assertFileContains(t *testing.T, path, substr string) {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Errorf("reading %s: %v", path, err)
		return
	}
	if !strings.Contains(string(data), substr) {
		t.Errorf("file %s does not contain %q.\nContents:\n%s", path, substr, string(data))
	}
}
