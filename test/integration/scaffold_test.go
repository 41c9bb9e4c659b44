//go:build integration

package integration_test

import (
	"io"
	"path/filepath"
	"testing"

	"github.com/tsuke-labs/tsuke/internal/bootstrap"
	"github.com/tsuke-labs/tsuke/internal/compose"
)

// TestScaffoldFullFlow drives the whole bootstrap pipeline against a
// synthetic template root: base plus two options, with an override tree
// and merged shared files.
func TestScaffoldFullFlow(t *testing.T) {
	env := setupTestEnv(t)

	summary, err := bootstrap.Run(bootstrap.Params{
		Name:       "my-app",
		Options:    []string{"eslint", "prettier"},
		CLIVersion: "1.0.0",
		Out:        io.Discard,
	})
	if err != nil {
		t.Fatalf("bootstrap.Run: %v", err)
	}

	dir := filepath.Join(env.WorkDir, "my-app")

	// Base files arrive.
	assertFileExists(t, filepath.Join(dir, ".gitignore"))
	assertFileExists(t, filepath.Join(dir, "packages", ".gitkeep"))

	// package.json is deep-merged across base and both options.
	pkg := filepath.Join(dir, "package.json")
	assertFileContains(t, pkg, `"workspaces"`)
	assertFileContains(t, pkg, `"eslint"`)
	assertFileContains(t, pkg, `"prettier"`)

	// Prettier's override for eslint applies because eslint came first.
	assertFileContains(t, filepath.Join(dir, ".eslintrc"), `"prettier"`)

	// Manifests and the overrides marker never reach the project.
	assertFileNotExists(t, filepath.Join(dir, "template.yaml"))
	assertFileNotExists(t, filepath.Join(dir, "overrides"))

	// The unselected option leaves no trace.
	assertFileNotExists(t, filepath.Join(dir, "commitlint.config.js"))

	if got := summary.Applied; len(got) != 2 || got[0] != "eslint" || got[1] != "prettier" {
		t.Errorf("applied options = %v, want [eslint prettier]", got)
	}
}

// TestScaffoldRecordsMergeActions checks that the per-file action report
// distinguishes created, overwritten, and merged files.
func TestScaffoldRecordsMergeActions(t *testing.T) {
	setupTestEnv(t)

	summary, err := bootstrap.Run(bootstrap.Params{
		Name:       "report-app",
		Options:    []string{"eslint"},
		CLIVersion: "1.0.0",
		Out:        io.Discard,
	})
	if err != nil {
		t.Fatalf("bootstrap.Run: %v", err)
	}

	actions := map[string]compose.Action{}
	for _, step := range summary.Steps {
		for _, fa := range step.Result.Files {
			actions[fa.Path] = fa.Action
		}
	}

	if actions["package.json"] != compose.ActionMerged {
		t.Errorf("package.json action = %v, want merged", actions["package.json"])
	}
	if actions[".eslintrc"] != compose.ActionCreated {
		t.Errorf(".eslintrc action = %v, want created", actions[".eslintrc"])
	}
}
