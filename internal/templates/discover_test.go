package templates

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func mkTree(t *testing.T, root string, names ...string) {
	t.Helper()
	for _, name := range names {
		if err := os.MkdirAll(filepath.Join(root, name), 0755); err != nil {
			t.Fatalf("creating %s: %v", name, err)
		}
	}
}

func TestDiscover(t *testing.T) {
	root := t.TempDir()
	mkTree(t, root, "repo-base", "with-eslint", "with-prettier", "with-commitlint")

	// A stray file and a non-template directory should be ignored.
	os.WriteFile(filepath.Join(root, "README.md"), []byte("docs"), 0644)
	mkTree(t, root, "archive")

	set, err := Discover(root)
	if err != nil {
		t.Fatalf("Discover() error: %v", err)
	}

	if set.Base.Dir != filepath.Join(root, "repo-base") {
		t.Errorf("Base.Dir = %q", set.Base.Dir)
	}

	want := []string{"commitlint", "eslint", "prettier"}
	if got := set.OptionNames(); !reflect.DeepEqual(got, want) {
		t.Errorf("OptionNames() = %v, want %v", got, want)
	}
}

func TestDiscoverMissingBase(t *testing.T) {
	root := t.TempDir()
	mkTree(t, root, "with-eslint")

	if _, err := Discover(root); err == nil {
		t.Fatal("expected error for missing repo-base")
	}
}

func TestDiscoverMissingRoot(t *testing.T) {
	if _, err := Discover(filepath.Join(t.TempDir(), "nope")); err == nil {
		t.Fatal("expected error for missing template root")
	}
}

func TestDiscoverLoadsManifests(t *testing.T) {
	root := t.TempDir()
	mkTree(t, root, "repo-base", "with-eslint")

	manifestYAML := "name: with-eslint\ndescription: ESLint preset\n"
	if err := os.WriteFile(filepath.Join(root, "with-eslint", "template.yaml"), []byte(manifestYAML), 0644); err != nil {
		t.Fatal(err)
	}

	set, err := Discover(root)
	if err != nil {
		t.Fatalf("Discover() error: %v", err)
	}

	tree, ok := set.Option("eslint")
	if !ok {
		t.Fatal("eslint option not discovered")
	}
	if tree.Manifest == nil || tree.Manifest.Description != "ESLint preset" {
		t.Errorf("Manifest = %+v, want description %q", tree.Manifest, "ESLint preset")
	}

	if set.Base.Manifest != nil {
		t.Errorf("base without template.yaml should have nil manifest, got %+v", set.Base.Manifest)
	}
}

func TestDiscoverBrokenManifestFails(t *testing.T) {
	root := t.TempDir()
	mkTree(t, root, "repo-base")

	if err := os.WriteFile(filepath.Join(root, "repo-base", "template.yaml"), []byte("version: nope\n"), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := Discover(root); err == nil {
		t.Fatal("expected error for schema-invalid manifest")
	}
}

func TestOptionLookup(t *testing.T) {
	root := t.TempDir()
	mkTree(t, root, "repo-base", "with-eslint")

	set, err := Discover(root)
	if err != nil {
		t.Fatalf("Discover() error: %v", err)
	}

	if _, ok := set.Option("eslint"); !ok {
		t.Error("Option(eslint) should be found")
	}
	if _, ok := set.Option("tslint"); ok {
		t.Error("Option(tslint) should not be found")
	}
}

func TestRootEnvOverride(t *testing.T) {
	t.Setenv("TSUKE_TEMPLATES", "/tmp/custom-templates")

	got, err := Root()
	if err != nil {
		t.Fatalf("Root() error: %v", err)
	}
	if got != "/tmp/custom-templates" {
		t.Errorf("Root() = %q, want env override", got)
	}
}

func TestOptionPath(t *testing.T) {
	if got := OptionPath("/root", "eslint"); got != filepath.Join("/root", "with-eslint") {
		t.Errorf("OptionPath() = %q", got)
	}
}
