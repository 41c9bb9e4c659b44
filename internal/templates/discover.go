package templates

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/tsuke-labs/tsuke/internal/manifest"
)

// Tree describes one discovered template tree.
type Tree struct {
	// Option is the option name ("eslint" for with-eslint); empty for
	// the base tree.
	Option string

	// Dir is the absolute path of the tree.
	Dir string

	// Manifest holds the parsed template.yaml, or nil if the tree has none.
	Manifest *manifest.Template
}

// Set is the result of discovering a template root.
type Set struct {
	Root    string
	Base    Tree
	Options []Tree
}

// Discover scans the template root for the repo-base tree and the
// with-<option> trees. A root without repo-base is a fatal error; a root
// without options is fine. Manifests are loaded and validated eagerly so
// a broken template fails before any composition starts.
func Discover(root string) (*Set, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, fmt.Errorf("reading template root %s: %w", root, err)
	}

	set := &Set{Root: root}
	foundBase := false

	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}

		switch {
		case entry.Name() == BaseDir:
			dir := BasePath(root)
			m, err := manifest.Load(dir)
			if err != nil {
				return nil, err
			}
			set.Base = Tree{Dir: dir, Manifest: m}
			foundBase = true

		case strings.HasPrefix(entry.Name(), OptionPrefix):
			option := strings.TrimPrefix(entry.Name(), OptionPrefix)
			if option == "" {
				continue
			}
			dir := OptionPath(root, option)
			m, err := manifest.Load(dir)
			if err != nil {
				return nil, err
			}
			set.Options = append(set.Options, Tree{Option: option, Dir: dir, Manifest: m})
		}
	}

	if !foundBase {
		return nil, fmt.Errorf("template root %s has no %s tree (run `tsuke templates update` to fetch templates)", root, BaseDir)
	}

	sort.Slice(set.Options, func(i, j int) bool {
		return set.Options[i].Option < set.Options[j].Option
	})

	return set, nil
}

// Option returns the tree for the named option, if discovered.
func (s *Set) Option(name string) (Tree, bool) {
	for _, t := range s.Options {
		if t.Option == name {
			return t, true
		}
	}
	return Tree{}, false
}

// OptionNames returns the discovered option names in lexical order.
func (s *Set) OptionNames() []string {
	names := make([]string, len(s.Options))
	for i, t := range s.Options {
		names[i] = t.Option
	}
	return names
}
