// Package bootstrap drives the scaffolding run: resolve the target
// directory, clear it if confirmed, then compose the base template and
// each selected option template in order, growing the applied-options
// accumulator after every step.
package bootstrap

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/tsuke-labs/tsuke/internal/branding"
	"github.com/tsuke-labs/tsuke/internal/compose"
	"github.com/tsuke-labs/tsuke/internal/merge"
	"github.com/tsuke-labs/tsuke/internal/prompt"
	"github.com/tsuke-labs/tsuke/internal/templates"
)

// ErrAborted signals that the user declined to clear a non-empty target
// directory; nothing was composed.
var ErrAborted = errors.New("aborted: target directory left unchanged")

var namePattern = regexp.MustCompile(`^[A-Za-z0-9._][A-Za-z0-9._-]*$`)

var errNoPrompter = errors.New("interactive input needed but no prompter is configured")

// Params configures a bootstrap run.
type Params struct {
	// Name is the target directory name. Empty means ask interactively.
	Name string

	// Options lists the selected feature options in order. Nil means ask
	// interactively; an explicit empty slice means "no options".
	Options []string

	// DefaultOptions pre-selects entries in the interactive multi-select.
	// Nil falls back to {"eslint"}.
	DefaultOptions []string

	// Force skips the confirmation before clearing a non-empty target.
	Force bool

	// TemplateRoot overrides template root resolution.
	TemplateRoot string

	// CLIVersion is checked against template manifest `requires` constraints.
	CLIVersion string

	// Prompter answers the interactive questions: a missing Name, missing
	// Options, or clearing a non-empty target without Force. A nil
	// Prompter makes those paths fail with an error.
	Prompter prompt.Driver

	// Out receives progress output. Nil discards it.
	Out io.Writer
}

// StepResult pairs one composed template with its per-file actions.
type StepResult struct {
	Template string
	Result   *compose.Result
}

// Summary describes a completed bootstrap run.
type Summary struct {
	Dir     string
	Applied []string
	Steps   []StepResult
}

// Run executes the bootstrap state machine. Every failure is fatal; there
// are no retries and no partial-success reporting beyond the summary of
// steps completed before the failure.
func Run(p Params) (*Summary, error) {
	out := p.Out
	if out == nil {
		out = io.Discard
	}

	root := p.TemplateRoot
	if root == "" {
		var err error
		root, err = templates.Root()
		if err != nil {
			return nil, err
		}
	}

	set, err := templates.Discover(root)
	if err != nil {
		return nil, err
	}

	name, err := resolveName(p)
	if err != nil {
		return nil, err
	}

	destDir := name
	if err := prepareDest(destDir, p); err != nil {
		return nil, err
	}

	selected, err := resolveOptions(p, set)
	if err != nil {
		return nil, err
	}

	// The merge table grows as manifests register extra mergeable names;
	// entries persist for every later template in the run.
	table := merge.DefaultTable()

	summary := &Summary{Dir: destDir}

	composeOne := func(tree templates.Tree, label string) error {
		if err := tree.Manifest.CheckRequires(p.CLIVersion); err != nil {
			return fmt.Errorf("template %s: %w", label, err)
		}
		if tree.Manifest != nil {
			if err := table.Extend(tree.Manifest.Mergeable); err != nil {
				return fmt.Errorf("template %s: %w", label, err)
			}
		}

		fmt.Fprintf(out, "Composing %s\n", label)
		result, err := compose.Compose(tree.Dir, destDir, summary.Applied, compose.Options{Table: table})
		if err != nil {
			return fmt.Errorf("composing %s: %w", label, err)
		}
		summary.Steps = append(summary.Steps, StepResult{Template: label, Result: result})
		return nil
	}

	if err := composeOne(set.Base, templates.BaseDir); err != nil {
		return nil, err
	}

	for _, option := range selected {
		tree, ok := set.Option(option)
		if !ok {
			return nil, fmt.Errorf("unknown option %q (available: %s)", option, strings.Join(set.OptionNames(), ", "))
		}
		if err := composeOne(tree, templates.OptionPrefix+option); err != nil {
			return nil, err
		}
		summary.Applied = append(summary.Applied, option)
	}

	return summary, nil
}

// resolveName returns the target directory name, asking interactively
// when none was given on the command line.
func resolveName(p Params) (string, error) {
	name := p.Name
	if name == "" {
		if p.Prompter == nil {
			return "", errNoPrompter
		}
		answered, err := p.Prompter.Input("Project name:", branding.DefaultProject())
		if err != nil {
			return "", err
		}
		name = strings.TrimSpace(answered)
		if name == "" {
			name = branding.DefaultProject()
		}
	}

	if name == "." || name == ".." || filepath.Base(name) != name || !namePattern.MatchString(name) {
		return "", fmt.Errorf("invalid project name %q: must be a plain directory name matching %s", name, namePattern)
	}
	return name, nil
}

// prepareDest creates the target directory, or clears a non-empty one
// after confirmation. Declining leaves the directory untouched and aborts
// the run.
func prepareDest(destDir string, p Params) error {
	info, err := os.Stat(destDir)
	if os.IsNotExist(err) {
		if err := os.MkdirAll(destDir, 0755); err != nil {
			return fmt.Errorf("creating %s: %w", destDir, err)
		}
		return nil
	}
	if err != nil {
		return fmt.Errorf("stat %s: %w", destDir, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%s exists and is not a directory", destDir)
	}

	entries, err := os.ReadDir(destDir)
	if err != nil {
		return fmt.Errorf("reading %s: %w", destDir, err)
	}
	if len(entries) == 0 {
		return nil
	}

	if !p.Force {
		if p.Prompter == nil {
			return errNoPrompter
		}
		ok, err := p.Prompter.Confirm(fmt.Sprintf("Directory %s is not empty. Clear its contents?", destDir), true)
		if err != nil {
			return err
		}
		if !ok {
			return ErrAborted
		}
	}

	for _, entry := range entries {
		if err := os.RemoveAll(filepath.Join(destDir, entry.Name())); err != nil {
			return fmt.Errorf("clearing %s: %w", destDir, err)
		}
	}
	return nil
}

// resolveOptions returns the selected options in offered order, asking
// interactively when the command line gave none.
func resolveOptions(p Params, set *templates.Set) ([]string, error) {
	available := set.OptionNames()

	if p.Options != nil {
		for _, option := range p.Options {
			if _, ok := set.Option(option); !ok {
				return nil, fmt.Errorf("unknown option %q (available: %s)", option, strings.Join(available, ", "))
			}
		}
		return p.Options, nil
	}

	if len(available) == 0 {
		return nil, nil
	}

	defaults := p.DefaultOptions
	if defaults == nil {
		defaults = []string{"eslint"}
	}
	defaults = intersect(defaults, available)

	if p.Prompter == nil {
		return nil, errNoPrompter
	}
	return p.Prompter.MultiSelect("Select options:", available, defaults)
}

// intersect filters want down to members of have, preserving want's order.
func intersect(want, have []string) []string {
	haveSet := make(map[string]bool, len(have))
	for _, h := range have {
		haveSet[h] = true
	}
	out := make([]string, 0, len(want))
	for _, w := range want {
		if haveSet[w] {
			out = append(out, w)
		}
	}
	return out
}
