// Package compose copies a template tree onto a destination directory,
// merging overlapping files according to a merge strategy table and
// applying per-option override trees for options composed earlier.
package compose

import (
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/tsuke-labs/tsuke/internal/manifest"
	"github.com/tsuke-labs/tsuke/internal/merge"
	"github.com/tsuke-labs/tsuke/internal/templates"
)

// Action describes what the composer did with one destination file.
type Action string

const (
	// ActionCreated means the destination file did not exist and was written.
	ActionCreated Action = "created"

	// ActionOverwritten means the destination file existed, was not
	// mergeable, and was replaced by the template content.
	ActionOverwritten Action = "overwritten"

	// ActionMerged means the destination file existed and was combined
	// with the template content via a merge strategy.
	ActionMerged Action = "merged"
)

// FileAction records the decision taken for one file, keyed by its
// destination-relative path.
type FileAction struct {
	Path     string
	Action   Action
	Strategy merge.Strategy // set only for ActionMerged
}

// Result holds the outcome of composing one template tree.
type Result struct {
	Files    []FileAction
	Warnings []string
}

// Options configures a composition run.
type Options struct {
	// Table maps mergeable filenames to strategies. Defaults to
	// merge.DefaultTable().
	Table merge.Table

	// OverrideMarker names the reserved subdirectory holding per-option
	// override trees. Defaults to templates.OverrideMarker.
	OverrideMarker string
}

// Compose walks every entry of templateDir and applies it to destDir.
// applied lists the options already composed into the destination, in
// order; override trees for those options are flattened into destDir,
// override trees for other options are skipped. Filesystem errors
// propagate unmodified and abort the run.
func Compose(templateDir, destDir string, applied []string, opts Options) (*Result, error) {
	table := opts.Table
	if table == nil {
		table = merge.DefaultTable()
	}
	marker := opts.OverrideMarker
	if marker == "" {
		marker = templates.OverrideMarker
	}

	appliedSet := make(map[string]bool, len(applied))
	for _, option := range applied {
		appliedSet[option] = true
	}

	c := &composer{
		table:   table,
		marker:  marker,
		applied: appliedSet,
		result:  &Result{},
	}

	if err := os.MkdirAll(destDir, 0755); err != nil {
		return nil, fmt.Errorf("creating destination directory %s: %w", destDir, err)
	}

	if err := c.walk(templateDir, destDir, ""); err != nil {
		return nil, err
	}

	return c.result, nil
}

type composer struct {
	table   merge.Table
	marker  string
	applied map[string]bool
	result  *Result
}

func (c *composer) walk(srcDir, dstDir, rel string) error {
	entries, err := os.ReadDir(srcDir)
	if err != nil {
		return fmt.Errorf("reading template directory %s: %w", srcDir, err)
	}

	for _, entry := range entries {
		srcPath := filepath.Join(srcDir, entry.Name())

		if entry.IsDir() {
			if entry.Name() == c.marker {
				if err := c.walkOverrides(srcPath, dstDir, rel); err != nil {
					return err
				}
				continue
			}

			dstPath := filepath.Join(dstDir, entry.Name())
			if err := os.MkdirAll(dstPath, 0755); err != nil {
				return fmt.Errorf("creating directory %s: %w", dstPath, err)
			}
			if err := c.walk(srcPath, dstPath, path.Join(rel, entry.Name())); err != nil {
				return err
			}
			continue
		}

		// Only regular files are composed; symlinks and special files are skipped.
		if !entry.Type().IsRegular() {
			continue
		}

		// The template manifest is metadata, never project content.
		if rel == "" && entry.Name() == manifest.FileName {
			continue
		}

		relPath := path.Join(rel, entry.Name())
		if err := c.composeFile(srcPath, filepath.Join(dstDir, entry.Name()), relPath); err != nil {
			return err
		}
	}

	return nil
}

// walkOverrides applies the override trees inside a reserved marker
// directory. Each child named with-<option> is composed flattened into
// dstDir, but only when that option was already applied.
func (c *composer) walkOverrides(markerDir, dstDir, rel string) error {
	entries, err := os.ReadDir(markerDir)
	if err != nil {
		return fmt.Errorf("reading override directory %s: %w", markerDir, err)
	}

	for _, entry := range entries {
		if !entry.IsDir() {
			c.warnf("%s/%s: override entries must be directories, ignored", c.marker, entry.Name())
			continue
		}

		option := strings.TrimPrefix(entry.Name(), templates.OptionPrefix)
		if option == entry.Name() || option == "" {
			c.warnf("%s/%s: override trees must be named %s<option>, ignored", c.marker, entry.Name(), templates.OptionPrefix)
			continue
		}

		if !c.applied[option] {
			continue
		}

		if err := c.walk(filepath.Join(markerDir, entry.Name()), dstDir, rel); err != nil {
			return err
		}
	}

	return nil
}

// composeFile applies one template file to its destination: create when
// absent, merge when present and mergeable, otherwise overwrite. The
// decision is recorded in the result rather than inferred by callers.
func (c *composer) composeFile(srcPath, dstPath, rel string) error {
	srcData, err := os.ReadFile(srcPath)
	if err != nil {
		return fmt.Errorf("reading template file %s: %w", srcPath, err)
	}
	srcInfo, err := os.Stat(srcPath)
	if err != nil {
		return fmt.Errorf("stat template file %s: %w", srcPath, err)
	}

	dstData, err := os.ReadFile(dstPath)
	if err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("reading destination file %s: %w", dstPath, err)
		}
		if err := os.WriteFile(dstPath, srcData, srcInfo.Mode()); err != nil {
			return fmt.Errorf("writing %s: %w", dstPath, err)
		}
		c.record(rel, ActionCreated, "")
		return nil
	}

	strategy, mergeable := c.table.Lookup(filepath.Base(dstPath))
	if !mergeable {
		if err := os.WriteFile(dstPath, srcData, srcInfo.Mode()); err != nil {
			return fmt.Errorf("writing %s: %w", dstPath, err)
		}
		c.record(rel, ActionOverwritten, "")
		return nil
	}

	mergedData, err := strategy.Merge(dstData, srcData)
	if err != nil {
		return fmt.Errorf("merging %s: %w", rel, err)
	}
	if err := os.WriteFile(dstPath, mergedData, srcInfo.Mode()); err != nil {
		return fmt.Errorf("writing %s: %w", dstPath, err)
	}
	c.record(rel, ActionMerged, strategy)
	return nil
}

func (c *composer) record(rel string, action Action, strategy merge.Strategy) {
	c.result.Files = append(c.result.Files, FileAction{
		Path:     rel,
		Action:   action,
		Strategy: strategy,
	})
}

func (c *composer) warnf(format string, args ...any) {
	c.result.Warnings = append(c.result.Warnings, fmt.Sprintf(format, args...))
}
