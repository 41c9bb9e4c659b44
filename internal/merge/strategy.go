package merge

import (
	"fmt"
	"sort"
)

// Strategy identifies how overlapping file contents are combined.
type Strategy string

const (
	// StrategyJSON deep-merges structured JSON content. Arrays become the
	// first-seen-order deduplicated union; on scalar or object conflicts
	// the template side wins.
	StrategyJSON Strategy = "json"

	// StrategyAppend merges line-based files as a union: destination lines
	// keep their order, template lines not already present are appended.
	StrategyAppend Strategy = "append"
)

// ParseStrategy converts a strategy tag from a template manifest into a
// Strategy, rejecting unknown tags.
func ParseStrategy(tag string) (Strategy, error) {
	switch Strategy(tag) {
	case StrategyJSON:
		return StrategyJSON, nil
	case StrategyAppend:
		return StrategyAppend, nil
	default:
		return "", fmt.Errorf("unknown merge strategy %q (expected %q or %q)", tag, StrategyJSON, StrategyAppend)
	}
}

// Merge combines dst (existing destination content) with src (template
// content) according to the strategy.
func (s Strategy) Merge(dst, src []byte) ([]byte, error) {
	switch s {
	case StrategyJSON:
		return MergeJSON(dst, src)
	case StrategyAppend:
		return MergeAppend(dst, src), nil
	default:
		return nil, fmt.Errorf("unhandled merge strategy %q", string(s))
	}
}

// Table maps filenames to the strategy used when the destination already
// has a file with that name. It is passed explicitly into the composer;
// there is no ambient global table.
type Table map[string]Strategy

// DefaultTable returns the built-in mergeable filename table.
func DefaultTable() Table {
	return Table{
		".eslintrc":       StrategyJSON,
		"package.json":    StrategyJSON,
		"lerna.json":      StrategyJSON,
		".gitignore":      StrategyAppend,
		".prettierignore": StrategyAppend,
	}
}

// Lookup returns the strategy registered for a filename, if any.
func (t Table) Lookup(name string) (Strategy, bool) {
	s, ok := t[name]
	return s, ok
}

// Clone returns an independent copy of the table.
func (t Table) Clone() Table {
	out := make(Table, len(t))
	for k, v := range t {
		out[k] = v
	}
	return out
}

// Extend registers additional filename → strategy-tag entries, as declared
// by a template manifest. Unknown strategy tags are rejected.
func (t Table) Extend(entries map[string]string) error {
	for name, tag := range entries {
		s, err := ParseStrategy(tag)
		if err != nil {
			return fmt.Errorf("mergeable entry %q: %w", name, err)
		}
		t[name] = s
	}
	return nil
}

// Names returns the registered filenames in sorted order, for display.
func (t Table) Names() []string {
	names := make([]string, 0, len(t))
	for name := range t {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
