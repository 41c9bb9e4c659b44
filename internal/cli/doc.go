// Package cli wires the cobra command tree: project bootstrap, template
// management, user settings, and version reporting.
package cli
