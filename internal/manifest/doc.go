// Package manifest parses and validates template.yaml files carried by
// template trees. A manifest is optional metadata: a description for
// listings, a semver constraint on the CLI version, and extra mergeable
// filename registrations layered onto the default merge table.
package manifest
