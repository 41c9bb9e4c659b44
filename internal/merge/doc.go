// Package merge defines the file merge strategies applied when a template
// file overlaps a file that already exists in the destination. The strategy
// table maps well-known filenames (package.json, .gitignore, ...) to either
// a structural JSON deep-merge or a line-union append merge.
package merge
