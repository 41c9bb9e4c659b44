// Package templates resolves the on-disk template root and discovers the
// composable template trees inside it: the repo-base tree every project
// starts from, and the with-<option> trees layered on top of it.
package templates
