// Package catalog manages the template repository backing the local
// template root. It handles cloning, updating, and freshness tracking.
package catalog

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/tsuke-labs/tsuke/internal/branding"
	"github.com/tsuke-labs/tsuke/internal/config"
)

const (
	// freshnessFile is the name of the timestamp marker file.
	freshnessFile = ".templates-updated"

	// DefaultMaxAge is the default staleness threshold (30 days).
	DefaultMaxAge = 30 * 24 * time.Hour

	// tmpSuffix is appended to the target dir during atomic clone.
	tmpSuffix = ".tmp"
)

// RepoURL returns the template repository URL, checking (in order):
// 1. TSUKE_TEMPLATE_REPO_URL env var
// 2. config key "template_repo"
// 3. branding.TemplateRepoURL() (from branding.yaml)
func RepoURL() string {
	if v := os.Getenv(branding.EnvVar("TEMPLATE_REPO_URL")); v != "" {
		return v
	}
	if v := config.Get(config.KeyTemplateRepo); v != "" {
		return v
	}
	return branding.TemplateRepoURL()
}

// Clone performs a shallow clone of the template repository into targetDir.
//
// The clone is atomic: it writes to a .tmp directory first, then renames
// on success. On failure the .tmp directory is cleaned up.
func Clone(targetDir string) error {
	if err := ensureGit(); err != nil {
		return err
	}

	repoURL := RepoURL()
	tmpDir := targetDir + tmpSuffix

	// Clean up any leftover tmp dir from a previous failed attempt.
	_ = os.RemoveAll(tmpDir)

	if err := os.MkdirAll(filepath.Dir(tmpDir), 0755); err != nil {
		return fmt.Errorf("creating parent directory: %w", err)
	}

	cmd := exec.Command("git", "clone", "--depth=1", repoURL, tmpDir)
	if output, err := cmd.CombinedOutput(); err != nil {
		_ = os.RemoveAll(tmpDir)
		return fmt.Errorf("cloning templates: %w\n%s", err, strings.TrimSpace(string(output)))
	}

	// Atomic rename.
	if err := os.RemoveAll(targetDir); err != nil {
		_ = os.RemoveAll(tmpDir)
		return fmt.Errorf("removing existing template dir: %w", err)
	}
	if err := os.Rename(tmpDir, targetDir); err != nil {
		_ = os.RemoveAll(tmpDir)
		return fmt.Errorf("finalizing template clone: %w", err)
	}

	WriteFreshnessMarker(targetDir)
	return nil
}

// Update pulls the latest changes in the template repo directory.
// If the directory is not a git checkout yet, it calls Clone instead.
func Update(templateRepoDir string) error {
	if err := ensureGit(); err != nil {
		return err
	}

	gitDir := filepath.Join(templateRepoDir, ".git")
	if _, err := os.Stat(gitDir); os.IsNotExist(err) {
		return Clone(templateRepoDir)
	}

	cmd := exec.Command("git", "pull", "--depth=1", "--rebase")
	cmd.Dir = templateRepoDir
	output, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("pulling template updates: %w\n%s", err, strings.TrimSpace(string(output)))
	}

	WriteFreshnessMarker(templateRepoDir)
	return nil
}

// WriteFreshnessMarker writes the current Unix timestamp to the freshness file.
func WriteFreshnessMarker(templateRepoDir string) {
	markerPath := filepath.Join(templateRepoDir, freshnessFile)
	ts := strconv.FormatInt(time.Now().Unix(), 10)
	_ = os.WriteFile(markerPath, []byte(ts), 0644)
}

// ReadFreshnessMarker reads the timestamp from the freshness file.
// Returns zero time if the file doesn't exist or can't be parsed.
func ReadFreshnessMarker(templateRepoDir string) time.Time {
	markerPath := filepath.Join(templateRepoDir, freshnessFile)
	data, err := os.ReadFile(markerPath)
	if err != nil {
		return time.Time{}
	}
	ts, err := strconv.ParseInt(strings.TrimSpace(string(data)), 10, 64)
	if err != nil {
		return time.Time{}
	}
	return time.Unix(ts, 0)
}

// IsStale returns true if the templates were last updated more than maxAge
// ago, or never.
func IsStale(templateRepoDir string, maxAge time.Duration) bool {
	lastUpdated := ReadFreshnessMarker(templateRepoDir)
	if lastUpdated.IsZero() {
		return true
	}
	return time.Since(lastUpdated) > maxAge
}

// ensureGit checks that git is available on PATH.
func ensureGit() error {
	if _, err := exec.LookPath("git"); err != nil {
		return fmt.Errorf("git is required but not found in PATH")
	}
	return nil
}
