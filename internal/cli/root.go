package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/tsuke-labs/tsuke/internal/branding"
	"github.com/tsuke-labs/tsuke/internal/catalog"
	"github.com/tsuke-labs/tsuke/internal/config"
	"github.com/tsuke-labs/tsuke/internal/templates"
)

var (
	buildVersion string
	buildCommit  string
	buildDate    string
)

var rootCmd = &cobra.Command{
	Use:   branding.CLIName(),
	Short: branding.Description(),
	Long: branding.DisplayName() + ` scaffolds a new project directory from a base template plus
optional feature templates (lint, format, commit-hook presets), merging
overlapping files instead of overwriting them.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: preRun,
}

// preRun loads user configuration for every command, then prints the
// template freshness hint. Commands that refresh templates or only
// report build info skip the hint.
func preRun(cmd *cobra.Command, args []string) {
	config.Load()

	name := cmd.Name()
	if name == "update" || name == "version" {
		return
	}

	root, err := templates.Root()
	if err != nil {
		return
	}
	if _, err := os.Stat(root); err != nil {
		return
	}
	if catalog.IsStale(root, catalog.DefaultMaxAge) {
		fmt.Fprintln(os.Stderr, staleMessage())
	}
}

func staleMessage() string {
	days := int(catalog.DefaultMaxAge.Hours() / 24)
	return fmt.Sprintf("Templates are more than %d days old. Run '%s templates update'.", days, branding.CLIName())
}

// Execute runs the root command with build info injected via ldflags.
func Execute(version, commit, date string) error {
	buildVersion = version
	buildCommit = commit
	buildDate = date
	return rootCmd.Execute()
}
