package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/tsuke-labs/tsuke/internal/bootstrap"
	"github.com/tsuke-labs/tsuke/internal/compose"
	"github.com/tsuke-labs/tsuke/internal/config"
	"github.com/tsuke-labs/tsuke/internal/prompt"
)

var (
	newOptions      string
	newForce        bool
	newTemplateRoot string
)

var newCmd = &cobra.Command{
	Use:   "new [name]",
	Short: "Scaffold a new project from the installed templates",
	Long: `Scaffold a new project directory by composing the repo-base template
with the selected feature templates, in selection order. Overlapping
files are merged: JSON files structurally, ignore files line by line.

Without arguments the project name and options are asked interactively.

Examples:
  tsuke new
  tsuke new my-app --options eslint,prettier
  tsuke new my-app --options "" --force`,
	Args: cobra.MaximumNArgs(1),
	RunE: runNew,
}

func init() {
	newCmd.Flags().StringVar(&newOptions, "options", "", "Comma-separated feature options (skips the interactive multi-select)")
	newCmd.Flags().BoolVar(&newForce, "force", false, "Clear a non-empty target directory without asking")
	newCmd.Flags().StringVar(&newTemplateRoot, "template-root", "", "Template root directory (default: configured or ~/.tsuke/templates)")
	rootCmd.AddCommand(newCmd)
}

func runNew(cmd *cobra.Command, args []string) error {
	params := bootstrap.Params{
		Force:          newForce,
		TemplateRoot:   newTemplateRoot,
		DefaultOptions: configuredDefaultOptions(),
		CLIVersion:     buildVersion,
		Prompter:       prompt.NewSurvey(),
		Out:            cmd.OutOrStdout(),
	}
	if len(args) == 1 {
		params.Name = args[0]
	}
	if cmd.Flags().Changed("options") {
		params.Options = splitList(newOptions)
	}

	summary, err := bootstrap.Run(params)
	if err != nil {
		if errors.Is(err, bootstrap.ErrAborted) {
			fmt.Fprintln(cmd.ErrOrStderr(), "Aborted. Nothing was changed.")
			return nil
		}
		return err
	}

	printSummary(cmd, summary)
	return nil
}

func configuredDefaultOptions() []string {
	v := config.Get(config.KeyDefaultOptions)
	if v == "" {
		return nil
	}
	return splitList(v)
}

// splitList parses a comma-separated list, dropping empty entries.
func splitList(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		trimmed := strings.TrimSpace(p)
		if trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func printSummary(cmd *cobra.Command, summary *bootstrap.Summary) {
	fmt.Fprintf(cmd.OutOrStdout(), "\nCreated project at %s/\n", summary.Dir)

	for _, step := range summary.Steps {
		for _, fa := range step.Result.Files {
			switch fa.Action {
			case compose.ActionMerged:
				fmt.Fprintf(cmd.OutOrStdout(), "  %s (%s, %s merge)\n", fa.Path, fa.Action, fa.Strategy)
			default:
				fmt.Fprintf(cmd.OutOrStdout(), "  %s (%s)\n", fa.Path, fa.Action)
			}
		}
		// Warnings go to stderr so they don't pollute the file listing.
		for _, w := range step.Result.Warnings {
			fmt.Fprintf(cmd.ErrOrStderr(), "warning: %s: %s\n", step.Template, w)
		}
	}

	if len(summary.Applied) > 0 {
		fmt.Fprintf(cmd.OutOrStdout(), "\nOptions applied: %s\n", strings.Join(summary.Applied, ", "))
	}
}
