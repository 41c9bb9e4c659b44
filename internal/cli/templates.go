package cli

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/tsuke-labs/tsuke/internal/catalog"
	"github.com/tsuke-labs/tsuke/internal/templates"
)

var templatesListJSON bool

func init() {
	templatesListCmd.Flags().BoolVar(&templatesListJSON, "json", false, "Output in JSON format")
	templatesCmd.AddCommand(templatesListCmd)
	templatesCmd.AddCommand(templatesUpdateCmd)
	rootCmd.AddCommand(templatesCmd)
}

var templatesCmd = &cobra.Command{
	Use:   "templates",
	Short: "Manage the local template root",
	Long:  `Inspect and refresh the templates installed under ~/.tsuke/templates.`,
}

// templateEntry represents a discovered template for display.
type templateEntry struct {
	Name        string `json:"name"`
	Kind        string `json:"kind"`
	Description string `json:"description,omitempty"`
	Version     string `json:"version,omitempty"`
}

var templatesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the base template and available options",
	RunE: func(cmd *cobra.Command, args []string) error {
		root, err := templates.Root()
		if err != nil {
			return fmt.Errorf("resolving template root: %w", err)
		}

		set, err := templates.Discover(root)
		if err != nil {
			return fmt.Errorf("discovering templates in %s: %w", root, err)
		}

		entries := []templateEntry{describeTree("base", set.Base)}
		for _, opt := range set.Options {
			entries = append(entries, describeTree("option", opt))
		}

		if templatesListJSON {
			data, err := json.MarshalIndent(entries, "", "  ")
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), string(data))
			return err
		}

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 3, ' ', 0)
		fmt.Fprintln(w, "KIND\tNAME\tVERSION\tDESCRIPTION")
		for _, e := range entries {
			version := e.Version
			if version == "" {
				version = "-"
			}
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", e.Kind, e.Name, version, e.Description)
		}
		return w.Flush()
	},
}

var templatesUpdateCmd = &cobra.Command{
	Use:   "update",
	Short: "Fetch the latest templates from the template repository",
	RunE: func(cmd *cobra.Command, args []string) error {
		root, err := templates.Root()
		if err != nil {
			return fmt.Errorf("resolving template root: %w", err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Updating templates in %s ...\n", root)
		if err := catalog.Update(root); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Templates are up to date.")
		return nil
	},
}

func describeTree(kind string, tree templates.Tree) templateEntry {
	name := tree.Option
	if kind == "base" {
		name = templates.BaseDir
	}
	entry := templateEntry{Name: name, Kind: kind}
	if tree.Manifest != nil {
		entry.Description = tree.Manifest.Description
		entry.Version = tree.Manifest.Version
	}
	return entry
}
