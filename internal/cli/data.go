package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"alcyxob/workout-tracker/internal/app"
	"alcyxob/workout-tracker/internal/service"

	"github.com/spf13/cobra"
)

// NewExportCommand writes a backup document to a file or stdout.
func NewExportCommand(rootOpts *RootOptions) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export all data as a backup document",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, rootOpts, func(_ context.Context, a *app.App) error {
				return runExport(a.Store, output, cmd.OutOrStdout())
			})
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default stdout)")

	return cmd
}

func runExport(store *service.Store, output string, stdout io.Writer) error {
	body, err := json.MarshalIndent(store.Export(), "", "  ")
	if err != nil {
		return fmt.Errorf("encode backup: %w", err)
	}
	if output == "" {
		_, err = fmt.Fprintln(stdout, string(body))
		return err
	}
	return os.WriteFile(output, body, 0o600)
}

// NewImportCommand replaces all data with a backup document.
func NewImportCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Replace all data with a backup document",
		Long: `Replace exercises, workouts and settings with the contents of a backup
document. The document is validated first; nothing changes when it is invalid.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			pending, err := service.ParseBackup(raw)
			if err != nil {
				return err
			}
			return withApp(cmd, rootOpts, func(ctx context.Context, a *app.App) error {
				if err := a.Store.ApplyImport(ctx, pending); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "imported %d exercises and %d workouts\n", len(pending.Exercises), len(pending.Workouts))
				return nil
			})
		},
	}

	return cmd
}

// NewResetCommand removes all data and reseeds the exercise catalog.
func NewResetCommand(rootOpts *RootOptions) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Delete all data and restore the default exercises",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes {
				return fmt.Errorf("reset deletes every workout; pass --yes to confirm")
			}
			return withApp(cmd, rootOpts, func(ctx context.Context, a *app.App) error {
				a.Store.Reset(ctx)
				fmt.Fprintf(cmd.OutOrStdout(), "reset done, %d exercises seeded\n", len(a.Store.Exercises()))
				return nil
			})
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "confirm the reset")

	return cmd
}
