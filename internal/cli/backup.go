package cli

import (
	"context"
	"errors"
	"fmt"

	"alcyxob/workout-tracker/internal/app"

	"github.com/spf13/cobra"
)

var errRemoteDisabled = errors.New("remote backups are not configured (s3.bucket_name is empty)")

// NewBackupCommand groups the remote backup subcommands.
func NewBackupCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "backup",
		Short: "Push or pull backups to S3-compatible storage",
	}

	cmd.AddCommand(newBackupPushCommand(rootOpts))
	cmd.AddCommand(newBackupPullCommand(rootOpts))

	return cmd
}

func newBackupPushCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "push",
		Short: "Upload the current data as a new backup",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, rootOpts, func(ctx context.Context, a *app.App) error {
				if a.Backups == nil {
					return errRemoteDisabled
				}
				key, err := a.Store.PushBackup(ctx, a.Backups)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "backup uploaded: %s\n", key)
				return nil
			})
		},
	}
}

func newBackupPullCommand(rootOpts *RootOptions) *cobra.Command {
	var key string

	cmd := &cobra.Command{
		Use:   "pull",
		Short: "Replace all data with a remote backup",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, rootOpts, func(ctx context.Context, a *app.App) error {
				if a.Backups == nil {
					return errRemoteDisabled
				}
				if err := a.Store.PullBackup(ctx, a.Backups, key); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), "backup restored")
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&key, "key", "", "object key (default: latest backup)")

	return cmd
}
