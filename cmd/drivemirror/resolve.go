package main

import (
	"fmt"

	"github.com/openmined/drivemirror/internal/config"
	"github.com/openmined/drivemirror/internal/migrate"
	"github.com/openmined/drivemirror/internal/remote"
	"github.com/spf13/cobra"
)

func newResolveCmd() *cobra.Command {
	var driveName string

	cmd := &cobra.Command{
		Use:   "resolve <path>",
		Short: "Print the id of the folder at a slash-separated path",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadValidConfig(cmd)
			if err != nil {
				return err
			}
			cmd.SilenceUsage = true

			client, err := newRemoteClient(cmd.Context(), cfg)
			if err != nil {
				return err
			}

			root := remote.RootFolderID
			if driveName != "" {
				drive, err := migrate.ResolveSharedDrive(cmd.Context(), client, driveName)
				if err != nil {
					return err
				}
				root = drive.ID
			}

			id, err := migrate.ResolveID(cmd.Context(), client, root, config.SplitPath(args[0]))
			if err != nil {
				return err
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(), id)
			return err
		},
	}

	cmd.Flags().StringVar(&driveName, "drive", "", "Resolve below this shared drive instead of My Drive")
	return cmd
}
