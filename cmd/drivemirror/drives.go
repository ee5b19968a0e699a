package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newDrivesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "drives",
		Short: "List the shared drives visible to the account",
		Args:  cobra.NoArgs,
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

			drives, err := client.ListSharedDrives(cmd.Context())
			if err != nil {
				return fmt.Errorf("list shared drives: %w", err)
			}

			out := cmd.OutOrStdout()
			if len(drives) == 0 {
				fmt.Fprintln(out, gray.Render("no shared drives"))
				return nil
			}
			for _, d := range drives {
				fmt.Fprintf(out, "%s\t%s\n", gray.Render(d.ID), d.Name)
			}
			return nil
		},
	}
}
