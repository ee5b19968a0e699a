package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newConfigCmd() *cobra.Command {
	var save bool

	cmd := &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadValidConfig(cmd)
			if err != nil {
				return err
			}
			cmd.SilenceUsage = true

			if save {
				if err := cfg.Save(); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), green.Render("config saved"))
			}

			printConfig(cmd.OutOrStdout(), cfg)
			return nil
		},
	}

	cmd.Flags().BoolVar(&save, "save", false, "Write the effective configuration to the config file")
	// the migration flags are accepted here so they can be saved
	cmd.Flags().StringP("source", "s", "", "Source folder path below My Drive")
	cmd.Flags().StringP("target-drive", "d", "", "Target shared drive name")
	cmd.Flags().StringP("target", "t", "", "Target folder path below the target drive root")
	return cmd
}
