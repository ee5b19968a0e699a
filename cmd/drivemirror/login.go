package main

import (
	"errors"
	"fmt"

	"github.com/openmined/drivemirror/internal/auth"
	"github.com/openmined/drivemirror/internal/utils"
	"github.com/spf13/cobra"
)

func newLoginCmd() *cobra.Command {
	var listenAddr string
	var force bool

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Authorize drivemirror to access Google Drive",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadValidConfig(cmd)
			if err != nil {
				return err
			}
			cmd.SilenceUsage = true
			out := cmd.OutOrStdout()

			if _, err := auth.LoadToken(cfg.TokenPath); err == nil && !force {
				fmt.Fprintln(out, green.Render("**Already logged in**"))
				printConfig(out, cfg)
				return nil
			} else if err != nil && !errors.Is(err, auth.ErrNoToken) {
				printError(out, err)
			}

			oauthCfg, err := auth.LoadOAuthConfig(cfg.CredentialsPath)
			if err != nil {
				return err
			}

			tok, err := auth.Login(cmd.Context(), oauthCfg, auth.LoginOptions{
				ListenAddr: listenAddr,
				HTTPClient: auth.NewBaseHTTPClient(cfg.DebugHTTP),
				OnAuthURL: func(authURL string) {
					fmt.Fprintln(out, "Open this link in your browser to authorize drivemirror:")
					fmt.Fprintln(out, cyan.Render(authURL))
				},
			})
			if err != nil {
				return err
			}

			if err := auth.SaveToken(cfg.TokenPath, tok); err != nil {
				return fmt.Errorf("save token: %w", err)
			}

			// first login also writes the effective config so later runs need no flags
			if !utils.FileExists(cfg.Path) {
				if err := cfg.Save(); err != nil {
					return fmt.Errorf("save config: %w", err)
				}
			}

			fmt.Fprintln(out, green.Render("drivemirror authorized"))
			printConfig(out, cfg)
			return nil
		},
	}

	cmd.Flags().StringVar(&listenAddr, "listen", "", "Loopback address for the OAuth redirect (default 127.0.0.1 on a random port)")
	cmd.Flags().BoolVarP(&force, "force", "f", false, "Authorize again even if a token exists")
	return cmd
}
