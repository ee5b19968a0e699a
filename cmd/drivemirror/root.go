package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"
	"github.com/openmined/drivemirror/internal/auth"
	"github.com/openmined/drivemirror/internal/config"
	"github.com/openmined/drivemirror/internal/migrate"
	"github.com/openmined/drivemirror/internal/remote"
	"github.com/openmined/drivemirror/internal/utils"
	"github.com/openmined/drivemirror/internal/version"
	"github.com/spf13/cobra"
)

// newRemoteClient builds the store client for a validated config. Tests swap it out.
var newRemoteClient = func(ctx context.Context, cfg *config.Config) (remote.IRemoteClient, error) {
	oauthCfg, err := auth.LoadOAuthConfig(cfg.CredentialsPath)
	if err != nil {
		return nil, err
	}

	httpClient, err := auth.NewHTTPClient(ctx, oauthCfg, cfg.TokenPath, auth.NewBaseHTTPClient(cfg.DebugHTTP))
	if err != nil {
		return nil, err
	}

	return remote.NewDriveClientWithHTTPClient(ctx, httpClient, version.UserAgent())
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "drivemirror",
		Short: "Mirror a Google Drive folder tree into a shared drive",
		Long: `Mirror a Google Drive folder tree into another folder, usually the root of a shared drive.

Folders are matched by name and created when missing. Ordinary files that already exist in the
target are deleted and copied again. Google Forms and Google My Maps are skipped.`,
		Version: version.Detailed(),
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadValidConfig(cmd)
			if err != nil {
				return err
			}

			cmd.SilenceUsage = true
			return runMigration(cmd.Context(), cmd.OutOrStdout(), cfg)
		},
	}

	cmd.Flags().SortFlags = false
	cmd.Flags().StringP("source", "s", config.DefaultSourcePath, "Source folder path below My Drive")
	cmd.Flags().StringP("target-drive", "d", config.DefaultTargetDrive, "Target shared drive name, empty for My Drive")
	cmd.Flags().StringP("target", "t", "", "Target folder path below the target drive root")

	cmd.PersistentFlags().StringP("config", "c", config.DefaultConfigPath, "drivemirror config file")
	cmd.PersistentFlags().String("credentials", config.DefaultCredentialsPath, "OAuth client credentials file")
	cmd.PersistentFlags().String("token", config.DefaultTokenPath, "OAuth token file")
	cmd.PersistentFlags().String("log-file", config.DefaultLogFilePath, "Log file, truncated on every run")
	cmd.PersistentFlags().Bool("debug-http", false, "Dump every HTTP request and response")

	cmd.AddCommand(
		newLoginCmd(),
		newDrivesCmd(),
		newResolveCmd(),
		newConfigCmd(),
		newVersionCmd(),
	)

	return cmd
}

func runMigration(ctx context.Context, out io.Writer, cfg *config.Config) error {
	lock, err := acquireRunLock(cfg.LockPath())
	if err != nil {
		return err
	}
	defer func() {
		if unlockErr := lock.Release(); unlockErr != nil {
			slog.Warn("release run lock", "error", unlockErr)
		}
	}()

	logger, closer, err := utils.NewLogger(utils.LoggerOptions{
		Console: out,
		NoColor: noColor(out),
		LogFile: cfg.LogFile,
		Level:   slog.LevelDebug,
	})
	if err != nil {
		return err
	}
	defer closer.Close()

	logger = logger.With("run", uuid.NewString())
	logger.Info(version.ShortWithApp(), "log", cfg.LogFile)

	client, err := newRemoteClient(ctx, cfg)
	if err != nil {
		return err
	}

	start := time.Now()
	result, err := migrate.NewMigrator(client, logger).Run(ctx, &migrate.Options{
		SourcePath:  cfg.SourceComponents(),
		TargetDrive: cfg.TargetDrive,
		TargetPath:  cfg.TargetComponents(),
	})
	if result != nil {
		printSummary(out, result, start)
	}
	if err != nil {
		if remote.IsNotFound(err) {
			logger.Error("migration failed: an entry vanished mid-run or is not shared with this account", "error", err)
		} else {
			logger.Error("migration failed", "error", err)
		}
		return err
	}

	logger.Info("migration done", "took", result.Took.Round(time.Millisecond))
	return nil
}

func printSummary(w io.Writer, r *migrate.Result, start time.Time) {
	count := func(n int) string { return humanize.Comma(int64(n)) }

	fmt.Fprintln(w)
	fmt.Fprintln(w, bold.Render("Summary"))
	fmt.Fprintf(w, "%s\t%s -> %s\n", gray.Render("ROOTS"), r.SourceID, r.TargetID)
	fmt.Fprintf(w, "%s\t%s visited, %s created\n", gray.Render("FOLDERS"), count(r.Stats.FoldersVisited), count(r.Stats.FoldersCreated))
	fmt.Fprintf(w, "%s\t%s copied, %s replaced\n", gray.Render("FILES"), count(r.Stats.FilesCopied), count(r.Stats.FilesReplaced))
	fmt.Fprintf(w, "%s\t%s forms, %s maps\n", gray.Render("SKIPPED"), count(r.Stats.FormsSkipped), count(r.Stats.MapsSkipped))
	fmt.Fprintf(w, "%s\t%s (started %s)\n", gray.Render("TOOK"), r.Took.Round(time.Millisecond), humanize.Time(start))
}
