package migrate

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/openmined/drivemirror/internal/remote"
)

// Options names the two folder trees of a migration.
type Options struct {
	// SourcePath is resolved below the caller's own root folder
	SourcePath []string

	// TargetDrive is the display name of a shared drive. When empty, TargetPath is resolved below
	// the caller's own root folder instead.
	TargetDrive string
	TargetPath  []string
}

// Result describes a finished run.
type Result struct {
	SourceID string
	TargetID string
	Stats    Stats
	Took     time.Duration
}

type Migrator struct {
	client remote.IRemoteClient
	logger *slog.Logger
}

func NewMigrator(client remote.IRemoteClient, logger *slog.Logger) *Migrator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Migrator{
		client: client,
		logger: logger,
	}
}

// Resolve returns the folder ids the options point at.
func (m *Migrator) Resolve(ctx context.Context, opts *Options) (sourceID, targetID string, err error) {
	sourceID, err = ResolveID(ctx, m.client, remote.RootFolderID, opts.SourcePath)
	if err != nil {
		return "", "", fmt.Errorf("source: %w", err)
	}

	targetRoot := remote.RootFolderID
	if opts.TargetDrive != "" {
		drive, err := ResolveSharedDrive(ctx, m.client, opts.TargetDrive)
		if err != nil {
			return "", "", fmt.Errorf("target: %w", err)
		}
		targetRoot = drive.ID
	}

	targetID, err = ResolveID(ctx, m.client, targetRoot, opts.TargetPath)
	if err != nil {
		return "", "", fmt.Errorf("target: %w", err)
	}

	if sourceID == targetID {
		return "", "", fmt.Errorf("%w: %s", ErrSameFolder, sourceID)
	}

	return sourceID, targetID, nil
}

// Run resolves both roots and mirrors the source tree into the target. On a failed walk the
// partial result is returned alongside the error.
func (m *Migrator) Run(ctx context.Context, opts *Options) (*Result, error) {
	start := time.Now()

	sourceID, targetID, err := m.Resolve(ctx, opts)
	if err != nil {
		return nil, err
	}
	m.logger.Info("migration roots resolved", "source", sourceID, "target", targetID)

	syncer := NewSyncer(m.client, m.logger)
	err = syncer.Synchronize(ctx, sourceID, targetID, "/")

	result := &Result{
		SourceID: sourceID,
		TargetID: targetID,
		Stats:    syncer.Stats(),
		Took:     time.Since(start),
	}
	return result, err
}
