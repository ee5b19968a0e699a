package migrate

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/openmined/drivemirror/internal/remote"
)

// Stats counts what a Syncer did.
type Stats struct {
	FoldersVisited int
	FoldersCreated int
	FilesCopied    int
	FilesReplaced  int
	FormsSkipped   int
	MapsSkipped    int
}

// Syncer mirrors a source folder tree into a target folder. Folders are matched by name and
// never removed; ordinary files are deleted and copied again on every pass.
type Syncer struct {
	client remote.IRemoteClient
	logger *slog.Logger
	stats  Stats

	targetRootID string
}

func NewSyncer(client remote.IRemoteClient, logger *slog.Logger) *Syncer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Syncer{
		client: client,
		logger: logger,
	}
}

// Stats returns the counters accumulated over every Synchronize call.
func (s *Syncer) Stats() Stats {
	return s.stats
}

// Synchronize reconciles the children of targetFolderID with those of sourceFolderID and
// recurses into subfolders. pathPrefix is only used for logging and should end with "/".
// The first remote error aborts the walk; work done up to that point is kept.
func (s *Syncer) Synchronize(ctx context.Context, sourceFolderID, targetFolderID, pathPrefix string) error {
	if sourceFolderID == targetFolderID {
		return fmt.Errorf("%w: %s", ErrSameFolder, sourceFolderID)
	}

	s.targetRootID = targetFolderID
	defer func() { s.targetRootID = "" }()

	return s.synchronize(ctx, sourceFolderID, targetFolderID, pathPrefix)
}

func (s *Syncer) synchronize(ctx context.Context, sourceFolderID, targetFolderID, pathPrefix string) error {
	s.stats.FoldersVisited++

	targetChildren, err := remote.CollectChildren(ctx, s.client, targetFolderID, "")
	if err != nil {
		return fmt.Errorf("list target %q: %w", pathPrefix, err)
	}
	targets := newChildIndex(targetChildren)

	for source, err := range remote.ListChildren(ctx, s.client, sourceFolderID, "") {
		if err != nil {
			return fmt.Errorf("list source %q: %w", pathPrefix, err)
		}

		filePath := pathPrefix + source.Name
		s.logger.Info(filePath + ": " + source.MimeType)

		// the target lives inside the source tree; walking into it would copy it into itself
		if source.ID == s.targetRootID {
			s.logger.Warn("skipping target folder found inside source", "path", filePath)
			continue
		}

		target := targets.lookup(source.Name)
		if target.Result == LookupAmbiguous {
			return fmt.Errorf("%w: %q has %d entries", ErrAmbiguousName, filePath, len(target.Matches))
		}

		switch source.MimeType {
		case remote.FolderMimeType:
			if err := s.syncFolder(ctx, source, target, targetFolderID, filePath); err != nil {
				return err
			}

		case remote.FormMimeType:
			s.logger.Info("Google Form detected, skipping", "path", filePath)
			s.stats.FormsSkipped++

		case remote.MapMimeType:
			s.logger.Info("Google My Maps detected, skipping", "path", filePath)
			s.stats.MapsSkipped++

		default:
			if err := s.syncFile(ctx, source, target, targetFolderID, filePath); err != nil {
				return err
			}
		}
	}

	return nil
}

func (s *Syncer) syncFolder(ctx context.Context, source *remote.Entry, target Lookup, targetFolderID, filePath string) error {
	folder := target.Entry

	if target.Result == LookupAbsent {
		s.logger.Info("creating folder in target", "path", filePath)
		created, err := s.client.CreateFolder(ctx, &remote.CreateFolderParams{
			ParentID: targetFolderID,
			Name:     source.Name,
		})
		if err != nil {
			return fmt.Errorf("create folder %q: %w", filePath, err)
		}
		s.stats.FoldersCreated++
		folder = created
	} else if !folder.IsFolder() {
		return fmt.Errorf("%w: %q is a folder in source but %s in target", ErrTypeMismatch, filePath, folder.MimeType)
	}

	return s.synchronize(ctx, source.ID, folder.ID, filePath+"/")
}

func (s *Syncer) syncFile(ctx context.Context, source *remote.Entry, target Lookup, targetFolderID, filePath string) error {
	if target.Result == LookupUnique {
		if target.Entry.IsFolder() {
			return fmt.Errorf("%w: %q is a file in source but a folder in target", ErrTypeMismatch, filePath)
		}

		s.logger.Info("deleting target file", "path", filePath, "id", target.Entry.ID)
		if err := s.client.DeleteFile(ctx, target.Entry.ID); err != nil {
			return fmt.Errorf("delete %q: %w", filePath, err)
		}
		s.stats.FilesReplaced++
	}

	s.logger.Info("copying source file to target", "path", filePath)
	copied, err := s.client.CopyFile(ctx, &remote.CopyFileParams{
		SourceID: source.ID,
		Name:     source.Name,
		ParentID: targetFolderID,
		MimeType: source.MimeType,
	})
	if err != nil {
		return fmt.Errorf("copy %q: %w", filePath, err)
	}
	s.stats.FilesCopied++
	s.logger.Debug("copied", "path", filePath, "source", source.ID, "target", copied.ID)

	return nil
}
