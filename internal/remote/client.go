package remote

import (
	"context"
)

const (
	// RootFolderID is the alias the store accepts for the caller's own top-level folder
	RootFolderID = "root"

	FolderMimeType = "application/vnd.google-apps.folder"
	FormMimeType   = "application/vnd.google-apps.form"
	MapMimeType    = "application/vnd.google-apps.map"
)

type IRemoteClient interface {
	ListPage(ctx context.Context, params *ListParams, pageToken string) (*ListPage, error)
	ListSharedDrives(ctx context.Context) ([]*SharedDrive, error)
	CreateFolder(ctx context.Context, params *CreateFolderParams) (*Entry, error)
	CopyFile(ctx context.Context, params *CopyFileParams) (*Entry, error)
	DeleteFile(ctx context.Context, id string) error
}

// Entry is a file or folder as seen by the store.
type Entry struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	MimeType string   `json:"mimeType"`
	Parents  []string `json:"parents"`
}

func (e *Entry) IsFolder() bool {
	return e.MimeType == FolderMimeType
}

type SharedDrive struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// ===================================================================================================

type ListPage struct {
	Entries       []*Entry
	NextPageToken string
}

// ===================================================================================================

type CreateFolderParams struct {
	ParentID string
	Name     string
}

// ===================================================================================================

type CopyFileParams struct {
	SourceID string
	Name     string
	ParentID string
	MimeType string
}
