package remote

import (
	"context"
	"fmt"
	"net/http"

	"google.golang.org/api/drive/v3"
	"google.golang.org/api/option"
)

const (
	entryFields     = "id, name, mimeType, parents"
	listFields      = "nextPageToken, files(" + entryFields + ")"
	driveListFields = "nextPageToken, drives(id, name)"
	orderByName     = "name"
	drivesPageSize  = 100
)

type DriveClient struct {
	service *drive.Service
}

func NewDriveClient(service *drive.Service) *DriveClient {
	return &DriveClient{
		service: service,
	}
}

// NewDriveClientWithHTTPClient builds the Drive service on top of an already authorized http client.
func NewDriveClientWithHTTPClient(ctx context.Context, httpClient *http.Client, userAgent string) (*DriveClient, error) {
	opts := []option.ClientOption{option.WithHTTPClient(httpClient)}
	if userAgent != "" {
		opts = append(opts, option.WithUserAgent(userAgent))
	}

	service, err := drive.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("drive service: %w", err)
	}

	return NewDriveClient(service), nil
}

// ===================================================================================================

func (c *DriveClient) ListPage(ctx context.Context, params *ListParams, pageToken string) (*ListPage, error) {
	call := c.service.Files.List().
		Context(ctx).
		Q(params.Query()).
		OrderBy(orderByName).
		SupportsAllDrives(true).
		IncludeItemsFromAllDrives(true).
		Fields(listFields)
	if pageToken != "" {
		call = call.PageToken(pageToken)
	}

	resp, err := call.Do()
	if err != nil {
		return nil, err
	}

	entries := make([]*Entry, 0, len(resp.Files))
	for _, f := range resp.Files {
		entries = append(entries, toEntry(f))
	}

	return &ListPage{
		Entries:       entries,
		NextPageToken: resp.NextPageToken,
	}, nil
}

func (c *DriveClient) ListSharedDrives(ctx context.Context) ([]*SharedDrive, error) {
	var drives []*SharedDrive

	err := c.service.Drives.List().
		Context(ctx).
		PageSize(drivesPageSize).
		Fields(driveListFields).
		Pages(ctx, func(page *drive.DriveList) error {
			for _, d := range page.Drives {
				drives = append(drives, &SharedDrive{ID: d.Id, Name: d.Name})
			}
			return nil
		})
	if err != nil {
		return nil, err
	}

	return drives, nil
}

// ===================================================================================================

func (c *DriveClient) CreateFolder(ctx context.Context, params *CreateFolderParams) (*Entry, error) {
	f, err := c.service.Files.Create(&drive.File{
		Name:     params.Name,
		MimeType: FolderMimeType,
		Parents:  []string{params.ParentID},
	}).
		Context(ctx).
		SupportsAllDrives(true).
		Fields(entryFields).
		Do()
	if err != nil {
		return nil, err
	}

	return toEntry(f), nil
}

// ===================================================================================================

func (c *DriveClient) CopyFile(ctx context.Context, params *CopyFileParams) (*Entry, error) {
	f, err := c.service.Files.Copy(params.SourceID, &drive.File{
		Name:     params.Name,
		MimeType: params.MimeType,
		Parents:  []string{params.ParentID},
	}).
		Context(ctx).
		SupportsAllDrives(true).
		Fields(entryFields).
		Do()
	if err != nil {
		return nil, err
	}

	return toEntry(f), nil
}

// ===================================================================================================

func (c *DriveClient) DeleteFile(ctx context.Context, id string) error {
	return c.service.Files.Delete(id).
		Context(ctx).
		SupportsAllDrives(true).
		Do()
}

// ===================================================================================================

func toEntry(f *drive.File) *Entry {
	return &Entry{
		ID:       f.Id,
		Name:     f.Name,
		MimeType: f.MimeType,
		Parents:  f.Parents,
	}
}

// check if DriveClient implements IRemoteClient interface
var _ IRemoteClient = (*DriveClient)(nil)
