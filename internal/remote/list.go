package remote

import (
	"context"
	"iter"
)

// ListChildren streams the children of folderID, following page tokens until the store
// reports no further pages. A listing error is yielded once and ends the sequence.
func ListChildren(ctx context.Context, client IRemoteClient, folderID, name string) iter.Seq2[*Entry, error] {
	return func(yield func(*Entry, error) bool) {
		params := &ListParams{ParentID: folderID, Name: name}
		pageToken := ""

		for {
			page, err := client.ListPage(ctx, params, pageToken)
			if err != nil {
				yield(nil, err)
				return
			}

			for _, entry := range page.Entries {
				if !yield(entry, nil) {
					return
				}
			}

			if page.NextPageToken == "" {
				return
			}
			pageToken = page.NextPageToken
		}
	}
}

// CollectChildren drains ListChildren into a slice.
func CollectChildren(ctx context.Context, client IRemoteClient, folderID, name string) ([]*Entry, error) {
	var entries []*Entry
	for entry, err := range ListChildren(ctx, client, folderID, name) {
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, nil
}
