package migrate

import (
	"context"
	"fmt"

	"github.com/openmined/drivemirror/internal/remote"
)

// ResolveID walks path below rootFolderID one name at a time and returns the id of the last
// component. Each component must match exactly one child; an empty path yields rootFolderID.
func ResolveID(ctx context.Context, client remote.IRemoteClient, rootFolderID string, path []string) (string, error) {
	id := rootFolderID

	for i, component := range path {
		matches, err := remote.CollectChildren(ctx, client, id, component)
		if err != nil {
			return "", fmt.Errorf("resolve %q: %w", component, err)
		}

		l := lookupOf(matches)
		switch l.Result {
		case LookupAbsent:
			return "", fmt.Errorf("%w: %q (component %d of %v)", ErrPathNotFound, component, i+1, path)
		case LookupAmbiguous:
			return "", fmt.Errorf("%w: %q matches %d entries (component %d of %v)", ErrPathAmbiguous, component, len(l.Matches), i+1, path)
		}

		id = l.Entry.ID
	}

	return id, nil
}

// ResolveSharedDrive finds the single shared drive with the given display name.
func ResolveSharedDrive(ctx context.Context, client remote.IRemoteClient, name string) (*remote.SharedDrive, error) {
	drives, err := client.ListSharedDrives(ctx)
	if err != nil {
		return nil, fmt.Errorf("list shared drives: %w", err)
	}

	var found []*remote.SharedDrive
	for _, d := range drives {
		if d.Name == name {
			found = append(found, d)
		}
	}

	switch len(found) {
	case 0:
		return nil, fmt.Errorf("%w: %q", ErrSharedDriveAbsent, name)
	case 1:
		return found[0], nil
	default:
		return nil, fmt.Errorf("%w: %q matches %d drives", ErrSharedDriveDup, name, len(found))
	}
}
