// Package remotetest provides an in-memory remote store for tests.
package remotetest

import (
	"cmp"
	"context"
	"fmt"
	"net/http"
	"slices"
	"strconv"
	"sync"

	"github.com/openmined/drivemirror/internal/remote"
	"google.golang.org/api/googleapi"
)

const DefaultPageSize = 100

// Operation names recorded in MemoryClient.Ops
const (
	OpList         = "list"
	OpListDrives   = "list_drives"
	OpCreateFolder = "create_folder"
	OpCopyFile     = "copy_file"
	OpDeleteFile   = "delete_file"
)

type node struct {
	entry   *remote.Entry
	content []byte
	trashed bool
}

// Op is a single call recorded by the client.
type Op struct {
	Name string
	ID   string
	Arg  string
}

// MemoryClient is a remote.IRemoteClient backed by maps. It evaluates list queries the way the
// real store does, so a malformed query fails the call.
type MemoryClient struct {
	// PageSize bounds entries per ListPage response
	PageSize int

	// FailOn, when set, is consulted before every call. It runs with the client lock held and
	// must not call back into the client.
	FailOn func(op, id string) error

	mu      sync.Mutex
	nodes   map[string]*node
	drives  []*remote.SharedDrive
	nextID  int
	queries []string
	ops     []Op
}

func NewMemoryClient() *MemoryClient {
	c := &MemoryClient{
		PageSize: DefaultPageSize,
		nodes:    make(map[string]*node),
	}
	c.nodes[remote.RootFolderID] = &node{entry: &remote.Entry{
		ID:       remote.RootFolderID,
		Name:     "My Drive",
		MimeType: remote.FolderMimeType,
	}}
	return c
}

// ===================================================================================================
// seeding helpers

func (c *MemoryClient) AddSharedDrive(name string) *remote.SharedDrive {
	c.mu.Lock()
	defer c.mu.Unlock()

	d := &remote.SharedDrive{ID: c.newID("drive"), Name: name}
	c.drives = append(c.drives, d)
	c.nodes[d.ID] = &node{entry: &remote.Entry{ID: d.ID, Name: name, MimeType: remote.FolderMimeType}}
	return d
}

func (c *MemoryClient) AddFolder(parentID, name string) *remote.Entry {
	return c.AddFile(parentID, name, remote.FolderMimeType, nil)
}

func (c *MemoryClient) AddFile(parentID, name, mimeType string, content []byte) *remote.Entry {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.addNode(parentID, name, mimeType, content)
}

// Trash marks an entry as trashed without removing it.
func (c *MemoryClient) Trash(id string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if n, ok := c.nodes[id]; ok {
		n.trashed = true
	}
}

// ===================================================================================================
// inspection helpers

func (c *MemoryClient) Get(id string) (*remote.Entry, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	n, ok := c.nodes[id]
	if !ok {
		return nil, false
	}
	return cloneEntry(n.entry), true
}

func (c *MemoryClient) Content(id string) []byte {
	c.mu.Lock()
	defer c.mu.Unlock()

	if n, ok := c.nodes[id]; ok {
		return slices.Clone(n.content)
	}
	return nil
}

// Children returns the non-trashed children of parentID sorted by name.
func (c *MemoryClient) Children(parentID string) []*remote.Entry {
	c.mu.Lock()
	defer c.mu.Unlock()

	var out []*remote.Entry
	for _, n := range c.sortedNodes() {
		if !n.trashed && slices.Contains(n.entry.Parents, parentID) {
			out = append(out, cloneEntry(n.entry))
		}
	}
	return out
}

// Queries returns every query string passed to ListPage.
func (c *MemoryClient) Queries() []string {
	c.mu.Lock()
	defer c.mu.Unlock()

	return slices.Clone(c.queries)
}

// Ops returns every recorded call in order.
func (c *MemoryClient) Ops() []Op {
	c.mu.Lock()
	defer c.mu.Unlock()

	return slices.Clone(c.ops)
}

// CountOps returns how many calls named op were recorded.
func (c *MemoryClient) CountOps(op string) int {
	c.mu.Lock()
	defer c.mu.Unlock()

	count := 0
	for _, o := range c.ops {
		if o.Name == op {
			count++
		}
	}
	return count
}

// ===================================================================================================
// remote.IRemoteClient

func (c *MemoryClient) ListPage(ctx context.Context, params *remote.ListParams, pageToken string) (*remote.ListPage, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	query := params.Query()
	c.queries = append(c.queries, query)
	c.ops = append(c.ops, Op{Name: OpList, ID: params.ParentID, Arg: pageToken})

	if err := c.fail(OpList, params.ParentID); err != nil {
		return nil, err
	}

	pred, err := parseQuery(query)
	if err != nil {
		return nil, &googleapi.Error{Code: http.StatusBadRequest, Message: err.Error()}
	}

	var matched []*remote.Entry
	for _, n := range c.sortedNodes() {
		if n.entry.ID != remote.RootFolderID && pred(n) {
			matched = append(matched, cloneEntry(n.entry))
		}
	}

	offset := 0
	if pageToken != "" {
		offset, err = strconv.Atoi(pageToken)
		if err != nil || offset < 0 || offset > len(matched) {
			return nil, &googleapi.Error{Code: http.StatusBadRequest, Message: "invalid page token"}
		}
	}

	size := c.PageSize
	if size <= 0 {
		size = DefaultPageSize
	}
	end := min(offset+size, len(matched))

	page := &remote.ListPage{Entries: matched[offset:end]}
	if end < len(matched) {
		page.NextPageToken = strconv.Itoa(end)
	}
	return page, nil
}

func (c *MemoryClient) ListSharedDrives(ctx context.Context) ([]*remote.SharedDrive, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.ops = append(c.ops, Op{Name: OpListDrives})
	if err := c.fail(OpListDrives, ""); err != nil {
		return nil, err
	}

	out := make([]*remote.SharedDrive, 0, len(c.drives))
	for _, d := range c.drives {
		out = append(out, &remote.SharedDrive{ID: d.ID, Name: d.Name})
	}
	return out, nil
}

func (c *MemoryClient) CreateFolder(ctx context.Context, params *remote.CreateFolderParams) (*remote.Entry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.ops = append(c.ops, Op{Name: OpCreateFolder, ID: params.ParentID, Arg: params.Name})
	if err := c.fail(OpCreateFolder, params.ParentID); err != nil {
		return nil, err
	}
	if _, ok := c.nodes[params.ParentID]; !ok {
		return nil, notFound(params.ParentID)
	}

	return cloneEntry(c.addNode(params.ParentID, params.Name, remote.FolderMimeType, nil)), nil
}

func (c *MemoryClient) CopyFile(ctx context.Context, params *remote.CopyFileParams) (*remote.Entry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.ops = append(c.ops, Op{Name: OpCopyFile, ID: params.SourceID, Arg: params.ParentID})
	if err := c.fail(OpCopyFile, params.SourceID); err != nil {
		return nil, err
	}

	src, ok := c.nodes[params.SourceID]
	if !ok {
		return nil, notFound(params.SourceID)
	}
	if src.entry.IsFolder() {
		return nil, &googleapi.Error{Code: http.StatusForbidden, Message: "folders cannot be copied"}
	}
	if _, ok := c.nodes[params.ParentID]; !ok {
		return nil, notFound(params.ParentID)
	}

	mimeType := cmp.Or(params.MimeType, src.entry.MimeType)
	name := cmp.Or(params.Name, src.entry.Name)
	return cloneEntry(c.addNode(params.ParentID, name, mimeType, slices.Clone(src.content))), nil
}

func (c *MemoryClient) DeleteFile(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.ops = append(c.ops, Op{Name: OpDeleteFile, ID: id})
	if err := c.fail(OpDeleteFile, id); err != nil {
		return err
	}
	if _, ok := c.nodes[id]; !ok {
		return notFound(id)
	}

	c.deleteTree(id)
	return nil
}

// ===================================================================================================

func (c *MemoryClient) addNode(parentID, name, mimeType string, content []byte) *remote.Entry {
	entry := &remote.Entry{
		ID:       c.newID("file"),
		Name:     name,
		MimeType: mimeType,
		Parents:  []string{parentID},
	}
	c.nodes[entry.ID] = &node{entry: entry, content: content}
	return entry
}

func (c *MemoryClient) deleteTree(id string) {
	delete(c.nodes, id)
	for childID, n := range c.nodes {
		if slices.Contains(n.entry.Parents, id) {
			c.deleteTree(childID)
		}
	}
}

func (c *MemoryClient) newID(prefix string) string {
	c.nextID++
	return fmt.Sprintf("%s-%04d", prefix, c.nextID)
}

func (c *MemoryClient) fail(op, id string) error {
	if c.FailOn == nil {
		return nil
	}
	return c.FailOn(op, id)
}

// sortedNodes orders nodes by name, then id, matching orderBy=name.
func (c *MemoryClient) sortedNodes() []*node {
	nodes := make([]*node, 0, len(c.nodes))
	for _, n := range c.nodes {
		nodes = append(nodes, n)
	}
	slices.SortFunc(nodes, func(a, b *node) int {
		return cmp.Or(cmp.Compare(a.entry.Name, b.entry.Name), cmp.Compare(a.entry.ID, b.entry.ID))
	})
	return nodes
}

func cloneEntry(e *remote.Entry) *remote.Entry {
	clone := *e
	clone.Parents = slices.Clone(e.Parents)
	return &clone
}

func notFound(id string) error {
	return &googleapi.Error{Code: http.StatusNotFound, Message: "File not found: " + id}
}

var _ remote.IRemoteClient = (*MemoryClient)(nil)
