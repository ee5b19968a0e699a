package migrate

import (
	"bytes"
	"io"
	"log/slog"
	"testing"

	"github.com/openmined/drivemirror/internal/remote"
	"github.com/openmined/drivemirror/internal/remote/remotetest"
)

const textPlain = "text/plain"

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func bufferLogger() (*slog.Logger, *bytes.Buffer) {
	var buf bytes.Buffer
	return slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})), &buf
}

// snapshot maps "/a/b" style paths to mime types for everything below folderID.
func snapshot(t *testing.T, c *remotetest.MemoryClient, folderID string) map[string]string {
	t.Helper()
	out := map[string]string{}
	var walk func(id, prefix string)
	walk = func(id, prefix string) {
		for _, e := range c.Children(id) {
			p := prefix + "/" + e.Name
			out[p] = e.MimeType
			if e.IsFolder() {
				walk(e.ID, p)
			}
		}
	}
	walk(folderID, "")
	return out
}

// idsByPath maps paths to entry ids for everything below folderID.
func idsByPath(t *testing.T, c *remotetest.MemoryClient, folderID string) map[string]string {
	t.Helper()
	out := map[string]string{}
	var walk func(id, prefix string)
	walk = func(id, prefix string) {
		for _, e := range c.Children(id) {
			p := prefix + "/" + e.Name
			out[p] = e.ID
			if e.IsFolder() {
				walk(e.ID, p)
			}
		}
	}
	walk(folderID, "")
	return out
}

// seedSource builds:
//
//	src/
//	  docs/
//	    a.txt
//	    nested/
//	      b.txt
//	  form
//	  map
//	  readme.md
//	  empty/
func seedSource(c *remotetest.MemoryClient) *remote.Entry {
	src := c.AddFolder(remote.RootFolderID, "src")
	docs := c.AddFolder(src.ID, "docs")
	c.AddFile(docs.ID, "a.txt", textPlain, []byte("a"))
	nested := c.AddFolder(docs.ID, "nested")
	c.AddFile(nested.ID, "b.txt", textPlain, []byte("b"))
	c.AddFile(src.ID, "form", remote.FormMimeType, nil)
	c.AddFile(src.ID, "map", remote.MapMimeType, nil)
	c.AddFile(src.ID, "readme.md", "text/markdown", []byte("# hi"))
	c.AddFolder(src.ID, "empty")
	return src
}
