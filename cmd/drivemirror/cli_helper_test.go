package main

import (
	"bytes"
	"context"
	"path/filepath"
	"regexp"
	"testing"

	"github.com/openmined/drivemirror/internal/config"
	"github.com/openmined/drivemirror/internal/remote"
	"github.com/openmined/drivemirror/internal/remote/remotetest"
)

var ansiRE = regexp.MustCompile(`\x1b\[[0-9;]*m`)

func stripANSI(s string) string {
	return ansiRE.ReplaceAllString(s, "")
}

// isolate points every path drivemirror touches into a temp dir and returns it.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	for _, key := range []string{"CREDENTIALS_PATH", "TOKEN_PATH", "LOG_FILE", "SOURCE_PATH", "TARGET_DRIVE", "TARGET_PATH", "DEBUG_HTTP"} {
		t.Setenv(envPrefix+"_"+key, "")
	}
	t.Setenv(envPrefix+"_CONFIG_PATH", filepath.Join(dir, "config.json"))
	t.Setenv(envPrefix+"_CREDENTIALS_PATH", filepath.Join(dir, "credentials.json"))
	t.Setenv(envPrefix+"_TOKEN_PATH", filepath.Join(dir, "token.json"))
	t.Setenv(envPrefix+"_LOG_FILE", filepath.Join(dir, "drivemirror.log"))
	return dir
}

// useMemoryClient routes every command to c for the duration of the test.
func useMemoryClient(t *testing.T, c *remotetest.MemoryClient) {
	t.Helper()
	orig := newRemoteClient
	newRemoteClient = func(context.Context, *config.Config) (remote.IRemoteClient, error) {
		return c, nil
	}
	t.Cleanup(func() { newRemoteClient = orig })
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()

	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)

	err := cmd.ExecuteContext(context.Background())
	return stripANSI(out.String()), err
}
