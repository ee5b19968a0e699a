package remote

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// pagedClient serves fixed pages keyed by page token.
type pagedClient struct {
	IRemoteClient
	pages  map[string]*ListPage
	err    error
	errAt  string
	tokens []string
	params []*ListParams
}

func (p *pagedClient) ListPage(_ context.Context, params *ListParams, pageToken string) (*ListPage, error) {
	p.tokens = append(p.tokens, pageToken)
	p.params = append(p.params, params)
	if p.err != nil && pageToken == p.errAt {
		return nil, p.err
	}
	page, ok := p.pages[pageToken]
	if !ok {
		return nil, fmt.Errorf("unknown page token %q", pageToken)
	}
	return page, nil
}

func entries(names ...string) []*Entry {
	out := make([]*Entry, 0, len(names))
	for _, n := range names {
		out = append(out, &Entry{ID: "id-" + n, Name: n})
	}
	return out
}

func names(es []*Entry) []string {
	out := make([]string, 0, len(es))
	for _, e := range es {
		out = append(out, e.Name)
	}
	return out
}

func TestListChildren_FollowsPageTokens(t *testing.T) {
	client := &pagedClient{pages: map[string]*ListPage{
		"":   {Entries: entries("a", "b"), NextPageToken: "p2"},
		"p2": {Entries: entries("c", "d"), NextPageToken: "p3"},
		"p3": {Entries: entries("e")},
	}}

	got, err := CollectChildren(context.Background(), client, "folder", "")
	require.NoError(t, err)

	assert.Equal(t, []string{"a", "b", "c", "d", "e"}, names(got))
	assert.Equal(t, []string{"", "p2", "p3"}, client.tokens)
	for _, p := range client.params {
		assert.Equal(t, "folder", p.ParentID)
		assert.Empty(t, p.Name)
	}
}

func TestListChildren_PassesNameFilter(t *testing.T) {
	client := &pagedClient{pages: map[string]*ListPage{
		"": {Entries: entries("x")},
	}}

	_, err := CollectChildren(context.Background(), client, "folder", "x")
	require.NoError(t, err)
	require.Len(t, client.params, 1)
	assert.Equal(t, "x", client.params[0].Name)
}

func TestListChildren_EmptyFolder(t *testing.T) {
	client := &pagedClient{pages: map[string]*ListPage{"": {}}}

	got, err := CollectChildren(context.Background(), client, "folder", "")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestListChildren_ErrorMidway(t *testing.T) {
	boom := errors.New("boom")
	client := &pagedClient{
		pages: map[string]*ListPage{
			"": {Entries: entries("a"), NextPageToken: "p2"},
		},
		err:   boom,
		errAt: "p2",
	}

	var seen []string
	var gotErr error
	for e, err := range ListChildren(context.Background(), client, "folder", "") {
		if err != nil {
			gotErr = err
			continue
		}
		seen = append(seen, e.Name)
	}

	assert.ErrorIs(t, gotErr, boom)
	assert.Equal(t, []string{"a"}, seen)

	_, err := CollectChildren(context.Background(), client, "folder", "")
	assert.ErrorIs(t, err, boom)
}

func TestListChildren_StopsEarly(t *testing.T) {
	client := &pagedClient{pages: map[string]*ListPage{
		"":   {Entries: entries("a", "b"), NextPageToken: "p2"},
		"p2": {Entries: entries("c")},
	}}

	for e, err := range ListChildren(context.Background(), client, "folder", "") {
		require.NoError(t, err)
		if e.Name == "a" {
			break
		}
	}

	// the second page is never requested
	assert.Equal(t, []string{""}, client.tokens)
}
