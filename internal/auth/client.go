package auth

import (
	"context"
	"net/http"
	"time"

	"github.com/imroc/req/v3"
	"golang.org/x/oauth2"
)

// copies of large files are done server side but can still take a while to return
const requestTimeout = 5 * time.Minute

// NewBaseHTTPClient returns the transport every store request goes through. With debug set the
// req transport dumps the full request and response of each call to stdout.
func NewBaseHTTPClient(debug bool) *http.Client {
	c := req.C().SetTimeout(requestTimeout)
	if debug {
		c.EnableDumpAll().EnableDebugLog()
	}
	return c.GetClient()
}

// NewHTTPClient returns an http client that authorizes requests with the token saved at
// tokenPath, refreshing and re-saving it as needed.
func NewHTTPClient(ctx context.Context, oauthCfg *oauth2.Config, tokenPath string, base *http.Client) (*http.Client, error) {
	tok, err := LoadToken(tokenPath)
	if err != nil {
		return nil, err
	}

	if base != nil {
		ctx = context.WithValue(ctx, oauth2.HTTPClient, base)
	}

	src := newPersistingTokenSource(oauthCfg.TokenSource(ctx, tok), tokenPath, tok)
	client := oauth2.NewClient(ctx, oauth2.ReuseTokenSource(tok, src))
	if base != nil {
		client.Timeout = base.Timeout
	}
	return client, nil
}
