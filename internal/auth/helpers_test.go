package auth

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"golang.org/x/oauth2"
)

// fakeTokenServer answers authorization_code and refresh_token grants.
type fakeTokenServer struct {
	*httptest.Server
	exchanges atomic.Int32
	refreshes atomic.Int32
	verifiers chan string
}

func newFakeTokenServer(t *testing.T) *fakeTokenServer {
	t.Helper()
	f := &fakeTokenServer{verifiers: make(chan string, 4)}
	f.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.NoError(t, r.ParseForm())

		var resp map[string]any
		switch r.PostForm.Get("grant_type") {
		case "authorization_code":
			f.exchanges.Add(1)
			assert.Equal(t, "the-code", r.PostForm.Get("code"))
			f.verifiers <- r.PostForm.Get("code_verifier")
			resp = map[string]any{"access_token": "access-1", "refresh_token": "refresh-1", "token_type": "Bearer", "expires_in": 3600}
		case "refresh_token":
			f.refreshes.Add(1)
			assert.Equal(t, "refresh-1", r.PostForm.Get("refresh_token"))
			resp = map[string]any{"access_token": "access-2", "token_type": "Bearer", "expires_in": 3600}
		default:
			http.Error(w, "unsupported grant", http.StatusBadRequest)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		assert.NoError(t, json.NewEncoder(w).Encode(resp))
	}))
	t.Cleanup(f.Close)
	return f
}

func (f *fakeTokenServer) config() *oauth2.Config {
	return &oauth2.Config{
		ClientID:     "client-id",
		ClientSecret: "client-secret",
		Scopes:       Scopes,
		Endpoint: oauth2.Endpoint{
			AuthURL:   "https://accounts.example.com/o/oauth2/auth",
			TokenURL:  f.URL + "/token",
			AuthStyle: oauth2.AuthStyleInParams,
		},
	}
}
