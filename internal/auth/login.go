package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/openmined/drivemirror/internal/utils"
	"golang.org/x/oauth2"
)

const (
	callbackPath       = "/oauth2/callback"
	defaultListenAddr  = "127.0.0.1:0"
	shutdownTimeout    = 5 * time.Second
	callbackSuccessMsg = "drivemirror is authorized. You can close this window."
)

type LoginOptions struct {
	// OnAuthURL receives the consent page URL the user has to open
	OnAuthURL func(authURL string)

	// ListenAddr for the loopback redirect listener, defaults to 127.0.0.1 on a random port
	ListenAddr string

	// HTTPClient is used for the code exchange
	HTTPClient *http.Client
}

// Login runs the installed-application flow: it serves a loopback redirect, waits for the user
// to grant consent and exchanges the returned code (with PKCE) for a token.
func Login(ctx context.Context, oauthCfg *oauth2.Config, opts LoginOptions) (*oauth2.Token, error) {
	addr := opts.ListenAddr
	if addr == "" {
		addr = defaultListenAddr
	}

	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("listen for oauth callback: %w", err)
	}

	cfg := *oauthCfg
	cfg.RedirectURL = "http://" + ln.Addr().String() + callbackPath

	state := uuid.NewString()
	verifier := oauth2.GenerateVerifier()
	authURL := cfg.AuthCodeURL(state, oauth2.AccessTypeOffline, oauth2.S256ChallengeOption(verifier))

	cb := newCallbackServer(state)
	srv := &http.Server{Handler: cb.handler(), ReadHeaderTimeout: 10 * time.Second}
	go func() {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("oauth callback server", "error", err)
		}
	}()
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		srv.Shutdown(shutdownCtx)
	}()

	if opts.OnAuthURL != nil {
		opts.OnAuthURL(authURL)
	}

	var code string
	select {
	case res := <-cb.result:
		if res.err != nil {
			return nil, res.err
		}
		code = res.code
	case <-ctx.Done():
		return nil, ctx.Err()
	}

	if opts.HTTPClient != nil {
		ctx = context.WithValue(ctx, oauth2.HTTPClient, opts.HTTPClient)
	}

	tok, err := cfg.Exchange(ctx, code, oauth2.VerifierOption(verifier))
	if err != nil {
		return nil, fmt.Errorf("exchange authorization code: %w", err)
	}

	slog.Debug("oauth token issued", "access", utils.MaskSecret(tok.AccessToken), "expiry", tok.Expiry)
	return tok, nil
}

// ===================================================================================================

type callbackResult struct {
	code string
	err  error
}

type callbackServer struct {
	state  string
	result chan callbackResult
	once   sync.Once
}

func newCallbackServer(state string) *callbackServer {
	return &callbackServer{
		state:  state,
		result: make(chan callbackResult, 1),
	}
}

func (s *callbackServer) handler() http.Handler {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery())
	r.GET(callbackPath, s.handleCallback)
	return r
}

func (s *callbackServer) handleCallback(c *gin.Context) {
	if reason := c.Query("error"); reason != "" {
		s.deliver(callbackResult{err: fmt.Errorf("%w: %s", ErrConsentDenied, reason)})
		c.String(http.StatusForbidden, "authorization failed: %s", reason)
		return
	}

	if c.Query("state") != s.state {
		s.deliver(callbackResult{err: ErrStateMismatch})
		c.String(http.StatusBadRequest, "state mismatch")
		return
	}

	code := c.Query("code")
	if code == "" {
		s.deliver(callbackResult{err: ErrMissingAuthCode})
		c.String(http.StatusBadRequest, "authorization code missing")
		return
	}

	s.deliver(callbackResult{code: code})
	c.String(http.StatusOK, callbackSuccessMsg)
}

// deliver hands the first callback outcome to Login; later requests are ignored.
func (s *callbackServer) deliver(res callbackResult) {
	s.once.Do(func() {
		s.result <- res
	})
}
