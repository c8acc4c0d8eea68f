package commands

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"

	"golang.org/x/oauth2"

	"tasker/internal/blobstore"
	"tasker/internal/config"
	"tasker/internal/exitcode"
	"tasker/internal/task"
)

const (
	callbackPath = "/callback"

	// Loopback ports tried in order for the redirect listener.
	callbackFirstPort = 8085
	callbackPorts     = 5

	callbackTimeout = 5 * time.Minute
	exchangeTimeout = 30 * time.Second
	refreshTimeout  = 10 * time.Second
)

const clientSetupHelp = `To store tasks in Google Drive, you need OAuth credentials:

1. Go to https://console.cloud.google.com/apis/credentials
2. Create a project (or select an existing one)
3. Enable the Google Drive API:
   https://console.cloud.google.com/apis/library/drive.googleapis.com
4. Create OAuth 2.0 credentials:
   - Click 'Create Credentials' > 'OAuth client ID'
   - Choose 'Desktop app' as application type
   - Download the JSON file
5. Save it as:
   %s

Then run 'tasker login' again.
`

func init() {
	Register(&LoginCmd{})
}

// LoginCmd implements the login command.
type LoginCmd struct{}

func (c *LoginCmd) Name() string      { return "login" }
func (c *LoginCmd) Aliases() []string { return nil }
func (c *LoginCmd) Synopsis() string  { return "Authenticate with Google Drive" }
func (c *LoginCmd) Usage() string     { return "tasker login [common flags]" }
func (c *LoginCmd) NeedsStore() bool  { return false }

func (c *LoginCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *LoginCmd) Run(ctx context.Context, cfg *config.Config, tasks task.Manager, args []string, in io.Reader, out, errOut io.Writer) int {
	if cfg.Backend != "" && !blobstore.NeedsAuth(cfg.Backend) && !cfg.Quiet {
		fmt.Fprintf(errOut, "note: backend %q does not use these credentials (set backend = \"drive\")\n", cfg.Backend)
	}

	if !cfg.HasOAuthClient() {
		fmt.Fprintf(errOut, "error: %s not found in %s\n\n", config.OAuthClientFile, cfg.Dir)
		fmt.Fprintf(errOut, clientSetupHelp, cfg.OAuthClientPath())
		return exitcode.AuthError
	}

	if cfg.HasToken() && tokenRefreshes(ctx, cfg) {
		if !cfg.Quiet {
			fmt.Fprintln(out, "already logged in")
		}
		return exitcode.Success
	}

	oauthConfig, err := blobstore.OAuthConfig(cfg)
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.AuthError
	}

	token, err := authorize(ctx, oauthConfig, errOut)
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.AuthError
	}

	if err := cfg.EnsureDir(); err != nil {
		fmt.Fprintf(errOut, "error: failed to create config directory: %v\n", err)
		return exitcode.AuthError
	}
	if err := blobstore.SaveToken(cfg.TokenPath(), token); err != nil {
		fmt.Fprintf(errOut, "error: failed to save token: %v\n", err)
		return exitcode.AuthError
	}

	if !cfg.Quiet {
		fmt.Fprintln(out, "ok")
	}
	return exitcode.Success
}

// tokenRefreshes reports whether the saved token carries a refresh token
// that the OAuth client can still trade for an access token.
func tokenRefreshes(ctx context.Context, cfg *config.Config) bool {
	token, err := blobstore.LoadToken(cfg.TokenPath())
	if err != nil || token.RefreshToken == "" {
		return false
	}
	oauthConfig, err := blobstore.OAuthConfig(cfg)
	if err != nil {
		return false
	}

	ctx, cancel := context.WithTimeout(ctx, refreshTimeout)
	defer cancel()
	_, err = oauthConfig.TokenSource(ctx, token).Token()
	return err == nil
}

// authorize runs the installed-app flow: a PKCE authorization URL is printed
// to errOut and the code arrives on a loopback redirect.
func authorize(ctx context.Context, oauthConfig *oauth2.Config, errOut io.Writer) (*oauth2.Token, error) {
	listener, err := listenLoopback()
	if err != nil {
		return nil, err
	}
	defer listener.Close()

	port := listener.Addr().(*net.TCPAddr).Port
	oauthConfig.RedirectURL = fmt.Sprintf("http://localhost:%d%s", port, callbackPath)

	state := oauth2.GenerateVerifier()
	verifier := oauth2.GenerateVerifier()
	authURL := oauthConfig.AuthCodeURL(state, oauth2.AccessTypeOffline, oauth2.S256ChallengeOption(verifier))
	fmt.Fprintf(errOut, "Open this URL in your browser:\n%s\n", authURL)

	code, err := awaitCode(ctx, listener, state)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, exchangeTimeout)
	defer cancel()
	token, err := oauthConfig.Exchange(ctx, code, oauth2.VerifierOption(verifier))
	if err != nil {
		return nil, fmt.Errorf("failed to exchange code for token: %w", err)
	}
	return token, nil
}

func listenLoopback() (net.Listener, error) {
	for port := callbackFirstPort; port < callbackFirstPort+callbackPorts; port++ {
		if l, err := net.Listen("tcp", fmt.Sprintf("localhost:%d", port)); err == nil {
			return l, nil
		}
	}
	return nil, errors.New("could not bind to local port for OAuth callback")
}

// callbackResult is one redirect delivered to the loopback server.
type callbackResult struct {
	code string
	err  error
}

// awaitCode serves the redirect endpoint on listener until a code arrives,
// the callback window closes or ctx is cancelled.
func awaitCode(ctx context.Context, listener net.Listener, state string) (string, error) {
	results := make(chan callbackResult, 1)
	mux := http.NewServeMux()
	mux.Handle(callbackPath, callbackHandler(state, results))

	server := &http.Server{Handler: mux, ReadHeaderTimeout: 10 * time.Second}
	go func() {
		if err := server.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			deliver(results, callbackResult{err: err})
		}
	}()
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		server.Shutdown(shutdownCtx)
	}()

	timer := time.NewTimer(callbackTimeout)
	defer timer.Stop()

	select {
	case res := <-results:
		return res.code, res.err
	case <-timer.C:
		return "", errors.New("oauth callback timed out")
	case <-ctx.Done():
		return "", errors.New("cancelled")
	}
}

// callbackHandler accepts the authorization redirect. Only the first result
// is kept; later requests are answered but dropped.
func callbackHandler(state string, results chan<- callbackResult) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		switch {
		case q.Get("state") != state:
			http.Error(w, "State mismatch", http.StatusBadRequest)
			deliver(results, callbackResult{err: errors.New("oauth state mismatch")})
		case q.Get("error") != "":
			http.Error(w, "Authorization denied", http.StatusForbidden)
			deliver(results, callbackResult{err: fmt.Errorf("authorization denied: %s", q.Get("error"))})
		case q.Get("code") == "":
			http.Error(w, "No code in callback", http.StatusBadRequest)
			deliver(results, callbackResult{err: errors.New("no code in callback")})
		default:
			w.Header().Set("Content-Type", "text/html")
			fmt.Fprint(w, "<html><body><h1>Authentication successful</h1><p>You may close this window.</p></body></html>")
			deliver(results, callbackResult{code: q.Get("code")})
		}
	})
}

func deliver(results chan<- callbackResult, res callbackResult) {
	select {
	case results <- res:
	default:
	}
}
