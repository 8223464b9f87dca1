package oauth

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os/exec"
	"runtime"
	"time"

	"golang.org/x/oauth2"

	"github.com/petcarehq/petcare-cli/internal/auth"
	"github.com/petcarehq/petcare-cli/internal/models"
	"github.com/petcarehq/petcare-cli/internal/output"
)

// Google's OAuth 2.0 authorization-code endpoints.
var googleEndpoint = oauth2.Endpoint{
	AuthURL:  "https://accounts.google.com/o/oauth2/v2/auth",
	TokenURL: "https://oauth2.googleapis.com/token",
}

const defaultTimeout = 5 * time.Minute

// Exchanger turns an authorization code into a session. In practice this is
// the endpoint façade's LoginGoogle; the interface keeps this package free
// of the API client.
type Exchanger interface {
	LoginGoogle(ctx context.Context, code, redirectURI string) (*models.LoginResult, error)
}

// Flow runs one browser sign-in handshake. Each Run is independent: calling
// Run again while another is in flight starts a second handshake rather
// than queueing behind the first.
type Flow struct {
	clientID  string
	exchanger Exchanger
	logger    *slog.Logger

	// NoBrowser prints the authorization URL instead of launching a browser.
	NoBrowser bool
	// Timeout bounds the wait for the callback. Zero means the default.
	Timeout time.Duration

	openBrowser func(url string) error
	printf      func(format string, args ...any)
}

// NewFlow creates a handshake flow for the given OAuth client ID.
func NewFlow(clientID string, exchanger Exchanger, logger *slog.Logger) *Flow {
	if logger == nil {
		logger = slog.Default()
	}
	return &Flow{
		clientID:    clientID,
		exchanger:   exchanger,
		logger:      logger,
		openBrowser: openBrowser,
		printf: func(format string, args ...any) {
			fmt.Printf(format, args...)
		},
	}
}

// Run executes the handshake: start a loopback callback listener, send the
// user to the provider's consent page, wait for the redirect, and exchange
// the authorization code for a session.
func (f *Flow) Run(ctx context.Context) (*models.LoginResult, error) {
	if f.clientID == "" {
		return nil, output.ErrUsageHint("No OAuth client configured",
			"Set google_client_id with: petcare config set google_client_id <id>")
	}

	lc := net.ListenConfig{}
	listener, err := lc.Listen(ctx, "tcp", "127.0.0.1:0")
	if err != nil {
		return nil, output.ErrNetwork(fmt.Errorf("failed to start callback server: %w", err))
	}

	redirectURI := fmt.Sprintf("http://%s/callback", listener.Addr().String())
	state := randomState()
	fsm := NewFSM()
	events := make(chan Event, 4)

	server := &http.Server{
		ReadHeaderTimeout: 10 * time.Second,
		Handler:           callbackHandler(state, events, f.logger),
	}
	fsm.OnCleanup(func() { _ = server.Close() })
	go func() { _ = server.Serve(listener) }()

	conf := &oauth2.Config{
		ClientID:    f.clientID,
		Endpoint:    googleEndpoint,
		RedirectURL: redirectURI,
		Scopes:      []string{"openid", "email", "profile"},
	}
	authURL := conf.AuthCodeURL(state,
		oauth2.AccessTypeOffline,
		oauth2.SetAuthURLParam("prompt", "consent"))

	fsm.Apply(Event{Kind: EventStarted})
	f.handOff(fsm, authURL)

	timeout := f.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	timer := time.NewTimer(timeout)
	fsm.OnCleanup(func() { timer.Stop() })

	for !fsm.Settled() {
		select {
		case ev := <-events:
			fsm.Apply(ev)
		case <-timer.C:
			fsm.Apply(Event{Kind: EventTimeout})
		case <-ctx.Done():
			fsm.Apply(Event{Kind: EventCanceled, Reason: ctx.Err().Error()})
		}
	}

	if fsm.State() == StateFailed {
		return nil, output.ErrUsage("Google sign-in failed: " + fsm.FailureReason())
	}

	f.logger.Debug("authorization code received, exchanging for session")
	return f.exchanger.LoginGoogle(ctx, fsm.Code(), redirectURI)
}

// handOff gets the authorization URL in front of the user.
func (f *Flow) handOff(fsm *FSM, authURL string) {
	if f.NoBrowser {
		f.printf("\nOpen this URL in your browser:\n%s\n\nWaiting for sign-in...\n", authURL)
		return
	}
	if err := f.openBrowser(authURL); err != nil {
		fsm.Apply(Event{Kind: EventBrowserOpenFailed, Reason: fmt.Sprintf("could not open browser: %v", err)})
		return
	}
	f.printf("\nOpening browser for Google sign-in...\nIf it does not open, visit: %s\n\nWaiting for sign-in...\n", authURL)
}

// callbackHandler translates the provider redirect into machine events.
func callbackHandler(expectedState string, events chan<- Event, logger *slog.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()

		if errParam := q.Get("error"); errParam != "" {
			events <- Event{Kind: EventErrorReceived, Reason: errParam}
			writePage(w, "Sign-in failed", "You can close this window.")
			return
		}

		if q.Get("state") != expectedState {
			// A stray or forged callback. Answer it, tell the machine
			// nothing happened, and keep waiting for the real one.
			events <- Event{Kind: EventStateMismatch}
			writePage(w, "Sign-in failed", "State mismatch.")
			return
		}

		code := q.Get("code")
		if credential := q.Get("credential"); code == "" && credential != "" {
			// Identity-token variant: the credential is a JWT. Decoded for
			// logging only; the backend verifies the signature.
			if info, err := auth.InspectIDToken(credential); err == nil {
				logger.Debug("received identity token", "sub", info.Subject(), "email", info.Email())
			}
			code = credential
		}

		events <- Event{Kind: EventCodeReceived, Code: code}
		writePage(w, "Sign-in successful!", "You can close this window and return to the terminal.")
	})
}

func writePage(w http.ResponseWriter, title, body string) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	fmt.Fprintf(w, "<html><body><h1>%s</h1><p>%s</p></body></html>", title, body)
}

func randomState() string {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		panic("crypto/rand failed: " + err.Error())
	}
	return base64.RawURLEncoding.EncodeToString(b)
}

// openBrowser opens the URL in the platform's default browser.
func openBrowser(url string) error {
	var cmd string
	var args []string

	switch runtime.GOOS {
	case "darwin":
		cmd = "open"
		args = []string{url}
	case "linux":
		cmd = "xdg-open"
		args = []string{url}
	case "windows":
		cmd = "rundll32"
		args = []string{"url.dll,FileProtocolHandler", url}
	default:
		return fmt.Errorf("unsupported platform: %s", runtime.GOOS)
	}

	return exec.Command(cmd, args...).Start() //nolint:gosec,noctx // G204: cmd is hardcoded per-platform; fire-and-forget
}
