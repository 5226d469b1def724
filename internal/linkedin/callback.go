package linkedin

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/Sof1ane/aipply/internal/importer"
)

// callbackServer captures the single OAuth redirect on the local redirect
// URI. It accepts exactly one result and then goes quiet; Close tears the
// listener down. This is a bounded one-shot wait, not a persistent server.
type callbackServer struct {
	path     string
	state    string
	hostport string

	ln      net.Listener
	srv     *http.Server
	results chan callbackResult
	once    sync.Once
}

type callbackResult struct {
	code string
	err  error
}

func newCallbackServer(redirectURL, state string) (*callbackServer, error) {
	u, err := url.Parse(redirectURL)
	if err != nil {
		return nil, &importer.ImportError{
			Kind:    importer.ConfigMissing,
			Stage:   "callback listener",
			Message: fmt.Sprintf("invalid redirect URL %q", redirectURL),
			Cause:   err,
		}
	}
	path := u.Path
	if path == "" {
		path = "/"
	}
	return &callbackServer{
		path:     path,
		state:    state,
		hostport: u.Host,
		results:  make(chan callbackResult, 1),
	}, nil
}

// Start binds the local port. A bind failure usually means another process
// (or a previous hung attempt) holds the port.
func (s *callbackServer) Start() error {
	ln, err := net.Listen("tcp", s.hostport)
	if err != nil {
		return &importer.ImportError{
			Kind:    importer.NetworkFailure,
			Stage:   "callback listener",
			Message: fmt.Sprintf("could not bind %s for the OAuth redirect", s.hostport),
			Cause:   err,
		}
	}
	s.ln = ln
	mux := http.NewServeMux()
	mux.HandleFunc(s.path, s.handleCallback)
	s.srv = &http.Server{Handler: mux, ReadHeaderTimeout: 10 * time.Second}
	go func() { _ = s.srv.Serve(ln) }()
	return nil
}

// Addr returns the bound address, which differs from the configured one when
// the redirect URL asked for an ephemeral port.
func (s *callbackServer) Addr() string {
	if s.ln == nil {
		return s.hostport
	}
	return s.ln.Addr().String()
}

// Wait blocks until the redirect arrives, the timeout elapses, or the
// context is cancelled. Timeout and cancellation are reported as distinct
// failure kinds for diagnostics.
func (s *callbackServer) Wait(ctx context.Context, timeout time.Duration) (string, error) {
	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case res := <-s.results:
		return res.code, res.err
	case <-timer.C:
		return "", &importer.ImportError{
			Kind:    importer.AuthTimeout,
			Stage:   "authorization wait",
			Message: fmt.Sprintf("no redirect received within %s", timeout),
		}
	case <-ctx.Done():
		return "", &importer.ImportError{
			Kind:    importer.Aborted,
			Stage:   "authorization wait",
			Message: "import cancelled while waiting for authorization",
			Cause:   ctx.Err(),
		}
	}
}

// Close stops the listener. Safe to call after Wait regardless of outcome.
func (s *callbackServer) Close() {
	if s.srv != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = s.srv.Shutdown(ctx)
	}
}

func (s *callbackServer) handleCallback(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	var res callbackResult
	switch {
	case query.Get("error") != "":
		res.err = &importer.ImportError{
			Kind:    importer.AuthDenied,
			Stage:   "authorization",
			Message: fmt.Sprintf("provider returned %q: %s", query.Get("error"), query.Get("error_description")),
		}
	case query.Get("state") != s.state:
		res.err = &importer.ImportError{
			Kind:    importer.AuthDenied,
			Stage:   "authorization",
			Message: "state parameter mismatch on redirect",
		}
	case query.Get("code") == "":
		res.err = &importer.ImportError{
			Kind:    importer.AuthDenied,
			Stage:   "authorization",
			Message: "redirect carried no authorization code",
		}
	default:
		res.code = query.Get("code")
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if res.err != nil {
		w.WriteHeader(http.StatusBadRequest)
		fmt.Fprint(w, "<html><body><h2>Authorization failed</h2><p>You can close this tab and return to the terminal.</p></body></html>")
	} else {
		fmt.Fprint(w, "<html><body><h2>Authorization complete</h2><p>You can close this tab and return to the terminal.</p></body></html>")
	}

	// Only the first redirect counts; replays are answered but ignored.
	s.once.Do(func() { s.results <- res })
}
