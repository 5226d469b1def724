// Package linkedin implements the API import path: an OAuth 2.0
// authorization-code exchange against LinkedIn followed by profile-read calls
// mapped into the canonical profile schema.
package linkedin

import (
	"context"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/browser"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/linkedin"

	"github.com/Sof1ane/aipply/internal/importer"
	"github.com/Sof1ane/aipply/internal/profile"
)

// DefaultRedirectURL is the redirect target registered with the OAuth
// provider. It must match the registration exactly; a mismatch surfaces as a
// provider-side authorization failure.
const DefaultRedirectURL = "http://localhost:8080/callback"

// DefaultAuthTimeout bounds the wait for the browser round-trip.
const DefaultAuthTimeout = 3 * time.Minute

// DefaultAPIBaseURL is the LinkedIn REST API root.
const DefaultAPIBaseURL = "https://api.linkedin.com/v2"

// Scopes are the permissions requested from the provider: basic profile read
// and email read. No write, posting, or messaging scope is ever requested.
var Scopes = []string{"r_liteprofile", "r_emailaddress"}

// Config holds the client credentials and the knobs tests override.
type Config struct {
	ClientID     string
	ClientSecret string

	// RedirectURL defaults to DefaultRedirectURL.
	RedirectURL string
	// AuthTimeout defaults to DefaultAuthTimeout.
	AuthTimeout time.Duration
	// APIBaseURL defaults to DefaultAPIBaseURL.
	APIBaseURL string
	// Endpoint defaults to LinkedIn's OAuth endpoints.
	Endpoint oauth2.Endpoint
	// OpenBrowser launches the user's browser at the authorization URL.
	// Defaults to the system browser.
	OpenBrowser func(url string) error

	Verbose bool
}

// Client performs the OAuth handshake and the profile fetch.
type Client struct {
	cfg   Config
	oauth *oauth2.Config
}

// NewClient validates the credential pair and builds a client. Missing
// credentials are a ConfigMissing failure so the selector can fall back to
// manual entry instead of terminating.
func NewClient(cfg Config) (*Client, error) {
	if cfg.ClientID == "" || cfg.ClientSecret == "" {
		return nil, &importer.ImportError{
			Kind:    importer.ConfigMissing,
			Stage:   "configuration",
			Message: "LINKEDIN_CLIENT_ID and LINKEDIN_CLIENT_SECRET must both be set",
		}
	}
	if cfg.RedirectURL == "" {
		cfg.RedirectURL = DefaultRedirectURL
	}
	if cfg.AuthTimeout <= 0 {
		cfg.AuthTimeout = DefaultAuthTimeout
	}
	if cfg.APIBaseURL == "" {
		cfg.APIBaseURL = DefaultAPIBaseURL
	}
	if cfg.Endpoint.AuthURL == "" {
		cfg.Endpoint = linkedin.Endpoint
	}
	if cfg.OpenBrowser == nil {
		cfg.OpenBrowser = browser.OpenURL
	}

	return &Client{
		cfg: cfg,
		oauth: &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			RedirectURL:  cfg.RedirectURL,
			Scopes:       Scopes,
			Endpoint:     cfg.Endpoint,
		},
	}, nil
}

// AuthURL returns the authorization URL for the given CSRF state.
func (c *Client) AuthURL(state string) string {
	return c.oauth.AuthCodeURL(state, oauth2.AccessTypeOnline)
}

// Import runs the whole API import as a unit:
//
//  1. start the single-shot callback listener on the redirect URI
//  2. open the authorization URL in the user's browser
//  3. block (bounded) until the redirect delivers the authorization code
//  4. exchange the code for an access token
//  5. fetch profile fields and map them into the canonical schema
//
// Any failure returns an ImportError classified for the selector; the caller
// offers manual entry as a fallback rather than exiting.
func (c *Client) Import(ctx context.Context) (*profile.Profile, error) {
	state := uuid.NewString()

	server, err := newCallbackServer(c.cfg.RedirectURL, state)
	if err != nil {
		return nil, err
	}
	if err := server.Start(); err != nil {
		return nil, err
	}
	defer server.Close()

	authURL := c.AuthURL(state)
	if c.cfg.Verbose {
		log.Printf("[LINKEDIN] authorization URL: %s", authURL)
	}
	if err := c.cfg.OpenBrowser(authURL); err != nil {
		// Browser launch failing is not fatal: the user can still open the
		// URL by hand while the listener keeps waiting.
		log.Printf("[LINKEDIN] could not open browser (%v); open this URL manually:\n%s", err, authURL)
	}

	code, err := server.Wait(ctx, c.cfg.AuthTimeout)
	if err != nil {
		return nil, err
	}

	token, err := c.oauth.Exchange(ctx, code)
	if err != nil {
		return nil, &importer.ImportError{
			Kind:    importer.NetworkFailure,
			Stage:   "token exchange",
			Message: "could not exchange authorization code for an access token",
			Cause:   err,
		}
	}

	prof, err := c.fetchProfile(ctx, token)
	if err != nil {
		return nil, err
	}

	// An OpenID id_token, when present, backfills identity fields the REST
	// endpoints did not return.
	backfillFromIDToken(prof, token)

	return prof, nil
}
