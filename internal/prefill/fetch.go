// Package prefill fetches a public LinkedIn profile page and extracts the
// few fields usable as manual-entry defaults. It is a best-effort seed for
// the wizard, never a data source of record.
package prefill

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// DefaultTimeout is the HTTP request timeout for the public page fetch.
const DefaultTimeout = 30 * time.Second

// DefaultUserAgent identifies the tool to the remote site.
const DefaultUserAgent = "Mozilla/5.0 (compatible; aipply/1.0)"

// Error represents a failure fetching or parsing the public page.
type Error struct {
	URL     string
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("prefill error for %s: %s: %v", e.URL, e.Message, e.Cause)
	}
	return fmt.Sprintf("prefill error for %s: %s", e.URL, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// ValidateProfileURL checks that the URL looks like a public LinkedIn
// profile, e.g. https://www.linkedin.com/in/janedoe.
func ValidateProfileURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return &Error{URL: raw, Message: "not a valid URL", Cause: err}
	}
	if !strings.Contains(u.Host, "linkedin.com") || !strings.Contains(u.Path, "/in/") {
		return &Error{URL: raw, Message: "expected a profile URL like https://linkedin.com/in/yourname"}
	}
	return nil
}

// FetchHTML retrieves the raw page HTML.
func FetchHTML(ctx context.Context, urlStr string) (string, error) {
	client := &http.Client{Timeout: DefaultTimeout}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, urlStr, nil)
	if err != nil {
		return "", &Error{URL: urlStr, Message: "failed to create request", Cause: err}
	}
	req.Header.Set("User-Agent", DefaultUserAgent)

	resp, err := client.Do(req)
	if err != nil {
		return "", &Error{URL: urlStr, Message: "HTTP request failed", Cause: err}
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &Error{URL: urlStr, Message: "failed to read response body", Cause: err}
	}
	if resp.StatusCode != http.StatusOK {
		return "", &Error{URL: urlStr, Message: fmt.Sprintf("HTTP status %d", resp.StatusCode)}
	}
	return string(body), nil
}
