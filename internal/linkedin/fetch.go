package linkedin

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"

	"golang.org/x/oauth2"
	"golang.org/x/sync/errgroup"

	"github.com/Sof1ane/aipply/internal/importer"
	"github.com/Sof1ane/aipply/internal/profile"
)

// restliHeader is required by the v2 REST endpoints.
const restliHeader = "2.0.0"

// fetchProfile reads the profile endpoints concurrently and maps the
// responses into the canonical schema. The /me call must succeed; the other
// endpoints are optional and a failure there leaves the corresponding fields
// unset without failing the import.
func (c *Client) fetchProfile(ctx context.Context, token *oauth2.Token) (*profile.Profile, error) {
	httpClient := c.oauth.Client(ctx, token)

	var (
		me         meResponse
		email      emailResponse
		positions  positionsResponse
		educations educationsResponse
		skills     skillsResponse

		emailOK, positionsOK, educationsOK, skillsOK bool
	)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		query := url.Values{"projection": {"(id,localizedFirstName,localizedLastName,localizedHeadline,firstName,lastName,headline,profilePicture(displayImage~:playableStreams))"}}
		if err := c.get(gctx, httpClient, "/me", query, &me); err != nil {
			return &importer.ImportError{
				Kind:    importer.NetworkFailure,
				Stage:   "profile fetch",
				Message: "could not read the member profile",
				Cause:   err,
			}
		}
		return nil
	})
	g.Go(func() error {
		query := url.Values{"q": {"members"}, "projection": {"(elements*(handle~))"}}
		emailOK = c.getOptional(gctx, httpClient, "/emailAddress", query, &email)
		return nil
	})
	g.Go(func() error {
		query := url.Values{"projection": {"(elements*(id,title,summary,startDate,endDate,company))"}}
		positionsOK = c.getOptional(gctx, httpClient, "/people/~/positions", query, &positions)
		return nil
	})
	g.Go(func() error {
		query := url.Values{"projection": {"(elements*(id,schoolName,degreeName,fieldOfStudy,startDate,endDate))"}}
		educationsOK = c.getOptional(gctx, httpClient, "/people/~/educations", query, &educations)
		return nil
	})
	g.Go(func() error {
		query := url.Values{"projection": {"(elements*(id,name))"}}
		skillsOK = c.getOptional(gctx, httpClient, "/people/~/skills", query, &skills)
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	var emailPtr *emailResponse
	if emailOK {
		emailPtr = &email
	}
	var positionsPtr *positionsResponse
	if positionsOK {
		positionsPtr = &positions
	}
	var educationsPtr *educationsResponse
	if educationsOK {
		educationsPtr = &educations
	}
	var skillsPtr *skillsResponse
	if skillsOK {
		skillsPtr = &skills
	}

	return mapProfile(&me, emailPtr, positionsPtr, educationsPtr, skillsPtr), nil
}

// get performs an authenticated GET against the API base and decodes the
// JSON response into out.
func (c *Client) get(ctx context.Context, httpClient *http.Client, path string, query url.Values, out any) error {
	reqURL := c.cfg.APIBaseURL + path
	if len(query) > 0 {
		reqURL += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return fmt.Errorf("failed to build request for %s: %w", path, err)
	}
	req.Header.Set("X-Restli-Protocol-Version", restliHeader)

	resp, err := httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request to %s failed: %w", path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("%s returned HTTP %d: %s", path, resp.StatusCode, string(body))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode %s response: %w", path, err)
	}
	return nil
}

// getOptional fetches an endpoint whose absence is tolerated. Returns whether
// the response was usable.
func (c *Client) getOptional(ctx context.Context, httpClient *http.Client, path string, query url.Values, out any) bool {
	if err := c.get(ctx, httpClient, path, query, out); err != nil {
		if c.cfg.Verbose {
			log.Printf("[LINKEDIN] optional endpoint %s skipped: %v", path, err)
		}
		return false
	}
	return true
}
