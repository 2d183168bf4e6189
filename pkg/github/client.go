// Package github is a thin client for the parts of the GitHub REST API used to
// find repositories and their release assets.
package github

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/glorpus-work/senget/pkg/auth"
	"github.com/glorpus-work/senget/pkg/errors"
)

// DefaultBaseURL is the public GitHub API entry point.
const DefaultBaseURL = "https://api.github.com"

// SearchPageSize is the number of repositories requested per search.
const SearchPageSize = 10

// Client handles GitHub API requests.
type Client struct {
	client    *http.Client
	baseURL   string
	userAgent string
	auth      auth.Authenticator
}

// NewClient creates a new GitHub API client. An empty baseURL selects the
// public API; a zero timeout leaves the client without one.
func NewClient(baseURL string, timeout time.Duration, userAgent string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if userAgent == "" {
		userAgent = "Senget"
	}
	return &Client{
		client:    &http.Client{Timeout: timeout},
		baseURL:   strings.TrimRight(baseURL, "/"),
		userAgent: userAgent,
	}
}

// WithAuth sets the credentials sent with every request. Nil keeps the
// client anonymous.
func (c *Client) WithAuth(a auth.Authenticator) *Client {
	c.auth = a
	return c
}

// Search returns the repositories matching query.
func (c *Client) Search(ctx context.Context, query string) ([]Repository, error) {
	params := url.Values{}
	params.Set("q", query)
	params.Set("per_page", fmt.Sprint(SearchPageSize))

	var resp searchResponse
	if _, err := c.getJSON(ctx, c.baseURL+"/search/repositories?"+params.Encode(), &resp); err != nil {
		return nil, errors.Wrapf(err, "failed to search repositories for %q", query)
	}
	return resp.Items, nil
}

// Repository fetches a single repository by its full name.
func (c *Client) Repository(ctx context.Context, fullName string) (*Repository, error) {
	var repo Repository
	found, err := c.getJSON(ctx, c.repoEndpoint(fullName, ""), &repo)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to fetch repository %s", fullName)
	}
	if !found {
		return nil, nil
	}
	return &repo, nil
}

// LatestRelease returns the most recent release, or nil when the repository
// has none.
func (c *Client) LatestRelease(ctx context.Context, fullName string) (*Release, error) {
	var release Release
	found, err := c.getJSON(ctx, c.repoEndpoint(fullName, "releases/latest"), &release)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to fetch latest release of %s", fullName)
	}
	if !found {
		return nil, nil
	}
	return &release, nil
}

// Releases lists the releases of a repository, newest first.
func (c *Client) Releases(ctx context.Context, fullName string) ([]Release, error) {
	var releases []Release
	if _, err := c.getJSON(ctx, c.repoEndpoint(fullName, "releases"), &releases); err != nil {
		return nil, errors.Wrapf(err, "failed to list releases of %s", fullName)
	}
	return releases, nil
}

// Assets fetches the asset list behind a release's assets_url.
func (c *Client) Assets(ctx context.Context, assetsURL string) ([]Asset, error) {
	var assets []Asset
	if _, err := c.getJSON(ctx, assetsURL, &assets); err != nil {
		return nil, errors.Wrap(err, "failed to fetch release assets")
	}
	return assets, nil
}

func (c *Client) repoEndpoint(fullName, suffix string) string {
	endpoint := c.baseURL + "/repos/" + fullName
	if suffix != "" {
		endpoint += "/" + suffix
	}
	return endpoint
}

// getJSON decodes the body of a GET into out. A 404 reports found=false
// without an error.
func (c *Client) getJSON(ctx context.Context, endpoint string, out interface{}) (bool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, http.NoBody)
	if err != nil {
		return false, errors.Wrap(err, "failed to create request")
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/vnd.github+json")
	if c.auth != nil {
		if err := c.auth.Apply(req); err != nil {
			return false, errors.Wrap(err, "failed to authenticate request")
		}
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return false, errors.Normalize(err)
	}
	defer func() { _ = resp.Body.Close() }()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusNotFound:
		return false, nil
	default:
		return false, fmt.Errorf("unexpected status code: %d: %w", resp.StatusCode, errors.ErrGitHubAPI)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return false, errors.Wrap(errors.Normalize(err), "failed to decode response")
	}
	return true, nil
}
