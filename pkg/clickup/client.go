package clickup

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"strings"

	"github.com/goclickup/goclickup/internal/logging"
)

const (
	// Library is the name used in the default User-Agent and in String output.
	Library = "goclickup"
	// Version is the library version.
	Version = "0.1.0"

	// DefaultAPIURL is the ClickUp v1 base URL.
	DefaultAPIURL = "https://api.clickup.com/api/v1/"
	// DefaultAPIV2URL is the ClickUp v2 base URL.
	DefaultAPIV2URL = "https://api.clickup.com/api/v2/"
)

// DefaultUserAgent is sent unless WithUserAgent is used.
var DefaultUserAgent = Library + "/" + Version

// APIVersion selects the base URL a request is resolved against.
type APIVersion int

const (
	APIv1 APIVersion = 1
	APIv2 APIVersion = 2
)

// Client is an HTTP client for the ClickUp API.
//
// A Client and the models it returns are not safe for concurrent use: the
// memoized user, teams, spaces and projects are plain fields without locking.
type Client struct {
	token     string
	apiURLs   map[APIVersion]string
	cache     bool
	userAgent string
	logger    *slog.Logger
	http      *http.Client

	user         *User
	teams        []*Team
	teamsFetched bool
}

// NewClient creates a new ClickUp API client authenticated with token.
//
// Optional options:
//   - WithAPIURL / WithAPIV2URL: override the endpoints (default: api.clickup.com)
//   - WithCache: memoize users, teams, spaces and projects (default: true)
//   - WithDebug: log every request line to stdout (default: false)
//   - WithUserAgent: override the User-Agent (default: goclickup/<version>)
//   - WithLogger, WithHTTPClient, WithTimeout
//
// Example:
//
//	client, err := clickup.NewClient("pk_123", clickup.WithCache(false))
func NewClient(token string, opts ...ClientOption) (*Client, error) {
	if token == "" {
		return nil, newConfigurationError("no token specified")
	}

	cfg := defaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}

	logger := cfg.logger
	if logger == nil {
		if cfg.debug {
			logger = logging.Debug(os.Stdout)
		} else {
			logger = logging.Nop()
		}
	}

	hc := cfg.httpClient
	if hc == nil {
		hc = &http.Client{Timeout: cfg.timeout}
	}

	return &Client{
		token: token,
		apiURLs: map[APIVersion]string{
			APIv1: withTrailingSlash(cfg.apiURL),
			APIv2: withTrailingSlash(cfg.apiV2URL),
		},
		cache:     cfg.cache,
		userAgent: cfg.userAgent,
		logger:    logger,
		http:      hc,
	}, nil
}

// CacheEnabled reports whether memoized collections are reused.
func (c *Client) CacheEnabled() bool {
	return c.cache
}

// User returns the user that owns the token. The result is memoized unless
// caching is disabled.
func (c *Client) User(ctx context.Context) (*User, error) {
	if c.user != nil && c.cache {
		return c.user, nil
	}
	return c.RefreshUser(ctx)
}

// RefreshUser refetches the token's user and replaces the memoized value.
func (c *Client) RefreshUser(ctx context.Context) (*User, error) {
	data, ok, err := c.getObject(ctx, "user", APIv1)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, newRemoteError(http.StatusOK, "invalid response while looking up user", nil)
	}
	c.user = NewUserFromEnvelope(c, data)
	return c.user, nil
}

// Teams returns the teams the token is authorized for. The result is
// memoized unless caching is disabled.
func (c *Client) Teams(ctx context.Context) ([]*Team, error) {
	if c.teamsFetched && c.cache {
		return c.teams, nil
	}
	return c.RefreshTeams(ctx)
}

// RefreshTeams refetches the authorized teams.
func (c *Client) RefreshTeams(ctx context.Context) ([]*Team, error) {
	data, ok, err := c.getObject(ctx, "team", APIv1)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, newRemoteError(http.StatusOK, "invalid response while looking up teams", nil)
	}

	raw := asMaps(Object(data).Slice("teams"))
	teams := make([]*Team, 0, len(raw))
	for _, t := range raw {
		teams = append(teams, NewTeam(c, t))
	}

	c.teams = teams
	c.teamsFetched = true
	return teams, nil
}

// GetTeamByID scans the authorized teams for id. The API has no direct
// lookup that returns the same shape as the team listing.
func (c *Client) GetTeamByID(ctx context.Context, id string) (*Team, error) {
	teams, err := c.Teams(ctx)
	if err != nil {
		return nil, err
	}
	for _, t := range teams {
		if t.ID == id {
			return t, nil
		}
	}
	return nil, newLookupError(fmt.Sprintf("team %s not found", id))
}

// FetchTeam loads a single team with GET team/{id}.
func (c *Client) FetchTeam(ctx context.Context, id string) (*Team, error) {
	data, ok, err := c.getObject(ctx, "team/"+id, APIv1)
	if err != nil {
		return nil, err
	}
	team, found := data["team"].(map[string]interface{})
	if !ok || !found {
		return nil, newLookupError(fmt.Sprintf("team %s not found", id))
	}
	return NewTeam(c, team), nil
}

func withTrailingSlash(u string) string {
	if u == "" || strings.HasSuffix(u, "/") {
		return u
	}
	return u + "/"
}
