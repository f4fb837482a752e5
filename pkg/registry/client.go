package registry

import (
	"context"
	"net/url"
	"strconv"

	"golang.org/x/time/rate"

	"github.com/agentstation/sirenrich/internal/transport"
	"github.com/agentstation/sirenrich/pkg/errors"
)

const (
	// DefaultBaseURL is the public registry search endpoint.
	DefaultBaseURL = "https://recherche-entreprises.api.gouv.fr/search"

	// DefaultPerPage bounds how many candidates one query returns. The
	// enricher only ever inspects the first few, so a small page keeps
	// responses light.
	DefaultPerPage = 5

	// DefaultRateLimit is the documented request budget of the public API.
	DefaultRateLimit = rate.Limit(7)
)

// Client queries the registry search API. All requests pass through a
// client-side rate limiter so a batch never exceeds the API's budget no
// matter how the caller schedules lookups.
type Client struct {
	baseURL   string
	transport *transport.Client
	limiter   *rate.Limiter
	perPage   int
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL overrides the search endpoint, primarily for tests.
func WithBaseURL(u string) Option {
	return func(c *Client) { c.baseURL = u }
}

// WithRateLimit overrides the client-side request rate.
func WithRateLimit(limit rate.Limit) Option {
	return func(c *Client) { c.limiter = rate.NewLimiter(limit, 1) }
}

// WithPerPage overrides how many candidates one query returns.
func WithPerPage(n int) Option {
	return func(c *Client) { c.perPage = n }
}

// New creates a registry client. An empty token sends unauthenticated
// requests, which the API accepts at a reduced rate.
func New(token string, opts ...Option) *Client {
	var auth transport.Authenticator = &transport.NoAuth{}
	if token != "" {
		auth = &transport.BearerAuth{Token: token}
	}

	c := &Client{
		baseURL:   DefaultBaseURL,
		transport: transport.New(auth),
		limiter:   rate.NewLimiter(DefaultRateLimit, 1),
		perPage:   DefaultPerPage,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Search queries the registry for candidates matching the query string.
// Results arrive in the service's own relevance order. A zero-candidate
// result is not an error.
func (c *Client) Search(ctx context.Context, query string) ([]Candidate, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, errors.ErrCanceled
	}

	params := url.Values{}
	params.Set("q", query)
	params.Set("page", "1")
	params.Set("per_page", strconv.Itoa(c.perPage))
	params.Set("minimal", "true")
	params.Set("include", "siege,dirigeants")

	resp, err := c.transport.Get(ctx, c.baseURL+"?"+params.Encode())
	if err != nil {
		return nil, &errors.APIError{
			Endpoint: c.baseURL,
			Message:  "search request failed",
			Err:      err,
		}
	}

	var result searchResponse
	if err := transport.DecodeResponse(resp, &result); err != nil {
		return nil, err
	}

	return result.Results, nil
}
