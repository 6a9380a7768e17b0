// Package github implements the entity capabilities on top of the GitHub
// REST and GraphQL APIs.
package github

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/go-github/v69/github"
	"github.com/sgaunet/auto-close/internal/logger"
	"github.com/sgaunet/auto-close/internal/security"
	"github.com/sgaunet/bullets"
	"golang.org/x/oauth2"
)

// Constants for GitHub API operations.
const (
	defaultMaxRetries    = 3
	defaultRetryInterval = 500 * time.Millisecond
	maxRetryInterval     = 10 * time.Second
	labelsPerPage        = 100
	maxLabelPages        = 100
	stateOpen            = "open"
	stateClosed          = "closed"
)

// Client wraps a go-github client shared by the capability adapters.
type Client struct {
	client        *github.Client
	log           *bullets.Logger
	maxRetries    uint64
	retryInterval time.Duration
}

// NewClient creates a client authenticated with token against api.github.com.
func NewClient(token security.SecureToken) (*Client, error) {
	if token.IsEmpty() {
		return nil, errTokenRequired
	}

	ts := oauth2.StaticTokenSource(
		&oauth2.Token{AccessToken: token.Value()},
	)
	tc := oauth2.NewClient(context.Background(), ts)

	return newClient(github.NewClient(tc)), nil
}

// NewClientFromHTTP creates a client using httpClient as transport and
// baseURL as REST API root, e.g. https://ghe.example.com/api/v3/.
// GraphQL requests go to the sibling "graphql" endpoint.
func NewClientFromHTTP(httpClient *http.Client, baseURL string) (*Client, error) {
	c := newClient(github.NewClient(httpClient))
	if baseURL != "" {
		if err := c.SetBaseURL(baseURL); err != nil {
			return nil, err
		}
	}
	return c, nil
}

func newClient(gh *github.Client) *Client {
	return &Client{
		client:        gh,
		log:           logger.NoLogger(),
		maxRetries:    defaultMaxRetries,
		retryInterval: defaultRetryInterval,
	}
}

// SetLogger sets the logger for the client.
func (c *Client) SetLogger(l *bullets.Logger) {
	c.log = l
}

// SetBaseURL points the client at another REST API root, such as the
// GITHUB_API_URL of a GitHub Enterprise Server runner.
func (c *Client) SetBaseURL(baseURL string) error {
	if !strings.HasSuffix(baseURL, "/") {
		baseURL += "/"
	}
	u, err := url.Parse(baseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("%w: %q", errInvalidBaseURL, baseURL)
	}
	c.client.BaseURL = u
	return nil
}

// SetRetryPolicy sets how many times a failed read is retried and the
// initial wait between attempts. Zero retries disables retrying.
func (c *Client) SetRetryPolicy(maxRetries uint64, initial time.Duration) {
	c.maxRetries = maxRetries
	if initial > 0 {
		c.retryInterval = initial
	}
}
