package mavensearch

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"
)

// Default coordinates and endpoint.
const (
	DefaultBaseURL    = "https://search.maven.org"
	DefaultGroupID    = "org.simplejavamail"
	DefaultArtifactID = "simple-java-mail"
)

// Client queries the Maven Central search API.
type Client struct {
	baseURL    string
	httpClient *http.Client
	timeout    time.Duration
	retry      RetryConfig
	logger     *zap.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL overrides the search endpoint.
func WithBaseURL(u string) Option {
	return func(c *Client) { c.baseURL = strings.TrimRight(u, "/") }
}

// WithHTTPClient replaces the HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.timeout = d }
}

// WithRetry sets the retry policy for transient failures.
func WithRetry(cfg RetryConfig) Option {
	return func(c *Client) { c.retry = cfg }
}

// WithLogger sets the logger.
func WithLogger(l *zap.Logger) Option {
	return func(c *Client) { c.logger = l }
}

// NewClient returns a Client for DefaultBaseURL unless overridden.
func NewClient(opts ...Option) *Client {
	c := &Client{
		baseURL:    DefaultBaseURL,
		httpClient: http.DefaultClient,
		timeout:    10 * time.Second,
		retry:      DefaultRetryConfig(),
		logger:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	// Copy so the timeout never leaks into a shared client.
	hc := *c.httpClient
	if c.timeout > 0 {
		hc.Timeout = c.timeout
	}
	c.httpClient = &hc
	return c
}

type searchResponse struct {
	Response struct {
		NumFound int `json:"numFound"`
		Docs     []struct {
			ID            string `json:"id"`
			LatestVersion string `json:"latestVersion"`
		} `json:"docs"`
	} `json:"response"`
}

// LatestVersion returns the newest released version of groupID:artifactID.
func (c *Client) LatestVersion(ctx context.Context, groupID, artifactID string) (string, error) {
	var version string
	err := c.retry.do(ctx, func() error {
		v, err := c.search(ctx, groupID, artifactID)
		if err != nil {
			c.logger.Debug("maven search attempt failed",
				zap.String("group_id", groupID),
				zap.String("artifact_id", artifactID),
				zap.Error(err))
			return err
		}
		version = v
		return nil
	})
	if err != nil {
		return "", err
	}

	c.logger.Info("resolved latest version",
		zap.String("group_id", groupID),
		zap.String("artifact_id", artifactID),
		zap.String("version", version))
	return version, nil
}

func (c *Client) search(ctx context.Context, groupID, artifactID string) (string, error) {
	q := url.Values{}
	q.Set("q", fmt.Sprintf(`g:"%s" AND a:"%s"`, groupID, artifactID))
	q.Set("rows", "1")
	q.Set("wt", "json")
	endpoint := c.baseURL + "/solrsearch/select?" + q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, resp.Body)
		return "", &ErrUnexpectedStatus{
			StatusCode: resp.StatusCode,
			RetryAfter: parseRetryAfter(resp.Header.Get("Retry-After")),
		}
	}

	var body searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", &ErrInvalidResponse{Err: err}
	}
	if len(body.Response.Docs) == 0 || body.Response.Docs[0].LatestVersion == "" {
		return "", ErrNotFound
	}
	return body.Response.Docs[0].LatestVersion, nil
}

func parseRetryAfter(v string) time.Duration {
	secs, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil || secs <= 0 {
		return 0
	}
	return time.Duration(secs) * time.Second
}
