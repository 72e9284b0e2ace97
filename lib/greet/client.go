package greet

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"time"

	"github.com/go-pkgz/requester"
	"github.com/go-pkgz/requester/middleware"
)

// defaults for client configuration
const (
	defaultTimeout    = 30 * time.Second
	defaultRetryCount = 3
	defaultRetryDelay = 100 * time.Millisecond
	maxErrorBody      = 1024
)

// Client is a greet server client. It keeps login cookies in its own cookie jar.
type Client struct {
	baseURL   *url.URL
	jar       http.CookieJar
	requester *requester.Requester
	once      *requester.Requester // no retries, login makes a new session on each call
}

// clientConfig holds configuration options during client construction.
type clientConfig struct {
	timeout    time.Duration
	retryCount int
	retryDelay time.Duration
	userAgent  string
	httpClient *http.Client
}

// Option is a functional option for configuring the client.
type Option func(*clientConfig)

// WithTimeout sets the HTTP request timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(cfg *clientConfig) {
		cfg.timeout = timeout
	}
}

// WithRetry configures retry behavior.
func WithRetry(count int, delay time.Duration) Option {
	return func(cfg *clientConfig) {
		cfg.retryCount = count
		cfg.retryDelay = delay
	}
}

// WithUserAgent sets User-Agent header for all requests.
func WithUserAgent(ua string) Option {
	return func(cfg *clientConfig) {
		cfg.userAgent = ua
	}
}

// WithHTTPClient sets a custom http.Client.
// The client is copied, its Jar and CheckRedirect are replaced.
func WithHTTPClient(client *http.Client) Option {
	return func(cfg *clientConfig) {
		cfg.httpClient = client
	}
}

// New creates a new client with the given base URL and options.
func New(baseURL string, opts ...Option) (*Client, error) {
	if baseURL == "" {
		return nil, errors.New("base URL is required")
	}

	u, err := url.Parse(strings.TrimSuffix(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("invalid base URL: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("invalid base URL %q", baseURL)
	}

	cfg := &clientConfig{
		timeout:    defaultTimeout,
		retryCount: defaultRetryCount,
		retryDelay: defaultRetryDelay,
	}
	for _, opt := range opts {
		opt(cfg)
	}

	var middlewares []middleware.RoundTripperHandler
	if cfg.userAgent != "" {
		middlewares = append(middlewares, middleware.Header("User-Agent", cfg.userAgent))
	}
	retrying := middlewares
	if cfg.retryCount > 0 {
		retrying = append([]middleware.RoundTripperHandler{middleware.Retry(cfg.retryCount, cfg.retryDelay)}, middlewares...)
	}

	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create cookie jar: %w", err)
	}

	httpClient := http.Client{Timeout: cfg.timeout}
	if cfg.httpClient != nil {
		httpClient = *cfg.httpClient
	}
	httpClient.Jar = jar
	// login answers with redirect, keep it to check the status
	httpClient.CheckRedirect = func(*http.Request, []*http.Request) error { return http.ErrUseLastResponse }

	return &Client{
		baseURL:   u,
		jar:       jar,
		requester: requester.New(httpClient, retrying...),
		once:      requester.New(httpClient, middlewares...),
	}, nil
}

// Login logs in with the given name. The issued cookie is kept for subsequent calls.
func (c *Client) Login(ctx context.Context, name string) error {
	if name == "" {
		return ErrNameRequired
	}

	resp, err := c.do(ctx, c.once, "/login?name="+url.QueryEscape(name))
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusFound:
		return nil
	case http.StatusBadRequest:
		return ErrNameRequired
	default:
		return responseError(resp)
	}
}

// Greeting returns the greeting for the logged-in user.
// Returns ErrNotLoggedIn if the server answers with the login page.
func (c *Client) Greeting(ctx context.Context) (string, error) {
	resp, err := c.do(ctx, c.requester, "/")
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", responseError(resp)
	}
	if !strings.HasPrefix(resp.Header.Get("Content-Type"), "text/plain") {
		return "", ErrNotLoggedIn
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}
	return string(body), nil
}

// Cookies returns cookies currently kept for the server.
func (c *Client) Cookies() []*http.Cookie {
	return c.jar.Cookies(c.baseURL)
}

// Ping checks the server answers on the root page.
func (c *Client) Ping(ctx context.Context) error {
	resp, err := c.do(ctx, c.requester, "/")
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return responseError(resp)
	}
	return nil
}

// do makes GET request with rq to path relative to the base URL.
func (c *Client) do(ctx context.Context, rq *requester.Requester, path string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL.String()+path, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := rq.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	return resp, nil
}

// responseError makes ResponseError with the beginning of the response body.
func responseError(resp *http.Response) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	return &ResponseError{StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(body))}
}
