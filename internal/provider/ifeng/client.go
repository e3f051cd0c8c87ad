package ifeng

import (
	"fmt"
	"net/http"
	"net/url"

	"go.uber.org/zap"

	"chinastock/internal/provider"
)

const (
	defaultQuoteURL = "http://hq.finance.ifeng.com"
	defaultAPIURL   = "http://api.finance.ifeng.com"
	defaultImageURL = "http://img.finance.ifeng.com"
)

// HTTPClient describes an HTTP client.
//
//go:generate mockgen -package=ifeng_test -destination=mock_http_client_test.go -source=client.go HTTPClient
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client is a client for the ifeng finance quote, history and chart endpoints.
type Client struct {
	// quoteURL serves q.php real-time quotes.
	quoteURL string
	// apiURL serves the akdaily and akmin record endpoints.
	apiURL string
	// imageURL serves rendered chart images.
	imageURL string
	// httpClient is the HTTP client.
	httpClient HTTPClient
	// header contains additional headers to be sent with each request.
	header http.Header
	// cacheBuster produces the chart URL suffix.
	cacheBuster provider.CacheBuster
	// logger receives request and transformation diagnostics.
	logger *zap.Logger
}

// ClientOption is a configuration option for the ifeng client.
type ClientOption func(*Client)

// WithQuoteURL sets the base URL of the quote endpoint.
func WithQuoteURL(baseURL string) ClientOption {
	return func(c *Client) {
		c.quoteURL = baseURL
	}
}

// WithAPIURL sets the base URL of the record endpoints.
func WithAPIURL(baseURL string) ClientOption {
	return func(c *Client) {
		c.apiURL = baseURL
	}
}

// WithImageURL sets the base URL of chart images.
func WithImageURL(baseURL string) ClientOption {
	return func(c *Client) {
		c.imageURL = baseURL
	}
}

// WithHTTPClient sets the HTTP client.
func WithHTTPClient(httpClient HTTPClient) ClientOption {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// WithHeader sets additional headers to be sent with each request.
func WithHeader(header http.Header) ClientOption {
	return func(c *Client) {
		for key, values := range header {
			for _, value := range values {
				c.header.Add(key, value)
			}
		}
	}
}

// WithCacheBuster replaces the random chart URL suffix.
func WithCacheBuster(bust provider.CacheBuster) ClientOption {
	return func(c *Client) {
		c.cacheBuster = bust
	}
}

// WithLogger sets the logger.
func WithLogger(logger *zap.Logger) ClientOption {
	return func(c *Client) {
		c.logger = logger
	}
}

// NewClient creates a new ifeng client.
func NewClient(options ...ClientOption) (*Client, error) {
	var client = &Client{
		quoteURL:    defaultQuoteURL,
		apiURL:      defaultAPIURL,
		imageURL:    defaultImageURL,
		httpClient:  http.DefaultClient,
		header:      http.Header{},
		cacheBuster: provider.RandomCacheBuster,
		logger:      zap.NewNop(),
	}
	for _, option := range options {
		option(client)
	}
	for _, u := range []string{client.quoteURL, client.apiURL, client.imageURL} {
		if _, err := url.Parse(u); err != nil {
			return nil, fmt.Errorf("parsing base url: %w", err)
		}
	}
	if client.logger == nil {
		client.logger = zap.NewNop()
	}
	return client, nil
}

var (
	_ provider.QuoteProvider = (*Client)(nil)
	_ provider.BarProvider   = (*Client)(nil)
)

// Name implements provider.QuoteProvider.
func (c *Client) Name() string { return "ifeng" }
