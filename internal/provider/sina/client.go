package sina

import (
	"fmt"
	"net/http"
	"net/url"
	"time"

	"go.uber.org/zap"

	"chinastock/internal/provider"
)

const (
	defaultQuoteURL = "http://hq.sinajs.cn"
	defaultImageURL = "http://image.sinajs.cn"
	// The quote endpoint rejects requests without a finance.sina.com.cn referer.
	defaultReferer = "http://finance.sina.com.cn"
)

// HTTPClient describes an HTTP client.
//
//go:generate mockgen -package=sina_test -destination=mock_http_client_test.go -source=client.go HTTPClient
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client is a client for the Sina quote list and chart endpoints.
type Client struct {
	quoteURL    string
	imageURL    string
	httpClient  HTTPClient
	header      http.Header
	cacheBuster provider.CacheBuster
	// location is the exchange time zone used to read quote timestamps.
	location *time.Location
	logger   *zap.Logger
}

var (
	_ provider.QuoteProvider       = (*Client)(nil)
	_ provider.PeriodChartProvider = (*Client)(nil)
)

// ClientOption is a configuration option for the Sina client.
type ClientOption func(*Client)

// WithQuoteURL sets the base URL of the quote list endpoint.
func WithQuoteURL(baseURL string) ClientOption {
	return func(c *Client) { c.quoteURL = baseURL }
}

// WithImageURL sets the base URL of chart images.
func WithImageURL(baseURL string) ClientOption {
	return func(c *Client) { c.imageURL = baseURL }
}

// WithHTTPClient sets the HTTP client.
func WithHTTPClient(httpClient HTTPClient) ClientOption {
	return func(c *Client) { c.httpClient = httpClient }
}

// WithHeader sets headers sent with each request, replacing defaults of the same name.
func WithHeader(header http.Header) ClientOption {
	return func(c *Client) {
		for key, values := range header {
			c.header.Del(key)
			for _, value := range values {
				c.header.Add(key, value)
			}
		}
	}
}

// WithCacheBuster replaces the random chart URL suffix.
func WithCacheBuster(bust provider.CacheBuster) ClientOption {
	return func(c *Client) { c.cacheBuster = bust }
}

// WithLocation sets the time zone quote dates are read in.
func WithLocation(loc *time.Location) ClientOption {
	return func(c *Client) { c.location = loc }
}

// WithLogger sets the logger.
func WithLogger(logger *zap.Logger) ClientOption {
	return func(c *Client) { c.logger = logger }
}

// NewClient creates a new Sina client.
func NewClient(options ...ClientOption) (*Client, error) {
	client := &Client{
		quoteURL:    defaultQuoteURL,
		imageURL:    defaultImageURL,
		httpClient:  http.DefaultClient,
		header:      http.Header{"Referer": []string{defaultReferer}},
		cacheBuster: provider.RandomCacheBuster,
		location:    shanghai(),
		logger:      zap.NewNop(),
	}
	for _, option := range options {
		option(client)
	}
	for _, u := range []string{client.quoteURL, client.imageURL} {
		if _, err := url.Parse(u); err != nil {
			return nil, fmt.Errorf("parsing base url: %w", err)
		}
	}
	if client.location == nil {
		client.location = shanghai()
	}
	if client.logger == nil {
		client.logger = zap.NewNop()
	}
	return client, nil
}

// Name implements provider.QuoteProvider.
func (c *Client) Name() string { return "sina" }

func shanghai() *time.Location {
	loc, err := time.LoadLocation("Asia/Shanghai")
	if err != nil {
		return time.FixedZone("CST", 8*60*60)
	}
	return loc
}
