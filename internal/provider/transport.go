package provider

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"chinastock/internal/httpx"
)

// MaxResponseSize caps upstream bodies.
const MaxResponseSize = 4 << 20

// Doer sends a single HTTP request.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Get performs a GET and returns the raw body. Every failure is an HttpFailure.
// Errors returned by hc are kept as they are so their message survives unchanged.
func Get(ctx context.Context, hc Doer, url string, header http.Header) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return nil, HTTPFailure(fmt.Errorf("creating request: %w", err))
	}
	for key, values := range header {
		for _, value := range values {
			req.Header.Add(key, value)
		}
	}

	res, err := hc.Do(req)
	if err != nil {
		return nil, HTTPFailure(err)
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		b, _ := io.ReadAll(io.LimitReader(res.Body, 2<<10))
		return nil, HTTPFailure(&httpx.StatusError{Method: http.MethodGet, URL: url, Status: res.StatusCode, Body: string(b)})
	}

	body, err := io.ReadAll(io.LimitReader(res.Body, MaxResponseSize))
	if err != nil {
		return nil, HTTPFailure(fmt.Errorf("reading body: %w", err))
	}
	return body, nil
}
