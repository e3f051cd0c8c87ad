// Package setup builds the configured quote providers.
package setup

import (
    "fmt"
    "net/http"

    "go.uber.org/zap"

    "chinastock/internal/config"
    "chinastock/internal/httpx"
    "chinastock/internal/provider"
    "chinastock/internal/provider/ifeng"
    "chinastock/internal/provider/ratelimit"
    "chinastock/internal/provider/sina"
)

// Providers returns the enabled providers in a stable order: ifeng, then sina.
// Each one gets its own rate limiter over a shared connection pool.
func Providers(cfg config.Config, logger *zap.Logger) ([]provider.QuoteProvider, error) {
    if logger == nil {
        logger = zap.NewNop()
    }
    hc := httpx.New(cfg.HTTP.Timeout())
    if cfg.HTTP.UserAgent != "" {
        hc.UserAgent = cfg.HTTP.UserAgent
    }

    var out []provider.QuoteProvider
    if cfg.Ifeng.Enabled {
        c, err := ifeng.NewClient(
            ifeng.WithQuoteURL(cfg.Ifeng.QuoteURL),
            ifeng.WithAPIURL(cfg.Ifeng.APIURL),
            ifeng.WithImageURL(cfg.Ifeng.ImageURL),
            ifeng.WithHTTPClient(limit(hc, cfg.Ifeng.Limits)),
            ifeng.WithLogger(logger.With(zap.String("provider", "ifeng"))),
        )
        if err != nil {
            return nil, fmt.Errorf("ifeng client: %w", err)
        }
        out = append(out, c)
    }
    if cfg.Sina.Enabled {
        opts := []sina.ClientOption{
            sina.WithQuoteURL(cfg.Sina.QuoteURL),
            sina.WithImageURL(cfg.Sina.ImageURL),
            sina.WithHTTPClient(limit(hc, cfg.Sina.Limits)),
            sina.WithLogger(logger.With(zap.String("provider", "sina"))),
        }
        if cfg.Sina.Referer != "" {
            opts = append(opts, sina.WithHeader(http.Header{"Referer": []string{cfg.Sina.Referer}}))
        }
        c, err := sina.NewClient(opts...)
        if err != nil {
            return nil, fmt.Errorf("sina client: %w", err)
        }
        out = append(out, c)
    }
    if len(out) == 0 {
        return nil, fmt.Errorf("no providers enabled")
    }
    return out, nil
}

func limit(next provider.Doer, l config.Limits) provider.Doer {
    burst := l.Burst
    if burst <= 0 {
        burst = 1
    }
    return ratelimit.Wrap(next, l.RPS(), burst, l.MinInterval())
}
