package ifeng

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/tidwall/gjson"
	"go.uber.org/zap"

	"chinastock/internal/provider"
)

const (
	// The quote body is `var json_q=<json>;` plus a line break.
	envelopePrefix = 11
	envelopeSuffix = 3

	// Position 35 is the last one read.
	minQuoteFields = 36
)

// record is one positional quote row; key is the market-prefixed code when the
// upstream keyed its rows.
type record struct {
	key    string
	fields []gjson.Result
}

// GetIndex returns the Shanghai, Shenzhen and ChiNext index quotes.
func (c *Client) GetIndex(ctx context.Context) ([]provider.Quote, error) {
	return c.GetInfos(ctx, provider.IndexCodes)
}

// GetInfo returns the real-time quote of one stock.
func (c *Client) GetInfo(ctx context.Context, code string) (provider.Quote, error) {
	if err := provider.CheckCode(code); err != nil {
		return provider.Quote{}, err
	}

	body, err := c.get(ctx, c.quoteURL+"/q.php?l="+provider.FormatCode(code))
	if err != nil {
		return provider.Quote{}, err
	}

	quotes, err := transformQuotes([]string{code}, body)
	if err != nil {
		c.logger.Warn("ifeng quote transformation failed", zap.String("code", code), zap.Error(err))
		return provider.Quote{}, provider.TransformationFailed(provider.TransformationMessage(code), err)
	}
	return quotes[0], nil
}

// GetInfos returns the real-time quotes of several stocks with a single request.
func (c *Client) GetInfos(ctx context.Context, codes []string) ([]provider.Quote, error) {
	if err := provider.CheckCodes(codes); err != nil {
		return nil, err
	}

	var q strings.Builder
	for _, code := range codes {
		q.WriteString(provider.FormatCode(code))
		q.WriteByte(',')
	}

	body, err := c.get(ctx, c.quoteURL+"/q.php?l="+q.String())
	if err != nil {
		return nil, err
	}

	quotes, err := transformQuotes(codes, body)
	if err != nil {
		c.logger.Warn("ifeng quotes transformation failed", zap.Strings("codes", codes), zap.Error(err))
		return nil, provider.TransformationFailed(provider.TransformationMessage(""), err)
	}
	return quotes, nil
}

func (c *Client) get(ctx context.Context, url string) ([]byte, error) {
	body, err := provider.Get(ctx, c.httpClient, url, c.header)
	if err != nil {
		c.logger.Warn("ifeng request failed", zap.String("url", url), zap.Error(err))
		return nil, err
	}
	c.logger.Debug("ifeng request", zap.String("url", url), zap.Int("bytes", len(body)))
	return body, nil
}

// transformQuotes strips the envelope and maps each row onto the code it was requested for.
func transformQuotes(codes []string, body []byte) ([]provider.Quote, error) {
	records, err := parseEnvelope(body)
	if err != nil {
		return nil, err
	}

	byKey := make(map[string]record, len(records))
	for _, r := range records {
		if r.key != "" {
			byKey[r.key] = r
		}
	}

	quotes := make([]provider.Quote, 0, len(codes))
	for i, code := range codes {
		var r record
		if len(byKey) > 0 {
			// Keyed rows must match exactly; a missing key is a closed or unknown stock.
			var ok bool
			if r, ok = byKey[provider.FormatCode(code)]; !ok {
				return nil, fmt.Errorf("no row for %s", provider.FormatCode(code))
			}
		} else {
			if i >= len(records) {
				return nil, fmt.Errorf("got %d rows for %d codes", len(records), len(codes))
			}
			r = records[i]
		}
		quote, err := transformInfo(code, r.fields)
		if err != nil {
			return nil, fmt.Errorf("row for %s: %w", code, err)
		}
		quotes = append(quotes, quote)
	}
	return quotes, nil
}

// parseEnvelope accepts an object of rows keyed by prefixed code, an array of
// rows, or a single flat row.
func parseEnvelope(body []byte) ([]record, error) {
	if len(body) < envelopePrefix+envelopeSuffix {
		return nil, fmt.Errorf("response too short: %d bytes", len(body))
	}
	raw := body[envelopePrefix : len(body)-envelopeSuffix]
	if !gjson.ValidBytes(raw) {
		return nil, errors.New("invalid json payload")
	}

	root := gjson.ParseBytes(raw)
	var records []record
	switch {
	case root.IsObject():
		root.ForEach(func(key, value gjson.Result) bool {
			records = append(records, record{key: key.String(), fields: value.Array()})
			return true
		})
	case root.IsArray():
		items := root.Array()
		if len(items) > 0 && !items[0].IsArray() {
			return []record{{fields: items}}, nil
		}
		for _, item := range items {
			records = append(records, record{fields: item.Array()})
		}
	default:
		return nil, fmt.Errorf("unexpected payload type: %s", root.Type)
	}
	if len(records) == 0 {
		return nil, errors.New("empty payload")
	}
	return records, nil
}

func transformInfo(code string, f []gjson.Result) (provider.Quote, error) {
	if len(f) < minQuoteFields {
		return provider.Quote{}, fmt.Errorf("want at least %d fields, got %d", minQuoteFields, len(f))
	}
	return provider.Quote{
		Code:       code,
		LastPx:     f[0].String(),
		OpenPx:     f[4].String(),
		PreclosePx: f[1].String(),
		HighPx:     f[5].String(),
		LowPx:      f[6].String(),
		Volume:     f[9].String(),
		Amount:     f[10].String(),
		PxChange:   f[2].String(),
		PxChangeRt: f[3].String(),
		BP:         five(f, 11),
		BV:         five(f, 16),
		SP:         five(f, 21),
		SV:         five(f, 26),
		Time:       f[35].String(),
	}, nil
}

func five(f []gjson.Result, from int) [5]string {
	var out [5]string
	for i := range out {
		out[i] = f[from+i].String()
	}
	return out
}
