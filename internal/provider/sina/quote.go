package sina

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/text/encoding/simplifiedchinese"
	"golang.org/x/text/transform"

	"chinastock/internal/provider"
)

const (
	// Date and time sit at 30 and 31 of the primary record.
	minPrimaryFields = 32
	// The s_ record is name, price, change, change rate, volume, amount.
	minSummaryFields = 5
)

// GetIndex returns the Shanghai, Shenzhen and ChiNext index quotes.
func (c *Client) GetIndex(ctx context.Context) ([]provider.Quote, error) {
	return c.GetInfos(ctx, provider.IndexCodes)
}

// GetInfo returns the real-time quote of one stock.
func (c *Client) GetInfo(ctx context.Context, code string) (provider.Quote, error) {
	if err := provider.CheckCode(code); err != nil {
		return provider.Quote{}, err
	}

	body, err := c.get(ctx, c.listURL([]string{code}))
	if err != nil {
		return provider.Quote{}, err
	}

	quotes, err := c.transformQuotes([]string{code}, body)
	if err != nil {
		c.logger.Warn("sina quote transformation failed", zap.String("code", code), zap.Error(err))
		return provider.Quote{}, provider.TransformationFailed(provider.TransformationMessage(code), err)
	}
	return quotes[0], nil
}

// GetInfos returns the real-time quotes of several stocks with a single request.
func (c *Client) GetInfos(ctx context.Context, codes []string) ([]provider.Quote, error) {
	if err := provider.CheckCodes(codes); err != nil {
		return nil, err
	}

	body, err := c.get(ctx, c.listURL(codes))
	if err != nil {
		return nil, err
	}

	quotes, err := c.transformQuotes(codes, body)
	if err != nil {
		c.logger.Warn("sina quotes transformation failed", zap.Strings("codes", codes), zap.Error(err))
		return nil, provider.TransformationFailed(provider.TransformationMessage(""), err)
	}
	return quotes, nil
}

// listURL asks for the full record and the s_ summary of every code.
func (c *Client) listURL(codes []string) string {
	var q strings.Builder
	for _, code := range codes {
		req := provider.FormatCode(code)
		q.WriteString(req)
		q.WriteString(",s_")
		q.WriteString(req)
		q.WriteByte(',')
	}
	return c.quoteURL + "/list=" + q.String()
}

func (c *Client) get(ctx context.Context, url string) ([]byte, error) {
	body, err := provider.Get(ctx, c.httpClient, url, c.header)
	if err != nil {
		c.logger.Warn("sina request failed", zap.String("url", url), zap.Error(err))
		return nil, err
	}
	c.logger.Debug("sina request", zap.String("url", url), zap.Int("bytes", len(body)))
	return body, nil
}

// decodeGBK converts the upstream GBK body to UTF-8.
func decodeGBK(body []byte) (string, error) {
	out, _, err := transform.Bytes(simplifiedchinese.GBK.NewDecoder(), body)
	if err != nil {
		return "", fmt.Errorf("decoding gbk: %w", err)
	}
	return string(out), nil
}

// splitRecords splits `var hq_str_x="...";var hq_str_s_x="...";` into assignments.
func splitRecords(text string) []string {
	parts := strings.Split(text, ";")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if strings.TrimSpace(p) != "" {
			out = append(out, p)
		}
	}
	return out
}

// splitFields returns the comma-separated values between the first two quotes.
func splitFields(assignment string) ([]string, error) {
	parts := strings.Split(assignment, `"`)
	if len(parts) < 2 {
		return nil, fmt.Errorf("no quoted value in %q", strings.TrimSpace(assignment))
	}
	return strings.Split(parts[1], ","), nil
}

func (c *Client) transformQuotes(codes []string, body []byte) ([]provider.Quote, error) {
	text, err := decodeGBK(body)
	if err != nil {
		return nil, err
	}
	records := splitRecords(text)

	quotes := make([]provider.Quote, 0, len(codes))
	for i, code := range codes {
		if 2*i+1 >= len(records) {
			return nil, fmt.Errorf("got %d records for %d codes", len(records), len(codes))
		}
		primary, err := splitFields(records[2*i])
		if err != nil {
			return nil, err
		}
		summary, err := splitFields(records[2*i+1])
		if err != nil {
			return nil, err
		}
		quote, err := c.transformInfo(code, primary, summary)
		if err != nil {
			return nil, fmt.Errorf("record for %s: %w", code, err)
		}
		quotes = append(quotes, quote)
	}
	return quotes, nil
}

func (c *Client) transformInfo(code string, p, s []string) (provider.Quote, error) {
	if len(p) < minPrimaryFields {
		return provider.Quote{}, fmt.Errorf("want at least %d fields, got %d", minPrimaryFields, len(p))
	}
	if len(s) < minSummaryFields {
		return provider.Quote{}, fmt.Errorf("want at least %d summary fields, got %d", minSummaryFields, len(s))
	}

	// num formats a primary position, keeping the first failure.
	var firstErr error
	num := func(i int) string {
		v, err := provider.FormatNumber(p[i])
		if err != nil && firstErr == nil {
			firstErr = fmt.Errorf("field %d: %w", i, err)
		}
		return v
	}

	quote := provider.Quote{
		Code:       code,
		Name:       p[0],
		LastPx:     num(3),
		OpenPx:     num(1),
		PreclosePx: num(2),
		HighPx:     num(4),
		LowPx:      num(5),
		Volume:     s[4],
		Amount:     num(9),
		PxChangeRt: s[3],
		BV:         [5]string{p[10], p[12], p[14], p[16], p[18]},
		BP:         [5]string{num(11), num(13), num(15), num(17), num(19)},
		SV:         [5]string{p[20], p[22], p[24], p[26], p[28]},
		SP:         [5]string{num(21), num(23), num(25), num(27), num(29)},
	}
	if firstErr != nil {
		return provider.Quote{}, firstErr
	}

	t, err := time.ParseInLocation("2006-01-02 15:04:05", p[30]+" "+p[31], c.location)
	if err != nil {
		return provider.Quote{}, fmt.Errorf("parsing quote time: %w", err)
	}
	quote.Time = strconv.FormatInt(t.Unix(), 10)
	return quote, nil
}
