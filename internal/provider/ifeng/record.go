package ifeng

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/tidwall/gjson"
	"go.uber.org/zap"

	"chinastock/internal/provider"
)

// dateLayouts are the row date formats seen on akdaily and akmin.
var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006/01/02",
	"20060102",
}

// GetKlineData returns the daily bars of a stock.
func (c *Client) GetKlineData(ctx context.Context, code string) ([]provider.Bar, error) {
	if err := provider.CheckCode(code); err != nil {
		return nil, err
	}
	return c.getRecords(ctx, code, c.apiURL+"/akdaily/?type=last&code="+provider.FormatCode(code))
}

// GetTrendData returns the five-minute intraday bars of a stock.
func (c *Client) GetTrendData(ctx context.Context, code string) ([]provider.Bar, error) {
	if err := provider.CheckCode(code); err != nil {
		return nil, err
	}
	return c.getRecords(ctx, code, c.apiURL+"/akmin?type=5&scode="+provider.FormatCode(code))
}

func (c *Client) getRecords(ctx context.Context, code, url string) ([]provider.Bar, error) {
	body, err := c.get(ctx, url)
	if err != nil {
		return nil, err
	}
	bars, err := transformRecords(body)
	if err != nil {
		c.logger.Warn("ifeng record transformation failed", zap.String("code", code), zap.Error(err))
		return nil, provider.TransformationFailed(provider.TransformationMessage(code), err)
	}
	return bars, nil
}

// transformRecords maps {"record": [[date, open, high, close, low, volume, ...], ...]}.
func transformRecords(body []byte) ([]provider.Bar, error) {
	if !gjson.ValidBytes(body) {
		return nil, errors.New("invalid json payload")
	}
	rec := gjson.GetBytes(body, "record")
	if !rec.IsArray() {
		return nil, errors.New("missing record array")
	}

	rows := rec.Array()
	bars := make([]provider.Bar, 0, len(rows))
	for i, row := range rows {
		f := row.Array()
		if len(f) < 6 {
			return nil, fmt.Errorf("record %d: want 6 fields, got %d", i, len(f))
		}
		date, err := formatDate(f[0].String())
		if err != nil {
			return nil, fmt.Errorf("record %d: %w", i, err)
		}
		bars = append(bars, provider.Bar{
			Date:    date,
			OpenPx:  f[1].String(),
			ClosePx: f[3].String(),
			HighPx:  f[2].String(),
			LowPx:   f[4].String(),
			Volume:  f[5].String(),
		})
	}
	return bars, nil
}

func formatDate(s string) (string, error) {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format("20060102"), nil
		}
	}
	return "", fmt.Errorf("unrecognized date %q", s)
}
