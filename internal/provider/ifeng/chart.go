package ifeng

import (
	"chinastock/internal/provider"
)

// GetKlineImg returns the daily candlestick chart URL.
func (c *Client) GetKlineImg(code string) (string, error) {
	return provider.ChartURL(c.imageURL+"/chart/kline/", code, c.cacheBuster)
}

// GetTrendImg returns the intraday chart URL.
func (c *Client) GetTrendImg(code string) (string, error) {
	return provider.ChartURL(c.imageURL+"/chart/min/", code, c.cacheBuster)
}
