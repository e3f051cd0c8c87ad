package sina

import (
	"chinastock/internal/provider"
)

// GetKlineImg returns the daily candlestick chart URL.
func (c *Client) GetKlineImg(code string) (string, error) {
	return provider.ChartURL(c.imageURL+"/newchart/daily/n/", code, c.cacheBuster)
}

// GetKlineImgWeekly returns the weekly candlestick chart URL.
func (c *Client) GetKlineImgWeekly(code string) (string, error) {
	return provider.ChartURL(c.imageURL+"/newchart/weekly/n/", code, c.cacheBuster)
}

// GetKlineImgMonthly returns the monthly candlestick chart URL.
func (c *Client) GetKlineImgMonthly(code string) (string, error) {
	return provider.ChartURL(c.imageURL+"/newchart/monthly/n/", code, c.cacheBuster)
}

// GetTrendImg returns the intraday chart URL.
func (c *Client) GetTrendImg(code string) (string, error) {
	return provider.ChartURL(c.imageURL+"/newchart/min/n/", code, c.cacheBuster)
}
