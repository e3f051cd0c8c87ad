package provider

import (
    "context"
)

// Quote is the normalized shape returned by all providers.
// Keep values as strings exactly as the upstream reports them.
type Quote struct {
    Code       string    `json:"code"`
    Name       string    `json:"name,omitempty"`
    LastPx     string    `json:"last_px"`
    OpenPx     string    `json:"open_px"`
    PreclosePx string    `json:"preclose_px"`
    HighPx     string    `json:"high_px"`
    LowPx      string    `json:"low_px"`
    Volume     string    `json:"volume"`
    Amount     string    `json:"amount"`
    PxChange   string    `json:"px_change,omitempty"`
    PxChangeRt string    `json:"px_change_rt"`
    BP         [5]string `json:"BP"`
    BV         [5]string `json:"BV"`
    SP         [5]string `json:"SP"`
    SV         [5]string `json:"SV"`
    Time       string    `json:"time"`
}

// Bar is one OHLCV row from a historical or intraday endpoint.
type Bar struct {
    Date    string `json:"date"`
    OpenPx  string `json:"open_px"`
    ClosePx string `json:"close_px"`
    HighPx  string `json:"high_px"`
    LowPx   string `json:"low_px"`
    Volume  string `json:"volume"`
}

// IndexCodes are the Shanghai composite, Shenzhen component and ChiNext indices.
var IndexCodes = []string{"000001", "399001", "399006"}

// QuoteProvider is implemented by every upstream quote source.
type QuoteProvider interface {
    Name() string
    GetIndex(ctx context.Context) ([]Quote, error)
    GetInfo(ctx context.Context, code string) (Quote, error)
    GetInfos(ctx context.Context, codes []string) ([]Quote, error)
    GetKlineImg(code string) (string, error)
    GetTrendImg(code string) (string, error)
}

// PeriodChartProvider is implemented by sources with weekly and monthly candlestick charts.
type PeriodChartProvider interface {
    GetKlineImgWeekly(code string) (string, error)
    GetKlineImgMonthly(code string) (string, error)
}

// BarProvider is implemented by sources that serve daily and intraday bars.
type BarProvider interface {
    GetKlineData(ctx context.Context, code string) ([]Bar, error)
    GetTrendData(ctx context.Context, code string) ([]Bar, error)
}
