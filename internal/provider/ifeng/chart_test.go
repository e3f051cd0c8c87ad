package ifeng_test

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/require"

	"chinastock/internal/provider"
	"chinastock/internal/provider/ifeng"
)

func TestChartURLs(t *testing.T) {
	t.Parallel()

	client, err := ifeng.NewClient(ifeng.WithCacheBuster(func() int { return 12345 }))
	require.NoError(t, err)

	kline, err := client.GetKlineImg("600027")
	require.NoError(t, err)
	require.Equal(t, "http://img.finance.ifeng.com/chart/kline/sh600027.gif?12345", kline)

	trend, err := client.GetTrendImg("000001")
	require.NoError(t, err)
	require.Equal(t, "http://img.finance.ifeng.com/chart/min/sz000001.gif?12345", trend)
}

func TestChartURLRandomSuffix(t *testing.T) {
	t.Parallel()

	client, err := ifeng.NewClient(
		ifeng.WithImageURL("http://img.example.com"),
		ifeng.WithCacheBuster(provider.SeededCacheBuster(rand.New(rand.NewPCG(7, 7)))),
	)
	require.NoError(t, err)

	got, err := client.GetKlineImg("300750")
	require.NoError(t, err)
	require.Regexp(t, `^http://img\.example\.com/chart/kline/sz300750\.gif\?[1-9]\d{0,8}$`, got)
}

func TestChartURLInvalidCode(t *testing.T) {
	t.Parallel()

	client, err := ifeng.NewClient()
	require.NoError(t, err)

	_, err = client.GetTrendImg("700000")
	require.ErrorIs(t, err, provider.ErrInvalidArgument)
	require.EqualError(t, err, "Invalid code format: 700000")
}
