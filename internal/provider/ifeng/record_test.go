package ifeng_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"chinastock/internal/provider"
	"chinastock/internal/provider/ifeng"
)

func TestGetKlineData(t *testing.T) {
	t.Parallel()

	// Arrange
	ctrl := gomock.NewController(t)
	httpClient := NewMockHTTPClient(ctrl)
	body := `{"record":[["2024-01-02","8.30","8.50","8.41","8.20","123456","0.11","1.33"],["2024-01-03","8.41","8.60","8.55","8.40","234567","0.14","1.66"]]}`
	httpClient.EXPECT().
		Do(gomock.Any()).
		DoAndReturn(func(req *http.Request) (*http.Response, error) {
			require.Equal(t, "http://api.finance.ifeng.com/akdaily/?type=last&code=sh600027", req.URL.String())
			return respond(body)(req)
		}).
		Times(1)

	client, err := ifeng.NewClient(ifeng.WithHTTPClient(httpClient))
	require.NoError(t, err)

	// Act
	bars, err := client.GetKlineData(t.Context(), "600027")

	// Assert
	require.NoError(t, err)
	require.Equal(t, []provider.Bar{
		{Date: "20240102", OpenPx: "8.30", HighPx: "8.50", ClosePx: "8.41", LowPx: "8.20", Volume: "123456"},
		{Date: "20240103", OpenPx: "8.41", HighPx: "8.60", ClosePx: "8.55", LowPx: "8.40", Volume: "234567"},
	}, bars)
}

func TestGetTrendData(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	httpClient := NewMockHTTPClient(ctrl)
	body := `{"record":[["2024-01-02 09:35:00","10.1","10.3","10.2","10.0","5500"]]}`
	httpClient.EXPECT().
		Do(gomock.Any()).
		DoAndReturn(func(req *http.Request) (*http.Response, error) {
			require.Equal(t, "http://api.finance.ifeng.com/akmin?type=5&scode=sz000001", req.URL.String())
			return respond(body)(req)
		}).
		Times(1)

	client, err := ifeng.NewClient(ifeng.WithHTTPClient(httpClient))
	require.NoError(t, err)

	bars, err := client.GetTrendData(t.Context(), "000001")
	require.NoError(t, err)
	require.Equal(t, []provider.Bar{
		{Date: "20240102", OpenPx: "10.1", HighPx: "10.3", ClosePx: "10.2", LowPx: "10.0", Volume: "5500"},
	}, bars)
}

func TestGetKlineDataEmptyRecord(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	httpClient := NewMockHTTPClient(ctrl)
	httpClient.EXPECT().Do(gomock.Any()).DoAndReturn(respond(`{"record":[]}`)).Times(1)

	client, err := ifeng.NewClient(ifeng.WithHTTPClient(httpClient))
	require.NoError(t, err)

	bars, err := client.GetKlineData(t.Context(), "600027")
	require.NoError(t, err)
	require.Empty(t, bars)
}

func TestGetKlineDataTransformationFailed(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		body string
	}{
		{name: "no record", body: `{"data":[]}`},
		{name: "short row", body: `{"record":[["2024-01-02","8.30"]]}`},
		{name: "bad date", body: `{"record":[["yesterday","1","2","3","4","5"]]}`},
		{name: "not json", body: `<html></html>`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			ctrl := gomock.NewController(t)
			httpClient := NewMockHTTPClient(ctrl)
			httpClient.EXPECT().Do(gomock.Any()).DoAndReturn(respond(tt.body)).Times(1)

			client, err := ifeng.NewClient(ifeng.WithHTTPClient(httpClient))
			require.NoError(t, err)

			_, err = client.GetKlineData(t.Context(), "600027")
			require.ErrorIs(t, err, provider.ErrTransformationFailed)
			require.EqualError(t, err, "Data transformation failed, stock 600027 may be closed or not exists.")
		})
	}
}

func TestGetTrendDataInvalidCode(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	httpClient := NewMockHTTPClient(ctrl)
	httpClient.EXPECT().Do(gomock.Any()).Times(0)

	client, err := ifeng.NewClient(ifeng.WithHTTPClient(httpClient))
	require.NoError(t, err)

	_, err = client.GetTrendData(t.Context(), "12345")
	require.ErrorIs(t, err, provider.ErrInvalidArgument)
}
