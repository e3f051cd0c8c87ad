package httpx_test

import (
    "net/http"
    "net/http/httptest"
    "testing"
    "time"

    "github.com/stretchr/testify/require"

    "chinastock/internal/httpx"
)

func TestClientDoSetsDefaults(t *testing.T) {
    t.Parallel()

    var gotUA, gotReferer string
    srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
        gotUA = r.Header.Get("User-Agent")
        gotReferer = r.Header.Get("Referer")
    }))
    t.Cleanup(srv.Close)

    c := httpx.New(2 * time.Second)
    c.Headers = map[string]string{"Referer": "http://default.example"}

    req, err := http.NewRequestWithContext(t.Context(), http.MethodGet, srv.URL, http.NoBody)
    require.NoError(t, err)
    req.Header.Set("Referer", "http://finance.sina.com.cn")

    res, err := c.Do(req)
    require.NoError(t, err)
    res.Body.Close()

    require.Equal(t, "chinastock/1.0", gotUA)
    require.Equal(t, "http://finance.sina.com.cn", gotReferer)
}

func TestStatusError(t *testing.T) {
    t.Parallel()

    err := &httpx.StatusError{Method: "GET", URL: "http://x", Status: 404}
    require.Equal(t, "GET http://x -> 404", err.Error())
    require.Equal(t, 404, err.StatusCode())

    err.Body = "not found"
    require.Equal(t, "GET http://x -> 404: not found", err.Error())
}
