package main

import (
    "context"
    "encoding/json"
    "errors"
    "net/http"
    "strings"

    "github.com/go-chi/chi/v5"
    "go.uber.org/zap"
    "golang.org/x/sync/errgroup"

    "chinastock/internal/provider"
)

type handler struct {
    providers []provider.QuoteProvider
    byName    map[string]provider.QuoteProvider
    logger    *zap.Logger
}

type quotesResponse struct {
    Quotes []provider.Quote `json:"quotes"`
}

type quoteResponse struct {
    Quote provider.Quote `json:"quote"`
}

type barsResponse struct {
    Bars []provider.Bar `json:"bars"`
}

type indexResult struct {
    Provider string           `json:"provider"`
    Quotes   []provider.Quote `json:"quotes,omitempty"`
    Error    string           `json:"error,omitempty"`
}

type indexResponse struct {
    Results []indexResult `json:"results"`
}

type providerKey struct{}

func (h *handler) withProvider(next http.Handler) http.Handler {
    return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
        name := chi.URLParam(r, "provider")
        p, ok := h.byName[name]
        if !ok {
            writeError(w, http.StatusNotFound, "not_found", "unknown provider: "+name)
            return
        }
        next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), providerKey{}, p)))
    })
}

func providerFrom(r *http.Request) provider.QuoteProvider {
    return r.Context().Value(providerKey{}).(provider.QuoteProvider)
}

func (h *handler) health(w http.ResponseWriter, r *http.Request) {
    writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// allIndex asks every provider for the index quotes concurrently. A provider
// failure is reported in its row; the call fails only when all providers do.
func (h *handler) allIndex(w http.ResponseWriter, r *http.Request) {
    results := make([]indexResult, len(h.providers))
    g, ctx := errgroup.WithContext(r.Context())
    for i, p := range h.providers {
        g.Go(func() error {
            quotes, err := p.GetIndex(ctx)
            results[i] = indexResult{Provider: p.Name(), Quotes: quotes}
            if err != nil {
                h.logger.Warn("index fetch failed", zap.String("provider", p.Name()), zap.Error(err))
                results[i].Error = err.Error()
            }
            return nil
        })
    }
    _ = g.Wait()

    status := http.StatusBadGateway
    for _, res := range results {
        if res.Error == "" {
            status = http.StatusOK
            break
        }
    }
    writeJSON(w, status, indexResponse{Results: results})
}

func (h *handler) index(w http.ResponseWriter, r *http.Request) {
    quotes, err := providerFrom(r).GetIndex(r.Context())
    if err != nil {
        fail(w, err)
        return
    }
    writeJSON(w, http.StatusOK, quotesResponse{Quotes: quotes})
}

// quotes serves ?codes=600027,000001. A missing parameter and an empty one are
// rejected with different messages.
func (h *handler) quotes(w http.ResponseWriter, r *http.Request) {
    var codes []string
    if values, ok := r.URL.Query()["codes"]; ok {
        codes = splitCSV(strings.Join(values, ","))
    }
    quotes, err := providerFrom(r).GetInfos(r.Context(), codes)
    if err != nil {
        fail(w, err)
        return
    }
    writeJSON(w, http.StatusOK, quotesResponse{Quotes: quotes})
}

func (h *handler) quote(w http.ResponseWriter, r *http.Request) {
    quote, err := providerFrom(r).GetInfo(r.Context(), chi.URLParam(r, "code"))
    if err != nil {
        fail(w, err)
        return
    }
    writeJSON(w, http.StatusOK, quoteResponse{Quote: quote})
}

func (h *handler) kline(w http.ResponseWriter, r *http.Request) {
    h.bars(w, r, provider.BarProvider.GetKlineData)
}

func (h *handler) trend(w http.ResponseWriter, r *http.Request) {
    h.bars(w, r, provider.BarProvider.GetTrendData)
}

func (h *handler) bars(w http.ResponseWriter, r *http.Request, get func(provider.BarProvider, context.Context, string) ([]provider.Bar, error)) {
    p := providerFrom(r)
    bp, ok := p.(provider.BarProvider)
    if !ok {
        writeError(w, http.StatusNotImplemented, "not_implemented", p.Name()+" has no bar data")
        return
    }
    bars, err := get(bp, r.Context(), chi.URLParam(r, "code"))
    if err != nil {
        fail(w, err)
        return
    }
    writeJSON(w, http.StatusOK, barsResponse{Bars: bars})
}

func (h *handler) charts(w http.ResponseWriter, r *http.Request) {
    p := providerFrom(r)
    code := chi.URLParam(r, "code")

    out := make(map[string]string, 4)
    var err error
    if out["kline"], err = p.GetKlineImg(code); err != nil {
        fail(w, err)
        return
    }
    if out["trend"], err = p.GetTrendImg(code); err != nil {
        fail(w, err)
        return
    }
    if pc, ok := p.(provider.PeriodChartProvider); ok {
        if out["weekly"], err = pc.GetKlineImgWeekly(code); err != nil {
            fail(w, err)
            return
        }
        if out["monthly"], err = pc.GetKlineImgMonthly(code); err != nil {
            fail(w, err)
            return
        }
    }
    writeJSON(w, http.StatusOK, out)
}

// statusOf maps provider error kinds onto HTTP statuses.
func statusOf(err error) (int, string) {
    switch {
    case errors.Is(err, provider.ErrInvalidArgument):
        return http.StatusBadRequest, "invalid_argument"
    case errors.Is(err, provider.ErrTransformationFailed):
        return http.StatusUnprocessableEntity, "transformation_failed"
    // Upstream timeouts arrive wrapped as HTTP failures.
    case errors.Is(err, context.DeadlineExceeded):
        return http.StatusGatewayTimeout, "timeout"
    case errors.Is(err, provider.ErrHTTPFailure):
        return http.StatusBadGateway, "http_failure"
    default:
        return http.StatusInternalServerError, "internal"
    }
}

func fail(w http.ResponseWriter, err error) {
    status, kind := statusOf(err)
    writeError(w, status, kind, err.Error())
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
    w.Header().Set("Content-Type", "application/json; charset=utf-8")
    w.WriteHeader(status)
    enc := json.NewEncoder(w)
    enc.SetEscapeHTML(false)
    _ = enc.Encode(payload)
}

func writeError(w http.ResponseWriter, status int, kind, message string) {
    writeJSON(w, status, map[string]string{"error": message, "kind": kind})
}

func splitCSV(s string) []string {
    parts := strings.Split(s, ",")
    out := make([]string, 0, len(parts))
    for _, p := range parts {
        p = strings.TrimSpace(p)
        if p != "" { out = append(out, p) }
    }
    return out
}
