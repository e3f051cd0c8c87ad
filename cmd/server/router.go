package main

import (
    "net/http"
    "time"

    "github.com/go-chi/chi/v5"
    "github.com/go-chi/chi/v5/middleware"
    "github.com/go-chi/cors"
    "go.uber.org/zap"

    "chinastock/internal/provider"
)

// newRouter builds the HTTP API. providers keeps its order in /api/index responses.
func newRouter(providers []provider.QuoteProvider, timeout time.Duration, logger *zap.Logger) http.Handler {
    h := &handler{
        providers: providers,
        byName:    make(map[string]provider.QuoteProvider, len(providers)),
        logger:    logger,
    }
    for _, p := range providers {
        h.byName[p.Name()] = p
    }

    r := chi.NewRouter()
    r.Use(middleware.RequestID)
    r.Use(requestLogging(logger))
    r.Use(recoverPanic(logger))
    r.Use(cors.Handler(cors.Options{
        AllowedOrigins: []string{"*"},
        AllowedMethods: []string{"GET", "OPTIONS"},
        AllowedHeaders: []string{"Accept", "Content-Type"},
    }))
    r.Use(middleware.Compress(5, "application/json"))
    if timeout > 0 {
        r.Use(withDeadline(timeout))
    }

    r.Get("/healthz", h.health)
    r.Get("/api/index", h.allIndex)
    r.Route("/api/{provider}", func(r chi.Router) {
        r.Use(h.withProvider)
        r.Get("/index", h.index)
        r.Get("/quotes", h.quotes)
        r.Get("/quote/{code}", h.quote)
        r.Get("/kline/{code}", h.kline)
        r.Get("/trend/{code}", h.trend)
        r.Get("/charts/{code}", h.charts)
    })
    return r
}
