package main

import (
    "context"
    "fmt"
    "net/http"
    "runtime/debug"
    "time"

    "github.com/go-chi/chi/v5"
    "github.com/go-chi/chi/v5/middleware"
    "go.uber.org/zap"
)

func requestLogging(logger *zap.Logger) func(http.Handler) http.Handler {
    return func(next http.Handler) http.Handler {
        return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
            start := time.Now()
            ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

            next.ServeHTTP(ww, r)

            status := ww.Status()
            if status == 0 {
                status = http.StatusOK
            }
            fields := []zap.Field{
                zap.String("request_id", middleware.GetReqID(r.Context())),
                zap.String("method", r.Method),
                zap.String("path", r.URL.Path),
                zap.String("route", routePattern(r)),
                zap.String("query", r.URL.RawQuery),
                zap.Int("status", status),
                zap.Int("bytes", ww.BytesWritten()),
                zap.Duration("duration", time.Since(start)),
                zap.String("remote_ip", r.RemoteAddr),
            }
            switch {
            case status >= http.StatusInternalServerError:
                logger.Error("http request completed", fields...)
            case status >= http.StatusBadRequest:
                logger.Warn("http request completed", fields...)
            default:
                logger.Info("http request completed", fields...)
            }
        })
    }
}

// recoverPanic protects handlers from panics.
func recoverPanic(logger *zap.Logger) func(http.Handler) http.Handler {
    return func(next http.Handler) http.Handler {
        return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
            defer func() {
                if rec := recover(); rec != nil {
                    if rec == http.ErrAbortHandler {
                        panic(rec)
                    }
                    logger.Error("panic recovered",
                        zap.String("request_id", middleware.GetReqID(r.Context())),
                        zap.String("path", r.URL.Path),
                        zap.String("panic", fmt.Sprint(rec)),
                        zap.ByteString("stack", debug.Stack()),
                    )
                    writeError(w, http.StatusInternalServerError, "internal", "internal server error")
                }
            }()
            next.ServeHTTP(w, r)
        })
    }
}

// withDeadline bounds the request context. Handlers write the timeout response
// themselves, so nothing is written here after the handler returns.
func withDeadline(timeout time.Duration) func(http.Handler) http.Handler {
    return func(next http.Handler) http.Handler {
        return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
            ctx, cancel := context.WithTimeout(r.Context(), timeout)
            defer cancel()
            next.ServeHTTP(w, r.WithContext(ctx))
        })
    }
}

func routePattern(r *http.Request) string {
    rctx := chi.RouteContext(r.Context())
    if rctx == nil {
        return ""
    }
    return rctx.RoutePattern()
}
