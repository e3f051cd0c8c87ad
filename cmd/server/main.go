package main

import (
    "context"
    "errors"
    "log"
    "net/http"
    "os"
    "os/signal"
    "syscall"
    "time"

    "go.uber.org/zap"

    "chinastock/internal/config"
    "chinastock/internal/logging"
    "chinastock/internal/setup"
)

func main() {
    cfg, err := config.Load(os.Getenv("CONFIG_FILE"))
    if err != nil { log.Fatalf("config: %v", err) }

    logger, err := logging.New(cfg.Log.Level, cfg.Log.Format)
    if err != nil { log.Fatalf("logger: %v", err) }
    defer func() { _ = logger.Sync() }()

    providers, err := setup.Providers(cfg, logger)
    if err != nil { logger.Fatal("providers", zap.Error(err)) }

    srv := &http.Server{
        Addr:              ":" + cfg.Server.Port,
        Handler:           newRouter(providers, cfg.Server.RequestTimeout(), logger),
        ReadHeaderTimeout: 5 * time.Second,
        ReadTimeout:       15 * time.Second,
        WriteTimeout:      cfg.Server.RequestTimeout() + 5*time.Second,
        IdleTimeout:       60 * time.Second,
    }

    go func() {
        logger.Info("server listening", zap.String("addr", srv.Addr), zap.Int("providers", len(providers)))
        if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
            logger.Fatal("server", zap.Error(err))
        }
    }()

    // graceful shutdown
    ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
    defer stop()
    <-ctx.Done()
    shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
    defer cancel()
    if err := srv.Shutdown(shutdownCtx); err != nil {
        logger.Warn("shutdown", zap.Error(err))
    }
}
