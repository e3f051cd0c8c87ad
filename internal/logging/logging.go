package logging

import (
    "fmt"

    "go.uber.org/zap"
    "go.uber.org/zap/zapcore"
)

// New builds a production zap logger at level ("debug", "info", "warn", "error")
// encoding as "json" or "console", writing to stderr.
func New(level, format string) (*zap.Logger, error) {
    lvl, err := zapcore.ParseLevel(level)
    if err != nil {
        return nil, fmt.Errorf("log level: %w", err)
    }

    config := zap.NewProductionConfig()
    config.Level = zap.NewAtomicLevelAt(lvl)
    config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
    config.EncoderConfig.TimeKey = "time"
    switch format {
    case "", "json":
        config.Encoding = "json"
    case "console":
        config.Encoding = "console"
        config.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
    default:
        return nil, fmt.Errorf("log format %q: want json or console", format)
    }

    logger, err := config.Build()
    if err != nil {
        return nil, fmt.Errorf("build logger: %w", err)
    }
    return logger, nil
}
