package config_test

import (
    "os"
    "path/filepath"
    "testing"
    "time"

    "github.com/stretchr/testify/require"

    "chinastock/internal/config"
)

func TestDefaultIsValid(t *testing.T) {
    t.Parallel()

    cfg := config.Default()
    require.NoError(t, config.Validate(cfg))
    require.Equal(t, 10*time.Second, cfg.Server.RequestTimeout())
    require.InDelta(t, 2.0, cfg.Sina.RPS(), 1e-9)
    require.Zero(t, cfg.Ifeng.MinInterval())
}

func TestValidateRejects(t *testing.T) {
    t.Parallel()

    tests := []struct {
        name   string
        mutate func(*config.Config)
    }{
        {name: "log level", mutate: func(c *config.Config) { c.Log.Level = "trace" }},
        {name: "log format", mutate: func(c *config.Config) { c.Log.Format = "xml" }},
        {name: "port", mutate: func(c *config.Config) { c.Server.Port = "http" }},
        {name: "quote url", mutate: func(c *config.Config) { c.Sina.QuoteURL = "" }},
        {name: "referer", mutate: func(c *config.Config) { c.Sina.Referer = "not a url" }},
        {name: "negative burst", mutate: func(c *config.Config) { c.Ifeng.Burst = -1 }},
        {name: "no provider", mutate: func(c *config.Config) { c.Ifeng.Enabled, c.Sina.Enabled = false, false }},
    }
    for _, tt := range tests {
        t.Run(tt.name, func(t *testing.T) {
            t.Parallel()

            cfg := config.Default()
            tt.mutate(&cfg)
            require.Error(t, config.Validate(cfg))
        })
    }
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
    cfg, err := config.Load(filepath.Join(t.TempDir(), "absent.json"))
    require.NoError(t, err)
    require.Equal(t, config.Default(), cfg)
}

func TestLoadFileAndEnv(t *testing.T) {
    // Arrange
    path := filepath.Join(t.TempDir(), "config.yaml")
    require.NoError(t, os.WriteFile(path, []byte(`
server:
  port: "9090"
log:
  level: debug
ifeng:
  enabled: false
sina:
  burst: 2
`), 0o600))
    t.Setenv("CHINASTOCK_SINA_REFERER", "http://example.com")
    t.Setenv("CHINASTOCK_LOG_FORMAT", "console")

    // Act
    cfg, err := config.Load(path)

    // Assert
    require.NoError(t, err)
    require.Equal(t, "9090", cfg.Server.Port)
    require.Equal(t, "debug", cfg.Log.Level)
    require.Equal(t, "console", cfg.Log.Format)
    require.False(t, cfg.Ifeng.Enabled)
    require.Equal(t, 2, cfg.Sina.Burst)
    require.Equal(t, 120, cfg.Sina.MaxRequestsPerMinute)
    require.Equal(t, "http://example.com", cfg.Sina.Referer)
}

func TestLoadPortEnv(t *testing.T) {
    t.Setenv("PORT", "7070")

    cfg, err := config.Load(filepath.Join(t.TempDir(), "absent.json"))
    require.NoError(t, err)
    require.Equal(t, "7070", cfg.Server.Port)
}

func TestLoadInvalidFile(t *testing.T) {
    path := filepath.Join(t.TempDir(), "config.json")
    require.NoError(t, os.WriteFile(path, []byte(`{"log":{"level":"loud"}}`), 0o600))

    _, err := config.Load(path)
    require.ErrorContains(t, err, "invalid config")
}
