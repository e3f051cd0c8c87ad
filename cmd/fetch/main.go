package main

import (
    "context"
    "encoding/json"
    "flag"
    "fmt"
    "io"
    "log"
    "os"
    "strings"
    "time"

    "go.uber.org/zap"

    "chinastock/internal/config"
    "chinastock/internal/logging"
    "chinastock/internal/provider"
    "chinastock/internal/setup"
)

func main() {
    var providerName string
    var op string
    var codesCSV string
    var timeout int
    var configPath string

    flag.StringVar(&providerName, "provider", "ifeng", "quote provider: ifeng or sina")
    flag.StringVar(&op, "op", "index", "operation: index, info, infos, kline, trend, charts")
    flag.StringVar(&codesCSV, "codes", "600027", "comma-separated six-digit stock codes")
    flag.IntVar(&timeout, "timeout", 15, "request timeout seconds")
    flag.StringVar(&configPath, "config", os.Getenv("CONFIG_FILE"), "path to config file (optional)")
    flag.Parse()

    cfg, err := config.Load(configPath)
    if err != nil { log.Fatalf("config: %v", err) }

    logger, err := logging.New(cfg.Log.Level, "console")
    if err != nil { log.Fatalf("logger: %v", err) }
    defer func() { _ = logger.Sync() }()

    providers, err := setup.Providers(cfg, logger)
    if err != nil { logger.Fatal("providers", zap.Error(err)) }

    var p provider.QuoteProvider
    for _, candidate := range providers {
        if candidate.Name() == providerName { p = candidate }
    }
    if p == nil { logger.Fatal("provider not enabled", zap.String("provider", providerName)) }

    ctx, cancel := context.WithTimeout(context.Background(), time.Duration(timeout)*time.Second)
    defer cancel()

    out, err := run(ctx, p, op, splitCSV(codesCSV))
    if err != nil { logger.Fatal("fetch failed", zap.String("provider", p.Name()), zap.String("op", op), zap.Error(err)) }
    if err := printJSON(os.Stdout, out); err != nil { logger.Fatal("encode", zap.Error(err)) }
}

// run dispatches one operation. Single-code operations use the first code.
func run(ctx context.Context, p provider.QuoteProvider, op string, codes []string) (any, error) {
    first := ""
    if len(codes) > 0 { first = codes[0] }

    switch op {
    case "index":
        return p.GetIndex(ctx)
    case "info":
        return p.GetInfo(ctx, first)
    case "infos":
        return p.GetInfos(ctx, codes)
    case "kline", "trend":
        bp, ok := p.(provider.BarProvider)
        if !ok { return nil, fmt.Errorf("%s has no bar data", p.Name()) }
        if op == "kline" { return bp.GetKlineData(ctx, first) }
        return bp.GetTrendData(ctx, first)
    case "charts":
        kline, err := p.GetKlineImg(first)
        if err != nil { return nil, err }
        trend, err := p.GetTrendImg(first)
        if err != nil { return nil, err }
        out := map[string]string{"kline": kline, "trend": trend}
        if pc, ok := p.(provider.PeriodChartProvider); ok {
            if out["weekly"], err = pc.GetKlineImgWeekly(first); err != nil { return nil, err }
            if out["monthly"], err = pc.GetKlineImgMonthly(first); err != nil { return nil, err }
        }
        return out, nil
    default:
        return nil, fmt.Errorf("unknown op %q", op)
    }
}

func printJSON(w io.Writer, v any) error {
    enc := json.NewEncoder(w)
    enc.SetEscapeHTML(false)
    enc.SetIndent("", "  ")
    return enc.Encode(v)
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
