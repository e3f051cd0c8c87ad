package config

import (
    "errors"
    "fmt"
    "os"
    "strings"
    "time"

    "github.com/go-playground/validator/v10"
    "github.com/spf13/viper"
)

type Server struct {
    Port              string `mapstructure:"port" validate:"required,numeric"`
    RequestTimeoutSec int    `mapstructure:"request_timeout_sec" validate:"min=1"`
}

type Log struct {
    Level  string `mapstructure:"level" validate:"oneof=debug info warn error"`
    Format string `mapstructure:"format" validate:"oneof=json console"`
}

type HTTP struct {
    TimeoutSec int    `mapstructure:"timeout_sec" validate:"min=1"`
    UserAgent  string `mapstructure:"user_agent"`
}

// Limits gate requests to one upstream. Zero disables a gate.
type Limits struct {
    MaxRequestsPerMinute  int `mapstructure:"max_requests_per_minute" validate:"min=0"`
    Burst                 int `mapstructure:"burst" validate:"min=0"`
    MinRequestIntervalSec int `mapstructure:"min_request_interval_sec" validate:"min=0"`
}

type Ifeng struct {
    Enabled  bool   `mapstructure:"enabled"`
    QuoteURL string `mapstructure:"quote_url" validate:"required,url"`
    APIURL   string `mapstructure:"api_url" validate:"required,url"`
    ImageURL string `mapstructure:"image_url" validate:"required,url"`
    Limits   `mapstructure:",squash"`
}

type Sina struct {
    Enabled  bool   `mapstructure:"enabled"`
    QuoteURL string `mapstructure:"quote_url" validate:"required,url"`
    ImageURL string `mapstructure:"image_url" validate:"required,url"`
    Referer  string `mapstructure:"referer" validate:"omitempty,url"`
    Limits   `mapstructure:",squash"`
}

type Config struct {
    Server Server `mapstructure:"server"`
    Log    Log    `mapstructure:"log"`
    HTTP   HTTP   `mapstructure:"http"`
    Ifeng  Ifeng  `mapstructure:"ifeng"`
    Sina   Sina   `mapstructure:"sina"`
}

func Default() Config {
    return Config{
        Server: Server{Port: "8080", RequestTimeoutSec: 10},
        Log:    Log{Level: "info", Format: "json"},
        HTTP:   HTTP{TimeoutSec: 5, UserAgent: "chinastock/1.0"},
        Ifeng: Ifeng{
            Enabled:  true,
            QuoteURL: "http://hq.finance.ifeng.com",
            APIURL:   "http://api.finance.ifeng.com",
            ImageURL: "http://img.finance.ifeng.com",
            Limits:   Limits{MaxRequestsPerMinute: 120, Burst: 5},
        },
        Sina: Sina{
            Enabled:  true,
            QuoteURL: "http://hq.sinajs.cn",
            ImageURL: "http://image.sinajs.cn",
            Referer:  "http://finance.sina.com.cn",
            Limits:   Limits{MaxRequestsPerMinute: 120, Burst: 5},
        },
    }
}

// RequestTimeout bounds one API request end to end.
func (s Server) RequestTimeout() time.Duration {
    return time.Duration(s.RequestTimeoutSec) * time.Second
}

func (h HTTP) Timeout() time.Duration {
    return time.Duration(h.TimeoutSec) * time.Second
}

// RPS converts the per-minute budget for ratelimit.Wrap.
func (l Limits) RPS() float64 {
    return float64(l.MaxRequestsPerMinute) / 60
}

func (l Limits) MinInterval() time.Duration {
    return time.Duration(l.MinRequestIntervalSec) * time.Second
}

// Load reads config from path, then CONFIG_FILE, then ./config.json. A missing
// file means defaults. CHINASTOCK_* environment variables override any key,
// e.g. CHINASTOCK_SINA_REFERER; PORT is honored for server.port.
func Load(path string) (Config, error) {
    v := viper.New()
    setDefaults(v, Default())

    v.SetEnvPrefix("CHINASTOCK")
    v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
    v.AutomaticEnv()
    if err := v.BindEnv("server.port", "CHINASTOCK_SERVER_PORT", "PORT"); err != nil {
        return Config{}, fmt.Errorf("bind env: %w", err)
    }

    if path == "" {
        path = os.Getenv("CONFIG_FILE")
    }
    if path == "" {
        if _, err := os.Stat("config.json"); err == nil {
            path = "config.json"
        }
    }
    if path != "" {
        v.SetConfigFile(path)
        if err := v.ReadInConfig(); err != nil {
            var notFound viper.ConfigFileNotFoundError
            if !errors.Is(err, os.ErrNotExist) && !errors.As(err, &notFound) {
                return Config{}, fmt.Errorf("read config: %w", err)
            }
        }
    }

    var cfg Config
    if err := v.Unmarshal(&cfg); err != nil {
        return Config{}, fmt.Errorf("parse config: %w", err)
    }
    if err := Validate(cfg); err != nil {
        return Config{}, err
    }
    return cfg, nil
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks field constraints and that at least one provider is enabled.
func Validate(cfg Config) error {
    if err := validate.Struct(cfg); err != nil {
        return fmt.Errorf("invalid config: %w", err)
    }
    if !cfg.Ifeng.Enabled && !cfg.Sina.Enabled {
        return errors.New("invalid config: no provider enabled")
    }
    return nil
}

func setDefaults(v *viper.Viper, d Config) {
    v.SetDefault("server.port", d.Server.Port)
    v.SetDefault("server.request_timeout_sec", d.Server.RequestTimeoutSec)
    v.SetDefault("log.level", d.Log.Level)
    v.SetDefault("log.format", d.Log.Format)
    v.SetDefault("http.timeout_sec", d.HTTP.TimeoutSec)
    v.SetDefault("http.user_agent", d.HTTP.UserAgent)

    v.SetDefault("ifeng.enabled", d.Ifeng.Enabled)
    v.SetDefault("ifeng.quote_url", d.Ifeng.QuoteURL)
    v.SetDefault("ifeng.api_url", d.Ifeng.APIURL)
    v.SetDefault("ifeng.image_url", d.Ifeng.ImageURL)
    setLimitDefaults(v, "ifeng", d.Ifeng.Limits)

    v.SetDefault("sina.enabled", d.Sina.Enabled)
    v.SetDefault("sina.quote_url", d.Sina.QuoteURL)
    v.SetDefault("sina.image_url", d.Sina.ImageURL)
    v.SetDefault("sina.referer", d.Sina.Referer)
    setLimitDefaults(v, "sina", d.Sina.Limits)
}

func setLimitDefaults(v *viper.Viper, prefix string, l Limits) {
    v.SetDefault(prefix+".max_requests_per_minute", l.MaxRequestsPerMinute)
    v.SetDefault(prefix+".burst", l.Burst)
    v.SetDefault(prefix+".min_request_interval_sec", l.MinRequestIntervalSec)
}
