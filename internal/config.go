package internal

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Port         string
	DatabaseURL  string
	DBMaxConns   int32
	JWTSecret    string
	CookieSecure bool
	GinMode      string
	CORSOrigins  []string

	DBConnectTimeout time.Duration
	DBPingTimeout    time.Duration

	SPARQLEndpoint  string
	NewsURL         string
	UpstreamTimeout time.Duration
	ProxyRateLimit  float64
	ProxyRateBurst  int
}

// LoadConfig reads .env (if present), then an optional config.yaml, then
// the environment. Environment variables win.
func LoadConfig() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")

	v.SetDefault("port", "8080")
	v.SetDefault("db_max_conns", 10)
	v.SetDefault("db_connect_timeout", "30s")
	v.SetDefault("db_ping_timeout", "2s")
	v.SetDefault("cookie_secure", false)
	v.SetDefault("gin_mode", "debug")
	v.SetDefault("cors_origins", "*")
	v.SetDefault("sparql_endpoint", "http://127.0.0.1:7200/repositories/kd_repo_project")
	v.SetDefault("news_url", "https://footballnewsapi.netlify.app/.netlify/functions/api/news/espn")
	v.SetDefault("upstream_timeout", "10s")
	v.SetDefault("proxy_rate_limit", 5.0)
	v.SetDefault("proxy_rate_burst", 10)

	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	cfg := &Config{
		Port:             v.GetString("port"),
		DatabaseURL:      v.GetString("database_url"),
		DBMaxConns:       v.GetInt32("db_max_conns"),
		DBConnectTimeout: v.GetDuration("db_connect_timeout"),
		DBPingTimeout:    v.GetDuration("db_ping_timeout"),
		JWTSecret:        v.GetString("jwt_secret"),
		CookieSecure:     v.GetBool("cookie_secure"),
		GinMode:          v.GetString("gin_mode"),
		CORSOrigins:      splitList(v.GetString("cors_origins")),
		SPARQLEndpoint:   v.GetString("sparql_endpoint"),
		NewsURL:          v.GetString("news_url"),
		UpstreamTimeout:  v.GetDuration("upstream_timeout"),
		ProxyRateLimit:   v.GetFloat64("proxy_rate_limit"),
		ProxyRateBurst:   v.GetInt("proxy_rate_burst"),
	}

	if cfg.DatabaseURL == "" {
		return nil, errors.New("DATABASE_URL is required")
	}
	if cfg.JWTSecret == "" {
		return nil, errors.New("JWT_SECRET is required")
	}
	return cfg, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
