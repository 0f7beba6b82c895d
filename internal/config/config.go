package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds all application configuration loaded from environment variables.
type Config struct {
	// Environment
	Env string // "development", "production", etc.

	// Server
	ServerAddr string
	BaseURL    string

	// Upstream tools catalog API
	ToolsAPIURL    string // env: TOOLS_API_URL, e.g. "https://tools.example.com/api/tools"
	ToolsAPIKey    string // env: TOOLS_API_KEY, sent as X-API-Key
	ForwardTimeout time.Duration

	// Identity provider (tinyauth-compatible session verification)
	AuthURL       string // env: AUTH_URL, base URL of the identity provider
	SessionCookie string // env: SESSION_COOKIE, default "tinyauth"

	// TLS/mTLS
	TLSEnabled  bool
	TLSCertFile string
	TLSKeyFile  string
	TLSCAFile   string // CA for verifying client certs (mTLS)

	// CORS
	CORSOrigins string // Comma-separated allowed origins

	// Rate limiter backing store (in-memory when empty)
	RedisURL string

	// Category mapping file (optional)
	CategoriesFile string

	// App identity (shell + web app manifest)
	AppName         string // env: APP_NAME, default: "HomeLab"
	AppShortName    string // env: APP_SHORT_NAME, default: "HomeLab"
	ThemeColor      string // env: THEME_COLOR, default: "#2563eb"
	BackgroundColor string // env: BACKGROUND_COLOR, default: "#ffffff"
}

// Load reads configuration from environment variables with sensible defaults.
func Load() *Config {
	return &Config{
		Env:            getEnv("ENV", "development"),
		ServerAddr:     getEnv("SERVER_ADDR", ":3000"),
		BaseURL:        getEnv("BASE_URL", "http://localhost:3000"),
		ToolsAPIURL:    getEnv("TOOLS_API_URL", ""),
		ToolsAPIKey:    getEnv("TOOLS_API_KEY", ""),
		ForwardTimeout: getEnvSeconds("FORWARD_TIMEOUT", 15*time.Second),
		AuthURL:        getEnv("AUTH_URL", "https://auth.mrlopez.io"),
		SessionCookie:  getEnv("SESSION_COOKIE", "tinyauth"),
		TLSEnabled:     getEnv("TLS_ENABLED", "") != "",
		TLSCertFile:    getEnv("TLS_CERT_FILE", ""),
		TLSKeyFile:     getEnv("TLS_KEY_FILE", ""),
		TLSCAFile:      getEnv("TLS_CA_FILE", ""),
		CORSOrigins:    getEnv("CORS_ORIGINS", ""),
		RedisURL:       getEnv("REDIS_URL", ""),
		CategoriesFile: getEnv("CATEGORIES_FILE", "categories.yaml"),

		AppName:         getEnv("APP_NAME", "HomeLab"),
		AppShortName:    getEnv("APP_SHORT_NAME", "HomeLab"),
		ThemeColor:      getEnv("THEME_COLOR", "#2563eb"),
		BackgroundColor: getEnv("BACKGROUND_COLOR", "#ffffff"),
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvSeconds(key string, fallback time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	secs, err := strconv.Atoi(value)
	if err != nil || secs <= 0 {
		return fallback
	}
	return time.Duration(secs) * time.Second
}

// IsDev returns true if the environment is set to development.
func (c *Config) IsDev() bool {
	return c.Env == "development" || c.Env == "dev"
}

// IsMTLSEnabled returns true if mTLS is configured with a CA file.
func (c *Config) IsMTLSEnabled() bool {
	return c.TLSEnabled && c.TLSCAFile != ""
}

// HasUpstream reports whether both upstream catalog values are configured.
// Missing values are a CONFIG_ERROR at use sites, never a network failure.
func (c *Config) HasUpstream() bool {
	return c.ToolsAPIURL != "" && c.ToolsAPIKey != ""
}
