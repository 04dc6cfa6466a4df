package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/subosito/gotenv"
)

const (
	BrokerAlpaca   = "alpaca"
	BrokerDisabled = "disabled"

	// WSOriginSameHost accepts websocket upgrades only from pages served by
	// this host. Default when login is enabled.
	WSOriginSameHost = "self"
)

type Config struct {
	HTTPAddr  string
	LogLevel  string
	LogFormat string

	Broker       string
	APIKeyID     string
	APISecretKey string
	APIBaseURL   string
	Paper        bool

	WebSocketOrigin string

	PasswordHash  string
	SessionSecret string
	SessionIssuer string
	SessionTTL    time.Duration

	RateLimitRPS   float64
	RateLimitBurst int
}

func (c Config) AuthEnabled() bool {
	return c.PasswordHash != ""
}

// LoadDotEnv reads KEY=VALUE pairs from path into the environment without
// overriding variables that are already set. A missing file is not an error.
func LoadDotEnv(path string) error {
	if path == "" {
		path = ".env"
	}
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err := gotenv.Load(path); err != nil {
		return fmt.Errorf("load %s: %w", path, err)
	}
	return nil
}

// Load reads the configuration from the environment. Broker credentials are
// passed through as is; the broker rejects bad ones on first use.
func Load() (Config, error) {
	var c Config
	var missing []string

	c.HTTPAddr = getenv("HTTP_ADDR", ":8501")
	c.LogLevel = strings.ToLower(getenv("LOG_LEVEL", "info"))
	c.LogFormat = strings.ToLower(getenv("LOG_FORMAT", "json"))
	if c.LogFormat != "json" && c.LogFormat != "text" {
		return c, errors.New("invalid LOG_FORMAT: use json or text")
	}

	c.Broker = strings.ToLower(getenv("BROKER", BrokerAlpaca))
	if c.Broker != BrokerAlpaca && c.Broker != BrokerDisabled {
		return c, fmt.Errorf("invalid BROKER %q: use %s or %s", c.Broker, BrokerAlpaca, BrokerDisabled)
	}
	c.APIKeyID = os.Getenv("APCA_API_KEY_ID")
	c.APISecretKey = os.Getenv("APCA_API_SECRET_KEY")
	c.APIBaseURL = strings.TrimSpace(os.Getenv("APCA_API_BASE_URL"))
	paper, err := parseBool("APCA_PAPER", true)
	if err != nil {
		return c, err
	}
	c.Paper = paper

	c.PasswordHash = strings.TrimSpace(os.Getenv("DASHBOARD_PASSWORD_HASH"))
	c.SessionSecret = os.Getenv("SESSION_SECRET")
	if c.AuthEnabled() && c.SessionSecret == "" {
		missing = append(missing, "SESSION_SECRET")
	}
	c.SessionIssuer = getenv("SESSION_ISSUER", "paper-dashboard")
	if c.AuthEnabled() {
		c.WebSocketOrigin = getenv("WS_ORIGIN", WSOriginSameHost)
	} else {
		c.WebSocketOrigin = getenv("WS_ORIGIN", "*")
	}
	ttl, err := time.ParseDuration(getenv("SESSION_TTL", "12h"))
	if err != nil {
		return c, fmt.Errorf("invalid SESSION_TTL: %w", err)
	}
	if ttl <= 0 {
		return c, errors.New("invalid SESSION_TTL: must be positive")
	}
	c.SessionTTL = ttl

	rps, err := strconv.ParseFloat(getenv("RATE_LIMIT_RPS", "10"), 64)
	if err != nil || rps <= 0 {
		return c, errors.New("invalid RATE_LIMIT_RPS")
	}
	c.RateLimitRPS = rps
	burst, err := strconv.Atoi(getenv("RATE_LIMIT_BURST", "30"))
	if err != nil || burst < 1 {
		return c, errors.New("invalid RATE_LIMIT_BURST")
	}
	c.RateLimitBurst = burst

	if len(missing) > 0 {
		return c, errors.New("missing required env: " + strings.Join(missing, ","))
	}
	return c, nil
}

func getenv(key, fallback string) string {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback
	}
	return value
}

func parseBool(key string, fallback bool) (bool, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback, nil
	}
	b, err := strconv.ParseBool(raw)
	if err != nil {
		return false, fmt.Errorf("invalid %s: %w", key, err)
	}
	return b, nil
}
