package medclient

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config carries everything needed to wire a client and session manager
// from the environment.
type Config struct {
	// BaseURL is the backend root, including any path prefix.
	BaseURL string `env:"MEDCLIENT_API_URL" envDefault:"http://localhost:5000/api"`
	// TokenFile overrides where the credential slot is persisted. Empty
	// resolves to medclient/token under the user config directory.
	TokenFile string `env:"MEDCLIENT_TOKEN_FILE"`
	// Timeout is applied to the underlying http.Client.
	Timeout time.Duration `env:"MEDCLIENT_TIMEOUT" envDefault:"30s"`
	// Debug dumps request/response envelopes through the logger.
	Debug bool `env:"MEDCLIENT_DEBUG"`
	// ClaimsFallback keeps the degraded offline session path enabled.
	ClaimsFallback bool `env:"MEDCLIENT_CLAIMS_FALLBACK" envDefault:"true"`
}

// LoadConfig reads a .env file when one exists, then the environment.
func LoadConfig() (Config, error) {
	if err := godotenv.Load(); err != nil {
		var pathErr *os.PathError
		if !errors.As(err, &pathErr) {
			return Config{}, fmt.Errorf("load .env file: %w", err)
		}
	}

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return cfg, fmt.Errorf("parse config: %w", err)
	}

	cfg.Sanitize()
	return cfg, nil
}

// Sanitize normalizes values that tolerate sloppy input.
func (c *Config) Sanitize() {
	c.BaseURL = strings.TrimRight(strings.TrimSpace(c.BaseURL), "/")
}

func (c Config) GetBaseURL() string {
	return c.BaseURL
}

func (c Config) GetTokenFile() string {
	return c.TokenFile
}

func (c Config) GetTimeout() time.Duration {
	return c.Timeout
}

// New builds the full client stack from a config: the persisted token
// store, the request client, and the session manager already registered as
// the unauthorized handler.
func New(cfg Config) (*Client, *SessionManager, error) {
	tokens, err := NewFileTokenStore(cfg.GetTokenFile())
	if err != nil {
		return nil, nil, err
	}

	client := NewClient(cfg.GetBaseURL(), tokens).
		WithHTTPClient(&http.Client{Timeout: cfg.GetTimeout()}).
		WithDebug(cfg.Debug)

	manager := NewSessionManager(client, tokens).
		WithClaimsFallback(cfg.ClaimsFallback)

	return client, manager, nil
}
