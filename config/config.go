// Package config loads client settings from YAML.
package config

import (
	"errors"
	"fmt"
	"time"

	"go.uber.org/multierr"
	"go.uber.org/zap/zapcore"
)

const (
	NetworkMainnet = "mainnet"
	NetworkTestnet = "testnet"
)

var ErrInvalidConfig = errors.New("invalid config")

type Config struct {
	Network   string          `yaml:"network"`
	Account   AccountConfig   `yaml:"account"`
	WebSocket WebSocketConfig `yaml:"websocket"`
	REST      RESTConfig      `yaml:"rest"`
	LogLevel  string          `yaml:"log_level"`
}

// AccountConfig holds the signing key. PrivateKey is base58; AgentFor is
// set when the key is an agent wallet acting for another account.
type AccountConfig struct {
	PrivateKey   string        `yaml:"private_key"`
	AgentFor     string        `yaml:"agent_for"`
	ExpiryWindow time.Duration `yaml:"expiry_window"`
}

type WebSocketConfig struct {
	URL                  string        `yaml:"url"`
	PingInterval         time.Duration `yaml:"ping_interval"`
	ReconnectBaseDelay   time.Duration `yaml:"reconnect_base_delay"`
	ReconnectMaxDelay    time.Duration `yaml:"reconnect_max_delay"`
	MaxReconnectAttempts int           `yaml:"max_reconnect_attempts"` // 0 retries forever
	HandshakeTimeout     time.Duration `yaml:"handshake_timeout"`
}

type RESTConfig struct {
	URL          string        `yaml:"url"`
	Timeout      time.Duration `yaml:"timeout"`
	MaxTries     int           `yaml:"max_tries"`
	RetryBackoff time.Duration `yaml:"retry_backoff"`
}

// Default returns a mainnet configuration without credentials.
func Default() Config {
	var cfg Config
	cfg.applyDefaults()
	return cfg
}

func (c *Config) applyDefaults() {
	if c.Network == "" {
		c.Network = NetworkMainnet
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
	if c.Account.ExpiryWindow == 0 {
		c.Account.ExpiryWindow = 30 * time.Second
	}

	ws := &c.WebSocket
	if ws.PingInterval == 0 {
		ws.PingInterval = 50 * time.Second
	}
	if ws.ReconnectBaseDelay == 0 {
		ws.ReconnectBaseDelay = time.Second
	}
	if ws.ReconnectMaxDelay == 0 {
		ws.ReconnectMaxDelay = 30 * time.Second
	}
	if ws.HandshakeTimeout == 0 {
		ws.HandshakeTimeout = 10 * time.Second
	}

	rest := &c.REST
	if rest.Timeout == 0 {
		rest.Timeout = 30 * time.Second
	}
	if rest.MaxTries == 0 {
		rest.MaxTries = 4
	}
	if rest.RetryBackoff == 0 {
		rest.RetryBackoff = 500 * time.Millisecond
	}
}

// Testnet reports whether the testnet endpoints should be used.
func (c *Config) Testnet() bool {
	return c.Network == NetworkTestnet
}

// Level parses LogLevel.
func (c *Config) Level() (zapcore.Level, error) {
	return zapcore.ParseLevel(c.LogLevel)
}

// Validate reports every problem found, not just the first.
func (c *Config) Validate() error {
	var err error

	if c.Network != NetworkMainnet && c.Network != NetworkTestnet {
		err = multierr.Append(err, fmt.Errorf("%w: network must be %q or %q, got %q", ErrInvalidConfig, NetworkMainnet, NetworkTestnet, c.Network))
	}
	if _, lerr := c.Level(); lerr != nil {
		err = multierr.Append(err, fmt.Errorf("%w: log_level: %v", ErrInvalidConfig, lerr))
	}
	if c.Account.AgentFor != "" && c.Account.PrivateKey == "" {
		err = multierr.Append(err, fmt.Errorf("%w: account.agent_for requires account.private_key", ErrInvalidConfig))
	}
	if c.Account.ExpiryWindow < 0 {
		err = multierr.Append(err, fmt.Errorf("%w: account.expiry_window must not be negative", ErrInvalidConfig))
	}

	ws := c.WebSocket
	if ws.PingInterval < 0 {
		err = multierr.Append(err, fmt.Errorf("%w: websocket.ping_interval must not be negative", ErrInvalidConfig))
	}
	if ws.ReconnectBaseDelay <= 0 || ws.ReconnectMaxDelay < ws.ReconnectBaseDelay {
		err = multierr.Append(err, fmt.Errorf("%w: websocket reconnect delays must satisfy 0 < base <= max", ErrInvalidConfig))
	}
	if ws.MaxReconnectAttempts < 0 {
		err = multierr.Append(err, fmt.Errorf("%w: websocket.max_reconnect_attempts must not be negative", ErrInvalidConfig))
	}

	if c.REST.MaxTries < 1 {
		err = multierr.Append(err, fmt.Errorf("%w: rest.max_tries must be at least 1", ErrInvalidConfig))
	}

	return err
}
