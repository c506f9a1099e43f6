// Package pacifica bundles the REST and streaming clients for the Pacifica
// perpetuals venue behind one configuration.
package pacifica

import (
	"fmt"

	"github.com/tradingiq/pacifica-client/config"
	"github.com/tradingiq/pacifica-client/rest"
	"github.com/tradingiq/pacifica-client/signer"
	"github.com/tradingiq/pacifica-client/websocket"

	"go.uber.org/zap"
)

type Client struct {
	REST   *rest.Client
	Stream *websocket.Client
	Signer *signer.Signer // nil without a private key

	logger *zap.Logger
}

// New builds both clients from cfg. Extra stream options are applied after
// the ones derived from cfg.
func New(cfg config.Config, logger *zap.Logger, streamOpts ...websocket.ClientOption) (*Client, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid pacifica config: %w", err)
	}

	c := &Client{logger: logger}

	restOpts := []rest.ClientOption{
		rest.WithTimeout(cfg.REST.Timeout),
		rest.WithRetries(uint(cfg.REST.MaxTries), cfg.REST.RetryBackoff),
	}
	wsOpts := []websocket.ClientOption{
		websocket.WithPingInterval(cfg.WebSocket.PingInterval),
		websocket.WithReconnectBackoff(cfg.WebSocket.ReconnectBaseDelay, cfg.WebSocket.ReconnectMaxDelay),
		websocket.WithMaxReconnectAttempts(cfg.WebSocket.MaxReconnectAttempts),
		websocket.WithHandshakeTimeout(cfg.WebSocket.HandshakeTimeout),
	}

	if cfg.Testnet() {
		restOpts = append(restOpts, rest.WithTestnet())
		wsOpts = append(wsOpts, websocket.WithTestnet())
	}
	if cfg.REST.URL != "" {
		restOpts = append(restOpts, rest.WithBaseURL(cfg.REST.URL))
	}
	if cfg.WebSocket.URL != "" {
		wsOpts = append(wsOpts, websocket.WithURL(cfg.WebSocket.URL))
	}

	if cfg.Account.PrivateKey != "" {
		signerOpts := []signer.Option{signer.WithExpiryWindow(cfg.Account.ExpiryWindow)}
		if cfg.Account.AgentFor != "" {
			signerOpts = append(signerOpts, signer.WithAgentAccount(cfg.Account.AgentFor))
		}

		s, err := signer.New(cfg.Account.PrivateKey, signerOpts...)
		if err != nil {
			return nil, fmt.Errorf("failed to load signing key: %w", err)
		}
		c.Signer = s
		restOpts = append(restOpts, rest.WithSigner(s))
		wsOpts = append(wsOpts, websocket.WithSigner(s))
		logger.Info("Signing enabled", zap.String("account", s.Account()))
	}

	c.REST = rest.NewClient(logger.Named("rest"), restOpts...)
	c.Stream = websocket.NewClient(logger.Named("ws"), append(wsOpts, streamOpts...)...)
	return c, nil
}

// Account is the account requests are attributed to, or "" without a key.
func (c *Client) Account() string {
	if c.Signer == nil {
		return ""
	}
	return c.Signer.Account()
}

func (c *Client) Connect() {
	c.Stream.Connect()
}

func (c *Client) Disconnect() {
	c.Stream.Disconnect()
	c.logger.Info("Disconnected from Pacifica")
}

func (c *Client) IsConnected() bool {
	return c.Stream.IsConnected()
}
