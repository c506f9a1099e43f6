package websocket

import (
	"net/http"
	"time"

	"github.com/tradingiq/pacifica-client/interfaces"

	"github.com/cenkalti/backoff/v5"
	"github.com/jonboulle/clockwork"
)

const (
	MainnetURL = "wss://ws.pacifica.fi/ws"
	TestnetURL = "wss://test-ws.pacifica.fi/ws"

	PingInterval = 50 * time.Second

	DefaultReconnectBaseDelay   = 1 * time.Second
	DefaultReconnectMaxDelay    = 30 * time.Second
	DefaultMaxReconnectAttempts = 0
	DefaultHandshakeTimeout     = 10 * time.Second
	DefaultWriteTimeout         = 5 * time.Second
	DefaultReadLimit            = 1 << 20
)

type ClientOption func(*Client)

func WithURL(url string) ClientOption {
	return func(c *Client) {
		c.url = url
	}
}

func WithTestnet() ClientOption {
	return WithURL(TestnetURL)
}

// WithSigner enables SendTradingOperation and the typed trading helpers.
func WithSigner(signer interfaces.Signer) ClientOption {
	return func(c *Client) {
		c.signer = signer
	}
}

// WithPingInterval sets the heartbeat period. Zero disables the heartbeat.
func WithPingInterval(interval time.Duration) ClientOption {
	return func(c *Client) {
		c.pingInterval = interval
	}
}

// WithReconnectBackoff sets the first reconnect delay and its cap. Each
// further attempt doubles the previous delay.
func WithReconnectBackoff(base, maxDelay time.Duration) ClientOption {
	return func(c *Client) {
		c.backoff = newReconnectBackOff(base, maxDelay)
	}
}

// WithBackOff replaces the reconnect schedule entirely. A schedule that
// returns backoff.Stop ends reconnection.
func WithBackOff(b backoff.BackOff) ClientOption {
	return func(c *Client) {
		c.backoff = b
	}
}

// WithMaxReconnectAttempts bounds consecutive failed reconnects. Zero means
// unlimited.
func WithMaxReconnectAttempts(attempts int) ClientOption {
	return func(c *Client) {
		c.maxReconnectAttempts = attempts
	}
}

func WithReconnect(enabled bool) ClientOption {
	return func(c *Client) {
		c.reconnect = enabled
	}
}

func WithHandshakeTimeout(timeout time.Duration) ClientOption {
	return func(c *Client) {
		c.handshakeTimeout = timeout
	}
}

func WithWriteTimeout(timeout time.Duration) ClientOption {
	return func(c *Client) {
		c.writeTimeout = timeout
	}
}

// WithReadLimit caps the size of one inbound frame on the default dialer.
func WithReadLimit(limit int64) ClientOption {
	return func(c *Client) {
		if d, ok := c.dialer.(*coderDialer); ok {
			d.readLimit = limit
		}
	}
}

// WithHTTPHeader adds headers to the handshake request of the default dialer.
func WithHTTPHeader(header http.Header) ClientOption {
	return func(c *Client) {
		if d, ok := c.dialer.(*coderDialer); ok {
			d.header = header
		}
	}
}

func WithDialer(dialer Dialer) ClientOption {
	return func(c *Client) {
		c.dialer = dialer
	}
}

func WithClock(clk clockwork.Clock) ClientOption {
	return func(c *Client) {
		c.clock = clk
	}
}

func newReconnectBackOff(base, maxDelay time.Duration) *backoff.ExponentialBackOff {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = base
	b.MaxInterval = maxDelay
	b.Multiplier = 2
	b.RandomizationFactor = 0
	b.Reset()
	return b
}
