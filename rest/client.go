package rest

import (
	"net/http"
	"time"

	"github.com/tradingiq/pacifica-client/interfaces"

	"go.uber.org/zap"
)

const (
	MainnetURL = "https://api.pacifica.fi/api/v1"
	TestnetURL = "https://test-api.pacifica.fi/api/v1"

	DefaultTimeout      = 30 * time.Second
	DefaultMaxTries     = 4
	DefaultRetryBackoff = 500 * time.Millisecond
)

// Client provides access to the Pacifica REST API.
type Client struct {
	baseURL    string
	httpClient *http.Client
	signer     interfaces.Signer
	logger     *zap.Logger

	maxTries     uint
	retryBackoff time.Duration
}

type ClientOption func(*Client)

func NewClient(logger *zap.Logger, opts ...ClientOption) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}

	c := &Client{
		baseURL:      MainnetURL,
		httpClient:   &http.Client{Timeout: DefaultTimeout},
		logger:       logger,
		maxTries:     DefaultMaxTries,
		retryBackoff: DefaultRetryBackoff,
	}

	for _, opt := range opts {
		opt(c)
	}
	return c
}

func WithBaseURL(baseURL string) ClientOption {
	return func(c *Client) {
		c.baseURL = baseURL
	}
}

func WithTestnet() ClientOption {
	return WithBaseURL(TestnetURL)
}

func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithTimeout sets the request timeout on a copy of the configured HTTP
// client, so a client passed to WithHTTPClient is left untouched.
func WithTimeout(d time.Duration) ClientOption {
	return func(c *Client) {
		hc := *c.httpClient
		hc.Timeout = d
		c.httpClient = &hc
	}
}

// WithSigner enables the authenticated POST endpoints.
func WithSigner(signer interfaces.Signer) ClientOption {
	return func(c *Client) {
		c.signer = signer
	}
}

// WithRetries sets how many times a retryable GET is attempted and the
// first delay between attempts.
func WithRetries(maxTries uint, backoff time.Duration) ClientOption {
	return func(c *Client) {
		c.maxTries = maxTries
		c.retryBackoff = backoff
	}
}
