package signer

import (
	"bytes"
	"crypto/ed25519"
	"errors"
	"fmt"
	"time"

	"github.com/tradingiq/pacifica-client/interfaces"
	"github.com/tradingiq/pacifica-client/internal/canonical"

	"github.com/mr-tron/base58"
)

const DefaultExpiryWindow = 30 * time.Second

var (
	ErrInvalidKey       = errors.New("invalid private key: expected a base58 32-byte seed or 64-byte secret key")
	ErrInvalidSignature = errors.New("signature verification failed")
)

// Signer signs trading operations with an ed25519 key.
type Signer struct {
	privateKey   ed25519.PrivateKey
	publicKey    string
	agentFor     string
	expiryWindow time.Duration
	now          func() time.Time
}

var _ interfaces.Signer = (*Signer)(nil)

type Option func(*Signer)

// WithAgentAccount makes the key act as an agent wallet for account.
// Requests are attributed to account and carry the key as agent_wallet.
func WithAgentAccount(account string) Option {
	return func(s *Signer) {
		s.agentFor = account
	}
}

func WithExpiryWindow(window time.Duration) Option {
	return func(s *Signer) {
		s.expiryWindow = window
	}
}

func WithNow(now func() time.Time) Option {
	return func(s *Signer) {
		s.now = now
	}
}

// New decodes a base58 private key. Both the 32-byte seed and the 64-byte
// seed||public form are accepted.
func New(privateKey string, opts ...Option) (*Signer, error) {
	raw, err := base58.Decode(privateKey)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidKey, err)
	}

	var key ed25519.PrivateKey
	switch len(raw) {
	case ed25519.SeedSize:
		key = ed25519.NewKeyFromSeed(raw)
	case ed25519.PrivateKeySize:
		key = ed25519.NewKeyFromSeed(raw[:ed25519.SeedSize])
		if !bytes.Equal(key[ed25519.SeedSize:], raw[ed25519.SeedSize:]) {
			return nil, fmt.Errorf("%w: public half does not match seed", ErrInvalidKey)
		}
	default:
		return nil, fmt.Errorf("%w: got %d bytes", ErrInvalidKey, len(raw))
	}

	s := &Signer{
		privateKey:   key,
		publicKey:    base58.Encode(key.Public().(ed25519.PublicKey)),
		expiryWindow: DefaultExpiryWindow,
		now:          time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// PublicKey is the base58 public key of the signing key.
func (s *Signer) PublicKey() string {
	return s.publicKey
}

func (s *Signer) Account() string {
	if s.agentFor != "" {
		return s.agentFor
	}
	return s.publicKey
}

// Sign returns the base58 signature of message.
func (s *Signer) Sign(message []byte) string {
	return base58.Encode(ed25519.Sign(s.privateKey, message))
}

// SignRequest signs the canonical JSON of the header and data and returns
// the header merged with data. The header fields account, agent_wallet,
// signature, timestamp and expiry_window override same-named data keys in
// the returned body; the signature still covers the data as given.
func (s *Signer) SignRequest(operationType string, data map[string]any) (map[string]any, error) {
	timestamp := s.now().UnixMilli()
	expiry := s.expiryWindow.Milliseconds()

	message, err := signingMessage(operationType, timestamp, expiry, data)
	if err != nil {
		return nil, err
	}

	signed := make(map[string]any, len(data)+5)
	for k, v := range data {
		signed[k] = v
	}
	signed["account"] = s.Account()
	signed["agent_wallet"] = nil
	if s.agentFor != "" {
		signed["agent_wallet"] = s.publicKey
	}
	signed["signature"] = s.Sign(message)
	signed["timestamp"] = timestamp
	signed["expiry_window"] = expiry
	return signed, nil
}

func signingMessage(operationType string, timestamp, expiry int64, data map[string]any) ([]byte, error) {
	if data == nil {
		data = map[string]any{}
	}
	message, err := canonical.Marshal(map[string]any{
		"timestamp":     timestamp,
		"expiry_window": expiry,
		"type":          operationType,
		"data":          data,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to encode %s for signing: %w", operationType, err)
	}
	return message, nil
}

var headerFields = map[string]struct{}{
	"account":       {},
	"agent_wallet":  {},
	"signature":     {},
	"timestamp":     {},
	"expiry_window": {},
}

// Verify checks a payload produced by SignRequest against the base58 public
// key that signed it.
func Verify(publicKey, operationType string, signed map[string]any) error {
	pub, err := base58.Decode(publicKey)
	if err != nil || len(pub) != ed25519.PublicKeySize {
		return fmt.Errorf("%w: bad public key", ErrInvalidSignature)
	}

	sigText, _ := signed["signature"].(string)
	sig, err := base58.Decode(sigText)
	if err != nil || len(sig) != ed25519.SignatureSize {
		return fmt.Errorf("%w: bad signature encoding", ErrInvalidSignature)
	}

	timestamp, ok := toInt64(signed["timestamp"])
	if !ok {
		return fmt.Errorf("%w: missing timestamp", ErrInvalidSignature)
	}
	expiry, ok := toInt64(signed["expiry_window"])
	if !ok {
		return fmt.Errorf("%w: missing expiry_window", ErrInvalidSignature)
	}

	data := make(map[string]any, len(signed))
	for k, v := range signed {
		if _, header := headerFields[k]; !header {
			data[k] = v
		}
	}

	message, err := signingMessage(operationType, timestamp, expiry, data)
	if err != nil {
		return err
	}
	if !ed25519.Verify(ed25519.PublicKey(pub), message, sig) {
		return ErrInvalidSignature
	}
	return nil
}

func toInt64(v any) (int64, bool) {
	switch n := v.(type) {
	case int64:
		return n, true
	case int:
		return int64(n), true
	case float64:
		return int64(n), true
	case interface{ Int64() (int64, error) }:
		i, err := n.Int64()
		return i, err == nil
	default:
		return 0, false
	}
}
