package signer

import (
	"bytes"
	"crypto/ed25519"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/mr-tron/base58"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testSeed = bytes.Repeat([]byte{7}, ed25519.SeedSize)

func fixedNow() time.Time {
	return time.UnixMilli(1700000000000)
}

func newTestSigner(t *testing.T, opts ...Option) *Signer {
	t.Helper()
	s, err := New(base58.Encode(testSeed), append([]Option{WithNow(fixedNow)}, opts...)...)
	require.NoError(t, err)
	return s
}

func TestNew_KeyForms(t *testing.T) {
	key := ed25519.NewKeyFromSeed(testSeed)
	expected := base58.Encode(key.Public().(ed25519.PublicKey))

	fromSeed, err := New(base58.Encode(testSeed))
	require.NoError(t, err)
	assert.Equal(t, expected, fromSeed.PublicKey())

	fromSecret, err := New(base58.Encode(key))
	require.NoError(t, err)
	assert.Equal(t, expected, fromSecret.PublicKey())
	assert.Equal(t, expected, fromSecret.Account())
}

func TestNew_InvalidKeys(t *testing.T) {
	mismatched := append(append([]byte{}, testSeed...), bytes.Repeat([]byte{1}, ed25519.PublicKeySize)...)

	for name, key := range map[string]string{
		"not base58":   "invalid-key",
		"wrong length": base58.Encode([]byte{1, 2, 3}),
		"mismatched":   base58.Encode(mismatched),
		"empty":        "",
	} {
		t.Run(name, func(t *testing.T) {
			_, err := New(key)
			assert.ErrorIs(t, err, ErrInvalidKey)
		})
	}
}

func TestSigningMessage(t *testing.T) {
	message, err := signingMessage("create_order", 1700000000000, 30000, map[string]any{
		"symbol": "BTC",
		"price":  "50000",
		"amount": "0.1",
	})
	require.NoError(t, err)
	assert.Equal(t,
		`{"data":{"amount":"0.1","price":"50000","symbol":"BTC"},"expiry_window":30000,"timestamp":1700000000000,"type":"create_order"}`,
		string(message))
}

func TestSignRequest(t *testing.T) {
	s := newTestSigner(t)

	signed, err := s.SignRequest("create_order", map[string]any{
		"symbol": "BTC",
		"price":  "50000",
		"amount": "0.1",
		"nested": map[string]any{"key": "value"},
	})
	require.NoError(t, err)

	assert.Equal(t, s.PublicKey(), signed["account"])
	assert.Nil(t, signed["agent_wallet"])
	assert.Contains(t, signed, "agent_wallet")
	assert.Equal(t, int64(1700000000000), signed["timestamp"])
	assert.Equal(t, int64(30000), signed["expiry_window"])
	assert.Equal(t, "BTC", signed["symbol"])
	assert.Equal(t, map[string]any{"key": "value"}, signed["nested"])

	require.NoError(t, Verify(s.PublicKey(), "create_order", signed))
	assert.ErrorIs(t, Verify(s.PublicKey(), "cancel_order", signed), ErrInvalidSignature)

	signed["price"] = "1"
	assert.ErrorIs(t, Verify(s.PublicKey(), "create_order", signed), ErrInvalidSignature)
}

func TestSignRequest_HeaderOverridesDataKeys(t *testing.T) {
	s := newTestSigner(t)

	signed, err := s.SignRequest("create_order", map[string]any{
		"symbol":    "BTC",
		"account":   "SomeoneElse",
		"timestamp": 1,
		"signature": "forged",
	})
	require.NoError(t, err)

	assert.Equal(t, s.PublicKey(), signed["account"])
	assert.Equal(t, int64(1700000000000), signed["timestamp"])
	assert.NotEqual(t, "forged", signed["signature"])
	assert.Equal(t, "BTC", signed["symbol"])

	message, err := signingMessage("create_order", 1700000000000, 30000, map[string]any{
		"symbol":    "BTC",
		"account":   "SomeoneElse",
		"timestamp": 1,
		"signature": "forged",
	})
	require.NoError(t, err)
	assert.Equal(t, s.Sign(message), signed["signature"])
}

func TestSignRequest_Deterministic(t *testing.T) {
	s := newTestSigner(t)
	data := map[string]any{"value": "same"}

	first, err := s.SignRequest("operation", data)
	require.NoError(t, err)
	second, err := s.SignRequest("operation", data)
	require.NoError(t, err)
	other, err := s.SignRequest("operation2", data)
	require.NoError(t, err)

	assert.Equal(t, first["signature"], second["signature"])
	assert.NotEqual(t, first["signature"], other["signature"])
}

func TestSignRequest_ExpiryWindow(t *testing.T) {
	s := newTestSigner(t, WithExpiryWindow(time.Minute))

	signed, err := s.SignRequest("test", nil)
	require.NoError(t, err)
	assert.Equal(t, int64(60000), signed["expiry_window"])
	assert.NoError(t, Verify(s.PublicKey(), "test", signed))
}

func TestSignRequest_AgentWallet(t *testing.T) {
	s := newTestSigner(t, WithAgentAccount("MainAccount111"))

	signed, err := s.SignRequest("cancel_all_orders", map[string]any{"all_symbols": true})
	require.NoError(t, err)

	assert.Equal(t, "MainAccount111", s.Account())
	assert.Equal(t, "MainAccount111", signed["account"])
	assert.Equal(t, s.PublicKey(), signed["agent_wallet"])
	assert.NoError(t, Verify(s.PublicKey(), "cancel_all_orders", signed))
}

func TestVerify_AfterWireRoundTrip(t *testing.T) {
	s := newTestSigner(t)

	signed, err := s.SignRequest("cancel_order", map[string]any{"symbol": "ETH", "order_id": json.Number("42")})
	require.NoError(t, err)

	wire, err := json.Marshal(signed)
	require.NoError(t, err)

	dec := json.NewDecoder(bytes.NewReader(wire))
	dec.UseNumber()
	var received map[string]any
	require.NoError(t, dec.Decode(&received))

	assert.NoError(t, Verify(s.PublicKey(), "cancel_order", received))
}

func TestVerify_Malformed(t *testing.T) {
	s := newTestSigner(t)

	assert.ErrorIs(t, Verify("bad-key", "x", map[string]any{}), ErrInvalidSignature)
	assert.ErrorIs(t, Verify(s.PublicKey(), "x", map[string]any{"signature": "0OIl"}), ErrInvalidSignature)

	signed, err := s.SignRequest("x", nil)
	require.NoError(t, err)
	delete(signed, "timestamp")
	assert.ErrorIs(t, Verify(s.PublicKey(), "x", signed), ErrInvalidSignature)
}
