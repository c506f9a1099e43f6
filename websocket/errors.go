package websocket

import "errors"

var (
	ErrNotConnected       = errors.New("websocket not connected")
	ErrSendFailed         = errors.New("failed to send message")
	ErrAuthNotConfigured  = errors.New("authentication not configured: a signer is required for trading operations")
	ErrHandshake          = errors.New("failed to connect to websocket")
	ErrConnectionLost     = errors.New("websocket connection lost")
	ErrMalformedFrame     = errors.New("failed to parse websocket message")
	ErrReconnectExhausted = errors.New("max reconnection attempts reached")
	ErrResubscribe        = errors.New("failed to resubscribe")
)
