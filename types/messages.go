package types

import (
	"errors"
	"fmt"

	"github.com/goccy/go-json"
)

const (
	MethodSubscribe   = "subscribe"
	MethodUnsubscribe = "unsubscribe"
	MethodPing        = "ping"
)

var ErrMalformedEnvelope = errors.New("malformed envelope")

// Envelope is one inbound frame. Data stays raw until the channel selects
// its decoder.
type Envelope struct {
	Channel Channel         `json:"channel"`
	Data    json.RawMessage `json:"data,omitempty"`
}

// Command is a subscribe, unsubscribe or ping request.
type Command struct {
	Method string            `json:"method"`
	Params map[string]string `json:"params,omitempty"`
}

// TradingCommand carries one signed trading operation keyed by its
// operation type.
type TradingCommand struct {
	ID     string                    `json:"id"`
	Params map[string]map[string]any `json:"params"`
}

func SubscribeCommand(d Descriptor) Command {
	return Command{Method: MethodSubscribe, Params: d.Params()}
}

func UnsubscribeCommand(d Descriptor) Command {
	return Command{Method: MethodUnsubscribe, Params: d.Params()}
}

func PingCommand() Command {
	return Command{Method: MethodPing}
}

func NewTradingCommand(id, operationType string, signed map[string]any) TradingCommand {
	return TradingCommand{
		ID:     id,
		Params: map[string]map[string]any{operationType: signed},
	}
}

// EncodeCommand serializes an outbound command into one text frame.
func EncodeCommand(cmd any) ([]byte, error) {
	data, err := json.Marshal(cmd)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal command: %w", err)
	}
	return data, nil
}

// DecodeEnvelope parses one inbound frame. A frame that is not a JSON object
// with a channel is rejected.
func DecodeEnvelope(frame []byte) (Envelope, error) {
	var env Envelope
	if err := json.Unmarshal(frame, &env); err != nil {
		return Envelope{}, fmt.Errorf("%w: %v", ErrMalformedEnvelope, err)
	}
	if env.Channel == "" {
		return Envelope{}, fmt.Errorf("%w: missing channel", ErrMalformedEnvelope)
	}
	return env, nil
}
