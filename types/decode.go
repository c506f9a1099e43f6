package types

import (
	"errors"
	"fmt"

	"github.com/goccy/go-json"
)

var ErrUnknownChannel = errors.New("unknown channel")

type payloadDecoder func(data json.RawMessage) (any, error)

// payloadDecoders holds the decode transform for every data channel. The
// concrete type each one returns is the payload type consumers receive.
// pong and error are decoded separately.
var payloadDecoders = map[Channel]payloadDecoder{
	ChannelPrices:              decodeAs[[]PriceData](nil),
	ChannelOrderbook:           decodeAs[Orderbook](orderbookKeys),
	ChannelBBO:                 decodeAs[BBO](nil),
	ChannelTrades:              decodeAs[[]Trade](tradeKeys),
	ChannelCandle:              decodeAs[Candle](candleKeys),
	ChannelMarkPriceCandle:     decodeAs[Candle](candleKeys),
	ChannelAccountMargin:       decodeAs[AccountMargin](nil),
	ChannelAccountLeverage:     decodeAs[AccountLeverage](nil),
	ChannelAccountInfo:         decodeAs[AccountInfo](accountInfoKeys),
	ChannelAccountPositions:    decodeAs[[]Position](positionKeys),
	ChannelAccountOrders:       decodeAs[[]Order](orderKeys),
	ChannelAccountOrderUpdates: decodeAs[[]OrderUpdate](orderUpdateKeys),
	ChannelAccountTrades:       decodeAs[[]Trade](tradeKeys),
}

func decodeAs[T any](spec *renameSpec) payloadDecoder {
	return func(data json.RawMessage) (any, error) {
		var out T
		if err := decodeInto(data, spec, &out); err != nil {
			return nil, err
		}
		return out, nil
	}
}

func decodeInto(data json.RawMessage, spec *renameSpec, out any) error {
	if spec != nil {
		expanded, err := expand(data, spec)
		if err != nil {
			return err
		}
		data = expanded
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("failed to unmarshal payload: %w", err)
	}
	return nil
}

// DecodePayload decodes the data of a data-channel envelope into its domain
// type, e.g. []PriceData for prices or Orderbook for orderbook.
func DecodePayload(channel Channel, data json.RawMessage) (any, error) {
	decode, ok := payloadDecoders[channel]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownChannel, channel)
	}
	v, err := decode(data)
	if err != nil {
		return nil, fmt.Errorf("decode %s payload: %w", channel, err)
	}
	return v, nil
}

// DecodeVenueError decodes the data of an error envelope.
func DecodeVenueError(data json.RawMessage) (VenueError, error) {
	var venueErr VenueError
	if len(data) == 0 {
		return venueErr, nil
	}
	if err := json.Unmarshal(data, &venueErr); err != nil {
		return VenueError{}, fmt.Errorf("decode error payload: %w", err)
	}
	return venueErr, nil
}

var renameTables = map[Channel]*renameSpec{
	ChannelOrderbook:           orderbookKeys,
	ChannelTrades:              tradeKeys,
	ChannelCandle:              candleKeys,
	ChannelMarkPriceCandle:     candleKeys,
	ChannelAccountInfo:         accountInfoKeys,
	ChannelAccountPositions:    positionKeys,
	ChannelAccountOrders:       orderKeys,
	ChannelAccountOrderUpdates: orderUpdateKeys,
	ChannelAccountTrades:       tradeKeys,
}

// ExpandPayload returns data with the abbreviated keys of channel rewritten
// to their long names. Channels without a rename table are returned as is.
func ExpandPayload(channel Channel, data json.RawMessage) (json.RawMessage, error) {
	spec, ok := renameTables[channel]
	if !ok {
		return data, nil
	}
	return expand(data, spec)
}
