package types

import (
	"errors"
	"fmt"

	"github.com/goccy/go-json"

	"github.com/tradingiq/pacifica-client/internal/canonical"
)

var ErrInvalidDescriptor = errors.New("invalid subscription descriptor")

// Descriptor identifies a channel subscription: the channel plus the
// symbol, interval or account qualifiers that channel requires.
type Descriptor struct {
	Source   Channel
	Symbol   string
	Interval string
	Account  string
}

func PricesDescriptor() Descriptor {
	return Descriptor{Source: ChannelPrices}
}

func OrderbookDescriptor(symbol string) Descriptor {
	return Descriptor{Source: ChannelOrderbook, Symbol: symbol}
}

func BBODescriptor(symbol string) Descriptor {
	return Descriptor{Source: ChannelBBO, Symbol: symbol}
}

func TradesDescriptor(symbol string) Descriptor {
	return Descriptor{Source: ChannelTrades, Symbol: symbol}
}

func CandleDescriptor(symbol, interval string) Descriptor {
	return Descriptor{Source: ChannelCandle, Symbol: symbol, Interval: interval}
}

func MarkPriceCandleDescriptor(symbol, interval string) Descriptor {
	return Descriptor{Source: ChannelMarkPriceCandle, Symbol: symbol, Interval: interval}
}

// AccountDescriptor builds a descriptor for one of the account_* channels.
func AccountDescriptor(source Channel, account string) Descriptor {
	return Descriptor{Source: source, Account: account}
}

// Params returns the wire form of the descriptor: `source` plus every
// non-empty qualifier.
func (d Descriptor) Params() map[string]string {
	params := map[string]string{"source": string(d.Source)}
	if d.Symbol != "" {
		params["symbol"] = d.Symbol
	}
	if d.Interval != "" {
		params["interval"] = d.Interval
	}
	if d.Account != "" {
		params["account"] = d.Account
	}
	return params
}

// Key is the canonical serialization of the descriptor. Two descriptors with
// equal fields always produce the same key.
func (d Descriptor) Key() string {
	key, err := canonical.MarshalString(d.Params())
	if err != nil {
		// a map of strings always encodes
		panic(fmt.Sprintf("canonical descriptor key: %v", err))
	}
	return key
}

func (d Descriptor) String() string {
	return d.Key()
}

// Validate checks that the source is subscribable and that exactly the
// qualifiers it needs are set.
func (d Descriptor) Validate() error {
	q, ok := subscribable[d.Source]
	if !ok {
		return fmt.Errorf("%w: unknown source %q", ErrInvalidDescriptor, d.Source)
	}

	needSymbol := q == qualifierSymbol || q == qualifierSymbolInterval
	needInterval := q == qualifierSymbolInterval
	needAccount := q == qualifierAccount

	if err := checkQualifier(d.Source, "symbol", d.Symbol, needSymbol); err != nil {
		return err
	}
	if err := checkQualifier(d.Source, "interval", d.Interval, needInterval); err != nil {
		return err
	}
	return checkQualifier(d.Source, "account", d.Account, needAccount)
}

func checkQualifier(source Channel, name, value string, required bool) error {
	switch {
	case required && value == "":
		return fmt.Errorf("%w: %s requires %s", ErrInvalidDescriptor, source, name)
	case !required && value != "":
		return fmt.Errorf("%w: %s does not take %s", ErrInvalidDescriptor, source, name)
	}
	return nil
}

// ParseDescriptor inverts Key.
func ParseDescriptor(key string) (Descriptor, error) {
	var params map[string]string
	if err := json.Unmarshal([]byte(key), &params); err != nil {
		return Descriptor{}, fmt.Errorf("%w: %v", ErrInvalidDescriptor, err)
	}

	d := Descriptor{
		Source:   Channel(params["source"]),
		Symbol:   params["symbol"],
		Interval: params["interval"],
		Account:  params["account"],
	}
	if err := d.Validate(); err != nil {
		return Descriptor{}, err
	}
	return d, nil
}
