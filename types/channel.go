package types

// Channel is the discriminant carried by every inbound envelope and the
// `source` field of every subscription descriptor.
type Channel string

const (
	ChannelPong                Channel = "pong"
	ChannelPrices              Channel = "prices"
	ChannelOrderbook           Channel = "orderbook"
	ChannelBBO                 Channel = "bbo"
	ChannelTrades              Channel = "trades"
	ChannelCandle              Channel = "candle"
	ChannelMarkPriceCandle     Channel = "mark_price_candle"
	ChannelAccountMargin       Channel = "account_margin"
	ChannelAccountLeverage     Channel = "account_leverage"
	ChannelAccountInfo         Channel = "account_info"
	ChannelAccountPositions    Channel = "account_positions"
	ChannelAccountOrders       Channel = "account_orders"
	ChannelAccountOrderUpdates Channel = "account_order_updates"
	ChannelAccountTrades       Channel = "account_trades"
	ChannelError               Channel = "error"
)

type qualifier int

const (
	qualifierNone qualifier = iota
	qualifierSymbol
	qualifierSymbolInterval
	qualifierAccount
)

// subscribable lists the channels a descriptor may name, with the
// qualifiers each one requires.
var subscribable = map[Channel]qualifier{
	ChannelPrices:              qualifierNone,
	ChannelOrderbook:           qualifierSymbol,
	ChannelBBO:                 qualifierSymbol,
	ChannelTrades:              qualifierSymbol,
	ChannelCandle:              qualifierSymbolInterval,
	ChannelMarkPriceCandle:     qualifierSymbolInterval,
	ChannelAccountMargin:       qualifierAccount,
	ChannelAccountLeverage:     qualifierAccount,
	ChannelAccountInfo:         qualifierAccount,
	ChannelAccountPositions:    qualifierAccount,
	ChannelAccountOrders:       qualifierAccount,
	ChannelAccountOrderUpdates: qualifierAccount,
	ChannelAccountTrades:       qualifierAccount,
}

// Subscribable reports whether c can be the source of a subscription.
func (c Channel) Subscribable() bool {
	_, ok := subscribable[c]
	return ok
}

// Known reports whether c is one of the discriminants the venue sends.
func (c Channel) Known() bool {
	return c == ChannelPong || c == ChannelError || c.Subscribable()
}

func (c Channel) String() string {
	return string(c)
}

// CandleIntervals are the intervals accepted by candle subscriptions.
var CandleIntervals = []string{"1m", "3m", "5m", "15m", "30m", "1h", "2h", "4h", "8h", "12h", "1d"}
