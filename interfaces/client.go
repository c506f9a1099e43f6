package interfaces

import "github.com/tradingiq/pacifica-client/types"

// ListenerID identifies one event listener registration.
type ListenerID uint64

type StreamClient interface {
	Connect()

	Disconnect()

	IsConnected() bool

	// Subscribe records d as desired state and sends it when connected.
	// Subscribing twice to an equal descriptor is a no-op.
	Subscribe(d types.Descriptor)

	Unsubscribe(d types.Descriptor)

	SubscribePrices()
	SubscribeOrderbook(symbol string)
	SubscribeBBO(symbol string)
	SubscribeTrades(symbol string)
	SubscribeCandle(symbol, interval string)
	SubscribeMarkPriceCandle(symbol, interval string)
	SubscribeAccountMargin(account string)
	SubscribeAccountLeverage(account string)
	SubscribeAccountInfo(account string)
	SubscribeAccountPositions(account string)
	SubscribeAccountOrders(account string)
	SubscribeAccountOrderUpdates(account string)
	SubscribeAccountTrades(account string)

	// Off removes the listener registered under id.
	Off(id ListenerID) bool

	SendTradingOperation(op types.TradingOperation) error
}
