package websocket

import (
	"github.com/tradingiq/pacifica-client/types"

	"go.uber.org/zap"
)

// Subscribe adds d to the registry and, when it is new and the session is
// open, sends it to the venue. An invalid descriptor is reported through the
// Error event and not stored.
func (c *Client) Subscribe(d types.Descriptor) {
	if err := d.Validate(); err != nil {
		c.logger.Error("Rejected subscription", zap.Error(err))
		emit(c.dispatcher, Error, err)
		return
	}

	c.mu.RLock()
	added := c.registry.Add(d)
	open := c.state == StateOpen
	c.mu.RUnlock()

	if !added {
		return
	}
	c.logger.Info("Subscribed to channel", zap.Stringer("subscription", d))

	if !open {
		return
	}
	if err := c.send(types.SubscribeCommand(d)); err != nil {
		c.logger.Error("Failed to send subscribe request", zap.Stringer("subscription", d), zap.Error(err))
		emit(c.dispatcher, Error, err)
	}
}

// Unsubscribe removes d from the registry and tells the venue when the
// session is open. Unknown descriptors are ignored.
func (c *Client) Unsubscribe(d types.Descriptor) {
	c.mu.RLock()
	removed := c.registry.Remove(d)
	open := c.state == StateOpen
	c.mu.RUnlock()

	if !removed {
		return
	}
	c.logger.Info("Unsubscribed from channel", zap.Stringer("subscription", d))

	if !open {
		return
	}
	if err := c.send(types.UnsubscribeCommand(d)); err != nil {
		c.logger.Error("Failed to send unsubscribe request", zap.Stringer("subscription", d), zap.Error(err))
		emit(c.dispatcher, Error, err)
	}
}

func (c *Client) SubscribePrices() {
	c.Subscribe(types.PricesDescriptor())
}

func (c *Client) UnsubscribePrices() {
	c.Unsubscribe(types.PricesDescriptor())
}

func (c *Client) SubscribeOrderbook(symbol string) {
	c.Subscribe(types.OrderbookDescriptor(symbol))
}

func (c *Client) UnsubscribeOrderbook(symbol string) {
	c.Unsubscribe(types.OrderbookDescriptor(symbol))
}

func (c *Client) SubscribeBBO(symbol string) {
	c.Subscribe(types.BBODescriptor(symbol))
}

func (c *Client) UnsubscribeBBO(symbol string) {
	c.Unsubscribe(types.BBODescriptor(symbol))
}

func (c *Client) SubscribeTrades(symbol string) {
	c.Subscribe(types.TradesDescriptor(symbol))
}

func (c *Client) UnsubscribeTrades(symbol string) {
	c.Unsubscribe(types.TradesDescriptor(symbol))
}

func (c *Client) SubscribeCandle(symbol, interval string) {
	c.Subscribe(types.CandleDescriptor(symbol, interval))
}

func (c *Client) UnsubscribeCandle(symbol, interval string) {
	c.Unsubscribe(types.CandleDescriptor(symbol, interval))
}

func (c *Client) SubscribeMarkPriceCandle(symbol, interval string) {
	c.Subscribe(types.MarkPriceCandleDescriptor(symbol, interval))
}

func (c *Client) UnsubscribeMarkPriceCandle(symbol, interval string) {
	c.Unsubscribe(types.MarkPriceCandleDescriptor(symbol, interval))
}

func (c *Client) SubscribeAccountMargin(account string) {
	c.Subscribe(types.AccountDescriptor(types.ChannelAccountMargin, account))
}

func (c *Client) UnsubscribeAccountMargin(account string) {
	c.Unsubscribe(types.AccountDescriptor(types.ChannelAccountMargin, account))
}

func (c *Client) SubscribeAccountLeverage(account string) {
	c.Subscribe(types.AccountDescriptor(types.ChannelAccountLeverage, account))
}

func (c *Client) UnsubscribeAccountLeverage(account string) {
	c.Unsubscribe(types.AccountDescriptor(types.ChannelAccountLeverage, account))
}

func (c *Client) SubscribeAccountInfo(account string) {
	c.Subscribe(types.AccountDescriptor(types.ChannelAccountInfo, account))
}

func (c *Client) UnsubscribeAccountInfo(account string) {
	c.Unsubscribe(types.AccountDescriptor(types.ChannelAccountInfo, account))
}

func (c *Client) SubscribeAccountPositions(account string) {
	c.Subscribe(types.AccountDescriptor(types.ChannelAccountPositions, account))
}

func (c *Client) UnsubscribeAccountPositions(account string) {
	c.Unsubscribe(types.AccountDescriptor(types.ChannelAccountPositions, account))
}

func (c *Client) SubscribeAccountOrders(account string) {
	c.Subscribe(types.AccountDescriptor(types.ChannelAccountOrders, account))
}

func (c *Client) UnsubscribeAccountOrders(account string) {
	c.Unsubscribe(types.AccountDescriptor(types.ChannelAccountOrders, account))
}

func (c *Client) SubscribeAccountOrderUpdates(account string) {
	c.Subscribe(types.AccountDescriptor(types.ChannelAccountOrderUpdates, account))
}

func (c *Client) UnsubscribeAccountOrderUpdates(account string) {
	c.Unsubscribe(types.AccountDescriptor(types.ChannelAccountOrderUpdates, account))
}

func (c *Client) SubscribeAccountTrades(account string) {
	c.Subscribe(types.AccountDescriptor(types.ChannelAccountTrades, account))
}

func (c *Client) UnsubscribeAccountTrades(account string) {
	c.Unsubscribe(types.AccountDescriptor(types.ChannelAccountTrades, account))
}
