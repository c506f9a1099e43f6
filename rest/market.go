package rest

import (
	"context"
	"net/url"
	"strconv"

	"github.com/tradingiq/pacifica-client/types"
)

// GetMarketInfo lists every tradable market.
func (c *Client) GetMarketInfo(ctx context.Context) ([]types.MarketInfo, error) {
	var markets []types.MarketInfo
	if err := c.get(ctx, "/info", nil, "", &markets); err != nil {
		return nil, err
	}
	return markets, nil
}

func (c *Client) GetPrices(ctx context.Context) ([]types.PriceData, error) {
	var prices []types.PriceData
	if err := c.get(ctx, "/prices", nil, "", &prices); err != nil {
		return nil, err
	}
	return prices, nil
}

// GetOrderbook fetches the book for symbol. A zero depth uses the venue
// default.
func (c *Client) GetOrderbook(ctx context.Context, symbol string, depth int) (*types.Orderbook, error) {
	q := url.Values{}
	q.Set("symbol", symbol)
	if depth > 0 {
		q.Set("depth", strconv.Itoa(depth))
	}

	var book types.Orderbook
	if err := c.get(ctx, "/orderbook", q, types.ChannelOrderbook, &book); err != nil {
		return nil, err
	}
	return &book, nil
}

func (c *Client) GetRecentTrades(ctx context.Context, symbol string, limit int) ([]types.Trade, error) {
	q := url.Values{}
	q.Set("symbol", symbol)
	setInt(q, "limit", int64(limit))

	var trades []types.Trade
	if err := c.get(ctx, "/trades", q, types.ChannelTrades, &trades); err != nil {
		return nil, err
	}
	return trades, nil
}

func (c *Client) GetCandles(ctx context.Context, params CandleParams) ([]types.Candle, error) {
	var candles []types.Candle
	if err := c.get(ctx, "/kline", params.values(), types.ChannelCandle, &candles); err != nil {
		return nil, err
	}
	return candles, nil
}

func (c *Client) GetMarkPriceCandles(ctx context.Context, params CandleParams) ([]types.Candle, error) {
	var candles []types.Candle
	if err := c.get(ctx, "/mark-price-candles", params.values(), types.ChannelMarkPriceCandle, &candles); err != nil {
		return nil, err
	}
	return candles, nil
}

// GetHistoricalFunding returns settled funding rates of symbol, newest first.
func (c *Client) GetHistoricalFunding(ctx context.Context, symbol string, limit int) ([]types.FundingRate, error) {
	q := url.Values{}
	q.Set("symbol", symbol)
	setInt(q, "limit", int64(limit))

	var rates []types.FundingRate
	if err := c.get(ctx, "/funding-history", q, "", &rates); err != nil {
		return nil, err
	}
	return rates, nil
}
