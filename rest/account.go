package rest

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/tradingiq/pacifica-client/types"
)

func (c *Client) GetAccountInfo(ctx context.Context, account string) (*types.AccountInfo, error) {
	q := url.Values{}
	q.Set("account", account)

	var infos []types.AccountInfo
	if err := c.get(ctx, "/account", q, types.ChannelAccountInfo, &infos); err != nil {
		return nil, err
	}
	if len(infos) == 0 {
		return nil, fmt.Errorf("%w: account %s", ErrNotFound, account)
	}
	return &infos[0], nil
}

// GetPositions returns open positions of account, optionally for one symbol.
func (c *Client) GetPositions(ctx context.Context, account, symbol string) ([]types.Position, error) {
	var positions []types.Position
	if err := c.get(ctx, "/positions", accountQuery(account, symbol), types.ChannelAccountPositions, &positions); err != nil {
		return nil, err
	}
	return positions, nil
}

func (c *Client) GetOpenOrders(ctx context.Context, account, symbol string) ([]types.Order, error) {
	var orders []types.Order
	if err := c.get(ctx, "/orders", accountQuery(account, symbol), types.ChannelAccountOrders, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

func (c *Client) GetOrderHistory(ctx context.Context, account string, params HistoryParams) ([]types.Order, error) {
	var orders []types.Order
	if err := c.get(ctx, "/orders/history", params.values(account), types.ChannelAccountOrders, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

func (c *Client) GetTradeHistory(ctx context.Context, account string, params HistoryParams) ([]types.Trade, error) {
	var trades []types.Trade
	if err := c.get(ctx, "/trades/history", params.values(account), types.ChannelAccountTrades, &trades); err != nil {
		return nil, err
	}
	return trades, nil
}

func (c *Client) GetAccountSettings(ctx context.Context, account string) (*types.AccountSettings, error) {
	q := url.Values{}
	q.Set("account", account)

	var settings []types.AccountSettings
	if err := c.get(ctx, "/account/settings", q, "", &settings); err != nil {
		return nil, err
	}
	if len(settings) == 0 {
		return nil, fmt.Errorf("%w: settings of account %s", ErrNotFound, account)
	}
	return &settings[0], nil
}

// GetOrderByID fetches one order, open or historical.
func (c *Client) GetOrderByID(ctx context.Context, orderID int64) (*types.Order, error) {
	var order types.Order
	if err := c.get(ctx, "/orders/"+strconv.FormatInt(orderID, 10), nil, types.ChannelAccountOrders, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

// GetFundingPayments lists funding paid or received by account, optionally
// for one symbol.
func (c *Client) GetFundingPayments(ctx context.Context, account, symbol string, limit int) ([]types.FundingPayment, error) {
	q := accountQuery(account, symbol)
	setInt(q, "limit", int64(limit))

	var payments []types.FundingPayment
	if err := c.get(ctx, "/funding-payments", q, "", &payments); err != nil {
		return nil, err
	}
	return payments, nil
}

func (c *Client) GetBalanceHistory(ctx context.Context, account string, limit int) ([]types.BalancePoint, error) {
	q := accountQuery(account, "")
	setInt(q, "limit", int64(limit))

	var points []types.BalancePoint
	if err := c.get(ctx, "/account/balance-history", q, "", &points); err != nil {
		return nil, err
	}
	return points, nil
}

func (c *Client) GetEquityHistory(ctx context.Context, account string, limit int) ([]types.EquityPoint, error) {
	q := accountQuery(account, "")
	setInt(q, "limit", int64(limit))

	var points []types.EquityPoint
	if err := c.get(ctx, "/account/equity-history", q, "", &points); err != nil {
		return nil, err
	}
	return points, nil
}

func accountQuery(account, symbol string) url.Values {
	q := url.Values{}
	q.Set("account", account)
	if symbol != "" {
		q.Set("symbol", symbol)
	}
	return q
}
