package rest

import (
	"context"
	"fmt"

	"github.com/tradingiq/pacifica-client/types"
)

type CreateOrderResponse struct {
	OrderID int64 `json:"order_id"`
}

type CancelAllOrdersResponse struct {
	CancelledCount int `json:"cancelled_count"`
}

type BatchOrderResult struct {
	Success bool   `json:"success"`
	OrderID int64  `json:"order_id,omitempty"`
	Error   string `json:"error,omitempty"`
}

type BatchOrderResponse struct {
	Results []BatchOrderResult `json:"results"`
}

func (c *Client) CreateLimitOrder(ctx context.Context, req types.CreateOrderRequest) (*CreateOrderResponse, error) {
	var resp CreateOrderResponse
	if err := c.post(ctx, "/orders/create", types.OpCreateOrder, req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) CreateMarketOrder(ctx context.Context, req types.CreateMarketOrderRequest) (*CreateOrderResponse, error) {
	var resp CreateOrderResponse
	if err := c.post(ctx, "/orders/create-market", types.OpCreateMarketOrder, req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) EditOrder(ctx context.Context, req types.EditOrderRequest) (*CreateOrderResponse, error) {
	var resp CreateOrderResponse
	if err := c.post(ctx, "/orders/edit", types.OpEditOrder, req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// CancelOrder cancels by order id or client order id.
func (c *Client) CancelOrder(ctx context.Context, req types.CancelOrderRequest) error {
	return c.post(ctx, "/orders/cancel", types.OpCancelOrder, req, nil)
}

func (c *Client) CancelAllOrders(ctx context.Context, req types.CancelAllOrdersRequest) (int, error) {
	var resp CancelAllOrdersResponse
	if err := c.post(ctx, "/orders/cancel-all", types.OpCancelAllOrders, req, &resp); err != nil {
		return 0, err
	}
	return resp.CancelledCount, nil
}

func (c *Client) UpdateLeverage(ctx context.Context, req types.UpdateLeverageRequest) error {
	return c.post(ctx, "/account/leverage", types.OpUpdateLeverage, req, nil)
}

// CreateStopOrder places a stop order. The returned id is the stop order id
// CancelStopOrder expects.
func (c *Client) CreateStopOrder(ctx context.Context, req types.CreateStopOrderRequest) (*CreateOrderResponse, error) {
	var resp CreateOrderResponse
	if err := c.post(ctx, "/orders/create-stop", types.OpCreateStopOrder, req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) CancelStopOrder(ctx context.Context, req types.CancelStopOrderRequest) error {
	return c.post(ctx, "/orders/cancel-stop", types.OpCancelStopOrder, req, nil)
}

// BatchOrder runs several create, edit and cancel actions under one
// signature. Results are in request order; a failed item does not fail the
// call.
func (c *Client) BatchOrder(ctx context.Context, req types.BatchOrderRequest) (*BatchOrderResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	var resp BatchOrderResponse
	if err := c.post(ctx, "/orders/batch", types.OpBatchOrder, req, &resp); err != nil {
		return nil, err
	}
	if len(resp.Results) != len(req.Orders) {
		return nil, fmt.Errorf("%w: %d results for %d batch items", ErrInvalidResponse, len(resp.Results), len(req.Orders))
	}
	return &resp, nil
}

func (c *Client) CreatePositionTPSL(ctx context.Context, req types.CreatePositionTPSLRequest) error {
	return c.post(ctx, "/orders/position-tpsl", types.OpCreatePositionTPSL, req, nil)
}

func (c *Client) UpdateMarginMode(ctx context.Context, req types.UpdateMarginModeRequest) error {
	return c.post(ctx, "/account/margin-mode", types.OpUpdateMarginMode, req, nil)
}

type WithdrawalResponse struct {
	WithdrawalID string `json:"withdrawal_id"`
}

func (c *Client) RequestWithdrawal(ctx context.Context, req types.WithdrawalRequest) (string, error) {
	var resp WithdrawalResponse
	if err := c.post(ctx, "/account/withdraw", types.OpRequestWithdrawal, req, &resp); err != nil {
		return "", err
	}
	return resp.WithdrawalID, nil
}
