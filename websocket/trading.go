package websocket

import (
	"fmt"

	"github.com/tradingiq/pacifica-client/types"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// SendTradingOperation signs op and sends it as a trading command. It fails
// with ErrAuthNotConfigured when the client has no signer. An empty op.ID is
// replaced by a random UUID.
func (c *Client) SendTradingOperation(op types.TradingOperation) error {
	if c.signer == nil {
		return ErrAuthNotConfigured
	}
	if op.ID == "" {
		op.ID = uuid.NewString()
	}

	signed, err := c.signer.SignRequest(op.Type, op.Data)
	if err != nil {
		return fmt.Errorf("failed to sign %s: %w", op.Type, err)
	}

	if err := c.send(types.NewTradingCommand(op.ID, op.Type, signed)); err != nil {
		return err
	}
	c.logger.Debug("Sent trading operation", zap.String("type", op.Type), zap.String("id", op.ID))
	return nil
}

// sendRequest converts request and sends it under operationType. It returns
// the correlation id the venue will echo back.
func (c *Client) sendRequest(operationType string, request any) (string, error) {
	if c.signer == nil {
		return "", ErrAuthNotConfigured
	}

	data, err := types.ToPayload(request)
	if err != nil {
		return "", err
	}

	op := types.TradingOperation{ID: uuid.NewString(), Type: operationType, Data: data}
	if err := c.SendTradingOperation(op); err != nil {
		return "", err
	}
	return op.ID, nil
}

func (c *Client) CreateOrder(req types.CreateOrderRequest) (string, error) {
	return c.sendRequest(types.OpCreateOrder, req)
}

func (c *Client) CreateMarketOrder(req types.CreateMarketOrderRequest) (string, error) {
	return c.sendRequest(types.OpCreateMarketOrder, req)
}

func (c *Client) EditOrder(req types.EditOrderRequest) (string, error) {
	return c.sendRequest(types.OpEditOrder, req)
}

func (c *Client) CancelOrder(req types.CancelOrderRequest) (string, error) {
	return c.sendRequest(types.OpCancelOrder, req)
}

func (c *Client) CancelAllOrders(req types.CancelAllOrdersRequest) (string, error) {
	return c.sendRequest(types.OpCancelAllOrders, req)
}

func (c *Client) CreateStopOrder(req types.CreateStopOrderRequest) (string, error) {
	return c.sendRequest(types.OpCreateStopOrder, req)
}

func (c *Client) CancelStopOrder(req types.CancelStopOrderRequest) (string, error) {
	return c.sendRequest(types.OpCancelStopOrder, req)
}

// BatchOrder sends every item under one signature. The batch is checked
// before anything is signed.
func (c *Client) BatchOrder(req types.BatchOrderRequest) (string, error) {
	if err := req.Validate(); err != nil {
		return "", err
	}
	return c.sendRequest(types.OpBatchOrder, req)
}

func (c *Client) CreatePositionTPSL(req types.CreatePositionTPSLRequest) (string, error) {
	return c.sendRequest(types.OpCreatePositionTPSL, req)
}

func (c *Client) UpdateLeverage(req types.UpdateLeverageRequest) (string, error) {
	return c.sendRequest(types.OpUpdateLeverage, req)
}

func (c *Client) UpdateMarginMode(req types.UpdateMarginModeRequest) (string, error) {
	return c.sendRequest(types.OpUpdateMarginMode, req)
}
