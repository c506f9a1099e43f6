package types

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/goccy/go-json"
	"github.com/shopspring/decimal"
)

// Operation types accepted by the signer and by stream trading commands.
const (
	OpCreateOrder        = "create_order"
	OpCreateMarketOrder  = "create_market_order"
	OpCreateStopOrder    = "create_stop_order"
	OpEditOrder          = "edit_order"
	OpCancelOrder        = "cancel_order"
	OpCancelStopOrder    = "cancel_stop_order"
	OpCancelAllOrders    = "cancel_all_orders"
	OpCreatePositionTPSL = "create_position_tpsl"
	OpUpdateLeverage     = "update_leverage"
	OpUpdateMarginMode   = "update_margin_mode"
	OpRequestWithdrawal  = "request_withdrawal"
	OpBatchOrder         = "batch_order"
	OpCreateSubaccount   = "create_subaccount"
	OpSubaccountTransfer = "subaccount_fund_transfer"
)

var ErrInvalidRequest = errors.New("invalid request")

// TradingOperation is an unsigned operation to be sent over the stream. ID
// correlates the venue's reply; an empty ID is filled in by the client.
type TradingOperation struct {
	ID   string
	Type string
	Data map[string]any
}

type StopOrderConfig struct {
	StopPrice     decimal.Decimal  `json:"stop_price"`
	LimitPrice    *decimal.Decimal `json:"limit_price,omitempty"`
	ClientOrderID string           `json:"client_order_id,omitempty"`
}

type CreateOrderRequest struct {
	Symbol        string           `json:"symbol"`
	Price         decimal.Decimal  `json:"price"`
	Amount        decimal.Decimal  `json:"amount"`
	Side          OrderSide        `json:"side"`
	TIF           TimeInForce      `json:"tif"`
	ReduceOnly    bool             `json:"reduce_only"`
	ClientOrderID string           `json:"client_order_id,omitempty"`
	TakeProfit    *StopOrderConfig `json:"take_profit,omitempty"`
	StopLoss      *StopOrderConfig `json:"stop_loss,omitempty"`
}

type CreateMarketOrderRequest struct {
	Symbol          string           `json:"symbol"`
	Amount          decimal.Decimal  `json:"amount"`
	Side            OrderSide        `json:"side"`
	SlippagePercent decimal.Decimal  `json:"slippage_percent"`
	ReduceOnly      bool             `json:"reduce_only"`
	ClientOrderID   string           `json:"client_order_id,omitempty"`
	TakeProfit      *StopOrderConfig `json:"take_profit,omitempty"`
	StopLoss        *StopOrderConfig `json:"stop_loss,omitempty"`
}

type EditOrderRequest struct {
	Symbol        string           `json:"symbol"`
	OrderID       int64            `json:"order_id,omitempty"`
	ClientOrderID string           `json:"client_order_id,omitempty"`
	Price         *decimal.Decimal `json:"price,omitempty"`
	Amount        *decimal.Decimal `json:"amount,omitempty"`
}

type CancelOrderRequest struct {
	Symbol        string `json:"symbol"`
	OrderID       int64  `json:"order_id,omitempty"`
	ClientOrderID string `json:"client_order_id,omitempty"`
}

type CancelAllOrdersRequest struct {
	AllSymbols        bool   `json:"all_symbols"`
	ExcludeReduceOnly bool   `json:"exclude_reduce_only"`
	Symbol            string `json:"symbol,omitempty"`
}

// CreateStopOrderRequest places a conditional order. A nil LimitPrice
// triggers a market order at StopPrice.
type CreateStopOrderRequest struct {
	Symbol        string           `json:"symbol"`
	StopPrice     decimal.Decimal  `json:"stop_price"`
	LimitPrice    *decimal.Decimal `json:"limit_price,omitempty"`
	Amount        decimal.Decimal  `json:"amount"`
	Side          OrderSide        `json:"side"`
	TIF           TimeInForce      `json:"tif"`
	ReduceOnly    bool             `json:"reduce_only"`
	ClientOrderID string           `json:"client_order_id,omitempty"`
}

type CancelStopOrderRequest struct {
	StopOrderID   int64  `json:"stop_order_id,omitempty"`
	ClientOrderID string `json:"client_order_id,omitempty"`
}

// CreatePositionTPSLRequest attaches take-profit and stop-loss orders to an
// open position.
type CreatePositionTPSLRequest struct {
	Symbol     string           `json:"symbol"`
	TakeProfit *StopOrderConfig `json:"take_profit,omitempty"`
	StopLoss   *StopOrderConfig `json:"stop_loss,omitempty"`
}

type UpdateLeverageRequest struct {
	Symbol     string     `json:"symbol"`
	Leverage   int        `json:"leverage"`
	MarginMode MarginMode `json:"margin_mode,omitempty"`
}

type UpdateMarginModeRequest struct {
	Symbol     string     `json:"symbol"`
	MarginMode MarginMode `json:"margin_mode"`
}

type WithdrawalRequest struct {
	Amount             decimal.Decimal `json:"amount"`
	DestinationAddress string          `json:"destination_address"`
}

type CreateSubaccountRequest struct {
	Name string `json:"name"`
}

type TransferDirection string

const (
	TransferDeposit  TransferDirection = "deposit"
	TransferWithdraw TransferDirection = "withdraw"
)

// SubaccountTransferRequest moves funds between the main account and a
// subaccount. Deposit sends funds to the subaccount.
type SubaccountTransferRequest struct {
	SubaccountID int64             `json:"subaccount_id"`
	Amount       decimal.Decimal   `json:"amount"`
	Direction    TransferDirection `json:"direction"`
}

type BatchAction string

const (
	BatchCreate BatchAction = "create"
	BatchEdit   BatchAction = "edit"
	BatchCancel BatchAction = "cancel"
)

// BatchOrderItem is one action of a batch. Exactly one of Order, Edit and
// Cancel is set, matching Type; use the Batch* constructors.
type BatchOrderItem struct {
	Type   BatchAction         `json:"type"`
	Order  *CreateOrderRequest `json:"order,omitempty"`
	Edit   *EditOrderRequest   `json:"edit,omitempty"`
	Cancel *CancelOrderRequest `json:"cancel,omitempty"`
}

func BatchCreateItem(req CreateOrderRequest) BatchOrderItem {
	return BatchOrderItem{Type: BatchCreate, Order: &req}
}

func BatchEditItem(req EditOrderRequest) BatchOrderItem {
	return BatchOrderItem{Type: BatchEdit, Edit: &req}
}

func BatchCancelItem(req CancelOrderRequest) BatchOrderItem {
	return BatchOrderItem{Type: BatchCancel, Cancel: &req}
}

type BatchOrderRequest struct {
	Orders []BatchOrderItem `json:"orders"`
}

// Validate checks that every item carries the body its Type names.
func (r BatchOrderRequest) Validate() error {
	if len(r.Orders) == 0 {
		return fmt.Errorf("%w: batch has no orders", ErrInvalidRequest)
	}
	for i, item := range r.Orders {
		var ok bool
		switch item.Type {
		case BatchCreate:
			ok = item.Order != nil && item.Edit == nil && item.Cancel == nil
		case BatchEdit:
			ok = item.Edit != nil && item.Order == nil && item.Cancel == nil
		case BatchCancel:
			ok = item.Cancel != nil && item.Order == nil && item.Edit == nil
		default:
			return fmt.Errorf("%w: batch item %d has unknown type %q", ErrInvalidRequest, i, item.Type)
		}
		if !ok {
			return fmt.Errorf("%w: batch item %d does not match type %q", ErrInvalidRequest, i, item.Type)
		}
	}
	return nil
}

// ToPayload converts a request struct into the generic map the signer
// consumes. Numbers keep their textual form.
func ToPayload(request any) (map[string]any, error) {
	raw, err := json.Marshal(request)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()

	var payload map[string]any
	if err := dec.Decode(&payload); err != nil {
		return nil, fmt.Errorf("request is not an object: %w", err)
	}
	return payload, nil
}
