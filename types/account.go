package types

import (
	"github.com/shopspring/decimal"
)

type OrderSide string

const (
	SideBid OrderSide = "bid"
	SideAsk OrderSide = "ask"
)

type TimeInForce string

const (
	TIFGoodTillCancel    TimeInForce = "GTC"
	TIFImmediateOrCancel TimeInForce = "IOC"
	TIFAddLiquidityOnly  TimeInForce = "ALO"
	TIFTopOfBook         TimeInForce = "TOB"
)

type MarginMode string

const (
	MarginCross    MarginMode = "cross"
	MarginIsolated MarginMode = "isolated"
)

type OrderUpdateType string

const (
	OrderCreated         OrderUpdateType = "created"
	OrderFilled          OrderUpdateType = "filled"
	OrderPartiallyFilled OrderUpdateType = "partially_filled"
	OrderCancelled       OrderUpdateType = "cancelled"
	OrderExpired         OrderUpdateType = "expired"
)

type AccountMargin struct {
	Account          string          `json:"account"`
	MarginMode       MarginMode      `json:"margin_mode"`
	CrossMMR         decimal.Decimal `json:"cross_mmr"`
	TotalMarginUsed  decimal.Decimal `json:"total_margin_used"`
	AvailableToSpend decimal.Decimal `json:"available_to_spend"`
	Timestamp        int64           `json:"timestamp"`
}

type AccountLeverage struct {
	Account    string     `json:"account"`
	Symbol     string     `json:"symbol"`
	Leverage   int        `json:"leverage"`
	MarginMode MarginMode `json:"margin_mode"`
	Timestamp  int64      `json:"timestamp"`
}

type AccountInfo struct {
	Balance             decimal.Decimal `json:"balance"`
	FeeLevel            int             `json:"fee_level"`
	AccountEquity       decimal.Decimal `json:"account_equity"`
	AvailableToSpend    decimal.Decimal `json:"available_to_spend"`
	AvailableToWithdraw decimal.Decimal `json:"available_to_withdraw"`
	PendingBalance      decimal.Decimal `json:"pending_balance"`
	TotalMarginUsed     decimal.Decimal `json:"total_margin_used"`
	CrossMMR            decimal.Decimal `json:"cross_mmr"`
	PositionsCount      int             `json:"positions_count"`
	OrdersCount         int             `json:"orders_count"`
	StopOrdersCount     int             `json:"stop_orders_count"`
	UpdatedAt           int64           `json:"updated_at"`
	UseLTPForStopOrders bool            `json:"use_ltp_for_stop_orders"`
}

type Position struct {
	Symbol     string              `json:"symbol"`
	Side       OrderSide           `json:"side"`
	Amount     decimal.Decimal     `json:"amount"`
	EntryPrice decimal.Decimal     `json:"entry_price"`
	Margin     decimal.NullDecimal `json:"margin"` // isolated positions only
	Funding    decimal.Decimal     `json:"funding"`
	Isolated   bool                `json:"isolated"`
	CreatedAt  int64               `json:"created_at"`
	UpdatedAt  int64               `json:"updated_at"`
}

type Order struct {
	OrderID           int64               `json:"order_id"`
	ClientOrderID     string              `json:"client_order_id,omitempty"`
	Symbol            string              `json:"symbol"`
	Side              OrderSide           `json:"side"`
	Price             decimal.Decimal     `json:"price"`
	InitialAmount     decimal.Decimal     `json:"initial_amount"`
	FilledAmount      decimal.Decimal     `json:"filled_amount"`
	CancelledAmount   decimal.Decimal     `json:"cancelled_amount"`
	StopPrice         decimal.NullDecimal `json:"stop_price"`
	OrderType         string              `json:"order_type"`
	StopParentOrderID *int64              `json:"stop_parent_order_id"`
	ReduceOnly        bool                `json:"reduce_only"`
	CreatedAt         int64               `json:"created_at"`
	UpdatedAt         int64               `json:"updated_at"`
}

// Remaining is the amount neither filled nor cancelled.
func (o *Order) Remaining() decimal.Decimal {
	return o.InitialAmount.Sub(o.FilledAmount).Sub(o.CancelledAmount)
}

type OrderUpdate struct {
	Order      Order           `json:"order"`
	UpdateType OrderUpdateType `json:"update_type"`
}
