package types

import (
	"github.com/goccy/go-json"
	"github.com/shopspring/decimal"
)

type PriceData struct {
	Symbol         string          `json:"symbol"`
	Funding        decimal.Decimal `json:"funding"`
	Mark           decimal.Decimal `json:"mark"`
	Mid            decimal.Decimal `json:"mid"`
	NextFunding    decimal.Decimal `json:"next_funding"`
	OpenInterest   decimal.Decimal `json:"open_interest"`
	Oracle         decimal.Decimal `json:"oracle"`
	Volume24h      decimal.Decimal `json:"volume_24h"`
	YesterdayPrice decimal.Decimal `json:"yesterday_price"`
	Timestamp      int64           `json:"timestamp"`
}

type OrderbookLevel struct {
	Price  decimal.Decimal `json:"price"`
	Amount decimal.Decimal `json:"amount"`
	Orders int             `json:"orders,omitempty"`
}

type Orderbook struct {
	Symbol    string           `json:"symbol"`
	Bids      []OrderbookLevel `json:"bids"`
	Asks      []OrderbookLevel `json:"asks"`
	Timestamp int64            `json:"timestamp"`
}

// UnmarshalJSON accepts both explicit bids/asks and the stream form, where
// levels holds [bids, asks].
func (o *Orderbook) UnmarshalJSON(data []byte) error {
	type plain Orderbook
	var aux struct {
		plain
		Levels [][]OrderbookLevel `json:"levels"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}

	*o = Orderbook(aux.plain)
	if len(aux.Levels) > 0 && o.Bids == nil {
		o.Bids = aux.Levels[0]
	}
	if len(aux.Levels) > 1 && o.Asks == nil {
		o.Asks = aux.Levels[1]
	}
	return nil
}

// BestBid returns the first bid level, if any.
func (o *Orderbook) BestBid() (OrderbookLevel, bool) {
	if len(o.Bids) == 0 {
		return OrderbookLevel{}, false
	}
	return o.Bids[0], true
}

// BestAsk returns the first ask level, if any.
func (o *Orderbook) BestAsk() (OrderbookLevel, bool) {
	if len(o.Asks) == 0 {
		return OrderbookLevel{}, false
	}
	return o.Asks[0], true
}

type BBO struct {
	Symbol    string          `json:"symbol"`
	BestBid   decimal.Decimal `json:"best_bid"`
	BestAsk   decimal.Decimal `json:"best_ask"`
	Timestamp int64           `json:"timestamp"`
}

func (b *BBO) Spread() decimal.Decimal {
	return b.BestAsk.Sub(b.BestBid)
}

// Trade is used by both the public trades channel and account trade fills.
// Account-only fields stay zero on public trades.
type Trade struct {
	HistoryID     int64           `json:"history_id,omitempty"`
	OrderID       int64           `json:"order_id,omitempty"`
	ClientOrderID string          `json:"client_order_id,omitempty"`
	Symbol        string          `json:"symbol"`
	Amount        decimal.Decimal `json:"amount"`
	Price         decimal.Decimal `json:"price"`
	EntryPrice    decimal.Decimal `json:"entry_price"`
	Fee           decimal.Decimal `json:"fee"`
	PnL           decimal.Decimal `json:"pnl"`
	EventType     string          `json:"event_type"`
	Side          string          `json:"side"`
	Cause         string          `json:"cause"`
	CreatedAt     int64           `json:"created_at"`
}

type Candle struct {
	Timestamp      int64           `json:"timestamp"`
	EndTime        int64           `json:"end_time"`
	Symbol         string          `json:"symbol"`
	Interval       string          `json:"interval"`
	Open           decimal.Decimal `json:"open"`
	Close          decimal.Decimal `json:"close"`
	High           decimal.Decimal `json:"high"`
	Low            decimal.Decimal `json:"low"`
	Volume         decimal.Decimal `json:"volume"`
	NumberOfTrades int64           `json:"number_of_trades"`
}

// Range is High minus Low.
func (c *Candle) Range() decimal.Decimal {
	return c.High.Sub(c.Low)
}

type MarketInfo struct {
	Symbol          string          `json:"symbol"`
	TickSize        decimal.Decimal `json:"tick_size"`
	MinTick         decimal.Decimal `json:"min_tick"`
	MaxTick         decimal.Decimal `json:"max_tick"`
	LotSize         decimal.Decimal `json:"lot_size"`
	MaxLeverage     int             `json:"max_leverage"`
	IsolatedOnly    bool            `json:"isolated_only"`
	MinOrderSize    decimal.Decimal `json:"min_order_size"`
	MaxOrderSize    decimal.Decimal `json:"max_order_size"`
	FundingRate     decimal.Decimal `json:"funding_rate"`
	NextFundingRate decimal.Decimal `json:"next_funding_rate"`
	CreatedAt       int64           `json:"created_at"`
}
