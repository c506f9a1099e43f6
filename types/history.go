package types

import (
	"github.com/shopspring/decimal"
)

// FundingRate is one settled funding rate of a market.
type FundingRate struct {
	FundingRate decimal.Decimal `json:"funding_rate"`
	Timestamp   int64           `json:"timestamp"`
}

// FundingPayment is funding paid or received by an account. A negative
// payment was paid out.
type FundingPayment struct {
	Symbol         string          `json:"symbol"`
	FundingPayment decimal.Decimal `json:"funding_payment"`
	Timestamp      int64           `json:"timestamp"`
}

type BalancePoint struct {
	Balance   decimal.Decimal `json:"balance"`
	Timestamp int64           `json:"timestamp"`
}

type EquityPoint struct {
	Equity    decimal.Decimal `json:"equity"`
	Timestamp int64           `json:"timestamp"`
}

type AccountSettings struct {
	UseLTPForStopOrders bool `json:"use_ltp_for_stop_orders"`
}

type Subaccount struct {
	SubaccountID int64  `json:"subaccount_id"`
	Name         string `json:"name"`
	CreatedAt    int64  `json:"created_at"`
}
