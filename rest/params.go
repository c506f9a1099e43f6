package rest

import (
	"net/url"
	"strconv"
)

// CandleParams selects a candle range. Zero StartTime, EndTime and Limit are
// left to the venue defaults.
type CandleParams struct {
	Symbol    string
	Interval  string
	StartTime int64
	EndTime   int64
	Limit     int
}

func (p CandleParams) values() url.Values {
	q := url.Values{}
	q.Set("symbol", p.Symbol)
	q.Set("interval", p.Interval)
	setInt(q, "start_time", p.StartTime)
	setInt(q, "end_time", p.EndTime)
	setInt(q, "limit", int64(p.Limit))
	return q
}

// HistoryParams pages through account history endpoints.
type HistoryParams struct {
	Symbol    string
	Limit     int
	Offset    int
	StartTime int64
	EndTime   int64
}

func (p HistoryParams) values(account string) url.Values {
	q := url.Values{}
	q.Set("account", account)
	if p.Symbol != "" {
		q.Set("symbol", p.Symbol)
	}
	setInt(q, "limit", int64(p.Limit))
	setInt(q, "offset", int64(p.Offset))
	setInt(q, "start_time", p.StartTime)
	setInt(q, "end_time", p.EndTime)
	return q
}

func setInt(q url.Values, key string, v int64) {
	if v != 0 {
		q.Set(key, strconv.FormatInt(v, 10))
	}
}
