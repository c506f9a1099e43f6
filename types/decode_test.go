package types

import (
	"errors"
	"testing"

	"github.com/goccy/go-json"
	"github.com/shopspring/decimal"
)

func TestDecodePayload_Types(t *testing.T) {
	tests := []struct {
		channel Channel
		data    string
		check   func(t *testing.T, v any)
	}{
		{ChannelPrices, `[{"symbol":"BTC","mark":"65000.5","funding":"0.0001","timestamp":1}]`, func(t *testing.T, v any) {
			prices := v.([]PriceData)
			if len(prices) != 1 || prices[0].Symbol != "BTC" || !prices[0].Mark.Equal(decimal.RequireFromString("65000.5")) {
				t.Errorf("prices = %+v", prices)
			}
		}},
		{ChannelOrderbook, `{"symbol":"BTC","bids":[{"price":"100","amount":"1"}],"asks":[{"price":"101","amount":"2"}],"timestamp":5}`, func(t *testing.T, v any) {
			book := v.(Orderbook)
			bid, ok := book.BestBid()
			if !ok || !bid.Price.Equal(decimal.NewFromInt(100)) {
				t.Errorf("best bid = %+v", bid)
			}
			ask, ok := book.BestAsk()
			if !ok || !ask.Amount.Equal(decimal.NewFromInt(2)) {
				t.Errorf("best ask = %+v", ask)
			}
		}},
		{ChannelOrderbook, `{"s":"ETH","l":[[{"p":"10","a":"3","n":2}],[{"p":"11","a":"4","n":1}]],"t":9}`, func(t *testing.T, v any) {
			book := v.(Orderbook)
			if book.Symbol != "ETH" || book.Timestamp != 9 {
				t.Errorf("book = %+v", book)
			}
			if len(book.Bids) != 1 || book.Bids[0].Orders != 2 || !book.Bids[0].Price.Equal(decimal.NewFromInt(10)) {
				t.Errorf("bids = %+v", book.Bids)
			}
			if len(book.Asks) != 1 || !book.Asks[0].Amount.Equal(decimal.NewFromInt(4)) {
				t.Errorf("asks = %+v", book.Asks)
			}
		}},
		{ChannelBBO, `{"symbol":"SOL","best_bid":"150.1","best_ask":"150.3","timestamp":1}`, func(t *testing.T, v any) {
			bbo := v.(BBO)
			if !bbo.Spread().Equal(decimal.RequireFromString("0.2")) {
				t.Errorf("spread = %s", bbo.Spread())
			}
		}},
		{ChannelCandle, `{"t":1000,"T":2000,"s":"BTC","i":"1m","o":"1","c":"2","h":"3","l":"0.5","v":"10","n":7}`, func(t *testing.T, v any) {
			candle := v.(Candle)
			if candle.Timestamp != 1000 || candle.EndTime != 2000 || candle.Interval != "1m" || candle.NumberOfTrades != 7 {
				t.Errorf("candle = %+v", candle)
			}
			if !candle.Range().Equal(decimal.RequireFromString("2.5")) {
				t.Errorf("range = %s", candle.Range())
			}
		}},
		{ChannelMarkPriceCandle, `{"timestamp":1,"symbol":"BTC","interval":"5m","open":"1","close":"1","high":"1","low":"1","volume":"0"}`, func(t *testing.T, v any) {
			if candle := v.(Candle); candle.Interval != "5m" {
				t.Errorf("candle = %+v", candle)
			}
		}},
		{ChannelAccountInfo, `{"b":"1000","ae":"1100","as":"900","pc":2,"f":1,"t":42}`, func(t *testing.T, v any) {
			info := v.(AccountInfo)
			if !info.Balance.Equal(decimal.NewFromInt(1000)) || info.PositionsCount != 2 || info.FeeLevel != 1 || info.UpdatedAt != 42 {
				t.Errorf("info = %+v", info)
			}
		}},
		{ChannelAccountPositions, `[{"s":"BTC","d":"bid","a":"0.5","p":"60000","f":"0","i":false,"t":3}]`, func(t *testing.T, v any) {
			positions := v.([]Position)
			if len(positions) != 1 || positions[0].Side != SideBid || positions[0].Margin.Valid {
				t.Errorf("positions = %+v", positions)
			}
		}},
		{ChannelAccountOrders, `[{"i":7,"s":"BTC","d":"ask","p":"1","a":"3","f":"1","c":"0.5","sp":null,"ot":"limit","r":true}]`, func(t *testing.T, v any) {
			orders := v.([]Order)
			if len(orders) != 1 || orders[0].OrderID != 7 || !orders[0].ReduceOnly {
				t.Errorf("orders = %+v", orders)
			}
			if !orders[0].Remaining().Equal(decimal.RequireFromString("1.5")) {
				t.Errorf("remaining = %s", orders[0].Remaining())
			}
		}},
		{ChannelAccountOrderUpdates, `[{"o":{"i":8,"s":"ETH","d":"bid"},"u":"filled"}]`, func(t *testing.T, v any) {
			updates := v.([]OrderUpdate)
			if len(updates) != 1 || updates[0].Order.OrderID != 8 || updates[0].UpdateType != OrderFilled {
				t.Errorf("updates = %+v", updates)
			}
		}},
		{ChannelTrades, `[{"s":"BTC","a":"0.1","p":"65000","d":"open_long","e":"fulfill_taker","c":"normal","t":11}]`, func(t *testing.T, v any) {
			trades := v.([]Trade)
			if len(trades) != 1 || trades[0].Side != "open_long" || trades[0].Cause != "normal" || trades[0].CreatedAt != 11 {
				t.Errorf("trades = %+v", trades)
			}
		}},
		{ChannelAccountTrades, `[{"h":1,"i":2,"s":"BTC","a":"1","p":"2","f":"0.01","n":"5"}]`, func(t *testing.T, v any) {
			trades := v.([]Trade)
			if len(trades) != 1 || trades[0].HistoryID != 1 || !trades[0].PnL.Equal(decimal.NewFromInt(5)) {
				t.Errorf("trades = %+v", trades)
			}
		}},
		{ChannelAccountMargin, `{"account":"acc","margin_mode":"cross","total_margin_used":"10","available_to_spend":"5","timestamp":1}`, func(t *testing.T, v any) {
			if margin := v.(AccountMargin); margin.MarginMode != MarginCross {
				t.Errorf("margin = %+v", margin)
			}
		}},
		{ChannelAccountLeverage, `{"account":"acc","symbol":"BTC","leverage":10,"margin_mode":"isolated","timestamp":1}`, func(t *testing.T, v any) {
			if lev := v.(AccountLeverage); lev.Leverage != 10 {
				t.Errorf("leverage = %+v", lev)
			}
		}},
	}

	for _, tt := range tests {
		t.Run(string(tt.channel), func(t *testing.T) {
			v, err := DecodePayload(tt.channel, json.RawMessage(tt.data))
			if err != nil {
				t.Fatalf("DecodePayload() error = %v", err)
			}
			tt.check(t, v)
		})
	}
}

func TestDecodePayload_Errors(t *testing.T) {
	if _, err := DecodePayload("funding", json.RawMessage(`{}`)); !errors.Is(err, ErrUnknownChannel) {
		t.Errorf("unknown channel error = %v", err)
	}
	if _, err := DecodePayload(ChannelPong, nil); !errors.Is(err, ErrUnknownChannel) {
		t.Errorf("pong has no payload decoder, error = %v", err)
	}
	if _, err := DecodePayload(ChannelPrices, json.RawMessage(`{"symbol":1}`)); err == nil {
		t.Error("mistyped prices payload should fail")
	}
	if _, err := DecodePayload(ChannelCandle, json.RawMessage(`{"t":`)); err == nil {
		t.Error("truncated candle payload should fail")
	}
}

func TestDecodeVenueError(t *testing.T) {
	venueErr, err := DecodeVenueError(json.RawMessage(`{"code":401,"message":"bad signature"}`))
	if err != nil {
		t.Fatalf("DecodeVenueError() error = %v", err)
	}
	if venueErr.Code != WSCodeInvalidSignature || venueErr.Message != "bad signature" {
		t.Errorf("venue error = %+v", venueErr)
	}

	if _, err := DecodeVenueError(json.RawMessage(`"oops"`)); err == nil {
		t.Error("string error payload should fail")
	}
}

func TestExpandPayload(t *testing.T) {
	out, err := ExpandPayload(ChannelCandle, json.RawMessage(`{"s":"BTC","x":1}`))
	if err != nil {
		t.Fatalf("ExpandPayload() error = %v", err)
	}
	if string(out) != `{"symbol":"BTC","x":1}` {
		t.Errorf("ExpandPayload() = %s", out)
	}

	raw := json.RawMessage(`{"s":"BTC"}`)
	same, err := ExpandPayload(ChannelBBO, raw)
	if err != nil || string(same) != string(raw) {
		t.Errorf("ExpandPayload(bbo) = %s, %v", same, err)
	}
}

func TestPayloadDecodersCoverDataChannels(t *testing.T) {
	for ch := range subscribable {
		if _, ok := payloadDecoders[ch]; !ok {
			t.Errorf("no decoder for subscribable channel %s", ch)
		}
	}
}
