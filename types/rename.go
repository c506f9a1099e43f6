package types

import (
	"bytes"
	"fmt"

	"github.com/goccy/go-json"
)

// renameSpec maps abbreviated wire keys to domain field names. Keys missing
// from the table pass through unchanged, so payloads already using the long
// names decode the same way. nested is indexed by the domain name.
type renameSpec struct {
	keys   map[string]string
	nested map[string]*renameSpec
}

var levelKeys = &renameSpec{
	keys: map[string]string{
		"p": "price",
		"a": "amount",
		"n": "orders",
	},
}

var orderbookKeys = &renameSpec{
	keys: map[string]string{
		"s": "symbol",
		"t": "timestamp",
		"l": "levels",
	},
	nested: map[string]*renameSpec{
		"levels": levelKeys,
		"bids":   levelKeys,
		"asks":   levelKeys,
	},
}

var candleKeys = &renameSpec{
	keys: map[string]string{
		"t": "timestamp",
		"T": "end_time",
		"s": "symbol",
		"i": "interval",
		"o": "open",
		"c": "close",
		"h": "high",
		"l": "low",
		"v": "volume",
		"n": "number_of_trades",
	},
}

var accountInfoKeys = &renameSpec{
	keys: map[string]string{
		"b":   "balance",
		"f":   "fee_level",
		"ae":  "account_equity",
		"as":  "available_to_spend",
		"aw":  "available_to_withdraw",
		"pb":  "pending_balance",
		"mu":  "total_margin_used",
		"cm":  "cross_mmr",
		"pc":  "positions_count",
		"oc":  "orders_count",
		"sc":  "stop_orders_count",
		"t":   "updated_at",
		"ltp": "use_ltp_for_stop_orders",
	},
}

var positionKeys = &renameSpec{
	keys: map[string]string{
		"s":  "symbol",
		"d":  "side",
		"a":  "amount",
		"p":  "entry_price",
		"m":  "margin",
		"f":  "funding",
		"i":  "isolated",
		"ct": "created_at",
		"t":  "updated_at",
	},
}

var orderKeys = &renameSpec{
	keys: map[string]string{
		"i":   "order_id",
		"I":   "client_order_id",
		"s":   "symbol",
		"d":   "side",
		"p":   "price",
		"a":   "initial_amount",
		"f":   "filled_amount",
		"c":   "cancelled_amount",
		"sp":  "stop_price",
		"ot":  "order_type",
		"sop": "stop_parent_order_id",
		"r":   "reduce_only",
		"ct":  "created_at",
		"t":   "updated_at",
	},
}

var orderUpdateKeys = &renameSpec{
	keys: map[string]string{
		"o": "order",
		"u": "update_type",
	},
	nested: map[string]*renameSpec{
		"order": orderKeys,
	},
}

var tradeKeys = &renameSpec{
	keys: map[string]string{
		"h": "history_id",
		"i": "order_id",
		"I": "client_order_id",
		"s": "symbol",
		"a": "amount",
		"p": "price",
		"o": "entry_price",
		"f": "fee",
		"n": "pnl",
		"e": "event_type",
		"d": "side",
		"c": "cause",
		"t": "created_at",
	},
}

// rename applies spec to objects, and element-wise to arrays.
func rename(v any, spec *renameSpec) any {
	switch val := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(val))
		for k, field := range val {
			name, ok := spec.keys[k]
			if !ok {
				name = k
			}
			if sub := spec.nested[name]; sub != nil {
				field = rename(field, sub)
			}
			out[name] = field
		}
		return out
	case []any:
		out := make([]any, len(val))
		for i, item := range val {
			out[i] = rename(item, spec)
		}
		return out
	default:
		return v
	}
}

// expand rewrites abbreviated keys in data according to spec and returns
// the long-form JSON.
func expand(data json.RawMessage, spec *renameSpec) (json.RawMessage, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var generic any
	if err := dec.Decode(&generic); err != nil {
		return nil, fmt.Errorf("failed to decode payload: %w", err)
	}

	out, err := json.Marshal(rename(generic, spec))
	if err != nil {
		return nil, fmt.Errorf("failed to encode renamed payload: %w", err)
	}
	return out, nil
}
