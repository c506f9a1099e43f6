package websocket

import (
	"testing"

	"github.com/tradingiq/pacifica-client/types"

	"github.com/stretchr/testify/assert"
)

func TestRegistry(t *testing.T) {
	r := NewRegistry()

	assert.True(t, r.Add(types.TradesDescriptor("ETH")))
	assert.True(t, r.Add(types.PricesDescriptor()))
	assert.True(t, r.Add(types.CandleDescriptor("BTC", "1m")))
	assert.False(t, r.Add(types.Descriptor{Source: types.ChannelTrades, Symbol: "ETH"}))
	assert.Equal(t, 3, r.Len())

	assert.Equal(t, []types.Descriptor{
		types.CandleDescriptor("BTC", "1m"),
		types.PricesDescriptor(),
		types.TradesDescriptor("ETH"),
	}, r.Snapshot())

	assert.True(t, r.Contains(types.PricesDescriptor()))
	assert.True(t, r.Remove(types.PricesDescriptor()))
	assert.False(t, r.Remove(types.PricesDescriptor()))
	assert.False(t, r.Contains(types.PricesDescriptor()))

	snapshot := r.Snapshot()
	r.Add(types.BBODescriptor("SOL"))
	assert.Len(t, snapshot, 2, "snapshot must not observe later mutations")
	assert.Equal(t, 3, r.Len())
}
