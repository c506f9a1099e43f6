package websocket

import (
	"fmt"
	"sync"

	"github.com/tradingiq/pacifica-client/interfaces"
	"github.com/tradingiq/pacifica-client/types"

	"go.uber.org/zap"
)

// Event names a client event and fixes the type of its payload.
type Event[T any] struct {
	name string
}

func (e Event[T]) Name() string {
	return e.name
}

// Opened is the payload of the Open event.
type Opened struct{}

// Closed is the payload of the Close event.
type Closed struct {
	Code   int
	Reason string
}

// PongReceived is the payload of the Pong event.
type PongReceived struct{}

var (
	Open        = Event[Opened]{name: "open"}
	Close       = Event[Closed]{name: "close"}
	Error       = Event[error]{name: "error"}
	Pong        = Event[PongReceived]{name: "pong"}
	VenueErrors = Event[types.VenueError]{name: "ws_error"}

	Prices              = Event[[]types.PriceData]{name: string(types.ChannelPrices)}
	Orderbook           = Event[types.Orderbook]{name: string(types.ChannelOrderbook)}
	BBO                 = Event[types.BBO]{name: string(types.ChannelBBO)}
	Trades              = Event[[]types.Trade]{name: string(types.ChannelTrades)}
	Candle              = Event[types.Candle]{name: string(types.ChannelCandle)}
	MarkPriceCandle     = Event[types.Candle]{name: string(types.ChannelMarkPriceCandle)}
	AccountMargin       = Event[types.AccountMargin]{name: string(types.ChannelAccountMargin)}
	AccountLeverage     = Event[types.AccountLeverage]{name: string(types.ChannelAccountLeverage)}
	AccountInfo         = Event[types.AccountInfo]{name: string(types.ChannelAccountInfo)}
	AccountPositions    = Event[[]types.Position]{name: string(types.ChannelAccountPositions)}
	AccountOrders       = Event[[]types.Order]{name: string(types.ChannelAccountOrders)}
	AccountOrderUpdates = Event[[]types.OrderUpdate]{name: string(types.ChannelAccountOrderUpdates)}
	AccountTrades       = Event[[]types.Trade]{name: string(types.ChannelAccountTrades)}
)

type listener struct {
	id interfaces.ListenerID
	fn func(any)
}

// Dispatcher fans decoded events out to listeners. Listeners run on the
// goroutine that emits, in registration order, and never under a lock.
type Dispatcher struct {
	logger *zap.Logger

	mu        sync.RWMutex
	nextID    interfaces.ListenerID
	listeners map[string][]listener
	events    map[interfaces.ListenerID]string
}

func NewDispatcher(logger *zap.Logger) *Dispatcher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Dispatcher{
		logger:    logger,
		listeners: make(map[string][]listener),
		events:    make(map[interfaces.ListenerID]string),
	}
}

// Listen registers fn for ev. Every call is a separate registration, so
// registering the same function twice delivers each event to it twice.
func Listen[T any](d *Dispatcher, ev Event[T], fn func(T)) interfaces.ListenerID {
	return d.add(ev.name, func(payload any) {
		fn(payload.(T))
	})
}

func (d *Dispatcher) add(name string, fn func(any)) interfaces.ListenerID {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.nextID++
	id := d.nextID
	d.listeners[name] = append(d.listeners[name], listener{id: id, fn: fn})
	d.events[id] = name
	return id
}

// Off removes the registration id. It reports whether anything was removed.
func (d *Dispatcher) Off(id interfaces.ListenerID) bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	name, ok := d.events[id]
	if !ok {
		return false
	}
	delete(d.events, id)

	current := d.listeners[name]
	kept := make([]listener, 0, len(current))
	for _, l := range current {
		if l.id != id {
			kept = append(kept, l)
		}
	}
	if len(kept) == 0 {
		delete(d.listeners, name)
	} else {
		d.listeners[name] = kept
	}
	return true
}

func (d *Dispatcher) HasListeners(name string) bool {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return len(d.listeners[name]) > 0
}

func emit[T any](d *Dispatcher, ev Event[T], payload T) {
	d.emit(ev.name, payload)
}

func (d *Dispatcher) emit(name string, payload any) {
	d.mu.RLock()
	snapshot := make([]listener, len(d.listeners[name]))
	copy(snapshot, d.listeners[name])
	d.mu.RUnlock()

	for _, l := range snapshot {
		d.invoke(name, l, payload)
	}
}

func (d *Dispatcher) invoke(name string, l listener, payload any) {
	defer func() {
		if r := recover(); r != nil {
			d.logger.Error("Listener panicked", zap.String("event", name), zap.Uint64("listener", uint64(l.id)), zap.Any("panic", r))
		}
	}()
	l.fn(payload)
}

// Dispatch routes one decoded envelope. Payloads are only decoded when the
// channel has listeners; unknown channels are dropped.
func (d *Dispatcher) Dispatch(env types.Envelope) error {
	switch env.Channel {
	case types.ChannelPong:
		emit(d, Pong, PongReceived{})
		return nil
	case types.ChannelError:
		if !d.HasListeners(VenueErrors.name) {
			return nil
		}
		venueErr, err := types.DecodeVenueError(env.Data)
		if err != nil {
			return err
		}
		emit(d, VenueErrors, venueErr)
		return nil
	}

	if !env.Channel.Known() {
		d.logger.Debug("Received message on unknown channel", zap.String("channel", string(env.Channel)))
		return nil
	}

	name := string(env.Channel)
	if !d.HasListeners(name) {
		return nil
	}

	payload, err := types.DecodePayload(env.Channel, env.Data)
	if err != nil {
		return fmt.Errorf("%s payload: %w", name, err)
	}
	d.emit(name, payload)
	return nil
}
