package websocket

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/tradingiq/pacifica-client/interfaces"
	"github.com/tradingiq/pacifica-client/types"

	"github.com/cenkalti/backoff/v5"
	"github.com/coder/websocket"
	"github.com/jonboulle/clockwork"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

type State int

const (
	StateIdle State = iota
	StateConnecting
	StateOpen
	StateClosing
	StatePendingReconnect
	StateClosed
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateConnecting:
		return "connecting"
	case StateOpen:
		return "open"
	case StateClosing:
		return "closing"
	case StatePendingReconnect:
		return "pending_reconnect"
	case StateClosed:
		return "closed"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Client is a single logical stream session. It owns at most one live
// connection, reconnects with exponential backoff and replays the
// subscription registry each time a connection opens.
type Client struct {
	url    string
	logger *zap.Logger
	dialer Dialer
	clock  clockwork.Clock
	signer interfaces.Signer

	pingInterval         time.Duration
	handshakeTimeout     time.Duration
	writeTimeout         time.Duration
	reconnect            bool
	maxReconnectAttempts int
	backoff              backoff.BackOff

	registry   *Registry
	dispatcher *Dispatcher

	mu                sync.RWMutex
	state             State
	conn              Conn
	generation        uint64
	manualDisconnect  bool
	reconnectAttempts int
	heartbeatTimer    clockwork.Timer
	reconnectTimer    clockwork.Timer
	cancelDial        context.CancelFunc

	writeMu sync.Mutex
}

var _ interfaces.StreamClient = (*Client)(nil)

func NewClient(logger *zap.Logger, opts ...ClientOption) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}

	client := &Client{
		url:                  MainnetURL,
		logger:               logger,
		dialer:               &coderDialer{readLimit: DefaultReadLimit},
		clock:                clockwork.NewRealClock(),
		pingInterval:         PingInterval,
		handshakeTimeout:     DefaultHandshakeTimeout,
		writeTimeout:         DefaultWriteTimeout,
		reconnect:            true,
		maxReconnectAttempts: DefaultMaxReconnectAttempts,
		backoff:              newReconnectBackOff(DefaultReconnectBaseDelay, DefaultReconnectMaxDelay),
		registry:             NewRegistry(),
		dispatcher:           NewDispatcher(logger),
	}

	for _, opt := range opts {
		opt(client)
	}
	return client
}

// On registers fn for ev on c and returns the id that removes it.
func On[T any](c *Client, ev Event[T], fn func(T)) interfaces.ListenerID {
	return Listen(c.dispatcher, ev, fn)
}

func (c *Client) Off(id interfaces.ListenerID) bool {
	return c.dispatcher.Off(id)
}

func (c *Client) State() State {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.state
}

func (c *Client) IsConnected() bool {
	return c.State() == StateOpen
}

// Subscriptions returns the registry entries ordered by key.
func (c *Client) Subscriptions() []types.Descriptor {
	return c.registry.Snapshot()
}

// Connect starts a connection attempt and returns immediately. The outcome
// is reported through the Open, Error and Close events. Connect re-enables
// automatic reconnection after Disconnect.
func (c *Client) Connect() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state == StateOpen || c.state == StateConnecting {
		return
	}

	c.manualDisconnect = false
	stopTimer(&c.reconnectTimer)
	c.startConnectLocked()
}

func (c *Client) startConnectLocked() {
	c.generation++
	gen := c.generation
	c.state = StateConnecting

	ctx, cancel := context.WithTimeout(context.Background(), c.handshakeTimeout)
	c.cancelDial = cancel

	c.logger.Info("Connecting to Pacifica WebSocket", zap.String("url", c.url), zap.Int("attempt", c.reconnectAttempts))
	go c.dial(ctx, cancel, gen)
}

// Disconnect closes the connection and cancels any pending or in-flight
// reconnect. The registry is kept.
func (c *Client) Disconnect() {
	c.mu.Lock()
	c.manualDisconnect = true
	c.generation++
	gen := c.generation
	stopTimer(&c.heartbeatTimer)
	stopTimer(&c.reconnectTimer)
	if c.cancelDial != nil {
		c.cancelDial()
		c.cancelDial = nil
	}

	conn := c.conn
	c.conn = nil
	if conn != nil {
		c.state = StateClosing
	} else {
		c.state = StateClosed
	}
	c.mu.Unlock()

	if conn == nil {
		c.logger.Info("Disconnected from Pacifica WebSocket")
		return
	}

	if err := conn.Close(websocket.StatusNormalClosure, "client disconnect"); err != nil {
		c.logger.Debug("Close handshake failed", zap.Error(err))
	}

	c.mu.Lock()
	if c.generation == gen {
		c.state = StateClosed
	}
	c.mu.Unlock()

	c.logger.Info("Disconnected from Pacifica WebSocket")
	emit(c.dispatcher, Close, Closed{Code: int(websocket.StatusNormalClosure), Reason: "client disconnect"})
}

func (c *Client) dial(ctx context.Context, cancel context.CancelFunc, gen uint64) {
	conn, err := c.dialer.Dial(ctx, c.url)
	cancel()
	if err != nil {
		c.handleDialFailure(gen, err)
		return
	}

	c.mu.Lock()
	if gen != c.generation || c.state != StateConnecting {
		c.mu.Unlock()
		_ = conn.Close(websocket.StatusNormalClosure, "superseded")
		return
	}
	c.conn = conn
	c.state = StateOpen
	c.cancelDial = nil
	c.reconnectAttempts = 0
	c.backoff.Reset()
	replay := c.registry.Snapshot()
	c.mu.Unlock()

	c.logger.Info("Connected to Pacifica WebSocket", zap.String("url", c.url))
	emit(c.dispatcher, Open, Opened{})

	c.mu.Lock()
	if gen == c.generation && c.state == StateOpen {
		c.startHeartbeatLocked(gen)
	}
	c.mu.Unlock()

	if err := c.resubscribeAll(gen, replay); err != nil {
		c.logger.Warn("Failed to resubscribe to some channels", zap.Error(err))
		emit(c.dispatcher, Error, error(fmt.Errorf("%w: %w", ErrResubscribe, err)))
	}

	c.readLoop(gen, conn)
}

func (c *Client) handleDialFailure(gen uint64, err error) {
	c.mu.Lock()
	if gen != c.generation || c.state != StateConnecting {
		c.mu.Unlock()
		return
	}
	c.cancelDial = nil
	exhausted := c.afterConnectionLostLocked()
	c.mu.Unlock()

	c.logger.Error("Connection attempt failed", zap.String("url", c.url), zap.Error(err))
	emit(c.dispatcher, Error, error(fmt.Errorf("%w: %w", ErrHandshake, err)))
	emit(c.dispatcher, Close, Closed{Code: int(websocket.StatusAbnormalClosure), Reason: err.Error()})
	if exhausted {
		emit(c.dispatcher, Error, error(ErrReconnectExhausted))
	}
}

// resubscribeAll sends one subscribe per entry of replay. A failing entry
// does not stop the others.
func (c *Client) resubscribeAll(gen uint64, replay []types.Descriptor) error {
	if len(replay) == 0 {
		return nil
	}

	c.logger.Info("Resubscribing to channels", zap.Int("count", len(replay)))

	var errs error
	for _, d := range replay {
		if !c.isCurrent(gen) {
			return errs
		}
		if !c.registry.Contains(d) {
			continue
		}
		if err := d.Validate(); err != nil {
			errs = multierr.Append(errs, err)
			continue
		}
		if err := c.send(types.SubscribeCommand(d)); err != nil {
			errs = multierr.Append(errs, fmt.Errorf("%s: %w", d, err))
		}
	}
	return errs
}

func (c *Client) readLoop(gen uint64, conn Conn) {
	for {
		data, err := conn.Read(context.Background())
		if err != nil {
			c.handleConnectionLost(gen, err)
			return
		}
		if !c.isCurrent(gen) {
			return
		}
		c.handleFrame(data)
	}
}

func (c *Client) handleFrame(data []byte) {
	env, err := types.DecodeEnvelope(data)
	if err == nil {
		err = c.dispatcher.Dispatch(env)
	}
	if err != nil {
		c.logger.Debug("Failed to parse message", zap.ByteString("message", data), zap.Error(err))
		emit(c.dispatcher, Error, error(fmt.Errorf("%w: %w", ErrMalformedFrame, err)))
	}
}

func (c *Client) handleConnectionLost(gen uint64, err error) {
	c.mu.Lock()
	if gen != c.generation {
		c.mu.Unlock()
		return
	}
	stopTimer(&c.heartbeatTimer)
	c.conn = nil
	exhausted := c.afterConnectionLostLocked()
	c.mu.Unlock()

	code, reason, clean := closeDetails(err)
	c.logger.Warn("Connection closed", zap.Int("code", int(code)), zap.String("reason", reason))

	if !clean {
		emit(c.dispatcher, Error, error(fmt.Errorf("%w: %w", ErrConnectionLost, err)))
	}
	emit(c.dispatcher, Close, Closed{Code: int(code), Reason: reason})
	if exhausted {
		emit(c.dispatcher, Error, error(ErrReconnectExhausted))
	}
}

// afterConnectionLostLocked schedules the next reconnect, or settles in
// StateClosed. It reports whether the attempt budget ran out.
func (c *Client) afterConnectionLostLocked() bool {
	if !c.reconnect || c.manualDisconnect {
		c.state = StateClosed
		return false
	}

	if c.maxReconnectAttempts > 0 && c.reconnectAttempts >= c.maxReconnectAttempts {
		c.logger.Error("Max reconnection attempts reached", zap.Int("attempts", c.reconnectAttempts))
		c.state = StateClosed
		return true
	}

	delay := c.backoff.NextBackOff()
	if delay == backoff.Stop {
		c.logger.Error("Reconnect backoff stopped", zap.Int("attempts", c.reconnectAttempts))
		c.state = StateClosed
		return true
	}

	c.reconnectAttempts++
	c.state = StatePendingReconnect
	gen := c.generation
	stopTimer(&c.reconnectTimer)
	c.reconnectTimer = c.clock.AfterFunc(delay, func() {
		c.reconnectNow(gen)
	})

	c.logger.Info("Waiting before next reconnect attempt", zap.Duration("delay", delay), zap.Int("attempt", c.reconnectAttempts))
	return false
}

func (c *Client) reconnectNow(gen uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.manualDisconnect || gen != c.generation || c.state != StatePendingReconnect {
		return
	}
	c.reconnectTimer = nil
	c.startConnectLocked()
}

func (c *Client) startHeartbeatLocked(gen uint64) {
	stopTimer(&c.heartbeatTimer)
	if c.pingInterval <= 0 {
		return
	}
	c.heartbeatTimer = c.clock.AfterFunc(c.pingInterval, func() {
		c.heartbeat(gen)
	})
}

func (c *Client) heartbeat(gen uint64) {
	c.mu.Lock()
	if gen != c.generation || c.state != StateOpen {
		c.mu.Unlock()
		return
	}
	c.startHeartbeatLocked(gen)
	c.mu.Unlock()

	if err := c.send(types.PingCommand()); err != nil {
		c.logger.Debug("Failed to send ping", zap.Error(err))
	}
}

func (c *Client) isCurrent(gen uint64) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return gen == c.generation
}

// send writes one command on the live connection. It fails with
// ErrNotConnected unless the session is open.
func (c *Client) send(cmd any) error {
	c.mu.RLock()
	conn, state := c.conn, c.state
	c.mu.RUnlock()

	if state != StateOpen || conn == nil {
		return ErrNotConnected
	}

	data, err := types.EncodeCommand(cmd)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrSendFailed, err)
	}

	c.writeMu.Lock()
	defer c.writeMu.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), c.writeTimeout)
	defer cancel()
	if err := conn.Write(ctx, data); err != nil {
		return fmt.Errorf("%w: %w", ErrSendFailed, err)
	}
	return nil
}

func stopTimer(t *clockwork.Timer) {
	if *t != nil {
		(*t).Stop()
		*t = nil
	}
}
