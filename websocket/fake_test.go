package websocket

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/coder/websocket"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

var errConnClosed = errors.New("use of closed connection")

type readResult struct {
	data []byte
	err  error
}

type fakeConn struct {
	inbound chan readResult
	done    chan struct{}

	mu        sync.Mutex
	written   []string
	failWrite func(data string) error
	closeCode websocket.StatusCode
	closed    bool
}

func newFakeConn() *fakeConn {
	return &fakeConn{
		inbound: make(chan readResult, 64),
		done:    make(chan struct{}),
	}
}

func (f *fakeConn) Read(ctx context.Context) ([]byte, error) {
	select {
	case r := <-f.inbound:
		return r.data, r.err
	case <-f.done:
		return nil, errConnClosed
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func (f *fakeConn) Write(ctx context.Context, data []byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.closed {
		return errConnClosed
	}
	if f.failWrite != nil {
		if err := f.failWrite(string(data)); err != nil {
			return err
		}
	}
	f.written = append(f.written, string(data))
	return nil
}

func (f *fakeConn) Close(code websocket.StatusCode, reason string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.closed {
		return errConnClosed
	}
	f.closed = true
	f.closeCode = code
	close(f.done)
	return nil
}

func (f *fakeConn) setFailWrite(fn func(data string) error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.failWrite = fn
}

func (f *fakeConn) push(frame string) {
	f.inbound <- readResult{data: []byte(frame)}
}

// drop makes the pending Read fail with err, as a transport failure would.
func (f *fakeConn) drop(err error) {
	f.inbound <- readResult{err: err}
}

func (f *fakeConn) writes() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, len(f.written))
	copy(out, f.written)
	return out
}

func (f *fakeConn) isClosed() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.closed
}

// fakeDialer hands out scripted results in order. Once the script runs out
// every dial succeeds with a fresh connection.
type fakeDialer struct {
	mu     sync.Mutex
	script []func(ctx context.Context) (Conn, error)
	conns  []*fakeConn
	dials  int
}

func (d *fakeDialer) Dial(ctx context.Context, url string) (Conn, error) {
	d.mu.Lock()
	d.dials++
	var step func(ctx context.Context) (Conn, error)
	if len(d.script) > 0 {
		step = d.script[0]
		d.script = d.script[1:]
	}
	d.mu.Unlock()

	if step != nil {
		return step(ctx)
	}

	conn := newFakeConn()
	d.mu.Lock()
	d.conns = append(d.conns, conn)
	d.mu.Unlock()
	return conn, nil
}

func (d *fakeDialer) then(steps ...func(ctx context.Context) (Conn, error)) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.script = append(d.script, steps...)
}

func (d *fakeDialer) dialCount() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.dials
}

func (d *fakeDialer) last() *fakeConn {
	d.mu.Lock()
	defer d.mu.Unlock()
	if len(d.conns) == 0 {
		return nil
	}
	return d.conns[len(d.conns)-1]
}

func (d *fakeDialer) connCount() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.conns)
}

// serve returns a step that hands out conn.
func (d *fakeDialer) serve(conn *fakeConn) func(ctx context.Context) (Conn, error) {
	return func(ctx context.Context) (Conn, error) {
		d.mu.Lock()
		d.conns = append(d.conns, conn)
		d.mu.Unlock()
		return conn, nil
	}
}

func failDial(err error) func(ctx context.Context) (Conn, error) {
	return func(ctx context.Context) (Conn, error) {
		return nil, err
	}
}

type recorder[T any] struct {
	mu    sync.Mutex
	items []T
}

func record[T any](c *Client, ev Event[T]) *recorder[T] {
	r := &recorder[T]{}
	On(c, ev, func(v T) {
		r.mu.Lock()
		r.items = append(r.items, v)
		r.mu.Unlock()
	})
	return r
}

func (r *recorder[T]) all() []T {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]T, len(r.items))
	copy(out, r.items)
	return out
}

func (r *recorder[T]) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.items)
}

type fakeSigner struct {
	account string
	err     error
}

func (s *fakeSigner) SignRequest(operationType string, data map[string]any) (map[string]any, error) {
	if s.err != nil {
		return nil, s.err
	}
	signed := map[string]any{
		"account":       s.account,
		"signature":     "sig-" + operationType,
		"timestamp":     1700000000000,
		"expiry_window": 30000,
	}
	for k, v := range data {
		signed[k] = v
	}
	return signed, nil
}

func (s *fakeSigner) Account() string {
	return s.account
}

type harness struct {
	client *Client
	dialer *fakeDialer
	clock  *clockwork.FakeClock
}

func newHarness(t *testing.T, opts ...ClientOption) *harness {
	t.Helper()

	h := &harness{
		dialer: &fakeDialer{},
		clock:  clockwork.NewFakeClockAt(time.Unix(1700000000, 0)),
	}
	base := []ClientOption{WithDialer(h.dialer), WithClock(h.clock)}
	h.client = NewClient(zaptest.NewLogger(t), append(base, opts...)...)
	t.Cleanup(h.client.Disconnect)
	return h
}

func (h *harness) waitState(t *testing.T, state State) {
	t.Helper()
	require.Eventually(t, func() bool {
		return h.client.State() == state
	}, time.Second, time.Millisecond, "state never became %s (now %s)", state, h.client.State())
}

// connect opens the session and returns the live connection.
func (h *harness) connect(t *testing.T) *fakeConn {
	t.Helper()
	h.client.Connect()
	h.waitState(t, StateOpen)

	conn := h.dialer.last()
	require.NotNil(t, conn)
	return conn
}

// blockUntilTimers waits until at least n timers are armed on the fake clock.
func (h *harness) blockUntilTimers(t *testing.T, n int) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	require.NoError(t, h.clock.BlockUntilContext(ctx, n), "waiting for %d timers", n)
}

// timers reports which session timers are armed.
func (h *harness) timers() (reconnect, heartbeat bool) {
	h.client.mu.RLock()
	defer h.client.mu.RUnlock()
	return h.client.reconnectTimer != nil, h.client.heartbeatTimer != nil
}

func (h *harness) requireNoTimers(t *testing.T) {
	t.Helper()
	reconnect, heartbeat := h.timers()
	require.False(t, reconnect, "reconnect timer still armed")
	require.False(t, heartbeat, "heartbeat timer still armed")
}

// expectReconnectAfter asserts the pending reconnect dials exactly delay
// after it was scheduled.
func (h *harness) expectReconnectAfter(t *testing.T, delay time.Duration) {
	t.Helper()
	h.waitState(t, StatePendingReconnect)
	h.blockUntilTimers(t, 1)
	reconnect, _ := h.timers()
	require.True(t, reconnect, "no reconnect scheduled")

	dials := h.dialer.dialCount()
	h.clock.Advance(delay - time.Nanosecond)
	require.Equal(t, dials, h.dialer.dialCount(), "reconnect fired before %s", delay)

	h.clock.Advance(time.Nanosecond)
	require.Eventually(t, func() bool {
		return h.dialer.dialCount() == dials+1
	}, time.Second, time.Millisecond, "reconnect did not fire after %s", delay)
}

// expectPingAfter asserts the heartbeat writes a ping exactly interval after
// it was armed.
func (h *harness) expectPingAfter(t *testing.T, conn *fakeConn, interval time.Duration) {
	t.Helper()
	h.blockUntilTimers(t, 1)
	_, heartbeat := h.timers()
	require.True(t, heartbeat, "no heartbeat armed")

	writes := len(conn.writes())
	h.clock.Advance(interval - time.Nanosecond)
	require.Len(t, conn.writes(), writes, "ping sent before %s", interval)

	h.clock.Advance(time.Nanosecond)
	require.Eventually(t, func() bool {
		return len(conn.writes()) == writes+1
	}, time.Second, time.Millisecond, "no ping after %s", interval)
}
