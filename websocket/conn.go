package websocket

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/coder/websocket"
)

// Conn is one physical duplex connection.
type Conn interface {
	Read(ctx context.Context) ([]byte, error)
	Write(ctx context.Context, data []byte) error
	Close(code websocket.StatusCode, reason string) error
}

type Dialer interface {
	Dial(ctx context.Context, url string) (Conn, error)
}

// DialerFunc adapts a function to Dialer.
type DialerFunc func(ctx context.Context, url string) (Conn, error)

func (f DialerFunc) Dial(ctx context.Context, url string) (Conn, error) {
	return f(ctx, url)
}

type coderDialer struct {
	header    http.Header
	readLimit int64
}

func (d *coderDialer) Dial(ctx context.Context, url string) (Conn, error) {
	conn, _, err := websocket.Dial(ctx, url, &websocket.DialOptions{HTTPHeader: d.header})
	if err != nil {
		return nil, fmt.Errorf("dial %s: %w", url, err)
	}
	if d.readLimit > 0 {
		conn.SetReadLimit(d.readLimit)
	}
	return &coderConn{conn: conn}, nil
}

type coderConn struct {
	conn *websocket.Conn
}

func (c *coderConn) Read(ctx context.Context) ([]byte, error) {
	_, data, err := c.conn.Read(ctx)
	return data, err
}

func (c *coderConn) Write(ctx context.Context, data []byte) error {
	return c.conn.Write(ctx, websocket.MessageText, data)
}

func (c *coderConn) Close(code websocket.StatusCode, reason string) error {
	return c.conn.Close(code, reason)
}

// closeDetails extracts the close code and reason from a read error. Errors
// that did not come from a close frame map to 1006.
func closeDetails(err error) (websocket.StatusCode, string, bool) {
	var closeErr websocket.CloseError
	if errors.As(err, &closeErr) {
		return closeErr.Code, closeErr.Reason, true
	}
	return websocket.StatusAbnormalClosure, err.Error(), false
}
