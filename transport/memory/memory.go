// Package memory provides an in-process dialer that records every write.
// It is meant for tests and is never registered for a URI scheme; pass it as
// SessionDependencies.Dialer.
package memory

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/drblury/omlflow/transport"
)

// ErrClosed is returned by writes and closes on a closed Conn.
var ErrClosed = errors.New("memory: connection closed")

var (
	_ transport.Dialer = (*Dialer)(nil)
	_ transport.Conn   = (*Conn)(nil)
)

// Dialer hands out recording connections.
type Dialer struct {
	mu sync.Mutex

	// DialErr, when set, makes every Dial fail.
	DialErr error
	// WriteErr, when set, is copied into every new Conn.
	WriteErr error

	conns     []*Conn
	addresses []string
	timeouts  []time.Duration
}

// NewDialer returns a Dialer that accepts every connection.
func NewDialer() *Dialer {
	return &Dialer{}
}

// Dial records the attempt and returns a fresh Conn unless DialErr is set.
func (d *Dialer) Dial(ctx context.Context, address string, timeout time.Duration) (transport.Conn, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.addresses = append(d.addresses, address)
	d.timeouts = append(d.timeouts, timeout)
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if d.DialErr != nil {
		return nil, d.DialErr
	}
	conn := &Conn{writeErr: d.WriteErr}
	d.conns = append(d.conns, conn)
	return conn, nil
}

// Attempts returns the number of Dial calls, successful or not.
func (d *Dialer) Attempts() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.addresses)
}

// Addresses returns the dialled addresses in order.
func (d *Dialer) Addresses() []string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]string(nil), d.addresses...)
}

// Timeouts returns the connect timeouts passed to Dial in order.
func (d *Dialer) Timeouts() []time.Duration {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]time.Duration(nil), d.timeouts...)
}

// Last returns the most recently opened Conn, or nil.
func (d *Dialer) Last() *Conn {
	d.mu.Lock()
	defer d.mu.Unlock()
	if len(d.conns) == 0 {
		return nil
	}
	return d.conns[len(d.conns)-1]
}

// Conn records writes in order.
type Conn struct {
	mu       sync.Mutex
	writes   []string
	closed   bool
	writeErr error
}

func (c *Conn) Write(p []byte) (int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return 0, ErrClosed
	}
	if c.writeErr != nil {
		return 0, c.writeErr
	}
	c.writes = append(c.writes, string(p))
	return len(p), nil
}

func (c *Conn) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return ErrClosed
	}
	c.closed = true
	return nil
}

// FailWrites makes every later Write return err. A nil err heals the Conn.
func (c *Conn) FailWrites(err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.writeErr = err
}

// Writes returns each Write payload in order.
func (c *Conn) Writes() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]string(nil), c.writes...)
}

// String returns everything written so far as one string.
func (c *Conn) String() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return strings.Join(c.writes, "")
}

// Closed reports whether Close has been called.
func (c *Conn) Closed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.closed
}
