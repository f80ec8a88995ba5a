// Package transport defines how a session reaches its collection server: a
// Dialer opens a Conn, a reliable ordered byte stream that the session only
// ever writes to and closes. Dialers register under a URI scheme so that
// "tcp:host:port" style server URIs can pick their implementation.
package transport

import (
	"context"
	"io"
	"time"
)

// Conn is an open, writable byte stream. The session issues every header and
// tuple as one Write call.
type Conn interface {
	io.Writer
	io.Closer
}

// Dialer opens connections. timeout bounds the connect only; the returned
// Conn must not carry a write deadline.
type Dialer interface {
	Dial(ctx context.Context, address string, timeout time.Duration) (Conn, error)
}

// DialerFunc adapts a plain function to Dialer.
type DialerFunc func(ctx context.Context, address string, timeout time.Duration) (Conn, error)

func (f DialerFunc) Dial(ctx context.Context, address string, timeout time.Duration) (Conn, error) {
	return f(ctx, address, timeout)
}
