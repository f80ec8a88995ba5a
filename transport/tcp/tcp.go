// Package tcp provides the stream socket dialer used to reach an OML
// collection server.
package tcp

import (
	"context"
	"net"
	"time"

	"github.com/drblury/omlflow/transport"
)

// Scheme is the URI scheme this dialer registers under.
const Scheme = "tcp"

// Compile-time interface check.
var _ transport.Dialer = Dialer{}

func init() {
	transport.Register(Scheme, Dialer{})
}

// Dialer opens TCP connections. The connect is bounded by the timeout passed
// to Dial; once connected, writes block without a deadline.
type Dialer struct {
	// KeepAlive is handed to net.Dialer. Zero enables Go's default keep-alive.
	KeepAlive time.Duration
}

// Dial connects to address ("host:port").
func (d Dialer) Dial(ctx context.Context, address string, timeout time.Duration) (transport.Conn, error) {
	nd := net.Dialer{Timeout: timeout, KeepAlive: d.KeepAlive}
	conn, err := nd.DialContext(ctx, "tcp", address)
	if err != nil {
		return nil, err
	}
	if err := conn.SetDeadline(time.Time{}); err != nil {
		conn.Close()
		return nil, err
	}
	return conn, nil
}
