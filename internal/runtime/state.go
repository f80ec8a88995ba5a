package runtime

// State is the lifecycle position of a Session.
//
//	Pending ──Start ok──▶ Connected ──Close──▶ Closed
//	   │                      │
//	   └──────failure─────────┴──▶ Disabled (absorbing)
//
// A session whose configuration does not resolve begins in Disabled.
type State int

const (
	// StatePending is an enabled session that has not sent its handshake yet.
	StatePending State = iota
	// StateConnected has sent the handshake and streams tuples to the server.
	StateConnected
	// StateDisabled echoes tuples to the local sink. No operation leaves it.
	StateDisabled
	// StateClosed has released its connection.
	StateClosed
)

func (s State) String() string {
	switch s {
	case StatePending:
		return "pending"
	case StateConnected:
		return "connected"
	case StateDisabled:
		return "disabled"
	case StateClosed:
		return "closed"
	default:
		return "unknown"
	}
}
