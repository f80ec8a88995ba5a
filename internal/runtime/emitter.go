package runtime

import (
	"fmt"
	"io"
	"time"

	errspkg "github.com/drblury/omlflow/internal/runtime/errors"
	loggingpkg "github.com/drblury/omlflow/internal/runtime/logging"
	"github.com/drblury/omlflow/internal/runtime/protocol"
)

// Emit sends one tuple for mp. It is Inject with the values spelled out.
func (s *Session) Emit(mp string, values ...any) error {
	return s.Inject(mp, values)
}

// Inject sends one tuple for mp. values must be a slice or array of scalars.
//
// On a connected session the tuple goes to the server and the stream's
// sequence number advances by one. Unknown measurement points and invalid
// value lists are logged and dropped. Injecting before Start disables the
// session. On a disabled session the tuple is echoed to the local sink
// instead.
//
// The only errors returned are write failures on the connection, wrapped in
// ErrWriteFailed, and ErrSessionClosed after Close.
func (s *Session) Inject(mp string, values any) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch s.state {
	case StateClosed:
		return errspkg.ErrSessionClosed
	case StateDisabled:
		s.echoLocked(mp, values)
		return nil
	case StatePending:
		s.metrics.recordDropped(s.cfg.AppName, reasonNotStarted)
		s.hooks.dropped(mp, errspkg.ErrNotStarted)
		s.disableLocked(errspkg.ErrNotStarted, reasonNotStarted, "inject called before start", loggingpkg.LogFields{"mp": mp})
		return nil
	}

	st, ok := s.streams.get(mp)
	if !ok {
		s.dropLocked(mp, errspkg.ErrUnknownMeasurementPoint, reasonUnknownMP, "tried to inject into unknown measurement point")
		return nil
	}
	encoded, err := protocol.EncodeValues(values)
	if err != nil {
		s.dropLocked(mp, err, reasonInvalidList, "invalid measurement list")
		return nil
	}

	line := protocol.FormatTuple(s.elapsedLocked(), st.id, st.next, encoded)
	if _, err := io.WriteString(s.conn, line); err != nil {
		s.metrics.recordDropped(s.cfg.AppName, reasonWriteFailure)
		return fmt.Errorf("%w: %s seq %d: %w", errspkg.ErrWriteFailed, mp, st.next, err)
	}
	st.next++
	s.metrics.recordSent(s.cfg.AppName, mp, len(line))
	return nil
}

// echoLocked prints the degraded form of a tuple. The measurement point is
// not resolved, so unknown names are echoed too.
func (s *Session) echoLocked(mp string, values any) {
	encoded, err := protocol.EncodeValues(values)
	if err != nil {
		s.dropLocked(mp, err, reasonInvalidList, "invalid measurement list")
		return
	}
	if _, err := io.WriteString(s.echo, protocol.FormatEcho(s.elapsedLocked(), encoded)); err != nil {
		s.logger.Debug("echo write failed", loggingpkg.LogFields{"error": err.Error()})
		return
	}
	s.metrics.recordEchoed(s.cfg.AppName)
}

func (s *Session) dropLocked(mp string, reason error, label, msg string) {
	s.logger.Error(msg, reason, loggingpkg.LogFields{"mp": mp})
	s.metrics.recordDropped(s.cfg.AppName, label)
	s.hooks.dropped(mp, reason)
}

// elapsedLocked returns seconds since the start epoch. Before a handshake the
// epoch is zero, so degraded timestamps are then absolute Unix times.
func (s *Session) elapsedLocked() float64 {
	return s.clock.Now().Sub(time.Unix(s.startEpoch, 0)).Seconds()
}
