package runtime

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"

	errspkg "github.com/drblury/omlflow/internal/runtime/errors"
	loggingpkg "github.com/drblury/omlflow/internal/runtime/logging"
)

// Start connects to the collection server and sends the handshake. Connect
// and handshake failures disable the session and are only logged; Start then
// returns nil. On a disabled session Start just logs that collection is off.
//
// Starting a connected session returns ErrAlreadyStarted and sends nothing.
func (s *Session) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch s.state {
	case StateDisabled:
		s.logger.Info("measurement collection disabled", nil)
		return nil
	case StateConnected:
		return errspkg.ErrAlreadyStarted
	case StateClosed:
		return errspkg.ErrSessionClosed
	}

	address := s.cfg.Endpoint.Address()
	fields := loggingpkg.LogFields{"server": s.cfg.Endpoint.String()}
	ctx, span := s.startSpan(ctx, "oml.session.start",
		attribute.String("oml.server", s.cfg.Endpoint.String()),
		attribute.Int("oml.streams", s.streams.len()),
	)
	defer span.End()

	conn, err := s.dialer.Dial(ctx, address, s.cfg.ConnectTimeout)
	if err != nil {
		err = fmt.Errorf("connect %s: %w", address, err)
		failSpan(span, err)
		s.metrics.recordHandshake(s.cfg.AppName, 0, err)
		s.disableLocked(err, reasonConnect, "connect to collection server failed", fields)
		return nil
	}

	s.startEpoch = s.clock.Now().Unix()
	header := s.headerLocked(s.startEpoch)
	if _, err := conn.Write([]byte(header)); err != nil {
		err = fmt.Errorf("send header to %s: %w", address, err)
		failSpan(span, err)
		s.metrics.recordHandshake(s.cfg.AppName, 0, err)
		s.conn = conn
		s.disableLocked(err, reasonHandshake, "handshake with collection server failed", fields)
		return nil
	}

	s.conn = conn
	s.started = true
	s.state = StateConnected
	s.metrics.recordHandshake(s.cfg.AppName, len(header), nil)
	span.SetAttributes(attribute.Int64("oml.start_time", s.startEpoch))

	fields["start_time"] = s.startEpoch
	fields["streams"] = s.streams.len()
	s.logger.Info("connected to collection server", fields)
	return nil
}

// Close ends the session by closing the connection; the server sees no other
// end-of-session marker. Closing a disabled session is a no-op. A second Close
// returns ErrSessionClosed.
func (s *Session) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch s.state {
	case StateDisabled:
		return nil
	case StateClosed:
		return errspkg.ErrSessionClosed
	case StatePending:
		s.state = StateClosed
		s.logger.Debug("session closed before start", nil)
		return nil
	}

	_, span := s.startSpan(context.Background(), "oml.session.close")
	defer span.End()

	err := s.conn.Close()
	s.conn = nil
	s.state = StateClosed
	if err != nil {
		failSpan(span, err)
		s.logger.Error("closing connection failed", err, nil)
		return err
	}
	s.logger.Info("session closed", loggingpkg.LogFields{"streams": s.streams.len()})
	return nil
}
