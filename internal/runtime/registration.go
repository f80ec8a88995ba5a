package runtime

import (
	"fmt"

	errspkg "github.com/drblury/omlflow/internal/runtime/errors"
	loggingpkg "github.com/drblury/omlflow/internal/runtime/logging"
	"github.com/drblury/omlflow/internal/runtime/protocol"
)

// Register declares a measurement point and its schema descriptor, for example
// "value:double unit:string". The descriptor is copied into the handshake
// verbatim. Stream ids are assigned 1, 2, 3... in registration order.
//
// On a disabled session Register does nothing and returns nil. An invalid
// name disables the session; the returned error only says why. Duplicate
// names, descriptors containing line breaks and registrations after Start are
// rejected without changing state.
func (s *Session) Register(mp, descriptor string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch s.state {
	case StateDisabled:
		return nil
	case StateClosed:
		return errspkg.ErrSessionClosed
	}

	fields := loggingpkg.LogFields{"mp": mp}
	if err := protocol.ValidateMeasurementPointName(mp); err != nil {
		s.disableLocked(err, reasonInvalidName, "invalid measurement point name", fields)
		return err
	}
	if err := protocol.CheckHeaderValue("schema descriptor", descriptor); err != nil {
		err = fmt.Errorf("%w: %w", errspkg.ErrInvalidSchema, err)
		s.logger.Error("invalid schema descriptor", err, fields)
		return err
	}
	if s.state == StateConnected {
		s.logger.Error("measurement point registered after start", errspkg.ErrSchemaFrozen, fields)
		return fmt.Errorf("%w: %q", errspkg.ErrSchemaFrozen, mp)
	}
	if st, dup := s.streams.get(mp); dup {
		fields["stream_id"] = st.id
		s.logger.Error("measurement point registered twice", errspkg.ErrDuplicateMeasurementPoint, fields)
		return fmt.Errorf("%w: %q", errspkg.ErrDuplicateMeasurementPoint, mp)
	}

	st := s.streams.add(mp, descriptor)
	fields["stream_id"] = st.id
	fields["schema"] = descriptor
	s.logger.Debug("measurement point registered", fields)
	return nil
}

// RegisterSchema registers mp with a typed schema. The schema is validated
// first; an invalid schema is rejected without changing the session.
func (s *Session) RegisterSchema(mp string, schema protocol.Schema) error {
	if err := schema.Validate(); err != nil {
		s.logger.Error("invalid schema", err, loggingpkg.LogFields{"mp": mp})
		return err
	}
	return s.Register(mp, schema.String())
}
