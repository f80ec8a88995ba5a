package errors

import (
	sterrors "errors"
	"fmt"
)

var (
	ErrInvalidAppName              = sterrors.New("omlflow: invalid application name")
	ErrInvalidMeasurementPointName = sterrors.New("omlflow: invalid measurement point name")
	ErrDuplicateMeasurementPoint   = sterrors.New("omlflow: measurement point already registered")
	ErrSchemaFrozen                = sterrors.New("omlflow: schema already declared to the server")
	ErrMissingExperimentID         = sterrors.New("omlflow: experiment id is required")
	ErrMissingSenderID             = sterrors.New("omlflow: sender id is required")
	ErrMissingServerURI            = sterrors.New("omlflow: server URI is required")
	ErrMalformedServerURI          = sterrors.New("omlflow: server URI must be scheme:host:port")
	ErrInvalidPort                 = sterrors.New("omlflow: server port must be an integer in 1..65535")
	ErrInvalidSchema               = sterrors.New("omlflow: invalid schema descriptor")
	ErrNotStarted                  = sterrors.New("omlflow: session was not started")
	ErrUnknownMeasurementPoint     = sterrors.New("omlflow: unknown measurement point")
	ErrInvalidMeasurementList      = sterrors.New("omlflow: invalid measurement list")
	ErrUnsupportedValue            = sterrors.New("omlflow: value cannot be serialised")
	ErrAlreadyStarted              = sterrors.New("omlflow: session already started")
	ErrSessionClosed               = sterrors.New("omlflow: session is closed")
	ErrWriteFailed                 = sterrors.New("omlflow: write to collection server failed")
	ErrLineBreak                   = sterrors.New("omlflow: header field contains a line break")
)

// ConfigValidationError marks a configuration that cannot produce a networked
// session. The wrapped error usually joins several problems.
type ConfigValidationError struct {
	Err error
}

func (e ConfigValidationError) Error() string {
	return fmt.Sprintf("omlflow: invalid configuration: %v", e.Err)
}

func (e ConfigValidationError) Unwrap() error {
	return e.Err
}

// NewConfigValidationError wraps err, returning nil when err is nil.
func NewConfigValidationError(err error) error {
	if err == nil {
		return nil
	}
	return ConfigValidationError{Err: err}
}
