package omlflow

import (
	runtimepkg "github.com/drblury/omlflow/internal/runtime"
	configpkg "github.com/drblury/omlflow/internal/runtime/config"
	errspkg "github.com/drblury/omlflow/internal/runtime/errors"
	jsoncodec "github.com/drblury/omlflow/internal/runtime/jsoncodec"
	loggingpkg "github.com/drblury/omlflow/internal/runtime/logging"
	protocolpkg "github.com/drblury/omlflow/internal/runtime/protocol"
	transportpkg "github.com/drblury/omlflow/transport"
)

type (
	Session             = runtimepkg.Session
	SessionDependencies = runtimepkg.SessionDependencies
	SessionHooks        = runtimepkg.SessionHooks
	SessionMetrics      = runtimepkg.SessionMetrics
	MetricsSnapshot     = runtimepkg.MetricsSnapshot
	State               = runtimepkg.State

	Config        = configpkg.Config
	Endpoint      = configpkg.Endpoint
	Provider      = configpkg.Provider
	EnvProvider   = configpkg.EnvProvider
	MapProvider   = configpkg.MapProvider
	ChainProvider = configpkg.ChainProvider
	FileProvider  = configpkg.FileProvider

	LogFields     = loggingpkg.LogFields
	ServiceLogger = loggingpkg.ServiceLogger

	Schema    = protocolpkg.Schema
	Field     = protocolpkg.Field
	FieldType = protocolpkg.FieldType

	// Connection dialers
	Dialer            = transportpkg.Dialer
	DialerFunc        = transportpkg.DialerFunc
	Conn              = transportpkg.Conn
	TransportRegistry = transportpkg.Registry

	ConfigValidationError = errspkg.ConfigValidationError
)

// Session states.
const (
	StatePending   = runtimepkg.StatePending
	StateConnected = runtimepkg.StateConnected
	StateDisabled  = runtimepkg.StateDisabled
	StateClosed    = runtimepkg.StateClosed
)

// Schema field types.
const (
	TypeInt32  = protocolpkg.TypeInt32
	TypeUint32 = protocolpkg.TypeUint32
	TypeInt64  = protocolpkg.TypeInt64
	TypeUint64 = protocolpkg.TypeUint64
	TypeDouble = protocolpkg.TypeDouble
	TypeString = protocolpkg.TypeString
	TypeBlob   = protocolpkg.TypeBlob
	TypeGUID   = protocolpkg.TypeGUID
	TypeBool   = protocolpkg.TypeBool
	TypeLong   = protocolpkg.TypeLong
)

// Provider keys consulted when a Config field is empty.
const (
	EnvExperimentID = configpkg.KeyExperimentID
	EnvSenderID     = configpkg.KeySenderID
	EnvServerURI    = configpkg.KeyServerURI

	DefaultConnectTimeout = configpkg.DefaultConnectTimeout
)

var (
	NewSession        = runtimepkg.NewSession
	TryNewSession     = runtimepkg.TryNewSession
	NewSessionMetrics = runtimepkg.NewSessionMetrics

	ParseServerURI = configpkg.ParseServerURI
	ResolveConfig  = configpkg.Resolve
	LoadConfigFile = configpkg.LoadFile
	ParseConfig    = configpkg.ParseFile

	ParseSchema                  = protocolpkg.ParseSchema
	ValidateAppName              = protocolpkg.ValidateAppName
	ValidateMeasurementPointName = protocolpkg.ValidateMeasurementPointName

	DefaultTransportRegistry = transportpkg.DefaultRegistry
	RegisterDialer           = transportpkg.Register
	LookupDialer             = transportpkg.Lookup

	NewSlogServiceLogger      = loggingpkg.NewSlogServiceLogger
	NewWatermillServiceLogger = loggingpkg.NewWatermillServiceLogger
	NewNopLogger              = loggingpkg.NewNopLogger

	Marshal       = jsoncodec.Marshal
	MarshalIndent = jsoncodec.MarshalIndent
	Encode        = jsoncodec.Encode

	ErrInvalidAppName              = errspkg.ErrInvalidAppName
	ErrInvalidMeasurementPointName = errspkg.ErrInvalidMeasurementPointName
	ErrDuplicateMeasurementPoint   = errspkg.ErrDuplicateMeasurementPoint
	ErrSchemaFrozen                = errspkg.ErrSchemaFrozen
	ErrMissingExperimentID         = errspkg.ErrMissingExperimentID
	ErrMissingSenderID             = errspkg.ErrMissingSenderID
	ErrMissingServerURI            = errspkg.ErrMissingServerURI
	ErrMalformedServerURI          = errspkg.ErrMalformedServerURI
	ErrInvalidPort                 = errspkg.ErrInvalidPort
	ErrInvalidSchema               = errspkg.ErrInvalidSchema
	ErrNotStarted                  = errspkg.ErrNotStarted
	ErrUnknownMeasurementPoint     = errspkg.ErrUnknownMeasurementPoint
	ErrInvalidMeasurementList      = errspkg.ErrInvalidMeasurementList
	ErrUnsupportedValue            = errspkg.ErrUnsupportedValue
	ErrAlreadyStarted              = errspkg.ErrAlreadyStarted
	ErrSessionClosed               = errspkg.ErrSessionClosed
	ErrWriteFailed                 = errspkg.ErrWriteFailed
	ErrLineBreak                   = errspkg.ErrLineBreak
)
