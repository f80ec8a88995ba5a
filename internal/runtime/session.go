package runtime

import (
	"errors"
	"io"
	"log/slog"
	"os"
	"sync"

	"go.opentelemetry.io/otel/trace"

	"github.com/drblury/omlflow/internal/runtime/clock"
	configpkg "github.com/drblury/omlflow/internal/runtime/config"
	errspkg "github.com/drblury/omlflow/internal/runtime/errors"
	"github.com/drblury/omlflow/internal/runtime/ids"
	loggingpkg "github.com/drblury/omlflow/internal/runtime/logging"
	"github.com/drblury/omlflow/internal/runtime/protocol"
	"github.com/drblury/omlflow/transport"
	"github.com/drblury/omlflow/transport/tcp"
)

// SessionDependencies holds the optional collaborators of a Session. Leave
// fields nil to get the defaults.
type SessionDependencies struct {
	// Provider resolves settings missing from Config. Defaults to the process
	// environment.
	Provider configpkg.Provider
	// Dialer opens the connection. Defaults to the dialer registered for the
	// server URI scheme, or TCP when none is.
	Dialer transport.Dialer
	// Echo receives the tuple lines of a degraded session. Defaults to stdout.
	Echo io.Writer
	// Clock supplies the start epoch and tuple timestamps.
	Clock clock.Clock
	// Metrics records counters; nil records nothing.
	Metrics *SessionMetrics
	// Hooks observe absorbed failures.
	Hooks SessionHooks
	// TracerProvider creates the session tracer. Defaults to the global one.
	TracerProvider trace.TracerProvider
}

// Session is one client connection to an OML collection server, from
// construction through handshake and tuple streaming to close. All methods
// are safe for concurrent use; each holds the session lock for its whole
// duration, including the network write.
type Session struct {
	mu sync.Mutex

	id      string
	cfg     configpkg.Resolved
	logger  loggingpkg.ServiceLogger
	echo    io.Writer
	clock   clock.Clock
	dialer  transport.Dialer
	metrics *SessionMetrics
	hooks   SessionHooks
	tracer  trace.Tracer

	state      State
	reason     error
	streams    *streamRegistry
	startEpoch int64
	started    bool
	conn       transport.Conn
}

// NewSession builds a session. It never fails: when the configuration cannot
// be resolved the session starts out disabled and only echoes tuples locally.
// A nil logger logs through slog.Default.
func NewSession(cfg configpkg.Config, log loggingpkg.ServiceLogger, deps SessionDependencies) *Session {
	s := newSession(cfg, log, deps)
	resolved, err := configpkg.Resolve(cfg, s.provider(deps))
	s.cfg = resolved
	if err != nil {
		msg := "configuration incomplete"
		if errors.Is(err, errspkg.ErrInvalidAppName) {
			msg = "invalid application name"
		}
		s.disableLocked(err, reasonConfig, msg, nil)
		return s
	}
	s.dialer = s.resolveDialer(deps.Dialer)
	s.logger.Debug("session configured", loggingpkg.LogFields{"config": resolved.String()})
	return s
}

// TryNewSession is the strict variant of NewSession: it returns the
// configuration error instead of a degraded session.
func TryNewSession(cfg configpkg.Config, log loggingpkg.ServiceLogger, deps SessionDependencies) (*Session, error) {
	s := newSession(cfg, log, deps)
	resolved, err := configpkg.Resolve(cfg, s.provider(deps))
	if err != nil {
		return nil, err
	}
	s.cfg = resolved
	s.dialer = s.resolveDialer(deps.Dialer)
	return s, nil
}

func newSession(cfg configpkg.Config, log loggingpkg.ServiceLogger, deps SessionDependencies) *Session {
	if log == nil {
		log = loggingpkg.NewSlogServiceLogger(slog.Default())
	}
	c := deps.Clock
	if c == nil {
		c = clock.Real()
	}
	echo := deps.Echo
	if echo == nil {
		echo = os.Stdout
	}

	id := ids.NewSessionID(c.Now())
	return &Session{
		id:      id,
		cfg:     configpkg.Resolved{AppName: cfg.AppName},
		logger:  log.With(loggingpkg.LogFields{"session_id": id, "app": cfg.AppName}),
		echo:    echo,
		clock:   c,
		metrics: deps.Metrics,
		hooks:   deps.Hooks,
		tracer:  newTracer(deps.TracerProvider),
		state:   StatePending,
		streams: newStreamRegistry(),
	}
}

func (s *Session) provider(deps SessionDependencies) configpkg.Provider {
	if deps.Provider != nil {
		return deps.Provider
	}
	return configpkg.EnvProvider{}
}

func (s *Session) resolveDialer(explicit transport.Dialer) transport.Dialer {
	if explicit != nil {
		return explicit
	}
	scheme := s.cfg.Endpoint.Scheme
	if d, ok := transport.Lookup(scheme); ok {
		return d
	}
	s.logger.Debug("no dialer for scheme, using tcp", loggingpkg.LogFields{"scheme": scheme})
	return tcp.Dialer{}
}

// disableLocked moves the session to StateDisabled and releases any open
// connection. It is a no-op on an already disabled session.
func (s *Session) disableLocked(reason error, cause, msg string, fields loggingpkg.LogFields) {
	if s.state == StateDisabled {
		return
	}
	previous := s.state
	if s.conn != nil {
		if err := s.conn.Close(); err != nil {
			s.logger.Debug("closing connection of disabled session failed", loggingpkg.LogFields{"error": err.Error()})
		}
		s.conn = nil
	}
	s.state = StateDisabled
	s.reason = reason

	s.logger.Error(msg, reason, fields)
	s.logger.Info("measurement collection disabled", loggingpkg.LogFields{"previous_state": previous.String()})
	s.metrics.recordDegraded(s.cfg.AppName, cause)
	s.hooks.degraded(reason)
}

// ID returns the session identifier used in logs and traces.
func (s *Session) ID() string {
	return s.id
}

// AppName returns the application name the session was built with.
func (s *Session) AppName() string {
	return s.cfg.AppName
}

// State returns the current lifecycle state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Enabled reports whether the session still targets the network. It turns
// false exactly once and never back.
func (s *Session) Enabled() bool {
	return s.State() != StateDisabled
}

// Err returns why the session was disabled, or nil.
func (s *Session) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.reason
}

// StreamID returns the stream id assigned to a measurement point.
func (s *Session) StreamID(mp string) (int, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	st, ok := s.streams.get(mp)
	if !ok {
		return 0, false
	}
	return st.id, true
}

// NextSequence returns the sequence number the next tuple of mp will carry.
func (s *Session) NextSequence(mp string) (uint64, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	st, ok := s.streams.get(mp)
	if !ok {
		return 0, false
	}
	return st.next, true
}

// MeasurementPoints returns the registered names in stream id order.
func (s *Session) MeasurementPoints() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.streams.names()
}

// SchemaBlock returns the "schema:" lines declared so far, newline-separated.
func (s *Session) SchemaBlock() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.streams.schemaBlock(s.cfg.AppName)
}

// StartEpoch returns the Unix second the handshake announced, and false unless
// the handshake was written successfully.
func (s *Session) StartEpoch() (int64, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.started {
		return 0, false
	}
	return s.startEpoch, true
}

// Metrics returns a snapshot of the session's metrics collector.
func (s *Session) Metrics() MetricsSnapshot {
	return s.metrics.Snapshot()
}

// Header renders the handshake the session sends (or would send) with the
// given start time.
func (s *Session) Header(startTime int64) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.headerLocked(startTime)
}

func (s *Session) headerLocked(startTime int64) string {
	return protocol.Header{
		ExperimentID: s.cfg.ExperimentID,
		StartTime:    startTime,
		SenderID:     s.cfg.SenderID,
		AppName:      s.cfg.AppName,
		SchemaLines:  s.streams.schemaLines(s.cfg.AppName),
	}.Format()
}
