package runtime

import (
	"bytes"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/drblury/omlflow/internal/runtime/clock"
	configpkg "github.com/drblury/omlflow/internal/runtime/config"
	loggingpkg "github.com/drblury/omlflow/internal/runtime/logging"
	"github.com/drblury/omlflow/transport/memory"
)

var testEpoch = time.Unix(1700000000, 0)

type loggedEntry struct {
	level  string
	msg    string
	fields loggingpkg.LogFields
	err    error
}

type logRecorder struct {
	mu   sync.Mutex
	logs []loggedEntry
}

// recordingLogger captures every log call, including those of derived loggers.
type recordingLogger struct {
	recorder *logRecorder
	fields   loggingpkg.LogFields
}

func newRecordingLogger() *recordingLogger {
	return &recordingLogger{recorder: &logRecorder{}}
}

func (l *recordingLogger) With(fields loggingpkg.LogFields) loggingpkg.ServiceLogger {
	merged := loggingpkg.LogFields{}
	for k, v := range l.fields {
		merged[k] = v
	}
	for k, v := range fields {
		merged[k] = v
	}
	return &recordingLogger{recorder: l.recorder, fields: merged}
}

func (l *recordingLogger) Debug(msg string, fields loggingpkg.LogFields) {
	l.record("debug", msg, nil, fields)
}

func (l *recordingLogger) Info(msg string, fields loggingpkg.LogFields) {
	l.record("info", msg, nil, fields)
}

func (l *recordingLogger) Error(msg string, err error, fields loggingpkg.LogFields) {
	l.record("error", msg, err, fields)
}

func (l *recordingLogger) Trace(msg string, fields loggingpkg.LogFields) {
	l.record("trace", msg, nil, fields)
}

func (l *recordingLogger) record(level, msg string, err error, fields loggingpkg.LogFields) {
	merged := loggingpkg.LogFields{}
	for k, v := range l.fields {
		merged[k] = v
	}
	for k, v := range fields {
		merged[k] = v
	}
	l.recorder.mu.Lock()
	defer l.recorder.mu.Unlock()
	l.recorder.logs = append(l.recorder.logs, loggedEntry{level: level, msg: msg, fields: merged, err: err})
}

func (l *recordingLogger) messages(level string) []string {
	l.recorder.mu.Lock()
	defer l.recorder.mu.Unlock()
	var out []string
	for _, entry := range l.recorder.logs {
		if entry.level == level {
			out = append(out, entry.msg)
		}
	}
	return out
}

type sessionFixture struct {
	session *Session
	dialer  *memory.Dialer
	clock   *clock.FakeClock
	echo    *bytes.Buffer
	logger  *recordingLogger
	metrics *SessionMetrics
}

func validConfig(app string) configpkg.Config {
	return configpkg.Config{
		AppName:      app,
		ExperimentID: "exp1",
		SenderID:     "node1",
		ServerURI:    "tcp:localhost:3003",
	}
}

func newFixture(t *testing.T, cfg configpkg.Config) *sessionFixture {
	t.Helper()
	return newFixtureWithHooks(t, cfg, SessionHooks{})
}

func newFixtureWithHooks(t *testing.T, cfg configpkg.Config, hooks SessionHooks) *sessionFixture {
	t.Helper()
	f := &sessionFixture{
		dialer:  memory.NewDialer(),
		clock:   clock.Fake(testEpoch),
		echo:    &bytes.Buffer{},
		logger:  newRecordingLogger(),
		metrics: NewSessionMetrics(prometheus.NewRegistry()),
	}
	f.session = NewSession(cfg, f.logger, SessionDependencies{
		Provider: configpkg.MapProvider(nil),
		Dialer:   f.dialer,
		Echo:     f.echo,
		Clock:    f.clock,
		Metrics:  f.metrics,
		Hooks:    hooks,
	})
	return f
}

// writes returns what the last connection received, or nil when none was opened.
func (f *sessionFixture) writes() []string {
	conn := f.dialer.Last()
	if conn == nil {
		return nil
	}
	return conn.Writes()
}
