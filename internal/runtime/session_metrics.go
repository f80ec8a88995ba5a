package runtime

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/drblury/omlflow/internal/runtime/jsoncodec"
)

// Drop and degrade reasons used as metric labels.
const (
	reasonUnknownMP    = "unknown_mp"
	reasonInvalidList  = "invalid_values"
	reasonNotStarted   = "not_started"
	reasonConfig       = "config"
	reasonInvalidName  = "invalid_mp_name"
	reasonConnect      = "connect"
	reasonHandshake    = "handshake"
	reasonWriteFailure = "write_failed"
)

// SessionMetrics tracks what a session sent, echoed and dropped. A nil
// *SessionMetrics is valid and records nothing.
type SessionMetrics struct {
	mu sync.Mutex

	tuplesSent    *prometheus.CounterVec
	tuplesDropped *prometheus.CounterVec
	tuplesEchoed  *prometheus.CounterVec
	bytesSent     *prometheus.CounterVec
	handshakes    *prometheus.CounterVec
	degradations  *prometheus.CounterVec

	snapshot MetricsSnapshot

	registerer prometheus.Registerer
	registered bool
}

// MetricsSnapshot is a point-in-time copy of the counters of every session
// sharing one SessionMetrics.
type MetricsSnapshot struct {
	TuplesSent        uint64            `json:"tuples_sent"`
	TuplesEchoed      uint64            `json:"tuples_echoed"`
	TuplesDropped     map[string]uint64 `json:"tuples_dropped"`
	BytesSent         uint64            `json:"bytes_sent"`
	Handshakes        uint64            `json:"handshakes"`
	HandshakeFailures uint64            `json:"handshake_failures"`
	Degradations      map[string]uint64 `json:"degradations"`
	CollectedAt       time.Time         `json:"collected_at"`
}

// JSON encodes the snapshot.
func (s MetricsSnapshot) JSON() ([]byte, error) {
	return jsoncodec.Marshal(s)
}

func newClientCounterVec(name, help string, labels []string) *prometheus.CounterVec {
	return prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "oml",
			Subsystem: "client",
			Name:      name,
			Help:      help,
		},
		labels,
	)
}

// NewSessionMetrics creates the collectors. They are not registered until
// Register is called. A nil registerer selects prometheus.DefaultRegisterer.
func NewSessionMetrics(registerer prometheus.Registerer) *SessionMetrics {
	if registerer == nil {
		registerer = prometheus.DefaultRegisterer
	}

	return &SessionMetrics{
		registerer:    registerer,
		tuplesSent:    newClientCounterVec("tuples_sent_total", "Tuples written to the collection server", []string{"app", "mp"}),
		tuplesDropped: newClientCounterVec("tuples_dropped_total", "Tuples discarded before reaching any sink", []string{"app", "reason"}),
		tuplesEchoed:  newClientCounterVec("tuples_echoed_total", "Tuples printed locally because the session is degraded", []string{"app"}),
		bytesSent:     newClientCounterVec("bytes_sent_total", "Bytes written to the collection server, header included", []string{"app"}),
		handshakes:    newClientCounterVec("handshakes_total", "Session start attempts by result", []string{"app", "result"}),
		degradations:  newClientCounterVec("degradations_total", "Sessions switched to degraded mode by cause", []string{"app", "cause"}),
		snapshot: MetricsSnapshot{
			TuplesDropped: make(map[string]uint64),
			Degradations:  make(map[string]uint64),
		},
	}
}

// Register registers the Prometheus collectors. Safe to call multiple times.
func (m *SessionMetrics) Register() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.registered {
		return nil
	}

	collectors := []prometheus.Collector{
		m.tuplesSent,
		m.tuplesDropped,
		m.tuplesEchoed,
		m.bytesSent,
		m.handshakes,
		m.degradations,
	}
	for _, c := range collectors {
		if err := m.registerer.Register(c); err != nil {
			if _, ok := err.(prometheus.AlreadyRegisteredError); !ok {
				return err
			}
		}
	}

	m.registered = true
	return nil
}

func (m *SessionMetrics) recordSent(app, mp string, bytes int) {
	if m == nil {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.tuplesSent.WithLabelValues(app, mp).Inc()
	m.bytesSent.WithLabelValues(app).Add(float64(bytes))
	m.snapshot.TuplesSent++
	m.snapshot.BytesSent += uint64(bytes)
}

func (m *SessionMetrics) recordEchoed(app string) {
	if m == nil {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.tuplesEchoed.WithLabelValues(app).Inc()
	m.snapshot.TuplesEchoed++
}

func (m *SessionMetrics) recordDropped(app, reason string) {
	if m == nil {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.tuplesDropped.WithLabelValues(app, reason).Inc()
	m.snapshot.TuplesDropped[reason]++
}

func (m *SessionMetrics) recordHandshake(app string, bytes int, err error) {
	if m == nil {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if err != nil {
		m.handshakes.WithLabelValues(app, "failed").Inc()
		m.snapshot.HandshakeFailures++
		return
	}
	m.handshakes.WithLabelValues(app, "ok").Inc()
	m.bytesSent.WithLabelValues(app).Add(float64(bytes))
	m.snapshot.Handshakes++
	m.snapshot.BytesSent += uint64(bytes)
}

func (m *SessionMetrics) recordDegraded(app, cause string) {
	if m == nil {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.degradations.WithLabelValues(app, cause).Inc()
	m.snapshot.Degradations[cause]++
}

// Snapshot returns a copy of the counters.
func (m *SessionMetrics) Snapshot() MetricsSnapshot {
	if m == nil {
		return MetricsSnapshot{CollectedAt: time.Now()}
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	out := m.snapshot
	out.TuplesDropped = make(map[string]uint64, len(m.snapshot.TuplesDropped))
	for k, v := range m.snapshot.TuplesDropped {
		out.TuplesDropped[k] = v
	}
	out.Degradations = make(map[string]uint64, len(m.snapshot.Degradations))
	for k, v := range m.snapshot.Degradations {
		out.Degradations[k] = v
	}
	out.CollectedAt = time.Now()
	return out
}
