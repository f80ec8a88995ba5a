// Package omlflow is a client for the OML measurement collection protocol. An
// instrumented application opens one Session, declares its measurement points
// with their schemas, sends a handshake to the collection server and then
// streams one text tuple per measurement.
//
// The library never interrupts the host application for configuration or
// connectivity problems. A Session whose settings are incomplete, whose names
// are invalid or whose server cannot be reached switches permanently to
// degraded mode: tuples are echoed to a local writer (stdout by default) and
// the problem is reported through the ServiceLogger. Only write failures on an
// established connection are returned to the caller, wrapped in
// ErrWriteFailed.
//
// Settings missing from Config are looked up through a Provider. The default
// reads OML_EXP_ID, OML_NAME and OML_SERVER from the environment; MapProvider,
// FileProvider (YAML) and ChainProvider cover tests and config files.
//
// # Transports
//
// The server URI has the form scheme:host:port. The scheme selects a Dialer
// from the transport registry; tcp is built in and also serves as the
// fallback. RegisterDialer adds schemes, and SessionDependencies.Dialer
// bypasses the registry. transport/memory records writes in process and is
// only ever passed explicitly, from tests.
//
// # Observability
//
// SessionMetrics exposes Prometheus counters for sent, echoed and dropped
// tuples and for handshakes. Start and Close are traced with OpenTelemetry.
// SessionHooks report dropped tuples and degradation to application code.
package omlflow
