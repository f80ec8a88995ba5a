/*
Package runtime implements the OML client session behind omlflow.

# Architecture Overview

A Session owns one connection to an OML collection server. It resolves its
configuration when built, collects measurement point schemas, sends the
handshake on Start and then writes one tab-separated tuple per Inject call.
Every failure except a write on an established connection is absorbed: the
session logs it and falls back to degraded mode, where tuples are echoed to a
local writer instead.

# Package Structure

## Session (session.go, state.go)

Construction, configuration resolution, the lifecycle state machine and the
introspection accessors.

## Registration (registration.go, registry.go)

Measurement point validation and the ordered stream registry that assigns
stream ids and renders the schema lines.

## Lifecycle (lifecycle.go)

Start dials the server and sends the header; Close releases the connection.

## Emission (emitter.go)

Tuple encoding, per-stream sequence numbers and the degraded echo path.

## Observability (session_metrics.go, tracing.go, hooks.go)

Prometheus counters, OpenTelemetry spans for Start and Close, and callbacks
for dropped tuples and degradation.

# Sub-packages

  - clock/: Time source, with a fake for tests
  - config/: Explicit settings, providers and resolution
  - errors/: Sentinel errors and error types
  - ids/: ULID session identifiers
  - jsoncodec/: JSON encoding of metrics snapshots
  - logging/: Logger interface and adapters
  - protocol/: OML text protocol encoding

# Usage Example

	session := omlflow.NewSession(omlflow.Config{AppName: "sensor1"}, logger, omlflow.SessionDependencies{})
	_ = session.Register("power", "value:double")
	_ = session.Start(ctx)
	defer session.Close()

	_ = session.Emit("power", 3.14)
*/
package runtime
