// Package transports imports all built-in dialers for auto-registration.
// Import this package to have every scheme registered with the default registry.
package transports

import (
	// Import all dialers for side-effect registration
	_ "github.com/drblury/omlflow/transport/tcp"
)
