package runtime

import (
	"strings"

	"github.com/drblury/omlflow/internal/runtime/protocol"
)

type stream struct {
	name       string
	descriptor string
	id         int
	next       uint64
}

// streamRegistry keeps measurement points in registration order. Stream ids
// are dense and 1-based and are never reassigned.
type streamRegistry struct {
	byName map[string]*stream
	order  []*stream
}

func newStreamRegistry() *streamRegistry {
	return &streamRegistry{byName: make(map[string]*stream)}
}

func (r *streamRegistry) add(name, descriptor string) *stream {
	st := &stream{name: name, descriptor: descriptor, id: len(r.order) + 1}
	r.byName[name] = st
	r.order = append(r.order, st)
	return st
}

func (r *streamRegistry) get(name string) (*stream, bool) {
	st, ok := r.byName[name]
	return st, ok
}

func (r *streamRegistry) len() int {
	return len(r.order)
}

func (r *streamRegistry) names() []string {
	names := make([]string, len(r.order))
	for i, st := range r.order {
		names[i] = st.name
	}
	return names
}

func (r *streamRegistry) schemaLines(appName string) []string {
	lines := make([]string, len(r.order))
	for i, st := range r.order {
		lines[i] = protocol.SchemaLine(st.id, appName, st.name, st.descriptor)
	}
	return lines
}

// schemaBlock joins the schema lines with newlines, without a trailing one.
func (r *streamRegistry) schemaBlock(appName string) string {
	return strings.Join(r.schemaLines(appName), "\n")
}
