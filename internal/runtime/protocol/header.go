package protocol

import (
	"strconv"
	"strings"
)

// Version is the text protocol revision announced in the header.
const Version = 1

// Header carries everything announced once, right after connecting.
type Header struct {
	ExperimentID string
	StartTime    int64
	SenderID     string
	AppName      string
	// SchemaLines are "schema:" lines in stream id order, without newlines.
	SchemaLines []string
}

// Format renders the header. It always ends with exactly one empty line, no
// matter how many schema lines there are.
func (h Header) Format() string {
	var b strings.Builder
	writeKV(&b, "protocol", strconv.Itoa(Version))
	writeKV(&b, "experiment-id", h.ExperimentID)
	writeKV(&b, "start_time", strconv.FormatInt(h.StartTime, 10))
	writeKV(&b, "sender-id", h.SenderID)
	writeKV(&b, "app-name", h.AppName)
	for _, line := range h.SchemaLines {
		b.WriteString(line)
		b.WriteByte('\n')
	}
	writeKV(&b, "content", "text")
	b.WriteByte('\n')
	return b.String()
}

func writeKV(b *strings.Builder, key, value string) {
	b.WriteString(key)
	b.WriteString(": ")
	b.WriteString(value)
	b.WriteByte('\n')
}
