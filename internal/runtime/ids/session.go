package ids

import (
	"crypto/rand"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
)

var (
	entropyMu sync.Mutex
	entropy   = ulid.Monotonic(rand.Reader, 0)
)

// NewSessionID returns a time-sortable ULID identifying one client session in
// logs and traces. It never appears on the wire. Times outside the ULID range
// are clamped to its bounds.
func NewSessionID(now time.Time) string {
	entropyMu.Lock()
	defer entropyMu.Unlock()

	id, err := ulid.New(clampTimestamp(now), entropy)
	if err != nil {
		return ulid.Make().String()
	}
	return id.String()
}

func clampTimestamp(now time.Time) uint64 {
	ms := now.UnixMilli()
	if ms < 0 {
		return 0
	}
	if uint64(ms) > ulid.MaxTime() {
		return ulid.MaxTime()
	}
	return uint64(ms)
}

// SessionTime extracts the creation time encoded in a session id.
func SessionTime(id string) (time.Time, error) {
	parsed, err := ulid.Parse(id)
	if err != nil {
		return time.Time{}, err
	}
	return ulid.Time(parsed.Time()), nil
}
