package clock

import (
	"crypto/rand"
	"sync"
	"time"

	ulid "github.com/oklog/ulid/v2"

	"library-backend/internal/platform/dates"
)

// -------------- Clock --------------

type Clock interface {
	Now() time.Time
	Today() dates.Date
}

// System reads the wall clock; "today" is taken in Location (UTC when nil).
type System struct{ Location *time.Location }

func (System) Now() time.Time { return time.Now().UTC() }

func (s System) Today() dates.Date {
	loc := s.Location
	if loc == nil {
		loc = time.UTC
	}
	return dates.Of(time.Now().In(loc))
}

// Fixed is a frozen clock for tests and CLI runs with an explicit as-of date.
type Fixed struct{ T time.Time }

func (f Fixed) Now() time.Time    { return f.T.UTC() }
func (f Fixed) Today() dates.Date { return dates.Of(f.T) }

// -------------- ID --------------

type IDGen interface{ NewULID(t time.Time) string }

// ULIDGen shares one monotonic entropy source, so IDs minted in the same
// millisecond still sort in creation order.
type ULIDGen struct{}

var (
	entropyMu sync.Mutex
	entropy   = ulid.Monotonic(rand.Reader, 0)
)

func (ULIDGen) NewULID(t time.Time) string {
	entropyMu.Lock()
	defer entropyMu.Unlock()
	return ulid.MustNew(ulid.Timestamp(t), entropy).String()
}
