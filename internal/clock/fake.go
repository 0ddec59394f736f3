package clock

import "time"

// FakeClock is a Clock pinned to a chosen instant so tests can assert on
// ledger timestamps exactly. It only moves when told to.
type FakeClock struct {
	current time.Time
}

func NewFakeClock(t time.Time) *FakeClock {
	return &FakeClock{current: t.UTC()}
}

func (c *FakeClock) Now() time.Time {
	return c.current
}

// Advance moves the clock forward by d.
func (c *FakeClock) Advance(d time.Duration) {
	c.current = c.current.Add(d)
}
