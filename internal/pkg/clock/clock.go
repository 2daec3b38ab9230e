package clock

import "time"

// Clock abstracts the current time so refund-deadline comparisons can be
// pinned in tests.
type Clock interface {
	Now() time.Time
}

type RealClock struct{}

func NewRealClock() Clock {
	return &RealClock{}
}

// Now is always UTC; event start times arrive in UTC and deadline math
// must not depend on the host timezone.
func (c *RealClock) Now() time.Time {
	return time.Now().UTC()
}

// MockClock is a fixed, manually advanced clock for tests.
type MockClock struct {
	currentTime time.Time
}

func NewMockClock(t time.Time) *MockClock {
	return &MockClock{currentTime: t}
}

func (c *MockClock) Now() time.Time {
	return c.currentTime
}

func (c *MockClock) Set(t time.Time) {
	c.currentTime = t
}

func (c *MockClock) Add(d time.Duration) {
	c.currentTime = c.currentTime.Add(d)
}
