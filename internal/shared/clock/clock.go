package clock

import "time"

// Clock supplies "now" to services so date-window rules stay deterministic
// under test. Production wiring always uses Real.
type Clock interface {
	Now() time.Time
}

type Real struct{}

func (Real) Now() time.Time {
	return time.Now().UTC()
}

// Fixed always returns the same instant.
type Fixed struct {
	T time.Time
}

func (f Fixed) Now() time.Time {
	return f.T
}
