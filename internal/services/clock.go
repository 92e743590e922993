package services

import "time"

// Clock abstracts the wall clock so the reminder scheduler can be tested
// without waiting for real minutes to pass.
type Clock interface {
	Now() time.Time
}

// systemClock reads the real wall clock.
type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// SystemClock returns a Clock backed by time.Now.
func SystemClock() Clock { return systemClock{} }
