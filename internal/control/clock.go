package control

import "time"

// Clock is the time source of the control loop
type Clock interface {
	Now() time.Time
	Sleep(d time.Duration)
}

// RealClock uses the monotonic system clock
type RealClock struct{}

func (RealClock) Now() time.Time {
	return time.Now()
}

func (RealClock) Sleep(d time.Duration) {
	time.Sleep(d)
}
