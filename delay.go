package hx1230

import "time"

// Delayer blocks for a duration.
type Delayer interface {
	Delay(time.Duration)
}

// DelayFunc is an adapter to use a function, such as time.Sleep, as Delayer.
type DelayFunc func(time.Duration)

func (f DelayFunc) Delay(d time.Duration) {
	f(d)
}
