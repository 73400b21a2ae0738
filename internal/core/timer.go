package core

import "time"

// MinTimerDelay is the smallest delay a timer accepts. Shorter delays are
// raised to it so a single Advance can never spin forever.
const MinTimerDelay = time.Millisecond

// Timer is a scheduled callback driven by a Scheduler's virtual clock.
// A looping timer keeps its identity for its whole life; its delay may be
// changed at any time, including from inside its own callback.
type Timer struct {
	delay   time.Duration
	elapsed time.Duration
	loop    bool
	fn      func()
	removed bool
	fired   int
}

// Delay returns the current interval between firings.
func (t *Timer) Delay() time.Duration {
	return t.delay
}

// SetDelay changes the interval. Time already accumulated toward the next
// firing is kept, so calling it from the callback sets the next gap exactly.
func (t *Timer) SetDelay(d time.Duration) {
	t.delay = max(d, MinTimerDelay)
}

// Remaining returns the time left until the next firing.
func (t *Timer) Remaining() time.Duration {
	if t.removed {
		return 0
	}
	return max(t.delay-t.elapsed, 0)
}

// Fired returns how many times the callback has run.
func (t *Timer) Fired() int {
	return t.fired
}

// Active reports whether the timer will fire again.
func (t *Timer) Active() bool {
	return t != nil && !t.removed
}

// Remove cancels the timer. It is safe to call more than once and on a nil
// timer; it returns true only for the call that actually cancelled it.
func (t *Timer) Remove() bool {
	if t == nil || t.removed {
		return false
	}
	t.removed = true
	return true
}

// Scheduler runs timers against a virtual clock advanced by the game loop.
// It is not safe for concurrent use; callbacks run on the caller's goroutine.
type Scheduler struct {
	now    time.Duration
	timers []*Timer
}

// NewScheduler creates an empty scheduler at time zero.
func NewScheduler() *Scheduler {
	return &Scheduler{}
}

// Every schedules fn to run each time delay elapses.
func (s *Scheduler) Every(delay time.Duration, fn func()) *Timer {
	return s.add(delay, fn, true)
}

// After schedules fn to run once after delay.
func (s *Scheduler) After(delay time.Duration, fn func()) *Timer {
	return s.add(delay, fn, false)
}

func (s *Scheduler) add(delay time.Duration, fn func(), loop bool) *Timer {
	t := &Timer{fn: fn, loop: loop}
	t.SetDelay(delay)
	s.timers = append(s.timers, t)
	return t
}

// Now returns the virtual time elapsed since the scheduler was created.
func (s *Scheduler) Now() time.Duration {
	return s.now
}

// Len returns the number of active timers.
func (s *Scheduler) Len() int {
	n := 0
	for _, t := range s.timers {
		if t.Active() {
			n++
		}
	}
	return n
}

// Advance moves the clock forward by dt and runs every callback that came due,
// in registration order. A timer that is due several times fires several times.
func (s *Scheduler) Advance(dt time.Duration) {
	if dt <= 0 {
		return
	}
	s.now += dt

	// Timers added by callbacks start counting on the next Advance.
	due := s.timers
	for _, t := range due {
		if t.removed {
			continue
		}
		t.elapsed += dt
		for !t.removed && t.elapsed >= t.delay {
			t.elapsed -= t.delay
			t.fired++
			if !t.loop {
				t.removed = true
			}
			t.fn()
		}
	}

	s.compact()
}

// Clear removes every timer.
func (s *Scheduler) Clear() {
	for _, t := range s.timers {
		t.Remove()
	}
	s.timers = s.timers[:0]
}

func (s *Scheduler) compact() {
	live := s.timers[:0]
	for _, t := range s.timers {
		if !t.removed {
			live = append(live, t)
		}
	}
	for i := len(live); i < len(s.timers); i++ {
		s.timers[i] = nil
	}
	s.timers = live
}
