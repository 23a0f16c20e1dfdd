package sim

import (
	"math"
	"time"
)

// DefaultTickRate is used when a non-positive rate is given.
const DefaultTickRate = 60

// timer fires every `every` ticks of logical time.
type timer struct {
	name     string
	interval time.Duration
	every    uint64
	next     uint64
}

// Scheduler drives the fixed step. It keeps logical time in ticks, so
// periodic work (spawns, auto-clicks) is checked inside the step in a fixed
// order instead of racing against wall-clock callbacks.
//
// The platform calls Step once per frame; Step does nothing while stopped.
// Games Stop it on a terminal phase and Start it again on reset.
type Scheduler struct {
	step    time.Duration
	running bool
	ticks   uint64
	timers  []*timer
}

// NewScheduler creates a stopped scheduler stepping at tickRate per second.
func NewScheduler(tickRate int) *Scheduler {
	if tickRate <= 0 {
		tickRate = DefaultTickRate
	}
	return &Scheduler{
		step: time.Second / time.Duration(tickRate),
	}
}

// Start resumes stepping.
func (s *Scheduler) Start() {
	s.running = true
}

// Stop pauses stepping; Step becomes a no-op until Start.
func (s *Scheduler) Stop() {
	s.running = false
}

// Running reports whether Step advances time.
func (s *Scheduler) Running() bool {
	return s.running
}

// Ticks returns the number of steps taken since the last Reset.
func (s *Scheduler) Ticks() uint64 {
	return s.ticks
}

// Elapsed returns logical time since the last Reset.
func (s *Scheduler) Elapsed() time.Duration {
	return time.Duration(s.ticks) * s.step
}

// Every registers (or replaces) a named timer. The first firing is one
// interval from now. A non-positive interval disables the timer.
func (s *Scheduler) Every(name string, interval time.Duration) {
	for _, t := range s.timers {
		if t.name == name {
			s.arm(t, interval)
			return
		}
	}
	t := &timer{name: name}
	s.arm(t, interval)
	s.timers = append(s.timers, t)
}

// SetInterval changes a timer's period without restarting it. If the new
// period is shorter than the time remaining, the next firing moves earlier.
func (s *Scheduler) SetInterval(name string, interval time.Duration) {
	for _, t := range s.timers {
		if t.name != name || t.interval == interval {
			continue
		}
		t.interval = interval
		t.every = s.ticksFor(interval)
		if t.every == 0 {
			return
		}
		if limit := s.ticks + t.every; t.next <= s.ticks || t.next > limit {
			t.next = limit
		}
		return
	}
}

// Interval returns a timer's current period, or zero if unknown.
func (s *Scheduler) Interval(name string) time.Duration {
	for _, t := range s.timers {
		if t.name == name {
			return t.interval
		}
	}
	return 0
}

// Step advances logical time by one tick and returns the names of timers
// due on this tick, in registration order. ok is false when stopped.
func (s *Scheduler) Step() (fired []string, ok bool) {
	if !s.running {
		return nil, false
	}
	s.ticks++
	for _, t := range s.timers {
		if t.every == 0 || s.ticks < t.next {
			continue
		}
		fired = append(fired, t.name)
		t.next = s.ticks + t.every
	}
	return fired, true
}

// Reset zeroes logical time and re-arms every timer. Running state is kept.
func (s *Scheduler) Reset() {
	s.ticks = 0
	for _, t := range s.timers {
		s.arm(t, t.interval)
	}
}

func (s *Scheduler) arm(t *timer, interval time.Duration) {
	t.interval = interval
	t.every = s.ticksFor(interval)
	t.next = s.ticks + t.every
}

// ticksFor converts a period to whole ticks, at least one.
func (s *Scheduler) ticksFor(interval time.Duration) uint64 {
	if interval <= 0 {
		return 0
	}
	n := math.Round(float64(interval) / float64(s.step))
	if n < 1 {
		return 1
	}
	return uint64(n)
}
