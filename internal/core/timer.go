package core

import (
	"sort"
	"sync"
	"time"
)

// Timer is a handle to a callback scheduled with a Scheduler.
type Timer interface {
	// Stop prevents the callback from firing. It reports false if the
	// callback already fired or was stopped.
	Stop() bool
}

// Scheduler runs callbacks after a delay.
type Scheduler interface {
	AfterFunc(d time.Duration, f func()) Timer
}

// WallScheduler schedules callbacks on the runtime timer heap. Callbacks run
// on their own goroutine.
type WallScheduler struct{}

// AfterFunc wraps time.AfterFunc.
func (WallScheduler) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

// LoopScheduler is a cooperative scheduler for hosts that own an event loop.
// Nothing fires until the host advances the clock, and callbacks then run on
// the advancing goroutine in deadline order.
type LoopScheduler struct {
	mu      sync.Mutex
	now     time.Duration
	seq     uint64
	pending []*loopTimer
	last    time.Time
}

type loopTimer struct {
	s    *LoopScheduler
	at   time.Duration
	seq  uint64
	f    func()
	done bool
}

// NewLoopScheduler returns a scheduler whose virtual clock starts at zero.
func NewLoopScheduler() *LoopScheduler {
	return &LoopScheduler{}
}

// AfterFunc registers f to run once the virtual clock has advanced by d.
func (s *LoopScheduler) AfterFunc(d time.Duration, f func()) Timer {
	if d < 0 {
		d = 0
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seq++
	t := &loopTimer{s: s, at: s.now + d, seq: s.seq, f: f}
	s.pending = append(s.pending, t)
	return t
}

// Stop cancels the timer if it has not fired yet.
func (t *loopTimer) Stop() bool {
	t.s.mu.Lock()
	defer t.s.mu.Unlock()
	if t.done {
		return false
	}
	t.done = true
	t.s.remove(t)
	return true
}

func (s *LoopScheduler) remove(t *loopTimer) {
	for i, p := range s.pending {
		if p == t {
			s.pending = append(s.pending[:i], s.pending[i+1:]...)
			return
		}
	}
}

// Pending reports how many callbacks are waiting to fire.
func (s *LoopScheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.pending)
}

// Advance moves the virtual clock forward by d and runs every callback whose
// deadline has been reached, including ones scheduled by callbacks during
// this call. It returns the number of callbacks fired.
func (s *LoopScheduler) Advance(d time.Duration) int {
	s.mu.Lock()
	target := s.now + d
	s.mu.Unlock()

	fired := 0
	for {
		t := s.popDue(target)
		if t == nil {
			break
		}
		t.f()
		fired++
	}

	s.mu.Lock()
	if s.now < target {
		s.now = target
	}
	s.mu.Unlock()
	return fired
}

// popDue removes the earliest timer due by target and moves the clock to its
// deadline, so callbacks rescheduling themselves observe the right time.
func (s *LoopScheduler) popDue(target time.Duration) *loopTimer {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.pending) == 0 {
		return nil
	}
	sort.SliceStable(s.pending, func(i, j int) bool {
		if s.pending[i].at != s.pending[j].at {
			return s.pending[i].at < s.pending[j].at
		}
		return s.pending[i].seq < s.pending[j].seq
	})
	t := s.pending[0]
	if t.at > target {
		return nil
	}
	s.pending = s.pending[1:]
	t.done = true
	if t.at > s.now {
		s.now = t.at
	}
	return t
}

// Sync advances the clock by the wall time elapsed since the previous Sync.
// The first call only records the reference point.
func (s *LoopScheduler) Sync(now time.Time) int {
	s.mu.Lock()
	last := s.last
	s.last = now
	s.mu.Unlock()
	if last.IsZero() {
		return 0
	}
	delta := now.Sub(last)
	if delta < 0 {
		delta = 0
	}
	return s.Advance(delta)
}
