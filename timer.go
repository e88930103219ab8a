package bind

import (
	"time"

	"github.com/benbjohnson/clock"
)

// slot holds at most one pending timer for a single bound element. The zero
// value is idle.
//
// A slot must only be touched from the loop goroutine. Expiry is posted back
// to the loop, and the generation counter makes sure an expiry that was
// already in flight when the timer got cancelled or replaced is dropped.
type slot struct {
	timer *clock.Timer
	gen   uint64
}

// active reports whether a timer is currently armed.
func (s *slot) active() bool {
	return s.timer != nil
}

// arm cancels any armed timer and schedules f to run on the loop after d.
// The slot is idle again by the time f runs.
func (s *slot) arm(l *Loop, d time.Duration, f func()) {
	s.cancel()

	gen := s.gen
	s.timer = l.clock.AfterFunc(d, func() {
		l.Do(func() {
			if s.gen != gen {
				return
			}

			s.timer = nil
			s.gen++
			f()
		})
	})
}

// cancel stops any armed timer. It reports whether a timer was armed.
func (s *slot) cancel() bool {
	if s.timer == nil {
		return false
	}

	s.timer.Stop()
	s.timer = nil
	s.gen++

	return true
}
