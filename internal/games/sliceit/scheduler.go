package sliceit

import (
	"sort"
	"time"
)

// scheduledAction is deferred work stamped with the epoch it was queued in.
type scheduledAction struct {
	at    time.Duration
	epoch uint64
	run   func()
}

// Scheduler queues actions against the simulation clock.
// Cancel bumps the epoch so queued work from an earlier run never fires.
type Scheduler struct {
	queue []scheduledAction
	epoch uint64
}

// After queues fn to run once the clock reaches now+delay.
// Actions due at the same time run in the order they were queued.
func (s *Scheduler) After(now, delay time.Duration, fn func()) {
	a := scheduledAction{at: now + delay, epoch: s.epoch, run: fn}
	i := sort.Search(len(s.queue), func(i int) bool { return s.queue[i].at > a.at })
	s.queue = append(s.queue, scheduledAction{})
	copy(s.queue[i+1:], s.queue[i:])
	s.queue[i] = a
}

// RunDue runs every action due at now.
// An action cancelled by an earlier one in the same batch is skipped.
func (s *Scheduler) RunDue(now time.Duration) int {
	n := 0
	for n < len(s.queue) && s.queue[n].at <= now {
		n++
	}
	if n == 0 {
		return 0
	}

	due := make([]scheduledAction, n)
	copy(due, s.queue[:n])
	s.queue = append(s.queue[:0], s.queue[n:]...)

	ran := 0
	for _, a := range due {
		if a.epoch != s.epoch {
			continue
		}
		a.run()
		ran++
	}
	return ran
}

// Cancel drops all pending actions and invalidates any still held elsewhere.
func (s *Scheduler) Cancel() {
	s.epoch++
	s.queue = s.queue[:0]
}

// Pending returns the number of queued actions.
func (s *Scheduler) Pending() int {
	return len(s.queue)
}

// Epoch returns the current generation.
func (s *Scheduler) Epoch() uint64 {
	return s.epoch
}
