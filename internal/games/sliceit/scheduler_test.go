package sliceit

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/vovakirdan/sliceit/internal/core"
)

func TestSchedulerRunsInTimeOrder(t *testing.T) {
	var s Scheduler
	var order []int

	s.After(0, 300*time.Millisecond, func() { order = append(order, 3) })
	s.After(0, 100*time.Millisecond, func() { order = append(order, 1) })
	s.After(0, 100*time.Millisecond, func() { order = append(order, 2) })

	assert.Equal(t, 0, s.RunDue(50*time.Millisecond))
	assert.Equal(t, 2, s.RunDue(200*time.Millisecond))
	assert.Equal(t, []int{1, 2}, order)
	assert.Equal(t, 1, s.Pending())

	s.RunDue(time.Second)
	assert.Equal(t, []int{1, 2, 3}, order)
	assert.Zero(t, s.Pending())
}

func TestSchedulerCancelDropsPendingWork(t *testing.T) {
	var s Scheduler
	fired := false
	s.After(0, time.Millisecond, func() { fired = true })

	epoch := s.Epoch()
	s.Cancel()

	assert.Equal(t, epoch+1, s.Epoch())
	assert.Zero(t, s.Pending())
	s.RunDue(time.Hour)
	assert.False(t, fired)
}

func TestSchedulerSkipsActionsCancelledMidBatch(t *testing.T) {
	var s Scheduler
	second := false
	s.After(0, 0, func() { s.Cancel() })
	s.After(0, 0, func() { second = true })

	assert.Equal(t, 1, s.RunDue(0))
	assert.False(t, second)
}

func TestStaleAttackNeverTouchesNextRun(t *testing.T) {
	g := newTestGame(t, ModeBoss)
	g.executeAttack(AttackPaperRain)
	assert.Equal(t, paperRainCount, g.sched.Pending())

	g.Reset(g.runtime)
	assert.Zero(t, g.sched.Pending())

	for range 60 {
		g.Step(core.NewInputFrame())
	}
	assert.Empty(t, g.entities, "no books from the previous run's attack")
}
