package deferred

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGuardTicketsSupersede(t *testing.T) {
	var g Guard

	first := g.Next()
	assert.True(t, g.Valid(first))

	second := g.Next()
	assert.False(t, g.Valid(first))
	assert.True(t, g.Valid(second))

	third := g.Next()
	assert.False(t, g.Valid(second))
	assert.True(t, g.Valid(third))
	assert.False(t, g.Valid(0))
}

func TestGuardCloseInvalidatesFuture(t *testing.T) {
	var g Guard
	g.Close()

	assert.False(t, g.Valid(g.Next()))
}

func TestScheduleOnlyLatestFires(t *testing.T) {
	var g Guard
	s := &ManualScheduler{}
	var fired []Ticket

	first := g.Schedule(s, 600*time.Millisecond, func(tk Ticket) { fired = append(fired, tk) })
	s.Advance(300 * time.Millisecond)
	second := g.Schedule(s, 600*time.Millisecond, func(tk Ticket) { fired = append(fired, tk) })

	s.Advance(time.Second)

	assert.NotEqual(t, first, second)
	assert.Equal(t, []Ticket{second}, fired)
}

func TestScheduleDoesNotRelyOnStop(t *testing.T) {
	var g Guard
	s := &ManualScheduler{IgnoreStop: true}
	var calls int32

	g.Schedule(s, 600*time.Millisecond, func(Ticket) { atomic.AddInt32(&calls, 1) })
	g.Schedule(s, 600*time.Millisecond, func(Ticket) { atomic.AddInt32(&calls, 10) })

	require.Equal(t, 2, s.Advance(time.Second), "both timers fire")
	assert.Equal(t, int32(10), atomic.LoadInt32(&calls), "only the newest callback has an effect")
}

func TestScheduleAfterCloseIsNoop(t *testing.T) {
	var g Guard
	s := &ManualScheduler{IgnoreStop: true}
	called := false

	g.Schedule(s, time.Millisecond, func(Ticket) { called = true })
	g.Close()
	g.Schedule(s, time.Millisecond, func(Ticket) { called = true })

	s.Advance(time.Second)
	assert.False(t, called)
	assert.Equal(t, 0, s.Pending())
}

func TestRealSchedulerFires(t *testing.T) {
	var g Guard
	done := make(chan Ticket, 1)

	tk := g.Schedule(RealScheduler{}, time.Millisecond, func(t Ticket) { done <- t })

	select {
	case got := <-done:
		assert.Equal(t, tk, got)
	case <-time.After(2 * time.Second):
		t.Fatal("callback never fired")
	}
}
