// Package deferred runs single-shot delayed callbacks that become no-ops once
// a newer event or a teardown supersedes them.
package deferred

import (
	"sync"
	"time"
)

// Timer is a pending callback. Stop is best effort: a callback that is
// already running cannot be stopped, which is why Guard exists.
type Timer interface {
	Stop() bool
}

// Scheduler runs f once after d on another goroutine.
type Scheduler interface {
	AfterFunc(d time.Duration, f func()) Timer
}

// RealScheduler is backed by time.AfterFunc.
type RealScheduler struct{}

func (RealScheduler) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

// Ticket identifies one scheduled callback. Zero is never issued.
type Ticket uint64

// Guard hands out generation tickets. Issuing a new ticket invalidates all
// older ones; Close invalidates everything for good.
type Guard struct {
	mu      sync.Mutex
	gen     uint64
	closed  bool
	pending Timer
}

// Next issues a fresh ticket and invalidates earlier ones.
func (g *Guard) Next() Ticket {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.nextLocked()
}

func (g *Guard) nextLocked() Ticket {
	g.gen++
	if g.pending != nil {
		g.pending.Stop()
		g.pending = nil
	}
	return Ticket(g.gen)
}

// Valid reports whether t is still the newest ticket.
func (g *Guard) Valid(t Ticket) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return !g.closed && t != 0 && uint64(t) == g.gen
}

// Close invalidates every ticket, including future ones.
func (g *Guard) Close() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.nextLocked()
	g.closed = true
}

// Schedule issues a ticket and runs f(ticket) after d if the ticket is still
// valid when the timer fires. f must re-check the ticket against its own state
// before applying results, since a newer event can arrive while f runs.
func (g *Guard) Schedule(s Scheduler, d time.Duration, f func(Ticket)) Ticket {
	g.mu.Lock()
	defer g.mu.Unlock()

	t := g.nextLocked()
	if g.closed {
		return t
	}
	g.pending = s.AfterFunc(d, func() {
		if g.Valid(t) {
			f(t)
		}
	})
	return t
}
