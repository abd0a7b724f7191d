package service

import (
	"sync/atomic"
	"time"
)

// State: живость процесса для /readyz и /healthz.
type State struct {
	ready     atomic.Bool
	startedAt time.Time

	wsConnected  atomic.Bool
	lastTickUnix atomic.Int64 // unix seconds
	ticks        atomic.Int64
}

func NewState() *State {
	return &State{startedAt: time.Now()}
}

func (s *State) SetReady(v bool) { s.ready.Store(v) }
func (s *State) Ready() bool     { return s.ready.Load() }

func (s *State) SetWSConnected(v bool) { s.wsConnected.Store(v) }
func (s *State) WSConnected() bool     { return s.wsConnected.Load() }

// TouchTick: нулевое время (фид без ts) не затирает последний тик.
func (s *State) TouchTick(t time.Time) {
	if t.IsZero() {
		return
	}
	s.lastTickUnix.Store(t.Unix())
	s.ticks.Add(1)
}

func (s *State) LastTick() time.Time {
	u := s.lastTickUnix.Load()
	if u == 0 {
		return time.Time{}
	}
	return time.Unix(u, 0)
}

func (s *State) Ticks() int64 { return s.ticks.Load() }

func (s *State) Uptime() time.Duration { return time.Since(s.startedAt) }
