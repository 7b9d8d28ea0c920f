// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package co

import "sync"

// Signal is a one-shot broadcast that can be re-armed. Waiters registered
// before a Broadcast are woken by it; waiters registered after see only
// the next Broadcast.
type Signal struct {
	mu sync.Mutex
	ch chan struct{}
}

// Waiter observes a single Broadcast.
type Waiter struct {
	ch chan struct{}
}

// C returns the channel that closes when the Broadcast this waiter was
// registered for fires.
func (w Waiter) C() <-chan struct{} { return w.ch }

func (s *Signal) current() chan struct{} {
	if s.ch == nil {
		s.ch = make(chan struct{})
	}
	return s.ch
}

// NewWaiter registers a Waiter for the next Broadcast.
func (s *Signal) NewWaiter() Waiter {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Waiter{s.current()}
}

// Broadcast wakes every Waiter registered so far and re-arms the signal
// for the next round.
func (s *Signal) Broadcast() {
	s.mu.Lock()
	defer s.mu.Unlock()
	close(s.current())
	s.ch = nil
}
