// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package co holds small goroutine-lifecycle helpers shared by the
// service's event loop and its background collectors.
package co

import "sync"

// Goes is a group of goroutines that can be waited on jointly. The zero
// value is ready to use.
type Goes struct {
	wg sync.WaitGroup
}

// Go starts f in a new goroutine, tracked by the group.
func (g *Goes) Go(f func()) {
	g.wg.Add(1)
	go func() {
		defer g.wg.Done()
		f()
	}()
}

// Wait blocks until every goroutine started with Go has returned.
func (g *Goes) Wait() {
	g.wg.Wait()
}

// Done returns a channel that's closed once every tracked goroutine has
// returned.
func (g *Goes) Done() <-chan struct{} {
	c := make(chan struct{})
	go func() {
		g.wg.Wait()
		close(c)
	}()
	return c
}
