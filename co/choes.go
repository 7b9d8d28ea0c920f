// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package co

import "sync"

// Choes is a group of goroutines that cooperatively stop on a shared
// signal, unlike Goes which only tracks completion.
type Choes struct {
	wg   sync.WaitGroup
	stop chan struct{}
	once sync.Once
}

// NewChoes creates a ready-to-use group.
func NewChoes() *Choes {
	return &Choes{stop: make(chan struct{})}
}

// Go starts f in a new goroutine, passing it the group's stop channel.
func (c *Choes) Go(f func(stopChan chan struct{})) {
	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		f(c.stop)
	}()
}

// Stop closes the stop channel. Safe to call more than once or
// concurrently.
func (c *Choes) Stop() {
	c.once.Do(func() { close(c.stop) })
}

// Wait blocks until every goroutine started with Go has returned.
func (c *Choes) Wait() {
	c.wg.Wait()
}
