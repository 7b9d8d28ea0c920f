// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package co

import "sync"

// Parallel runs funcs pushed onto the queue by queueFunc concurrently and
// closes the returned channel once they've all returned.
func Parallel(queueFunc func(queue chan<- func())) <-chan struct{} {
	done := make(chan struct{})
	queue := make(chan func())

	go func() {
		defer close(queue)
		queueFunc(queue)
	}()

	go func() {
		defer close(done)
		var wg sync.WaitGroup
		for fn := range queue {
			wg.Add(1)
			go func(fn func()) {
				defer wg.Done()
				fn()
			}(fn)
		}
		wg.Wait()
	}()

	return done
}
