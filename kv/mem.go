// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package kv

import (
	"errors"
	"sync"
)

// ErrNotFound is returned by memStore.Get for an absent key.
var ErrNotFound = errors.New("kv: not found")

// Options configures an in-memory store. It has no fields today; it exists
// so call sites that thread disk-store options through generic code don't
// need a type switch.
type Options struct{}

type memStore struct {
	mu   sync.RWMutex
	data map[string][]byte
}

// NewMem returns a process-local Store, useful for tests and for the
// handful of deployments that deliberately run without persistence.
func NewMem(_ Options) (Store, error) {
	return &memStore{data: make(map[string][]byte)}, nil
}

func (m *memStore) Get(key []byte) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.data[string(key)]
	if !ok {
		return nil, ErrNotFound
	}
	cp := make([]byte, len(v))
	copy(cp, v)
	return cp, nil
}

func (m *memStore) Has(key []byte) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.data[string(key)]
	return ok, nil
}

func (m *memStore) Put(key, val []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := make([]byte, len(val))
	copy(cp, val)
	m.data[string(key)] = cp
	return nil
}

func (m *memStore) Delete(key []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, string(key))
	return nil
}

func (m *memStore) IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

func (m *memStore) Close() error { return nil }
