// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package lvldb implements kv.Store on top of goleveldb, the on-disk
// engine backing the persistent discovery address store.
package lvldb

import (
	"github.com/syndtr/goleveldb/leveldb"
	"github.com/syndtr/goleveldb/leveldb/errors"
	"github.com/syndtr/goleveldb/leveldb/opt"
	"github.com/syndtr/goleveldb/leveldb/storage"

	"github.com/dvnode/dvnode/kv"
)

// Options configures the on-disk engine.
type Options struct {
	CacheSize   int // level db cache size, in MB
	FileHandles int // max number of open files
}

// LevelDB implements kv.Store on top of goleveldb.
type LevelDB struct {
	db *leveldb.DB
}

// New opens (or creates) a LevelDB instance rooted at path.
func New(path string, opts Options) (*LevelDB, error) {
	cache := opts.CacheSize
	if cache <= 0 {
		cache = 16
	}
	handles := opts.FileHandles
	if handles <= 0 {
		handles = 16
	}
	db, err := leveldb.OpenFile(path, &opt.Options{
		OpenFilesCacheCapacity: handles,
		BlockCacheCapacity:     cache / 2 * opt.MiB,
		WriteBuffer:            cache / 4 * opt.MiB,
	})
	if err != nil {
		return nil, err
	}
	return &LevelDB{db}, nil
}

// NewMem opens a memory-backed instance, for tests.
func NewMem() (*LevelDB, error) {
	db, err := leveldb.Open(storage.NewMemStorage(), nil)
	if err != nil {
		return nil, err
	}
	return &LevelDB{db}, nil
}

func (l *LevelDB) Get(key []byte) ([]byte, error) { return l.db.Get(key, nil) }

func (l *LevelDB) Has(key []byte) (bool, error) { return l.db.Has(key, nil) }

func (l *LevelDB) Put(key, val []byte) error { return l.db.Put(key, val, nil) }

func (l *LevelDB) Delete(key []byte) error { return l.db.Delete(key, nil) }

// IsNotFound reports whether err is goleveldb's "key not found" sentinel.
func (l *LevelDB) IsNotFound(err error) bool { return errors.IsNotFound(err) }

func (l *LevelDB) Close() error { return l.db.Close() }

// Batch groups writes for atomic application.
type Batch struct {
	db    *leveldb.DB
	batch *leveldb.Batch
}

func (l *LevelDB) NewBatch() *Batch { return &Batch{l.db, new(leveldb.Batch)} }

func (b *Batch) Put(key, val []byte) error { b.batch.Put(key, val); return nil }

func (b *Batch) Delete(key []byte) error { b.batch.Delete(key); return nil }

func (b *Batch) Len() int { return b.batch.Len() }

func (b *Batch) Write() error { return b.db.Write(b.batch, nil) }

func (b *Batch) NewBatch() *Batch { return &Batch{b.db, new(leveldb.Batch)} }

var _ kv.Store = (*LevelDB)(nil)
