// Copyright (c) 2021 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package kv

// Bucket is a key prefix applied to a Getter/Putter, so several record
// kinds can share one underlying store. It is a plain prefix, not an
// isolated namespace: keys written through two buckets stay apart only
// when neither bucket is a prefix of the other.
type Bucket string

func (b Bucket) key(k []byte) []byte {
	if len(b) == 0 {
		return k
	}
	return append([]byte(b), k...)
}

// NewGetter wraps g so that every read is implicitly prefixed by the bucket.
func (b Bucket) NewGetter(g Getter) Getter {
	return &bucketGetter{b, g}
}

// NewPutter wraps p so that every write is implicitly prefixed by the bucket.
func (b Bucket) NewPutter(p Putter) Putter {
	return &bucketPutter{b, p}
}

type bucketGetter struct {
	bucket Bucket
	Getter
}

func (b *bucketGetter) Get(key []byte) ([]byte, error) { return b.Getter.Get(b.bucket.key(key)) }
func (b *bucketGetter) Has(key []byte) (bool, error)   { return b.Getter.Has(b.bucket.key(key)) }

type bucketPutter struct {
	bucket Bucket
	Putter
}

func (b *bucketPutter) Put(key, val []byte) error { return b.Putter.Put(b.bucket.key(key), val) }
func (b *bucketPutter) Delete(key []byte) error    { return b.Putter.Delete(b.bucket.key(key)) }
