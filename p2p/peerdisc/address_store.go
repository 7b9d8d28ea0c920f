// Copyright (c) 2024 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package peerdisc

import (
	"encoding/binary"

	"github.com/ethereum/go-ethereum/log"
	"github.com/pkg/errors"

	"github.com/dvnode/dvnode/kv"
)

var logger = log.New("pkg", "peerdisc")

const seqKey = "seq"

// metaBucket namespaces the sequence counter away from the identity-keyed
// address entries, so an identity that happens to collide byte-for-byte
// with "seq" can never shadow it.
const metaBucket kv.Bucket = "m"
const addrBucket kv.Bucket = "a"

// absentSeq is what ReadSeq returns when no counter has ever been
// persisted, so the caller's next write (seq+1) lands on 2.
const absentSeq = 1

// AddressStore is a typed facade over the byte KV store for three record
// kinds: the restart sequence counter, the identity-to-address map, and
// (via HasEntry) the "seen" check the metrics hook uses.
type AddressStore struct {
	db   kv.Store
	meta kv.GetPutter
	addr kv.GetPutter
}

// NewAddressStore wraps db.
func NewAddressStore(db kv.Store) *AddressStore {
	return &AddressStore{
		db:   db,
		meta: &bucketStore{metaBucket.NewGetter(db), metaBucket.NewPutter(db)},
		addr: &bucketStore{addrBucket.NewGetter(db), addrBucket.NewPutter(db)},
	}
}

// bucketStore composes a prefixed Getter and Putter into a kv.GetPutter.
type bucketStore struct {
	kv.Getter
	kv.Putter
}

// ReadSeq returns the persisted sequence counter. Only an absent key
// defaults (to 1, so the caller's increment-and-write lands on 2); a
// present but wrong-length value is reported as ErrStoreCorrupt and is
// fatal at startup — this module reads fail-closed rather than masking
// a corrupt read as "absent" the way the source does.
func (s *AddressStore) ReadSeq() (uint64, error) {
	val, err := s.meta.Get([]byte(seqKey))
	if err != nil {
		if s.db.IsNotFound(err) {
			return absentSeq, nil
		}
		return 0, errors.Wrap(err, "read sequence counter")
	}
	if len(val) != 8 {
		return 0, errors.Wrapf(ErrStoreCorrupt, "sequence counter has length %d, want 8", len(val))
	}
	return binary.LittleEndian.Uint64(val), nil
}

// WriteSeq persists v as the little-endian sequence counter.
func (s *AddressStore) WriteSeq(v uint64) error {
	buf := make([]byte, 8)
	binary.LittleEndian.PutUint64(buf, v)
	return errors.Wrap(s.meta.Put([]byte(seqKey), buf), "write sequence counter")
}

// PutAddr persists addr under identity.
func (s *AddressStore) PutAddr(identity []byte, addr PeerAddress) error {
	data, err := addr.MarshalBinary()
	if err != nil {
		return errors.Wrap(err, "encode peer address")
	}
	return errors.Wrap(s.addr.Put(identity, data), "write peer address")
}

// GetAddr reads the address stored for identity. A corrupted entry is
// logged and treated as absent — a single bad record never blocks
// resolution of other peers.
func (s *AddressStore) GetAddr(identity []byte) (PeerAddress, bool) {
	val, err := s.addr.Get(identity)
	if err != nil {
		if !s.db.IsNotFound(err) {
			logger.Warn("address store read failed", "err", err)
		}
		return PeerAddress{}, false
	}
	var addr PeerAddress
	if err := addr.UnmarshalBinary(val); err != nil {
		logger.Warn("address store entry corrupt, treating as absent", "err", err)
		return PeerAddress{}, false
	}
	return addr, true
}

// HasEntry reports whether identity already has a stored address, the
// first-sight check the metrics hook uses.
func (s *AddressStore) HasEntry(identity []byte) bool {
	ok, err := s.addr.Has(identity)
	if err != nil {
		logger.Warn("address store has-check failed", "err", err)
		return false
	}
	return ok
}

// Close releases the underlying store.
func (s *AddressStore) Close() error {
	return s.db.Close()
}
