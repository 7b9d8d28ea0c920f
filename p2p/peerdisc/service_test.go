// Copyright (c) 2024 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package peerdisc

import (
	"context"
	"crypto/ecdsa"
	"net"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/p2p/enode"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dvnode/dvnode/kv"
)

type fakeProtocol struct {
	self      *enode.Node
	events    chan Event
	findCalls atomic.Int64
	findNodes []*enode.Node
}

func newFakeProtocol() *fakeProtocol {
	return &fakeProtocol{events: make(chan Event, 16)}
}

func (f *fakeProtocol) FindNode(enode.ID) []*enode.Node {
	f.findCalls.Add(1)
	return f.findNodes
}
func (f *fakeProtocol) Events() <-chan Event { return f.events }
func (f *fakeProtocol) Self() *enode.Node    { return f.self }
func (f *fakeProtocol) Close()               {}

type fakeBoot struct {
	calls atomic.Int64
	addr  PeerAddress
	ok    bool
}

func (f *fakeBoot) Query(ctx context.Context, store *AddressStore, boot PeerAddress, identity []byte) (PeerAddress, bool) {
	f.calls.Add(1)
	if f.ok && store != nil {
		store.PutAddr(identity, f.addr)
	}
	return f.addr, f.ok
}

func testKey(t *testing.T) *ecdsa.PrivateKey {
	t.Helper()
	key, err := crypto.GenerateKey()
	require.NoError(t, err)
	return key
}

func newTestService(t *testing.T, bootAddr []PeerAddress) (*Service, *fakeProtocol, *fakeBoot) {
	t.Helper()
	db, err := kv.NewMem(kv.Options{})
	require.NoError(t, err)
	store := NewAddressStore(db)

	proto := newFakeProtocol()
	boot := &fakeBoot{}

	selfKey := testKey(t)
	identity := crypto.CompressPubkey(&selfKey.PublicKey)
	localAddr := PeerAddress{IP: net.IPv4(127, 0, 0, 1).To4(), Port: 30303}

	svc, err := newService(identity, localAddr, bootAddr, 0, store, proto, boot)
	require.NoError(t, err)
	t.Cleanup(svc.Close)
	return svc, proto, boot
}

func TestServiceResolveSelfShortCircuit(t *testing.T) {
	svc, proto, boot := newTestService(t, nil)

	addr, ok := svc.Resolve(context.Background(), svc.identity)
	require.True(t, ok)
	assert.True(t, addr.IP.Equal(net.IPv4(127, 0, 0, 1).To4()))
	assert.EqualValues(t, 0, proto.findCalls.Load())
	assert.EqualValues(t, 0, boot.calls.Load())
}

func TestServiceResolveHeartbeatGatesNetworkPath(t *testing.T) {
	bootAddr := []PeerAddress{{IP: net.IPv4(1, 1, 1, 1).To4(), Port: 30303}}
	svc, proto, boot := newTestService(t, bootAddr)

	other := []byte("other-peer-identity")
	for i := 0; i < 100; i++ {
		svc.Resolve(context.Background(), other)
	}

	assert.EqualValues(t, 1, proto.findCalls.Load())
	assert.EqualValues(t, 1, boot.calls.Load())
}

func TestServiceResolveMissingReturnsFalse(t *testing.T) {
	svc, _, _ := newTestService(t, nil)
	_, ok := svc.Resolve(context.Background(), []byte("never-seen"))
	assert.False(t, ok)
}

func TestServiceResolveManyOrdering(t *testing.T) {
	bootAddr := []PeerAddress{{IP: net.IPv4(1, 1, 1, 1).To4(), Port: 30303}}
	svc, _, _ := newTestService(t, bootAddr)

	// Each identity has its own cached address and the boot query fails,
	// so each result can only match its own position in the input.
	ids := [][]byte{[]byte("a"), []byte("b"), []byte("c")}
	for i, id := range ids {
		require.NoError(t, svc.store.PutAddr(id, PeerAddress{IP: net.IPv4(2, 2, 2, byte(i+1)).To4(), Port: 9000}))
	}
	results := svc.ResolveMany(context.Background(), ids)
	require.Len(t, results, 3)
	for i, r := range results {
		assert.True(t, r.OK)
		assert.True(t, r.Addr.IP.Equal(net.IPv4(2, 2, 2, byte(i+1)).To4()))
	}
}

func TestServiceUpdateAddrAlwaysQueriesNetwork(t *testing.T) {
	bootAddr := []PeerAddress{{IP: net.IPv4(1, 1, 1, 1).To4(), Port: 30303}}
	svc, proto, boot := newTestService(t, bootAddr)
	boot.ok = true
	boot.addr = PeerAddress{IP: net.IPv4(3, 3, 3, 3).To4(), Port: 7000}

	identity := []byte("someone")
	for i := 0; i < 3; i++ {
		addr, ok := svc.UpdateAddr(context.Background(), identity)
		require.True(t, ok)
		assert.True(t, addr.IP.Equal(net.IPv4(3, 3, 3, 3).To4()))
	}
	assert.EqualValues(t, 3, proto.findCalls.Load())
	assert.EqualValues(t, 3, boot.calls.Load())
}

func TestServiceBootFallbackEmptyListDoesNotPanic(t *testing.T) {
	svc, _, _ := newTestService(t, nil)
	assert.NotPanics(t, func() {
		svc.UpdateAddr(context.Background(), []byte("someone"))
	})
}

func TestServiceHandleEventDiscoveredWritesAddr(t *testing.T) {
	svc, proto, _ := newTestService(t, nil)

	key := testKey(t)
	node := enode.NewV4(&key.PublicKey, net.IPv4(5, 6, 7, 8), 0, 30304)
	proto.events <- Event{Kind: EventDiscovered, Node: node}

	identity := crypto.CompressPubkey(&key.PublicKey)
	require.Eventually(t, func() bool {
		_, ok := svc.store.GetAddr(identity)
		return ok
	}, time.Second, 5*time.Millisecond)

	addr, ok := svc.store.GetAddr(identity)
	require.True(t, ok)
	assert.True(t, addr.IP.Equal(net.IPv4(5, 6, 7, 8).To4()))
	assert.Equal(t, uint16(30304-DiscoveryPortOffset), addr.Port)
}

func TestServiceHandleEventSocketUpdatedWritesLocalAddr(t *testing.T) {
	svc, proto, _ := newTestService(t, nil)

	key := testKey(t)
	node := enode.NewV4(&key.PublicKey, net.IPv4(9, 9, 9, 9), 0, 40000)
	proto.events <- Event{Kind: EventSocketUpdated, Node: node}

	require.Eventually(t, func() bool {
		addr, ok := svc.store.GetAddr(svc.identity)
		return ok && addr.IP.Equal(net.IPv4(9, 9, 9, 9).To4())
	}, time.Second, 5*time.Millisecond)
}

func TestServiceDiscoverConcurrentCallers(t *testing.T) {
	svc, proto, _ := newTestService(t, nil)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			svc.Discover(context.Background(), enode.ID{})
		}()
	}
	wg.Wait()
	assert.EqualValues(t, 8, proto.findCalls.Load())
}
