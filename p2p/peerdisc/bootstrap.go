// Copyright (c) 2024 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package peerdisc

import (
	"context"
	"crypto/ecdsa"
	"crypto/rand"
	"net"
	"path/filepath"

	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/p2p/discover"
	"github.com/ethereum/go-ethereum/p2p/enode"
	"github.com/ethereum/go-ethereum/p2p/enr"
	"github.com/ethereum/go-ethereum/p2p/nat"
	"github.com/ethereum/go-ethereum/p2p/netutil"
	"github.com/pkg/errors"

	"github.com/dvnode/dvnode/kv"
	"github.com/dvnode/dvnode/lvldb"
)

// Config is the configuration surface for a running Service: the local
// identity and network binding, the boot list, and where to persist
// state.
type Config struct {
	IP        net.IP
	UDPPort   int
	Key       *ecdsa.PrivateKey
	BootNodes []*enode.Node
	BaseDir   string

	// NAT, when set, maps the discovery UDP port and resolves the
	// externally reachable IP advertised in the local node record.
	NAT nat.Interface
	// NetRestrict, when set, confines discv5 traffic to the given networks.
	NetRestrict *netutil.Netlist

	// ChannelCapacity overrides DefaultChannelCapacity when non-zero.
	ChannelCapacity int

	// DB lets tests inject an in-memory store instead of opening one
	// under BaseDir.
	DB kv.Store
}

// Start opens the persistent store, republishes the sequence counter,
// brings up the Discv5 engine and boot-query transport, registers the
// configured boot records, and spawns the service's event loop. It then
// issues one initial find_node for a random node id to announce presence,
// per the startup protocol.
//
// A boot record the engine refuses to register is a fatal configuration
// error.
func Start(cfg Config) (*Service, error) {
	db := cfg.DB
	if db == nil {
		if cfg.BaseDir == "" {
			return nil, errors.Wrap(ErrConfigInvalid, "missing base directory")
		}
		opened, err := lvldb.New(filepath.Join(cfg.BaseDir, DefaultDiscoveryIPStore), lvldb.Options{})
		if err != nil {
			return nil, errors.Wrap(err, "open discovery store")
		}
		db = opened
	}
	store := NewAddressStore(db)

	seq, err := store.ReadSeq()
	if err != nil {
		return nil, errors.Wrap(err, "read sequence counter")
	}
	newSeq := seq + 1
	if err := store.WriteSeq(newSeq); err != nil {
		return nil, errors.Wrap(err, "persist sequence counter")
	}
	logger.Info("sequence counter updated", "seq", newSeq)

	conn, err := net.ListenUDP("udp", &net.UDPAddr{IP: net.IPv4zero, Port: cfg.UDPPort})
	if err != nil {
		return nil, errors.Wrap(err, "listen discovery udp")
	}

	announceIP, announcePort := cfg.IP, cfg.UDPPort
	if cfg.NAT != nil {
		if realAddr, ok := conn.LocalAddr().(*net.UDPAddr); ok && !realAddr.IP.IsLoopback() {
			go nat.Map(cfg.NAT, nil, "udp", realAddr.Port, realAddr.Port, "dvnode peer discovery")
		}
		if ext, err := cfg.NAT.ExternalIP(); err == nil {
			announceIP = ext
		}
	}

	nodeDB, err := enode.OpenDB("")
	if err != nil {
		conn.Close()
		return nil, errors.Wrap(err, "open node database")
	}
	localNode := enode.NewLocalNode(nodeDB, cfg.Key)
	localNode.SetStaticIP(announceIP)
	localNode.Set(enr.UDP(announcePort))

	discCfg := discover.Config{
		PrivateKey:  cfg.Key,
		Bootnodes:   cfg.BootNodes,
		NetRestrict: cfg.NetRestrict,
	}
	udpv5, err := discover.ListenV5(conn, localNode, discCfg)
	if err != nil {
		conn.Close()
		return nil, errors.Wrap(err, "listen discv5")
	}
	logger.Info("local node record", "enr", localNode.Node().String(), "id", localNode.ID().String())

	protocol := NewDiscoveryProtocol(udpv5)

	bootAddr := resolveBootAddrs(cfg.BootNodes)
	if len(cfg.BootNodes) > 0 && len(bootAddr) == 0 {
		logger.Warn("no usable ipv4 boot addresses resolved from configured boot records")
	}

	bootConn, err := net.ListenUDP("udp", &net.UDPAddr{})
	if err != nil {
		protocol.Close()
		return nil, errors.Wrap(err, "open boot query socket")
	}
	bootClient := NewBootClient(NewUDPTransport(bootConn), protocolVersion)

	identity := crypto.CompressPubkey(&cfg.Key.PublicKey)
	localAddr := PeerAddress{IP: announceIP.To4(), Port: uint16(announcePort - DiscoveryPortOffset)}

	svc, err := newService(identity, localAddr, bootAddr, cfg.ChannelCapacity, store, protocol, bootClient)
	if err != nil {
		bootConn.Close()
		protocol.Close()
		return nil, err
	}
	svc.closeFuncs = append(svc.closeFuncs, func() {
		protocol.Close()
		bootConn.Close()
		store.Close()
	})

	var randID enode.ID
	if _, err := rand.Read(randID[:]); err != nil {
		logger.Warn("announce node id generation failed", "err", err)
	} else {
		svc.Discover(context.Background(), randID)
	}

	return svc, nil
}

// resolveBootAddrs turns boot records into UDP dial destinations. It uses
// each node's raw discv5 port: a boot query is a discovery-protocol
// datagram sent to the peer's discv5 listener, not to its service port, so
// DiscoveryPortOffset must not be applied here.
func resolveBootAddrs(nodes []*enode.Node) []PeerAddress {
	addrs := make([]PeerAddress, 0, len(nodes))
	for _, n := range nodes {
		ip := n.IP()
		if ip == nil || ip.To4() == nil || n.UDP() == 0 {
			continue
		}
		addrs = append(addrs, PeerAddress{IP: ip.To4(), Port: uint16(n.UDP())})
	}
	return addrs
}
