// Copyright (c) 2024 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package peerdisc

import (
	"encoding/binary"
	"net"
	"strconv"

	"github.com/pkg/errors"
)

// PeerAddress is a resolved transport endpoint: the service port a caller
// should dial, already translated from whatever discovery port it was
// observed on.
type PeerAddress struct {
	IP   net.IP
	Port uint16
}

// MarshalBinary encodes a into the store's stable wire format: a 1-byte
// family tag (4 or 6), 4 or 16 address bytes, then a 2-byte big-endian
// port.
func (a PeerAddress) MarshalBinary() ([]byte, error) {
	if ip4 := a.IP.To4(); ip4 != nil {
		buf := make([]byte, 1+net.IPv4len+2)
		buf[0] = 4
		copy(buf[1:1+net.IPv4len], ip4)
		binary.BigEndian.PutUint16(buf[1+net.IPv4len:], a.Port)
		return buf, nil
	}
	if ip16 := a.IP.To16(); ip16 != nil {
		buf := make([]byte, 1+net.IPv6len+2)
		buf[0] = 6
		copy(buf[1:1+net.IPv6len], ip16)
		binary.BigEndian.PutUint16(buf[1+net.IPv6len:], a.Port)
		return buf, nil
	}
	return nil, errors.Errorf("peerdisc: invalid address %v", a.IP)
}

// UnmarshalBinary decodes the wire format MarshalBinary produces. Any
// deviation is reported as ErrStoreCorrupt.
func (a *PeerAddress) UnmarshalBinary(b []byte) error {
	if len(b) < 1 {
		return errors.Wrap(ErrStoreCorrupt, "empty address record")
	}
	switch b[0] {
	case 4:
		if len(b) != 1+net.IPv4len+2 {
			return errors.Wrapf(ErrStoreCorrupt, "bad ipv4 address length %d", len(b))
		}
		a.IP = net.IP(append([]byte(nil), b[1:1+net.IPv4len]...))
		a.Port = binary.BigEndian.Uint16(b[1+net.IPv4len:])
	case 6:
		if len(b) != 1+net.IPv6len+2 {
			return errors.Wrapf(ErrStoreCorrupt, "bad ipv6 address length %d", len(b))
		}
		a.IP = net.IP(append([]byte(nil), b[1:1+net.IPv6len]...))
		a.Port = binary.BigEndian.Uint16(b[1+net.IPv6len:])
	default:
		return errors.Wrapf(ErrStoreCorrupt, "unknown family tag %d", b[0])
	}
	return nil
}

func (a PeerAddress) String() string {
	return net.JoinHostPort(a.IP.String(), strconv.Itoa(int(a.Port)))
}

// Resolved pairs a PeerAddress with whether it was actually found, the Go
// stand-in for the source spec's Option<PeerAddress>.
type Resolved struct {
	Addr PeerAddress
	OK   bool
}
