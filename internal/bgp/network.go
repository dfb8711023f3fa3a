/*
 * Copyright (C) 2021-present David Coles
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU General Public License as published by
 * the Free Software Foundation; either version 2 of the License, or
 * (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU General Public License along
 * with this program; if not, write to the Free Software Foundation, Inc.,
 * 51 Franklin Street, Fifth Floor, Boston, MA 02110-1301 USA.
 */

package bgp

import "fmt"

// Network is an IPv4 prefix: an address together with a prefix length in
// 0..=32. Canonical form has the host bits of the address zeroed.
type Network struct {
	Addr   [4]byte
	Length uint8
}

// NewNetwork builds a canonical Network, zeroing any host bits beyond Length.
func NewNetwork(addr [4]byte, length uint8) (Network, error) {
	if length > 32 {
		return Network{}, fmt.Errorf("bgp: prefix length %d out of range", length)
	}
	return Network{Addr: mask(addr, length), Length: length}, nil
}

func mask(addr [4]byte, length uint8) [4]byte {
	var out [4]byte
	full := length / 8
	rem := length % 8
	copy(out[:full], addr[:full])
	if rem > 0 && int(full) < 4 {
		out[full] = addr[full] & (0xFF << (8 - rem))
	}
	return out
}

// byteLen is 1 + ceil(Length/8): the length octet plus the address octets.
func (n Network) byteLen() int {
	return 1 + (int(n.Length)+7)/8
}

// Encode serializes the prefix per RFC 4271 §4.3: one length byte followed
// by ceil(Length/8) address bytes in network order.
func (n Network) Encode() []byte {
	addrBytes := (int(n.Length) + 7) / 8
	out := make([]byte, 1+addrBytes)
	out[0] = n.Length
	copy(out[1:], n.Addr[:addrBytes])
	return out
}

// DecodeNetwork reads one prefix from the front of data, returning the
// parsed Network and the number of bytes consumed.
func DecodeNetwork(data []byte) (Network, int, error) {
	if len(data) < 1 {
		return Network{}, 0, newDecodeError(KindMalformedNlri, "empty prefix")
	}
	length := data[0]
	if length > 32 {
		return Network{}, 0, newDecodeError(KindMalformedNlri, "prefix length %d exceeds 32", length)
	}
	addrBytes := (int(length) + 7) / 8
	if len(data) < 1+addrBytes {
		return Network{}, 0, newDecodeError(KindMalformedNlri, "prefix truncated")
	}
	var addr [4]byte
	copy(addr[:addrBytes], data[1:1+addrBytes])
	return Network{Addr: addr, Length: length}, 1 + addrBytes, nil
}

func (n Network) String() string {
	return fmt.Sprintf("%d.%d.%d.%d/%d", n.Addr[0], n.Addr[1], n.Addr[2], n.Addr[3], n.Length)
}

func (n Network) Equal(o Network) bool {
	return n.Addr == o.Addr && n.Length == o.Length
}
