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

import (
	"fmt"
	"net"
	"strconv"
	"strings"
)

// Mode selects which side of the TCP handshake a peer takes.
type Mode int

const (
	Active Mode = iota
	Passive
)

func (m Mode) String() string {
	if m == Active {
		return "active"
	}
	return "passive"
}

// PeerConfig describes one configured session: the local and remote
// endpoints, which side dials, and the networks this speaker advertises
// to that peer.
type PeerConfig struct {
	LocalAS  ASN
	LocalIP  [4]byte
	RemoteAS ASN
	RemoteIP [4]byte
	Mode     Mode
	Networks []Network
}

// ParsePeerConfig parses the space-delimited configuration line:
// "<local_as> <local_ip> <remote_as> <remote_ip> <active|passive> [<prefix>/<len> …]".
func ParsePeerConfig(line string) (PeerConfig, error) {
	fields := strings.Fields(line)
	if len(fields) < 5 {
		return PeerConfig{}, fmt.Errorf("bgp: config line has %d fields, need at least 5", len(fields))
	}

	localAS, err := parseASN(fields[0])
	if err != nil {
		return PeerConfig{}, fmt.Errorf("bgp: local_as: %w", err)
	}
	localIP, err := parseIPv4(fields[1])
	if err != nil {
		return PeerConfig{}, fmt.Errorf("bgp: local_ip: %w", err)
	}
	remoteAS, err := parseASN(fields[2])
	if err != nil {
		return PeerConfig{}, fmt.Errorf("bgp: remote_as: %w", err)
	}
	remoteIP, err := parseIPv4(fields[3])
	if err != nil {
		return PeerConfig{}, fmt.Errorf("bgp: remote_ip: %w", err)
	}

	var mode Mode
	switch strings.ToLower(fields[4]) {
	case "active":
		mode = Active
	case "passive":
		mode = Passive
	default:
		return PeerConfig{}, fmt.Errorf("bgp: mode %q must be active or passive", fields[4])
	}

	cfg := PeerConfig{
		LocalAS:  localAS,
		LocalIP:  localIP,
		RemoteAS: remoteAS,
		RemoteIP: remoteIP,
		Mode:     mode,
	}

	for _, field := range fields[5:] {
		n, err := parsePrefix(field)
		if err != nil {
			return PeerConfig{}, fmt.Errorf("bgp: network %q: %w", field, err)
		}
		cfg.Networks = append(cfg.Networks, n)
	}

	return cfg, nil
}

func parseASN(s string) (ASN, error) {
	n, err := strconv.ParseUint(s, 10, 16)
	if err != nil {
		return 0, fmt.Errorf("%q is not a 16-bit AS number", s)
	}
	return ASN(n), nil
}

func parseIPv4(s string) ([4]byte, error) {
	var out [4]byte
	ip := net.ParseIP(s)
	if ip == nil {
		return out, fmt.Errorf("%q is not an IP address", s)
	}
	v4 := ip.To4()
	if v4 == nil {
		return out, fmt.Errorf("%q is not an IPv4 address", s)
	}
	copy(out[:], v4)
	return out, nil
}

func parsePrefix(s string) (Network, error) {
	parts := strings.SplitN(s, "/", 2)
	if len(parts) != 2 {
		return Network{}, fmt.Errorf("expected <addr>/<len>")
	}
	addr, err := parseIPv4(parts[0])
	if err != nil {
		return Network{}, err
	}
	length, err := strconv.ParseUint(parts[1], 10, 8)
	if err != nil || length > 32 {
		return Network{}, fmt.Errorf("prefix length %q out of range 0..32", parts[1])
	}
	return NewNetwork(addr, uint8(length))
}
