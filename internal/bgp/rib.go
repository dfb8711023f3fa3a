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

import "sync"

// RouteSource is the only external interface into Loc-RIB construction.
// Given a prefix, it returns the prefixes in the host's routing table that
// exactly match it (same address and length). A kernel-backed
// implementation lives in internal/routesource; a fixed-list double is
// enough for tests.
type RouteSource interface {
	Lookup(network Network) ([]Network, error)
}

// RibEntry is one route: a prefix plus its path attributes. A well-formed
// entry carries exactly one Origin, one AsPath and one NextHop attribute.
type RibEntry struct {
	NetworkAddress Network
	PathAttributes []PathAttribute
}

func (e RibEntry) clone() RibEntry {
	attrs := make([]PathAttribute, len(e.PathAttributes))
	copy(attrs, e.PathAttributes)
	return RibEntry{NetworkAddress: e.NetworkAddress, PathAttributes: attrs}
}

// appendASPath prepends asn to the AsPath attribute, leaving the other
// attributes untouched.
func (e RibEntry) appendASPath(asn ASN) RibEntry {
	out := e.clone()
	for i, a := range out.PathAttributes {
		if ap, ok := a.(AsPathAttr); ok {
			out.PathAttributes[i] = ap.PrependAS(asn)
		}
	}
	return out
}

// changeNextHop replaces the NextHop attribute's address.
func (e RibEntry) changeNextHop(addr [4]byte) RibEntry {
	out := e.clone()
	for i, a := range out.PathAttributes {
		if _, ok := a.(NextHopAttr); ok {
			out.PathAttributes[i] = NextHopAttr{Addr: addr}
		}
	}
	return out
}

// LocRib is the speaker's local routing information base: the set of
// routes it considers true. It is built once from a RouteSource and read
// under Mu by every Peer that holds it. The Supervisor builds a separate
// LocRib for each peer configuration, so the peers it starts do not share
// one.
type LocRib struct {
	Mu      sync.Mutex
	entries []RibEntry
}

// BuildLocRib constructs a Loc-RIB for one peer's configuration: for each
// configured network it queries source for matching routing-table
// prefixes and installs one RibEntry per match, with an empty AS_PATH —
// the local AS is prepended only when a route is copied into an
// Adj-RIB-Out, so locally-originated routes are handled the same way a
// future inbound route would be.
func BuildLocRib(cfg PeerConfig, source RouteSource) (*LocRib, error) {
	rib := &LocRib{}
	for _, network := range cfg.Networks {
		matches, err := source.Lookup(network)
		if err != nil {
			return nil, err
		}
		for _, m := range matches {
			rib.entries = append(rib.entries, RibEntry{
				NetworkAddress: m,
				PathAttributes: []PathAttribute{
					OriginAttr{Value: OriginIGP},
					AsPathAttr{Segments: []ASPathSegment{{Type: AsSequence, ASNs: nil}}},
					NextHopAttr{Addr: cfg.LocalIP},
				},
			})
		}
	}
	return rib, nil
}

// Snapshot returns a copy of the current entries, safe to use after the
// lock is released.
func (r *LocRib) Snapshot() []RibEntry {
	r.Mu.Lock()
	defer r.Mu.Unlock()

	out := make([]RibEntry, len(r.entries))
	for i, e := range r.entries {
		out[i] = e.clone()
	}
	return out
}

// AdjRibOut is one peer's outbound view: routes advertised to that peer,
// derived from Loc-RIB at session establishment and whenever Loc-RIB
// changes. It is owned by exactly one Peer task; no locking needed.
type AdjRibOut struct {
	entries []RibEntry
}

// Entries returns the current contents.
func (a *AdjRibOut) Entries() []RibEntry {
	return a.entries
}

// InstallFromLocRib replaces the contents with a fresh copy of locRib's
// entries, each with cfg.LocalAS prepended to its AS_PATH and its
// NextHop set to cfg.LocalIP. Re-installing against an unchanged Loc-RIB
// yields identical contents (replace, not append).
func (a *AdjRibOut) InstallFromLocRib(snapshot []RibEntry, cfg PeerConfig) {
	entries := make([]RibEntry, 0, len(snapshot))
	for _, e := range snapshot {
		route := e.appendASPath(cfg.LocalAS)
		route = route.changeNextHop(cfg.LocalIP)
		entries = append(entries, route)
	}
	a.entries = entries
}
