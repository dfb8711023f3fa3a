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

// Notify is the observability hook a Peer reports its lifecycle through.
// internal/bgp depends only on this small interface, never on a concrete
// logging library — callers (internal/peerlog) adapt a real logger to it.
type Notify interface {
	// Transition reports a state change: remote peer address, old and new
	// FSM state names.
	Transition(peer, from, to string)
	// Sent reports a message written to the wire.
	Sent(peer string, msgType uint8)
	// Received reports a message read from the wire.
	Received(peer string, msgType uint8)
	// Fatal reports a session-ending error.
	Fatal(peer string, err error)
}

// NilNotify discards everything; the default when no Notify is supplied.
type NilNotify struct{}

func (NilNotify) Transition(string, string, string) {}
func (NilNotify) Sent(string, uint8)                {}
func (NilNotify) Received(string, uint8)            {}
func (NilNotify) Fatal(string, error)               {}

// MultiNotify fans one Peer's lifecycle events out to several Notify
// implementations, e.g. a logger and a metrics recorder.
type MultiNotify []Notify

func (m MultiNotify) Transition(peer, from, to string) {
	for _, n := range m {
		n.Transition(peer, from, to)
	}
}

func (m MultiNotify) Sent(peer string, msgType uint8) {
	for _, n := range m {
		n.Sent(peer, msgType)
	}
}

func (m MultiNotify) Received(peer string, msgType uint8) {
	for _, n := range m {
		n.Received(peer, msgType)
	}
}

func (m MultiNotify) Fatal(peer string, err error) {
	for _, n := range m {
		n.Fatal(peer, err)
	}
}
