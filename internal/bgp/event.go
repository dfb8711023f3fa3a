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

// Event is the tagged union consumed by the Peer FSM. The closed set of
// implementers is the EventX types below; dispatch by type switch.
type Event interface {
	eventName() string
}

type EventManualStart struct{}
type EventTcpConnectionConfirmed struct{}
type EventBgpOpen struct{ Open Open }
type EventKeepAliveMsg struct{ Keepalive Keepalive }
type EventUpdateMsg struct{ Update Update }
type EventEstablished struct{}
type EventLocRibChanged struct{}
type EventAdjRibOutChanged struct{}

func (EventManualStart) eventName() string             { return "ManualStart" }
func (EventTcpConnectionConfirmed) eventName() string   { return "TcpConnectionConfirmed" }
func (EventBgpOpen) eventName() string                  { return "BgpOpen" }
func (EventKeepAliveMsg) eventName() string             { return "KeepAliveMsg" }
func (EventUpdateMsg) eventName() string                { return "UpdateMsg" }
func (EventEstablished) eventName() string              { return "Established" }
func (EventLocRibChanged) eventName() string            { return "LocRibChanged" }
func (EventAdjRibOutChanged) eventName() string         { return "AdjRibOutChanged" }

// eventFromMessage translates a decoded wire Message into the Event that
// represents its arrival, per spec §4.4 ("reading and dispatching happen
// in separate halves of next").
func eventFromMessage(m Message) Event {
	switch msg := m.(type) {
	case Open:
		return EventBgpOpen{Open: msg}
	case Keepalive:
		return EventKeepAliveMsg{Keepalive: msg}
	case Update:
		return EventUpdateMsg{Update: msg}
	default:
		return nil
	}
}
