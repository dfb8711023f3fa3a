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
	"time"
)

// State names the FSM's position in the session-establishment sequence.
// There is no terminal state in this scope.
type State string

const (
	Idle        State = "Idle"
	Connect     State = "Connect"
	OpenSent    State = "OpenSent"
	OpenConfirm State = "OpenConfirm"
	Established State = "Established"
)

// pollInterval bounds how long GetMessage waits for an inbound message
// before Next gives up for this tick and returns control to the caller.
const pollInterval = 50 * time.Millisecond

// Peer drives one configured session through the FSM. It owns its
// Connection, EventQueue and AdjRibOut; LocRib may be shared with other
// peers and is read under its own mutex.
type Peer struct {
	state     State
	queue     *EventQueue
	config    PeerConfig
	conn      *Connection
	locRib    *LocRib
	adjRibOut AdjRibOut
	notify    Notify

	remoteAddr string
}

// NewPeer constructs a Peer in the Idle state, sharing locRib with any
// other peers the caller also constructs from it.
func NewPeer(cfg PeerConfig, locRib *LocRib, notify Notify) *Peer {
	if notify == nil {
		notify = NilNotify{}
	}
	return &Peer{
		state:      Idle,
		queue:      NewEventQueue(),
		config:     cfg,
		locRib:     locRib,
		notify:     notify,
		remoteAddr: fmt.Sprintf("%d.%d.%d.%d", cfg.RemoteIP[0], cfg.RemoteIP[1], cfg.RemoteIP[2], cfg.RemoteIP[3]),
	}
}

// Start enqueues the initial ManualStart event.
func (p *Peer) Start() {
	p.queue.Enqueue(EventManualStart{})
}

// State reports the current FSM state, for observability only; the
// Supervisor never branches on it.
func (p *Peer) State() State {
	return p.state
}

// Next performs one step: dequeue and dispatch at most one event, then
// attempt to read at most one inbound message and enqueue the event it
// translates to, for a later call to Next. A non-nil error is fatal to
// this peer's session.
func (p *Peer) Next() error {
	if event, ok := p.queue.Dequeue(); ok {
		if err := p.dispatch(event); err != nil {
			return err
		}
	}

	if p.conn != nil {
		msg, err := p.conn.GetMessage(pollInterval)
		if err != nil {
			return fmt.Errorf("bgp: peer %s: %w", p.remoteAddr, err)
		}
		if msg != nil {
			p.notify.Received(p.remoteAddr, msg.Type())
			if event := eventFromMessage(msg); event != nil {
				p.queue.Enqueue(event)
			}
		}
	}

	return nil
}

func (p *Peer) dispatch(event Event) error {
	from := p.state

	switch p.state {
	case Idle:
		if _, ok := event.(EventManualStart); ok {
			conn, err := connect(p.config)
			if err != nil {
				return fmt.Errorf("bgp: peer %s: connect: %w", p.remoteAddr, err)
			}
			p.conn = conn
			p.state = Connect
			p.queue.Enqueue(EventTcpConnectionConfirmed{})
		}

	case Connect:
		if _, ok := event.(EventTcpConnectionConfirmed); ok {
			open := Open{
				Version:    4,
				MyAS:       p.config.LocalAS,
				HoldTime:   0,
				Identifier: p.config.LocalIP,
			}
			if err := p.send(open); err != nil {
				return err
			}
			p.state = OpenSent
		}

	case OpenSent:
		if _, ok := event.(EventBgpOpen); ok {
			if err := p.send(Keepalive{}); err != nil {
				return err
			}
			p.state = OpenConfirm
		}

	case OpenConfirm:
		if _, ok := event.(EventKeepAliveMsg); ok {
			p.queue.Enqueue(EventEstablished{})
			p.state = Established
		}

	case Established:
		switch event.(type) {
		case EventEstablished, EventLocRibChanged:
			snapshot := p.locRib.Snapshot()
			p.adjRibOut.InstallFromLocRib(snapshot, p.config)
			p.queue.Enqueue(EventAdjRibOutChanged{})

		case EventAdjRibOutChanged:
			for _, entry := range p.adjRibOut.Entries() {
				update := Update{
					PathAttributes: entry.PathAttributes,
					NLRI:           []Network{entry.NetworkAddress},
				}
				if err := p.send(update); err != nil {
					return err
				}
			}
		}
	}

	if p.state != from {
		p.notify.Transition(p.remoteAddr, string(from), string(p.state))
	}

	return nil
}

func (p *Peer) send(m Message) error {
	if err := p.conn.Send(m); err != nil {
		return fmt.Errorf("bgp: peer %s: %w", p.remoteAddr, err)
	}
	p.notify.Sent(p.remoteAddr, m.Type())
	return nil
}

// NotifyLocRibChanged enqueues a LocRibChanged event, for a caller that has
// changed Loc-RIB contents. The Supervisor does not call it: it never
// changes a Loc-RIB after building it.
func (p *Peer) NotifyLocRibChanged() {
	p.queue.Enqueue(EventLocRibChanged{})
}

// LocRibLen reports the number of routes currently held in this peer's
// Loc-RIB, for metrics purposes only.
func (p *Peer) LocRibLen() int {
	return len(p.locRib.Snapshot())
}

// AdjRibOutLen reports the number of routes currently advertised to this
// peer, for metrics purposes only.
func (p *Peer) AdjRibOutLen() int {
	return len(p.adjRibOut.Entries())
}
