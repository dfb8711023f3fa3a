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

import "container/list"

// EventQueue is a per-peer FIFO of pending events. It is owned by exactly
// one Peer and never shared across goroutines.
//
// The original source this speaker is modeled on enqueues at the front and
// dequeues from the back, which is FIFO only by the accident of having a
// single producer and consumer. EventQueue is built on container/list so
// enqueue order is preserved by construction.
type EventQueue struct {
	l *list.List
}

// NewEventQueue returns an empty queue.
func NewEventQueue() *EventQueue {
	return &EventQueue{l: list.New()}
}

// Enqueue appends an event to the back of the queue.
func (q *EventQueue) Enqueue(e Event) {
	q.l.PushBack(e)
}

// Dequeue removes and returns the oldest event. The second return value is
// false if the queue is empty.
func (q *EventQueue) Dequeue() (Event, bool) {
	front := q.l.Front()
	if front == nil {
		return nil, false
	}
	q.l.Remove(front)
	return front.Value.(Event), true
}

// Len reports the number of queued events.
func (q *EventQueue) Len() int {
	return q.l.Len()
}
