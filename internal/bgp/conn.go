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
	"bufio"
	"fmt"
	"net"
	"time"
)

// Port is the well-known BGP TCP port.
const Port = 179

// Connection is a framed, message-level transport over one TCP socket. A
// Peer owns exactly one; it is never shared.
type Connection struct {
	conn   net.Conn
	reader *bufio.Reader
}

// Dial opens a TCP connection to remoteIP:179, binding to localIP.
func Dial(localIP, remoteIP [4]byte) (*Connection, error) {
	dialer := net.Dialer{
		Timeout:   10 * time.Second,
		LocalAddr: &net.TCPAddr{IP: net.IP(localIP[:]), Port: 0},
	}
	remote := fmt.Sprintf("%d.%d.%d.%d:%d", remoteIP[0], remoteIP[1], remoteIP[2], remoteIP[3], Port)
	conn, err := dialer.Dial("tcp", remote)
	if err != nil {
		return nil, fmt.Errorf("bgp: dial %s: %w", remote, err)
	}
	return &Connection{conn: conn, reader: bufio.NewReaderSize(conn, 4096)}, nil
}

// Listen binds localIP:179, accepts exactly one inbound connection, and
// stops listening.
func Listen(localIP [4]byte) (*Connection, error) {
	local := fmt.Sprintf("%d.%d.%d.%d:%d", localIP[0], localIP[1], localIP[2], localIP[3], Port)
	listener, err := net.Listen("tcp", local)
	if err != nil {
		return nil, fmt.Errorf("bgp: listen %s: %w", local, err)
	}
	defer listener.Close()

	conn, err := listener.Accept()
	if err != nil {
		return nil, fmt.Errorf("bgp: accept on %s: %w", local, err)
	}
	return &Connection{conn: conn, reader: bufio.NewReaderSize(conn, 4096)}, nil
}

// connect establishes the TCP session per cfg.Mode: active dials the
// remote, passive listens and accepts.
func connect(cfg PeerConfig) (*Connection, error) {
	if cfg.Mode == Active {
		return Dial(cfg.LocalIP, cfg.RemoteIP)
	}
	return Listen(cfg.LocalIP)
}

// LocalIP returns the local address of the underlying socket.
func (c *Connection) LocalIP() (net.IP, bool) {
	addr, ok := c.conn.LocalAddr().(*net.TCPAddr)
	if !ok {
		return nil, false
	}
	return addr.IP, true
}

// Send serializes m and writes the full buffer.
func (c *Connection) Send(m Message) error {
	buf := Encode(m)
	if _, err := c.conn.Write(buf); err != nil {
		return fmt.Errorf("bgp: write: %w", err)
	}
	return nil
}

// GetMessage reads one complete message, tolerating arbitrary TCP
// segmentation: it blocks until a full header and body are available. A
// read deadline of d bounds how long it waits when nothing is pending;
// a timeout is reported as (nil, nil), meaning "no message yet".
func (c *Connection) GetMessage(d time.Duration) (Message, error) {
	c.conn.SetReadDeadline(time.Now().Add(d))

	var header [HeaderLength]byte
	n, err := fillFull(c.reader, header[:])
	if err != nil && isTimeout(err) && n == 0 {
		return nil, nil
	}
	// Part of a message has arrived: wait for the rest without a deadline.
	c.conn.SetReadDeadline(time.Time{})
	if err != nil && isTimeout(err) {
		_, err = fillFull(c.reader, header[n:])
	}
	if err != nil {
		return nil, fmt.Errorf("bgp: read header: %w", err)
	}

	length, err := DecodedLength(header)
	if err != nil {
		return nil, err
	}

	buf := make([]byte, length)
	copy(buf, header[:])
	if _, err := fillFull(c.reader, buf[HeaderLength:]); err != nil {
		return nil, fmt.Errorf("bgp: read body: %w", err)
	}

	return Decode(buf)
}

// Close releases the underlying socket.
func (c *Connection) Close() error {
	return c.conn.Close()
}

func fillFull(r *bufio.Reader, buf []byte) (int, error) {
	n := 0
	for n < len(buf) {
		m, err := r.Read(buf[n:])
		n += m
		if err != nil {
			return n, err
		}
	}
	return n, nil
}

func isTimeout(err error) bool {
	type timeout interface{ Timeout() bool }
	t, ok := err.(timeout)
	return ok && t.Timeout()
}
