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

const (
	HeaderLength  = 19
	OpenLength    = 29
	markerByte    = 0xFF
	markerLength  = 16
)

// BGP message type codes, RFC 4271 §4.1.
const (
	MsgTypeOpen      uint8 = 1
	MsgTypeUpdate    uint8 = 2
	MsgTypeKeepalive uint8 = 4
)

// Message is the tagged union of wire messages this speaker understands.
// The closed set of implementers is Open, Keepalive, Update; dispatch by
// type switch, never reflection.
type Message interface {
	Type() uint8
	body() []byte
}

// Open is the BGP OPEN message.
type Open struct {
	Version    uint8
	MyAS       ASN
	HoldTime   uint16
	Identifier [4]byte
}

func (Open) Type() uint8 { return MsgTypeOpen }

func (o Open) body() []byte {
	b := make([]byte, 10)
	b[0] = o.Version
	b[1] = byte(o.MyAS >> 8)
	b[2] = byte(o.MyAS)
	b[3] = byte(o.HoldTime >> 8)
	b[4] = byte(o.HoldTime)
	copy(b[5:9], o.Identifier[:])
	b[9] = 0 // opt-parm-length: no optional parameters
	return b
}

func decodeOpen(body []byte) (Open, error) {
	if len(body) != 10 {
		return Open{}, newDecodeError(KindLengthMismatch, "OPEN body must be 10 bytes, got %d", len(body))
	}
	var id [4]byte
	copy(id[:], body[5:9])
	return Open{
		Version:    body[0],
		MyAS:       ASN(uint16(body[1])<<8 | uint16(body[2])),
		HoldTime:   uint16(body[3])<<8 | uint16(body[4]),
		Identifier: id,
	}, nil
}

// Keepalive is the BGP KEEPALIVE message: header only, no body.
type Keepalive struct{}

func (Keepalive) Type() uint8    { return MsgTypeKeepalive }
func (Keepalive) body() []byte   { return nil }

// Update is the BGP UPDATE message.
type Update struct {
	Withdrawn      []Network
	PathAttributes []PathAttribute
	NLRI           []Network
}

func (Update) Type() uint8 { return MsgTypeUpdate }

func (u Update) body() []byte {
	var withdrawn []byte
	for _, n := range u.Withdrawn {
		withdrawn = append(withdrawn, n.Encode()...)
	}

	attrs := EncodeAttributes(u.PathAttributes)

	var nlri []byte
	for _, n := range u.NLRI {
		nlri = append(nlri, n.Encode()...)
	}

	out := make([]byte, 0, 4+len(withdrawn)+len(attrs)+len(nlri))
	out = append(out, byte(len(withdrawn)>>8), byte(len(withdrawn)))
	out = append(out, withdrawn...)
	out = append(out, byte(len(attrs)>>8), byte(len(attrs)))
	out = append(out, attrs...)
	out = append(out, nlri...)
	return out
}

func decodeUpdate(body []byte) (Update, error) {
	if len(body) < 2 {
		return Update{}, newDecodeError(KindLengthMismatch, "UPDATE body too short for withdrawn-routes length")
	}
	offset := 0

	withdrawnLen := int(body[offset])<<8 | int(body[offset+1])
	offset += 2
	if offset+withdrawnLen > len(body) {
		return Update{}, newDecodeError(KindLengthMismatch, "withdrawn-routes length %d exceeds body", withdrawnLen)
	}
	withdrawn, err := decodeNetworks(body[offset : offset+withdrawnLen])
	if err != nil {
		return Update{}, err
	}
	offset += withdrawnLen

	if offset+2 > len(body) {
		return Update{}, newDecodeError(KindLengthMismatch, "UPDATE body too short for path-attribute length")
	}
	attrLen := int(body[offset])<<8 | int(body[offset+1])
	offset += 2
	if offset+attrLen > len(body) {
		return Update{}, newDecodeError(KindLengthMismatch, "path-attribute length %d exceeds body", attrLen)
	}
	attrs, err := DecodeAttributes(body[offset : offset+attrLen])
	if err != nil {
		return Update{}, err
	}
	offset += attrLen

	nlri, err := decodeNetworks(body[offset:])
	if err != nil {
		return Update{}, err
	}

	return Update{Withdrawn: withdrawn, PathAttributes: attrs, NLRI: nlri}, nil
}

func decodeNetworks(data []byte) ([]Network, error) {
	var out []Network
	offset := 0
	for offset < len(data) {
		n, consumed, err := DecodeNetwork(data[offset:])
		if err != nil {
			return nil, err
		}
		out = append(out, n)
		offset += consumed
	}
	return out, nil
}

// Encode renders a Message to its full wire form: 19-byte header followed
// by the type-specific body. The length field written into the header is
// always the exact serialized length.
func Encode(m Message) []byte {
	body := m.body()
	total := HeaderLength + len(body)

	out := make([]byte, total)
	for i := 0; i < markerLength; i++ {
		out[i] = markerByte
	}
	out[16] = byte(total >> 8)
	out[17] = byte(total)
	out[18] = m.Type()
	copy(out[HeaderLength:], body)
	return out
}

// Decode parses one full wire message (header plus body) from data. The
// buffer must contain exactly one message; callers reading from a stream
// are responsible for framing (see Connection.GetMessage).
func Decode(data []byte) (Message, error) {
	if len(data) < HeaderLength {
		return nil, newDecodeError(KindTooShort, "buffer has %d bytes, need at least %d", len(data), HeaderLength)
	}

	for i := 0; i < markerLength; i++ {
		if data[i] != markerByte {
			return nil, newDecodeError(KindBadMarker, "marker byte %d is 0x%02x, want 0xff", i, data[i])
		}
	}

	length := int(data[16])<<8 | int(data[17])
	msgType := data[18]

	if length > len(data) {
		return nil, newDecodeError(KindLengthMismatch, "declared length %d exceeds buffer of %d", length, len(data))
	}
	if length < HeaderLength {
		return nil, newDecodeError(KindLengthMismatch, "declared length %d shorter than header", length)
	}
	if length != len(data) {
		return nil, newDecodeError(KindLengthMismatch, "declared length %d does not match buffer of %d", length, len(data))
	}

	body := data[HeaderLength:length]

	switch msgType {
	case MsgTypeOpen:
		return decodeOpen(body)
	case MsgTypeKeepalive:
		if len(body) != 0 {
			return nil, newDecodeError(KindLengthMismatch, "KEEPALIVE must have empty body, got %d bytes", len(body))
		}
		return Keepalive{}, nil
	case MsgTypeUpdate:
		return decodeUpdate(body)
	default:
		return nil, newDecodeError(KindUnknownType, "unknown message type %d", msgType)
	}
}

// DecodedLength returns the total wire length declared in a message's
// header, without validating or decoding the body. Used by the framed
// reader to know how many bytes to buffer before calling Decode.
func DecodedLength(header [HeaderLength]byte) (int, error) {
	for i := 0; i < markerLength; i++ {
		if header[i] != markerByte {
			return 0, newDecodeError(KindBadMarker, "marker byte %d is 0x%02x, want 0xff", i, header[i])
		}
	}
	length := int(header[16])<<8 | int(header[17])
	if length < HeaderLength {
		return 0, newDecodeError(KindLengthMismatch, "declared length %d shorter than header", length)
	}
	switch header[18] {
	case MsgTypeOpen, MsgTypeUpdate, MsgTypeKeepalive:
	default:
		return 0, newDecodeError(KindUnknownType, "unknown message type %d", header[18])
	}
	return length, nil
}

func (o Open) String() string {
	return fmt.Sprintf("OPEN{as=%d hold=%d id=%d.%d.%d.%d}", o.MyAS, o.HoldTime, o.Identifier[0], o.Identifier[1], o.Identifier[2], o.Identifier[3])
}
