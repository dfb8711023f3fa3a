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

// Path attribute flag bits, RFC 4271 §4.3.
const (
	AttrFlagOptional       uint8 = 0x80
	AttrFlagTransitive     uint8 = 0x40
	AttrFlagPartial        uint8 = 0x20
	AttrFlagExtendedLength uint8 = 0x10
)

// Path attribute type codes.
const (
	AttrTypeOrigin  uint8 = 1
	AttrTypeAsPath  uint8 = 2
	AttrTypeNextHop uint8 = 3
)

// OriginValue is the BGP ORIGIN attribute value.
type OriginValue uint8

const (
	OriginIGP        OriginValue = 0
	OriginEGP        OriginValue = 1
	OriginIncomplete OriginValue = 2
)

// ASPathSegmentType distinguishes AS_SET from AS_SEQUENCE.
type ASPathSegmentType uint8

const (
	AsSet      ASPathSegmentType = 1
	AsSequence ASPathSegmentType = 2
)

// ASPathSegment is one segment of an AS_PATH attribute.
type ASPathSegment struct {
	Type ASPathSegmentType
	ASNs []ASN
}

// PathAttribute is the tagged union of the three attribute variants this
// speaker produces and consumes: Origin, AsPath, NextHop.
type PathAttribute interface {
	attrType() uint8
	attrFlags() uint8
	encodeValue() []byte
}

// OriginAttr is the well-known mandatory ORIGIN attribute.
type OriginAttr struct {
	Value OriginValue
}

func (OriginAttr) attrType() uint8    { return AttrTypeOrigin }
func (OriginAttr) attrFlags() uint8   { return AttrFlagTransitive }
func (a OriginAttr) encodeValue() []byte {
	return []byte{byte(a.Value)}
}

// AsPathAttr is the well-known mandatory AS_PATH attribute.
type AsPathAttr struct {
	Segments []ASPathSegment
}

func (AsPathAttr) attrType() uint8  { return AttrTypeAsPath }
func (AsPathAttr) attrFlags() uint8 { return AttrFlagTransitive }
func (a AsPathAttr) encodeValue() []byte {
	var out []byte
	for _, seg := range a.Segments {
		out = append(out, byte(seg.Type), byte(len(seg.ASNs)))
		for _, asn := range seg.ASNs {
			out = append(out, byte(asn>>8), byte(asn))
		}
	}
	return out
}

// PrependAS returns a copy of the attribute with asn prepended to the
// first AS_SEQUENCE segment. If no AS_SEQUENCE segment exists, one is
// created at the front holding just asn.
func (a AsPathAttr) PrependAS(asn ASN) AsPathAttr {
	segments := make([]ASPathSegment, len(a.Segments))
	copy(segments, a.Segments)

	for i := range segments {
		if segments[i].Type == AsSequence {
			asns := make([]ASN, 0, len(segments[i].ASNs)+1)
			asns = append(asns, asn)
			asns = append(asns, segments[i].ASNs...)
			segments[i].ASNs = asns
			return AsPathAttr{Segments: segments}
		}
	}

	return AsPathAttr{Segments: append([]ASPathSegment{{Type: AsSequence, ASNs: []ASN{asn}}}, segments...)}
}

// NextHopAttr is the well-known mandatory NEXT_HOP attribute.
type NextHopAttr struct {
	Addr [4]byte
}

func (NextHopAttr) attrType() uint8  { return AttrTypeNextHop }
func (NextHopAttr) attrFlags() uint8 { return AttrFlagTransitive }
func (a NextHopAttr) encodeValue() []byte {
	return append([]byte{}, a.Addr[:]...)
}

// EncodeAttribute serializes one path attribute as
// flags(1) | type(1) | length(1 or 2) | value.
func EncodeAttribute(a PathAttribute) []byte {
	value := a.encodeValue()
	flags := a.attrFlags()

	out := []byte{flags, a.attrType()}
	if len(value) > 255 {
		flags |= AttrFlagExtendedLength
		out[0] = flags
		out = append(out, byte(len(value)>>8), byte(len(value)))
	} else {
		out = append(out, byte(len(value)))
	}
	return append(out, value...)
}

// EncodeAttributes serializes a full path attribute list in sequence.
func EncodeAttributes(attrs []PathAttribute) []byte {
	var out []byte
	for _, a := range attrs {
		out = append(out, EncodeAttribute(a)...)
	}
	return out
}

// DecodeAttributes parses the path-attribute section of an Update message.
func DecodeAttributes(data []byte) ([]PathAttribute, error) {
	var attrs []PathAttribute
	offset := 0

	for offset < len(data) {
		if offset+2 > len(data) {
			return nil, newDecodeError(KindMalformedAttribute, "truncated attribute header at %d", offset)
		}
		flags := data[offset]
		typeCode := data[offset+1]
		offset += 2

		var length int
		if flags&AttrFlagExtendedLength != 0 {
			if offset+2 > len(data) {
				return nil, newDecodeError(KindMalformedAttribute, "truncated extended length at %d", offset)
			}
			length = int(data[offset])<<8 | int(data[offset+1])
			offset += 2
		} else {
			if offset+1 > len(data) {
				return nil, newDecodeError(KindMalformedAttribute, "truncated length at %d", offset)
			}
			length = int(data[offset])
			offset++
		}

		if offset+length > len(data) {
			return nil, newDecodeError(KindMalformedAttribute, "attribute value truncated (type %d, need %d, have %d)", typeCode, length, len(data)-offset)
		}
		value := data[offset : offset+length]
		offset += length

		attr, err := decodeAttributeValue(typeCode, value)
		if err != nil {
			return nil, err
		}
		attrs = append(attrs, attr)
	}

	return attrs, nil
}

func decodeAttributeValue(typeCode uint8, value []byte) (PathAttribute, error) {
	switch typeCode {
	case AttrTypeOrigin:
		if len(value) != 1 {
			return nil, newDecodeError(KindMalformedAttribute, "ORIGIN must be 1 byte, got %d", len(value))
		}
		return OriginAttr{Value: OriginValue(value[0])}, nil

	case AttrTypeAsPath:
		segments, err := decodeASPathSegments(value)
		if err != nil {
			return nil, err
		}
		return AsPathAttr{Segments: segments}, nil

	case AttrTypeNextHop:
		if len(value) != 4 {
			return nil, newDecodeError(KindMalformedAttribute, "NEXT_HOP must be 4 bytes, got %d", len(value))
		}
		var addr [4]byte
		copy(addr[:], value)
		return NextHopAttr{Addr: addr}, nil

	default:
		return nil, newDecodeError(KindMalformedAttribute, "unknown attribute type %d", typeCode)
	}
}

func decodeASPathSegments(data []byte) ([]ASPathSegment, error) {
	var segments []ASPathSegment
	offset := 0

	for offset < len(data) {
		if offset+2 > len(data) {
			return nil, newDecodeError(KindMalformedAttribute, "AS_PATH segment header truncated")
		}
		segType := ASPathSegmentType(data[offset])
		segLen := int(data[offset+1])
		offset += 2

		if offset+segLen*2 > len(data) {
			return nil, newDecodeError(KindMalformedAttribute, "AS_PATH segment truncated")
		}

		asns := make([]ASN, segLen)
		for i := 0; i < segLen; i++ {
			asns[i] = ASN(uint16(data[offset])<<8 | uint16(data[offset+1]))
			offset += 2
		}

		segments = append(segments, ASPathSegment{Type: segType, ASNs: asns})
	}

	return segments, nil
}

func (a OriginAttr) String() string {
	switch a.Value {
	case OriginIGP:
		return "IGP"
	case OriginEGP:
		return "EGP"
	case OriginIncomplete:
		return "INCOMPLETE"
	default:
		return fmt.Sprintf("UNKNOWN(%d)", a.Value)
	}
}
