package bgp

import (
	"bytes"
	"testing"
)

func TestOriginAttrEncoding(t *testing.T) {
	got := EncodeAttribute(OriginAttr{Value: OriginIGP})
	want := []byte{AttrFlagTransitive, AttrTypeOrigin, 1, 0}
	if !bytes.Equal(got, want) {
		t.Fatalf("EncodeAttribute(Origin) = % x, want % x", got, want)
	}
}

func TestAsPathPrepend(t *testing.T) {
	empty := AsPathAttr{Segments: []ASPathSegment{{Type: AsSequence, ASNs: nil}}}

	prepended := empty.PrependAS(64513)

	if len(prepended.Segments) != 1 || prepended.Segments[0].Type != AsSequence {
		t.Fatalf("PrependAS changed segment shape: %+v", prepended.Segments)
	}
	if len(prepended.Segments[0].ASNs) != 1 || prepended.Segments[0].ASNs[0] != 64513 {
		t.Fatalf("PrependAS = %v, want [64513]", prepended.Segments[0].ASNs)
	}

	twice := prepended.PrependAS(64512)
	want := []ASN{64512, 64513}
	if len(twice.Segments[0].ASNs) != 2 || twice.Segments[0].ASNs[0] != want[0] || twice.Segments[0].ASNs[1] != want[1] {
		t.Fatalf("second PrependAS = %v, want %v", twice.Segments[0].ASNs, want)
	}

	// original must be unmodified (PrependAS is a copy).
	if len(empty.Segments[0].ASNs) != 0 {
		t.Fatalf("PrependAS mutated the receiver: %v", empty.Segments[0].ASNs)
	}
}

func TestAsPathPrependNoExistingSequence(t *testing.T) {
	set := AsPathAttr{Segments: []ASPathSegment{{Type: AsSet, ASNs: []ASN{100}}}}

	prepended := set.PrependAS(200)
	if len(prepended.Segments) != 2 {
		t.Fatalf("expected a new AS_SEQUENCE segment to be added, got %+v", prepended.Segments)
	}
	if prepended.Segments[0].Type != AsSequence || prepended.Segments[0].ASNs[0] != 200 {
		t.Fatalf("new segment = %+v, want AS_SEQUENCE([200])", prepended.Segments[0])
	}
}

func TestDecodeAttributesRoundTrip(t *testing.T) {
	attrs := []PathAttribute{
		OriginAttr{Value: OriginEGP},
		AsPathAttr{Segments: []ASPathSegment{{Type: AsSequence, ASNs: []ASN{64512, 64513}}}},
		NextHopAttr{Addr: [4]byte{192, 0, 2, 1}},
	}

	encoded := EncodeAttributes(attrs)
	decoded, err := DecodeAttributes(encoded)
	if err != nil {
		t.Fatalf("DecodeAttributes: %v", err)
	}
	if len(decoded) != 3 {
		t.Fatalf("got %d attributes, want 3", len(decoded))
	}

	origin, ok := decoded[0].(OriginAttr)
	if !ok || origin.Value != OriginEGP {
		t.Fatalf("attr 0 = %+v, want OriginAttr{EGP}", decoded[0])
	}
	nh, ok := decoded[2].(NextHopAttr)
	if !ok || nh.Addr != [4]byte{192, 0, 2, 1} {
		t.Fatalf("attr 2 = %+v, want NextHopAttr{192.0.2.1}", decoded[2])
	}

	reencoded := EncodeAttributes(decoded)
	if !bytes.Equal(reencoded, encoded) {
		t.Fatalf("encode(decode(b)) != b")
	}
}

func TestDecodeAttributesRejectsUnknownType(t *testing.T) {
	buf := []byte{AttrFlagTransitive, 99, 1, 0}
	_, err := DecodeAttributes(buf)
	if err == nil {
		t.Fatal("expected error for unknown attribute type")
	}
	de, ok := err.(*DecodeError)
	if !ok || de.Kind != KindMalformedAttribute {
		t.Fatalf("got %v, want KindMalformedAttribute", err)
	}
}
