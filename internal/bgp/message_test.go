package bgp

import (
	"bytes"
	"testing"
)

func TestKeepaliveRoundTrip(t *testing.T) {
	want := append(bytes.Repeat([]byte{0xFF}, 16), 0x00, 0x13, 0x04)

	got := Encode(Keepalive{})
	if !bytes.Equal(got, want) {
		t.Fatalf("Encode(Keepalive{}) = % x, want % x", got, want)
	}

	decoded, err := Decode(got)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if _, ok := decoded.(Keepalive); !ok {
		t.Fatalf("Decode returned %T, want Keepalive", decoded)
	}
}

func TestOpenRoundTrip(t *testing.T) {
	want := append(bytes.Repeat([]byte{0xFF}, 16),
		0x00, 0x1D, 0x01,
		0x04,
		0xFC, 0x00,
		0x00, 0x00,
		0x7F, 0x00, 0x00, 0x01,
		0x00,
	)

	open := Open{
		Version:    4,
		MyAS:       64512,
		HoldTime:   0,
		Identifier: [4]byte{127, 0, 0, 1},
	}

	got := Encode(open)
	if !bytes.Equal(got, want) {
		t.Fatalf("Encode(Open) = % x, want % x", got, want)
	}

	decoded, err := Decode(got)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if decoded != Message(open) {
		t.Fatalf("Decode(Encode(open)) = %+v, want %+v", decoded, open)
	}

	reencoded := Encode(decoded)
	if !bytes.Equal(reencoded, got) {
		t.Fatalf("encode(decode(b)) != b: got % x, want % x", reencoded, got)
	}
}

func TestDecodeRejectsShortBuffer(t *testing.T) {
	_, err := Decode(make([]byte, 10))
	if err == nil {
		t.Fatal("expected error for short buffer")
	}
	de, ok := err.(*DecodeError)
	if !ok || de.Kind != KindTooShort {
		t.Fatalf("got %v, want KindTooShort", err)
	}
}

func TestDecodeRejectsBadMarker(t *testing.T) {
	buf := Encode(Keepalive{})
	buf[0] = 0x00

	_, err := Decode(buf)
	de, ok := err.(*DecodeError)
	if !ok || de.Kind != KindBadMarker {
		t.Fatalf("got %v, want KindBadMarker", err)
	}
}

func TestDecodeRejectsUnknownType(t *testing.T) {
	buf := Encode(Keepalive{})
	buf[18] = 99

	_, err := Decode(buf)
	de, ok := err.(*DecodeError)
	if !ok || de.Kind != KindUnknownType {
		t.Fatalf("got %v, want KindUnknownType", err)
	}
}

func TestDecodeRejectsLengthMismatch(t *testing.T) {
	buf := append(Encode(Keepalive{}), 0x00) // trailing byte, header still says 19

	_, err := Decode(buf)
	de, ok := err.(*DecodeError)
	if !ok || de.Kind != KindLengthMismatch {
		t.Fatalf("got %v, want KindLengthMismatch", err)
	}
}

func TestUpdateRoundTrip(t *testing.T) {
	update := Update{
		NLRI: []Network{
			mustNetwork(t, [4]byte{10, 100, 220, 0}, 24),
		},
		PathAttributes: []PathAttribute{
			OriginAttr{Value: OriginIGP},
			AsPathAttr{Segments: []ASPathSegment{{Type: AsSequence, ASNs: []ASN{64513}}}},
			NextHopAttr{Addr: [4]byte{10, 100, 220, 3}},
		},
	}

	buf := Encode(update)
	decoded, err := Decode(buf)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}

	got, ok := decoded.(Update)
	if !ok {
		t.Fatalf("Decode returned %T, want Update", decoded)
	}

	if len(got.NLRI) != 1 || !got.NLRI[0].Equal(update.NLRI[0]) {
		t.Fatalf("NLRI mismatch: got %v, want %v", got.NLRI, update.NLRI)
	}
	if len(got.PathAttributes) != 3 {
		t.Fatalf("got %d path attributes, want 3", len(got.PathAttributes))
	}

	reencoded := Encode(got)
	if !bytes.Equal(reencoded, buf) {
		t.Fatalf("encode(decode(b)) != b")
	}
}

func mustNetwork(t *testing.T, addr [4]byte, length uint8) Network {
	t.Helper()
	n, err := NewNetwork(addr, length)
	if err != nil {
		t.Fatalf("NewNetwork: %v", err)
	}
	return n
}
