package bgp

import (
	"bytes"
	"testing"
)

func TestNetworkEncoding(t *testing.T) {
	n := mustNetwork(t, [4]byte{10, 100, 220, 0}, 24)

	want := []byte{24, 10, 100, 220}
	got := n.Encode()
	if !bytes.Equal(got, want) {
		t.Fatalf("Encode() = % x, want % x", got, want)
	}

	decoded, consumed, err := DecodeNetwork(got)
	if err != nil {
		t.Fatalf("DecodeNetwork: %v", err)
	}
	if consumed != len(got) {
		t.Fatalf("consumed %d bytes, want %d", consumed, len(got))
	}
	if !decoded.Equal(n) {
		t.Fatalf("DecodeNetwork = %v, want %v", decoded, n)
	}
}

func TestNetworkZeroLengthPrefix(t *testing.T) {
	n := mustNetwork(t, [4]byte{0, 0, 0, 0}, 0)

	got := n.Encode()
	want := []byte{0}
	if !bytes.Equal(got, want) {
		t.Fatalf("Encode() = % x, want % x", got, want)
	}

	decoded, consumed, err := DecodeNetwork(got)
	if err != nil {
		t.Fatalf("DecodeNetwork: %v", err)
	}
	if consumed != 1 {
		t.Fatalf("consumed %d, want 1", consumed)
	}
	if decoded.Length != 0 {
		t.Fatalf("Length = %d, want 0", decoded.Length)
	}
}

func TestNetworkMasksHostBits(t *testing.T) {
	n, err := NewNetwork([4]byte{10, 100, 220, 255}, 24)
	if err != nil {
		t.Fatalf("NewNetwork: %v", err)
	}
	want := [4]byte{10, 100, 220, 0}
	if n.Addr != want {
		t.Fatalf("Addr = %v, want %v (host bits must be masked)", n.Addr, want)
	}
}

func TestNetworkRejectsOversizedPrefix(t *testing.T) {
	if _, err := NewNetwork([4]byte{}, 33); err == nil {
		t.Fatal("expected error for prefix length 33")
	}
}

func TestDecodeNetworksMultiple(t *testing.T) {
	a := mustNetwork(t, [4]byte{192, 168, 1, 0}, 24)
	b := mustNetwork(t, [4]byte{10, 0, 0, 0}, 8)

	buf := append(a.Encode(), b.Encode()...)
	out, err := decodeNetworks(buf)
	if err != nil {
		t.Fatalf("decodeNetworks: %v", err)
	}
	if len(out) != 2 || !out[0].Equal(a) || !out[1].Equal(b) {
		t.Fatalf("decodeNetworks = %v, want [%v %v]", out, a, b)
	}
}
