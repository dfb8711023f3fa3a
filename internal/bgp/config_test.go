package bgp

import "testing"

func TestParsePeerConfig(t *testing.T) {
	cfg, err := ParsePeerConfig("64512 127.0.0.1 64513 127.0.0.2 active 10.100.220.0/24")
	if err != nil {
		t.Fatalf("ParsePeerConfig: %v", err)
	}

	if cfg.LocalAS != 64512 || cfg.RemoteAS != 64513 {
		t.Fatalf("AS numbers = (%d, %d), want (64512, 64513)", cfg.LocalAS, cfg.RemoteAS)
	}
	if cfg.LocalIP != [4]byte{127, 0, 0, 1} {
		t.Fatalf("LocalIP = %v", cfg.LocalIP)
	}
	if cfg.RemoteIP != [4]byte{127, 0, 0, 2} {
		t.Fatalf("RemoteIP = %v", cfg.RemoteIP)
	}
	if cfg.Mode != Active {
		t.Fatalf("Mode = %v, want Active", cfg.Mode)
	}
	if len(cfg.Networks) != 1 || cfg.Networks[0].Length != 24 {
		t.Fatalf("Networks = %v", cfg.Networks)
	}
}

func TestParsePeerConfigPassiveNoNetworks(t *testing.T) {
	cfg, err := ParsePeerConfig("64513 127.0.0.2 64512 127.0.0.1 passive")
	if err != nil {
		t.Fatalf("ParsePeerConfig: %v", err)
	}
	if cfg.Mode != Passive {
		t.Fatalf("Mode = %v, want Passive", cfg.Mode)
	}
	if len(cfg.Networks) != 0 {
		t.Fatalf("Networks = %v, want none", cfg.Networks)
	}
}

func TestParsePeerConfigRejectsBadMode(t *testing.T) {
	_, err := ParsePeerConfig("64512 127.0.0.1 64513 127.0.0.2 sideways")
	if err == nil {
		t.Fatal("expected error for invalid mode")
	}
}

func TestParsePeerConfigRejectsTooFewFields(t *testing.T) {
	_, err := ParsePeerConfig("64512 127.0.0.1 64513")
	if err == nil {
		t.Fatal("expected error for too few fields")
	}
}

func TestParsePeerConfigRejectsBadASN(t *testing.T) {
	_, err := ParsePeerConfig("99999999 127.0.0.1 64513 127.0.0.2 active")
	if err == nil {
		t.Fatal("expected error for AS number exceeding 16 bits")
	}
}
