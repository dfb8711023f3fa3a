package bgp

import (
	"bufio"
	"net"
	"testing"
	"time"
)

// pipeConnections returns two Connections wired together over a loopback
// TCP socket, standing in for the pair a real connect(Active)/connect(Passive)
// handshake would produce, so the FSM can be driven without needing root
// to bind port 179.
func pipeConnections(t *testing.T) (a, b *Connection) {
	t.Helper()

	listener, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	defer listener.Close()

	accepted := make(chan net.Conn, 1)
	go func() {
		c, err := listener.Accept()
		if err != nil {
			t.Errorf("accept: %v", err)
			return
		}
		accepted <- c
	}()

	dialed, err := net.Dial("tcp", listener.Addr().String())
	if err != nil {
		t.Fatalf("dial: %v", err)
	}

	server := <-accepted

	return &Connection{conn: dialed, reader: bufio.NewReaderSize(dialed, 4096)},
		&Connection{conn: server, reader: bufio.NewReaderSize(server, 4096)}
}

// drive steps a peer's Next until deadline, ignoring the "no fatal error"
// case, stopping early once it reaches Established.
func drive(t *testing.T, p *Peer, deadline time.Time) {
	t.Helper()
	for time.Now().Before(deadline) {
		if p.State() == Established {
			return
		}
		if err := p.Next(); err != nil {
			t.Fatalf("peer %s: %v", p.remoteAddr, err)
		}
	}
}

func TestFsmReachesEstablished(t *testing.T) {
	connA, connB := pipeConnections(t)

	cfgA := PeerConfig{LocalAS: 64512, LocalIP: [4]byte{127, 0, 0, 1}, RemoteAS: 64513, RemoteIP: [4]byte{127, 0, 0, 2}, Mode: Active}
	cfgB := PeerConfig{LocalAS: 64513, LocalIP: [4]byte{127, 0, 0, 2}, RemoteAS: 64512, RemoteIP: [4]byte{127, 0, 0, 1}, Mode: Passive}

	ribA, err := BuildLocRib(cfgA, StaticRouteSource{})
	if err != nil {
		t.Fatalf("BuildLocRib A: %v", err)
	}
	ribB, err := BuildLocRib(cfgB, StaticRouteSource{})
	if err != nil {
		t.Fatalf("BuildLocRib B: %v", err)
	}

	peerA := NewPeer(cfgA, ribA, nil)
	peerB := NewPeer(cfgB, ribB, nil)

	// Skip the TCP-establishment half of Idle (it dials real sockets via
	// connect); wire the already-connected pipe in directly and jump to
	// Connect, matching the state Idle/ManualStart would have produced.
	peerA.conn = connA
	peerA.state = Connect
	peerA.queue.Enqueue(EventTcpConnectionConfirmed{})

	peerB.conn = connB
	peerB.state = Connect
	peerB.queue.Enqueue(EventTcpConnectionConfirmed{})

	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		if peerA.State() == Established && peerB.State() == Established {
			return
		}
		if err := peerA.Next(); err != nil {
			t.Fatalf("peer A: %v", err)
		}
		if err := peerB.Next(); err != nil {
			t.Fatalf("peer B: %v", err)
		}
	}

	t.Fatalf("peers did not reach Established: A=%s B=%s", peerA.State(), peerB.State())
}

func TestEstablishedEmitsUpdatePerEntry(t *testing.T) {
	connA, connB := pipeConnections(t)
	defer connA.Close()
	defer connB.Close()

	network := mustNetwork(t, [4]byte{10, 100, 220, 0}, 24)
	cfgA := PeerConfig{LocalAS: 64512, LocalIP: [4]byte{127, 0, 0, 1}, RemoteAS: 64513, RemoteIP: [4]byte{127, 0, 0, 2}, Networks: []Network{network}}

	rib, err := BuildLocRib(cfgA, StaticRouteSource{Routes: []Network{network}})
	if err != nil {
		t.Fatalf("BuildLocRib: %v", err)
	}

	peerA := NewPeer(cfgA, rib, nil)
	peerA.conn = connA
	peerA.state = Established
	peerA.queue.Enqueue(EventEstablished{})

	if err := peerA.Next(); err != nil { // Established -> rebuilds Adj-RIB-Out, enqueues AdjRibOutChanged
		t.Fatalf("Next (rebuild): %v", err)
	}
	if err := peerA.Next(); err != nil { // AdjRibOutChanged -> emits Update(s)
		t.Fatalf("Next (emit): %v", err)
	}

	connB.conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	msg, err := connB.GetMessage(2 * time.Second)
	if err != nil {
		t.Fatalf("GetMessage: %v", err)
	}
	update, ok := msg.(Update)
	if !ok {
		t.Fatalf("got %T, want Update", msg)
	}
	if len(update.NLRI) != 1 || !update.NLRI[0].Equal(network) {
		t.Fatalf("NLRI = %v, want [%v]", update.NLRI, network)
	}
}
