// Package metrics defines the Prometheus collectors peerd exposes and a
// small http.Handler server to serve them.
package metrics

import (
	"context"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/nullrouted/peerd/internal/bgp"
)

var (
	// PeerState reports the FSM state as an enumerated gauge: 0=Idle,
	// 1=Connect, 2=OpenSent, 3=OpenConfirm, 4=Established.
	PeerState = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "peerd_peer_state",
			Help: "Current FSM state of a peer session (0=Idle..4=Established).",
		},
		[]string{"peer"},
	)

	MessagesSentTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "peerd_messages_sent_total",
			Help: "BGP messages written to the wire, by type.",
		},
		[]string{"peer", "type"},
	)

	MessagesReceivedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "peerd_messages_received_total",
			Help: "BGP messages read from the wire, by type.",
		},
		[]string{"peer", "type"},
	)

	LocRibSize = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "peerd_loc_rib_routes",
			Help: "Number of routes currently held in a peer's Loc-RIB.",
		},
		[]string{"peer"},
	)

	AdjRibOutSize = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "peerd_adj_rib_out_routes",
			Help: "Number of routes currently advertised in a peer's Adj-RIB-Out.",
		},
		[]string{"peer"},
	)

	PeerFatalTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "peerd_peer_fatal_total",
			Help: "Fatal errors that ended a peer session.",
		},
		[]string{"peer"},
	)
)

func init() {
	prometheus.MustRegister(
		PeerState,
		MessagesSentTotal,
		MessagesReceivedTotal,
		LocRibSize,
		AdjRibOutSize,
		PeerFatalTotal,
	)
}

// Notify is a bgp.Notify that records lifecycle events as Prometheus
// samples. It does not log; compose it with another Notify (see
// internal/peerlog) when both are wanted.
type Notify struct{}

func (Notify) Transition(peer, from, to string) {
	PeerState.WithLabelValues(peer).Set(StateValue(to))
}

func (Notify) Sent(peer string, msgType uint8) {
	MessagesSentTotal.WithLabelValues(peer, messageTypeName(msgType)).Inc()
}

func (Notify) Received(peer string, msgType uint8) {
	MessagesReceivedTotal.WithLabelValues(peer, messageTypeName(msgType)).Inc()
}

func (Notify) Fatal(peer string, err error) {
	PeerFatalTotal.WithLabelValues(peer).Inc()
}

func messageTypeName(t uint8) string {
	switch t {
	case bgp.MsgTypeOpen:
		return "OPEN"
	case bgp.MsgTypeUpdate:
		return "UPDATE"
	case bgp.MsgTypeKeepalive:
		return "KEEPALIVE"
	default:
		return "UNKNOWN"
	}
}

var _ bgp.Notify = Notify{}

// StateValue maps an FSM state name to the numeric value PeerState
// reports; unrecognized names report -1.
func StateValue(state string) float64 {
	switch state {
	case "Idle":
		return 0
	case "Connect":
		return 1
	case "OpenSent":
		return 2
	case "OpenConfirm":
		return 3
	case "Established":
		return 4
	default:
		return -1
	}
}

// Serve starts a promhttp server on addr and blocks until ctx is
// cancelled or the server fails.
func Serve(ctx context.Context, addr string) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())

	srv := &http.Server{Addr: addr, Handler: mux}

	errCh := make(chan error, 1)
	go func() { errCh <- srv.ListenAndServe() }()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		return err
	}
}
