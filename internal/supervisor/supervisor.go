// Package supervisor builds one Loc-RIB per peer configuration,
// spawns one Peer task per configuration, and drives them to completion.
// It never inspects a Peer's FSM state; it only starts them and collects
// the error, if any, each task ends with.
package supervisor

import (
	"context"
	"fmt"

	"github.com/nullrouted/peerd/internal/bgp"
	"github.com/nullrouted/peerd/internal/metrics"
)

// Result is one peer task's outcome, reported after its Peer stops.
type Result struct {
	Config PeerConfig
	Err    error
}

// PeerConfig re-exports bgp.PeerConfig so callers only need to import
// this package for the common case.
type PeerConfig = bgp.PeerConfig

// Run builds one Loc-RIB per configuration, starts a Peer task for each,
// and blocks until every task exits — either because ctx was cancelled
// or because the peer's Next loop returned a fatal error. Run never
// returns early for one peer's failure; siblings keep running.
func Run(ctx context.Context, configs []PeerConfig, source bgp.RouteSource, notify bgp.Notify) []Result {
	results := make(chan Result, len(configs))

	for _, cfg := range configs {
		cfg := cfg
		go func() {
			results <- runPeer(ctx, cfg, source, notify)
		}()
	}

	out := make([]Result, 0, len(configs))
	for range configs {
		out = append(out, <-results)
	}
	return out
}

func runPeer(ctx context.Context, cfg PeerConfig, source bgp.RouteSource, notify bgp.Notify) Result {
	locRib, err := bgp.BuildLocRib(cfg, source)
	if err != nil {
		return Result{Config: cfg, Err: fmt.Errorf("supervisor: build loc-rib: %w", err)}
	}

	peer := bgp.NewPeer(cfg, locRib, notify)
	peer.Start()

	addr := remoteAddr(cfg)

	for {
		select {
		case <-ctx.Done():
			return Result{Config: cfg}
		default:
		}

		if err := peer.Next(); err != nil {
			notify.Fatal(addr, err)
			return Result{Config: cfg, Err: err}
		}

		metrics.LocRibSize.WithLabelValues(addr).Set(float64(peer.LocRibLen()))
		metrics.AdjRibOutSize.WithLabelValues(addr).Set(float64(peer.AdjRibOutLen()))
	}
}

func remoteAddr(cfg PeerConfig) string {
	return fmt.Sprintf("%d.%d.%d.%d", cfg.RemoteIP[0], cfg.RemoteIP[1], cfg.RemoteIP[2], cfg.RemoteIP[3])
}
