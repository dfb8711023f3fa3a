//go:build linux

package routesource

import (
	"fmt"

	"github.com/vishvananda/netlink"

	"github.com/nullrouted/peerd/internal/bgp"
)

// kernel queries the kernel's IPv4 routing table via netlink.
type kernel struct{}

func newKernel() bgp.RouteSource {
	return kernel{}
}

// Lookup lists IPv4 routes and returns those whose destination exactly
// matches network (same address and prefix length).
func (kernel) Lookup(network bgp.Network) ([]bgp.Network, error) {
	routes, err := netlink.RouteList(nil, netlink.FAMILY_V4)
	if err != nil {
		return nil, fmt.Errorf("routesource: route list: %w", err)
	}

	var out []bgp.Network
	for _, r := range routes {
		if r.Dst == nil || r.Dst.IP.To4() == nil {
			continue
		}
		ones, _ := r.Dst.Mask.Size()

		var addr [4]byte
		copy(addr[:], r.Dst.IP.To4())

		candidate, err := bgp.NewNetwork(addr, uint8(ones))
		if err != nil {
			continue
		}
		if candidate.Equal(network) {
			out = append(out, candidate)
		}
	}
	return out, nil
}
