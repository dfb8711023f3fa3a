// Package routesource adapts the host's IPv4 routing table to
// bgp.RouteSource.
package routesource

import "github.com/nullrouted/peerd/internal/bgp"

// New returns the platform's kernel-backed RouteSource.
func New() bgp.RouteSource {
	return newKernel()
}
