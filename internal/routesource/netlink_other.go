//go:build !linux

package routesource

import (
	"errors"

	"github.com/nullrouted/peerd/internal/bgp"
)

type unsupported struct{}

func newKernel() bgp.RouteSource {
	return unsupported{}
}

func (unsupported) Lookup(bgp.Network) ([]bgp.Network, error) {
	return nil, errors.New("routesource: kernel route lookup is only implemented on linux")
}
