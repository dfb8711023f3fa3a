/*
 * Copyright (C) 2021-present David Coles
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU General Public License as published by
 * the Free Software Foundation; either version 2 of the License, or
 * (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU General Public License along
 * with this program; if not, write to the Free Software Foundation, Inc.,
 * 51 Franklin Street, Fifth Floor, Boston, MA 02110-1301 USA.
 */

package bgp

// StaticRouteSource is a fixed-list RouteSource: it answers Lookup with
// whichever of its configured Routes exactly match the queried prefix.
// Used by tests and by `peerd run --route-source=static`.
type StaticRouteSource struct {
	Routes []Network
}

// Lookup returns every route equal to network.
func (s StaticRouteSource) Lookup(network Network) ([]Network, error) {
	var out []Network
	for _, r := range s.Routes {
		if r.Equal(network) {
			out = append(out, r)
		}
	}
	return out, nil
}
