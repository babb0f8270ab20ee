// Copyright 2024 The babeld Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//   http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package control

import (
	"net/netip"
	"slices"

	"github.com/babelrouting/babeld/babeld/iface"
)

// AddressAdded handles a new address on an interface. An IPv4 address
// invalidates the routes learned over the interface and becomes the IPv4
// next hop unless one is already set. IPv6 link-local addresses are recorded
// for IsLocalAddress.
func (c *Controller) AddressAdded(name string, prefix netip.Prefix) {
	c.logger.Debug("Received interface address add", "interface", name, "prefix", prefix)
	ifp, ok := c.ifaces[name]
	if !ok {
		c.logger.Debug("Ignoring event for unknown interface", "interface", name)
		return
	}
	if addr := prefix.Addr(); addr.Is4() {
		c.routes.FlushInterface(ifp)
		if ifp.IPv4 == nil {
			ifp.IPv4 = &addr
		}
	} else if isLinkLocal(addr) && !ifp.HasLinkLocal(addr) {
		ifp.LinkLocal = append(ifp.LinkLocal, addr.WithZone(""))
	}
	c.resync(ifp)
}

// AddressDeleted handles the removal of an address. The IPv4 next hop is
// cleared if it is the removed address.
func (c *Controller) AddressDeleted(name string, prefix netip.Prefix) {
	c.logger.Debug("Received interface address delete", "interface", name, "prefix", prefix)
	ifp, ok := c.ifaces[name]
	if !ok {
		c.logger.Debug("Ignoring event for unknown interface", "interface", name)
		return
	}
	if addr := prefix.Addr(); addr.Is4() {
		c.routes.FlushInterface(ifp)
		if ifp.IPv4 != nil && *ifp.IPv4 == addr {
			ifp.IPv4 = nil
		}
	} else if isLinkLocal(addr) {
		ll := addr.WithZone("")
		ifp.LinkLocal = slices.DeleteFunc(ifp.LinkLocal, func(a netip.Addr) bool {
			return a == ll
		})
	}
	c.resync(ifp)
}

// IsLocalAddress reports whether addr is one of our IPv6 link-local addresses
// on the named interface. It is false unless the protocol runs on the
// interface.
func (c *Controller) IsLocalAddress(name string, addr netip.Addr) bool {
	ifp, ok := c.ifaces[name]
	if !ok || !ifp.Up {
		return false
	}
	return ifp.HasLinkLocal(addr)
}

func isLinkLocal(addr netip.Addr) bool {
	return addr.Is6() && !addr.Is4In6() && addr.IsLinkLocalUnicast()
}

// resync asks the neighbours for their routes and announces ours. Nothing is
// sent on interfaces the protocol does not run on.
func (c *Controller) resync(ifp *iface.State) {
	if !ifp.Up {
		return
	}
	if err := c.messenger.SendRequest(ifp); err != nil {
		c.logger.Error("Sending request failed", "interface", ifp.Name, "err", err)
	}
	if err := c.messenger.SendUpdate(ifp); err != nil {
		c.logger.Error("Sending update failed", "interface", ifp.Name, "err", err)
	}
}
