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

// Package netif tracks the network interfaces and addresses of the host via
// netlink and reports changes as interface events.
package netif

import (
	"context"
	"net"
	"net/netip"

	"github.com/vishvananda/netlink"
	"go4.org/netipx"
	"golang.org/x/sys/unix"

	"github.com/babelrouting/babeld/babeld/control"
	"github.com/babelrouting/babeld/pkg/log"
	"github.com/babelrouting/babeld/pkg/private/serrors"
)

// Events receives interface and address changes. It is implemented by
// *control.Controller.
type Events interface {
	InterfaceCreated(link control.Link)
	InterfaceUp(link control.Link)
	InterfaceDown(name string)
	InterfaceDestroyed(name string)
	AddressAdded(name string, prefix netip.Prefix)
	AddressDeleted(name string, prefix netip.Prefix)
}

// Netlink is the part of the netlink API used by the tracker.
type Netlink interface {
	LinkList() ([]netlink.Link, error)
	AddrList(link netlink.Link, family int) ([]netlink.Addr, error)
	LinkSubscribe(ch chan<- netlink.LinkUpdate, done <-chan struct{}) error
	AddrSubscribe(ch chan<- netlink.AddrUpdate, done <-chan struct{}) error
}

// System is the netlink API of the running kernel.
type System struct{}

func (System) LinkList() ([]netlink.Link, error) {
	return netlink.LinkList()
}

func (System) AddrList(link netlink.Link, family int) ([]netlink.Addr, error) {
	return netlink.AddrList(link, family)
}

func (System) LinkSubscribe(ch chan<- netlink.LinkUpdate, done <-chan struct{}) error {
	return netlink.LinkSubscribe(ch, done)
}

func (System) AddrSubscribe(ch chan<- netlink.AddrUpdate, done <-chan struct{}) error {
	return netlink.AddrSubscribe(ch, done)
}

// Tracker translates netlink notifications into interface events. Events are
// handed to Dispatch, which is expected to run them on the event loop.
type Tracker struct {
	Netlink  Netlink
	Dispatch func(ctx context.Context, fn func(Events)) error
	Logger   log.Logger

	links map[int]control.Link
}

// Run reports all existing interfaces and addresses, then follows changes
// until ctx is done or a subscription ends.
func (t *Tracker) Run(ctx context.Context) error {
	if t.Netlink == nil {
		t.Netlink = System{}
	}
	if t.Logger == nil {
		t.Logger = log.New("component", "netif")
	}
	t.links = make(map[int]control.Link)

	done := make(chan struct{})
	defer close(done)
	linkCh := make(chan netlink.LinkUpdate, 64)
	addrCh := make(chan netlink.AddrUpdate, 64)
	// Subscribe before listing so that no change is lost in between.
	if err := t.Netlink.LinkSubscribe(linkCh, done); err != nil {
		return serrors.Wrap("subscribing to link updates", err)
	}
	if err := t.Netlink.AddrSubscribe(addrCh, done); err != nil {
		return serrors.Wrap("subscribing to address updates", err)
	}
	if err := t.initial(ctx); err != nil {
		return err
	}
	for {
		select {
		case <-ctx.Done():
			return nil
		case u, ok := <-linkCh:
			if !ok {
				return serrors.New("link subscription closed")
			}
			deleted := u.Header.Type == unix.RTM_DELLINK
			if err := t.handleLink(ctx, LinkFromAttrs(u.Link.Attrs()), deleted); err != nil {
				return err
			}
		case u, ok := <-addrCh:
			if !ok {
				return serrors.New("address subscription closed")
			}
			if err := t.handleAddr(ctx, u.LinkIndex, u.LinkAddress, u.NewAddr); err != nil {
				return err
			}
		}
	}
}

func (t *Tracker) initial(ctx context.Context) error {
	links, err := t.Netlink.LinkList()
	if err != nil {
		return serrors.Wrap("listing links", err)
	}
	for _, l := range links {
		if err := t.handleLink(ctx, LinkFromAttrs(l.Attrs()), false); err != nil {
			return err
		}
		addrs, err := t.Netlink.AddrList(l, netlink.FAMILY_ALL)
		if err != nil {
			t.Logger.Error("Listing addresses failed", "interface", l.Attrs().Name, "err", err)
			continue
		}
		for _, a := range addrs {
			if a.IPNet == nil {
				continue
			}
			if err := t.handleAddr(ctx, l.Attrs().Index, *a.IPNet, true); err != nil {
				return err
			}
		}
	}
	return nil
}

func (t *Tracker) handleLink(ctx context.Context, link control.Link, deleted bool) error {
	prev, known := t.links[link.Index]
	if deleted {
		if !known {
			return nil
		}
		delete(t.links, link.Index)
		return t.Dispatch(ctx, func(e Events) { e.InterfaceDestroyed(prev.Name) })
	}
	t.links[link.Index] = link
	if known && prev.Name != link.Name {
		t.Logger.Debug("Interface renamed", "from", prev.Name, "to", link.Name)
		if err := t.Dispatch(ctx, func(e Events) { e.InterfaceDestroyed(prev.Name) }); err != nil {
			return err
		}
		known = false
	}
	switch Classify(prev, known, link) {
	case Created:
		return t.Dispatch(ctx, func(e Events) { e.InterfaceCreated(link) })
	case Up:
		return t.Dispatch(ctx, func(e Events) { e.InterfaceUp(link) })
	case Down:
		return t.Dispatch(ctx, func(e Events) { e.InterfaceDown(link.Name) })
	}
	return nil
}

func (t *Tracker) handleAddr(ctx context.Context, index int, ipnet net.IPNet, added bool) error {
	link, ok := t.links[index]
	if !ok {
		t.Logger.Debug("Ignoring address on unknown interface", "index", index)
		return nil
	}
	prefix, ok := PrefixFromIPNet(ipnet)
	if !ok {
		return nil
	}
	if added {
		return t.Dispatch(ctx, func(e Events) { e.AddressAdded(link.Name, prefix) })
	}
	return t.Dispatch(ctx, func(e Events) { e.AddressDeleted(link.Name, prefix) })
}

// Change is the event a link update maps to.
type Change int

const (
	// Unchanged link updates are not reported.
	Unchanged Change = iota
	Created
	Up
	Down
)

// Classify returns the event for the link update cur, given the previous
// facts about the link.
func Classify(prev control.Link, known bool, cur control.Link) Change {
	switch {
	case !known:
		return Created
	case cur.Operative && !prev.Operative:
		return Up
	case !cur.Operative && prev.Operative:
		return Down
	case cur.Operative && (cur.MTU4 != prev.MTU4 || cur.MTU6 != prev.MTU6):
		return Up
	}
	return Unchanged
}

// LinkFromAttrs maps netlink link attributes. A link is operative if it is
// administratively up and running.
func LinkFromAttrs(a *netlink.LinkAttrs) control.Link {
	const running = unix.IFF_UP | unix.IFF_RUNNING
	return control.Link{
		Name:      a.Name,
		Index:     a.Index,
		MTU4:      a.MTU,
		MTU6:      a.MTU,
		Operative: a.RawFlags&running == running,
	}
}

// PrefixFromIPNet converts an interface address. IPv4-mapped addresses are
// unmapped.
func PrefixFromIPNet(n net.IPNet) (netip.Prefix, bool) {
	p, ok := netipx.FromStdIPNet(&n)
	if !ok || !p.IsValid() {
		return netip.Prefix{}, false
	}
	return p, true
}
