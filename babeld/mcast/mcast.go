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

// Package mcast manages the protocol's UDP socket: membership of the
// link-local multicast group on each running interface and transmission of
// serialized packets to that group.
package mcast

import (
	"net"
	"net/netip"

	"golang.org/x/net/ipv6"
	"golang.org/x/sys/unix"

	"github.com/babelrouting/babeld/pkg/private/serrors"
)

const (
	// DefaultPort is the registered UDP port of the protocol.
	DefaultPort = 6696
	// DefaultHopLimit is used for all multicast transmissions.
	DefaultHopLimit = 1
)

// DefaultGroup is the link-local multicast group of the protocol.
var DefaultGroup = netip.MustParseAddr("ff02::1:6")

// PacketConn is the part of ipv6.PacketConn used by Conn.
type PacketConn interface {
	JoinGroup(ifi *net.Interface, group net.Addr) error
	LeaveGroup(ifi *net.Interface, group net.Addr) error
	WriteTo(b []byte, cm *ipv6.ControlMessage, dst net.Addr) (int, error)
	Close() error
}

// Conn is the multicast socket of the daemon.
type Conn struct {
	pconn PacketConn
	group *net.UDPAddr
	// interfaceByIndex resolves interface indexes. It defaults to
	// net.InterfaceByIndex.
	interfaceByIndex func(int) (*net.Interface, error)
}

// Listen opens a UDP socket on port and prepares it for sending to group.
// Multicast loopback is disabled.
func Listen(group netip.Addr, port uint16) (*Conn, error) {
	if !group.Is6() || !group.IsMulticast() {
		return nil, serrors.New("group must be an IPv6 multicast address", "group", group)
	}
	laddr := netip.AddrPortFrom(netip.IPv6Unspecified(), port)
	c, err := net.ListenUDP("udp6", net.UDPAddrFromAddrPort(laddr))
	if err != nil {
		return nil, serrors.Wrap("listening on socket", err, "listen", laddr)
	}
	pconn := ipv6.NewPacketConn(c)
	if err := pconn.SetMulticastLoopback(false); err != nil {
		c.Close()
		return nil, serrors.Wrap("disabling multicast loopback", err, "listen", laddr)
	}
	if err := pconn.SetMulticastHopLimit(DefaultHopLimit); err != nil {
		c.Close()
		return nil, serrors.Wrap("setting multicast hop limit", err, "listen", laddr)
	}
	return New(pconn, netip.AddrPortFrom(group, port)), nil
}

// New wraps an already bound packet connection.
func New(pconn PacketConn, group netip.AddrPort) *Conn {
	return &Conn{
		pconn:            pconn,
		group:            net.UDPAddrFromAddrPort(group),
		interfaceByIndex: net.InterfaceByIndex,
	}
}

// Join joins the multicast group on the interface with the given index. The
// underlying error is kept in the chain, so callers can match errno values
// such as EADDRINUSE.
func (c *Conn) Join(index int) error {
	ifi, err := c.resolve(index)
	if err != nil {
		return err
	}
	if err := c.pconn.JoinGroup(ifi, c.group); err != nil {
		return serrors.Wrap("joining group", err, "interface", ifi.Name, "group", c.group)
	}
	return nil
}

// Leave leaves the multicast group on the interface with the given index. If
// the interface no longer exists, the error matches unix.ENODEV.
func (c *Conn) Leave(index int) error {
	ifi, err := c.resolve(index)
	if err != nil {
		return err
	}
	if err := c.pconn.LeaveGroup(ifi, c.group); err != nil {
		return serrors.Wrap("leaving group", err, "interface", ifi.Name, "group", c.group)
	}
	return nil
}

// resolve looks up an interface by index. A failed lookup is reported as
// ENODEV, as the kernel does for group operations on a vanished interface.
func (c *Conn) resolve(index int) (*net.Interface, error) {
	ifi, err := c.interfaceByIndex(index)
	if err != nil {
		return nil, serrors.Join(unix.ENODEV, err, "index", index)
	}
	return ifi, nil
}

// Send transmits packet to the group out of the interface with the given
// index.
func (c *Conn) Send(index int, packet []byte) error {
	cm := &ipv6.ControlMessage{IfIndex: index, HopLimit: DefaultHopLimit}
	if _, err := c.pconn.WriteTo(packet, cm, c.group); err != nil {
		return serrors.Wrap("sending packet", err, "index", index, "size", len(packet))
	}
	return nil
}

// Group returns the destination of all packets.
func (c *Conn) Group() netip.AddrPort {
	return c.group.AddrPort()
}

func (c *Conn) Close() error {
	return c.pconn.Close()
}
