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

	"github.com/babelrouting/babeld/babeld/iface"
	"github.com/babelrouting/babeld/pkg/private/serrors"
)

// Enable adds an interface to the enable set and starts the protocol on it if
// it exists and is operative. Enabling by network prefix or address is not
// supported.
func (c *Controller) Enable(name string) error {
	if IsNetwork(name) {
		return serrors.JoinNoStack(ErrNotSupported, nil, "network", name)
	}
	if !c.enabled.Add(name) {
		return serrors.JoinNoStack(ErrConfigConflict, nil, "interface", name)
	}
	if ifp, ok := c.ifaces[name]; ok {
		ifp.Enabled = true
		c.recalculate(ifp)
	}
	return nil
}

// Disable removes an interface from the enable set and stops the protocol on
// it.
func (c *Controller) Disable(name string) error {
	if IsNetwork(name) {
		return serrors.JoinNoStack(ErrNotSupported, nil, "network", name)
	}
	if !c.enabled.Remove(name) {
		return serrors.JoinNoStack(ErrNotConfigured, nil, "interface", name)
	}
	if ifp, ok := c.ifaces[name]; ok {
		ifp.Enabled = false
		c.reset(ifp)
	}
	return nil
}

// IsNetwork reports whether s names a network prefix or an address rather
// than an interface.
func IsNetwork(s string) bool {
	if _, err := netip.ParsePrefix(s); err == nil {
		return true
	}
	_, err := netip.ParseAddr(s)
	return err == nil
}

// SetWired selects the wired or wireless defaults for an interface.
func (c *Controller) SetWired(name string, wired bool) error {
	return c.set(name, func(p *iface.Profile) { p.SetWired(wired) })
}

func (c *Controller) SetSplitHorizon(name string, on bool) error {
	return c.set(name, func(p *iface.Profile) { p.SetSplitHorizon(on) })
}

func (c *Controller) SetLinkQuality(name string, on bool) error {
	return c.set(name, func(p *iface.Profile) { p.SetLinkQuality(on) })
}

func (c *Controller) SetTimestamps(name string, on bool) error {
	return c.set(name, func(p *iface.Profile) { p.SetTimestamps(on) })
}

func (c *Controller) SetChannel(name string, ch iface.Channel) error {
	if !ch.Valid() {
		return serrors.JoinNoStack(ErrInvalidValue, nil, "field", "channel", "value", int(ch))
	}
	return c.set(name, func(p *iface.Profile) { p.SetChannel(ch) })
}

func (c *Controller) SetRxCost(name string, v uint32) error {
	if err := checkRange("rxcost", v, MinRxCost, MaxRxCost); err != nil {
		return err
	}
	return c.set(name, func(p *iface.Profile) { p.SetRxCost(uint16(v)) })
}

// SetHelloInterval sets the hello interval in milliseconds. If the protocol
// runs on the interface and the interval changes, the hello deadline is
// re-armed and a hello is sent immediately.
func (c *Controller) SetHelloInterval(name string, ms uint32) error {
	if err := checkRange("hello_interval", ms, MinInterval, MaxInterval); err != nil {
		return err
	}
	return c.set(name, func(p *iface.Profile) { p.SetHelloInterval(ms) })
}

// SetUpdateInterval sets the update interval in milliseconds. It takes effect
// when the update deadline is armed next.
func (c *Controller) SetUpdateInterval(name string, ms uint32) error {
	if err := checkRange("update_interval", ms, MinInterval, MaxInterval); err != nil {
		return err
	}
	return c.set(name, func(p *iface.Profile) { p.SetUpdateInterval(ms) })
}

func (c *Controller) SetRTTDecay(name string, v uint32) error {
	if err := checkRange("rtt_decay", v, MinRTTDecay, MaxRTTDecay); err != nil {
		return err
	}
	return c.set(name, func(p *iface.Profile) { p.SetRTTDecay(uint16(v)) })
}

// SetRTTMin sets the lower RTT bound in milliseconds.
func (c *Controller) SetRTTMin(name string, ms uint32) error {
	if err := checkRange("rtt_min", ms, MinRTTBound, MaxRTTBound); err != nil {
		return err
	}
	return c.set(name, func(p *iface.Profile) { p.SetRTTMin(ms * 1000) })
}

// SetRTTMax sets the upper RTT bound in milliseconds.
func (c *Controller) SetRTTMax(name string, ms uint32) error {
	if err := checkRange("rtt_max", ms, MinRTTBound, MaxRTTBound); err != nil {
		return err
	}
	return c.set(name, func(p *iface.Profile) { p.SetRTTMax(ms * 1000) })
}

func (c *Controller) SetMaxRTTPenalty(name string, v uint32) error {
	if err := checkRange("max_rtt_penalty", v, 0, MaxMaxRTTPenalty); err != nil {
		return err
	}
	return c.set(name, func(p *iface.Profile) { p.SetMaxRTTPenalty(uint16(v)) })
}

// Unset restores the default of the current link type for the given fields.
func (c *Controller) Unset(name string, f iface.Field) error {
	return c.set(name, func(p *iface.Profile) { p.Unset(f) })
}

func (c *Controller) set(name string, fn func(p *iface.Profile)) error {
	ifp, ok := c.ifaces[name]
	if !ok {
		return serrors.JoinNoStack(ErrUnknownInterface, nil, "interface", name)
	}
	c.modify(ifp, fn)
	return nil
}

// modify applies fn to the profile of ifp and propagates the effects on a
// running interface.
func (c *Controller) modify(ifp *iface.State, fn func(p *iface.Profile)) {
	oldHello := ifp.Profile.Values().HelloInterval
	oldCost := ifp.Cost()
	fn(&ifp.Profile)
	if !ifp.Up {
		return
	}
	v := ifp.Profile.Values()
	if v.HelloInterval != oldHello {
		c.sched.Arm(ifp.Name, PurposeHello, c.after(c.now(), c.jitter.Roughly(v.HelloInterval)))
		c.sendHello(ifp, helloCentis(v.HelloInterval))
	}
	if ifp.Cost() != oldCost {
		c.routes.CostChanged(ifp, ifp.Cost())
	}
}
