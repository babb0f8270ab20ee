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

package control_test

import (
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/babelrouting/babeld/babeld/control"
	"github.com/babelrouting/babeld/babeld/iface"
)

func u32(v uint32) *uint32 { return &v }

func TestEnable(t *testing.T) {
	t.Run("interface not present yet", func(t *testing.T) {
		h := newHarness(t)
		require.NoError(t, h.c.Enable("eth0"))
		assert.Equal(t, []string{"eth0"}, h.c.EnabledNames())

		h.expectUp(2)
		h.c.InterfaceCreated(eth0())
		ifp, _ := h.c.State("eth0")
		assert.True(t, ifp.Enabled)
		assert.True(t, ifp.Up)
	})

	t.Run("duplicate", func(t *testing.T) {
		h := newHarness(t)
		require.NoError(t, h.c.Enable("eth0"))
		require.NoError(t, h.c.Enable("eth1"))
		err := h.c.Enable("eth0")
		assert.ErrorIs(t, err, control.ErrConfigConflict)
		assert.Equal(t, []string{"eth0", "eth1"}, h.c.EnabledNames())
	})

	t.Run("networks are not supported", func(t *testing.T) {
		h := newHarness(t)
		for _, n := range []string{"10.0.0.0/24", "2001:db8::/32", "192.0.2.1", "fe80::1"} {
			assert.ErrorIs(t, h.c.Enable(n), control.ErrNotSupported, n)
			assert.ErrorIs(t, h.c.Disable(n), control.ErrNotSupported, n)
		}
		assert.Equal(t, 0, h.enabled.Len())
	})

	t.Run("disable unknown", func(t *testing.T) {
		h := newHarness(t)
		assert.ErrorIs(t, h.c.Disable("eth0"), control.ErrNotConfigured)
	})
}

func TestEnableDisableRestoresFlags(t *testing.T) {
	chanPtr := func(c iface.Channel) *iface.Channel { return &c }
	testCases := map[string]control.InterfaceSettings{
		"defaults": {},
		"fast hellos": {
			HelloInterval: u32(20), UpdateInterval: u32(20),
		},
		"slow": {
			HelloInterval: u32(655340), UpdateInterval: u32(655340),
			RxCost: u32(65534), Channel: chanPtr(254),
		},
		"noninterfering": {
			RxCost: u32(1), Channel: chanPtr(iface.ChannelNonInterfering),
		},
	}
	for name, s := range testCases {
		t.Run(name, func(t *testing.T) {
			h := newHarness(t)
			s.Name = "eth0"
			require.NoError(t, h.c.Configure(s))
			h.c.InterfaceCreated(eth0())
			before, err := h.c.Interface("eth0")
			require.NoError(t, err)

			h.expectUp(2)
			require.NoError(t, h.c.Enable("eth0"))
			during, _ := h.c.Interface("eth0")
			assert.True(t, during.Up)
			assert.True(t, during.Enabled)

			h.expectReset(2)
			require.NoError(t, h.c.Disable("eth0"))
			after, _ := h.c.Interface("eth0")
			// The hello sequence number advanced while the interface was up.
			after.HelloSeqno = before.HelloSeqno
			if diff := cmp.Diff(before, after); diff != "" {
				t.Fatalf("state not restored (-before +after):\n%s", diff)
			}
			_, armed := h.c.NextDeadline()
			assert.False(t, armed)
		})
	}
}

func TestWiredToggle(t *testing.T) {
	h := newHarness(t)
	h.c.InterfaceCreated(eth0())
	rxcost := func() uint16 {
		st, err := h.c.Interface("eth0")
		require.NoError(t, err)
		return st.RxCost
	}
	assert.Equal(t, uint16(256), rxcost())
	require.NoError(t, h.c.SetWired("eth0", true))
	assert.Equal(t, uint16(96), rxcost())
	require.NoError(t, h.c.SetWired("eth0", false))
	assert.Equal(t, uint16(256), rxcost())
	require.NoError(t, h.c.SetWired("eth0", true))
	assert.Equal(t, uint16(96), rxcost())

	require.NoError(t, h.c.SetRxCost("eth0", 500))
	require.NoError(t, h.c.SetWired("eth0", false))
	assert.Equal(t, uint16(500), rxcost(), "explicit value survives the toggle")
	require.NoError(t, h.c.Unset("eth0", iface.FieldRxCost))
	assert.Equal(t, uint16(256), rxcost())

	assert.ErrorIs(t, h.c.SetWired("eth1", true), control.ErrUnknownInterface)
}

func TestSetCostOnRunningInterface(t *testing.T) {
	h := newHarness(t)
	ifp := h.up(t, eth0())
	h.routes.EXPECT().CostChanged(ifp, uint16(96))
	require.NoError(t, h.c.SetWired("eth0", true))
	// Unchanged cost is not reported again.
	require.NoError(t, h.c.SetSplitHorizon("eth0", false))
	h.routes.EXPECT().CostChanged(ifp, uint16(200))
	require.NoError(t, h.c.SetRxCost("eth0", 200))
}

func TestSetHelloInterval(t *testing.T) {
	h := newHarness(t)
	ifp := h.up(t, eth0())
	h.advance(time.Second)

	h.msgr.EXPECT().SendHello(ifp, uint16(100)).Return(nil)
	require.NoError(t, h.c.SetHelloInterval("eth0", 1000))
	next, _ := h.c.NextDeadline()
	assert.Equal(t, h.now().Add(time.Second), next)

	// Same value: no hello, deadline kept.
	h.advance(100 * time.Millisecond)
	require.NoError(t, h.c.SetHelloInterval("eth0", 1000))
	next2, _ := h.c.NextDeadline()
	assert.Equal(t, next, next2)

	h.msgr.EXPECT().SendHello(ifp, uint16(400)).Return(nil)
	require.NoError(t, h.c.Unset("eth0", iface.FieldHelloInterval))
	next, _ = h.c.NextDeadline()
	assert.Equal(t, h.now().Add(4*time.Second), next)
}

func TestSetterValidation(t *testing.T) {
	testCases := map[string]func(c *control.Controller) error{
		"rxcost zero":            func(c *control.Controller) error { return c.SetRxCost("eth0", 0) },
		"rxcost too large":       func(c *control.Controller) error { return c.SetRxCost("eth0", 65535) },
		"hello too short":        func(c *control.Controller) error { return c.SetHelloInterval("eth0", 19) },
		"hello too long":         func(c *control.Controller) error { return c.SetHelloInterval("eth0", 655341) },
		"update too short":       func(c *control.Controller) error { return c.SetUpdateInterval("eth0", 0) },
		"rtt decay zero":         func(c *control.Controller) error { return c.SetRTTDecay("eth0", 0) },
		"rtt decay too large":    func(c *control.Controller) error { return c.SetRTTDecay("eth0", 257) },
		"rtt min zero":           func(c *control.Controller) error { return c.SetRTTMin("eth0", 0) },
		"rtt max too large":      func(c *control.Controller) error { return c.SetRTTMax("eth0", 65536) },
		"max rtt penalty":        func(c *control.Controller) error { return c.SetMaxRTTPenalty("eth0", 70000) },
		"channel zero":           func(c *control.Controller) error { return c.SetChannel("eth0", 0) },
		"channel out of range":   func(c *control.Controller) error { return c.SetChannel("eth0", 300) },
		"configure invalid cost": func(c *control.Controller) error {
			return c.Configure(control.InterfaceSettings{Name: "eth0", RxCost: u32(0), HelloInterval: u32(100)})
		},
	}
	for name, set := range testCases {
		t.Run(name, func(t *testing.T) {
			h := newHarness(t)
			h.c.InterfaceCreated(eth0())
			before, _ := h.c.Interface("eth0")
			assert.ErrorIs(t, set(h.c), control.ErrInvalidValue)
			after, _ := h.c.Interface("eth0")
			if diff := cmp.Diff(before, after); diff != "" {
				t.Fatalf("state changed (-before +after):\n%s", diff)
			}
		})
	}
}

func TestSetters(t *testing.T) {
	h := newHarness(t)
	h.c.InterfaceCreated(eth0())
	require.NoError(t, h.c.SetRTTMin("eth0", 20))
	require.NoError(t, h.c.SetRTTMax("eth0", 200))
	require.NoError(t, h.c.SetRTTDecay("eth0", 128))
	require.NoError(t, h.c.SetMaxRTTPenalty("eth0", 0))
	require.NoError(t, h.c.SetUpdateInterval("eth0", 30000))
	require.NoError(t, h.c.SetChannel("eth0", 6))
	require.NoError(t, h.c.SetTimestamps("eth0", true))
	require.NoError(t, h.c.SetLinkQuality("eth0", false))

	st, _ := h.c.Interface("eth0")
	assert.Equal(t, uint32(20000), st.RTTMin)
	assert.Equal(t, uint32(200000), st.RTTMax)
	assert.Equal(t, uint16(128), st.RTTDecay)
	assert.Equal(t, uint16(0), st.MaxRTTPenalty)
	assert.Equal(t, uint32(30000), st.UpdateInterval)
	assert.Equal(t, iface.Channel(6), st.Channel)
	assert.True(t, st.Timestamps)
	assert.False(t, st.LinkQuality)

	require.NoError(t, h.c.Unset("eth0", iface.FieldRTTMin|iface.FieldRTTMax|iface.FieldChannel))
	st, _ = h.c.Interface("eth0")
	assert.Equal(t, uint32(iface.DefaultRTTMin), st.RTTMin)
	assert.Equal(t, uint32(iface.DefaultRTTMax), st.RTTMax)
	assert.Equal(t, iface.ChannelInterfering, st.Channel)
}

func TestConfigDiff(t *testing.T) {
	h := newHarness(t)
	h.c.InterfaceCreated(control.Link{Name: "wlan0", Index: 3})
	h.c.InterfaceCreated(eth0())
	require.NoError(t, h.c.SetWired("eth0", true))
	require.NoError(t, h.c.SetRxCost("eth0", 96))
	require.NoError(t, h.c.SetHelloInterval("eth0", 1000))
	require.NoError(t, h.c.SetRTTMin("eth0", 20))
	require.NoError(t, h.c.SetChannel("eth0", 3))
	require.NoError(t, h.c.SetSplitHorizon("eth0", false))

	wired, off := true, false
	ch := iface.Channel(3)
	want := []control.InterfaceSettings{{
		Name:          "eth0",
		Wired:         &wired,
		SplitHorizon:  &off,
		Channel:       &ch,
		HelloInterval: u32(1000),
		RTTMin:        u32(20),
	}}
	if diff := cmp.Diff(want, h.c.ConfigDiff()); diff != "" {
		t.Fatalf("unexpected diff (-want +got):\n%s", diff)
	}

	// Applying the diff to a fresh interface reproduces the profile.
	h2 := newHarness(t)
	for _, s := range h.c.ConfigDiff() {
		require.NoError(t, h2.c.Configure(s))
	}
	h2.c.InterfaceCreated(eth0())
	a, _ := h.c.Interface("eth0")
	b, _ := h2.c.Interface("eth0")
	assert.Equal(t, a, b)
}

func TestConfigureRunningInterface(t *testing.T) {
	h := newHarness(t)
	ifp := h.up(t, eth0())
	h.msgr.EXPECT().SendHello(ifp, gomock.Any()).Return(nil)
	require.NoError(t, h.c.Configure(control.InterfaceSettings{
		Name: "eth0", HelloInterval: u32(500),
	}))
	assert.Equal(t, uint32(500), ifp.Profile.Values().HelloInterval)
}

func TestReconfigureDropsFields(t *testing.T) {
	h := newHarness(t)
	wired := true
	require.NoError(t, h.c.Configure(control.InterfaceSettings{
		Name: "eth0", Wired: &wired, RxCost: u32(128), HelloInterval: u32(2000),
	}))
	h.c.InterfaceCreated(eth0())
	ifp, _ := h.c.State("eth0")
	assert.True(t, ifp.Profile.Wired())
	assert.Equal(t, uint16(128), ifp.Profile.Values().RxCost)

	require.NoError(t, h.c.Configure(control.InterfaceSettings{
		Name: "eth0", HelloInterval: u32(1000),
	}))
	v := ifp.Profile.Values()
	assert.False(t, ifp.Profile.Wired())
	assert.Equal(t, uint16(iface.DefaultRxCostWireless), v.RxCost)
	assert.False(t, ifp.Profile.Overridden(iface.FieldRxCost))
	assert.Equal(t, uint32(1000), v.HelloInterval)
	assert.Equal(t, []control.InterfaceSettings{
		{Name: "eth0", HelloInterval: u32(1000)},
	}, h.c.ConfigDiff())
}
