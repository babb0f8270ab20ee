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

package iface_test

import (
	"net/netip"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/babelrouting/babeld/babeld/bucket"
	"github.com/babelrouting/babeld/babeld/iface"
)

func TestNewProfileIsWireless(t *testing.T) {
	p := iface.NewProfile()
	assert.False(t, p.Wired())
	if diff := cmp.Diff(iface.Defaults(false), p.Values()); diff != "" {
		t.Fatalf("unexpected profile (-want +got):\n%s", diff)
	}
	v := p.Values()
	assert.Equal(t, uint16(256), v.RxCost)
	assert.Equal(t, iface.ChannelInterfering, v.Channel)
	assert.False(t, v.SplitHorizon)
	assert.True(t, v.LinkQuality)
}

func TestProfileToggle(t *testing.T) {
	t.Run("rxcost follows the link type", func(t *testing.T) {
		p := iface.NewProfile()
		assert.True(t, p.SetWired(true))
		assert.Equal(t, uint16(96), p.Values().RxCost)
		assert.False(t, p.SetWired(true))
		assert.True(t, p.SetWired(false))
		assert.Equal(t, uint16(256), p.Values().RxCost)
	})

	t.Run("wired defaults", func(t *testing.T) {
		p := iface.NewProfile()
		p.SetWired(true)
		if diff := cmp.Diff(iface.Defaults(true), p.Values()); diff != "" {
			t.Fatalf("unexpected profile (-want +got):\n%s", diff)
		}
	})

	t.Run("overrides survive", func(t *testing.T) {
		p := iface.NewProfile()
		p.SetRxCost(500)
		p.SetSplitHorizon(true)
		p.SetHelloInterval(1000)
		p.SetWired(true)

		want := iface.Defaults(true)
		want.RxCost = 500
		want.HelloInterval = 1000
		if diff := cmp.Diff(want, p.Values()); diff != "" {
			t.Fatalf("unexpected profile (-want +got):\n%s", diff)
		}
		p.SetWired(false)
		want = iface.Defaults(false)
		want.RxCost = 500
		want.SplitHorizon = true
		want.HelloInterval = 1000
		if diff := cmp.Diff(want, p.Values()); diff != "" {
			t.Fatalf("unexpected profile (-want +got):\n%s", diff)
		}
	})

	t.Run("unset restores the current default", func(t *testing.T) {
		p := iface.NewProfile()
		p.SetRxCost(500)
		p.SetChannel(7)
		p.SetWired(true)
		p.Unset(iface.FieldRxCost)
		assert.Equal(t, uint16(96), p.Values().RxCost)
		assert.False(t, p.Overridden(iface.FieldRxCost))
		assert.True(t, p.Overridden(iface.FieldChannel))

		p.Unset(iface.FieldChannel | iface.FieldSplitHorizon)
		assert.Equal(t, iface.ChannelNonInterfering, p.Values().Channel)
		assert.True(t, p.Values().SplitHorizon)

		p.SetWired(false)
		assert.Equal(t, uint16(256), p.Values().RxCost)
		assert.Equal(t, iface.ChannelInterfering, p.Values().Channel)
	})
}

func TestChannel(t *testing.T) {
	testCases := map[string]struct {
		text  string
		want  iface.Channel
		valid bool
	}{
		"interfering":    {text: "interfering", want: iface.ChannelInterfering, valid: true},
		"noninterfering": {text: "noninterfering", want: iface.ChannelNonInterfering, valid: true},
		"numeric":        {text: "11", want: 11, valid: true},
		"lower bound":    {text: "1", want: 1, valid: true},
		"upper bound":    {text: "254", want: 254, valid: true},
		"zero":           {text: "0"},
		"out of range":   {text: "255x"},
		"garbage":        {text: "wifi"},
	}
	for name, tc := range testCases {
		t.Run(name, func(t *testing.T) {
			var c iface.Channel
			err := c.UnmarshalText([]byte(tc.text))
			if !tc.valid {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, c)
			assert.True(t, c.Valid())
			out, err := c.MarshalText()
			require.NoError(t, err)
			assert.Equal(t, tc.text, string(out))
		})
	}
}

func TestBufferSize(t *testing.T) {
	testCases := map[string]struct {
		mtu4, mtu6 int
		size       int
		floored    bool
	}{
		"ethernet":      {mtu4: 1500, mtu6: 1500, size: 1436},
		"smaller v6":    {mtu4: 1500, mtu6: 1280, size: 1216},
		"below minimum": {mtu4: 100, mtu6: 100, size: 64, floored: true},
		"at minimum":    {mtu4: 128, mtu6: 9000, size: 64},
	}
	for name, tc := range testCases {
		t.Run(name, func(t *testing.T) {
			size, floored := iface.BufferSize(tc.mtu4, tc.mtu6)
			assert.Equal(t, tc.size, size)
			assert.Equal(t, tc.floored, floored)
		})
	}
}

func TestSendBuffer(t *testing.T) {
	b := iface.NewSendBuffer(make([]byte, 8))
	assert.Equal(t, 8, b.Cap())
	assert.Equal(t, 0, b.Len())
	assert.True(t, b.Append([]byte{1, 2, 3, 4, 5}))
	assert.False(t, b.Append([]byte{6, 7, 8, 9}))
	assert.Equal(t, []byte{1, 2, 3, 4, 5}, b.Bytes())
	assert.True(t, b.Fits(3))
	b.Reset()
	assert.Equal(t, 0, b.Len())
	assert.Equal(t, 8, b.Cap())
}

func TestStatus(t *testing.T) {
	now := time.Unix(100, 0)
	s := iface.New("eth0", 2, 77, now)
	s.MTU4, s.MTU6 = 1500, 1500
	s.Enabled = true
	s.Up = true
	s.SendBuffer = iface.NewSendBuffer(make([]byte, 1436))
	addr := netip.MustParseAddr("10.0.0.1")
	s.IPv4 = &addr
	s.Profile.SetWired(true)
	s.RTT.Update(200000, 42)

	st := s.Status(now)
	assert.Equal(t, "eth0", st.Name)
	assert.Equal(t, 2, st.Index)
	assert.True(t, st.Wired)
	assert.True(t, st.SplitHorizon)
	assert.Equal(t, uint16(96), st.Cost, "wired links ignore the RTT")
	assert.Equal(t, 1436, st.BufferSize)
	assert.Equal(t, 1500, st.MTU)
	assert.Equal(t, "10.0.0.1", st.IPv4)
	assert.Equal(t, bucket.Max, st.Tokens)
	assert.Equal(t, uint16(77), st.HelloSeqno)
	assert.Equal(t, uint32(200000), st.SmoothedRTT)

	s.Profile.SetWired(false)
	assert.Equal(t, uint16(256+150), s.Status(now).Cost)
}
