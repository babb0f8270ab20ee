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

// Package iface holds the per-interface runtime state of the routing engine.
//
// A State is created for every interface the platform reports, enabled or
// not. Its fields are mutated only by the lifecycle controller running on the
// event loop; readers outside the loop take a Status snapshot.
package iface

import (
	"net/netip"
	"slices"
	"time"

	"github.com/babelrouting/babeld/babeld/bucket"
	"github.com/babelrouting/babeld/babeld/cost"
)

const (
	// MinMTU is the smallest link MTU the engine works with. Smaller values
	// are raised to it.
	MinMTU = 128
	// BufferOverhead is the part of the link MTU that is not available for
	// the protocol payload: the IPv6 and UDP headers and the packet header.
	BufferOverhead = 64
)

// BufferSize returns the send buffer size for an interface with the given
// IPv4 and IPv6 MTUs. floored is set if the MTU was raised to MinMTU.
func BufferSize(mtu4, mtu6 int) (size int, floored bool) {
	mtu := min(mtu4, mtu6)
	if mtu < MinMTU {
		mtu = MinMTU
		floored = true
	}
	return mtu - BufferOverhead, floored
}

// SendBuffer accumulates serialized messages up to a fixed capacity.
type SendBuffer struct {
	buf []byte
}

// NewSendBuffer wraps b. The buffer length is reset to zero and its capacity
// is the buffer capacity.
func NewSendBuffer(b []byte) *SendBuffer {
	return &SendBuffer{buf: b[:0]}
}

// Cap returns the buffer capacity in bytes.
func (b *SendBuffer) Cap() int {
	return cap(b.buf)
}

// Len returns the number of buffered bytes.
func (b *SendBuffer) Len() int {
	return len(b.buf)
}

// Fits reports whether n more bytes can be appended.
func (b *SendBuffer) Fits(n int) bool {
	return len(b.buf)+n <= cap(b.buf)
}

// Append appends p if it fits.
func (b *SendBuffer) Append(p []byte) bool {
	if !b.Fits(len(p)) {
		return false
	}
	b.buf = append(b.buf, p...)
	return true
}

// Bytes returns the buffered bytes. The slice is only valid until the next
// Reset.
func (b *SendBuffer) Bytes() []byte {
	return b.buf
}

// Reset discards the buffered bytes.
func (b *SendBuffer) Reset() {
	b.buf = b.buf[:0]
}

// State is the runtime state of a single interface.
type State struct {
	// Name is the interface name.
	Name string
	// Index is the kernel interface index. Zero if unknown.
	Index int
	// MTU4 and MTU6 are the link MTUs for IPv4 and IPv6.
	MTU4 int
	MTU6 int
	// Operative is set if the link is administratively up and running.
	Operative bool

	Profile Profile
	// Enabled is set if the interface is in the enable set.
	Enabled bool
	// Up is set if the protocol is running on the interface. It is managed
	// by the controller.
	Up bool
	// SendBuffer is non-nil exactly when Up is set.
	SendBuffer *SendBuffer
	// PendingUpdates are serialized updates waiting to be flushed. Only used
	// while Up.
	PendingUpdates [][]byte
	Bucket         *bucket.Bucket
	HelloSeqno     uint16
	// IPv4 is the address used as next hop for IPv4 routes announced on the
	// interface.
	IPv4 *netip.Addr
	// LinkLocal are the IPv6 link-local addresses of the interface, in the
	// order they were reported.
	LinkLocal []netip.Addr
	RTT       cost.Sample
}

// New returns the state of a newly discovered interface with wireless
// defaults and a full bucket.
func New(name string, index int, seqno uint16, now time.Time) *State {
	return &State{
		Name:       name,
		Index:      index,
		Profile:    NewProfile(),
		Bucket:     bucket.New(now),
		HelloSeqno: seqno,
	}
}

// Cost returns the current link cost.
func (s *State) Cost() uint16 {
	return cost.Compute(s.Profile.Values().CostParams(), s.RTT)
}

// HasLinkLocal reports whether addr is one of the IPv6 link-local addresses
// of the interface.
func (s *State) HasLinkLocal(addr netip.Addr) bool {
	return slices.Contains(s.LinkLocal, addr.WithZone(""))
}

// PendingBytes returns the size of all pending updates.
func (s *State) PendingBytes() int {
	n := 0
	for _, u := range s.PendingUpdates {
		n += len(u)
	}
	return n
}

// Status is a read-only snapshot of an interface.
type Status struct {
	Name           string   `json:"name"`
	Index          int      `json:"index"`
	Enabled        bool     `json:"enabled"`
	Up             bool     `json:"up"`
	Operative      bool     `json:"operative"`
	Wired          bool     `json:"wired"`
	SplitHorizon   bool     `json:"split_horizon"`
	LinkQuality    bool     `json:"link_quality"`
	Timestamps     bool     `json:"timestamps"`
	Channel        Channel  `json:"channel"`
	HelloInterval  uint32   `json:"hello_interval_ms"`
	UpdateInterval uint32   `json:"update_interval_ms"`
	RxCost         uint16   `json:"rxcost"`
	Cost           uint16   `json:"cost"`
	RTTDecay       uint16   `json:"rtt_decay"`
	RTTMin         uint32   `json:"rtt_min_us"`
	RTTMax         uint32   `json:"rtt_max_us"`
	MaxRTTPenalty  uint16   `json:"max_rtt_penalty"`
	SmoothedRTT    uint32   `json:"smoothed_rtt_us,omitempty"`
	MTU            int      `json:"mtu"`
	BufferSize     int      `json:"buffer_size,omitempty"`
	PendingUpdates int      `json:"pending_updates"`
	IPv4           string   `json:"ipv4,omitempty"`
	LinkLocal      []string `json:"link_local,omitempty"`
	Tokens         int      `json:"bucket_tokens"`
	HelloSeqno     uint16   `json:"hello_seqno"`
}

// Status returns a snapshot of the interface at now.
func (s *State) Status(now time.Time) Status {
	v := s.Profile.Values()
	st := Status{
		Name:           s.Name,
		Index:          s.Index,
		Enabled:        s.Enabled,
		Up:             s.Up,
		Operative:      s.Operative,
		Wired:          s.Profile.Wired(),
		SplitHorizon:   v.SplitHorizon,
		LinkQuality:    v.LinkQuality,
		Timestamps:     v.Timestamps,
		Channel:        v.Channel,
		HelloInterval:  v.HelloInterval,
		UpdateInterval: v.UpdateInterval,
		RxCost:         v.RxCost,
		Cost:           s.Cost(),
		RTTDecay:       v.RTTDecay,
		RTTMin:         v.RTTMin,
		RTTMax:         v.RTTMax,
		MaxRTTPenalty:  v.MaxRTTPenalty,
		MTU:            min(s.MTU4, s.MTU6),
		PendingUpdates: len(s.PendingUpdates),
		HelloSeqno:     s.HelloSeqno,
	}
	if s.RTT.Valid {
		st.SmoothedRTT = s.RTT.Smoothed
	}
	if s.SendBuffer != nil {
		st.BufferSize = s.SendBuffer.Cap()
	}
	if s.IPv4 != nil {
		st.IPv4 = s.IPv4.String()
	}
	for _, a := range s.LinkLocal {
		st.LinkLocal = append(st.LinkLocal, a.String())
	}
	if s.Bucket != nil {
		st.Tokens = s.Bucket.Tokens(now)
	}
	return st
}
