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
	"github.com/babelrouting/babeld/babeld/iface"
	"github.com/babelrouting/babeld/pkg/private/serrors"
)

// GroupMembership joins and leaves the protocol multicast group on the shared
// protocol socket. Join may fail with EADDRINUSE if the group is already
// joined on the interface.
type GroupMembership interface {
	Join(ifindex int) error
	Leave(ifindex int) error
}

// Messenger encodes and transmits protocol messages. Interval arguments are in
// centiseconds.
type Messenger interface {
	SendHello(ifp *iface.State, interval uint16) error
	SendRequest(ifp *iface.State) error
	SendUpdate(ifp *iface.State) error
	SendWildcardRetraction(ifp *iface.State) error
	Send(ifp *iface.State, packet []byte) error
}

// RouteTable is the route selection layer.
type RouteTable interface {
	// FlushInterface withdraws all routes learned over ifp.
	FlushInterface(ifp *iface.State)
	// CostChanged reports the new cost of ifp.
	CostChanged(ifp *iface.State, cost uint16)
}

// Redistributor manages route redistribution registrations.
type Redistributor interface {
	WithdrawAll()
}

// Allocator allocates send buffers.
type Allocator interface {
	Allocate(size int) ([]byte, error)
}

// MaxBufferSize is the largest send buffer DefaultAllocator hands out.
const MaxBufferSize = 64 * 1024

// DefaultAllocator allocates buffers on the heap up to MaxBufferSize.
type DefaultAllocator struct{}

func (DefaultAllocator) Allocate(size int) ([]byte, error) {
	if size <= 0 || size > MaxBufferSize {
		return nil, serrors.New("buffer size out of range", "size", size, "max", MaxBufferSize)
	}
	return make([]byte, 0, size), nil
}

// Link carries the platform facts about an interface.
type Link struct {
	Name      string
	Index     int
	MTU4      int
	MTU6      int
	Operative bool
}
