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

// Package control implements the interface lifecycle controller of the
// routing engine.
//
// The Controller owns the runtime state of all interfaces. It reacts to
// platform events (interface created, up, down, destroyed, addresses added or
// removed), to administrative changes, and to timer expirations, and drives
// the multicast group membership, the send buffers and the periodic
// transmissions of every interface.
//
// The Controller is not safe for concurrent use. All calls must be made from
// a single goroutine, normally the one running Loop.
package control

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"slices"
	"time"

	"github.com/benbjohnson/clock"
	"golang.org/x/sys/unix"

	"github.com/babelrouting/babeld/babeld/cost"
	"github.com/babelrouting/babeld/babeld/iface"
	"github.com/babelrouting/babeld/babeld/jitter"
	"github.com/babelrouting/babeld/pkg/log"
	"github.com/babelrouting/babeld/pkg/metrics"
	"github.com/babelrouting/babeld/pkg/private/serrors"
)

const (
	// DefaultFirstPassDelay is the pause after each interface in the first
	// shutdown pass.
	DefaultFirstPassDelay = time.Millisecond
	// DefaultSecondPassDelay is the pause after each interface in the second
	// shutdown pass.
	DefaultSecondPassDelay = 10 * time.Millisecond
)

// Config configures a Controller. Groups, Messenger, Routes and Redistributor
// are mandatory.
type Config struct {
	Groups        GroupMembership
	Messenger     Messenger
	Routes        RouteTable
	Redistributor Redistributor
	// EnableSet holds the names of the enabled interfaces. If nil, an empty
	// set is used.
	EnableSet *EnableSet
	// Allocator allocates send buffers. Defaults to DefaultAllocator.
	Allocator Allocator
	// Jitter randomizes deadlines. Defaults to jitter.DefaultGenerator.
	Jitter jitter.Generator
	// Seqno returns the initial hello sequence number of new interfaces.
	// Defaults to a pseudo-random value.
	Seqno func() uint16
	// Clock provides the current time and the timers of the loop and the
	// shutdown pauses. Defaults to the wall clock.
	Clock clock.Clock
	// FirstPassDelay and SecondPassDelay are the shutdown pauses. Zero values
	// select the defaults.
	FirstPassDelay  time.Duration
	SecondPassDelay time.Duration
	// Logger is used for all log output. Defaults to the root logger.
	Logger  log.Logger
	Metrics Metrics
}

// Controller drives the per-interface protocol state.
type Controller struct {
	groups        GroupMembership
	messenger     Messenger
	routes        RouteTable
	redistributor Redistributor
	enabled       *EnableSet
	alloc         Allocator
	jitter        jitter.Generator
	seqno         func() uint16
	clock         clock.Clock
	firstDelay    time.Duration
	secondDelay   time.Duration
	logger        log.Logger
	metrics       Metrics

	ifaces map[string]*iface.State
	// configured holds settings for interfaces that may not exist yet. They
	// are applied when the interface appears.
	configured map[string]InterfaceSettings
	sched      *Scheduler
}

// New creates a controller.
func New(cfg Config) *Controller {
	c := &Controller{
		groups:        cfg.Groups,
		messenger:     cfg.Messenger,
		routes:        cfg.Routes,
		redistributor: cfg.Redistributor,
		enabled:       cfg.EnableSet,
		alloc:         cfg.Allocator,
		jitter:        cfg.Jitter,
		seqno:         cfg.Seqno,
		clock:         cfg.Clock,
		firstDelay:    cfg.FirstPassDelay,
		secondDelay:   cfg.SecondPassDelay,
		logger:        cfg.Logger,
		metrics:       cfg.Metrics,
		ifaces:        make(map[string]*iface.State),
		configured:    make(map[string]InterfaceSettings),
		sched:         NewScheduler(),
	}
	if c.enabled == nil {
		c.enabled = NewEnableSet()
	}
	if c.alloc == nil {
		c.alloc = DefaultAllocator{}
	}
	if c.jitter == nil {
		c.jitter = jitter.DefaultGenerator{}
	}
	if c.seqno == nil {
		c.seqno = func() uint16 { return uint16(rand.Uint32()) }
	}
	if c.clock == nil {
		c.clock = clock.New()
	}
	if c.firstDelay == 0 {
		c.firstDelay = DefaultFirstPassDelay
	}
	if c.secondDelay == 0 {
		c.secondDelay = DefaultSecondPassDelay
	}
	if c.logger == nil {
		c.logger = log.New("component", "babel")
	}
	return c
}

// InterfaceCreated handles a new interface. If the interface is already
// known, its link facts are refreshed instead.
func (c *Controller) InterfaceCreated(link Link) {
	c.logger.Debug("Received interface add", "interface", link.Name, "index", link.Index)
	if ifp, ok := c.ifaces[link.Name]; ok {
		c.updateLink(ifp, link)
		c.recalculate(ifp)
		return
	}
	ifp := iface.New(link.Name, link.Index, c.seqno(), c.now())
	c.updateLink(ifp, link)
	ifp.Enabled = c.enabled.Contains(link.Name)
	if s, ok := c.configured[link.Name]; ok {
		s.apply(&ifp.Profile)
	}
	c.ifaces[link.Name] = ifp
	c.recalculate(ifp)
}

// InterfaceUp handles a link coming up or changing its MTU.
func (c *Controller) InterfaceUp(link Link) {
	c.logger.Debug("Received interface up", "interface", link.Name)
	ifp, ok := c.ifaces[link.Name]
	if !ok {
		c.logger.Debug("Ignoring event for unknown interface", "interface", link.Name)
		return
	}
	c.updateLink(ifp, link)
	c.recalculate(ifp)
}

// InterfaceDown handles a link going down.
func (c *Controller) InterfaceDown(name string) {
	c.logger.Debug("Received interface down", "interface", name)
	ifp, ok := c.ifaces[name]
	if !ok {
		c.logger.Debug("Ignoring event for unknown interface", "interface", name)
		return
	}
	ifp.Operative = false
	c.reset(ifp)
}

// InterfaceDestroyed handles the removal of an interface. Its state is
// dropped.
func (c *Controller) InterfaceDestroyed(name string) {
	c.logger.Debug("Received interface delete", "interface", name)
	ifp, ok := c.ifaces[name]
	if !ok {
		c.logger.Debug("Ignoring event for unknown interface", "interface", name)
		return
	}
	c.reset(ifp)
	c.sched.CancelAll(name)
	delete(c.ifaces, name)
	metrics.CounterInc(metrics.CounterWith(c.metrics.Transitions, "event", "destroy"))
}

// Recalculate brings the protocol up on an enabled and operative interface,
// or refreshes its buffer and timers if it already runs.
func (c *Controller) Recalculate(name string) error {
	ifp, ok := c.ifaces[name]
	if !ok {
		return serrors.JoinNoStack(ErrUnknownInterface, nil, "interface", name)
	}
	c.recalculate(ifp)
	return nil
}

// Reset stops the protocol on an interface. It is a no-op if the protocol is
// not running.
func (c *Controller) Reset(name string) error {
	ifp, ok := c.ifaces[name]
	if !ok {
		return serrors.JoinNoStack(ErrUnknownInterface, nil, "interface", name)
	}
	c.reset(ifp)
	return nil
}

// RTTSample records an RTT measurement in microseconds for an interface.
func (c *Controller) RTTSample(name string, rtt uint32) error {
	ifp, ok := c.ifaces[name]
	if !ok {
		return serrors.JoinNoStack(ErrUnknownInterface, nil, "interface", name)
	}
	old := ifp.Cost()
	ifp.RTT.Update(rtt, ifp.Profile.Values().RTTDecay)
	if ifp.Up && ifp.Cost() != old {
		c.routes.CostChanged(ifp, ifp.Cost())
	}
	return nil
}

// State returns the state of an interface. The returned value must only be
// used on the controller goroutine.
func (c *Controller) State(name string) (*iface.State, bool) {
	ifp, ok := c.ifaces[name]
	return ifp, ok
}

// Interfaces returns a snapshot of all interfaces ordered by name.
func (c *Controller) Interfaces() []iface.Status {
	now := c.now()
	res := make([]iface.Status, 0, len(c.ifaces))
	for _, name := range c.names() {
		res = append(res, c.ifaces[name].Status(now))
	}
	return res
}

// Interface returns a snapshot of a single interface.
func (c *Controller) Interface(name string) (iface.Status, error) {
	ifp, ok := c.ifaces[name]
	if !ok {
		return iface.Status{}, serrors.JoinNoStack(ErrUnknownInterface, nil, "interface", name)
	}
	return ifp.Status(c.now()), nil
}

// EnabledNames returns the enable set in configuration order.
func (c *Controller) EnabledNames() []string {
	return c.enabled.Names()
}

// NextDeadline returns the earliest armed deadline.
func (c *Controller) NextDeadline() (time.Time, bool) {
	return c.sched.Next()
}

func (c *Controller) names() []string {
	names := make([]string, 0, len(c.ifaces))
	for n := range c.ifaces {
		names = append(names, n)
	}
	slices.Sort(names)
	return names
}

// mustState returns the state of an interface that is required to exist.
func (c *Controller) mustState(name string) *iface.State {
	ifp, ok := c.ifaces[name]
	if !ok {
		panic(fmt.Sprintf("invariant violation: no state for interface %q", name))
	}
	return ifp
}

func (c *Controller) updateLink(ifp *iface.State, link Link) {
	ifp.Index = link.Index
	ifp.MTU4 = link.MTU4
	ifp.MTU6 = link.MTU6
	ifp.Operative = link.Operative
}

func (c *Controller) recalculate(ifp *iface.State) {
	if !ifp.Enabled {
		return
	}
	if !ifp.Operative {
		c.reset(ifp)
		return
	}
	logger := c.logger.New("interface", ifp.Name, "index", ifp.Index)
	size, floored := iface.BufferSize(ifp.MTU4, ifp.MTU6)
	if floored {
		logger.Debug("Suspiciously low MTU", "mtu", min(ifp.MTU4, ifp.MTU6),
			"using", iface.MinMTU)
	}
	buf, err := c.alloc.Allocate(size)
	if err != nil {
		err = serrors.Join(ErrResourceExhaustion, err, "interface", ifp.Name, "size", size)
		logger.Error("Allocating send buffer failed", "err", err)
		metrics.CounterInc(c.metrics.ResourceErrors)
		c.reset(ifp)
		return
	}
	if err := c.groups.Join(ifp.Index); err != nil && !errors.Is(err, unix.EADDRINUSE) {
		err = serrors.Join(ErrSocket, err, "interface", ifp.Name, "op", "join")
		logger.Error("Joining multicast group failed", "err", err)
		metrics.CounterInc(metrics.CounterWith(c.metrics.SocketErrors, "op", "join"))
		c.reset(ifp)
		return
	}

	wasUp := ifp.Up
	if wasUp {
		c.flush(ifp)
	}
	sb := iface.NewSendBuffer(buf)
	ifp.PendingUpdates = slices.DeleteFunc(ifp.PendingUpdates, func(u []byte) bool {
		return len(u) > sb.Cap()
	})
	ifp.SendBuffer = sb
	ifp.Up = true

	v := ifp.Profile.Values()
	now := c.now()
	c.sched.Arm(ifp.Name, PurposeHello, c.after(now, c.jitter.Roughly(v.HelloInterval)))
	c.sched.Arm(ifp.Name, PurposeUpdate, c.after(now, c.jitter.Roughly(v.UpdateInterval)))
	c.sendHello(ifp, helloCentis(v.HelloInterval))
	if err := c.messenger.SendRequest(ifp); err != nil {
		logger.Error("Sending request failed", "err", err)
	}
	c.routes.CostChanged(ifp, ifp.Cost())

	if !wasUp {
		metrics.GaugeAdd(c.metrics.InterfacesUp, 1)
		metrics.CounterInc(metrics.CounterWith(c.metrics.Transitions, "event", "up"))
	}
	logger.Debug("Interface up", "wired", ifp.Profile.Wired(), "cost", ifp.Cost(),
		"channel", v.Channel, "ipv4", ifp.IPv4 != nil, "buffer_size", size)
}

func (c *Controller) reset(ifp *iface.State) {
	if !ifp.Up {
		return
	}
	logger := c.logger.New("interface", ifp.Name, "index", ifp.Index)
	logger.Debug("Interface reset")
	ifp.Up = false
	c.routes.FlushInterface(ifp)
	ifp.SendBuffer = nil
	ifp.PendingUpdates = nil
	if ifp.Index > 0 {
		switch err := c.groups.Leave(ifp.Index); {
		case err == nil:
		case errors.Is(err, unix.ENODEV):
			logger.Debug("Interface gone, skipping multicast leave", "err", err)
		default:
			err = serrors.Join(ErrSocket, err, "interface", ifp.Name, "op", "leave")
			logger.Error("Leaving multicast group failed", "err", err)
			metrics.CounterInc(metrics.CounterWith(c.metrics.SocketErrors, "op", "leave"))
		}
	}
	c.sched.CancelAll(ifp.Name)
	c.routes.CostChanged(ifp, cost.Infinity)
	ifp.IPv4 = nil
	metrics.GaugeAdd(c.metrics.InterfacesUp, -1)
	metrics.CounterInc(metrics.CounterWith(c.metrics.Transitions, "event", "reset"))
}

func (c *Controller) sendHello(ifp *iface.State, interval uint16) {
	if err := c.messenger.SendHello(ifp, interval); err != nil {
		c.logger.Error("Sending hello failed", "interface", ifp.Name, "err", err)
	}
	ifp.HelloSeqno++
}

func (c *Controller) now() time.Time {
	return c.clock.Now()
}

func (c *Controller) after(now time.Time, ms uint32) time.Time {
	return now.Add(time.Duration(ms) * time.Millisecond)
}

// helloCentis converts a hello interval to the centiseconds announced on the
// wire, rounding up.
func helloCentis(ms uint32) uint16 {
	cs := (ms + 9) / 10
	if cs > 0xFFFF {
		return 0xFFFF
	}
	return uint16(cs)
}
