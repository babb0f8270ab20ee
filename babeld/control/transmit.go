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
	"slices"
	"time"

	"github.com/babelrouting/babeld/babeld/bucket"
	"github.com/babelrouting/babeld/babeld/iface"
	"github.com/babelrouting/babeld/pkg/metrics"
	"github.com/babelrouting/babeld/pkg/private/serrors"
)

// bucketRefill is the time in milliseconds until an empty bucket holds a token
// again.
const bucketRefill = 1000 / bucket.PerSecond

// Tick handles all deadlines that expired at or before now.
func (c *Controller) Tick(now time.Time) {
	for _, e := range c.sched.PopDue(now) {
		ifp := c.mustState(e.Interface)
		if !ifp.Up {
			continue
		}
		v := ifp.Profile.Values()
		switch e.Purpose {
		case PurposeHello:
			c.sendHello(ifp, helloCentis(v.HelloInterval))
			c.sched.Arm(ifp.Name, PurposeHello, c.after(now, c.jitter.Roughly(v.HelloInterval)))
		case PurposeUpdate:
			if err := c.messenger.SendUpdate(ifp); err != nil {
				c.logger.Error("Sending update failed", "interface", ifp.Name, "err", err)
			}
			c.sched.Arm(ifp.Name, PurposeUpdate,
				c.after(now, c.jitter.Roughly(v.UpdateInterval)))
		case PurposeFlush:
			c.flushAt(ifp, now)
		}
	}
}

// QueueUpdate buffers a copy of a serialized update for transmission on an
// interface. The caller may reuse update once QueueUpdate returns. If the
// update does not fit into the send buffer together with the pending ones,
// the pending updates are flushed first. A flush is scheduled if none is
// pending.
func (c *Controller) QueueUpdate(name string, update []byte) error {
	ifp, err := c.upState(name)
	if err != nil {
		return err
	}
	if len(update) == 0 || len(update) > ifp.SendBuffer.Cap() {
		return serrors.JoinNoStack(ErrInvalidValue, nil, "interface", name,
			"size", len(update), "buffer_size", ifp.SendBuffer.Cap())
	}
	now := c.now()
	if ifp.PendingBytes()+len(update) > ifp.SendBuffer.Cap() {
		c.flushAt(ifp, now)
	}
	ifp.PendingUpdates = append(ifp.PendingUpdates, slices.Clone(update))
	if _, ok := c.sched.Deadline(name, PurposeFlush); !ok {
		d := c.jitter.Delay(ifp.Profile.Values().HelloInterval, false)
		c.sched.Arm(name, PurposeFlush, c.after(now, d))
	}
	return nil
}

// UrgentFlush schedules the pending updates of an interface to be sent after
// a short jittered delay, unless an earlier flush is already scheduled.
func (c *Controller) UrgentFlush(name string) error {
	ifp, err := c.upState(name)
	if err != nil {
		return err
	}
	now := c.now()
	at := c.after(now, c.jitter.Delay(ifp.Profile.Values().HelloInterval, true))
	if cur, ok := c.sched.Deadline(name, PurposeFlush); ok && !at.Before(cur) {
		return nil
	}
	c.sched.Arm(name, PurposeFlush, at)
	return nil
}

// Flush sends the pending updates of an interface now, as far as its bucket
// allows.
func (c *Controller) Flush(name string) error {
	ifp, err := c.upState(name)
	if err != nil {
		return err
	}
	c.flush(ifp)
	return nil
}

func (c *Controller) upState(name string) (*iface.State, error) {
	ifp, ok := c.ifaces[name]
	if !ok {
		return nil, serrors.JoinNoStack(ErrUnknownInterface, nil, "interface", name)
	}
	if !ifp.Up {
		return nil, serrors.JoinNoStack(ErrInterfaceDown, nil, "interface", name)
	}
	return ifp, nil
}

func (c *Controller) flush(ifp *iface.State) {
	c.flushAt(ifp, c.now())
}

// flushAt packs pending updates into the send buffer and hands each full
// buffer to the messenger. Every packet costs one token. If the bucket runs
// dry, the rest stays queued and the flush is rescheduled.
func (c *Controller) flushAt(ifp *iface.State, now time.Time) {
	buf := ifp.SendBuffer
	for len(ifp.PendingUpdates) > 0 {
		if !ifp.Bucket.TryConsume(now, 1) {
			metrics.CounterInc(metrics.CounterWith(c.metrics.PacketsThrottled,
				"interface", ifp.Name))
			d := c.jitter.Delay(ifp.Profile.Values().HelloInterval, true)
			c.sched.Arm(ifp.Name, PurposeFlush, c.after(now, max(d, bucketRefill)))
			return
		}
		buf.Reset()
		n := 0
		for _, u := range ifp.PendingUpdates {
			if !buf.Append(u) {
				break
			}
			n++
		}
		if n == 0 {
			c.logger.Error("Dropping oversized update", "interface", ifp.Name,
				"size", len(ifp.PendingUpdates[0]))
			ifp.PendingUpdates = ifp.PendingUpdates[1:]
			continue
		}
		ifp.PendingUpdates = ifp.PendingUpdates[n:]
		if err := c.messenger.Send(ifp, buf.Bytes()); err != nil {
			c.logger.Error("Sending updates failed", "interface", ifp.Name, "err", err)
		}
		metrics.CounterInc(metrics.CounterWith(c.metrics.PacketsSent, "interface", ifp.Name))
		buf.Reset()
	}
	ifp.PendingUpdates = nil
	c.sched.Cancel(ifp.Name, PurposeFlush)
}
