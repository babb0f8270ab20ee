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
	"context"
	"time"

	"github.com/babelrouting/babeld/babeld/iface"
)

// Shutdown withdraws this router from all links. Every running interface
// gets a wildcard retraction and a hello with a tiny interval so that
// neighbours drop us quickly. Since none of these messages is acknowledged,
// the sequence is sent twice; after the second pass the interface is disabled
// and reset. Finally all redistribution is withdrawn.
//
// The pauses between interfaces end early if ctx is done; the remaining
// messages are still sent and the interfaces still reset. In that case the
// context error is returned.
func (c *Controller) Shutdown(ctx context.Context) error {
	c.logger.Info("Shutting down", "interfaces", len(c.upNames()))
	for _, name := range c.upNames() {
		ifp := c.mustState(name)
		c.withdraw(ifp, 10)
		c.pause(ctx, c.firstDelay)
	}
	for _, name := range c.upNames() {
		ifp := c.mustState(name)
		c.withdraw(ifp, 1)
		c.pause(ctx, c.secondDelay)
		c.enabled.Remove(name)
		ifp.Enabled = false
		c.reset(ifp)
	}
	c.redistributor.WithdrawAll()
	return ctx.Err()
}

func (c *Controller) withdraw(ifp *iface.State, helloInterval uint16) {
	if err := c.messenger.SendWildcardRetraction(ifp); err != nil {
		c.logger.Error("Sending retraction failed", "interface", ifp.Name, "err", err)
	}
	c.sendHello(ifp, helloInterval)
	c.flush(ifp)
}

func (c *Controller) pause(ctx context.Context, d time.Duration) {
	if ctx.Err() != nil {
		return
	}
	d = time.Duration(c.jitter.Roughly(uint32(d.Microseconds()))) * time.Microsecond
	t := c.clock.Timer(d)
	defer t.Stop()
	select {
	case <-t.C:
	case <-ctx.Done():
	}
}

func (c *Controller) upNames() []string {
	var res []string
	for _, name := range c.names() {
		if c.ifaces[name].Up {
			res = append(res, name)
		}
	}
	return res
}
