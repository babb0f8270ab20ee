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
	"net/netip"
	"time"

	"github.com/babelrouting/babeld/babeld/iface"
	"github.com/babelrouting/babeld/pkg/private/serrors"
)

// DefaultShutdownTimeout bounds the graceful shutdown run by Loop.
const DefaultShutdownTimeout = 5 * time.Second

// Loop runs a Controller on a single goroutine. Platform events,
// administrative operations and timer expirations are executed one at a time
// on that goroutine.
type Loop struct {
	ctrl            *Controller
	shutdownTimeout time.Duration
	ops             chan func()
	done            chan struct{}
}

// NewLoop creates a loop for c. If shutdownTimeout is zero,
// DefaultShutdownTimeout is used.
func NewLoop(c *Controller, shutdownTimeout time.Duration) *Loop {
	if shutdownTimeout == 0 {
		shutdownTimeout = DefaultShutdownTimeout
	}
	return &Loop{
		ctrl:            c,
		shutdownTimeout: shutdownTimeout,
		ops:             make(chan func()),
		done:            make(chan struct{}),
	}
}

// Run executes operations and expires deadlines until ctx is done. It then
// shuts the controller down gracefully and returns. Run must be called at
// most once.
func (l *Loop) Run(ctx context.Context) error {
	defer close(l.done)
	timer := l.ctrl.clock.Timer(0)
	timer.Stop()
	defer timer.Stop()
	for {
		var wake <-chan time.Time
		if next, ok := l.ctrl.NextDeadline(); ok {
			timer.Reset(max(next.Sub(l.ctrl.now()), 0))
			wake = timer.C
		}
		select {
		case <-ctx.Done():
			return l.shutdown(ctx)
		case op := <-l.ops:
			op()
		case <-wake:
			l.ctrl.Tick(l.ctrl.now())
		}
		timer.Stop()
	}
}

func (l *Loop) shutdown(ctx context.Context) error {
	sctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), l.shutdownTimeout)
	defer cancel()
	if err := l.ctrl.Shutdown(sctx); err != nil {
		return serrors.Wrap("graceful shutdown incomplete", err)
	}
	return nil
}

// Do runs fn on the loop goroutine and waits for it to complete. If ctx ends
// after fn was handed to the loop, Do returns without waiting and fn may
// still run. Values written by fn must only be read if Do returns nil.
func (l *Loop) Do(ctx context.Context, fn func(c *Controller)) error {
	done := make(chan struct{})
	op := func() {
		defer close(done)
		fn(l.ctrl)
	}
	select {
	case l.ops <- op:
	case <-l.done:
		return ErrLoopStopped
	case <-ctx.Done():
		return ctx.Err()
	}
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Interfaces returns a snapshot of all interfaces.
func (l *Loop) Interfaces(ctx context.Context) ([]iface.Status, error) {
	var res []iface.Status
	if err := l.Do(ctx, func(c *Controller) { res = c.Interfaces() }); err != nil {
		return nil, err
	}
	return res, nil
}

// Interface returns a snapshot of one interface.
func (l *Loop) Interface(ctx context.Context, name string) (iface.Status, error) {
	var (
		res   iface.Status
		opErr error
	)
	if err := l.Do(ctx, func(c *Controller) { res, opErr = c.Interface(name) }); err != nil {
		return iface.Status{}, err
	}
	return res, opErr
}

// Enabled returns the enable set.
func (l *Loop) Enabled(ctx context.Context) ([]string, error) {
	var res []string
	if err := l.Do(ctx, func(c *Controller) { res = c.EnabledNames() }); err != nil {
		return nil, err
	}
	return res, nil
}

// RunningConfig returns the non-default interface settings.
func (l *Loop) RunningConfig(ctx context.Context) ([]InterfaceSettings, error) {
	var res []InterfaceSettings
	if err := l.Do(ctx, func(c *Controller) { res = c.ConfigDiff() }); err != nil {
		return nil, err
	}
	return res, nil
}

// IsLocalAddress reports whether addr is a link-local address of a running
// interface.
func (l *Loop) IsLocalAddress(ctx context.Context, name string, addr netip.Addr) (bool, error) {
	var res bool
	if err := l.Do(ctx, func(c *Controller) { res = c.IsLocalAddress(name, addr) }); err != nil {
		return false, err
	}
	return res, nil
}
