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

package main

import (
	"context"
	"errors"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/sync/errgroup"

	"github.com/babelrouting/babeld/babeld/config"
	"github.com/babelrouting/babeld/babeld/control"
	"github.com/babelrouting/babeld/babeld/linkstats"
	"github.com/babelrouting/babeld/babeld/mcast"
	"github.com/babelrouting/babeld/babeld/mgmtapi"
	"github.com/babelrouting/babeld/babeld/netif"
	"github.com/babelrouting/babeld/pkg/log"
	"github.com/babelrouting/babeld/pkg/metrics"
	"github.com/babelrouting/babeld/pkg/private/serrors"
	"github.com/babelrouting/babeld/private/app/launcher"
	"github.com/babelrouting/babeld/private/env"
)

var globalCfg config.Config

func main() {
	application := launcher.Application{
		TOMLConfig: &globalCfg,
		ShortName:  "Babel Daemon",
		Main:       realMain,
	}
	application.Run()
}

func realMain(ctx context.Context) error {
	conn, err := mcast.Listen(globalCfg.Multicast.GroupAddr(), globalCfg.Multicast.Port)
	if err != nil {
		return serrors.Wrap("opening protocol socket", err)
	}
	defer conn.Close()

	ctrl := control.New(control.Config{
		Groups:          conn,
		Messenger:       &messenger{conn: conn, logger: log.New("component", "messenger")},
		Routes:          routeTable{logger: log.New("component", "routes")},
		Redistributor:   redistributor{logger: log.New("component", "redistribute")},
		EnableSet:       globalCfg.Babel.EnableSet(),
		FirstPassDelay:  globalCfg.Shutdown.FirstPassDelay.Duration,
		SecondPassDelay: globalCfg.Shutdown.SecondPassDelay.Duration,
		Logger:          log.New("component", "control"),
		Metrics:         control.NewMetrics(metrics.Factory{}),
	})
	for _, s := range globalCfg.Babel.Interfaces {
		if err := ctrl.Configure(s); err != nil {
			return serrors.Wrap("configuring interface", err, "interface", s.Name)
		}
	}
	loop := control.NewLoop(ctrl, globalCfg.Shutdown.Timeout.Duration)
	if stats, err := linkstats.New("", loop, nil); err != nil {
		log.Info("Link statistics unavailable", "err", err)
	} else {
		prometheus.MustRegister(stats)
	}

	g, errCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		defer log.HandlePanic()
		return loop.Run(errCtx)
	})
	g.Go(func() error {
		defer log.HandlePanic()
		tracker := &netif.Tracker{
			Dispatch: func(ctx context.Context, fn func(netif.Events)) error {
				return loop.Do(ctx, func(c *control.Controller) { fn(c) })
			},
			Logger: log.New("component", "netif"),
		}
		if err := tracker.Run(errCtx); err != nil && errCtx.Err() == nil {
			return serrors.Wrap("tracking interfaces", err)
		}
		return nil
	})

	// Initialize and start the status API.
	if globalCfg.API.Addr != "" {
		server := mgmtapi.Server{
			Source:   loop,
			LogLevel: log.LevelHandler(),
			Logger:   log.New("component", "mgmtapi"),
		}
		log.Info("Exposing API", "addr", globalCfg.API.Addr)
		mgmtServer := &http.Server{
			Addr:              globalCfg.API.Addr,
			Handler:           server.Handler(),
			ReadHeaderTimeout: env.HandlerTimeout,
		}
		g.Go(func() error {
			defer log.HandlePanic()
			<-errCtx.Done()
			return mgmtServer.Close()
		})
		g.Go(func() error {
			defer log.HandlePanic()
			err := mgmtServer.ListenAndServe()
			if err != nil && !errors.Is(err, http.ErrServerClosed) {
				return serrors.Wrap("serving status API", err)
			}
			return nil
		})
	}
	g.Go(func() error {
		defer log.HandlePanic()
		return globalCfg.Metrics.ServePrometheus(errCtx)
	})
	return g.Wait()
}
