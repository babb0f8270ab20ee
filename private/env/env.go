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

// Package env contains the configuration blocks and start-up helpers shared
// by daemons. If something is specific to one daemon, it should go into that
// daemon's code and not here.
package env

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/netip"
	"os"
	"runtime/debug"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/babelrouting/babeld/pkg/log"
	"github.com/babelrouting/babeld/pkg/private/serrors"
	"github.com/babelrouting/babeld/private/config"
)

const (
	// ShutdownGraceInterval is the time daemons wait after issuing a clean
	// shutdown signal, before forcefully tearing down the process.
	ShutdownGraceInterval = 5 * time.Second
	// HandlerTimeout is the time after which the http handler gives up on a
	// request and returns an error instead.
	HandlerTimeout = time.Minute
)

var _ config.Config = (*General)(nil)

type General struct {
	// ID names this daemon instance in logs and metrics.
	ID string `toml:"id,omitempty"`
}

func (cfg *General) InitDefaults() {}

func (cfg *General) Validate() error {
	if cfg.ID == "" {
		return serrors.New("no daemon id specified")
	}
	return nil
}

func (cfg *General) Sample(dst io.Writer, path config.Path, ctx config.CtxMap) {
	config.WriteString(dst, fmt.Sprintf(generalSample, ctx[config.ID]))
}

func (cfg *General) ConfigName() string {
	return "general"
}

var _ config.Config = (*Metrics)(nil)

type Metrics struct {
	config.NoDefaulter
	// Prometheus contains the address to export prometheus metrics on. If
	// not set, metrics are not exported.
	Prometheus string `toml:"prometheus,omitempty"`
}

func (cfg *Metrics) Validate() error {
	return validateAddr("prometheus", cfg.Prometheus)
}

func (cfg *Metrics) Sample(dst io.Writer, path config.Path, _ config.CtxMap) {
	config.WriteString(dst, metricsSample)
}

func (cfg *Metrics) ConfigName() string {
	return "metrics"
}

// ServePrometheus serves the default prometheus registry until ctx is done.
func (cfg *Metrics) ServePrometheus(ctx context.Context) error {
	if cfg.Prometheus == "" {
		return nil
	}
	handler := promhttp.InstrumentMetricHandler(
		prometheus.DefaultRegisterer,
		promhttp.HandlerFor(
			prometheus.DefaultGatherer,
			promhttp.HandlerOpts{Timeout: HandlerTimeout},
		),
	)
	mux := http.NewServeMux()
	mux.Handle("/metrics", handler)
	log.Info("Exporting prometheus metrics", "addr", cfg.Prometheus)
	server := &http.Server{Addr: cfg.Prometheus, Handler: mux}
	go func() {
		defer log.HandlePanic()
		<-ctx.Done()
		server.Close()
	}()
	err := server.ListenAndServe()
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		return serrors.Wrap("serving prometheus metrics", err)
	}
	return nil
}

var _ config.Config = (*API)(nil)

// API configures the management API.
type API struct {
	config.NoDefaulter
	// Addr is the address the API is served on. If not set, the API is not
	// served.
	Addr string `toml:"addr,omitempty"`
}

func (cfg *API) Validate() error {
	return validateAddr("addr", cfg.Addr)
}

func (cfg *API) Sample(dst io.Writer, path config.Path, _ config.CtxMap) {
	config.WriteString(dst, apiSample)
}

func (cfg *API) ConfigName() string {
	return "api"
}

func validateAddr(field, addr string) error {
	if addr == "" {
		return nil
	}
	if _, err := netip.ParseAddrPort(addr); err != nil {
		return serrors.Wrap("invalid address", err, "field", field, "addr", addr)
	}
	return nil
}

// LogAppStarted logs the start of a daemon.
func LogAppStarted(svcType, elemID string) {
	log.Info("=====================> Service started", "svc", svcType, "id", elemID,
		"version", VersionInfo(), "pid", os.Getpid(), "euid", os.Geteuid(),
		"cmdline", os.Args)
}

// LogAppStopped logs the end of a daemon.
func LogAppStopped(svcType, elemID string) {
	log.Info("=====================> Service stopped", "svc", svcType, "id", elemID)
}

// VersionInfo returns the module version the binary was built from.
func VersionInfo() string {
	bi, ok := debug.ReadBuildInfo()
	if !ok {
		return "unknown"
	}
	return bi.Main.Version
}
