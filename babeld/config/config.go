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

// Package config contains the configuration of the babel daemon.
package config

import (
	"io"
	"net/netip"

	"github.com/babelrouting/babeld/babeld/control"
	"github.com/babelrouting/babeld/babeld/mcast"
	"github.com/babelrouting/babeld/pkg/log"
	"github.com/babelrouting/babeld/pkg/private/serrors"
	"github.com/babelrouting/babeld/pkg/private/util"
	libconfig "github.com/babelrouting/babeld/private/config"
	"github.com/babelrouting/babeld/private/env"
)

var _ libconfig.Config = (*Config)(nil)

// Config is the daemon configuration.
type Config struct {
	General   env.General `toml:"general,omitempty"`
	Logging   log.Config  `toml:"log,omitempty"`
	Metrics   env.Metrics `toml:"metrics,omitempty"`
	API       env.API     `toml:"api,omitempty"`
	Babel     Babel       `toml:"babel,omitempty"`
	Shutdown  Shutdown    `toml:"shutdown,omitempty"`
	Multicast Multicast   `toml:"multicast,omitempty"`
}

func (cfg *Config) InitDefaults() {
	libconfig.InitAll(
		&cfg.General,
		&cfg.Logging,
		&cfg.Metrics,
		&cfg.API,
		&cfg.Babel,
		&cfg.Shutdown,
		&cfg.Multicast,
	)
}

func (cfg *Config) Validate() error {
	return libconfig.ValidateAll(
		&cfg.General,
		&cfg.Metrics,
		&cfg.API,
		&cfg.Babel,
		&cfg.Shutdown,
		&cfg.Multicast,
	)
}

func (cfg *Config) Sample(dst io.Writer, path libconfig.Path, ctx libconfig.CtxMap) {
	libconfig.WriteSample(dst, path, ctx,
		&cfg.General,
		sampler(logSample),
		&cfg.Metrics,
		&cfg.API,
		&cfg.Babel,
		&cfg.Shutdown,
		&cfg.Multicast,
	)
}

// sampler writes its text verbatim, without a table header.
type sampler string

func (s sampler) Sample(dst io.Writer, _ libconfig.Path, _ libconfig.CtxMap) {
	libconfig.WriteString(dst, string(s))
}

var _ libconfig.Config = (*Babel)(nil)

// Babel configures the protocol.
type Babel struct {
	libconfig.NoDefaulter
	// Enable lists the interfaces the protocol runs on, in order.
	Enable []string `toml:"enable,omitempty"`
	// Interfaces holds per-interface settings. They are applied when the
	// interface appears, whether or not the protocol is enabled on it.
	Interfaces []control.InterfaceSettings `toml:"interfaces,omitempty"`
}

func (cfg *Babel) Validate() error {
	var errs serrors.List
	seen := make(map[string]bool, len(cfg.Enable))
	for _, name := range cfg.Enable {
		if name == "" {
			errs = append(errs, serrors.New("empty interface name in babel.enable"))
			continue
		}
		if control.IsNetwork(name) {
			errs = append(errs, serrors.JoinNoStack(control.ErrNotSupported, nil,
				"network", name))
			continue
		}
		if seen[name] {
			errs = append(errs, serrors.JoinNoStack(control.ErrConfigConflict, nil,
				"interface", name))
		}
		seen[name] = true
	}
	names := make(map[string]bool, len(cfg.Interfaces))
	for i := range cfg.Interfaces {
		s := &cfg.Interfaces[i]
		if err := s.Validate(); err != nil {
			errs = append(errs, serrors.Wrap("invalid interface settings", err,
				"interface", s.Name))
			continue
		}
		if names[s.Name] {
			errs = append(errs, serrors.JoinNoStack(control.ErrConfigConflict, nil,
				"interface", s.Name, "section", "babel.interfaces"))
		}
		names[s.Name] = true
	}
	return errs.ToError()
}

func (cfg *Babel) Sample(dst io.Writer, path libconfig.Path, _ libconfig.CtxMap) {
	libconfig.WriteString(dst, babelSample)
}

func (cfg *Babel) ConfigName() string {
	return "babel"
}

// EnableSet returns the configured enable list.
func (cfg *Babel) EnableSet() *control.EnableSet {
	return control.NewEnableSet(cfg.Enable...)
}

var _ libconfig.Config = (*Shutdown)(nil)

// Shutdown configures the graceful shutdown.
type Shutdown struct {
	// FirstPassDelay is the pause after each interface in the first
	// withdrawal pass.
	FirstPassDelay util.DurWrap `toml:"first_pass_delay,omitempty"`
	// SecondPassDelay is the pause after each interface in the second
	// withdrawal pass.
	SecondPassDelay util.DurWrap `toml:"second_pass_delay,omitempty"`
	// Timeout bounds the whole shutdown.
	Timeout util.DurWrap `toml:"timeout,omitempty"`
}

func (cfg *Shutdown) InitDefaults() {
	if cfg.FirstPassDelay.Duration == 0 {
		cfg.FirstPassDelay.Duration = control.DefaultFirstPassDelay
	}
	if cfg.SecondPassDelay.Duration == 0 {
		cfg.SecondPassDelay.Duration = control.DefaultSecondPassDelay
	}
	if cfg.Timeout.Duration == 0 {
		cfg.Timeout.Duration = control.DefaultShutdownTimeout
	}
}

func (cfg *Shutdown) Validate() error {
	if cfg.Timeout.Duration < cfg.FirstPassDelay.Duration+cfg.SecondPassDelay.Duration {
		return serrors.New("shutdown timeout shorter than the pass delays",
			"timeout", cfg.Timeout, "first_pass_delay", cfg.FirstPassDelay,
			"second_pass_delay", cfg.SecondPassDelay)
	}
	return nil
}

func (cfg *Shutdown) Sample(dst io.Writer, path libconfig.Path, _ libconfig.CtxMap) {
	libconfig.WriteString(dst, shutdownSample)
}

func (cfg *Shutdown) ConfigName() string {
	return "shutdown"
}

var _ libconfig.Config = (*Multicast)(nil)

// Multicast configures the protocol socket.
type Multicast struct {
	// Group is the link-local IPv6 multicast group.
	Group string `toml:"group,omitempty"`
	// Port is the UDP port.
	Port uint16 `toml:"port,omitempty"`
}

func (cfg *Multicast) InitDefaults() {
	if cfg.Group == "" {
		cfg.Group = mcast.DefaultGroup.String()
	}
	if cfg.Port == 0 {
		cfg.Port = mcast.DefaultPort
	}
}

func (cfg *Multicast) Validate() error {
	g, err := netip.ParseAddr(cfg.Group)
	if err != nil {
		return serrors.Wrap("invalid multicast group", err, "group", cfg.Group)
	}
	if !g.Is6() || !g.IsLinkLocalMulticast() {
		return serrors.New("group must be a link-local IPv6 multicast address",
			"group", cfg.Group)
	}
	if cfg.Port == 0 {
		return serrors.New("multicast port must not be zero")
	}
	return nil
}

// GroupAddr returns the parsed group. It must only be called on a validated
// config.
func (cfg *Multicast) GroupAddr() netip.Addr {
	return netip.MustParseAddr(cfg.Group)
}

func (cfg *Multicast) Sample(dst io.Writer, path libconfig.Path, _ libconfig.CtxMap) {
	libconfig.WriteString(dst, multicastSample)
}

func (cfg *Multicast) ConfigName() string {
	return "multicast"
}
