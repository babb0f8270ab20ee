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

// Package jitter computes randomized transmission delays.
//
// Periodic messages are spread over [v - v/4, v + v/4] so that neighbours on
// a shared link do not synchronize. Triggered messages use a shorter window
// derived from the hello interval.
package jitter

import (
	"math/rand/v2"
)

const (
	// UrgentCap bounds the jitter window of urgent messages, in milliseconds.
	UrgentCap = 100
	// RegularCap bounds the jitter window of regular triggered messages, in
	// milliseconds.
	RegularCap = 4000
)

// Source is a source of pseudo-random integers.
type Source interface {
	// Intn returns a non-negative pseudo-random number in [0,n). It panics if
	// n <= 0.
	Intn(n int) int
}

// Generator computes jittered delays.
type Generator interface {
	// Roughly returns v randomized by up to a quarter in either direction.
	Roughly(v uint32) uint32
	// Delay returns the delay in milliseconds before a triggered message
	// may be sent on an interface with the given hello interval.
	Delay(helloInterval uint32, urgent bool) uint32
}

// DefaultGenerator is a Generator backed by Source. If Source is nil, the
// global math/rand/v2 source is used.
type DefaultGenerator struct {
	Source Source
}

func (g DefaultGenerator) Roughly(v uint32) uint32 {
	return Roughly(v, g.Source)
}

func (g DefaultGenerator) Delay(helloInterval uint32, urgent bool) uint32 {
	return Delay(helloInterval, urgent, g.Source)
}

// Roughly returns a value uniformly distributed in [v - v/4, v + v/4).
// Values of at most 1 are returned unchanged.
func Roughly(v uint32, src Source) uint32 {
	if v <= 1 {
		return v
	}
	q := v / 4
	if q == 0 {
		return v
	}
	return v - q + uint32(intn(src, int(2*q)))
}

// Delay returns the jittered delay for a triggered message. The window is the
// hello interval capped at RegularCap, or at UrgentCap for urgent messages.
// Urgent delays are a quarter of the jittered window.
func Delay(helloInterval uint32, urgent bool, src Source) uint32 {
	limit := uint32(RegularCap)
	if urgent {
		limit = UrgentCap
	}
	eff := min(helloInterval, limit)
	if urgent {
		return Roughly(eff, src) / 4
	}
	return Roughly(eff, src)
}

func intn(src Source, n int) int {
	if src == nil {
		return rand.IntN(n)
	}
	return src.Intn(n)
}

// RandSource adapts a *rand.Rand to Source.
type RandSource struct {
	*rand.Rand
}

func (s RandSource) Intn(n int) int {
	return s.IntN(n)
}
