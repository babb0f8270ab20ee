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
	"cmp"
	"slices"
	"time"
)

// Purpose identifies what a deadline is for.
type Purpose int

const (
	// PurposeHello is the periodic hello.
	PurposeHello Purpose = iota
	// PurposeUpdate is the periodic full update.
	PurposeUpdate
	// PurposeFlush is the transmission of buffered updates.
	PurposeFlush
)

func (p Purpose) String() string {
	switch p {
	case PurposeHello:
		return "hello"
	case PurposeUpdate:
		return "update"
	case PurposeFlush:
		return "flush"
	}
	return "unknown"
}

type timerKey struct {
	ifname  string
	purpose Purpose
}

// Expiry is a deadline that has passed.
type Expiry struct {
	Interface string
	Purpose   Purpose
	Deadline  time.Time
}

// Scheduler keeps at most one deadline per interface and purpose. Arming
// replaces the previous deadline, so a cancelled or replaced deadline never
// expires.
type Scheduler struct {
	deadlines map[timerKey]time.Time
}

func NewScheduler() *Scheduler {
	return &Scheduler{deadlines: make(map[timerKey]time.Time)}
}

// Arm sets the deadline for ifname and p, replacing any existing one.
func (s *Scheduler) Arm(ifname string, p Purpose, at time.Time) {
	s.deadlines[timerKey{ifname: ifname, purpose: p}] = at
}

// Cancel removes the deadline for ifname and p.
func (s *Scheduler) Cancel(ifname string, p Purpose) {
	delete(s.deadlines, timerKey{ifname: ifname, purpose: p})
}

// CancelAll removes all deadlines of ifname.
func (s *Scheduler) CancelAll(ifname string) {
	for k := range s.deadlines {
		if k.ifname == ifname {
			delete(s.deadlines, k)
		}
	}
}

// Deadline returns the deadline for ifname and p.
func (s *Scheduler) Deadline(ifname string, p Purpose) (time.Time, bool) {
	at, ok := s.deadlines[timerKey{ifname: ifname, purpose: p}]
	return at, ok
}

// Next returns the earliest deadline.
func (s *Scheduler) Next() (time.Time, bool) {
	var next time.Time
	found := false
	for _, at := range s.deadlines {
		if !found || at.Before(next) {
			next, found = at, true
		}
	}
	return next, found
}

// PopDue removes and returns all deadlines at or before now, earliest first.
func (s *Scheduler) PopDue(now time.Time) []Expiry {
	var due []Expiry
	for k, at := range s.deadlines {
		if at.After(now) {
			continue
		}
		due = append(due, Expiry{Interface: k.ifname, Purpose: k.purpose, Deadline: at})
		delete(s.deadlines, k)
	}
	slices.SortFunc(due, func(a, b Expiry) int {
		if c := a.Deadline.Compare(b.Deadline); c != 0 {
			return c
		}
		if c := cmp.Compare(a.Interface, b.Interface); c != 0 {
			return c
		}
		return cmp.Compare(a.Purpose, b.Purpose)
	})
	return due
}

// Len returns the number of armed deadlines.
func (s *Scheduler) Len() int {
	return len(s.deadlines)
}
