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

package control_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/babelrouting/babeld/babeld/control"
)

func TestScheduler(t *testing.T) {
	t0 := time.Unix(0, 0)
	at := func(ms int) time.Time { return t0.Add(time.Duration(ms) * time.Millisecond) }

	s := control.NewScheduler()
	_, ok := s.Next()
	assert.False(t, ok)

	s.Arm("eth1", control.PurposeHello, at(10))
	s.Arm("eth0", control.PurposeUpdate, at(10))
	s.Arm("eth0", control.PurposeHello, at(10))
	s.Arm("eth0", control.PurposeFlush, at(30))
	s.Arm("eth1", control.PurposeUpdate, at(5))
	assert.Equal(t, 5, s.Len())

	next, ok := s.Next()
	require.True(t, ok)
	assert.Equal(t, at(5), next)

	// Re-arming replaces the deadline.
	s.Arm("eth1", control.PurposeUpdate, at(20))
	assert.Equal(t, 5, s.Len())

	assert.Empty(t, s.PopDue(at(9)))
	due := s.PopDue(at(20))
	assert.Equal(t, []control.Expiry{
		{Interface: "eth0", Purpose: control.PurposeHello, Deadline: at(10)},
		{Interface: "eth0", Purpose: control.PurposeUpdate, Deadline: at(10)},
		{Interface: "eth1", Purpose: control.PurposeHello, Deadline: at(10)},
		{Interface: "eth1", Purpose: control.PurposeUpdate, Deadline: at(20)},
	}, due)
	assert.Equal(t, 1, s.Len())

	d, ok := s.Deadline("eth0", control.PurposeFlush)
	assert.True(t, ok)
	assert.Equal(t, at(30), d)

	s.Cancel("eth0", control.PurposeFlush)
	_, ok = s.Deadline("eth0", control.PurposeFlush)
	assert.False(t, ok)
	assert.Empty(t, s.PopDue(at(1000)))
}

func TestSchedulerCancelAll(t *testing.T) {
	now := time.Now()
	s := control.NewScheduler()
	for _, p := range []control.Purpose{
		control.PurposeHello, control.PurposeUpdate, control.PurposeFlush,
	} {
		s.Arm("eth0", p, now)
		s.Arm("eth1", p, now)
	}
	s.CancelAll("eth0")
	assert.Equal(t, 3, s.Len())
	for _, e := range s.PopDue(now) {
		assert.Equal(t, "eth1", e.Interface)
	}
}

func TestPurposeString(t *testing.T) {
	assert.Equal(t, "hello", control.PurposeHello.String())
	assert.Equal(t, "update", control.PurposeUpdate.String())
	assert.Equal(t, "flush", control.PurposeFlush.String())
	assert.Equal(t, "unknown", control.Purpose(7).String())
}
