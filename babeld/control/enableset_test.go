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

	"github.com/stretchr/testify/assert"

	"github.com/babelrouting/babeld/babeld/control"
)

func TestEnableSet(t *testing.T) {
	s := control.NewEnableSet("wlan0", "eth0", "eth0")
	assert.Equal(t, 2, s.Len())
	assert.True(t, s.Contains("eth0"))
	assert.False(t, s.Contains("eth1"))

	assert.True(t, s.Add("eth1"))
	assert.False(t, s.Add("eth1"))
	assert.Equal(t, []string{"wlan0", "eth0", "eth1"}, s.Names())

	names := s.Names()
	names[0] = "mutated"
	assert.True(t, s.Contains("wlan0"))

	assert.True(t, s.Remove("wlan0"))
	assert.False(t, s.Remove("wlan0"))
	assert.Equal(t, []string{"eth0", "eth1"}, s.Names())
}
