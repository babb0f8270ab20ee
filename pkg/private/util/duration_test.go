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

package util_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/babelrouting/babeld/pkg/private/util"
)

func TestFmtDuration(t *testing.T) {
	testCases := map[time.Duration]string{
		0:                       "0s",
		time.Millisecond:        "1ms",
		10 * time.Millisecond:   "10ms",
		1500 * time.Millisecond: "1500ms",
		90 * time.Minute:        "90m",
		2 * time.Hour:           "2h",
		3 * time.Microsecond:    "3us",
		7:                       "7ns",
	}
	for d, want := range testCases {
		assert.Equal(t, want, util.FmtDuration(d))
	}
}

func TestParseDuration(t *testing.T) {
	d, err := util.ParseDuration("1h30m")
	require.NoError(t, err)
	assert.Equal(t, 90*time.Minute, d)

	_, err = util.ParseDuration("-1s")
	assert.Error(t, err)
	_, err = util.ParseDuration("soon")
	assert.Error(t, err)
}

func TestDurWrap(t *testing.T) {
	var d util.DurWrap
	require.NoError(t, d.UnmarshalText([]byte("10ms")))
	assert.Equal(t, 10*time.Millisecond, d.Duration)
	text, err := d.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "10ms", string(text))
	assert.Error(t, d.UnmarshalText([]byte("ten")))
	assert.Equal(t, 10*time.Millisecond, d.Duration, "unchanged on error")
	assert.Equal(t, "10ms", d.String())
}
