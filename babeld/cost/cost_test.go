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

package cost_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/babelrouting/babeld/babeld/cost"
)

func wireless() cost.Params {
	return cost.Params{
		RxCost:        256,
		LinkQuality:   true,
		RTTMin:        10000,
		RTTMax:        120000,
		MaxRTTPenalty: 150,
	}
}

func TestSampleUpdate(t *testing.T) {
	var s cost.Sample
	s.Update(50000, 42)
	assert.True(t, s.Valid)
	assert.Equal(t, uint32(50000), s.Smoothed, "first sample initializes directly")

	s.Update(50000+256*100, 42)
	assert.Equal(t, uint32(50000+42*100), s.Smoothed)
	assert.Equal(t, uint32(50000+256*100), s.Last)

	s.Update(0, 256)
	assert.Equal(t, uint32(0), s.Smoothed, "decay 256 follows the sample")

	s.Update(1000, 0)
	assert.Equal(t, uint32(3), s.Smoothed, "decay is clamped to 1")
}

func TestSampleUpdateDecreasing(t *testing.T) {
	s := cost.Sample{Smoothed: 100000, Valid: true}
	s.Update(0, 128)
	assert.Equal(t, uint32(50000), s.Smoothed)
}

func TestCompute(t *testing.T) {
	testCases := map[string]struct {
		params   func() cost.Params
		sample   cost.Sample
		expected uint16
	}{
		"no sample": {
			params:   wireless,
			expected: 256,
		},
		"below min": {
			params:   wireless,
			sample:   cost.Sample{Smoothed: 5000, Valid: true},
			expected: 256,
		},
		"at min": {
			params:   wireless,
			sample:   cost.Sample{Smoothed: 10000, Valid: true},
			expected: 256,
		},
		"midway": {
			params:   wireless,
			sample:   cost.Sample{Smoothed: 65000, Valid: true},
			expected: 256 + 75,
		},
		"at max": {
			params:   wireless,
			sample:   cost.Sample{Smoothed: 120000, Valid: true},
			expected: 256 + 150,
		},
		"above max": {
			params:   wireless,
			sample:   cost.Sample{Smoothed: 1000000, Valid: true},
			expected: 256 + 150,
		},
		"link quality disabled": {
			params: func() cost.Params {
				p := wireless()
				p.LinkQuality = false
				return p
			},
			sample:   cost.Sample{Smoothed: 1000000, Valid: true},
			expected: 256,
		},
		"step function below min": {
			params: func() cost.Params {
				p := wireless()
				p.RTTMax = p.RTTMin
				return p
			},
			sample:   cost.Sample{Smoothed: 9999, Valid: true},
			expected: 256,
		},
		"step function at min": {
			params: func() cost.Params {
				p := wireless()
				p.RTTMax = 5000
				return p
			},
			sample:   cost.Sample{Smoothed: 10000, Valid: true},
			expected: 256 + 150,
		},
		"clamped to max": {
			params: func() cost.Params {
				p := wireless()
				p.RxCost = 65534
				return p
			},
			sample:   cost.Sample{Smoothed: 1000000, Valid: true},
			expected: cost.Max,
		},
	}
	for name, tc := range testCases {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tc.expected, cost.Compute(tc.params(), tc.sample))
		})
	}
}

func TestComputeMonotoneAndBounded(t *testing.T) {
	for _, p := range []cost.Params{
		wireless(),
		{RxCost: 96, LinkQuality: true, RTTMin: 20000, RTTMax: 20000, MaxRTTPenalty: 300},
		{RxCost: 1, LinkQuality: true, RTTMin: 0, RTTMax: 1, MaxRTTPenalty: 65535},
		{RxCost: 65000, LinkQuality: true, RTTMin: 1000, RTTMax: 900000, MaxRTTPenalty: 999},
	} {
		prev := cost.Compute(p, cost.Sample{Valid: true})
		for rtt := uint32(0); rtt <= 1000000; rtt += 997 {
			c := cost.Compute(p, cost.Sample{Smoothed: rtt, Valid: true})
			assert.GreaterOrEqual(t, c, prev, "rtt=%d", rtt)
			assert.GreaterOrEqual(t, c, p.RxCost)
			upper := uint32(p.RxCost) + uint32(p.MaxRTTPenalty)
			if upper > cost.Max {
				upper = cost.Max
			}
			assert.LessOrEqual(t, uint32(c), upper)
			prev = c
		}
	}
}
