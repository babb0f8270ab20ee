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

package jitter_test

import (
	"math/rand/v2"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"

	"github.com/babelrouting/babeld/babeld/jitter"
	"github.com/babelrouting/babeld/babeld/jitter/mock_jitter"
)

func TestRoughly(t *testing.T) {
	t.Run("small values unchanged", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		// Intn must not be called.
		src := mock_jitter.NewMockSource(ctrl)
		assert.Equal(t, uint32(0), jitter.Roughly(0, src))
		assert.Equal(t, uint32(1), jitter.Roughly(1, src))
		assert.Equal(t, uint32(3), jitter.Roughly(3, src))
	})

	t.Run("custom source", func(t *testing.T) {
		testCases := []struct {
			v        uint32
			offset   int
			expected uint32
		}{
			{v: 4000, offset: 0, expected: 3000},
			{v: 4000, offset: 1000, expected: 4000},
			{v: 4000, offset: 1999, expected: 4999},
			{v: 16000, offset: 7999, expected: 19999},
			{v: 4, offset: 1, expected: 4},
		}
		for _, tc := range testCases {
			ctrl := gomock.NewController(t)
			src := mock_jitter.NewMockSource(ctrl)
			src.EXPECT().Intn(int(2 * (tc.v / 4))).Return(tc.offset)
			assert.Equal(t, tc.expected, jitter.Roughly(tc.v, src), "v=%d", tc.v)
		}
	})

	t.Run("range", func(t *testing.T) {
		src := jitter.RandSource{Rand: rand.New(rand.NewPCG(1, 2))}
		for _, v := range []uint32{2, 5, 100, 4000, 16000, 655340} {
			for i := 0; i < 500; i++ {
				r := jitter.Roughly(v, src)
				assert.GreaterOrEqual(t, r, v-v/4)
				assert.LessOrEqual(t, r, v+v/4)
			}
		}
	})
}

func TestDelay(t *testing.T) {
	t.Run("window is capped", func(t *testing.T) {
		testCases := map[string]struct {
			hello    uint32
			urgent   bool
			window   int
			offset   int
			expected uint32
		}{
			"regular short hello": {
				hello: 1000, window: 500, offset: 250, expected: 1000,
			},
			"regular capped": {
				hello: 10000, window: 2000, offset: 0, expected: 3000,
			},
			"urgent capped": {
				hello: 4000, urgent: true, window: 50, offset: 25, expected: 25,
			},
			"urgent short hello": {
				hello: 40, urgent: true, window: 20, offset: 19, expected: 12,
			},
		}
		for name, tc := range testCases {
			t.Run(name, func(t *testing.T) {
				ctrl := gomock.NewController(t)
				src := mock_jitter.NewMockSource(ctrl)
				src.EXPECT().Intn(tc.window).Return(tc.offset)
				assert.Equal(t, tc.expected, jitter.Delay(tc.hello, tc.urgent, src))
			})
		}
	})

	t.Run("bounds", func(t *testing.T) {
		g := jitter.DefaultGenerator{Source: jitter.RandSource{Rand: rand.New(rand.NewPCG(3, 4))}}
		for _, hello := range []uint32{20, 100, 1000, 4000, 16000, 655340} {
			eff := min(hello, jitter.RegularCap)
			for i := 0; i < 200; i++ {
				d := g.Delay(hello, false)
				assert.GreaterOrEqual(t, d, eff*3/4)
				assert.LessOrEqual(t, d, eff*5/4)
				u := g.Delay(hello, true)
				assert.LessOrEqual(t, u, eff*3/4, "urgent never exceeds regular minimum")
			}
		}
	})

	t.Run("nil source", func(t *testing.T) {
		assert.NotPanics(t, func() { jitter.DefaultGenerator{}.Delay(4000, false) })
	})
}
