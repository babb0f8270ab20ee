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

// Package cost implements the link cost model: a configured receive cost
// plus an optional penalty derived from the smoothed round-trip time to the
// neighbours on the link.
package cost

const (
	// Max is the largest finite cost. Computed costs are clamped to it.
	Max = 0xFFFE
	// Infinity is the cost of an unusable link.
	Infinity = 0xFFFF
)

// DecayUnit is the fixed-point denominator of the RTT decay factor.
const DecayUnit = 256

// Params are the profile values the cost depends on.
type Params struct {
	// RxCost is the base cost of the link.
	RxCost uint16
	// LinkQuality enables the RTT penalty.
	LinkQuality bool
	// RTTMin is the smoothed RTT in microseconds below which no penalty
	// applies.
	RTTMin uint32
	// RTTMax is the smoothed RTT in microseconds at which the penalty
	// reaches MaxRTTPenalty.
	RTTMax uint32
	// MaxRTTPenalty is the largest penalty added to RxCost.
	MaxRTTPenalty uint16
}

// Sample is the RTT measurement state of a link.
type Sample struct {
	// Last is the most recent raw sample in microseconds.
	Last uint32
	// Smoothed is the exponentially weighted moving average in microseconds.
	Smoothed uint32
	// Valid is set once the first sample has been recorded.
	Valid bool
}

// Update folds a new RTT measurement into the moving average. decay is in
// units of 1/256 and is clamped to [1, 256]. The first sample initializes the
// average directly.
func (s *Sample) Update(rtt uint32, decay uint16) {
	s.Last = rtt
	if !s.Valid {
		s.Smoothed = rtt
		s.Valid = true
		return
	}
	d := int64(decay)
	if d < 1 {
		d = 1
	}
	if d > DecayUnit {
		d = DecayUnit
	}
	smoothed := int64(s.Smoothed)
	smoothed += (int64(rtt) - smoothed) * d / DecayUnit
	s.Smoothed = uint32(smoothed)
}

// Penalty returns the RTT penalty for the sample, in [0, p.MaxRTTPenalty].
// It is zero if link quality tracking is disabled or no sample exists.
func Penalty(p Params, s Sample) uint16 {
	if !p.LinkQuality || !s.Valid || p.MaxRTTPenalty == 0 {
		return 0
	}
	rtt := s.Smoothed
	if p.RTTMax <= p.RTTMin {
		if rtt < p.RTTMin {
			return 0
		}
		return p.MaxRTTPenalty
	}
	switch {
	case rtt <= p.RTTMin:
		return 0
	case rtt >= p.RTTMax:
		return p.MaxRTTPenalty
	}
	num := uint64(p.MaxRTTPenalty) * uint64(rtt-p.RTTMin)
	return uint16(num / uint64(p.RTTMax-p.RTTMin))
}

// Compute returns the cost of a link: RxCost plus the RTT penalty, clamped to
// Max.
func Compute(p Params, s Sample) uint16 {
	c := uint32(p.RxCost) + uint32(Penalty(p, s))
	if c > Max {
		return Max
	}
	return uint16(c)
}
