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

package iface

import (
	"strconv"

	"github.com/babelrouting/babeld/babeld/cost"
	"github.com/babelrouting/babeld/pkg/private/serrors"
)

// Channel identifies the radio channel of an interface. Values 1 to 254 name a
// concrete channel.
type Channel int

const (
	// ChannelInterfering marks a link whose transmissions interfere with
	// those of the other interfaces.
	ChannelInterfering Channel = 255
	// ChannelNonInterfering marks a link that never interferes.
	ChannelNonInterfering Channel = -2
	// ChannelUnknown is never configured; it is reported for zero values.
	ChannelUnknown Channel = 0
)

// Valid reports whether c can be configured.
func (c Channel) Valid() bool {
	return c == ChannelInterfering || c == ChannelNonInterfering || (c >= 1 && c <= 254)
}

func (c Channel) String() string {
	switch c {
	case ChannelInterfering:
		return "interfering"
	case ChannelNonInterfering:
		return "noninterfering"
	case ChannelUnknown:
		return "unknown"
	}
	return strconv.Itoa(int(c))
}

// MarshalText implements encoding.TextMarshaler.
func (c Channel) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (c *Channel) UnmarshalText(b []byte) error {
	switch s := string(b); s {
	case "interfering":
		*c = ChannelInterfering
	case "noninterfering":
		*c = ChannelNonInterfering
	default:
		v, err := strconv.Atoi(s)
		if err != nil || !Channel(v).Valid() {
			return serrors.New("invalid channel", "value", s)
		}
		*c = Channel(v)
	}
	return nil
}

// Default values shared by both link types.
const (
	DefaultHelloInterval  = 4000
	DefaultUpdateInterval = 16000
	DefaultRTTDecay       = 42
	DefaultRTTMin         = 10000
	DefaultRTTMax         = 120000
	DefaultMaxRTTPenalty  = 150
	DefaultRxCostWired    = 96
	DefaultRxCostWireless = 256
)

// Field identifies an overridable profile setting.
type Field uint16

const (
	FieldSplitHorizon Field = 1 << iota
	FieldLinkQuality
	FieldTimestamps
	FieldChannel
	FieldRxCost
	FieldHelloInterval
	FieldUpdateInterval
	FieldRTTDecay
	FieldRTTMin
	FieldRTTMax
	FieldMaxRTTPenalty
)

// Values are the effective settings of an interface.
type Values struct {
	SplitHorizon bool
	LinkQuality  bool
	Timestamps   bool
	Channel      Channel
	RxCost       uint16
	// HelloInterval and UpdateInterval are in milliseconds.
	HelloInterval  uint32
	UpdateInterval uint32
	// RTTDecay is in units of 1/256.
	RTTDecay uint16
	// RTTMin and RTTMax are in microseconds.
	RTTMin        uint32
	RTTMax        uint32
	MaxRTTPenalty uint16
}

// Defaults returns the default settings for a wired or wireless link.
func Defaults(wired bool) Values {
	v := Values{
		HelloInterval:  DefaultHelloInterval,
		UpdateInterval: DefaultUpdateInterval,
		RTTDecay:       DefaultRTTDecay,
		RTTMin:         DefaultRTTMin,
		RTTMax:         DefaultRTTMax,
		MaxRTTPenalty:  DefaultMaxRTTPenalty,
	}
	if wired {
		v.SplitHorizon = true
		v.RxCost = DefaultRxCostWired
		v.Channel = ChannelNonInterfering
		return v
	}
	v.LinkQuality = true
	v.RxCost = DefaultRxCostWireless
	v.Channel = ChannelInterfering
	return v
}

// CostParams returns the parameters of the cost model.
func (v Values) CostParams() cost.Params {
	return cost.Params{
		RxCost:        v.RxCost,
		LinkQuality:   v.LinkQuality,
		RTTMin:        v.RTTMin,
		RTTMax:        v.RTTMax,
		MaxRTTPenalty: v.MaxRTTPenalty,
	}
}

// Profile holds the settings of an interface. It remembers which fields were
// set explicitly so that switching between wired and wireless only re-derives
// the others. The zero value is not usable; use NewProfile.
type Profile struct {
	wired      bool
	overridden Field
	v          Values
}

// NewProfile returns a wireless profile with default settings.
func NewProfile() Profile {
	return Profile{v: Defaults(false)}
}

// Values returns the effective settings.
func (p *Profile) Values() Values {
	return p.v
}

// Wired reports whether the link is treated as wired.
func (p *Profile) Wired() bool {
	return p.wired
}

// Overridden reports whether f was set explicitly.
func (p *Profile) Overridden(f Field) bool {
	return p.overridden&f != 0
}

// SetWired switches the link type. Settings that were not set explicitly take
// the defaults of the new type. It returns false if the type is unchanged.
func (p *Profile) SetWired(wired bool) bool {
	if p.wired == wired {
		return false
	}
	p.wired = wired
	def := Defaults(wired)
	for f := FieldSplitHorizon; f <= FieldMaxRTTPenalty; f <<= 1 {
		if !p.Overridden(f) {
			copyField(&p.v, def, f)
		}
	}
	return true
}

// Unset restores the default of the current link type for f.
func (p *Profile) Unset(f Field) {
	p.overridden &^= f
	copyField(&p.v, Defaults(p.wired), f)
}

func (p *Profile) SetSplitHorizon(b bool) {
	p.v.SplitHorizon = b
	p.overridden |= FieldSplitHorizon
}

func (p *Profile) SetLinkQuality(b bool) {
	p.v.LinkQuality = b
	p.overridden |= FieldLinkQuality
}

func (p *Profile) SetTimestamps(b bool) {
	p.v.Timestamps = b
	p.overridden |= FieldTimestamps
}

func (p *Profile) SetChannel(c Channel) {
	p.v.Channel = c
	p.overridden |= FieldChannel
}

func (p *Profile) SetRxCost(c uint16) {
	p.v.RxCost = c
	p.overridden |= FieldRxCost
}

func (p *Profile) SetHelloInterval(ms uint32) {
	p.v.HelloInterval = ms
	p.overridden |= FieldHelloInterval
}

func (p *Profile) SetUpdateInterval(ms uint32) {
	p.v.UpdateInterval = ms
	p.overridden |= FieldUpdateInterval
}

func (p *Profile) SetRTTDecay(d uint16) {
	p.v.RTTDecay = d
	p.overridden |= FieldRTTDecay
}

// SetRTTMin sets the lower RTT bound in microseconds.
func (p *Profile) SetRTTMin(us uint32) {
	p.v.RTTMin = us
	p.overridden |= FieldRTTMin
}

// SetRTTMax sets the upper RTT bound in microseconds.
func (p *Profile) SetRTTMax(us uint32) {
	p.v.RTTMax = us
	p.overridden |= FieldRTTMax
}

func (p *Profile) SetMaxRTTPenalty(v uint16) {
	p.v.MaxRTTPenalty = v
	p.overridden |= FieldMaxRTTPenalty
}

func copyField(dst *Values, src Values, f Field) {
	switch f {
	case FieldSplitHorizon:
		dst.SplitHorizon = src.SplitHorizon
	case FieldLinkQuality:
		dst.LinkQuality = src.LinkQuality
	case FieldTimestamps:
		dst.Timestamps = src.Timestamps
	case FieldChannel:
		dst.Channel = src.Channel
	case FieldRxCost:
		dst.RxCost = src.RxCost
	case FieldHelloInterval:
		dst.HelloInterval = src.HelloInterval
	case FieldUpdateInterval:
		dst.UpdateInterval = src.UpdateInterval
	case FieldRTTDecay:
		dst.RTTDecay = src.RTTDecay
	case FieldRTTMin:
		dst.RTTMin = src.RTTMin
	case FieldRTTMax:
		dst.RTTMax = src.RTTMax
	case FieldMaxRTTPenalty:
		dst.MaxRTTPenalty = src.MaxRTTPenalty
	default:
		// Combined masks are applied field by field.
		for single := FieldSplitHorizon; single <= FieldMaxRTTPenalty; single <<= 1 {
			if f&single != 0 {
				copyField(dst, src, single)
			}
		}
	}
}
