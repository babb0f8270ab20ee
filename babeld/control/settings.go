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
	"github.com/babelrouting/babeld/babeld/iface"
	"github.com/babelrouting/babeld/pkg/private/serrors"
)

// Ranges of the administrative settings. RTT bounds are configured in
// milliseconds.
const (
	MinInterval      = 20
	MaxInterval      = 655340
	MinRxCost        = 1
	MaxRxCost        = 65534
	MinRTTDecay      = 1
	MaxRTTDecay      = 256
	MinRTTBound      = 1
	MaxRTTBound      = 65535
	MaxMaxRTTPenalty = 65535
)

// InterfaceSettings are the explicit settings of an interface. Nil fields
// keep their default. It is the element type of the interface list in the
// configuration file and of the running configuration.
type InterfaceSettings struct {
	Name         string         `toml:"name" json:"name"`
	Wired        *bool          `toml:"wired,omitempty" json:"wired,omitempty"`
	SplitHorizon *bool          `toml:"split_horizon,omitempty" json:"split_horizon,omitempty"`
	LinkQuality  *bool          `toml:"link_quality,omitempty" json:"link_quality,omitempty"`
	Timestamps   *bool          `toml:"timestamps,omitempty" json:"timestamps,omitempty"`
	Channel      *iface.Channel `toml:"channel,omitempty" json:"channel,omitempty"`
	RxCost       *uint32        `toml:"rxcost,omitempty" json:"rxcost,omitempty"`
	// HelloInterval and UpdateInterval are in milliseconds.
	HelloInterval  *uint32 `toml:"hello_interval,omitempty" json:"hello_interval,omitempty"`
	UpdateInterval *uint32 `toml:"update_interval,omitempty" json:"update_interval,omitempty"`
	RTTDecay       *uint32 `toml:"rtt_decay,omitempty" json:"rtt_decay,omitempty"`
	// RTTMin and RTTMax are in milliseconds.
	RTTMin        *uint32 `toml:"rtt_min,omitempty" json:"rtt_min,omitempty"`
	RTTMax        *uint32 `toml:"rtt_max,omitempty" json:"rtt_max,omitempty"`
	MaxRTTPenalty *uint32 `toml:"max_rtt_penalty,omitempty" json:"max_rtt_penalty,omitempty"`
}

// Validate checks that all set values are in range.
func (s *InterfaceSettings) Validate() error {
	if s.Name == "" {
		return serrors.JoinNoStack(ErrInvalidValue, nil, "field", "name")
	}
	var errs serrors.List
	if s.Channel != nil && !s.Channel.Valid() {
		errs = append(errs, serrors.JoinNoStack(ErrInvalidValue, nil,
			"field", "channel", "value", int(*s.Channel)))
	}
	for _, r := range []struct {
		field  string
		v      *uint32
		lo, hi uint32
	}{
		{"rxcost", s.RxCost, MinRxCost, MaxRxCost},
		{"hello_interval", s.HelloInterval, MinInterval, MaxInterval},
		{"update_interval", s.UpdateInterval, MinInterval, MaxInterval},
		{"rtt_decay", s.RTTDecay, MinRTTDecay, MaxRTTDecay},
		{"rtt_min", s.RTTMin, MinRTTBound, MaxRTTBound},
		{"rtt_max", s.RTTMax, MinRTTBound, MaxRTTBound},
		{"max_rtt_penalty", s.MaxRTTPenalty, 0, MaxMaxRTTPenalty},
	} {
		if r.v == nil {
			continue
		}
		if err := checkRange(r.field, *r.v, r.lo, r.hi); err != nil {
			errs = append(errs, err)
		}
	}
	return errs.ToError()
}

func (s *InterfaceSettings) apply(p *iface.Profile) {
	if s.Wired != nil {
		p.SetWired(*s.Wired)
	}
	if s.SplitHorizon != nil {
		p.SetSplitHorizon(*s.SplitHorizon)
	}
	if s.LinkQuality != nil {
		p.SetLinkQuality(*s.LinkQuality)
	}
	if s.Timestamps != nil {
		p.SetTimestamps(*s.Timestamps)
	}
	if s.Channel != nil {
		p.SetChannel(*s.Channel)
	}
	if s.RxCost != nil {
		p.SetRxCost(uint16(*s.RxCost))
	}
	if s.HelloInterval != nil {
		p.SetHelloInterval(*s.HelloInterval)
	}
	if s.UpdateInterval != nil {
		p.SetUpdateInterval(*s.UpdateInterval)
	}
	if s.RTTDecay != nil {
		p.SetRTTDecay(uint16(*s.RTTDecay))
	}
	if s.RTTMin != nil {
		p.SetRTTMin(*s.RTTMin * 1000)
	}
	if s.RTTMax != nil {
		p.SetRTTMax(*s.RTTMax * 1000)
	}
	if s.MaxRTTPenalty != nil {
		p.SetMaxRTTPenalty(uint16(*s.MaxRTTPenalty))
	}
}

// fields returns the profile fields s sets explicitly. The link type is not a
// field.
func (s *InterfaceSettings) fields() iface.Field {
	var f iface.Field
	for _, e := range []struct {
		set   bool
		field iface.Field
	}{
		{s.SplitHorizon != nil, iface.FieldSplitHorizon},
		{s.LinkQuality != nil, iface.FieldLinkQuality},
		{s.Timestamps != nil, iface.FieldTimestamps},
		{s.Channel != nil, iface.FieldChannel},
		{s.RxCost != nil, iface.FieldRxCost},
		{s.HelloInterval != nil, iface.FieldHelloInterval},
		{s.UpdateInterval != nil, iface.FieldUpdateInterval},
		{s.RTTDecay != nil, iface.FieldRTTDecay},
		{s.RTTMin != nil, iface.FieldRTTMin},
		{s.RTTMax != nil, iface.FieldRTTMax},
		{s.MaxRTTPenalty != nil, iface.FieldMaxRTTPenalty},
	} {
		if e.set {
			f |= e.field
		}
	}
	return f
}

func (s *InterfaceSettings) empty() bool {
	return s.Wired == nil && s.SplitHorizon == nil && s.LinkQuality == nil &&
		s.Timestamps == nil && s.Channel == nil && s.RxCost == nil &&
		s.HelloInterval == nil && s.UpdateInterval == nil && s.RTTDecay == nil &&
		s.RTTMin == nil && s.RTTMax == nil && s.MaxRTTPenalty == nil
}

// Configure validates s and applies it to the named interface. The settings
// replace earlier ones for that name: fields configured before but absent
// from s return to their defaults. The settings are remembered and applied
// again whenever an interface of that name appears. Invalid settings are
// rejected without any change.
func (c *Controller) Configure(s InterfaceSettings) error {
	if err := s.Validate(); err != nil {
		return err
	}
	prev, had := c.configured[s.Name]
	c.configured[s.Name] = s
	ifp, ok := c.ifaces[s.Name]
	if !ok {
		return nil
	}
	c.modify(ifp, func(p *iface.Profile) {
		if had {
			if prev.Wired != nil && s.Wired == nil {
				p.SetWired(false)
			}
			if stale := prev.fields() &^ s.fields(); stale != 0 {
				p.Unset(stale)
			}
		}
		s.apply(p)
	})
	return nil
}

// ConfigDiff returns the settings of every interface that differ from the
// defaults of its link type, ordered by interface name. Interfaces without
// such settings are omitted.
func (c *Controller) ConfigDiff() []InterfaceSettings {
	var res []InterfaceSettings
	for _, name := range c.names() {
		if s := diff(c.ifaces[name]); !s.empty() {
			res = append(res, s)
		}
	}
	return res
}

func diff(ifp *iface.State) InterfaceSettings {
	p := &ifp.Profile
	v := p.Values()
	def := iface.Defaults(p.Wired())
	s := InterfaceSettings{Name: ifp.Name}
	if p.Wired() {
		s.Wired = ptr(true)
	}
	if v.SplitHorizon != def.SplitHorizon {
		s.SplitHorizon = ptr(v.SplitHorizon)
	}
	if v.LinkQuality != def.LinkQuality {
		s.LinkQuality = ptr(v.LinkQuality)
	}
	if v.Timestamps {
		s.Timestamps = ptr(true)
	}
	if v.Channel != def.Channel {
		s.Channel = ptr(v.Channel)
	}
	if v.RxCost != def.RxCost {
		s.RxCost = ptr(uint32(v.RxCost))
	}
	if v.HelloInterval != def.HelloInterval {
		s.HelloInterval = ptr(v.HelloInterval)
	}
	if v.UpdateInterval != def.UpdateInterval {
		s.UpdateInterval = ptr(v.UpdateInterval)
	}
	if v.RTTDecay != def.RTTDecay {
		s.RTTDecay = ptr(uint32(v.RTTDecay))
	}
	if v.RTTMin != def.RTTMin {
		s.RTTMin = ptr(v.RTTMin / 1000)
	}
	if v.RTTMax != def.RTTMax {
		s.RTTMax = ptr(v.RTTMax / 1000)
	}
	if v.MaxRTTPenalty != def.MaxRTTPenalty {
		s.MaxRTTPenalty = ptr(uint32(v.MaxRTTPenalty))
	}
	return s
}

func checkRange(field string, v, lo, hi uint32) error {
	if v < lo || v > hi {
		return serrors.JoinNoStack(ErrInvalidValue, nil,
			"field", field, "value", v, "min", lo, "max", hi)
	}
	return nil
}

func ptr[T any](v T) *T {
	return &v
}
