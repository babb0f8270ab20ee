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

package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// NewPromGauge wraps a prometheus gauge vector as a gauge.
// Returns nil, if gv is nil.
func NewPromGauge(gv *prometheus.GaugeVec) Gauge {
	if gv == nil {
		return nil
	}
	return &gauge{gv: gv}
}

// NewPromCounter wraps a prometheus counter vector as a counter.
// Returns nil if cv is nil.
func NewPromCounter(cv *prometheus.CounterVec) Counter {
	if cv == nil {
		return nil
	}
	return &counter{cv: cv}
}

// Factory creates prometheus collectors and registers them with a registry.
type Factory struct {
	// Registerer is used to register the collectors. If nil, the default
	// registerer is used.
	Registerer prometheus.Registerer
}

func (f Factory) registerer() prometheus.Registerer {
	if f.Registerer != nil {
		return f.Registerer
	}
	return prometheus.DefaultRegisterer
}

// NewCounterVec creates and registers a counter vector.
func (f Factory) NewCounterVec(
	opts prometheus.CounterOpts,
	labelNames []string,
) *prometheus.CounterVec {
	c := prometheus.NewCounterVec(opts, labelNames)
	f.registerer().MustRegister(c)
	return c
}

// NewGaugeVec creates and registers a gauge vector.
func (f Factory) NewGaugeVec(opts prometheus.GaugeOpts, labelNames []string) *prometheus.GaugeVec {
	g := prometheus.NewGaugeVec(opts, labelNames)
	f.registerer().MustRegister(g)
	return g
}

// labelValuesSlice holds alternating label name/value pairs.
type labelValuesSlice []string

// With validates the input, and returns a new aggregate labelValues.
func (lvs labelValuesSlice) With(labelValues ...string) labelValuesSlice {
	if len(labelValues)%2 != 0 {
		labelValues = append(labelValues, "unknown")
	}
	result := make(labelValuesSlice, len(lvs), len(lvs)+len(labelValues))
	copy(result, lvs)
	return append(result, labelValues...)
}

func (lvs labelValuesSlice) labels() prometheus.Labels {
	labels := prometheus.Labels{}
	for i := 0; i < len(lvs); i += 2 {
		labels[lvs[i]] = lvs[i+1]
	}
	return labels
}

type gauge struct {
	gv  *prometheus.GaugeVec
	lvs labelValuesSlice
}

func (g *gauge) With(labelValues ...string) Gauge {
	return &gauge{gv: g.gv, lvs: g.lvs.With(labelValues...)}
}

func (g *gauge) Set(value float64) {
	g.gv.With(g.lvs.labels()).Set(value)
}

func (g *gauge) Add(delta float64) {
	g.gv.With(g.lvs.labels()).Add(delta)
}

type counter struct {
	cv  *prometheus.CounterVec
	lvs labelValuesSlice
}

func (c *counter) With(labelValues ...string) Counter {
	return &counter{cv: c.cv, lvs: c.lvs.With(labelValues...)}
}

func (c *counter) Add(delta float64) {
	c.cv.With(c.lvs.labels()).Add(delta)
}
