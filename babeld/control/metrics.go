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
	"github.com/prometheus/client_golang/prometheus"

	"github.com/babelrouting/babeld/pkg/metrics"
)

// Metrics is used by the controller to report on its operation. Nil fields
// are ignored.
type Metrics struct {
	// InterfacesUp reports the number of interfaces the protocol runs on.
	InterfacesUp metrics.Gauge
	// Transitions counts interface state changes, labeled by event.
	Transitions metrics.Counter
	// SocketErrors counts failed multicast group operations.
	SocketErrors metrics.Counter
	// ResourceErrors counts failed send buffer allocations.
	ResourceErrors metrics.Counter
	// PacketsSent counts packets of buffered updates handed to the messenger.
	PacketsSent metrics.Counter
	// PacketsThrottled counts flushes deferred because the interface bucket
	// was empty.
	PacketsThrottled metrics.Counter
}

// NewMetrics creates the prometheus backed controller metrics.
func NewMetrics(f metrics.Factory) Metrics {
	return Metrics{
		InterfacesUp: metrics.NewPromGauge(f.NewGaugeVec(prometheus.GaugeOpts{
			Name: "babeld_interfaces_up",
			Help: "Number of interfaces the protocol runs on.",
		}, []string{})),
		Transitions: metrics.NewPromCounter(f.NewCounterVec(prometheus.CounterOpts{
			Name: "babeld_interface_transitions_total",
			Help: "Total number of interface state changes.",
		}, []string{"event"})),
		SocketErrors: metrics.NewPromCounter(f.NewCounterVec(prometheus.CounterOpts{
			Name: "babeld_socket_errors_total",
			Help: "Total number of failed multicast group operations.",
		}, []string{"op"})),
		ResourceErrors: metrics.NewPromCounter(f.NewCounterVec(prometheus.CounterOpts{
			Name: "babeld_resource_errors_total",
			Help: "Total number of failed send buffer allocations.",
		}, []string{})),
		PacketsSent: metrics.NewPromCounter(f.NewCounterVec(prometheus.CounterOpts{
			Name: "babeld_packets_sent_total",
			Help: "Total number of update packets sent.",
		}, []string{"interface"})),
		PacketsThrottled: metrics.NewPromCounter(f.NewCounterVec(prometheus.CounterOpts{
			Name: "babeld_packets_throttled_total",
			Help: "Total number of update flushes deferred by the token bucket.",
		}, []string{"interface"})),
	}
}
