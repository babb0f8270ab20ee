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

// Package linkstats exports the kernel's per-interface traffic counters of the
// interfaces the protocol runs on. The counters are read from /proc/net/dev on
// every scrape.
package linkstats

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/procfs"

	"github.com/babelrouting/babeld/babeld/iface"
	"github.com/babelrouting/babeld/pkg/log"
	"github.com/babelrouting/babeld/pkg/private/serrors"
)

// DefaultTimeout bounds the interface query of a single scrape.
const DefaultTimeout = time.Second

var (
	rxBytes = prometheus.NewDesc(
		"babeld_link_receive_bytes_total",
		"Bytes received on the interface as reported by the kernel.",
		[]string{"interface"}, nil,
	)
	rxPackets = prometheus.NewDesc(
		"babeld_link_receive_packets_total",
		"Packets received on the interface as reported by the kernel.",
		[]string{"interface"}, nil,
	)
	rxDropped = prometheus.NewDesc(
		"babeld_link_receive_dropped_total",
		"Received packets dropped by the kernel.",
		[]string{"interface"}, nil,
	)
	txBytes = prometheus.NewDesc(
		"babeld_link_transmit_bytes_total",
		"Bytes transmitted on the interface as reported by the kernel.",
		[]string{"interface"}, nil,
	)
	txPackets = prometheus.NewDesc(
		"babeld_link_transmit_packets_total",
		"Packets transmitted on the interface as reported by the kernel.",
		[]string{"interface"}, nil,
	)
	txErrors = prometheus.NewDesc(
		"babeld_link_transmit_errors_total",
		"Transmit errors on the interface as reported by the kernel.",
		[]string{"interface"}, nil,
	)
	scrapeErrors = prometheus.NewDesc(
		"babeld_link_stats_errors_total",
		"Number of scrapes that failed to read the interface statistics.",
		nil, nil,
	)
)

// Source lists the interfaces known to the daemon.
type Source interface {
	Interfaces(ctx context.Context) ([]iface.Status, error)
}

// Collector is a prometheus collector for the traffic counters of all
// interfaces on which the protocol is up.
type Collector struct {
	fs      procfs.FS
	source  Source
	timeout time.Duration
	logger  log.Logger
	errors  atomic.Uint64
}

// New creates a collector reading from the proc filesystem mounted at
// mountPoint. An empty mountPoint selects procfs.DefaultMountPoint.
func New(mountPoint string, source Source, logger log.Logger) (*Collector, error) {
	if mountPoint == "" {
		mountPoint = procfs.DefaultMountPoint
	}
	fs, err := procfs.NewFS(mountPoint)
	if err != nil {
		return nil, serrors.Wrap("opening proc filesystem", err, "mount_point", mountPoint)
	}
	if logger == nil {
		logger = log.New("component", "linkstats")
	}
	return &Collector{
		fs:      fs,
		source:  source,
		timeout: DefaultTimeout,
		logger:  logger,
	}, nil
}

// Describe implements prometheus.Collector.
func (c *Collector) Describe(ch chan<- *prometheus.Desc) {
	for _, d := range []*prometheus.Desc{
		rxBytes, rxPackets, rxDropped, txBytes, txPackets, txErrors, scrapeErrors,
	} {
		ch <- d
	}
}

// Collect implements prometheus.Collector.
func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	if err := c.collect(ch); err != nil {
		c.errors.Add(1)
		c.logger.Debug("Collecting link statistics failed", "err", err)
	}
	ch <- prometheus.MustNewConstMetric(scrapeErrors, prometheus.CounterValue,
		float64(c.errors.Load()))
}

func (c *Collector) collect(ch chan<- prometheus.Metric) error {
	ctx, cancel := context.WithTimeout(context.Background(), c.timeout)
	defer cancel()
	ifaces, err := c.source.Interfaces(ctx)
	if err != nil {
		return serrors.Wrap("listing interfaces", err)
	}
	up := make(map[string]struct{}, len(ifaces))
	for _, st := range ifaces {
		if st.Up {
			up[st.Name] = struct{}{}
		}
	}
	if len(up) == 0 {
		return nil
	}
	dev, err := c.fs.NetDev()
	if err != nil {
		return serrors.Wrap("reading net/dev", err)
	}
	for name, line := range dev {
		if _, ok := up[name]; !ok {
			continue
		}
		for _, m := range []struct {
			desc  *prometheus.Desc
			value uint64
		}{
			{rxBytes, line.RxBytes},
			{rxPackets, line.RxPackets},
			{rxDropped, line.RxDropped},
			{txBytes, line.TxBytes},
			{txPackets, line.TxPackets},
			{txErrors, line.TxErrors},
		} {
			ch <- prometheus.MustNewConstMetric(m.desc, prometheus.CounterValue,
				float64(m.value), name)
		}
	}
	return nil
}
