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

package main

import (
	"github.com/babelrouting/babeld/babeld/iface"
	"github.com/babelrouting/babeld/babeld/mcast"
	"github.com/babelrouting/babeld/pkg/log"
)

// messenger hands update packets to the protocol socket. Hello, request and
// update messages are produced by the message layer, which is not part of
// this daemon; they are only logged here.
type messenger struct {
	conn   *mcast.Conn
	logger log.Logger
}

func (m *messenger) SendHello(ifp *iface.State, interval uint16) error {
	m.logger.Debug("Hello", "interface", ifp.Name, "seqno", ifp.HelloSeqno,
		"interval_cs", interval)
	return nil
}

func (m *messenger) SendRequest(ifp *iface.State) error {
	m.logger.Debug("Route request", "interface", ifp.Name)
	return nil
}

func (m *messenger) SendUpdate(ifp *iface.State) error {
	m.logger.Debug("Full update", "interface", ifp.Name)
	return nil
}

func (m *messenger) SendWildcardRetraction(ifp *iface.State) error {
	m.logger.Debug("Wildcard retraction", "interface", ifp.Name)
	return nil
}

func (m *messenger) Send(ifp *iface.State, packet []byte) error {
	return m.conn.Send(ifp.Index, packet)
}

// routeTable logs the route layer notifications.
type routeTable struct {
	logger log.Logger
}

func (r routeTable) FlushInterface(ifp *iface.State) {
	r.logger.Debug("Flushing routes", "interface", ifp.Name)
}

func (r routeTable) CostChanged(ifp *iface.State, cost uint16) {
	r.logger.Info("Link cost changed", "interface", ifp.Name, "cost", cost)
}

type redistributor struct {
	logger log.Logger
}

func (r redistributor) WithdrawAll() {
	r.logger.Info("Withdrawing redistributed routes")
}
