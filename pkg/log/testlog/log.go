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

// Package testlog provides loggers for tests.
package testlog

import (
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest"
	"go.uber.org/zap/zaptest/observer"

	"github.com/babelrouting/babeld/pkg/log"
)

// NewLogger returns a Logger writing every entry to the output of t.
func NewLogger(t testing.TB, opts ...zaptest.LoggerOption) log.Logger {
	return log.FromZap(zaptest.NewLogger(t, opts...))
}

// NewObserved returns a Logger that records every entry at or above lvl in
// the returned ObservedLogs.
func NewObserved(lvl log.Level) (log.Logger, *observer.ObservedLogs) {
	core, logs := observer.New(zapcore.Level(lvl))
	return log.FromZap(zap.New(core)), logs
}
