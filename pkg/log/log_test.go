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

package log_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/babelrouting/babeld/pkg/log"
	"github.com/babelrouting/babeld/pkg/log/testlog"
	"github.com/babelrouting/babeld/pkg/metrics"
)

func TestSetup(t *testing.T) {
	defer log.Discard()
	tests := map[string]struct {
		cfg       log.Config
		assertErr assert.ErrorAssertionFunc
	}{
		"empty, no error": {
			cfg:       log.Config{},
			assertErr: assert.NoError,
		},
		"json format": {
			cfg:       log.Config{Console: log.ConsoleConfig{Format: "json"}},
			assertErr: assert.NoError,
		},
		"invalid console level": {
			cfg:       log.Config{Console: log.ConsoleConfig{Level: "invalid"}},
			assertErr: assert.Error,
		},
		"invalid format": {
			cfg:       log.Config{Console: log.ConsoleConfig{Format: "xml"}},
			assertErr: assert.Error,
		},
		"invalid stacktrace level": {
			cfg:       log.Config{Console: log.ConsoleConfig{StacktraceLevel: "sometimes"}},
			assertErr: assert.Error,
		},
	}
	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			test.assertErr(t, log.Setup(test.cfg))
		})
	}
}

func TestEntriesCounter(t *testing.T) {
	defer log.Discard()
	debug, info, errs := metrics.NewTestCounter(), metrics.NewTestCounter(),
		metrics.NewTestCounter()
	opt := log.WithEntriesCounter(log.EntriesCounter{Debug: debug, Info: info, Error: errs})
	err := log.Setup(log.Config{Console: log.ConsoleConfig{Level: "debug"}}, opt)
	assert.NoError(t, err)

	log.Debug("debug")
	log.Info("info")
	log.Info("info")
	log.Error("error")
	assert.Equal(t, 1.0, metrics.CounterValue(debug))
	assert.Equal(t, 2.0, metrics.CounterValue(info))
	assert.Equal(t, 1.0, metrics.CounterValue(errs))
}

func TestFromCtx(t *testing.T) {
	t.Run("no logger returns root", func(t *testing.T) {
		assert.NotNil(t, log.FromCtx(context.Background()))
		//nolint:staticcheck // nil context is handled explicitly.
		assert.NotNil(t, log.FromCtx(nil))
	})
	t.Run("embedded logger is returned", func(t *testing.T) {
		logger := testlog.NewLogger(t)
		ctx := log.CtxWith(context.Background(), logger)
		assert.Same(t, logger, log.FromCtx(ctx))
	})
	t.Run("labels are attached", func(t *testing.T) {
		logger, logs := testlog.NewObserved(log.DebugLevel)
		ctx := log.CtxWith(context.Background(), logger)
		_, l := log.WithLabels(ctx, "ifname", "eth0")
		l.Info("hello")
		entries := logs.All()
		assert.Len(t, entries, 1)
		assert.Equal(t, "eth0", entries[0].ContextMap()["ifname"])
	})
}
