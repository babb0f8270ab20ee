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

package envtest

import (
	"bytes"
	"testing"

	"github.com/pelletier/go-toml/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/babelrouting/babeld/private/config"
	"github.com/babelrouting/babeld/private/env"
)

func TestGeneralSample(t *testing.T) {
	var sample bytes.Buffer
	var cfg env.General
	cfg.Sample(&sample, nil, map[string]string{config.ID: "babeld-1"})
	err := toml.NewDecoder(bytes.NewReader(sample.Bytes())).DisallowUnknownFields().Decode(&cfg)
	require.NoError(t, err)
	assert.Equal(t, "babeld-1", cfg.ID)
	assert.NoError(t, cfg.Validate())
}

func TestGeneralValidate(t *testing.T) {
	var cfg env.General
	assert.Error(t, cfg.Validate())
}

func TestMetricsSample(t *testing.T) {
	var sample bytes.Buffer
	var cfg env.Metrics
	cfg.Sample(&sample, nil, nil)
	err := toml.NewDecoder(bytes.NewReader(sample.Bytes())).DisallowUnknownFields().Decode(&cfg)
	require.NoError(t, err)
	assert.Empty(t, cfg.Prometheus)
	assert.NoError(t, cfg.Validate())
}

func TestAPISample(t *testing.T) {
	var sample bytes.Buffer
	var cfg env.API
	cfg.Sample(&sample, nil, nil)
	err := toml.NewDecoder(bytes.NewReader(sample.Bytes())).DisallowUnknownFields().Decode(&cfg)
	require.NoError(t, err)
	assert.Empty(t, cfg.Addr)
}

func TestAddrValidation(t *testing.T) {
	testCases := map[string]bool{
		"":               true,
		"127.0.0.1:8080": true,
		"[::1]:30442":    true,
		"localhost:80":   false,
		"127.0.0.1":      false,
	}
	for addr, valid := range testCases {
		m := env.Metrics{Prometheus: addr}
		a := env.API{Addr: addr}
		if valid {
			assert.NoError(t, m.Validate(), addr)
			assert.NoError(t, a.Validate(), addr)
		} else {
			assert.Error(t, m.Validate(), addr)
			assert.Error(t, a.Validate(), addr)
		}
	}
}
