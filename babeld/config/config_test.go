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

package config_test

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/babelrouting/babeld/babeld/config"
	"github.com/babelrouting/babeld/babeld/control"
	"github.com/babelrouting/babeld/babeld/iface"
	libconfig "github.com/babelrouting/babeld/private/config"
)

func TestSample(t *testing.T) {
	var sample bytes.Buffer
	var cfg config.Config
	cfg.Sample(&sample, nil, libconfig.CtxMap{libconfig.ID: "babeld-1"})

	var decoded config.Config
	require.NoError(t, libconfig.Decode(sample.Bytes(), &decoded), sample.String())
	decoded.InitDefaults()
	require.NoError(t, decoded.Validate())

	assert.Equal(t, "babeld-1", decoded.General.ID)
	assert.Equal(t, "info", decoded.Logging.Console.Level)
	assert.Equal(t, []string{"eth0", "wlan0"}, decoded.Babel.Enable)
	require.Len(t, decoded.Babel.Interfaces, 2)
	assert.Equal(t, "eth0", decoded.Babel.Interfaces[0].Name)
	require.NotNil(t, decoded.Babel.Interfaces[0].Wired)
	assert.True(t, *decoded.Babel.Interfaces[0].Wired)
	require.NotNil(t, decoded.Babel.Interfaces[1].Channel)
	assert.Equal(t, iface.Channel(6), *decoded.Babel.Interfaces[1].Channel)
	assert.Equal(t, control.DefaultFirstPassDelay, decoded.Shutdown.FirstPassDelay.Duration)
	assert.Equal(t, control.DefaultSecondPassDelay, decoded.Shutdown.SecondPassDelay.Duration)
	assert.Equal(t, 5*time.Second, decoded.Shutdown.Timeout.Duration)
	assert.Equal(t, "ff02::1:6", decoded.Multicast.Group)
	assert.Equal(t, uint16(6696), decoded.Multicast.Port)
}

func TestDefaults(t *testing.T) {
	var cfg config.Config
	cfg.General.ID = "babeld"
	cfg.InitDefaults()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, "human", cfg.Logging.Console.Format)
	assert.Equal(t, control.DefaultShutdownTimeout, cfg.Shutdown.Timeout.Duration)
	assert.Equal(t, "ff02::1:6", cfg.Multicast.GroupAddr().String())
	assert.Equal(t, 0, cfg.Babel.EnableSet().Len())
}

func TestLoadFile(t *testing.T) {
	raw := `
[general]
id = "r1"

[babel]
enable = ["eth0"]

[[babel.interfaces]]
name = "eth0"
channel = "noninterfering"
rxcost = 128

[shutdown]
second_pass_delay = "50ms"
`
	file := filepath.Join(t.TempDir(), "babeld.toml")
	require.NoError(t, os.WriteFile(file, []byte(raw), 0o644))

	var cfg config.Config
	require.NoError(t, libconfig.LoadFile(file, &cfg))
	cfg.InitDefaults()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, 50*time.Millisecond, cfg.Shutdown.SecondPassDelay.Duration)
	assert.Equal(t, control.DefaultFirstPassDelay, cfg.Shutdown.FirstPassDelay.Duration)
	s := cfg.Babel.Interfaces[0]
	assert.Equal(t, iface.ChannelNonInterfering, *s.Channel)
	assert.Equal(t, uint32(128), *s.RxCost)
	assert.True(t, cfg.Babel.EnableSet().Contains("eth0"))
}

func TestDecodeRejectsUnknownKeys(t *testing.T) {
	var cfg config.Config
	err := libconfig.Decode([]byte("[babel]\nredistribute = true\n"), &cfg)
	assert.Error(t, err)
	err = libconfig.Decode([]byte("[[babel.interfaces]]\nname = \"eth0\"\nchannel = \"0\"\n"), &cfg)
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	u32 := func(v uint32) *uint32 { return &v }
	testCases := map[string]struct {
		modify func(*config.Config)
		is     error
	}{
		"missing id": {
			modify: func(c *config.Config) { c.General.ID = "" },
		},
		"duplicate enable": {
			modify: func(c *config.Config) { c.Babel.Enable = []string{"eth0", "eth0"} },
			is:     control.ErrConfigConflict,
		},
		"network enable": {
			modify: func(c *config.Config) { c.Babel.Enable = []string{"10.0.0.0/8"} },
			is:     control.ErrNotSupported,
		},
		"address enable": {
			modify: func(c *config.Config) { c.Babel.Enable = []string{"10.0.0.1"} },
			is:     control.ErrNotSupported,
		},
		"ipv6 address enable": {
			modify: func(c *config.Config) { c.Babel.Enable = []string{"eth0", "fe80::1"} },
			is:     control.ErrNotSupported,
		},
		"invalid hello interval": {
			modify: func(c *config.Config) {
				c.Babel.Interfaces = []control.InterfaceSettings{
					{Name: "eth0", HelloInterval: u32(5)},
				}
			},
			is: control.ErrInvalidValue,
		},
		"duplicate interface section": {
			modify: func(c *config.Config) {
				c.Babel.Interfaces = []control.InterfaceSettings{{Name: "eth0"}, {Name: "eth0"}}
			},
			is: control.ErrConfigConflict,
		},
		"shutdown timeout too short": {
			modify: func(c *config.Config) { c.Shutdown.Timeout.Duration = time.Millisecond },
		},
		"unicast group": {
			modify: func(c *config.Config) { c.Multicast.Group = "2001:db8::1" },
		},
		"global multicast group": {
			modify: func(c *config.Config) { c.Multicast.Group = "ff0e::1:6" },
		},
		"bad api addr": {
			modify: func(c *config.Config) { c.API.Addr = "localhost" },
		},
	}
	for name, tc := range testCases {
		t.Run(name, func(t *testing.T) {
			var cfg config.Config
			cfg.General.ID = "babeld"
			cfg.InitDefaults()
			tc.modify(&cfg)
			err := cfg.Validate()
			require.Error(t, err)
			if tc.is != nil {
				assert.ErrorIs(t, err, tc.is)
			}
		})
	}
}
