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

package config

const logSample = `
[log.console]
# Console logging level (debug|info|error). (default info)
level = "info"
# Console logging format (human|json). (default human)
format = "human"
`

const babelSample = `
# Interfaces the protocol runs on. Networks are not supported.
enable = ["eth0", "wlan0"]

# Per-interface settings. Omitted fields keep the defaults of the link type.
# Intervals are in milliseconds, rtt_min and rtt_max in milliseconds, and
# channel is "interfering", "noninterfering" or a number between 1 and 254.
[[babel.interfaces]]
name = "eth0"
wired = true
hello_interval = 4000
update_interval = 16000

[[babel.interfaces]]
name = "wlan0"
channel = "6"
rxcost = 256
link_quality = true
rtt_decay = 42
rtt_min = 10
rtt_max = 120
max_rtt_penalty = 150
`

const shutdownSample = `
# Pause after each interface in the first withdrawal pass. (default 1ms)
first_pass_delay = "1ms"
# Pause after each interface in the second withdrawal pass. (default 10ms)
second_pass_delay = "10ms"
# Upper bound for the graceful shutdown. (default 5s)
timeout = "5s"
`

const multicastSample = `
# Link-local IPv6 multicast group. (default ff02::1:6)
group = "ff02::1:6"
# UDP port. (default 6696)
port = 6696
`
