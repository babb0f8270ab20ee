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
	"errors"
)

var (
	// ErrConfigConflict indicates that an interface is already enabled.
	ErrConfigConflict = errors.New("interface already enabled")
	// ErrNotConfigured indicates that an interface is not in the enable set.
	ErrNotConfigured = errors.New("interface not enabled")
	// ErrNotSupported indicates an unsupported configuration, such as
	// enabling the protocol by network prefix.
	ErrNotSupported = errors.New("not supported")
	// ErrUnknownInterface indicates that no state exists for an interface.
	ErrUnknownInterface = errors.New("unknown interface")
	// ErrInterfaceDown indicates that the protocol is not running on an
	// interface.
	ErrInterfaceDown = errors.New("interface down")
	// ErrInvalidValue indicates that a setting is out of range.
	ErrInvalidValue = errors.New("invalid value")
	// ErrResourceExhaustion indicates that a send buffer could not be
	// allocated.
	ErrResourceExhaustion = errors.New("resource exhaustion")
	// ErrSocket indicates that a multicast group operation failed.
	ErrSocket = errors.New("socket error")
	// ErrLoopStopped is returned for operations submitted to a stopped loop.
	ErrLoopStopped = errors.New("event loop stopped")
)
