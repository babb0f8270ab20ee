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

package serrors

import (
	"runtime"

	"github.com/pkg/errors"
	"go.uber.org/zap/zapcore"
)

// StackTrace is the stack of Frames from innermost (newest) to outermost
// (oldest). It formats the same way as github.com/pkg/errors stack traces.
type StackTrace = errors.StackTrace

// Frame is a single program counter of a stack trace.
type Frame = errors.Frame

const maxStackDepth = 32

type stack []uintptr

func (s *stack) StackTrace() StackTrace {
	frames := make([]Frame, len(*s))
	for i, pc := range *s {
		frames[i] = Frame(pc)
	}
	return frames
}

func (s *stack) MarshalLogArray(enc zapcore.ArrayEncoder) error {
	for _, pc := range *s {
		t, err := Frame(pc).MarshalText()
		if err != nil {
			return err
		}
		enc.AppendByteString(t)
	}
	return nil
}

// callers records the stack of the function that called the serrors
// constructor.
func callers() *stack {
	var pcs [maxStackDepth]uintptr
	// Skip runtime.Callers, callers, mkErrorInfo and the exported constructor.
	n := runtime.Callers(4, pcs[:])
	st := stack(pcs[:n])
	return &st
}
