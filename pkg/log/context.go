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

package log

import "context"

type ctxKey struct{}

// CtxWith returns a copy of ctx carrying logger. It panics if ctx is nil.
func CtxWith(ctx context.Context, logger Logger) context.Context {
	if ctx == nil {
		panic("log: nil context")
	}
	return context.WithValue(ctx, ctxKey{}, logger)
}

// FromCtx returns the logger stored in ctx by CtxWith. Without one, the root
// logger is returned, so the result is never nil.
func FromCtx(ctx context.Context) Logger {
	if ctx != nil {
		if l, _ := ctx.Value(ctxKey{}).(Logger); l != nil {
			return l
		}
	}
	return Root()
}

// WithLabels derives a logger with additional key/value labels from the one
// in ctx and returns it together with a context carrying it.
func WithLabels(ctx context.Context, labels ...any) (context.Context, Logger) {
	l := FromCtx(ctx).New(labels...)
	return CtxWith(ctx, l), l
}
