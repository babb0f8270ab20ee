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

// Package bucket implements the per-interface transmission token bucket.
//
// A bucket holds at most Max tokens and is refilled at PerSecond tokens per
// second. Each outgoing packet costs one token; packets that find the bucket
// empty are held back by the caller.
package bucket

import (
	"math"
	"time"

	"golang.org/x/time/rate"
)

const (
	// Max is the bucket capacity.
	Max = 200
	// PerSecond is the refill rate.
	PerSecond = 40
)

// Bucket is a token bucket. It is not safe for concurrent use; it is owned by
// the interface state and only touched from the event loop.
type Bucket struct {
	lim *rate.Limiter
}

// New returns a full bucket.
func New(now time.Time) *Bucket {
	lim := rate.NewLimiter(rate.Limit(PerSecond), Max)
	// Pin the limiter's notion of time so refill is measured from now.
	lim.AllowN(now, 0)
	return &Bucket{lim: lim}
}

// TryConsume refills the bucket up to now and debits n tokens if that many
// are available. Otherwise it returns false and leaves the bucket unchanged.
// Requests for more than Max tokens always fail.
func (b *Bucket) TryConsume(now time.Time, n int) bool {
	if n < 0 || n > Max {
		return false
	}
	return b.lim.AllowN(now, n)
}

// Tokens returns the number of whole tokens available at now.
func (b *Bucket) Tokens(now time.Time) int {
	t := b.lim.TokensAt(now)
	switch {
	case t <= 0:
		return 0
	case t >= Max:
		return Max
	}
	return int(math.Floor(t))
}
