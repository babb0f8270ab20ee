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
	"slices"
)

// EnableSet is the ordered set of interface names the protocol is enabled on.
// It is owned by the daemon configuration and handed to the controller, which
// is its only writer once running.
type EnableSet struct {
	names []string
}

// NewEnableSet returns a set holding names. Duplicates are dropped.
func NewEnableSet(names ...string) *EnableSet {
	s := &EnableSet{}
	for _, n := range names {
		s.Add(n)
	}
	return s
}

// Add appends name. It returns false if name is already present.
func (s *EnableSet) Add(name string) bool {
	if s.Contains(name) {
		return false
	}
	s.names = append(s.names, name)
	return true
}

// Remove deletes name. It returns false if name is not present.
func (s *EnableSet) Remove(name string) bool {
	i := slices.Index(s.names, name)
	if i < 0 {
		return false
	}
	s.names = slices.Delete(s.names, i, i+1)
	return true
}

func (s *EnableSet) Contains(name string) bool {
	return slices.Contains(s.names, name)
}

// Names returns the names in insertion order.
func (s *EnableSet) Names() []string {
	return slices.Clone(s.names)
}

func (s *EnableSet) Len() int {
	return len(s.names)
}
