// Copyright (c) 2019 Uber Technologies, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//    http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package stringset

// StringSet is a set of strings. It is not safe for concurrent mutation.
type StringSet map[string]struct{}

// New creates a StringSet containing the given keys.
func New(keys ...string) StringSet {
	s := make(StringSet, len(keys))
	for _, key := range keys {
		s.Add(key)
	}
	return s
}

// Add adds 'key' to the set.
func (s StringSet) Add(key string) {
	s[key] = struct{}{}
}

// Remove removes 'key' from the set.
func (s StringSet) Remove(key string) {
	delete(s, key)
}

// Contains checks if the set contains 'key'.
func (s StringSet) Contains(key string) bool {
	_, ok := s[key]
	return ok
}

// Len returns the number of keys in the set.
func (s StringSet) Len() int {
	return len(s)
}

// ToSlice returns a slice containing all elements in the set.
func (s StringSet) ToSlice() []string {
	keys := make([]string, 0, len(s))
	for key := range s {
		keys = append(keys, key)
	}
	return keys
}
