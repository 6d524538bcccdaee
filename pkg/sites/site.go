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

package sites

import (
	"fmt"
	"sync"
)

// SchedulingError indicates a commit that violates the timeline of a site:
// no processor is free at the requested start time, or the interval is
// inverted. With a correctly sequenced caller this never happens.
type SchedulingError struct {
	Site  string
	Start int64
	End   int64
}

func (e SchedulingError) Error() string {
	return fmt.Sprintf("site %s cannot run a job from %d till %d",
		e.Site, e.Start, e.End)
}

// Site models the processors of a compute site. Each processor carries a
// next-free timestamp that only ever advances: earlier idle gaps are never
// reused (non-insertion policy).
type Site struct {
	mu     sync.Mutex
	name   string
	freeAt []int64
}

// NewSite creates a site with the given number of processors, all free at
// time 0. The processor count is fixed for the lifetime of the site.
func NewSite(name string, processors int) *Site {
	return &Site{
		name:   name,
		freeAt: make([]int64, processors),
	}
}

// Name returns the site name.
func (s *Site) Name() string {
	return s.name
}

// Capacity returns the number of processors of the site.
func (s *Site) Capacity() int {
	return len(s.freeAt)
}

// EarliestAvailable returns the earliest moment at or after ready at which
// some processor of the site is idle.
func (s *Site) EarliestAvailable(ready int64) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	earliest := s.freeAt[0]
	for _, free := range s.freeAt[1:] {
		if free < earliest {
			earliest = free
		}
	}
	if earliest < ready {
		return ready
	}
	return earliest
}

// Schedule commits a job occupying one processor from start till end. The
// processor with the lowest index among those free by start is taken.
func (s *Site) Schedule(start, end int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if end < start {
		return SchedulingError{Site: s.name, Start: start, End: end}
	}
	for i, free := range s.freeAt {
		if free <= start {
			s.freeAt[i] = end
			return nil
		}
	}
	return SchedulingError{Site: s.name, Start: start, End: end}
}
