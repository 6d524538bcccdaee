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

package heft

import (
	"github.com/uber-go/tally"
)

// Metrics contains all the metrics relevant to the HEFT site selector.
type Metrics struct {
	// SchedulingRuns counts completed scheduling runs.
	SchedulingRuns tally.Counter
	// SchedulingFails counts aborted scheduling runs.
	SchedulingFails tally.Counter

	// TasksScheduled counts tasks committed to a site.
	TasksScheduled tally.Counter

	// RankDuration measures the rank phase, SchedulingDuration the whole
	// run.
	RankDuration       tally.Timer
	SchedulingDuration tally.Timer

	// Makespan reports the makespan of the last scheduled workflow in
	// seconds.
	Makespan tally.Gauge
}

// NewMetrics returns a new Metrics struct with all metrics initialized and
// rooted below the given tally scope.
func NewMetrics(scope tally.Scope) *Metrics {
	runScope := scope.SubScope("run")
	successScope := runScope.Tagged(map[string]string{"type": "success"})
	failScope := runScope.Tagged(map[string]string{"type": "fail"})

	return &Metrics{
		SchedulingRuns:     successScope.Counter("completed"),
		SchedulingFails:    failScope.Counter("completed"),
		TasksScheduled:     scope.Counter("tasks_scheduled"),
		RankDuration:       scope.Timer("rank_duration"),
		SchedulingDuration: scope.Timer("scheduling_duration"),
		Makespan:           scope.Gauge("makespan"),
	}
}
