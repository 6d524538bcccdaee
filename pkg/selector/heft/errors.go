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

import "fmt"

// NoFeasibleSiteError indicates that no candidate site can run a task. The
// task cannot be ranked or placed, so the scheduling run aborts.
type NoFeasibleSiteError struct {
	Task string
}

func (e NoFeasibleSiteError) Error() string {
	return fmt.Sprintf("no feasible site for task %s", e.Task)
}

// UnscheduledLeafError indicates that a makespan was requested while a leaf
// of the workflow has no finish time, meaning a prior scheduling run was
// aborted or skipped.
type UnscheduledLeafError struct {
	Task string
}

func (e UnscheduledLeafError) Error() string {
	return fmt.Sprintf("leaf task %s is unscheduled", e.Task)
}
