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

package workflow

import "fmt"

// Transformation identifies the executable that a task runs. It is the key
// used to look up catalog entries for the task.
type Transformation struct {
	Namespace string `yaml:"namespace"`
	Name      string `yaml:"name"`
	Version   string `yaml:"version"`
}

// String returns the transformation in the namespace::name:version form.
// Namespace and version are omitted when empty.
func (t Transformation) String() string {
	result := t.Name
	if t.Namespace != "" {
		result = t.Namespace + "::" + result
	}
	if t.Version != "" {
		result = result + ":" + t.Version
	}
	return result
}

// Task is a single unit of work in the abstract workflow. The identity of a
// task never changes once it is part of a graph; all scheduling state lives
// in the Placement record of the node wrapping the task.
type Task struct {
	ID             string
	Transformation Transformation
}

func (t *Task) String() string {
	return fmt.Sprintf("%s (%s)", t.ID, t.Transformation)
}
