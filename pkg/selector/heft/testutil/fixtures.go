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

// Package testutil provides fixture builders for site selector tests.
package testutil

import (
	"strconv"

	"github.com/papajim/pegasus/pkg/catalog"
	"github.com/papajim/pegasus/pkg/sites"
	"github.com/papajim/pegasus/pkg/workflow"
)

// TCEntry builds a transformation catalog entry carrying a runtime profile.
func TCEntry(name, site string, runtime int64) catalog.Entry {
	return catalog.Entry{
		Name: name,
		Site: site,
		Profiles: map[string]string{
			catalog.RuntimeProfileKey: strconv.FormatInt(runtime, 10),
		},
	}
}

// Task builds a task whose transformation shares the task id.
func Task(id string) *workflow.Task {
	return &workflow.Task{
		ID:             id,
		Transformation: workflow.Transformation{Name: id},
	}
}

// AddTasks adds one task per id to the graph.
func AddTasks(g *workflow.Graph, ids ...string) error {
	for _, id := range ids {
		if err := g.AddNode(workflow.NewNode(Task(id))); err != nil {
			return err
		}
	}
	return nil
}

// Registry builds a site registry with explicit processor counts. Sites
// missing from capacities get ten processors.
func Registry(names []string, capacities map[string]int) *sites.Registry {
	return sites.NewRegistry(names, catalog.NewSiteInfo(capacities), 10)
}
