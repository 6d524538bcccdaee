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

import (
	"io/ioutil"

	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v2"
)

type taskSpec struct {
	ID             string         `yaml:"id"`
	Transformation Transformation `yaml:"transformation"`
	Parents        []string       `yaml:"parents"`
}

type workflowSpec struct {
	Name  string     `yaml:"name"`
	Tasks []taskSpec `yaml:"tasks"`
}

// Load builds a workflow graph from a YAML description. Tasks are added in
// file order, edges afterwards so forward references between tasks are
// allowed. All structural errors are collected before giving up.
func Load(data []byte) (*Graph, error) {
	var spec workflowSpec
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return nil, errors.Wrap(err, "unable to parse workflow description")
	}

	graph := NewGraph()
	var result *multierror.Error
	for _, task := range spec.Tasks {
		node := NewNode(&Task{
			ID:             task.ID,
			Transformation: task.Transformation,
		})
		if err := graph.AddNode(node); err != nil {
			result = multierror.Append(result, err)
		}
	}
	for _, task := range spec.Tasks {
		for _, parent := range task.Parents {
			if err := graph.AddEdge(parent, task.ID); err != nil {
				result = multierror.Append(result, err)
			}
		}
	}
	if err := result.ErrorOrNil(); err != nil {
		return nil, err
	}
	return graph, nil
}

// LoadFile reads a workflow description from a YAML file.
func LoadFile(path string) (*Graph, error) {
	data, err := ioutil.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "unable to read workflow file %s", path)
	}
	return Load(data)
}
