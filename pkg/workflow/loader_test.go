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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const _diamondYAML = `
name: diamond
tasks:
  - id: preprocess
    transformation: {namespace: pegasus, name: preprocess, version: "4.0"}
  - id: findrange_l
    transformation: {namespace: pegasus, name: findrange, version: "4.0"}
    parents: [preprocess]
  - id: findrange_r
    transformation: {namespace: pegasus, name: findrange, version: "4.0"}
    parents: [preprocess]
  - id: analyze
    transformation: {namespace: pegasus, name: analyze, version: "4.0"}
    parents: [findrange_l, findrange_r]
`

func TestLoadDiamond(t *testing.T) {
	g, err := Load([]byte(_diamondYAML))
	require.NoError(t, err)

	assert.Equal(t, 4, g.Len())
	require.Len(t, g.Roots(), 1)
	assert.Equal(t, "preprocess", g.Roots()[0].ID())
	require.Len(t, g.Leaves(), 1)
	assert.Equal(t, "analyze", g.Leaves()[0].ID())

	analyze, ok := g.Node("analyze")
	require.True(t, ok)
	assert.Len(t, analyze.Parents(), 2)
	assert.Equal(t, "pegasus::analyze:4.0", analyze.Task().Transformation.String())
}

func TestLoadForwardParentReference(t *testing.T) {
	g, err := Load([]byte(`
tasks:
  - id: child
    parents: [parent]
  - id: parent
`))
	require.NoError(t, err)
	assert.Equal(t, 2, g.Len())
	child, _ := g.Node("child")
	assert.Len(t, child.Parents(), 1)
}

func TestLoadCollectsAllErrors(t *testing.T) {
	_, err := Load([]byte(`
tasks:
  - id: a
    parents: [ghost]
  - id: a
`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ghost")
	assert.Contains(t, err.Error(), "already in the graph")
}

func TestLoadRejectsMalformedYAML(t *testing.T) {
	_, err := Load([]byte("tasks: {not: [a, list"))
	assert.Error(t, err)
}

func TestLoadFileMissing(t *testing.T) {
	_, err := LoadFile("does-not-exist.yaml")
	assert.Error(t, err)
}
