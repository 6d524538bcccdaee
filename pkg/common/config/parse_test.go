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

package config

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testConfig struct {
	Sites       []string `yaml:"sites" validate:"min=1"`
	Concurrency int      `yaml:"concurrency"`
}

func writeFile(t *testing.T, dir, name, content string) string {
	path := filepath.Join(dir, name)
	require.NoError(t, ioutil.WriteFile(path, []byte(content), 0644))
	return path
}

func TestParseMergesFilesInOrder(t *testing.T) {
	dir, err := ioutil.TempDir("", "config")
	require.NoError(t, err)
	defer os.RemoveAll(dir)

	base := writeFile(t, dir, "base.yaml", "sites: [isi_viz]\nconcurrency: 2\n")
	override := writeFile(t, dir, "override.yaml", "concurrency: 8\n")

	var cfg testConfig
	require.NoError(t, Parse(&cfg, base, override))

	assert.Equal(t, []string{"isi_viz"}, cfg.Sites)
	assert.Equal(t, 8, cfg.Concurrency)
}

func TestParseValidates(t *testing.T) {
	dir, err := ioutil.TempDir("", "config")
	require.NoError(t, err)
	defer os.RemoveAll(dir)

	empty := writeFile(t, dir, "empty.yaml", "concurrency: 1\n")

	var cfg testConfig
	err = Parse(&cfg, empty)
	require.Error(t, err)
	verr, ok := err.(ValidationError)
	require.True(t, ok)
	assert.Error(t, verr.ErrForField("Sites"))
}

func TestParseNoFiles(t *testing.T) {
	var cfg testConfig
	assert.Error(t, Parse(&cfg))
}

func TestParseMissingFile(t *testing.T) {
	var cfg testConfig
	assert.Error(t, Parse(&cfg, "no-such-file.yaml"))
}
