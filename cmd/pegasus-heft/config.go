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

package main

import (
	"github.com/papajim/pegasus/pkg/common/metrics"
	"github.com/papajim/pegasus/pkg/selector/heft"
)

// Config holds all configuration necessary to run the HEFT site selector.
type Config struct {
	Metrics  metrics.Config `yaml:"metrics"`
	Heft     heft.Config    `yaml:"heft"`
	Catalogs CatalogsConfig `yaml:"catalogs"`
}

// CatalogsConfig points at the catalog files backing the scheduler's
// external lookups.
type CatalogsConfig struct {
	// Transformations is the path of the YAML transformation catalog.
	Transformations string `yaml:"transformations"`
	// Sites is the path of the YAML site catalog. Optional; sites
	// missing from it fall back to the default processor count.
	Sites string `yaml:"sites"`
}
