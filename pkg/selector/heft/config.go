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

const (
	// AverageBandwidth is the average bandwidth between the sites, in
	// megabytes per second.
	AverageBandwidth = 5

	// AverageDataSizeBetweenJobs is the average data transferred between
	// two jobs in the workflow, in megabytes.
	AverageDataSizeBetweenJobs = 2

	// DefaultFreeNodes is the number of processors assumed for a site
	// when the site catalog has no usable value.
	DefaultFreeNodes = 10
)

// Config holds the tunables of the HEFT site selector.
type Config struct {
	// Sites is the ordered list of candidate sites the workflow may run
	// on.
	Sites []string `yaml:"sites" validate:"min=1"`

	// AverageBandwidth and AverageDataSize override the cost model
	// constants when positive.
	AverageBandwidth float64 `yaml:"average_bandwidth"`
	AverageDataSize  float64 `yaml:"average_data_size"`

	// DefaultFreeNodes is the processor count used for sites the site
	// catalog cannot answer for.
	DefaultFreeNodes int `yaml:"default_free_nodes"`

	// Concurrency bounds the parallel per-site estimate evaluation.
	Concurrency int `yaml:"concurrency"`
}

func (c *Config) normalize() {
	if c.AverageBandwidth <= 0 {
		c.AverageBandwidth = AverageBandwidth
	}
	if c.AverageDataSize <= 0 {
		c.AverageDataSize = AverageDataSizeBetweenJobs
	}
	if c.DefaultFreeNodes <= 0 {
		c.DefaultFreeNodes = DefaultFreeNodes
	}
}

// AverageCommunicationCost returns the flat transfer cost charged between
// two jobs scheduled on different sites. The historical ratio is
// bandwidth over data size and is kept that way, observable schedules
// depend on it.
func (c *Config) AverageCommunicationCost() float64 {
	c.normalize()
	return c.AverageBandwidth / c.AverageDataSize
}
