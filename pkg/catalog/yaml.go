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

package catalog

import (
	"io/ioutil"
	"strconv"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v2"

	"github.com/papajim/pegasus/pkg/common/stringset"
	"github.com/papajim/pegasus/pkg/workflow"
)

// Entry is a single transformation catalog record: one transformation
// installed on one site, with its profiles.
type Entry struct {
	Namespace string            `yaml:"namespace"`
	Name      string            `yaml:"name"`
	Version   string            `yaml:"version"`
	Site      string            `yaml:"site"`
	Profiles  map[string]string `yaml:"profiles"`
}

func (e *Entry) matches(tx workflow.Transformation) bool {
	return e.Namespace == tx.Namespace &&
		e.Name == tx.Name &&
		e.Version == tx.Version
}

type transformationCatalog struct {
	Transformations []Entry `yaml:"transformations"`
}

// Mapper is a TransformationMapper backed by an in-memory list of catalog
// entries, typically loaded from a YAML transformation catalog file.
type Mapper struct {
	entries []Entry
}

// NewMapper creates a mapper over the given catalog entries.
func NewMapper(entries []Entry) *Mapper {
	return &Mapper{entries: entries}
}

// LoadMapper reads a YAML transformation catalog from a file.
func LoadMapper(path string) (*Mapper, error) {
	data, err := ioutil.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "unable to read transformation catalog %s", path)
	}
	var catalog transformationCatalog
	if err := yaml.Unmarshal(data, &catalog); err != nil {
		return nil, errors.Wrapf(err, "unable to parse transformation catalog %s", path)
	}
	return NewMapper(catalog.Transformations), nil
}

// SiteList returns the sites that have an entry for the transformation,
// preserving the order of the sites argument.
func (m *Mapper) SiteList(tx workflow.Transformation, sites []string) []string {
	installed := stringset.New()
	for i := range m.entries {
		if m.entries[i].matches(tx) {
			installed.Add(m.entries[i].Site)
		}
	}
	var result []string
	for _, site := range sites {
		if installed.Contains(site) {
			result = append(result, site)
		}
	}
	return result
}

// Runtime returns the runtime profile of the first entry matching the
// transformation on the site.
func (m *Mapper) Runtime(tx workflow.Transformation, site string) (int64, error) {
	for i := range m.entries {
		entry := &m.entries[i]
		if !entry.matches(tx) || entry.Site != site {
			continue
		}
		// The first matching entry wins, even if its runtime is unusable.
		value, ok := entry.Profiles[RuntimeProfileKey]
		if !ok {
			break
		}
		runtime, err := strconv.ParseInt(value, 10, 64)
		if err != nil || runtime < 1 {
			break
		}
		return runtime, nil
	}
	return 0, RuntimeUnavailableError{Transformation: tx, Site: site}
}

type siteEntry struct {
	Name      string `yaml:"name"`
	FreeNodes int    `yaml:"free_nodes"`
}

type siteCatalog struct {
	Sites []siteEntry `yaml:"sites"`
}

// SiteInfo is a SiteInfoProvider backed by a YAML site catalog.
type SiteInfo struct {
	freeNodes map[string]int
}

// NewSiteInfo creates a provider from a site name to free node count map.
func NewSiteInfo(freeNodes map[string]int) *SiteInfo {
	return &SiteInfo{freeNodes: freeNodes}
}

// LoadSiteInfo reads a YAML site catalog from a file.
func LoadSiteInfo(path string) (*SiteInfo, error) {
	data, err := ioutil.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "unable to read site catalog %s", path)
	}
	var catalog siteCatalog
	if err := yaml.Unmarshal(data, &catalog); err != nil {
		return nil, errors.Wrapf(err, "unable to parse site catalog %s", path)
	}
	freeNodes := make(map[string]int, len(catalog.Sites))
	for _, site := range catalog.Sites {
		freeNodes[site.Name] = site.FreeNodes
	}
	return NewSiteInfo(freeNodes), nil
}

// FreeNodes returns the number of free processors of the site. Unknown sites
// and non-positive catalog values are errors so the caller can apply its
// default capacity.
func (s *SiteInfo) FreeNodes(site string) (int, error) {
	nodes, ok := s.freeNodes[site]
	if !ok {
		return 0, errors.Errorf("site %s not in the site catalog", site)
	}
	if nodes < 1 {
		return 0, errors.Errorf("site %s has no usable free node count", site)
	}
	return nodes, nil
}
