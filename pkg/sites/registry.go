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

package sites

import (
	"fmt"

	log "github.com/sirupsen/logrus"

	"github.com/papajim/pegasus/pkg/catalog"
)

// SiteInfoUnavailableError indicates that a site referenced during
// scheduling has no registered timeline.
type SiteInfoUnavailableError struct {
	Site string
}

func (e SiteInfoUnavailableError) Error() string {
	return fmt.Sprintf("site information unavailable for site %s", e.Site)
}

// Registry maps site names to their timelines. It is built once per
// scheduling run and no sites are added or removed afterwards.
type Registry struct {
	names []string
	sites map[string]*Site
}

// NewRegistry creates one site per configured name, querying the provider
// for its processor count. Sites the provider cannot answer for get
// defaultFreeNodes processors.
func NewRegistry(names []string, provider catalog.SiteInfoProvider, defaultFreeNodes int) *Registry {
	registry := &Registry{
		names: names,
		sites: make(map[string]*Site, len(names)),
	}
	for _, name := range names {
		nodes, err := provider.FreeNodes(name)
		if err != nil {
			log.WithFields(log.Fields{
				"site":  name,
				"error": err,
			}).Debug("Free node count unavailable, using default")
			nodes = defaultFreeNodes
		}
		registry.sites[name] = NewSite(name, nodes)
	}
	return registry
}

// Names returns the configured site names in their configured order.
func (r *Registry) Names() []string {
	return r.names
}

// Site returns the timeline of the named site.
func (r *Registry) Site(name string) (*Site, error) {
	site, ok := r.sites[name]
	if !ok {
		return nil, SiteInfoUnavailableError{Site: name}
	}
	return site, nil
}
