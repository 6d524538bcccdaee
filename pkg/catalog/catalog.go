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
	"fmt"

	"github.com/papajim/pegasus/pkg/workflow"
)

// RuntimeProfileKey is the profile key that carries the expected runtime of
// a transformation on a site.
const RuntimeProfileKey = "runtime"

// RuntimeUnavailableError indicates that no usable runtime estimate exists
// for a transformation on a site. A task with an unknown cost cannot be
// ranked, so this aborts the scheduling run.
type RuntimeUnavailableError struct {
	Transformation workflow.Transformation
	Site           string
}

func (e RuntimeUnavailableError) Error() string {
	return fmt.Sprintf("no valid runtime for transformation %s on site %s",
		e.Transformation, e.Site)
}

// TransformationMapper resolves which sites can run a transformation and
// what it costs there. Implementations must return site lists in a
// deterministic order, the scheduler breaks finish time ties by it.
type TransformationMapper interface {
	// SiteList returns the subset of sites that can run the
	// transformation, preserving the order of the sites argument.
	SiteList(tx workflow.Transformation, sites []string) []string

	// Runtime returns the expected runtime in seconds of the
	// transformation on the site. The value is always positive; a missing
	// or non-positive catalog value yields a RuntimeUnavailableError.
	Runtime(tx workflow.Transformation, site string) (int64, error)
}

// SiteInfoProvider reports the number of free processors of a site. Callers
// fall back to a default capacity when the lookup fails.
type SiteInfoProvider interface {
	FreeNodes(site string) (int, error)
}
