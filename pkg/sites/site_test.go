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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/papajim/pegasus/pkg/catalog"
)

func TestSiteEarliestAvailableEmptySite(t *testing.T) {
	s := NewSite("isi_viz", 2)
	assert.Equal(t, int64(0), s.EarliestAvailable(0))
	assert.Equal(t, int64(42), s.EarliestAvailable(42))
}

func TestSiteSingleProcessorSerializes(t *testing.T) {
	s := NewSite("isi_viz", 1)

	start := s.EarliestAvailable(0)
	require.NoError(t, s.Schedule(start, start+50))

	// The only processor is busy till 50, even though the job was ready
	// at 0.
	assert.Equal(t, int64(50), s.EarliestAvailable(0))
	require.NoError(t, s.Schedule(50, 80))
	assert.Equal(t, int64(80), s.EarliestAvailable(0))
}

func TestSiteMultipleProcessorsOverlap(t *testing.T) {
	s := NewSite("isi_viz", 2)

	require.NoError(t, s.Schedule(0, 100))
	// Second processor still free at 0.
	assert.Equal(t, int64(0), s.EarliestAvailable(0))
	require.NoError(t, s.Schedule(0, 30))
	// Both busy now, the one freeing up first wins.
	assert.Equal(t, int64(30), s.EarliestAvailable(0))
}

func TestSiteNonInsertionPolicy(t *testing.T) {
	s := NewSite("isi_viz", 1)

	require.NoError(t, s.Schedule(100, 200))
	// The gap [0, 100) is never reconsidered, the next-free pointer only
	// moves forward.
	assert.Equal(t, int64(200), s.EarliestAvailable(0))
}

func TestSiteScheduleViolations(t *testing.T) {
	s := NewSite("isi_viz", 1)
	require.NoError(t, s.Schedule(0, 100))

	err := s.Schedule(50, 150)
	require.Error(t, err)
	assert.IsType(t, SchedulingError{}, err)

	err = s.Schedule(200, 150)
	assert.IsType(t, SchedulingError{}, err)
}

func TestSiteCapacityFixed(t *testing.T) {
	s := NewSite("isi_viz", 3)
	assert.Equal(t, 3, s.Capacity())
	require.NoError(t, s.Schedule(0, 10))
	assert.Equal(t, 3, s.Capacity())
}

func TestRegistryUsesProviderCapacity(t *testing.T) {
	provider := catalog.NewSiteInfo(map[string]int{"isi_viz": 4})
	r := NewRegistry([]string{"isi_viz"}, provider, 10)

	site, err := r.Site("isi_viz")
	require.NoError(t, err)
	assert.Equal(t, 4, site.Capacity())
}

func TestRegistryDefaultsOnLookupFailure(t *testing.T) {
	provider := catalog.NewSiteInfo(map[string]int{})
	r := NewRegistry([]string{"isi_viz", "isi_skynet"}, provider, 10)

	for _, name := range r.Names() {
		site, err := r.Site(name)
		require.NoError(t, err)
		assert.Equal(t, 10, site.Capacity())
	}
}

func TestRegistryUnknownSite(t *testing.T) {
	r := NewRegistry(nil, catalog.NewSiteInfo(nil), 10)
	_, err := r.Site("isi_viz")
	require.Error(t, err)
	assert.IsType(t, SiteInfoUnavailableError{}, err)
}
