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

// Package heft implements the HEFT based site selector: tasks are ranked by
// their downward rank and greedily committed, in ascending rank order, to
// the feasible site minimizing their estimated finish time.
package heft

import (
	"context"
	"math"
	"sort"

	"github.com/pborman/uuid"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/uber-go/tally"
	"go.uber.org/atomic"

	"github.com/papajim/pegasus/pkg/catalog"
	"github.com/papajim/pegasus/pkg/common/async"
	"github.com/papajim/pegasus/pkg/sites"
	"github.com/papajim/pegasus/pkg/workflow"
)

// maximumFinishTime seeds the estimated finish time minimization.
const maximumFinishTime = int64(math.MaxInt64)

// Algorithm is the HEFT site selector. It is a single pass batch
// computation; a single Algorithm must not run two schedules concurrently.
type Algorithm struct {
	config   *Config
	mapper   catalog.TransformationMapper
	registry *sites.Registry
	commCost float64
	metrics  *Metrics
	pool     *async.Pool
	running  *atomic.Bool
}

// New creates the HEFT site selector. The pool bounds the parallel per-site
// estimate evaluation and must be dedicated to this algorithm.
func New(
	cfg *Config,
	mapper catalog.TransformationMapper,
	registry *sites.Registry,
	pool *async.Pool,
	scope tally.Scope) *Algorithm {
	cfg.normalize()
	return &Algorithm{
		config:   cfg,
		mapper:   mapper,
		registry: registry,
		commCost: cfg.AverageCommunicationCost(),
		metrics:  NewMetrics(scope.SubScope("heft")),
		pool:     pool,
		running:  atomic.NewBool(false),
	}
}

// Schedule maps every task of the workflow onto a site, annotating each node
// with its site, start and finish time. Any failure aborts the whole run;
// there is no partial result to recover.
func (a *Algorithm) Schedule(g *workflow.Graph) (err error) {
	if !a.running.CompareAndSwap(false, true) {
		return errors.New("a scheduling run is already in progress")
	}
	defer a.running.Store(false)

	sw := a.metrics.SchedulingDuration.Start()
	defer sw.Stop()
	defer func() {
		if err != nil {
			a.metrics.SchedulingFails.Inc(1)
		} else {
			a.metrics.SchedulingRuns.Inc(1)
		}
	}()

	logger := log.WithField("run_id", uuid.New())

	// The synthetic root makes the workflow single rooted for the rank
	// traversal. It is stripped again no matter how the run ends.
	root := workflow.NewVirtualNode("dummy-" + uuid.New())
	if err := g.AddRoot(root); err != nil {
		return err
	}
	defer g.Remove(root.ID())

	order, err := a.rank(g, root, logger)
	if err != nil {
		return err
	}

	for _, node := range order {
		if err := a.scheduleNode(node, logger); err != nil {
			return err
		}
	}
	return nil
}

// Makespan returns the maximum actual finish time over the leaves of the
// scheduled workflow.
func (a *Algorithm) Makespan(g *workflow.Graph) (int64, error) {
	result := int64(-1)
	for _, leaf := range g.Leaves() {
		if !leaf.Placement.Scheduled() {
			return 0, UnscheduledLeafError{Task: leaf.ID()}
		}
		if leaf.Placement.FinishTime > result {
			result = leaf.Placement.FinishTime
		}
	}
	a.metrics.Makespan.Update(float64(result))
	return result, nil
}

// rank annotates every task with its average compute time and downward
// rank, and returns the non virtual nodes sorted by ascending rank. The
// sort is stable so rank ties keep their breadth first order.
func (a *Algorithm) rank(
	g *workflow.Graph,
	root *workflow.Node,
	logger *log.Entry) ([]*workflow.Node, error) {
	sw := a.metrics.RankDuration.Start()
	defer sw.Stop()

	for _, node := range g.Nodes() {
		if node.Virtual() {
			continue
		}
		avg, err := a.averageComputeTime(node)
		if err != nil {
			return nil, err
		}
		node.Placement.AvgComputeTime = avg
		logger.WithFields(log.Fields{
			"task":             node.ID(),
			"avg_compute_time": avg,
		}).Debug("Computed average compute time")
	}

	it := g.BFSOrder()
	first, ok := it.Next()
	if !ok || first != root {
		return nil, errors.New("synthetic root is not the single root of the workflow")
	}
	var order []*workflow.Node
	for node, ok := it.Next(); ok; node, ok = it.Next() {
		node.Placement.DownwardRank = a.downwardRank(node)
		logger.WithFields(log.Fields{
			"task":          node.ID(),
			"downward_rank": node.Placement.DownwardRank,
		}).Debug("Computed downward rank")
		order = append(order, node)
	}

	sort.SliceStable(order, func(i, j int) bool {
		return order[i].Placement.DownwardRank < order[j].Placement.DownwardRank
	})
	return order, nil
}

// downwardRank of a node is the maximum over its parents p of
// rank(p) + avgComputeTime(p) + communication cost. The ranks of all
// parents are already known, guaranteed by the breadth first traversal.
func (a *Algorithm) downwardRank(node *workflow.Node) float64 {
	var result float64
	for _, parent := range node.Parents() {
		value := parent.Placement.DownwardRank +
			parent.Placement.AvgComputeTime +
			a.commCost
		if value > result {
			result = value
		}
	}
	return result
}

// averageComputeTime returns the mean runtime of the task across its
// feasible sites, weighted by each site's processor count.
func (a *Algorithm) averageComputeTime(node *workflow.Node) (float64, error) {
	tx := node.Task().Transformation
	feasible := a.mapper.SiteList(tx, a.config.Sites)
	if len(feasible) == 0 {
		return 0, NoFeasibleSiteError{Task: node.ID()}
	}

	var total, totalNodes int64
	for _, name := range feasible {
		site, err := a.registry.Site(name)
		if err != nil {
			return 0, err
		}
		runtime, err := a.mapper.Runtime(tx, name)
		if err != nil {
			return 0, err
		}
		total += runtime * int64(site.Capacity())
		totalNodes += int64(site.Capacity())
	}
	return float64(total) / float64(totalNodes), nil
}

type estimate struct {
	start  int64
	finish int64
	err    error
}

// scheduleNode estimates the start and finish time of the task on every
// feasible site, commits it to the site minimizing the finish time and
// records the assignment on the node.
func (a *Algorithm) scheduleNode(node *workflow.Node, logger *log.Entry) error {
	feasible := a.mapper.SiteList(node.Task().Transformation, a.config.Sites)
	if len(feasible) == 0 {
		return NoFeasibleSiteError{Task: node.ID()}
	}

	// The per-site estimates are independent until the winner is
	// committed, so they can run in parallel.
	estimates := make([]estimate, len(feasible))
	for i := range feasible {
		i := i
		site := feasible[i]
		a.pool.Enqueue(async.JobFunc(func(_ context.Context) {
			estimates[i] = a.estimate(node, site)
		}))
	}
	a.pool.WaitUntilProcessed()

	best := -1
	bestFinish := maximumFinishTime
	for i := range estimates {
		if estimates[i].err != nil {
			return estimates[i].err
		}
		// Strict comparison: on equal finish times the earlier site in
		// the feasibility order keeps the task.
		if bestFinish > estimates[i].finish {
			best = i
			bestFinish = estimates[i].finish
		}
	}

	winner := feasible[best]
	site, err := a.registry.Site(winner)
	if err != nil {
		return err
	}
	if err := site.Schedule(estimates[best].start, estimates[best].finish); err != nil {
		return err
	}
	node.Placement.Assign(winner, estimates[best].start, estimates[best].finish)
	a.metrics.TasksScheduled.Inc(1)

	logger.WithFields(log.Fields{
		"task":   node.ID(),
		"site":   winner,
		"start":  estimates[best].start,
		"finish": estimates[best].finish,
	}).Debug("Scheduled task")
	return nil
}

// estimate computes the earliest start and finish time of the task on the
// site. The ready time is the moment all parent outputs could be at the
// site; parents on other sites add the communication cost, truncated to
// whole seconds on the timeline.
func (a *Algorithm) estimate(node *workflow.Node, siteName string) estimate {
	site, err := a.registry.Site(siteName)
	if err != nil {
		return estimate{err: err}
	}

	var ready int64
	for _, parent := range node.Parents() {
		current := parent.Placement.FinishTime
		// A virtual root is finished at 0 on every site and never pays
		// a transfer.
		if !parent.Virtual() && parent.Placement.Site != siteName {
			current += int64(a.commCost)
		}
		if current > ready {
			ready = current
		}
	}

	start := site.EarliestAvailable(ready)
	runtime, err := a.mapper.Runtime(node.Task().Transformation, siteName)
	if err != nil {
		return estimate{err: err}
	}
	return estimate{start: start, finish: start + runtime}
}
