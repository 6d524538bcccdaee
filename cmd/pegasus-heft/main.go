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
	"os"

	log "github.com/sirupsen/logrus"
	"gopkg.in/alecthomas/kingpin.v2"

	"github.com/papajim/pegasus/pkg/catalog"
	"github.com/papajim/pegasus/pkg/common/async"
	"github.com/papajim/pegasus/pkg/common/config"
	"github.com/papajim/pegasus/pkg/common/metrics"
	"github.com/papajim/pegasus/pkg/selector/heft"
	"github.com/papajim/pegasus/pkg/sites"
	"github.com/papajim/pegasus/pkg/workflow"
)

var (
	version string
	app     = kingpin.New("pegasus-heft", "Pegasus HEFT Site Selector")

	debug = app.Flag(
		"debug", "enable debug mode (log rank values and scheduling decisions)").
		Short('d').
		Default("false").
		Envar("ENABLE_DEBUG_LOGGING").
		Bool()

	cfgFiles = app.Flag(
		"config",
		"YAML config files (can be provided multiple times to merge configs)").
		Short('c').
		Required().
		ExistingFiles()

	workflowFile = app.Flag(
		"workflow", "YAML workflow description to schedule").
		Short('w').
		Required().
		ExistingFile()

	transformationCatalog = app.Flag(
		"transformation-catalog",
		"Transformation catalog file (catalogs.transformations override)").
		Envar("TRANSFORMATION_CATALOG").
		String()

	siteCatalog = app.Flag(
		"site-catalog",
		"Site catalog file (catalogs.sites override)").
		Envar("SITE_CATALOG").
		String()

	siteNames = app.Flag(
		"site",
		"Candidate site. Specify multiple times for multiple sites "+
			"(heft.sites override)").
		Strings()
)

func main() {
	app.Version(version)
	app.HelpFlag.Short('h')
	kingpin.MustParse(app.Parse(os.Args[1:]))

	log.SetFormatter(&log.JSONFormatter{})
	if *debug {
		log.SetLevel(log.DebugLevel)
	}

	var cfg Config
	if err := config.Parse(&cfg, *cfgFiles...); err != nil {
		log.WithField("error", err).Fatal("Cannot parse site selector config")
	}

	// now, override any CLI flags in the loaded config
	if *transformationCatalog != "" {
		cfg.Catalogs.Transformations = *transformationCatalog
	}
	if *siteCatalog != "" {
		cfg.Catalogs.Sites = *siteCatalog
	}
	if len(*siteNames) > 0 {
		cfg.Heft.Sites = *siteNames
	}

	rootScope, scopeCloser, _ := metrics.InitMetricScope(
		&cfg.Metrics,
		"pegasus-heft",
		metrics.TallyFlushInterval)
	defer scopeCloser.Close()

	mapper, err := catalog.LoadMapper(cfg.Catalogs.Transformations)
	if err != nil {
		log.WithField("error", err).Fatal("Cannot load transformation catalog")
	}

	siteInfo := catalog.NewSiteInfo(nil)
	if cfg.Catalogs.Sites != "" {
		siteInfo, err = catalog.LoadSiteInfo(cfg.Catalogs.Sites)
		if err != nil {
			log.WithField("error", err).Fatal("Cannot load site catalog")
		}
	}

	defaultNodes := cfg.Heft.DefaultFreeNodes
	if defaultNodes <= 0 {
		defaultNodes = heft.DefaultFreeNodes
	}
	registry := sites.NewRegistry(cfg.Heft.Sites, siteInfo, defaultNodes)

	g, err := workflow.LoadFile(*workflowFile)
	if err != nil {
		log.WithField("error", err).Fatal("Cannot load workflow description")
	}

	pool := async.NewPool(async.PoolOptions{
		MaxWorkers: cfg.Heft.Concurrency,
	})
	defer pool.Stop()

	algorithm := heft.New(&cfg.Heft, mapper, registry, pool, rootScope)
	if err := algorithm.Schedule(g); err != nil {
		log.WithField("error", err).Fatal("Unable to schedule workflow")
	}

	for _, node := range g.Nodes() {
		log.WithFields(log.Fields{
			"task":   node.ID(),
			"site":   node.Placement.Site,
			"start":  node.Placement.StartTime,
			"finish": node.Placement.FinishTime,
		}).Info("Task placement")
	}

	makespan, err := algorithm.Makespan(g)
	if err != nil {
		log.WithField("error", err).Fatal("Unable to compute makespan")
	}
	log.WithField("makespan", makespan).Info("Workflow scheduled")
}
