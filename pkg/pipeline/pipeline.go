package pipeline

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/semaphore"

	"github.com/zonekit/zonekit/pkg/archive"
	"github.com/zonekit/zonekit/pkg/config"
	"github.com/zonekit/zonekit/pkg/gen"
	"github.com/zonekit/zonekit/pkg/gen/languages"
	"github.com/zonekit/zonekit/pkg/observability"
	"github.com/zonekit/zonekit/pkg/routes"
	"github.com/zonekit/zonekit/pkg/schema"
	"github.com/zonekit/zonekit/pkg/zones"
)

// maxConcurrentExtractions bounds the schema stage independently of the
// generation pool. Extraction is typically the heavier subprocess.
const maxConcurrentExtractions = 4

// Pipeline runs the full flow: validate the zone partition, isolate each
// zone's routes, extract schemas, generate clients, archive.
type Pipeline struct {
	cfg       *config.Config
	registry  *zones.Registry
	languages *languages.Registry
	extractor *schema.Extractor
	orch      *gen.Orchestrator
	archiver  *archive.Manager

	log     *observability.Logger
	metrics *observability.Metrics
}

// New assembles a pipeline from configuration. The zone partition is
// loaded here; structural zone errors fail construction.
func New(cfg *config.Config, log *observability.Logger, metrics *observability.Metrics) (*Pipeline, error) {
	if log == nil {
		log = observability.NewLogger(cfg.ParsedLogLevel(), nil)
	}

	registry, err := zones.Load(cfg.Zones)
	if err != nil {
		return nil, err
	}

	langs := languages.InitializeDefaultRegistry()
	for id, gc := range cfg.Generators {
		override := &languages.Override{
			Enabled: gc.Enabled,
			Command: gc.Command,
			Timeout: gc.Timeout.Std(),
		}
		if err := langs.ApplyOverride(id, override); err != nil {
			return nil, fmt.Errorf("invalid generator override %q: %w", id, err)
		}
	}
	if t := cfg.GenerationTimeout.Std(); t > 0 {
		for _, spec := range langs.List() {
			if err := langs.ApplyOverride(spec.ID, &languages.Override{Timeout: t}); err != nil {
				return nil, err
			}
		}
	}

	cache, err := schema.NewCache(schema.DefaultCacheSize)
	if err != nil {
		return nil, err
	}
	extractor, err := schema.NewExtractor(cfg.Schema.Command, cfg.Schema.Timeout.Std(), cfg.SchemasPath(), cache)
	if err != nil {
		return nil, err
	}

	return &Pipeline{
		cfg:       cfg,
		registry:  registry,
		languages: langs,
		extractor: extractor,
		orch:      gen.NewOrchestrator(nil, log, metrics),
		archiver:  archive.NewManager(cfg.ArchivePath(), log, metrics),
		log:       log,
		metrics:   metrics,
	}, nil
}

// Zones returns the loaded zone registry.
func (p *Pipeline) Zones() *zones.Registry {
	return p.registry
}

// Languages returns the resolved generation target registry.
func (p *Pipeline) Languages() *languages.Registry {
	return p.languages
}

// Archiver returns the snapshot manager.
func (p *Pipeline) Archiver() *archive.Manager {
	return p.archiver
}

// Validate loads the route table and checks the zone partition against it.
// All violations are returned together.
func (p *Pipeline) Validate() (*routes.Table, error) {
	table, err := routes.LoadTable(p.cfg.RoutesFile)
	if err != nil {
		return nil, err
	}
	if violations := p.registry.Validate(table.Apps); len(violations) > 0 {
		return nil, violations
	}
	return table, nil
}

// Run executes one full pipeline pass and returns its summary. The
// returned error covers setup problems (bad selection, invalid partition,
// unreadable route table); per-zone and per-task failures are reported in
// the Summary, never as an error.
func (p *Pipeline) Run(ctx context.Context, opts Options) (*Summary, error) {
	summary := &Summary{
		RunID:     uuid.NewString(),
		StartedAt: time.Now().UTC(),
	}
	defer func() {
		summary.Duration = time.Since(summary.StartedAt)
	}()

	log := p.log.WithField("run_id", summary.RunID)

	table, err := p.Validate()
	if err != nil {
		return nil, err
	}

	selected, err := p.selectZones(opts.Zones)
	if err != nil {
		return nil, err
	}
	targets, err := p.selectLanguages(opts.Languages)
	if err != nil {
		return nil, err
	}

	log.WithFields(map[string]interface{}{
		"zones":     len(selected),
		"languages": len(targets),
	}).Info("starting generation run")

	summary.Zones = p.extractSchemas(ctx, selected, table)

	tasks := p.buildTasks(summary.Zones, targets)
	summary.Results = p.orch.Run(ctx, tasks, p.workers(opts))

	if p.cfg.Archive.Enabled && !opts.SkipArchive {
		manifest, err := p.archiver.Archive(summary.RunID, summary.Results)
		switch err {
		case nil:
			summary.Archive = manifest
		case archive.ErrNothingToArchive:
			log.Warn("run produced no successful clients, skipping archive")
		default:
			return summary, fmt.Errorf("archive stage failed: %w", err)
		}

		pruned, err := p.archiver.Prune(p.cfg.Archive.KeepDays)
		if err != nil {
			log.WithError(err).Warn("archive retention failed")
		}
		summary.Pruned = pruned
	}

	p.flushMetrics(log)

	log.WithFields(map[string]interface{}{
		"failed_zones": summary.FailedZones(),
		"failed_tasks": summary.FailedTasks(),
		"duration":     summary.Duration.String(),
	}).Info("generation run finished")

	return summary, nil
}

// extractSchemas runs the schema tool for every selected zone with bounded
// concurrency. Zones are independent; one zone's failure is recorded in
// its outcome and the rest proceed.
func (p *Pipeline) extractSchemas(ctx context.Context, selected []*zones.Zone, table *routes.Table) []*ZoneOutcome {
	outcomes := make([]*ZoneOutcome, len(selected))

	sem := semaphore.NewWeighted(maxConcurrentExtractions)
	var wg sync.WaitGroup
	for i, zone := range selected {
		if err := sem.Acquire(ctx, 1); err != nil {
			outcomes[i] = &ZoneOutcome{Zone: zone.Name, Err: err.Error()}
			continue
		}
		wg.Add(1)
		go func(i int, zone *zones.Zone) {
			defer wg.Done()
			defer sem.Release(1)
			outcomes[i] = p.extractOne(ctx, zone, table)
		}(i, zone)
	}
	wg.Wait()

	return outcomes
}

func (p *Pipeline) extractOne(ctx context.Context, zone *zones.Zone, table *routes.Table) *ZoneOutcome {
	isolated := routes.Isolate(zone, table)
	outcome := &ZoneOutcome{Zone: zone.Name, Fingerprint: isolated.Fingerprint()}

	doc, err := p.extractor.Extract(ctx, zone, isolated)
	if err != nil {
		outcome.Err = err.Error()
		if exErr, ok := err.(*schema.ExtractionError); ok {
			outcome.Stderr = exErr.Stderr
		}
		p.log.WithField("zone", zone.Name).WithError(err).Warn("schema extraction failed")
		if p.metrics != nil {
			p.metrics.ExtractionsTotal.WithLabelValues(zone.Name, observability.OutcomeFailure).Inc()
		}
		return outcome
	}

	outcome.SchemaPath = doc.Path
	outcome.CacheHit = doc.CacheHit
	outcome.Duration = doc.Duration

	if p.metrics != nil {
		p.metrics.ExtractionsTotal.WithLabelValues(zone.Name, observability.OutcomeSuccess).Inc()
		p.metrics.ExtractionDuration.WithLabelValues(zone.Name).Observe(doc.Duration.Seconds())
		if doc.CacheHit {
			p.metrics.ExtractionCacheHits.Inc()
		}
	}
	return outcome
}

// buildTasks expands successful zones over the selected targets. A zone
// without a schema contributes nothing; its absence is already recorded
// in the zone outcomes.
func (p *Pipeline) buildTasks(outcomes []*ZoneOutcome, targets []*languages.LanguageSpec) []*gen.Task {
	var tasks []*gen.Task
	for _, outcome := range outcomes {
		if !outcome.Succeeded() {
			continue
		}
		for _, target := range targets {
			tasks = append(tasks, &gen.Task{
				Zone:       outcome.Zone,
				Language:   target.ID,
				SchemaPath: outcome.SchemaPath,
				OutputDir:  filepath.Join(p.cfg.ClientsPath(), target.ID, outcome.Zone),
				Command:    target.Command,
				Timeout:    target.Timeout,
			})
		}
	}
	return tasks
}

func (p *Pipeline) selectZones(names []string) ([]*zones.Zone, error) {
	if len(names) == 0 {
		all := p.registry.All()
		if len(all) == 0 {
			return nil, ErrNoZonesSelected
		}
		return all, nil
	}
	return p.registry.Subset(names)
}

func (p *Pipeline) selectLanguages(ids []string) ([]*languages.LanguageSpec, error) {
	if len(ids) == 0 {
		enabled := p.languages.ListEnabled()
		if len(enabled) == 0 {
			return nil, ErrNoLanguagesSelected
		}
		return enabled, nil
	}

	var selected []*languages.LanguageSpec
	for _, id := range ids {
		spec, err := p.languages.Get(id)
		if err != nil {
			return nil, err
		}
		if !spec.Enabled {
			return nil, fmt.Errorf("%w: %s", languages.ErrLanguageDisabled, id)
		}
		selected = append(selected, spec)
	}
	return selected, nil
}

func (p *Pipeline) workers(opts Options) int {
	if opts.Workers > 0 {
		return opts.Workers
	}
	return p.cfg.MaxWorkers
}

func (p *Pipeline) flushMetrics(log *observability.Logger) {
	if p.metrics == nil || p.cfg.MetricsTextfile == "" {
		return
	}
	if err := p.metrics.WriteTextfile(p.cfg.MetricsTextfile); err != nil {
		log.WithError(err).Warn("failed to write metrics textfile")
	}
}
