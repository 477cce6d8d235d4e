// Package pipeline wires the stages into the single-run batch flow:
// normalize each source, deduplicate the master, integrate, reconcile,
// engineer features, load. One table threads through the stages; each
// stage materializes fully before the next starts, and any fatal error
// aborts the whole run.
package pipeline

import (
	"context"
	"fmt"
	"log"

	"github.com/google/uuid"

	"salesetl/internal/feature"
	"salesetl/internal/integrate"
	"salesetl/internal/master"
	"salesetl/internal/metrics"
	"salesetl/internal/reconcile"
	"salesetl/internal/runlog"
	"salesetl/internal/source"
	"salesetl/internal/warehouse"
)

// Config fixes the run's inputs and artifact location. File paths are
// pipeline constants in production; they are parameters here so tests
// can run against temp directories.
type Config struct {
	MarketplacePath string
	WholesalePath   string
	MasterPath      string
	ArtifactsDir    string
}

// Sink is the warehouse collaborator. The postgres loader implements it;
// tests inject a fake.
type Sink interface {
	EnsureSchema(ctx context.Context) error
	Load(ctx context.Context, records []warehouse.SalesRecord) (int, error)
}

// Run executes one full ETL pass and returns the run manifest. Every
// error it returns is fatal: a missing input, a broken integrity
// invariant, or a failed warehouse write.
func Run(ctx context.Context, cfg Config, sink Sink, mreg *metrics.Registry) (runlog.RunManifest, error) {
	m := runlog.RunManifest{
		RunID:                uuid.NewString(),
		StartedAtEpochSecond: runlog.NowUnix(),
	}
	log.Printf("pipeline: run %s starting", m.RunID)

	// extract + normalize, per source
	mkt, err := source.Load(cfg.MarketplacePath, source.Marketplace())
	if err != nil {
		return m, fmt.Errorf("load marketplace report: %w", err)
	}
	m.MarketplaceRows = len(mkt.Rows)
	log.Printf("pipeline: marketplace report rows=%d cols=%d", len(mkt.Rows), len(mkt.Columns))

	whl, err := source.Load(cfg.WholesalePath, source.Wholesale())
	if err != nil {
		return m, fmt.Errorf("load wholesale report: %w", err)
	}
	m.WholesaleRows = len(whl.Rows)
	log.Printf("pipeline: wholesale report rows=%d cols=%d", len(whl.Rows), len(whl.Columns))

	pm, err := source.Load(cfg.MasterPath, source.ProductMaster())
	if err != nil {
		return m, fmt.Errorf("load product master: %w", err)
	}
	m.MasterRows = len(pm.Rows)
	log.Printf("pipeline: product master rows=%d cols=%d", len(pm.Rows), len(pm.Columns))

	if mreg != nil {
		mreg.SourceRows.WithLabelValues("marketplace").Add(float64(m.MarketplaceRows))
		mreg.SourceRows.WithLabelValues("wholesale").Add(float64(m.WholesaleRows))
		mreg.SourceRows.WithLabelValues("master").Add(float64(m.MasterRows))
	}

	// deduplicate the master before the join depends on its uniqueness
	pm, removed := master.Deduplicate(pm)
	m.DuplicateSKUsRemoved = removed
	log.Printf("pipeline: removed %d duplicate skus from product master, %d remain", removed, len(pm.Rows))

	integrated, err := integrate.Integrate(mkt, whl, pm)
	if err != nil {
		return m, err
	}

	rec, err := reconcile.Apply(integrated)
	if err != nil {
		return m, err
	}
	m.DroppedMissingSKU = rec.DroppedMissingSKU
	m.DroppedInvalidDate = rec.DroppedBadDate
	m.DroppedCriticalNulls = rec.DroppedCritical
	m.SyntheticIDsGenerated = rec.SyntheticIDs

	engineered, warn := feature.Engineer(rec.Table)
	m.UnpricedSales = warn.UnpricedSales

	records, err := warehouse.FromTable(engineered)
	if err != nil {
		return m, err
	}

	if err := sink.EnsureSchema(ctx); err != nil {
		return m, err
	}
	loaded, err := sink.Load(ctx, records)
	if err != nil {
		return m, err
	}
	m.RowsLoaded = loaded
	m.FinishedAtEpochSecond = runlog.NowUnix()

	if mreg != nil {
		mreg.DuplicateSKUs.Add(float64(m.DuplicateSKUsRemoved))
		mreg.DroppedRows.WithLabelValues("missing_sku").Add(float64(m.DroppedMissingSKU))
		mreg.DroppedRows.WithLabelValues("invalid_date").Add(float64(m.DroppedInvalidDate))
		mreg.DroppedRows.WithLabelValues("critical_nulls").Add(float64(m.DroppedCriticalNulls))
		mreg.SyntheticIDs.Add(float64(m.SyntheticIDsGenerated))
		mreg.UnpricedSales.Add(float64(m.UnpricedSales))
		mreg.RowsLoaded.Add(float64(m.RowsLoaded))
		mreg.RunDuration.Set(float64(m.FinishedAtEpochSecond - m.StartedAtEpochSecond))
	}

	// audit artifact; failing to write it does not fail the run
	if cfg.ArtifactsDir != "" {
		if err := runlog.NewFilesystemPublisher(cfg.ArtifactsDir).PublishLatest(m); err != nil {
			log.Printf("pipeline: publish run manifest: %v", err)
		}
	}

	log.Printf("pipeline: run %s loaded %d rows", m.RunID, m.RowsLoaded)
	return m, nil
}
