// Package importer copies firearm definitions between content stores, such
// as a YAML directory and the PostgreSQL repository.
package importer

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/cory-johannsen/armory/internal/game/inventory"
)

// Importer copies definitions from a Source into a Sink.
type Importer struct {
	source Source
	sink   Sink
	logger *zap.Logger
}

// New constructs an Importer.
//
// Precondition: source, sink and logger must be non-nil.
func New(source Source, sink Sink, logger *zap.Logger) *Importer {
	return &Importer{source: source, sink: sink, logger: logger}
}

// Run loads every definition from the source, checks that together they
// build a registry, and saves them to the sink in load order. It returns the
// number of definitions saved.
//
// Postcondition: on a load or validation error nothing is written; on a save
// error earlier definitions remain saved.
func (imp *Importer) Run(ctx context.Context) (int, error) {
	overall := time.Now()

	defs, err := imp.source.LoadFirearms(ctx)
	if err != nil {
		return 0, fmt.Errorf("loading source: %w", err)
	}
	imp.logger.Info("loaded firearms",
		zap.Int("count", len(defs)),
		zap.Duration("elapsed", time.Since(overall)),
	)

	if _, err := inventory.BuildRegistry(defs); err != nil {
		return 0, fmt.Errorf("validating source: %w", err)
	}

	for i, def := range defs {
		if err := ctx.Err(); err != nil {
			return i, err
		}
		t0 := time.Now()
		if err := imp.sink.Save(ctx, def); err != nil {
			return i, fmt.Errorf("saving firearm %q: %w", def.ID, err)
		}
		imp.logger.Debug("saved firearm",
			zap.String("id", def.ID),
			zap.Int("attachments", len(def.Attachments)),
			zap.Duration("elapsed", time.Since(t0)),
		)
	}

	imp.logger.Info("import complete",
		zap.Int("count", len(defs)),
		zap.Duration("elapsed", time.Since(overall)),
	)
	return len(defs), nil
}
