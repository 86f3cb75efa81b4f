// SPDX-License-Identifier: BSD-3-Clause

package enhance

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/LePresidente/xmltv-tools/internal/fetch"
	"github.com/LePresidente/xmltv-tools/internal/log"
	"github.com/LePresidente/xmltv-tools/internal/xmltv"
)

// Pipeline drives an ordered list of processors over every programme
// of a document, then canonicalizes the document and waits for all
// submitted asset downloads to finish.
type Pipeline struct {
	processors []Processor
	fetcher    *fetch.Fetcher
	logger     zerolog.Logger
}

// NewPipeline assembles a pipeline. The processor order is fixed for
// the life of the pipeline; later processors depend on the edits of
// earlier ones.
func NewPipeline(processors []Processor, fetcher *fetch.Fetcher) *Pipeline {
	return &Pipeline{
		processors: processors,
		fetcher:    fetcher,
		logger:     log.WithComponent("pipeline"),
	}
}

// Run executes the full transform pass. Each processor completes its
// pass over every record before the next processor starts. Failures
// are isolated per (processor, record); only canonicalization schema
// violations are reported to the caller, after the document has been
// cleaned of the offending records.
func (pl *Pipeline) Run(ctx context.Context, doc *xmltv.TV) error {
	pl.logger = log.WithRun(ctx, pl.logger)
	for _, proc := range pl.processors {
		if !proc.Enabled() {
			pl.logger.Debug().Str("processor", proc.Name()).Msg("processor disabled, skipping")
			continue
		}
		for i := range doc.Programmes {
			if err := ctx.Err(); err != nil {
				return err
			}
			pl.applyOne(ctx, proc, &doc.Programmes[i])
		}
	}

	canonErr := xmltv.Canonicalize(doc)
	if canonErr != nil {
		pl.logger.Error().Err(canonErr).Msg("canonicalization rejected programmes")
	}

	// All artwork must be on disk before the process exits, even though
	// the document already references the destination paths.
	if pl.fetcher != nil {
		pl.logger.Debug().Msg("waiting for asset downloads to drain")
		pl.fetcher.Drain()
	}

	return canonErr
}

// applyOne runs one processor over one record, containing both errors
// and panics so a single bad record never aborts the run.
func (pl *Pipeline) applyOne(ctx context.Context, proc Processor, p *xmltv.Programme) {
	defer func() {
		if r := recover(); r != nil {
			pl.logger.Error().
				Str("processor", proc.Name()).
				Str("title", p.Title()).
				Str("start", p.Start).
				Msg(fmt.Sprintf("processor panicked: %v", r))
		}
	}()

	if err := proc.Apply(ctx, p); err != nil {
		pl.logger.Warn().Err(err).
			Str("processor", proc.Name()).
			Str("title", p.Title()).
			Str("start", p.Start).
			Msg("processing failed for programme")
	}
}
