// SPDX-License-Identifier: BSD-3-Clause

// Package enhance implements the programme transform pipeline: an
// ordered set of failure-isolated processors that enrich a guide
// document with catalog metadata and pattern-extracted information.
package enhance

import (
	"context"

	"github.com/LePresidente/xmltv-tools/internal/xmltv"
)

// Processor transforms a single programme record. Implementations are
// independent: they only communicate through the shared record, the
// lookup cache and the asset fetcher, and never retain a record
// reference across invocations.
type Processor interface {
	// Name identifies the processor in logs.
	Name() string
	// Enabled reports whether the processor may run. A processor whose
	// prerequisite configuration is missing reports false and every
	// invocation becomes a no-op rather than an error.
	Enabled() bool
	// Apply inspects and possibly mutates one programme. A returned
	// error aborts only this (processor, record) application.
	Apply(ctx context.Context, p *xmltv.Programme) error
}
