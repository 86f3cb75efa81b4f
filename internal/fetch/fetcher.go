// SPDX-License-Identifier: BSD-3-Clause

// Package fetch downloads binary assets discovered during enrichment,
// decoupled from the main transform pass.
package fetch

import (
	"context"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"runtime"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/semaphore"

	"github.com/LePresidente/xmltv-tools/internal/log"
)

// Fetcher downloads each submitted URL to its destination path exactly
// once, with at most N transfers in flight. Submissions are accepted
// unboundedly; excess transfers wait for a slot.
type Fetcher struct {
	sem    *semaphore.Weighted
	wg     sync.WaitGroup
	client *http.Client
	logger zerolog.Logger

	mu        sync.Mutex
	submitted map[string]struct{}
}

// New creates a Fetcher bounded to maxConcurrent in-flight transfers.
// maxConcurrent <= 0 selects twice the available processing units.
func New(maxConcurrent int) *Fetcher {
	if maxConcurrent <= 0 {
		maxConcurrent = 2 * runtime.NumCPU()
	}
	return &Fetcher{
		sem:       semaphore.NewWeighted(int64(maxConcurrent)),
		client:    &http.Client{Timeout: 2 * time.Minute},
		logger:    log.WithComponent("fetch"),
		submitted: make(map[string]struct{}),
	}
}

// Submit schedules a download of url to dest and returns immediately.
// It is a no-op when dest already exists on disk or was already
// submitted during this run. No result is reported back: callers
// reference dest optimistically and the file appears eventually.
func (f *Fetcher) Submit(url, dest string) {
	if url == "" || dest == "" {
		return
	}

	f.mu.Lock()
	if _, dup := f.submitted[dest]; dup {
		f.mu.Unlock()
		return
	}
	f.submitted[dest] = struct{}{}
	f.mu.Unlock()

	if _, err := os.Stat(dest); err == nil {
		f.logger.Debug().Str("dest", dest).Msg("asset already on disk, skipping")
		return
	}

	f.wg.Add(1)
	go func() {
		defer f.wg.Done()
		// Once submitted, a transfer runs to completion or failure;
		// there is deliberately no cancellation path.
		if err := f.sem.Acquire(context.Background(), 1); err != nil {
			return
		}
		defer f.sem.Release(1)
		f.download(url, dest)
	}()
}

// Drain blocks until no transfers are in flight and nothing remains
// queued. A stalled transfer blocks Drain indefinitely.
func (f *Fetcher) Drain() {
	f.wg.Wait()
}

// download streams the remote body to dest. A failure is logged and
// may leave a truncated file behind; the run is never aborted for it.
func (f *Fetcher) download(url, dest string) {
	if err := os.MkdirAll(filepath.Dir(dest), 0o750); err != nil {
		f.logger.Warn().Err(err).Str("dest", dest).Msg("failed to create asset directory")
		return
	}

	resp, err := f.client.Get(url)
	if err != nil {
		f.logger.Warn().Err(err).Str("url", url).Msg("asset download failed")
		return
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		f.logger.Warn().Int("status", resp.StatusCode).Str("url", url).
			Msg("asset download rejected upstream")
		return
	}

	out, err := os.Create(dest) // #nosec G304 -- dest is derived from sanitized titles
	if err != nil {
		f.logger.Warn().Err(err).Str("dest", dest).Msg("failed to create asset file")
		return
	}

	n, err := io.Copy(out, resp.Body)
	if cerr := out.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		f.logger.Warn().Err(err).Str("dest", dest).Int64("bytes", n).
			Msg("asset download incomplete")
		return
	}

	f.logger.Info().Str("dest", dest).Int64("bytes", n).Msg("asset downloaded")
}
