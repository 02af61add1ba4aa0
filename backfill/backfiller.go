// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package backfill

import (
	"context"
	"fmt"
	"io"
	"runtime"
	"strings"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"
	"github.com/poiesic/scholaris/ai"
	"github.com/poiesic/scholaris/core"
	"github.com/poiesic/scholaris/storage"
)

// Config holds configuration for a backfill operation.
type Config struct {
	// BatchSize is the number of records to embed in each batch
	BatchSize int

	// ReportInterval is how often to report progress (number of records)
	ReportInterval int

	// MaxRetries is the maximum number of retry attempts for storage updates
	MaxRetries int

	// RetryDelay is the base delay for exponential backoff
	RetryDelay time.Duration

	// Workers is the number of batches processed concurrently
	Workers int
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	workers := runtime.NumCPU() / 2
	if workers < 1 {
		workers = 1
	}

	return &Config{
		BatchSize:      100,
		ReportInterval: 100,
		MaxRetries:     3,
		RetryDelay:     1 * time.Second,
		Workers:        workers,
	}
}

// withDefaults fills unset or invalid fields from DefaultConfig.
func (c *Config) withDefaults() *Config {
	defaults := DefaultConfig()
	if c == nil {
		return defaults
	}

	merged := *c
	if merged.BatchSize < 1 {
		merged.BatchSize = defaults.BatchSize
	}
	if merged.ReportInterval < 1 {
		merged.ReportInterval = defaults.ReportInterval
	}
	if merged.MaxRetries < 1 {
		merged.MaxRetries = defaults.MaxRetries
	}
	if merged.RetryDelay <= 0 {
		merged.RetryDelay = defaults.RetryDelay
	}
	if merged.Workers < 1 {
		merged.Workers = defaults.Workers
	}
	return &merged
}

// Backfiller recomputes missing embedding vectors for stored researchers and
// publications.
type Backfiller struct {
	researcherRepository  storage.ResearcherRepository
	publicationRepository storage.PublicationRepository
	provider              *ai.Provider
	config                *Config
	progress              io.Writer
}

// NewBackfiller creates a new backfiller.
// progress: where to write progress output (typically os.Stderr)
func NewBackfiller(
	researcherRepository storage.ResearcherRepository,
	publicationRepository storage.PublicationRepository,
	provider *ai.Provider,
	config *Config,
	progress io.Writer,
) *Backfiller {
	if progress == nil {
		progress = io.Discard
	}

	return &Backfiller{
		researcherRepository:  researcherRepository,
		publicationRepository: publicationRepository,
		provider:              provider,
		config:                config.withDefaults(),
		progress:              progress,
	}
}

// RunResearchers embeds every researcher that has interests but no interest
// vector. Progress is reported to the configured writer; the first hard
// error aborts the run. Records the provider cannot embed stay vectorless
// and are picked up by a later run.
func (b *Backfiller) RunResearchers(ctx context.Context) error {
	missing, err := b.researcherRepository.ListResearchersMissingVector(ctx)
	if err != nil {
		return fmt.Errorf("failed to query researchers: %w", err)
	}

	eligible := make([]*core.Researcher, 0, len(missing))
	for _, researcher := range missing {
		if strings.TrimSpace(researcher.InterestsText()) == "" {
			continue
		}
		eligible = append(eligible, researcher)
	}

	if skipped := len(missing) - len(eligible); skipped > 0 {
		fmt.Fprintf(b.progress, "Skipping %d researchers with no interests\n", skipped)
	}

	if len(eligible) == 0 {
		fmt.Fprintf(b.progress, "No researchers need embedding\n")
		return nil
	}

	fmt.Fprintf(b.progress, "Starting researcher backfill of %d records (batch size: %d, workers: %d)\n",
		len(eligible), b.config.BatchSize, b.config.Workers)

	tracker := NewProgressTracker(b.progress, len(eligible), b.config.ReportInterval)
	tracker.Start()

	embedded, err := b.runBatches(ctx, len(eligible), func(start, end int) (int, error) {
		return b.embedResearcherBatch(ctx, eligible[start:end], tracker)
	})
	if err != nil {
		return err
	}

	tracker.Finish()

	elapsed := tracker.Elapsed()
	fmt.Fprintf(b.progress, "Researcher backfill complete. Embedded %d of %d records in %v (%.1f records/sec)\n",
		embedded, len(eligible), elapsed.Round(time.Second), float64(len(eligible))/elapsed.Seconds())

	return nil
}

// RunPublications embeds every publication that has an abstract but no
// abstract vector. Progress is reported to the configured writer; the first
// hard error aborts the run.
func (b *Backfiller) RunPublications(ctx context.Context) error {
	missing, err := b.publicationRepository.ListPublicationsMissingVector(ctx)
	if err != nil {
		return fmt.Errorf("failed to query publications: %w", err)
	}

	eligible := make([]*core.Publication, 0, len(missing))
	for _, publication := range missing {
		if strings.TrimSpace(publication.Abstract) == "" {
			continue
		}
		eligible = append(eligible, publication)
	}

	if skipped := len(missing) - len(eligible); skipped > 0 {
		fmt.Fprintf(b.progress, "Skipping %d publications with no abstract\n", skipped)
	}

	if len(eligible) == 0 {
		fmt.Fprintf(b.progress, "No publications need embedding\n")
		return nil
	}

	fmt.Fprintf(b.progress, "Starting publication backfill of %d records (batch size: %d, workers: %d)\n",
		len(eligible), b.config.BatchSize, b.config.Workers)

	tracker := NewProgressTracker(b.progress, len(eligible), b.config.ReportInterval)
	tracker.Start()

	embedded, err := b.runBatches(ctx, len(eligible), func(start, end int) (int, error) {
		return b.embedPublicationBatch(ctx, eligible[start:end], tracker)
	})
	if err != nil {
		return err
	}

	tracker.Finish()

	elapsed := tracker.Elapsed()
	fmt.Fprintf(b.progress, "Publication backfill complete. Embedded %d of %d records in %v (%.1f records/sec)\n",
		embedded, len(eligible), elapsed.Round(time.Second), float64(len(eligible))/elapsed.Seconds())

	return nil
}

// runBatches fans batch processing out over a worker pool. fn processes the
// half-open range [start, end) and reports how many records it embedded.
// The first error wins; batches not yet started are skipped after that.
func (b *Backfiller) runBatches(ctx context.Context, total int, fn func(start, end int) (int, error)) (int, error) {
	pool, err := ants.NewPool(b.config.Workers)
	if err != nil {
		return 0, err
	}
	defer pool.Release()

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		embedded int
		firstErr error
	)

	fail := func(err error) {
		mu.Lock()
		if firstErr == nil {
			firstErr = err
		}
		mu.Unlock()
	}
	aborted := func() bool {
		mu.Lock()
		defer mu.Unlock()
		return firstErr != nil
	}

	for start := 0; start < total; start += b.config.BatchSize {
		if err := ctx.Err(); err != nil {
			fail(err)
			break
		}
		if aborted() {
			break
		}

		end := start + b.config.BatchSize
		if end > total {
			end = total
		}

		wg.Add(1)
		submitErr := pool.Submit(func() {
			defer wg.Done()

			if aborted() {
				return
			}

			count, err := fn(start, end)
			if err != nil {
				fail(err)
				return
			}

			mu.Lock()
			embedded += count
			mu.Unlock()
		})
		if submitErr != nil {
			wg.Done()
			fail(submitErr)
			break
		}
	}

	wg.Wait()
	return embedded, firstErr
}

// embedResearcherBatch embeds one batch of researchers and persists the
// updated records, retrying the write on transient storage errors.
func (b *Backfiller) embedResearcherBatch(ctx context.Context, batch []*core.Researcher, tracker *ProgressTracker) (int, error) {
	texts := make([]string, len(batch))
	for i, researcher := range batch {
		texts[i] = researcher.InterestsText()
	}

	vectors := b.provider.EmbedBatch(ctx, texts)

	updates := make([]*core.Researcher, 0, len(batch))
	for i, vector := range vectors {
		if len(vector) == 0 {
			continue
		}
		batch[i].InterestVector = NormalizeVector(vector)
		updates = append(updates, batch[i])
	}

	if len(updates) > 0 {
		err := RetryWithBackoff(ctx, func() error {
			_, err := b.researcherRepository.UpdateResearchers(ctx, updates...)
			return err
		}, b.config.MaxRetries, b.config.RetryDelay)
		if err != nil {
			return 0, fmt.Errorf("failed to update researchers: %w", err)
		}
	}

	tracker.Increment(len(batch))
	return len(updates), nil
}

// embedPublicationBatch embeds one batch of publications and persists the
// updated records, retrying the write on transient storage errors.
func (b *Backfiller) embedPublicationBatch(ctx context.Context, batch []*core.Publication, tracker *ProgressTracker) (int, error) {
	texts := make([]string, len(batch))
	for i, publication := range batch {
		texts[i] = publication.Abstract
	}

	vectors := b.provider.EmbedBatch(ctx, texts)

	updates := make([]*core.Publication, 0, len(batch))
	for i, vector := range vectors {
		if len(vector) == 0 {
			continue
		}
		batch[i].AbstractVector = NormalizeVector(vector)
		updates = append(updates, batch[i])
	}

	if len(updates) > 0 {
		err := RetryWithBackoff(ctx, func() error {
			_, err := b.publicationRepository.UpdatePublications(ctx, updates...)
			return err
		}, b.config.MaxRetries, b.config.RetryDelay)
		if err != nil {
			return 0, fmt.Errorf("failed to update publications: %w", err)
		}
	}

	tracker.Increment(len(batch))
	return len(updates), nil
}
