// Package backfill recomputes missing embedding vectors for stored records
// in batches.
//
// This package supports parallel batch processing over a worker pool,
// progress tracking, retry logic with exponential backoff, and vector
// normalization to keep stored vectors compatible with cosine similarity.
package backfill
