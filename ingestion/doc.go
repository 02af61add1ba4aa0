// Package ingestion provides pipeline orchestration for persisting and
// enriching research records.
//
// The Pipeline type manages the ingestion workflow for researchers and
// publications, including:
//   - Validating and adding records to storage
//   - Generating embeddings asynchronously
//   - Auto-tagging publications with sustainability goals asynchronously
//
// Processing is performed concurrently using worker pools to maximize throughput.
// Errors during async processing are logged but do not fail the ingestion operation.
package ingestion
