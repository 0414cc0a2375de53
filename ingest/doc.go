// Package ingest builds the vector index from corpus metadata.
//
// The Pipeline type manages the indexing workflow for papers, including:
//   - Validating corpus entries
//   - Generating embeddings for each paper's title and abstract
//   - Writing embedded papers to storage
//
// Embedding is performed concurrently in batches using a worker pool.
// A failed batch is logged and skipped; it never aborts the run, so a
// flaky embedding service costs coverage rather than the whole index.
package ingest
