// Package reindex provides functionality for re-embedding stored passages
// with new or updated embedding models.
//
// This package supports batch processing of passages, progress tracking,
// retry logic with exponential backoff, and vector normalization to keep
// cosine similarity scoring well behaved.
package reindex
