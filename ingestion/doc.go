// Package ingestion turns annotated source documents into stored,
// embedded passages.
//
// A Pipeline normalizes scripture references (unresolvable citations
// are dropped with a warning, verse references gain their chapter
// form), validates and stores the passages, then generates embeddings
// asynchronously on a worker pool. Call Wait to block until queued
// embedding work has drained.
package ingestion
