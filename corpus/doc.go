// Package corpus holds the in-memory arena that ranking runs against.
//
// A Snapshot is an immutable, insertion-ordered copy of the passages
// under consideration, validated once at construction: every vector has
// the same dimension and every scripture reference set carries its
// chapter-level forms. Filtering by source allowlist produces a cheap
// View over the snapshot without copying passages, and Views preserve
// the original insertion positions so ranking ties can be broken
// deterministically.
package corpus
