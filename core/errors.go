// Copyright 2025 Scriptoria Labs
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


package core

import "errors"

// Domain validation errors
var (
	// ErrInvalidPassage indicates a Passage failed validation.
	ErrInvalidPassage = errors.New("invalid passage")

	// ErrEmptyText indicates the Text field is empty.
	ErrEmptyText = errors.New("passage text cannot be empty")

	// ErrEmptySource indicates the Source field is empty.
	ErrEmptySource = errors.New("passage source cannot be empty")

	// ErrDimensionMismatch indicates an embedding does not match the
	// corpus embedding dimension. This is a corpus/query contract
	// violation and is fatal for the whole operation that hit it.
	ErrDimensionMismatch = errors.New("embedding dimension mismatch")

	// ErrMissingChapterRef indicates a verse-level scripture reference
	// without its corresponding chapter-level form in the same set.
	ErrMissingChapterRef = errors.New("verse reference present without chapter reference")

	// ErrInvalidQueryContext indicates a QueryContext failed validation.
	ErrInvalidQueryContext = errors.New("invalid query context")

	// ErrEmptyQueryVector indicates the query embedding is missing.
	ErrEmptyQueryVector = errors.New("query embedding cannot be empty")
)
