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

import (
	"fmt"
	"strings"
)

// ValidatePassage validates a Passage according to domain rules.
//
// Validation rules:
//   - Text must not be empty
//   - Source must not be empty
//   - ScriptureRefs must satisfy the expansion invariant
//
// NOT validated (populated by processors):
//   - Vector (can be empty until the embedding processor runs; dimension
//     consistency is enforced by the corpus snapshot, not here)
//   - ID (0 is valid before content hashing)
func ValidatePassage(p *Passage) error {
	if p == nil {
		return fmt.Errorf("%w: passage is nil", ErrInvalidPassage)
	}

	if p.Text == "" {
		return fmt.Errorf("%w: %w", ErrInvalidPassage, ErrEmptyText)
	}

	if p.Source == "" {
		return fmt.Errorf("%w: %w", ErrInvalidPassage, ErrEmptySource)
	}

	if err := ValidateReferenceExpansion(p.Metadata.ScriptureRefs); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidPassage, err)
	}

	return nil
}

// ValidateReferenceExpansion checks the scripture reference expansion
// invariant: whenever a verse-level reference "Book C:V" is present,
// the chapter-level reference "Book C" must be present in the same set.
func ValidateReferenceExpansion(refs []string) error {
	if len(refs) == 0 {
		return nil
	}

	present := make(map[string]bool, len(refs))
	for _, ref := range refs {
		present[ref] = true
	}

	for _, ref := range refs {
		colon := strings.LastIndexByte(ref, ':')
		if colon < 0 {
			continue
		}
		chapter := ref[:colon]
		if !present[chapter] {
			return fmt.Errorf("%w: %q", ErrMissingChapterRef, ref)
		}
	}

	return nil
}

// ValidateQueryContext validates a QueryContext according to domain rules.
//
// Validation rules:
//   - Vector must not be empty
//
// Dimension agreement with the corpus is checked by the ranker against
// the snapshot it is given.
func ValidateQueryContext(qc *QueryContext) error {
	if qc == nil {
		return fmt.Errorf("%w: query context is nil", ErrInvalidQueryContext)
	}

	if len(qc.Vector) == 0 {
		return fmt.Errorf("%w: %w", ErrInvalidQueryContext, ErrEmptyQueryVector)
	}

	return nil
}
