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


package reindex

import (
	"context"

	"github.com/scriptoria/loci/core"
	"github.com/scriptoria/loci/storage"
)

const (
	// DefaultBatchSize is the default number of passages to process in each batch
	DefaultBatchSize = 100
)

// PassageIterator iterates over all stored passages in batches,
// in corpus ingestion order.
type PassageIterator struct {
	repo      storage.PassageRepository
	batchSize int
}

// NewPassageIterator creates a new passage iterator.
// batchSize: number of passages to hand to fn in each batch (must be > 0)
func NewPassageIterator(repo storage.PassageRepository, batchSize int) *PassageIterator {
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}

	return &PassageIterator{
		repo:      repo,
		batchSize: batchSize,
	}
}

// ForEach iterates over all passages, calling fn for each batch.
// Iteration stops on first error from fn or when all passages are processed.
// Context cancellation is checked between batches.
func (it *PassageIterator) ForEach(ctx context.Context, fn func([]*core.Passage) error) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	passages, err := it.repo.GetAllPassages(ctx)
	if err != nil {
		return err
	}

	if len(passages) == 0 {
		return nil
	}

	for i := 0; i < len(passages); i += it.batchSize {
		end := i + it.batchSize
		if end > len(passages) {
			end = len(passages)
		}

		if err := fn(passages[i:end]); err != nil {
			return err
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
	}

	return nil
}
