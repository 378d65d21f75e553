package badger

import (
	"context"
	"sort"
	"time"

	"github.com/dgraph-io/badger/v4"

	"github.com/scriptoria/loci/core"
	"github.com/scriptoria/loci/storage"
)

// PassageRepository implements storage.PassageRepository for BadgerDB.
type PassageRepository struct {
	backend *Backend
}

// now returns the current time truncated to the stored precision, so
// timestamps survive a round trip through the wire format unchanged.
func now() time.Time {
	return time.Now().UTC().Truncate(time.Microsecond)
}

var _ storage.PassageRepository = (*PassageRepository)(nil)

// NewPassageRepository creates a new PassageRepository.
func NewPassageRepository(backend *Backend) (*PassageRepository, error) {
	return &PassageRepository{backend: backend}, nil
}

// Close releases repository resources. The backend itself is closed by
// its owner.
func (r *PassageRepository) Close() error {
	return nil
}

// WithTransaction delegates to the backend.
func (r *PassageRepository) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return r.backend.WithTransaction(ctx, fn)
}

// AddPassages adds one or more passages to storage.
func (r *PassageRepository) AddPassages(ctx context.Context, passages ...*core.Passage) ([]*core.Passage, error) {
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		for _, passage := range passages {
			if passage.Id == 0 {
				passage.Id = core.PassageID(passage.Source, passage.Text)
			}

			key := makePassageKey(passage.Id)
			old, err := r.readPassage(tx, key)
			if err != nil {
				return err
			}

			if old != nil {
				// Same content re-ingested: overwrite in place, keep the
				// original ingestion position.
				passage.IngestedAt = old.IngestedAt
				passage.UpdatedAt = now()
				if err := tx.Set(key, storage.MarshalPassage(passage)); err != nil {
					return err
				}
				continue
			}

			if passage.IngestedAt.IsZero() {
				passage.IngestedAt = now()
			}
			passage.UpdatedAt = passage.IngestedAt

			if err := tx.Set(key, storage.MarshalPassage(passage)); err != nil {
				return err
			}

			orderKey := makeOrderKey(passage.IngestedAt, passage.Id)
			if err := tx.Set(orderKey, storage.MarshalID(passage.Id)); err != nil {
				return err
			}

			sourceKey := makeSourceKey(passage.Source, passage.Id)
			if err := tx.Set(sourceKey, storage.MarshalID(passage.Id)); err != nil {
				return err
			}
		}
		return tx.Commit()
	}, true)

	return passages, err
}

// UpdatePassages updates existing passages.
func (r *PassageRepository) UpdatePassages(ctx context.Context, passages ...*core.Passage) ([]*core.Passage, error) {
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		for _, passage := range passages {
			key := makePassageKey(passage.Id)

			old, err := r.readPassage(tx, key)
			if err != nil {
				return err
			}
			if old == nil {
				return storage.ErrNotFound
			}

			// The ingestion position is immutable; the order index key
			// depends on it.
			passage.IngestedAt = old.IngestedAt
			passage.UpdatedAt = now()

			if err := tx.Set(key, storage.MarshalPassage(passage)); err != nil {
				return err
			}

			if old.Source != passage.Source {
				if err := tx.Delete(makeSourceKey(old.Source, old.Id)); err != nil {
					return err
				}
				if err := tx.Set(makeSourceKey(passage.Source, passage.Id), storage.MarshalID(passage.Id)); err != nil {
					return err
				}
			}
		}
		return tx.Commit()
	}, true)

	return passages, err
}

// DeletePassages removes passages by their IDs.
func (r *PassageRepository) DeletePassages(ctx context.Context, ids ...core.ID) error {
	return r.backend.WithTx(func(tx *badger.Txn) error {
		for _, id := range ids {
			key := makePassageKey(id)

			passage, err := r.readPassage(tx, key)
			if err != nil {
				return err
			}
			if passage == nil {
				return storage.ErrNotFound
			}

			if err := tx.Delete(makeOrderKey(passage.IngestedAt, passage.Id)); err != nil {
				return err
			}
			if err := tx.Delete(makeSourceKey(passage.Source, passage.Id)); err != nil {
				return err
			}
			if err := tx.Delete(key); err != nil {
				return err
			}
		}
		return tx.Commit()
	}, true)
}

// GetPassage retrieves a single passage by ID.
func (r *PassageRepository) GetPassage(ctx context.Context, id core.ID) (*core.Passage, error) {
	var result *core.Passage
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		var err error
		result, err = r.readPassage(tx, makePassageKey(id))
		if err != nil {
			return err
		}
		if result == nil {
			return storage.ErrNotFound
		}
		return nil
	}, false)
	return result, err
}

// GetPassages retrieves multiple passages by their IDs.
// Missing passages are skipped without error.
func (r *PassageRepository) GetPassages(ctx context.Context, ids ...core.ID) ([]*core.Passage, error) {
	results := make([]*core.Passage, 0, len(ids))
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		for _, id := range ids {
			passage, err := r.readPassage(tx, makePassageKey(id))
			if err != nil {
				return err
			}
			if passage != nil {
				results = append(results, passage)
			}
		}
		return nil
	}, false)
	if err != nil {
		return nil, err
	}
	return results, nil
}

// GetPassagesBySource retrieves every passage belonging to a source,
// in ingestion order.
func (r *PassageRepository) GetPassagesBySource(ctx context.Context, source string) ([]*core.Passage, error) {
	var results []*core.Passage
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = makePartialSourceKey(source)
		iter := tx.NewIterator(opts)
		defer iter.Close()

		var ids []core.ID
		for iter.Rewind(); iter.Valid(); iter.Next() {
			err := iter.Item().Value(func(val []byte) error {
				id, err := storage.UnmarshalID(val)
				if err != nil {
					return err
				}
				ids = append(ids, id)
				return nil
			})
			if err != nil {
				return err
			}
		}

		passages := make([]*core.Passage, 0, len(ids))
		for _, id := range ids {
			passage, err := r.readPassage(tx, makePassageKey(id))
			if err != nil {
				return err
			}
			if passage != nil {
				passages = append(passages, passage)
			}
		}
		sort.SliceStable(passages, func(i, j int) bool {
			if !passages[i].IngestedAt.Equal(passages[j].IngestedAt) {
				return passages[i].IngestedAt.Before(passages[j].IngestedAt)
			}
			return passages[i].Id < passages[j].Id
		})
		results = passages
		return nil
	}, false)
	if err != nil {
		return nil, err
	}
	return results, nil
}

// GetAllPassages retrieves the whole corpus in ingestion order.
func (r *PassageRepository) GetAllPassages(ctx context.Context) ([]*core.Passage, error) {
	var results []*core.Passage
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(passageOrderPrefix + ":")
		iter := tx.NewIterator(opts)
		defer iter.Close()

		var ids []core.ID
		for iter.Rewind(); iter.Valid(); iter.Next() {
			err := iter.Item().Value(func(val []byte) error {
				id, err := storage.UnmarshalID(val)
				if err != nil {
					return err
				}
				ids = append(ids, id)
				return nil
			})
			if err != nil {
				return err
			}
		}

		for _, id := range ids {
			passage, err := r.readPassage(tx, makePassageKey(id))
			if err != nil {
				return err
			}
			if passage != nil {
				results = append(results, passage)
			}
		}
		return nil
	}, false)
	if err != nil {
		return nil, err
	}
	return results, nil
}

// Sources returns the catalog of source works, ordered by name.
func (r *PassageRepository) Sources(ctx context.Context) ([]storage.SourceInfo, error) {
	counts := make(map[string]int)
	authors := make(map[string]string)

	err := r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(passageSourcePrefix + ":")
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			item := iter.Item()
			source := sourceFromKey(item.Key())
			counts[source]++

			if _, seen := authors[source]; seen {
				continue
			}
			err := item.Value(func(val []byte) error {
				id, err := storage.UnmarshalID(val)
				if err != nil {
					return err
				}
				passage, err := r.readPassage(tx, makePassageKey(id))
				if err != nil {
					return err
				}
				if passage != nil {
					authors[source] = passage.Author
				}
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	}, false)
	if err != nil {
		return nil, err
	}

	infos := make([]storage.SourceInfo, 0, len(counts))
	for source, count := range counts {
		infos = append(infos, storage.SourceInfo{
			Name:     source,
			Author:   authors[source],
			Passages: count,
		})
	}
	sort.Slice(infos, func(i, j int) bool { return infos[i].Name < infos[j].Name })
	return infos, nil
}

// readPassage reads and unmarshals a passage, returning nil if the key
// does not exist.
func (r *PassageRepository) readPassage(tx *badger.Txn, key []byte) (*core.Passage, error) {
	item, err := tx.Get(key)
	if err == badger.ErrKeyNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var passage *core.Passage
	err = item.Value(func(val []byte) error {
		var err error
		passage, err = storage.UnmarshalPassage(val)
		return err
	})
	if err != nil {
		return nil, err
	}
	return passage, nil
}
