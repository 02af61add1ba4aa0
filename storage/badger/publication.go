// Copyright 2025 Poiesic Systems
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


package badger

import (
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/poiesic/scholaris/core"
	"github.com/poiesic/scholaris/storage"
)

// PublicationRepository implements storage.PublicationRepository for BadgerDB.
type PublicationRepository struct {
	backend *Backend
	idSeq   *badger.Sequence
}

var _ storage.PublicationRepository = (*PublicationRepository)(nil)

// NewPublicationRepository creates a new PublicationRepository.
func NewPublicationRepository(backend *Backend) (*PublicationRepository, error) {
	idSeq, err := backend.GetSequence(publicationIDSeq)
	if err != nil {
		return nil, err
	}

	return &PublicationRepository{
		backend: backend,
		idSeq:   idSeq,
	}, nil
}

// Close releases the ID sequence.
func (r *PublicationRepository) Close() error {
	return r.idSeq.Release()
}

// WithTransaction delegates to the backend.
func (r *PublicationRepository) WithTransaction(ctx context.Context, fn func(ctx context.Context) error, isWrite bool) error {
	return r.backend.WithTransaction(ctx, fn, isWrite)
}

// AddPublications adds one or more publications to storage.
// A publication whose DOI is already registered fails with ErrDuplicateKey.
func (r *PublicationRepository) AddPublications(ctx context.Context, publications ...*core.Publication) ([]*core.Publication, error) {
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		for _, publication := range publications {
			if publication == nil {
				return storage.ErrNilRecord
			}

			// Reject duplicate DOIs before consuming a sequence ID
			if publication.DOI != "" {
				if err := checkDOIFree(tx, publication.DOI); err != nil {
					return err
				}
			}

			// Always generate new ID from sequence
			nextID, err := r.idSeq.Next()
			if err != nil {
				return err
			}
			// BadgerDB sequences can return 0 on first call, so we skip it
			if nextID == 0 {
				nextID, err = r.idSeq.Next()
				if err != nil {
					return err
				}
			}
			publication.Id = core.ID(nextID)

			publication.InsertedAt = time.Now().UTC()
			publication.UpdatedAt = publication.InsertedAt

			// Store primary record
			key := makePublicationKey(publication.Id)
			value := storage.MarshalPublication(publication)
			if err := tx.Set(key, value); err != nil {
				return err
			}

			// Update DOI index
			if publication.DOI != "" {
				doiKey := makeDOIKey(publication.DOI)
				if err := tx.Set(doiKey, storage.MarshalID(publication.Id)); err != nil {
					return err
				}
			}

			// Update goal index
			if err := updateGoalIndex(tx, publication); err != nil {
				return err
			}
		}
		return tx.Commit()
	}, true)

	return publications, err
}

// UpdatePublications updates existing publications.
func (r *PublicationRepository) UpdatePublications(ctx context.Context, publications ...*core.Publication) ([]*core.Publication, error) {
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		for _, publication := range publications {
			if publication == nil {
				return storage.ErrNilRecord
			}
			if publication.Id == 0 {
				return storage.ErrInvalidId
			}
			key := makePublicationKey(publication.Id)

			// Read old record to detect changes
			old, err := r.readPublication(tx, key)
			if err != nil {
				return err
			}
			if old == nil {
				return storage.ErrNotFound
			}

			// Update DOI index if the DOI changed
			if old.DOI != publication.DOI {
				if publication.DOI != "" {
					if err := checkDOIFree(tx, publication.DOI); err != nil {
						return err
					}
				}
				if old.DOI != "" {
					if err := tx.Delete(makeDOIKey(old.DOI)); err != nil {
						return err
					}
				}
				if publication.DOI != "" {
					doiKey := makeDOIKey(publication.DOI)
					if err := tx.Set(doiKey, storage.MarshalID(publication.Id)); err != nil {
						return err
					}
				}
			}

			// Update timestamp
			publication.UpdatedAt = time.Now().UTC()

			// Store updated record
			value := storage.MarshalPublication(publication)
			if err := tx.Set(key, value); err != nil {
				return err
			}

			// Update goal index if the goal set changed
			if !slices.Equal(old.Goals, publication.Goals) {
				if err := deleteGoalIndex(tx, old); err != nil {
					return err
				}
				if err := updateGoalIndex(tx, publication); err != nil {
					return err
				}
			}
		}
		return tx.Commit()
	}, true)

	return publications, err
}

// DeletePublications removes publications by their IDs.
func (r *PublicationRepository) DeletePublications(ctx context.Context, ids ...core.ID) error {
	return r.backend.WithTx(func(tx *badger.Txn) error {
		for _, id := range ids {
			key := makePublicationKey(id)

			// Read record to get metadata for index cleanup
			publication, err := r.readPublication(tx, key)
			if err != nil {
				return err
			}
			if publication == nil {
				return storage.ErrNotFound
			}

			// Delete from DOI index
			if publication.DOI != "" {
				if err := tx.Delete(makeDOIKey(publication.DOI)); err != nil {
					return err
				}
			}

			// Delete from goal index
			if err := deleteGoalIndex(tx, publication); err != nil {
				return err
			}

			// Delete primary record
			if err := tx.Delete(key); err != nil {
				return err
			}
		}
		return tx.Commit()
	}, true)
}

// GetPublication retrieves a single publication by ID.
func (r *PublicationRepository) GetPublication(ctx context.Context, id core.ID) (*core.Publication, error) {
	var result *core.Publication
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		key := makePublicationKey(id)
		var err error
		result, err = r.readPublication(tx, key)
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

// GetPublications retrieves multiple publications by their IDs.
func (r *PublicationRepository) GetPublications(ctx context.Context, ids ...core.ID) ([]*core.Publication, error) {
	var result []*core.Publication
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		for _, id := range ids {
			key := makePublicationKey(id)
			publication, err := r.readPublication(tx, key)
			if err != nil {
				return err
			}
			if publication != nil {
				result = append(result, publication)
			}
		}
		return nil
	}, false)
	return result, err
}

// ListPublications retrieves all publications from storage.
func (r *PublicationRepository) ListPublications(ctx context.Context) ([]*core.Publication, error) {
	var results []*core.Publication
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = true
		iter := tx.NewIterator(opts)
		defer iter.Close()

		prefix := []byte(publicationRecordPrefix + ":")
		for iter.Seek(prefix); iter.Valid(); iter.Next() {
			item := iter.Item()
			if !hasPrefix(item.Key(), prefix) {
				break
			}

			var publication *core.Publication
			err := item.Value(func(val []byte) error {
				var err error
				publication, err = storage.UnmarshalPublication(val)
				return err
			})
			if err != nil {
				return err
			}

			if publication != nil {
				results = append(results, publication)
			}
		}
		return nil
	}, false)

	return results, err
}

// GetPublicationsByGoal retrieves IDs of publications tagged with a goal.
func (r *PublicationRepository) GetPublicationsByGoal(ctx context.Context, code string) ([]core.ID, error) {
	var publicationIDs []core.ID
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		startKey := makePartialGoalKey(code)
		iter := tx.NewIterator(badger.DefaultIteratorOptions)
		defer iter.Close()

		for iter.Seek(startKey); iter.Valid(); iter.Next() {
			key := iter.Item().Key()
			if len(key) < len(startKey) {
				break
			}
			if slices.Compare(key[:len(startKey)], startKey) != 0 {
				break
			}

			// Read the publication ID from the value
			var publicationID core.ID
			err := iter.Item().Value(func(val []byte) error {
				var err error
				publicationID, err = storage.UnmarshalID(val)
				return err
			})
			if err != nil {
				return err
			}
			publicationIDs = append(publicationIDs, publicationID)
		}
		return nil
	}, false)

	return publicationIDs, err
}

// GetPublicationByDOI finds a publication by its DOI.
func (r *PublicationRepository) GetPublicationByDOI(ctx context.Context, doi string) (*core.Publication, error) {
	var result *core.Publication
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		// Look up ID from DOI index
		doiKey := makeDOIKey(doi)
		item, err := tx.Get(doiKey)
		if err != nil {
			if err == badger.ErrKeyNotFound {
				return storage.ErrNotFound
			}
			return err
		}

		var publicationID core.ID
		err = item.Value(func(val []byte) error {
			publicationID, err = storage.UnmarshalID(val)
			return err
		})
		if err != nil {
			return err
		}

		// Look up full publication
		publicationKey := makePublicationKey(publicationID)
		result, err = r.readPublication(tx, publicationKey)
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

// ListPublicationsMissingVector retrieves publications whose abstract
// vector has not been computed yet. Used by backfill to find work.
func (r *PublicationRepository) ListPublicationsMissingVector(ctx context.Context) ([]*core.Publication, error) {
	all, err := r.ListPublications(ctx)
	if err != nil {
		return nil, err
	}

	var results []*core.Publication
	for _, publication := range all {
		if len(publication.AbstractVector) == 0 {
			results = append(results, publication)
		}
	}
	return results, nil
}

// Helper methods

// readPublication reads a publication from the transaction.
func (r *PublicationRepository) readPublication(tx *badger.Txn, key []byte) (*core.Publication, error) {
	item, err := tx.Get(key)
	if err != nil {
		if err == badger.ErrKeyNotFound {
			return nil, nil
		}
		return nil, err
	}

	var publication *core.Publication
	err = item.Value(func(val []byte) error {
		var unmarshalErr error
		publication, unmarshalErr = storage.UnmarshalPublication(val)
		return unmarshalErr
	})
	return publication, err
}

// checkDOIFree fails with ErrDuplicateKey when the DOI is already indexed.
func checkDOIFree(tx *badger.Txn, doi string) error {
	_, err := tx.Get(makeDOIKey(doi))
	if err == nil {
		return fmt.Errorf("%w: doi %s", storage.ErrDuplicateKey, doi)
	}
	if err != badger.ErrKeyNotFound {
		return err
	}
	return nil
}

// updateGoalIndex adds goal index entries for a publication.
func updateGoalIndex(tx *badger.Txn, publication *core.Publication) error {
	if len(publication.Goals) == 0 {
		return nil
	}
	for _, code := range publication.Goals {
		key := makeGoalKey(code, publication.Id)
		value := storage.MarshalID(publication.Id)
		if err := tx.Set(key, value); err != nil {
			return err
		}
	}
	return nil
}

// deleteGoalIndex removes goal index entries for a publication.
func deleteGoalIndex(tx *badger.Txn, publication *core.Publication) error {
	if len(publication.Goals) == 0 {
		return nil
	}
	for _, code := range publication.Goals {
		key := makeGoalKey(code, publication.Id)
		if err := tx.Delete(key); err != nil {
			return err
		}
	}
	return nil
}
