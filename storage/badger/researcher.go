package badger

import (
	"context"
	"slices"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/poiesic/scholaris/core"
	"github.com/poiesic/scholaris/storage"
)

// ResearcherRepository implements storage.ResearcherRepository for BadgerDB.
type ResearcherRepository struct {
	backend *Backend
	idSeq   *badger.Sequence
}

var _ storage.ResearcherRepository = (*ResearcherRepository)(nil)

// NewResearcherRepository creates a new ResearcherRepository.
func NewResearcherRepository(backend *Backend) (*ResearcherRepository, error) {
	idSeq, err := backend.GetSequence(researcherIDSeq)
	if err != nil {
		return nil, err
	}

	return &ResearcherRepository{
		backend: backend,
		idSeq:   idSeq,
	}, nil
}

// Close releases the ID sequence.
func (r *ResearcherRepository) Close() error {
	return r.idSeq.Release()
}

// WithTransaction delegates to the backend.
func (r *ResearcherRepository) WithTransaction(ctx context.Context, fn func(ctx context.Context) error, isWrite bool) error {
	return r.backend.WithTransaction(ctx, fn, isWrite)
}

// AddResearchers adds one or more researchers to storage.
func (r *ResearcherRepository) AddResearchers(ctx context.Context, researchers ...*core.Researcher) ([]*core.Researcher, error) {
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		// Generate IDs and set timestamps
		for _, researcher := range researchers {
			if researcher == nil {
				return storage.ErrNilRecord
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
			researcher.Id = core.ID(nextID)

			researcher.InsertedAt = time.Now().UTC()
			researcher.UpdatedAt = researcher.InsertedAt

			// Store primary record
			key := makeResearcherKey(researcher.Id)
			value := storage.MarshalResearcher(researcher)
			if err := tx.Set(key, value); err != nil {
				return err
			}

			// Update department index
			if researcher.Department != "" {
				deptKey := makeDepartmentKey(researcher.Department, researcher.Id)
				if err := tx.Set(deptKey, storage.MarshalID(researcher.Id)); err != nil {
					return err
				}
			}
		}
		return tx.Commit()
	}, true)

	return researchers, err
}

// UpdateResearchers updates existing researchers.
func (r *ResearcherRepository) UpdateResearchers(ctx context.Context, researchers ...*core.Researcher) ([]*core.Researcher, error) {
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		for _, researcher := range researchers {
			if researcher == nil {
				return storage.ErrNilRecord
			}
			if researcher.Id == 0 {
				return storage.ErrInvalidId
			}
			key := makeResearcherKey(researcher.Id)

			// Read old record to detect changes
			old, err := r.readResearcher(tx, key)
			if err != nil {
				return err
			}
			if old == nil {
				return storage.ErrNotFound
			}

			// Update timestamp
			researcher.UpdatedAt = time.Now().UTC()

			// Store updated record
			value := storage.MarshalResearcher(researcher)
			if err := tx.Set(key, value); err != nil {
				return err
			}

			// Update department index if the department changed
			if old.Department != researcher.Department {
				if old.Department != "" {
					oldDeptKey := makeDepartmentKey(old.Department, old.Id)
					if err := tx.Delete(oldDeptKey); err != nil {
						return err
					}
				}
				if researcher.Department != "" {
					newDeptKey := makeDepartmentKey(researcher.Department, researcher.Id)
					if err := tx.Set(newDeptKey, storage.MarshalID(researcher.Id)); err != nil {
						return err
					}
				}
			}
		}
		return tx.Commit()
	}, true)

	return researchers, err
}

// DeleteResearchers removes researchers by their IDs.
func (r *ResearcherRepository) DeleteResearchers(ctx context.Context, ids ...core.ID) error {
	return r.backend.WithTx(func(tx *badger.Txn) error {
		for _, id := range ids {
			key := makeResearcherKey(id)

			// Read record to get metadata for index cleanup
			researcher, err := r.readResearcher(tx, key)
			if err != nil {
				return err
			}
			if researcher == nil {
				return storage.ErrNotFound
			}

			// Delete from department index
			if researcher.Department != "" {
				deptKey := makeDepartmentKey(researcher.Department, researcher.Id)
				if err := tx.Delete(deptKey); err != nil {
					return err
				}
			}

			// Delete primary record
			if err := tx.Delete(key); err != nil {
				return err
			}
		}
		return tx.Commit()
	}, true)
}

// GetResearcher retrieves a single researcher by ID.
func (r *ResearcherRepository) GetResearcher(ctx context.Context, id core.ID) (*core.Researcher, error) {
	var result *core.Researcher
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		key := makeResearcherKey(id)
		var err error
		result, err = r.readResearcher(tx, key)
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

// GetResearchers retrieves multiple researchers by their IDs.
func (r *ResearcherRepository) GetResearchers(ctx context.Context, ids ...core.ID) ([]*core.Researcher, error) {
	var result []*core.Researcher
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		for _, id := range ids {
			key := makeResearcherKey(id)
			researcher, err := r.readResearcher(tx, key)
			if err != nil {
				return err
			}
			if researcher != nil {
				result = append(result, researcher)
			}
		}
		return nil
	}, false)
	return result, err
}

// ListResearchers retrieves all researchers from storage.
func (r *ResearcherRepository) ListResearchers(ctx context.Context) ([]*core.Researcher, error) {
	var results []*core.Researcher
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = true
		iter := tx.NewIterator(opts)
		defer iter.Close()

		prefix := []byte(researcherRecordPrefix + ":")
		for iter.Seek(prefix); iter.Valid(); iter.Next() {
			item := iter.Item()
			if !hasPrefix(item.Key(), prefix) {
				break
			}

			var researcher *core.Researcher
			err := item.Value(func(val []byte) error {
				var err error
				researcher, err = storage.UnmarshalResearcher(val)
				return err
			})
			if err != nil {
				return err
			}

			if researcher != nil {
				results = append(results, researcher)
			}
		}
		return nil
	}, false)

	return results, err
}

// GetResearchersByDepartment retrieves all researchers in a department,
// in insertion order.
func (r *ResearcherRepository) GetResearchersByDepartment(ctx context.Context, department string) ([]*core.Researcher, error) {
	var results []*core.Researcher
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		startKey := makePartialDepartmentKey(department)
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

			// Read the ID from the index
			var researcherID core.ID
			if err := iter.Item().Value(func(val []byte) error {
				var err error
				researcherID, err = storage.UnmarshalID(val)
				return err
			}); err != nil {
				return err
			}

			// Look up the full record
			recordKey := makeResearcherKey(researcherID)
			researcher, err := r.readResearcher(tx, recordKey)
			if err != nil {
				return err
			}
			if researcher != nil {
				results = append(results, researcher)
			}
		}
		return nil
	}, false)

	return results, err
}

// ListResearchersMissingVector retrieves researchers whose interest
// vector has not been computed yet. Used by backfill to find work.
func (r *ResearcherRepository) ListResearchersMissingVector(ctx context.Context) ([]*core.Researcher, error) {
	all, err := r.ListResearchers(ctx)
	if err != nil {
		return nil, err
	}

	var results []*core.Researcher
	for _, researcher := range all {
		if len(researcher.InterestVector) == 0 {
			results = append(results, researcher)
		}
	}
	return results, nil
}

// Helper methods

// readResearcher reads a researcher from the transaction.
func (r *ResearcherRepository) readResearcher(tx *badger.Txn, key []byte) (*core.Researcher, error) {
	item, err := tx.Get(key)
	if err != nil {
		if err == badger.ErrKeyNotFound {
			return nil, nil
		}
		return nil, err
	}

	var researcher *core.Researcher
	err = item.Value(func(val []byte) error {
		var unmarshalErr error
		researcher, unmarshalErr = storage.UnmarshalResearcher(val)
		return unmarshalErr
	})
	return researcher, err
}
