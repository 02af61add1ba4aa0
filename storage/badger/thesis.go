package badger

import (
	"context"
	"slices"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/poiesic/scholaris/core"
	"github.com/poiesic/scholaris/storage"
)

// ThesisRepository implements storage.ThesisRepository for BadgerDB.
type ThesisRepository struct {
	backend *Backend
	idSeq   *badger.Sequence
}

var _ storage.ThesisRepository = (*ThesisRepository)(nil)

// NewThesisRepository creates a new ThesisRepository.
func NewThesisRepository(backend *Backend) (*ThesisRepository, error) {
	idSeq, err := backend.GetSequence(thesisIDSeq)
	if err != nil {
		return nil, err
	}

	return &ThesisRepository{
		backend: backend,
		idSeq:   idSeq,
	}, nil
}

// Close releases the ID sequence.
func (r *ThesisRepository) Close() error {
	return r.idSeq.Release()
}

// WithTransaction delegates to the backend.
func (r *ThesisRepository) WithTransaction(ctx context.Context, fn func(ctx context.Context) error, isWrite bool) error {
	return r.backend.WithTransaction(ctx, fn, isWrite)
}

// AddTheses adds one or more theses to storage.
func (r *ThesisRepository) AddTheses(ctx context.Context, theses ...*core.Thesis) ([]*core.Thesis, error) {
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		for _, thesis := range theses {
			if thesis == nil {
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
			thesis.Id = core.ID(nextID)

			thesis.InsertedAt = time.Now().UTC()
			thesis.UpdatedAt = thesis.InsertedAt

			// Store primary record
			key := makeThesisKey(thesis.Id)
			value := storage.MarshalThesis(thesis)
			if err := tx.Set(key, value); err != nil {
				return err
			}

			// Update supervisor index
			if thesis.SupervisorId != 0 {
				supKey := makeSupervisorKey(thesis.SupervisorId, thesis.Id)
				if err := tx.Set(supKey, storage.MarshalID(thesis.Id)); err != nil {
					return err
				}
			}
		}
		return tx.Commit()
	}, true)

	return theses, err
}

// UpdateTheses updates existing theses.
func (r *ThesisRepository) UpdateTheses(ctx context.Context, theses ...*core.Thesis) ([]*core.Thesis, error) {
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		for _, thesis := range theses {
			if thesis == nil {
				return storage.ErrNilRecord
			}
			if thesis.Id == 0 {
				return storage.ErrInvalidId
			}
			key := makeThesisKey(thesis.Id)

			// Read old record to detect changes
			old, err := r.readThesis(tx, key)
			if err != nil {
				return err
			}
			if old == nil {
				return storage.ErrNotFound
			}

			// Update timestamp
			thesis.UpdatedAt = time.Now().UTC()

			// Store updated record
			value := storage.MarshalThesis(thesis)
			if err := tx.Set(key, value); err != nil {
				return err
			}

			// Update supervisor index if the supervisor changed
			if old.SupervisorId != thesis.SupervisorId {
				if old.SupervisorId != 0 {
					oldSupKey := makeSupervisorKey(old.SupervisorId, old.Id)
					if err := tx.Delete(oldSupKey); err != nil {
						return err
					}
				}
				if thesis.SupervisorId != 0 {
					newSupKey := makeSupervisorKey(thesis.SupervisorId, thesis.Id)
					if err := tx.Set(newSupKey, storage.MarshalID(thesis.Id)); err != nil {
						return err
					}
				}
			}
		}
		return tx.Commit()
	}, true)

	return theses, err
}

// DeleteTheses removes theses by their IDs.
func (r *ThesisRepository) DeleteTheses(ctx context.Context, ids ...core.ID) error {
	return r.backend.WithTx(func(tx *badger.Txn) error {
		for _, id := range ids {
			key := makeThesisKey(id)

			// Read record to get metadata for index cleanup
			thesis, err := r.readThesis(tx, key)
			if err != nil {
				return err
			}
			if thesis == nil {
				return storage.ErrNotFound
			}

			// Delete from supervisor index
			if thesis.SupervisorId != 0 {
				supKey := makeSupervisorKey(thesis.SupervisorId, thesis.Id)
				if err := tx.Delete(supKey); err != nil {
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

// GetThesis retrieves a single thesis by ID.
func (r *ThesisRepository) GetThesis(ctx context.Context, id core.ID) (*core.Thesis, error) {
	var result *core.Thesis
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		key := makeThesisKey(id)
		var err error
		result, err = r.readThesis(tx, key)
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

// GetTheses retrieves multiple theses by their IDs.
func (r *ThesisRepository) GetTheses(ctx context.Context, ids ...core.ID) ([]*core.Thesis, error) {
	var result []*core.Thesis
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		for _, id := range ids {
			key := makeThesisKey(id)
			thesis, err := r.readThesis(tx, key)
			if err != nil {
				return err
			}
			if thesis != nil {
				result = append(result, thesis)
			}
		}
		return nil
	}, false)
	return result, err
}

// ListTheses retrieves all theses from storage.
func (r *ThesisRepository) ListTheses(ctx context.Context) ([]*core.Thesis, error) {
	var results []*core.Thesis
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = true
		iter := tx.NewIterator(opts)
		defer iter.Close()

		prefix := []byte(thesisRecordPrefix + ":")
		for iter.Seek(prefix); iter.Valid(); iter.Next() {
			item := iter.Item()
			if !hasPrefix(item.Key(), prefix) {
				break
			}

			var thesis *core.Thesis
			err := item.Value(func(val []byte) error {
				var err error
				thesis, err = storage.UnmarshalThesis(val)
				return err
			})
			if err != nil {
				return err
			}

			if thesis != nil {
				results = append(results, thesis)
			}
		}
		return nil
	}, false)

	return results, err
}

// GetThesesBySupervisor retrieves all theses supervised by one researcher,
// in insertion order.
func (r *ThesisRepository) GetThesesBySupervisor(ctx context.Context, supervisorId core.ID) ([]*core.Thesis, error) {
	var results []*core.Thesis
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		startKey := makePartialSupervisorKey(supervisorId)
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
			var thesisID core.ID
			if err := iter.Item().Value(func(val []byte) error {
				var err error
				thesisID, err = storage.UnmarshalID(val)
				return err
			}); err != nil {
				return err
			}

			// Look up the full record
			recordKey := makeThesisKey(thesisID)
			thesis, err := r.readThesis(tx, recordKey)
			if err != nil {
				return err
			}
			if thesis != nil {
				results = append(results, thesis)
			}
		}
		return nil
	}, false)

	return results, err
}

// Helper methods

// readThesis reads a thesis from the transaction.
func (r *ThesisRepository) readThesis(tx *badger.Txn, key []byte) (*core.Thesis, error) {
	item, err := tx.Get(key)
	if err != nil {
		if err == badger.ErrKeyNotFound {
			return nil, nil
		}
		return nil, err
	}

	var thesis *core.Thesis
	err = item.Value(func(val []byte) error {
		var unmarshalErr error
		thesis, unmarshalErr = storage.UnmarshalThesis(val)
		return unmarshalErr
	})
	return thesis, err
}
