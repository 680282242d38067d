package badger

import (
	"bytes"
	"context"
	"time"

	"github.com/dgraph-io/badger/v4"

	"github.com/caselode/caselode/core"
	"github.com/caselode/caselode/storage"
)

// StatuteRepository implements storage.StatuteRepository for BadgerDB.
// Section IDs are content IDs of the (act, number) tuple, so tuple lookup
// needs no secondary index.
type StatuteRepository struct {
	backend *Backend
}

var _ storage.StatuteRepository = (*StatuteRepository)(nil)

// NewStatuteRepository creates a new StatuteRepository.
func NewStatuteRepository(backend *Backend) *StatuteRepository {
	return &StatuteRepository{
		backend: backend,
	}
}

// Close is a no-op; the repository holds no resources of its own.
func (r *StatuteRepository) Close() error {
	return nil
}

// WithTransaction delegates to the backend.
func (r *StatuteRepository) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return r.backend.WithTransaction(ctx, fn)
}

// AddSections adds one or more statute sections to storage.
// Reloading an existing section overwrites it in place.
func (r *StatuteRepository) AddSections(ctx context.Context, sections ...*core.StatuteSection) ([]*core.StatuteSection, error) {
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		for _, section := range sections {
			section.Id = core.IDFromContent(section.Tuple())

			section.InsertedAt = time.Now().UTC()
			section.UpdatedAt = section.InsertedAt

			key := makeStatuteKey(section.Id)
			value := storage.MarshalStatuteSection(section)
			if err := tx.Set(key, value); err != nil {
				return err
			}
		}
		return tx.Commit()
	}, true)

	return sections, err
}

// UpdateSections updates existing sections.
func (r *StatuteRepository) UpdateSections(ctx context.Context, sections ...*core.StatuteSection) ([]*core.StatuteSection, error) {
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		for _, section := range sections {
			key := makeStatuteKey(section.Id)

			old, err := r.readSection(tx, key)
			if err != nil {
				return err
			}
			if old == nil {
				return storage.ErrNotFound
			}

			section.UpdatedAt = time.Now().UTC()

			value := storage.MarshalStatuteSection(section)
			if err := tx.Set(key, value); err != nil {
				return err
			}
		}
		return tx.Commit()
	}, true)

	return sections, err
}

// GetSection finds a section by its (act, number) tuple.
func (r *StatuteRepository) GetSection(ctx context.Context, act, number string) (*core.StatuteSection, error) {
	id := core.IDFromContent(core.StatuteTuple(act, number))

	var section *core.StatuteSection
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		var err error
		section, err = r.readSection(tx, makeStatuteKey(id))
		return err
	}, false)
	if err != nil {
		return nil, err
	}

	if section == nil {
		return nil, storage.ErrNotFound
	}
	return section, nil
}

// GetSections retrieves multiple sections by their IDs.
// Missing sections are silently skipped.
func (r *StatuteRepository) GetSections(ctx context.Context, ids ...core.ID) ([]*core.StatuteSection, error) {
	sections := make([]*core.StatuteSection, 0, len(ids))

	err := r.backend.WithTx(func(tx *badger.Txn) error {
		for _, id := range ids {
			section, err := r.readSection(tx, makeStatuteKey(id))
			if err != nil {
				return err
			}
			if section != nil {
				sections = append(sections, section)
			}
		}
		return nil
	}, false)
	if err != nil {
		return nil, err
	}

	return sections, nil
}

// ForEachSection iterates over every statute section in storage.
func (r *StatuteRepository) ForEachSection(ctx context.Context, fn func(*core.StatuteSection) error) error {
	return r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(statuteRecordPrefix)
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}

			item := iter.Item()
			if !bytes.HasPrefix(item.Key(), []byte(statuteRecordPrefix+":")) {
				continue
			}

			var section *core.StatuteSection
			err := item.Value(func(val []byte) error {
				var err error
				section, err = storage.UnmarshalStatuteSection(val)
				return err
			})
			if err != nil {
				return err
			}
			if section == nil {
				continue
			}

			if err := fn(section); err != nil {
				return err
			}
		}
		return nil
	}, false)
}

// readSection reads and unmarshals a section, returning nil if not found.
func (r *StatuteRepository) readSection(tx *badger.Txn, key []byte) (*core.StatuteSection, error) {
	item, err := tx.Get(key)
	if err != nil {
		if err == badger.ErrKeyNotFound {
			return nil, nil
		}
		return nil, err
	}

	var section *core.StatuteSection
	err = item.Value(func(val []byte) error {
		var unmarshalErr error
		section, unmarshalErr = storage.UnmarshalStatuteSection(val)
		return unmarshalErr
	})
	return section, err
}
