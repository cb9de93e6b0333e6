// Package repo provides the generic record repository backed by a JSON file
// store. One repository wraps one store; there is no cache, every operation
// re-reads from disk so a crash between requests can never observe stale
// state.
package repo

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/alfagnish/bookshelf/internal/entity"
	"github.com/alfagnish/bookshelf/internal/store"
)

// ErrNotFound is wrapped by lookups that find no record for a given ID.
var ErrNotFound = errors.New("not found")

// Repository exposes kind-specific CRUD over a file store. The kind name
// only appears in error messages ("user not found").
type Repository[T entity.Record] struct {
	kind  string
	store *store.Store[T]
}

func New[T entity.Record](kind string, st *store.Store[T]) *Repository[T] {
	return &Repository[T]{kind: kind, store: st}
}

// Add appends rec, assigning the next free ID when rec carries none. The
// record is validated before anything is written or assigned, so a rejected
// record leaves both the file and the caller's struct untouched.
func (r *Repository[T]) Add(rec T) (T, error) {
	var zero T
	_, err := r.store.Mutate(func(recs []T) ([]T, error) {
		if err := rec.Validate(); err != nil {
			return nil, err
		}
		if rec.GetID() == 0 {
			rec.SetID(store.NextID(recs))
		}
		return append(recs, rec), nil
	})
	if err != nil {
		return zero, err
	}
	return rec, nil
}

// GetAll returns every record, insertion order preserved.
func (r *Repository[T]) GetAll() ([]T, error) {
	return r.store.Load()
}

// GetByID returns the record with the given ID.
func (r *Repository[T]) GetByID(id int) (T, error) {
	var zero T
	recs, err := r.store.Load()
	if err != nil {
		return zero, err
	}
	for _, rec := range recs {
		if rec.GetID() == id {
			return rec, nil
		}
	}
	return zero, fmt.Errorf("%s %w", r.kind, ErrNotFound)
}

// Find returns the first record matching pred. A miss is not an error; the
// boolean distinguishes "absent during a uniqueness check" from a failed
// required fetch.
func (r *Repository[T]) Find(pred func(T) bool) (T, bool, error) {
	var zero T
	recs, err := r.store.Load()
	if err != nil {
		return zero, false, err
	}
	for _, rec := range recs {
		if pred(rec) {
			return rec, true, nil
		}
	}
	return zero, false, nil
}

// Update merges patch onto the record with the given ID, re-validates, and
// persists the full set with the entry replaced in place. The record's ID is
// immutable; an "id" key in the patch is ignored.
func (r *Repository[T]) Update(id int, patch map[string]any) (T, error) {
	var zero T
	var updated T
	_, err := r.store.Mutate(func(recs []T) ([]T, error) {
		for i, rec := range recs {
			if rec.GetID() != id {
				continue
			}
			if err := applyPatch(rec, patch); err != nil {
				return nil, err
			}
			if err := rec.Validate(); err != nil {
				return nil, err
			}
			updated = rec
			recs[i] = rec
			return recs, nil
		}
		return nil, fmt.Errorf("%s %w", r.kind, ErrNotFound)
	})
	if err != nil {
		return zero, err
	}
	return updated, nil
}

// Modify applies mutate to the record with the given ID inside a single
// store critical section: read, change, re-validate, and save all happen
// under one lock acquisition, so a transform computed from the current state
// (such as flipping a flag) cannot be lost to a concurrent writer. The
// record's ID is immutable; changes to it are discarded.
func (r *Repository[T]) Modify(id int, mutate func(T) error) (T, error) {
	var zero T
	var updated T
	_, err := r.store.Mutate(func(recs []T) ([]T, error) {
		for i, rec := range recs {
			if rec.GetID() != id {
				continue
			}
			if err := mutate(rec); err != nil {
				return nil, err
			}
			rec.SetID(id)
			if err := rec.Validate(); err != nil {
				return nil, err
			}
			updated = rec
			recs[i] = rec
			return recs, nil
		}
		return nil, fmt.Errorf("%s %w", r.kind, ErrNotFound)
	})
	if err != nil {
		return zero, err
	}
	return updated, nil
}

// Delete removes the record with the given ID and returns what remains, in
// order. Returning the remaining collection (not the removed record) is part
// of the repository's contract; the DELETE endpoint exposes it directly.
func (r *Repository[T]) Delete(id int) ([]T, error) {
	return r.store.Mutate(func(recs []T) ([]T, error) {
		for i, rec := range recs {
			if rec.GetID() == id {
				return append(recs[:i], recs[i+1:]...), nil
			}
		}
		return nil, fmt.Errorf("%s %w", r.kind, ErrNotFound)
	})
}

// applyPatch overlays patch fields onto rec via a JSON round-trip: the
// record is flattened to a field map, patch keys are merged over it, and the
// merged map is decoded back into the record. Unknown patch keys are
// silently dropped by the decode.
func applyPatch(rec entity.Record, patch map[string]any) error {
	raw, err := json.Marshal(rec)
	if err != nil {
		return err
	}
	var fields map[string]any
	if err := json.Unmarshal(raw, &fields); err != nil {
		return err
	}
	id := rec.GetID()
	for k, v := range patch {
		fields[k] = v
	}
	merged, err := json.Marshal(fields)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(merged, rec); err != nil {
		return &entity.ValidationError{Message: fmt.Sprintf("invalid patch: %v", err)}
	}
	rec.SetID(id)
	return nil
}
