// Package store persists records as a single JSON array file per record
// kind. Every mutation rewrites the whole array: read the file, change the
// in-memory slice, write it back with a temp-file-then-rename so the file is
// never observed half-written. A per-store mutex serializes the
// load-mutate-save cycle so concurrent adds cannot compute the same ID and
// clobber each other.
package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"reflect"
	"sync"

	"github.com/alfagnish/bookshelf/internal/entity"
)

// CorruptError means the backing file is not a valid JSON array of records.
type CorruptError struct {
	Path string
	Err  error
}

func (e *CorruptError) Error() string {
	return fmt.Sprintf("store %s is corrupt: %v", e.Path, e.Err)
}

func (e *CorruptError) Unwrap() error { return e.Err }

// IOError means a filesystem operation on the backing file failed. The
// target file is left either fully old or fully new, never partial.
type IOError struct {
	Op   string
	Path string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("store %s: %s: %v", e.Path, e.Op, e.Err)
}

func (e *IOError) Unwrap() error { return e.Err }

// Store owns one JSON array file. All methods are safe for concurrent use.
type Store[T entity.Record] struct {
	path string
	mu   sync.Mutex
}

// Open prepares the store at path, creating parent directories and an empty
// array file when absent. Opening an existing file leaves it untouched.
func Open[T entity.Record](path string) (*Store[T], error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, &IOError{Op: "mkdir", Path: path, Err: err}
	}
	s := &Store[T]{path: path}
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		if err := s.write(nil); err != nil {
			return nil, err
		}
	} else if err != nil {
		return nil, &IOError{Op: "stat", Path: path, Err: err}
	}
	return s, nil
}

// Load reads and validates the full record array, insertion order preserved.
func (s *Store[T]) Load() ([]T, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.read()
}

// Save atomically replaces the backing file with the given records.
func (s *Store[T]) Save(recs []T) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.write(recs)
}

// Mutate runs fn over the loaded records and saves its result, all under the
// store lock. When fn returns an error nothing is written and the error is
// returned as-is. The saved slice is returned.
func (s *Store[T]) Mutate(fn func(recs []T) ([]T, error)) ([]T, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	recs, err := s.read()
	if err != nil {
		return nil, err
	}
	out, err := fn(recs)
	if err != nil {
		return nil, err
	}
	if err := s.write(out); err != nil {
		return nil, err
	}
	return out, nil
}

// NextID loads the store and returns the next free identifier.
func (s *Store[T]) NextID() (int, error) {
	recs, err := s.Load()
	if err != nil {
		return 0, err
	}
	return NextID(recs), nil
}

// NextID returns 1 for an empty set, otherwise the highest ID plus one. This
// is recomputed from the full record set, not a persisted counter, so it must
// only be called while the store lock is held (see Mutate).
func NextID[T entity.Record](recs []T) int {
	next := 1
	for _, r := range recs {
		if r.GetID() >= next {
			next = r.GetID() + 1
		}
	}
	return next
}

func (s *Store[T]) read() ([]T, error) {
	raw, err := os.ReadFile(s.path)
	if err != nil {
		return nil, &IOError{Op: "read", Path: s.path, Err: err}
	}
	var recs []T
	if err := json.Unmarshal(raw, &recs); err != nil {
		return nil, &CorruptError{Path: s.path, Err: err}
	}
	for i, r := range recs {
		if v := reflect.ValueOf(r); v.Kind() == reflect.Pointer && v.IsNil() {
			return nil, &CorruptError{Path: s.path, Err: fmt.Errorf("record %d is null", i)}
		}
		if err := r.Validate(); err != nil {
			return nil, &CorruptError{Path: s.path, Err: fmt.Errorf("record %d: %w", i, err)}
		}
	}
	if recs == nil {
		recs = make([]T, 0)
	}
	return recs, nil
}

func (s *Store[T]) write(recs []T) error {
	if recs == nil {
		recs = make([]T, 0)
	}
	raw, err := json.Marshal(recs)
	if err != nil {
		return &IOError{Op: "encode", Path: s.path, Err: err}
	}
	dir := filepath.Dir(s.path)
	tmp, err := os.CreateTemp(dir, ".bookshelf-*.tmp")
	if err != nil {
		return &IOError{Op: "create temp", Path: s.path, Err: err}
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(raw); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return &IOError{Op: "write", Path: s.path, Err: err}
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return &IOError{Op: "sync", Path: s.path, Err: err}
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return &IOError{Op: "close", Path: s.path, Err: err}
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		return &IOError{Op: "rename", Path: s.path, Err: err}
	}
	return nil
}
