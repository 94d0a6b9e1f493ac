package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/brickset/brickset/catalog/internal/source"
	"github.com/brickset/brickset/pkg/types"
)

// ErrLoad matches every *LoadError with errors.Is.
var ErrLoad = errors.New("dataset load failed")

// LoadError reports that a dataset resource could not be found, read or
// decoded into records. A failed load leaves no usable Store.
type LoadError struct {
	Resource string
	Err      error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("load %q: %v", e.Resource, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

// Is makes errors.Is(err, ErrLoad) true for any LoadError.
func (e *LoadError) Is(target error) bool { return target == ErrLoad }

// Store is an ordered, read-only snapshot of catalog records.
type Store struct {
	sets     []types.LegoSet
	resource string
	loadedAt time.Time
}

// New returns a Store holding a copy of sets, in order.
func New(sets []types.LegoSet) *Store {
	return &Store{
		sets:     slices.Clone(sets),
		resource: "memory",
		loadedAt: time.Now().UTC(),
	}
}

// Load reads src once and decodes it as a JSON array of records.
// Any failure is returned as a *LoadError; there is no partial load.
func Load(ctx context.Context, src source.Source) (*Store, error) {
	rc, err := src.Open(ctx)
	if err != nil {
		return nil, &LoadError{Resource: src.Name(), Err: err}
	}
	defer rc.Close()

	var sets []types.LegoSet
	dec := json.NewDecoder(rc)
	if err := dec.Decode(&sets); err != nil {
		return nil, &LoadError{Resource: src.Name(), Err: fmt.Errorf("decode: %w", err)}
	}
	if sets == nil {
		// A literal null decodes without error but is not an array.
		return nil, &LoadError{Resource: src.Name(), Err: errors.New("decode: top-level value is not an array")}
	}
	if dec.More() {
		return nil, &LoadError{Resource: src.Name(), Err: errors.New("decode: trailing data after array")}
	}

	return &Store{
		sets:     sets,
		resource: src.Name(),
		loadedAt: time.Now().UTC(),
	}, nil
}

// All returns the full snapshot in load order. Callers must not modify it.
func (s *Store) All() []types.LegoSet {
	return s.sets
}

// Len returns the number of records.
func (s *Store) Len() int {
	return len(s.sets)
}

// Resource returns the name of the resource the snapshot was loaded from.
func (s *Store) Resource() string {
	return s.resource
}

// LoadedAt returns when the snapshot was built.
func (s *Store) LoadedAt() time.Time {
	return s.loadedAt
}

// Live holds the current snapshot. It is safe for concurrent use.
type Live struct {
	mu  sync.RWMutex
	cur *Store
}

// NewLive returns a Live whose current snapshot is s.
func NewLive(s *Store) *Live {
	return &Live{cur: s}
}

// Current returns the current snapshot.
func (l *Live) Current() *Store {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.cur
}

// Replace makes s the current snapshot and returns the previous one.
func (l *Live) Replace(s *Store) *Store {
	l.mu.Lock()
	defer l.mu.Unlock()
	prev := l.cur
	l.cur = s
	return prev
}
