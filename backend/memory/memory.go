/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

// Package memory provides an in-process implementation of the backend
// contract for tests and ephemeral use
package memory

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/suparena/polystore/backend"
	"github.com/suparena/polystore/errors"
)

// BackendName identifies this adapter in capability reports and errors.
const BackendName = "memory"

// Store keeps rows in nested maps guarded by a single RWMutex. Rows are
// addressed by a canonical key string derived from the key mapping, so two
// key mappings with the same fields in different insertion order hit the
// same row: order matters when rendering statements, not for row identity.
//
// The store does not implement the range extension; callers probing for
// backend.RangeCapable will not find it here.
type Store struct {
	mu     sync.RWMutex
	tables map[string]map[string]backend.Mapping

	insertError error
	updateError error
	deleteError error
	findError   error
}

var _ backend.Backend = (*Store)(nil)

// NewStore creates an empty in-memory store.
func NewStore() *Store {
	return &Store{
		tables: make(map[string]map[string]backend.Mapping),
	}
}

// WithInsertError makes Insert operations return an error
func (s *Store) WithInsertError(err error) *Store {
	s.insertError = err
	return s
}

// WithUpdateError makes Update operations return an error
func (s *Store) WithUpdateError(err error) *Store {
	s.updateError = err
	return s
}

// WithDeleteError makes Delete operations return an error
func (s *Store) WithDeleteError(err error) *Store {
	s.deleteError = err
	return s
}

// WithFindError makes Find operations return an error
func (s *Store) WithFindError(err error) *Store {
	s.findError = err
	return s
}

// Name returns the fixed backend identifier.
func (s *Store) Name() string {
	return BackendName
}

// Capabilities reports the in-memory profile: updates merge field by field,
// and keys may be single or composite.
func (s *Store) Capabilities() backend.Capabilities {
	return backend.Capabilities{
		SupportsPartialUpdates:       true,
		SupportsCompositePrimaryKeys: true,
		RequiresCompositePrimaryKeys: false,
	}
}

// Insert writes the full row (key and data fields). Inserting an existing
// key overwrites the prior row, matching the upsert behavior of the engine
// adapters.
func (s *Store) Insert(ctx context.Context, storageName string, key, data backend.Mapping) error {
	if s.insertError != nil {
		return s.insertError
	}
	if err := checkInput(storageName, key); err != nil {
		return err
	}

	row := key.Clone()
	for _, p := range data {
		row = row.Set(p.Name, p.Value)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	table := s.tables[storageName]
	if table == nil {
		table = make(map[string]backend.Mapping)
		s.tables[storageName] = table
	}
	table[rowKey(key)] = row
	return nil
}

// Update merges the data fields into the addressed row, creating it when
// absent. Fields not named in data keep their stored values; this is the
// partial-update behavior the capability report advertises.
func (s *Store) Update(ctx context.Context, storageName string, key, data backend.Mapping) error {
	if s.updateError != nil {
		return s.updateError
	}
	if err := checkInput(storageName, key); err != nil {
		return err
	}
	if len(data) == 0 {
		return errors.NewValidationError("data", "empty data mapping for update")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	table := s.tables[storageName]
	if table == nil {
		table = make(map[string]backend.Mapping)
		s.tables[storageName] = table
	}

	k := rowKey(key)
	row, ok := table[k]
	if !ok {
		row = key.Clone()
	} else {
		row = row.Clone()
	}
	for _, p := range data {
		row = row.Set(p.Name, p.Value)
	}
	table[k] = row
	return nil
}

// Delete removes the addressed row. Deleting an absent key is a no-op.
func (s *Store) Delete(ctx context.Context, storageName string, key backend.Mapping) error {
	if s.deleteError != nil {
		return s.deleteError
	}
	if err := checkInput(storageName, key); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if table := s.tables[storageName]; table != nil {
		delete(table, rowKey(key))
	}
	return nil
}

// Find returns the addressed row's data fields, with the key fields
// stripped. The result is a copy; mutating it does not touch the store.
func (s *Store) Find(ctx context.Context, storageName string, key backend.Mapping) (backend.Mapping, error) {
	if s.findError != nil {
		return nil, s.findError
	}
	if err := checkInput(storageName, key); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	table := s.tables[storageName]
	if table == nil {
		return nil, errors.NewNotFoundError(storageName, key.String())
	}
	row, ok := table[rowKey(key)]
	if !ok {
		return nil, errors.NewNotFoundError(storageName, key.String())
	}
	return row.Without(key.Names()...), nil
}

// Helper methods for testing

// Count returns the number of rows stored under storageName.
func (s *Store) Count(storageName string) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.tables[storageName])
}

// Clear removes all rows from all storages.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tables = make(map[string]map[string]backend.Mapping)
}

func checkInput(storageName string, key backend.Mapping) error {
	if storageName == "" {
		return errors.NewValidationError("storageName", "empty storage name")
	}
	if len(key) == 0 {
		return errors.NewValidationError("key", "empty key mapping")
	}
	return nil
}

// rowKey canonicalizes a key mapping into a map key. Fields are sorted by
// name so insertion order does not change row identity.
func rowKey(key backend.Mapping) string {
	parts := make([]string, len(key))
	for i, p := range key {
		parts[i] = fmt.Sprintf("%s=%v", p.Name, p.Value)
	}
	sort.Strings(parts)
	return strings.Join(parts, "|")
}
