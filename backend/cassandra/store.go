/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package cassandra

import (
	"context"
	"fmt"

	"github.com/suparena/polystore/backend"
	"github.com/suparena/polystore/errors"
)

// BackendName identifies this adapter in capability reports and errors.
const BackendName = "cassandra"

// Store translates mapping-level row operations into CQL statements and
// runs them through an injected Session. Every operation builds its
// statement fresh, prepares it, and binds arguments positionally; nothing
// is cached between calls.
type Store struct {
	session Session
}

var (
	_ backend.Backend      = (*Store)(nil)
	_ backend.RangeCapable = (*Store)(nil)
)

// NewStore returns a Store bound to the given session.
func NewStore(session Session) (*Store, error) {
	if session == nil {
		return nil, errors.NewValidationError("session", "nil session")
	}
	return &Store{session: session}, nil
}

// Name returns the fixed backend identifier.
func (s *Store) Name() string {
	return BackendName
}

// Capabilities reports the column-family profile. Partial updates are off:
// the engine applies per-column assignments as blind writes, not read-
// modify-write merges, so an update must carry every field the caller
// means to change. Composite primary keys are supported but a single-field
// key is equally valid.
func (s *Store) Capabilities() backend.Capabilities {
	return backend.Capabilities{
		SupportsPartialUpdates:       false,
		SupportsCompositePrimaryKeys: true,
		RequiresCompositePrimaryKeys: false,
	}
}

// Insert writes one row. Engines in this family upsert on INSERT: a second
// insert with the same key overwrites the prior row without error.
func (s *Store) Insert(ctx context.Context, storageName string, key, data backend.Mapping) error {
	stmt, err := BuildInsert(storageName, key, data)
	if err != nil {
		return err
	}
	return s.exec(ctx, stmt)
}

// Update rewrites the addressed row's data columns. The engine does not
// report whether the row existed; an update to an absent key succeeds at
// this layer.
func (s *Store) Update(ctx context.Context, storageName string, key, data backend.Mapping) error {
	stmt, err := BuildUpdate(storageName, key, data)
	if err != nil {
		return err
	}
	return s.exec(ctx, stmt)
}

// Delete removes the addressed row. Deleting an absent key succeeds;
// delete is idempotent.
func (s *Store) Delete(ctx context.Context, storageName string, key backend.Mapping) error {
	stmt, err := BuildDelete(storageName, key)
	if err != nil {
		return err
	}
	return s.exec(ctx, stmt)
}

// Find reads the row addressed by key and returns its data columns, with
// the key columns stripped. An empty result set yields a not-found error
// carrying the storage name and key.
func (s *Store) Find(ctx context.Context, storageName string, key backend.Mapping) (backend.Mapping, error) {
	stmt, err := BuildSelect(storageName, key)
	if err != nil {
		return nil, err
	}

	ps, err := s.session.Prepare(ctx, stmt.Query)
	if err != nil {
		return nil, fmt.Errorf("prepare %q: %w", stmt.Query, err)
	}
	rs, err := ps.Query(ctx, stmt.Args...)
	if err != nil {
		return nil, fmt.Errorf("execute %q: %w", stmt.Query, err)
	}

	row, ok := rs.Next()
	if !ok {
		// An empty set and an iteration fault both surface as !ok; Close
		// tells them apart.
		if cerr := rs.Close(); cerr != nil {
			return nil, fmt.Errorf("execute %q: %w", stmt.Query, cerr)
		}
		return nil, errors.NewNotFoundError(storageName, key.String())
	}
	// First row is in hand; later rows and their faults are ignored.
	_ = rs.Close()

	return row.Without(key.Names()...), nil
}

// ExecuteRangeQuery declares the range-scan extension for this adapter but
// does not deliver it yet: every call fails with an unsupported-operation
// error. Callers that probe for backend.RangeCapable will find this
// backend present and refusing, which is distinct from a backend that does
// not implement the interface at all.
func (s *Store) ExecuteRangeQuery(ctx context.Context, query, storageName string, key backend.Mapping, hydrate backend.RowHydrator) (<-chan backend.RangeResult, error) {
	return nil, errors.NewUnsupportedError(BackendName, "range queries")
}

// exec prepares and runs a side-effecting statement.
func (s *Store) exec(ctx context.Context, stmt Statement) error {
	ps, err := s.session.Prepare(ctx, stmt.Query)
	if err != nil {
		return fmt.Errorf("prepare %q: %w", stmt.Query, err)
	}
	if err := ps.Exec(ctx, stmt.Args...); err != nil {
		return fmt.Errorf("execute %q: %w", stmt.Query, err)
	}
	return nil
}
