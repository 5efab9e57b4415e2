/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

// Package sqlite adapts SQLite databases to the backend contract through
// database/sql and the pure-Go modernc.org/sqlite driver.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"

	"github.com/suparena/polystore/backend"
	"github.com/suparena/polystore/errors"
)

// BackendName identifies this adapter in capability reports and errors.
const BackendName = "sqlite"

// Store runs mapping-level row operations against a SQL database. Schema
// management stays with the caller: tables must exist, with a primary key
// covering exactly the fields the key mappings will carry.
//
// Statements are prepared per call through the database/sql pool. Like the
// in-memory store, this adapter does not implement the range extension.
type Store struct {
	db *sql.DB
}

var _ backend.Backend = (*Store)(nil)

// NewStore wraps an existing database handle. The caller keeps ownership
// of the handle's lifecycle.
func NewStore(db *sql.DB) (*Store, error) {
	if db == nil {
		return nil, errors.NewValidationError("db", "nil database handle")
	}
	return &Store{db: db}, nil
}

// Open opens a SQLite database at the given DSN and wraps it. Use
// "file:name?mode=memory&cache=shared" for a shared in-memory database.
func Open(dsn string) (*Store, error) {
	if dsn == "" {
		return nil, errors.NewValidationError("dsn", "empty DSN")
	}
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite %q: %w", dsn, err)
	}
	return &Store{db: db}, nil
}

// Close closes the underlying database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

// Name returns the fixed backend identifier.
func (s *Store) Name() string {
	return BackendName
}

// Capabilities reports the relational profile: UPDATE touches only the
// named columns, and multi-column primary keys are fine but not required.
func (s *Store) Capabilities() backend.Capabilities {
	return backend.Capabilities{
		SupportsPartialUpdates:       true,
		SupportsCompositePrimaryKeys: true,
		RequiresCompositePrimaryKeys: false,
	}
}

// Insert writes one row, overwriting any prior row under the same key. The
// relational engine would reject a duplicate primary key, so the statement
// is rendered as an upsert to keep the contract's overwrite semantics.
func (s *Store) Insert(ctx context.Context, storageName string, key, data backend.Mapping) error {
	query, args, err := buildUpsert(storageName, key, data)
	if err != nil {
		return err
	}
	return s.exec(ctx, query, args)
}

// Update rewrites the named data columns of the addressed row. Updating an
// absent row affects nothing and succeeds.
func (s *Store) Update(ctx context.Context, storageName string, key, data backend.Mapping) error {
	query, args, err := buildUpdate(storageName, key, data)
	if err != nil {
		return err
	}
	return s.exec(ctx, query, args)
}

// Delete removes the addressed row; deleting an absent key succeeds.
func (s *Store) Delete(ctx context.Context, storageName string, key backend.Mapping) error {
	query, args, err := buildDelete(storageName, key)
	if err != nil {
		return err
	}
	return s.exec(ctx, query, args)
}

// Find reads the addressed row and returns its data columns with the key
// columns stripped. Column values carry the driver's scan types (int64,
// float64, string, []byte, nil).
func (s *Store) Find(ctx context.Context, storageName string, key backend.Mapping) (backend.Mapping, error) {
	query, args, err := buildSelect(storageName, key)
	if err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("execute %q: %w", query, err)
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return nil, fmt.Errorf("execute %q: %w", query, err)
		}
		return nil, errors.NewNotFoundError(storageName, key.String())
	}

	columns, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("execute %q: %w", query, err)
	}
	values := make([]any, len(columns))
	targets := make([]any, len(columns))
	for i := range values {
		targets[i] = &values[i]
	}
	if err := rows.Scan(targets...); err != nil {
		return nil, fmt.Errorf("scan row from %q: %w", storageName, err)
	}

	row := backend.Mapping{}
	for i, column := range columns {
		row = row.Add(column, values[i])
	}
	return row.Without(key.Names()...), nil
}

func (s *Store) exec(ctx context.Context, query string, args []any) error {
	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("execute %q: %w", query, err)
	}
	return nil
}
