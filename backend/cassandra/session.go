/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package cassandra

import (
	"context"

	"github.com/suparena/polystore/backend"
)

// Session is the executor this adapter runs CQL through. It is injected and
// owned by the caller: the adapter performs no connection management,
// authentication, or retry against it, and is safe for concurrent use only
// insofar as the session is. A driver session (gocql or comparable) is
// wrapped into this contract at wiring time.
type Session interface {
	// Prepare parses a CQL query template with positional ? placeholders.
	Prepare(ctx context.Context, query string) (PreparedStatement, error)
}

// PreparedStatement is a parsed query template ready for positional binding.
type PreparedStatement interface {
	// Exec binds args in placeholder order and runs the statement for its
	// side effects.
	Exec(ctx context.Context, args ...any) error

	// Query binds args in placeholder order and returns the statement's
	// rows.
	Query(ctx context.Context, args ...any) (ResultSet, error)
}

// ResultSet iterates result rows in the order the engine returned them.
type ResultSet interface {
	// Next returns the next row as column name/value pairs, or false when
	// the set is exhausted or iteration failed.
	Next() (backend.Mapping, bool)

	// Close releases the result set and reports any iteration fault.
	Close() error
}
