/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package cassandra

import (
	"strings"

	"github.com/suparena/polystore/backend"
	"github.com/suparena/polystore/errors"
)

// Statement is a CQL query template with ? placeholders and the argument
// slice that binds to them, in placeholder order. Statements are plain
// values: building one performs no I/O and holds no session state.
type Statement struct {
	Query string
	Args  []any
}

// BuildInsert renders an INSERT for one row. Columns list the key fields
// first, then the data fields, each preserving its mapping's insertion
// order; Args carries the values in the same order.
//
// Storage and column names are interpolated into the template verbatim.
// They must come from trusted metadata, never from user input; only values
// pass through placeholders.
//
// A key-only insert (empty data) is legal and writes a row that has no
// non-key columns.
func BuildInsert(storageName string, key, data backend.Mapping) (Statement, error) {
	if err := checkStatementInput(storageName, key); err != nil {
		return Statement{}, err
	}

	columns := append(key.Names(), data.Names()...)
	args := append(key.Values(), data.Values()...)

	var b strings.Builder
	b.WriteString("INSERT INTO ")
	b.WriteString(storageName)
	b.WriteString(" (")
	b.WriteString(strings.Join(columns, ", "))
	b.WriteString(") VALUES (")
	b.WriteString(placeholders(len(columns)))
	b.WriteString(")")

	return Statement{Query: b.String(), Args: args}, nil
}

// BuildUpdate renders an UPDATE for one row. The SET clause assigns every
// data field in insertion order and the WHERE clause pins every key field
// in insertion order; Args carries all data values first, then all key
// values, matching the placeholder positions.
//
// An empty data mapping is rejected: a SET clause with no assignments is
// not a statement the engine will accept, and the caller-facing contract
// treats it as invalid input rather than a silent no-op.
func BuildUpdate(storageName string, key, data backend.Mapping) (Statement, error) {
	if err := checkStatementInput(storageName, key); err != nil {
		return Statement{}, err
	}
	if len(data) == 0 {
		return Statement{}, errors.NewValidationError("data", "empty data mapping for update")
	}

	var b strings.Builder
	b.WriteString("UPDATE ")
	b.WriteString(storageName)
	b.WriteString(" SET ")
	writeClauses(&b, data.Names(), ", ")
	b.WriteString(" WHERE ")
	writeClauses(&b, key.Names(), " AND ")

	args := append(data.Values(), key.Values()...)
	return Statement{Query: b.String(), Args: args}, nil
}

// BuildDelete renders a DELETE for one row, keyed by every field of the key
// mapping in insertion order.
func BuildDelete(storageName string, key backend.Mapping) (Statement, error) {
	if err := checkStatementInput(storageName, key); err != nil {
		return Statement{}, err
	}

	var b strings.Builder
	b.WriteString("DELETE FROM ")
	b.WriteString(storageName)
	b.WriteString(" WHERE ")
	writeClauses(&b, key.Names(), " AND ")

	return Statement{Query: b.String(), Args: key.Values()}, nil
}

// BuildSelect renders a SELECT * for one row, keyed by every field of the
// key mapping in insertion order. No LIMIT is emitted; the reader takes the
// first row and ignores the rest.
func BuildSelect(storageName string, key backend.Mapping) (Statement, error) {
	if err := checkStatementInput(storageName, key); err != nil {
		return Statement{}, err
	}

	var b strings.Builder
	b.WriteString("SELECT * FROM ")
	b.WriteString(storageName)
	b.WriteString(" WHERE ")
	writeClauses(&b, key.Names(), " AND ")

	return Statement{Query: b.String(), Args: key.Values()}, nil
}

func checkStatementInput(storageName string, key backend.Mapping) error {
	if storageName == "" {
		return errors.NewValidationError("storageName", "empty storage name")
	}
	if len(key) == 0 {
		return errors.NewValidationError("key", "empty key mapping")
	}
	return nil
}

// writeClauses emits "name = ?" for each column, joined by sep.
func writeClauses(b *strings.Builder, columns []string, sep string) {
	for i, column := range columns {
		if i > 0 {
			b.WriteString(sep)
		}
		b.WriteString(column)
		b.WriteString(" = ?")
	}
}

// placeholders returns n comma-separated ? markers.
func placeholders(n int) string {
	if n == 0 {
		return ""
	}
	return strings.Repeat("?, ", n-1) + "?"
}
