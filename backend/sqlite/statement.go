/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package sqlite

import (
	"strings"

	"github.com/suparena/polystore/backend"
	"github.com/suparena/polystore/errors"
)

// The SQL renderers below are this adapter's private dialect. They follow
// the same ordering rules as the column-family adapter (key fields first
// on insert, data values before key values on update), but the insert is
// rendered as INSERT OR REPLACE, because the relational engine would
// reject a duplicate primary key while the backend contract promises
// replacement.

func buildUpsert(storageName string, key, data backend.Mapping) (string, []any, error) {
	if err := checkStatementInput(storageName, key); err != nil {
		return "", nil, err
	}

	columns := append(key.Names(), data.Names()...)
	args := append(key.Values(), data.Values()...)

	var b strings.Builder
	b.WriteString("INSERT OR REPLACE INTO ")
	b.WriteString(storageName)
	b.WriteString(" (")
	b.WriteString(strings.Join(columns, ", "))
	b.WriteString(") VALUES (")
	b.WriteString(placeholders(len(columns)))
	b.WriteString(")")
	return b.String(), args, nil
}

func buildUpdate(storageName string, key, data backend.Mapping) (string, []any, error) {
	if err := checkStatementInput(storageName, key); err != nil {
		return "", nil, err
	}
	if len(data) == 0 {
		return "", nil, errors.NewValidationError("data", "empty data mapping for update")
	}

	var b strings.Builder
	b.WriteString("UPDATE ")
	b.WriteString(storageName)
	b.WriteString(" SET ")
	writeClauses(&b, data.Names(), ", ")
	b.WriteString(" WHERE ")
	writeClauses(&b, key.Names(), " AND ")

	args := append(data.Values(), key.Values()...)
	return b.String(), args, nil
}

func buildDelete(storageName string, key backend.Mapping) (string, []any, error) {
	if err := checkStatementInput(storageName, key); err != nil {
		return "", nil, err
	}

	var b strings.Builder
	b.WriteString("DELETE FROM ")
	b.WriteString(storageName)
	b.WriteString(" WHERE ")
	writeClauses(&b, key.Names(), " AND ")

	return b.String(), key.Values(), nil
}

func buildSelect(storageName string, key backend.Mapping) (string, []any, error) {
	if err := checkStatementInput(storageName, key); err != nil {
		return "", nil, err
	}

	var b strings.Builder
	b.WriteString("SELECT * FROM ")
	b.WriteString(storageName)
	b.WriteString(" WHERE ")
	writeClauses(&b, key.Names(), " AND ")

	return b.String(), key.Values(), nil
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

func writeClauses(b *strings.Builder, columns []string, sep string) {
	for i, column := range columns {
		if i > 0 {
			b.WriteString(sep)
		}
		b.WriteString(column)
		b.WriteString(" = ?")
	}
}

func placeholders(n int) string {
	if n == 0 {
		return ""
	}
	return strings.Repeat("?, ", n-1) + "?"
}
