/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package backend

import "context"

// RowHydrator converts a raw result row into a caller-defined value. Range
// queries apply it per row; a hydration failure is reported on that row's
// RangeResult without ending the sequence.
type RowHydrator func(row Mapping) (any, error)

// RangeResult is one element of a range-query result sequence.
type RangeResult struct {
	// Item is the hydrated value, or the raw row when no hydrator was
	// supplied.
	Item any

	// Row holds the raw column name/value pairs as returned by the engine.
	Row Mapping

	// Err reports a row-level failure. A result carrying a query-level
	// fault is the last element of the sequence.
	Err error
}

// RangeCapable is the optional extension a backend implements to support
// scans over a partition. Callers branch on capability presence, never on
// backend identity:
//
//	if rc, ok := be.(backend.RangeCapable); ok {
//	    results, err := rc.ExecuteRangeQuery(ctx, cond, "events", key, nil)
//	    ...
//	}
//
// A backend may declare the capability and still refuse every call with
// errors.ErrUnsupported; that is distinct from not declaring it at all.
type RangeCapable interface {
	// ExecuteRangeQuery runs an engine-specific range expression over the
	// partition addressed by key and lazily yields hydrated rows. The query
	// string is interpreted by the backend and never parsed by callers.
	// The returned channel is closed when the scan completes, fails, or ctx
	// is done. A nil hydrate leaves each result's Item as the raw row.
	ExecuteRangeQuery(ctx context.Context, query, storageName string, key Mapping, hydrate RowHydrator) (<-chan RangeResult, error)
}
