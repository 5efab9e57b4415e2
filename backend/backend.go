/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package backend

import "context"

// Backend is the uniform contract a storage engine adapter implements so that
// a mapping layer can perform key/value persistence without knowing the
// engine's query syntax. Implementations are stateless translators: each call
// builds one engine operation, runs it through the engine's session or client,
// and translates the outcome. Storage names and field names are interpolated
// into engine statements verbatim; only well-formed, schema-derived
// identifiers may be passed in.
type Backend interface {
	// Insert writes one row addressed by key, carrying the data fields.
	// Columns are bound key fields first, then data fields, each in mapping
	// order. Inserts are unconditional upserts: no existence check is made
	// and an existing row is overwritten.
	Insert(ctx context.Context, storageName string, key, data Mapping) error

	// Update rewrites the data fields of the row addressed by key. Data
	// values bind before key values. Every data field must be a non-key
	// field; the adapter emits an assignment for whatever it is given.
	// An empty data mapping is a caller error.
	Update(ctx context.Context, storageName string, key, data Mapping) error

	// Delete removes the row addressed by key. Deleting an absent row is
	// not an error at this layer.
	Delete(ctx context.Context, storageName string, key Mapping) error

	// Find returns the non-key fields of the row addressed by key. A key
	// matching no row fails with errors.ErrNotFound; an empty mapping is
	// never returned in place of absence. Rows beyond the first are
	// ignored: the key is assumed to address at most one logical row.
	Find(ctx context.Context, storageName string, key Mapping) (Mapping, error)

	// Name returns the fixed engine tag used for diagnostics and backend
	// registration. Constant for the life of the process.
	Name() string

	// Capabilities reports the backend's fixed feature flags. Pure and
	// invariant for the lifetime of the instance; callers may cache the
	// result.
	Capabilities() Capabilities
}

// Capabilities are the static feature flags a backend reports so the mapping
// layer can validate a metadata configuration before any operation runs. The
// adapters themselves never check key shapes against these flags.
type Capabilities struct {
	// SupportsPartialUpdates reports whether an update may carry a subset
	// of the row's fields as a field-level patch distinct from a full
	// replacement.
	SupportsPartialUpdates bool

	// SupportsCompositePrimaryKeys reports whether multi-field keys
	// (partition key plus clustering columns) are accepted.
	SupportsCompositePrimaryKeys bool

	// RequiresCompositePrimaryKeys reports whether single-field keys are
	// rejected by the engine's schema model.
	RequiresCompositePrimaryKeys bool
}
