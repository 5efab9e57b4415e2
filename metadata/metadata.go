/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package metadata

import (
	"fmt"

	"github.com/suparena/polystore/backend"
	"github.com/suparena/polystore/errors"
)

// StorageMap describes where one entity type's rows live: the storage unit
// name the backend addresses, and the fields that form the primary key.
// Key field order is load-bearing (partition key first, further key fields
// after) because key mappings built from it feed positional statement
// binding.
type StorageMap struct {
	StorageName string
	KeyFields   []string
}

// Validate checks the storage map against a backend's capability report.
// It catches key-shape mismatches before any row operation runs: a
// composite key aimed at a backend without composite support, or a
// single-field key aimed at a backend that requires composite keys.
func (m StorageMap) Validate(caps backend.Capabilities) error {
	if m.StorageName == "" {
		return errors.NewValidationError("storageName", "empty storage name")
	}
	if len(m.KeyFields) == 0 {
		return errors.NewValidationError("keyFields", "no key fields declared")
	}
	for i, field := range m.KeyFields {
		if field == "" {
			return errors.NewValidationError("keyFields", fmt.Sprintf("empty key field at position %d", i))
		}
	}

	if len(m.KeyFields) > 1 && !caps.SupportsCompositePrimaryKeys {
		return errors.NewValidationError("keyFields",
			fmt.Sprintf("storage %q declares a composite key but the backend does not support composite primary keys", m.StorageName))
	}
	if len(m.KeyFields) == 1 && caps.RequiresCompositePrimaryKeys {
		return errors.NewValidationError("keyFields",
			fmt.Sprintf("storage %q declares a single-field key but the backend requires composite primary keys", m.StorageName))
	}
	return nil
}

// KeyMapping builds a key mapping from key values given in declaration
// order. The mapping pairs each declared key field with its value, in the
// order the storage map declares them.
func (m StorageMap) KeyMapping(values ...any) (backend.Mapping, error) {
	if len(values) != len(m.KeyFields) {
		return nil, errors.NewValidationError("key",
			fmt.Sprintf("storage %q expects %d key value(s), got %d", m.StorageName, len(m.KeyFields), len(values)))
	}

	key := backend.Mapping{}
	for i, field := range m.KeyFields {
		key = key.Add(field, values[i])
	}
	return key, nil
}
