/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package metadata

import (
	"reflect"
	"sync"
)

// Process-wide registry of Go types and their storage maps.

var (
	storageMapRegistry = make(map[reflect.Type]StorageMap)
	mu                 sync.RWMutex
)

// RegisterStorageMap associates a Go type T with its storage map.
// Registering the same type again replaces the earlier map.
func RegisterStorageMap[T any](m StorageMap) {
	var zero T
	t := reflect.TypeOf(zero)

	mu.Lock()
	defer mu.Unlock()
	storageMapRegistry[t] = m
}

// GetStorageMap retrieves the storage map for type T, if any.
func GetStorageMap[T any]() (StorageMap, bool) {
	var zero T
	t := reflect.TypeOf(zero)

	mu.RLock()
	defer mu.RUnlock()
	m, ok := storageMapRegistry[t]
	return m, ok
}
