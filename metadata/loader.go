/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package metadata

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/suparena/polystore/errors"
)

// storageMapDoc is the YAML shape of one storage map entry:
//
//	User:
//	  storage: users
//	  key: [id]
//	Event:
//	  storage: events
//	  key: [tenant, id]
type storageMapDoc struct {
	Storage string   `yaml:"storage"`
	Key     []string `yaml:"key"`
}

// Load reads storage map declarations from YAML and returns them keyed by
// entity name. The caller binds each entry to its Go type with
// RegisterStorageMap; the file only declares names and key shapes.
func Load(r io.Reader) (map[string]StorageMap, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read storage map document: %w", err)
	}

	docs := map[string]storageMapDoc{}
	if err := yaml.Unmarshal(raw, &docs); err != nil {
		return nil, fmt.Errorf("failed to parse storage map document: %w", err)
	}

	maps := make(map[string]StorageMap, len(docs))
	for name, doc := range docs {
		if name == "" {
			return nil, errors.NewValidationError("entity", "empty entity name")
		}
		m := StorageMap{StorageName: doc.Storage, KeyFields: doc.Key}
		if m.StorageName == "" {
			return nil, errors.NewValidationError(name, "missing storage name")
		}
		if len(m.KeyFields) == 0 {
			return nil, errors.NewValidationError(name, "missing key fields")
		}
		maps[name] = m
	}
	return maps, nil
}

// LoadFile reads storage map declarations from a YAML file.
func LoadFile(path string) (map[string]StorageMap, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open storage map file %q: %w", path, err)
	}
	defer f.Close()
	return Load(f)
}
