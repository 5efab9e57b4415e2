/*
Package metadata declares where entity types live and how their rows are
keyed.

A StorageMap names the storage unit and the ordered key fields for one
entity type. Maps can be built in code or loaded from YAML, and are
bound to Go types through a process-wide registry:

	maps, err := metadata.LoadFile("storagemaps.yaml")
	if err != nil {
	    return err
	}
	metadata.RegisterStorageMap[User](maps["User"])

	m, _ := metadata.GetStorageMap[User]()
	key, err := m.KeyMapping(7)
	row, err := store.Find(ctx, m.StorageName, key)

Validate checks a map against a backend's capability report before any
row operation runs, so key-shape mismatches fail at wiring time instead
of mid-request.
*/
package metadata
