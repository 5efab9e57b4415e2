/*
Package polystore provides a uniform storage abstraction for Go applications,
offering keyed row operations with a single contract across heterogeneous
storage engines.

Every backend implements the same row operations (Insert, Update, Delete,
Find) over ordered field mappings, and reports a fixed set of capability
flags so callers can branch on what an engine can actually do instead of
guessing from its name. Optional extensions such as range
queries are separate interfaces a backend may or may not implement.

Key Features:
  - One contract for column-family, relational, document and in-memory engines
  - Ordered field mappings that drive statement generation deterministically
  - Capability flags for partial updates and composite-key support
  - Optional range-query extension with lazy, channel-based iteration
  - Semantic error types for better error handling
  - Storage metadata with YAML loading and capability validation
  - Thread-safe backend registry

Basic Usage:

	// Create a registry and register backends under deployment roles
	reg := polystore.NewRegistry()
	reg.RegisterBackend("primary", cassandraStore)
	reg.RegisterBackend("cache", memory.NewStore())

	// Use the uniform contract
	b, _ := reg.GetBackend("primary")
	key := backend.Mapping{}.Add("id", 7)
	data := backend.Mapping{}.Add("name", "Ann").Add("age", 30)
	err := b.Insert(ctx, "users", key, data)

	// Branch on declared capabilities, not engine names
	if b.Capabilities().SupportsPartialUpdates {
	    err = b.Update(ctx, "users", key, backend.Mapping{}.Add("age", 31))
	}

For more information, see the documentation at https://github.com/suparena/polystore
*/
package polystore
