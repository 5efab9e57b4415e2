/*
Package cassandra adapts column-family engines speaking CQL to the
backend contract.

The adapter is a statement translator: each operation renders a CQL
template with positional ? placeholders from the caller's key and data
mappings, prepares it through an injected Session, and binds the mapping
values in placeholder order. Field order is load-bearing end to end, since
the mappings' insertion order decides column order in the template and
argument order in the bind:

	key  := backend.Mapping{}.Add("id", 7)
	data := backend.Mapping{}.Add("name", "Ann").Add("age", 30)

	stmt, _ := cassandra.BuildInsert("users", key, data)
	// stmt.Query: INSERT INTO users (id, name, age) VALUES (?, ?, ?)
	// stmt.Args:  [7 Ann 30]

Storage and column names are interpolated into templates verbatim; they
must come from trusted metadata. Values never appear in query text.

The Store implements backend.RangeCapable but refuses every range call
with an unsupported-operation error: the capability is declared, not yet
delivered. Session lifecycle, retries and consistency tuning stay with
the caller that owns the session.
*/
package cassandra
