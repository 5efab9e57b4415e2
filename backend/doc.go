/*
Package backend defines the storage-backend contract of polystore.

The main interface is Backend, which gives a mapping layer uniform CRUD
operations over heterogeneous storage engines:

	type Backend interface {
	    Insert(ctx context.Context, storageName string, key, data Mapping) error
	    Update(ctx context.Context, storageName string, key, data Mapping) error
	    Delete(ctx context.Context, storageName string, key Mapping) error
	    Find(ctx context.Context, storageName string, key Mapping) (Mapping, error)
	    Name() string
	    Capabilities() Capabilities
	}

Rows are addressed by a Mapping: an ordered list of field name/value pairs
whose order determines statement column order and positional argument binding.
Key mappings may be composite (partition key plus clustering columns) when the
backend's Capabilities allow it.

Backends negotiate features through fixed Capability flags rather than
runtime type inspection, and optionally extend the contract by implementing
RangeCapable for partition scans.

Implementations:
  - cassandra: column-family adapter generating CQL statements against an
    injected session
  - sqlite: relational adapter over database/sql
  - ddb: DynamoDB adapter using the AWS SDK
  - memory: in-process adapter for tests and ephemeral use

The contract is deliberately thin: adapters own no state beyond the injected
engine handle, prepare statements fresh per call, and delegate concurrency,
retries, and timeouts entirely to the engine.
*/
package backend
