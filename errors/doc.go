/*
Package errors provides semantic error types for the polystore library.

The package defines common error scenarios with specific types that can be
checked using the standard errors.Is() function or the provided helper functions.

Common Errors:

	var (
	    ErrNotFound     = errors.New("row not found")
	    ErrUnsupported  = errors.New("operation not supported")
	    ErrInvalidInput = errors.New("invalid input")
	)

Usage:

	// Check error type
	row, err := be.Find(ctx, "users", key)
	if err != nil {
	    if errors.IsNotFound(err) {
	        // Handle not found case
	        return nil, fmt.Errorf("user %s does not exist", "123")
	    }
	    return nil, err
	}

	// Create typed errors
	err := errors.NewNotFoundError("users", `{id: 7}`)
	err := errors.NewUnsupportedError("cassandra", "range queries")
	err := errors.NewValidationError("data", "empty data mapping")

ErrNotFound marks a find that matched zero rows; it is terminal for the call
and recoverable by the caller. ErrUnsupported marks a capability a backend
declares structurally but refuses to deliver, which is distinct from the
backend not declaring the capability at all. Faults raised by the underlying
engines are wrapped with %w and propagate unchanged through this taxonomy.

The error types implement the error interface and support wrapping,
making them compatible with Go's standard error handling patterns.
*/
package errors
