package contextkeys

// contextKey is an unexported type to prevent collisions with context keys defined in
// other packages.
type contextKey string

// String makes contextKey satisfy the Stringer interface to assist with debugging.
func (c contextKey) String() string {
	return "mflix-catalog context key " + string(c)
}

// RequestIDKey carries the per-request identifier assigned by the HTTP layer.
const RequestIDKey = contextKey("requestID")

// OperationKey names the catalog operation in flight (create_index, find, ...).
const OperationKey = contextKey("operation")

// CollectionKey carries the fully qualified namespace (db.collection) being accessed.
const CollectionKey = contextKey("collection")
