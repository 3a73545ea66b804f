package kvstore

// Store is the key-value persistence port backing the terms flag and the form
// draft. Implementations must make Set durable before returning so callers can
// rely on write-through semantics.
type Store interface {
	// Get returns the value for key and whether a record exists.
	Get(key string) (string, bool, error)

	// Set persists value under key, overwriting any prior record.
	Set(key, value string) error
}
