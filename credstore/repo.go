package credstore

// Backend is the raw key/value storage the Store protects. Implementations
// report failures as errors; the Store turns them into diagnostics.
type Backend interface {
	// Read returns the value for key and whether it was present
	Read(key string) (string, bool, error)

	// Write stores value under key
	Write(key, value string) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(key string) error
}
