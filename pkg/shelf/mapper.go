package shelf

// Mapper converts between a user type T and the wire-level Bins/UserKey
// representation. The core never reflects over T — callers supply this
// interface by hand. Any codegen to produce one is out of scope.
type Mapper[T any] interface {
	// ToBins projects value into the named bins a write op-list targets.
	ToBins(value T) (Bins, error)

	// FromRecord reconstructs a T from a record's bins, originating key,
	// and generation.
	FromRecord(bins Bins, key Key, generation uint32) (T, error)

	// IDOf extracts the identifying UserKey from value, for callers that
	// derive a Key from the object being written rather than supplying
	// one explicitly.
	IDOf(value T) (UserKey, error)
}
