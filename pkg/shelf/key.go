package shelf

import "fmt"

// UserKeyKind tags the concrete type carried by a UserKey.
type UserKeyKind int

const (
	UserKeyString UserKeyKind = iota
	UserKeyI64
	UserKeyBytes
)

// UserKey is the caller-supplied identifying value of a Key. Only one of
// the typed fields is meaningful, selected by Kind — the contract is that
// the semantic type the caller passed in survives end-to-end to
// RecordResult.Key.
type UserKey struct {
	Kind  UserKeyKind
	Str   string
	I64   int64
	Bytes []byte
}

// StringKey wraps a string user key.
func StringKey(s string) UserKey { return UserKey{Kind: UserKeyString, Str: s} }

// I64Key wraps an int64 user key.
func I64Key(i int64) UserKey { return UserKey{Kind: UserKeyI64, I64: i} }

// BytesKey wraps a byte-slice user key.
func BytesKey(b []byte) UserKey { return UserKey{Kind: UserKeyBytes, Bytes: b} }

// Equal reports whether two UserKeys carry the same kind and value.
func (k UserKey) Equal(other UserKey) bool {
	if k.Kind != other.Kind {
		return false
	}
	switch k.Kind {
	case UserKeyString:
		return k.Str == other.Str
	case UserKeyI64:
		return k.I64 == other.I64
	case UserKeyBytes:
		if len(k.Bytes) != len(other.Bytes) {
			return false
		}
		for i := range k.Bytes {
			if k.Bytes[i] != other.Bytes[i] {
				return false
			}
		}
		return true
	default:
		return false
	}
}

func (k UserKey) String() string {
	switch k.Kind {
	case UserKeyString:
		return k.Str
	case UserKeyI64:
		return fmt.Sprintf("%d", k.I64)
	case UserKeyBytes:
		return fmt.Sprintf("%x", k.Bytes)
	default:
		return "<invalid>"
	}
}

// Key is (namespace, set, user_key). Two keys compare equal iff all three
// fields match.
type Key struct {
	Namespace string
	Set       string
	UserKey   UserKey
}

// Equal reports whether two Keys carry the same namespace, set, and
// user-key value.
func (k Key) Equal(other Key) bool {
	return k.Namespace == other.Namespace && k.Set == other.Set && k.UserKey.Equal(other.UserKey)
}

func (k Key) String() string {
	return fmt.Sprintf("%s.%s:%s", k.Namespace, k.Set, k.UserKey)
}

// DataSet is a (namespace, set) factory producing typed Keys. It carries
// no connection state — it is a pure value type, safe to share and copy.
type DataSet struct {
	Namespace string
	Set       string
}

// NewDataSet constructs a DataSet over the given namespace and set.
func NewDataSet(namespace, set string) DataSet {
	return DataSet{Namespace: namespace, Set: set}
}

// Key builds a single Key with a string user key.
func (d DataSet) Key(userKey string) Key {
	return Key{Namespace: d.Namespace, Set: d.Set, UserKey: StringKey(userKey)}
}

// KeyI64 builds a single Key with an int64 user key.
func (d DataSet) KeyI64(userKey int64) Key {
	return Key{Namespace: d.Namespace, Set: d.Set, UserKey: I64Key(userKey)}
}

// KeyBytes builds a single Key with a byte-slice user key.
func (d DataSet) KeyBytes(userKey []byte) Key {
	return Key{Namespace: d.Namespace, Set: d.Set, UserKey: BytesKey(userKey)}
}

// Ids yields an ordered sequence of Keys over string user keys, preserving
// input order.
func (d DataSet) Ids(userKeys ...string) []Key {
	keys := make([]Key, len(userKeys))
	for i, uk := range userKeys {
		keys[i] = d.Key(uk)
	}
	return keys
}

// IdsI64 yields an ordered sequence of Keys over int64 user keys.
func (d DataSet) IdsI64(userKeys ...int64) []Key {
	keys := make([]Key, len(userKeys))
	for i, uk := range userKeys {
		keys[i] = d.KeyI64(uk)
	}
	return keys
}

// IdsBytes yields an ordered sequence of Keys over byte-slice user keys.
func (d DataSet) IdsBytes(userKeys ...[]byte) []Key {
	keys := make([]Key, len(userKeys))
	for i, uk := range userKeys {
		keys[i] = d.KeyBytes(uk)
	}
	return keys
}
