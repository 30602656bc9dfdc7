package shelf_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marmos91/shelf/pkg/shelf"
)

func TestKey_EqualRequiresAllThreeFields(t *testing.T) {
	a := shelf.NewDataSet("test", "users").Key("alice")

	assert.True(t, a.Equal(shelf.NewDataSet("test", "users").Key("alice")))
	assert.False(t, a.Equal(shelf.NewDataSet("other", "users").Key("alice")))
	assert.False(t, a.Equal(shelf.NewDataSet("test", "accounts").Key("alice")))
	assert.False(t, a.Equal(shelf.NewDataSet("test", "users").Key("bob")))
}

func TestUserKey_TypedEquality(t *testing.T) {
	assert.True(t, shelf.I64Key(42).Equal(shelf.I64Key(42)))
	assert.False(t, shelf.I64Key(42).Equal(shelf.StringKey("42")))
	assert.True(t, shelf.BytesKey([]byte{1, 2}).Equal(shelf.BytesKey([]byte{1, 2})))
	assert.False(t, shelf.BytesKey([]byte{1, 2}).Equal(shelf.BytesKey([]byte{2, 1})))
}

func TestDataSet_IdsPreserveOrderAndType(t *testing.T) {
	ds := shelf.NewDataSet("test", "users")

	strs := ds.Ids("a", "b", "c")
	require.Len(t, strs, 3)
	for i, want := range []string{"a", "b", "c"} {
		assert.Equal(t, shelf.UserKeyString, strs[i].UserKey.Kind)
		assert.Equal(t, want, strs[i].UserKey.Str)
		assert.Equal(t, "test", strs[i].Namespace)
		assert.Equal(t, "users", strs[i].Set)
	}

	ints := ds.IdsI64(3, 1, 2)
	require.Len(t, ints, 3)
	for i, want := range []int64{3, 1, 2} {
		assert.Equal(t, shelf.UserKeyI64, ints[i].UserKey.Kind)
		assert.Equal(t, want, ints[i].UserKey.I64)
	}
}
