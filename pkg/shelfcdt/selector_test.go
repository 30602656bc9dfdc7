package shelfcdt_test

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marmos91/shelf/pkg/shelf"
	"github.com/marmos91/shelf/pkg/shelfcdt"
)

func commit(op shelf.Op) shelf.Op { return op }

func TestNavigator_SingleItemSelector(t *testing.T) {
	nav := shelfcdt.NewNavigator("scores", commit)
	op := nav.ByKey(shelf.StringValue("b")).GetValues()

	assert.Equal(t, "scores", op.Bin)
	assert.Equal(t, shelf.BinCdt, op.Type)
	assert.Equal(t, shelf.SelectorSingleItem, op.Selector.Shape)
	assert.Equal(t, shelf.CdtGetValues, op.Terminal)
}

func TestNavigator_RangeSelectorInvertedTerminal(t *testing.T) {
	nav := shelfcdt.NewNavigator("scores", commit)
	op := nav.ByValueRange(shelf.I64Value(2), shelf.I64Value(4)).GetKeys()

	assert.Equal(t, shelf.SelectorRange, op.Selector.Shape)
	assert.Equal(t, shelf.CdtGetKeys, op.Terminal)

	inverted := nav.ByValueRange(shelf.I64Value(2), shelf.I64Value(4)).CountAllOthers()
	assert.Equal(t, shelf.CdtCountAllOthers, inverted.Terminal)
	assert.True(t, inverted.Terminal.Invertible())
}

func TestNavigator_NestedPath(t *testing.T) {
	nav := shelfcdt.NewNavigator("doc", commit)
	op := nav.AtMapKey(shelf.StringValue("outer")).AtListIndex(0).ByIndex(2).Remove()

	require.Len(t, op.Path, 2)
	assert.Equal(t, shelf.PathMapKey, op.Path[0].Kind)
	assert.Equal(t, shelf.PathListIndex, op.Path[1].Kind)
	assert.Equal(t, shelf.CdtRemove, op.Terminal)
}

// TestNonInvertible_HasNoAllOthersMethods is the runtime witness of the
// compile-time guarantee: byIndex/byKey/byRank return a type with no
// "*AllOthers" method at all, so calling one is a compile error rather
// than a runtime check.
func TestNonInvertible_HasNoAllOthersMethods(t *testing.T) {
	typ := reflect.TypeOf(shelfcdt.NewNavigator("b", commit).ByIndex(0))
	for _, name := range []string{"CountAllOthers", "RemoveAllOthers", "GetAllOtherKeys", "GetAllOtherValues"} {
		_, ok := typ.MethodByName(name)
		assert.False(t, ok, "NonInvertible must not expose %s", name)
	}
}

func TestInvertible_IsSupersetOfNonInvertible(t *testing.T) {
	typ := reflect.TypeOf(shelfcdt.NewNavigator("b", commit).ByValueRange(shelf.SpecialVal(shelf.Null), shelf.SpecialVal(shelf.Infinity)))
	for _, name := range []string{"GetValues", "GetKeys", "Count", "Remove", "Set", "Add", "Insert", "Append", "Prepend", "Clear", "Size", "CountAllOthers", "RemoveAllOthers", "GetAllOtherKeys", "GetAllOtherValues"} {
		_, ok := typ.MethodByName(name)
		assert.True(t, ok, "Invertible must expose %s", name)
	}
}
