package shelftransport_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marmos91/shelf/pkg/shelf"
	"github.com/marmos91/shelf/pkg/shelfbehavior"
	"github.com/marmos91/shelf/pkg/shelftransport"
)

func testKey(id string) shelf.Key {
	return shelf.Key{Namespace: "ns", Set: "set", UserKey: shelf.StringKey(id)}
}

func TestLocalTransport_InsertThenInsertFails(t *testing.T) {
	tr := shelftransport.NewLocalTransport()
	ctx := context.Background()
	settings := shelfbehavior.DefaultSettings()

	item := shelftransport.BatchItem{
		Key:  testKey("a"),
		Kind: shelf.OpInsert,
		Ops:  []shelf.Op{{Bin: "x", Type: shelf.BinSetTo, Value: shelf.I64Value(1)}},
	}

	results, err := tr.ExecuteBatch(ctx, []shelftransport.BatchItem{item}, settings)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, shelf.ResultOK, results[0].ResultCode)
	require.NotNil(t, results[0].Record)
	assert.Equal(t, uint32(1), results[0].Record.Generation)

	results, err = tr.ExecuteBatch(ctx, []shelftransport.BatchItem{item}, settings)
	require.NoError(t, err)
	assert.Equal(t, shelf.ResultRecordExists, results[0].ResultCode)
}

func TestLocalTransport_UpdateMissingFails(t *testing.T) {
	tr := shelftransport.NewLocalTransport()
	item := shelftransport.BatchItem{Key: testKey("missing"), Kind: shelf.OpUpdate}

	results, err := tr.ExecuteBatch(context.Background(), []shelftransport.BatchItem{item}, shelfbehavior.DefaultSettings())
	require.NoError(t, err)
	assert.Equal(t, shelf.ResultRecordNotFound, results[0].ResultCode)
}

func TestLocalTransport_GenerationMismatch(t *testing.T) {
	tr := shelftransport.NewLocalTransport()
	key := testKey("gen")
	tr.Seed(key, shelf.Bins{"x": shelf.I64Value(1)}, 5)

	bad := shelf.GenerationCheck{Enabled: true, Expect: 1}
	item := shelftransport.BatchItem{
		Key:        key,
		Kind:       shelf.OpUpsert,
		Ops:        []shelf.Op{{Bin: "x", Type: shelf.BinSetTo, Value: shelf.I64Value(2)}},
		Generation: &bad,
	}

	results, err := tr.ExecuteBatch(context.Background(), []shelftransport.BatchItem{item}, shelfbehavior.DefaultSettings())
	require.NoError(t, err)
	assert.Equal(t, shelf.ResultGenerationMismatch, results[0].ResultCode)
}

func TestLocalTransport_DeletePreservesOrderAcrossBatch(t *testing.T) {
	tr := shelftransport.NewLocalTransport()
	keyA, keyB := testKey("a"), testKey("b")
	tr.Seed(keyA, shelf.Bins{"x": shelf.I64Value(1)}, 1)

	items := []shelftransport.BatchItem{
		{Key: keyA, Kind: shelf.OpDelete},
		{Key: keyB, Kind: shelf.OpExists},
	}

	results, err := tr.ExecuteBatch(context.Background(), items, shelfbehavior.DefaultSettings())
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, shelf.ResultOK, results[0].ResultCode)
	assert.Equal(t, shelf.ResultOK, results[1].ResultCode)
	assert.Nil(t, results[1].Record)
}

func TestLocalTransport_TruncateRemovesOnlyMatchingDataSet(t *testing.T) {
	tr := shelftransport.NewLocalTransport()
	tr.Seed(shelf.Key{Namespace: "ns", Set: "u", UserKey: shelf.StringKey("a")}, shelf.Bins{"x": shelf.I64Value(1)}, 1)
	tr.Seed(shelf.Key{Namespace: "ns", Set: "other", UserKey: shelf.StringKey("b")}, shelf.Bins{"x": shelf.I64Value(2)}, 1)

	err := tr.Truncate(context.Background(), shelf.NewDataSet("ns", "u"), shelfbehavior.DefaultSettings())
	require.NoError(t, err)

	results, err := tr.ExecuteBatch(context.Background(), []shelftransport.BatchItem{
		{Key: shelf.Key{Namespace: "ns", Set: "u", UserKey: shelf.StringKey("a")}, Kind: shelf.OpExists},
		{Key: shelf.Key{Namespace: "ns", Set: "other", UserKey: shelf.StringKey("b")}, Kind: shelf.OpExists},
	}, shelfbehavior.DefaultSettings())
	require.NoError(t, err)
	assert.Nil(t, results[0].Record)
	assert.NotNil(t, results[1].Record)
}

func TestLocalTransport_ScanReturnsSeededRecords(t *testing.T) {
	tr := shelftransport.NewLocalTransport()
	tr.Seed(testKey("a"), shelf.Bins{"x": shelf.I64Value(1)}, 1)
	tr.Seed(testKey("b"), shelf.Bins{"x": shelf.I64Value(2)}, 1)

	cursor, err := tr.ExecuteScan(context.Background(), shelf.NewDataSet("ns", "set"), nil, shelfbehavior.DefaultSettings())
	require.NoError(t, err)
	defer cursor.Close()

	chunk, hasMore, err := cursor.Next(context.Background())
	require.NoError(t, err)
	assert.False(t, hasMore)
	require.Len(t, chunk, 2)
	assert.True(t, chunk[0].Key.Equal(testKey("a")))
	assert.True(t, chunk[1].Key.Equal(testKey("b")))
}

func TestLocalTransport_ScanIsScopedToDataSet(t *testing.T) {
	tr := shelftransport.NewLocalTransport()
	tr.Seed(testKey("a"), shelf.Bins{"x": shelf.I64Value(1)}, 1)
	tr.Seed(shelf.NewDataSet("other", "set").Key("b"), shelf.Bins{"x": shelf.I64Value(2)}, 1)
	tr.Seed(shelf.NewDataSet("ns", "elsewhere").Key("c"), shelf.Bins{"x": shelf.I64Value(3)}, 1)

	cursor, err := tr.ExecuteScan(context.Background(), shelf.NewDataSet("ns", "set"), nil, shelfbehavior.DefaultSettings())
	require.NoError(t, err)
	defer cursor.Close()

	chunk, _, err := cursor.Next(context.Background())
	require.NoError(t, err)
	require.Len(t, chunk, 1)
	assert.Equal(t, int64(1), chunk[0].Record.Bins["x"].I64)
}
