package shelfbatch_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marmos91/shelf/pkg/shelf"
	"github.com/marmos91/shelf/pkg/shelfbatch"
	"github.com/marmos91/shelf/pkg/shelfbehavior"
	"github.com/marmos91/shelf/pkg/shelfstream"
	"github.com/marmos91/shelf/pkg/shelftransport"
)

func TestBatchExecutor_PreservesRequestOrder(t *testing.T) {
	tr := shelftransport.NewLocalTransport()
	exec := shelfbatch.NewBatchExecutor(tr)

	ds := shelf.NewDataSet("test", "u")
	keys := ds.Ids("1", "2", "3")

	spec := shelf.OpSpec{
		Keys: keys,
		Kind: shelf.OpUpsert,
		Ops:  []shelf.Op{{Bin: "status", Type: shelf.BinSetTo, Value: shelf.StringValue("active")}},
	}

	stream, err := exec.Execute(context.Background(), []shelf.OpSpec{spec}, "DEFAULT", shelfbehavior.DefaultSettings())
	require.NoError(t, err)

	results, err := stream.StreamView(context.Background())
	require.NoError(t, err)
	require.Len(t, results, 3)
	for i, r := range results {
		assert.Equal(t, i, r.Index)
		assert.True(t, r.OK())
		assert.Equal(t, "active", r.Record.Bins["status"].Str)
	}
}

// reversingTransport replies in the opposite of request order, the way a
// multi-node fan-out may complete.
type reversingTransport struct {
	*shelftransport.LocalTransport
}

func (t *reversingTransport) ExecuteBatch(ctx context.Context, items []shelftransport.BatchItem, settings shelfbehavior.Settings) ([]shelftransport.BatchItemResult, error) {
	results, err := t.LocalTransport.ExecuteBatch(ctx, items, settings)
	if err != nil {
		return nil, err
	}
	for i, j := 0, len(results)-1; i < j; i, j = i+1, j-1 {
		results[i], results[j] = results[j], results[i]
	}
	return results, nil
}

func TestBatchExecutor_ReordersOutOfOrderReplies(t *testing.T) {
	tr := &reversingTransport{LocalTransport: shelftransport.NewLocalTransport()}
	exec := shelfbatch.NewBatchExecutor(tr)

	ds := shelf.NewDataSet("test", "u")
	keys := ds.Ids("1", "2", "3")

	spec := shelf.OpSpec{
		Keys: keys,
		Kind: shelf.OpUpsert,
		Ops:  []shelf.Op{{Bin: "status", Type: shelf.BinSetTo, Value: shelf.StringValue("active")}},
	}

	stream, err := exec.Execute(context.Background(), []shelf.OpSpec{spec}, "DEFAULT", shelfbehavior.DefaultSettings())
	require.NoError(t, err)

	results, err := stream.StreamView(context.Background())
	require.NoError(t, err)
	require.Len(t, results, 3)
	for i, r := range results {
		assert.Equal(t, i, r.Index)
		assert.True(t, r.Key.Equal(keys[i]))
	}
}

func TestBatchExecutor_PointDispatchYieldsSingleItemStream(t *testing.T) {
	tr := shelftransport.NewLocalTransport()
	exec := shelfbatch.NewBatchExecutor(tr)
	ds := shelf.NewDataSet("test", "u")

	spec := shelf.OpSpec{
		Keys: []shelf.Key{ds.Key("a")},
		Kind: shelf.OpUpsert,
		Ops:  []shelf.Op{{Bin: "status", Type: shelf.BinSetTo, Value: shelf.StringValue("active")}},
	}

	stream, err := exec.Execute(context.Background(), []shelf.OpSpec{spec}, "DEFAULT", shelfbehavior.DefaultSettings())
	require.NoError(t, err)

	_, ok := stream.(*shelfstream.SingleItemStream)
	assert.True(t, ok)

	r, found, err := stream.GetFirst(context.Background(), false)
	require.NoError(t, err)
	require.True(t, found)
	assert.True(t, r.Key.Equal(ds.Key("a")))
	assert.False(t, stream.HasNext())
}

func TestBatchExecutor_EmptySpecsYieldsEmptyStream(t *testing.T) {
	tr := shelftransport.NewLocalTransport()
	exec := shelfbatch.NewBatchExecutor(tr)

	stream, err := exec.Execute(context.Background(), nil, "DEFAULT", shelfbehavior.DefaultSettings())
	require.NoError(t, err)
	assert.False(t, stream.HasNext())
}

func TestBatchExecutor_InsertExistingSurfacesPerRecordError(t *testing.T) {
	tr := shelftransport.NewLocalTransport()
	exec := shelfbatch.NewBatchExecutor(tr)
	ds := shelf.NewDataSet("test", "u")
	key := ds.Key("a")
	tr.Seed(key, shelf.Bins{"name": shelf.StringValue("Alice")}, 1)

	spec := shelf.OpSpec{
		Keys: []shelf.Key{key},
		Kind: shelf.OpInsert,
		Ops:  []shelf.Op{{Bin: "name", Type: shelf.BinSetTo, Value: shelf.StringValue("Alice")}},
	}

	stream, err := exec.Execute(context.Background(), []shelf.OpSpec{spec}, "DEFAULT", shelfbehavior.DefaultSettings())
	require.NoError(t, err)

	results, err := stream.StreamView(context.Background())
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, shelf.ResultRecordExists, results[0].ResultCode)
}
