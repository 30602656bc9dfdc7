package shelfbuilder_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marmos91/shelf/pkg/shelf"
	"github.com/marmos91/shelf/pkg/shelfbatch"
	"github.com/marmos91/shelf/pkg/shelfbehavior"
	"github.com/marmos91/shelf/pkg/shelfbuilder"
	"github.com/marmos91/shelf/pkg/shelfstream"
	"github.com/marmos91/shelf/pkg/shelftransport"
)

// captureExecutor records the specs and resolution results handed to it,
// so spec-encoding assertions don't need a transport at all.
type captureExecutor struct {
	specs    [][]shelf.OpSpec
	settings []shelfbehavior.Settings
	scans    []shelf.DataSet
}

func (c *captureExecutor) Execute(_ context.Context, specs []shelf.OpSpec, _ string, settings shelfbehavior.Settings) (shelfstream.RecordStream, error) {
	c.specs = append(c.specs, specs)
	c.settings = append(c.settings, settings)
	return shelfstream.NewEmpty(), nil
}

func (c *captureExecutor) ExecuteScan(_ context.Context, ds shelf.DataSet, _ *shelf.FilterExpression, settings shelfbehavior.Settings) (shelfstream.RecordStream, error) {
	c.scans = append(c.scans, ds)
	c.settings = append(c.settings, settings)
	return shelfstream.NewEmpty(), nil
}

func (c *captureExecutor) Truncate(context.Context, shelf.DataSet, shelfbehavior.Settings) error {
	return nil
}

func (c *captureExecutor) Info(context.Context, string, string, shelfbehavior.Settings) (string, error) {
	return "", nil
}

func (c *captureExecutor) lastSpecs(t *testing.T) []shelf.OpSpec {
	t.Helper()
	require.NotEmpty(t, c.specs)
	return c.specs[len(c.specs)-1]
}

func localSession() *shelfbuilder.Session {
	exec := shelfbatch.NewBatchExecutor(shelftransport.NewLocalTransport())
	return shelfbuilder.NewSession(shelfbehavior.NewRoot(), exec)
}

func captureSession() (*shelfbuilder.Session, *captureExecutor) {
	exec := &captureExecutor{}
	return shelfbuilder.NewSession(shelfbehavior.NewRoot(), exec), exec
}

func TestSession_InsertTwiceSurfacesRecordExists(t *testing.T) {
	// The second insert yields a stream of one result with
	// code=RecordExists, not a thrown error.
	session := localSession()
	key := shelf.NewDataSet("test", "u").Key("a")

	stream, err := session.Insert(shelfbuilder.OneKey(key)).
		Bin("name").SetTo(shelf.StringValue("Alice")).
		Execute(context.Background())
	require.NoError(t, err)
	first, ok, err := stream.GetFirst(context.Background(), false)
	require.NoError(t, err)
	require.True(t, ok)
	assert.True(t, first.OK())

	stream, err = session.Insert(shelfbuilder.OneKey(key)).
		Bin("name").SetTo(shelf.StringValue("Alice")).
		Execute(context.Background())
	require.NoError(t, err)
	results, err := stream.StreamView(context.Background())
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, shelf.ResultRecordExists, results[0].ResultCode)
	assert.Equal(t, key, results[0].Key)
}

func TestSession_QueryKeysPreservesOrder(t *testing.T) {
	// Upsert keys [1,2,3], then query them back; three results in
	// request order, each carrying the written bin.
	session := localSession()
	ds := shelf.NewDataSet("test", "u")
	keys := ds.IdsI64(1, 2, 3)

	_, err := session.Upsert(shelfbuilder.ManyKeys(keys...)).
		Bin("status").SetTo(shelf.StringValue("active")).
		Execute(context.Background())
	require.NoError(t, err)

	stream, err := session.Query(shelfbuilder.ManyKeys(keys...)).Execute(context.Background())
	require.NoError(t, err)
	results, err := stream.StreamView(context.Background())
	require.NoError(t, err)
	require.Len(t, results, 3)
	for i, r := range results {
		assert.Equal(t, i, r.Index)
		assert.Equal(t, keys[i], r.Key)
		require.True(t, r.OK())
		assert.Equal(t, "active", r.Record.Bins["status"].Str)
	}
}

func TestSession_QuerySingleKeyProjectsBins(t *testing.T) {
	session := localSession()
	key := shelf.NewDataSet("test", "u").Key("p")

	_, err := session.Upsert(shelfbuilder.OneKey(key)).
		Bin("status").SetTo(shelf.StringValue("active")).
		Bin("age").SetTo(shelf.I64Value(40)).
		Execute(context.Background())
	require.NoError(t, err)

	stream, err := session.Query(shelfbuilder.OneKey(key)).
		Project("status").
		Execute(context.Background())
	require.NoError(t, err)
	first, ok, err := stream.GetFirst(context.Background(), true)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "active", first.Record.Bins["status"].Str)
	assert.NotContains(t, first.Record.Bins, "age")
}

func TestWriteBuilder_CdtValueRangeGetKeysEncoding(t *testing.T) {
	// OnMapValueRange-style navigation encodes a Range
	// selector with a GetKeys terminal against the named bin.
	session, exec := captureSession()
	key := shelf.NewDataSet("test", "u").Key("m")

	_, err := session.Update(shelfbuilder.OneKey(key)).
		Bin("scores").ByValueRange(shelf.I64Value(2), shelf.I64Value(4)).GetKeys().
		Execute(context.Background())
	require.NoError(t, err)

	specs := exec.lastSpecs(t)
	require.Len(t, specs, 1)
	require.Len(t, specs[0].Ops, 1)
	op := specs[0].Ops[0]
	assert.Equal(t, "scores", op.Bin)
	assert.Equal(t, shelf.BinCdt, op.Type)
	assert.Equal(t, shelf.SelectorRange, op.Selector.Shape)
	assert.Equal(t, shelf.ByValueRange, op.Selector.Method)
	assert.Equal(t, shelf.CdtGetKeys, op.Terminal)
	assert.True(t, op.Path.Empty())
}

func TestWriteBuilder_NestedNavigationCarriesContextPath(t *testing.T) {
	session, exec := captureSession()
	key := shelf.NewDataSet("test", "u").Key("m")

	_, err := session.Update(shelfbuilder.OneKey(key)).
		Bin("profile").
		OnMapKey(shelf.StringValue("address")).
		AtListIndex(0).
		ByKey(shelf.StringValue("city")).
		Set(shelf.StringValue("Milan")).
		Execute(context.Background())
	require.NoError(t, err)

	op := exec.lastSpecs(t)[0].Ops[0]
	require.Equal(t, 2, op.Path.Len())
	assert.Equal(t, shelf.SelectorSingleItem, op.Selector.Shape)
	assert.Equal(t, shelf.CdtSet, op.Terminal)
	assert.Equal(t, "Milan", op.Value.Str)
}

func TestExecute_MixedNamespacesPanics(t *testing.T) {
	session, _ := captureSession()
	a := shelf.NewDataSet("ns1", "u").Key("a")
	b := shelf.NewDataSet("ns2", "u").Key("b")

	assert.PanicsWithError(t, "ConfigError: mixed namespaces in one chain", func() {
		_, _ = session.Insert(shelfbuilder.OneKey(a)).
			Bin("x").SetTo(shelf.I64Value(1)).
			Upsert(shelfbuilder.OneKey(b)).
			Bin("x").SetTo(shelf.I64Value(2)).
			Execute(context.Background())
	})
}

func TestExecute_ScanMixedWithBatchOpsPanics(t *testing.T) {
	session, _ := captureSession()
	ds := shelf.NewDataSet("test", "u")
	key := ds.Key("a")

	assert.PanicsWithError(t, "ConfigError: cannot mix a scan/truncate into a chain with accumulated batch ops", func() {
		_, _ = session.Insert(shelfbuilder.OneKey(key)).
			Bin("x").SetTo(shelf.I64Value(1)).
			Query(shelfbuilder.OnDataSet(ds)).
			Execute(context.Background())
	})
}

func TestExecute_KeyQueryChainedOntoBatchIsAllowed(t *testing.T) {
	session, exec := captureSession()
	ds := shelf.NewDataSet("test", "u")

	_, err := session.Insert(shelfbuilder.OneKey(ds.Key("a"))).
		Bin("x").SetTo(shelf.I64Value(1)).
		Query(shelfbuilder.OneKey(ds.Key("b"))).
		Execute(context.Background())
	require.NoError(t, err)

	specs := exec.lastSpecs(t)
	require.Len(t, specs, 2)
	assert.Equal(t, shelf.OpInsert, specs[0].Kind)
	assert.Equal(t, shelf.OpQuery, specs[1].Kind)
}

func TestTruncate_RequiresDataSetTarget(t *testing.T) {
	session, _ := captureSession()
	key := shelf.NewDataSet("test", "u").Key("a")

	_, err := session.Truncate(shelfbuilder.OneKey(key)).Execute(context.Background())
	require.Error(t, err)
	assert.True(t, shelf.IsErrorKind(err, shelf.ErrInvalidArgument))
}

func TestWriteBuilder_ExpirationLastWins(t *testing.T) {
	session, exec := captureSession()
	key := shelf.NewDataSet("test", "u").Key("a")

	_, err := session.Upsert(shelfbuilder.OneKey(key)).
		Bin("x").SetTo(shelf.I64Value(1)).
		ExpireAfter(time.Hour).
		NeverExpire().
		Execute(context.Background())
	require.NoError(t, err)

	spec := exec.lastSpecs(t)[0]
	require.NotNil(t, spec.TTL)
	assert.Equal(t, shelf.TTLNever, spec.TTL.Mode)
}

func TestDefaultWhere_AppliesOnlyWhereUnset(t *testing.T) {
	session, exec := captureSession()
	ds := shelf.NewDataSet("test", "u")
	perOp := shelf.Expr("bin_x > 1")
	fallback := shelf.Expr("bin_y > 2")

	_, err := session.Upsert(shelfbuilder.OneKey(ds.Key("a"))).
		Bin("x").SetTo(shelf.I64Value(1)).
		Where(perOp).
		Upsert(shelfbuilder.OneKey(ds.Key("b"))).
		Bin("x").SetTo(shelf.I64Value(2)).
		DefaultWhere(fallback).
		Execute(context.Background())
	require.NoError(t, err)

	specs := exec.lastSpecs(t)
	require.Len(t, specs, 2)
	require.NotNil(t, specs[0].Filter)
	assert.Equal(t, perOp.Raw, specs[0].Filter.Raw)
	require.NotNil(t, specs[1].Filter)
	assert.Equal(t, fallback.Raw, specs[1].Filter.Raw)
}

func TestNotInTransaction_MarksEverySpec(t *testing.T) {
	session, exec := captureSession()
	ds := shelf.NewDataSet("test", "u")

	_, err := session.NotInTransaction().
		Upsert(shelfbuilder.OneKey(ds.Key("a"))).
		Bin("x").SetTo(shelf.I64Value(1)).
		Delete(shelfbuilder.OneKey(ds.Key("b"))).
		Execute(context.Background())
	require.NoError(t, err)

	for _, spec := range exec.lastSpecs(t) {
		assert.True(t, spec.NotInTransaction)
	}
}

func TestNoBinsBuilder_DurableDeleteOnlyOnDelete(t *testing.T) {
	session, exec := captureSession()
	ds := shelf.NewDataSet("test", "u")

	_, err := session.Delete(shelfbuilder.OneKey(ds.Key("a"))).
		DurableDelete(true).
		Touch(shelfbuilder.OneKey(ds.Key("b"))).
		DurableDelete(true).
		Execute(context.Background())
	require.NoError(t, err)

	specs := exec.lastSpecs(t)
	require.Len(t, specs, 2)
	assert.True(t, specs[0].DurableDelete)
	assert.False(t, specs[1].DurableDelete)
	assert.Empty(t, specs[0].Ops)
	assert.Empty(t, specs[1].Ops)
}

func TestBuilder_ChainingFromSharedPrefixIsPure(t *testing.T) {
	session, exec := captureSession()
	ds := shelf.NewDataSet("test", "u")

	base := session.Upsert(shelfbuilder.OneKey(ds.Key("a"))).
		Bin("x").SetTo(shelf.I64Value(1))

	_, err := base.Delete(shelfbuilder.OneKey(ds.Key("b"))).Execute(context.Background())
	require.NoError(t, err)
	_, err = base.Touch(shelfbuilder.OneKey(ds.Key("c"))).Execute(context.Background())
	require.NoError(t, err)

	require.Len(t, exec.specs, 2)
	require.Len(t, exec.specs[0], 2)
	require.Len(t, exec.specs[1], 2)
	assert.Equal(t, shelf.OpDelete, exec.specs[0][1].Kind)
	assert.Equal(t, shelf.OpTouch, exec.specs[1][1].Kind)
}

func TestExecute_ResolvesBatchWriteScopeForMultiKeyChains(t *testing.T) {
	behavior := shelfbehavior.NewRoot().Derive("batchy", func(ob *shelfbehavior.OverrideBuilder) {
		max := 7
		ob.Set(shelfbehavior.ScopeBatchWrites, shelfbehavior.SettingsOverride{MaxConcurrentServers: &max})
	})
	exec := &captureExecutor{}
	session := shelfbuilder.NewSession(behavior, exec)
	ds := shelf.NewDataSet("test", "u")

	_, err := session.Upsert(shelfbuilder.ManyKeys(ds.Ids("a", "b", "c")...)).
		Bin("x").SetTo(shelf.I64Value(1)).
		Execute(context.Background())
	require.NoError(t, err)

	require.Len(t, exec.settings, 1)
	assert.Equal(t, 7, exec.settings[0].MaxConcurrentServers)
}
