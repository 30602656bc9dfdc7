package shelfstream_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marmos91/shelf/pkg/shelf"
	"github.com/marmos91/shelf/pkg/shelfbehavior"
	"github.com/marmos91/shelf/pkg/shelfstream"
)

func recordResult(i int, code shelf.ResultCode) shelf.RecordResult {
	return shelf.RecordResult{Index: i, ResultCode: code}
}

func TestFixedArrayStream_PreservesOrder(t *testing.T) {
	items := []shelf.RecordResult{recordResult(0, shelf.ResultOK), recordResult(1, shelf.ResultOK), recordResult(2, shelf.ResultRecordNotFound)}
	s := shelfstream.NewFixedArray(items)

	got, err := s.StreamView(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 3)
	for i, r := range got {
		assert.Equal(t, i, r.Index)
	}
}

func TestFixedArrayStream_Reset(t *testing.T) {
	s := shelfstream.NewFixedArray([]shelf.RecordResult{recordResult(0, shelf.ResultOK)})
	_, err := s.Next(context.Background())
	require.NoError(t, err)
	assert.False(t, s.HasNext())

	s.Reset()
	assert.True(t, s.HasNext())
}

func TestFixedArrayStream_ThrowOnAnyRaisesOnFirstFailure(t *testing.T) {
	items := []shelf.RecordResult{recordResult(0, shelf.ResultOK), recordResult(1, shelf.ResultRecordNotFound), recordResult(2, shelf.ResultOK)}
	s := shelfstream.NewFixedArray(items)
	s.SetExceptionPolicy(shelfbehavior.ExceptionPolicyThrowAny)

	_, err := s.StreamView(context.Background())
	require.Error(t, err)
	var shelfErr *shelf.ShelfError
	require.ErrorAs(t, err, &shelfErr)
	assert.Equal(t, shelf.ErrRecordNotFound, shelfErr.Kind)
}

func TestFixedArrayStream_ReturnAllPossibleNeverThrows(t *testing.T) {
	items := []shelf.RecordResult{recordResult(0, shelf.ResultOK), recordResult(1, shelf.ResultRecordNotFound)}
	s := shelfstream.NewFixedArray(items)
	s.SetExceptionPolicy(shelfbehavior.ExceptionPolicyReturnAllPossible)

	got, err := s.StreamView(context.Background())
	require.NoError(t, err)
	assert.Len(t, got, 2)
}

func TestFixedArrayStream_ThrowOnAnyStopsForEach(t *testing.T) {
	items := []shelf.RecordResult{recordResult(0, shelf.ResultRecordNotFound), recordResult(1, shelf.ResultOK)}
	s := shelfstream.NewFixedArray(items)
	s.SetExceptionPolicy(shelfbehavior.ExceptionPolicyThrowAny)

	var seen int
	err := s.ForEach(context.Background(), func(shelf.RecordResult) error {
		seen++
		return nil
	})
	require.Error(t, err)
	assert.Zero(t, seen)
}

func TestFixedArrayStream_FailuresNeverThrowsRegardlessOfPolicy(t *testing.T) {
	items := []shelf.RecordResult{recordResult(0, shelf.ResultOK), recordResult(1, shelf.ResultRecordNotFound)}
	s := shelfstream.NewFixedArray(items)
	s.SetExceptionPolicy(shelfbehavior.ExceptionPolicyThrowAny)

	failures, err := s.Failures(context.Background())
	require.NoError(t, err)
	got, err := failures.StreamView(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 1)
}

func TestFailures_FiltersAgainstOriginal(t *testing.T) {
	items := []shelf.RecordResult{
		recordResult(0, shelf.ResultOK),
		recordResult(1, shelf.ResultRecordNotFound),
		recordResult(2, shelf.ResultGenerationMismatch),
	}
	s := shelfstream.NewFixedArray(items)

	failures, err := s.Failures(context.Background())
	require.NoError(t, err)
	got, err := failures.StreamView(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 2)
	for _, r := range got {
		assert.NotEqual(t, shelf.ResultOK, r.ResultCode)
	}
}

func TestEmptyStream_HasNoItems(t *testing.T) {
	s := shelfstream.NewEmpty()
	assert.False(t, s.HasNext())
	_, err := s.Next(context.Background())
	assert.Error(t, err)
}

func TestSingleItemStream_YieldsOnce(t *testing.T) {
	s := shelfstream.NewSingleItem(recordResult(0, shelf.ResultOK))
	require.True(t, s.HasNext())
	_, err := s.Next(context.Background())
	require.NoError(t, err)
	assert.False(t, s.HasNext())
}

func withBins(i int, bins shelf.Bins) shelf.RecordResult {
	return shelf.RecordResult{Index: i, ResultCode: shelf.ResultOK, Record: &shelf.Record{Bins: bins}}
}

func TestNavigatableRecordStream_PaginatorInvariants(t *testing.T) {
	items := make([]shelf.RecordResult, 25)
	for i := range items {
		items[i] = withBins(i, shelf.Bins{"n": shelf.I64Value(int64(i))})
	}
	n := shelfstream.NewNavigatableRecordStream(items)
	require.NoError(t, n.PageSize(10))

	assert.Equal(t, 25, n.Size())
	assert.Equal(t, 3, n.MaxPages())

	require.NoError(t, n.SetPageTo(3))
	page := n.CurrentPageItems()
	require.Len(t, page, 5)
	assert.Equal(t, 20, page[0].Index)
	assert.Equal(t, 24, page[4].Index)
}

func TestNavigatableRecordStream_ClearSortRestoresInsertionOrder(t *testing.T) {
	items := []shelf.RecordResult{
		withBins(0, shelf.Bins{"name": shelf.StringValue("charlie")}),
		withBins(1, shelf.Bins{"name": shelf.StringValue("alice")}),
		withBins(2, shelf.Bins{"name": shelf.StringValue("bob")}),
	}
	n := shelfstream.NewNavigatableRecordStream(items)

	n.SortBy("name", shelfstream.Ascending, true)
	sorted := n.CurrentPageItems()
	assert.Equal(t, "alice", sorted[0].Record.Bins["name"].Str)

	n.ClearSort()
	restored := n.CurrentPageItems()
	assert.Equal(t, 0, restored[0].Index)
	assert.Equal(t, 1, restored[1].Index)
	assert.Equal(t, 2, restored[2].Index)
}

func TestNavigatableRecordStream_MissingFieldSortsFirst(t *testing.T) {
	items := []shelf.RecordResult{
		withBins(0, shelf.Bins{"name": shelf.StringValue("bob")}),
		withBins(1, shelf.Bins{}),
	}
	n := shelfstream.NewNavigatableRecordStream(items)
	n.SortBy("name", shelfstream.Descending, true)

	page := n.CurrentPageItems()
	assert.Equal(t, 1, page[0].Index)
}

func TestNavigatableRecordStream_SetPageToOutOfRangeFails(t *testing.T) {
	n := shelfstream.NewNavigatableRecordStream([]shelf.RecordResult{withBins(0, shelf.Bins{})})
	require.NoError(t, n.PageSize(10))
	assert.Error(t, n.SetPageTo(2))
}
