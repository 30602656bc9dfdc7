package shelfstream_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marmos91/shelf/pkg/shelf"
	"github.com/marmos91/shelf/pkg/shelfstream"
)

type account struct {
	ID     string
	Status string
}

// accountMapper is a hand-written Mapper, the way callers are expected to
// supply one.
type accountMapper struct{}

func (accountMapper) ToBins(a account) (shelf.Bins, error) {
	return shelf.Bins{"status": shelf.StringValue(a.Status)}, nil
}

func (accountMapper) FromRecord(bins shelf.Bins, key shelf.Key, _ uint32) (account, error) {
	return account{ID: key.UserKey.Str, Status: bins["status"].Str}, nil
}

func (accountMapper) IDOf(a account) (shelf.UserKey, error) {
	return shelf.StringKey(a.ID), nil
}

var _ shelf.Mapper[account] = accountMapper{}

func accountResult(id, status string) shelf.RecordResult {
	return shelf.RecordResult{
		Key:        shelf.NewDataSet("test", "accounts").Key(id),
		Record:     &shelf.Record{Bins: shelf.Bins{"status": shelf.StringValue(status)}, Generation: 1},
		ResultCode: shelf.ResultOK,
	}
}

func TestToObjects_MapsEveryRecord(t *testing.T) {
	s := shelfstream.NewFixedArray([]shelf.RecordResult{
		accountResult("a", "active"),
		accountResult("b", "locked"),
	})

	accounts, err := shelfstream.ToObjects(context.Background(), s, accountMapper{})
	require.NoError(t, err)
	require.Len(t, accounts, 2)
	assert.Equal(t, account{ID: "a", Status: "active"}, accounts[0])
	assert.Equal(t, account{ID: "b", Status: "locked"}, accounts[1])
}

func TestToObjects_SkipsRecordlessResults(t *testing.T) {
	s := shelfstream.NewFixedArray([]shelf.RecordResult{
		accountResult("a", "active"),
		{ResultCode: shelf.ResultRecordNotFound},
	})

	accounts, err := shelfstream.ToObjects(context.Background(), s, accountMapper{})
	require.NoError(t, err)
	require.Len(t, accounts, 1)
	assert.Equal(t, "a", accounts[0].ID)
}

func TestPageToObjects_MapsCurrentPageOnly(t *testing.T) {
	nav := shelfstream.NewNavigatableRecordStream([]shelf.RecordResult{
		accountResult("a", "active"),
		accountResult("b", "active"),
		accountResult("c", "locked"),
	})
	require.NoError(t, nav.PageSize(2))
	require.NoError(t, nav.SetPageTo(2))

	accounts, err := shelfstream.PageToObjects(nav, accountMapper{})
	require.NoError(t, err)
	require.Len(t, accounts, 1)
	assert.Equal(t, "c", accounts[0].ID)
}

func TestMapperFunc_AdaptsIntoToObjectList(t *testing.T) {
	s := shelfstream.NewFixedArray([]shelf.RecordResult{accountResult("a", "active")})

	objs, err := s.ToObjectList(context.Background(), shelfstream.MapperFunc(accountMapper{}))
	require.NoError(t, err)
	require.Len(t, objs, 1)
	assert.Equal(t, account{ID: "a", Status: "active"}, objs[0])
}