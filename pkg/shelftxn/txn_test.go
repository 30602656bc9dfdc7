package shelftxn_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marmos91/shelf/pkg/shelf"
	"github.com/marmos91/shelf/pkg/shelfbehavior"
	"github.com/marmos91/shelf/pkg/shelfbatch"
	"github.com/marmos91/shelf/pkg/shelfbuilder"
	"github.com/marmos91/shelf/pkg/shelftransport"
	"github.com/marmos91/shelf/pkg/shelftxn"
)

func TestTransactionalSession_RetriesOnTxnRetryableThenSucceeds(t *testing.T) {
	behavior := shelfbehavior.NewRoot()
	exec := shelfbatch.NewBatchExecutor(shelftransport.NewLocalTransport())
	txn := shelftxn.New(behavior, exec)

	attempts := 0
	err := txn.Run(context.Background(), func(ctx context.Context, s *shelfbuilder.Session) error {
		attempts++
		if attempts == 1 {
			return shelf.NewTxnRetryableError("blocked")
		}
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, 2, attempts)
}

func TestTransactionalSession_GivesUpAfterMaxAttempts(t *testing.T) {
	behavior := shelfbehavior.NewRoot()
	exec := shelfbatch.NewBatchExecutor(shelftransport.NewLocalTransport())
	txn := shelftxn.New(behavior, exec)

	attempts := 0
	err := txn.Run(context.Background(), func(ctx context.Context, s *shelfbuilder.Session) error {
		attempts++
		return shelf.NewTxnRetryableError("still blocked")
	})

	require.Error(t, err)
	assert.True(t, shelf.IsErrorKind(err, shelf.ErrTxnRetryable))
	assert.Equal(t, shelfbehavior.DefaultSettings().MaxAttempts, attempts)
}

func TestTransactionalSession_NonRetryableErrorStopsImmediately(t *testing.T) {
	behavior := shelfbehavior.NewRoot()
	exec := shelfbatch.NewBatchExecutor(shelftransport.NewLocalTransport())
	txn := shelftxn.New(behavior, exec)

	attempts := 0
	err := txn.Run(context.Background(), func(ctx context.Context, s *shelfbuilder.Session) error {
		attempts++
		return shelf.NewRecordNotFoundError()
	})

	require.Error(t, err)
	assert.Equal(t, 1, attempts)
}

func TestTransactionalSession_UsesSessionForWrites(t *testing.T) {
	behavior := shelfbehavior.NewRoot()
	tr := shelftransport.NewLocalTransport()
	exec := shelfbatch.NewBatchExecutor(tr)
	txn := shelftxn.New(behavior, exec)

	ds := shelf.NewDataSet("ns", "accounts")
	err := txn.Run(context.Background(), func(ctx context.Context, s *shelfbuilder.Session) error {
		_, err := s.Upsert(shelfbuilder.OneKey(ds.Key("a"))).
			Bin("balance").SetTo(shelf.I64Value(100)).
			Execute(ctx)
		return err
	})
	require.NoError(t, err)
}
