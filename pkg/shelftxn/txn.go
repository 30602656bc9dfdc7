// Package shelftxn implements the TransactionalSession: a closure
// wrapper that re-runs its entire body whenever the server reports a
// retryable multi-record-transaction outcome (BLOCKED, VERSION_MISMATCH,
// TXN_FAILED), up to the TxnVerify scope's Settings.max_attempts.
package shelftxn

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/marmos91/shelf/internal/logger"
	"github.com/marmos91/shelf/pkg/shelf"
	"github.com/marmos91/shelf/pkg/shelfbehavior"
	"github.com/marmos91/shelf/pkg/shelfbuilder"
	"github.com/marmos91/shelf/pkg/shelfmetrics"
	"github.com/marmos91/shelf/pkg/shelftrace"
)

// Fn is a transaction body. It receives a Session scoped to this
// transaction and must be idempotent: a retryable error surfacing from any
// call inside it causes the whole closure to run again from the top, not
// just the failing call.
type Fn func(ctx context.Context, s *shelfbuilder.Session) error

// TransactionalSession runs a closure against a Behavior-scoped Session,
// retrying on ErrTxnRetryable per the TxnVerify scope's Settings.
type TransactionalSession struct {
	behavior *shelfbehavior.Behavior
	executor shelfbuilder.Executor
	metrics  shelfmetrics.BatchMetrics
}

// New binds a TransactionalSession to behavior and executor. Settings
// governing retry count and delay are resolved fresh on every Run call
// against KindTxnVerify, so a hot-reloaded Behavior takes effect on the
// next Run without rebuilding the TransactionalSession.
func New(behavior *shelfbehavior.Behavior, executor shelfbuilder.Executor) *TransactionalSession {
	return &TransactionalSession{behavior: behavior, executor: executor}
}

// WithMetrics attaches the metrics retry attempts are recorded against.
func (t *TransactionalSession) WithMetrics(metrics shelfmetrics.BatchMetrics) *TransactionalSession {
	t.metrics = metrics
	return t
}

// Run executes fn, re-invoking it in full whenever it returns an
// ErrTxnRetryable ShelfError, up to Settings.max_attempts. Operations a
// caller starts from s.NotInTransaction() bypass the transaction context
// and commit immediately on their own Settings; because fn is re-invoked
// in full, such calls run again on every retried attempt.
func (t *TransactionalSession) Run(ctx context.Context, fn Fn) error {
	settings := t.behavior.Resolve(shelfbehavior.KindTxnVerify, shelfbehavior.ShapeSystem, shelfbehavior.ModeAny)

	txnID := uuid.New().String()
	ctx, runSpan := shelftrace.StartTxnRunSpan(ctx)
	defer runSpan.End()
	shelftrace.SetAttributes(ctx, shelftrace.Attempt(settings.MaxAttempts))

	session := shelfbuilder.NewSession(t.behavior, t.executor)

	maxAttempts := settings.MaxAttempts
	if maxAttempts < 1 {
		maxAttempts = 1
	}

	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		attemptCtx, attemptSpan := shelftrace.StartTxnRetrySpan(ctx, attempt)
		logger.Debug("txn attempt starting",
			logger.TxnID(txnID),
			logger.Attempt(attempt),
			logger.MaxRetries(maxAttempts),
		)

		err := fn(attemptCtx, session)
		attemptSpan.End()

		if err == nil {
			logger.Debug("txn committed", logger.TxnID(txnID), logger.Attempt(attempt))
			return nil
		}

		lastErr = err
		if !shelf.IsErrorKind(err, shelf.ErrTxnRetryable) {
			shelftrace.RecordError(ctx, err)
			return err
		}

		if t.metrics != nil {
			t.metrics.RecordRetry(attempt)
		}
		logger.Warn("txn attempt retryable, re-running closure",
			logger.TxnID(txnID),
			logger.Attempt(attempt),
			logger.Err(err),
		)

		if attempt == maxAttempts {
			break
		}
		if settings.DelayBetween > 0 {
			select {
			case <-time.After(settings.DelayBetween):
			case <-ctx.Done():
				return ctx.Err()
			}
		}
	}

	shelftrace.RecordError(ctx, lastErr)
	logger.Error("txn exhausted retries", logger.TxnID(txnID), logger.MaxRetries(maxAttempts), logger.Err(lastErr))
	return lastErr
}
