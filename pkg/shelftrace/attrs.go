package shelftrace

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// Span names for the three I/O surfaces this package instruments.
const (
	SpanBatchExecute  = "batch.execute"
	SpanScanExecute   = "scan.execute"
	SpanConfigReload  = "config.reload"
	SpanTxnRetry      = "txn.retry"
	SpanTxnRun        = "txn.run"
)

// Attribute keys, namespaced by the concept they describe.
const (
	AttrOpKind       = "shelf.op_kind"
	AttrBehavior     = "shelf.behavior"
	AttrNamespace    = "shelf.namespace"
	AttrSet          = "shelf.set"
	AttrKeyCount     = "shelf.key_count"
	AttrResultCode   = "shelf.result_code"
	AttrInDoubt      = "shelf.in_doubt"
	AttrAttempt      = "shelf.attempt"
	AttrGeneration   = "shelf.generation"
	AttrConfigSource = "shelf.config_source"
)

func OpKind(kind string) attribute.KeyValue    { return attribute.String(AttrOpKind, kind) }
func Behavior(name string) attribute.KeyValue  { return attribute.String(AttrBehavior, name) }
func Namespace(ns string) attribute.KeyValue   { return attribute.String(AttrNamespace, ns) }
func Set(set string) attribute.KeyValue        { return attribute.String(AttrSet, set) }
func KeyCount(n int) attribute.KeyValue        { return attribute.Int(AttrKeyCount, n) }
func ResultCode(code string) attribute.KeyValue { return attribute.String(AttrResultCode, code) }
func InDoubt(v bool) attribute.KeyValue        { return attribute.Bool(AttrInDoubt, v) }
func Attempt(n int) attribute.KeyValue         { return attribute.Int(AttrAttempt, n) }
func Generation(g uint32) attribute.KeyValue   { return attribute.Int64(AttrGeneration, int64(g)) }
func ConfigSource(name string) attribute.KeyValue {
	return attribute.String(AttrConfigSource, name)
}

// StartBatchSpan starts the span wrapping one BatchExecutor.Execute call.
func StartBatchSpan(ctx context.Context, opKind, behaviorName string, keyCount int) (context.Context, trace.Span) {
	return StartSpan(ctx, SpanBatchExecute, trace.WithAttributes(
		OpKind(opKind), Behavior(behaviorName), KeyCount(keyCount),
	))
}

// StartScanSpan starts the span wrapping one Transport.ExecuteScan call.
func StartScanSpan(ctx context.Context, namespace, set string) (context.Context, trace.Span) {
	return StartSpan(ctx, SpanScanExecute, trace.WithAttributes(Namespace(namespace), Set(set)))
}

// StartConfigReloadSpan starts the span wrapping one config-watcher reload.
func StartConfigReloadSpan(ctx context.Context, source string) (context.Context, trace.Span) {
	return StartSpan(ctx, SpanConfigReload, trace.WithAttributes(ConfigSource(source)))
}

// StartTxnRunSpan starts the span wrapping a TransactionalSession's full
// run, including all retries.
func StartTxnRunSpan(ctx context.Context) (context.Context, trace.Span) {
	return StartSpan(ctx, SpanTxnRun)
}

// StartTxnRetrySpan starts the span wrapping one attempt of a
// TransactionalSession's closure.
func StartTxnRetrySpan(ctx context.Context, attempt int) (context.Context, trace.Span) {
	return StartSpan(ctx, SpanTxnRetry, trace.WithAttributes(Attempt(attempt)))
}
