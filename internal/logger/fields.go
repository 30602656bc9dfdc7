package logger

import (
	"log/slog"
)

// Standard field keys for structured logging.
// Use these keys consistently across all log statements for log aggregation
// and querying.
const (
	// ========================================================================
	// Distributed Tracing
	// ========================================================================
	KeyTraceID = "trace_id" // OpenTelemetry trace ID for request correlation
	KeySpanID  = "span_id"  // OpenTelemetry span ID for operation tracking

	// ========================================================================
	// Operation shape (protocol-agnostic)
	// ========================================================================
	KeyOpKind    = "op_kind"    // Insert, Upsert, Update, Replace, Delete, Touch, Exists, Query
	KeyOpShape   = "op_shape"   // Point, Batch, Query, System
	KeyMode      = "mode"       // AP, SC, Any
	KeyNamespace = "namespace"  // key namespace
	KeySet       = "set"        // key set
	KeyKeyCount  = "key_count"  // number of keys in the request

	// ========================================================================
	// Behavior / Settings resolution
	// ========================================================================
	KeyBehavior    = "behavior"     // behavior name
	KeyParent      = "parent"       // parent behavior name
	KeyScope       = "scope"        // scope applied during resolution
	KeyCacheHit    = "cache_hit"    // resolution cache hit indicator
	KeyRegistryGen = "registry_gen" // registry version/generation

	// ========================================================================
	// Batch / stream
	// ========================================================================
	KeyRequestID  = "request_id"  // batch request correlation id (uuid)
	KeyIndex      = "index"       // position within a batch/stream
	KeyResultCode = "result_code" // per-record result code
	KeyInDoubt    = "in_doubt"    // write outcome unknown after network fault
	KeyPage       = "page"        // current page number
	KeyPageSize   = "page_size"   // page size
	KeyMaxPages   = "max_pages"   // total pages

	// ========================================================================
	// Config / hot reload
	// ========================================================================
	KeySource    = "source"    // config source kind: file, postgres, sqlite
	KeyConfigGen = "config_gen" // config generation/version published

	// ========================================================================
	// Retry / transaction
	// ========================================================================
	KeyAttempt    = "attempt"     // retry attempt number
	KeyMaxRetries = "max_retries" // maximum retry attempts
	KeyTxnID      = "txn_id"      // transaction correlation id

	// ========================================================================
	// Operation metadata
	// ========================================================================
	KeyDurationMs = "duration_ms" // operation duration in milliseconds
	KeyError      = "error"       // error message
	KeyErrorCode  = "error_code"  // numeric/symbolic error code
)

// TraceID returns a slog.Attr for OpenTelemetry trace ID.
func TraceID(id string) slog.Attr { return slog.String(KeyTraceID, id) }

// SpanID returns a slog.Attr for OpenTelemetry span ID.
func SpanID(id string) slog.Attr { return slog.String(KeySpanID, id) }

// OpKind returns a slog.Attr for the operation kind.
func OpKind(kind string) slog.Attr { return slog.String(KeyOpKind, kind) }

// OpShape returns a slog.Attr for the operation shape.
func OpShape(shape string) slog.Attr { return slog.String(KeyOpShape, shape) }

// Mode returns a slog.Attr for the consistency mode.
func Mode(mode string) slog.Attr { return slog.String(KeyMode, mode) }

// Namespace returns a slog.Attr for a key namespace.
func Namespace(ns string) slog.Attr { return slog.String(KeyNamespace, ns) }

// Set returns a slog.Attr for a key set.
func Set(set string) slog.Attr { return slog.String(KeySet, set) }

// KeyCount returns a slog.Attr for the number of keys in a request.
func KeyCount(n int) slog.Attr { return slog.Int(KeyKeyCount, n) }

// Behavior returns a slog.Attr for a behavior name.
func Behavior(name string) slog.Attr { return slog.String(KeyBehavior, name) }

// Parent returns a slog.Attr for a parent behavior name.
func Parent(name string) slog.Attr { return slog.String(KeyParent, name) }

// Scope returns a slog.Attr for a resolution scope.
func Scope(scope string) slog.Attr { return slog.String(KeyScope, scope) }

// CacheHit returns a slog.Attr for a resolution cache hit indicator.
func CacheHit(hit bool) slog.Attr { return slog.Bool(KeyCacheHit, hit) }

// RequestID returns a slog.Attr for a batch request correlation id.
func RequestID(id string) slog.Attr { return slog.String(KeyRequestID, id) }

// Index returns a slog.Attr for a position within a batch/stream.
func Index(i int) slog.Attr { return slog.Int(KeyIndex, i) }

// ResultCode returns a slog.Attr for a per-record result code.
func ResultCode(code string) slog.Attr { return slog.String(KeyResultCode, code) }

// InDoubt returns a slog.Attr for the in-doubt indicator.
func InDoubt(inDoubt bool) slog.Attr { return slog.Bool(KeyInDoubt, inDoubt) }

// Page returns a slog.Attr for the current page number.
func Page(p int) slog.Attr { return slog.Int(KeyPage, p) }

// PageSize returns a slog.Attr for the page size.
func PageSize(n int) slog.Attr { return slog.Int(KeyPageSize, n) }

// MaxPages returns a slog.Attr for the total number of pages.
func MaxPages(n int) slog.Attr { return slog.Int(KeyMaxPages, n) }

// Source returns a slog.Attr for a config source kind.
func Source(src string) slog.Attr { return slog.String(KeySource, src) }

// Attempt returns a slog.Attr for a retry attempt number.
func Attempt(n int) slog.Attr { return slog.Int(KeyAttempt, n) }

// MaxRetries returns a slog.Attr for the maximum retry attempts.
func MaxRetries(n int) slog.Attr { return slog.Int(KeyMaxRetries, n) }

// TxnID returns a slog.Attr for a transaction correlation id.
func TxnID(id string) slog.Attr { return slog.String(KeyTxnID, id) }

// DurationMs returns a slog.Attr for a duration in milliseconds.
func DurationMs(ms float64) slog.Attr { return slog.Float64(KeyDurationMs, ms) }

// Err returns a slog.Attr for an error.
func Err(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.String(KeyError, err.Error())
}

// ErrorCode returns a slog.Attr for a numeric error code.
func ErrorCode(code int) slog.Attr { return slog.Int(KeyErrorCode, code) }
