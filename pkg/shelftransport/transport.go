// Package shelftransport defines the wire-level boundary a BatchExecutor
// dispatches through. Reimplementing the underlying network transport is
// explicitly out of scope; this package only fixes the interface shape a
// transport must satisfy, plus an in-memory reference implementation used
// by tests and by shelfctl's local/offline mode.
package shelftransport

import (
	"context"

	"github.com/marmos91/shelf/pkg/shelf"
	"github.com/marmos91/shelf/pkg/shelfbehavior"
)

// BatchItem is one per-key unit of work handed to a Transport. It carries
// everything a BatchExecutor has already resolved for a single key: the
// op-list, the optional filter/TTL/generation guards, and the delete-mode
// flag. ReadOnlyBins, when set, restricts a query's projection to the bins
// named in Ops.
type BatchItem struct {
	Key  shelf.Key
	Ops  []shelf.Op
	Kind shelf.OpKind

	Filter     *shelf.FilterExpression
	TTL        *shelf.TTLPolicy
	Generation *shelf.GenerationCheck

	DurableDelete bool
	ReadOnlyBins  bool
}

// BatchItemResult is a transport's verdict on one BatchItem. Index echoes
// the position of the originating item in the ExecuteBatch request slice:
// a transport fanning out across nodes may reply in completion order, and
// the BatchExecutor reassembles request order from it. Scan cursors leave
// it zero — a Chunked stream numbers its results itself. Key is the
// record's key: batch callers already know it from their request, but a
// scan cursor's consumer has nothing else to identify a record by, so
// transports must populate it on the ExecuteScan path.
type BatchItemResult struct {
	Index      int
	Key        shelf.Key
	Record     *shelf.Record
	ResultCode shelf.ResultCode
	InDoubt    bool
}

// ScanCursor pages through the records matched by an ExecuteScan call. A
// false second return from Next means the scan is exhausted; callers must
// still call Close in that case.
type ScanCursor interface {
	Next(ctx context.Context) (items []BatchItemResult, hasMore bool, err error)
	Close() error
}

// Transport is the boundary a BatchExecutor dispatches through. Settings
// resolved by a Behavior (pool sizing, timeouts, retry policy) are passed
// in per call rather than baked into the Transport at construction, since
// two sibling behaviors sharing one cluster connection may resolve
// different Settings for the same physical transport.
type Transport interface {
	ExecuteBatch(ctx context.Context, items []BatchItem, settings shelfbehavior.Settings) ([]BatchItemResult, error)
	ExecuteScan(ctx context.Context, ds shelf.DataSet, filter *shelf.FilterExpression, settings shelfbehavior.Settings) (ScanCursor, error)
	Truncate(ctx context.Context, ds shelf.DataSet, settings shelfbehavior.Settings) error
	Info(ctx context.Context, nodeAddress string, command string) (string, error)

	// ListIndexes returns every secondary index currently defined on the
	// cluster. The shelfindex cache polls this to keep its local metadata
	// fresh.
	ListIndexes(ctx context.Context) ([]shelf.IndexMetadata, error)

	Close() error
}
