// Package shelfbatch implements the BatchExecutor: it partitions
// a chain's accumulated OpSpecs into per-key transport batch items, fires
// one batched transport call, and adapts the replies into an
// order-preserving RecordStream. Fan-out concurrency across server nodes
// (bounded by Settings.max_concurrent_servers) is the transport's
// responsibility, not this package's.
package shelfbatch

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/marmos91/shelf/internal/logger"
	"github.com/marmos91/shelf/pkg/shelf"
	"github.com/marmos91/shelf/pkg/shelfbehavior"
	"github.com/marmos91/shelf/pkg/shelfmetrics"
	"github.com/marmos91/shelf/pkg/shelfstream"
	"github.com/marmos91/shelf/pkg/shelftrace"
	"github.com/marmos91/shelf/pkg/shelftransport"
)

// dispatchUnit is one (spec_index, key_index) tuple's worth of work, kept
// alongside its target index in the flattened request order.
type dispatchUnit struct {
	item  shelftransport.BatchItem
	key   shelf.Key
	index int
}

// BatchExecutor dispatches a chain's [OpSpec] against a transport and
// synthesizes the resulting RecordStream.
type BatchExecutor struct {
	transport     shelftransport.Transport
	metrics       shelfmetrics.BatchMetrics
	streamMetrics shelfmetrics.StreamMetrics
}

// NewBatchExecutor binds a BatchExecutor to one transport.
func NewBatchExecutor(transport shelftransport.Transport) *BatchExecutor {
	return &BatchExecutor{transport: transport}
}

// WithMetrics attaches batch dispatch/result metrics.
func (e *BatchExecutor) WithMetrics(metrics shelfmetrics.BatchMetrics) *BatchExecutor {
	e.metrics = metrics
	return e
}

// WithStreamMetrics attaches the metrics a Chunked stream opened via
// ExecuteScan records page fetches and exhaustion against.
func (e *BatchExecutor) WithStreamMetrics(metrics shelfmetrics.StreamMetrics) *BatchExecutor {
	e.streamMetrics = metrics
	return e
}

// Execute fires specs against the transport under settings and returns a
// RecordStream in request order regardless of the order the transport
// replied in.
func (e *BatchExecutor) Execute(ctx context.Context, specs []shelf.OpSpec, behaviorName string, settings shelfbehavior.Settings) (shelfstream.RecordStream, error) {
	units := flatten(specs)
	if len(units) == 0 {
		return shelfstream.NewEmpty(), nil
	}

	opKind := units[0].item.Kind.String()
	ctx, span := shelftrace.StartBatchSpan(ctx, opKind, behaviorName, len(units))
	defer span.End()

	requestID := uuid.New().String()
	logger.Debug("batch dispatch starting",
		logger.RequestID(requestID),
		logger.OpKind(opKind),
		logger.KeyCount(len(units)),
	)

	if e.metrics != nil {
		e.metrics.RecordDispatchStart(opKind)
	}

	items := make([]shelftransport.BatchItem, len(units))
	for i, u := range units {
		items[i] = u.item
	}

	start := time.Now()
	results, err := e.transport.ExecuteBatch(ctx, items, settings)

	if e.metrics != nil {
		e.metrics.RecordDispatchEnd(opKind, time.Since(start), len(units))
	}

	if err != nil {
		shelftrace.RecordError(ctx, err)
		logger.Error("batch dispatch failed", logger.RequestID(requestID), logger.Err(err))
		return nil, err
	}

	// Reassemble request order from each result's echoed Index: the
	// stream yields by request position no matter what order the
	// transport's fan-out completed in.
	if len(results) != len(units) {
		err := shelf.NewConnectionError("transport returned mismatched batch result count")
		shelftrace.RecordError(ctx, err)
		logger.Error("batch reply malformed", logger.RequestID(requestID), logger.Err(err))
		return nil, err
	}

	ordered := make([]shelf.RecordResult, len(units))
	for _, r := range results {
		if r.Index < 0 || r.Index >= len(units) {
			err := shelf.NewConnectionError("transport returned out-of-range batch result index")
			shelftrace.RecordError(ctx, err)
			logger.Error("batch reply malformed", logger.RequestID(requestID), logger.Err(err))
			return nil, err
		}
		u := units[r.Index]
		ordered[r.Index] = shelf.RecordResult{
			Key:        u.key,
			Record:     r.Record,
			ResultCode: r.ResultCode,
			InDoubt:    r.InDoubt,
			Index:      u.index,
		}
		if e.metrics != nil {
			e.metrics.RecordResult(opKind, string(r.ResultCode), r.InDoubt)
		}
	}

	if len(ordered) == 1 {
		stream := shelfstream.NewSingleItem(ordered[0])
		stream.SetExceptionPolicy(settings.ExceptionPolicy)
		return stream, nil
	}

	stream := shelfstream.NewFixedArray(ordered)
	stream.SetExceptionPolicy(settings.ExceptionPolicy)
	return stream, nil
}

// ExecuteScan opens a Chunked stream over a DataSet query/truncate.
func (e *BatchExecutor) ExecuteScan(ctx context.Context, ds shelf.DataSet, filter *shelf.FilterExpression, settings shelfbehavior.Settings) (shelfstream.RecordStream, error) {
	ctx, span := shelftrace.StartScanSpan(ctx, ds.Namespace, ds.Set)
	defer span.End()

	cursor, err := e.transport.ExecuteScan(ctx, ds, filter, settings)
	if err != nil {
		shelftrace.RecordError(ctx, err)
		return nil, err
	}
	stream := shelfstream.NewChunked(cursor, e.streamMetrics)
	stream.SetExceptionPolicy(settings.ExceptionPolicy)
	return stream, nil
}

// Truncate removes every record in ds, per the Surface API's truncate
// verb. It bypasses the per-key dispatch path entirely — a
// DataSet-wide operation has no [OpSpec] to flatten.
func (e *BatchExecutor) Truncate(ctx context.Context, ds shelf.DataSet, settings shelfbehavior.Settings) error {
	ctx, span := shelftrace.StartScanSpan(ctx, ds.Namespace, ds.Set)
	defer span.End()

	if err := e.transport.Truncate(ctx, ds, settings); err != nil {
		shelftrace.RecordError(ctx, err)
		return err
	}
	return nil
}

// Info runs a text info-command against a single node, resolved against the Info scope's Settings.
func (e *BatchExecutor) Info(ctx context.Context, nodeAddress, command string, settings shelfbehavior.Settings) (string, error) {
	return e.transport.Info(ctx, nodeAddress, command)
}

func flatten(specs []shelf.OpSpec) []dispatchUnit {
	var units []dispatchUnit
	index := 0
	for _, spec := range specs {
		for _, key := range spec.Keys {
			units = append(units, dispatchUnit{
				item: shelftransport.BatchItem{
					Key:           key,
					Ops:           spec.Ops,
					Kind:          spec.Kind,
					Filter:        spec.Filter,
					TTL:           spec.TTL,
					Generation:    spec.Generation,
					DurableDelete: spec.DurableDelete,
					ReadOnlyBins:  spec.ReadOnlyBins,
				},
				key:   key,
				index: index,
			})
			index++
		}
	}
	return units
}
