// Package shelfstream implements the polymorphic result stream and its
// buffered paginator/sorter: the common RecordResult iterator every
// BatchExecutor call returns, and the NavigatableRecordStream view built
// on top of it for in-memory re-sort and bidirectional pagination.
package shelfstream

import (
	"context"

	"github.com/marmos91/shelf/pkg/shelf"
	"github.com/marmos91/shelf/pkg/shelfbehavior"
	"github.com/marmos91/shelf/pkg/shelfmetrics"
)

// RecordStream is the common shape of all four stream variants:
// Empty, SingleItem, FixedArray, Chunked. Suspension only happens inside
// Next for a Chunked stream pulling its next chunk; every other method is
// a pure, non-blocking buffer operation.
type RecordStream interface {
	HasNext() bool
	Next(ctx context.Context) (shelf.RecordResult, error)
	HasMoreChunks() bool
	Close() error

	// StreamView drains the remainder into a plain slice.
	StreamView(ctx context.Context) ([]shelf.RecordResult, error)
	ForEach(ctx context.Context, consumer func(shelf.RecordResult) error) error
	ToObjectList(ctx context.Context, mapper func(shelf.RecordResult) (any, error)) ([]any, error)
	GetFirst(ctx context.Context, throwOnError bool) (shelf.RecordResult, bool, error)
	Failures(ctx context.Context) (RecordStream, error)
	AsNavigatable(ctx context.Context, limit int) (*NavigatableRecordStream, error)
}

// drain pulls up to limit items (limit <= 0 means unbounded) off s,
// sharing the loop every ForEach/StreamView/AsNavigatable-style adapter
// needs. When throwOnAny is set, the first non-OK result stops the drain
// and its ErrorFromResultCode is returned alongside whatever was
// collected so far.
func drain(ctx context.Context, s RecordStream, limit int, throwOnAny bool) ([]shelf.RecordResult, error) {
	var out []shelf.RecordResult
	for s.HasNext() {
		if limit > 0 && len(out) >= limit {
			break
		}
		r, err := s.Next(ctx)
		if err != nil {
			return out, err
		}
		if throwOnAny && !r.OK() {
			return out, shelf.ErrorFromResultCode(r.ResultCode)
		}
		out = append(out, r)
	}
	return out, nil
}

// streamAdapters implements every RecordStream method except HasNext,
// Next, HasMoreChunks, Close, by delegating to drain/the embedding type's
// own Next/HasNext. Variants embed it to avoid repeating the same
// adapter bodies in all four variants.
//
// throwOnAny mirrors the resolved Settings.ExceptionPolicy for the
// Execute/ExecuteScan call that produced this stream:
// SetExceptionPolicy is called once, right after construction, by
// BatchExecutor.
type streamAdapters struct {
	self       RecordStream
	metrics    shelfmetrics.StreamMetrics
	throwOnAny bool
}

// SetExceptionPolicy records the resolved ExceptionPolicy this stream's
// adapters should honor. Mutates in place rather than returning a new
// value so callers can keep the concrete *XStream type they constructed.
func (a *streamAdapters) SetExceptionPolicy(policy shelfbehavior.ExceptionPolicy) {
	a.throwOnAny = policy == shelfbehavior.ExceptionPolicyThrowAny
}

func (a streamAdapters) StreamView(ctx context.Context) ([]shelf.RecordResult, error) {
	return drain(ctx, a.self, 0, a.throwOnAny)
}

func (a streamAdapters) ForEach(ctx context.Context, consumer func(shelf.RecordResult) error) error {
	for a.self.HasNext() {
		r, err := a.self.Next(ctx)
		if err != nil {
			return err
		}
		if a.throwOnAny && !r.OK() {
			return shelf.ErrorFromResultCode(r.ResultCode)
		}
		if err := consumer(r); err != nil {
			return err
		}
	}
	return nil
}

func (a streamAdapters) ToObjectList(ctx context.Context, mapper func(shelf.RecordResult) (any, error)) ([]any, error) {
	items, err := drain(ctx, a.self, 0, a.throwOnAny)
	if err != nil {
		return nil, err
	}
	out := make([]any, 0, len(items))
	for _, r := range items {
		v, err := mapper(r)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

func (a streamAdapters) GetFirst(ctx context.Context, throwOnError bool) (shelf.RecordResult, bool, error) {
	if !a.self.HasNext() {
		return shelf.RecordResult{}, false, nil
	}
	r, err := a.self.Next(ctx)
	if err != nil {
		return shelf.RecordResult{}, false, err
	}
	if (throwOnError || a.throwOnAny) && !r.OK() {
		return r, true, shelf.ErrorFromResultCode(r.ResultCode)
	}
	return r, true, nil
}

func (a streamAdapters) Failures(ctx context.Context) (RecordStream, error) {
	// Never throws regardless of policy: its entire purpose is to
	// surface the non-OK subset for inspection.
	items, err := drain(ctx, a.self, 0, false)
	if err != nil {
		return nil, err
	}
	var failed []shelf.RecordResult
	for _, r := range items {
		if !r.OK() {
			failed = append(failed, r)
		}
	}
	return NewFixedArray(failed), nil
}

func (a streamAdapters) AsNavigatable(ctx context.Context, limit int) (*NavigatableRecordStream, error) {
	items, err := drain(ctx, a.self, limit, a.throwOnAny)
	if err != nil {
		return nil, err
	}
	return NewNavigatableRecordStream(items), nil
}
