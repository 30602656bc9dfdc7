package shelfstream

import (
	"context"
	"time"

	"github.com/marmos91/shelf/pkg/shelf"
	"github.com/marmos91/shelf/pkg/shelfmetrics"
	"github.com/marmos91/shelf/pkg/shelftransport"
)

// EmptyStream produces nothing. Used whenever a builder can statically
// determine its op-list is vacuous (e.g. ManyKeys called with no keys).
type EmptyStream struct {
	streamAdapters
}

// NewEmpty returns a stream with no items.
func NewEmpty() *EmptyStream {
	s := &EmptyStream{}
	s.streamAdapters = streamAdapters{self: s}
	return s
}

func (s *EmptyStream) HasNext() bool      { return false }
func (s *EmptyStream) HasMoreChunks() bool { return false }
func (s *EmptyStream) Close() error        { return nil }
func (s *EmptyStream) Next(context.Context) (shelf.RecordResult, error) {
	return shelf.RecordResult{}, shelf.NewInvalidArgumentError("stream is exhausted")
}

// SingleItemStream produces zero or one item: the result of a point
// dispatch.
type SingleItemStream struct {
	streamAdapters
	item     shelf.RecordResult
	consumed bool
	hasItem  bool
}

// NewSingleItem wraps one RecordResult in a stream.
func NewSingleItem(item shelf.RecordResult) *SingleItemStream {
	s := &SingleItemStream{item: item, hasItem: true}
	s.streamAdapters = streamAdapters{self: s}
	return s
}

func (s *SingleItemStream) HasNext() bool      { return s.hasItem && !s.consumed }
func (s *SingleItemStream) HasMoreChunks() bool { return false }
func (s *SingleItemStream) Close() error        { return nil }
func (s *SingleItemStream) Next(context.Context) (shelf.RecordResult, error) {
	if !s.HasNext() {
		return shelf.RecordResult{}, shelf.NewInvalidArgumentError("stream is exhausted")
	}
	s.consumed = true
	return s.item, nil
}

// FixedArrayStream produces a fixed, already-fetched sequence of items —
// a batch dispatch's reply, or the residue of Failures()/AsNavigatable().
// It is restartable via Reset, unlike SingleItem/Chunked.
type FixedArrayStream struct {
	streamAdapters
	items []shelf.RecordResult
	pos   int
}

// NewFixedArray wraps a pre-fetched slice of results.
func NewFixedArray(items []shelf.RecordResult) *FixedArrayStream {
	s := &FixedArrayStream{items: items}
	s.streamAdapters = streamAdapters{self: s}
	return s
}

func (s *FixedArrayStream) HasNext() bool      { return s.pos < len(s.items) }
func (s *FixedArrayStream) HasMoreChunks() bool { return false }
func (s *FixedArrayStream) Close() error        { return nil }
func (s *FixedArrayStream) Next(context.Context) (shelf.RecordResult, error) {
	if !s.HasNext() {
		return shelf.RecordResult{}, shelf.NewInvalidArgumentError("stream is exhausted")
	}
	r := s.items[s.pos]
	s.pos++
	return r, nil
}

// Reset rewinds to the first item, supporting the variant table's
// "restartable via reset" column.
func (s *FixedArrayStream) Reset() { s.pos = 0 }

// ChunkedStream wraps a server-side scan cursor, pulling the next chunk
// only when the local queue drains. It is not restartable; closing
// it must tear down the cursor.
type ChunkedStream struct {
	streamAdapters
	cursor  shelftransport.ScanCursor
	metrics shelfmetrics.StreamMetrics

	buf       []shelftransport.BatchItemResult
	bufPos    int
	index     int
	exhausted bool
	pages     int
}

// NewChunked starts a Chunked stream over an already-open ScanCursor.
func NewChunked(cursor shelftransport.ScanCursor, metrics shelfmetrics.StreamMetrics) *ChunkedStream {
	s := &ChunkedStream{cursor: cursor, metrics: metrics}
	s.streamAdapters = streamAdapters{self: s, metrics: metrics}
	return s
}

func (s *ChunkedStream) HasNext() bool {
	if s.bufPos < len(s.buf) {
		return true
	}
	return !s.exhausted
}

func (s *ChunkedStream) HasMoreChunks() bool { return !s.exhausted }

func (s *ChunkedStream) Close() error {
	if s.metrics != nil && !s.exhausted {
		s.metrics.RecordClosed(s.pages)
	}
	return s.cursor.Close()
}

func (s *ChunkedStream) fetchChunk(ctx context.Context) error {
	start := time.Now()
	items, hasMore, err := s.cursor.Next(ctx)
	if err != nil {
		return err
	}
	s.pages++
	if s.metrics != nil {
		s.metrics.RecordPageFetch(time.Since(start), len(items))
	}
	s.buf = items
	s.bufPos = 0
	s.exhausted = !hasMore
	if s.exhausted && s.metrics != nil {
		s.metrics.RecordExhausted(s.pages)
	}
	return nil
}

func (s *ChunkedStream) Next(ctx context.Context) (shelf.RecordResult, error) {
	if s.bufPos >= len(s.buf) {
		if s.exhausted {
			return shelf.RecordResult{}, shelf.NewInvalidArgumentError("stream is exhausted")
		}
		if err := s.fetchChunk(ctx); err != nil {
			return shelf.RecordResult{}, err
		}
		if s.bufPos >= len(s.buf) {
			return shelf.RecordResult{}, shelf.NewInvalidArgumentError("stream is exhausted")
		}
	}
	item := s.buf[s.bufPos]
	s.bufPos++
	idx := s.index
	s.index++
	return shelf.RecordResult{Key: item.Key, Record: item.Record, ResultCode: item.ResultCode, InDoubt: item.InDoubt, Index: idx}, nil
}
