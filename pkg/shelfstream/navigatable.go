package shelfstream

import (
	"context"
	"math"
	"sort"

	"golang.org/x/text/cases"

	"github.com/marmos91/shelf/pkg/shelf"
)

// SortDirection is the direction of one sort key in a sort_spec.
type SortDirection int

const (
	Ascending SortDirection = iota
	Descending
)

// SortKey is one entry of a NavigatableRecordStream's sort_spec: sort by
// Field within the record's bins, in Direction, optionally folding string
// comparisons case-insensitively.
type SortKey struct {
	Field         string
	Direction     SortDirection
	CaseSensitive bool
}

var foldCaser = cases.Fold()

// NavigatableRecordStream is a bounded, in-memory buffer over a prefix of
// a source RecordStream, supporting additive re-sort and bidirectional,
// 1-based pagination. It is not safe for concurrent use.
type NavigatableRecordStream struct {
	original []shelf.RecordResult // insertion order, never reordered
	buffer   []shelf.RecordResult // current sort order

	sortSpec []SortKey
	pageSize int
	page     int // 1-based
	posInPage int
}

// NewNavigatableRecordStream wraps an already-drained slice of results.
func NewNavigatableRecordStream(items []shelf.RecordResult) *NavigatableRecordStream {
	original := make([]shelf.RecordResult, len(items))
	copy(original, items)
	buffer := make([]shelf.RecordResult, len(items))
	copy(buffer, items)
	return &NavigatableRecordStream{original: original, buffer: buffer, pageSize: len(items), page: 1}
}

// Size is the buffer's fixed item count; it never changes across re-sorts
// or pagination.
func (n *NavigatableRecordStream) Size() int { return len(n.buffer) }

// SortBy appends a sort key to the spec (primary key first), then
// re-sorts the buffer.
func (n *NavigatableRecordStream) SortBy(field string, dir SortDirection, caseSensitive bool) {
	n.sortSpec = append(n.sortSpec, SortKey{Field: field, Direction: dir, CaseSensitive: caseSensitive})
	n.applySort()
}

// SortByAll replaces the sort spec wholesale, then re-sorts.
func (n *NavigatableRecordStream) SortByAll(keys []SortKey) {
	n.sortSpec = append([]SortKey(nil), keys...)
	n.applySort()
}

// ClearSort removes every sort key, restoring original insertion order.
func (n *NavigatableRecordStream) ClearSort() {
	n.sortSpec = nil
	copy(n.buffer, n.original)
}

func (n *NavigatableRecordStream) applySort() {
	n.posInPage = 0
	if len(n.sortSpec) == 0 {
		copy(n.buffer, n.original)
		return
	}
	sort.SliceStable(n.buffer, func(i, j int) bool {
		for _, key := range n.sortSpec {
			av, aok := fieldValue(n.buffer[i], key.Field)
			bv, bok := fieldValue(n.buffer[j], key.Field)

			// A missing/null field sorts before any present value
			// regardless of direction; only present-vs-present
			// comparisons are subject to the direction flip.
			if !aok || !bok {
				if aok == bok {
					continue
				}
				return !aok
			}

			cmp := compareValues(av, bv, key.CaseSensitive)
			if cmp != 0 {
				if key.Direction == Descending {
					return cmp > 0
				}
				return cmp < 0
			}
		}
		return false
	})
}

func fieldValue(r shelf.RecordResult, field string) (shelf.Value, bool) {
	if r.Record == nil {
		return shelf.Value{}, false
	}
	v, ok := r.Record.Bins[field]
	if !ok || v.Kind == shelf.KindNil {
		return shelf.Value{}, false
	}
	return v, true
}

func compareValues(a, b shelf.Value, caseSensitive bool) int {
	if a.Kind == shelf.KindString && b.Kind == shelf.KindString {
		as, bs := a.Str, b.Str
		if !caseSensitive {
			as, bs = foldCaser.String(as), foldCaser.String(bs)
		}
		switch {
		case as < bs:
			return -1
		case as > bs:
			return 1
		default:
			return 0
		}
	}

	af, aok := numericOf(a)
	bf, bok := numericOf(b)
	if aok && bok {
		switch {
		case af < bf:
			return -1
		case af > bf:
			return 1
		default:
			return 0
		}
	}
	return 0
}

func numericOf(v shelf.Value) (float64, bool) {
	switch v.Kind {
	case shelf.KindI64:
		return float64(v.I64), true
	case shelf.KindF64:
		return v.F64, true
	default:
		return 0, false
	}
}

// PageSize sets the page size; n must be > 0.
func (n *NavigatableRecordStream) PageSize(size int) error {
	if size <= 0 {
		return shelf.NewInvalidArgumentError("page size must be > 0")
	}
	n.pageSize = size
	if n.page > n.MaxPages() {
		n.page = n.MaxPages()
	}
	if n.page < 1 {
		n.page = 1
	}
	n.posInPage = 0
	return nil
}

// MaxPages is ceil(size / pageSize), at least 1.
func (n *NavigatableRecordStream) MaxPages() int {
	if n.pageSize <= 0 || len(n.buffer) == 0 {
		return 1
	}
	return int(math.Ceil(float64(len(n.buffer)) / float64(n.pageSize)))
}

// CurrentPage returns the 1-based current page number.
func (n *NavigatableRecordStream) CurrentPage() int { return n.page }

// SetPageTo jumps to page p (1-based); p must be in [1, MaxPages()].
func (n *NavigatableRecordStream) SetPageTo(p int) error {
	if p < 1 || p > n.MaxPages() {
		return shelf.NewInvalidArgumentError("page out of range")
	}
	n.page = p
	n.posInPage = 0
	return nil
}

// Reset jumps back to page 1.
func (n *NavigatableRecordStream) Reset() {
	n.page = 1
	n.posInPage = 0
}

func (n *NavigatableRecordStream) pageBounds() (int, int) {
	start := (n.page - 1) * n.pageSize
	end := start + n.pageSize
	if start > len(n.buffer) {
		start = len(n.buffer)
	}
	if end > len(n.buffer) {
		end = len(n.buffer)
	}
	return start, end
}

// HasMorePages reports whether a page after the current one exists.
func (n *NavigatableRecordStream) HasMorePages() bool { return n.page < n.MaxPages() }

// CurrentPageItems returns the current page's items in sort order.
func (n *NavigatableRecordStream) CurrentPageItems() []shelf.RecordResult {
	start, end := n.pageBounds()
	return n.buffer[start:end]
}

// ToObjectList maps the current page only through mapper.
func (n *NavigatableRecordStream) ToObjectList(mapper func(shelf.RecordResult) (any, error)) ([]any, error) {
	items := n.CurrentPageItems()
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

// HasNext reports whether the current page has another unread item.
// Advancing past the last item of a page does not cross a page boundary
// on its own — callers combine HasMorePages/SetPageTo to move on, per
// the stream paginates bidirectionally rather than iterating flat.
func (n *NavigatableRecordStream) HasNext() bool {
	start, end := n.pageBounds()
	return start+n.posInPage < end
}

// Next returns the next unread item of the current page and advances.
func (n *NavigatableRecordStream) Next(ctx context.Context) (shelf.RecordResult, error) {
	if err := ctx.Err(); err != nil {
		return shelf.RecordResult{}, err
	}
	if !n.HasNext() {
		return shelf.RecordResult{}, shelf.NewInvalidArgumentError("page is exhausted")
	}
	start, _ := n.pageBounds()
	r := n.buffer[start+n.posInPage]
	n.posInPage++
	return r, nil
}
