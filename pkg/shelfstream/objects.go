package shelfstream

import (
	"context"

	"github.com/marmos91/shelf/pkg/shelf"
)

// ToObjects drains s through m, reconstructing one T per result that
// carries a record. Results without a record (Exists probes, per-record
// failures) are skipped rather than handed to the mapper — call Failures
// first when the non-OK subset matters. The stream's exception policy
// still applies: under ThrowAny the first non-OK result surfaces as an
// error before any mapping happens.
func ToObjects[T any](ctx context.Context, s RecordStream, m shelf.Mapper[T]) ([]T, error) {
	items, err := s.StreamView(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]T, 0, len(items))
	for _, r := range items {
		if r.Record == nil {
			continue
		}
		v, err := m.FromRecord(r.Record.Bins, r.Key, r.Record.Generation)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

// PageToObjects maps the current page of n through m, with the same
// skip-recordless-results rule as ToObjects.
func PageToObjects[T any](n *NavigatableRecordStream, m shelf.Mapper[T]) ([]T, error) {
	items := n.CurrentPageItems()
	out := make([]T, 0, len(items))
	for _, r := range items {
		if r.Record == nil {
			continue
		}
		v, err := m.FromRecord(r.Record.Bins, r.Key, r.Record.Generation)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

// MapperFunc adapts a Mapper into the untyped closure ToObjectList takes,
// for callers that want mapper-backed results off the RecordStream
// interface itself rather than the generic helpers above.
func MapperFunc[T any](m shelf.Mapper[T]) func(shelf.RecordResult) (any, error) {
	return func(r shelf.RecordResult) (any, error) {
		if r.Record == nil {
			return nil, shelf.NewInvalidArgumentError("result carries no record to map")
		}
		return m.FromRecord(r.Record.Bins, r.Key, r.Record.Generation)
	}
}
