package shelfbuilder

import (
	"context"

	"github.com/marmos91/shelf/pkg/shelf"
	"github.com/marmos91/shelf/pkg/shelfbehavior"
	"github.com/marmos91/shelf/pkg/shelfstream"
)

// QueryBuilder accumulates the filter and bin projection for a Query or
// Truncate verb. Query accepts any target kind: over a DataSet it becomes
// a scan or secondary-index query (the transport picks), over one
// or more explicit keys it becomes a point/batch read. Truncate accepts
// only a DataSet.
// It never chains into another builder: a scan is always the final op in
// its own chain, never mixed with batched writes.
type QueryBuilder struct {
	c      *chain
	target Target
	kind   shelf.OpKind
	err    error

	filter       *shelf.FilterExpression
	projection   []string
	readOnlyBins bool
}

// newQueryBuilder validates the target/verb pairing — Truncate is the one
// verb that only accepts a DataSet. Target misuse is call-site
// misuse surfaced as an InvalidArgument at Execute(); builder-shape
// violations (mixed namespaces, scan mixed into a batch) panic there
// instead.
func newQueryBuilder(c *chain, target Target, kind shelf.OpKind) QueryBuilder {
	q := QueryBuilder{c: c, target: target, kind: kind}
	if kind == shelf.OpTruncate && target.Kind != TargetDataSet {
		q.err = shelf.NewInvalidArgumentError("Truncate requires a DataSet target")
	}
	return q
}

// Where attaches a filter expression restricting which records the scan
// yields.
func (q QueryBuilder) Where(filter shelf.FilterExpression) QueryBuilder {
	q.filter = &filter
	return q
}

// Project restricts the query to reading only the named bins, rather than
// the whole record.
func (q QueryBuilder) Project(bins ...string) QueryBuilder {
	q.projection = append(append([]string(nil), q.projection...), bins...)
	q.readOnlyBins = true
	return q
}

func (q QueryBuilder) toSpec() shelf.OpSpec {
	ops := make([]shelf.Op, len(q.projection))
	for i, bin := range q.projection {
		ops[i] = shelf.Op{Bin: bin, Type: shelf.BinReadOnly}
	}
	return shelf.OpSpec{
		Ops:          ops,
		Filter:       q.filter,
		Kind:         q.kind,
		ReadOnlyBins: q.readOnlyBins,
	}
}

// Execute runs the query. A key-targeted Query is appended to the chain
// and dispatched with any accumulated ops as a point/batch read. Over a
// DataSet it runs the scan and returns a Chunked stream, or, for a
// Truncate verb, removes every record in the DataSet and returns an empty
// stream. A scan/truncate never shares a chain with prior accumulated
// ops: namespace/dataset scoping is resolved directly against the target,
// not against c.specs. Mixing a scan into a chain that already carries
// batched ops is a programmer error and panics here with a typed
// ConfigError.
func (q QueryBuilder) Execute(ctx context.Context) (shelfstream.RecordStream, error) {
	if q.err != nil {
		return nil, q.err
	}

	if q.target.Kind != TargetDataSet {
		// Key-targeted Query: a point/batch read over explicit keys,
		// resolved against the read scopes rather than Query's.
		spec := q.toSpec()
		spec.Keys = q.target.Keys
		kind := shelfbehavior.KindRead
		shape := shelfbehavior.ShapePoint
		if len(q.target.Keys) > 1 || len(q.c.specs) > 0 {
			kind = shelfbehavior.KindBatchRead
			shape = shelfbehavior.ShapeBatch
		}
		return q.c.appendSpec(spec).executeAs(ctx, kind, shape, shelfbehavior.ModeAny)
	}

	if len(q.c.specs) > 0 {
		panic(shelf.NewConfigError("cannot mix a scan/truncate into a chain with accumulated batch ops"))
	}

	spec := q.toSpec()
	if spec.Filter == nil {
		spec.Filter = q.c.defaultFilter
	}

	behaviorKind := behaviorKindFor(q.kind)
	settings := q.c.behavior.Resolve(behaviorKind, shelfbehavior.ShapeQuery, shelfbehavior.ModeAny)

	if q.kind == shelf.OpTruncate {
		if err := q.c.executor.Truncate(ctx, q.target.DataSet, settings); err != nil {
			return nil, err
		}
		return shelfstream.NewEmpty(), nil
	}

	return q.c.executor.ExecuteScan(ctx, q.target.DataSet, spec.Filter, settings)
}
