package shelfbuilder

import (
	"context"

	"github.com/marmos91/shelf/pkg/shelf"
	"github.com/marmos91/shelf/pkg/shelfbehavior"
	"github.com/marmos91/shelf/pkg/shelfstream"
)

// Executor is the chain's view of a BatchExecutor: enough to dispatch an
// accumulated []OpSpec and to open a scan over a DataSet. *shelfbatch.
// BatchExecutor satisfies this structurally; builders depend on the
// interface rather than the concrete type so they can be exercised
// against a fake in unit tests without importing the batch package.
type Executor interface {
	Execute(ctx context.Context, specs []shelf.OpSpec, behaviorName string, settings shelfbehavior.Settings) (shelfstream.RecordStream, error)
	ExecuteScan(ctx context.Context, ds shelf.DataSet, filter *shelf.FilterExpression, settings shelfbehavior.Settings) (shelfstream.RecordStream, error)
	Truncate(ctx context.Context, ds shelf.DataSet, settings shelfbehavior.Settings) error
	Info(ctx context.Context, nodeAddress, command string, settings shelfbehavior.Settings) (string, error)
}

// chain is the state every builder in one fluent call shares: the
// accumulated OpSpecs, the chain-wide default filter, and the behavior +
// executor a Session handed off at its first verb call.
type chain struct {
	behavior *shelfbehavior.Behavior
	executor Executor

	specs         []shelf.OpSpec
	defaultFilter *shelf.FilterExpression

	// notInTransaction marks every OpSpec accumulated on this chain as
	// bypassing the enclosing TransactionalSession, if any.
	notInTransaction bool
}

func newChain(behavior *shelfbehavior.Behavior, executor Executor) *chain {
	return &chain{behavior: behavior, executor: executor}
}

// clone returns a shallow copy of c with its own spec slice header, so
// appending a spec on one builder never mutates a sibling's view — every
// builder method is a pure, non-mutating state update.
func (c *chain) clone() *chain {
	cp := *c
	cp.specs = append([]shelf.OpSpec(nil), c.specs...)
	return &cp
}

func (c *chain) appendSpec(spec shelf.OpSpec) *chain {
	next := c.clone()
	spec.NotInTransaction = c.notInTransaction
	next.specs = append(next.specs, spec)
	return next
}

// withDefaultFilter returns a chain whose default_where applies to every
// accumulated OpSpec without a per-op filter — including specs appended
// before this call, since the default is resolved at execute().
func (c *chain) withDefaultFilter(filter shelf.FilterExpression) *chain {
	next := c.clone()
	next.defaultFilter = &filter
	return next
}

// validateNamespaces enforces the "all accumulated OpSpecs share one
// namespace" contract at execute() rather than at each accumulating call.
// Mixing namespaces is a programmer error, not a recoverable condition,
// so it panics with a typed ConfigError instead of returning it.
func (c *chain) validateNamespaces() {
	ns := ""
	for _, spec := range c.specs {
		for _, k := range spec.Keys {
			if ns == "" {
				ns = k.Namespace
				continue
			}
			if k.Namespace != ns {
				panic(shelf.NewConfigError("mixed namespaces in one chain"))
			}
		}
	}
}

// dominantKind picks the (Kind,Shape,Mode) triple a mixed-verb chain
// resolves Settings by: the kind of its first accumulated spec. Callers
// are expected to keep a chain's kinds homogeneous; resolving against
// the first spec's kind keeps behavior deterministic without silently
// picking a "most severe" kind that the caller never asked for.
func (c *chain) dominantKind() shelf.OpKind {
	if len(c.specs) == 0 {
		return shelf.OpExists
	}
	return c.specs[0].Kind
}

func behaviorKindFor(k shelf.OpKind) shelfbehavior.Kind {
	switch k {
	case shelf.OpInsert, shelf.OpUpdate:
		return shelfbehavior.KindWriteNonRetryable
	case shelf.OpUpsert, shelf.OpReplace, shelf.OpTouch:
		return shelfbehavior.KindWriteRetryable
	case shelf.OpDelete:
		return shelfbehavior.KindWriteNonRetryable
	case shelf.OpExists:
		return shelfbehavior.KindRead
	case shelf.OpQuery, shelf.OpTruncate:
		return shelfbehavior.KindQuery
	default:
		return shelfbehavior.KindRead
	}
}

func shapeFor(targets int, kind shelf.OpKind) shelfbehavior.Shape {
	if kind == shelf.OpQuery {
		return shelfbehavior.ShapeQuery
	}
	if targets > 1 {
		return shelfbehavior.ShapeBatch
	}
	return shelfbehavior.ShapePoint
}

// execute snapshots the chain into an immutable []OpSpec and delegates to
// the Executor.
func (c *chain) execute(ctx context.Context, mode shelfbehavior.Mode) (shelfstream.RecordStream, error) {
	totalKeys := 0
	for _, spec := range c.specs {
		totalKeys += len(spec.Keys)
	}

	kind := c.dominantKind()
	return c.executeAs(ctx, behaviorKindFor(kind), shapeFor(totalKeys, kind), mode)
}

// executeAs is execute with the resolution triple fixed by the caller —
// the key-targeted Query path resolves as a point/batch read rather than
// by its own OpKind.
func (c *chain) executeAs(ctx context.Context, kind shelfbehavior.Kind, shape shelfbehavior.Shape, mode shelfbehavior.Mode) (shelfstream.RecordStream, error) {
	c.validateNamespaces()

	specs := append([]shelf.OpSpec(nil), c.specs...)
	if c.defaultFilter != nil {
		for i := range specs {
			if specs[i].Filter == nil {
				specs[i].Filter = c.defaultFilter
			}
		}
	}

	settings := c.behavior.Resolve(kind, shape, mode)
	return c.executor.Execute(ctx, specs, c.behavior.Name(), settings)
}
