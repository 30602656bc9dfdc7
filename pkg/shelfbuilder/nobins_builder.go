package shelfbuilder

import (
	"context"

	"github.com/marmos91/shelf/pkg/shelf"
	"github.com/marmos91/shelf/pkg/shelfbehavior"
	"github.com/marmos91/shelf/pkg/shelfstream"
)

// NoBinsBuilder is the capability for Delete/Touch/Exists: it deliberately
// has no Bin() method, since those verbs never carry an op-list.
type NoBinsBuilder struct {
	c      *chain
	target Target
	kind   shelf.OpKind

	filter        *shelf.FilterExpression
	generation    *shelf.GenerationCheck
	durableDelete bool
}

func newNoBinsBuilder(c *chain, target Target, kind shelf.OpKind) NoBinsBuilder {
	return NoBinsBuilder{c: c, target: target, kind: kind}
}

// Where attaches a per-op filter expression.
func (n NoBinsBuilder) Where(filter shelf.FilterExpression) NoBinsBuilder {
	n.filter = &filter
	return n
}

// DefaultWhere sets the chain-wide default filter, applied at execute()
// to every OpSpec in the chain whose own Where was never called.
func (n NoBinsBuilder) DefaultWhere(filter shelf.FilterExpression) NoBinsBuilder {
	n.c = n.c.withDefaultFilter(filter)
	return n
}

// EnsureGenerationIs attaches an optimistic-concurrency guard.
func (n NoBinsBuilder) EnsureGenerationIs(g uint32) NoBinsBuilder {
	check := shelf.ExpectGeneration(g)
	n.generation = &check
	return n
}

// DurableDelete marks a Delete op to leave a tombstone, only meaningful
// when kind == OpDelete.
func (n NoBinsBuilder) DurableDelete(durable bool) NoBinsBuilder {
	n.durableDelete = durable
	return n
}

func (n NoBinsBuilder) toSpec() shelf.OpSpec {
	return shelf.OpSpec{
		Keys:          n.target.Keys,
		Filter:        n.filter,
		Generation:    n.generation,
		Kind:          n.kind,
		DurableDelete: n.durableDelete && n.kind == shelf.OpDelete,
	}
}

func (n NoBinsBuilder) commit() *chain {
	return n.c.appendSpec(n.toSpec())
}

// Insert starts a new Insert WriteBuilder against target.
func (n NoBinsBuilder) Insert(target Target) WriteBuilder {
	return newWriteBuilder(n.commit(), target, shelf.OpInsert)
}

// Upsert starts a new Upsert WriteBuilder against target.
func (n NoBinsBuilder) Upsert(target Target) WriteBuilder {
	return newWriteBuilder(n.commit(), target, shelf.OpUpsert)
}

// Update starts a new Update WriteBuilder against target.
func (n NoBinsBuilder) Update(target Target) WriteBuilder {
	return newWriteBuilder(n.commit(), target, shelf.OpUpdate)
}

// Replace starts a new Replace WriteBuilder against target.
func (n NoBinsBuilder) Replace(target Target) WriteBuilder {
	return newWriteBuilder(n.commit(), target, shelf.OpReplace)
}

// Delete starts a new Delete NoBinsBuilder against target.
func (n NoBinsBuilder) Delete(target Target) NoBinsBuilder {
	return newNoBinsBuilder(n.commit(), target, shelf.OpDelete)
}

// Touch starts a new Touch NoBinsBuilder against target.
func (n NoBinsBuilder) Touch(target Target) NoBinsBuilder {
	return newNoBinsBuilder(n.commit(), target, shelf.OpTouch)
}

// Exists starts a new Exists NoBinsBuilder against target.
func (n NoBinsBuilder) Exists(target Target) NoBinsBuilder {
	return newNoBinsBuilder(n.commit(), target, shelf.OpExists)
}

// Query starts a QueryBuilder against target, chained onto the same
// batch. A key-targeted query reads alongside the accumulated ops; a
// DataSet-targeted scan panics at Execute().
func (n NoBinsBuilder) Query(target Target) QueryBuilder {
	return newQueryBuilder(n.commit(), target, shelf.OpQuery)
}

// Execute snapshots the chain and delegates to the BatchExecutor.
func (n NoBinsBuilder) Execute(ctx context.Context) (shelfstream.RecordStream, error) {
	mode := shelfbehavior.ModeAny
	return n.commit().execute(ctx, mode)
}
