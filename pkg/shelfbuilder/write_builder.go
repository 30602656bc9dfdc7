package shelfbuilder

import (
	"context"
	"time"

	"github.com/marmos91/shelf/pkg/shelf"
	"github.com/marmos91/shelf/pkg/shelfbehavior"
	"github.com/marmos91/shelf/pkg/shelfcdt"
	"github.com/marmos91/shelf/pkg/shelfstream"
)

// WriteBuilder accumulates the op-list, filter, TTL and generation check
// for one write-kind verb (Insert/Upsert/Update/Replace) against a
// target. Bin() is the only way into a BinBuilder; NoBinsBuilder
// deliberately has no such method.
type WriteBuilder struct {
	c      *chain
	target Target
	kind   shelf.OpKind

	ops        []shelf.Op
	filter     *shelf.FilterExpression
	ttl        *shelf.TTLPolicy
	generation *shelf.GenerationCheck
}

func newWriteBuilder(c *chain, target Target, kind shelf.OpKind) WriteBuilder {
	return WriteBuilder{c: c, target: target, kind: kind}
}

func (w WriteBuilder) withOp(op shelf.Op) WriteBuilder {
	w.ops = append(append([]shelf.Op(nil), w.ops...), op)
	return w
}

// Bin starts a CDT/plain-value navigation against the named bin, the
// entry point into BinBuilder.
func (w WriteBuilder) Bin(name string) BinBuilder {
	return BinBuilder{wb: w, name: name}
}

// Where attaches a per-op filter expression, overriding the chain's
// default_where for this OpSpec only.
func (w WriteBuilder) Where(filter shelf.FilterExpression) WriteBuilder {
	w.filter = &filter
	return w
}

// DefaultWhere sets the chain-wide default filter, applied at execute()
// to every OpSpec in the chain whose own Where was never called.
func (w WriteBuilder) DefaultWhere(filter shelf.FilterExpression) WriteBuilder {
	w.c = w.c.withDefaultFilter(filter)
	return w
}

// ExpireAfter, ExpireAt, NeverExpire, NoChangeTTL, and ServerDefaultTTL
// are mutually exclusive; the last one called wins.
func (w WriteBuilder) ExpireAfter(d time.Duration) WriteBuilder {
	policy := shelf.ExpireAfter(d)
	w.ttl = &policy
	return w
}

// ExpireAt sets the record to expire at an absolute time.
func (w WriteBuilder) ExpireAt(t time.Time) WriteBuilder {
	policy := shelf.ExpireAt(t)
	w.ttl = &policy
	return w
}

// NeverExpire sets the record to never expire.
func (w WriteBuilder) NeverExpire() WriteBuilder {
	policy := shelf.NeverExpire()
	w.ttl = &policy
	return w
}

// NoChangeTTL leaves the record's current TTL untouched.
func (w WriteBuilder) NoChangeTTL() WriteBuilder {
	policy := shelf.NoChangeTTL()
	w.ttl = &policy
	return w
}

// ServerDefaultTTL defers to the namespace's configured default TTL.
func (w WriteBuilder) ServerDefaultTTL() WriteBuilder {
	policy := shelf.ServerDefaultTTL()
	w.ttl = &policy
	return w
}

// EnsureGenerationIs attaches an optimistic-concurrency guard.
func (w WriteBuilder) EnsureGenerationIs(g uint32) WriteBuilder {
	check := shelf.ExpectGeneration(g)
	w.generation = &check
	return w
}

func (w WriteBuilder) toSpec() shelf.OpSpec {
	return shelf.OpSpec{
		Keys:       w.target.Keys,
		Ops:        w.ops,
		Filter:     w.filter,
		TTL:        w.ttl,
		Generation: w.generation,
		Kind:       w.kind,
	}
}

func (w WriteBuilder) commit() *chain {
	return w.c.appendSpec(w.toSpec())
}

// Insert starts a new Insert OpSpec against target, chained onto the same
// batch.
func (w WriteBuilder) Insert(target Target) WriteBuilder {
	return newWriteBuilder(w.commit(), target, shelf.OpInsert)
}

// Upsert starts a new Upsert OpSpec against target.
func (w WriteBuilder) Upsert(target Target) WriteBuilder {
	return newWriteBuilder(w.commit(), target, shelf.OpUpsert)
}

// Update starts a new Update OpSpec against target.
func (w WriteBuilder) Update(target Target) WriteBuilder {
	return newWriteBuilder(w.commit(), target, shelf.OpUpdate)
}

// Replace starts a new Replace OpSpec against target.
func (w WriteBuilder) Replace(target Target) WriteBuilder {
	return newWriteBuilder(w.commit(), target, shelf.OpReplace)
}

// Delete starts a new Delete NoBinsBuilder against target.
func (w WriteBuilder) Delete(target Target) NoBinsBuilder {
	return newNoBinsBuilder(w.commit(), target, shelf.OpDelete)
}

// Touch starts a new Touch NoBinsBuilder against target.
func (w WriteBuilder) Touch(target Target) NoBinsBuilder {
	return newNoBinsBuilder(w.commit(), target, shelf.OpTouch)
}

// Exists starts a new Exists NoBinsBuilder against target.
func (w WriteBuilder) Exists(target Target) NoBinsBuilder {
	return newNoBinsBuilder(w.commit(), target, shelf.OpExists)
}

// Query starts a QueryBuilder against target, chained onto the same
// batch. A key-targeted query reads alongside the accumulated ops; a
// DataSet-targeted scan panics at Execute().
func (w WriteBuilder) Query(target Target) QueryBuilder {
	return newQueryBuilder(w.commit(), target, shelf.OpQuery)
}

// Execute snapshots the chain into an immutable []OpSpec and delegates to
// the BatchExecutor.
func (w WriteBuilder) Execute(ctx context.Context) (shelfstream.RecordStream, error) {
	return w.commit().execute(ctx, shelfbehavior.ModeAny)
}

// BinBuilder is the capability returned by WriteBuilder.Bin: it either
// commits a plain bin write directly, or starts a CDT navigation via
// On*.
type BinBuilder struct {
	wb   WriteBuilder
	name string
}

func (b BinBuilder) simpleOp(t shelf.BinOpType, v shelf.Value) WriteBuilder {
	return b.wb.withOp(shelf.Op{Bin: b.name, Type: t, Value: v})
}

// SetTo replaces the bin's value outright.
func (b BinBuilder) SetTo(v shelf.Value) WriteBuilder { return b.simpleOp(shelf.BinSetTo, v) }

// Add increments a numeric bin by v.
func (b BinBuilder) Add(v shelf.Value) WriteBuilder { return b.simpleOp(shelf.BinAdd, v) }

// Append appends v to a string/list bin.
func (b BinBuilder) Append(v shelf.Value) WriteBuilder { return b.simpleOp(shelf.BinAppend, v) }

// Prepend prepends v to a string/list bin.
func (b BinBuilder) Prepend(v shelf.Value) WriteBuilder { return b.simpleOp(shelf.BinPrepend, v) }

// Remove deletes the bin entirely.
func (b BinBuilder) Remove() WriteBuilder {
	return b.wb.withOp(shelf.Op{Bin: b.name, Type: shelf.BinRemove})
}

func (b BinBuilder) commit(op shelf.Op) WriteBuilder {
	op.Bin = b.name
	op.Type = shelf.BinCdt
	return b.wb.withOp(op)
}

// nav starts a CDT navigation rooted at this bin, committing back into the
// owning WriteBuilder.
func (b BinBuilder) nav() shelfcdt.Navigator[WriteBuilder] {
	return shelfcdt.NewNavigator(b.name, b.commit)
}

func (b BinBuilder) OnMapKey(key shelf.Value) shelfcdt.Navigator[WriteBuilder] {
	return b.nav().AtMapKey(key)
}
func (b BinBuilder) OnMapIndex(i int64) shelfcdt.Navigator[WriteBuilder] { return b.nav().AtMapIndex(i) }
func (b BinBuilder) OnMapRank(r int64) shelfcdt.Navigator[WriteBuilder]  { return b.nav().AtMapRank(r) }
func (b BinBuilder) OnListIndex(i int64) shelfcdt.Navigator[WriteBuilder] {
	return b.nav().AtListIndex(i)
}
func (b BinBuilder) OnListRank(r int64) shelfcdt.Navigator[WriteBuilder] { return b.nav().AtListRank(r) }
func (b BinBuilder) OnListValue(v shelf.Value) shelfcdt.Navigator[WriteBuilder] {
	return b.nav().AtListValue(v)
}

// Terminal selectors are reachable directly off the bin too, for
// navigations with an empty context path.
func (b BinBuilder) ByIndex(i int64) shelfcdt.NonInvertible[WriteBuilder] { return b.nav().ByIndex(i) }
func (b BinBuilder) ByKey(key shelf.Value) shelfcdt.NonInvertible[WriteBuilder] {
	return b.nav().ByKey(key)
}
func (b BinBuilder) ByRank(r int64) shelfcdt.NonInvertible[WriteBuilder] { return b.nav().ByRank(r) }
func (b BinBuilder) ByIndexRange(begin, end shelf.Value) shelfcdt.Invertible[WriteBuilder] {
	return b.nav().ByIndexRange(begin, end)
}
func (b BinBuilder) ByKeyRange(begin, end shelf.Value) shelfcdt.Invertible[WriteBuilder] {
	return b.nav().ByKeyRange(begin, end)
}
func (b BinBuilder) ByValueRange(begin, end shelf.Value) shelfcdt.Invertible[WriteBuilder] {
	return b.nav().ByValueRange(begin, end)
}
func (b BinBuilder) ByRankRange(begin, end shelf.Value) shelfcdt.Invertible[WriteBuilder] {
	return b.nav().ByRankRange(begin, end)
}
