// Package shelfcdt implements the CDT (Complex Data Type) navigation state
// machine: a context path into a nested map/list, terminated by a
// selector/action pair. The two orthogonal dimensions — selector shape
// (SingleItem vs Range) and terminal action — are modelled as two
// structurally distinct capability types so that calling an "*AllOthers"
// dual on a SingleItem selector is a compile-time error, not a runtime
// check.
package shelfcdt

import "github.com/marmos91/shelf/pkg/shelf"

// Commit hands a finished CDT Op back to whatever accumulates an op-list
// (typically a WriteBuilder/BinBuilder), returning that builder so the
// fluent chain continues.
type Commit[R any] func(op shelf.Op) R

// NonInvertible is the terminal capability reachable from a SingleItem
// selector (byIndex, byKey, byRank). It deliberately has no
// "*AllOthers" methods: an "all others" dual of a single-item selection
// has no defined meaning, so there is simply no such method to find.
type NonInvertible[R any] struct {
	bin      string
	path     shelf.CdtPath
	selector shelf.Selector
	ordering shelf.Ordering
	commit   Commit[R]
}

func newNonInvertible[R any](bin string, path shelf.CdtPath, selector shelf.Selector, commit Commit[R]) NonInvertible[R] {
	return NonInvertible[R]{bin: bin, path: path, selector: selector, commit: commit}
}

func (n NonInvertible[R]) op(terminal shelf.CdtTerminal) shelf.Op {
	return shelf.Op{
		Bin:            n.bin,
		Type:           shelf.BinCdt,
		Path:           n.path,
		Selector:       n.selector,
		Terminal:       terminal,
		CreateOrdering: n.ordering,
	}
}

// Ordered sets the create_if_missing ordering hint (KEY_ORDERED,
// KEY_VALUE_ORDERED, unordered) used if this terminal creates the
// container.
func (n NonInvertible[R]) Ordered(o shelf.Ordering) NonInvertible[R] {
	n.ordering = o
	return n
}

// GetValues retrieves the selected value(s).
func (n NonInvertible[R]) GetValues() R { return n.commit(n.op(shelf.CdtGetValues)) }

// GetKeys retrieves the selected map key(s).
func (n NonInvertible[R]) GetKeys() R { return n.commit(n.op(shelf.CdtGetKeys)) }

// Count returns the number of items matched by the selector.
func (n NonInvertible[R]) Count() R { return n.commit(n.op(shelf.CdtCount)) }

// Remove deletes the selected item(s).
func (n NonInvertible[R]) Remove() R { return n.commit(n.op(shelf.CdtRemove)) }

// Set replaces the selected item's value.
func (n NonInvertible[R]) Set(v shelf.Value) R {
	op := n.op(shelf.CdtSet)
	op.Value = v
	return n.commit(op)
}

// Add increments the selected numeric value by v.
func (n NonInvertible[R]) Add(v shelf.Value) R {
	op := n.op(shelf.CdtAdd)
	op.Value = v
	return n.commit(op)
}

// Insert inserts v at the selected position.
func (n NonInvertible[R]) Insert(v shelf.Value) R {
	op := n.op(shelf.CdtInsert)
	op.Value = v
	return n.commit(op)
}

// Append appends v after the selected position.
func (n NonInvertible[R]) Append(v shelf.Value) R {
	op := n.op(shelf.CdtAppend)
	op.Value = v
	return n.commit(op)
}

// Prepend inserts v before the selected position.
func (n NonInvertible[R]) Prepend(v shelf.Value) R {
	op := n.op(shelf.CdtPrepend)
	op.Value = v
	return n.commit(op)
}

// Clear removes every item in the selected container.
func (n NonInvertible[R]) Clear() R { return n.commit(n.op(shelf.CdtClear)) }

// Size returns the selected container's item count.
func (n NonInvertible[R]) Size() R { return n.commit(n.op(shelf.CdtSize)) }

// Invertible is the terminal capability reachable only from a Range
// selector. It embeds NonInvertible, so every non-inverted terminal is
// still available — Invertible is a strict structural superset of
// NonInvertible.
type Invertible[R any] struct {
	NonInvertible[R]
}

func newInvertible[R any](bin string, path shelf.CdtPath, selector shelf.Selector, commit Commit[R]) Invertible[R] {
	return Invertible[R]{newNonInvertible(bin, path, selector, commit)}
}

// Ordered sets the create_if_missing ordering hint, returning an
// Invertible so the "*AllOthers" methods stay reachable after the call.
func (n Invertible[R]) Ordered(o shelf.Ordering) Invertible[R] {
	n.NonInvertible = n.NonInvertible.Ordered(o)
	return n
}

// CountAllOthers counts every item NOT matched by the range selector.
func (n Invertible[R]) CountAllOthers() R { return n.commit(n.op(shelf.CdtCountAllOthers)) }

// RemoveAllOthers removes every item NOT matched by the range selector.
func (n Invertible[R]) RemoveAllOthers() R { return n.commit(n.op(shelf.CdtRemoveAllOthers)) }

// GetAllOtherKeys retrieves the keys of every item NOT matched by the
// range selector.
func (n Invertible[R]) GetAllOtherKeys() R { return n.commit(n.op(shelf.CdtGetAllOtherKeys)) }

// GetAllOtherValues retrieves the values of every item NOT matched by the
// range selector.
func (n Invertible[R]) GetAllOtherValues() R { return n.commit(n.op(shelf.CdtGetAllOtherValues)) }
