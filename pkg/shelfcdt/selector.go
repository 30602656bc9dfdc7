package shelfcdt

import "github.com/marmos91/shelf/pkg/shelf"

// Navigator is the entry/mid-point of a CDT navigation: bound to one bin
// and an accumulated context path, it either descends further into a
// nested container (At*) or terminates with a selector (By*), producing
// the matching capability type.
type Navigator[R any] struct {
	bin    string
	path   shelf.CdtPath
	commit Commit[R]
}

// NewNavigator starts a CDT navigation against bin with an empty context
// path. A WriteBuilder/BinBuilder calls this once per .bin(name) chain
// step; commit is invoked when a terminal method is reached.
func NewNavigator[R any](bin string, commit Commit[R]) Navigator[R] {
	return Navigator[R]{bin: bin, commit: commit}
}

func (n Navigator[R]) push(e shelf.PathElement) Navigator[R] {
	return Navigator[R]{bin: n.bin, path: n.path.Push(e), commit: n.commit}
}

// AtMapKey descends into the nested container stored under a map key.
func (n Navigator[R]) AtMapKey(key shelf.Value) Navigator[R] { return n.push(shelf.MapKeyStep(key)) }

// AtMapIndex descends into the nested container at the i-th map entry in
// key order.
func (n Navigator[R]) AtMapIndex(i int64) Navigator[R] { return n.push(shelf.MapIndexStep(i)) }

// AtMapRank descends into the nested container at value-rank r.
func (n Navigator[R]) AtMapRank(r int64) Navigator[R] { return n.push(shelf.MapRankStep(r)) }

// AtListIndex descends into the nested container at list index i.
func (n Navigator[R]) AtListIndex(i int64) Navigator[R] { return n.push(shelf.ListIndexStep(i)) }

// AtListRank descends into the nested container at list value-rank r.
func (n Navigator[R]) AtListRank(r int64) Navigator[R] { return n.push(shelf.ListRankStep(r)) }

// AtListValue descends into the nested container equal to v.
func (n Navigator[R]) AtListValue(v shelf.Value) Navigator[R] { return n.push(shelf.ListValueStep(v)) }

// ByIndex terminates with a SingleItem selector addressing a list element
// by index.
func (n Navigator[R]) ByIndex(i int64) NonInvertible[R] {
	return newNonInvertible(n.bin, n.path, shelf.ByIndexSelector(i), n.commit)
}

// ByKey terminates with a SingleItem selector addressing a map element by
// key.
func (n Navigator[R]) ByKey(key shelf.Value) NonInvertible[R] {
	return newNonInvertible(n.bin, n.path, shelf.ByKeySelector(key), n.commit)
}

// ByRank terminates with a SingleItem selector addressing an element by
// value-rank.
func (n Navigator[R]) ByRank(r int64) NonInvertible[R] {
	return newNonInvertible(n.bin, n.path, shelf.ByRankSelector(r), n.commit)
}

// ByIndexRange terminates with a Range selector over a contiguous run of
// list indices.
func (n Navigator[R]) ByIndexRange(begin, end shelf.Value) Invertible[R] {
	return newInvertible(n.bin, n.path, shelf.ByIndexRangeSelector(begin, end), n.commit)
}

// ByKeyRange terminates with a Range selector over a contiguous run of map
// keys.
func (n Navigator[R]) ByKeyRange(begin, end shelf.Value) Invertible[R] {
	return newInvertible(n.bin, n.path, shelf.ByKeyRangeSelector(begin, end), n.commit)
}

// ByValueRange terminates with a Range selector over a contiguous run of
// values.
func (n Navigator[R]) ByValueRange(begin, end shelf.Value) Invertible[R] {
	return newInvertible(n.bin, n.path, shelf.ByValueRangeSelector(begin, end), n.commit)
}

// ByRankRange terminates with a Range selector over a contiguous run of
// value-ranks.
func (n Navigator[R]) ByRankRange(begin, end shelf.Value) Invertible[R] {
	return newInvertible(n.bin, n.path, shelf.ByRankRangeSelector(begin, end), n.commit)
}

// ByKeyRelativeIndexRange terminates with a Range selector anchored at
// key, selecting count items starting at index rank_of(key)+offset. A nil
// count extends the selection to the end of the container.
func (n Navigator[R]) ByKeyRelativeIndexRange(key shelf.Value, offset int64, count *int64) Invertible[R] {
	return newInvertible(n.bin, n.path, shelf.ByKeyRelativeIndexRangeSelector(key, offset, count), n.commit)
}

// ByValueRelativeRankRange terminates with a Range selector anchored at a
// value's rank.
func (n Navigator[R]) ByValueRelativeRankRange(value shelf.Value, offset int64, count *int64) Invertible[R] {
	return newInvertible(n.bin, n.path, shelf.ByValueRelativeRankRangeSelector(value, offset, count), n.commit)
}

// ByKeyList terminates with a Range selector over an explicit set of map
// keys.
func (n Navigator[R]) ByKeyList(keys []shelf.Value) Invertible[R] {
	return newInvertible(n.bin, n.path, shelf.ByKeyListSelector(keys), n.commit)
}

// ByValueList terminates with a Range selector over an explicit set of
// values.
func (n Navigator[R]) ByValueList(values []shelf.Value) Invertible[R] {
	return newInvertible(n.bin, n.path, shelf.ByValueListSelector(values), n.commit)
}
