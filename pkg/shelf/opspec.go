package shelf

import "time"

// OpKind tags the shape-determining verb an OpSpec was built from. It is
// one axis of the (Kind, Shape, Mode) triple a BehaviorTree resolves
// Settings by.
type OpKind int

const (
	OpInsert OpKind = iota
	OpUpsert
	OpUpdate
	OpReplace
	OpDelete
	OpTouch
	OpExists
	OpQuery
	// OpTruncate removes every record in a DataSet. Unlike Query it
	// accepts only a DataSet target, and it never carries an op-list or
	// filter result projection.
	OpTruncate
)

func (k OpKind) String() string {
	switch k {
	case OpInsert:
		return "Insert"
	case OpUpsert:
		return "Upsert"
	case OpUpdate:
		return "Update"
	case OpReplace:
		return "Replace"
	case OpDelete:
		return "Delete"
	case OpTouch:
		return "Touch"
	case OpExists:
		return "Exists"
	case OpQuery:
		return "Query"
	case OpTruncate:
		return "Truncate"
	default:
		return "Unknown"
	}
}

// IsWrite reports whether this op-kind writes a record, the only case
// where a GenerationCheck is meaningful.
func (k OpKind) IsWrite() bool {
	switch k {
	case OpInsert, OpUpsert, OpUpdate, OpReplace:
		return true
	default:
		return false
	}
}

// TakesOpList reports whether this op-kind's OpSpec carries a non-empty
// op-list.
func (k OpKind) TakesOpList() bool {
	switch k {
	case OpDelete, OpTouch, OpExists, OpTruncate:
		return false
	default:
		return true
	}
}

// BinOpType enumerates the primitive per-bin actions carried in an
// OpSpec's op-list.
type BinOpType int

const (
	BinSetTo BinOpType = iota
	BinAdd
	BinAppend
	BinPrepend
	BinRemove
	BinCdt
	// BinReadOnly names a bin to project in a Query's read_only_bins list.
	BinReadOnly
)

// CdtTerminal enumerates the terminal action applied at the deepest level
// of a CdtPath navigation.
type CdtTerminal int

const (
	CdtGetValues CdtTerminal = iota
	CdtGetKeys
	CdtCount
	CdtRemove
	CdtSet
	CdtAdd
	CdtInsert
	CdtAppend
	CdtPrepend
	CdtClear
	CdtSize
	CdtCountAllOthers
	CdtRemoveAllOthers
	CdtGetAllOtherKeys
	CdtGetAllOtherValues
)

// Invertible reports whether t is one of the "*AllOthers" duals that are
// only well-defined over a Range selector.
func (t CdtTerminal) Invertible() bool {
	switch t {
	case CdtCountAllOthers, CdtRemoveAllOthers, CdtGetAllOtherKeys, CdtGetAllOtherValues:
		return true
	default:
		return false
	}
}

// SelectorShape is one of the two orthogonal CDT navigation dimensions:
// a selector addresses exactly one item, or a contiguous/derived range.
type SelectorShape int

const (
	SelectorSingleItem SelectorShape = iota
	SelectorRange
)

// SelectorMethod enumerates the concrete addressing scheme of a terminal
// selector.
type SelectorMethod int

const (
	ByIndex SelectorMethod = iota
	ByKey
	ByRank
	ByIndexRange
	ByKeyRange
	ByValueRange
	ByRankRange
	ByKeyRelativeIndexRange
	ByValueRelativeRankRange
	ByKeyList
	ByValueList
)

// Ordering is the create_if_missing ordering hint accepted by range
// terminals that may create the container.
type Ordering int

const (
	OrderUnordered Ordering = iota
	OrderKeyOrdered
	OrderKeyValueOrdered
)

// Selector is the terminal (deepest) addressing step of a CDT navigation:
// either a SingleItem selector (byIndex/byKey/byRank) or a Range selector.
// Only fields relevant to Method are populated.
type Selector struct {
	Shape  SelectorShape
	Method SelectorMethod

	Index int64
	Rank  int64
	Key   Value

	// Range bounds. Begin/End may carry a SpecialValue (NULL/INFINITY) or
	// a typed endpoint.
	Begin Value
	End   Value

	// Relative-range navigation: offset from the anchor's rank/index,
	// Count nil meaning "to end".
	Offset int64
	Count  *int64

	KeyList   []Value
	ValueList []Value
}

// ByIndexSelector builds a SingleItem selector addressing a list element
// by index.
func ByIndexSelector(i int64) Selector {
	return Selector{Shape: SelectorSingleItem, Method: ByIndex, Index: i}
}

// ByKeySelector builds a SingleItem selector addressing a map element by
// key.
func ByKeySelector(key Value) Selector {
	return Selector{Shape: SelectorSingleItem, Method: ByKey, Key: key}
}

// ByRankSelector builds a SingleItem selector addressing an element by
// value-rank.
func ByRankSelector(r int64) Selector {
	return Selector{Shape: SelectorSingleItem, Method: ByRank, Rank: r}
}

// ByIndexRangeSelector builds a Range selector over a contiguous run of
// list indices.
func ByIndexRangeSelector(begin, end Value) Selector {
	return Selector{Shape: SelectorRange, Method: ByIndexRange, Begin: begin, End: end}
}

// ByKeyRangeSelector builds a Range selector over a contiguous run of map
// keys.
func ByKeyRangeSelector(begin, end Value) Selector {
	return Selector{Shape: SelectorRange, Method: ByKeyRange, Begin: begin, End: end}
}

// ByValueRangeSelector builds a Range selector over a contiguous run of
// values.
func ByValueRangeSelector(begin, end Value) Selector {
	return Selector{Shape: SelectorRange, Method: ByValueRange, Begin: begin, End: end}
}

// ByRankRangeSelector builds a Range selector over a contiguous run of
// value-ranks.
func ByRankRangeSelector(begin, end Value) Selector {
	return Selector{Shape: SelectorRange, Method: ByRankRange, Begin: begin, End: end}
}

// ByKeyRelativeIndexRangeSelector builds a Range selector anchored at key,
// selecting count items starting at index rank_of(key)+offset. A nil count
// extends the selection to the end of the container.
func ByKeyRelativeIndexRangeSelector(key Value, offset int64, count *int64) Selector {
	return Selector{Shape: SelectorRange, Method: ByKeyRelativeIndexRange, Key: key, Offset: offset, Count: count}
}

// ByValueRelativeRankRangeSelector builds a Range selector anchored at a
// value's rank.
func ByValueRelativeRankRangeSelector(value Value, offset int64, count *int64) Selector {
	return Selector{Shape: SelectorRange, Method: ByValueRelativeRankRange, Begin: value, Offset: offset, Count: count}
}

// ByKeyListSelector builds a Range selector over an explicit set of map
// keys.
func ByKeyListSelector(keys []Value) Selector {
	return Selector{Shape: SelectorRange, Method: ByKeyList, KeyList: keys}
}

// ByValueListSelector builds a Range selector over an explicit set of
// values.
func ByValueListSelector(values []Value) Selector {
	return Selector{Shape: SelectorRange, Method: ByValueList, ValueList: values}
}

// Op is one primitive entry in an OpSpec's op-list: either a plain bin
// write (SetTo/Add/Append/Prepend/Remove) or a CDT navigation (Path +
// Selector + Terminal).
type Op struct {
	Bin  string
	Type BinOpType

	// Value is the operand for BinSetTo/BinAdd/BinAppend/BinPrepend.
	Value Value

	// Path is the sequence of SingleItem context steps leading to the
	// container the Selector/Terminal apply against. Empty means the
	// selector addresses the bin's top-level list/map directly.
	Path     CdtPath
	Selector Selector
	Terminal CdtTerminal

	// CreateOrdering is the create_if_missing hint for range terminals
	// that may create the container.
	CreateOrdering Ordering
}

// TTLMode enumerates the mutually exclusive expiration policies a
// WriteBuilder may set; the last one called wins.
type TTLMode int

const (
	TTLServerDefault TTLMode = iota
	TTLNever
	TTLNoChange
	TTLExpireAfter
	TTLExpireAt
)

// TTLPolicy is the resolved expiration directive attached to an OpSpec.
type TTLPolicy struct {
	Mode     TTLMode
	Duration time.Duration
	At       time.Time
}

// ExpireAfter sets the record to expire d from now.
func ExpireAfter(d time.Duration) TTLPolicy { return TTLPolicy{Mode: TTLExpireAfter, Duration: d} }

// ExpireAt sets the record to expire at the given absolute time.
func ExpireAt(t time.Time) TTLPolicy { return TTLPolicy{Mode: TTLExpireAt, At: t} }

// NeverExpire sets the record to never expire.
func NeverExpire() TTLPolicy { return TTLPolicy{Mode: TTLNever} }

// NoChangeTTL leaves the record's current TTL untouched.
func NoChangeTTL() TTLPolicy { return TTLPolicy{Mode: TTLNoChange} }

// ServerDefaultTTL defers to the namespace's configured default TTL.
func ServerDefaultTTL() TTLPolicy { return TTLPolicy{Mode: TTLServerDefault} }

// GenerationCheck is an optional optimistic-concurrency guard: the write
// only applies if the record's current generation equals Expect.
type GenerationCheck struct {
	Enabled bool
	Expect  uint32
}

// ExpectGeneration builds a GenerationCheck requiring the record's current
// generation to equal g.
func ExpectGeneration(g uint32) GenerationCheck {
	return GenerationCheck{Enabled: true, Expect: g}
}

// FilterExpression is an opaque, pre-serialized filter predicate attached
// to an OpSpec. Building and parsing expression trees is explicitly out of
// scope — callers hand in the transport's wire-level filter
// bytes directly.
type FilterExpression struct {
	Raw string
}

// Expr wraps a raw, transport-ready filter expression.
func Expr(raw string) FilterExpression { return FilterExpression{Raw: raw} }

// OpSpec is the internal, per-chained-verb record assembled by the
// builder graph before it reaches the BatchExecutor.
type OpSpec struct {
	Keys []Key
	Ops  []Op

	Filter     *FilterExpression
	TTL        *TTLPolicy
	Generation *GenerationCheck

	Kind OpKind

	// DurableDelete is only meaningful when Kind == OpDelete.
	DurableDelete bool

	// ReadOnlyBins is only meaningful when Kind == OpQuery: it restricts
	// the projected bins to those named in Ops.
	ReadOnlyBins bool

	// NotInTransaction bypasses the enclosing TransactionalSession's
	// context, if any.
	NotInTransaction bool
}

// Namespace returns the shared namespace of every key in the spec, or the
// empty string if Keys is empty. Callers validate the single-namespace
// rule before relying on this.
func (s OpSpec) Namespace() string {
	if len(s.Keys) == 0 {
		return ""
	}
	return s.Keys[0].Namespace
}
