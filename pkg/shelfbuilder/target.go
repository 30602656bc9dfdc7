// Package shelfbuilder implements the fluent operation pipeline: a
// statically typed builder graph that assembles per-key operations into
// wire-level shelf.OpSpecs. Session lives
// here too, since it exists only to hand a Behavior + Executor to the
// builder chain it starts.
package shelfbuilder

import "github.com/marmos91/shelf/pkg/shelf"

// TargetKind tags whether a verb call targeted one key, several keys, or a
// whole DataSet.
type TargetKind int

const (
	TargetSingleKey TargetKind = iota
	TargetMultiKey
	TargetDataSet
)

// Target is a verb's argument: exactly one of Keys (len 1 or N) or DataSet
// is meaningful, selected by Kind.
type Target struct {
	Kind    TargetKind
	Keys    []shelf.Key
	DataSet shelf.DataSet
}

// OneKey targets a single key (point dispatch at execute()).
func OneKey(k shelf.Key) Target { return Target{Kind: TargetSingleKey, Keys: []shelf.Key{k}} }

// ManyKeys targets an ordered sequence of keys (batch dispatch at
// execute()).
func ManyKeys(keys ...shelf.Key) Target {
	if len(keys) == 1 {
		return OneKey(keys[0])
	}
	return Target{Kind: TargetMultiKey, Keys: keys}
}

// OnDataSet targets a whole DataSet — valid only for Query and Truncate.
func OnDataSet(ds shelf.DataSet) Target { return Target{Kind: TargetDataSet, DataSet: ds} }
