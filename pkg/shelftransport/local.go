package shelftransport

import (
	"context"
	"sort"
	"sync"

	"github.com/marmos91/shelf/pkg/shelf"
	"github.com/marmos91/shelf/pkg/shelfbehavior"
)

// recordEntry is the store's private copy of a record. Bins are copied in
// and out on every access so callers can never mutate state through a
// returned pointer.
type recordEntry struct {
	key        shelf.Key
	bins       shelf.Bins
	generation uint32
	ttl        uint32
}

func cloneBins(b shelf.Bins) shelf.Bins {
	out := make(shelf.Bins, len(b))
	for k, v := range b {
		out[k] = v
	}
	return out
}

// LocalTransport is an in-memory Transport used by tests and shelfctl's
// offline mode. It applies op-lists directly against a map keyed by
// key.String(), with no business logic beyond what BatchItem already
// carries.
type LocalTransport struct {
	mu      sync.RWMutex
	records map[string]*recordEntry
	indexes []shelf.IndexMetadata
}

// NewLocalTransport returns an empty LocalTransport.
func NewLocalTransport() *LocalTransport {
	return &LocalTransport{records: make(map[string]*recordEntry)}
}

// SeedIndex registers a secondary index ListIndexes will report. Intended
// for test setup.
func (t *LocalTransport) SeedIndex(idx shelf.IndexMetadata) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.indexes = append(t.indexes, idx)
}

func (t *LocalTransport) ListIndexes(ctx context.Context) ([]shelf.IndexMetadata, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	t.mu.RLock()
	defer t.mu.RUnlock()
	out := make([]shelf.IndexMetadata, len(t.indexes))
	copy(out, t.indexes)
	return out, nil
}

// Seed pre-populates a record, bypassing generation/TTL checks. Intended
// for test setup.
func (t *LocalTransport) Seed(key shelf.Key, bins shelf.Bins, generation uint32) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.records[key.String()] = &recordEntry{key: key, bins: cloneBins(bins), generation: generation}
}

func (t *LocalTransport) ExecuteBatch(ctx context.Context, items []BatchItem, _ shelfbehavior.Settings) ([]BatchItemResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	results := make([]BatchItemResult, len(items))
	for i, item := range items {
		r := t.applyOne(item)
		r.Index = i
		results[i] = r
	}
	return results, nil
}

func (t *LocalTransport) applyOne(item BatchItem) BatchItemResult {
	k := item.Key.String()
	existing, exists := t.records[k]

	switch item.Kind {
	case shelf.OpInsert:
		if exists {
			return BatchItemResult{ResultCode: shelf.ResultRecordExists}
		}
	case shelf.OpUpdate:
		if !exists {
			return BatchItemResult{ResultCode: shelf.ResultRecordNotFound}
		}
	case shelf.OpDelete, shelf.OpTouch, shelf.OpQuery:
		if !exists {
			return BatchItemResult{ResultCode: shelf.ResultRecordNotFound}
		}
	}

	if item.Generation != nil && item.Generation.Enabled && exists && existing.generation != item.Generation.Expect {
		return BatchItemResult{ResultCode: shelf.ResultGenerationMismatch}
	}

	switch item.Kind {
	case shelf.OpDelete:
		delete(t.records, k)
		return BatchItemResult{ResultCode: shelf.ResultOK}
	case shelf.OpExists:
		return BatchItemResult{ResultCode: shelf.ResultOK, Record: recordOf(existing, exists)}
	case shelf.OpTouch:
		existing.generation++
		return BatchItemResult{ResultCode: shelf.ResultOK}
	case shelf.OpQuery:
		rec := recordOf(existing, exists)
		if item.ReadOnlyBins && rec != nil {
			projected := shelf.Bins{}
			for _, op := range item.Ops {
				if v, ok := rec.Bins[op.Bin]; ok {
					projected[op.Bin] = v
				}
			}
			rec.Bins = projected
		}
		return BatchItemResult{ResultCode: shelf.ResultOK, Record: rec}
	}

	bins := shelf.Bins{}
	if exists && item.Kind != shelf.OpReplace {
		bins = cloneBins(existing.bins)
	}
	for _, op := range item.Ops {
		applyBinOp(bins, op)
	}

	gen := uint32(1)
	if exists {
		gen = existing.generation + 1
	}
	entry := &recordEntry{key: item.Key, bins: bins, generation: gen}
	if item.TTL != nil {
		entry.ttl = ttlSeconds(*item.TTL, exists, existing)
	}
	t.records[k] = entry

	return BatchItemResult{ResultCode: shelf.ResultOK, Record: &shelf.Record{Bins: cloneBins(bins), Generation: gen, TTL: entry.ttl}}
}

func ttlSeconds(policy shelf.TTLPolicy, hadExisting bool, existing *recordEntry) uint32 {
	switch policy.Mode {
	case shelf.TTLNoChange:
		if hadExisting {
			return existing.ttl
		}
		return 0
	case shelf.TTLExpireAfter:
		return uint32(policy.Duration.Seconds())
	default:
		return 0
	}
}

func recordOf(e *recordEntry, exists bool) *shelf.Record {
	if !exists {
		return nil
	}
	return &shelf.Record{Bins: cloneBins(e.bins), Generation: e.generation, TTL: e.ttl}
}

// applyBinOp applies a single Op against an in-progress bin set. CDT
// operations are honored only at the bin's top level (empty Path) and only
// for the Set, Clear, Append and Prepend terminals; other terminals and
// nested navigation are accepted but left a no-op, since a reference transport
// exists to drive builder/behavior tests, not to reimplement full CDT
// semantics.
func applyBinOp(bins shelf.Bins, op shelf.Op) {
	switch op.Type {
	case shelf.BinSetTo:
		bins[op.Bin] = op.Value
	case shelf.BinAdd:
		cur := bins[op.Bin]
		bins[op.Bin] = shelf.I64Value(cur.I64 + op.Value.I64)
	case shelf.BinAppend:
		cur := bins[op.Bin]
		bins[op.Bin] = shelf.StringValue(cur.Str + op.Value.Str)
	case shelf.BinPrepend:
		cur := bins[op.Bin]
		bins[op.Bin] = shelf.StringValue(op.Value.Str + cur.Str)
	case shelf.BinRemove:
		delete(bins, op.Bin)
	case shelf.BinCdt:
		applyCdtOp(bins, op)
	}
}

func applyCdtOp(bins shelf.Bins, op shelf.Op) {
	if len(op.Path) != 0 {
		return
	}
	switch op.Terminal {
	case shelf.CdtSet:
		bins[op.Bin] = op.Value
	case shelf.CdtClear:
		delete(bins, op.Bin)
	case shelf.CdtAppend:
		cur := bins[op.Bin]
		cur.List = append(cur.List, op.Value)
		cur.Kind = shelf.KindList
		bins[op.Bin] = cur
	case shelf.CdtPrepend:
		cur := bins[op.Bin]
		cur.List = append([]shelf.Value{op.Value}, cur.List...)
		cur.Kind = shelf.KindList
		bins[op.Bin] = cur
	}
}

func (t *LocalTransport) ExecuteScan(ctx context.Context, ds shelf.DataSet, _ *shelf.FilterExpression, _ shelfbehavior.Settings) (ScanCursor, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	t.mu.RLock()
	defer t.mu.RUnlock()

	prefix := ds.Namespace + "." + ds.Set + ":"
	var keys []string
	for k := range t.records {
		if len(k) >= len(prefix) && k[:len(prefix)] == prefix {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)

	items := make([]BatchItemResult, 0, len(keys))
	for _, k := range keys {
		items = append(items, BatchItemResult{
			Key:        t.records[k].key,
			Record:     recordOf(t.records[k], true),
			ResultCode: shelf.ResultOK,
		})
	}

	return &localScanCursor{items: items}, nil
}

// localScanCursor hands its entire snapshot back in a single chunk; it
// exists to exercise ScanCursor's contract, not to model multi-chunk
// server-side paging.
type localScanCursor struct {
	items []BatchItemResult
	done  bool
}

func (c *localScanCursor) Next(ctx context.Context) ([]BatchItemResult, bool, error) {
	if err := ctx.Err(); err != nil {
		return nil, false, err
	}
	if c.done {
		return nil, false, nil
	}
	c.done = true
	return c.items, false, nil
}

func (c *localScanCursor) Close() error { return nil }

// Truncate removes every record whose key falls under ds, matching on the
// "namespace.set:" prefix Key.String() produces.
func (t *LocalTransport) Truncate(ctx context.Context, ds shelf.DataSet, _ shelfbehavior.Settings) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	prefix := ds.Namespace + "." + ds.Set + ":"
	for k := range t.records {
		if len(k) >= len(prefix) && k[:len(prefix)] == prefix {
			delete(t.records, k)
		}
	}
	return nil
}

func (t *LocalTransport) Info(ctx context.Context, _ string, _ string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	return "local", nil
}

func (t *LocalTransport) Close() error { return nil }
