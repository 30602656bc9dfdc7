// Package shelfindex maintains an in-memory cache of the secondary-index
// metadata a cluster exposes, kept warm by an optional background
// monitor. The client never plans
// index queries itself; this cache only tells a caller which indexes
// exist so a Query's filter can be checked against them.
//
// The cache is backed by badger running fully in memory
// (badger.DefaultOptions("").WithInMemory(true)) rather than a plain map,
// which buys concurrent, versioned reads during a refresh without
// violating the "no client-side persistence across restarts" non-goal:
// nothing is ever written to disk, and a fresh Cache starts empty.
package shelfindex

import (
	"bytes"
	"context"
	"encoding/gob"
	"fmt"

	badger "github.com/dgraph-io/badger/v4"

	"github.com/marmos91/shelf/pkg/shelf"
	"github.com/marmos91/shelf/pkg/shelfmetrics"
)

// Cache holds the most recently fetched IndexMetadata, keyed by
// namespace/set/bin.
type Cache struct {
	db      *badger.DB
	metrics shelfmetrics.IndexMetrics
}

// NewCache opens an in-memory badger instance to back the cache. Badger's
// own logger is disabled: an index cache refreshing every few seconds has
// no business writing to whatever stdout/stderr the host process owns.
func NewCache() (*Cache, error) {
	opts := badger.DefaultOptions("").WithInMemory(true).WithLogger(nil)
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open in-memory index cache: %w", err)
	}
	return &Cache{db: db}, nil
}

// WithMetrics attaches cache hit/miss observability.
func (c *Cache) WithMetrics(metrics shelfmetrics.IndexMetrics) *Cache {
	c.metrics = metrics
	return c
}

func indexKey(namespace, set, bin string) []byte {
	return []byte(namespace + "\x00" + set + "\x00" + bin)
}

// Replace atomically swaps the cache's contents for indexes. Entries from
// a prior generation that no longer appear are dropped.
func (c *Cache) Replace(ctx context.Context, indexes []shelf.IndexMetadata) error {
	return c.db.Update(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		var stale [][]byte
		for it.Rewind(); it.Valid(); it.Next() {
			stale = append(stale, it.Item().KeyCopy(nil))
		}
		it.Close()
		for _, k := range stale {
			if err := txn.Delete(k); err != nil {
				return err
			}
		}

		for _, idx := range indexes {
			var buf bytes.Buffer
			if err := gob.NewEncoder(&buf).Encode(idx); err != nil {
				return err
			}
			if err := txn.Set(indexKey(idx.Namespace, idx.Set, idx.Bin), buf.Bytes()); err != nil {
				return err
			}
		}
		return nil
	})
}

// Lookup returns the index defined over namespace/set/bin, if any.
func (c *Cache) Lookup(ctx context.Context, namespace, set, bin string) (shelf.IndexMetadata, bool, error) {
	var out shelf.IndexMetadata
	found := false

	err := c.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(indexKey(namespace, set, bin))
		if err == badger.ErrKeyNotFound {
			return nil
		}
		if err != nil {
			return err
		}
		found = true
		return item.Value(func(val []byte) error {
			return gob.NewDecoder(bytes.NewReader(val)).Decode(&out)
		})
	})
	if err != nil {
		return shelf.IndexMetadata{}, false, err
	}

	indexKind := namespace + "." + set + "." + bin
	if c.metrics != nil {
		if found {
			c.metrics.RecordCacheHit(indexKind)
		} else {
			c.metrics.RecordCacheMiss(indexKind)
		}
	}

	return out, found, nil
}

// List returns every cached IndexMetadata. Order is unspecified.
func (c *Cache) List(ctx context.Context) ([]shelf.IndexMetadata, error) {
	var out []shelf.IndexMetadata
	err := c.db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()
		for it.Rewind(); it.Valid(); it.Next() {
			var idx shelf.IndexMetadata
			if err := it.Item().Value(func(val []byte) error {
				return gob.NewDecoder(bytes.NewReader(val)).Decode(&idx)
			}); err != nil {
				return err
			}
			out = append(out, idx)
		}
		return nil
	})
	return out, err
}

// Close releases the underlying badger instance.
func (c *Cache) Close() error {
	return c.db.Close()
}
