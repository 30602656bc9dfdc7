// Package shelfdiscovery implements the cluster-discovery collaborator
// named at the peripheral-pieces list: given a set of seed
// addresses, it health-checks each one over the standard gRPC health
// protocol and reports which are reachable, so a cluster handle can build
// its initial node list without the client ever speaking the KV wire
// protocol itself (that stays out of scope, per the transport Non-goal).
package shelfdiscovery

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/marmos91/shelf/internal/logger"
	"github.com/marmos91/shelf/pkg/shelfbehavior"
)

// Node is one address a Discoverer has health-checked.
type Node struct {
	Address   string
	Category  shelfbehavior.NodeCategory
	Healthy   bool
	CheckedAt time.Time
	Err       error
}

// Checker performs a single reachability check against address. The
// default implementation (GRPCHealthChecker) calls the standard gRPC
// health service; tests substitute a fake.
type Checker interface {
	Check(ctx context.Context, address string) error
}

// Seed is one address a Discoverer starts from, along with the replica
// category it is expected to serve.
type Seed struct {
	Address  string
	Category shelfbehavior.NodeCategory
}

// Discoverer health-checks a fixed seed list on demand or on a tend
// interval, publishing the resulting Node list to an atomic-swap-style
// reader identical in shape to shelfbehavior.Registry and
// shelfindex.Cache: callers always read the latest completed round, never
// a partial one.
type Discoverer struct {
	seeds   []Seed
	checker Checker

	mu    sync.RWMutex
	nodes []Node
}

// New builds a Discoverer over seeds, using checker to test reachability.
func New(seeds []Seed, checker Checker) *Discoverer {
	return &Discoverer{seeds: append([]Seed(nil), seeds...), checker: checker}
}

// Nodes returns the most recent completed discovery round's results. Empty
// until the first Discover or Run tick completes.
func (d *Discoverer) Nodes() []Node {
	d.mu.RLock()
	defer d.mu.RUnlock()
	out := make([]Node, len(d.nodes))
	copy(out, d.nodes)
	return out
}

// Healthy returns only the nodes that passed their most recent check.
func (d *Discoverer) Healthy() []Node {
	d.mu.RLock()
	defer d.mu.RUnlock()
	var out []Node
	for _, n := range d.nodes {
		if n.Healthy {
			out = append(out, n)
		}
	}
	return out
}

// Discover runs one round of health checks against every seed,
// concurrently, and publishes the results before returning them.
func (d *Discoverer) Discover(ctx context.Context) []Node {
	results := make([]Node, len(d.seeds))

	var wg sync.WaitGroup
	for i, seed := range d.seeds {
		wg.Add(1)
		go func(i int, seed Seed) {
			defer wg.Done()
			checkCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
			defer cancel()

			err := d.checker.Check(checkCtx, seed.Address)
			results[i] = Node{
				Address:   seed.Address,
				Category:  seed.Category,
				Healthy:   err == nil,
				CheckedAt: time.Now(),
				Err:       err,
			}
		}(i, seed)
	}
	wg.Wait()

	d.mu.Lock()
	d.nodes = results
	d.mu.Unlock()

	return results
}

// Run starts the background tend loop: an initial Discover, then one
// every interval, until ctx is cancelled. A non-positive interval is
// treated as one second. Mirrors the daemon shape of
// shelfconfig.Watcher.Run and shelfindex.Monitor.Run.
func (d *Discoverer) Run(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = time.Second
	}

	d.Discover(ctx)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Debug("discovery tend loop stopping")
			return
		case <-ticker.C:
			nodes := d.Discover(ctx)
			healthy := 0
			for _, n := range nodes {
				if n.Healthy {
					healthy++
				}
			}
			logger.Debug("discovery tend round complete",
				logger.KeyCount(len(nodes)),
				slog.Int("healthy", healthy),
			)
		}
	}
}
