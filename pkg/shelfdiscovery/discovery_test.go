package shelfdiscovery

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marmos91/shelf/pkg/shelfbehavior"
)

type fakeChecker struct {
	mu      sync.Mutex
	healthy map[string]bool
	checked int
}

func newFakeChecker(healthy map[string]bool) *fakeChecker {
	return &fakeChecker{healthy: healthy}
}

func (f *fakeChecker) Check(ctx context.Context, address string) error {
	f.mu.Lock()
	f.checked++
	f.mu.Unlock()

	if f.healthy[address] {
		return nil
	}
	return errors.New("unreachable")
}

func (f *fakeChecker) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.checked
}

func TestDiscoverer_DiscoverMarksHealthyAndUnhealthy(t *testing.T) {
	checker := newFakeChecker(map[string]bool{"node-a:3000": true})
	d := New([]Seed{
		{Address: "node-a:3000", Category: shelfbehavior.NodeMaster},
		{Address: "node-b:3000", Category: shelfbehavior.NodeAnyReplica},
	}, checker)

	nodes := d.Discover(context.Background())
	require.Len(t, nodes, 2)

	byAddr := map[string]Node{}
	for _, n := range nodes {
		byAddr[n.Address] = n
	}

	assert.True(t, byAddr["node-a:3000"].Healthy)
	assert.False(t, byAddr["node-b:3000"].Healthy)
	assert.Error(t, byAddr["node-b:3000"].Err)
}

func TestDiscoverer_HealthyFiltersToReachableOnly(t *testing.T) {
	checker := newFakeChecker(map[string]bool{"a": true, "b": false})
	d := New([]Seed{{Address: "a"}, {Address: "b"}}, checker)

	d.Discover(context.Background())

	healthy := d.Healthy()
	require.Len(t, healthy, 1)
	assert.Equal(t, "a", healthy[0].Address)
}

func TestDiscoverer_NodesReturnsEmptyBeforeFirstRound(t *testing.T) {
	d := New([]Seed{{Address: "a"}}, newFakeChecker(nil))
	assert.Empty(t, d.Nodes())
}

func TestDiscoverer_RunTendsUntilCancelled(t *testing.T) {
	checker := newFakeChecker(map[string]bool{"a": true})
	d := New([]Seed{{Address: "a"}}, checker)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		d.Run(ctx, 20*time.Millisecond)
		close(done)
	}()

	require.Eventually(t, func() bool {
		return checker.count() >= 2
	}, time.Second, 5*time.Millisecond)

	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Run did not stop after cancellation")
	}
}
