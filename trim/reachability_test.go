package trim

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teranos/catrim/errors"
)

func cyclicGraph() graphSpec {
	// 2 -> 3 -> 4 -> 2 is a cycle, 5 has a self-loop, 6 is isolated and
	// 7 points at the root but is not reachable from it
	return graphSpec{
		counts: map[int64]int64{1: 0, 2: 0, 3: 0, 4: 0, 5: 0, 6: 0, 7: 0},
		edges:  [][2]int64{{1, 2}, {2, 3}, {3, 4}, {4, 2}, {1, 5}, {5, 5}, {7, 1}},
	}
}

func TestPruneUnreachable(t *testing.T) {
	tests := []struct {
		name    string
		depth   int
		want    []int64
		removed int
	}{
		{name: "depth zero keeps only root", depth: 0, want: []int64{1}, removed: 6},
		{name: "depth one", depth: 1, want: []int64{1, 2, 5}, removed: 4},
		{name: "depth two", depth: 2, want: []int64{1, 2, 3, 5}, removed: 3},
		{name: "depth beyond graph terminates on cycles", depth: 100, want: []int64{1, 2, 3, 4, 5}, removed: 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := cyclicGraph().build(t)

			removed, err := PruneUnreachable(g, 1, tt.depth)
			require.NoError(t, err)

			assert.Equal(t, tt.removed, removed)
			assert.Equal(t, tt.want, g.NodeIDs())
		})
	}
}

func TestReachableUsesShortestDistance(t *testing.T) {
	// 4 is three hops away via 2 and 3, but one hop away directly
	g := graphSpec{
		counts: map[int64]int64{1: 0, 2: 0, 3: 0, 4: 0, 5: 0},
		edges:  [][2]int64{{1, 2}, {2, 3}, {3, 4}, {1, 4}, {4, 5}},
	}.build(t)

	reached, err := Reachable(g, 1, 2)
	require.NoError(t, err)

	assert.Contains(t, reached, int64(5))
	assert.Len(t, reached, 5)
}

func TestReachableIsMonotonicInDepth(t *testing.T) {
	g := cyclicGraph().build(t)

	var previous map[int64]struct{}
	for depth := 0; depth <= 5; depth++ {
		reached, err := Reachable(g, 1, depth)
		require.NoError(t, err)
		for id := range previous {
			assert.Contains(t, reached, id, "depth %d lost node %d", depth, id)
		}
		previous = reached
	}
}

func TestPruneUnreachableMissingRoot(t *testing.T) {
	g := cyclicGraph().build(t)

	_, err := PruneUnreachable(g, 999, 3)

	assert.True(t, errors.Is(err, ErrRootNotFound))
	assert.Equal(t, 7, g.Len(), "graph must be untouched")
}

func TestPruneUnreachableNegativeDepth(t *testing.T) {
	g := cyclicGraph().build(t)

	_, err := PruneUnreachable(g, 1, -1)

	assert.True(t, errors.IsInvalidRequestError(err))
	assert.Equal(t, 7, g.Len())
}
