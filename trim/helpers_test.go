package trim

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/teranos/catrim/category"
	"github.com/teranos/catrim/errors"
)

// mapResolver resolves names from a fixed table, keyed by language then name.
type mapResolver map[string]map[string]int64

func (m mapResolver) ResolveCategory(_ context.Context, language, name string) (int64, error) {
	if id, ok := m[language][name]; ok {
		return id, nil
	}
	return 0, errors.NewNotFoundError("category %q (%s)", name, language)
}

// graphSpec describes a test graph: page counts per node plus edges.
type graphSpec struct {
	counts map[int64]int64
	edges  [][2]int64
}

func (s graphSpec) build(t *testing.T) *category.Graph {
	t.Helper()
	g := category.New()
	for id, c := range s.counts {
		g.AddNode(id, "", c)
	}
	for _, e := range s.edges {
		require.NoError(t, g.AddEdge(e[0], e[1]), "edge %v", e)
	}
	return g
}

func successors(t *testing.T, g *category.Graph, id int64) []int64 {
	t.Helper()
	s, err := g.Successors(id)
	require.NoError(t, err)
	return s
}

// edgeList returns every edge in (parent, child) ascending order.
func edgeList(t *testing.T, g *category.Graph) [][2]int64 {
	t.Helper()
	var out [][2]int64
	for _, p := range g.NodeIDs() {
		for _, c := range successors(t, g, p) {
			out = append(out, [2]int64{p, c})
		}
	}
	return out
}
