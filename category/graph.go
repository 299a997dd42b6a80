// Package category holds the mutable category graph that the trimming
// pipeline operates on.
//
// The graph is a general directed graph: a category may have several parents
// and several children, and source dumps contain self-loops and cycles. Nodes
// are added only while loading; afterwards the graph only shrinks.
//
// Graph is not safe for concurrent use. It is owned by a single pipeline run.
package category

import (
	"sort"

	"github.com/teranos/catrim/errors"
)

// ErrNodeNotFound is returned when an operation references a node id
// that is not in the graph.
var ErrNodeNotFound = errors.New("category node not found")

// Node is a single category.
type Node struct {
	ID        int64
	Name      string
	PageCount int64
}

type idSet map[int64]struct{}

// Graph is a directed "has-subcategory" graph keyed by category id.
// Edge records are owned by the two adjacency maps; succ[p] contains c
// iff pred[c] contains p.
type Graph struct {
	nodes map[int64]*Node
	succ  map[int64]idSet
	pred  map[int64]idSet
	edges int
}

// New returns an empty graph.
func New() *Graph {
	return &Graph{
		nodes: make(map[int64]*Node),
		succ:  make(map[int64]idSet),
		pred:  make(map[int64]idSet),
	}
}

// AddNode inserts a category. Adding an existing id replaces its name and
// page count but keeps its edges. Negative page counts are stored as 0.
func (g *Graph) AddNode(id int64, name string, pageCount int64) {
	if pageCount < 0 {
		pageCount = 0
	}
	if n, ok := g.nodes[id]; ok {
		n.Name = name
		n.PageCount = pageCount
		return
	}
	g.nodes[id] = &Node{ID: id, Name: name, PageCount: pageCount}
	g.succ[id] = make(idSet)
	g.pred[id] = make(idSet)
}

// AddEdge inserts parent -> child. Both endpoints must exist.
// Adding an edge that is already present is a no-op.
func (g *Graph) AddEdge(parent, child int64) error {
	if err := g.mustHave(parent); err != nil {
		return err
	}
	if err := g.mustHave(child); err != nil {
		return err
	}
	g.link(parent, child)
	return nil
}

// HasNode reports whether id is in the graph.
func (g *Graph) HasNode(id int64) bool {
	_, ok := g.nodes[id]
	return ok
}

// HasEdge reports whether parent -> child is in the graph.
func (g *Graph) HasEdge(parent, child int64) bool {
	_, ok := g.succ[parent][child]
	return ok
}

// Node returns a copy of the node with the given id.
func (g *Graph) Node(id int64) (Node, error) {
	n, ok := g.nodes[id]
	if !ok {
		return Node{}, errors.Wrapf(ErrNodeNotFound, "node %d", id)
	}
	return *n, nil
}

// Len returns the number of nodes.
func (g *Graph) Len() int { return len(g.nodes) }

// EdgeCount returns the number of edges.
func (g *Graph) EdgeCount() int { return g.edges }

// NodeIDs returns every node id in ascending order.
func (g *Graph) NodeIDs() []int64 {
	ids := make([]int64, 0, len(g.nodes))
	for id := range g.nodes {
		ids = append(ids, id)
	}
	sortIDs(ids)
	return ids
}

// Successors returns the children of id in ascending order.
func (g *Graph) Successors(id int64) ([]int64, error) {
	if err := g.mustHave(id); err != nil {
		return nil, err
	}
	return sortedKeys(g.succ[id]), nil
}

// Predecessors returns the parents of id in ascending order.
func (g *Graph) Predecessors(id int64) ([]int64, error) {
	if err := g.mustHave(id); err != nil {
		return nil, err
	}
	return sortedKeys(g.pred[id]), nil
}

// RemoveNode deletes id and every edge touching it. Nothing is reconnected:
// whatever was reachable only through id becomes a separate component.
func (g *Graph) RemoveNode(id int64) error {
	if err := g.mustHave(id); err != nil {
		return err
	}
	g.excise(id)
	return nil
}

// RemoveNodeReconstruct splices id out of the graph. Every current parent of
// id becomes a direct parent of every current child of id, then id is removed
// as by RemoveNode. Existing edges are never duplicated.
//
// Applied repeatedly, splices compose: removing a child and later its parent
// reattaches the grandchildren to the grandparent.
func (g *Graph) RemoveNodeReconstruct(id int64) error {
	if err := g.mustHave(id); err != nil {
		return err
	}
	for p := range g.pred[id] {
		if p == id {
			continue
		}
		for s := range g.succ[id] {
			if s == id {
				continue
			}
			g.link(p, s)
		}
	}
	g.excise(id)
	return nil
}

// RemoveNodesFrom removes every id with RemoveNode, in ascending id order.
// All ids are checked first; if any is missing the graph is left untouched.
func (g *Graph) RemoveNodesFrom(ids []int64) error {
	for _, id := range ids {
		if err := g.mustHave(id); err != nil {
			return err
		}
	}
	ordered := append([]int64(nil), ids...)
	sortIDs(ordered)
	for _, id := range ordered {
		if g.HasNode(id) {
			g.excise(id)
		}
	}
	return nil
}

func (g *Graph) mustHave(id int64) error {
	if _, ok := g.nodes[id]; !ok {
		return errors.Wrapf(ErrNodeNotFound, "node %d", id)
	}
	return nil
}

func (g *Graph) link(parent, child int64) {
	if _, ok := g.succ[parent][child]; ok {
		return
	}
	g.succ[parent][child] = struct{}{}
	g.pred[child][parent] = struct{}{}
	g.edges++
}

func (g *Graph) excise(id int64) {
	for s := range g.succ[id] {
		delete(g.pred[s], id)
		g.edges--
	}
	// a self-loop left pred[id] in the loop above
	for p := range g.pred[id] {
		delete(g.succ[p], id)
		g.edges--
	}
	delete(g.succ, id)
	delete(g.pred, id)
	delete(g.nodes, id)
}

func sortedKeys(s idSet) []int64 {
	ids := make([]int64, 0, len(s))
	for id := range s {
		ids = append(ids, id)
	}
	sortIDs(ids)
	return ids
}

func sortIDs(ids []int64) {
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
}
