package trim

import (
	"github.com/teranos/catrim/category"
	"github.com/teranos/catrim/errors"
)

// ErrRootNotFound is returned when the traversal root is not in the graph.
var ErrRootNotFound = errors.New("root category not in graph")

// Reachable returns the ids whose shortest successor-hop distance from root
// is at most depthLimit. Cycles and self-loops are handled by the visited set.
func Reachable(g *category.Graph, rootID int64, depthLimit int) (map[int64]struct{}, error) {
	if depthLimit < 0 {
		return nil, errors.NewInvalidRequestError("depth limit %d is negative", depthLimit)
	}
	if !g.HasNode(rootID) {
		return nil, errors.Wrapf(ErrRootNotFound, "root %d", rootID)
	}

	visited := map[int64]struct{}{rootID: {}}
	frontier := []int64{rootID}
	for depth := 0; depth < depthLimit && len(frontier) > 0; depth++ {
		var next []int64
		for _, id := range frontier {
			children, err := g.Successors(id)
			if err != nil {
				return nil, err
			}
			for _, c := range children {
				if _, seen := visited[c]; seen {
					continue
				}
				visited[c] = struct{}{}
				next = append(next, c)
			}
		}
		frontier = next
	}
	return visited, nil
}

// PruneUnreachable removes every node farther than depthLimit hops from root,
// and every node root cannot reach at all. An absent root is an error and
// leaves the graph untouched. It returns the number of removed nodes.
func PruneUnreachable(g *category.Graph, rootID int64, depthLimit int) (int, error) {
	reached, err := Reachable(g, rootID, depthLimit)
	if err != nil {
		return 0, err
	}

	var drop []int64
	for _, id := range g.NodeIDs() {
		if _, ok := reached[id]; !ok {
			drop = append(drop, id)
		}
	}
	if err := g.RemoveNodesFrom(drop); err != nil {
		return 0, errors.Wrap(err, "remove unreachable categories")
	}
	return len(drop), nil
}
