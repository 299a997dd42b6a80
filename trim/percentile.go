package trim

import (
	"math"
	"sort"

	"github.com/teranos/catrim/category"
	"github.com/teranos/catrim/errors"
)

// Percentile returns the p-th percentile of values using linear
// interpolation between the closest ranks. values need not be sorted.
// An empty input yields 0.
func Percentile(values []int64, p int) (float64, error) {
	if p < 0 || p > 100 {
		return 0, errors.NewInvalidRequestError("percentile %d outside [0, 100]", p)
	}
	if len(values) == 0 {
		return 0, nil
	}

	sorted := append([]int64(nil), values...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })

	rank := float64(p*(len(sorted)-1)) / 100
	lo := int(math.Floor(rank))
	hi := int(math.Ceil(rank))
	frac := rank - float64(lo)
	return float64(sorted[lo]) + (float64(sorted[hi])-float64(sorted[lo]))*frac, nil
}

// PrunePercentile splices out every node, except root, whose page count is
// strictly below the p-th percentile of all current page counts. Nodes are
// spliced one at a time in ascending id order, each against the graph as
// left by the previous splice. It returns the number of removed nodes and
// the threshold used.
func PrunePercentile(g *category.Graph, p int, rootID int64) (int, float64, error) {
	ids := g.NodeIDs()
	counts := make([]int64, len(ids))
	for i, id := range ids {
		n, err := g.Node(id)
		if err != nil {
			return 0, 0, err
		}
		counts[i] = n.PageCount
	}

	threshold, err := Percentile(counts, p)
	if err != nil {
		return 0, 0, err
	}

	removed := 0
	for i, id := range ids {
		if id == rootID || float64(counts[i]) >= threshold {
			continue
		}
		if err := g.RemoveNodeReconstruct(id); err != nil {
			return removed, threshold, errors.Wrapf(err, "splice category %d", id)
		}
		removed++
	}
	return removed, threshold, nil
}
