// Package trim prunes a loaded category graph down to a bounded, relevant
// subset.
//
// A run has three stages over the same graph, always in this order:
//
//  1. exclusion: administrative categories and their direct children are
//     cut away without reconnection
//  2. reachability: everything beyond the depth limit from the root is cut
//     away without reconnection
//  3. percentile: categories with few pages are spliced out, their parents
//     adopting their children
//
// Reachability runs before percentile so the threshold reflects only the
// kept subtree.
package trim

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/teranos/catrim/category"
	"github.com/teranos/catrim/errors"
	"github.com/teranos/catrim/logger"
)

// Stage names used in logs and stats.
const (
	StageExclusion    = "exclusion"
	StageReachability = "reachability"
	StagePercentile   = "percentile"
)

// Params configures one trimming run.
type Params struct {
	Language string
	RootID   int64
	// ExcludedCategories defaults to DefaultExcludedCategories when empty.
	ExcludedCategories []string
	DepthLimit         int
	PagePercentile     int
}

// Validate checks parameter ranges.
func (p Params) Validate() error {
	if p.DepthLimit < 0 {
		return errors.WithHint(
			errors.NewInvalidRequestError("depth limit %d is negative", p.DepthLimit),
			"use 0 to keep only the root category")
	}
	if p.PagePercentile < 0 || p.PagePercentile > 100 {
		return errors.WithHint(
			errors.NewInvalidRequestError("page percentile %d outside [0, 100]", p.PagePercentile),
			"0 keeps every category, 100 keeps only the largest")
	}
	return nil
}

// Stats summarises a run.
type Stats struct {
	NodesBefore int `json:"nodes_before"`
	EdgesBefore int `json:"edges_before"`

	Excluded        int     `json:"excluded"`
	Unreachable     int     `json:"unreachable"`
	BelowPercentile int     `json:"below_percentile"`
	Threshold       float64 `json:"threshold"`

	NodesAfter int `json:"nodes_after"`
	EdgesAfter int `json:"edges_after"`
}

// Trimmer runs the three stages.
type Trimmer struct {
	resolver Resolver
	logger   *zap.SugaredLogger
}

// NewTrimmer creates a trimmer that resolves excluded category names with r.
func NewTrimmer(r Resolver, log *zap.SugaredLogger) *Trimmer {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &Trimmer{resolver: r, logger: log.Named("trim")}
}

// Trim mutates g in place. On error the graph is left in an intermediate
// state and must not be reused.
func (t *Trimmer) Trim(ctx context.Context, g *category.Graph, p Params) (Stats, error) {
	if err := p.Validate(); err != nil {
		return Stats{}, err
	}
	names := p.ExcludedCategories
	if len(names) == 0 {
		names = DefaultExcludedCategories
	}

	log := t.logger.With(logger.FieldsFromContext(ctx)...)
	stats := Stats{NodesBefore: g.Len(), EdgesBefore: g.EdgeCount()}

	start := time.Now()
	removed, err := ExcludeCategories(ctx, g, t.resolver, p.Language, names, p.RootID, log.Named(StageExclusion))
	if err != nil {
		return stats, errors.Wrap(err, StageExclusion)
	}
	stats.Excluded = removed
	t.stageDone(log, StageExclusion, g, removed, start)

	start = time.Now()
	removed, err = PruneUnreachable(g, p.RootID, p.DepthLimit)
	if err != nil {
		if errors.Is(err, ErrRootNotFound) {
			err = errors.WithHintf(err, "root category %d was excluded or is missing from the %s assets", p.RootID, p.Language)
		}
		return stats, errors.Wrap(err, StageReachability)
	}
	stats.Unreachable = removed
	t.stageDone(log, StageReachability, g, removed, start, logger.FieldDepthLimit, p.DepthLimit)

	start = time.Now()
	removed, threshold, err := PrunePercentile(g, p.PagePercentile, p.RootID)
	if err != nil {
		return stats, errors.Wrap(err, StagePercentile)
	}
	stats.BelowPercentile = removed
	stats.Threshold = threshold
	t.stageDone(log, StagePercentile, g, removed, start,
		logger.FieldPercentile, p.PagePercentile,
		logger.FieldThreshold, threshold)

	stats.NodesAfter = g.Len()
	stats.EdgesAfter = g.EdgeCount()
	return stats, nil
}

func (t *Trimmer) stageDone(log *zap.SugaredLogger, stage string, g *category.Graph, removed int, start time.Time, extra ...interface{}) {
	fields := append([]interface{}{
		logger.FieldStage, stage,
		logger.FieldRemoved, removed,
		logger.FieldNodes, g.Len(),
		logger.FieldEdges, g.EdgeCount(),
		logger.FieldDurationMS, time.Since(start).Milliseconds(),
	}, extra...)
	log.Infow("["+stage+"] Stage complete", fields...)
}
