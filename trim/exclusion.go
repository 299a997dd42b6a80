package trim

import (
	"context"

	"go.uber.org/zap"

	"github.com/teranos/catrim/category"
	"github.com/teranos/catrim/errors"
	"github.com/teranos/catrim/logger"
)

// ExcludeCategories removes each named administrative category together with
// its direct children. Children equal to rootID are kept. Names the resolver
// does not know, and ids missing from the graph, are skipped.
// The union is removed in one plain excision; nothing is reconnected.
// It returns the number of removed nodes.
func ExcludeCategories(ctx context.Context, g *category.Graph, r Resolver, language string, names []string, rootID int64, log *zap.SugaredLogger) (int, error) {
	if log == nil {
		log = zap.NewNop().Sugar()
	}

	removal := make(map[int64]struct{})
	for _, name := range names {
		id, err := r.ResolveCategory(ctx, language, name)
		if err != nil {
			if errors.IsNotFoundError(err) {
				log.Debugw("Excluded category not in language, skipping",
					logger.FieldCategory, name,
					logger.FieldLanguage, language)
				continue
			}
			return 0, errors.Wrapf(err, "resolve excluded category %q", name)
		}

		if !g.HasNode(id) {
			log.Warnw("Excluded category not in graph, skipping",
				logger.FieldCategory, name,
				logger.FieldCategoryID, id)
			continue
		}

		children, err := g.Successors(id)
		if err != nil {
			return 0, err
		}
		removal[id] = struct{}{}
		for _, c := range children {
			if c != rootID {
				removal[c] = struct{}{}
			}
		}
	}

	ids := make([]int64, 0, len(removal))
	for id := range removal {
		ids = append(ids, id)
	}
	if err := g.RemoveNodesFrom(ids); err != nil {
		return 0, errors.Wrap(err, "remove excluded categories")
	}
	return len(ids), nil
}
