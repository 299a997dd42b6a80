package trim

import (
	"context"

	"github.com/teranos/catrim/errors"
)

// Canonical root category names, tried in order.
const (
	PrimaryRootCategory  = "Category:Contents"
	FallbackRootCategory = "Category:Categories"
)

// DefaultExcludedCategories are administrative categories whose members are
// not topical content.
var DefaultExcludedCategories = []string{
	"Category:Hidden categories",
	"Category:Tracking categories",
	"Category:Noindexed pages",
}

// Resolver maps a category display name to its id in a language's dataset.
// Unknown names yield an error wrapping errors.ErrNotFound.
type Resolver interface {
	ResolveCategory(ctx context.Context, language, name string) (int64, error)
}

// ResolverFunc adapts a function to Resolver.
type ResolverFunc func(ctx context.Context, language, name string) (int64, error)

// ResolveCategory calls f.
func (f ResolverFunc) ResolveCategory(ctx context.Context, language, name string) (int64, error) {
	return f(ctx, language, name)
}

// ResolveRoot returns the id of the language's root category, trying
// PrimaryRootCategory and then FallbackRootCategory.
func ResolveRoot(ctx context.Context, r Resolver, language string) (int64, error) {
	id, err := r.ResolveCategory(ctx, language, PrimaryRootCategory)
	if err == nil {
		return id, nil
	}
	if !errors.IsNotFoundError(err) {
		return 0, errors.Wrapf(err, "resolve %s for %s", PrimaryRootCategory, language)
	}

	id, err = r.ResolveCategory(ctx, language, FallbackRootCategory)
	if err != nil {
		return 0, errors.WithHintf(
			errors.Wrapf(err, "resolve root category for %s", language),
			"neither %q nor %q exists in the %s assets", PrimaryRootCategory, FallbackRootCategory, language,
		)
	}
	return id, nil
}
