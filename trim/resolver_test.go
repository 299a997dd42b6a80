package trim

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teranos/catrim/errors"
)

func TestResolveRoot(t *testing.T) {
	ctx := context.Background()

	t.Run("primary name", func(t *testing.T) {
		r := mapResolver{"en": {PrimaryRootCategory: 7345184, FallbackRootCategory: 1}}
		id, err := ResolveRoot(ctx, r, "en")
		require.NoError(t, err)
		assert.Equal(t, int64(7345184), id)
	})

	t.Run("falls back when primary is missing", func(t *testing.T) {
		r := mapResolver{"xx": {FallbackRootCategory: 42}}
		id, err := ResolveRoot(ctx, r, "xx")
		require.NoError(t, err)
		assert.Equal(t, int64(42), id)
	})

	t.Run("both missing", func(t *testing.T) {
		_, err := ResolveRoot(ctx, mapResolver{}, "xx")
		require.Error(t, err)
		assert.True(t, errors.IsNotFoundError(err))
		assert.NotEmpty(t, errors.GetAllHints(err))
	})

	t.Run("other failures do not fall back", func(t *testing.T) {
		calls := 0
		boom := errors.New("database is closed")
		r := ResolverFunc(func(context.Context, string, string) (int64, error) {
			calls++
			return 0, boom
		})

		_, err := ResolveRoot(ctx, r, "en")
		assert.True(t, errors.Is(err, boom))
		assert.Equal(t, 1, calls)
	})
}
