package config

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dagrkit/dagr/pkg/logger"
)

func TestContext(t *testing.T) {
	t.Run("Should return nil when nothing is stored", func(t *testing.T) {
		assert.Nil(t, AccessorFromContext(context.Background()))
		assert.Nil(t, ResolverFromContext(context.Background()))
	})

	t.Run("Should return the stored accessor and resolver", func(t *testing.T) {
		a := NewAccessor(loadTestStore(t, "a: 1\n"), nil, WithLogger(logger.NewForTests()))
		r := NewResolver(a)
		ctx := ContextWithResolver(ContextWithAccessor(context.Background(), a), r)

		assert.Same(t, a, AccessorFromContext(ctx))
		assert.Same(t, r, ResolverFromContext(ctx))
	})

	t.Run("Should build a resolver over a stored accessor", func(t *testing.T) {
		a := NewAccessor(loadTestStore(t, "a: 1\n"), nil, WithLogger(logger.NewForTests()))
		ctx := ContextWithAccessor(context.Background(), a)

		r := ResolverFromContext(ctx)

		if assert.NotNil(t, r) {
			_, err := r.SearchPath()
			assert.NoError(t, err)
			assert.True(t, a.Requests().Contains(DefaultSearchPathKey))
		}
	})
}
