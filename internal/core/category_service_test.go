package core

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCategoryService(t *testing.T) {
	ctx := context.Background()

	t.Run("create and list", func(t *testing.T) {
		svc := NewCategoryService(&fakeCategoryRepo{})

		category, err := svc.Create(ctx, "  Clear Case  ")
		require.NoError(t, err)
		assert.Equal(t, "Clear Case", category.Name)
		assert.NotEmpty(t, category.ID)

		categories, err := svc.List(ctx)
		require.NoError(t, err)
		require.Len(t, categories, 1)
		assert.Equal(t, "Clear Case", categories[0].Name)
	})

	t.Run("duplicate names are rejected", func(t *testing.T) {
		svc := NewCategoryService(&fakeCategoryRepo{})
		_, err := svc.Create(ctx, "Clear Case")
		require.NoError(t, err)

		_, err = svc.Create(ctx, "Clear Case")
		assert.ErrorIs(t, err, ErrCategoryAlreadyExists)
	})

	t.Run("empty name is rejected", func(t *testing.T) {
		svc := NewCategoryService(&fakeCategoryRepo{})
		_, err := svc.Create(ctx, "   ")
		assert.Error(t, err)
	})

	t.Run("delete", func(t *testing.T) {
		repo := &fakeCategoryRepo{}
		svc := NewCategoryService(repo)
		category, err := svc.Create(ctx, "Clear Case")
		require.NoError(t, err)

		require.NoError(t, svc.Delete(ctx, category.ID))
		assert.ErrorIs(t, svc.Delete(ctx, category.ID), ErrCategoryNotFound)
	})
}
