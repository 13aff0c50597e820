package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/aussiebroadwan/forum/internal/forum/domain"
	"github.com/aussiebroadwan/forum/internal/forum/service"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func newCategories(t *testing.T) *service.CategoryService {
	t.Helper()
	return &service.CategoryService{
		Store: newStore(t),
		Now:   func() time.Time { return epoch },
	}
}

func TestCategoryService_CreateAndRead(t *testing.T) {
	ctx := context.Background()
	svc := newCategories(t)

	c, err := svc.Create(ctx, service.NewCategory{
		Name:         "General Discussion",
		Description:  "Talk about anything at all.",
		DisplayOrder: 2,
	})
	require.NoError(t, err)
	require.Equal(t, "general-discussion", c.Slug)
	require.Empty(t, c.Subcategories)

	_, err = svc.Create(ctx, service.NewCategory{Name: "Announcements", Description: "News from the team.", DisplayOrder: 1})
	require.NoError(t, err)

	t.Run("duplicate slug", func(t *testing.T) {
		_, err := svc.Create(ctx, service.NewCategory{Name: "general   discussion!", Description: "Same slug as before."})
		require.ErrorIs(t, err, service.ErrCategoryExists)
		require.ErrorIs(t, err, service.ErrDuplicateSlug)
	})

	t.Run("validation", func(t *testing.T) {
		_, err := svc.Create(ctx, service.NewCategory{Name: "ab", Description: "short"})
		var verr *service.ValidationError
		require.ErrorAs(t, err, &verr)
		require.Contains(t, verr.Fields, "name")
		require.Contains(t, verr.Fields, "description")
	})

	t.Run("name without letters or digits", func(t *testing.T) {
		_, err := svc.Create(ctx, service.NewCategory{Name: "!!!!", Description: "Nothing to slug here."})
		require.ErrorIs(t, err, service.ErrValidation)
	})

	t.Run("list is ordered by display order", func(t *testing.T) {
		all, err := svc.List(ctx)
		require.NoError(t, err)
		require.Len(t, all, 2)
		require.Equal(t, "announcements", all[0].Slug)
		require.Equal(t, "general-discussion", all[1].Slug)
	})

	t.Run("lookup by id and slug", func(t *testing.T) {
		byID, err := svc.GetByID(ctx, c.ID)
		require.NoError(t, err)
		require.Equal(t, c.Name, byID.Name)

		bySlug, err := svc.GetBySlug(ctx, "general-discussion")
		require.NoError(t, err)
		require.Equal(t, c.ID, bySlug.ID)

		_, err = svc.GetByID(ctx, uuid.New())
		require.ErrorIs(t, err, service.ErrCategoryNotFound)
		_, err = svc.GetBySlug(ctx, "missing")
		require.ErrorIs(t, err, service.ErrCategoryNotFound)
	})
}

func TestCategoryService_Update(t *testing.T) {
	ctx := context.Background()
	svc := newCategories(t)

	a, err := svc.Create(ctx, service.NewCategory{Name: "Gaming", Description: "Video games and more."})
	require.NoError(t, err)
	_, err = svc.Create(ctx, service.NewCategory{Name: "Music", Description: "Bands and records."})
	require.NoError(t, err)

	// Renaming to its own name is not a clash.
	got, err := svc.Update(ctx, a.ID, domain.CategoryPatch{Name: ptr("Gaming"), DisplayOrder: ptr(5)})
	require.NoError(t, err)
	require.Equal(t, "gaming", got.Slug)
	require.Equal(t, 5, got.DisplayOrder)

	got, err = svc.Update(ctx, a.ID, domain.CategoryPatch{Name: ptr("Tabletop Games")})
	require.NoError(t, err)
	require.Equal(t, "tabletop-games", got.Slug)
	require.Equal(t, "Video games and more.", got.Description)

	_, err = svc.Update(ctx, a.ID, domain.CategoryPatch{Name: ptr("Music")})
	require.ErrorIs(t, err, service.ErrCategoryExists)

	_, err = svc.Update(ctx, uuid.New(), domain.CategoryPatch{Icon: ptr("x")})
	require.ErrorIs(t, err, service.ErrCategoryNotFound)
}

func TestCategoryService_Subcategories(t *testing.T) {
	ctx := context.Background()
	svc := newCategories(t)

	parent, err := svc.Create(ctx, service.NewCategory{Name: "Community", Description: "People and places."})
	require.NoError(t, err)
	other, err := svc.Create(ctx, service.NewCategory{Name: "Support", Description: "Ask for help here."})
	require.NoError(t, err)

	intro, err := svc.CreateSubcategory(ctx, parent.ID, service.NewCategory{Name: "Introductions", Description: "Say hello to everyone."})
	require.NoError(t, err)
	require.Equal(t, "introductions", intro.Slug)
	require.Equal(t, parent.ID, intro.CategoryID)

	// Slugs are scoped to their category.
	_, err = svc.CreateSubcategory(ctx, other.ID, service.NewCategory{Name: "Introductions", Description: "Say hello to support."})
	require.NoError(t, err)

	_, err = svc.CreateSubcategory(ctx, parent.ID, service.NewCategory{Name: "introductions", Description: "Duplicate within parent."})
	require.ErrorIs(t, err, service.ErrSubcategoryExists)

	_, err = svc.CreateSubcategory(ctx, uuid.New(), service.NewCategory{Name: "Orphans", Description: "No parent category."})
	require.ErrorIs(t, err, service.ErrCategoryNotFound)

	updated, err := svc.UpdateSubcategory(ctx, parent.ID, intro.ID, domain.CategoryPatch{Name: ptr("Welcome Lounge")})
	require.NoError(t, err)
	require.Equal(t, "welcome-lounge", updated.Slug)

	// The subcategory is not reachable through the wrong parent.
	_, err = svc.UpdateSubcategory(ctx, other.ID, intro.ID, domain.CategoryPatch{Icon: ptr("x")})
	require.ErrorIs(t, err, service.ErrSubcategoryNotFound)
	require.ErrorIs(t, svc.DeleteSubcategory(ctx, other.ID, intro.ID), service.ErrSubcategoryNotFound)

	got, err := svc.GetByID(ctx, parent.ID)
	require.NoError(t, err)
	require.Len(t, got.Subcategories, 1)

	all, err := svc.List(ctx)
	require.NoError(t, err)
	for _, c := range all {
		require.Len(t, c.Subcategories, 1)
	}

	require.NoError(t, svc.DeleteSubcategory(ctx, parent.ID, intro.ID))
	got, err = svc.GetByID(ctx, parent.ID)
	require.NoError(t, err)
	require.Empty(t, got.Subcategories)
}

func TestCategoryService_Delete(t *testing.T) {
	ctx := context.Background()
	svc := newCategories(t)

	c, err := svc.Create(ctx, service.NewCategory{Name: "Temporary", Description: "Will be removed soon."})
	require.NoError(t, err)
	_, err = svc.CreateSubcategory(ctx, c.ID, service.NewCategory{Name: "Child", Description: "Goes with the parent."})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, c.ID))
	require.ErrorIs(t, svc.Delete(ctx, c.ID), service.ErrCategoryNotFound)

	_, err = svc.GetByID(ctx, c.ID)
	require.ErrorIs(t, err, service.ErrCategoryNotFound)
}
