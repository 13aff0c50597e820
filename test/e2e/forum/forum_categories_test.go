package forum_test

import (
	"testing"

	"github.com/aussiebroadwan/forum/pkg/forumsdk"
	"github.com/stretchr/testify/require"
)

// TestCategoryAdmin covers the admin category lifecycle and the public view
// of it.
func TestCategoryAdmin(t *testing.T) {
	client := setupForumContainer(t)
	admin := loginAdmin(t, client)
	user := registerAndLogin(t, client, "frank")

	req := forumsdk.CreateCategoryRequest{Name: "General Discussion", Description: "Talk about anything at all."}

	_, err := user.CreateCategory(t.Context(), req)
	require.ErrorIs(t, err, forumsdk.ErrForbidden)

	cat, err := admin.CreateCategory(t.Context(), req)
	require.NoError(t, err)
	require.Equal(t, "general-discussion", cat.Slug)

	_, err = admin.CreateCategory(t.Context(), req)
	require.ErrorIs(t, err, forumsdk.Validation("A category with this name already exists"))

	sub, err := admin.CreateSubcategory(t.Context(), cat.ID, forumsdk.CreateCategoryRequest{
		Name:        "Introductions",
		Description: "Say hello to everyone.",
	})
	require.NoError(t, err)
	require.Equal(t, cat.ID, sub.CategoryID)

	all, err := client.ListCategories(t.Context())
	require.NoError(t, err)
	require.Len(t, all, 1)
	require.Len(t, all[0].Subcategories, 1)

	name := "Off Topic"
	renamed, err := admin.UpdateCategory(t.Context(), cat.ID, forumsdk.UpdateCategoryRequest{Name: &name})
	require.NoError(t, err)
	require.Equal(t, "off-topic", renamed.Slug)

	bySlug, err := client.GetCategoryBySlug(t.Context(), "off-topic")
	require.NoError(t, err)
	require.Equal(t, cat.ID, bySlug.ID)

	require.NoError(t, admin.DeleteCategory(t.Context(), cat.ID))

	_, err = client.GetCategory(t.Context(), cat.ID)
	require.ErrorIs(t, err, forumsdk.NotFound("Category not found"))
}
