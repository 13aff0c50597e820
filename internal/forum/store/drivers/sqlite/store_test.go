package sqlite_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/aussiebroadwan/forum/internal/forum/domain"
	"github.com/aussiebroadwan/forum/internal/forum/store"
	"github.com/aussiebroadwan/forum/internal/forum/store/drivers/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func newStore(t *testing.T) *sqlite.Store {
	t.Helper()

	st, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })

	require.NoError(t, st.ApplyMigrations())
	return st
}

var epoch = time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)

func newUser(name string) domain.User {
	return domain.User{
		ID:           uuid.New(),
		Username:     name,
		Email:        name + "@example.com",
		PasswordHash: "$argon2id$stub",
		IsActive:     true,
		CreatedAt:    epoch,
		UpdatedAt:    epoch,
	}
}

func TestApplyMigrations_Idempotent(t *testing.T) {
	st := newStore(t)
	require.NoError(t, st.ApplyMigrations())
	require.NoError(t, st.Ping(context.Background()))
}

func TestUsers(t *testing.T) {
	ctx := context.Background()
	st := newStore(t)
	users := st.Users()

	alice := newUser("alice")
	require.NoError(t, users.CreateUser(ctx, alice))

	t.Run("lookups", func(t *testing.T) {
		byID, err := users.GetUserByID(ctx, alice.ID)
		require.NoError(t, err)
		require.Equal(t, alice.ID, byID.ID)
		require.Equal(t, alice.Username, byID.Username)
		require.Equal(t, alice.PasswordHash, byID.PasswordHash)
		require.True(t, byID.IsActive)
		require.False(t, byID.IsAdmin)
		require.True(t, byID.CreatedAt.Equal(epoch))
		require.Nil(t, byID.LastLogin)

		byName, err := users.GetUserByUsername(ctx, "alice")
		require.NoError(t, err)
		require.Equal(t, alice.ID, byName.ID)

		byEmail, err := users.GetUserByEmail(ctx, "alice@example.com")
		require.NoError(t, err)
		require.Equal(t, alice.ID, byEmail.ID)

		_, err = users.GetUserByUsername(ctx, "bob")
		require.ErrorIs(t, err, store.ErrNotFound)
	})

	t.Run("duplicates", func(t *testing.T) {
		dupName := newUser("alice")
		dupName.Email = "other@example.com"
		require.ErrorIs(t, users.CreateUser(ctx, dupName), store.ErrAlreadyExists)

		dupEmail := newUser("alice2")
		dupEmail.Email = alice.Email
		require.ErrorIs(t, users.CreateUser(ctx, dupEmail), store.ErrAlreadyExists)
	})

	t.Run("profile", func(t *testing.T) {
		bio := "hello"
		u := alice
		u.Bio = &bio
		u.UpdatedAt = epoch.Add(time.Hour)
		require.NoError(t, users.UpdateProfile(ctx, u))

		got, err := users.GetUserByID(ctx, alice.ID)
		require.NoError(t, err)
		require.Equal(t, &bio, got.Bio)
		require.Nil(t, got.DisplayName)
		require.True(t, got.UpdatedAt.Equal(epoch.Add(time.Hour)))
	})

	t.Run("password and login", func(t *testing.T) {
		at := epoch.Add(2 * time.Hour)
		require.NoError(t, users.UpdatePasswordHash(ctx, alice.ID, "$argon2id$new", at))
		require.NoError(t, users.TouchLastLogin(ctx, alice.ID, at))
		require.NoError(t, users.SetAdmin(ctx, alice.ID, true, at))

		got, err := users.GetUserByID(ctx, alice.ID)
		require.NoError(t, err)
		require.Equal(t, "$argon2id$new", got.PasswordHash)
		require.NotNil(t, got.LastLogin)
		require.True(t, got.LastLogin.Equal(at))
		require.True(t, got.IsAdmin)
	})

	t.Run("updates on missing user", func(t *testing.T) {
		require.ErrorIs(t, users.TouchLastLogin(ctx, uuid.New(), epoch), store.ErrNotFound)
	})
}

func newCategory(name, slug string, order int) domain.Category {
	return domain.Category{
		ID:           uuid.New(),
		Name:         name,
		Slug:         slug,
		Description:  name + " description",
		DisplayOrder: order,
		CreatedAt:    epoch,
		UpdatedAt:    epoch,
	}
}

func newSubcategory(parent uuid.UUID, name, slug string, order int) domain.Subcategory {
	return domain.Subcategory{
		ID:           uuid.New(),
		CategoryID:   parent,
		Name:         name,
		Slug:         slug,
		Description:  name + " description",
		DisplayOrder: order,
		CreatedAt:    epoch,
		UpdatedAt:    epoch,
	}
}

func TestCategories(t *testing.T) {
	ctx := context.Background()
	st := newStore(t)
	cats := st.Categories()

	second := newCategory("Off Topic", "off-topic", 2)
	first := newCategory("General", "general", 1)
	require.NoError(t, cats.CreateCategory(ctx, second))
	require.NoError(t, cats.CreateCategory(ctx, first))

	t.Run("ordered by display order", func(t *testing.T) {
		list, err := cats.ListCategories(ctx)
		require.NoError(t, err)
		require.Len(t, list, 2)
		require.Equal(t, "general", list[0].Slug)
		require.Equal(t, "off-topic", list[1].Slug)
	})

	t.Run("slug uniqueness", func(t *testing.T) {
		taken, err := cats.CategorySlugTaken(ctx, "general", uuid.Nil)
		require.NoError(t, err)
		require.True(t, taken)

		taken, err = cats.CategorySlugTaken(ctx, "general", first.ID)
		require.NoError(t, err)
		require.False(t, taken)

		require.ErrorIs(t, cats.CreateCategory(ctx, newCategory("General", "general", 3)), store.ErrAlreadyExists)
	})

	t.Run("subcategories", func(t *testing.T) {
		intro := newSubcategory(first.ID, "Introductions", "introductions", 2)
		rules := newSubcategory(first.ID, "Rules", "rules", 1)
		require.NoError(t, cats.CreateSubcategory(ctx, intro))
		require.NoError(t, cats.CreateSubcategory(ctx, rules))

		// The same slug may exist under another category.
		require.NoError(t, cats.CreateSubcategory(ctx, newSubcategory(second.ID, "Rules", "rules", 1)))
		require.ErrorIs(t, cats.CreateSubcategory(ctx, newSubcategory(first.ID, "Rules", "rules", 3)), store.ErrAlreadyExists)

		subs, err := cats.ListSubcategories(ctx, first.ID)
		require.NoError(t, err)
		require.Len(t, subs, 2)
		require.Equal(t, "rules", subs[0].Slug)

		all, err := cats.ListAllSubcategories(ctx)
		require.NoError(t, err)
		require.Len(t, all, 3)

		_, err = cats.GetSubcategory(ctx, second.ID, intro.ID)
		require.ErrorIs(t, err, store.ErrNotFound)
	})

	t.Run("delete cascades", func(t *testing.T) {
		require.NoError(t, cats.DeleteCategory(ctx, first.ID))

		_, err := cats.GetCategoryByID(ctx, first.ID)
		require.ErrorIs(t, err, store.ErrNotFound)

		subs, err := cats.ListSubcategories(ctx, first.ID)
		require.NoError(t, err)
		require.Empty(t, subs)

		require.ErrorIs(t, cats.DeleteCategory(ctx, first.ID), store.ErrNotFound)
	})

	t.Run("subcategory needs a parent", func(t *testing.T) {
		err := cats.CreateSubcategory(ctx, newSubcategory(uuid.New(), "Orphan", "orphan", 0))
		require.Error(t, err)
	})
}

func TestWithTx(t *testing.T) {
	ctx := context.Background()
	st := newStore(t)

	boom := errors.New("boom")
	err := st.WithTx(ctx, func(tx store.Tx) error {
		require.NoError(t, tx.Categories().CreateCategory(ctx, newCategory("General", "general", 0)))
		return boom
	})
	require.ErrorIs(t, err, boom)

	list, err := st.Categories().ListCategories(ctx)
	require.NoError(t, err)
	require.Empty(t, list)

	require.NoError(t, st.WithTx(ctx, func(tx store.Tx) error {
		return tx.Categories().CreateCategory(ctx, newCategory("General", "general", 0))
	}))

	list, err = st.Categories().ListCategories(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
}
