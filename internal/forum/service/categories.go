package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/aussiebroadwan/forum/internal/forum/domain"
	"github.com/aussiebroadwan/forum/internal/forum/store"
	"github.com/aussiebroadwan/forum/pkg/forumsdk"
	"github.com/aussiebroadwan/forum/pkg/slogx"
	"github.com/google/uuid"
)

// CategoryService manages the category tree. Reads are public and writes
// are reserved to admins by the HTTP layer.
type CategoryService struct {
	Store store.Store

	// Now defaults to time.Now.
	Now func() time.Time
}

// NewCategory is the input for creating a category or subcategory.
type NewCategory struct {
	Name         string
	Description  string
	Icon         *string
	DisplayOrder int
}

func (s *CategoryService) now() time.Time {
	if s.Now != nil {
		return s.Now().UTC()
	}
	return time.Now().UTC()
}

// slugFor validates a name and derives its slug.
func slugFor(name string) (string, error) {
	slug := Slugify(name)
	if slug == "" {
		return "", validate(map[string]string{"name": "must contain letters or digits"})
	}
	return slug, nil
}

func validateNew(in NewCategory) error {
	req := forumsdk.CreateCategoryRequest{Name: in.Name, Description: in.Description}
	return validate(req.Validate())
}

func validatePatch(p domain.CategoryPatch) error {
	req := forumsdk.UpdateCategoryRequest{Name: p.Name, Description: p.Description}
	return validate(req.Validate())
}

// List returns every category with its subcategories attached.
func (s *CategoryService) List(ctx context.Context) ([]domain.Category, error) {
	cats, err := s.Store.Categories().ListCategories(ctx)
	if err != nil {
		return nil, err
	}

	subs, err := s.Store.Categories().ListAllSubcategories(ctx)
	if err != nil {
		return nil, err
	}

	byCategory := make(map[uuid.UUID][]domain.Subcategory, len(cats))
	for _, sc := range subs {
		byCategory[sc.CategoryID] = append(byCategory[sc.CategoryID], sc)
	}
	for i := range cats {
		cats[i].Subcategories = byCategory[cats[i].ID]
		if cats[i].Subcategories == nil {
			cats[i].Subcategories = []domain.Subcategory{}
		}
	}
	return cats, nil
}

// GetByID returns one category with its subcategories.
func (s *CategoryService) GetByID(ctx context.Context, id uuid.UUID) (domain.Category, error) {
	c, err := s.Store.Categories().GetCategoryByID(ctx, id)
	if err != nil {
		return domain.Category{}, mapCategoryErr(err)
	}
	return s.withSubcategories(ctx, c)
}

// GetBySlug returns one category with its subcategories.
func (s *CategoryService) GetBySlug(ctx context.Context, slug string) (domain.Category, error) {
	c, err := s.Store.Categories().GetCategoryBySlug(ctx, strings.ToLower(strings.TrimSpace(slug)))
	if err != nil {
		return domain.Category{}, mapCategoryErr(err)
	}
	return s.withSubcategories(ctx, c)
}

func (s *CategoryService) withSubcategories(ctx context.Context, c domain.Category) (domain.Category, error) {
	subs, err := s.Store.Categories().ListSubcategories(ctx, c.ID)
	if err != nil {
		return domain.Category{}, err
	}
	if subs == nil {
		subs = []domain.Subcategory{}
	}
	c.Subcategories = subs
	return c, nil
}

// Create adds a category. Its slug is derived from the name and must not
// collide with any other category.
func (s *CategoryService) Create(ctx context.Context, in NewCategory) (domain.Category, error) {
	if err := validateNew(in); err != nil {
		return domain.Category{}, err
	}
	slug, err := slugFor(in.Name)
	if err != nil {
		return domain.Category{}, err
	}

	now := s.now()
	c := domain.Category{
		ID:            uuid.New(),
		Name:          strings.TrimSpace(in.Name),
		Slug:          slug,
		Description:   in.Description,
		Icon:          in.Icon,
		DisplayOrder:  in.DisplayOrder,
		CreatedAt:     now,
		UpdatedAt:     now,
		Subcategories: []domain.Subcategory{},
	}

	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		taken, err := tx.Categories().CategorySlugTaken(ctx, slug, uuid.Nil)
		if err != nil {
			return err
		}
		if taken {
			return ErrCategoryExists
		}
		return tx.Categories().CreateCategory(ctx, c)
	})
	if err != nil {
		return domain.Category{}, mapCategoryErr(err)
	}

	slogx.FromContext(ctx).Info("category created",
		slog.String("category_id", c.ID.String()),
		slog.String("slug", c.Slug),
	)
	return c, nil
}

// Update applies p to a category. A new name re-derives the slug.
func (s *CategoryService) Update(ctx context.Context, id uuid.UUID, p domain.CategoryPatch) (domain.Category, error) {
	if err := validatePatch(p); err != nil {
		return domain.Category{}, err
	}

	var out domain.Category
	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		c, err := tx.Categories().GetCategoryByID(ctx, id)
		if err != nil {
			return err
		}

		if p.Name != nil {
			slug, err := slugFor(*p.Name)
			if err != nil {
				return err
			}
			taken, err := tx.Categories().CategorySlugTaken(ctx, slug, id)
			if err != nil {
				return err
			}
			if taken {
				return ErrCategoryExists
			}
			c.Name = strings.TrimSpace(*p.Name)
			c.Slug = slug
		}
		if p.Description != nil {
			c.Description = *p.Description
		}
		if p.Icon != nil {
			c.Icon = p.Icon
		}
		if p.DisplayOrder != nil {
			c.DisplayOrder = *p.DisplayOrder
		}
		c.UpdatedAt = s.now()

		if err := tx.Categories().UpdateCategory(ctx, c); err != nil {
			return err
		}

		subs, err := tx.Categories().ListSubcategories(ctx, id)
		if err != nil {
			return err
		}
		if subs == nil {
			subs = []domain.Subcategory{}
		}
		c.Subcategories = subs
		out = c
		return nil
	})
	if err != nil {
		return domain.Category{}, mapCategoryErr(err)
	}
	return out, nil
}

// Delete removes a category together with its subcategories.
func (s *CategoryService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.Store.Categories().DeleteCategory(ctx, id); err != nil {
		return mapCategoryErr(err)
	}
	slogx.FromContext(ctx).Info("category deleted", slog.String("category_id", id.String()))
	return nil
}

// CreateSubcategory adds a subcategory under categoryID. The slug must be
// unique within that category only.
func (s *CategoryService) CreateSubcategory(ctx context.Context, categoryID uuid.UUID, in NewCategory) (domain.Subcategory, error) {
	if err := validateNew(in); err != nil {
		return domain.Subcategory{}, err
	}
	slug, err := slugFor(in.Name)
	if err != nil {
		return domain.Subcategory{}, err
	}

	now := s.now()
	sc := domain.Subcategory{
		ID:           uuid.New(),
		CategoryID:   categoryID,
		Name:         strings.TrimSpace(in.Name),
		Slug:         slug,
		Description:  in.Description,
		Icon:         in.Icon,
		DisplayOrder: in.DisplayOrder,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		if _, err := tx.Categories().GetCategoryByID(ctx, categoryID); err != nil {
			return err
		}
		taken, err := tx.Categories().SubcategorySlugTaken(ctx, categoryID, slug, uuid.Nil)
		if err != nil {
			return err
		}
		if taken {
			return ErrSubcategoryExists
		}
		return tx.Categories().CreateSubcategory(ctx, sc)
	})
	if err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			return domain.Subcategory{}, ErrSubcategoryExists
		}
		return domain.Subcategory{}, mapCategoryErr(err)
	}

	slogx.FromContext(ctx).Info("subcategory created",
		slog.String("category_id", categoryID.String()),
		slog.String("subcategory_id", sc.ID.String()),
		slog.String("slug", sc.Slug),
	)
	return sc, nil
}

// UpdateSubcategory applies p to a subcategory of categoryID.
func (s *CategoryService) UpdateSubcategory(ctx context.Context, categoryID, id uuid.UUID, p domain.CategoryPatch) (domain.Subcategory, error) {
	if err := validatePatch(p); err != nil {
		return domain.Subcategory{}, err
	}

	var out domain.Subcategory
	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		sc, err := tx.Categories().GetSubcategory(ctx, categoryID, id)
		if errors.Is(err, store.ErrNotFound) {
			return ErrSubcategoryNotFound
		} else if err != nil {
			return err
		}

		if p.Name != nil {
			slug, err := slugFor(*p.Name)
			if err != nil {
				return err
			}
			taken, err := tx.Categories().SubcategorySlugTaken(ctx, categoryID, slug, id)
			if err != nil {
				return err
			}
			if taken {
				return ErrSubcategoryExists
			}
			sc.Name = strings.TrimSpace(*p.Name)
			sc.Slug = slug
		}
		if p.Description != nil {
			sc.Description = *p.Description
		}
		if p.Icon != nil {
			sc.Icon = p.Icon
		}
		if p.DisplayOrder != nil {
			sc.DisplayOrder = *p.DisplayOrder
		}
		sc.UpdatedAt = s.now()

		if err := tx.Categories().UpdateSubcategory(ctx, sc); err != nil {
			return err
		}
		out = sc
		return nil
	})
	if err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			return domain.Subcategory{}, ErrSubcategoryExists
		}
		if errors.Is(err, store.ErrNotFound) {
			return domain.Subcategory{}, ErrSubcategoryNotFound
		}
		return domain.Subcategory{}, err
	}
	return out, nil
}

// DeleteSubcategory removes a subcategory of categoryID.
func (s *CategoryService) DeleteSubcategory(ctx context.Context, categoryID, id uuid.UUID) error {
	err := s.Store.Categories().DeleteSubcategory(ctx, categoryID, id)
	if errors.Is(err, store.ErrNotFound) {
		return ErrSubcategoryNotFound
	}
	if err != nil {
		return err
	}
	slogx.FromContext(ctx).Info("subcategory deleted",
		slog.String("category_id", categoryID.String()),
		slog.String("subcategory_id", id.String()),
	)
	return nil
}

func mapCategoryErr(err error) error {
	switch {
	case errors.Is(err, store.ErrNotFound):
		return ErrCategoryNotFound
	case errors.Is(err, store.ErrAlreadyExists):
		return ErrCategoryExists
	default:
		return err
	}
}
