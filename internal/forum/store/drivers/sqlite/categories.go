package sqlite

import (
	"context"
	"database/sql"

	"github.com/aussiebroadwan/forum/internal/forum/domain"
	"github.com/google/uuid"
)

type categoriesRepo struct {
	q querier
}

const (
	categoryColumns    = `id, name, slug, description, icon, display_order, created_at, updated_at`
	subcategoryColumns = `id, category_id, name, slug, description, icon, display_order, created_at, updated_at`
)

type scanner interface{ Scan(...any) error }

func scanCategory(row scanner) (domain.Category, error) {
	var (
		c    domain.Category
		icon sql.NullString
	)
	if err := row.Scan(&c.ID, &c.Name, &c.Slug, &c.Description, &icon,
		&c.DisplayOrder, &c.CreatedAt, &c.UpdatedAt); err != nil {
		return domain.Category{}, err
	}
	c.Icon = mapNullStringPtr(icon)
	c.CreatedAt = c.CreatedAt.UTC()
	c.UpdatedAt = c.UpdatedAt.UTC()
	return c, nil
}

func scanSubcategory(row scanner) (domain.Subcategory, error) {
	var (
		s    domain.Subcategory
		icon sql.NullString
	)
	if err := row.Scan(&s.ID, &s.CategoryID, &s.Name, &s.Slug, &s.Description, &icon,
		&s.DisplayOrder, &s.CreatedAt, &s.UpdatedAt); err != nil {
		return domain.Subcategory{}, err
	}
	s.Icon = mapNullStringPtr(icon)
	s.CreatedAt = s.CreatedAt.UTC()
	s.UpdatedAt = s.UpdatedAt.UTC()
	return s, nil
}

// collect drains rows through scan.
func collect[T any](rows *sql.Rows, err error, scan func(scanner) (T, error)) ([]T, error) {
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []T{}
	for rows.Next() {
		v, err := scan(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

// ============================================================================
// Categories
// ============================================================================

func (r *categoriesRepo) ListCategories(ctx context.Context) ([]domain.Category, error) {
	rows, err := r.q.QueryContext(ctx,
		`SELECT `+categoryColumns+` FROM categories ORDER BY display_order, name`)
	return collect(rows, err, scanCategory)
}

func (r *categoriesRepo) GetCategoryByID(ctx context.Context, id uuid.UUID) (domain.Category, error) {
	c, err := scanCategory(r.q.QueryRowContext(ctx,
		`SELECT `+categoryColumns+` FROM categories WHERE id = ?`, id))
	if err != nil {
		return domain.Category{}, mapNotFound(err)
	}
	return c, nil
}

func (r *categoriesRepo) GetCategoryBySlug(ctx context.Context, slug string) (domain.Category, error) {
	c, err := scanCategory(r.q.QueryRowContext(ctx,
		`SELECT `+categoryColumns+` FROM categories WHERE slug = ?`, slug))
	if err != nil {
		return domain.Category{}, mapNotFound(err)
	}
	return c, nil
}

func (r *categoriesRepo) CategorySlugTaken(ctx context.Context, slug string, exclude uuid.UUID) (bool, error) {
	var taken bool
	err := r.q.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM categories WHERE slug = ? AND id <> ?)`,
		slug, exclude,
	).Scan(&taken)
	return taken, err
}

func (r *categoriesRepo) CreateCategory(ctx context.Context, c domain.Category) error {
	_, err := r.q.ExecContext(ctx, `
		INSERT INTO categories (`+categoryColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		c.ID, c.Name, c.Slug, c.Description, mapOptionalString(c.Icon),
		c.DisplayOrder, c.CreatedAt.UTC(), c.UpdatedAt.UTC(),
	)
	return mapConstraint(err)
}

func (r *categoriesRepo) UpdateCategory(ctx context.Context, c domain.Category) error {
	res, err := r.q.ExecContext(ctx, `
		UPDATE categories
		SET name = ?, slug = ?, description = ?, icon = ?, display_order = ?, updated_at = ?
		WHERE id = ?`,
		c.Name, c.Slug, c.Description, mapOptionalString(c.Icon),
		c.DisplayOrder, c.UpdatedAt.UTC(), c.ID,
	)
	return requireAffected(res, mapConstraint(err))
}

func (r *categoriesRepo) DeleteCategory(ctx context.Context, id uuid.UUID) error {
	return requireAffected(r.q.ExecContext(ctx, `DELETE FROM categories WHERE id = ?`, id))
}

// ============================================================================
// Subcategories
// ============================================================================

func (r *categoriesRepo) ListSubcategories(ctx context.Context, categoryID uuid.UUID) ([]domain.Subcategory, error) {
	rows, err := r.q.QueryContext(ctx,
		`SELECT `+subcategoryColumns+` FROM subcategories
		WHERE category_id = ? ORDER BY display_order, name`, categoryID)
	return collect(rows, err, scanSubcategory)
}

func (r *categoriesRepo) ListAllSubcategories(ctx context.Context) ([]domain.Subcategory, error) {
	rows, err := r.q.QueryContext(ctx,
		`SELECT `+subcategoryColumns+` FROM subcategories ORDER BY display_order, name`)
	return collect(rows, err, scanSubcategory)
}

func (r *categoriesRepo) GetSubcategory(ctx context.Context, categoryID, id uuid.UUID) (domain.Subcategory, error) {
	s, err := scanSubcategory(r.q.QueryRowContext(ctx,
		`SELECT `+subcategoryColumns+` FROM subcategories WHERE id = ? AND category_id = ?`,
		id, categoryID))
	if err != nil {
		return domain.Subcategory{}, mapNotFound(err)
	}
	return s, nil
}

func (r *categoriesRepo) SubcategorySlugTaken(
	ctx context.Context,
	categoryID uuid.UUID,
	slug string,
	exclude uuid.UUID,
) (bool, error) {
	var taken bool
	err := r.q.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM subcategories WHERE category_id = ? AND slug = ? AND id <> ?)`,
		categoryID, slug, exclude,
	).Scan(&taken)
	return taken, err
}

func (r *categoriesRepo) CreateSubcategory(ctx context.Context, s domain.Subcategory) error {
	_, err := r.q.ExecContext(ctx, `
		INSERT INTO subcategories (`+subcategoryColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		s.ID, s.CategoryID, s.Name, s.Slug, s.Description, mapOptionalString(s.Icon),
		s.DisplayOrder, s.CreatedAt.UTC(), s.UpdatedAt.UTC(),
	)
	return mapConstraint(err)
}

func (r *categoriesRepo) UpdateSubcategory(ctx context.Context, s domain.Subcategory) error {
	res, err := r.q.ExecContext(ctx, `
		UPDATE subcategories
		SET name = ?, slug = ?, description = ?, icon = ?, display_order = ?, updated_at = ?
		WHERE id = ? AND category_id = ?`,
		s.Name, s.Slug, s.Description, mapOptionalString(s.Icon),
		s.DisplayOrder, s.UpdatedAt.UTC(), s.ID, s.CategoryID,
	)
	return requireAffected(res, mapConstraint(err))
}

func (r *categoriesRepo) DeleteSubcategory(ctx context.Context, categoryID, id uuid.UUID) error {
	return requireAffected(r.q.ExecContext(ctx,
		`DELETE FROM subcategories WHERE id = ? AND category_id = ?`, id, categoryID))
}
