package forumsdk

import (
	"context"
	"net/http"
	"net/url"
)

// Admin operations. Every call here fails with ErrForbidden unless the
// token was issued to an admin.

// ============================================================================
// Categories
// ============================================================================

// CreateCategory creates a top-level category.
func (s *Session) CreateCategory(ctx context.Context, req CreateCategoryRequest) (*CategoryResponse, error) {
	resp, err := s.doAuthJSON(ctx, http.MethodPost, "/api/categories/admin", req)
	if err != nil {
		return nil, err
	}

	var out CategoryResponse
	if err := decodeJSON(resp, &out, http.StatusCreated); err != nil {
		return nil, err
	}

	return &out, nil
}

// UpdateCategory changes a category. Renaming it also changes its slug.
func (s *Session) UpdateCategory(ctx context.Context, id string, req UpdateCategoryRequest) (*CategoryResponse, error) {
	resp, err := s.doAuthJSON(ctx, http.MethodPut, "/api/categories/admin/"+url.PathEscape(id), req)
	if err != nil {
		return nil, err
	}

	var out CategoryResponse
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return nil, err
	}

	return &out, nil
}

// DeleteCategory removes a category and all of its subcategories.
func (s *Session) DeleteCategory(ctx context.Context, id string) error {
	resp, err := s.doAuthRequest(ctx, http.MethodDelete, "/api/categories/admin/"+url.PathEscape(id), nil, nil)
	if err != nil {
		return err
	}

	return checkStatusNoContent(resp)
}

// ============================================================================
// Subcategories
// ============================================================================

func subcategoriesPath(categoryID string) string {
	return "/api/categories/admin/" + url.PathEscape(categoryID) + "/subcategories"
}

// CreateSubcategory creates a subcategory under categoryID.
func (s *Session) CreateSubcategory(ctx context.Context, categoryID string, req CreateCategoryRequest) (*SubcategoryResponse, error) {
	resp, err := s.doAuthJSON(ctx, http.MethodPost, subcategoriesPath(categoryID), req)
	if err != nil {
		return nil, err
	}

	var out SubcategoryResponse
	if err := decodeJSON(resp, &out, http.StatusCreated); err != nil {
		return nil, err
	}

	return &out, nil
}

// UpdateSubcategory changes a subcategory of categoryID.
func (s *Session) UpdateSubcategory(ctx context.Context, categoryID, subcategoryID string, req UpdateCategoryRequest) (*SubcategoryResponse, error) {
	path := subcategoriesPath(categoryID) + "/" + url.PathEscape(subcategoryID)
	resp, err := s.doAuthJSON(ctx, http.MethodPut, path, req)
	if err != nil {
		return nil, err
	}

	var out SubcategoryResponse
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return nil, err
	}

	return &out, nil
}

// DeleteSubcategory removes a subcategory of categoryID.
func (s *Session) DeleteSubcategory(ctx context.Context, categoryID, subcategoryID string) error {
	path := subcategoriesPath(categoryID) + "/" + url.PathEscape(subcategoryID)
	resp, err := s.doAuthRequest(ctx, http.MethodDelete, path, nil, nil)
	if err != nil {
		return err
	}

	return checkStatusNoContent(resp)
}
