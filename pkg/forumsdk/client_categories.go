package forumsdk

import (
	"context"
	"net/http"
	"net/url"
)

// ListCategories returns every category with its subcategories, ordered by
// display order.
func (c *SDKClient) ListCategories(ctx context.Context) ([]CategoryResponse, error) {
	resp, err := c.doRequest(ctx, http.MethodGet, "/api/categories", nil, nil)
	if err != nil {
		return nil, err
	}

	var out []CategoryResponse
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return nil, err
	}

	return out, nil
}

// GetCategory returns a single category by id.
func (c *SDKClient) GetCategory(ctx context.Context, id string) (*CategoryResponse, error) {
	return c.getCategory(ctx, "/api/categories/"+url.PathEscape(id))
}

// GetCategoryBySlug returns a single category by slug.
func (c *SDKClient) GetCategoryBySlug(ctx context.Context, slug string) (*CategoryResponse, error) {
	return c.getCategory(ctx, "/api/categories/slug/"+url.PathEscape(slug))
}

func (c *SDKClient) getCategory(ctx context.Context, path string) (*CategoryResponse, error) {
	resp, err := c.doRequest(ctx, http.MethodGet, path, nil, nil)
	if err != nil {
		return nil, err
	}

	var out CategoryResponse
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return nil, err
	}

	return &out, nil
}
