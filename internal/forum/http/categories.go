package http

import (
	"net/http"

	"github.com/aussiebroadwan/forum/internal/forum/domain"
	"github.com/aussiebroadwan/forum/internal/forum/service"
	"github.com/aussiebroadwan/forum/pkg/forumsdk"
	"github.com/aussiebroadwan/forum/pkg/httpx"
)

const (
	msgInvalidCategoryID    = "Invalid category ID format"
	msgInvalidSubcategoryID = "Invalid subcategory ID format"
)

type CategoriesHandler struct {
	CategoryService *service.CategoryService
}

func newCategory(req forumsdk.CreateCategoryRequest) service.NewCategory {
	in := service.NewCategory{
		Name:        req.Name,
		Description: req.Description,
		Icon:        req.Icon,
	}
	if req.DisplayOrder != nil {
		in.DisplayOrder = *req.DisplayOrder
	}
	return in
}

func categoryPatch(req forumsdk.UpdateCategoryRequest) domain.CategoryPatch {
	return domain.CategoryPatch{
		Name:         req.Name,
		Description:  req.Description,
		Icon:         req.Icon,
		DisplayOrder: req.DisplayOrder,
	}
}

// HandleList returns every category with its subcategories.
//
//	@Summary		List categories
//	@Description	Categories and their subcategories are ordered by display_order, then name.
//	@Tags			Categories
//	@Produce		json
//	@Success		200	{array}		forumsdk.CategoryResponse
//	@Failure		500	{object}	forumsdk.ErrorResponse
//	@Router			/api/categories [get].
func (h *CategoriesHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	cats, err := h.CategoryService.List(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}

	out := make([]forumsdk.CategoryResponse, 0, len(cats))
	for _, c := range cats {
		out = append(out, toCategoryResponse(c))
	}
	httpx.WriteJSON(w, http.StatusOK, out)
}

// HandleGet returns a single category.
//
//	@Summary		Get a category
//	@Tags			Categories
//	@Produce		json
//	@Param			id	path		string	true	"Category ID (uuid)"
//	@Success		200	{object}	forumsdk.CategoryResponse
//	@Failure		400	{object}	forumsdk.ErrorResponse	"Invalid category ID format"
//	@Failure		404	{object}	forumsdk.ErrorResponse
//	@Router			/api/categories/{id} [get].
func (h *CategoriesHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id", msgInvalidCategoryID)
	if !ok {
		return
	}

	c, err := h.CategoryService.GetByID(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toCategoryResponse(c))
}

// HandleGetBySlug returns a single category by its slug.
//
//	@Summary		Get a category by slug
//	@Tags			Categories
//	@Produce		json
//	@Param			slug	path		string	true	"Category slug"
//	@Success		200		{object}	forumsdk.CategoryResponse
//	@Failure		404		{object}	forumsdk.ErrorResponse
//	@Router			/api/categories/slug/{slug} [get].
func (h *CategoriesHandler) HandleGetBySlug(w http.ResponseWriter, r *http.Request) {
	c, err := h.CategoryService.GetBySlug(r.Context(), r.PathValue("slug"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toCategoryResponse(c))
}

// HandleCreate adds a category.
//
//	@Summary		Create a category
//	@Description	The slug is derived from the name and must be unique.
//	@Tags			Categories (admin)
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		forumsdk.CreateCategoryRequest	true	"Category"
//	@Success		201		{object}	forumsdk.CategoryResponse
//	@Failure		400		{object}	forumsdk.ErrorResponse
//	@Failure		401		{object}	forumsdk.ErrorResponse
//	@Failure		403		{object}	forumsdk.ErrorResponse
//	@Router			/api/categories/admin [post].
func (h *CategoriesHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req forumsdk.CreateCategoryRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		forumsdk.ErrInvalidBody.WriteError(w)
		return
	}

	c, err := h.CategoryService.Create(r.Context(), newCategory(req))
	if err != nil {
		writeError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, toCategoryResponse(c))
}

// HandleUpdate changes a category.
//
//	@Summary		Update a category
//	@Description	Only the fields present in the body are changed. A new name also changes the slug.
//	@Tags			Categories (admin)
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string							true	"Category ID (uuid)"
//	@Param			request	body		forumsdk.UpdateCategoryRequest	true	"Fields to change"
//	@Success		200		{object}	forumsdk.CategoryResponse
//	@Failure		400		{object}	forumsdk.ErrorResponse
//	@Failure		401		{object}	forumsdk.ErrorResponse
//	@Failure		403		{object}	forumsdk.ErrorResponse
//	@Failure		404		{object}	forumsdk.ErrorResponse
//	@Router			/api/categories/admin/{id} [put].
func (h *CategoriesHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id", msgInvalidCategoryID)
	if !ok {
		return
	}

	var req forumsdk.UpdateCategoryRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		forumsdk.ErrInvalidBody.WriteError(w)
		return
	}

	c, err := h.CategoryService.Update(r.Context(), id, categoryPatch(req))
	if err != nil {
		writeError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toCategoryResponse(c))
}

// HandleDelete removes a category and its subcategories.
//
//	@Summary		Delete a category
//	@Tags			Categories (admin)
//	@Security		BearerAuth
//	@Param			id	path	string	true	"Category ID (uuid)"
//	@Success		204
//	@Failure		400	{object}	forumsdk.ErrorResponse
//	@Failure		401	{object}	forumsdk.ErrorResponse
//	@Failure		403	{object}	forumsdk.ErrorResponse
//	@Failure		404	{object}	forumsdk.ErrorResponse
//	@Router			/api/categories/admin/{id} [delete].
func (h *CategoriesHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id", msgInvalidCategoryID)
	if !ok {
		return
	}

	if err := h.CategoryService.Delete(r.Context(), id); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// HandleCreateSubcategory adds a subcategory.
//
//	@Summary		Create a subcategory
//	@Description	The slug is derived from the name and must be unique within the category.
//	@Tags			Categories (admin)
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string							true	"Category ID (uuid)"
//	@Param			request	body		forumsdk.CreateCategoryRequest	true	"Subcategory"
//	@Success		201		{object}	forumsdk.SubcategoryResponse
//	@Failure		400		{object}	forumsdk.ErrorResponse
//	@Failure		401		{object}	forumsdk.ErrorResponse
//	@Failure		403		{object}	forumsdk.ErrorResponse
//	@Failure		404		{object}	forumsdk.ErrorResponse
//	@Router			/api/categories/admin/{id}/subcategories [post].
func (h *CategoriesHandler) HandleCreateSubcategory(w http.ResponseWriter, r *http.Request) {
	categoryID, ok := pathID(w, r, "id", msgInvalidCategoryID)
	if !ok {
		return
	}

	var req forumsdk.CreateCategoryRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		forumsdk.ErrInvalidBody.WriteError(w)
		return
	}

	sc, err := h.CategoryService.CreateSubcategory(r.Context(), categoryID, newCategory(req))
	if err != nil {
		writeError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, toSubcategoryResponse(sc))
}

// HandleUpdateSubcategory changes a subcategory.
//
//	@Summary		Update a subcategory
//	@Tags			Categories (admin)
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			id				path		string							true	"Category ID (uuid)"
//	@Param			subcategory_id	path		string							true	"Subcategory ID (uuid)"
//	@Param			request			body		forumsdk.UpdateCategoryRequest	true	"Fields to change"
//	@Success		200				{object}	forumsdk.SubcategoryResponse
//	@Failure		400				{object}	forumsdk.ErrorResponse
//	@Failure		401				{object}	forumsdk.ErrorResponse
//	@Failure		403				{object}	forumsdk.ErrorResponse
//	@Failure		404				{object}	forumsdk.ErrorResponse
//	@Router			/api/categories/admin/{id}/subcategories/{subcategory_id} [put].
func (h *CategoriesHandler) HandleUpdateSubcategory(w http.ResponseWriter, r *http.Request) {
	categoryID, ok := pathID(w, r, "id", msgInvalidCategoryID)
	if !ok {
		return
	}
	id, ok := pathID(w, r, "subcategory_id", msgInvalidSubcategoryID)
	if !ok {
		return
	}

	var req forumsdk.UpdateCategoryRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		forumsdk.ErrInvalidBody.WriteError(w)
		return
	}

	sc, err := h.CategoryService.UpdateSubcategory(r.Context(), categoryID, id, categoryPatch(req))
	if err != nil {
		writeError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toSubcategoryResponse(sc))
}

// HandleDeleteSubcategory removes a subcategory.
//
//	@Summary		Delete a subcategory
//	@Tags			Categories (admin)
//	@Security		BearerAuth
//	@Param			id				path	string	true	"Category ID (uuid)"
//	@Param			subcategory_id	path	string	true	"Subcategory ID (uuid)"
//	@Success		204
//	@Failure		400	{object}	forumsdk.ErrorResponse
//	@Failure		401	{object}	forumsdk.ErrorResponse
//	@Failure		403	{object}	forumsdk.ErrorResponse
//	@Failure		404	{object}	forumsdk.ErrorResponse
//	@Router			/api/categories/admin/{id}/subcategories/{subcategory_id} [delete].
func (h *CategoriesHandler) HandleDeleteSubcategory(w http.ResponseWriter, r *http.Request) {
	categoryID, ok := pathID(w, r, "id", msgInvalidCategoryID)
	if !ok {
		return
	}
	id, ok := pathID(w, r, "subcategory_id", msgInvalidSubcategoryID)
	if !ok {
		return
	}

	if err := h.CategoryService.DeleteSubcategory(r.Context(), categoryID, id); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
