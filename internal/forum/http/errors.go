package http

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/aussiebroadwan/forum/internal/forum/service"
	"github.com/aussiebroadwan/forum/pkg/forumsdk"
	"github.com/aussiebroadwan/forum/pkg/slogx"
	"github.com/google/uuid"
)

var (
	errUsernameTaken     = forumsdk.Validation("Username already taken")
	errEmailTaken        = forumsdk.Validation("Email already registered")
	errUserNotFound      = forumsdk.NotFound("User not found")
	errCategoryNotFound  = forumsdk.NotFound("Category not found")
	errSubcatNotFound    = forumsdk.NotFound("Subcategory not found")
	errCategoryExists    = forumsdk.Validation("A category with this name already exists")
	errSubcategoryExists = forumsdk.Validation("A subcategory with this name already exists in this category")
)

// writeError maps a service error onto its wire form. Anything unexpected is
// logged and hidden behind a generic server_error.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	var verr *service.ValidationError
	if errors.As(err, &verr) {
		forumsdk.Validation(verr.Message()).WriteError(w)
		return
	}

	switch {
	case errors.Is(err, service.ErrInvalidLogin):
		forumsdk.ErrInvalidLogin.WriteError(w)
	case errors.Is(err, service.ErrCurrentPasswordIncorrect):
		forumsdk.ErrCurrentPasswordIncorrect.WriteError(w)
	case errors.Is(err, service.ErrUsernameTaken):
		errUsernameTaken.WriteError(w)
	case errors.Is(err, service.ErrEmailTaken):
		errEmailTaken.WriteError(w)
	case errors.Is(err, service.ErrUserNotFound):
		errUserNotFound.WriteError(w)
	case errors.Is(err, service.ErrCategoryNotFound):
		errCategoryNotFound.WriteError(w)
	case errors.Is(err, service.ErrSubcategoryNotFound):
		errSubcatNotFound.WriteError(w)
	case errors.Is(err, service.ErrCategoryExists):
		errCategoryExists.WriteError(w)
	case errors.Is(err, service.ErrSubcategoryExists):
		errSubcategoryExists.WriteError(w)
	default:
		slogx.FromContext(r.Context()).Error("request failed", slog.Any("error", err))
		forumsdk.ErrServerError.WriteError(w)
	}
}

// pathID parses a uuid path parameter, writing a 400 with description when
// it is malformed.
func pathID(w http.ResponseWriter, r *http.Request, name, description string) (uuid.UUID, bool) {
	id, err := uuid.Parse(r.PathValue(name))
	if err != nil {
		forumsdk.NewAPIError(http.StatusBadRequest, forumsdk.ErrorCodeBadRequest, description).WriteError(w)
		return uuid.Nil, false
	}
	return id, true
}
