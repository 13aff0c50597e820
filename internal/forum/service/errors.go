package service

import (
	"errors"
	"fmt"

	"github.com/aussiebroadwan/forum/pkg/forumsdk"
)

var (
	// ErrInvalidLogin covers an unknown username, a wrong password and an
	// inactive account alike.
	ErrInvalidLogin             = errors.New("invalid username or password")
	ErrUsernameTaken            = errors.New("username already taken")
	ErrEmailTaken               = errors.New("email already registered")
	ErrCurrentPasswordIncorrect = errors.New("current password is incorrect")
	ErrUserNotFound             = errors.New("user not found")

	ErrCategoryNotFound    = errors.New("category not found")
	ErrSubcategoryNotFound = errors.New("subcategory not found")

	// ErrDuplicateSlug is wrapped by the category and subcategory variants.
	ErrDuplicateSlug     = errors.New("duplicate slug")
	ErrCategoryExists    = fmt.Errorf("%w: a category with this name already exists", ErrDuplicateSlug)
	ErrSubcategoryExists = fmt.Errorf("%w: a subcategory with this name already exists in this category", ErrDuplicateSlug)

	ErrValidation = errors.New("validation failed")
)

// ValidationError reports field-level problems with an input. It matches
// ErrValidation under errors.Is.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	return "validation failed: " + forumsdk.ValidationMessage(e.Fields)
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// Message is the client-facing description.
func (e *ValidationError) Message() string {
	return forumsdk.ValidationMessage(e.Fields)
}

func validate(fields map[string]string) error {
	if fields == nil {
		return nil
	}
	return &ValidationError{Fields: fields}
}
