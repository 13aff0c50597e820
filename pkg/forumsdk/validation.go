package forumsdk

import (
	"fmt"
	"regexp"
	"slices"
	"strings"
	"unicode/utf8"
)

const (
	validationRequired = "required"

	usernameMinLen    = 3
	usernameMaxLen    = 30
	passwordMinLen    = 6
	displayNameMaxLen = 50
	bioMaxLen         = 1000
	categoryNameMin   = 3
	categoryNameMax   = 50
	categoryDescMin   = 10
	categoryDescMax   = 1000
)

var reEmail = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// ValidationMessage flattens field errors into a single, stable message
// such as "email: must be a valid email address; username: required".
func ValidationMessage(errs map[string]string) string {
	fields := make([]string, 0, len(errs))
	for f := range errs {
		fields = append(fields, f)
	}
	slices.Sort(fields)

	parts := make([]string, 0, len(fields))
	for _, f := range fields {
		parts = append(parts, f+": "+errs[f])
	}
	return strings.Join(parts, "; ")
}

func nilIfEmpty(errs map[string]string) map[string]string {
	if len(errs) == 0 {
		return nil
	}
	return errs
}

func checkLength(errs map[string]string, field, v string, minLen, maxLen int) {
	n := utf8.RuneCountInString(v)
	switch {
	case minLen > 0 && n == 0:
		errs[field] = validationRequired
	case minLen > 0 && maxLen > 0 && (n < minLen || n > maxLen):
		errs[field] = fmt.Sprintf("must be %d-%d characters", minLen, maxLen)
	case minLen > 0 && n < minLen:
		errs[field] = fmt.Sprintf("too short (min %d)", minLen)
	case maxLen > 0 && n > maxLen:
		errs[field] = fmt.Sprintf("too long (max %d)", maxLen)
	}
}

// Validate checks the registration fields. Returns nil when all are valid.
func (r RegisterRequest) Validate() map[string]string {
	errs := make(map[string]string)

	checkLength(errs, "username", strings.TrimSpace(r.Username), usernameMinLen, usernameMaxLen)
	checkLength(errs, "password", r.Password, passwordMinLen, 0)

	switch email := strings.TrimSpace(r.Email); {
	case email == "":
		errs["email"] = validationRequired
	case !reEmail.MatchString(email):
		errs["email"] = "must be a valid email address"
	}

	return nilIfEmpty(errs)
}

// Validate checks the login fields. Returns nil when all are valid.
func (r LoginRequest) Validate() map[string]string {
	errs := make(map[string]string)

	checkLength(errs, "username", strings.TrimSpace(r.Username), usernameMinLen, usernameMaxLen)
	checkLength(errs, "password", r.Password, passwordMinLen, 0)

	return nilIfEmpty(errs)
}

// Validate checks the profile fields that are present.
func (r UpdateUserRequest) Validate() map[string]string {
	errs := make(map[string]string)

	if r.DisplayName != nil {
		checkLength(errs, "display_name", *r.DisplayName, 0, displayNameMaxLen)
	}
	if r.Bio != nil {
		checkLength(errs, "bio", *r.Bio, 0, bioMaxLen)
	}

	return nilIfEmpty(errs)
}

// Validate checks both passwords meet the minimum length.
func (r ChangePasswordRequest) Validate() map[string]string {
	errs := make(map[string]string)

	checkLength(errs, "current_password", r.CurrentPassword, passwordMinLen, 0)
	checkLength(errs, "new_password", r.NewPassword, passwordMinLen, 0)

	return nilIfEmpty(errs)
}

// Validate checks a category or subcategory creation.
func (r CreateCategoryRequest) Validate() map[string]string {
	errs := make(map[string]string)

	checkLength(errs, "name", strings.TrimSpace(r.Name), categoryNameMin, categoryNameMax)
	checkLength(errs, "description", r.Description, categoryDescMin, categoryDescMax)

	return nilIfEmpty(errs)
}

// Validate checks the category or subcategory fields that are present.
func (r UpdateCategoryRequest) Validate() map[string]string {
	errs := make(map[string]string)

	if r.Name != nil {
		checkLength(errs, "name", strings.TrimSpace(*r.Name), categoryNameMin, categoryNameMax)
	}
	if r.Description != nil {
		checkLength(errs, "description", *r.Description, categoryDescMin, categoryDescMax)
	}

	return nilIfEmpty(errs)
}
