package forumsdk

import "time"

// ============================================================================
// Error Types
// ============================================================================

// ErrorResponse is the body of every non-2xx response.
// Client code should use the APIError type from errors.go instead.
type ErrorResponse struct {
	// Error is the machine-readable category (e.g., "unauthorized", "not_found")
	Error string `json:"error" example:"unauthorized"`

	// ErrorDescription is a human-readable message safe to show to users
	ErrorDescription string `json:"error_description" example:"Invalid token"`
}

// ============================================================================
// Auth Types
// ============================================================================

// RegisterRequest is the body of POST /api/auth/register.
type RegisterRequest struct {
	Username string `json:"username" example:"alice"`
	Email    string `json:"email" example:"alice@example.com"`
	Password string `json:"password" example:"secret123"`
}

// RegisterResponse is returned with 201 Created after registration.
type RegisterResponse struct {
	UserID   string `json:"user_id" example:"0b7c6f0e-3c1e-4d7a-9a55-0f7d1c2b8e11"`
	Username string `json:"username" example:"alice"`
}

// LoginRequest is the body of POST /api/auth/login.
type LoginRequest struct {
	Username string `json:"username" example:"alice"`
	Password string `json:"password" example:"secret123"`
}

// LoginResponse carries the bearer token to send on every later request.
type LoginResponse struct {
	Token    string `json:"token"`
	UserID   string `json:"user_id" example:"0b7c6f0e-3c1e-4d7a-9a55-0f7d1c2b8e11"`
	Username string `json:"username" example:"alice"`
	IsAdmin  bool   `json:"is_admin" example:"false"`
}

// IdentityResponse is the trusted identity attached to the request, as
// returned by GET /api/auth/validate.
type IdentityResponse struct {
	UserID   string `json:"user_id" example:"0b7c6f0e-3c1e-4d7a-9a55-0f7d1c2b8e11"`
	Username string `json:"username" example:"alice"`
	IsAdmin  bool   `json:"is_admin" example:"false"`
}

// MessageResponse is a plain acknowledgement.
type MessageResponse struct {
	Message string `json:"message" example:"Password changed successfully"`
}

// ============================================================================
// User Types
// ============================================================================

// UserResponse is an account profile. Email is blank when the profile
// belongs to someone other than the caller.
type UserResponse struct {
	ID              string     `json:"id"`
	Username        string     `json:"username"`
	Email           string     `json:"email"`
	DisplayName     *string    `json:"display_name"`
	Bio             *string    `json:"bio"`
	AvatarURL       *string    `json:"avatar_url"`
	ThemePreference *string    `json:"theme_preference"`
	IsAdmin         bool       `json:"is_admin"`
	CreatedAt       time.Time  `json:"created_at"`
	LastLogin       *time.Time `json:"last_login"`
}

// UpdateUserRequest is the body of PUT /api/users/me. Nil fields are left
// untouched.
type UpdateUserRequest struct {
	DisplayName     *string `json:"display_name,omitempty"`
	Bio             *string `json:"bio,omitempty"`
	AvatarURL       *string `json:"avatar_url,omitempty"`
	ThemePreference *string `json:"theme_preference,omitempty"`
}

// ChangePasswordRequest is the body of POST /api/users/change-password.
type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

// ============================================================================
// Category Types
// ============================================================================

// CategoryResponse is a category together with its subcategories, both
// ordered by display_order.
type CategoryResponse struct {
	ID            string                `json:"id"`
	Name          string                `json:"name" example:"General Discussion"`
	Slug          string                `json:"slug" example:"general-discussion"`
	Description   string                `json:"description"`
	Icon          *string               `json:"icon"`
	DisplayOrder  int                   `json:"display_order"`
	Subcategories []SubcategoryResponse `json:"subcategories"`
}

// SubcategoryResponse is a single subcategory.
type SubcategoryResponse struct {
	ID           string  `json:"id"`
	CategoryID   string  `json:"category_id"`
	Name         string  `json:"name" example:"Introductions"`
	Slug         string  `json:"slug" example:"introductions"`
	Description  string  `json:"description"`
	Icon         *string `json:"icon"`
	DisplayOrder int     `json:"display_order"`
}

// CreateCategoryRequest creates a category or a subcategory.
type CreateCategoryRequest struct {
	Name         string  `json:"name" example:"General Discussion"`
	Description  string  `json:"description" example:"Anything that does not fit elsewhere."`
	Icon         *string `json:"icon,omitempty"`
	DisplayOrder *int    `json:"display_order,omitempty"`
}

// UpdateCategoryRequest updates a category or a subcategory. Nil fields are
// left untouched.
type UpdateCategoryRequest struct {
	Name         *string `json:"name,omitempty"`
	Description  *string `json:"description,omitempty"`
	Icon         *string `json:"icon,omitempty"`
	DisplayOrder *int    `json:"display_order,omitempty"`
}

// ============================================================================
// Health Types
// ============================================================================

// HealthResponse represents the response structure for health check endpoints.
// Used by both /livez and /readyz endpoints (readyz includes additional Checks field).
type HealthResponse struct {
	// Status indicates the overall health status (e.g., "ok")
	Status string `json:"status"`

	// Uptime is the service uptime duration as a string (e.g., "1h23m45s")
	Uptime string `json:"uptime,omitempty"`

	// Version is the service version string
	Version string `json:"version,omitempty"`

	// Checks contains readiness check results for critical dependencies (only for /readyz)
	Checks *HealthChecks `json:"checks,omitempty"`
}

// HealthChecks represents the status of critical service dependencies.
type HealthChecks struct {
	// Database indicates the database connection status
	Database string `json:"database"`

	// Tokens indicates whether the token authority can sign and verify
	Tokens string `json:"tokens"`
}
