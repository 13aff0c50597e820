package http

import (
	"github.com/aussiebroadwan/forum/internal/forum/domain"
	"github.com/aussiebroadwan/forum/pkg/forumsdk"
)

func toUserResponse(u domain.User) forumsdk.UserResponse {
	return forumsdk.UserResponse{
		ID:              u.ID.String(),
		Username:        u.Username,
		Email:           u.Email,
		DisplayName:     u.DisplayName,
		Bio:             u.Bio,
		AvatarURL:       u.AvatarURL,
		ThemePreference: u.ThemePreference,
		IsAdmin:         u.IsAdmin,
		CreatedAt:       u.CreatedAt,
		LastLogin:       u.LastLogin,
	}
}

func toSubcategoryResponse(s domain.Subcategory) forumsdk.SubcategoryResponse {
	return forumsdk.SubcategoryResponse{
		ID:           s.ID.String(),
		CategoryID:   s.CategoryID.String(),
		Name:         s.Name,
		Slug:         s.Slug,
		Description:  s.Description,
		Icon:         s.Icon,
		DisplayOrder: s.DisplayOrder,
	}
}

func toCategoryResponse(c domain.Category) forumsdk.CategoryResponse {
	subs := make([]forumsdk.SubcategoryResponse, 0, len(c.Subcategories))
	for _, s := range c.Subcategories {
		subs = append(subs, toSubcategoryResponse(s))
	}

	return forumsdk.CategoryResponse{
		ID:            c.ID.String(),
		Name:          c.Name,
		Slug:          c.Slug,
		Description:   c.Description,
		Icon:          c.Icon,
		DisplayOrder:  c.DisplayOrder,
		Subcategories: subs,
	}
}
