package http

import (
	"net/http"

	"github.com/aussiebroadwan/forum/internal/forum/domain"
	"github.com/aussiebroadwan/forum/internal/forum/service"
	"github.com/aussiebroadwan/forum/pkg/forumsdk"
	"github.com/aussiebroadwan/forum/pkg/httpx"
)

type UsersHandler struct {
	AccountService *service.AccountService
}

// HandleMe returns the caller's own profile.
//
//	@Summary		Get my profile
//	@Tags			Users
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{object}	forumsdk.UserResponse
//	@Failure		401	{object}	forumsdk.ErrorResponse
//	@Failure		404	{object}	forumsdk.ErrorResponse	"Account no longer exists"
//	@Router			/api/users/me [get].
func (h *UsersHandler) HandleMe(w http.ResponseWriter, r *http.Request) {
	id, ok := httpx.IdentityFromContext(r.Context())
	if !ok {
		httpx.ErrInvalidCredentials.Write(w)
		return
	}

	u, err := h.AccountService.GetUserByID(r.Context(), id.SubjectID)
	if err != nil {
		writeError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, toUserResponse(u))
}

// HandleUpdateMe changes the caller's profile fields.
//
//	@Summary		Update my profile
//	@Description	Only the fields present in the body are changed.
//	@Tags			Users
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		forumsdk.UpdateUserRequest	true	"Profile fields"
//	@Success		200		{object}	forumsdk.UserResponse
//	@Failure		400		{object}	forumsdk.ErrorResponse
//	@Failure		401		{object}	forumsdk.ErrorResponse
//	@Router			/api/users/me [put].
func (h *UsersHandler) HandleUpdateMe(w http.ResponseWriter, r *http.Request) {
	id, ok := httpx.IdentityFromContext(r.Context())
	if !ok {
		httpx.ErrInvalidCredentials.Write(w)
		return
	}

	var req forumsdk.UpdateUserRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		forumsdk.ErrInvalidBody.WriteError(w)
		return
	}

	u, err := h.AccountService.UpdateProfile(r.Context(), id.SubjectID, domain.ProfileUpdate{
		DisplayName:     req.DisplayName,
		Bio:             req.Bio,
		AvatarURL:       req.AvatarURL,
		ThemePreference: req.ThemePreference,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, toUserResponse(u))
}

// HandleChangePassword replaces the caller's password.
//
//	@Summary		Change my password
//	@Description	Tokens issued before the change remain valid until they expire.
//	@Tags			Users
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		forumsdk.ChangePasswordRequest	true	"Current and new password"
//	@Success		200		{object}	forumsdk.MessageResponse
//	@Failure		400		{object}	forumsdk.ErrorResponse
//	@Failure		401		{object}	forumsdk.ErrorResponse	"Missing token or wrong current password"
//	@Router			/api/users/change-password [post].
func (h *UsersHandler) HandleChangePassword(w http.ResponseWriter, r *http.Request) {
	id, ok := httpx.IdentityFromContext(r.Context())
	if !ok {
		httpx.ErrInvalidCredentials.Write(w)
		return
	}

	var req forumsdk.ChangePasswordRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		forumsdk.ErrInvalidBody.WriteError(w)
		return
	}

	if err := h.AccountService.ChangePassword(r.Context(), id.SubjectID, req.CurrentPassword, req.NewPassword); err != nil {
		writeError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, forumsdk.MessageResponse{Message: "Password changed successfully"})
}

// HandleGet returns another account's public profile.
//
//	@Summary		Get a user
//	@Description	The email address is never included.
//	@Tags			Users
//	@Security		BearerAuth
//	@Produce		json
//	@Param			id	path		string	true	"User ID (uuid)"
//	@Success		200	{object}	forumsdk.UserResponse
//	@Failure		400	{object}	forumsdk.ErrorResponse	"Invalid user ID format"
//	@Failure		401	{object}	forumsdk.ErrorResponse
//	@Failure		404	{object}	forumsdk.ErrorResponse
//	@Router			/api/users/{id} [get].
func (h *UsersHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id", "Invalid user ID format")
	if !ok {
		return
	}

	u, err := h.AccountService.GetUserByID(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}

	resp := toUserResponse(u)
	resp.Email = ""
	httpx.WriteJSON(w, http.StatusOK, resp)
}
