package http

import (
	"net/http"

	"github.com/aussiebroadwan/forum/internal/forum/service"
	"github.com/aussiebroadwan/forum/pkg/forumsdk"
	"github.com/aussiebroadwan/forum/pkg/httpx"
)

type AuthHandler struct {
	AccountService *service.AccountService
}

// HandleRegister creates an account.
//
//	@Summary		Register an account
//	@Description	Creates an ordinary (non-admin) account. Usernames and emails must be unused.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		forumsdk.RegisterRequest	true	"Account details"
//	@Success		201		{object}	forumsdk.RegisterResponse
//	@Failure		400		{object}	forumsdk.ErrorResponse	"Invalid body, invalid fields, or username/email taken"
//	@Failure		500		{object}	forumsdk.ErrorResponse
//	@Router			/api/auth/register [post].
func (h *AuthHandler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	var req forumsdk.RegisterRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		forumsdk.ErrInvalidBody.WriteError(w)
		return
	}

	u, err := h.AccountService.Register(r.Context(), req.Username, req.Email, req.Password)
	if err != nil {
		writeError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, forumsdk.RegisterResponse{
		UserID:   u.ID.String(),
		Username: u.Username,
	})
}

// HandleLogin exchanges a username and password for a bearer token.
//
//	@Summary		Log in
//	@Description	Returns an HS256 bearer token valid for 24 hours. Unknown users and wrong passwords get the same answer.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		forumsdk.LoginRequest	true	"Credentials"
//	@Success		200		{object}	forumsdk.LoginResponse
//	@Failure		400		{object}	forumsdk.ErrorResponse	"Invalid body or fields"
//	@Failure		401		{object}	forumsdk.ErrorResponse	"Invalid username or password"
//	@Failure		500		{object}	forumsdk.ErrorResponse
//	@Router			/api/auth/login [post].
func (h *AuthHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var req forumsdk.LoginRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		forumsdk.ErrInvalidBody.WriteError(w)
		return
	}
	if errs := req.Validate(); errs != nil {
		forumsdk.Validation(forumsdk.ValidationMessage(errs)).WriteError(w)
		return
	}

	res, err := h.AccountService.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		writeError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, forumsdk.LoginResponse{
		Token:    res.Token,
		UserID:   res.User.ID.String(),
		Username: res.User.Username,
		IsAdmin:  res.User.IsAdmin,
	})
}

// HandleValidate echoes the identity the gate attached to the request.
//
//	@Summary		Validate a token
//	@Description	Returns the identity carried by the bearer token. The admin flag is the one recorded when the token was issued.
//	@Tags			Auth
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{object}	forumsdk.IdentityResponse
//	@Failure		401	{object}	forumsdk.ErrorResponse
//	@Router			/api/auth/validate [get].
func (h *AuthHandler) HandleValidate(w http.ResponseWriter, r *http.Request) {
	id, ok := httpx.IdentityFromContext(r.Context())
	if !ok {
		httpx.ErrInvalidCredentials.Write(w)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, forumsdk.IdentityResponse{
		UserID:   id.SubjectID.String(),
		Username: id.DisplayName,
		IsAdmin:  id.IsAdmin,
	})
}
