package http

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/aussiebroadwan/authgate/internal/authgate/domain"
	"github.com/aussiebroadwan/authgate/internal/authgate/service"
	"github.com/aussiebroadwan/authgate/pkg/authsdk"
	"github.com/aussiebroadwan/authgate/pkg/httpx"
	"github.com/aussiebroadwan/authgate/pkg/slogx"
)

const loginSuccessMessage = "Login successful!"

type UsersHandler struct {
	UserService *service.UserService
}

// HandleRegister creates a new user account.
//
//	@Summary		Register a user
//	@Description	Creates a user with a bcrypt-hashed password. All fields are required and the email must be unused.
//	@Tags			Users
//	@Accept			json
//	@Produce		json
//	@Param			request	body		authsdk.RegisterRequest	true	"New user"
//	@Success		201		{object}	authsdk.User			"Created user, without password"
//	@Failure		400		{object}	authsdk.MessageResponse	"Missing required fields"
//	@Failure		409		{object}	authsdk.MessageResponse	"Email already registered"
//	@Failure		500		{object}	authsdk.MessageResponse	"Server error"
//	@Router			/register [post].
func (h *UsersHandler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req authsdk.RegisterRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		slogx.FromContext(ctx).Debug("register: bad body", slog.Any("error", err))
		authsdk.ErrBadRequest.WriteError(w)
		return
	}

	u, err := h.UserService.Register(ctx, service.RegisterInput{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Password:  req.Password,
		Role:      req.Role,
	})
	if err != nil {
		writeServiceError(w, r, "register", err)
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, toUser(u))
}

// HandleLogin exchanges an email and password for a bearer token.
//
//	@Summary		Log in
//	@Description	Verifies the credentials and returns a one hour HS256 bearer token together with the user.
//	@Tags			Users
//	@Accept			json
//	@Produce		json
//	@Param			request	body		authsdk.LoginRequest	true	"Credentials"
//	@Success		200		{object}	authsdk.LoginResponse
//	@Failure		400		{object}	authsdk.MessageResponse	"Missing required fields"
//	@Failure		401		{object}	authsdk.MessageResponse	"Invalid email or password"
//	@Failure		500		{object}	authsdk.MessageResponse	"Server error"
//	@Router			/login [post].
func (h *UsersHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req authsdk.LoginRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		slogx.FromContext(ctx).Debug("login: bad body", slog.Any("error", err))
		authsdk.ErrBadRequest.WriteError(w)
		return
	}

	res, err := h.UserService.Login(ctx, req.Email, req.Password)
	if err != nil {
		writeServiceError(w, r, "login", err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, authsdk.LoginResponse{
		Message: loginSuccessMessage,
		Token:   res.Token,
		User:    toUser(res.User),
	})
}

// HandleList returns every registered user.
//
//	@Summary		List users
//	@Description	Returns all users without password hashes. Requires a bearer token with role "admin".
//	@Tags			Users
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{array}		authsdk.User
//	@Failure		401	{object}	authsdk.MessageResponse	"Missing or invalid token"
//	@Failure		403	{object}	authsdk.MessageResponse	"Role is not admin"
//	@Failure		500	{object}	authsdk.MessageResponse	"Server error"
//	@Router			/users [get].
func (h *UsersHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	users, err := h.UserService.ListUsers(r.Context())
	if err != nil {
		writeServiceError(w, r, "list users", err)
		return
	}

	out := make([]authsdk.User, 0, len(users))
	for _, u := range users {
		out = append(out, toUser(u))
	}

	httpx.WriteJSON(w, http.StatusOK, out)
}

// writeServiceError maps service sentinels onto the public error set. Any
// other error is logged and reported as a generic server error.
func writeServiceError(w http.ResponseWriter, r *http.Request, op string, err error) {
	switch {
	case errors.Is(err, service.ErrMissingFields):
		authsdk.ErrBadRequest.WriteError(w)
	case errors.Is(err, service.ErrPasswordTooLong):
		authsdk.ErrBadRequest.WithMessage("Password must be at most 72 bytes").WriteError(w)
	case errors.Is(err, service.ErrEmailTaken):
		authsdk.ErrConflict.WriteError(w)
	case errors.Is(err, service.ErrInvalidCredentials):
		authsdk.ErrInvalidCredentials.WriteError(w)
	default:
		slogx.FromContext(r.Context()).Error(op+" failed", slog.Any("error", err))
		authsdk.ErrInternal.WriteError(w)
	}
}

func toUser(u domain.User) authsdk.User {
	return authsdk.User{
		ID:        u.ID,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Email:     u.Email,
		Role:      u.Role,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}
