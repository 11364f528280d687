package handlers

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"mathclasses-backend/internal/account"
	"mathclasses-backend/internal/repository"
	"mathclasses-backend/pkg/api"
	"mathclasses-backend/pkg/auth"
)

// AccountHandler serves sign-up, sign-in and password reset.
type AccountHandler struct {
	account  account.Service
	validate *validator.Validate
	logger   *zap.Logger
}

// NewAccountHandler creates an account handler.
func NewAccountHandler(accountService account.Service, logger *zap.Logger) *AccountHandler {
	return &AccountHandler{
		account:  accountService,
		validate: validator.New(),
		logger:   logger,
	}
}

type signUpRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	FullName string `json:"fullName" validate:"required,min=1,max=200"`
}

type signInRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type resetPasswordRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type sessionResponse struct {
	UserID       string `json:"userId"`
	Email        string `json:"email"`
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
	ExpiresIn    int    `json:"expiresIn"`
}

func newSessionResponse(s *repository.Session) sessionResponse {
	return sessionResponse{
		UserID:       s.UserID,
		Email:        s.Email,
		AccessToken:  s.AccessToken,
		RefreshToken: s.RefreshToken,
		ExpiresIn:    s.ExpiresIn,
	}
}

// SignUp handles POST /api/auth/signup
func (h *AccountHandler) SignUp(w http.ResponseWriter, r *http.Request) {
	var req signUpRequest
	if err := api.Decode(r, &req); err != nil {
		api.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		api.Error(w, http.StatusBadRequest, "Email, password and full name are required")
		return
	}

	session, err := h.account.SignUp(r.Context(), req.Email, req.Password, req.FullName)
	if err != nil {
		handleServiceError(w, h.logger, err)
		return
	}

	api.Success(w, http.StatusCreated, newSessionResponse(session))
}

// SignIn handles POST /api/auth/signin
func (h *AccountHandler) SignIn(w http.ResponseWriter, r *http.Request) {
	var req signInRequest
	if err := api.Decode(r, &req); err != nil {
		api.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		api.Error(w, http.StatusBadRequest, "Email and password are required")
		return
	}

	session, err := h.account.SignIn(r.Context(), req.Email, req.Password)
	if err != nil {
		handleServiceError(w, h.logger, err)
		return
	}

	api.Success(w, http.StatusOK, newSessionResponse(session))
}

// ResetPassword handles POST /api/auth/reset-password
func (h *AccountHandler) ResetPassword(w http.ResponseWriter, r *http.Request) {
	var req resetPasswordRequest
	if err := api.Decode(r, &req); err != nil {
		api.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		api.Error(w, http.StatusBadRequest, "A valid email is required")
		return
	}

	if err := h.account.ResetPassword(r.Context(), req.Email); err != nil {
		handleServiceError(w, h.logger, err)
		return
	}

	// Always a generic acknowledgement so the endpoint cannot be used to
	// probe which emails have accounts.
	api.Success(w, http.StatusOK, map[string]string{
		"message": "If an account exists for that email, a reset link has been sent",
	})
}

// Profile handles GET /api/profile
func (h *AccountHandler) Profile(w http.ResponseWriter, r *http.Request) {
	user, err := auth.GetUserFromContext(r.Context())
	if err != nil {
		api.Error(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	profile, err := h.account.Profile(r.Context(), user.ID)
	if err != nil {
		handleServiceError(w, h.logger, err)
		return
	}

	api.Success(w, http.StatusOK, profile)
}
