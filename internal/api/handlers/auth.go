package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/hugh/go-smscms/internal/api/dto"
	"github.com/hugh/go-smscms/internal/api/middleware"
	"github.com/hugh/go-smscms/internal/api/validation"
	"github.com/hugh/go-smscms/internal/auth"
)

type AuthHandler struct {
	authService auth.Authenticator
	tokens      auth.TokenService
	tokenTTL    time.Duration
	logger      *slog.Logger
}

func NewAuthHandler(authService auth.Authenticator, tokens auth.TokenService, tokenTTL time.Duration, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		tokens:      tokens,
		tokenTTL:    tokenTTL,
		logger:      logger,
	}
}

// Register handles POST /auth/register
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req dto.RegisterRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	if errors := req.Validate(); len(errors) > 0 {
		writeJSON(w, http.StatusBadRequest, dto.ErrorResponse{Error: "Validation failed", Details: errors})
		return
	}

	user, err := h.authService.SignUp(r.Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrPasswordPolicy):
			_, msg := validation.IsValidPassword(req.Password)
			writeJSON(w, http.StatusBadRequest, dto.ErrorResponse{
				Error:   auth.ErrPasswordPolicy.Error(),
				Details: map[string]string{"password": msg},
			})
		case errors.Is(err, auth.ErrDuplicateEmail):
			writeError(w, http.StatusConflict, auth.ErrDuplicateEmail.Error())
		default:
			h.logger.Error("registration failed", "error", err)
			writeError(w, http.StatusInternalServerError, "Registration failed")
		}
		return
	}

	h.issueToken(w, user.ID, http.StatusCreated)
}

// Login handles POST /auth/login. Unknown emails, wrong passwords and
// inactive accounts all get the same 401.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req dto.LoginRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	if errors := req.Validate(); len(errors) > 0 {
		writeJSON(w, http.StatusBadRequest, dto.ErrorResponse{Error: "Validation failed", Details: errors})
		return
	}

	user, err := h.authService.Authenticate(r.Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrInvalidCredentials), errors.Is(err, auth.ErrInactiveAccount):
			writeError(w, http.StatusUnauthorized, auth.ErrInvalidCredentials.Error())
		default:
			h.logger.Error("login failed", "error", err)
			writeError(w, http.StatusInternalServerError, "Login failed")
		}
		return
	}

	h.issueToken(w, user.ID, http.StatusOK)
}

// Me handles GET /auth/me
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	user, err := h.authService.GetUserByID(r.Context(), middleware.GetUserID(r.Context()))
	if err != nil {
		if errors.Is(err, auth.ErrUserNotFound) {
			writeError(w, http.StatusNotFound, "User not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to load user")
		return
	}

	writeJSON(w, http.StatusOK, userToDTO(user))
}

// Deactivate handles POST /auth/deactivate for the calling user.
func (h *AuthHandler) Deactivate(w http.ResponseWriter, r *http.Request) {
	err := h.authService.Deactivate(r.Context(), middleware.GetUserID(r.Context()))
	if err != nil {
		if errors.Is(err, auth.ErrUserNotFound) {
			writeError(w, http.StatusNotFound, "User not found")
			return
		}
		h.logger.Error("deactivation failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Deactivation failed")
		return
	}

	clearTokenCookie(w)
	writeJSON(w, http.StatusOK, dto.SuccessResponse{Message: "Account deactivated"})
}

// Logout clears the token cookie. The token itself stays valid until it
// expires.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	clearTokenCookie(w)
	writeJSON(w, http.StatusOK, dto.SuccessResponse{Message: "Logged out"})
}

func (h *AuthHandler) issueToken(w http.ResponseWriter, userID string, status int) {
	token, err := h.tokens.Issue(userID)
	if err != nil {
		h.logger.Error("issuing token failed", "user_id", userID, "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to issue token")
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     middleware.TokenCookie,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   int(h.tokenTTL.Seconds()),
	})

	writeJSON(w, status, dto.NewTokenResponse(token))
}

func clearTokenCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.TokenCookie,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		MaxAge:   -1,
	})
}
