package handler

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/n200534/socioconnect/internal/httputil"
	"github.com/n200534/socioconnect/internal/model"
	"github.com/n200534/socioconnect/internal/service"
	"github.com/n200534/socioconnect/internal/transport/http/middleware"
)

// AuthHandler groups auth-related HTTP endpoints and their dependencies.
type AuthHandler struct {
	userService *service.UserService
	authService *service.AuthService
}

func NewAuthHandler(userService *service.UserService, authService *service.AuthService) *AuthHandler {
	return &AuthHandler{
		userService: userService,
		authService: authService,
	}
}

// Register handles account creation
// POST /auth/register
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req model.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteBadRequest(w, "Invalid request body")
		return
	}

	user, err := h.userService.Register(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, model.ErrEmailExists):
			httputil.WriteConflict(w, "Email already registered")
		case errors.Is(err, model.ErrUsernameExists):
			httputil.WriteConflict(w, "Username already taken")
		default:
			httputil.WriteBadRequest(w, err.Error())
		}
		return
	}

	tokens, err := h.authService.GenerateTokenPair(user.ID)
	if err != nil {
		log.Printf("[ERROR] Register handler: %v", err)
		httputil.WriteInternalError(w, "Failed to issue tokens")
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, model.AuthResponse{User: user, Tokens: tokens})
}

// Login handles user login
// POST /auth/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req model.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteBadRequest(w, "Invalid request body")
		return
	}
	if req.Email == "" || req.Password == "" {
		httputil.WriteBadRequest(w, "Email and password are required")
		return
	}

	user, err := h.userService.Authenticate(r.Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, model.ErrInvalidCredentials):
			httputil.WriteUnauthorized(w, "Invalid email or password")
		case errors.Is(err, model.ErrUserInactive):
			httputil.WriteForbidden(w, "Account is deactivated")
		default:
			log.Printf("[ERROR] Login handler: %v", err)
			httputil.WriteInternalError(w, "Failed to log in")
		}
		return
	}

	tokens, err := h.authService.GenerateTokenPair(user.ID)
	if err != nil {
		log.Printf("[ERROR] Login handler: %v", err)
		httputil.WriteInternalError(w, "Failed to issue tokens")
		return
	}

	httputil.WriteJSON(w, http.StatusOK, model.AuthResponse{User: user, Tokens: tokens})
}

// Refresh rotates a token pair from a valid refresh token
// POST /auth/refresh
func (h *AuthHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	var req model.RefreshRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.RefreshToken == "" {
		httputil.WriteBadRequest(w, "refresh_token is required")
		return
	}

	tokens, err := h.authService.RefreshTokens(req.RefreshToken)
	if err != nil {
		httputil.WriteUnauthorizedWithCode(w, model.CodeTokenInvalid, "Invalid or expired refresh token")
		return
	}

	httputil.WriteJSON(w, http.StatusOK, tokens)
}

// Logout clears the access token cookie. Tokens are stateless, so the server
// keeps no session to revoke; clients discard their copies.
// POST /auth/logout
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     "access_token",
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})
	httputil.WriteJSON(w, http.StatusOK, map[string]string{"status": "logged out"})
}

// Me returns the authenticated user's account
// GET /auth/me
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		httputil.WriteUnauthorized(w, "Authentication required")
		return
	}

	user, err := h.userService.GetByID(r.Context(), userID)
	if err != nil {
		if errors.Is(err, model.ErrUserNotFound) {
			httputil.WriteNotFound(w, "User not found")
			return
		}
		log.Printf("[ERROR] Me handler: %v", err)
		httputil.WriteInternalError(w, "Failed to load user")
		return
	}

	httputil.WriteJSON(w, http.StatusOK, user)
}
