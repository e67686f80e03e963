package api

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"github.com/example/ec-shop/internal/api/middleware"
	"github.com/example/ec-shop/internal/auth"
	"github.com/example/ec-shop/internal/command"
	"github.com/example/ec-shop/internal/domain/user"
	"github.com/example/ec-shop/internal/query"
)

// AuthHandlers serves registration, login, and token refresh. Tokens travel
// as HttpOnly cookies for browsers and in the response body for API clients.
type AuthHandlers struct {
	cmd    *command.Handler
	users  user.Repository
	jwt    *auth.JWTService
	logger *zap.Logger
}

func NewAuthHandlers(cmd *command.Handler, users user.Repository, jwt *auth.JWTService, logger *zap.Logger) *AuthHandlers {
	return &AuthHandlers{cmd: cmd, users: users, jwt: jwt, logger: logger}
}

type registerRequest struct {
	Email    string   `json:"email"`
	Password string   `json:"password"`
	Roles    []string `json:"roles,omitempty"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type authResponse struct {
	User        *query.UserView `json:"user"`
	AccessToken string          `json:"access_token"`
}

// Register creates an account and signs the new user in.
func (h *AuthHandlers) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	// Self-registration never grants elevated roles.
	u, err := h.cmd.RegisterUser(r.Context(), command.RegisterUser{
		Email:    req.Email,
		Password: req.Password,
		Roles:    []string{string(user.RoleCustomer)},
	})
	if err != nil {
		respondDomainError(w, h.logger, err)
		return
	}

	accessToken := h.issueTokens(w, r, u)
	respondJSON(w, http.StatusCreated, authResponse{User: query.NewUserView(u), AccessToken: accessToken})
}

// Login verifies credentials and issues tokens. Unknown email and wrong
// password are indistinguishable in the response.
func (h *AuthHandlers) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	u, err := h.users.FindByEmail(r.Context(), req.Email)
	if err != nil {
		h.logger.Error("login lookup failed", zap.Error(err))
		respondError(w, "internal server error", http.StatusInternalServerError)
		return
	}
	if u == nil || !auth.CheckPassword(req.Password, u.PasswordHash()) {
		respondError(w, "invalid email or password", http.StatusUnauthorized)
		return
	}
	if !u.IsActive() {
		respondError(w, "account is deactivated", http.StatusForbidden)
		return
	}

	accessToken := h.issueTokens(w, r, u)
	respondJSON(w, http.StatusOK, authResponse{User: query.NewUserView(u), AccessToken: accessToken})
}

// Refresh exchanges a valid refresh token for a new token pair.
func (h *AuthHandlers) Refresh(w http.ResponseWriter, r *http.Request) {
	refreshToken := extractRefreshToken(r)
	if refreshToken == "" {
		respondError(w, "no refresh token", http.StatusUnauthorized)
		return
	}

	userID, err := h.jwt.ValidateRefreshToken(refreshToken)
	if err != nil {
		h.clearAuthCookies(w)
		respondError(w, "invalid refresh token", http.StatusUnauthorized)
		return
	}

	u, err := h.users.FindByID(r.Context(), userID)
	if err != nil {
		h.logger.Error("refresh lookup failed", zap.Error(err))
		respondError(w, "internal server error", http.StatusInternalServerError)
		return
	}
	if u == nil {
		h.clearAuthCookies(w)
		respondError(w, "user not found", http.StatusUnauthorized)
		return
	}
	if !u.IsActive() {
		h.clearAuthCookies(w)
		respondError(w, "account is deactivated", http.StatusForbidden)
		return
	}

	accessToken := h.issueTokens(w, r, u)
	respondJSON(w, http.StatusOK, authResponse{User: query.NewUserView(u), AccessToken: accessToken})
}

// Logout clears the auth cookies.
func (h *AuthHandlers) Logout(w http.ResponseWriter, r *http.Request) {
	h.clearAuthCookies(w)
	respondJSON(w, http.StatusOK, map[string]string{"message": "logged out"})
}

// Me returns the authenticated user.
func (h *AuthHandlers) Me(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.GetUserFromContext(r.Context())
	if !ok {
		respondError(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	u, err := h.users.FindByID(r.Context(), claims.UserID)
	if err != nil {
		h.logger.Error("me lookup failed", zap.Error(err))
		respondError(w, "internal server error", http.StatusInternalServerError)
		return
	}
	if u == nil {
		respondError(w, "user not found", http.StatusNotFound)
		return
	}
	respondJSON(w, http.StatusOK, query.NewUserView(u))
}

func (h *AuthHandlers) issueTokens(w http.ResponseWriter, r *http.Request, u *user.User) string {
	accessToken, accessExpiry, err := h.jwt.GenerateAccessToken(
		u.ID(), u.Email().Value(), user.RolesToStrings(u.Roles()))
	if err != nil {
		h.logger.Error("failed to sign access token", zap.Error(err))
		return ""
	}
	refreshToken, refreshExpiry, err := h.jwt.GenerateRefreshToken(u.ID())
	if err != nil {
		h.logger.Error("failed to sign refresh token", zap.Error(err))
		return ""
	}

	secure := r.TLS != nil
	http.SetCookie(w, &http.Cookie{
		Name:     "access_token",
		Value:    accessToken,
		Path:     "/",
		Expires:  accessExpiry,
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteStrictMode,
	})
	http.SetCookie(w, &http.Cookie{
		Name:     "refresh_token",
		Value:    refreshToken,
		Path:     "/api/auth/refresh",
		Expires:  refreshExpiry,
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteStrictMode,
	})

	return accessToken
}

func (h *AuthHandlers) clearAuthCookies(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     "access_token",
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})
	http.SetCookie(w, &http.Cookie{
		Name:     "refresh_token",
		Value:    "",
		Path:     "/api/auth/refresh",
		MaxAge:   -1,
		HttpOnly: true,
	})
}

func extractRefreshToken(r *http.Request) string {
	if cookie, err := r.Cookie("refresh_token"); err == nil {
		return cookie.Value
	}
	var req struct {
		RefreshToken string `json:"refresh_token"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err == nil {
		return req.RefreshToken
	}
	return ""
}
