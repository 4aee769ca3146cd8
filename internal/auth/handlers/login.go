package handlers

import (
	"log/slog"
	"net/http"

	"planets-api/internal/auth"
	"planets-api/internal/shared/config"
	"planets-api/internal/shared/cookies"
	"planets-api/internal/shared/errors"
	"planets-api/internal/shared/response"
	"planets-api/internal/shared/validation"

	"golang.org/x/crypto/bcrypt"
)

type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type LoginResponse struct {
	Username string `json:"username"`
}

// LoginHandler authenticates against the configured admin credentials and
// sets the auth cookie. It exists as a local fallback for deployments
// without an OAuth app configured.
type LoginHandler struct {
	cfg         *config.Config
	authService *auth.Service
}

func NewLoginHandler(cfg *config.Config, authService *auth.Service) *LoginHandler {
	return &LoginHandler{
		cfg:         cfg,
		authService: authService,
	}
}

func (h *LoginHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	logger := slog.With("handler", "login")

	if !h.cfg.AdminLoginConfigured() {
		response.Error(w, r, logger, errors.Unauthorized("local login is not configured"))
		return
	}

	var req LoginRequest
	if err := validation.DecodeAndValidate(r, &req); err != nil {
		response.Error(w, r, logger, err)
		return
	}

	if req.Username != h.cfg.Admin.Username {
		response.Error(w, r, logger, errors.Unauthorized("invalid credentials"))
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(h.cfg.Admin.PasswordHash), []byte(req.Password)); err != nil {
		response.Error(w, r, logger, errors.Unauthorized("invalid credentials"))
		return
	}

	token, err := h.authService.GenerateToken(req.Username)
	if err != nil {
		response.Error(w, r, logger, errors.WrapInternal("failed to generate token", err))
		return
	}

	cookies.SetAuthCookie(w, h.cfg, token)
	logger.Info("Local login successful", "username", req.Username)

	response.Success(w, http.StatusOK, LoginResponse{Username: req.Username})
}

// LogoutHandler clears the auth cookie.
type LogoutHandler struct {
	cfg *config.Config
}

func NewLogoutHandler(cfg *config.Config) *LogoutHandler {
	return &LogoutHandler{cfg: cfg}
}

func (h *LogoutHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	cookies.ClearAuthCookie(w, h.cfg)
	response.Success(w, http.StatusOK, map[string]string{"status": "logged out"})
}
