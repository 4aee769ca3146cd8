package handlers

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"planets-api/internal/auth"
	"planets-api/internal/auth/providers"
	"planets-api/internal/shared/config"
	"planets-api/internal/shared/cookies"
)

// GitHubAuthHandler drives the GitHub OAuth flow: redirect out with a
// one-time state token, then on callback exchange the code, fetch the GitHub
// identity, and set the auth cookie with the login as principal username.
type GitHubAuthHandler struct {
	cfg          *config.Config
	provider     providers.OAuthProvider
	authService  *auth.Service
	states       auth.StateStore
	isConfigured bool
}

func NewGitHubAuthHandler(cfg *config.Config, provider providers.OAuthProvider, authService *auth.Service, states auth.StateStore, isConfigured bool) *GitHubAuthHandler {
	return &GitHubAuthHandler{
		cfg:          cfg,
		provider:     provider,
		authService:  authService,
		states:       states,
		isConfigured: isConfigured,
	}
}

// HandleAuth initiates the GitHub OAuth flow.
func (h *GitHubAuthHandler) HandleAuth(w http.ResponseWriter, r *http.Request) {
	logger := slog.With(
		"handler", "github_oauth_init",
		"user_agent", r.UserAgent(),
		"ip", r.RemoteAddr,
	)

	if !h.isConfigured {
		logger.Error("GitHub OAuth not configured - missing client credentials")
		http.Error(w, "GitHub OAuth is not configured", http.StatusServiceUnavailable)
		return
	}

	state, err := h.states.Generate(r.Context(), h.provider.Name(), r.UserAgent())
	if err != nil {
		logger.Error("Failed to generate state token", "error", err)
		http.Error(w, "Failed to initialize OAuth flow", http.StatusInternalServerError)
		return
	}

	url := h.provider.GetAuthURL(state)

	logger.Info("Initiating GitHub OAuth flow", "redirect_url", url)

	http.Redirect(w, r, url, http.StatusTemporaryRedirect)
}

// HandleCallback processes the GitHub OAuth callback.
func (h *GitHubAuthHandler) HandleCallback(w http.ResponseWriter, r *http.Request) {
	code := r.URL.Query().Get("code")
	state := r.URL.Query().Get("state")
	errorParam := r.URL.Query().Get("error")

	logger := slog.With(
		"handler", "github_oauth_callback",
		"user_agent", r.UserAgent(),
		"ip", r.RemoteAddr,
		"has_code", code != "",
		"has_state", state != "",
	)

	if errorParam != "" {
		logger.Warn("GitHub OAuth authorization denied",
			"oauth_error", errorParam,
			"error_description", r.URL.Query().Get("error_description"))
		h.redirectWithError(w, r, "oauth_denied", "Authorization was denied")
		return
	}

	if code == "" {
		logger.Error("GitHub OAuth callback missing authorization code")
		h.redirectWithError(w, r, "oauth_error", "Missing authorization code")
		return
	}

	if err := h.states.Validate(r.Context(), state, h.provider.Name(), r.UserAgent()); err != nil {
		logger.Error("OAuth state validation failed", "error", err)
		h.redirectWithError(w, r, "oauth_error", "Invalid request state")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 30*time.Second)
	defer cancel()

	token, err := h.provider.ExchangeCode(ctx, code)
	if err != nil {
		logger.Error("Failed to exchange GitHub authorization code", "error", err)
		h.redirectWithError(w, r, "oauth_error", "Failed to exchange authorization code")
		return
	}

	userInfo, err := h.provider.GetUserInfo(ctx, token)
	if err != nil {
		logger.Error("Failed to get user info from GitHub", "error", err)
		h.redirectWithError(w, r, "oauth_error", "Failed to retrieve user information")
		return
	}

	jwtToken, err := h.authService.GenerateToken(userInfo.Login)
	if err != nil {
		logger.Error("Failed to generate JWT token", "error", err, "username", userInfo.Login)
		h.redirectWithError(w, r, "auth_error", "Failed to create authentication token")
		return
	}

	cookies.SetAuthCookie(w, h.cfg, jwtToken)

	logger.Info("GitHub OAuth authentication successful", "username", userInfo.Login)

	successURL := h.cfg.Frontend.URL + "/auth/callback?success=true"
	http.Redirect(w, r, successURL, http.StatusTemporaryRedirect)
}

// redirectWithError sends the browser back to the frontend with error details.
func (h *GitHubAuthHandler) redirectWithError(w http.ResponseWriter, r *http.Request, errorType, message string) {
	errorURL := fmt.Sprintf("%s/auth/error?error=%s&message=%s",
		h.cfg.Frontend.URL, errorType, url.QueryEscape(message))
	http.Redirect(w, r, errorURL, http.StatusTemporaryRedirect)
}
