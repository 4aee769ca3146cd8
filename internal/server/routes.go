package server

import (
	"log/slog"
	"net/http"

	"planets-api/internal/auth"
	authHandlers "planets-api/internal/auth/handlers"
	"planets-api/internal/auth/providers"
	"planets-api/internal/middleware"
	"planets-api/internal/planet"
	planetHandlers "planets-api/internal/planet/handlers"
	serverHandlers "planets-api/internal/server/handlers"
	"planets-api/internal/shared/config"
	"planets-api/internal/shared/database"
	"planets-api/internal/upload"
)

type Routes struct {
	cfg           *config.Config
	db            *database.DB
	planetService *planet.Service
	authService   *auth.Service
	states        auth.StateStore
	uploads       *upload.Store
	logger        *slog.Logger
}

func NewRoutes(cfg *config.Config, db *database.DB, planetService *planet.Service, authService *auth.Service, states auth.StateStore, uploads *upload.Store, logger *slog.Logger) *Routes {
	return &Routes{
		cfg:           cfg,
		db:            db,
		planetService: planetService,
		authService:   authService,
		states:        states,
		uploads:       uploads,
		logger:        logger,
	}
}

func (r *Routes) Setup() *http.ServeMux {
	logger := slog.With("component", "routes", "operation", "setup")
	logger.Debug("Setting up application routes")

	mux := http.NewServeMux()

	healthHandler := serverHandlers.NewHealthHandler(r.db)
	planetHandler := planetHandlers.NewPlanetHandler(r.planetService, r.uploads)
	photoHandler := upload.NewStaticHandler(r.uploads)
	loginHandler := authHandlers.NewLoginHandler(r.cfg, r.authService)
	logoutHandler := authHandlers.NewLogoutHandler(r.cfg)

	githubAuthHandler := authHandlers.NewGitHubAuthHandler(
		r.cfg,
		providers.NewGitHubProvider(r.cfg.OAuth.GitHub),
		r.authService,
		r.states,
		r.cfg.GitHubOAuthConfigured(),
	)

	requireAuth := middleware.RequireAuth(r.authService)
	// Non-digit id segments are a route miss, decided before the auth gate.
	numericID := planetHandlers.RequireNumericID

	// Public endpoints
	mux.Handle("GET /api/health", healthHandler)
	mux.HandleFunc("GET /planets", planetHandler.List)
	mux.HandleFunc("GET /planets/{$}", planetHandler.List)
	mux.Handle("GET /planets/{id}", numericID(http.HandlerFunc(planetHandler.Get)))
	mux.Handle("GET /planets/photos/{filename}", photoHandler)

	// Protected endpoints (authenticated principal required)
	mux.Handle("POST /planets", requireAuth(http.HandlerFunc(planetHandler.Create)))
	mux.Handle("PUT /planets/{id}", numericID(requireAuth(http.HandlerFunc(planetHandler.Replace))))
	mux.Handle("DELETE /planets/{id}", numericID(requireAuth(http.HandlerFunc(planetHandler.Delete))))
	mux.Handle("POST /planets/{id}/photo", numericID(requireAuth(http.HandlerFunc(planetHandler.UploadPhoto))))

	// Auth endpoints
	mux.Handle("POST /auth/login", loginHandler)
	mux.Handle("POST /auth/logout", logoutHandler)
	mux.HandleFunc("GET /auth/github", githubAuthHandler.HandleAuth)
	mux.HandleFunc("GET /auth/github/callback", githubAuthHandler.HandleCallback)

	logger.Info("Routes configured successfully",
		"public_endpoints", []string{"/api/health", "/planets", "/planets/{id}", "/planets/photos/{filename}"},
		"protected_endpoints", []string{"POST /planets", "PUT /planets/{id}", "DELETE /planets/{id}", "POST /planets/{id}/photo"},
		"auth_endpoints", []string{"/auth/login", "/auth/logout", "/auth/github"},
	)

	return mux
}
