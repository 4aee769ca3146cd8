package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"planets-api/internal/middleware"
	"planets-api/internal/planet"
	apperrors "planets-api/internal/shared/errors"
	"planets-api/internal/shared/response"
	"planets-api/internal/shared/validation"
	"planets-api/internal/upload"
)

// PlanetHandler is the resource controller for /planets. Reads are public;
// every mutating route sits behind the auth gate and receives its principal
// from the request context.
type PlanetHandler struct {
	service *planet.Service
	uploads *upload.Store
}

func NewPlanetHandler(service *planet.Service, uploads *upload.Store) *PlanetHandler {
	return &PlanetHandler{
		service: service,
		uploads: uploads,
	}
}

// parsePlanetID validates the id path segment. Only all-digit segments are
// accepted; anything else is a typed parse error, which callers surface as a
// generic not-found so the route behaves as if it never matched.
func parsePlanetID(r *http.Request) (int, error) {
	idStr := r.PathValue("id")
	if idStr == "" {
		return 0, apperrors.Validation("planet id is required")
	}

	for _, c := range idStr {
		if c < '0' || c > '9' {
			return 0, apperrors.Validationf("planet id must be numeric, got %q", idStr)
		}
	}

	id, err := strconv.Atoi(idStr)
	if err != nil {
		return 0, apperrors.WrapValidation("invalid planet id", err)
	}

	return id, nil
}

// RequireNumericID finishes route matching for id-bearing patterns. The mux
// pattern accepts any segment, so a non-digit id is rejected here with the
// same generic 404 an unknown path gets. This runs before the auth gate: a
// path that never matched is answered the same way with or without
// credentials.
func RequireNumericID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, err := parsePlanetID(r); err != nil {
			http.NotFound(w, r)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// List handles GET /planets.
func (h *PlanetHandler) List(w http.ResponseWriter, r *http.Request) {
	logger := slog.With("handler", "list_planets")

	planets, err := h.service.List(r.Context())
	if err != nil {
		response.Error(w, r, logger, err)
		return
	}

	if planets == nil {
		planets = []planet.Planet{}
	}

	response.Success(w, http.StatusOK, planets)
}

// Get handles GET /planets/{id}.
func (h *PlanetHandler) Get(w http.ResponseWriter, r *http.Request) {
	logger := slog.With("handler", "get_planet")

	id, err := parsePlanetID(r)
	if err != nil {
		http.NotFound(w, r)
		return
	}

	p, err := h.service.Get(r.Context(), id)
	if err != nil {
		if apperrors.IsNotFound(err) {
			response.Error(w, r, logger, apperrors.NotFoundf("Cannot GET /planets/%d", id))
			return
		}
		response.Error(w, r, logger, err)
		return
	}

	response.Success(w, http.StatusOK, p)
}

// Create handles POST /planets.
func (h *PlanetHandler) Create(w http.ResponseWriter, r *http.Request) {
	logger := slog.With("handler", "create_planet")

	principal, ok := middleware.PrincipalFromContext(r)
	if !ok {
		response.Error(w, r, logger, apperrors.Unauthorized("authentication required"))
		return
	}

	var input planet.Input
	if err := validation.DecodeAndValidate(r, &input); err != nil {
		response.Error(w, r, logger, err)
		return
	}

	p, err := h.service.Create(r.Context(), input, principal)
	if err != nil {
		response.Error(w, r, logger, err)
		return
	}

	response.Success(w, http.StatusCreated, p)
}

// Replace handles PUT /planets/{id}. Any write failure is reported as the
// action-specific 404, matching the original behavior of not distinguishing
// a missing record from other store failures.
func (h *PlanetHandler) Replace(w http.ResponseWriter, r *http.Request) {
	logger := slog.With("handler", "replace_planet")

	principal, ok := middleware.PrincipalFromContext(r)
	if !ok {
		response.Error(w, r, logger, apperrors.Unauthorized("authentication required"))
		return
	}

	id, err := parsePlanetID(r)
	if err != nil {
		http.NotFound(w, r)
		return
	}

	var input planet.Input
	if err := validation.DecodeAndValidate(r, &input); err != nil {
		response.Error(w, r, logger, err)
		return
	}

	p, err := h.service.Replace(r.Context(), id, input, principal)
	if err != nil {
		logger.Debug("Replace failed", "planet_id", id, "error", err)
		response.Error(w, r, logger, apperrors.NotFoundf("Cannot PUT /planets/%d", id))
		return
	}

	response.Success(w, http.StatusOK, p)
}

// Delete handles DELETE /planets/{id}.
func (h *PlanetHandler) Delete(w http.ResponseWriter, r *http.Request) {
	logger := slog.With("handler", "delete_planet")

	if _, ok := middleware.PrincipalFromContext(r); !ok {
		response.Error(w, r, logger, apperrors.Unauthorized("authentication required"))
		return
	}

	id, err := parsePlanetID(r)
	if err != nil {
		http.NotFound(w, r)
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		logger.Debug("Delete failed", "planet_id", id, "error", err)
		response.Error(w, r, logger, apperrors.NotFoundf("Cannot DELETE /planets/%d", id))
		return
	}

	response.NoContent(w, http.StatusNoContent)
}

// UploadPhoto handles POST /planets/{id}/photo. The file is written to the
// content store first and linked to the planet second; a failed link leaves
// the stored file orphaned, which is accepted here rather than rolled back.
func (h *PlanetHandler) UploadPhoto(w http.ResponseWriter, r *http.Request) {
	logger := slog.With("handler", "upload_planet_photo")

	if _, ok := middleware.PrincipalFromContext(r); !ok {
		response.Error(w, r, logger, apperrors.Unauthorized("authentication required"))
		return
	}

	id, err := parsePlanetID(r)
	if err != nil {
		http.NotFound(w, r)
		return
	}

	filename, err := h.uploads.ExtractFile(r, "photo")
	if err != nil {
		if errors.Is(err, upload.ErrNoFile) {
			response.Error(w, r, logger, apperrors.Validation("No photo file uploaded."))
			return
		}
		if errors.Is(err, upload.ErrUnsupportedType) {
			response.Error(w, r, logger, apperrors.Validation("Photo must be a PNG, JPEG or GIF image."))
			return
		}
		response.Error(w, r, logger, apperrors.WrapInternal("failed to store photo", err))
		return
	}

	p, err := h.service.AttachPhoto(r.Context(), id, filename)
	if err != nil {
		logger.Debug("Photo link failed", "planet_id", id, "filename", filename, "error", err)
		response.Error(w, r, logger, apperrors.NotFoundf("Cannot POST /planets/%d/photo", id))
		return
	}

	response.Success(w, http.StatusCreated, planet.PhotoResponse{PhotoFilename: *p.PhotoFilename})
}
