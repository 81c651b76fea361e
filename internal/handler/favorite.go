package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/ittyan/family-outings/internal/domain"
	"github.com/ittyan/family-outings/internal/middleware"
)

// ListFavorites handles GET /favorites.
func (s *Server) ListFavorites(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserIDFromContext(r.Context())

	spots, err := s.favorites.List(r.Context(), userID)
	if err != nil {
		if errors.Is(err, domain.ErrValidation) {
			writeJSON(w, http.StatusUnprocessableEntity, validationBody(err))
			return
		}
		s.internalError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, FavoritesResponse{Items: spotsToResponse(spots)})
}

// AddFavorite handles POST /favorites.
func (s *Server) AddFavorite(w http.ResponseWriter, r *http.Request) {
	var body FavoriteRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeJSON(w, http.StatusBadRequest, requestBody("request body must be a JSON object with spot_id"))
		return
	}
	if strings.TrimSpace(body.SpotID) == "" {
		writeJSON(w, http.StatusUnprocessableEntity, requestBody("spot_id is required"))
		return
	}

	userID := middleware.UserIDFromContext(r.Context())
	if err := s.favorites.Add(r.Context(), userID, body.SpotID); err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			writeJSON(w, http.StatusNotFound, notFoundBody("spot not found"))
		case errors.Is(err, domain.ErrValidation):
			writeJSON(w, http.StatusUnprocessableEntity, validationBody(err))
		default:
			s.internalError(w, r, err)
		}
		return
	}

	writeJSON(w, http.StatusOK, OKResponse{OK: true})
}

// RemoveFavorite handles DELETE /favorites/{spotId}.
// Removing a favorite that does not exist still returns {"ok":true}.
func (s *Server) RemoveFavorite(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserIDFromContext(r.Context())

	if err := s.favorites.Remove(r.Context(), userID, chi.URLParam(r, "spotId")); err != nil {
		if errors.Is(err, domain.ErrValidation) {
			writeJSON(w, http.StatusUnprocessableEntity, validationBody(err))
			return
		}
		s.internalError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, OKResponse{OK: true})
}
