package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/ittyan/family-outings/internal/domain"
	"github.com/ittyan/family-outings/internal/identity"
)

// VerifyAuth handles POST /auth/verify.
// Unsupported providers and rejected tokens both return 400, matching what
// mobile clients already expect from this endpoint.
func (s *Server) VerifyAuth(w http.ResponseWriter, r *http.Request) {
	var body AuthRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeJSON(w, http.StatusBadRequest, requestBody("request body must be a JSON object with provider and token"))
		return
	}

	session, err := s.auth.Verify(r.Context(), body.Provider, body.Token, body.Nonce)
	if err != nil {
		switch {
		case errors.Is(err, identity.ErrInvalidToken):
			writeJSON(w, http.StatusBadRequest, ErrorResponse{
				Error: ErrorDetail{Code: "invalid_token", Message: "identity token could not be verified"},
			})
		case errors.Is(err, domain.ErrValidation):
			writeJSON(w, http.StatusBadRequest, validationBody(err))
		default:
			s.internalError(w, r, err)
		}
		return
	}

	writeJSON(w, http.StatusOK, AuthResponse{
		UserID:       session.UserID,
		SessionToken: session.SessionToken,
		IsAdmin:      session.IsAdmin,
	})
}
