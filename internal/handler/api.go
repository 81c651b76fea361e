package handler

import (
	"encoding/json"
	"net/http"

	"github.com/ittyan/family-outings/internal/domain"
)

// ErrorDetail is the inner object of every error response.
type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ErrorResponse is the JSON body returned for any non-2xx response.
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// HealthResponse is the body of GET /healthz.
type HealthResponse struct {
	Status string `json:"status"`
}

// Spot is the list representation of a spot.
type Spot struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Lat         float64  `json:"lat"`
	Lng         float64  `json:"lng"`
	Address     string   `json:"address"`
	Summary     string   `json:"summary"`
	OfficialURL *string  `json:"official_url"`
	CostRange   *string  `json:"cost_range"`
	AgeMin      *int     `json:"age_min"`
	AgeMax      *int     `json:"age_max"`
	Tags        []string `json:"tags"`
	Images      []string `json:"images"`
}

// SpotDetail adds opening hours to Spot.
type SpotDetail struct {
	Spot
	Hours *string `json:"hours"`
}

// AuthRequest is the body of POST /auth/verify.
type AuthRequest struct {
	Provider string `json:"provider"`
	Token    string `json:"token"`
	Nonce    string `json:"nonce,omitempty"`
}

// AuthResponse is returned by POST /auth/verify.
type AuthResponse struct {
	UserID       string `json:"user_id"`
	SessionToken string `json:"session_token"`
	IsAdmin      bool   `json:"is_admin"`
}

// FavoriteRequest is the body of POST /favorites.
type FavoriteRequest struct {
	SpotID string `json:"spot_id"`
}

// FavoritesResponse is returned by GET /favorites.
type FavoritesResponse struct {
	Items []Spot `json:"items"`
}

// OKResponse acknowledges a favorites mutation.
type OKResponse struct {
	OK bool `json:"ok"`
}

// writeJSON encodes body with the given status.
func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

// --- mapping helpers --------------------------------------------------------

// spotToResponse converts a domain.Spot to its list representation.
// Tags and Images are never null in the JSON output.
func spotToResponse(s domain.Spot) Spot {
	out := Spot{
		ID:          s.ID,
		Name:        s.Name,
		Lat:         s.Lat,
		Lng:         s.Lng,
		Address:     s.Address,
		Summary:     s.Summary,
		OfficialURL: s.OfficialURL,
		AgeMin:      s.AgeMin,
		AgeMax:      s.AgeMax,
		Tags:        s.Tags,
		Images:      s.Images,
	}
	if s.CostRange != nil {
		c := string(*s.CostRange)
		out.CostRange = &c
	}
	if out.Tags == nil {
		out.Tags = []string{}
	}
	if out.Images == nil {
		out.Images = []string{}
	}
	return out
}

func spotsToResponse(spots []domain.Spot) []Spot {
	out := make([]Spot, 0, len(spots))
	for _, s := range spots {
		out = append(out, spotToResponse(s))
	}
	return out
}
