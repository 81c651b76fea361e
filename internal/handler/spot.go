package handler

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/oapi-codegen/runtime"

	"github.com/ittyan/family-outings/internal/domain"
)

// ListSpotsParams are the query parameters of GET /spots.
// Pointer fields are nil when the parameter is absent.
type ListSpotsParams struct {
	Lat       *float64
	Lng       *float64
	RadiusKM  *float64
	Q         *string
	Tags      *string
	Age       *int
	CostRange *string
	Limit     *int
	Offset    *int
}

// ListSpots handles GET /spots.
// Malformed parameters return 400; well-formed but out-of-range ones return 422.
func (s *Server) ListSpots(w http.ResponseWriter, r *http.Request) {
	params, err := bindListSpotsParams(r.URL.Query())
	if err != nil {
		writeJSON(w, http.StatusBadRequest, requestBody(err.Error()))
		return
	}

	criteria, err := paramsToCriteria(params)
	if err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, validationBody(err))
		return
	}

	spots, err := s.spots.Search(r.Context(), criteria)
	if err != nil {
		if errors.Is(err, domain.ErrValidation) {
			writeJSON(w, http.StatusUnprocessableEntity, validationBody(err))
			return
		}
		s.internalError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, spotsToResponse(spots))
}

// GetSpot handles GET /spots/{spotId}.
func (s *Server) GetSpot(w http.ResponseWriter, r *http.Request) {
	spot, err := s.spots.GetByID(r.Context(), chi.URLParam(r, "spotId"))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			writeJSON(w, http.StatusNotFound, notFoundBody("spot not found"))
			return
		}
		s.internalError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, SpotDetail{Spot: spotToResponse(spot), Hours: spot.Hours})
}

// bindListSpotsParams decodes the typed query parameters the same way
// oapi-codegen generated wrappers do.
func bindListSpotsParams(q url.Values) (ListSpotsParams, error) {
	var p ListSpotsParams
	binds := []struct {
		name string
		dest any
	}{
		{"lat", &p.Lat},
		{"lng", &p.Lng},
		{"radius_km", &p.RadiusKM},
		{"q", &p.Q},
		{"tags", &p.Tags},
		{"age", &p.Age},
		{"cost_range", &p.CostRange},
		{"limit", &p.Limit},
		{"offset", &p.Offset},
	}
	for _, b := range binds {
		if err := runtime.BindQueryParameter("form", true, false, b.name, q, b.dest); err != nil {
			return ListSpotsParams{}, fmt.Errorf("invalid format for parameter %s", b.name)
		}
	}
	return p, nil
}

// paramsToCriteria applies defaults and the request-level rules the domain
// type cannot express: lat and lng travel together, cost_range must name a tier.
// Range checks are left to Criteria.Validate in the service.
func paramsToCriteria(p ListSpotsParams) (domain.Criteria, error) {
	c := domain.NewCriteria()

	switch {
	case p.Lat != nil && p.Lng != nil:
		c.Origin = &domain.Point{Lat: *p.Lat, Lng: *p.Lng}
	case p.Lat != nil || p.Lng != nil:
		return domain.Criteria{}, fmt.Errorf("%w: lat and lng must be given together", domain.ErrValidation)
	}
	if p.RadiusKM != nil {
		c.RadiusKM = *p.RadiusKM
	}
	if p.Q != nil {
		c.Query = *p.Q
	}
	if p.Tags != nil {
		c.Tags = splitTags(*p.Tags)
	}
	c.Age = p.Age
	if p.CostRange != nil && strings.TrimSpace(*p.CostRange) != "" {
		cost, ok := domain.ParseCostRange(*p.CostRange)
		if !ok {
			return domain.Criteria{}, fmt.Errorf("%w: unknown cost_range %q", domain.ErrValidation, *p.CostRange)
		}
		c.CostRange = &cost
	}
	if p.Limit != nil {
		c.Limit = *p.Limit
	}
	if p.Offset != nil {
		c.Offset = *p.Offset
	}
	return c, nil
}

// splitTags parses the comma-separated tags parameter, trimming and dropping
// empty entries.
func splitTags(raw string) []string {
	var tags []string
	for _, t := range strings.Split(raw, ",") {
		if t = strings.TrimSpace(t); t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}
