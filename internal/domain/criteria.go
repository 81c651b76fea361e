package domain

import "fmt"

// Search defaults and bounds. Values outside the bounds are rejected by
// Criteria.Validate; the filter engine itself trusts its input.
const (
	DefaultRadiusKM = 5.0
	MinRadiusKM     = 0.1
	MaxRadiusKM     = 50.0

	MinAge = 0
	MaxAge = 18

	DefaultLimit = 20
	MaxLimit     = 100
)

// Criteria carries the optional search filters from the HTTP layer to the
// filter engine. Every filter is independently optional:
//   - Origin nil disables distance filtering (RadiusKM is then ignored).
//   - Query "" disables the free-text filter.
//   - Tags empty disables the tag filter.
//   - Age nil disables the age filter.
//   - CostRange nil disables the cost filter.
//
// Limit and Offset are applied last, after all predicates.
type Criteria struct {
	Origin    *Point
	RadiusKM  float64
	Query     string
	Tags      []string
	Age       *int
	CostRange *CostRange
	Limit     int
	Offset    int
}

// NewCriteria returns a Criteria with every filter disabled and the default
// radius (5 km), limit (20) and offset (0).
func NewCriteria() Criteria {
	return Criteria{RadiusKM: DefaultRadiusKM, Limit: DefaultLimit}
}

// Validate reports the first option outside its declared range, wrapped in
// ErrValidation.
func (c Criteria) Validate() error {
	if c.RadiusKM < MinRadiusKM || c.RadiusKM > MaxRadiusKM {
		return fmt.Errorf("%w: radius_km must be between %g and %g", ErrValidation, MinRadiusKM, MaxRadiusKM)
	}
	if c.Origin != nil {
		if c.Origin.Lat < -90 || c.Origin.Lat > 90 {
			return fmt.Errorf("%w: lat must be between -90 and 90", ErrValidation)
		}
		if c.Origin.Lng < -180 || c.Origin.Lng > 180 {
			return fmt.Errorf("%w: lng must be between -180 and 180", ErrValidation)
		}
	}
	if c.Age != nil && (*c.Age < MinAge || *c.Age > MaxAge) {
		return fmt.Errorf("%w: age must be between %d and %d", ErrValidation, MinAge, MaxAge)
	}
	if c.Limit < 1 || c.Limit > MaxLimit {
		return fmt.Errorf("%w: limit must be between 1 and %d", ErrValidation, MaxLimit)
	}
	if c.Offset < 0 {
		return fmt.Errorf("%w: offset must not be negative", ErrValidation)
	}
	return nil
}
