// Package search implements the spot filter engine: given the full spot
// collection and a set of criteria it returns a deterministic, paginated
// subset. It is pure; it neither reads storage nor mutates its input.
package search

import (
	"slices"
	"strings"

	"github.com/ittyan/family-outings/internal/domain"
	"github.com/ittyan/family-outings/internal/geo"
)

// Predicate reports whether a spot passes one filter.
type Predicate func(domain.Spot) bool

// Filter returns the spots matching every predicate built from c, sorted by
// ID and then sliced by c.Offset and c.Limit. The result is never nil.
//
// c is not validated here; callers are expected to have called
// domain.Criteria.Validate.
func Filter(spots []domain.Spot, c domain.Criteria) []domain.Spot {
	return Paginate(Match(spots, Predicates(c)...), c.Limit, c.Offset)
}

// Predicates builds the active predicates for c in a fixed order: distance,
// query, tags, age, cost. Disabled filters contribute nothing. Every
// predicate reads a distinct field, so any application order gives the same
// matched set.
func Predicates(c domain.Criteria) []Predicate {
	var ps []Predicate
	if c.Origin != nil {
		ps = append(ps, WithinRadius(*c.Origin, c.RadiusKM))
	}
	if c.Query != "" {
		ps = append(ps, MatchesQuery(c.Query))
	}
	if len(c.Tags) > 0 {
		ps = append(ps, HasAnyTag(c.Tags))
	}
	if c.Age != nil {
		ps = append(ps, SuitsAge(*c.Age))
	}
	if c.CostRange != nil {
		ps = append(ps, CostIs(*c.CostRange))
	}
	return ps
}

// Match keeps the spots that satisfy all predicates and sorts them by ID.
func Match(spots []domain.Spot, ps ...Predicate) []domain.Spot {
	out := make([]domain.Spot, 0, len(spots))
	for _, s := range spots {
		if all(s, ps) {
			out = append(out, s)
		}
	}
	slices.SortStableFunc(out, func(a, b domain.Spot) int {
		return strings.Compare(a.ID, b.ID)
	})
	return out
}

// Paginate returns spots[offset:offset+limit], clamped to the slice bounds.
// An offset at or past the end yields an empty slice.
func Paginate(spots []domain.Spot, limit, offset int) []domain.Spot {
	if offset < 0 {
		offset = 0
	}
	if offset >= len(spots) || limit <= 0 {
		return []domain.Spot{}
	}
	end := offset + min(limit, len(spots)-offset)
	return spots[offset:end]
}

// WithinRadius keeps spots at most radiusKM from origin.
func WithinRadius(origin domain.Point, radiusKM float64) Predicate {
	return func(s domain.Spot) bool {
		return geo.DistanceKM(origin.Lat, origin.Lng, s.Lat, s.Lng) <= radiusKM
	}
}

// MatchesQuery is a case-insensitive substring match on name, address,
// summary or any tag.
func MatchesQuery(q string) Predicate {
	q = strings.ToLower(q)
	return func(s domain.Spot) bool {
		if strings.Contains(strings.ToLower(s.Name), q) ||
			strings.Contains(strings.ToLower(s.Address), q) ||
			strings.Contains(strings.ToLower(s.Summary), q) {
			return true
		}
		for _, t := range s.Tags {
			if strings.Contains(strings.ToLower(t), q) {
				return true
			}
		}
		return false
	}
}

// HasAnyTag keeps spots sharing at least one tag with tags. Comparison is
// case-sensitive.
func HasAnyTag(tags []string) Predicate {
	want := make(map[string]struct{}, len(tags))
	for _, t := range tags {
		want[t] = struct{}{}
	}
	return func(s domain.Spot) bool {
		for _, t := range s.Tags {
			if _, ok := want[t]; ok {
				return true
			}
		}
		return false
	}
}

// SuitsAge keeps spots whose optional inclusive [AgeMin, AgeMax] range
// contains age. An unset bound matches every age on that side.
func SuitsAge(age int) Predicate {
	return func(s domain.Spot) bool {
		if s.AgeMin != nil && age < *s.AgeMin {
			return false
		}
		if s.AgeMax != nil && age > *s.AgeMax {
			return false
		}
		return true
	}
}

// CostIs keeps spots whose cost range equals c. Spots without a cost range
// never match.
func CostIs(c domain.CostRange) Predicate {
	return func(s domain.Spot) bool {
		return s.CostRange != nil && *s.CostRange == c
	}
}

func all(s domain.Spot, ps []Predicate) bool {
	for _, p := range ps {
		if !p(s) {
			return false
		}
	}
	return true
}
