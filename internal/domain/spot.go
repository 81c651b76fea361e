// Package domain contains the core data types for the Family Outings backend.
// This package has zero external dependencies and is imported by every other
// internal package (repo, service, handler, ingest, search).
package domain

import (
	"strings"
	"time"
)

// CostRange is the price tier of a spot for one visit.
type CostRange string

const (
	CostFree     CostRange = "FREE"
	CostU500     CostRange = "U500"
	CostU1000    CostRange = "U1000"
	CostU3000    CostRange = "U3000"
	CostOver3000 CostRange = "OVER3000"
)

// ParseCostRange upper-cases s and reports whether it names a known tier.
// Unknown and empty values return ok=false; it never fails otherwise.
func ParseCostRange(s string) (CostRange, bool) {
	c := CostRange(strings.ToUpper(strings.TrimSpace(s)))
	switch c {
	case CostFree, CostU500, CostU1000, CostU3000, CostOver3000:
		return c, true
	}
	return "", false
}

// Spot is the durable, canonical record of a family outing location.
// Spots are written only by the ingestion pipeline (upsert by ID) and are
// never mutated by a search request.
//
// Optional attributes are pointers; nil means "not known" rather than zero.
// AgeMin and AgeMax are inclusive bounds.
type Spot struct {
	ID          string
	Name        string
	Address     string
	Summary     string
	Lat         float64
	Lng         float64
	OfficialURL *string
	CostRange   *CostRange
	AgeMin      *int
	AgeMax      *int
	Tags        []string
	Images      []string
	Hours       *string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Point is a coordinate pair in degrees.
type Point struct {
	Lat float64
	Lng float64
}
