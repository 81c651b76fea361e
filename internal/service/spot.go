// Package service contains the business logic for the Family Outings backend.
// Services validate inputs, enforce business rules, and orchestrate repo calls.
// No SQL lives here; services depend on repo interfaces, not implementations.
package service

import (
	"context"
	"fmt"

	"github.com/ittyan/family-outings/internal/domain"
	"github.com/ittyan/family-outings/internal/repo"
	"github.com/ittyan/family-outings/internal/search"
)

// SpotService implements the read side of spots: search and detail.
type SpotService struct {
	spots repo.SpotRepo
}

// NewSpotService constructs a SpotService backed by the provided SpotRepo.
func NewSpotService(r repo.SpotRepo) *SpotService {
	return &SpotService{spots: r}
}

// Search validates c, loads the catalog and applies the filter engine.
// Returns domain.ErrValidation if c is out of range. The result is never nil.
func (s *SpotService) Search(ctx context.Context, c domain.Criteria) ([]domain.Spot, error) {
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("service.SpotService.Search: %w", err)
	}
	all, err := s.spots.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("service.SpotService.Search: %w", err)
	}
	return search.Filter(all, c), nil
}

// GetByID returns a single spot.
// Returns domain.ErrNotFound if no spot with that ID exists.
func (s *SpotService) GetByID(ctx context.Context, id string) (domain.Spot, error) {
	result, err := s.spots.GetByID(ctx, id)
	if err != nil {
		return domain.Spot{}, fmt.Errorf("service.SpotService.GetByID: %w", err)
	}
	return result, nil
}
