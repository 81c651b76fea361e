package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/ittyan/family-outings/internal/domain"
	"github.com/ittyan/family-outings/internal/repo"
)

// FavoriteService manages per-user favorite spots.
// It holds the spots repo because adding a favorite requires verifying the
// spot exists first.
type FavoriteService struct {
	spots     repo.SpotRepo
	favorites repo.FavoriteRepo
}

// NewFavoriteService constructs a FavoriteService backed by the provided repos.
func NewFavoriteService(spots repo.SpotRepo, favorites repo.FavoriteRepo) *FavoriteService {
	return &FavoriteService{spots: spots, favorites: favorites}
}

// Add favorites spotID for userID. Adding twice is a no-op.
// Returns domain.ErrValidation if either ID is blank.
// Returns domain.ErrNotFound if the spot does not exist; nothing is written.
func (s *FavoriteService) Add(ctx context.Context, userID, spotID string) error {
	if err := requireIDs(userID, spotID); err != nil {
		return fmt.Errorf("service.FavoriteService.Add: %w", err)
	}
	if _, err := s.spots.GetByID(ctx, spotID); err != nil {
		return fmt.Errorf("service.FavoriteService.Add: %w", err)
	}
	if err := s.favorites.Add(ctx, userID, spotID); err != nil {
		return fmt.Errorf("service.FavoriteService.Add: %w", err)
	}
	return nil
}

// Remove deletes the favorite if present. Removing a missing favorite is not
// an error.
func (s *FavoriteService) Remove(ctx context.Context, userID, spotID string) error {
	if err := requireIDs(userID, spotID); err != nil {
		return fmt.Errorf("service.FavoriteService.Remove: %w", err)
	}
	if err := s.favorites.Remove(ctx, userID, spotID); err != nil {
		return fmt.Errorf("service.FavoriteService.Remove: %w", err)
	}
	return nil
}

// List returns the favorited spots of userID.
// Always returns a non-nil slice so callers can safely range over it.
func (s *FavoriteService) List(ctx context.Context, userID string) ([]domain.Spot, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, fmt.Errorf("service.FavoriteService.List: %w: user id is required", domain.ErrValidation)
	}
	spots, err := s.favorites.ListSpotsByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("service.FavoriteService.List: %w", err)
	}
	if spots == nil {
		return []domain.Spot{}, nil
	}
	return spots, nil
}

func requireIDs(userID, spotID string) error {
	if strings.TrimSpace(userID) == "" {
		return fmt.Errorf("%w: user id is required", domain.ErrValidation)
	}
	if strings.TrimSpace(spotID) == "" {
		return fmt.Errorf("%w: spot id is required", domain.ErrValidation)
	}
	return nil
}
