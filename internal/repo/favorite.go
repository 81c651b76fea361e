package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/ittyan/family-outings/internal/domain"
)

// pgForeignKeyViolation is the SQLSTATE for foreign_key_violation.
const pgForeignKeyViolation = "23503"

// FavoriteRepo defines the persistence operations for a user's favorite spots.
type FavoriteRepo interface {
	// Add records that userID favorited spotID. Adding an existing pair is a
	// no-op. Returns domain.ErrNotFound if the spot does not exist.
	Add(ctx context.Context, userID, spotID string) error

	// Remove deletes the pair. Removing a pair that does not exist is a no-op.
	Remove(ctx context.Context, userID, spotID string) error

	// ListSpotsByUser returns the favorited spots for userID, oldest favorite
	// first. Returns an empty (non-nil) slice when there are none.
	ListSpotsByUser(ctx context.Context, userID string) ([]domain.Spot, error)
}

type pgFavoriteRepo struct {
	db db
}

// NewFavoriteRepo constructs a FavoriteRepo backed by the provided db connection.
func NewFavoriteRepo(db db) FavoriteRepo {
	return &pgFavoriteRepo{db: db}
}

// Add inserts the (user, spot) pair. ON CONFLICT DO NOTHING makes it idempotent.
func (r *pgFavoriteRepo) Add(ctx context.Context, userID, spotID string) error {
	const q = `
		INSERT INTO favorites (user_id, spot_id)
		VALUES (@user_id, @spot_id)
		ON CONFLICT (user_id, spot_id) DO NOTHING`

	_, err := r.db.Exec(ctx, q, pgx.NamedArgs{"user_id": userID, "spot_id": spotID})
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgForeignKeyViolation {
			return fmt.Errorf("repo.FavoriteRepo.Add: %w", domain.ErrNotFound)
		}
		return fmt.Errorf("repo.FavoriteRepo.Add: %w", err)
	}
	return nil
}

// Remove deletes the (user, spot) pair if present.
func (r *pgFavoriteRepo) Remove(ctx context.Context, userID, spotID string) error {
	const q = `DELETE FROM favorites WHERE user_id = @user_id AND spot_id = @spot_id`

	if _, err := r.db.Exec(ctx, q, pgx.NamedArgs{"user_id": userID, "spot_id": spotID}); err != nil {
		return fmt.Errorf("repo.FavoriteRepo.Remove: %w", err)
	}
	return nil
}

// ListSpotsByUser joins favorites to spots for one user.
func (r *pgFavoriteRepo) ListSpotsByUser(ctx context.Context, userID string) ([]domain.Spot, error) {
	const q = `
		SELECT s.id, s.name, s.lat, s.lng, s.address, s.summary, s.official_url, s.cost_range,
		       s.age_min, s.age_max, s.tags, s.images, s.hours, s.created_at, s.updated_at
		FROM favorites f
		JOIN spots s ON s.id = f.spot_id
		WHERE f.user_id = @user_id
		ORDER BY f.created_at, s.id`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"user_id": userID})
	if err != nil {
		return nil, fmt.Errorf("repo.FavoriteRepo.ListSpotsByUser: %w", err)
	}
	defer rows.Close()

	spots, err := collectSpots(rows)
	if err != nil {
		return nil, fmt.Errorf("repo.FavoriteRepo.ListSpotsByUser: %w", err)
	}
	return spots, nil
}
