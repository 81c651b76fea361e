package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/ittyan/family-outings/internal/domain"
)

// SpotRepo defines the persistence operations for Spots.
type SpotRepo interface {
	// List returns every spot ordered by id. The filter engine works on this
	// full scan, so the order is what makes paging stable across requests.
	List(ctx context.Context) ([]domain.Spot, error)

	// GetByID retrieves a single spot by primary key.
	// Returns domain.ErrNotFound if no spot with that ID exists.
	GetByID(ctx context.Context, id string) (domain.Spot, error)

	// UpsertMany inserts or replaces every record by id inside one
	// transaction, refreshing updated_at. Either all records are written or
	// none are.
	UpsertMany(ctx context.Context, records []domain.SpotRecord) error

	// Delete removes a spot by ID. Favorites pointing at it are removed by
	// the ON DELETE CASCADE foreign key.
	// Returns domain.ErrNotFound if it does not exist.
	Delete(ctx context.Context, id string) error
}

// pgSpotRepo is the Postgres implementation of SpotRepo.
type pgSpotRepo struct {
	db db
}

// NewSpotRepo constructs a SpotRepo backed by the provided db connection.
// In production pass *pgxpool.Pool; in tests pass a pgx.Tx for rollback isolation.
func NewSpotRepo(db db) SpotRepo {
	return &pgSpotRepo{db: db}
}

const spotColumns = `id, name, lat, lng, address, summary, official_url, cost_range,
		       age_min, age_max, tags, images, hours, created_at, updated_at`

// List returns all spots ordered by id.
func (r *pgSpotRepo) List(ctx context.Context) ([]domain.Spot, error) {
	q := `SELECT ` + spotColumns + ` FROM spots ORDER BY id`

	rows, err := r.db.Query(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("repo.SpotRepo.List: %w", err)
	}
	defer rows.Close()

	spots, err := collectSpots(rows)
	if err != nil {
		return nil, fmt.Errorf("repo.SpotRepo.List: %w", err)
	}
	return spots, nil
}

// GetByID retrieves a spot by primary key.
func (r *pgSpotRepo) GetByID(ctx context.Context, id string) (domain.Spot, error) {
	q := `SELECT ` + spotColumns + ` FROM spots WHERE id = @id`

	row := r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id})
	result, err := scanSpot(row)
	if err != nil {
		return domain.Spot{}, fmt.Errorf("repo.SpotRepo.GetByID: %w", err)
	}
	return result, nil
}

// UpsertMany writes records in a single transaction. pgx.BeginFunc commits
// when the callback returns nil and rolls back on any error.
// created_at is preserved on conflict; updated_at is refreshed.
func (r *pgSpotRepo) UpsertMany(ctx context.Context, records []domain.SpotRecord) error {
	if len(records) == 0 {
		return nil
	}

	const q = `
		INSERT INTO spots (id, name, lat, lng, address, summary, official_url, cost_range,
		                   age_min, age_max, tags, images, hours, created_at, updated_at)
		VALUES (@id, @name, @lat, @lng, @address, @summary, @official_url, @cost_range,
		        @age_min, @age_max, @tags, @images, @hours, now(), now())
		ON CONFLICT (id) DO UPDATE SET
		    name         = EXCLUDED.name,
		    lat          = EXCLUDED.lat,
		    lng          = EXCLUDED.lng,
		    address      = EXCLUDED.address,
		    summary      = EXCLUDED.summary,
		    official_url = EXCLUDED.official_url,
		    cost_range   = EXCLUDED.cost_range,
		    age_min      = EXCLUDED.age_min,
		    age_max      = EXCLUDED.age_max,
		    tags         = EXCLUDED.tags,
		    images       = EXCLUDED.images,
		    hours        = EXCLUDED.hours,
		    updated_at   = now()`

	err := pgx.BeginFunc(ctx, r.db, func(tx pgx.Tx) error {
		for _, rec := range records {
			if rec.Lat == nil || rec.Lng == nil {
				return fmt.Errorf("%w: spot %q has no coordinates", domain.ErrValidation, rec.ID)
			}
			args := pgx.NamedArgs{
				"id":           rec.ID,
				"name":         rec.Name,
				"lat":          *rec.Lat,
				"lng":          *rec.Lng,
				"address":      rec.Address,
				"summary":      rec.Summary,
				"official_url": rec.OfficialURL, // nil becomes NULL
				"cost_range":   costRangeArg(rec.CostRange),
				"age_min":      rec.AgeMin,
				"age_max":      rec.AgeMax,
				"tags":         nonNil(rec.Tags),
				"images":       nonNil(rec.Images),
				"hours":        rec.Hours,
			}
			if _, err := tx.Exec(ctx, q, args); err != nil {
				return fmt.Errorf("spot %q: %w", rec.ID, err)
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("repo.SpotRepo.UpsertMany: %w", err)
	}
	return nil
}

// Delete removes a spot by primary key.
func (r *pgSpotRepo) Delete(ctx context.Context, id string) error {
	const q = `DELETE FROM spots WHERE id = @id`

	tag, err := r.db.Exec(ctx, q, pgx.NamedArgs{"id": id})
	if err != nil {
		return fmt.Errorf("repo.SpotRepo.Delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.SpotRepo.Delete: %w", domain.ErrNotFound)
	}
	return nil
}

// collectSpots drains rows into a non-nil slice.
func collectSpots(rows pgx.Rows) ([]domain.Spot, error) {
	spots := []domain.Spot{}
	for rows.Next() {
		s, err := scanSpot(rows)
		if err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}
		spots = append(spots, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}
	return spots, nil
}

// scanSpot maps a single database row (in spotColumns order) into a domain.Spot.
// It handles the nullable optional columns.
func scanSpot(s scanner) (domain.Spot, error) {
	var (
		sp          domain.Spot
		officialURL pgtype.Text
		costRange   pgtype.Text
		ageMin      pgtype.Int4
		ageMax      pgtype.Int4
		hours       pgtype.Text
	)

	err := s.Scan(&sp.ID, &sp.Name, &sp.Lat, &sp.Lng, &sp.Address, &sp.Summary,
		&officialURL, &costRange, &ageMin, &ageMax, &sp.Tags, &sp.Images, &hours,
		&sp.CreatedAt, &sp.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Spot{}, domain.ErrNotFound
		}
		return domain.Spot{}, err
	}

	sp.OfficialURL = textPtr(officialURL)
	sp.Hours = textPtr(hours)
	if costRange.Valid {
		c := domain.CostRange(costRange.String)
		sp.CostRange = &c
	}
	sp.AgeMin = int4Ptr(ageMin)
	sp.AgeMax = int4Ptr(ageMax)
	if sp.Tags == nil {
		sp.Tags = []string{}
	}
	if sp.Images == nil {
		sp.Images = []string{}
	}
	return sp, nil
}

func textPtr(t pgtype.Text) *string {
	if !t.Valid {
		return nil
	}
	s := t.String
	return &s
}

func int4Ptr(i pgtype.Int4) *int {
	if !i.Valid {
		return nil
	}
	v := int(i.Int32)
	return &v
}

func costRangeArg(c *domain.CostRange) *string {
	if c == nil {
		return nil
	}
	s := string(*c)
	return &s
}

// nonNil keeps NOT NULL array columns from receiving NULL.
func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
