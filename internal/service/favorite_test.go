package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ittyan/family-outings/internal/domain"
	"github.com/ittyan/family-outings/internal/repo"
	"github.com/ittyan/family-outings/internal/service"
)

// mockFavoriteRepo is a hand-written test double for repo.FavoriteRepo.
type mockFavoriteRepo struct {
	add             func(ctx context.Context, userID, spotID string) error
	remove          func(ctx context.Context, userID, spotID string) error
	listSpotsByUser func(ctx context.Context, userID string) ([]domain.Spot, error)
}

func (m *mockFavoriteRepo) Add(ctx context.Context, userID, spotID string) error {
	return m.add(ctx, userID, spotID)
}
func (m *mockFavoriteRepo) Remove(ctx context.Context, userID, spotID string) error {
	return m.remove(ctx, userID, spotID)
}
func (m *mockFavoriteRepo) ListSpotsByUser(ctx context.Context, userID string) ([]domain.Spot, error) {
	return m.listSpotsByUser(ctx, userID)
}

// compile-time check: mockFavoriteRepo must satisfy repo.FavoriteRepo.
var _ repo.FavoriteRepo = (*mockFavoriteRepo)(nil)

func spotExists(_ context.Context, id string) (domain.Spot, error) {
	return domain.Spot{ID: id}, nil
}

// ---- Add -------------------------------------------------------------------

func TestFavoriteService_Add_OK(t *testing.T) {
	var gotUser, gotSpot string
	svc := service.NewFavoriteService(
		&mockSpotRepo{getByID: spotExists},
		&mockFavoriteRepo{add: func(_ context.Context, userID, spotID string) error {
			gotUser, gotSpot = userID, spotID
			return nil
		}},
	)

	err := svc.Add(context.Background(), "apple:u1", "a-park")

	require.NoError(t, err)
	assert.Equal(t, "apple:u1", gotUser)
	assert.Equal(t, "a-park", gotSpot)
}

func TestFavoriteService_Add_spotNotFound(t *testing.T) {
	added := false
	svc := service.NewFavoriteService(
		&mockSpotRepo{getByID: func(_ context.Context, _ string) (domain.Spot, error) {
			return domain.Spot{}, domain.ErrNotFound
		}},
		&mockFavoriteRepo{add: func(context.Context, string, string) error {
			added = true
			return nil
		}},
	)

	err := svc.Add(context.Background(), "u", "missing")

	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.False(t, added, "no row may be written for a missing spot")
}

func TestFavoriteService_Add_blankIDs(t *testing.T) {
	svc := service.NewFavoriteService(&mockSpotRepo{}, &mockFavoriteRepo{})

	assert.ErrorIs(t, svc.Add(context.Background(), "", "a-park"), domain.ErrValidation)
	assert.ErrorIs(t, svc.Add(context.Background(), "u", "  "), domain.ErrValidation)
}

func TestFavoriteService_Add_repoError(t *testing.T) {
	dbErr := errors.New("boom")
	svc := service.NewFavoriteService(
		&mockSpotRepo{getByID: spotExists},
		&mockFavoriteRepo{add: func(context.Context, string, string) error { return dbErr }},
	)

	assert.ErrorIs(t, svc.Add(context.Background(), "u", "a-park"), dbErr)
}

// ---- Remove ----------------------------------------------------------------

func TestFavoriteService_Remove_OK(t *testing.T) {
	called := false
	svc := service.NewFavoriteService(&mockSpotRepo{}, &mockFavoriteRepo{
		remove: func(context.Context, string, string) error {
			called = true
			return nil
		},
	})

	require.NoError(t, svc.Remove(context.Background(), "u", "a-park"))
	assert.True(t, called)
}

func TestFavoriteService_Remove_blankUser(t *testing.T) {
	svc := service.NewFavoriteService(&mockSpotRepo{}, &mockFavoriteRepo{})

	assert.ErrorIs(t, svc.Remove(context.Background(), "", "a-park"), domain.ErrValidation)
}

// ---- List ------------------------------------------------------------------

func TestFavoriteService_List_OK(t *testing.T) {
	svc := service.NewFavoriteService(&mockSpotRepo{}, &mockFavoriteRepo{
		listSpotsByUser: func(_ context.Context, _ string) ([]domain.Spot, error) {
			return []domain.Spot{{ID: "a-park"}, {ID: "c-zoo"}}, nil
		},
	})

	got, err := svc.List(context.Background(), "u")

	require.NoError(t, err)
	assert.Equal(t, []string{"a-park", "c-zoo"}, ids(got))
}

func TestFavoriteService_List_neverNil(t *testing.T) {
	svc := service.NewFavoriteService(&mockSpotRepo{}, &mockFavoriteRepo{
		listSpotsByUser: func(context.Context, string) ([]domain.Spot, error) { return nil, nil },
	})

	got, err := svc.List(context.Background(), "u")

	require.NoError(t, err)
	assert.NotNil(t, got)
}

func TestFavoriteService_List_blankUser(t *testing.T) {
	svc := service.NewFavoriteService(&mockSpotRepo{}, &mockFavoriteRepo{})

	_, err := svc.List(context.Background(), " ")

	assert.ErrorIs(t, err, domain.ErrValidation)
}
