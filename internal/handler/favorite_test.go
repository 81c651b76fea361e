package handler_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ittyan/family-outings/internal/domain"
	"github.com/ittyan/family-outings/internal/handler"
)

// ---- mock FavoriteServicer -------------------------------------------------

type mockFavoriteServicer struct {
	add    func(ctx context.Context, userID, spotID string) error
	remove func(ctx context.Context, userID, spotID string) error
	list   func(ctx context.Context, userID string) ([]domain.Spot, error)
}

func (m *mockFavoriteServicer) Add(ctx context.Context, userID, spotID string) error {
	return m.add(ctx, userID, spotID)
}
func (m *mockFavoriteServicer) Remove(ctx context.Context, userID, spotID string) error {
	return m.remove(ctx, userID, spotID)
}
func (m *mockFavoriteServicer) List(ctx context.Context, userID string) ([]domain.Spot, error) {
	return m.list(ctx, userID)
}

// compile-time check: mockFavoriteServicer must satisfy handler.FavoriteServicer.
var _ handler.FavoriteServicer = (*mockFavoriteServicer)(nil)

func newFavoriteHTTPHandler(svc handler.FavoriteServicer) http.Handler {
	return handler.NewServer(nil, svc, nil).Routes()
}

func wrapValidation(msg string) error {
	return fmt.Errorf("%w: %s", domain.ErrValidation, msg)
}

// ---- GET /favorites --------------------------------------------------------

func TestListFavorites_OK(t *testing.T) {
	svc := &mockFavoriteServicer{
		list: func(_ context.Context, userID string) ([]domain.Spot, error) {
			assert.Equal(t, "apple:001", userID)
			return []domain.Spot{spotFixture()}, nil
		},
	}
	req := httptest.NewRequest(http.MethodGet, "/favorites", nil)
	req.Header.Set("X-User-Id", "apple:001")
	rec := httptest.NewRecorder()
	newFavoriteHTTPHandler(svc).ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"items":[{"id":"tokyo-museum-1"`)
}

func TestListFavorites_empty(t *testing.T) {
	svc := &mockFavoriteServicer{
		list: func(context.Context, string) ([]domain.Spot, error) { return []domain.Spot{}, nil },
	}
	req := httptest.NewRequest(http.MethodGet, "/favorites", nil)
	req.Header.Set("X-User-Id", "u")
	rec := httptest.NewRecorder()
	newFavoriteHTTPHandler(svc).ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"items":[]}`, rec.Body.String())
}

func TestFavorites_missingUserHeader_Returns401(t *testing.T) {
	h := newFavoriteHTTPHandler(&mockFavoriteServicer{})

	for _, req := range []*http.Request{
		httptest.NewRequest(http.MethodGet, "/favorites", nil),
		httptest.NewRequest(http.MethodPost, "/favorites", strings.NewReader(`{"spot_id":"a"}`)),
		httptest.NewRequest(http.MethodDelete, "/favorites/a", nil),
	} {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code, "%s %s", req.Method, req.URL.Path)
	}
}

// ---- POST /favorites -------------------------------------------------------

func TestAddFavorite_OK(t *testing.T) {
	var gotUser, gotSpot string
	svc := &mockFavoriteServicer{
		add: func(_ context.Context, userID, spotID string) error {
			gotUser, gotSpot = userID, spotID
			return nil
		},
	}
	req := httptest.NewRequest(http.MethodPost, "/favorites", strings.NewReader(`{"spot_id":"tokyo-park-1"}`))
	req.Header.Set("X-User-Id", "apple:001")
	rec := httptest.NewRecorder()
	newFavoriteHTTPHandler(svc).ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"ok":true}`, rec.Body.String())
	assert.Equal(t, "apple:001", gotUser)
	assert.Equal(t, "tokyo-park-1", gotSpot)
}

func TestAddFavorite_spotNotFound(t *testing.T) {
	svc := &mockFavoriteServicer{
		add: func(context.Context, string, string) error {
			return fmt.Errorf("service.FavoriteService.Add: %w", domain.ErrNotFound)
		},
	}
	req := httptest.NewRequest(http.MethodPost, "/favorites", strings.NewReader(`{"spot_id":"nope"}`))
	req.Header.Set("X-User-Id", "u")
	rec := httptest.NewRecorder()
	newFavoriteHTTPHandler(svc).ServeHTTP(rec, req)

	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "not_found", errorCode(t, rec))
}

func TestAddFavorite_badBodies(t *testing.T) {
	tests := []struct {
		name   string
		body   string
		status int
	}{
		{"not json", `spot_id=a`, http.StatusBadRequest},
		{"missing spot_id", `{}`, http.StatusUnprocessableEntity},
		{"blank spot_id", `{"spot_id":"  "}`, http.StatusUnprocessableEntity},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/favorites", strings.NewReader(tc.body))
			req.Header.Set("X-User-Id", "u")
			rec := httptest.NewRecorder()
			newFavoriteHTTPHandler(&mockFavoriteServicer{}).ServeHTTP(rec, req)

			assert.Equal(t, tc.status, rec.Code)
			assert.Equal(t, "validation_error", errorCode(t, rec))
		})
	}
}

// ---- DELETE /favorites/{spotId} --------------------------------------------

func TestRemoveFavorite_OK(t *testing.T) {
	var gotSpot string
	svc := &mockFavoriteServicer{
		remove: func(_ context.Context, _, spotID string) error {
			gotSpot = spotID
			return nil
		},
	}
	req := httptest.NewRequest(http.MethodDelete, "/favorites/tokyo-park-1", nil)
	req.Header.Set("X-User-Id", "u")
	rec := httptest.NewRecorder()
	newFavoriteHTTPHandler(svc).ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"ok":true}`, rec.Body.String())
	assert.Equal(t, "tokyo-park-1", gotSpot)
}

func TestRemoveFavorite_validationMessage(t *testing.T) {
	svc := &mockFavoriteServicer{
		remove: func(context.Context, string, string) error {
			return fmt.Errorf("service.FavoriteService.Remove: %w", wrapValidation("spot id is required"))
		},
	}
	req := httptest.NewRequest(http.MethodDelete, "/favorites/x", nil)
	req.Header.Set("X-User-Id", "u")
	rec := httptest.NewRecorder()
	newFavoriteHTTPHandler(svc).ServeHTTP(rec, req)

	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, rec.Body.String(), `"message":"spot id is required"`)
}
