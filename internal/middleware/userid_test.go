package middleware_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ittyan/family-outings/internal/middleware"
)

// echoUserHandler writes the user ID found in the request context.
var echoUserHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
	_, _ = w.Write([]byte(middleware.UserIDFromContext(r.Context())))
})

func TestRequireUserID_PresentHeader_StoresInContext(t *testing.T) {
	h := middleware.RequireUserID(echoUserHandler)

	req := httptest.NewRequest(http.MethodGet, "/favorites", nil)
	req.Header.Set("X-User-Id", "  apple:001  ")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "apple:001", rec.Body.String())
}

func TestRequireUserID_MissingHeader_Returns401(t *testing.T) {
	for _, value := range []string{"", "   "} {
		h := middleware.RequireUserID(echoUserHandler)

		req := httptest.NewRequest(http.MethodGet, "/favorites", nil)
		if value != "" {
			req.Header.Set("X-User-Id", value)
		}
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)

		require.Equal(t, http.StatusUnauthorized, rec.Code)

		var body struct {
			Error struct {
				Code string `json:"code"`
			} `json:"error"`
		}
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
		assert.Equal(t, "unauthorized", body.Error.Code)
	}
}

func TestUserIDFromContext_Empty(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	assert.Empty(t, middleware.UserIDFromContext(req.Context()))
}
