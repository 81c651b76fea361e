package identity_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ittyan/family-outings/internal/identity"
)

// countingFetcher returns set and counts calls; err, when set, is returned instead.
type countingFetcher struct {
	set   identity.JWKS
	err   error
	calls int
}

func (f *countingFetcher) Fetch(context.Context) (identity.JWKS, error) {
	f.calls++
	if f.err != nil {
		return identity.JWKS{}, f.err
	}
	return f.set, nil
}

var _ identity.KeyFetcher = (*countingFetcher)(nil)

func TestKeyCache_FetchIfStale(t *testing.T) {
	f := &countingFetcher{set: identity.JWKS{Keys: []identity.JWK{{Kid: "k1"}}}}
	c := identity.NewKeyCache(f, time.Hour)
	ctx := context.Background()
	t0 := time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC)

	got, err := c.FetchIfStale(ctx, t0)
	require.NoError(t, err)
	assert.Equal(t, "k1", got.Keys[0].Kid)
	assert.Equal(t, 1, f.calls, "empty cache fetches")

	_, err = c.FetchIfStale(ctx, t0.Add(59*time.Minute))
	require.NoError(t, err)
	assert.Equal(t, 1, f.calls, "fresh cache is reused")

	_, err = c.FetchIfStale(ctx, t0.Add(time.Hour))
	require.NoError(t, err)
	assert.Equal(t, 2, f.calls, "expiry instant refetches")

	_, err = c.FetchIfStale(ctx, t0.Add(90*time.Minute))
	require.NoError(t, err)
	assert.Equal(t, 2, f.calls, "new expiry counts from the refetch")
}

func TestKeyCache_fetchError(t *testing.T) {
	boom := errors.New("boom")
	f := &countingFetcher{err: boom}
	c := identity.NewKeyCache(f, 0)
	now := time.Now()

	_, err := c.FetchIfStale(context.Background(), now)
	assert.ErrorIs(t, err, boom)

	_, err = c.FetchIfStale(context.Background(), now)
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 2, f.calls, "a failed fetch is not cached")
}

func TestHTTPKeyFetcher_Fetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		_ = json.NewEncoder(w).Encode(identity.JWKS{Keys: []identity.JWK{
			{Kty: "RSA", Kid: "abc", Alg: "RS256", N: "AQAB", E: "AQAB"},
		}})
	}))
	t.Cleanup(srv.Close)

	got, err := identity.NewHTTPKeyFetcher(srv.URL).Fetch(context.Background())

	require.NoError(t, err)
	key, ok := got.Find("abc")
	require.True(t, ok)
	assert.Equal(t, "RS256", key.Alg)
}

func TestHTTPKeyFetcher_badStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	t.Cleanup(srv.Close)

	_, err := identity.NewHTTPKeyFetcher(srv.URL).Fetch(context.Background())

	assert.ErrorContains(t, err, "503")
}

func TestJWK_RSAPublicKey_rejectsNonRSA(t *testing.T) {
	_, err := identity.JWK{Kty: "EC"}.RSAPublicKey()
	assert.Error(t, err)
}
