// Package identity verifies third-party sign-in tokens and issues opaque
// session tokens. It owns the only in-process cache in the service: the
// provider's published signing keys.
package identity

import (
	"context"
	"crypto/rsa"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"math/big"
	"net/http"
	"sync"
	"time"
)

// DefaultKeyTTL is how long a fetched key set is trusted before refetching.
const DefaultKeyTTL = time.Hour

// ErrInvalidToken is returned (wrapped) for any id_token that fails
// verification: bad signature, unknown key, wrong audience or issuer,
// expiry, nonce mismatch, or a missing subject.
var ErrInvalidToken = errors.New("invalid identity token")

// ErrKeysUnavailable is returned (wrapped) when the provider's signing keys
// could not be fetched. The token itself was never judged, so callers should
// treat this as a transient upstream failure.
var ErrKeysUnavailable = errors.New("identity signing keys unavailable")

// JWK is one RSA public key in a JSON Web Key Set.
type JWK struct {
	Kty string `json:"kty"`
	Kid string `json:"kid"`
	Use string `json:"use"`
	Alg string `json:"alg"`
	N   string `json:"n"`
	E   string `json:"e"`
}

// JWKS is a JSON Web Key Set document.
type JWKS struct {
	Keys []JWK `json:"keys"`
}

// Find returns the key with the given kid.
func (s JWKS) Find(kid string) (JWK, bool) {
	for _, k := range s.Keys {
		if k.Kid == kid {
			return k, true
		}
	}
	return JWK{}, false
}

// RSAPublicKey decodes the base64url modulus and exponent.
func (k JWK) RSAPublicKey() (*rsa.PublicKey, error) {
	if k.Kty != "RSA" {
		return nil, fmt.Errorf("identity.JWK.RSAPublicKey: unsupported key type %q", k.Kty)
	}
	n, err := base64.RawURLEncoding.DecodeString(k.N)
	if err != nil {
		return nil, fmt.Errorf("identity.JWK.RSAPublicKey: modulus: %w", err)
	}
	e, err := base64.RawURLEncoding.DecodeString(k.E)
	if err != nil {
		return nil, fmt.Errorf("identity.JWK.RSAPublicKey: exponent: %w", err)
	}
	exp := new(big.Int).SetBytes(e)
	if !exp.IsInt64() || exp.Int64() < 2 || exp.Int64() > 1<<31-1 {
		return nil, fmt.Errorf("identity.JWK.RSAPublicKey: exponent out of range")
	}
	return &rsa.PublicKey{N: new(big.Int).SetBytes(n), E: int(exp.Int64())}, nil
}

// KeyFetcher retrieves the current key set from the provider.
type KeyFetcher interface {
	Fetch(ctx context.Context) (JWKS, error)
}

// HTTPKeyFetcher GETs a JWKS document over HTTP.
type HTTPKeyFetcher struct {
	URL    string
	Client *http.Client
}

// NewHTTPKeyFetcher returns a fetcher for url with a 5 second timeout.
func NewHTTPKeyFetcher(url string) *HTTPKeyFetcher {
	return &HTTPKeyFetcher{URL: url, Client: &http.Client{Timeout: 5 * time.Second}}
}

// Fetch downloads and decodes the key set.
func (f *HTTPKeyFetcher) Fetch(ctx context.Context) (JWKS, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.URL, nil)
	if err != nil {
		return JWKS{}, fmt.Errorf("identity.HTTPKeyFetcher.Fetch: %w", err)
	}
	resp, err := f.Client.Do(req)
	if err != nil {
		return JWKS{}, fmt.Errorf("identity.HTTPKeyFetcher.Fetch: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return JWKS{}, fmt.Errorf("identity.HTTPKeyFetcher.Fetch: unexpected status %d", resp.StatusCode)
	}
	var set JWKS
	if err := json.NewDecoder(resp.Body).Decode(&set); err != nil {
		return JWKS{}, fmt.Errorf("identity.HTTPKeyFetcher.Fetch: decode: %w", err)
	}
	return set, nil
}

// KeyCache holds the last fetched key set until its TTL expires.
// It is safe for concurrent use. Callers pass the current time so tests can
// drive staleness without sleeping.
type KeyCache struct {
	fetcher KeyFetcher
	ttl     time.Duration

	mu        sync.Mutex
	keys      JWKS
	loaded    bool
	expiresAt time.Time
}

// NewKeyCache returns an empty cache. A ttl <= 0 uses DefaultKeyTTL.
func NewKeyCache(fetcher KeyFetcher, ttl time.Duration) *KeyCache {
	if ttl <= 0 {
		ttl = DefaultKeyTTL
	}
	return &KeyCache{fetcher: fetcher, ttl: ttl}
}

// FetchIfStale returns the cached key set, refetching only when the cache is
// empty or now is at or after expiry. A failed refetch leaves the previous
// cache state untouched.
func (c *KeyCache) FetchIfStale(ctx context.Context, now time.Time) (JWKS, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.loaded && now.Before(c.expiresAt) {
		return c.keys, nil
	}

	keys, err := c.fetcher.Fetch(ctx)
	if err != nil {
		return JWKS{}, fmt.Errorf("identity.KeyCache.FetchIfStale: %w", err)
	}
	c.keys = keys
	c.loaded = true
	c.expiresAt = now.Add(c.ttl)
	return keys, nil
}
