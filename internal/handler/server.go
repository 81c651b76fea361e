// Package handler implements the HTTP handlers for the Family Outings API.
// All handlers are methods on Server; Routes mounts them on a chi router.
// Methods are split into resource-specific files (health.go, spot.go, etc.) but
// all share the same Server struct so they can access its dependencies.
package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ittyan/family-outings/internal/domain"
	"github.com/ittyan/family-outings/internal/middleware"
	"github.com/ittyan/family-outings/internal/service"
)

// SpotServicer defines the business operations the spot handlers depend on.
// Defining the interface here (in the consumer package) follows the Go
// convention: "accept interfaces, return concrete types". It lets handler
// tests inject a mock without touching the database or service layer.
type SpotServicer interface {
	Search(ctx context.Context, c domain.Criteria) ([]domain.Spot, error)
	GetByID(ctx context.Context, id string) (domain.Spot, error)
}

// FavoriteServicer defines the favorites operations for the current user.
type FavoriteServicer interface {
	Add(ctx context.Context, userID, spotID string) error
	Remove(ctx context.Context, userID, spotID string) error
	List(ctx context.Context, userID string) ([]domain.Spot, error)
}

// AuthServicer exchanges a provider id_token for a session.
type AuthServicer interface {
	Verify(ctx context.Context, provider, token, nonce string) (service.Session, error)
}

// Server holds the dependencies shared by every handler.
type Server struct {
	spots     SpotServicer
	favorites FavoriteServicer
	auth      AuthServicer
	openAPI   []byte
	logger    *slog.Logger
}

// NewServer constructs the Server with all its dependencies.
// Any servicer may be nil when a test exercises only part of the API.
func NewServer(spots SpotServicer, favorites FavoriteServicer, auth AuthServicer) *Server {
	return &Server{
		spots:     spots,
		favorites: favorites,
		auth:      auth,
		logger:    slog.New(slog.DiscardHandler),
	}
}

// WithLogger sets the logger used for unexpected (500) errors.
func (s *Server) WithLogger(logger *slog.Logger) *Server {
	s.logger = logger
	return s
}

// WithOpenAPI sets the document served at GET /openapi.yaml.
func (s *Server) WithOpenAPI(doc []byte) *Server {
	s.openAPI = doc
	return s
}

// NewHealthHandler returns a Server for health-check-only use.
func NewHealthHandler() *Server {
	return NewServer(nil, nil, nil)
}

// Routes returns a chi router with every endpoint mounted.
// The favorites group requires the X-User-Id header.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()

	r.Get("/healthz", s.GetHealth)
	r.Get("/openapi.yaml", s.GetOpenAPI)

	r.Route("/spots", func(r chi.Router) {
		r.Get("/", s.ListSpots)
		r.Get("/{spotId}", s.GetSpot)
	})

	r.Post("/auth/verify", s.VerifyAuth)

	r.Route("/favorites", func(r chi.Router) {
		r.Use(middleware.RequireUserID)
		r.Get("/", s.ListFavorites)
		r.Post("/", s.AddFavorite)
		r.Delete("/{spotId}", s.RemoveFavorite)
	})

	return r
}
