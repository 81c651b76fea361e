package domain

import "errors"

// ErrNotFound is returned by repo and service functions when the requested
// resource does not exist in the database.
// Handlers should map this to HTTP 404.
var ErrNotFound = errors.New("not found")

// ErrValidation is returned when input falls outside its declared range
// (e.g. radius_km above 50, age above 18, empty user id).
// Handlers should map this to HTTP 422 Unprocessable Entity.
var ErrValidation = errors.New("validation error")

// ErrSourceFetch marks a single ingestion source that could not be drained.
// The pipeline records it and carries on with the remaining sources.
var ErrSourceFetch = errors.New("source fetch failed")

// ErrPersistence marks a storage failure during ingestion. It is fatal to the
// pipeline run; online callers treat it as a retryable transient failure.
var ErrPersistence = errors.New("persistence failed")

// ErrSnapshot marks a failure writing the ingestion snapshot artifact.
// It is reported independently of ErrPersistence.
var ErrSnapshot = errors.New("snapshot write failed")
