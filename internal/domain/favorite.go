package domain

import "time"

// Favorite is a user-to-spot bookmark. The (UserID, SpotID) pair is unique;
// adding an existing pair is a no-op rather than an error.
// UserID is the opaque identifier returned by the identity collaborator
// (e.g. "apple:001234.abcd").
type Favorite struct {
	UserID    string
	SpotID    string
	CreatedAt time.Time
}
