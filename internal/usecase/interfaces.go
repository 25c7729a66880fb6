package usecase

import (
	"context"

	"github.com/bloxfund/donation-proxy/internal/models"
)

// ListingSource produces candidate items created by a user from one
// upstream listing API. The emit callback receives candidates lazily and
// returns false to stop the enumeration early. Implementations absorb
// upstream failures and end the enumeration with whatever was already
// emitted rather than surfacing an error.
type ListingSource interface {
	SourceName() string
	List(ctx context.Context, userID int64, emit func(models.Candidate) bool) error
}

// Enricher fetches authoritative product info for one candidate and
// decides admission. A (nil, nil) return means the candidate was rejected
// by the admission predicate; an error means the upstream call failed and
// the candidate is dropped.
type Enricher interface {
	Enrich(ctx context.Context, userID int64, cand models.Candidate) (*models.CatalogItem, error)
}

// UserDirectory resolves usernames and user ids against the upstream user
// service.
type UserDirectory interface {
	GetUserByUsername(ctx context.Context, username string) (*models.UserProfile, error)
	GetUserByID(ctx context.Context, userID int64) (*models.UserProfile, error)
}
