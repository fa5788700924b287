package ports

import (
	"context"

	"github.com/google/uuid"

	"github.com/sajhahub/sajha-hub-backend/internal/domain"
)

// SessionStore is the key-value store holding per-member session state: the
// serialized user object, the selected city, and one-vote-per-listing
// guards. Implementations must treat missing or unparseable values as
// absent, never as errors; a fresh session is always a valid fallback.
type SessionStore interface {
	SaveUser(ctx context.Context, user *domain.User) error
	// LoadUser returns (nil, nil) when no valid session user exists.
	LoadUser(ctx context.Context, id uuid.UUID) (*domain.User, error)
	DeleteUser(ctx context.Context, id uuid.UUID) error

	SaveCity(ctx context.Context, userID uuid.UUID, city string) error
	// LoadCity returns "" when no city was selected.
	LoadCity(ctx context.Context, userID uuid.UUID) (string, error)

	// MarkVoted records a safety-feedback vote and reports whether this was
	// the first vote by the member on the listing.
	MarkVoted(ctx context.Context, userID, listingID uuid.UUID) (bool, error)
}
