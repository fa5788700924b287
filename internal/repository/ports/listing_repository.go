package ports

import (
	"context"

	"github.com/google/uuid"

	"github.com/sajhahub/sajha-hub-backend/internal/domain"
)

type ListingRepository interface {
	// ListAll returns the full collection, expired listings included; the
	// filter pipeline always recomputes from the full source.
	ListAll(ctx context.Context) ([]domain.Listing, error)
	FindByID(ctx context.Context, id uuid.UUID) (*domain.Listing, error)
	Create(ctx context.Context, listing *domain.Listing) (*domain.Listing, error)
	// IncrementFeedback bumps one community vote counter and returns the
	// updated counters. Counters never decrease.
	IncrementFeedback(ctx context.Context, id uuid.UUID, kind domain.FeedbackKind) (*domain.SafetyFeedback, error)
	SetAvailability(ctx context.Context, id uuid.UUID, available bool) (*domain.Listing, error)
	SetImageURL(ctx context.Context, id uuid.UUID, imageURL string) error
}
