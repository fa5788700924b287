package ports

import (
	"context"

	"github.com/sajhahub/sajha-hub-backend/internal/domain"
)

// InsightsCache holds recently fetched city briefings so repeated lookups
// within the cache window skip the oracle. Implementations treat a missing
// or unparseable value as a miss, never as an error.
type InsightsCache interface {
	SaveInsights(ctx context.Context, insights *domain.CityInsights) error
	// LoadInsights returns (nil, nil) on a cache miss.
	LoadInsights(ctx context.Context, city string) (*domain.CityInsights, error)
}
