package ports

import (
	"context"

	"github.com/sajhahub/sajha-hub-backend/internal/domain"
)

// PartnerRepository serves the read-only partner catalogs. Entries have no
// lifecycle beyond display.
type PartnerRepository interface {
	ListStays(ctx context.Context) ([]domain.Stay, error)
	ListAgencies(ctx context.Context) ([]domain.Agency, error)
}
