package postgres

import (
	"context"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/sajhahub/sajha-hub-backend/internal/domain"
)

type PartnerRepository struct {
	db *sqlx.DB
}

func NewPartnerRepo(db *sqlx.DB) *PartnerRepository {
	return &PartnerRepository{db: db}
}

type stayRow struct {
	domain.Stay
	AmenityList pq.StringArray `db:"amenities"`
}

func (r *PartnerRepository) ListStays(ctx context.Context) ([]domain.Stay, error) {
	const query = `
		SELECT id, name, type, location, price_per_night, currency, rating,
		       image_url, description, amenities, has_breakfast, view_type,
		       bed_type, allows_day_stay, day_stay_price
		FROM partner_stay
		ORDER BY rating DESC, name
	`

	var rows []stayRow
	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, err
	}
	stays := make([]domain.Stay, 0, len(rows))
	for _, row := range rows {
		stay := row.Stay
		stay.Amenities = []string(row.AmenityList)
		stays = append(stays, stay)
	}
	return stays, nil
}

type packageRow struct {
	domain.TourPackage
	HighlightList pq.StringArray `db:"highlights"`
}

func (r *PartnerRepository) ListAgencies(ctx context.Context) ([]domain.Agency, error) {
	const agencyQuery = `
		SELECT id, name, location, specialty, rating, verified_year,
		       image_url, description, contact
		FROM partner_agency
		ORDER BY rating DESC, name
	`

	var agencies []domain.Agency
	if err := r.db.SelectContext(ctx, &agencies, agencyQuery); err != nil {
		return nil, err
	}
	if len(agencies) == 0 {
		return agencies, nil
	}

	const packageQuery = `
		SELECT id, agency_id, title, duration, price, description, highlights
		FROM partner_tour_package
		ORDER BY price
	`

	var rows []packageRow
	if err := r.db.SelectContext(ctx, &rows, packageQuery); err != nil {
		return nil, err
	}
	byAgency := make(map[uuid.UUID][]domain.TourPackage, len(agencies))
	for _, row := range rows {
		pkg := row.TourPackage
		pkg.Highlights = []string(row.HighlightList)
		byAgency[pkg.AgencyID] = append(byAgency[pkg.AgencyID], pkg)
	}
	for i := range agencies {
		agencies[i].Packages = byAgency[agencies[i].ID]
	}
	return agencies, nil
}
