package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/sajhahub/sajha-hub-backend/internal/domain"
)

type ListingRepository struct {
	db *sqlx.DB
}

func NewListingRepo(db *sqlx.DB) *ListingRepository {
	return &ListingRepository{db: db}
}

const listingColumns = `
	id, title, description, category, sub_category, region, city, price,
	location, author, author_id, email_verified, phone_verified,
	nagrita_verified, created_at, last_active_at, expires_at, image_url,
	tags, status, speaks_nepali, phone, whatsapp, available_today,
	helpful_count, misleading_count, scam_count, featured, rating,
	furnished, shared, rental_type, event_date, ticket_type
`

// listingRow flattens the array and counter columns that the domain struct
// keeps out of its own db mapping.
type listingRow struct {
	domain.Listing
	domain.SafetyFeedback
	TagList pq.StringArray `db:"tags"`
}

func (r listingRow) toDomain() domain.Listing {
	l := r.Listing
	l.Tags = []string(r.TagList)
	l.Feedback = r.SafetyFeedback
	return l
}

func (r *ListingRepository) ListAll(ctx context.Context) ([]domain.Listing, error) {
	query := `SELECT ` + listingColumns + ` FROM listing ORDER BY created_at DESC`

	var rows []listingRow
	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, err
	}
	listings := make([]domain.Listing, 0, len(rows))
	for _, row := range rows {
		listings = append(listings, row.toDomain())
	}
	return listings, nil
}

func (r *ListingRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Listing, error) {
	query := `SELECT ` + listingColumns + ` FROM listing WHERE id = $1`

	var row listingRow
	if err := r.db.GetContext(ctx, &row, query, id); err != nil {
		return nil, err
	}
	listing := row.toDomain()
	return &listing, nil
}

func (r *ListingRepository) Create(ctx context.Context, listing *domain.Listing) (*domain.Listing, error) {
	query := `
		INSERT INTO listing (
			title, description, category, sub_category, region, city, price,
			location, author, author_id, email_verified, phone_verified,
			nagrita_verified, expires_at, image_url, tags, status,
			speaks_nepali, phone, whatsapp, available_today, featured, rating,
			furnished, shared, rental_type, event_date, ticket_type
		) VALUES (
			:title, :description, :category, :sub_category, :region, :city, :price,
			:location, :author, :author_id, :email_verified, :phone_verified,
			:nagrita_verified, :expires_at, :image_url, :tags, :status,
			:speaks_nepali, :phone, :whatsapp, :available_today, :featured, :rating,
			:furnished, :shared, :rental_type, :event_date, :ticket_type
		)
		RETURNING ` + listingColumns

	args := map[string]any{
		"title":            listing.Title,
		"description":      listing.Description,
		"category":         listing.Category,
		"sub_category":     listing.SubCategory,
		"region":           listing.Region,
		"city":             listing.City,
		"price":            listing.Price,
		"location":         listing.Location,
		"author":           listing.Author,
		"author_id":        listing.AuthorID,
		"email_verified":   listing.EmailVerified,
		"phone_verified":   listing.PhoneVerified,
		"nagrita_verified": listing.NagritaVerified,
		"expires_at":       listing.ExpiresAt,
		"image_url":        listing.ImageURL,
		"tags":             pq.Array(listing.Tags),
		"status":           listing.Status,
		"speaks_nepali":    listing.SpeaksNepali,
		"phone":            listing.Phone,
		"whatsapp":         listing.Whatsapp,
		"available_today":  listing.AvailableToday,
		"featured":         listing.Featured,
		"rating":           listing.Rating,
		"furnished":        listing.Furnished,
		"shared":           listing.Shared,
		"rental_type":      listing.RentalType,
		"event_date":       listing.EventDate,
		"ticket_type":      listing.TicketType,
	}

	rows, err := r.db.NamedQueryContext(ctx, query, args)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	if rows.Next() {
		var row listingRow
		if err = rows.StructScan(&row); err != nil {
			return nil, err
		}
		created := row.toDomain()
		return &created, nil
	}
	return nil, sql.ErrNoRows
}

func (r *ListingRepository) IncrementFeedback(ctx context.Context, id uuid.UUID, kind domain.FeedbackKind) (*domain.SafetyFeedback, error) {
	var column string
	switch kind {
	case domain.FeedbackHelpful:
		column = "helpful_count"
	case domain.FeedbackMisleading:
		column = "misleading_count"
	case domain.FeedbackScam:
		column = "scam_count"
	default:
		return nil, fmt.Errorf("unknown feedback kind %q", kind)
	}

	query := fmt.Sprintf(`
		UPDATE listing
		SET %s = %s + 1
		WHERE id = $1
		RETURNING helpful_count, misleading_count, scam_count
	`, column, column)

	var feedback domain.SafetyFeedback
	if err := r.db.GetContext(ctx, &feedback, query, id); err != nil {
		return nil, err
	}
	return &feedback, nil
}

func (r *ListingRepository) SetAvailability(ctx context.Context, id uuid.UUID, available bool) (*domain.Listing, error) {
	query := `
		UPDATE listing
		SET available_today = $2, last_active_at = NOW()
		WHERE id = $1
		RETURNING ` + listingColumns

	var row listingRow
	if err := r.db.GetContext(ctx, &row, query, id, available); err != nil {
		return nil, err
	}
	listing := row.toDomain()
	return &listing, nil
}

func (r *ListingRepository) SetImageURL(ctx context.Context, id uuid.UUID, imageURL string) error {
	const query = `UPDATE listing SET image_url = $2 WHERE id = $1`

	res, err := r.db.ExecContext(ctx, query, id, imageURL)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}
