package domain

import "github.com/google/uuid"

// PartnerKind discriminates the two partner entity shapes returned by the
// recommendation matcher. It is set at construction time, never inferred from
// which fields happen to be populated.
type PartnerKind string

const (
	PartnerTravelExpert PartnerKind = "Travel Expert"
	PartnerVerifiedStay PartnerKind = "Verified Stay"
)

type TourPackage struct {
	ID          uuid.UUID `db:"id" json:"id"`
	AgencyID    uuid.UUID `db:"agency_id" json:"agency_id"`
	Title       string    `db:"title" json:"title"`
	Duration    string    `db:"duration" json:"duration"`
	Price       float64   `db:"price" json:"price"`
	Description string    `db:"description" json:"description"`
	Highlights  []string  `db:"-" json:"highlights,omitempty"`
}

type Stay struct {
	ID            uuid.UUID `db:"id" json:"id"`
	Name          string    `db:"name" json:"name"`
	Type          string    `db:"type" json:"type"`
	Location      string    `db:"location" json:"location"`
	PricePerNight float64   `db:"price_per_night" json:"price_per_night"`
	Currency      string    `db:"currency" json:"currency"`
	Rating        float64   `db:"rating" json:"rating"`
	ImageURL      string    `db:"image_url" json:"image_url"`
	Description   string    `db:"description" json:"description"`
	Amenities     []string  `db:"-" json:"amenities,omitempty"`
	HasBreakfast  bool      `db:"has_breakfast" json:"has_breakfast"`
	ViewType      string    `db:"view_type" json:"view_type"`
	BedType       string    `db:"bed_type" json:"bed_type"`
	AllowsDayStay bool      `db:"allows_day_stay" json:"allows_day_stay"`
	DayStayPrice  *float64  `db:"day_stay_price" json:"day_stay_price,omitempty"`
}

type Agency struct {
	ID           uuid.UUID     `db:"id" json:"id"`
	Name         string        `db:"name" json:"name"`
	Location     string        `db:"location" json:"location"`
	Specialty    string        `db:"specialty" json:"specialty"`
	Rating       float64       `db:"rating" json:"rating"`
	VerifiedYear int           `db:"verified_year" json:"verified_year"`
	ImageURL     string        `db:"image_url" json:"image_url"`
	Description  string        `db:"description" json:"description"`
	Contact      string        `db:"contact" json:"contact"`
	Packages     []TourPackage `db:"-" json:"packages,omitempty"`
}

// PartnerMatch is a tagged union: exactly one of Stay or Agency is set,
// according to Kind.
type PartnerMatch struct {
	Kind   PartnerKind `json:"partner_type"`
	Stay   *Stay       `json:"stay,omitempty"`
	Agency *Agency     `json:"agency,omitempty"`
}
