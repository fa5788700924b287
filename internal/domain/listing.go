package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

type Category string

const (
	CategoryRental      Category = "Rental"
	CategoryEvents      Category = "Events"
	CategoryConcerts    Category = "Concerts"
	CategoryMarketplace Category = "Marketplace"
	CategoryJobs        Category = "Jobs"
	CategoryBlog        Category = "Blog"
	CategoryServices    Category = "Services"
	CategoryCommunity   Category = "Community"
	CategoryBusiness    Category = "Business"
)

type ServiceSubCategory string

const (
	SubCategoryPlumber     ServiceSubCategory = "Plumber"
	SubCategoryElectrician ServiceSubCategory = "Electrician"
	SubCategoryCarpenter   ServiceSubCategory = "Carpenter"
	SubCategoryHandyman    ServiceSubCategory = "Handyman"
	SubCategoryCleaner     ServiceSubCategory = "Cleaner"
	SubCategoryPainter     ServiceSubCategory = "Painter"
	SubCategoryITSupport   ServiceSubCategory = "IT Support"
	SubCategoryLegal       ServiceSubCategory = "Legal & Admin"
)

type Region string

const (
	RegionUSA        Region = "USA"
	RegionUK         Region = "UK"
	RegionEurope     Region = "Europe"
	RegionMiddleEast Region = "Middle East"
	RegionAustralia  Region = "Australia"
	RegionNepal      Region = "Nepal"
	RegionGlobal     Region = "Global"
)

type RentalType string

const (
	RentalSingleRoom   RentalType = "Single Room"
	RentalDoubleRoom   RentalType = "Double Room"
	RentalApartment    RentalType = "Apartment"
	RentalHomestay     RentalType = "Homestay"
	RentalStudentAccom RentalType = "Student Accom."
)

type TicketType string

const (
	TicketGA        TicketType = "GA"
	TicketVIP       TicketType = "VIP"
	TicketEarlyBird TicketType = "Early Bird"
)

type ListingStatus string

const (
	ListingStatusPending  ListingStatus = "pending"
	ListingStatusApproved ListingStatus = "approved"
	ListingStatusRejected ListingStatus = "rejected"
)

// SafetyFeedback carries the community vote counters of a listing. Counters
// only ever increase; one vote per member per listing.
type SafetyFeedback struct {
	Helpful    int `db:"helpful_count" json:"helpful"`
	Misleading int `db:"misleading_count" json:"misleading"`
	Scam       int `db:"scam_count" json:"scam"`
}

type FeedbackKind string

const (
	FeedbackHelpful    FeedbackKind = "helpful"
	FeedbackMisleading FeedbackKind = "misleading"
	FeedbackScam       FeedbackKind = "scam"
)

func ParseFeedbackKind(raw string) (FeedbackKind, bool) {
	switch FeedbackKind(strings.ToLower(strings.TrimSpace(raw))) {
	case FeedbackHelpful:
		return FeedbackHelpful, true
	case FeedbackMisleading:
		return FeedbackMisleading, true
	case FeedbackScam:
		return FeedbackScam, true
	default:
		return "", false
	}
}

type Listing struct {
	ID             uuid.UUID           `db:"id" json:"id"`
	Title          string              `db:"title" json:"title"`
	Description    string              `db:"description" json:"description"`
	Category       Category            `db:"category" json:"category"`
	SubCategory    *ServiceSubCategory `db:"sub_category" json:"sub_category,omitempty"`
	Region         Region              `db:"region" json:"region"`
	City           string              `db:"city" json:"city"`
	Price          *float64            `db:"price" json:"price,omitempty"`
	Location       string              `db:"location" json:"location"`
	Author         string              `db:"author" json:"author"`
	AuthorID       uuid.UUID           `db:"author_id" json:"author_id"`
	EmailVerified  bool                `db:"email_verified" json:"email_verified"`
	PhoneVerified  bool                `db:"phone_verified" json:"phone_verified"`
	NagritaVerified bool               `db:"nagrita_verified" json:"nagrita_verified"`
	CreatedAt      time.Time           `db:"created_at" json:"created_at"`
	LastActiveAt   time.Time           `db:"last_active_at" json:"last_active_at"`
	ExpiresAt      time.Time           `db:"expires_at" json:"expires_at"`
	ImageURL       *string             `db:"image_url" json:"image_url,omitempty"`
	Tags           []string            `db:"-" json:"tags,omitempty"`
	Status         ListingStatus       `db:"status" json:"status"`
	SpeaksNepali   bool                `db:"speaks_nepali" json:"speaks_nepali"`
	Phone          *string             `db:"phone" json:"phone,omitempty"`
	Whatsapp       *string             `db:"whatsapp" json:"whatsapp,omitempty"`
	AvailableToday bool                `db:"available_today" json:"available_today"`
	Feedback       SafetyFeedback      `db:"-" json:"safety_feedback"`
	Featured       bool                `db:"featured" json:"featured"`
	Rating         *float64            `db:"rating" json:"rating,omitempty"`

	// Category-specific fields.
	Furnished  *bool       `db:"furnished" json:"furnished,omitempty"`
	Shared     *bool       `db:"shared" json:"shared,omitempty"`
	RentalType *RentalType `db:"rental_type" json:"rental_type,omitempty"`
	EventDate  *time.Time  `db:"event_date" json:"event_date,omitempty"`
	TicketType *TicketType `db:"ticket_type" json:"ticket_type,omitempty"`
}

// Expired reports whether the listing has passed its expiry instant. Expired
// listings are excluded from every default view regardless of other filters.
func (l *Listing) Expired(now time.Time) bool {
	return !l.ExpiresAt.After(now)
}

// Verified reports whether any of the three trust tiers is attached.
func (l *Listing) Verified() bool {
	return l.EmailVerified || l.PhoneVerified || l.NagritaVerified
}

// FilterAll is the wildcard value accepted for every enumerated filter field.
const FilterAll = "All"

// CityGlobal matches listings in any city.
const CityGlobal = "Global"

// ListingFilter is the conjunction of predicates applied to the full listing
// collection. Zero values mean "no constraint" for Query and MaxPrice; the
// enumerated fields use FilterAll as their wildcard.
type ListingFilter struct {
	Region       string
	Category     string
	SubCategory  string
	City         string
	Query        string
	RentalType   string
	MaxPrice     float64
	VerifiedOnly bool
}

// Normalize fills wildcard defaults and applies the sub-category coupling:
// picking a trade specialty is itself an implicit Services selection.
func (f ListingFilter) Normalize() ListingFilter {
	if strings.TrimSpace(f.Region) == "" {
		f.Region = FilterAll
	}
	if strings.TrimSpace(f.Category) == "" {
		f.Category = FilterAll
	}
	if strings.TrimSpace(f.SubCategory) == "" {
		f.SubCategory = FilterAll
	}
	if strings.TrimSpace(f.City) == "" {
		f.City = FilterAll
	}
	if strings.TrimSpace(f.RentalType) == "" {
		f.RentalType = FilterAll
	}
	if f.SubCategory != FilterAll {
		f.Category = string(CategoryServices)
	}
	if f.MaxPrice < 0 {
		f.MaxPrice = 0
	}
	return f
}

// Matches evaluates the filter conjunction against one listing at the given
// instant. Expiry always wins: an expired listing never matches.
func (f ListingFilter) Matches(l *Listing, now time.Time) bool {
	if l.Expired(now) {
		return false
	}
	if !wildcardEqual(f.Region, string(l.Region)) {
		return false
	}
	if !wildcardEqual(f.Category, string(l.Category)) {
		return false
	}
	if f.SubCategory != FilterAll {
		if l.SubCategory == nil || !strings.EqualFold(f.SubCategory, string(*l.SubCategory)) {
			return false
		}
	}
	if f.City != FilterAll && f.City != CityGlobal && !strings.EqualFold(f.City, l.City) {
		return false
	}
	if f.RentalType != FilterAll {
		if l.RentalType == nil || !strings.EqualFold(f.RentalType, string(*l.RentalType)) {
			return false
		}
	}
	// MaxPrice zero means unbounded; listings without a price pass only then.
	if f.MaxPrice > 0 {
		if l.Price == nil || *l.Price > f.MaxPrice {
			return false
		}
	}
	if f.VerifiedOnly && !l.Verified() {
		return false
	}
	if query := strings.ToLower(strings.TrimSpace(f.Query)); query != "" {
		title := strings.ToLower(l.Title)
		desc := strings.ToLower(l.Description)
		if !strings.Contains(title, query) && !strings.Contains(desc, query) {
			return false
		}
	}
	return true
}

func wildcardEqual(filter, value string) bool {
	return filter == FilterAll || strings.EqualFold(filter, value)
}
