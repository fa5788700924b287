package domain

import (
	"time"

	"github.com/google/uuid"
)

// ContributorTier is the ordered rank a member earns through banked credits.
type ContributorTier string

const (
	TierYatri     ContributorTier = "Yatri"
	TierSathi     ContributorTier = "Sathi"
	TierGuru      ContributorTier = "Guru"
	TierSamajsewi ContributorTier = "Samajsewi"
)

// TierForCredits maps a banked-credit balance to its contributor tier.
func TierForCredits(credits float64) ContributorTier {
	switch {
	case credits >= 1000:
		return TierSamajsewi
	case credits >= 500:
		return TierGuru
	case credits >= 100:
		return TierSathi
	default:
		return TierYatri
	}
}

type BusinessDomain string

const (
	BusinessTravel   BusinessDomain = "Travel Agency"
	BusinessHomestay BusinessDomain = "Homestay / Hotel"
	BusinessEvents   BusinessDomain = "Event Organizer"
	BusinessTours    BusinessDomain = "Tour Packages"
	BusinessServices BusinessDomain = "Professional Services"
	BusinessRetail   BusinessDomain = "Marketplace Seller"
)

type BusinessProfile struct {
	Name        string         `json:"business_name"`
	Tagline     string         `json:"tagline"`
	Description string         `json:"description"`
	Domain      BusinessDomain `json:"domain"`
	LogoURL     *string        `json:"logo_url,omitempty"`
	Address     *string        `json:"address,omitempty"`
	Whatsapp    *string        `json:"whatsapp_number,omitempty"`
	Viber       *string        `json:"viber_number,omitempty"`
	Registered  bool           `json:"is_registered"`
}

type NotificationKind string

const (
	NotificationBooking NotificationKind = "booking"
	NotificationSystem  NotificationKind = "system"
	NotificationAlert   NotificationKind = "alert"
	NotificationReward  NotificationKind = "reward"
)

type Notification struct {
	ID      uuid.UUID        `json:"id"`
	Title   string           `json:"title"`
	Message string           `json:"message"`
	Kind    NotificationKind `json:"type"`
	Date    time.Time        `json:"date"`
	Read    bool             `json:"read"`
}

// User is the session-scoped member profile. It lives in the session store
// between sign-in and sign-out; the credentials row is the only part kept in
// the database.
type User struct {
	ID               uuid.UUID        `json:"id"`
	Name             string           `json:"name"`
	Email            string           `json:"email"`
	City             string           `json:"city"`
	PhotoURL         *string          `json:"photo_url,omitempty"`
	EmailVerified    bool             `json:"is_verified"`
	PhoneVerified    bool             `json:"is_phone_verified"`
	BusinessVerified bool             `json:"is_business_verified"`
	NagritaVerified  bool             `json:"is_nagrita_verified"`
	Credits          float64          `json:"credits"`
	Tier             ContributorTier  `json:"contributor_tier"`
	Business         *BusinessProfile `json:"business_profile,omitempty"`
	Notifications    []Notification   `json:"notifications,omitempty"`
}

// Verified reports whether any trust tier is attached to the member.
func (u *User) Verified() bool {
	return u.EmailVerified || u.PhoneVerified || u.NagritaVerified
}

// Account is the persisted credential row backing a member.
type Account struct {
	ID           uuid.UUID `db:"id" json:"id"`
	Email        string    `db:"email" json:"email"`
	Name         string    `db:"name" json:"name"`
	PasswordHash []byte    `db:"password_hash" json:"-"`
	PasswordSalt []byte    `db:"password_salt" json:"-"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time `db:"updated_at" json:"updated_at"`
}
