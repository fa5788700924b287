// Package ranking orders listings by trust. The ordering is a strict weak
// order so that paginated rendering stays deterministic across requests.
package ranking

import (
	"sort"

	"github.com/sajhahub/sajha-hub-backend/internal/domain"
)

// Verification tier weights. Each tier is an order of magnitude above the
// next so a single higher tier always outweighs any combination of lower
// tiers plus a rating (ratings max out at 5).
const (
	nagritaWeight = 1000
	phoneWeight   = 100
	emailWeight   = 10
)

// TrustWeight computes the additive trust score of a listing. The featured
// flag is handled separately by Less and does not contribute here.
func TrustWeight(l *domain.Listing) float64 {
	weight := 0.0
	if l.NagritaVerified {
		weight += nagritaWeight
	}
	if l.PhoneVerified {
		weight += phoneWeight
	}
	if l.EmailVerified {
		weight += emailWeight
	}
	if l.Rating != nil {
		weight += *l.Rating
	}
	return weight
}

// Less reports whether a ranks strictly before b. Featured listings come
// first, then higher trust weight, then the more recent creation date.
func Less(a, b *domain.Listing) bool {
	if a.Featured != b.Featured {
		return a.Featured
	}
	wa, wb := TrustWeight(a), TrustWeight(b)
	if wa != wb {
		return wa > wb
	}
	return a.CreatedAt.After(b.CreatedAt)
}

// Sort orders the slice in place. The sort is stable: listings that compare
// equal keep their input order.
func Sort(listings []domain.Listing) {
	sort.SliceStable(listings, func(i, j int) bool {
		return Less(&listings[i], &listings[j])
	})
}
