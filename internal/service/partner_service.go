package service

import (
	"context"
	"strings"

	"github.com/sajhahub/sajha-hub-backend/internal/domain"
	"github.com/sajhahub/sajha-hub-backend/internal/repository/ports"
)

// maxPartnerMatches caps the recommendation strip shown next to assistant
// answers.
const maxPartnerMatches = 3

type PartnerService struct {
	partners ports.PartnerRepository
}

func NewPartnerService(partners ports.PartnerRepository) *PartnerService {
	return &PartnerService{partners: partners}
}

func (s *PartnerService) Stays(ctx context.Context) ([]domain.Stay, error) {
	return s.partners.ListStays(ctx)
}

func (s *PartnerService) Agencies(ctx context.Context) ([]domain.Agency, error) {
	return s.partners.ListAgencies(ctx)
}

// Match scans both partner catalogs for entries relevant to a free-text
// query. Agencies are scanned first and therefore win ties for the capped
// slots; a blank query recommends nothing.
func (s *PartnerService) Match(ctx context.Context, query string) ([]domain.PartnerMatch, error) {
	needle := strings.ToLower(strings.TrimSpace(query))
	if needle == "" {
		return []domain.PartnerMatch{}, nil
	}

	matches := make([]domain.PartnerMatch, 0, maxPartnerMatches)

	agencies, err := s.partners.ListAgencies(ctx)
	if err != nil {
		return nil, err
	}
	for i := range agencies {
		if len(matches) == maxPartnerMatches {
			return matches, nil
		}
		a := &agencies[i]
		if containsFold(a.Name, needle) || containsFold(a.Description, needle) || containsFold(a.Specialty, needle) {
			matches = append(matches, domain.PartnerMatch{Kind: domain.PartnerTravelExpert, Agency: a})
		}
	}

	stays, err := s.partners.ListStays(ctx)
	if err != nil {
		return nil, err
	}
	for i := range stays {
		if len(matches) == maxPartnerMatches {
			return matches, nil
		}
		st := &stays[i]
		if containsFold(st.Name, needle) || containsFold(st.Description, needle) || containsFold(st.Type, needle) {
			matches = append(matches, domain.PartnerMatch{Kind: domain.PartnerVerifiedStay, Stay: st})
		}
	}
	return matches, nil
}

func containsFold(haystack, lowerNeedle string) bool {
	return strings.Contains(strings.ToLower(haystack), lowerNeedle)
}
