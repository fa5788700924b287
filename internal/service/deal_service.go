package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/sajhahub/sajha-hub-backend/internal/dealtext"
	"github.com/sajhahub/sajha-hub-backend/internal/domain"
	"github.com/sajhahub/sajha-hub-backend/internal/repository/ports"
)

// Fallback copy returned when the oracle is unreachable or produces nothing
// usable. Deal lookups never surface transport errors to the caller.
const (
	flightDealsFallback  = "Error fetching flight deals."
	travelDealsFallback  = "Error fetching deals."
	cityInsightsFallback = "Location data could not be fetched."
)

type FlightDealsResult struct {
	Summary string              `json:"summary"`
	Budget  []domain.FlightDeal `json:"budget_deals"`
	Premium []domain.FlightDeal `json:"premium_deals"`
}

type TravelDealsResult struct {
	Summary    string                 `json:"summary"`
	Economical []domain.TravelDeal    `json:"economical_deals"`
	Premium    []domain.TravelDeal    `json:"premium_deals"`
	Sources    []domain.PartnerSource `json:"sources,omitempty"`
}

type DealService struct {
	oracle ports.TextOracle
	cache  ports.InsightsCache
}

// NewDealService builds the deal lookup service. A nil cache disables
// insight caching; every briefing then hits the oracle.
func NewDealService(oracle ports.TextOracle, cache ports.InsightsCache) *DealService {
	return &DealService{oracle: oracle, cache: cache}
}

// FlightDeals asks the oracle for current fares on a route and parses its
// sectioned answer. Oracle failure degrades to the fallback summary with no
// deals; the error is absorbed here.
func (s *DealService) FlightDeals(ctx context.Context, origin, destination string) (*FlightDealsResult, error) {
	prompt := fmt.Sprintf(`Find current flight deals from %s to %s.
Respond with two sections.
Start the first with "### BUDGET_FLIGHTS" and the second with "### PREMIUM_FLIGHTS".
List each flight as a numbered entry with the airline name in bold on its own line,
then "Price:", "Class:" and "Link:" lines.`, origin, destination)

	text, _, err := s.oracle.Generate(ctx, prompt, ports.OracleOptions{UseSearch: true})
	if err != nil {
		return &FlightDealsResult{Summary: flightDealsFallback}, nil
	}

	return &FlightDealsResult{
		Summary: summaryLine(text),
		Budget:  dealtext.ParseFlightSection(text, "BUDGET_FLIGHTS", origin, destination),
		Premium: dealtext.ParseFlightSection(text, "PREMIUM_FLIGHTS", origin, destination),
	}, nil
}

// TravelDeals asks the oracle for package deals reachable from a city. The
// citations accompanying the completion become the partner source chips,
// deduplicated by hostname.
func (s *DealService) TravelDeals(ctx context.Context, city string) (*TravelDealsResult, error) {
	prompt := fmt.Sprintf(`Find current travel package deals departing from %s.
Respond with two sections, one starting "### VALUE_DEALS" and one starting "### PREMIUM_DEALS".
List each deal as a bullet with "Airline:", "Price:" and "Comparison:" lines and a booking link.`, city)

	text, citations, err := s.oracle.Generate(ctx, prompt, ports.OracleOptions{UseSearch: true})
	if err != nil {
		return &TravelDealsResult{Summary: travelDealsFallback}, nil
	}

	economical, premium := dealtext.ParseTravelSections(text)
	return &TravelDealsResult{
		Summary:    summaryLine(text),
		Economical: economical,
		Premium:    premium,
		Sources:    dealtext.UniquePartnerSources(citations),
	}, nil
}

// CityInsights fetches a short local briefing for the selected city, grounded
// on maps and search. Fresh briefings are cached; failure degrades to
// fallback copy with no sources and is never cached.
func (s *DealService) CityInsights(ctx context.Context, city string) (*domain.CityInsights, error) {
	if s.cache != nil {
		if cached, err := s.cache.LoadInsights(ctx, city); err == nil && cached != nil {
			return cached, nil
		}
	}

	prompt := fmt.Sprintf(`Give a short practical briefing for Nepali community members living in %s:
local events, gathering spots and anything notable this week. Keep it under 120 words.`, city)

	text, citations, err := s.oracle.Generate(ctx, prompt, ports.OracleOptions{UseSearch: true, UseMaps: true})
	if err != nil {
		return &domain.CityInsights{City: city, Text: cityInsightsFallback}, nil
	}

	insights := &domain.CityInsights{
		City:    city,
		Text:    strings.TrimSpace(text),
		Sources: dealtext.UniquePartnerSources(citations),
	}
	if s.cache != nil {
		// Best effort; a cache write failure must not fail the lookup.
		_ = s.cache.SaveInsights(ctx, insights)
	}
	return insights, nil
}

// summaryLine returns the free text preceding the first section marker,
// which the oracle typically uses for a one-line overview.
func summaryLine(text string) string {
	head, _, found := strings.Cut(text, "###")
	if !found {
		return strings.TrimSpace(text)
	}
	return strings.TrimSpace(head)
}
