package service

import (
	"context"
	"errors"
	"testing"

	"github.com/sajhahub/sajha-hub-backend/internal/domain"
)

const flightCompletion = `Here are today's best fares.

### BUDGET_FLIGHTS

1. **Qatar Airways**
   Price: $850
   Class: Economy
   Link: [Book](https://www.qatarairways.com/deals)

### PREMIUM_FLIGHTS

1. **Emirates**
   Price: $4,200
   Class: Business
   Link: [Reserve](https://www.emirates.com/business)
`

func TestFlightDealsParsesSections(t *testing.T) {
	oracle := &stubOracle{text: flightCompletion}
	svc := NewDealService(oracle, nil)

	got, err := svc.FlightDeals(context.Background(), "New York", "Kathmandu")
	if err != nil {
		t.Fatalf("FlightDeals: %v", err)
	}
	if got.Summary != "Here are today's best fares." {
		t.Fatalf("summary: got %q", got.Summary)
	}
	if len(got.Budget) != 1 || got.Budget[0].Airline != "Qatar Airways" {
		t.Fatalf("budget deals: %+v", got.Budget)
	}
	if got.Budget[0].Origin != "New York" || got.Budget[0].Destination != "Kathmandu" {
		t.Fatalf("route not carried through: %+v", got.Budget[0])
	}
	if len(got.Premium) != 1 || got.Premium[0].Class != "Business" {
		t.Fatalf("premium deals: %+v", got.Premium)
	}
	if !oracle.lastOpts.UseSearch {
		t.Fatal("flight lookup should request search grounding")
	}
}

func TestFlightDealsOracleFailureFallsBack(t *testing.T) {
	svc := NewDealService(&stubOracle{err: errors.New("upstream down")}, nil)

	got, err := svc.FlightDeals(context.Background(), "Sydney", "Kathmandu")
	if err != nil {
		t.Fatalf("oracle failure must not surface: %v", err)
	}
	if got.Summary != "Error fetching flight deals." {
		t.Fatalf("fallback summary: got %q", got.Summary)
	}
	if len(got.Budget) != 0 || len(got.Premium) != 0 {
		t.Fatalf("fallback must carry no deals: %+v", got)
	}
}

const travelCompletion = `Deals this week.

### VALUE_DEALS
* Airline: Fly Dubai
* Price: $640
* Comparison: 15% below seasonal average
* [Book](https://www.flydubai.com/np)

### PREMIUM_DEALS
* **Singapore Airlines**
* Price: $3,900
* Comparison: flagship service
* [Reserve](https://www.singaporeair.com)
`

func TestTravelDealsParsesAndDeduplicatesSources(t *testing.T) {
	oracle := &stubOracle{
		text: travelCompletion,
		citations: []domain.Citation{
			{URL: "https://www.flydubai.com/np/offers", Title: "Fly Dubai"},
			{URL: "https://flydubai.com/np/other", Title: "Duplicate host"},
			{URL: "https://www.singaporeair.com/deals", Title: "SQ"},
			{URL: "https://kayak.com/deals", Title: "Never reached"},
		},
	}
	svc := NewDealService(oracle, nil)

	got, err := svc.TravelDeals(context.Background(), "Dubai")
	if err != nil {
		t.Fatalf("TravelDeals: %v", err)
	}
	if len(got.Economical) != 1 || got.Economical[0].Airline != "Fly Dubai" {
		t.Fatalf("economical deals: %+v", got.Economical)
	}
	if len(got.Premium) != 1 || got.Premium[0].Airline != "Singapore Airlines" {
		t.Fatalf("premium deals: %+v", got.Premium)
	}
	if len(got.Sources) != 2 {
		t.Fatalf("want 2 deduplicated sources, got %+v", got.Sources)
	}
	if got.Sources[0].Hostname != "flydubai.com" || got.Sources[1].Hostname != "singaporeair.com" {
		t.Fatalf("source hostnames: %+v", got.Sources)
	}
}

func TestTravelDealsOracleFailureFallsBack(t *testing.T) {
	svc := NewDealService(&stubOracle{err: errors.New("timeout")}, nil)

	got, err := svc.TravelDeals(context.Background(), "London")
	if err != nil {
		t.Fatalf("oracle failure must not surface: %v", err)
	}
	if got.Summary != "Error fetching deals." {
		t.Fatalf("fallback summary: got %q", got.Summary)
	}
	if len(got.Sources) != 0 {
		t.Fatalf("fallback must carry no sources: %+v", got.Sources)
	}
}

func TestCityInsights(t *testing.T) {
	oracle := &stubOracle{
		text:      "  Nepali New Year mela at Queensbridge Park this Saturday.  ",
		citations: []domain.Citation{{URL: "https://www.eventbrite.com/mela", Title: "Mela"}},
	}
	svc := NewDealService(oracle, nil)

	got, err := svc.CityInsights(context.Background(), "New York")
	if err != nil {
		t.Fatalf("CityInsights: %v", err)
	}
	if got.City != "New York" {
		t.Fatalf("city: got %q", got.City)
	}
	if got.Text != "Nepali New Year mela at Queensbridge Park this Saturday." {
		t.Fatalf("text not trimmed: %q", got.Text)
	}
	if len(got.Sources) != 1 || got.Sources[0].Hostname != "eventbrite.com" {
		t.Fatalf("sources: %+v", got.Sources)
	}
	if !oracle.lastOpts.UseMaps || !oracle.lastOpts.UseSearch {
		t.Fatal("insights should request maps and search grounding")
	}
}

func TestCityInsightsFallback(t *testing.T) {
	svc := NewDealService(&stubOracle{err: errors.New("no quota")}, nil)

	got, err := svc.CityInsights(context.Background(), "Lalitpur")
	if err != nil {
		t.Fatalf("oracle failure must not surface: %v", err)
	}
	if got.Text != "Location data could not be fetched." {
		t.Fatalf("fallback text: got %q", got.Text)
	}
}

func TestCityInsightsCachesFreshBriefings(t *testing.T) {
	oracle := &stubOracle{text: "Mela at the park."}
	cache := newMemInsightsCache()
	svc := NewDealService(oracle, cache)

	first, err := svc.CityInsights(context.Background(), "Sydney")
	if err != nil {
		t.Fatalf("CityInsights: %v", err)
	}
	if cache.saves != 1 {
		t.Fatalf("want 1 cache write, got %d", cache.saves)
	}

	oracle.err = errors.New("oracle must not be reached")
	second, err := svc.CityInsights(context.Background(), "Sydney")
	if err != nil {
		t.Fatalf("cached CityInsights: %v", err)
	}
	if second.Text != first.Text {
		t.Fatalf("cached text mismatch: %q vs %q", second.Text, first.Text)
	}
}

func TestCityInsightsFallbackIsNotCached(t *testing.T) {
	cache := newMemInsightsCache()
	svc := NewDealService(&stubOracle{err: errors.New("down")}, cache)

	if _, err := svc.CityInsights(context.Background(), "Doha"); err != nil {
		t.Fatalf("CityInsights: %v", err)
	}
	if cache.saves != 0 {
		t.Fatalf("fallback briefings must not be cached, got %d writes", cache.saves)
	}
}
