package service

import (
	"context"
	"testing"

	"github.com/sajhahub/sajha-hub-backend/internal/domain"
)

func testPartnerRepo() *memPartners {
	return &memPartners{
		agencies: []domain.Agency{
			{Name: "Himalaya Treks", Description: "Everest base camp specialists", Specialty: "Trekking"},
			{Name: "Pokhara Wings", Description: "Paragliding and lakeside tours", Specialty: "Adventure"},
			{Name: "Kathmandu Heritage", Description: "Temple circuits", Specialty: "Culture"},
		},
		stays: []domain.Stay{
			{Name: "Lakeside Lodge", Description: "Quiet rooms by Phewa lake", Type: "Hotel"},
			{Name: "Everest View Homestay", Description: "Family kitchen, mountain views", Type: "Homestay"},
		},
	}
}

func TestMatchEmptyQueryRecommendsNothing(t *testing.T) {
	svc := NewPartnerService(testPartnerRepo())

	got, err := svc.Match(context.Background(), "   ")
	if err != nil {
		t.Fatalf("Match: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("blank query must match nothing, got %d", len(got))
	}
}

func TestMatchAgenciesBeforeStays(t *testing.T) {
	svc := NewPartnerService(testPartnerRepo())

	got, err := svc.Match(context.Background(), "everest")
	if err != nil {
		t.Fatalf("Match: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("want 2 matches, got %d", len(got))
	}
	if got[0].Kind != domain.PartnerTravelExpert || got[0].Agency == nil || got[0].Agency.Name != "Himalaya Treks" {
		t.Fatalf("agency should win the first slot, got %+v", got[0])
	}
	if got[1].Kind != domain.PartnerVerifiedStay || got[1].Stay == nil {
		t.Fatalf("stay match malformed: %+v", got[1])
	}
}

func TestMatchTaggedUnionIsExclusive(t *testing.T) {
	svc := NewPartnerService(testPartnerRepo())

	got, err := svc.Match(context.Background(), "homestay")
	if err != nil {
		t.Fatalf("Match: %v", err)
	}
	for _, m := range got {
		if (m.Stay == nil) == (m.Agency == nil) {
			t.Fatalf("exactly one side of the union must be set: %+v", m)
		}
		switch m.Kind {
		case domain.PartnerTravelExpert:
			if m.Agency == nil {
				t.Fatalf("travel expert without agency: %+v", m)
			}
		case domain.PartnerVerifiedStay:
			if m.Stay == nil {
				t.Fatalf("verified stay without stay: %+v", m)
			}
		default:
			t.Fatalf("unknown kind %q", m.Kind)
		}
	}
}

func TestMatchCapsAtThree(t *testing.T) {
	repo := testPartnerRepo()
	svc := NewPartnerService(repo)

	// Every catalog entry mentions tours or views somewhere; "a" hits all.
	got, err := svc.Match(context.Background(), "a")
	if err != nil {
		t.Fatalf("Match: %v", err)
	}
	if len(got) != maxPartnerMatches {
		t.Fatalf("want cap of %d, got %d", maxPartnerMatches, len(got))
	}
	for _, m := range got {
		if m.Kind != domain.PartnerTravelExpert {
			t.Fatalf("agencies fill the capped slots first, got %+v", m)
		}
	}
}
