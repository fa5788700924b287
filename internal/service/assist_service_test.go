package service

import (
	"context"
	"errors"
	"testing"

	"github.com/sajhahub/sajha-hub-backend/internal/domain"
)

func TestDescriptionFallback(t *testing.T) {
	svc := NewAssistService(&stubOracle{err: errors.New("down")})

	got := svc.Description(context.Background(), "Room in Jackson Heights", domain.CategoryRental)
	if got != "An error occurred." {
		t.Fatalf("fallback: got %q", got)
	}
}

func TestDescriptionTrimsCompletion(t *testing.T) {
	svc := NewAssistService(&stubOracle{text: "  Cozy room near the 7 train.  \n"})

	got := svc.Description(context.Background(), "Room", domain.CategoryRental)
	if got != "Cozy room near the 7 train." {
		t.Fatalf("got %q", got)
	}
}

func TestTaglineFallbackByDomain(t *testing.T) {
	svc := NewAssistService(&stubOracle{err: errors.New("down")})

	if got := svc.Tagline(context.Background(), "Momo House", domain.BusinessRetail); got != "Quality Services for our Community." {
		t.Fatalf("community fallback: got %q", got)
	}
	if got := svc.Tagline(context.Background(), "Sharma Legal", domain.BusinessServices); got != "Professional Diaspora Services." {
		t.Fatalf("services fallback: got %q", got)
	}
}

func TestPolishFailureReturnsOriginal(t *testing.T) {
	svc := NewAssistService(&stubOracle{err: errors.New("down")})

	original := "i has room for rent near station"
	if got := svc.Polish(context.Background(), original); got != original {
		t.Fatalf("failure must return the original, got %q", got)
	}
}

func TestAuthenticityParsesJSON(t *testing.T) {
	svc := NewAssistService(&stubOracle{text: `{"score": 85, "isGeneral": false}`})

	got := svc.Authenticity(context.Background(), "My first Dashain away from home...")
	if got.Score != 85 || got.General {
		t.Fatalf("got %+v", got)
	}
}

func TestAuthenticityUnwrapsCodeFence(t *testing.T) {
	svc := NewAssistService(&stubOracle{text: "```json\n{\"score\": 40, \"isGeneral\": true}\n```"})

	got := svc.Authenticity(context.Background(), "content")
	if got.Score != 40 || !got.General {
		t.Fatalf("got %+v", got)
	}
}

func TestAuthenticityFallback(t *testing.T) {
	svc := NewAssistService(&stubOracle{text: "not json at all"})

	got := svc.Authenticity(context.Background(), "content")
	if got.Score != 0 || !got.General {
		t.Fatalf("unscorable content must read as generic, got %+v", got)
	}
}

func TestAuthenticityRejectsOutOfRangeScore(t *testing.T) {
	svc := NewAssistService(&stubOracle{text: `{"score": 400, "isGeneral": false}`})

	got := svc.Authenticity(context.Background(), "content")
	if got.Score != 0 || !got.General {
		t.Fatalf("out-of-range score must fall back, got %+v", got)
	}
}

func TestImpactScore(t *testing.T) {
	svc := NewAssistService(&stubOracle{text: " 72 \n"})

	if got := svc.ImpactScore(context.Background(), "guide to opening a US bank account"); got != 72 {
		t.Fatalf("got %d", got)
	}
}

func TestImpactScoreFallback(t *testing.T) {
	svc := NewAssistService(&stubOracle{text: "around seventy"})

	if got := svc.ImpactScore(context.Background(), "content"); got != 0 {
		t.Fatalf("unparseable score must be zero, got %d", got)
	}
}
