package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/sajhahub/sajha-hub-backend/internal/domain"
	"github.com/sajhahub/sajha-hub-backend/internal/repository/ports"
)

// Fallback copy for the writing-assist endpoints. Every assist operation
// degrades to a safe default instead of surfacing an oracle error.
const (
	descriptionFallback      = "An error occurred."
	taglineFallbackCommunity = "Quality Services for our Community."
	taglineFallbackServices  = "Professional Diaspora Services."
)

// fallbackAuthenticity treats unscorable content as generic so it never earns
// the originality bonus.
var fallbackAuthenticity = domain.AuthenticityScore{Score: 0, General: true}

type AssistService struct {
	oracle ports.TextOracle
}

func NewAssistService(oracle ports.TextOracle) *AssistService {
	return &AssistService{oracle: oracle}
}

// Description drafts listing copy from a title and category.
func (s *AssistService) Description(ctx context.Context, title string, category domain.Category) string {
	prompt := fmt.Sprintf(`Write a short, friendly marketplace listing description (2-3 sentences)
for a %s listing titled %q aimed at the Nepali diaspora community. Plain text only.`, category, title)

	text, _, err := s.oracle.Generate(ctx, prompt, ports.OracleOptions{})
	if err != nil || strings.TrimSpace(text) == "" {
		return descriptionFallback
	}
	return strings.TrimSpace(text)
}

// Tagline drafts a one-line slogan for a business profile.
func (s *AssistService) Tagline(ctx context.Context, businessName string, businessDomain domain.BusinessDomain) string {
	prompt := fmt.Sprintf(`Write one short catchy tagline (under 8 words) for %q,
a %s serving the Nepali diaspora. Return only the tagline, no quotes.`, businessName, businessDomain)

	text, _, err := s.oracle.Generate(ctx, prompt, ports.OracleOptions{})
	if err != nil || strings.TrimSpace(text) == "" {
		if businessDomain == domain.BusinessServices {
			return taglineFallbackServices
		}
		return taglineFallbackCommunity
	}
	return strings.TrimSpace(strings.Trim(strings.TrimSpace(text), `"`))
}

// Polish rewrites member-submitted content for clarity. On failure the
// original text comes back untouched.
func (s *AssistService) Polish(ctx context.Context, content string) string {
	prompt := fmt.Sprintf(`Lightly edit the following text for grammar and clarity.
Keep the author's voice and meaning. Return only the edited text.

%s`, content)

	text, _, err := s.oracle.Generate(ctx, prompt, ports.OracleOptions{})
	if err != nil || strings.TrimSpace(text) == "" {
		return content
	}
	return strings.TrimSpace(text)
}

// Authenticity asks the oracle to judge whether content is original
// first-hand writing or generic filler, on a 0-100 scale.
func (s *AssistService) Authenticity(ctx context.Context, content string) domain.AuthenticityScore {
	prompt := fmt.Sprintf(`Rate the following community post for authenticity.
Respond with JSON only: {"score": <0-100>, "isGeneral": <true if generic or templated>}.

%s`, content)

	text, _, err := s.oracle.Generate(ctx, prompt, ports.OracleOptions{JSONResponse: true})
	if err != nil {
		return fallbackAuthenticity
	}
	var score domain.AuthenticityScore
	if err := json.Unmarshal([]byte(stripCodeFence(text)), &score); err != nil {
		return fallbackAuthenticity
	}
	if score.Score < 0 || score.Score > 100 {
		return fallbackAuthenticity
	}
	return score
}

// ImpactScore estimates how useful a piece of content is to the community,
// 0 to 100. Unscorable content counts as zero impact.
func (s *AssistService) ImpactScore(ctx context.Context, content string) int {
	prompt := fmt.Sprintf(`Rate the community impact of the following post from 0 to 100.
Respond with the number only.

%s`, content)

	text, _, err := s.oracle.Generate(ctx, prompt, ports.OracleOptions{})
	if err != nil {
		return 0
	}
	value, err := strconv.Atoi(strings.TrimSpace(stripCodeFence(text)))
	if err != nil || value < 0 || value > 100 {
		return 0
	}
	return value
}

// stripCodeFence unwraps a ```-fenced block when the oracle wraps its answer
// in one despite being asked for a bare value.
func stripCodeFence(text string) string {
	trimmed := strings.TrimSpace(text)
	if !strings.HasPrefix(trimmed, "```") {
		return trimmed
	}
	trimmed = strings.TrimPrefix(trimmed, "```")
	if idx := strings.Index(trimmed, "\n"); idx >= 0 {
		trimmed = trimmed[idx+1:]
	}
	trimmed = strings.TrimSuffix(strings.TrimSpace(trimmed), "```")
	return strings.TrimSpace(trimmed)
}
